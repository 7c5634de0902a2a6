// Package voice classifies free-text transcripts into assistant intents and
// tracks the recognition session state.
package voice

import (
	"regexp"
	"strings"
)

type Intent string

const (
	IntentAddItem             Intent = "add_item"
	IntentViewInventory       Intent = "view_inventory"
	IntentViewTransactions    Intent = "view_transactions"
	IntentMakePayment         Intent = "make_payment"
	IntentSearchItem          Intent = "search_item"
	IntentTotalInventoryCount Intent = "total_inventory_count"
	IntentTotalInventoryValue Intent = "total_inventory_value"
	IntentHelp                Intent = "help"
	IntentUnrecognized        Intent = "unrecognized"
)

// Command is a classified transcript. Query is only set for IntentSearchItem.
type Command struct {
	Intent     Intent `json:"intent"`
	Transcript string `json:"transcript"`
	Query      string `json:"query,omitempty"`
}

type rule struct {
	intent Intent
	match  func(cmd string) bool
}

func anyOf(phrases ...string) func(string) bool {
	return func(cmd string) bool {
		for _, p := range phrases {
			if strings.Contains(cmd, p) {
				return true
			}
		}
		return false
	}
}

func allOf(words ...string) func(string) bool {
	return func(cmd string) bool {
		for _, w := range words {
			if !strings.Contains(cmd, w) {
				return false
			}
		}
		return true
	}
}

// rules are checked in order; the first match wins.
var rules = []rule{
	{IntentAddItem, anyOf("add item", "new item")},
	{IntentViewInventory, anyOf("view inventory", "show inventory")},
	{IntentViewTransactions, anyOf("view transactions", "show transactions")},
	{IntentMakePayment, anyOf("make payment", "upi payment")},
	{IntentSearchItem, allOf("search", "item")},
	{IntentTotalInventoryCount, anyOf("total inventory", "inventory count")},
	{IntentTotalInventoryValue, anyOf("total value", "inventory value")},
	{IntentHelp, anyOf("help", "commands")},
}

var searchKeywords = regexp.MustCompile(`search|item`)

// Classify never fails: text matching no rule yields IntentUnrecognized.
func Classify(transcript string) Command {
	cmd := strings.ToLower(strings.TrimSpace(transcript))
	for _, r := range rules {
		if !r.match(cmd) {
			continue
		}
		c := Command{Intent: r.intent, Transcript: cmd}
		if r.intent == IntentSearchItem {
			c.Query = SearchQuery(cmd)
		}
		return c
	}
	return Command{Intent: IntentUnrecognized, Transcript: cmd}
}

// SearchQuery strips every "search" and "item" occurrence, so "search items
// laptop" leaves "s laptop".
func SearchQuery(cmd string) string {
	return strings.TrimSpace(searchKeywords.ReplaceAllString(cmd, ""))
}
