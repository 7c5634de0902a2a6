package voice

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify_PhraseTable(t *testing.T) {
	tests := []struct {
		transcript string
		want       Intent
	}{
		{"Add item", IntentAddItem},
		{"please create a new item now", IntentAddItem},
		{"view inventory", IntentViewInventory},
		{"  SHOW INVENTORY  ", IntentViewInventory},
		{"view transactions", IntentViewTransactions},
		{"show transactions from today", IntentViewTransactions},
		{"make payment", IntentMakePayment},
		{"start a upi payment", IntentMakePayment},
		{"search item laptop", IntentSearchItem},
		{"total inventory", IntentTotalInventoryCount},
		{"what is the inventory count", IntentTotalInventoryCount},
		{"total value", IntentTotalInventoryValue},
		{"tell me the inventory value", IntentTotalInventoryValue},
		{"help", IntentHelp},
		{"list commands", IntentHelp},
		{"", IntentUnrecognized},
		{"order pizza", IntentUnrecognized},
		{"search for laptops", IntentUnrecognized},
	}
	for _, tt := range tests {
		t.Run(tt.transcript, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.transcript).Intent)
		})
	}
}

func TestClassify_ViewInventoryRegardlessOfSurroundingText(t *testing.T) {
	for _, transcript := range []string{
		"view inventory",
		"could you view inventory please",
		"xyz view inventory abc",
		"help me view inventory",
		"view inventory and total value",
	} {
		assert.Equal(t, IntentViewInventory, Classify(transcript).Intent, transcript)
	}
}

func TestClassify_PriorityOrder(t *testing.T) {
	// add item outranks search even though both keywords are present
	assert.Equal(t, IntentAddItem, Classify("search then add item").Intent)
	// total inventory count is checked before total value
	assert.Equal(t, IntentTotalInventoryCount, Classify("total inventory value").Intent)
	// search with item wins over help
	assert.Equal(t, IntentSearchItem, Classify("help me search item books").Intent)
}

func TestClassify_SearchQueryExtraction(t *testing.T) {
	tests := map[string]string{
		"search item laptop":      "laptop",
		"Search Item Electronics": "electronics",
		"item search":             "",
		"search items books":      "s books",
	}
	for transcript, want := range tests {
		cmd := Classify(transcript)
		assert.Equal(t, IntentSearchItem, cmd.Intent, transcript)
		assert.Equal(t, want, cmd.Query, transcript)
	}
}

func TestClassify_UnrecognizedHasNoQuery(t *testing.T) {
	cmd := Classify("what time is it")
	assert.Equal(t, Command{Intent: IntentUnrecognized, Transcript: "what time is it"}, cmd)
}
