package ledger

import (
	"fmt"
	"strings"
	"time"
)

// Window selects a time range relative to now.
type Window string

const (
	WindowAll   Window = "all"
	WindowToday Window = "today"
	WindowWeek  Window = "week"
	WindowMonth Window = "month"
)

const (
	weekSpan  = 7 * 24 * time.Hour
	monthSpan = 30 * 24 * time.Hour
)

// ParseWindow accepts the selector values used by the transaction filter.
// Empty input selects everything.
func ParseWindow(s string) (Window, error) {
	switch w := Window(strings.ToLower(strings.TrimSpace(s))); w {
	case "", WindowAll:
		return WindowAll, nil
	case WindowToday, WindowWeek, WindowMonth:
		return w, nil
	case "this-week":
		return WindowWeek, nil
	case "this-month":
		return WindowMonth, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidWindow, s)
	}
}

// Filter returns the transactions that fall in the window, keeping order.
// "today" compares calendar dates in now's location; week and month are
// rolling windows of 7 and 30 days.
func Filter(txs []Transaction, w Window, now time.Time) []Transaction {
	out := make([]Transaction, 0, len(txs))
	for _, tx := range txs {
		if w.Contains(tx.Date, now) {
			out = append(out, tx)
		}
	}
	return out
}

func (w Window) Contains(date, now time.Time) bool {
	switch w {
	case WindowToday:
		y1, m1, d1 := date.In(now.Location()).Date()
		y2, m2, d2 := now.Date()
		return y1 == y2 && m1 == m2 && d1 == d2
	case WindowWeek:
		return !date.Before(now.Add(-weekSpan))
	case WindowMonth:
		return !date.Before(now.Add(-monthSpan))
	default:
		return true
	}
}
