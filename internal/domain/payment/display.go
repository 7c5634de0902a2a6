package payment

import "fmt"

// Display is the status panel text for a state.
type Display struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

func DisplayFor(status Status, recipient string, amount float64) Display {
	switch status {
	case StatusProcessing:
		return Display{Title: "Processing Payment...", Description: "Please wait while we process your payment"}
	case StatusSuccess:
		return Display{Title: "Payment Successful!", Description: fmt.Sprintf("₹%s sent to %s", formatAmount(amount), recipient)}
	case StatusFailure:
		return Display{Title: "Payment Failed", Description: "Please check your details and try again"}
	default:
		return Display{Title: "Ready to Pay", Description: "Enter payment details to proceed"}
	}
}

func formatAmount(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%.2f", v)
}
