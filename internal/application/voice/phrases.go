package voice

// Spoken lines. Lines with verbs are format strings for a message.Printer.
const (
	phraseOpenAddItem      = "Opening add item form"
	phraseShowInventory    = "Showing inventory"
	phraseShowTransactions = "Showing transactions"
	phraseOpenPayment      = "Opening payment form"
	phraseFound            = "Found %d items matching %s"
	phraseNotFound         = "No items found matching %s"
	phraseTotalItems       = "Total inventory items: %d"
	phraseTotalValue       = "Total inventory value: ₹%v"
	phraseHelp             = "Available commands: add item, view inventory, view transactions, make payment, search items, total inventory, total value"
	phraseUnrecognized     = "I didn't understand that command. Say help for available commands."
	phraseActivated        = "Voice assistant activated. How can I help you?"
)
