package voice

import (
	"context"
	"fmt"

	"github.com/Zhima-Mochi/streetsmart/internal/application"
	domvoice "github.com/Zhima-Mochi/streetsmart/internal/domain/voice"
	"github.com/Zhima-Mochi/streetsmart/internal/observability"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const (
	voiceService  = "voice-assistant"
	DefaultLocale = "en-IN"
)

// Outcome reports what a transcript turned into.
type Outcome struct {
	Command domvoice.Command `json:"command"`
	Spoken  string           `json:"spoken"`
	Matches int              `json:"matches,omitempty"`
}

// Assistant dispatches classified transcripts: one spoken line plus at most
// one view action per transcript.
type Assistant struct {
	inventory InventoryQuerier
	printer   *message.Printer
	in        application.Instruments
	intents   observability.Counter
}

// NewAssistant formats spoken numbers for locale (a BCP 47 tag). An
// unparsable tag falls back to en-IN.
func NewAssistant(inventory InventoryQuerier, locale string, tel observability.Observability) *Assistant {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.MustParse(DefaultLocale)
	}
	in := application.NewInstruments(tel, voiceService)
	return &Assistant{
		inventory: inventory,
		printer:   message.NewPrinter(tag),
		in:        in,
		intents:   in.Counter(observability.MVoiceIntents),
	}
}

func (a *Assistant) Handle(ctx context.Context, transcript string, view View) (_ *Outcome, err error) {
	cmd := domvoice.Classify(transcript)
	ctx, run := a.in.Start(ctx, "voice.command", "HandleVoiceCommand",
		attribute.String("voice.intent", string(cmd.Intent)),
	)
	defer func() { run.End(err) }()
	run.With(observability.F("intent", string(cmd.Intent)))
	a.intents.Add(1, observability.L("intent", string(cmd.Intent)))

	out := &Outcome{Command: cmd}
	switch cmd.Intent {
	case domvoice.IntentAddItem:
		out.Spoken = phraseOpenAddItem
		err = a.say(ctx, view, out.Spoken, func() error { return view.OpenDialog(ctx, DialogAddItem) })
	case domvoice.IntentViewInventory:
		out.Spoken = phraseShowInventory
		err = a.say(ctx, view, out.Spoken, func() error { return view.ScrollTo(ctx, SectionInventory) })
	case domvoice.IntentViewTransactions:
		out.Spoken = phraseShowTransactions
		err = a.say(ctx, view, out.Spoken, func() error { return view.ScrollTo(ctx, SectionTransactions) })
	case domvoice.IntentMakePayment:
		out.Spoken = phraseOpenPayment
		err = a.say(ctx, view, out.Spoken, func() error { return view.ScrollTo(ctx, SectionPayments) })
	case domvoice.IntentSearchItem:
		result, serr := a.inventory.Search(ctx, cmd.Query)
		if serr != nil {
			run.Fail("SEARCH_FAILED")
			return nil, fmt.Errorf("voice: search: %w", serr)
		}
		out.Matches = result.Count
		if result.Empty() {
			run.Status("NO_MATCH")
			out.Spoken = a.printer.Sprintf(phraseNotFound, cmd.Query)
			err = a.say(ctx, view, out.Spoken, nil)
			break
		}
		out.Spoken = a.printer.Sprintf(phraseFound, result.Count, cmd.Query)
		err = a.say(ctx, view, out.Spoken, func() error { return view.FilterInventory(ctx, cmd.Query) })
	case domvoice.IntentTotalInventoryCount, domvoice.IntentTotalInventoryValue:
		stats, serr := a.inventory.Stats(ctx)
		if serr != nil {
			run.Fail("STATS_FAILED")
			return nil, fmt.Errorf("voice: stats: %w", serr)
		}
		if cmd.Intent == domvoice.IntentTotalInventoryCount {
			out.Spoken = a.printer.Sprintf(phraseTotalItems, stats.TotalQuantity)
		} else {
			out.Spoken = a.printer.Sprintf(phraseTotalValue, number.Decimal(stats.TotalValue,
				number.MinFractionDigits(2), number.MaxFractionDigits(2)))
		}
		err = a.say(ctx, view, out.Spoken, nil)
	case domvoice.IntentHelp:
		out.Spoken = phraseHelp
		err = a.say(ctx, view, out.Spoken, nil)
	default:
		run.Status("UNRECOGNIZED")
		out.Spoken = phraseUnrecognized
		err = a.say(ctx, view, out.Spoken, nil)
	}
	if err != nil {
		run.Fail("VIEW_FAILED")
		return out, err
	}
	return out, nil
}

// say speaks first, then runs the view action.
func (a *Assistant) say(ctx context.Context, view View, text string, action func() error) error {
	if err := view.Speak(ctx, text); err != nil {
		return fmt.Errorf("voice: speak: %w", err)
	}
	if action == nil {
		return nil
	}
	if err := action(); err != nil {
		return fmt.Errorf("voice: view action: %w", err)
	}
	return nil
}
