package console

import (
	"errors"
	"fmt"
	"io"

	"github.com/CodexForgeBR/travel-manager/internal/ledger"
)

// Feedback asks the operator for optional satisfaction and completeness
// nudges after each action.
type Feedback struct {
	p *Prompter
}

// NewFeedback returns a feedback collector.
func NewFeedback(p *Prompter) *Feedback {
	return &Feedback{p: p}
}

// Collect asks both questions. Blank or malformed answers leave the
// corresponding component unset. Range checks are left to
// ledger.ApplyFeedback.
func (f *Feedback) Collect() (ledger.Feedback, error) {
	var fb ledger.Feedback
	fmt.Fprintln(f.p.Out(), "\nProvide feedback (optional, press Enter to skip):")

	sat, ok, err := f.p.AskInt(fmt.Sprintf("Additional customer satisfaction points (%d-%d)", ledger.FeedbackMin, ledger.FeedbackMax))
	if err != nil {
		return fb, eof(err)
	}
	if ok {
		fb.Satisfaction = &sat
	}

	comp, ok, err := f.p.AskInt(fmt.Sprintf("Additional trip completeness percentage (%d-%d)", ledger.FeedbackMin, ledger.FeedbackMax))
	if err != nil {
		return fb, eof(err)
	}
	if ok {
		fb.Completeness = &comp
	}
	return fb, nil
}

func eof(err error) error {
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
