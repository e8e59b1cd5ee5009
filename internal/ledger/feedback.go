package ledger

import (
	"errors"
	"fmt"
)

// Bounds of a single feedback adjustment.
const (
	FeedbackMin = 0
	FeedbackMax = 10
)

var (
	// ErrFeedbackNotAllowed is returned outside human-driven modes.
	ErrFeedbackNotAllowed = errors.New("feedback is only accepted in human-driven modes")
	// ErrFeedbackOutOfRange marks a component that was skipped.
	ErrFeedbackOutOfRange = errors.New("feedback value out of range")
)

// Feedback is an out-of-band nudge entered by the operator. Nil fields
// were not provided.
type Feedback struct {
	Satisfaction *int
	Completeness *int
}

// ApplyFeedback adds the operator's bounded satisfaction and completeness
// nudges. An out-of-range component is skipped and reported; the other
// component is still applied.
func ApplyFeedback(s *TripState, fb Feedback) (Delta, error) {
	d := Delta{}
	if !s.Mode.HumanDriven() {
		return d, ErrFeedbackNotAllowed
	}

	var errs []error
	if v := fb.Satisfaction; v != nil {
		if inFeedbackRange(*v) {
			d.record("customer_satisfaction", s.CustomerSatisfaction, s.CustomerSatisfaction+*v)
			s.CustomerSatisfaction += *v
			d.Applied = true
		} else {
			errs = append(errs, fmt.Errorf("%w: satisfaction %d", ErrFeedbackOutOfRange, *v))
		}
	}
	if v := fb.Completeness; v != nil {
		if inFeedbackRange(*v) {
			d.record("trip_completeness", s.TripCompleteness, s.TripCompleteness+*v)
			s.TripCompleteness += *v
			d.Applied = true
		} else {
			errs = append(errs, fmt.Errorf("%w: completeness %d", ErrFeedbackOutOfRange, *v))
		}
	}
	return d, errors.Join(errs...)
}

func inFeedbackRange(v int) bool {
	return v >= FeedbackMin && v <= FeedbackMax
}
