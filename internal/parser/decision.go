package parser

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrNoDecision means the text held no decision object.
var ErrNoDecision = errors.New("no decision found")

// Decision is a worker/action choice written out as JSON by a model:
//
//	{"worker": "flight_consultant", "action": "book_flight", "params": {...}}
type Decision struct {
	Worker string
	Action string
	Params map[string]string
}

// ExtractDecision finds a decision object in text. Scalar parameter values
// are stringified so numbers and booleans survive.
func ExtractDecision(text string) (Decision, error) {
	obj, err := ExtractJSON(text, `"action"`)
	if err != nil {
		return Decision{}, err
	}
	if obj == nil {
		return Decision{}, ErrNoDecision
	}

	d := Decision{Params: map[string]string{}}
	d.Worker, _ = obj["worker"].(string)
	d.Action, _ = obj["action"].(string)
	if d.Action == "" {
		return Decision{}, fmt.Errorf("%w: action is empty", ErrNoDecision)
	}
	if raw, ok := obj["params"].(map[string]any); ok {
		for k, v := range raw {
			s, err := Stringify(v)
			if err != nil {
				return Decision{}, fmt.Errorf("param %s: %w", k, err)
			}
			d.Params[k] = s
		}
	}
	return d, nil
}

// Stringify renders a decoded JSON scalar as a parameter string.
func Stringify(v any) (string, error) {
	switch t := v.(type) {
	case string:
		return t, nil
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), nil
	case bool:
		return strconv.FormatBool(t), nil
	case nil:
		return "", nil
	default:
		return "", fmt.Errorf("unsupported value of type %T", v)
	}
}
