// Package prompt renders the planner's system and per-cycle prompts from
// embedded templates.
package prompt

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/CodexForgeBR/travel-manager/internal/brief"
	"github.com/CodexForgeBR/travel-manager/internal/catalog"
	"github.com/CodexForgeBR/travel-manager/internal/ledger"
)

// BuildSystemPrompt renders the planner's standing instructions for a trip.
// Payment rules are only included for blockchain modes.
func BuildSystemPrompt(b brief.Brief, mode ledger.Mode) string {
	prompt := SystemTemplate

	traveller := b.Traveller
	if traveller == "" {
		traveller = "the customer"
	}
	prompt = strings.ReplaceAll(prompt, "{{TRAVELLER}}", traveller)
	prompt = strings.ReplaceAll(prompt, "{{DESTINATION}}", b.Destination)
	prompt = strings.ReplaceAll(prompt, "{{DEPARTURE_DATE}}", b.DepartureDate)
	prompt = strings.ReplaceAll(prompt, "{{RETURN_DATE}}", b.ReturnDate)
	prompt = strings.ReplaceAll(prompt, "{{HOTEL}}", orNone(b.Hotel))
	prompt = strings.ReplaceAll(prompt, "{{PREFERENCES}}", orNone(strings.Join(b.Preferences, ", ")))
	prompt = strings.ReplaceAll(prompt, "{{LOCATIONS}}", strings.Join(b.ResearchTargets(), ", "))

	var exp strings.Builder
	for _, e := range b.Experiences {
		fmt.Fprintf(&exp, "  - %s on %s\n", e.Name, b.ExperienceDate(e))
	}
	if exp.Len() == 0 {
		exp.WriteString("  - (none)\n")
	}
	prompt = strings.ReplaceAll(prompt, "{{EXPERIENCES}}", strings.TrimRight(exp.String(), "\n"))

	if mode.Blockchain() {
		rules := PaymentRules
		rules = strings.ReplaceAll(rules, "{{PAY_TOKEN}}", b.Payments.Token)
		rules = strings.ReplaceAll(rules, "{{FLIGHT_AMOUNT}}", amount(b.Payments.Flight))
		rules = strings.ReplaceAll(rules, "{{HOTEL_AMOUNT}}", amount(b.Payments.Hotel))
		rules = strings.ReplaceAll(rules, "{{EXPERIENCE_AMOUNT}}", amount(b.Payments.Experience))
		prompt = strings.ReplaceAll(prompt, "{{PAYMENT_RULES}}", rules)
	} else {
		prompt = strings.ReplaceAll(prompt, "{{PAYMENT_RULES}}", "")
	}

	return prompt
}

// BuildDecisionPrompt renders the per-cycle request: the ledger snapshot,
// the eligible choices and, when non-empty, the previous outcome message.
func BuildDecisionPrompt(cycle int, snapshot *ledger.TripState, eligible []ledger.Choice, lastOutcome string) (string, error) {
	state, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal trip state: %w", err)
	}

	prompt := DecisionTemplate
	prompt = strings.ReplaceAll(prompt, "{{CYCLE}}", strconv.Itoa(cycle))
	prompt = strings.ReplaceAll(prompt, "{{STATE}}", string(state))
	prompt = strings.ReplaceAll(prompt, "{{ELIGIBLE}}", formatEligible(eligible))

	if lastOutcome != "" {
		prompt = strings.ReplaceAll(prompt, "{{LAST_OUTCOME}}", "\nLast outcome: "+lastOutcome+"\n")
	} else {
		prompt = strings.ReplaceAll(prompt, "{{LAST_OUTCOME}}", "")
	}

	return prompt, nil
}

func formatEligible(eligible []ledger.Choice) string {
	if len(eligible) == 0 {
		return "  (none)"
	}
	var b strings.Builder
	for _, c := range eligible {
		desc := ""
		if a, ok := catalog.Lookup(c.Action); ok {
			desc = " - " + a.Description
		}
		fmt.Fprintf(&b, "  - %s.%s%s\n", c.Worker, c.Action, desc)
	}
	return strings.TrimRight(b.String(), "\n")
}

func amount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}
