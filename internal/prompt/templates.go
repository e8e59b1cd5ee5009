package prompt

import _ "embed"

// Template files embedded at compile time
var (
	//go:embed templates/system.txt
	SystemTemplate string

	//go:embed templates/payment-rules.txt
	PaymentRules string

	//go:embed templates/decision.txt
	DecisionTemplate string
)
