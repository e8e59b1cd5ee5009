package planner

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/CodexForgeBR/travel-manager/internal/brief"
	"github.com/CodexForgeBR/travel-manager/internal/catalog"
	"github.com/CodexForgeBR/travel-manager/internal/ledger"
	"github.com/CodexForgeBR/travel-manager/internal/logging"
	"github.com/CodexForgeBR/travel-manager/internal/parser"
	"github.com/CodexForgeBR/travel-manager/internal/prompt"
)

const (
	DefaultModel     = "claude-sonnet-4-5"
	DefaultMaxTokens = 1024
)

// MessagesClient is the subset of the Anthropic SDK the planner needs. It
// is satisfied by *sdk.MessageService.
type MessagesClient interface {
	New(ctx context.Context, body sdk.MessageNewParams, opts ...option.RequestOption) (*sdk.Message, error)
}

// NewMessagesClient builds an SDK client authenticated with apiKey.
func NewMessagesClient(apiKey string) MessagesClient {
	ac := sdk.NewClient(option.WithAPIKey(apiKey))
	return &ac.Messages
}

// AnthropicOptions configures the Anthropic planner.
type AnthropicOptions struct {
	Model     string
	MaxTokens int
	Brief     brief.Brief
	Mode      ledger.Mode
}

// Anthropic asks a Claude model for the next action. Every eligible
// action is offered as a tool and the model is required to call one.
type Anthropic struct {
	client    MessagesClient
	model     string
	maxTokens int
	system    string

	cycle       int
	lastOutcome string
}

// NewAnthropic returns a planner using client.
func NewAnthropic(client MessagesClient, opts AnthropicOptions) (*Anthropic, error) {
	if client == nil {
		return nil, errors.New("anthropic planner: client is required")
	}
	if opts.Model == "" {
		opts.Model = DefaultModel
	}
	if opts.MaxTokens <= 0 {
		opts.MaxTokens = DefaultMaxTokens
	}
	return &Anthropic{
		client:    client,
		model:     opts.Model,
		maxTokens: opts.MaxTokens,
		system:    prompt.BuildSystemPrompt(opts.Brief, opts.Mode),
	}, nil
}

// Decide sends the snapshot and eligible tools to the model. A tool call
// becomes the proposal; a plain-text answer is searched for a decision
// object. Anything else is ErrNoAction.
func (a *Anthropic) Decide(ctx context.Context, s *ledger.TripState, eligible []ledger.Choice) (Proposal, error) {
	if len(eligible) == 0 {
		return Proposal{}, ErrNoAction
	}
	a.cycle++

	user, err := prompt.BuildDecisionPrompt(a.cycle, s, eligible, a.lastOutcome)
	if err != nil {
		return Proposal{}, err
	}
	tools, err := toolsFor(eligible)
	if err != nil {
		return Proposal{}, err
	}

	params := sdk.MessageNewParams{
		MaxTokens:  int64(a.maxTokens),
		Model:      sdk.Model(a.model),
		System:     []sdk.TextBlockParam{{Text: a.system}},
		Messages:   []sdk.MessageParam{sdk.NewUserMessage(sdk.NewTextBlock(user))},
		Tools:      tools,
		ToolChoice: sdk.ToolChoiceUnionParam{OfAny: &sdk.ToolChoiceAnyParam{}},
	}

	logging.Debug(fmt.Sprintf("Planner request: model=%s tools=%d", a.model, len(tools)))
	msg, err := a.client.New(ctx, params)
	if err != nil {
		return Proposal{}, fmt.Errorf("anthropic planner: %w", err)
	}
	return proposalFrom(msg)
}

// Observe remembers the outcome message for the next prompt.
func (a *Anthropic) Observe(_ Proposal, o ledger.Outcome) {
	a.lastOutcome = fmt.Sprintf("%s (%s)", o.Message, o.Status)
}

func toolsFor(eligible []ledger.Choice) ([]sdk.ToolUnionParam, error) {
	tools := make([]sdk.ToolUnionParam, 0, len(eligible))
	for _, c := range eligible {
		act, ok := catalog.Lookup(c.Action)
		if !ok {
			return nil, fmt.Errorf("no catalog entry for %s", c.Action)
		}
		u := sdk.ToolUnionParamOfTool(sdk.ToolInputSchemaParam{ExtraFields: act.JSONSchema()}, string(c.Action))
		if u.OfTool != nil {
			u.OfTool.Description = sdk.String(fmt.Sprintf("%s (worker: %s)", act.Description, c.Worker))
		}
		tools = append(tools, u)
	}
	return tools, nil
}

func proposalFrom(msg *sdk.Message) (Proposal, error) {
	if msg == nil {
		return Proposal{}, ErrNoAction
	}
	var text strings.Builder
	for _, block := range msg.Content {
		switch block.Type {
		case "tool_use":
			return proposalFromTool(block.Name, block.Input)
		case "text":
			text.WriteString(block.Text)
			text.WriteString("\n")
		}
	}

	d, err := parser.ExtractDecision(text.String())
	if err != nil {
		return Proposal{}, fmt.Errorf("%w: %v", ErrNoAction, err)
	}
	p := Proposal{Worker: ledger.WorkerID(d.Worker), Action: ledger.ActionID(d.Action), Params: d.Params}
	if p.Worker == "" {
		p.Worker, _ = ledger.Owner(p.Action)
	}
	return p, nil
}

func proposalFromTool(name string, input json.RawMessage) (Proposal, error) {
	action := ledger.ActionID(name)
	worker, ok := ledger.Owner(action)
	if !ok {
		return Proposal{}, fmt.Errorf("%w: model called unknown tool %q", ErrNoAction, name)
	}

	raw := map[string]any{}
	if len(input) > 0 {
		if err := json.Unmarshal(input, &raw); err != nil {
			return Proposal{}, fmt.Errorf("%w: tool input: %v", ErrNoAction, err)
		}
	}
	params := make(map[string]string, len(raw))
	for k, v := range raw {
		s, err := parser.Stringify(v)
		if err != nil {
			return Proposal{}, fmt.Errorf("%w: tool input %s: %v", ErrNoAction, k, err)
		}
		params[k] = s
	}
	return Proposal{Worker: worker, Action: action, Params: params}, nil
}
