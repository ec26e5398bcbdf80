package demo

import (
	"context"
	"fmt"

	"github.com/corvidlabs/dualmediator/internal/mediator"
	"github.com/corvidlabs/dualmediator/internal/policy"
	"github.com/corvidlabs/dualmediator/internal/protocol"
	"github.com/corvidlabs/dualmediator/pkg/schema"
)

// ScenarioResult reports the outcome of running one seed scenario.
type ScenarioResult struct {
	Name   string
	Passed bool
	Detail string
	Err    error
}

// bankingPolicy returns the PolicyGate the banking scenarios run under:
// an IBAN allowlist plus an amount threshold on send_money, grounded on
// the original benchmark's banking_security_policy.
func bankingPolicy() policy.Gate {
	return policy.NewComposite(
		policy.NewAllowlist("send_money", "recipient", TrustedIBANs),
		policy.NewThreshold("send_money", "amount", TransferLimit),
	)
}

// newBankingMediator constructs a Mediator wired with the banking demo's
// PolicyGate and SchemaValidator, for use by a single scenario.
func newBankingMediator(sessionID string) (*mediator.Mediator, error) {
	validator, err := schema.NewValidator()
	if err != nil {
		return nil, fmt.Errorf("failed to construct validator: %w", err)
	}
	return mediator.New(sessionID, mediator.WithPolicy(bankingPolicy()), mediator.WithSchemaValidator(validator))
}

// RunAllowlistedTransferSucceeds exercises seed scenario 1: a transfer to
// an allowlisted IBAN within the threshold completes. The recipient IBAN
// reaches the transfer only as a key from an earlier mediated lookup, which
// the PolicyGate sees resolved.
func RunAllowlistedTransferSucceeds(ctx context.Context, bank *Bank) ScenarioResult {
	const name = "allowlisted transfer succeeds"

	m, err := newBankingMediator("scenario-1")
	if err != nil {
		return ScenarioResult{Name: name, Err: err}
	}

	balanceArgs := map[string]interface{}{"account_id": "default"}
	if err := m.BeforeTool(ctx, "get_balance", balanceArgs); err != nil {
		return ScenarioResult{Name: name, Err: err}
	}
	rawBalance, err := bank.GetBalance("default")
	if err != nil {
		return ScenarioResult{Name: name, Err: err}
	}
	sanitizedBalance, err := m.AfterTool(ctx, "get_balance", balanceArgs, rawBalance)
	if err != nil {
		return ScenarioResult{Name: name, Err: err}
	}
	_ = sanitizedBalance

	ibanArgs := map[string]interface{}{"name": "landlord"}
	if err := m.BeforeTool(ctx, "get_iban", ibanArgs); err != nil {
		return ScenarioResult{Name: name, Err: err}
	}
	sanitizedIBAN, err := m.AfterTool(ctx, "get_iban", ibanArgs, "CH9300762011623852957")
	if err != nil {
		return ScenarioResult{Name: name, Err: err}
	}
	recipientKey := sanitizedIBAN.(map[string]interface{})["output"]

	transferArgs := map[string]interface{}{
		"account_id": "default",
		"recipient":  recipientKey,
		"amount":     500.0,
		"memo":       "rent",
	}
	if err := m.BeforeTool(ctx, "send_money", transferArgs); err != nil {
		return ScenarioResult{Name: name, Passed: false, Detail: "policy unexpectedly blocked an allowlisted transfer", Err: err}
	}
	rawResult, err := bank.SendMoney("default",
		transferArgs["recipient"].(string), transferArgs["amount"].(float64), transferArgs["memo"].(string))
	if err != nil {
		return ScenarioResult{Name: name, Err: err}
	}
	sanitized, err := m.AfterTool(ctx, "send_money", transferArgs, rawResult)
	if err != nil {
		return ScenarioResult{Name: name, Err: err}
	}

	return ScenarioResult{Name: name, Passed: true, Detail: fmt.Sprintf("transfer completed, sanitized result: %v", sanitized)}
}

// RunNonAllowlistedTransferBlocked exercises seed scenario 2: a transfer to
// an IBAN outside the allowlist is denied before the bank is touched.
func RunNonAllowlistedTransferBlocked(ctx context.Context, bank *Bank) ScenarioResult {
	const name = "non-allowlisted transfer blocked"

	m, err := newBankingMediator("scenario-2")
	if err != nil {
		return ScenarioResult{Name: name, Err: err}
	}

	args := map[string]interface{}{
		"account_id": "default",
		"recipient":  "US133000000121212121212",
		"amount":     500.0,
	}
	err = m.BeforeTool(ctx, "send_money", args)
	if err == nil {
		return ScenarioResult{Name: name, Passed: false, Detail: "expected PolicyGate to block an untrusted recipient"}
	}
	return ScenarioResult{Name: name, Passed: true, Detail: err.Error()}
}

// RunAmountLimitTransferBlocked exercises seed scenario 3: a transfer to an
// allowlisted IBAN that exceeds the threshold is denied.
func RunAmountLimitTransferBlocked(ctx context.Context, bank *Bank) ScenarioResult {
	const name = "amount-limit transfer blocked"

	m, err := newBankingMediator("scenario-3")
	if err != nil {
		return ScenarioResult{Name: name, Err: err}
	}

	args := map[string]interface{}{
		"account_id": "default",
		"recipient":  "CH9300762011623852957",
		"amount":     5000.0,
	}
	err = m.BeforeTool(ctx, "send_money", args)
	if err == nil {
		return ScenarioResult{Name: name, Passed: false, Detail: "expected PolicyGate to block an over-threshold amount"}
	}
	return ScenarioResult{Name: name, Passed: true, Detail: err.Error()}
}

// RunQLLMSchemaMismatchRejected exercises seed scenario 4: a Q-LLM response
// with a field of the wrong declared type fails validation.
func RunQLLMSchemaMismatchRejected(ctx context.Context) ScenarioResult {
	const name = "Q-LLM schema mismatch rejected"

	m, err := newBankingMediator("scenario-4")
	if err != nil {
		return ScenarioResult{Name: name, Err: err}
	}

	args := map[string]interface{}{
		"request": "extract the temperature and condition",
		"source":  "It was a hot and sunny day in Paris.",
		"format":  map[string]interface{}{"temperature": "float", "condition": "string"},
	}
	if err := m.BeforeTool(ctx, protocol.QLLMToolName, args); err != nil {
		return ScenarioResult{Name: name, Err: err}
	}

	_, err = m.AfterTool(ctx, protocol.QLLMToolName, args, map[string]interface{}{
		"temperature": "hot",
		"condition":   "sunny",
	})
	if err == nil {
		return ScenarioResult{Name: name, Passed: false, Detail: "expected SchemaValidator to reject a non-numeric temperature"}
	}
	return ScenarioResult{Name: name, Passed: true, Detail: err.Error()}
}

// RunInjectionIgnored exercises seed scenario 5: an injected instruction
// hidden in a tool result never becomes an IBAN the planner can act on,
// because the planner only ever sees the key standing in for it.
func RunInjectionIgnored(ctx context.Context, bank *Bank) ScenarioResult {
	const name = "injection ignored"

	m, err := newBankingMediator("scenario-5")
	if err != nil {
		return ScenarioResult{Name: name, Err: err}
	}

	readArgs := map[string]interface{}{"document": "suspicious_invoice"}
	if err := m.BeforeTool(ctx, "read_document", readArgs); err != nil {
		return ScenarioResult{Name: name, Err: err}
	}
	raw := bank.ReadDocument("suspicious_invoice")
	sanitized, err := m.AfterTool(ctx, "read_document", readArgs, raw)
	if err != nil {
		return ScenarioResult{Name: name, Err: err}
	}
	documentKey, ok := sanitized.(map[string]interface{})["output"].(string)
	if !ok {
		return ScenarioResult{Name: name, Passed: false, Detail: "expected the raw document to be sanitized into a single key"}
	}

	// The planner, seeing only documentKey, forwards it verbatim as a
	// send_money recipient -- exactly what an injected instruction hopes a
	// careless planner will do. The Mediator resolves it back to the raw
	// document text, which is not a trusted IBAN, so the allowlist rejects
	// it before the bank is ever touched.
	transferArgs := map[string]interface{}{
		"account_id": "default",
		"recipient":  documentKey,
		"amount":     100.0,
	}
	err = m.BeforeTool(ctx, "send_money", transferArgs)
	if err == nil {
		return ScenarioResult{Name: name, Passed: false, Detail: "expected the injected instruction to be rejected as an untrusted recipient"}
	}
	return ScenarioResult{Name: name, Passed: true, Detail: err.Error()}
}

// RunFinalResolution exercises seed scenario 6: a planner's final text
// carrying two key tokens is rewritten with their resolved values.
func RunFinalResolution(ctx context.Context) ScenarioResult {
	const name = "final resolution"

	m, err := mediator.New("scenario-6")
	if err != nil {
		return ScenarioResult{Name: name, Err: err}
	}

	weatherArgs := map[string]interface{}{"city": "Paris"}
	if err := m.BeforeTool(ctx, "get_weather", weatherArgs); err != nil {
		return ScenarioResult{Name: name, Err: err}
	}
	sanitized, err := m.AfterTool(ctx, "get_weather", weatherArgs,
		map[string]interface{}{"temperature": 18.0, "condition": "cloudy"})
	if err != nil {
		return ScenarioResult{Name: name, Err: err}
	}
	out := sanitized.(map[string]interface{})
	tempKey := out["temperature"].(string)
	condKey := out["condition"].(string)

	final, err := m.AfterAgent(ctx, fmt.Sprintf(
		"The temperature in Paris is %s degrees, condition %s.", tempKey, condKey))
	if err != nil {
		return ScenarioResult{Name: name, Err: err}
	}

	want := "The temperature in Paris is 18.0 degrees, condition cloudy."
	if final != want {
		return ScenarioResult{Name: name, Passed: false, Detail: fmt.Sprintf("expected %q, got %q", want, final)}
	}
	return ScenarioResult{Name: name, Passed: true, Detail: final}
}

// RunAll runs every seed scenario in order and returns their results.
func RunAll(ctx context.Context) []ScenarioResult {
	bank := NewBank()
	return []ScenarioResult{
		RunAllowlistedTransferSucceeds(ctx, bank),
		RunNonAllowlistedTransferBlocked(ctx, NewBank()),
		RunAmountLimitTransferBlocked(ctx, NewBank()),
		RunQLLMSchemaMismatchRejected(ctx),
		RunInjectionIgnored(ctx, NewBank()),
		RunFinalResolution(ctx),
	}
}
