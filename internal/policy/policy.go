// Package policy implements the PolicyGate: pluggable predicates over
// resolved tool arguments that may deny a tool invocation before it runs.
package policy

// Gate is a predicate over a tool name and its fully resolved arguments. It
// returns a non-nil error (always a *errors.PolicyViolationError) to deny
// the call, or nil to allow it.
type Gate interface {
	Check(toolName string, resolvedArgs map[string]interface{}) error
}

// GateFunc adapts a plain function to the Gate interface.
type GateFunc func(toolName string, resolvedArgs map[string]interface{}) error

// Check implements Gate.
func (f GateFunc) Check(toolName string, resolvedArgs map[string]interface{}) error {
	return f(toolName, resolvedArgs)
}

// Composite runs a sequence of gates in installation order. Composition is
// deny-wins: the first gate to deny stops evaluation and its reason is
// reported; a call is allowed only if every gate allows it.
type Composite struct {
	gates []Gate
}

// NewComposite returns a Composite evaluating gates in the given order.
func NewComposite(gates ...Gate) *Composite {
	return &Composite{gates: gates}
}

// Check implements Gate.
func (c *Composite) Check(toolName string, resolvedArgs map[string]interface{}) error {
	for _, g := range c.gates {
		if err := g.Check(toolName, resolvedArgs); err != nil {
			return err
		}
	}
	return nil
}

// Add appends gates to the composite, evaluated after any already installed.
func (c *Composite) Add(gates ...Gate) {
	c.gates = append(c.gates, gates...)
}
