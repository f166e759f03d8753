// ABOUTME: Role invoker boundary: a role plus a task in, free text out
// ABOUTME: Defines Role, callable Tool and the Invoker interface used by the crew
package llm

import (
	"context"
	"encoding/json"
	"errors"
)

// ErrUnavailable is returned when the role invoker cannot produce output
var ErrUnavailable = errors.New("role invoker unavailable")

// Role is a named persona with a goal and a backstory
type Role struct {
	ID        string
	Name      string
	Goal      string
	Backstory string
}

// Tool is a function the invoked role may call while working on its task
type Tool struct {
	Name        string
	Description string
	// Parameters is a JSON schema object describing the arguments
	Parameters map[string]any
	Call       func(ctx context.Context, args json.RawMessage) (string, error)
}

// Invoker runs a role against a task and returns its text output.
// Implementations own their timeouts and retries.
type Invoker interface {
	Invoke(ctx context.Context, role Role, task string, tools ...Tool) (string, error)
}

// InvokerFunc adapts a function to the Invoker interface
type InvokerFunc func(ctx context.Context, role Role, task string, tools ...Tool) (string, error)

// Invoke calls f
func (f InvokerFunc) Invoke(ctx context.Context, role Role, task string, tools ...Tool) (string, error) {
	return f(ctx, role, task, tools...)
}
