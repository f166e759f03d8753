// ABOUTME: Exposes the calculator operations as callable tools for invoked roles
// ABOUTME: Each tool decodes JSON arguments and returns a short JSON result
package calc

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/harper/legal-crew/internal/llm"
)

// Tool names as seen by the invoked role
const (
	ToolPercentageChange   = "percentage_change"
	ToolIsIncreaseLegal    = "is_increase_legal"
	ToolCalculateNewAmount = "calculate_new_amount"
)

type percentageArgs struct {
	OriginalAmount *float64 `json:"original_amount"`
	NewAmount      *float64 `json:"new_amount"`
}

type limitArgs struct {
	PercentageChange *float64 `json:"percentage_change"`
	LegalLimit       *float64 `json:"legal_limit"`
}

type applyArgs struct {
	OriginalAmount   *float64 `json:"original_amount"`
	PercentageChange *float64 `json:"percentage_change"`
}

func numberProp(description string) map[string]any {
	return map[string]any{"type": "number", "description": description}
}

func schema(required []string, props map[string]any) map[string]any {
	return map[string]any{
		"type":       "object",
		"properties": props,
		"required":   required,
	}
}

func decode(args json.RawMessage, v any) error {
	if len(args) == 0 {
		args = json.RawMessage("{}")
	}
	if err := json.Unmarshal(args, v); err != nil {
		return fmt.Errorf("%w: malformed arguments: %v", ErrInvalidArgument, err)
	}
	return nil
}

func missing(name string) error {
	return fmt.Errorf("%w: %s is required", ErrInvalidArgument, name)
}

func result(v map[string]any) (string, error) {
	out, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// Tools returns the three calculator operations as llm tools
func (c *Calculator) Tools() []llm.Tool {
	return []llm.Tool{
		{
			Name:        ToolPercentageChange,
			Description: "Calculate the percentage change between an original amount and a new amount. Positive for an increase.",
			Parameters: schema([]string{"original_amount", "new_amount"}, map[string]any{
				"original_amount": numberProp("The original amount, must be greater than 0"),
				"new_amount":      numberProp("The new amount"),
			}),
			Call: func(ctx context.Context, raw json.RawMessage) (string, error) {
				var args percentageArgs
				if err := decode(raw, &args); err != nil {
					return "", err
				}
				if args.OriginalAmount == nil {
					return "", missing("original_amount")
				}
				if args.NewAmount == nil {
					return "", missing("new_amount")
				}
				change, err := c.PercentageChange(*args.OriginalAmount, *args.NewAmount)
				if err != nil {
					return "", err
				}
				return result(map[string]any{"percentage_change": change})
			},
		},
		{
			Name:        ToolIsIncreaseLegal,
			Description: "Check whether a percentage increase is within the legal limit (equal to the limit is legal).",
			Parameters: schema([]string{"percentage_change", "legal_limit"}, map[string]any{
				"percentage_change": numberProp("The percentage increase"),
				"legal_limit":       numberProp("The maximum allowed percentage increase"),
			}),
			Call: func(ctx context.Context, raw json.RawMessage) (string, error) {
				var args limitArgs
				if err := decode(raw, &args); err != nil {
					return "", err
				}
				if args.PercentageChange == nil {
					return "", missing("percentage_change")
				}
				if args.LegalLimit == nil {
					return "", missing("legal_limit")
				}
				legal := c.WithinLimit(*args.PercentageChange, *args.LegalLimit)
				return result(map[string]any{"legal": legal})
			},
		},
		{
			Name:        ToolCalculateNewAmount,
			Description: "Calculate the new amount after applying a percentage change to an original amount.",
			Parameters: schema([]string{"original_amount", "percentage_change"}, map[string]any{
				"original_amount":   numberProp("The original amount, must be greater than 0"),
				"percentage_change": numberProp("The percentage change to apply"),
			}),
			Call: func(ctx context.Context, raw json.RawMessage) (string, error) {
				var args applyArgs
				if err := decode(raw, &args); err != nil {
					return "", err
				}
				if args.OriginalAmount == nil {
					return "", missing("original_amount")
				}
				if args.PercentageChange == nil {
					return "", missing("percentage_change")
				}
				amount, err := c.ApplyChange(*args.OriginalAmount, *args.PercentageChange)
				if err != nil {
					return "", err
				}
				return result(map[string]any{"new_amount": amount})
			},
		},
	}
}
