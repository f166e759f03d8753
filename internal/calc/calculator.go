// ABOUTME: Percentage arithmetic used to validate a rent increase against a legal limit
// ABOUTME: Pure functions with logging; non-positive baselines are rejected
package calc

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/harper/legal-crew/internal/logging"
)

// ErrInvalidArgument is returned when the original amount is not positive
var ErrInvalidArgument = errors.New("invalid argument")

// Calculator performs the percentage operations and logs each result
type Calculator struct {
	logger *log.Logger
}

// New creates a Calculator
func New(logger *log.Logger) *Calculator {
	return &Calculator{logger: logging.Component(logger, "Calculator")}
}

// PercentageChange returns (new - original) / original * 100
func (c *Calculator) PercentageChange(original, updated float64) (float64, error) {
	if original <= 0 {
		return 0, fmt.Errorf("%w: original amount must be greater than 0, got %v", ErrInvalidArgument, original)
	}
	change := (updated - original) / original * 100
	c.logger.Info("Calculated percentage change", "change", change, "from", original, "to", updated)
	return change, nil
}

// WithinLimit reports whether change does not exceed limit
func (c *Calculator) WithinLimit(change, limit float64) bool {
	legal := change <= limit
	c.logger.Info("Checked increase against limit", "change", change, "limit", limit, "legal", legal)
	return legal
}

// ApplyChange returns original * (1 + change/100)
func (c *Calculator) ApplyChange(original, change float64) (float64, error) {
	if original <= 0 {
		return 0, fmt.Errorf("%w: original amount must be greater than 0, got %v", ErrInvalidArgument, original)
	}
	updated := original * (1 + change/100)
	c.logger.Info("Calculated new amount", "amount", updated, "from", original, "change", change)
	return updated, nil
}
