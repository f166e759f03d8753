// ABOUTME: Economic indicators used to judge rent increases (CPI and CAO wage index)
// ABOUTME: Static provider with logged reads and a per-run memoized snapshot
package facts

import (
	"sync"

	"github.com/charmbracelet/log"

	"github.com/harper/legal-crew/internal/logging"
)

const (
	// DefaultCPI is the consumer price index percentage used until a live source exists
	DefaultCPI = 2.0

	// DefaultCAOIndex is the collective labour agreement wage index percentage
	DefaultCAOIndex = 3.0

	// DefaultBaseIncrease is added to CPI to obtain the legal increase limit
	DefaultBaseIncrease = 1.0
)

// Provider supplies the two indicators. Reads take no input and never fail.
type Provider interface {
	CPI() float64
	CAOIndex() float64
}

// Static returns fixed indicator values and logs every read
type Static struct {
	cpi    float64
	cao    float64
	logger *log.Logger
}

// NewStatic creates a provider returning the given values
func NewStatic(cpi, cao float64, logger *log.Logger) *Static {
	return &Static{
		cpi:    cpi,
		cao:    cao,
		logger: logging.Component(logger, "Indicators"),
	}
}

// NewDefault creates a provider with the default CPI and CAO values
func NewDefault(logger *log.Logger) *Static {
	return NewStatic(DefaultCPI, DefaultCAOIndex, logger)
}

// CPI returns the consumer price index percentage
func (s *Static) CPI() float64 {
	s.logger.Info("Getting current CPI", "value", s.cpi)
	return s.cpi
}

// CAOIndex returns the CAO wage index percentage
func (s *Static) CAOIndex() float64 {
	s.logger.Info("Getting current CAO index", "value", s.cao)
	return s.cao
}

// LegalIncrease returns CPI plus the base percentage
func LegalIncrease(p Provider, base float64) float64 {
	return p.CPI() + base
}

// Snapshot memoizes one reading of each indicator for the duration of a run
type Snapshot struct {
	provider Provider
	cpiOnce  sync.Once
	caoOnce  sync.Once
	cpi      float64
	cao      float64
}

// Take wraps a provider so that each indicator is read at most once
func Take(p Provider) *Snapshot {
	return &Snapshot{provider: p}
}

// CPI returns the memoized CPI reading
func (s *Snapshot) CPI() float64 {
	s.cpiOnce.Do(func() { s.cpi = s.provider.CPI() })
	return s.cpi
}

// CAOIndex returns the memoized CAO reading
func (s *Snapshot) CAOIndex() float64 {
	s.caoOnce.Do(func() { s.cao = s.provider.CAOIndex() })
	return s.cao
}
