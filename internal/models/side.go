// ABOUTME: Side identifies the two opposing parties in a tenancy dispute
// ABOUTME: Advocate A argues for the tenant, advocate B for the landlord
package models

// Side is one of the two opposing parties
type Side string

const (
	// SideTenant is the protected party (advocate A)
	SideTenant Side = "tenant"

	// SideLandlord is the counter-party (advocate B)
	SideLandlord Side = "landlord"

	// SideNone means neither party
	SideNone Side = ""
)

// Opponent returns the other party
func (s Side) Opponent() Side {
	switch s {
	case SideTenant:
		return SideLandlord
	case SideLandlord:
		return SideTenant
	default:
		return SideNone
	}
}
