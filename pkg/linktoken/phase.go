package linktoken

import "strings"

// Phase tags which workflow step a token authorizes.
type Phase string

const (
	// PhaseDraft is the unset phase of the customer-info draft token
	PhaseDraft        Phase = ""
	PhaseAdminPickup  Phase = "admin_pickup"
	PhaseAdminDropoff Phase = "admin_dropoff"
	PhaseOut          Phase = "out"
	PhaseIn           Phase = "in"
	PhaseSigned       Phase = "signed"

	// phaseLegacyPickupAdmin was written by older releases instead of admin_pickup
	phaseLegacyPickupAdmin Phase = "pickupAdmin"
)

// Canonical maps legacy aliases onto their current phase.
func (p Phase) Canonical() Phase {
	if p == phaseLegacyPickupAdmin {
		return PhaseAdminPickup
	}
	return p
}

// Known reports whether p is one of the closed set of phases, aliases included.
func (p Phase) Known() bool {
	switch p.Canonical() {
	case PhaseDraft, PhaseAdminPickup, PhaseAdminDropoff, PhaseOut, PhaseIn, PhaseSigned:
		return true
	}
	return false
}

func (p Phase) String() string {
	if p == PhaseDraft {
		return "customer_info"
	}
	return string(p)
}

// PhaseSet is the set of phases an endpoint accepts.
type PhaseSet []Phase

// Accept builds a PhaseSet.
func Accept(phases ...Phase) PhaseSet {
	return PhaseSet(phases)
}

// Contains compares canonical forms, so a legacy alias matches its phase.
func (s PhaseSet) Contains(p Phase) bool {
	p = p.Canonical()
	for _, accepted := range s {
		if accepted.Canonical() == p {
			return true
		}
	}
	return false
}

func (s PhaseSet) String() string {
	names := make([]string, 0, len(s))
	for _, p := range s {
		names = append(names, p.String())
	}
	return strings.Join(names, "|")
}
