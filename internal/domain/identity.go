package domain

// Plan is the entitlement tier reported by the identity provider.
type Plan string

const (
	// PlanFree is the default tier.
	PlanFree Plan = "free"
	// PlanPremium unlocks the summarize and chat features.
	PlanPremium Plan = "premium"
)

// Identity is the resolved caller of a request.
type Identity struct {
	UserID string
	Plan   Plan
}

// IsPremium reports whether the identity may use premium-gated features.
func (i Identity) IsPremium() bool {
	return i.Plan == PlanPremium
}
