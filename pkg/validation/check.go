package validation

import (
	"context"

	"flow-validation-be/pkg/correlation"
)

// CheckFunc is the leaf-validator contract: validate one record and return a
// structured result. A non-nil error means the check itself could not run
// (not that an assertion failed); the dispatcher converts it into a failed
// entry on the combined result.
type CheckFunc func(ctx context.Context, env *CheckContext, rec *Record) (*Result, error)

// CheckContext carries the per-invocation scope a leaf validator may need
// for cross-message checks.
type CheckContext struct {
	SessionID string
	FlowID    string
	Store     correlation.Store
	Rules     Rules
}

// Rules toggles optional assertions. These mirror checks that exist in the
// capture tooling but are not enforced today; each defaults to off and can
// be enabled independently once product intent is confirmed.
type Rules struct {
	EnforceGPSPrecision         bool
	EnforceBreakupTitles        bool
	EnforceUniqueFulfillmentIDs bool
	EnforceParentStopLinkage    bool
}
