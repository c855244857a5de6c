// Package checks holds the leaf validators: one small check function per
// protocol action, registered into the validation registry per configured
// domain. Cross-message checks read and write the correlation store; when
// the data they depend on has not been written yet, they skip the assertion
// instead of failing.
package checks

import (
	"context"
	"strings"

	"flow-validation-be/pkg/validation"
)

// Correlation store keys shared between checks.
const (
	keyCatalogItems = "catalogItems"
	keyStopCodes    = "stopCodes"
)

// catalogItem is the per-item quantity envelope persisted by on_search and
// read back by select.
type catalogItem struct {
	MinQuantity int `json:"min"`
	MaxQuantity int `json:"max"`
}

type catalog map[string]catalogItem

// contextChecks runs the structural assertions shared by every action: the
// request context must identify the transaction, the message, and the
// moment of capture. Fail-only: passing adds no entries, so a check with
// nothing else to say still gets its generic "Validated <action>" entry.
func contextChecks(res *validation.Result, rec *validation.Record) {
	if rec.TransactionID() == "" {
		res.Fail("context.transaction_id is missing or empty")
	}
	if rec.Request.String("context", "message_id") == "" {
		res.Fail("context.message_id is missing or empty")
	}
	if rec.Request.String("context", "timestamp") == "" {
		res.Fail("context.timestamp is missing or empty")
	}
	if strings.HasPrefix(rec.Action, "on_") && rec.Request.String("context", "bpp_id") == "" {
		res.Fail("context.bpp_id is missing or empty on a callback action")
	}
}

// transactionOrdinal records the transaction in the flow history and returns
// its 1-based position, with the full history. Returns 0 when the store is
// unavailable or the record carries no transaction id; callers skip
// ordinal-dependent assertions in that case.
func transactionOrdinal(ctx context.Context, env *validation.CheckContext, rec *validation.Record) (int, []string) {
	txn := rec.TransactionID()
	if env.Store == nil || txn == "" {
		return 0, nil
	}
	if err := env.Store.AppendTransactionID(ctx, env.SessionID, env.FlowID, txn); err != nil {
		return 0, nil
	}
	ids, err := env.Store.TransactionIDs(ctx, env.SessionID, env.FlowID)
	if err != nil {
		return 0, nil
	}
	for i, id := range ids {
		if id == txn {
			return i + 1, ids
		}
	}
	return 0, ids
}

// gpsHasPrecision reports whether both coordinates of a "lat,lng" string
// carry at least n decimal places.
func gpsHasPrecision(gps string, n int) bool {
	coords := strings.Split(gps, ",")
	if len(coords) != 2 {
		return false
	}
	for _, coord := range coords {
		parts := strings.SplitN(strings.TrimSpace(coord), ".", 2)
		if len(parts) != 2 || len(parts[1]) < n {
			return false
		}
	}
	return true
}
