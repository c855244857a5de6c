package checks

import (
	"context"
	"fmt"

	"flow-validation-be/pkg/validation"
)

// checkSelect validates a select request against the catalog the transaction's
// on_search persisted: every selected quantity must stay within the offered
// maximum. With no catalog on record the quantity assertions are skipped.
func checkSelect(ctx context.Context, env *validation.CheckContext, rec *validation.Record) (*validation.Result, error) {
	res := validation.NewResult()
	contextChecks(res, rec)

	items, ok := rec.Request.Slice("message", "order", "items")
	if !ok || len(items) == 0 {
		res.Fail("select order has no items")
		return res, nil
	}

	txn := rec.TransactionID()
	if env.Store == nil || txn == "" {
		return res, nil
	}

	var offered catalog
	found, err := env.Store.GetJSON(ctx, env.SessionID, txn, keyCatalogItems, &offered)
	if err != nil || !found {
		return res, nil
	}

	withinLimits := true
	for _, raw := range items {
		item, ok := validation.AsDocument(raw)
		if !ok {
			continue
		}
		id := item.String("id")
		selected, hasSelected := item.Int("quantity", "selected", "count")
		if id == "" || !hasSelected {
			continue
		}
		entry, offered := offered[id]
		if !offered {
			continue
		}
		if selected > entry.MaxQuantity {
			withinLimits = false
			res.Fail(fmt.Sprintf("item %s selected quantity %d exceeds the offered maximum %d", id, selected, entry.MaxQuantity))
		}
	}
	if withinLimits {
		res.Pass("all selected quantities are within the offered catalog limits")
	}

	return res, nil
}
