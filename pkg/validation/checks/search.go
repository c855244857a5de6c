package checks

import (
	"context"
	"fmt"

	"flow-validation-be/pkg/validation"
)

// checkSearch validates a search request. On the second search of a flow it
// cross-references the intent's stops against the stop codes the first
// on_search offered for the flow's first transaction.
func checkSearch(ctx context.Context, env *validation.CheckContext, rec *validation.Record) (*validation.Result, error) {
	res := validation.NewResult()
	contextChecks(res, rec)

	ordinal, history := transactionOrdinal(ctx, env, rec)
	if ordinal != 2 || len(history) == 0 {
		return res, nil
	}

	var offered []string
	found, err := env.Store.GetJSON(ctx, env.SessionID, history[0], keyStopCodes, &offered)
	if err != nil || !found {
		// No catalog recorded yet for this flow; nothing to compare against.
		return res, nil
	}

	offeredSet := make(map[string]struct{}, len(offered))
	for _, code := range offered {
		offeredSet[code] = struct{}{}
	}

	stops, ok := rec.Request.Slice("message", "intent", "fulfillment", "stops")
	if !ok {
		return res, nil
	}

	allOffered := true
	for _, raw := range stops {
		stop, ok := validation.AsDocument(raw)
		if !ok {
			continue
		}
		code := stop.String("location", "descriptor", "code")
		if code == "" {
			continue
		}
		if _, ok := offeredSet[code]; !ok {
			allOffered = false
			res.Fail(fmt.Sprintf("stop %s in the second search was not offered in the first on_search", code))
		}
	}
	if allOffered && len(stops) > 0 {
		res.Pass("all stops in the second search were offered in the first on_search")
	}

	return res, nil
}
