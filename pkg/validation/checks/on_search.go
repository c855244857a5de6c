package checks

import (
	"context"
	"fmt"

	"flow-validation-be/pkg/validation"
)

// Expected fulfillment kinds per transaction ordinal: the first search of a
// flow asks for routes, the second for trips on a chosen route.
const (
	fulfillmentTypeRoute = "ROUTE"
	fulfillmentTypeTrip  = "TRIP"
)

// checkOnSearch validates a catalog callback. It partitions assertions by
// the transaction's ordinal within the flow, checks item quantity bounds,
// and persists the offered catalog and stop codes for later messages to
// cross-reference.
func checkOnSearch(ctx context.Context, env *validation.CheckContext, rec *validation.Record) (*validation.Result, error) {
	res := validation.NewResult()
	contextChecks(res, rec)

	providers, ok := rec.Request.Slice("message", "catalog", "providers")
	if !ok || len(providers) == 0 {
		res.Fail("catalog has no providers")
		return res, nil
	}

	ordinal, _ := transactionOrdinal(ctx, env, rec)

	items := make(catalog)
	var stopCodes []string
	fulfillmentIDs := make(map[string]int)
	quantityOK := true
	typeOK := true

	for _, rawProvider := range providers {
		provider, ok := validation.AsDocument(rawProvider)
		if !ok {
			continue
		}

		for _, rawItem := range sliceOf(provider, "items") {
			item, ok := validation.AsDocument(rawItem)
			if !ok {
				continue
			}
			id := item.String("id")
			min, hasMin := item.Int("quantity", "minimum", "count")
			max, hasMax := item.Int("quantity", "maximum", "count")
			if hasMin && hasMax && min >= max {
				quantityOK = false
				res.Fail(fmt.Sprintf("item %s minimum quantity %d must be strictly less than maximum %d", id, min, max))
			}
			if id != "" && hasMax {
				items[id] = catalogItem{MinQuantity: min, MaxQuantity: max}
			}
		}

		for _, rawFulfillment := range sliceOf(provider, "fulfillments") {
			fulfillment, ok := validation.AsDocument(rawFulfillment)
			if !ok {
				continue
			}
			fulfillmentIDs[fulfillment.String("id")]++

			fType := fulfillment.String("type")
			switch ordinal {
			case 1:
				if fType != fulfillmentTypeRoute {
					typeOK = false
					res.Fail(fmt.Sprintf("fulfillment %s in the first transaction must be of type %s, found %q",
						fulfillment.String("id"), fulfillmentTypeRoute, fType))
				}
			case 2:
				if fType != fulfillmentTypeTrip {
					typeOK = false
					res.Fail(fmt.Sprintf("fulfillment %s in the second transaction must be of type %s, found %q",
						fulfillment.String("id"), fulfillmentTypeTrip, fType))
				}
			}

			stopCodes = append(stopCodes, collectStops(env, res, fulfillment)...)
		}
	}

	if quantityOK && len(items) > 0 {
		res.Pass("all catalog item quantity bounds are valid")
	}
	if typeOK && ordinal >= 1 && ordinal <= 2 {
		res.Pass(fmt.Sprintf("all fulfillments for transaction %d have the expected type", ordinal))
	}

	if env.Rules.EnforceUniqueFulfillmentIDs {
		for id, n := range fulfillmentIDs {
			if id != "" && n > 1 {
				res.Fail(fmt.Sprintf("fulfillment id %s appears %d times in the catalog", id, n))
			}
		}
	}

	// Persist offers for later cross-reference by search/select. A store
	// failure here degrades those later checks, it does not fail this one.
	if env.Store != nil && rec.TransactionID() != "" {
		_ = env.Store.SetJSON(ctx, env.SessionID, rec.TransactionID(), keyCatalogItems, items)
		_ = env.Store.SetJSON(ctx, env.SessionID, rec.TransactionID(), keyStopCodes, stopCodes)
	}

	return res, nil
}

// collectStops gathers a fulfillment's stop codes, applying the optional
// GPS-precision and parent-stop rules along the way.
func collectStops(env *validation.CheckContext, res *validation.Result, fulfillment validation.Document) []string {
	stops, ok := fulfillment.Slice("stops")
	if !ok {
		return nil
	}

	ids := make(map[string]struct{}, len(stops))
	docs := make([]validation.Document, 0, len(stops))
	var codes []string
	for _, raw := range stops {
		stop, ok := validation.AsDocument(raw)
		if !ok {
			continue
		}
		docs = append(docs, stop)
		if id := stop.String("id"); id != "" {
			ids[id] = struct{}{}
		}
		if code := stop.String("location", "descriptor", "code"); code != "" {
			codes = append(codes, code)
		}
	}

	for _, stop := range docs {
		if env.Rules.EnforceGPSPrecision {
			if gps := stop.String("location", "gps"); gps != "" && !gpsHasPrecision(gps, 6) {
				res.Fail(fmt.Sprintf("stop %s gps %q has fewer than 6 decimal places", stop.String("id"), gps))
			}
		}
		if env.Rules.EnforceParentStopLinkage {
			if parent := stop.String("parent_stop_id"); parent != "" {
				if _, ok := ids[parent]; !ok {
					res.Fail(fmt.Sprintf("stop %s references unknown parent stop %s", stop.String("id"), parent))
				}
			}
		}
	}

	return codes
}

func sliceOf(doc validation.Document, key string) []any {
	s, _ := doc.Slice(key)
	return s
}
