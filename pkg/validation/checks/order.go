package checks

import (
	"context"
	"fmt"

	"flow-validation-be/pkg/validation"
)

// checkOnSelect validates the quote callback: the quote must carry a priced
// total, and with the breakup-titles rule on, every breakup line needs a
// title.
func checkOnSelect(ctx context.Context, env *validation.CheckContext, rec *validation.Record) (*validation.Result, error) {
	res := validation.NewResult()
	contextChecks(res, rec)

	if rec.Request.String("message", "order", "quote", "price", "value") == "" {
		res.Fail("on_select quote has no total price value")
	} else {
		res.Pass("quote carries a priced total")
	}

	checkBreakupTitles(env, res, rec, "on_select")
	return res, nil
}

// checkInit validates an init request: the order must carry billing details.
func checkInit(ctx context.Context, env *validation.CheckContext, rec *validation.Record) (*validation.Result, error) {
	res := validation.NewResult()
	contextChecks(res, rec)

	if !rec.Request.Has("message", "order", "billing") {
		res.Fail("init order has no billing details")
	}
	return res, nil
}

// checkOnInit validates the payment-terms callback.
func checkOnInit(ctx context.Context, env *validation.CheckContext, rec *validation.Record) (*validation.Result, error) {
	res := validation.NewResult()
	contextChecks(res, rec)

	if !rec.Request.Has("message", "order", "payments") && !rec.Request.Has("message", "order", "payment") {
		res.Fail("on_init order has no payment terms")
	}

	checkBreakupTitles(env, res, rec, "on_init")
	return res, nil
}

// checkConfirm validates a confirm request.
func checkConfirm(ctx context.Context, env *validation.CheckContext, rec *validation.Record) (*validation.Result, error) {
	res := validation.NewResult()
	contextChecks(res, rec)

	if !rec.Request.Has("message", "order") {
		res.Fail("confirm has no order")
	}
	return res, nil
}

// checkOnConfirm validates the order-created callback: the order must now
// have an id assigned by the provider platform.
func checkOnConfirm(ctx context.Context, env *validation.CheckContext, rec *validation.Record) (*validation.Result, error) {
	res := validation.NewResult()
	contextChecks(res, rec)

	if rec.Request.String("message", "order", "id") == "" {
		res.Fail("on_confirm order has no id")
	} else {
		res.Pass("confirmed order carries a provider order id")
	}
	return res, nil
}

// checkBreakupTitles applies the optional breakup-titles rule to the quote
// on a callback.
func checkBreakupTitles(env *validation.CheckContext, res *validation.Result, rec *validation.Record, action string) {
	if !env.Rules.EnforceBreakupTitles {
		return
	}
	breakup, ok := rec.Request.Slice("message", "order", "quote", "breakup")
	if !ok {
		return
	}
	for i, raw := range breakup {
		line, ok := validation.AsDocument(raw)
		if !ok {
			continue
		}
		if line.String("title") == "" {
			res.Fail(fmt.Sprintf("%s quote breakup line %d has no title", action, i+1))
		}
	}
}
