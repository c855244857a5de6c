package checks

import (
	"context"
	"fmt"

	"flow-validation-be/pkg/validation"
)

// checkCancel validates a cancel request: it must name the order being
// cancelled and a cancellation reason.
func checkCancel(ctx context.Context, env *validation.CheckContext, rec *validation.Record) (*validation.Result, error) {
	res := validation.NewResult()
	contextChecks(res, rec)

	if rec.Request.String("message", "order_id") == "" {
		res.Fail("cancel has no order_id")
	}
	if rec.Request.String("message", "cancellation_reason_id") == "" {
		res.Fail("cancel has no cancellation_reason_id")
	}
	return res, nil
}

// checkOnCancel validates the cancellation callback: the order must be in a
// cancelled state.
func checkOnCancel(ctx context.Context, env *validation.CheckContext, rec *validation.Record) (*validation.Result, error) {
	res := validation.NewResult()
	contextChecks(res, rec)

	if status := rec.Request.String("message", "order", "status"); status != "CANCELLED" {
		res.Fail(fmt.Sprintf("on_cancel order status must be CANCELLED, found %q", status))
	} else {
		res.Pass("order is cancelled")
	}
	return res, nil
}

// checkStatus validates a status request.
func checkStatus(ctx context.Context, env *validation.CheckContext, rec *validation.Record) (*validation.Result, error) {
	res := validation.NewResult()
	contextChecks(res, rec)

	if rec.Request.String("message", "order_id") == "" {
		res.Fail("status has no order_id")
	}
	return res, nil
}

// checkOnStatus validates the status callback.
func checkOnStatus(ctx context.Context, env *validation.CheckContext, rec *validation.Record) (*validation.Result, error) {
	res := validation.NewResult()
	contextChecks(res, rec)

	if !rec.Request.Has("message", "order") {
		res.Fail("on_status has no order")
	}
	return res, nil
}

// checkUpdate and checkOnUpdate run the shared structural checks only.
func checkUpdate(ctx context.Context, env *validation.CheckContext, rec *validation.Record) (*validation.Result, error) {
	res := validation.NewResult()
	contextChecks(res, rec)
	return res, nil
}

func checkOnUpdate(ctx context.Context, env *validation.CheckContext, rec *validation.Record) (*validation.Result, error) {
	res := validation.NewResult()
	contextChecks(res, rec)
	return res, nil
}
