package validation

import (
	"context"
	"fmt"
	"strings"

	"flow-validation-be/internal/pkg/logger"
	"flow-validation-be/pkg/correlation"
)

// Dispatcher validates one message end-to-end: generic response-schema check,
// leaf-validator resolution and invocation, and normalization of failures
// into failed entries. Dispatch never aborts the flow; every outcome becomes
// data on the Result.
type Dispatcher struct {
	registry *Registry
	store    correlation.Store
	rules    Rules
	logger   logger.ILogger
}

func NewDispatcher(registry *Registry, store correlation.Store, rules Rules, log logger.ILogger) *Dispatcher {
	return &Dispatcher{
		registry: registry,
		store:    store,
		rules:    rules,
		logger:   log,
	}
}

// Dispatch validates a single record for the given domain and action.
func (d *Dispatcher) Dispatch(ctx context.Context, domain string, rec *Record, action, sessionID, flowID string) *Result {
	result := NewResult()
	action = CanonicalAction(action)

	// Generic envelope check first, so schema problems surface even when the
	// leaf validator cannot be resolved.
	if inner := rec.InnerResponse(); inner != nil {
		result.Response = map[string]any(inner)
		if ack := CheckAck(inner); !ack.IsValid {
			result.Fail("Invalid response schema: " + strings.Join(ack.Errors, "; "))
		}
	}

	fn, err := d.registry.Resolve(domain, rec.Version, action)
	if err != nil {
		d.warn("dispatcher", "could not resolve check", map[string]interface{}{
			"domain": domain, "version": rec.Version, "action": action, "error": err.Error(),
		})
		result.Fail(fmt.Sprintf("Incorrect version for %s", action))
		result.EnsureValidated(action)
		return result
	}

	leaf, err := d.invoke(ctx, fn, sessionID, flowID, rec)
	if err != nil {
		result.Fail(fmt.Sprintf("Test function error: %s", err.Error()))
	} else {
		result.Merge(leaf)
	}

	result.EnsureValidated(action)
	return result
}

// invoke runs the leaf validator, converting a panic into an error so one
// misbehaving check cannot take down the whole report.
func (d *Dispatcher) invoke(ctx context.Context, fn CheckFunc, sessionID, flowID string, rec *Record) (res *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			res, err = nil, fmt.Errorf("panic: %v", r)
		}
	}()

	env := &CheckContext{
		SessionID: sessionID,
		FlowID:    flowID,
		Store:     d.store,
		Rules:     d.rules,
	}
	return fn(ctx, env, rec)
}

func (d *Dispatcher) warn(module, msg string, details map[string]interface{}) {
	if d.logger != nil {
		d.logger.Warn(module, msg, details)
	}
}
