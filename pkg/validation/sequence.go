package validation

import (
	"context"
	"fmt"
	"sync"

	"flow-validation-be/internal/pkg/logger"
)

// SequenceValidator walks each flow against an expected action template and
// drives per-message dispatch.
type SequenceValidator struct {
	dispatcher *Dispatcher
	logger     logger.ILogger
}

func NewSequenceValidator(dispatcher *Dispatcher, log logger.ILogger) *SequenceValidator {
	return &SequenceValidator{dispatcher: dispatcher, logger: log}
}

// ValidateAll validates every flow in the grouped input. Flows are
// independent, so they run concurrently; messages within one flow run
// strictly in capture order because later checks read correlation data
// written by earlier ones.
func (v *SequenceValidator) ValidateAll(ctx context.Context, sessionID string, flows map[string][]*Record, template Template) Report {
	report := make(Report, len(flows))

	var mu sync.Mutex
	var wg sync.WaitGroup
	for flowID, records := range flows {
		wg.Add(1)
		go func(flowID string, records []*Record) {
			defer wg.Done()
			fr := v.ValidateFlow(ctx, sessionID, flowID, records, template)
			mu.Lock()
			report[flowID] = fr
			mu.Unlock()
		}(flowID, records)
	}
	wg.Wait()

	return report
}

// ValidateFlow produces the FlowReport for one ordered flow.
func (v *SequenceValidator) ValidateFlow(ctx context.Context, sessionID, flowID string, records []*Record, template Template) *FlowReport {
	fr := &FlowReport{
		FlowID:        flowID,
		ValidSequence: true,
		Errors:        []string{},
		Messages:      make(map[string]*Result),
	}

	// Pass 1: positional comparison against the template. Stops at the first
	// divergence; a broken sequence only aborts this check, not dispatch.
	for i, expected := range template.Actions {
		actual := ""
		if i < len(records) {
			actual = records[i].Action
		}
		if actual != expected {
			fr.ValidSequence = false
			fr.Errors = append(fr.Errors, sequenceMismatch(i, expected, actual))
			break
		}
	}

	// Pass 2: dispatch every recognized message, in order. Unrecognized
	// actions are skipped silently; a single message's dispatch blowing up
	// is logged and skipped without aborting the flow.
	occurrences := make(map[string]int)
	for _, rec := range records {
		if !IsKnownAction(rec.Action) {
			continue
		}
		result := v.dispatcher.Dispatch(ctx, rec.Domain, rec, rec.Action, sessionID, flowID)
		if result == nil {
			if v.logger != nil {
				v.logger.Warn("sequence", "dispatch returned no result, skipping message", map[string]interface{}{
					"flowId": flowID, "action": rec.Action,
				})
			}
			continue
		}
		occurrences[rec.Action]++
		fr.Messages[fmt.Sprintf("%s_%d", rec.Action, occurrences[rec.Action])] = result
	}

	return fr
}

func sequenceMismatch(index int, expected, actual string) string {
	name := expected
	if expected == ActionSelect {
		// Either action satisfies the template at this step.
		name = "select or init"
	}
	if actual == "" {
		return fmt.Sprintf("Wrong sequence of actions: expected %s at step %d, but the flow ended", name, index+1)
	}
	return fmt.Sprintf("Wrong sequence of actions: expected %s at step %d, found %s", name, index+1, actual)
}
