package validation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestValidator() *SequenceValidator {
	r := NewRegistry()
	for action := range knownActions {
		r.Register("test", DefaultVersion, action, stubCheck("ok"))
	}
	return NewSequenceValidator(NewDispatcher(r, nil, Rules{}, nil), nil)
}

func flowRecords(flowId string, actions ...string) []*Record {
	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	records := make([]*Record, 0, len(actions))
	for i, action := range actions {
		records = append(records, testRecord(flowId, action, base.Add(time.Duration(i)*time.Minute)))
	}
	return records
}

func TestSequenceValidator(t *testing.T) {
	ctx := context.Background()
	v := newTestValidator()

	t.Run("flow matching the default template is valid", func(t *testing.T) {
		records := flowRecords("flow-a", DefaultTemplate.Actions...)

		fr := v.ValidateFlow(ctx, "session", "flow-a", records, DefaultTemplate)

		assert.True(t, fr.ValidSequence)
		assert.Empty(t, fr.Errors)
		assert.Len(t, fr.Messages, len(DefaultTemplate.Actions))
	})

	t.Run("first divergence is reported once and dispatch continues", func(t *testing.T) {
		// on_search skipped entirely: select arrives where on_search was expected.
		records := flowRecords("flow-a", ActionSearch, ActionSelect)

		fr := v.ValidateFlow(ctx, "session", "flow-a", records, DefaultTemplate)

		assert.False(t, fr.ValidSequence)
		require.Len(t, fr.Errors, 1)
		assert.Contains(t, fr.Errors[0], ActionOnSearch)
		// Both messages still dispatched.
		assert.Contains(t, fr.Messages, "search_1")
		assert.Contains(t, fr.Messages, "select_1")
	})

	t.Run("expected select is phrased as select or init", func(t *testing.T) {
		records := flowRecords("flow-a",
			ActionSearch, ActionOnSearch, ActionSearch, ActionOnSearch, ActionConfirm)

		fr := v.ValidateFlow(ctx, "session", "flow-a", records, DefaultTemplate)

		require.Len(t, fr.Errors, 1)
		assert.Contains(t, fr.Errors[0], "select or init")
	})

	t.Run("short flow reports the missing expected action", func(t *testing.T) {
		records := flowRecords("flow-a", ActionSearch, ActionOnSearch)

		fr := v.ValidateFlow(ctx, "session", "flow-a", records, DefaultTemplate)

		assert.False(t, fr.ValidSequence)
		require.Len(t, fr.Errors, 1)
		assert.Contains(t, fr.Errors[0], ActionSearch)
	})

	t.Run("unrecognized action is skipped silently", func(t *testing.T) {
		actions := append(append([]string{}, DefaultTemplate.Actions...), "update_quote")
		records := flowRecords("flow-a", actions...)

		fr := v.ValidateFlow(ctx, "session", "flow-a", records, DefaultTemplate)

		assert.True(t, fr.ValidSequence)
		assert.Empty(t, fr.Errors)
		assert.Len(t, fr.Messages, len(DefaultTemplate.Actions))
		for key := range fr.Messages {
			assert.NotContains(t, key, "update_quote")
		}
	})

	t.Run("repeated actions get occurrence-numbered keys", func(t *testing.T) {
		records := flowRecords("flow-a", ActionSearch, ActionOnSearch, ActionSearch)

		fr := v.ValidateFlow(ctx, "session", "flow-a", records, DefaultTemplate)

		assert.Contains(t, fr.Messages, "search_1")
		assert.Contains(t, fr.Messages, "search_2")
		assert.Contains(t, fr.Messages, "on_search_1")
	})

	t.Run("messages beyond the template length are still dispatched", func(t *testing.T) {
		actions := append(append([]string{}, DefaultTemplate.Actions...), ActionStatus, ActionOnStatus)
		records := flowRecords("flow-a", actions...)

		fr := v.ValidateFlow(ctx, "session", "flow-a", records, DefaultTemplate)

		assert.True(t, fr.ValidSequence)
		assert.Contains(t, fr.Messages, "status_1")
		assert.Contains(t, fr.Messages, "on_status_1")
	})

	t.Run("validation is idempotent", func(t *testing.T) {
		records := flowRecords("flow-a", ActionSearch, ActionSelect, ActionConfirm)

		first := v.ValidateFlow(ctx, "session", "flow-a", records, DefaultTemplate)
		second := v.ValidateFlow(ctx, "session", "flow-a", records, DefaultTemplate)

		assert.Equal(t, first, second)
	})

	t.Run("ValidateAll covers every flow", func(t *testing.T) {
		flows := map[string][]*Record{
			"flow-a": flowRecords("flow-a", DefaultTemplate.Actions...),
			"flow-b": flowRecords("flow-b", ActionSearch, ActionSelect),
			"flow-c": flowRecords("flow-c", ActionSearch),
		}

		report := v.ValidateAll(ctx, "session", flows, DefaultTemplate)

		require.Len(t, report, 3)
		assert.True(t, report["flow-a"].ValidSequence)
		assert.False(t, report["flow-b"].ValidSequence)
		assert.False(t, report["flow-c"].ValidSequence)
		assert.Equal(t, 2, report.InvalidSequenceCount())
	})
}
