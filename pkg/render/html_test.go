package render

import (
	"strings"
	"testing"

	"flow-validation-be/pkg/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleReport() validation.Report {
	return validation.Report{
		"flow-b": &validation.FlowReport{
			FlowID:        "flow-b",
			ValidSequence: false,
			Errors:        []string{"Wrong sequence of actions: expected on_search at step 2, found select"},
			Messages: map[string]*validation.Result{
				"search_1": {Passed: []string{"Validated search"}},
				"select_1": {
					Passed: []string{"Validated select"},
					Failed: []string{"item item-1 selected quantity 6 exceeds the offered maximum 5"},
				},
			},
		},
		"flow-a": &validation.FlowReport{
			FlowID:        "flow-a",
			ValidSequence: true,
			Messages: map[string]*validation.Result{
				"search_1": {Passed: []string{"Validated search"}},
				"search_2": {Passed: []string{"Validated search"}},
			},
		},
	}
}

func TestHTMLRenderer(t *testing.T) {
	r, err := NewHTMLRenderer()
	require.NoError(t, err)

	t.Run("renders flows, verdicts, and entries", func(t *testing.T) {
		out, err := r.Render("session-1", sampleReport())
		require.NoError(t, err)

		html := string(out)
		assert.Contains(t, html, "<code>session-1</code>")
		assert.Contains(t, html, "Flow flow-a")
		assert.Contains(t, html, "Flow flow-b")
		assert.Contains(t, html, "Sequence of actions is valid")
		assert.Contains(t, html, "Sequence of actions is invalid")
		assert.Contains(t, html, "Wrong sequence of actions: expected on_search at step 2, found select")
		assert.Contains(t, html, "exceeds the offered maximum 5")
	})

	t.Run("flows and message keys render in sorted order", func(t *testing.T) {
		out, err := r.Render("session-1", sampleReport())
		require.NoError(t, err)

		html := string(out)
		assert.Less(t, strings.Index(html, "Flow flow-a"), strings.Index(html, "Flow flow-b"))
		assert.Less(t, strings.Index(html, "search_1"), strings.Index(html, "search_2"))
	})

	t.Run("escapes markup in entries", func(t *testing.T) {
		report := validation.Report{
			"flow-x": &validation.FlowReport{
				FlowID:        "flow-x",
				ValidSequence: true,
				Messages: map[string]*validation.Result{
					"search_1": {Failed: []string{`<script>alert("x")</script>`}},
				},
			},
		}

		out, err := r.Render("session-1", report)
		require.NoError(t, err)
		assert.NotContains(t, string(out), "<script>")
	})

	t.Run("empty report renders a placeholder", func(t *testing.T) {
		out, err := r.Render("session-1", validation.Report{})
		require.NoError(t, err)
		assert.Contains(t, string(out), "No flows captured for this session.")
	})
}
