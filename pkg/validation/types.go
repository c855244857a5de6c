package validation

import (
	"strings"
	"time"
)

// DefaultVersion is the sentinel protocol version used when the request
// context carries no version, and the fallback slot in the check registry.
const DefaultVersion = "default"

// Protocol actions. Every captured exchange is labelled with one of these;
// anything else is ignored by the engine.
const (
	ActionSearch    = "search"
	ActionOnSearch  = "on_search"
	ActionSelect    = "select"
	ActionOnSelect  = "on_select"
	ActionInit      = "init"
	ActionOnInit    = "on_init"
	ActionConfirm   = "confirm"
	ActionOnConfirm = "on_confirm"
	ActionCancel    = "cancel"
	ActionOnCancel  = "on_cancel"
	ActionUpdate    = "update"
	ActionOnUpdate  = "on_update"
	ActionStatus    = "status"
	ActionOnStatus  = "on_status"
)

var knownActions = map[string]struct{}{
	ActionSearch:    {},
	ActionOnSearch:  {},
	ActionSelect:    {},
	ActionOnSelect:  {},
	ActionInit:      {},
	ActionOnInit:    {},
	ActionConfirm:   {},
	ActionOnConfirm: {},
	ActionCancel:    {},
	ActionOnCancel:  {},
	ActionUpdate:    {},
	ActionOnUpdate:  {},
	ActionStatus:    {},
	ActionOnStatus:  {},
}

// CanonicalAction lowercases and trims an action label. Action matching is
// case-insensitive everywhere in the engine.
func CanonicalAction(action string) string {
	return strings.ToLower(strings.TrimSpace(action))
}

// IsKnownAction reports whether the (canonicalized) action is part of the
// protocol vocabulary.
func IsKnownAction(action string) bool {
	_, ok := knownActions[CanonicalAction(action)]
	return ok
}

// Record is one captured protocol exchange: the request envelope, the
// response envelope (nil if no response was observed), and the labels the
// engine groups and dispatches on.
type Record struct {
	FlowID    string
	Action    string
	CreatedAt time.Time
	Domain    string
	Version   string
	Request   Document
	Response  Document
}

// NewRecord builds a Record, canonicalizing the action and extracting domain
// and protocol version from the request envelope's context. Version falls
// back to "default" when the context does not carry one.
func NewRecord(flowID, action string, createdAt time.Time, request, response Document) *Record {
	version := request.String("context", "core_version")
	if version == "" {
		version = request.String("context", "version")
	}
	if version == "" {
		version = DefaultVersion
	}

	return &Record{
		FlowID:    flowID,
		Action:    CanonicalAction(action),
		CreatedAt: createdAt,
		Domain:    request.String("context", "domain"),
		Version:   version,
		Request:   request,
		Response:  response,
	}
}

// TransactionID reads the transaction id from the request context.
func (r *Record) TransactionID() string {
	return r.Request.String("context", "transaction_id")
}

// InnerResponse returns the response envelope's inner response payload.
// Some capture backends wrap the protocol response in a "response" field;
// older ones store it bare. Nil when no response was observed.
func (r *Record) InnerResponse() Document {
	if r.Response == nil {
		return nil
	}
	if inner, ok := r.Response.Map("response"); ok {
		return inner
	}
	return r.Response
}

// Template is a named, ordered list of expected actions for a flow.
type Template struct {
	Name    string
	Actions []string
}

// Sequence presets. The report service currently always validates against
// the default template; the variants exist as reusable presets.
var (
	DefaultTemplate = Template{
		Name: "default",
		Actions: []string{
			ActionSearch, ActionOnSearch,
			ActionSearch, ActionOnSearch,
			ActionSelect, ActionOnSelect,
			ActionInit, ActionOnInit,
			ActionConfirm, ActionOnConfirm,
		},
	}

	CancelTemplate = Template{
		Name:    "cancel",
		Actions: append(append([]string{}, DefaultTemplate.Actions...), ActionCancel, ActionOnCancel),
	}

	StatusTemplate = Template{
		Name:    "status",
		Actions: append(append([]string{}, DefaultTemplate.Actions...), ActionStatus, ActionOnStatus),
	}
)

// Result is the outcome of validating a single message: ordered lists of
// passed and failed assertion descriptions, plus an optional echo of the
// response payload for the report.
type Result struct {
	Response any      `json:"response,omitempty"`
	Passed   []string `json:"passed"`
	Failed   []string `json:"failed"`
}

func NewResult() *Result {
	return &Result{Passed: []string{}, Failed: []string{}}
}

func (r *Result) Pass(msg string) {
	r.Passed = append(r.Passed, msg)
}

func (r *Result) Fail(msg string) {
	r.Failed = append(r.Failed, msg)
}

// Merge appends another result's entries onto this one, keeping execution
// order. The other result's response echo wins if this one has none.
func (r *Result) Merge(other *Result) {
	if other == nil {
		return
	}
	r.Passed = append(r.Passed, other.Passed...)
	r.Failed = append(r.Failed, other.Failed...)
	if r.Response == nil {
		r.Response = other.Response
	}
}

// EnsureValidated guarantees the passed list is never empty: the report
// renderer relies on this to tell "validated, nothing to check" apart from
// "not validated at all".
func (r *Result) EnsureValidated(action string) {
	if len(r.Passed) == 0 {
		r.Pass("Validated " + action)
	}
}

// FlowReport is the per-flow validation outcome.
type FlowReport struct {
	FlowID        string             `json:"flowId"`
	ValidSequence bool               `json:"validSequence"`
	Errors        []string           `json:"errors"`
	Messages      map[string]*Result `json:"messages"`
}

// Report is the final structure handed to rendering: one FlowReport per flow.
type Report map[string]*FlowReport
