package render

import (
	"bytes"
	"html/template"
	"sort"

	"flow-validation-be/pkg/validation"
)

// HTMLRenderer turns a validation report into the HTML page the report
// endpoint serves. Pure transformation: parse once, render per request.
type HTMLRenderer struct {
	tmpl *template.Template
}

func NewHTMLRenderer() (*HTMLRenderer, error) {
	tmpl, err := template.New("report").Parse(reportTemplate)
	if err != nil {
		return nil, err
	}
	return &HTMLRenderer{tmpl: tmpl}, nil
}

type reportView struct {
	SessionID string
	Flows     []flowView
}

type flowView struct {
	FlowID        string
	ValidSequence bool
	Errors        []string
	Messages      []messageView
}

type messageView struct {
	Key    string
	Passed []string
	Failed []string
}

// Render produces the report page. Flows and message keys are sorted so the
// same report always renders the same markup.
func (r *HTMLRenderer) Render(sessionID string, report validation.Report) ([]byte, error) {
	view := reportView{SessionID: sessionID}

	flowIDs := make([]string, 0, len(report))
	for id := range report {
		flowIDs = append(flowIDs, id)
	}
	sort.Strings(flowIDs)

	for _, id := range flowIDs {
		fr := report[id]
		fv := flowView{
			FlowID:        fr.FlowID,
			ValidSequence: fr.ValidSequence,
			Errors:        fr.Errors,
		}

		keys := make([]string, 0, len(fr.Messages))
		for k := range fr.Messages {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			msg := fr.Messages[k]
			fv.Messages = append(fv.Messages, messageView{
				Key:    k,
				Passed: msg.Passed,
				Failed: msg.Failed,
			})
		}

		view.Flows = append(view.Flows, fv)
	}

	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, view); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

const reportTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Validation Report - {{.SessionID}}</title>
<style>
body { font-family: sans-serif; margin: 2rem; color: #222; }
.flow { border: 1px solid #ccc; border-radius: 6px; padding: 1rem; margin-bottom: 1.5rem; }
.flow h2 { margin-top: 0; }
.valid { color: #1a7f37; }
.invalid { color: #b42318; }
.errors li { color: #b42318; }
.message { margin: 0.75rem 0; padding-left: 1rem; border-left: 3px solid #eee; }
.passed li { color: #1a7f37; }
.failed li { color: #b42318; }
</style>
</head>
<body>
<h1>Validation Report</h1>
<p>Session: <code>{{.SessionID}}</code></p>
{{range .Flows}}
<div class="flow">
<h2>Flow {{.FlowID}}</h2>
{{if .ValidSequence}}<p class="valid">Sequence of actions is valid</p>{{else}}<p class="invalid">Sequence of actions is invalid</p>{{end}}
{{if .Errors}}<ul class="errors">{{range .Errors}}<li>{{.}}</li>{{end}}</ul>{{end}}
{{range .Messages}}
<div class="message">
<h3>{{.Key}}</h3>
{{if .Passed}}<ul class="passed">{{range .Passed}}<li>{{.}}</li>{{end}}</ul>{{end}}
{{if .Failed}}<ul class="failed">{{range .Failed}}<li>{{.}}</li>{{end}}</ul>{{end}}
</div>
{{end}}
</div>
{{else}}
<p>No flows captured for this session.</p>
{{end}}
</body>
</html>
`
