package validation

// Aggregate assembles per-flow reports into the final report structure.
// Pure assembly, no computation; rendering consumes the result as-is.
func Aggregate(flowReports ...*FlowReport) Report {
	report := make(Report, len(flowReports))
	for _, fr := range flowReports {
		if fr != nil {
			report[fr.FlowID] = fr
		}
	}
	return report
}

// InvalidSequenceCount counts flows whose action order broke the template.
// Used by the report-generated event payload.
func (r Report) InvalidSequenceCount() int {
	n := 0
	for _, fr := range r {
		if !fr.ValidSequence {
			n++
		}
	}
	return n
}
