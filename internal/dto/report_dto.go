package dto

// UtilityFlowResult is the per-flow outcome of the utility-report mode: the
// external log-validation service's verdict, or a typed failure when the
// call itself did not succeed.
type UtilityFlowResult struct {
	Success  bool          `json:"success"`
	Response any           `json:"response,omitempty"`
	Error    *UtilityError `json:"error,omitempty"`
	Details  string        `json:"details"`
}

// UtilityError captures an HTTP-level or transport-level failure from the
// external validation service.
type UtilityError struct {
	Status  int    `json:"status,omitempty"`
	Message string `json:"message,omitempty"`
	Body    string `json:"body,omitempty"`
}

// UtilityServiceRequest is the body posted to the external validation
// service, one call per flow.
type UtilityServiceRequest struct {
	FlowId   string `json:"flowId"`
	Payloads []any  `json:"payloads"`
}

// ReportGeneratedMessage is the watermill payload for a completed
// validation run, consumed by the audit service.
type ReportGeneratedMessage struct {
	SessionId    string `json:"session_id"`
	FlowCount    int    `json:"flow_count"`
	InvalidFlows int    `json:"invalid_flows"`
}
