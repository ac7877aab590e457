package models

// SubmissionRequest is the payload posted to the analysis backend
type SubmissionRequest struct {
	Code string `json:"code"`
}

// AnalysisResponse is the backend's answer to a successful submission
type AnalysisResponse struct {
	Code    string `json:"code"`    // Echo of the submitted text
	Length  int    `json:"length"`  // Character count as reported by the service
	Message string `json:"message"` // Markdown analysis narrative
}

type SubmissionKind int

const (
	Idle SubmissionKind = iota
	Pending
	Succeeded
	Failed
)

func (k SubmissionKind) String() string {
	switch k {
	case Idle:
		return "idle"
	case Pending:
		return "pending"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// SubmissionState is the single live view-state of the submission lifecycle.
// Response is set only when Kind is Succeeded, Error only when Kind is Failed.
type SubmissionState struct {
	Kind     SubmissionKind
	Response *AnalysisResponse
	Error    string
}

func IdleState() SubmissionState {
	return SubmissionState{Kind: Idle}
}

func PendingState() SubmissionState {
	return SubmissionState{Kind: Pending}
}

func SucceededState(resp AnalysisResponse) SubmissionState {
	return SubmissionState{Kind: Succeeded, Response: &resp}
}

func FailedState(message string) SubmissionState {
	return SubmissionState{Kind: Failed, Error: message}
}

func (s SubmissionState) IsPending() bool {
	return s.Kind == Pending
}
