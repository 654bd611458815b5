// Package servicedef defines the request and response shapes of the service
// under test, as the contract specifies them on the wire.
package servicedef

import (
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// Job status values. A job is terminal once it is done or failed; its result,
// if any, is fixed from that point on.
const (
	JobStatusQueued  = "queued"
	JobStatusRunning = "running"
	JobStatusDone    = "done"
	JobStatusFailed  = "failed"
)

// MaxQuestionLength is the longest question the service must accept. Anything
// longer must be rejected with 400 or 413.
const MaxQuestionLength = 10000

// IsTerminalJobStatus returns true for the statuses that end the polling loop.
func IsTerminalJobStatus(status string) bool {
	return status == JobStatusDone || status == JobStatusFailed
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// LoginResponse is the 200 body from POST /api/v1/auth/login. ExpiresIn is
// deliberately loose: the contract requires its presence but not its type.
type LoginResponse struct {
	Token     string        `json:"token"`
	User      User          `json:"user"`
	ExpiresIn ldvalue.Value `json:"expiresIn"`
}

type LogoutResponse struct {
	Message string `json:"message"`
}

type SubmitRequest struct {
	Question string `json:"question"`
	Company  string `json:"company"`
}

// SubmissionAck is the 202 body from POST /api/v1/qa.
type SubmissionAck struct {
	JobID       string `json:"jobId"`
	Status      string `json:"status"`
	SubmittedAt string `json:"submittedAt"`
}

// JobView is the 200 body from GET /api/v1/qa/{jobId}. Result is only
// present once the job is done.
type JobView struct {
	JobID       string  `json:"jobId"`
	Status      string  `json:"status"`
	SubmittedAt string  `json:"submittedAt"`
	Result      *Result `json:"result,omitempty"`
}

// Result is a completed answer. It is immutable once attached to a job.
type Result struct {
	Question   string  `json:"question"`
	Company    string  `json:"company"`
	Answer     string  `json:"answer"`
	Confidence float64 `json:"confidence"`
	Timestamp  string  `json:"timestamp"`
}

// RecentAnswersResponse is the 200 body from GET /api/v1/qa; at most 10
// answers, order unspecified.
type RecentAnswersResponse struct {
	Answers []Result `json:"answers"`
}

// UploadOutcome is the 200 body from POST /api/v1/admin/companies/upload.
type UploadOutcome struct {
	Message       string   `json:"message"`
	ProcessedRows int      `json:"processedRows"`
	Errors        []string `json:"errors"`
}

type AnswerRequest struct {
	Question string `json:"question"`
	Company  string `json:"company"`
}

// AnswerResponse is the 200 body from POST /aiml/answer.
type AnswerResponse struct {
	Answer     string  `json:"answer"`
	Confidence float64 `json:"confidence"`
}

// ErrorResponse is the shape every server-reported error must take.
type ErrorResponse struct {
	Error string `json:"error"`
}
