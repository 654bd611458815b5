package qatests

import (
	"sync"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/esg-insight/qa-contract-tests/apiservice"
	"github.com/esg-insight/qa-contract-tests/config"
	"github.com/esg-insight/qa-contract-tests/contract"
	"github.com/esg-insight/qa-contract-tests/framework"
	"github.com/esg-insight/qa-contract-tests/servicedef"
)

type environment struct {
	api      *apiservice.Client
	aiml     *apiservice.Client
	sessions *apiservice.SessionProvider
	config   config.Config

	mu         sync.Mutex
	seenJobIDs map[string]string // jobId -> test that first saw it
}

// T represents a test or subtest in the QA contract suite.
//
// It implements the same basic functionality as Go's testing.T, but in an
// environment that is outside of the Go test runner, with per-test debug
// logging provided by the framework package. To make test assertions, use
// the assert and require packages, passing the *T as if it were a *testing.T.
//
// T also carries the domain helpers shared by the scenarios: clients for the
// two service boundaries, cached role tokens, and assertion helpers for the
// common response shapes. Each T gets client copies bound to its own debug
// buffer, so request logs land with the test that made them.
type T struct {
	context *framework.Context
	env     *environment
	api     *apiservice.Client
	aiml    *apiservice.Client
}

func newTestScope(context *framework.Context, env *environment) *T {
	return &T{
		context: context,
		env:     env,
		api:     env.api.WithLogger(context.DebugLogger()),
		aiml:    env.aiml.WithLogger(context.DebugLogger()),
	}
}

// Errorf is called by assertions to log a test failure. It does not cause an
// immediate exit.
func (t *T) Errorf(format string, args ...interface{}) {
	t.context.Errorf(format, args...)
}

// FailNow is called by assertions when a test should fail and immediately
// exit. The methods in the require package call FailNow.
func (t *T) FailNow() {
	t.context.FailNow()
}

// Run runs a subtest, equivalent to the Run method of testing.T.
func (t *T) Run(name string, action func(*T)) {
	t.context.Run(name, func(c *framework.Context) {
		action(newTestScope(c, t.env))
	})
}

// Debug logs debug output for the test; it is shown according to the
// -debug/-debug-all flags.
func (t *T) Debug(format string, args ...interface{}) {
	t.context.Debug(format, args...)
}

// Config returns the harness configuration.
func (t *T) Config() config.Config {
	return t.env.config
}

// AnalystToken returns the cached analyst bearer token, logging in first if
// necessary. The test fails immediately if login does not succeed.
func (t *T) AnalystToken() string {
	token, err := t.env.sessions.Token(apiservice.RoleAnalyst)
	require.NoError(t, err)
	return token
}

// AdminToken is AnalystToken for the admin user.
func (t *T) AdminToken() string {
	token, err := t.env.sessions.Token(apiservice.RoleAdmin)
	require.NoError(t, err)
	return token
}

// Login sends a login request with arbitrary credentials and returns the raw
// response. It bypasses the token cache.
func (t *T) Login(req servicedef.LoginRequest) apiservice.Response {
	resp, err := t.api.Login(req)
	require.NoError(t, err)
	return resp
}

// Logout sends a logout request with the given token.
func (t *T) Logout(token string) apiservice.Response {
	resp, err := t.api.Logout(token)
	require.NoError(t, err)
	return resp
}

// SubmitQuestion submits a question and returns the raw response. Transport
// failures end the test; HTTP-level failures do not, so tests can assert on
// error statuses.
func (t *T) SubmitQuestion(req servicedef.SubmitRequest, token string) apiservice.Response {
	resp, err := t.api.SubmitQuestion(req, token)
	require.NoError(t, err)
	return resp
}

// SubmitRaw submits an arbitrary request body to the QA endpoint.
func (t *T) SubmitRaw(payload []byte, token string) apiservice.Response {
	resp, err := t.api.SubmitRawQuestion(payload, token)
	require.NoError(t, err)
	return resp
}

// JobStatus fetches the status of a job and returns the raw response.
func (t *T) JobStatus(jobID, token string) apiservice.Response {
	resp, err := t.api.JobStatus(jobID, token)
	require.NoError(t, err)
	return resp
}

// RecentAnswers fetches the recent answers list.
func (t *T) RecentAnswers(token string) apiservice.Response {
	resp, err := t.api.RecentAnswers(token)
	require.NoError(t, err)
	return resp
}

// UploadCompanies uploads a companies file.
func (t *T) UploadCompanies(fileName, contentType, content, token string) apiservice.Response {
	resp, err := t.api.UploadCompanies(fileName, contentType, []byte(content), token)
	require.NoError(t, err)
	return resp
}

// Answer calls the downstream answer service.
func (t *T) Answer(req servicedef.AnswerRequest) apiservice.Response {
	resp, err := t.aiml.Answer(req)
	require.NoError(t, err)
	return resp
}

// RequireSubmissionAck asserts the 202 submission contract on resp and
// returns the decoded acknowledgment: a syntactically valid jobId that has
// never been seen before in this run, status "queued", and an ISO-8601
// submission timestamp.
func (t *T) RequireSubmissionAck(resp apiservice.Response) servicedef.SubmissionAck {
	require.Equal(t, 202, resp.Status, "unexpected submission status, body: %s", string(resp.Body))
	var ack servicedef.SubmissionAck
	require.NoError(t, resp.Decode(&ack))
	require.True(t, contract.ValidUUID(ack.JobID), "jobId %q is not a valid UUID", ack.JobID)
	assert.Equal(t, servicedef.JobStatusQueued, ack.Status)
	assert.True(t, contract.ValidTimestamp(ack.SubmittedAt),
		"submittedAt %q is not an ISO-8601 timestamp", ack.SubmittedAt)
	t.recordJobID(ack.JobID)
	return ack
}

// recordJobID enforces run-wide jobId uniqueness.
func (t *T) recordJobID(jobID string) {
	t.env.mu.Lock()
	firstSeen, dup := t.env.seenJobIDs[jobID]
	if !dup {
		t.env.seenJobIDs[jobID] = t.context.ID().String()
	}
	t.env.mu.Unlock()
	if dup {
		t.Errorf("jobId %s was already returned for an earlier submission (in test %q)", jobID, firstSeen)
	}
}

// SubmitDefaultQuestion submits the standard question/company pair as the
// analyst and requires a valid acknowledgment.
func (t *T) SubmitDefaultQuestion() servicedef.SubmissionAck {
	resp := t.SubmitQuestion(servicedef.SubmitRequest{
		Question: t.env.config.TestData.ValidQuestion,
		Company:  t.env.config.TestData.ValidCompany,
	}, t.AnalystToken())
	return t.RequireSubmissionAck(resp)
}

// RequireJobView asserts the 200 job-status contract on resp and returns the
// decoded view: the jobId echoed, a known status value, and an ISO-8601
// timestamp.
func (t *T) RequireJobView(resp apiservice.Response, jobID string) servicedef.JobView {
	require.Equal(t, 200, resp.Status, "unexpected job status code, body: %s", string(resp.Body))
	var job servicedef.JobView
	require.NoError(t, resp.Decode(&job))
	assert.Equal(t, jobID, job.JobID, "response did not echo the requested jobId")
	assert.True(t, contract.ValidJobStatus(job.Status), "unknown job status %q", job.Status)
	assert.True(t, contract.ValidTimestamp(job.SubmittedAt),
		"submittedAt %q is not an ISO-8601 timestamp", job.SubmittedAt)
	return job
}

// AwaitTerminal polls the job until done or failed, within the configured
// deadline. A timeout fails the test, reported distinctly from a job the
// server marked as failed.
func (t *T) AwaitTerminal(jobID, token string) servicedef.JobView {
	poller := apiservice.NewPoller(t.api, t.env.config.PollInterval(), t.env.config.PollTimeout(),
		t.context.DebugLogger())
	job, err := poller.AwaitTerminal(jobID, token)
	require.NoError(t, err)
	return job
}

// RequireErrorBody asserts that the response body is a JSON object with a
// string "error" field and returns the message.
func (t *T) RequireErrorBody(resp apiservice.Response) string {
	msg, ok := contract.ErrorMessage(resp.JSON())
	require.True(t, ok, "response body has no error message: %s", string(resp.Body))
	return msg
}

// RequireResult asserts the Result shape: answer text present, confidence in
// the closed unit interval, ISO-8601 timestamp.
func (t *T) RequireResult(result *servicedef.Result) {
	require.NotNil(t, result, "terminal job has no result")
	assert.True(t, contract.ValidConfidence(result.Confidence),
		"confidence %v is outside [0,1]", result.Confidence)
	assert.True(t, contract.ValidTimestamp(result.Timestamp),
		"result timestamp %q is not an ISO-8601 timestamp", result.Timestamp)
}
