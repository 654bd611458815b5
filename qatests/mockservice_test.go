package qatests

import (
	"encoding/json"
	"io"
	"mime"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/esg-insight/qa-contract-tests/servicedef"
)

// mockQAService is an in-process implementation of the service contract,
// used to verify that the suite passes against a conforming server and
// fails against a broken one.
type mockQAService struct {
	mu     sync.Mutex
	users  map[string]mockUser // by email
	tokens map[string]string   // token -> email
	jobs   map[string]*mockJob
	// answers completed in this run, most recent last, keyed by user email
	answers map[string][]servicedef.Result

	// knobs for deliberately breaking the contract in tests
	answerConfidence float64
	failJobs         bool
}

type mockUser struct {
	id       string
	password string
	role     string
}

type mockJob struct {
	owner       string
	question    string
	company     string
	submittedAt string
	polls       int
	result      *servicedef.Result
}

func newMockQAService() *mockQAService {
	return &mockQAService{
		users: map[string]mockUser{
			"analyst@test.com": {id: uuid.NewString(), password: "TestPass123!", role: "Analyst"},
			"admin@test.com":   {id: uuid.NewString(), password: "AdminPass123!", role: "Admin"},
		},
		tokens:           make(map[string]string),
		jobs:             make(map[string]*mockJob),
		answers:          make(map[string][]servicedef.Result),
		answerConfidence: 0.87,
	}
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	data, _ := json.Marshal(body)
	w.Write(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, servicedef.ErrorResponse{Error: message})
}

func (m *mockQAService) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch {
	case r.Method == "POST" && r.URL.Path == "/api/v1/auth/login":
		m.handleLogin(w, r)
	case r.Method == "POST" && r.URL.Path == "/api/v1/auth/logout":
		m.handleLogout(w, r)
	case r.Method == "POST" && r.URL.Path == "/api/v1/qa":
		m.handleSubmit(w, r)
	case r.Method == "GET" && r.URL.Path == "/api/v1/qa":
		m.handleRecentAnswers(w, r)
	case r.Method == "GET" && strings.HasPrefix(r.URL.Path, "/api/v1/qa/"):
		m.handleJobStatus(w, r)
	case r.Method == "POST" && r.URL.Path == "/api/v1/admin/companies/upload":
		m.handleUpload(w, r)
	case r.Method == "POST" && r.URL.Path == "/aiml/answer":
		m.handleAnswer(w, r)
	default:
		writeError(w, 404, "no such endpoint")
	}
}

// authenticate returns the email for the request's bearer token, or "" after
// writing a 401.
func (m *mockQAService) authenticate(w http.ResponseWriter, r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		writeError(w, 401, "missing or malformed Authorization header")
		return ""
	}
	m.mu.Lock()
	email, ok := m.tokens[strings.TrimPrefix(auth, "Bearer ")]
	m.mu.Unlock()
	if !ok {
		writeError(w, 401, "invalid or expired token")
		return ""
	}
	return email
}

func (m *mockQAService) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req servicedef.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, 400, "malformed request body")
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[req.Email]
	if !ok || user.password != req.Password {
		writeError(w, 401, "Invalid credentials")
		return
	}
	token := uuid.NewString()
	m.tokens[token] = req.Email
	writeJSON(w, 200, map[string]interface{}{
		"token": token,
		"user": servicedef.User{
			ID:    user.id,
			Email: req.Email,
			Role:  user.role,
		},
		"expiresIn": 3600,
	})
}

func (m *mockQAService) handleLogout(w http.ResponseWriter, r *http.Request) {
	email := m.authenticate(w, r)
	if email == "" {
		return
	}
	auth := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	m.mu.Lock()
	delete(m.tokens, auth)
	m.mu.Unlock()
	writeJSON(w, 200, servicedef.LogoutResponse{Message: "Logout successful"})
}

func (m *mockQAService) handleSubmit(w http.ResponseWriter, r *http.Request) {
	email := m.authenticate(w, r)
	if email == "" {
		return
	}
	var raw map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		writeError(w, 400, "malformed request body")
		return
	}
	var question, company string
	if v, ok := raw["question"]; ok {
		_ = json.Unmarshal(v, &question)
	}
	companyField, hasCompany := raw["company"]
	if hasCompany {
		_ = json.Unmarshal(companyField, &company)
	}
	if question == "" {
		writeError(w, 400, "question must not be empty")
		return
	}
	if !hasCompany || company == "" {
		writeError(w, 400, "company is required")
		return
	}
	if len(question) > servicedef.MaxQuestionLength {
		writeError(w, 413, "question exceeds the maximum length")
		return
	}

	jobID := uuid.NewString()
	submittedAt := time.Now().UTC().Format(time.RFC3339)
	m.mu.Lock()
	m.jobs[jobID] = &mockJob{
		owner:       email,
		question:    question,
		company:     company,
		submittedAt: submittedAt,
	}
	m.mu.Unlock()

	writeJSON(w, 202, servicedef.SubmissionAck{
		JobID:       jobID,
		Status:      servicedef.JobStatusQueued,
		SubmittedAt: submittedAt,
	})
}

func (m *mockQAService) handleJobStatus(w http.ResponseWriter, r *http.Request) {
	email := m.authenticate(w, r)
	if email == "" {
		return
	}
	jobID := strings.TrimPrefix(r.URL.Path, "/api/v1/qa/")
	if _, err := uuid.Parse(jobID); err != nil {
		writeError(w, 400, "jobId is not a valid UUID")
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	job, ok := m.jobs[jobID]
	if !ok {
		writeError(w, 404, "no such job")
		return
	}

	// Jobs advance one lifecycle step per status query: queued, then
	// running, then terminal.
	job.polls++
	view := servicedef.JobView{JobID: jobID, SubmittedAt: job.submittedAt}
	switch {
	case job.polls <= 1:
		view.Status = servicedef.JobStatusQueued
	case job.polls == 2:
		view.Status = servicedef.JobStatusRunning
	case m.failJobs:
		view.Status = servicedef.JobStatusFailed
	default:
		view.Status = servicedef.JobStatusDone
		if job.result == nil {
			job.result = &servicedef.Result{
				Question:   job.question,
				Company:    job.company,
				Answer:     "Scope 1 emissions were 12,400 tCO2e in the last reporting year.",
				Confidence: m.answerConfidence,
				Timestamp:  time.Now().UTC().Format(time.RFC3339),
			}
			m.answers[job.owner] = append(m.answers[job.owner], *job.result)
		}
		view.Result = job.result
	}
	writeJSON(w, 200, view)
}

func (m *mockQAService) handleRecentAnswers(w http.ResponseWriter, r *http.Request) {
	email := m.authenticate(w, r)
	if email == "" {
		return
	}
	m.mu.Lock()
	all := m.answers[email]
	if len(all) > 10 {
		all = all[len(all)-10:]
	}
	answers := append([]servicedef.Result{}, all...)
	m.mu.Unlock()
	writeJSON(w, 200, map[string]interface{}{"answers": answers})
}

func (m *mockQAService) handleUpload(w http.ResponseWriter, r *http.Request) {
	email := m.authenticate(w, r)
	if email == "" {
		return
	}
	m.mu.Lock()
	role := m.users[email].role
	m.mu.Unlock()
	if role != "Admin" {
		writeError(w, 403, "admin role required")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, 400, "missing file")
		return
	}
	defer file.Close()
	mediaType, _, _ := mime.ParseMediaType(header.Header.Get("Content-Type"))
	if mediaType != "text/csv" {
		writeError(w, 415, "file must be in CSV format")
		return
	}

	content, err := io.ReadAll(file)
	if err != nil {
		writeError(w, 400, "unreadable file")
		return
	}
	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	dataRows := 0
	if len(lines) > 1 {
		dataRows = len(lines) - 1
	}
	writeJSON(w, 200, servicedef.UploadOutcome{
		Message:       "Upload processed",
		ProcessedRows: dataRows,
		Errors:        []string{},
	})
}

func (m *mockQAService) handleAnswer(w http.ResponseWriter, r *http.Request) {
	var req servicedef.AnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, 400, "malformed request body")
		return
	}
	writeJSON(w, 200, servicedef.AnswerResponse{
		Answer:     "Based on the latest filings, emissions decreased year over year.",
		Confidence: m.answerConfidence,
	})
}
