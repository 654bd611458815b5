// Package qatests contains the contract test suite for the question-answering
// service: authentication, job submission and lifecycle, recent answers, the
// admin-only company upload, the downstream answer service, input validation,
// edge cases, and response-time requirements.
package qatests
