package qatests

import (
	"github.com/stretchr/testify/assert"

	"github.com/esg-insight/qa-contract-tests/servicedef"
)

// Simple single-request latency assertions; the bounds come from the
// configuration (500ms for submission, 200ms for a status check).
func DoPerformanceTests(t *T) {
	t.Run("submission responds within the bound", func(t *T) {
		cfg := t.Config()
		resp := t.SubmitQuestion(servicedef.SubmitRequest{
			Question: cfg.TestData.ValidQuestion,
			Company:  cfg.TestData.ValidCompany,
		}, t.AnalystToken())

		t.RequireSubmissionAck(resp)
		assert.Less(t, resp.Elapsed, cfg.SubmitLatencyBound(),
			"submission took %v, bound is %v", resp.Elapsed, cfg.SubmitLatencyBound())
	})

	t.Run("status check responds within the bound", func(t *T) {
		cfg := t.Config()
		ack := t.SubmitDefaultQuestion()

		resp := t.JobStatus(ack.JobID, t.AnalystToken())
		t.RequireJobView(resp, ack.JobID)
		assert.Less(t, resp.Elapsed, cfg.StatusLatencyBound(),
			"status check took %v, bound is %v", resp.Elapsed, cfg.StatusLatencyBound())
	})
}
