package qatests

import (
	"github.com/stretchr/testify/assert"

	"github.com/esg-insight/qa-contract-tests/servicedef"
)

func DoSubmissionTests(t *T) {
	t.Run("valid question is accepted", func(t *T) {
		cfg := t.Config()
		resp := t.SubmitQuestion(servicedef.SubmitRequest{
			Question: cfg.TestData.ValidQuestion,
			Company:  cfg.TestData.ValidCompany,
		}, t.AnalystToken())

		ack := t.RequireSubmissionAck(resp)
		t.Debug("submission accepted as job %s", ack.JobID)
		assert.Less(t, resp.Elapsed, cfg.SubmitLatencyBound(),
			"submission took %v, bound is %v", resp.Elapsed, cfg.SubmitLatencyBound())
	})

	t.Run("each submission gets its own jobId", func(t *T) {
		// RequireSubmissionAck records every jobId and fails on a duplicate
		// anywhere in the run; submitting several here makes the uniqueness
		// property hold on its own even in a filtered run.
		ids := make(map[string]bool)
		for i := 0; i < 3; i++ {
			ack := t.SubmitDefaultQuestion()
			ids[ack.JobID] = true
		}
		assert.Len(t, ids, 3, "expected three distinct jobIds")
	})

	t.Run("submitted job is immediately visible", func(t *T) {
		// Read-after-write: a status query issued after the submission ack
		// must reflect at least the queued state.
		ack := t.SubmitDefaultQuestion()
		resp := t.JobStatus(ack.JobID, t.AnalystToken())
		job := t.RequireJobView(resp, ack.JobID)
		t.Debug("status immediately after submission: %s", job.Status)
	})
}
