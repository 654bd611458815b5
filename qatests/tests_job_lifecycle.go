package qatests

import (
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/esg-insight/qa-contract-tests/contract"
	"github.com/esg-insight/qa-contract-tests/servicedef"
)

func DoJobLifecycleTests(t *T) {
	t.Run("status query reports progress", func(t *T) {
		cfg := t.Config()
		ack := t.SubmitDefaultQuestion()

		resp := t.JobStatus(ack.JobID, t.AnalystToken())
		t.RequireJobView(resp, ack.JobID)
		assert.Less(t, resp.Elapsed, cfg.StatusLatencyBound(),
			"status check took %v, bound is %v", resp.Elapsed, cfg.StatusLatencyBound())
	})

	t.Run("completed job carries a result", func(t *T) {
		cfg := t.Config()
		ack := t.SubmitDefaultQuestion()

		job := t.AwaitTerminal(ack.JobID, t.AnalystToken())
		require.Equal(t, servicedef.JobStatusDone, job.Status,
			"job finished with status %q", job.Status)

		t.RequireResult(job.Result)
		assert.Equal(t, cfg.TestData.ValidQuestion, job.Result.Question,
			"result did not echo the submitted question")
		assert.Equal(t, cfg.TestData.ValidCompany, job.Result.Company,
			"result did not echo the submitted company")
		assert.NotEmpty(t, job.Result.Answer)
	})

	t.Run("status only moves forward", func(t *T) {
		cfg := t.Config()
		ack := t.SubmitDefaultQuestion()
		token := t.AnalystToken()

		// Poll by hand instead of using the poller, recording each observed
		// status so every consecutive pair can be checked against the
		// forward-only lifecycle.
		deadline := time.Now().Add(cfg.PollTimeout())
		previous := servicedef.JobStatusQueued
		for {
			resp := t.JobStatus(ack.JobID, token)
			if resp.Status == 200 {
				job := t.RequireJobView(resp, ack.JobID)
				assert.True(t, contract.ValidStatusTransition(previous, job.Status),
					"job status moved backward: %q after %q", job.Status, previous)
				previous = job.Status
				if servicedef.IsTerminalJobStatus(job.Status) {
					return
				}
			}
			require.True(t, time.Now().Before(deadline),
				"job %s did not reach a terminal status within %v", ack.JobID, cfg.PollTimeout())
			time.Sleep(cfg.PollInterval())
		}
	})
}
