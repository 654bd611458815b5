package qatests

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/esg-insight/qa-contract-tests/contract"
	"github.com/esg-insight/qa-contract-tests/servicedef"
)

func DoInputValidationTests(t *T) {
	t.Run("empty question is rejected", func(t *T) {
		resp := t.SubmitQuestion(servicedef.SubmitRequest{
			Question: "",
			Company:  t.Config().TestData.ValidCompany,
		}, t.AnalystToken())

		require.Equal(t, 400, resp.Status)
		t.RequireErrorBody(resp)
	})

	t.Run("missing company field is rejected", func(t *T) {
		resp := t.SubmitRaw([]byte(`{"question":"What are the Scope 1 emissions for this company?"}`),
			t.AnalystToken())
		assert.Equal(t, 400, resp.Status)
	})

	t.Run("oversized question is rejected", func(t *T) {
		resp := t.SubmitQuestion(servicedef.SubmitRequest{
			Question: t.Config().LongQuestion(),
			Company:  t.Config().TestData.ValidCompany,
		}, t.AnalystToken())

		// The contract allows either rejection code for oversize payloads.
		assert.Contains(t, []int{400, 413}, resp.Status,
			"oversized question got status %d", resp.Status)
	})

	t.Run("boundary-length question is handled consistently", func(t *T) {
		cfg := t.Config()
		submit := func() int {
			resp := t.SubmitQuestion(servicedef.SubmitRequest{
				Question: cfg.BoundaryQuestion(servicedef.MaxQuestionLength),
				Company:  cfg.TestData.ValidCompany,
			}, t.AnalystToken())
			require.Contains(t, []int{202, 400, 413}, resp.Status,
				"boundary-length question got status %d", resp.Status)
			if resp.Status == 202 {
				t.RequireSubmissionAck(resp)
			}
			return resp.Status
		}

		first := submit()
		second := submit()
		assert.Equal(t, first, second,
			"exactly-%d-char question was treated inconsistently", servicedef.MaxQuestionLength)
	})

	t.Run("malformed JSON is rejected", func(t *T) {
		resp := t.SubmitRaw([]byte("invalid json"), t.AnalystToken())
		assert.Equal(t, 400, resp.Status)
	})

	t.Run("missing token is unauthorized", func(t *T) {
		resp := t.SubmitQuestion(servicedef.SubmitRequest{
			Question: t.Config().TestData.ValidQuestion,
			Company:  t.Config().TestData.ValidCompany,
		}, "")
		assert.Equal(t, 401, resp.Status)
	})

	t.Run("invalid token is unauthorized", func(t *T) {
		resp := t.SubmitQuestion(servicedef.SubmitRequest{
			Question: t.Config().TestData.ValidQuestion,
			Company:  t.Config().TestData.ValidCompany,
		}, "invalid_token")
		assert.Equal(t, 401, resp.Status)
	})

	t.Run("malformed job id is rejected", func(t *T) {
		resp := t.JobStatus("invalid-uuid", t.AnalystToken())
		assert.Equal(t, 400, resp.Status)
	})

	t.Run("unknown job id is not found", func(t *T) {
		// A fresh random UUID is syntactically valid but cannot belong to
		// any job the server knows about.
		resp := t.JobStatus(contract.RandomUUID(), t.AnalystToken())
		assert.Equal(t, 404, resp.Status)
	})
}
