package qatests

import (
	"github.com/stretchr/testify/require"

	"github.com/esg-insight/qa-contract-tests/servicedef"
)

// Unicode and symbol-heavy input must either be accepted or rejected
// gracefully with a 400; a 5xx or a malformed response body fails the test.
func DoEdgeCaseTests(t *T) {
	t.Run("unicode question and company", func(t *T) {
		cfg := t.Config()
		resp := t.SubmitQuestion(servicedef.SubmitRequest{
			Question: cfg.TestData.UnicodeQuestion,
			Company:  cfg.TestData.UnicodeCompany,
		}, t.AnalystToken())

		require.Contains(t, []int{202, 400}, resp.Status,
			"unicode submission got status %d, body: %s", resp.Status, string(resp.Body))
		if resp.Status == 202 {
			t.RequireSubmissionAck(resp)
		} else {
			t.RequireErrorBody(resp)
		}
	})

	t.Run("symbols and emoji in question", func(t *T) {
		resp := t.SubmitQuestion(servicedef.SubmitRequest{
			Question: "What's the company's CO₂ emissions & ESG score? 🌍",
			Company:  t.Config().TestData.ValidCompany,
		}, t.AnalystToken())

		require.Contains(t, []int{202, 400}, resp.Status,
			"symbol-heavy submission got status %d, body: %s", resp.Status, string(resp.Body))
		if resp.Status == 202 {
			t.RequireSubmissionAck(resp)
		}
	})
}
