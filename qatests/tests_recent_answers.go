package qatests

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/esg-insight/qa-contract-tests/contract"
	"github.com/esg-insight/qa-contract-tests/servicedef"
)

func DoRecentAnswersTests(t *T) {
	t.Run("returns at most ten answers", func(t *T) {
		resp := t.RecentAnswers(t.AnalystToken())
		require.Equal(t, 200, resp.Status, "unexpected status, body: %s", string(resp.Body))

		var recent servicedef.RecentAnswersResponse
		require.NoError(t, resp.Decode(&recent))
		assert.LessOrEqual(t, len(recent.Answers), 10,
			"recent answers returned %d entries", len(recent.Answers))

		// Ordering is deliberately not asserted; the contract only fixes the
		// element shape and the length bound.
		for i, a := range recent.Answers {
			assert.NotEmpty(t, a.Question, "answer %d has no question", i)
			assert.NotEmpty(t, a.Company, "answer %d has no company", i)
			assert.True(t, contract.ValidConfidence(a.Confidence),
				"answer %d has confidence %v outside [0,1]", i, a.Confidence)
			assert.True(t, contract.ValidTimestamp(a.Timestamp),
				"answer %d has non-ISO-8601 timestamp %q", i, a.Timestamp)
		}
	})

	t.Run("requires authentication", func(t *T) {
		resp := t.RecentAnswers("")
		assert.Equal(t, 401, resp.Status)
	})
}
