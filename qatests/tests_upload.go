package qatests

import (
	"strings"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/esg-insight/qa-contract-tests/servicedef"
)

const companiesCSV = "companyName,isin,sector\n" +
	"Nokia Corporation,FI0009000681,Technology\n" +
	"Apple Inc,US0378331005,Technology"

func DoUploadTests(t *T) {
	t.Run("admin can upload a companies CSV", func(t *T) {
		resp := t.UploadCompanies("companies.csv", "text/csv", companiesCSV, t.AdminToken())
		require.Equal(t, 200, resp.Status, "upload failed: %s", string(resp.Body))

		var outcome servicedef.UploadOutcome
		require.NoError(t, resp.Decode(&outcome))
		assert.NotEmpty(t, outcome.Message)
		assert.GreaterOrEqual(t, outcome.ProcessedRows, 2,
			"uploaded 2 data rows but processedRows was %d", outcome.ProcessedRows)
		// The errors field must be present even when empty.
		assert.Contains(t, resp.JSON().Keys(), "errors", "errors field missing from upload outcome")
	})

	t.Run("non-CSV content is rejected", func(t *T) {
		resp := t.UploadCompanies("document.txt", "text/plain", "This is not a CSV file", t.AdminToken())
		require.Equal(t, 415, resp.Status)

		msg := t.RequireErrorBody(resp)
		assert.True(t, strings.Contains(msg, "CSV") || strings.Contains(msg, "format"),
			"error message %q mentions neither CSV nor format", msg)
	})

	t.Run("analyst is forbidden regardless of payload", func(t *T) {
		// The role check must come before content-type validation: a valid
		// CSV still gets a 403 from a non-admin token.
		resp := t.UploadCompanies("companies.csv", "text/csv", companiesCSV, t.AnalystToken())
		assert.Equal(t, 403, resp.Status)
	})
}
