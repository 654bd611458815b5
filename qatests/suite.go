package qatests

import (
	"github.com/esg-insight/qa-contract-tests/apiservice"
	"github.com/esg-insight/qa-contract-tests/config"
	"github.com/esg-insight/qa-contract-tests/framework"
)

// SuiteParams is everything the test suite needs to run: clients for the two
// service boundaries, the session provider, and the harness configuration.
type SuiteParams struct {
	API      *apiservice.Client
	AIML     *apiservice.Client
	Sessions *apiservice.SessionProvider
	Config   config.Config
}

// RunTestSuite runs the full contract suite and returns the results.
func RunTestSuite(
	params SuiteParams,
	filter framework.Filter,
	testLogger framework.TestLogger,
) framework.Results {
	return framework.Run(filter, testLogger, func(c *framework.Context) {
		env := &environment{
			api:        params.API,
			aiml:       params.AIML,
			sessions:   params.Sessions,
			config:     params.Config,
			seenJobIDs: make(map[string]string),
		}
		t := newTestScope(c, env)

		t.Run("authentication", DoAuthTests)
		t.Run("question submission", DoSubmissionTests)
		t.Run("job lifecycle", DoJobLifecycleTests)
		t.Run("recent answers", DoRecentAnswersTests)
		t.Run("company upload", DoUploadTests)
		t.Run("answer service", DoAnswerServiceTests)
		t.Run("input validation", DoInputValidationTests)
		t.Run("edge cases", DoEdgeCaseTests)
		t.Run("performance", DoPerformanceTests)
	})
}
