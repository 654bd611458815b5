package apiservice

import (
	"github.com/esg-insight/qa-contract-tests/servicedef"
)

// Answer calls the downstream answer-generation service directly. The
// endpoint takes no authentication; rate limiting (429) is an expected
// outcome under load.
func (c *Client) Answer(req servicedef.AnswerRequest) (Response, error) {
	return c.PostJSON(answerPath, req, "")
}
