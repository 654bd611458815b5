package apiservice

import (
	"net/url"

	"github.com/esg-insight/qa-contract-tests/servicedef"
)

// SubmitQuestion submits a question for asynchronous answering.
func (c *Client) SubmitQuestion(req servicedef.SubmitRequest, token string) (Response, error) {
	return c.PostJSON(qaPath, req, token)
}

// SubmitRawQuestion submits an arbitrary request body, for malformed-input
// tests.
func (c *Client) SubmitRawQuestion(payload []byte, token string) (Response, error) {
	return c.PostRaw(qaPath, "application/json", payload, token)
}

// JobStatus fetches the current view of a job. The jobID is sent verbatim,
// valid UUID or not; probing the server's handling of bad IDs is part of the
// contract.
func (c *Client) JobStatus(jobID, token string) (Response, error) {
	return c.Get(qaPath+"/"+url.PathEscape(jobID), token)
}

// RecentAnswers fetches the caller's most recent answers.
func (c *Client) RecentAnswers(token string) (Response, error) {
	return c.Get(qaPath, token)
}
