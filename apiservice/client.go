// Package apiservice is the HTTP client layer for the services under test.
// It knows the endpoint paths and wire shapes, captures enough of each
// response for the test suite to assert on (status, headers, body, elapsed
// time), and implements the one piece of stateful control flow in the
// harness: the job-status polling loop.
package apiservice

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

	"github.com/esg-insight/qa-contract-tests/framework"
)

const (
	loginPath  = "/api/v1/auth/login"
	logoutPath = "/api/v1/auth/logout"
	qaPath     = "/api/v1/qa"
	uploadPath = "/api/v1/admin/companies/upload"
	answerPath = "/aiml/answer"
)

// Client sends requests to one service base URL. It holds no session state;
// tokens are passed explicitly into each call.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     framework.Logger
}

// NewClient creates a Client for the given base URL. A nil logger discards
// request logging.
func NewClient(baseURL string, logger framework.Logger) *Client {
	if logger == nil {
		logger = framework.NullLogger()
	}
	return &Client{
		httpClient: &http.Client{},
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		logger:     logger,
	}
}

// WithLogger returns a copy of the client that logs through the given logger.
// Tests use this to route request logging into their own debug buffer while
// sharing the underlying connection pool.
func (c *Client) WithLogger(logger framework.Logger) *Client {
	if logger == nil {
		logger = framework.NullLogger()
	}
	c1 := *c
	c1.logger = logger
	return &c1
}

// BaseURL returns the base URL the client was created with.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Response captures everything about an HTTP exchange that the contract
// makes assertions on.
type Response struct {
	Status  int
	Header  http.Header
	Body    []byte
	Elapsed time.Duration
}

// ContentType returns the response's Content-Type header.
func (r Response) ContentType() string {
	return r.Header.Get("Content-Type")
}

// JSON parses the body as a generic JSON value. Malformed or empty bodies
// come back as the null value; tests that need to distinguish should look at
// the raw Body.
func (r Response) JSON() ldvalue.Value {
	return ldvalue.Parse(r.Body)
}

// Decode unmarshals the body into a typed wire struct.
func (r Response) Decode(target interface{}) error {
	if err := json.Unmarshal(r.Body, target); err != nil {
		return fmt.Errorf("malformed response body %q: %w", truncateForLog(r.Body), err)
	}
	return nil
}

// ErrorMessage returns the "error" field of the body, or "" if there is none.
func (r Response) ErrorMessage() string {
	return r.JSON().GetByKey("error").StringValue()
}

func truncateForLog(body []byte) string {
	const max = 200
	if len(body) > max {
		return string(body[:max]) + "..."
	}
	return string(body)
}

// WaitUntilReady probes the service base URL until it responds or the timeout
// elapses, printing progress to output. Any HTTP response at all counts as
// ready; the service has no dedicated status resource, so even a 404 from
// the root proves the listener is up.
func (c *Client) WaitUntilReady(timeout time.Duration, output io.Writer) error {
	fmt.Fprintf(output, "Connecting to service at %s", c.baseURL)
	deadline := time.Now().Add(timeout)
	for {
		fmt.Fprintf(output, ".")
		resp, err := c.httpClient.Get(c.baseURL + "/")
		if err == nil {
			if resp.Body != nil {
				resp.Body.Close()
			}
			fmt.Fprintln(output)
			return nil
		}
		if !time.Now().Before(deadline) {
			fmt.Fprintln(output)
			return fmt.Errorf("service did not respond within %s, last error: %w", timeout, err)
		}
		time.Sleep(time.Millisecond * 100)
	}
}

func (c *Client) do(req *http.Request, token string) (Response, error) {
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	elapsed := time.Since(start)
	if err != nil {
		c.logger.Printf("%s %s failed: %s", req.Method, req.URL, err)
		return Response{}, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Response{}, fmt.Errorf("error reading response body: %w", err)
	}
	c.logger.Printf("%s %s -> %d in %v, body: %s", req.Method, req.URL, resp.StatusCode, elapsed,
		truncateForLog(body))
	return Response{
		Status:  resp.StatusCode,
		Header:  resp.Header,
		Body:    body,
		Elapsed: elapsed,
	}, nil
}

// PostJSON sends a JSON-encoded body. An empty token omits the Authorization
// header entirely.
func (c *Client) PostJSON(path string, body interface{}, token string) (Response, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return Response{}, err
	}
	return c.PostRaw(path, "application/json", data, token)
}

// PostRaw sends an arbitrary payload, for cases like deliberately malformed
// JSON where the request body must not go through the encoder.
func (c *Client) PostRaw(path, contentType string, payload []byte, token string) (Response, error) {
	req, err := http.NewRequest("POST", c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return Response{}, err
	}
	req.Header.Set("Content-Type", contentType)
	return c.do(req, token)
}

// Get sends a GET request.
func (c *Client) Get(path, token string) (Response, error) {
	req, err := http.NewRequest("GET", c.baseURL+path, nil)
	if err != nil {
		return Response{}, err
	}
	return c.do(req, token)
}

// PostMultipart sends one file as a multipart/form-data request, with the
// given content type on the file part.
func (c *Client) PostMultipart(path, fieldName, fileName, fileContentType string, content []byte, token string) (Response, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, fieldName, fileName))
	h.Set("Content-Type", fileContentType)
	part, err := w.CreatePart(h)
	if err != nil {
		return Response{}, err
	}
	if _, err := part.Write(content); err != nil {
		return Response{}, err
	}
	if err := w.Close(); err != nil {
		return Response{}, err
	}

	req, err := http.NewRequest("POST", c.baseURL+path, &buf)
	if err != nil {
		return Response{}, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	return c.do(req, token)
}
