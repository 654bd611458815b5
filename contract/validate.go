// Package contract contains pure validation functions for the wire-level
// invariants of the service contract: identifier and timestamp formats,
// confidence bounds, status transitions, and error-body shape.
package contract

import (
	"time"

	"github.com/google/uuid"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

	"github.com/esg-insight/qa-contract-tests/servicedef"
)

// ValidUUID reports whether s is a syntactically valid UUID.
func ValidUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}

// RandomUUID returns a fresh random UUID string, for probing jobs that are
// guaranteed not to exist.
func RandomUUID() string {
	return uuid.NewString()
}

// timestampLayouts covers the ISO-8601 variants the contract allows: with or
// without fractional seconds, with a zone offset, a trailing Z, or no zone.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
}

// ValidTimestamp reports whether s is a valid ISO-8601 timestamp.
func ValidTimestamp(s string) bool {
	for _, layout := range timestampLayouts {
		if _, err := time.Parse(layout, s); err == nil {
			return true
		}
	}
	return false
}

// ValidConfidence reports whether c lies in the closed unit interval.
func ValidConfidence(c float64) bool {
	return c >= 0 && c <= 1
}

// ValidJobStatus reports whether s is one of the four job statuses.
func ValidJobStatus(s string) bool {
	switch s {
	case servicedef.JobStatusQueued, servicedef.JobStatusRunning,
		servicedef.JobStatusDone, servicedef.JobStatusFailed:
		return true
	}
	return false
}

// statusRank orders the statuses along the allowed transition path
// queued -> running -> {done, failed}. Terminal statuses share a rank
// because neither can follow the other.
func statusRank(s string) int {
	switch s {
	case servicedef.JobStatusQueued:
		return 0
	case servicedef.JobStatusRunning:
		return 1
	case servicedef.JobStatusDone, servicedef.JobStatusFailed:
		return 2
	}
	return -1
}

// ValidStatusTransition reports whether observing "to" after "from" is
// consistent with the forward-only status lifecycle. Observing the same
// status twice is always allowed.
func ValidStatusTransition(from, to string) bool {
	a, b := statusRank(from), statusRank(to)
	if a < 0 || b < 0 {
		return false
	}
	if a == 2 && b == 2 {
		return from == to // done never becomes failed, nor the reverse
	}
	return b >= a
}

// ErrorMessage extracts the "error" field from a response body parsed as a
// generic JSON value. The second return is false if the body is not an
// object or the field is not a string.
func ErrorMessage(body ldvalue.Value) (string, bool) {
	if body.Type() != ldvalue.ObjectType {
		return "", false
	}
	v := body.GetByKey("error")
	if v.Type() != ldvalue.StringType {
		return "", false
	}
	return v.StringValue(), true
}
