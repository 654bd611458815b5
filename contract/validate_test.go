package contract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

	"github.com/esg-insight/qa-contract-tests/servicedef"
)

func TestValidUUID(t *testing.T) {
	assert.True(t, ValidUUID("a2f1b3c4-5d6e-4f70-8123-456789abcdef"))
	assert.True(t, ValidUUID(RandomUUID()))

	assert.False(t, ValidUUID("invalid-uuid"))
	assert.False(t, ValidUUID(""))
	assert.False(t, ValidUUID("a2f1b3c4-5d6e-4f70-8123"))
}

func TestRandomUUIDsAreDistinct(t *testing.T) {
	assert.NotEqual(t, RandomUUID(), RandomUUID())
}

func TestValidTimestamp(t *testing.T) {
	for _, good := range []string{
		"2024-03-01T09:30:00Z",
		"2024-03-01T09:30:00.123Z",
		"2024-03-01T09:30:00+02:00",
		"2024-03-01T09:30:00",
		"2024-03-01T09:30:00.999999",
	} {
		assert.True(t, ValidTimestamp(good), "should accept %q", good)
	}
	for _, bad := range []string{
		"",
		"not a timestamp",
		"2024-03-01",
		"09:30:00",
		"2024-13-01T09:30:00Z",
	} {
		assert.False(t, ValidTimestamp(bad), "should reject %q", bad)
	}
}

func TestValidConfidence(t *testing.T) {
	assert.True(t, ValidConfidence(0))
	assert.True(t, ValidConfidence(0.5))
	assert.True(t, ValidConfidence(1))

	assert.False(t, ValidConfidence(-0.01))
	assert.False(t, ValidConfidence(1.01))
}

func TestValidJobStatus(t *testing.T) {
	for _, s := range []string{
		servicedef.JobStatusQueued, servicedef.JobStatusRunning,
		servicedef.JobStatusDone, servicedef.JobStatusFailed,
	} {
		assert.True(t, ValidJobStatus(s), "should accept %q", s)
	}
	assert.False(t, ValidJobStatus("pending"))
	assert.False(t, ValidJobStatus(""))
}

func TestValidStatusTransition(t *testing.T) {
	// forward and repeated observations
	assert.True(t, ValidStatusTransition("queued", "queued"))
	assert.True(t, ValidStatusTransition("queued", "running"))
	assert.True(t, ValidStatusTransition("queued", "done"))
	assert.True(t, ValidStatusTransition("running", "failed"))
	assert.True(t, ValidStatusTransition("done", "done"))

	// backward
	assert.False(t, ValidStatusTransition("running", "queued"))
	assert.False(t, ValidStatusTransition("done", "running"))

	// terminal statuses never swap
	assert.False(t, ValidStatusTransition("done", "failed"))
	assert.False(t, ValidStatusTransition("failed", "done"))

	assert.False(t, ValidStatusTransition("queued", "bogus"))
}

func TestErrorMessage(t *testing.T) {
	msg, ok := ErrorMessage(ldvalue.Parse([]byte(`{"error":"Invalid credentials"}`)))
	assert.True(t, ok)
	assert.Equal(t, "Invalid credentials", msg)

	_, ok = ErrorMessage(ldvalue.Parse([]byte(`{"message":"no error field"}`)))
	assert.False(t, ok)

	_, ok = ErrorMessage(ldvalue.Parse([]byte(`{"error":42}`)))
	assert.False(t, ok)

	_, ok = ErrorMessage(ldvalue.Parse([]byte(`"just a string"`)))
	assert.False(t, ok)

	_, ok = ErrorMessage(ldvalue.Parse([]byte(`not json`)))
	assert.False(t, ok)
}
