package apiservice

import (
	"fmt"
	"time"

	"github.com/esg-insight/qa-contract-tests/framework"
	"github.com/esg-insight/qa-contract-tests/servicedef"
)

// TimeoutError means the polling deadline elapsed before the job reached a
// terminal status. It is a client-side condition, distinct from the server
// reporting the job as failed; the server-side work is unaffected.
type TimeoutError struct {
	JobID      string
	Timeout    time.Duration
	LastStatus string
}

func (e *TimeoutError) Error() string {
	if e.LastStatus == "" {
		return fmt.Sprintf("job %s did not reach a terminal status within %s (no status observed)",
			e.JobID, e.Timeout)
	}
	return fmt.Sprintf("job %s did not reach a terminal status within %s (last status %q)",
		e.JobID, e.Timeout, e.LastStatus)
}

// Poller waits for jobs to reach a terminal status by calling the job-status
// endpoint at a fixed interval until the job is done or failed, or the
// deadline elapses.
type Poller struct {
	client   *Client
	interval time.Duration
	timeout  time.Duration
	logger   framework.Logger
}

// NewPoller creates a Poller. A nil logger discards poll logging.
func NewPoller(client *Client, interval, timeout time.Duration, logger framework.Logger) *Poller {
	if logger == nil {
		logger = framework.NullLogger()
	}
	return &Poller{client: client, interval: interval, timeout: timeout, logger: logger}
}

// AwaitTerminal polls the job until it is done or failed and returns the
// final view. Transient transport errors, non-200 statuses, and undecodable
// bodies during polling do not abort the wait; only a definitive terminal
// status or the deadline ends the loop. On deadline it returns a
// *TimeoutError.
func (p *Poller) AwaitTerminal(jobID, token string) (servicedef.JobView, error) {
	deadline := time.Now().Add(p.timeout)
	lastStatus := ""

	for {
		resp, err := p.client.JobStatus(jobID, token)
		if err != nil {
			p.logger.Printf("poll for job %s: transport error, will retry: %s", jobID, err)
		} else if resp.Status != 200 {
			p.logger.Printf("poll for job %s: status %d, will retry", jobID, resp.Status)
		} else {
			var job servicedef.JobView
			if err := resp.Decode(&job); err != nil {
				p.logger.Printf("poll for job %s: %s, will retry", jobID, err)
			} else {
				lastStatus = job.Status
				if servicedef.IsTerminalJobStatus(job.Status) {
					p.logger.Printf("job %s reached terminal status %q", jobID, job.Status)
					return job, nil
				}
			}
		}

		if !time.Now().Add(p.interval).Before(deadline) {
			return servicedef.JobView{}, &TimeoutError{
				JobID:      jobID,
				Timeout:    p.timeout,
				LastStatus: lastStatus,
			}
		}
		time.Sleep(p.interval)
	}
}
