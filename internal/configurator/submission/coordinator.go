// Package submission coordinates handing a finished wizard run to the lead
// persistence layer: one submission at a time, locked after acceptance.
package submission

import (
	"context"
	"sync"
	"time"

	"it-configurator/internal/common/errors"
	"it-configurator/internal/common/logger"
	"it-configurator/internal/common/metrics"
	"it-configurator/internal/common/observability"
	"it-configurator/internal/configurator/pricing"
	"it-configurator/internal/configurator/session"
)

// Saver persists one lead payload. It returns the stored lead id and the
// confirmation message to show the customer.
type Saver interface {
	SaveLead(ctx context.Context, p *session.Payload) (int64, string, error)
}

// State tracks where a run is in its submission lifecycle.
type State int

const (
	StateIdle State = iota
	StatePending
	StateAccepted
	StateFailed
)

// Coordinator guards the submit path of one wizard run. A run that was
// accepted can never be submitted again; a failed run can.
type Coordinator struct {
	saver  Saver
	pricer *pricing.Engine
	obs    *observability.Observability
	log    logger.Logger

	mu    sync.Mutex
	state State
}

func NewCoordinator(saver Saver, pricer *pricing.Engine, obs *observability.Observability, log logger.Logger) *Coordinator {
	return &Coordinator{saver: saver, pricer: pricer, obs: obs, log: log}
}

// State returns the current lifecycle state.
func (c *Coordinator) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Lock marks the run as already accepted, used when a persisted session is
// restored after a successful submit.
func (c *Coordinator) Lock() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = StateAccepted
}

// Submit recomputes the authoritative price, renders the payload and hands
// it to the saver. On rejection the collaborator's message travels verbatim
// in the returned error; on transport failure the error carries a generic
// retry message. The store itself is left untouched either way, so the
// customer can correct and resubmit.
func (c *Coordinator) Submit(ctx context.Context, store *session.Store) (string, error) {
	c.mu.Lock()
	switch c.state {
	case StateAccepted:
		c.mu.Unlock()
		return "", errors.NewSubmissionLockedError()
	case StatePending:
		c.mu.Unlock()
		return "", errors.NewSubmissionPendingError()
	}
	c.state = StatePending
	c.mu.Unlock()

	start := time.Now()

	// the submitted price is always freshly computed, never a stale estimate
	quote := c.pricer.Compute(store.SelectedOptions(), store.Profile())
	store.SetEstimate(quote.Total, quote.Display)

	_, message, err := c.saver.SaveLead(ctx, store.Payload())
	c.obs.RecordSubmissionDuration(ctx, time.Since(start))

	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		c.state = StateFailed
		stdErr := errors.AsStandardError(err)
		metrics.LeadSubmissionsFailed.WithLabelValues(string(stdErr.Code)).Inc()
		c.obs.RecordSubmission(ctx, "failed")

		if stdErr.Code == errors.ErrCodeLeadRejected {
			c.log.Warn("lead submission rejected", map[string]interface{}{
				"message": stdErr.Message,
			})
			return "", stdErr
		}
		c.log.WithError(err).Error("lead submission failed", nil)
		return "", errors.NewTransportError(err)
	}

	c.state = StateAccepted
	c.obs.RecordSubmission(ctx, "accepted")
	c.log.Info("lead submission accepted", map[string]interface{}{
		"estimated_price": quote.Display,
	})
	return message, nil
}
