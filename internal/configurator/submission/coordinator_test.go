package submission

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"it-configurator/internal/common/errors"
	"it-configurator/internal/common/logger"
	"it-configurator/internal/common/observability"
	"it-configurator/internal/configurator/catalog"
	"it-configurator/internal/configurator/pricing"
	"it-configurator/internal/configurator/session"
)

type fakeSaver struct {
	err     error
	calls   int
	payload *session.Payload
	reenter func(*Coordinator) error
	coord   *Coordinator
}

func (f *fakeSaver) SaveLead(ctx context.Context, p *session.Payload) (int64, string, error) {
	f.calls++
	f.payload = p
	if f.reenter != nil {
		return 0, "", f.reenter(f.coord)
	}
	if f.err != nil {
		return 0, "", f.err
	}
	return 42, "Your request has been submitted successfully!", nil
}

func newTestStore(t *testing.T) *session.Store {
	t.Helper()
	store := session.NewStore()
	require.NoError(t, store.Select(catalog.ServiceCloud))
	require.NoError(t, store.SetOption(catalog.ServiceCloud, catalog.OptCloudType, "azure"))
	require.NoError(t, store.SetOption(catalog.ServiceCloud, catalog.OptCloudUsers, "10"))
	require.NoError(t, store.SetOption(catalog.ServiceCloud, catalog.OptCloudStorage, "500"))
	store.SetContact(session.Contact{Name: "Jo", Email: "jo@example.com", PrivacyConsent: true})
	return store
}

func newCoordinator(t *testing.T, saver Saver) *Coordinator {
	t.Helper()
	return NewCoordinator(saver, pricing.NewEngine(pricing.DefaultModel()), observability.New("test"), logger.NewTestLogger(t))
}

func TestSubmit_Success(t *testing.T) {
	saver := &fakeSaver{}
	c := newCoordinator(t, saver)
	store := newTestStore(t)

	message, err := c.Submit(context.Background(), store)
	require.NoError(t, err)
	assert.Equal(t, "Your request has been submitted successfully!", message)
	assert.Equal(t, StateAccepted, c.State())

	// the payload carries the freshly computed price
	require.NotNil(t, saver.payload)
	assert.Equal(t, int64(400), saver.payload.EstimatedPrice.Round(0).IntPart())
}

func TestSubmit_RejectionIsVerbatimAndResubmittable(t *testing.T) {
	saver := &fakeSaver{err: errors.NewLeadRejectedError("Invalid email address")}
	c := newCoordinator(t, saver)
	store := newTestStore(t)

	_, err := c.Submit(context.Background(), store)
	require.Error(t, err)

	stdErr := errors.AsStandardError(err)
	assert.Equal(t, errors.ErrCodeLeadRejected, stdErr.Code)
	assert.Equal(t, "Invalid email address", stdErr.Message)
	assert.Equal(t, StateFailed, c.State())

	// the run is not locked: a corrected resubmit goes through
	saver.err = nil
	store.SetContact(session.Contact{Name: "Jo", Email: "jo@example.org", PrivacyConsent: true})
	_, err = c.Submit(context.Background(), store)
	require.NoError(t, err)
	assert.Equal(t, 2, saver.calls)
}

func TestSubmit_RejectionLeavesStoreIntact(t *testing.T) {
	saver := &fakeSaver{err: errors.NewLeadRejectedError("Invalid email address")}
	c := newCoordinator(t, saver)
	store := newTestStore(t)

	_, err := c.Submit(context.Background(), store)
	require.Error(t, err)

	assert.Equal(t, []catalog.ServiceKey{catalog.ServiceCloud}, store.SelectedKeys())
	assert.Equal(t, "jo@example.com", store.Contact().Email)
}

func TestSubmit_TransportFailureGetsGenericMessage(t *testing.T) {
	saver := &fakeSaver{err: stderrors.New("connection refused")}
	c := newCoordinator(t, saver)

	_, err := c.Submit(context.Background(), newTestStore(t))
	require.Error(t, err)

	stdErr := errors.AsStandardError(err)
	assert.Equal(t, errors.ErrCodeTransportError, stdErr.Code)
	assert.Equal(t, "An error occurred. Please try again later.", stdErr.Message)
	assert.True(t, stdErr.Retryable)
}

func TestSubmit_LockedAfterAcceptance(t *testing.T) {
	saver := &fakeSaver{}
	c := newCoordinator(t, saver)
	store := newTestStore(t)

	_, err := c.Submit(context.Background(), store)
	require.NoError(t, err)

	_, err = c.Submit(context.Background(), store)
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeSubmissionLocked, errors.AsStandardError(err).Code)
	assert.Equal(t, 1, saver.calls)
}

func TestSubmit_PendingGuardBlocksReentry(t *testing.T) {
	saver := &fakeSaver{}
	c := newCoordinator(t, saver)
	saver.coord = c
	store := newTestStore(t)

	var reentryErr error
	saver.reenter = func(coord *Coordinator) error {
		_, reentryErr = coord.Submit(context.Background(), store)
		return errors.NewLeadRejectedError("nested")
	}

	_, err := c.Submit(context.Background(), store)
	require.Error(t, err)
	require.Error(t, reentryErr)
	assert.Equal(t, errors.ErrCodeSubmissionPending, errors.AsStandardError(reentryErr).Code)
}

func TestLock_RestoresAcceptedState(t *testing.T) {
	c := newCoordinator(t, &fakeSaver{})
	c.Lock()

	_, err := c.Submit(context.Background(), newTestStore(t))
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeSubmissionLocked, errors.AsStandardError(err).Code)
}
