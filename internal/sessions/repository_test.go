package sessions

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"it-configurator/internal/common/database"
	"it-configurator/internal/common/errors"
	"it-configurator/internal/common/logger"
	"it-configurator/internal/configurator/catalog"
	"it-configurator/internal/configurator/session"
)

func newTestRepository(t *testing.T) (*Repository, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := &database.RedisClient{Client: redis.NewClient(&redis.Options{Addr: mr.Addr()})}
	return NewRepository(client, time.Hour, logger.NewTestLogger(t)), mr
}

func TestCreateAndGet(t *testing.T) {
	repo, _ := newTestRepository(t)
	ctx := context.Background()

	record, err := repo.Create(ctx, "classic")
	require.NoError(t, err)
	assert.NotEmpty(t, record.ID)
	assert.NotEmpty(t, record.CSRFToken)
	assert.NotEqual(t, record.ID, record.CSRFToken)

	loaded, err := repo.Get(ctx, record.ID)
	require.NoError(t, err)
	assert.Equal(t, record.CSRFToken, loaded.CSRFToken)
	assert.Equal(t, "classic", loaded.Variant)
	assert.False(t, loaded.Submitted)
	require.NotNil(t, loaded.State)
}

func TestSaveRoundTripsWizardState(t *testing.T) {
	repo, _ := newTestRepository(t)
	ctx := context.Background()

	record, err := repo.Create(ctx, "conversational")
	require.NoError(t, err)

	store := session.FromPayload(record.State)
	require.NoError(t, store.Select(catalog.ServiceCloud))
	require.NoError(t, store.SetOption(catalog.ServiceCloud, catalog.OptCloudUsers, "15"))
	record.State = store.Payload()
	record.StepIndex = 3
	require.NoError(t, repo.Save(ctx, record))

	loaded, err := repo.Get(ctx, record.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, loaded.StepIndex)

	restored := session.FromPayload(loaded.State)
	sel, _ := restored.Selection(catalog.ServiceCloud)
	assert.True(t, sel.Selected)
	assert.Equal(t, 15, sel.Options.(*catalog.CloudOptions).Users)
}

func TestGet_MissingSession(t *testing.T) {
	repo, _ := newTestRepository(t)

	_, err := repo.Get(context.Background(), "nope")
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeSessionNotFound, errors.AsStandardError(err).Code)
}

func TestRecordsExpire(t *testing.T) {
	repo, mr := newTestRepository(t)
	ctx := context.Background()

	record, err := repo.Create(ctx, "classic")
	require.NoError(t, err)

	mr.FastForward(2 * time.Hour)

	_, err = repo.Get(ctx, record.ID)
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeSessionNotFound, errors.AsStandardError(err).Code)
}

func TestSaveRenewsTTL(t *testing.T) {
	repo, mr := newTestRepository(t)
	ctx := context.Background()

	record, err := repo.Create(ctx, "classic")
	require.NoError(t, err)

	mr.FastForward(50 * time.Minute)
	require.NoError(t, repo.Save(ctx, record))
	mr.FastForward(50 * time.Minute)

	_, err = repo.Get(ctx, record.ID)
	assert.NoError(t, err, "a recently saved session must not expire")
}

func TestDelete(t *testing.T) {
	repo, _ := newTestRepository(t)
	ctx := context.Background()

	record, err := repo.Create(ctx, "classic")
	require.NoError(t, err)
	require.NoError(t, repo.Delete(ctx, record.ID))

	_, err = repo.Get(ctx, record.ID)
	assert.Error(t, err)
}

func TestCheckToken(t *testing.T) {
	record := &Record{CSRFToken: "secret-token"}

	assert.NoError(t, record.CheckToken("secret-token"))

	err := record.CheckToken("wrong")
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeInvalidCSRFToken, errors.AsStandardError(err).Code)

	assert.Error(t, record.CheckToken(""))
}
