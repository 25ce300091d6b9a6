// Package sessions persists wizard runs in Redis so a prospect survives a
// page reload or a load-balanced hop.
package sessions

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"it-configurator/internal/common/database"
	"it-configurator/internal/common/errors"
	"it-configurator/internal/common/logger"
	"it-configurator/internal/configurator/session"
)

const keyPrefix = "configurator:session:"

// Record is one persisted wizard run.
type Record struct {
	ID        string           `json:"id"`
	CSRFToken string           `json:"csrf_token"`
	Variant   string           `json:"variant"`
	StepIndex int              `json:"step_index"`
	Submitted bool             `json:"submitted"`
	State     *session.Payload `json:"state"`
	CreatedAt time.Time        `json:"created_at"`
}

// Repository stores records with a sliding TTL: every save renews the
// expiry, so only abandoned runs disappear.
type Repository struct {
	redis *database.RedisClient
	ttl   time.Duration
	log   logger.Logger
}

func NewRepository(redis *database.RedisClient, ttl time.Duration, log logger.Logger) *Repository {
	return &Repository{redis: redis, ttl: ttl, log: log}
}

// Create opens a new record for the given wizard variant with fresh ids.
func (r *Repository) Create(ctx context.Context, variant string) (*Record, error) {
	record := &Record{
		ID:        uuid.NewString(),
		CSRFToken: uuid.NewString(),
		Variant:   variant,
		State:     session.NewStore().Payload(),
		CreatedAt: time.Now().UTC(),
	}
	if err := r.Save(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// Save writes the record and renews its TTL.
func (r *Repository) Save(ctx context.Context, record *Record) error {
	raw, err := json.Marshal(record)
	if err != nil {
		return errors.NewSessionStoreError(err)
	}
	if err := r.redis.Set(ctx, keyPrefix+record.ID, raw, r.ttl); err != nil {
		return errors.NewSessionStoreError(err)
	}
	return nil
}

// Get loads a record by id.
func (r *Repository) Get(ctx context.Context, id string) (*Record, error) {
	raw, err := r.redis.Get(ctx, keyPrefix+id)
	if err == redis.Nil {
		return nil, errors.NewSessionNotFoundError(id)
	}
	if err != nil {
		return nil, errors.NewSessionStoreError(err)
	}

	var record Record
	if err := json.Unmarshal([]byte(raw), &record); err != nil {
		r.log.WithError(err).Error("corrupt session record", map[string]interface{}{
			"session_id": id,
		})
		return nil, errors.NewSessionStoreError(err)
	}
	return &record, nil
}

// Delete removes a record, e.g. after a successful submission.
func (r *Repository) Delete(ctx context.Context, id string) error {
	if err := r.redis.Del(ctx, keyPrefix+id); err != nil {
		return errors.NewSessionStoreError(err)
	}
	return nil
}

// CheckToken compares the presented anti-forgery token in constant time.
func (r *Record) CheckToken(token string) error {
	if token == "" || subtle.ConstantTimeCompare([]byte(r.CSRFToken), []byte(token)) != 1 {
		return errors.NewInvalidCSRFTokenError()
	}
	return nil
}
