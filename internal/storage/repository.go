package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jonathan/resume-builder/internal/cvdata"
	"github.com/jonathan/resume-builder/internal/types"
)

// isoMillis matches JavaScript's Date.toISOString output
const isoMillis = "2006-01-02T15:04:05.000Z07:00"

// Repository loads and saves one CvRecord per user key on top of a Store
type Repository struct {
	store Store

	LoadTimeout time.Duration
	SaveTimeout time.Duration
	Now         func() time.Time
}

// NewRepository creates a Repository with the default storage budgets
func NewRepository(store Store) *Repository {
	return &Repository{
		store:       store,
		LoadTimeout: StorageTimeout,
		SaveTimeout: StorageTimeout,
		Now:         time.Now,
	}
}

// Load reads the record for uid. A missing key or corrupt document yields an
// empty normalized record; only store failures and timeouts are errors.
func (r *Repository) Load(ctx context.Context, uid string) (types.CvRecord, error) {
	key := cvdata.StorageKey(uid)
	raw, err := WithTimeout(ctx, r.LoadTimeout, LoadTimeoutMessage, func(ctx context.Context) (string, error) {
		value, found, err := r.store.Get(ctx, key)
		if err != nil || !found {
			return "", err
		}
		return value, nil
	})
	if err != nil {
		return types.CvRecord{}, err
	}
	return cvdata.NormalizeJSON([]byte(raw)), nil
}

// Save stamps updatedAt on a copy of cv and writes it under uid's key.
// The stamped record is returned.
func (r *Repository) Save(ctx context.Context, uid string, cv types.CvRecord) (types.CvRecord, error) {
	stamped := cv.Clone()
	stamped.UpdatedAt = types.StringPtr(r.Now().UTC().Format(isoMillis))

	payload, err := json.Marshal(stamped)
	if err != nil {
		return types.CvRecord{}, fmt.Errorf("failed to marshal cv record: %w", err)
	}

	key := cvdata.StorageKey(uid)
	_, err = WithTimeout(ctx, r.SaveTimeout, SaveTimeoutMessage, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, r.store.Set(ctx, key, string(payload))
	})
	if err != nil {
		return types.CvRecord{}, err
	}
	return stamped, nil
}
