package service

import (
	"context"
	"errors"

	"tavern_bot/internal/cache"
)

const releaseKey = "release:announced"

// ReleaseTracker remembers which bot version was last announced.
type ReleaseTracker struct {
	cache cache.Cache
}

func NewReleaseTracker(c cache.Cache) *ReleaseTracker {
	return &ReleaseTracker{cache: c}
}

// Observe records version and reports the previous one when it changed.
// The very first observation is recorded without reporting a change.
func (t *ReleaseTracker) Observe(ctx context.Context, version string) (previous string, changed bool, err error) {
	raw, err := t.cache.Get(ctx, releaseKey)
	switch {
	case errors.Is(err, cache.ErrCacheMiss):
		return "", false, t.cache.Set(ctx, releaseKey, []byte(version), 0)
	case err != nil:
		return "", false, err
	}

	previous = string(raw)
	if previous == version {
		return previous, false, nil
	}
	if err := t.cache.Set(ctx, releaseKey, []byte(version), 0); err != nil {
		return previous, false, err
	}
	return previous, true, nil
}
