package stealth

import (
	"context"
	"math/rand/v2"
	"time"
)

// DelayProfile names a pacing configuration for page interactions.
type DelayProfile string

const (
	ProfileCautious   DelayProfile = "cautious"
	ProfileNormal     DelayProfile = "normal"
	ProfileAggressive DelayProfile = "aggressive"
)

// HumanDelay adds randomized jitter so interaction pacing does not look
// machine-regular.
type HumanDelay struct {
	MinDelay time.Duration
	MaxDelay time.Duration
}

// NewHumanDelay creates a delay generator for the given profile.
func NewHumanDelay(profile DelayProfile) *HumanDelay {
	switch profile {
	case ProfileCautious:
		return &HumanDelay{MinDelay: 900 * time.Millisecond, MaxDelay: 2 * time.Second}
	case ProfileAggressive:
		return &HumanDelay{MinDelay: 100 * time.Millisecond, MaxDelay: 300 * time.Millisecond}
	default: // normal
		return &HumanDelay{MinDelay: 300 * time.Millisecond, MaxDelay: 800 * time.Millisecond}
	}
}

// Wait sleeps for a random duration within the configured range.
// Used between whole-listing scrapes in batch mode.
func (h *HumanDelay) Wait(ctx context.Context) error {
	select {
	case <-time.After(h.randomBetween(h.MinDelay, h.MaxDelay)):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Jitter returns a small random add-on for per-round settle delays
// inside the collection loop.
func (h *HumanDelay) Jitter() time.Duration {
	return h.randomBetween(0, h.MaxDelay-h.MinDelay)
}

func (h *HumanDelay) randomBetween(min, max time.Duration) time.Duration {
	if min >= max {
		return min
	}
	return min + time.Duration(rand.Int64N(int64(max-min)))
}
