package yamaps

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeDriver scripts a virtualized list: each round exposes a window of
// items, new ones appearing until newUntil, the scroll hitting the
// bottom from bottomFrom onward.
type fakeDriver struct {
	windows      [][]RawReview // per-round extraction results; last one repeats
	bottomFrom   int           // round index from which Scroll reports AtBottom
	failExtract  map[int]bool  // rounds where Extract errors
	round        int
	extractCalls int
}

func (f *fakeDriver) ClickShowMore(ctx context.Context) bool { return false }

func (f *fakeDriver) Scroll(ctx context.Context) ScrollInfo {
	at := f.round >= f.bottomFrom
	return ScrollInfo{Mode: "container", Moved: !at, AtBottom: at}
}

func (f *fakeDriver) Settle(ctx context.Context) { f.round++ }

func (f *fakeDriver) Extract(ctx context.Context) ([]RawReview, error) {
	f.extractCalls++
	if f.failExtract[f.round] {
		return nil, errors.New("evaluate: context destroyed")
	}
	i := f.round
	if i >= len(f.windows) {
		i = len(f.windows) - 1
	}
	return f.windows[i], nil
}

func item(n int) RawReview {
	return RawReview{
		Author:   fmt.Sprintf("user-%d", n),
		Rating:   1 + n%5,
		DateText: "вчера",
		Text:     fmt.Sprintf("review %d", n),
	}
}

func TestCollectorConvergence(t *testing.T) {
	// New items stop appearing after round 3; the collector must stop
	// within stallRounds extra rounds, far from the hard cap.
	windows := [][]RawReview{
		{item(0), item(1)},
		{item(1), item(2)},
		{item(2), item(3)},
		{item(2), item(3)}, // nothing new from here on
	}
	d := &fakeDriver{windows: windows, bottomFrom: 3}
	c := &collector{maxRounds: 100, stallRounds: 3}

	got, err := c.run(context.Background(), d)
	require.NoError(t, err)
	assert.Len(t, got, 4)
	assert.LessOrEqual(t, d.extractCalls, 3+3+1, "should converge, not run to the cap")
}

func TestCollectorPreservesDiscoveryOrder(t *testing.T) {
	windows := [][]RawReview{
		{item(2), item(0)},
		{item(0), item(1)},
		{item(0), item(1)},
	}
	d := &fakeDriver{windows: windows, bottomFrom: 1}
	c := &collector{maxRounds: 50, stallRounds: 2}

	got, err := c.run(context.Background(), d)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "user-2", got[0].Author)
	assert.Equal(t, "user-0", got[1].Author)
	assert.Equal(t, "user-1", got[2].Author)
}

func TestCollectorDeduplicatesAcrossRounds(t *testing.T) {
	// The same card rendered in overlapping windows counts once.
	windows := [][]RawReview{
		{item(0), item(1)},
		{item(1), item(0)},
		{item(0)},
	}
	d := &fakeDriver{windows: windows, bottomFrom: 0}
	c := &collector{maxRounds: 50, stallRounds: 2}

	got, err := c.run(context.Background(), d)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestCollectorLimitReturnsEarly(t *testing.T) {
	windows := [][]RawReview{
		{item(0), item(1), item(2), item(3), item(4)},
	}
	// Never at bottom: without the limit this would run to maxRounds.
	d := &fakeDriver{windows: windows, bottomFrom: 1 << 30}
	c := &collector{limit: 3, maxRounds: 40, stallRounds: 6}

	got, err := c.run(context.Background(), d)
	require.NoError(t, err)
	assert.Len(t, got, 3)
	assert.Equal(t, 1, d.extractCalls)
}

func TestCollectorDropsEmptyItems(t *testing.T) {
	empty := RawReview{Author: "ghost", DateText: "вчера"}
	windows := [][]RawReview{
		{empty, item(0)},
		{empty, item(0)},
	}
	d := &fakeDriver{windows: windows, bottomFrom: 0}
	c := &collector{maxRounds: 50, stallRounds: 2}

	got, err := c.run(context.Background(), d)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "user-0", got[0].Author)
}

func TestCollectorToleratesExtractFailures(t *testing.T) {
	windows := [][]RawReview{
		{item(0)},
		{item(1)},
		{item(1)},
	}
	d := &fakeDriver{
		windows:     windows,
		bottomFrom:  2,
		failExtract: map[int]bool{1: true},
	}
	c := &collector{maxRounds: 50, stallRounds: 2}

	got, err := c.run(context.Background(), d)
	require.NoError(t, err)
	// Round 1's window is lost to the failure but the run survives and
	// keeps what the other rounds produced.
	assert.Len(t, got, 2)
}

func TestCollectorHardCapWhenNeverAtBottom(t *testing.T) {
	windows := [][]RawReview{{item(0)}}
	d := &fakeDriver{windows: windows, bottomFrom: 1 << 30}
	c := &collector{maxRounds: 10, stallRounds: 2}

	got, err := c.run(context.Background(), d)
	require.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, 10, d.extractCalls)
}

func TestCollectorContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	d := &fakeDriver{windows: [][]RawReview{{item(0)}}}
	c := &collector{maxRounds: 10, stallRounds: 2}

	_, err := c.run(ctx, d)
	assert.ErrorIs(t, err, context.Canceled)
}
