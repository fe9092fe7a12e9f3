package monitor

import (
	"path/filepath"
	"testing"
	"time"

	"blockwatch.cc/procwatch/proc"
)

func openTestHistory(t *testing.T, keep time.Duration) *History {
	t.Helper()
	h, err := OpenHistory(filepath.Join(t.TempDir(), "history.db"), keep, nil)
	if err != nil {
		t.Fatalf("open history: %v", err)
	}
	t.Cleanup(func() { h.Close() })
	return h
}

func sampleAt(ts time.Time) *Sample {
	return &Sample{
		Timestamp: ts,
		Stat:      &proc.Stat{ContextSwitches: uint64(ts.UnixMilli())},
	}
}

func TestHistoryRange(t *testing.T) {
	h := openTestHistory(t, 0)
	t0 := time.Unix(1714000000, 0).UTC()
	for i := 0; i < 3; i++ {
		if err := h.Put(sampleAt(t0.Add(time.Duration(i) * time.Second))); err != nil {
			t.Fatalf("put %d: %v", i, err)
		}
	}

	n, err := h.Len()
	if err != nil {
		t.Fatalf("len: %v", err)
	}
	if have, want := n, 3; have != want {
		t.Errorf("len mismatch: have=%d want=%d", have, want)
	}

	all, err := h.Range(time.Time{}, 0)
	if err != nil {
		t.Fatalf("range: %v", err)
	}
	if have, want := len(all), 3; have != want {
		t.Fatalf("range count mismatch: have=%d want=%d", have, want)
	}
	for i := 1; i < len(all); i++ {
		if !all[i].Timestamp.After(all[i-1].Timestamp) {
			t.Errorf("range out of order at %d: %s before %s", i, all[i].Timestamp, all[i-1].Timestamp)
		}
	}

	tail, err := h.Range(t0.Add(time.Second), 0)
	if err != nil {
		t.Fatalf("range since: %v", err)
	}
	if have, want := len(tail), 2; have != want {
		t.Errorf("range since count mismatch: have=%d want=%d", have, want)
	}

	capped, err := h.Range(time.Time{}, 2)
	if err != nil {
		t.Fatalf("range limit: %v", err)
	}
	if have, want := len(capped), 2; have != want {
		t.Errorf("range limit count mismatch: have=%d want=%d", have, want)
	}
	if have, want := capped[0].Timestamp, t0; !have.Equal(want) {
		t.Errorf("range start mismatch: have=%s want=%s", have, want)
	}
}

func TestHistoryPrune(t *testing.T) {
	h := openTestHistory(t, time.Hour)
	now := time.Now().UTC()
	if err := h.Put(sampleAt(now.Add(-2 * time.Hour))); err != nil {
		t.Fatalf("put old: %v", err)
	}
	if err := h.Put(sampleAt(now)); err != nil {
		t.Fatalf("put new: %v", err)
	}

	n, err := h.Prune()
	if err != nil {
		t.Fatalf("prune: %v", err)
	}
	if have, want := n, 1; have != want {
		t.Errorf("pruned count mismatch: have=%d want=%d", have, want)
	}
	left, err := h.Len()
	if err != nil {
		t.Fatalf("len: %v", err)
	}
	if have, want := left, 1; have != want {
		t.Errorf("len after prune mismatch: have=%d want=%d", have, want)
	}
}
