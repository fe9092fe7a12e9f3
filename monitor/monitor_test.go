package monitor

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// writeProcfs fills a fixture procfs directory and returns its path.
func writeProcfs(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range map[string]string{
		"stat":      statFixture,
		"diskstats": diskFixture,
		"uptime":    uptimeFixture,
	} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestMonitorSample(t *testing.T) {
	m := New(Config{Root: writeProcfs(t), Interval: time.Second})
	if have, want := m.State(), STATE_STARTING; have != want {
		t.Errorf("state mismatch: have=%s want=%s", have, want)
	}
	if m.Last() != nil {
		t.Error("unexpected sample before first pass")
	}
	if _, err := m.Usage(); err != ErrNoSample {
		t.Errorf("usage error mismatch: have=%v want=%v", err, ErrNoSample)
	}

	m.sampleOnce()
	s := m.Last()
	if s == nil {
		t.Fatal("no sample after first pass")
	}
	if have, want := len(s.Stat.Cpus), 2; have != want {
		t.Errorf("core count mismatch: have=%d want=%d", have, want)
	}
	if have, want := len(s.Disks), 2; have != want {
		t.Errorf("device count mismatch: have=%d want=%d", have, want)
	}
	if have, want := m.State(), STATE_RUNNING; have != want {
		t.Errorf("state mismatch: have=%s want=%s", have, want)
	}

	m.sampleOnce()
	if _, err := m.Usage(); err != nil {
		t.Errorf("usage after two passes: %v", err)
	}
	status := m.Status()
	if have, want := status.Samples, int64(2); have != want {
		t.Errorf("sample count mismatch: have=%d want=%d", have, want)
	}
	if have, want := status.Errors, int64(0); have != want {
		t.Errorf("error count mismatch: have=%d want=%d", have, want)
	}
	if status.LastTime.IsZero() {
		t.Error("status misses last sample time")
	}
}

func TestMonitorSampleFailure(t *testing.T) {
	m := New(Config{Root: filepath.Join(t.TempDir(), "nope"), Interval: time.Second})
	m.sampleOnce()
	if m.Last() != nil {
		t.Error("unexpected sample from broken procfs")
	}
	if have, want := m.State(), STATE_FAILED; have != want {
		t.Errorf("state mismatch: have=%s want=%s", have, want)
	}
	if have, want := m.Status().Errors, int64(1); have != want {
		t.Errorf("error count mismatch: have=%d want=%d", have, want)
	}
}

func TestMonitorStartStop(t *testing.T) {
	m := New(Config{Root: writeProcfs(t), Interval: time.Minute})
	m.Start()

	// the sampler takes its first sample before the first tick
	deadline := time.Now().Add(2 * time.Second)
	for m.Last() == nil && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if m.Last() == nil {
		t.Fatal("no sample after start")
	}

	m.Stop(context.Background())
	if have, want := m.State(), STATE_STOPPED; have != want {
		t.Errorf("state mismatch: have=%s want=%s", have, want)
	}
	// stopping twice is a no-op
	m.Stop(context.Background())
}

const statFixture = `cpu  300 0 150 2400 150 0 0 0 0 0
cpu0 150 0 75 1200 75 0 0 0 0 0
cpu1 150 0 75 1200 75 0 0 0 0 0
intr 1042487 9 0 0 0
ctxt 2979164
btime 1640915847
processes 661
procs_running 1
procs_blocked 0
softirq 569430 3 29275 5397
`

const diskFixture = `   8       0 sda 521417 235672 22348877 304934 339410 376859 23719913 514977 0 331096 643956
   8       1 sda1 512206 233741 22191317 303455 318851 376859 23719913 512922 0 329094 639420
`

const uptimeFixture = "620922.43 4979376.52\n"
