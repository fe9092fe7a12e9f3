package monitor

import (
	"math"
	"testing"
	"time"

	"blockwatch.cc/procwatch/proc"
)

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestTakeSample(t *testing.T) {
	s, err := TakeSample(writeProcfs(t))
	if err != nil {
		t.Fatalf("take sample: %v", err)
	}
	if s.Timestamp.IsZero() {
		t.Error("sample misses timestamp")
	}
	if have, want := s.Stat.ContextSwitches, uint64(2979164); have != want {
		t.Errorf("ctxt mismatch: have=%d want=%d", have, want)
	}
	if _, ok := s.Disks["sda1"]; !ok {
		t.Error("sda1 missing")
	}
	if have, want := s.Uptime.Up, 620922*time.Second+430*time.Millisecond; have != want {
		t.Errorf("uptime mismatch: have=%s want=%s", have, want)
	}
}

func TestUsageBetween(t *testing.T) {
	t0 := time.Unix(1714000000, 0).UTC()
	prev := &Sample{
		Timestamp: t0,
		Stat: &proc.Stat{
			Cpu: proc.CpuStat{User: 100, System: 50, Idle: 800, IOWait: 50},
			Cpus: []proc.CpuStat{
				{User: 50, System: 25, Idle: 400, IOWait: 25},
				{User: 50, System: 25, Idle: 400, IOWait: 25},
			},
		},
		Disks: proc.DiskStats{
			"sda": {ReadsCompleted: 100, SectorsRead: 1000, WritesCompleted: 10, SectorsWritten: 100},
		},
	}
	cur := &Sample{
		Timestamp: t0.Add(time.Second),
		Stat: &proc.Stat{
			Cpu: proc.CpuStat{User: 200, System: 100, Idle: 1600, IOWait: 100},
			Cpus: []proc.CpuStat{
				{User: 150, System: 50, Idle: 775, IOWait: 25},
				{User: 50, System: 75, Idle: 825, IOWait: 50},
			},
		},
		Disks: proc.DiskStats{
			"sda": {ReadsCompleted: 200, SectorsRead: 3000, WritesCompleted: 20, SectorsWritten: 200, TimeIO: 500 * time.Millisecond},
			"sdb": {ReadsCompleted: 5},
		},
	}

	u, err := UsageBetween(prev, cur)
	if err != nil {
		t.Fatalf("usage: %v", err)
	}
	if have, want := u.Interval, time.Second; have != want {
		t.Errorf("interval mismatch: have=%s want=%s", have, want)
	}
	if !near(u.Cpu.User, 10) {
		t.Errorf("user pct mismatch: have=%g want=10", u.Cpu.User)
	}
	if !near(u.Cpu.System, 5) {
		t.Errorf("system pct mismatch: have=%g want=5", u.Cpu.System)
	}
	if !near(u.Cpu.Idle, 80) {
		t.Errorf("idle pct mismatch: have=%g want=80", u.Cpu.Idle)
	}
	if !near(u.Cpu.IOWait, 5) {
		t.Errorf("iowait pct mismatch: have=%g want=5", u.Cpu.IOWait)
	}
	if !near(u.Cpu.Busy, 15) {
		t.Errorf("busy pct mismatch: have=%g want=15", u.Cpu.Busy)
	}
	if have, want := len(u.Cores), 2; have != want {
		t.Fatalf("core count mismatch: have=%d want=%d", have, want)
	}
	if !near(u.Cores[0].User, 20) {
		t.Errorf("core0 user pct mismatch: have=%g want=20", u.Cores[0].User)
	}

	// sdb has no previous counters and is skipped
	if have, want := len(u.Disks), 1; have != want {
		t.Fatalf("device rate count mismatch: have=%d want=%d", have, want)
	}
	sda := u.Disks["sda"]
	if !near(sda.ReadsPerSec, 100) {
		t.Errorf("sda reads/s mismatch: have=%g want=100", sda.ReadsPerSec)
	}
	if !near(sda.WritesPerSec, 10) {
		t.Errorf("sda writes/s mismatch: have=%g want=10", sda.WritesPerSec)
	}
	if !near(sda.ReadBytesPerSec, 2000*SectorSize) {
		t.Errorf("sda read bytes/s mismatch: have=%g want=%d", sda.ReadBytesPerSec, 2000*SectorSize)
	}
	if !near(sda.WriteBytesPerSec, 100*SectorSize) {
		t.Errorf("sda write bytes/s mismatch: have=%g want=%d", sda.WriteBytesPerSec, 100*SectorSize)
	}
	if !near(sda.Util, 50) {
		t.Errorf("sda util mismatch: have=%g want=50", sda.Util)
	}
}

func TestUsageBetweenErrors(t *testing.T) {
	t0 := time.Unix(1714000000, 0).UTC()
	s := &Sample{Timestamp: t0, Stat: &proc.Stat{}}
	if _, err := UsageBetween(nil, s); err != ErrNoSample {
		t.Errorf("nil prev error mismatch: have=%v want=%v", err, ErrNoSample)
	}
	if _, err := UsageBetween(s, nil); err != ErrNoSample {
		t.Errorf("nil cur error mismatch: have=%v want=%v", err, ErrNoSample)
	}
	if _, err := UsageBetween(s, s); err != ErrBadInterval {
		t.Errorf("same timestamp error mismatch: have=%v want=%v", err, ErrBadInterval)
	}

	// counter reset after reboot yields zero usage, not an error
	prev := &Sample{Timestamp: t0, Stat: &proc.Stat{Cpu: proc.CpuStat{User: 1000, Idle: 1000}}}
	cur := &Sample{Timestamp: t0.Add(time.Second), Stat: &proc.Stat{Cpu: proc.CpuStat{User: 1, Idle: 1}}}
	u, err := UsageBetween(prev, cur)
	if err != nil {
		t.Fatalf("usage after reset: %v", err)
	}
	if u.Cpu != (CpuUsage{}) {
		t.Errorf("usage after reset mismatch: have=%+v want zero", u.Cpu)
	}
}
