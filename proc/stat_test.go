package proc

import (
	"math"
	"strings"
	"testing"
)

func TestReadStat(t *testing.T) {
	s, err := ReadStat(strings.NewReader(statFixture))
	if err != nil {
		t.Fatalf("read stat: %v", err)
	}
	if have, want := len(s.Cpus), 4; have != want {
		t.Errorf("core count mismatch: have=%d want=%d", have, want)
	}
	if have, want := s.Cpu.User, uint64(6973); have != want {
		t.Errorf("aggregate user mismatch: have=%d want=%d", have, want)
	}
	if have, want := s.Cpu.SoftIRQ, uint64(281); have != want {
		t.Errorf("aggregate softirq mismatch: have=%d want=%d", have, want)
	}
	if have, want := s.Cpus[0].User, uint64(1731); have != want {
		t.Errorf("cpu0 user mismatch: have=%d want=%d", have, want)
	}
	if have, want := s.Cpus[2].Idle, uint64(53498); have != want {
		t.Errorf("cpu2 idle mismatch: have=%d want=%d", have, want)
	}
	if have, want := s.ContextSwitches, uint64(13979164); have != want {
		t.Errorf("ctxt mismatch: have=%d want=%d", have, want)
	}
	if have, want := s.BootTime, uint64(1640915847); have != want {
		t.Errorf("btime mismatch: have=%d want=%d", have, want)
	}
	if have, want := s.Booted().Unix(), int64(1640915847); have != want {
		t.Errorf("boot time mismatch: have=%d want=%d", have, want)
	}
	if have, want := s.Processes, uint64(9661); have != want {
		t.Errorf("processes mismatch: have=%d want=%d", have, want)
	}
	if have, want := s.ProcsRunning, uint64(2); have != want {
		t.Errorf("procs_running mismatch: have=%d want=%d", have, want)
	}
	if have, want := s.ProcsBlocked, uint64(0); have != want {
		t.Errorf("procs_blocked mismatch: have=%d want=%d", have, want)
	}
}

func TestReadStatOldKernel(t *testing.T) {
	// pre 2.6 files carry page, swap and disk_io lines between the
	// counters we decode
	s, err := ReadStat(strings.NewReader(statOldFixture))
	if err != nil {
		t.Fatalf("read stat: %v", err)
	}
	if have, want := len(s.Cpus), 0; have != want {
		t.Errorf("core count mismatch: have=%d want=%d", have, want)
	}
	if have, want := s.ContextSwitches, uint64(100); have != want {
		t.Errorf("ctxt mismatch: have=%d want=%d", have, want)
	}
	if have, want := s.BootTime, uint64(200); have != want {
		t.Errorf("btime mismatch: have=%d want=%d", have, want)
	}
	if have, want := s.Processes, uint64(300); have != want {
		t.Errorf("processes mismatch: have=%d want=%d", have, want)
	}
}

func TestCpuTotal(t *testing.T) {
	c := CpuStat{User: 6973, Nice: 456, System: 4899, Idle: 214234, IOWait: 1873, SoftIRQ: 281}
	want := c.User + c.Nice + c.System + c.Idle + c.IOWait + c.IRQ + c.SoftIRQ + c.Steal + c.Guest
	have, err := c.Total()
	if err != nil {
		t.Fatalf("total: %v", err)
	}
	if have != want {
		t.Errorf("total mismatch: have=%d want=%d", have, want)
	}

	c = CpuStat{User: math.MaxUint64, Nice: 1}
	if _, err := c.Total(); !IsInvariant(err) {
		t.Errorf("overflow error mismatch: have=%v want invariant", err)
	}
}

func TestReadStatErrors(t *testing.T) {
	for _, v := range []struct {
		name  string
		in    string
		check func(error) bool
	}{
		{"empty", "", IsEndOfStream},
		{"truncated", statTruncatedFixture, IsEndOfStream},
		{"not a stat file", "intr 12 3 4\n", IsDecode},
		{"bad aggregate counter", "cpu 1 2 x 4 5 6 7 8 9\n", IsDecode},
		{"bad core counter", "cpu 1 2 3 4 5 6 7 8 9\ncpu0 1 2 3 4 x 6 7 8 9\n", IsDecode},
		{"label out of order", statOutOfOrderFixture, IsDecode},
		{"bad label value", "cpu 1 2 3 4 5 6 7 8 9\nctxt x\n", IsDecode},
		{"label trailing garbage", "cpu 1 2 3 4 5 6 7 8 9\nctxt 5 9\n", IsDecode},
	} {
		s, err := ReadStat(strings.NewReader(v.in))
		if err == nil || !v.check(err) {
			t.Errorf("%s: error mismatch: have=%v", v.name, err)
		}
		if s != nil {
			t.Errorf("%s: decoded a partial result", v.name)
		}
	}
}

// four cores with ten counter columns as written by kernels past 2.6.33
const statFixture = `cpu  6973 456 4899 214234 1873 0 281 0 0 0
cpu0 1731 119 1251 53379 462 0 96 0 0 0
cpu1 1745 111 1233 53411 475 0 61 0 0 0
cpu2 1750 108 1205 53498 460 0 58 0 0 0
cpu3 1745 117 1209 53945 474 0 64 0 0 0
intr 8032487 9 0 0 0 0 0 0 0 1 4 0 0 156 0 0 0 0
ctxt 13979164
btime 1640915847
processes 9661
procs_running 2
procs_blocked 0
softirq 4569430 3 1629275 5397 67971 50278 0 5391 1355183 0 1455932
`

const statOldFixture = `cpu 1 2 3 4 5 6 7 8 9
page 5741 1808
ctxt 100
swap 1 0
btime 200
disk_io: (2,0):(31,30,5764,1,2)
processes 300
procs_running 1
procs_blocked 2
`

const statTruncatedFixture = `cpu  6973 456 4899 214234 1873 0 281 0 0 0
cpu0 1731 119 1251 53379 462 0 96 0 0 0
intr 8032487 9 0 0
ctxt 13979164
btime 1640915847
`

const statOutOfOrderFixture = `cpu  6973 456 4899 214234 1873 0 281 0 0 0
btime 1640915847
ctxt 13979164
processes 9661
procs_running 2
procs_blocked 0
`
