// Copyright (c) 2024-2025 Blockwatch Data Inc.
// Author: alex@blockwatch.cc

package proc

import (
	"io"
	"os"
	"strings"
	"time"
)

// CpuStat holds the counters of one cpu line in /proc/stat. Values
// count USER_HZ ticks spent in each state since boot.
type CpuStat struct {
	User    uint64 `json:"user"`
	Nice    uint64 `json:"nice"`
	System  uint64 `json:"system"`
	Idle    uint64 `json:"idle"`
	IOWait  uint64 `json:"iowait"`
	IRQ     uint64 `json:"irq"`
	SoftIRQ uint64 `json:"softirq"`
	Steal   uint64 `json:"steal"`
	Guest   uint64 `json:"guest"`
}

// Total returns the sum of all counters. Counters large enough to wrap
// the sum fail with an invariant error.
func (c CpuStat) Total() (uint64, error) {
	var sum uint64
	for _, v := range [...]uint64{
		c.User, c.Nice, c.System, c.Idle, c.IOWait,
		c.IRQ, c.SoftIRQ, c.Steal, c.Guest,
	} {
		if sum+v < sum {
			return 0, invariantError("cpu counter total overflows")
		}
		sum += v
	}
	return sum, nil
}

// Stat is a decoded /proc/stat snapshot. Cpus preserves the file order
// of the per-core lines. Counter lines the decoder does not model,
// like intr and softirq, are skipped.
type Stat struct {
	Cpu             CpuStat   `json:"cpu"`
	Cpus            []CpuStat `json:"cpus"`
	ContextSwitches uint64    `json:"ctxt"`
	BootTime        uint64    `json:"btime"`
	Processes       uint64    `json:"processes"`
	ProcsRunning    uint64    `json:"procs_running"`
	ProcsBlocked    uint64    `json:"procs_blocked"`
}

// Booted returns the boot time as wall clock time.
func (s *Stat) Booted() time.Time {
	return time.Unix(int64(s.BootTime), 0)
}

// parseCpuLine decodes one cpu line. A line whose first token does not
// start with "cpu" is no match. Columns after the guest counter are
// ignored so files from newer kernels with extra fields keep decoding.
func parseCpuLine(line string) (CpuStat, bool, error) {
	tok, rest, ok := scanToken(line)
	if !ok || !strings.HasPrefix(tok, "cpu") {
		return CpuStat{}, false, nil
	}
	var c CpuStat
	for _, f := range []struct {
		name string
		dst  *uint64
	}{
		{"cpu user counter", &c.User},
		{"cpu nice counter", &c.Nice},
		{"cpu system counter", &c.System},
		{"cpu idle counter", &c.Idle},
		{"cpu iowait counter", &c.IOWait},
		{"cpu irq counter", &c.IRQ},
		{"cpu softirq counter", &c.SoftIRQ},
		{"cpu steal counter", &c.Steal},
		{"cpu guest counter", &c.Guest},
	} {
		v, r, ok := scanUint(rest)
		if !ok {
			return CpuStat{}, true, decodeError(f.name)
		}
		*f.dst, rest = v, r
	}
	return c, true, nil
}

// statLabels lists the labeled counter lines decoded from /proc/stat
// in their kernel order.
var statLabels = [...]string{
	"ctxt", "btime", "processes", "procs_running", "procs_blocked",
}

func isStatLabel(tok string) bool {
	for _, l := range statLabels {
		if tok == l {
			return true
		}
	}
	return false
}

// readStatLabel scans forward to the line starting with label and
// decodes its single counter. Unmodeled lines in between are skipped.
// Finding one of the other modeled labels instead means the expected
// line is missing from the file.
func readStatLabel(lr *LineReader, label string, dst *uint64) error {
	for {
		line, err := lr.Peek()
		if err != nil {
			return err
		}
		tok, rest, ok := scanToken(line)
		if ok && tok == label {
			v, tail, ok := scanUint(rest)
			if !ok || skipSpace(tail) != "" {
				return decodeError(label)
			}
			*dst = v
			lr.Consume()
			return nil
		}
		if ok && isStatLabel(tok) {
			return decodeError(label)
		}
		if ok {
			log.Tracef("stat: skipping %s line", tok)
		}
		lr.Consume()
	}
}

// ReadStat decodes a complete /proc/stat style document from r. The
// first line must carry the aggregate cpu counters, followed by one
// line per core and the labeled counter lines.
func ReadStat(r io.Reader) (*Stat, error) {
	lr := NewLineReader(r)
	s := &Stat{}

	if err := lr.ParseLine(func(line string) error {
		cpu, ok, err := parseCpuLine(line)
		if err != nil {
			return err
		}
		if !ok {
			return decodeError("cpu summary line")
		}
		s.Cpu = cpu
		return nil
	}); err != nil {
		return nil, err
	}

	for {
		line, err := lr.Peek()
		if err != nil {
			if IsEndOfStream(err) {
				break
			}
			return nil, err
		}
		cpu, ok, err := parseCpuLine(line)
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		s.Cpus = append(s.Cpus, cpu)
		lr.Consume()
	}

	for _, f := range []struct {
		label string
		dst   *uint64
	}{
		{"ctxt", &s.ContextSwitches},
		{"btime", &s.BootTime},
		{"processes", &s.Processes},
		{"procs_running", &s.ProcsRunning},
		{"procs_blocked", &s.ProcsBlocked},
	} {
		if err := readStatLabel(lr, f.label, f.dst); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// ReadStatFile reads and decodes the file at path.
func ReadStatFile(path string) (*Stat, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, ioError(err)
	}
	defer f.Close()
	return ReadStat(f)
}
