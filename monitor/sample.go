// Copyright (c) 2024-2025 Blockwatch Data Inc.
// Author: alex@blockwatch.cc

package monitor

import (
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"time"

	"blockwatch.cc/procwatch/proc"
)

var (
	// ErrNoSample is an error that indicates the monitor has not
	// collected enough samples yet.
	ErrNoSample = errors.New("no sample yet")

	// ErrBadInterval is an error that indicates two samples are in
	// the wrong order or share a timestamp.
	ErrBadInterval = errors.New("invalid sample interval")
)

// SectorSize is the fixed unit of the diskstats sector counters,
// independent of the logical sector size of the device.
const SectorSize = 512

// Sample bundles one decoding pass over the monitored procfs files.
type Sample struct {
	Timestamp time.Time      `json:"time"`
	Stat      *proc.Stat     `json:"stat"`
	Disks     proc.DiskStats `json:"disks"`
	Uptime    *proc.Uptime   `json:"uptime"`
}

// TakeSample decodes stat, diskstats and uptime below the procfs mount
// point at root. A decode failure in any file fails the whole sample.
func TakeSample(root string) (*Sample, error) {
	s := &Sample{Timestamp: time.Now().UTC()}
	var err error
	if s.Stat, err = proc.ReadStatFile(filepath.Join(root, "stat")); err != nil {
		return nil, fmt.Errorf("monitor: stat: %w", err)
	}
	if s.Disks, err = proc.ReadDiskStatsFile(filepath.Join(root, "diskstats")); err != nil {
		return nil, fmt.Errorf("monitor: diskstats: %w", err)
	}
	if s.Uptime, err = proc.ReadUptimeFile(filepath.Join(root, "uptime")); err != nil {
		return nil, fmt.Errorf("monitor: uptime: %w", err)
	}
	return s, nil
}

// CpuUsage holds percentages over one sample interval. Busy covers
// everything that is neither idle nor waiting for io.
type CpuUsage struct {
	User   float64 `json:"user"`
	Nice   float64 `json:"nice"`
	System float64 `json:"system"`
	Idle   float64 `json:"idle"`
	IOWait float64 `json:"iowait"`
	Steal  float64 `json:"steal"`
	Busy   float64 `json:"busy"`
}

// DiskRate holds per device io rates over one sample interval. Byte
// rates derive from sector counters times SectorSize. Util is the
// share of wall time the device had io in flight.
type DiskRate struct {
	ReadsPerSec      float64 `json:"reads_per_sec"`
	WritesPerSec     float64 `json:"writes_per_sec"`
	ReadBytesPerSec  float64 `json:"read_bytes_per_sec"`
	WriteBytesPerSec float64 `json:"write_bytes_per_sec"`
	Util             float64 `json:"util"`
}

// Usage holds all rates computed between two samples.
type Usage struct {
	Cpu      CpuUsage            `json:"cpu"`
	Cores    []CpuUsage          `json:"cores,omitempty"`
	Disks    map[string]DiskRate `json:"disks,omitempty"`
	Interval time.Duration       `json:"interval"`
}

// UsageBetween computes usage rates from two samples of the same
// source, prev taken before cur. Devices and cores missing from either
// sample are skipped.
func UsageBetween(prev, cur *Sample) (*Usage, error) {
	if prev == nil || cur == nil {
		return nil, ErrNoSample
	}
	ival := cur.Timestamp.Sub(prev.Timestamp)
	if ival <= 0 {
		return nil, ErrBadInterval
	}
	u := &Usage{
		Interval: ival,
		Disks:    make(map[string]DiskRate, len(cur.Disks)),
	}
	var err error
	if u.Cpu, err = cpuUsage(prev.Stat.Cpu, cur.Stat.Cpu); err != nil {
		return nil, err
	}
	for i, c := range cur.Stat.Cpus {
		if i >= len(prev.Stat.Cpus) {
			break
		}
		core, err := cpuUsage(prev.Stat.Cpus[i], c)
		if err != nil {
			return nil, err
		}
		u.Cores = append(u.Cores, core)
	}
	for name, d := range cur.Disks {
		if pd, ok := prev.Disks[name]; ok {
			u.Disks[name] = diskRate(pd, d, ival)
		}
	}
	return u, nil
}

func cpuUsage(prev, cur proc.CpuStat) (CpuUsage, error) {
	pt, err := prev.Total()
	if err != nil {
		return CpuUsage{}, err
	}
	ct, err := cur.Total()
	if err != nil {
		return CpuUsage{}, err
	}
	// counters stall on idle tickless kernels and reset on reboot
	if ct <= pt {
		return CpuUsage{}, nil
	}
	dt := float64(ct - pt)
	pct := func(c, p uint64) float64 {
		if c <= p {
			return 0
		}
		return float64(c-p) * 100 / dt
	}
	u := CpuUsage{
		User:   pct(cur.User, prev.User),
		Nice:   pct(cur.Nice, prev.Nice),
		System: pct(cur.System, prev.System),
		Idle:   pct(cur.Idle, prev.Idle),
		IOWait: pct(cur.IOWait, prev.IOWait),
		Steal:  pct(cur.Steal, prev.Steal),
	}
	u.Busy = math.Max(0, 100-u.Idle-u.IOWait)
	return u, nil
}

func diskRate(prev, cur proc.DiskStat, ival time.Duration) DiskRate {
	secs := ival.Seconds()
	delta := func(c, p uint64) float64 {
		if c <= p {
			return 0
		}
		return float64(c - p)
	}
	r := DiskRate{
		ReadsPerSec:      delta(cur.ReadsCompleted, prev.ReadsCompleted) / secs,
		WritesPerSec:     delta(cur.WritesCompleted, prev.WritesCompleted) / secs,
		ReadBytesPerSec:  delta(cur.SectorsRead, prev.SectorsRead) * SectorSize / secs,
		WriteBytesPerSec: delta(cur.SectorsWritten, prev.SectorsWritten) * SectorSize / secs,
	}
	if busy := cur.TimeIO - prev.TimeIO; busy > 0 {
		r.Util = math.Min(100, float64(busy)*100/float64(ival))
	}
	return r
}
