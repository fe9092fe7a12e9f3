// Copyright (c) 2024-2025 Blockwatch Data Inc.
// Authors: abdul@blockwatch.cc, alex@blockwatch.cc
package main

import (
	"fmt"
	"strings"
	"time"

	"blockwatch.cc/procwatch/monitor"
	"blockwatch.cc/procwatch/proc"
)

type Model struct {
	Time     time.Time
	Origin   string
	Every    time.Duration
	Hostname string
	Stat     *proc.Stat
	Uptime   *proc.Uptime
	Disks    []Disk
	Usage    *monitor.Usage
	Sampler  *monitor.Status
	Error    error
}

func (m Model) IsValid() bool {
	return !m.Time.IsZero()
}

func (m Model) NumCores() int {
	if m.Stat == nil {
		return 0
	}
	return len(m.Stat.Cpus)
}

func (m Model) BootTime() time.Time {
	if m.Stat == nil {
		return time.Time{}
	}
	return time.Unix(int64(m.Stat.BootTime), 0)
}

// RowCount returns the number of table rows in the active view mode.
func (m Model) RowCount() int {
	if viewMode == ViewCpus {
		return m.NumCores() + 1
	}
	return len(m.Disks)
}

// Disk is a single device row, combining raw counters with the
// optional alias and rates known for the device.
type Disk struct {
	proc.DiskStat
	Alias *monitor.Alias    `json:"alias,omitempty"`
	Rate  *monitor.DiskRate `json:"rate,omitempty"`
}

func (d Disk) AliasName() string {
	if d.Alias == nil {
		return ""
	}
	return d.Alias.Name
}

// IsPartition detects child partitions (sda1 below sda, nvme0n1p2
// below nvme0n1) so the table can render them as a tree.
func (d Disk) IsPartition(all []Disk) bool {
	parent := parentDevice(d.Name)
	if parent == d.Name {
		return false
	}
	for _, v := range all {
		if v.Name == parent {
			return true
		}
	}
	return false
}

func parentDevice(name string) string {
	p := strings.TrimRight(name, "0123456789")
	if strings.HasSuffix(p, "p") {
		if q := strings.TrimSuffix(p, "p"); q != "" && q[len(q)-1] >= '0' && q[len(q)-1] <= '9' {
			p = q
		}
	}
	return p
}

func (d Disk) GetIops() string {
	if d.Rate == nil {
		return "-- / --"
	}
	return fmt.Sprintf("%3.1f / %3.1f", d.Rate.ReadsPerSec, d.Rate.WritesPerSec)
}

func (d Disk) GetThroughput() string {
	if d.Rate == nil {
		return "-- / --"
	}
	return FormatBytes(int(d.Rate.ReadBytesPerSec)) + " / " + FormatBytes(int(d.Rate.WriteBytesPerSec))
}

func (d Disk) GetUtil() string {
	if d.Rate == nil {
		return "-- %"
	}
	return fmt.Sprintf("%.1f%%", d.Rate.Util)
}
