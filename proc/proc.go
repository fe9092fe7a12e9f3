// Copyright (c) 2024-2025 Blockwatch Data Inc.
// Author: alex@blockwatch.cc

// Package proc decodes Linux procfs status files into Go values.
//
// All readers run one synchronous pass over their source and either
// return a complete snapshot or a tagged *Error, never a partial
// result. Sources are explicit io.Readers so tests can feed string
// fixtures; the ReadSystem variants open the live files under /proc.
// Readers share no state, every call decodes fresh kernel data.
package proc

// Default procfs locations used by the ReadSystem functions.
const (
	StatPath      = "/proc/stat"
	DiskStatsPath = "/proc/diskstats"
	UptimePath    = "/proc/uptime"
)

// ReadSystemStat reads and decodes /proc/stat.
func ReadSystemStat() (*Stat, error) {
	return ReadStatFile(StatPath)
}

// ReadSystemDiskStats reads and decodes /proc/diskstats.
func ReadSystemDiskStats() (DiskStats, error) {
	return ReadDiskStatsFile(DiskStatsPath)
}

// ReadSystemUptime reads and decodes /proc/uptime.
func ReadSystemUptime() (*Uptime, error) {
	return ReadUptimeFile(UptimePath)
}
