// Copyright (c) 2024-2025 Blockwatch Data Inc.
// Author: alex@blockwatch.cc

package proc

import (
	"io"
	"os"
	"time"
)

// DiskStat holds the counters of one device line in /proc/diskstats.
// Sector counts are in 512 byte units regardless of the device sector
// size. Time fields are decoded from millisecond counters.
type DiskStat struct {
	Major           uint64        `json:"major"`
	Minor           uint64        `json:"minor"`
	Name            string        `json:"name"`
	ReadsCompleted  uint64        `json:"reads_completed"`
	ReadsMerged     uint64        `json:"reads_merged"`
	SectorsRead     uint64        `json:"sectors_read"`
	TimeReading     time.Duration `json:"time_reading"`
	WritesCompleted uint64        `json:"writes_completed"`
	WritesMerged    uint64        `json:"writes_merged"`
	SectorsWritten  uint64        `json:"sectors_written"`
	TimeWriting     time.Duration `json:"time_writing"`
	IOsInProgress   uint64        `json:"ios_in_progress"`
	TimeIO          time.Duration `json:"time_io"`
	TimeIOWeighted  time.Duration `json:"time_io_weighted"`
}

// DiskStats maps device names to their counters. Iteration order is
// not defined.
type DiskStats map[string]DiskStat

// parseDiskLine decodes the 14 mandatory columns of one device line.
// Newer kernels append discard and flush columns which are ignored.
func parseDiskLine(line string) (DiskStat, error) {
	var (
		d    DiskStat
		rest = line
		ok   bool
	)
	if d.Major, rest, ok = scanUint(rest); !ok {
		return d, decodeError("major number")
	}
	if d.Minor, rest, ok = scanUint(rest); !ok {
		return d, decodeError("minor number")
	}
	if d.Name, rest, ok = scanToken(rest); !ok {
		return d, decodeError("device name")
	}
	if d.ReadsCompleted, rest, ok = scanUint(rest); !ok {
		return d, decodeError("reads completed successfully")
	}
	if d.ReadsMerged, rest, ok = scanUint(rest); !ok {
		return d, decodeError("reads merged")
	}
	if d.SectorsRead, rest, ok = scanUint(rest); !ok {
		return d, decodeError("sectors read")
	}
	if d.TimeReading, rest, ok = scanMillis(rest); !ok {
		return d, decodeError("time spent reading (ms)")
	}
	if d.WritesCompleted, rest, ok = scanUint(rest); !ok {
		return d, decodeError("writes completed")
	}
	if d.WritesMerged, rest, ok = scanUint(rest); !ok {
		return d, decodeError("writes merged")
	}
	if d.SectorsWritten, rest, ok = scanUint(rest); !ok {
		return d, decodeError("sectors written")
	}
	if d.TimeWriting, rest, ok = scanMillis(rest); !ok {
		return d, decodeError("time spent writing (ms)")
	}
	if d.IOsInProgress, rest, ok = scanUint(rest); !ok {
		return d, decodeError("I/Os currently in progress")
	}
	if d.TimeIO, rest, ok = scanMillis(rest); !ok {
		return d, decodeError("time spent doing I/Os (ms)")
	}
	if d.TimeIOWeighted, _, ok = scanMillis(rest); !ok {
		return d, decodeError("weighted time spent doing I/Os (ms)")
	}
	return d, nil
}

// ReadDiskStats decodes a complete /proc/diskstats style document from
// r. Every line must decode. A device name appearing twice breaks the
// kernel contract and fails the whole read.
func ReadDiskStats(r io.Reader) (DiskStats, error) {
	lr := NewLineReader(r)
	stats := make(DiskStats)
	for {
		line, err := lr.Peek()
		if err != nil {
			if IsEndOfStream(err) {
				return stats, nil
			}
			return nil, err
		}
		d, err := parseDiskLine(line)
		if err != nil {
			return nil, err
		}
		if _, ok := stats[d.Name]; ok {
			return nil, invariantError("duplicate device %q", d.Name)
		}
		stats[d.Name] = d
		lr.Consume()
	}
}

// ReadDiskStatsFile reads and decodes the file at path.
func ReadDiskStatsFile(path string) (DiskStats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, ioError(err)
	}
	defer f.Close()
	return ReadDiskStats(f)
}
