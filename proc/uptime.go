// Copyright (c) 2024-2025 Blockwatch Data Inc.
// Author: alex@blockwatch.cc

package proc

import (
	"io"
	"os"
	"time"
)

// Uptime mirrors /proc/uptime. Up counts wall clock time since boot,
// Idle sums the idle time of all cores and can exceed Up on multi core
// machines.
type Uptime struct {
	Up   time.Duration `json:"up"`
	Idle time.Duration `json:"idle"`
}

// scanSeconds reads one "seconds.fraction" value.
func scanSeconds(s, field string) (time.Duration, string, error) {
	secs, rest, ok := scanUint(s)
	if !ok {
		return 0, s, decodeError(field + " seconds")
	}
	rest, ok = expect(rest, ".")
	if !ok {
		return 0, s, decodeError(field + " seconds")
	}
	ns, rest, ok, err := scanFrac(rest)
	if err != nil {
		return 0, s, err
	}
	if !ok {
		return 0, s, decodeError(field + " fraction")
	}
	return time.Duration(secs)*time.Second + time.Duration(ns), rest, nil
}

// ReadUptime decodes a /proc/uptime style document from r. The single
// line carries uptime and aggregate idle time as fixed point seconds.
func ReadUptime(r io.Reader) (*Uptime, error) {
	lr := NewLineReader(r)
	u := &Uptime{}
	if err := lr.ParseLine(func(line string) error {
		up, rest, err := scanSeconds(line, "uptime")
		if err != nil {
			return err
		}
		idle, rest, err := scanSeconds(rest, "idle time")
		if err != nil {
			return err
		}
		if skipSpace(rest) != "" {
			return decodeError("uptime line")
		}
		u.Up, u.Idle = up, idle
		return nil
	}); err != nil {
		return nil, err
	}
	return u, nil
}

// ReadUptimeFile reads and decodes the file at path.
func ReadUptimeFile(path string) (*Uptime, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, ioError(err)
	}
	defer f.Close()
	return ReadUptime(f)
}
