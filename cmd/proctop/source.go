// Copyright (c) 2024-2025 Blockwatch Data Inc.
// Authors: abdul@blockwatch.cc, alex@blockwatch.cc
package main

import (
	"os"
	"sort"

	"blockwatch.cc/procwatch/monitor"
	"blockwatch.cc/procwatch/proc"
)

// Source produces one fresh model per poll tick, either from the
// local procfs or from a remote procwatchd server.
type Source interface {
	Sample() (Model, error)
	Origin() string
}

type localSource struct {
	root     string
	hostname string
	aliases  *monitor.AliasSet
	last     *monitor.Sample
}

func newLocalSource(root, aliasFile string) (*localSource, error) {
	s := &localSource{root: root}
	s.hostname, _ = os.Hostname()
	if aliasFile != "" {
		a, err := monitor.LoadAliases(aliasFile)
		if err != nil {
			return nil, err
		}
		s.aliases = a
		log.Infof("Loaded %d device aliases from %s", a.Len(), aliasFile)
	}
	return s, nil
}

func (s *localSource) Origin() string {
	return s.root
}

func (s *localSource) Sample() (Model, error) {
	cur, err := monitor.TakeSample(s.root)
	if err != nil {
		return Model{}, err
	}
	m := Model{
		Time:     cur.Timestamp,
		Hostname: s.hostname,
		Stat:     cur.Stat,
		Uptime:   cur.Uptime,
	}
	if s.last != nil {
		if u, err := monitor.UsageBetween(s.last, cur); err == nil {
			m.Usage = u
		}
	}
	s.last = cur
	m.Disks = collectDisks(cur.Disks, s.aliases, m.Usage)
	return m, nil
}

func collectDisks(disks proc.DiskStats, aliases *monitor.AliasSet, usage *monitor.Usage) []Disk {
	names := make([]string, 0, len(disks))
	for n := range disks {
		names = append(names, n)
	}
	sort.Strings(names)
	res := make([]Disk, 0, len(names))
	for _, n := range names {
		d := Disk{DiskStat: disks[n]}
		if a, ok := aliases.Lookup(n); ok {
			d.Alias = &a
		}
		if usage != nil {
			if r, ok := usage.Disks[n]; ok {
				d.Rate = &r
			}
		}
		res = append(res, d)
	}
	return res
}

type remoteSource struct {
	c *Client
}

func (s *remoteSource) Origin() string {
	return s.c.cfg.BaseURL
}

func (s *remoteSource) Sample() (Model, error) {
	cpu, err := s.c.GetCpuStat()
	if err != nil {
		return Model{}, err
	}
	disks, err := s.c.GetDiskStats()
	if err != nil {
		return Model{}, err
	}
	up, err := s.c.GetUptime()
	if err != nil {
		return Model{}, err
	}
	sys, err := s.c.GetSysStats()
	if err != nil {
		return Model{}, err
	}
	return Model{
		Time:     cpu.Timestamp,
		Hostname: sys.Hostname,
		Stat:     cpu.Stat,
		Usage:    cpu.Usage,
		Uptime:   up.Uptime,
		Disks:    disks.Disks,
		Sampler:  &sys.Sampler,
	}, nil
}
