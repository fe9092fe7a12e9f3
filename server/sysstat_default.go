// Copyright (c) 2020-2021 Blockwatch Data Inc.
// Author: alex@blockwatch.cc
//go:build !linux
// +build !linux

package server

import (
	"context"
	"runtime"
	"time"
)

func GetSysStat(ctx context.Context) (SysStat, error) {
	s := SysStat{
		Timestamp: time.Now().UTC(),
	}
	s.Hostname, s.ContainerName = hostnames()
	s.NumCpu = runtime.NumCPU()
	s.NumGoroutine = runtime.NumGoroutine()

	// mem + sys
	memStats := &runtime.MemStats{}
	runtime.ReadMemStats(memStats)
	s.MemMallocs = memStats.Mallocs
	s.MemFrees = memStats.Frees
	s.MemHeapAlloc = memStats.HeapAlloc
	s.MemStackInuse = memStats.StackInuse

	return s, nil
}
