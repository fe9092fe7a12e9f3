// Copyright (c) 2024-2025 Blockwatch Data Inc.
// Authors: abdul@blockwatch.cc, alex@blockwatch.cc
package main

import (
	"time"

	"blockwatch.cc/procwatch/monitor"
	"blockwatch.cc/procwatch/proc"
)

func (c *Client) GetCpuStat() (CpuResponse, error) {
	var cpu CpuResponse
	err := c.get("/system/cpu?usage=1", &cpu)
	return cpu, err
}

type CpuResponse struct {
	Timestamp time.Time      `json:"time"`
	Stat      *proc.Stat     `json:"stat"`
	Usage     *monitor.Usage `json:"usage"`
}

func (c *Client) GetDiskStats() (DiskResponse, error) {
	var disks DiskResponse
	err := c.get("/system/disks?rates=1", &disks)
	return disks, err
}

type DiskResponse struct {
	Timestamp time.Time `json:"time"`
	Disks     []Disk    `json:"disks"`
}

func (c *Client) GetUptime() (UptimeResponse, error) {
	var up UptimeResponse
	err := c.get("/system/uptime", &up)
	return up, err
}

type UptimeResponse struct {
	Timestamp time.Time    `json:"time"`
	Uptime    *proc.Uptime `json:"uptime"`
	Booted    time.Time    `json:"booted"`
}

func (c *Client) GetSysStats() (SysStat, error) {
	var sys SysStat
	err := c.get("/system/sysstat", &sys)
	return sys, err
}

type SysStat struct {
	Hostname      string    `json:"hostname"`
	ContainerName string    `json:"container_name"`
	Timestamp     time.Time `json:"timestamp"`

	NumCpu       int    `json:"num_cpu"`
	NumGoroutine int    `json:"num_goroutine"`
	NumThreads   uint64 `json:"num_threads"`
	TotalMem     uint64 `json:"total_mem"`

	VmRss uint64 `json:"vm_rss"` // Resident set size. (mapped + anon + shm)

	CpuUser  float64 `json:"cpu_user"`
	CpuSys   float64 `json:"cpu_system"`
	CpuTotal float64 `json:"cpu_total"`

	Sampler monitor.Status `json:"sampler"`
}
