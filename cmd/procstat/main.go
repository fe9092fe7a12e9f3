// Copyright (c) 2024-2025 Blockwatch Data Inc.
// Author: alex@blockwatch.cc

package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"blockwatch.cc/procwatch/proc"
	"github.com/echa/log"
)

var (
	flags    = flag.NewFlagSet("procstat", flag.ContinueOnError)
	verbose  bool
	nocolor  bool
	procfs   string
	fpath    string
	interval time.Duration
)

func init() {
	flags.Usage = func() {}
	flags.BoolVar(&verbose, "v", false, "be verbose")
	flags.BoolVar(&nocolor, "no-color", false, "disable color output")
	flags.StringVar(&procfs, "procfs", "/proc", "procfs mount point")
	flags.StringVar(&fpath, "f", "", "extract JSON `path` from output")
	flags.DurationVar(&interval, "i", 400*time.Millisecond, "watch sampling interval")
}

func main() {
	if err := flags.Parse(os.Args[1:]); err != nil {
		if err == flag.ErrHelp {
			fmt.Println("Usage: procstat [flags] <cmd>")
			flags.PrintDefaults()
			fmt.Println("\nCommands")
			fmt.Printf("  stat            decode and print /proc/stat\n")
			fmt.Printf("  disks           decode and print /proc/diskstats\n")
			fmt.Printf("  uptime          decode and print /proc/uptime\n")
			fmt.Printf("  watch           continuously print aggregate cpu usage\n")
			fmt.Println("\nPaths")
			fmt.Printf("  -f takes a dotted path into the JSON document, e.g.\n")
			fmt.Printf("  procstat -f cpu.user stat\n")
			fmt.Printf("  procstat -f sda.reads_completed disks\n")
			os.Exit(0)
		}
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	if verbose {
		log.SetLevel(log.LevelDebug)
	}

	if err := run(); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if flags.NArg() < 1 {
		return fmt.Errorf("command required")
	}
	cmd := flags.Arg(0)

	switch cmd {
	case "stat":
		return showStat()
	case "disks":
		return showDisks()
	case "uptime":
		return showUptime()
	case "watch":
		return watchCpu()
	default:
		return fmt.Errorf("unkown command %s", cmd)
	}
}

func showStat() error {
	s, err := proc.ReadStatFile(filepath.Join(procfs, "stat"))
	if err != nil {
		return err
	}
	return render(s)
}

func showDisks() error {
	d, err := proc.ReadDiskStatsFile(filepath.Join(procfs, "diskstats"))
	if err != nil {
		return err
	}
	return render(d)
}

func showUptime() error {
	u, err := proc.ReadUptimeFile(filepath.Join(procfs, "uptime"))
	if err != nil {
		return err
	}
	return render(u)
}

const (
	// carriage return
	crCode = "\x1b[G"
	// clear to end of line
	clearCode = "\x1b[K"
)

// watchCpu redraws the aggregate cpu usage on a single terminal line
// until interrupted.
func watchCpu() error {
	prev, err := proc.ReadStatFile(filepath.Join(procfs, "stat"))
	if err != nil {
		return err
	}
	for {
		time.Sleep(interval)
		cur, err := proc.ReadStatFile(filepath.Join(procfs, "stat"))
		if err != nil {
			return err
		}
		pt, err := prev.Cpu.Total()
		if err != nil {
			return err
		}
		ct, err := cur.Cpu.Total()
		if err != nil {
			return err
		}
		// counters stall on idle tickless kernels and reset on reboot
		var busy float64
		if ct > pt {
			sum := float64(ct - pt)
			var idle float64
			if cur.Cpu.Idle > prev.Cpu.Idle {
				idle = float64(cur.Cpu.Idle - prev.Cpu.Idle)
			}
			busy = (sum - idle) * 100 / sum
		}
		fmt.Print(crCode)
		fmt.Printf("cpu: %3.0f%% ", busy)
		fmt.Print(clearCode)
		prev = cur
	}
}
