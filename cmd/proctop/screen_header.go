// Copyright (c) 2024-2025 Blockwatch Data Inc.
// Authors: abdul@blockwatch.cc, alex@blockwatch.cc
package main

import (
	"fmt"

	"github.com/awesome-gocui/gocui"
)

func createHeaderContainer(g *gocui.Gui) (*View, error) {
	maxX, _ := g.Size()
	v, err := NewView("HeaderContainer", 0, 0, maxX-1, 2, g, func(g *gocui.View, res Model) error {
		return nil
	})
	if err != nil {
		return nil, err
	}
	return v, nil
}

func createHeaderLeft(g *gocui.Gui) (*View, error) {
	maxX, _ := g.Size()
	v, err := NewView("HeaderLeft", 0, 0, maxX/3, 2, g, func(v *gocui.View, res Model) error {
		v.Frame = false
		if res.IsValid() && res.Hostname != "" {
			fmt.Fprintf(v, " "+res.Hostname)
		} else {
			fmt.Fprint(v, " -- ")
		}
		SlantedSpacer(v)
		fmt.Fprint(v, res.NumCores(), " cores")
		SlantedSpacer(v)
		fmt.Fprint(v, len(res.Disks), " devices")
		return nil
	})
	if err != nil {
		return nil, err
	}
	return v, nil
}

func createHeaderCenter(g *gocui.Gui) (*View, error) {
	maxX, _ := g.Size()
	v, err := NewView("HeaderCenter", maxX/2-30, 0, maxX/2+30, 2, g, func(v *gocui.View, res Model) error {
		v.Frame = false
		if res.Usage != nil {
			fmt.Fprintf(v, "CPU %.2f%%", res.Usage.Cpu.Busy)
		} else {
			fmt.Fprint(v, "CPU --%")
		}
		VerticalSpacer(v)
		fmt.Fprint(v, "UP ")
		if res.Uptime != nil {
			fmt.Fprintf(v, "%s", FormatUptime(res.Uptime.Up))
		} else {
			fmt.Fprint(v, " -- ")
		}
		VerticalSpacer(v)
		fmt.Fprint(v, "PROCS ")
		if res.Stat != nil {
			fmt.Fprintf(v, "%d run", res.Stat.ProcsRunning)
			SlantedSpacer(v)
			fmt.Fprintf(v, "%d blk", res.Stat.ProcsBlocked)
		} else {
			fmt.Fprint(v, " -- ")
			SlantedSpacer(v)
			fmt.Fprint(v, " -- ")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return v, nil
}

func createHeaderRight(g *gocui.Gui) (*View, error) {
	maxX, _ := g.Size()
	v, err := NewView("HeaderRight", maxX-16, 0, maxX-1, 2, g, func(v *gocui.View, res Model) error {
		v.Frame = false
		if res.IsValid() {
			fmt.Fprintf(v, "%s", res.Time.Format("15:04 Jan 2"))
		} else {
			fmt.Fprint(v, "--:-- --- --")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return v, nil
}
