// Copyright (c) 2024-2025 Blockwatch Data Inc.
// Authors: abdul@blockwatch.cc, alex@blockwatch.cc
package main

import (
	"fmt"

	"github.com/awesome-gocui/gocui"
)

const FooterName string = "Footer"

func createFooter(g *gocui.Gui) (*View, error) {
	maxX, maxY := g.Size()
	v, err := NewView(FooterName, 0, maxY-3, maxX-1, maxY-1, g, func(v *gocui.View, res Model) error {
		v.Frame = true
		if res.Error != nil {
			fmt.Fprint(v, res.Error.Error())
		} else {
			fmt.Fprintf(v, " %s ", res.Origin)
			VerticalSpacer(v)
			if res.Stat != nil {
				fmt.Fprintf(v, " boot %s ", res.BootTime().Format("2006-01-02 15:04:05"))
				SlantedSpacer(v)
				fmt.Fprintf(v, "%s forks ", PrettyUint64(res.Stat.Processes))
				SlantedSpacer(v)
				fmt.Fprintf(v, "ctxt %s ", FormatShort(int(res.Stat.ContextSwitches)))
				VerticalSpacer(v)
			}
			if res.Sampler != nil {
				fmt.Fprintf(v, " samples %s ", PrettyInt64(res.Sampler.Samples))
				if res.Sampler.Errors > 0 {
					SlantedSpacer(v)
					fmt.Fprintf(v, "%s errors ", PrettyInt64(res.Sampler.Errors))
				}
				VerticalSpacer(v)
			}
			fmt.Fprintf(v, " every %s ", res.Every)
			VerticalSpacer(v)
			fmt.Fprint(v, " c cpus  d disks  q quit ")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return v, nil
}
