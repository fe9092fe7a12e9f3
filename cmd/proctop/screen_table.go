// Copyright (c) 2024-2025 Blockwatch Data Inc.
// Authors: abdul@blockwatch.cc, alex@blockwatch.cc
package main

import (
	"strconv"
	"time"

	"blockwatch.cc/procwatch/monitor"
	"github.com/awesome-gocui/gocui"
	"github.com/fatih/color"
)

const TableName string = "Table"

const (
	MIN_CELLWIDTH = 5
)

// table display modes
const (
	ViewDisks = iota
	ViewCpus
)

var viewMode int = ViewDisks

var diskHeaders []*TableHeader = []*TableHeader{
	{
		Label: "#",
		Width: MIN_CELLWIDTH,
	},
	{
		Label: "DEVICE",
		Align: AlignLeft,
		Width: 20,
	},
	{
		Label: "ALIAS",
		Align: AlignLeft,
		Width: 18,
	},
	{
		Label: "READS",
		Align: AlignRight,
		Width: 12,
	},
	{
		Label: "WRITES",
		Align: AlignRight,
		Width: 12,
	},
	{
		Label: "IOPS",
		Align: AlignSlash,
		Width: 17,
	},
	{
		Label: "THROUGHPUT",
		Align: AlignSlash,
		Width: 25,
	},
	{
		Label: "UTIL",
		Align: AlignRight,
		Width: 8,
	},
	{
		Label: "INFLIGHT",
		Align: AlignRight,
		Width: 10,
	},
	{
		Label: "IOTIME",
		Align: AlignRight,
	},
}

var cpuHeaders []*TableHeader = []*TableHeader{
	{
		Label: "#",
		Width: MIN_CELLWIDTH,
	},
	{
		Label: "CPU",
		Align: AlignLeft,
		Width: 8,
	},
	{
		Label: "USER",
		Align: AlignRight,
		Width: 9,
	},
	{
		Label: "SYSTEM",
		Align: AlignRight,
		Width: 9,
	},
	{
		Label: "IOWAIT",
		Align: AlignRight,
		Width: 9,
	},
	{
		Label: "STEAL",
		Align: AlignRight,
		Width: 9,
	},
	{
		Label: "IDLE",
		Align: AlignRight,
		Width: 9,
	},
	{
		Label: "BUSY",
		Align: AlignRight,
		Width: 9,
	},
	{
		Label: "",
		Align: AlignLeft,
	},
}

func createTable(g *gocui.Gui) (*View, error) {
	maxX, maxY := g.Size()
	v, err := NewView(TableName, 0, 2, maxX-1, maxY-1, g, func(v *gocui.View, res Model) error {
		maxX, maxY = g.Size()
		tbl := NewTable()
		tbl.SetWidth(maxX - 1)
		switch viewMode {
		case ViewCpus:
			drawCpus(tbl, res)
		default:
			drawDisks(tbl, res)
		}
		tbl.Fprint(v)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return v, nil
}

func drawDisks(tbl *Table, res Model) {
	tbl.SetHeader(diskHeaders)
	for i := writePos; i < len(res.Disks); i++ {
		d := res.Disks[i]
		row := make([]*RowCell, 0, 10)
		// set position
		row = append(row, &RowCell{
			Text: strconv.FormatInt(int64(i+1), 10),
		})
		// set device name, partitions sort below their disk
		if d.IsPartition(res.Disks) {
			row = append(row, &RowCell{
				Text: "└─ " + d.Name,
			})
		} else {
			row = append(row, &RowCell{
				Text: d.Name,
			})
		}
		// set alias
		row = append(row, &RowCell{
			Text: d.AliasName(),
		})
		// set read/write op counters
		row = append(row, &RowCell{
			Text: FormatPretty(d.ReadsCompleted),
		})
		row = append(row, &RowCell{
			Text: FormatPretty(d.WritesCompleted),
		})
		// set iops
		row = append(row, &RowCell{
			Text: d.GetIops(),
		})
		// set throughput
		row = append(row, &RowCell{
			Text: d.GetThroughput(),
		})
		// set utilization
		row = append(row, &RowCell{
			Text: d.GetUtil(),
		})
		// set in-flight requests
		row = append(row, &RowCell{
			Text: FormatPretty(d.IOsInProgress),
		})
		// set total io time
		row = append(row, &RowCell{
			Text: d.TimeIO.Truncate(time.Second).String(),
		})
		tr := &Row{
			RowCells: row,
		}
		if i == position {
			bgSelect := color.New(color.BgCyan, color.FgBlack)
			tr.Color = bgSelect.Sprintf
		}
		tbl.AddRow(tr)
	}
}

func drawCpus(tbl *Table, res Model) {
	tbl.SetHeader(cpuHeaders)
	for i := writePos; i < res.NumCores()+1; i++ {
		var (
			name string
			u    *monitor.CpuUsage
		)
		if i == 0 {
			name = "all"
			if res.Usage != nil {
				u = &res.Usage.Cpu
			}
		} else {
			name = "cpu" + strconv.Itoa(i-1)
			if res.Usage != nil && i-1 < len(res.Usage.Cores) {
				u = &res.Usage.Cores[i-1]
			}
		}
		row := make([]*RowCell, 0, 9)
		row = append(row, &RowCell{
			Text: strconv.FormatInt(int64(i+1), 10),
		})
		row = append(row, &RowCell{
			Text: name,
		})
		if u != nil {
			for _, f := range []float64{u.User, u.System, u.IOWait, u.Steal, u.Idle, u.Busy} {
				row = append(row, &RowCell{
					Text: strconv.FormatFloat(f, 'f', 1, 64) + "%",
				})
			}
			row = append(row, &RowCell{
				Text: Bar(u.Busy/100, 30),
			})
		} else {
			for j := 0; j < 6; j++ {
				row = append(row, &RowCell{
					Text: "-- %",
				})
			}
			row = append(row, &RowCell{
				Text: Bar(0, 30),
			})
		}
		tr := &Row{
			RowCells: row,
		}
		if i == position {
			bgSelect := color.New(color.BgCyan, color.FgBlack)
			tr.Color = bgSelect.Sprintf
		}
		tbl.AddRow(tr)
	}
}
