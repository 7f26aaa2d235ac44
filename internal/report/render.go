package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/sigreer/disks/internal/diskspace"
	"github.com/sigreer/disks/internal/hddtemp"
	"github.com/sigreer/disks/internal/mdstat"
)

// tempsPerLine is how many temperature entries share one output line.
const tempsPerLine = 5

func (p palette) renderUsage(w io.Writer, rep *diskspace.Report) {
	fmt.Fprintln(w, "Hard Disk Usage:")
	if rep.Header != "" {
		fmt.Fprintf(w, "  %s\n", rep.Header)
	}
	for _, e := range rep.Entries {
		fill := diskspace.Fill(e.Usage.Percent)
		used := strings.Repeat("=", fill)
		free := strings.Repeat("=", diskspace.BarWidth-fill)

		fmt.Fprintf(w, "  %s\n", e.Usage.Line)
		fmt.Fprintf(w, "  [%s%s] - %s/%s\n", p.forUsage(e.Usage.Percent).Sprint(used), free, e.Disk.Type, e.Disk.Raid)
	}
	fmt.Fprintln(w)
}

func (p palette) renderTemps(w io.Writer, readings []hddtemp.Reading) {
	if len(readings) == 0 {
		return
	}

	fmt.Fprintln(w, "Hard Disk Temperatures:")
	for i, r := range readings {
		fmt.Fprintf(w, "  %s", p.forTemp(r.Temperature).Sprintf("%s %s", r.Device, r.Text))
		if (i+1)%tempsPerLine == 0 {
			fmt.Fprintln(w)
		}
	}
	if len(readings)%tempsPerLine != 0 {
		fmt.Fprintln(w)
	}
	fmt.Fprintln(w)
}

func (p palette) renderArrays(w io.Writer, arrays []mdstat.Array) {
	if len(arrays) == 0 {
		return
	}

	fmt.Fprintln(w, "mdadm Managed Devices:")
	fmt.Fprintf(w, "  %-6s\t%6s\t%7s\t%5s\t%6s\t%6s\t%s\n",
		"Device", "State", "Level", "Total", "Active", "Failed", "Health")
	for _, a := range arrays {
		fmt.Fprintf(w, "  %-6s\t%6s\t%7s\t%5d\t%6d\t%6d\t%s\n",
			a.Name, a.State, a.Level, a.Total, a.Active, a.Failed,
			p.forHealth(a.Health).Sprint(string(a.Health)))
	}
	fmt.Fprintln(w)
}
