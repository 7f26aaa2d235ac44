package report

import (
	"github.com/fatih/color"

	"github.com/sigreer/disks/internal/diskspace"
	"github.com/sigreer/disks/internal/hddtemp"
	"github.com/sigreer/disks/internal/mdstat"
)

// palette maps severities to terminal colors.
type palette struct {
	usage  map[diskspace.Severity]*color.Color
	temp   map[hddtemp.Band]*color.Color
	health map[bool]*color.Color // keyed by healthy
}

func newPalette(enabled bool) palette {
	p := palette{
		usage: map[diskspace.Severity]*color.Color{
			diskspace.Normal:   color.New(color.FgGreen),
			diskspace.Warning:  color.New(color.FgYellow),
			diskspace.Critical: color.New(color.FgRed),
		},
		temp: map[hddtemp.Band]*color.Color{
			hddtemp.Cool:   color.New(color.FgBlack, color.BgCyan),
			hddtemp.Normal: color.New(color.FgBlack, color.BgGreen),
			hddtemp.Warm:   color.New(color.FgBlack, color.BgYellow),
			hddtemp.Hot:    color.New(color.FgBlack, color.BgRed),
		},
		health: map[bool]*color.Color{
			true:  color.New(color.BgGreen),
			false: color.New(color.BgRed),
		},
	}

	for _, c := range p.all() {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) all() []*color.Color {
	var all []*color.Color
	for _, c := range p.usage {
		all = append(all, c)
	}
	for _, c := range p.temp {
		all = append(all, c)
	}
	for _, c := range p.health {
		all = append(all, c)
	}
	return all
}

func (p palette) forUsage(percent int) *color.Color {
	return p.usage[diskspace.SeverityFor(percent)]
}

func (p palette) forTemp(temp int) *color.Color {
	return p.temp[hddtemp.BandFor(temp)]
}

func (p palette) forHealth(h mdstat.Health) *color.Color {
	return p.health[h == mdstat.Healthy]
}
