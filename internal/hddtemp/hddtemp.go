// Package hddtemp reads drive temperatures reported by hddtemp.
package hddtemp

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/sigreer/disks/internal/command"
)

// Reading is one parsed hddtemp line.
type Reading struct {
	Device      string // device name without /dev/
	Temperature int
	Unit        string // C or F
	Text        string // temperature as printed, e.g. 35°C
}

// Band classifies a temperature.
type Band int

const (
	Cool Band = iota
	Normal
	Warm
	Hot
)

func (b Band) String() string {
	switch b {
	case Hot:
		return "hot"
	case Warm:
		return "warm"
	case Normal:
		return "normal"
	default:
		return "cool"
	}
}

// BandFor returns Hot at 50 and above, Warm from 40, Normal from 25 and Cool
// below that.
func BandFor(temp int) Band {
	switch {
	case temp >= 50:
		return Hot
	case temp >= 40:
		return Warm
	case temp >= 25:
		return Normal
	default:
		return Cool
	}
}

// ParseError reports hddtemp output that is not "<device>: <model>: <temp>°<unit>".
type ParseError struct {
	Output string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("unexpected hddtemp output %q: %s", e.Output, e.Reason)
}

// Parse parses a single hddtemp line, e.g.
//
//	/dev/sda: WDC WD40EFRX-68WT0N0: 35°C
func Parse(output string) (Reading, error) {
	line := strings.TrimRight(output, " \t\r\n")
	parts := strings.Split(line, ": ")
	if len(parts) != 3 {
		return Reading{}, &ParseError{Output: line, Reason: fmt.Sprintf("expected 3 fields separated by \": \", got %d", len(parts))}
	}

	device := strings.TrimPrefix(parts[0], "/dev/")
	if device == "" {
		return Reading{}, &ParseError{Output: line, Reason: "empty device name"}
	}

	value, unit, ok := strings.Cut(parts[2], "°")
	if !ok {
		return Reading{}, &ParseError{Output: line, Reason: "no degree symbol"}
	}
	temp, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return Reading{}, &ParseError{Output: line, Reason: fmt.Sprintf("invalid temperature %q", value)}
	}

	return Reading{
		Device:      device,
		Temperature: temp,
		Unit:        unit,
		Text:        parts[2],
	}, nil
}

// Probe checks whether hddtemp can be run against the first device.
func Probe(ctx context.Context, r command.Runner, devices []string) command.Permission {
	if len(devices) == 0 {
		return command.Denied("no devices configured")
	}
	return command.Probe(ctx, r, "hddtemp", devices[0])
}

// DeviceError is a per-device collection failure.
type DeviceError struct {
	Device string
	Err    error
}

func (e *DeviceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Device, e.Err)
}

func (e *DeviceError) Unwrap() error { return e.Err }

// Collect reads every device independently. Readings holds the devices that
// succeeded in configuration order; failures are returned separately so the
// caller can still report the rest.
func Collect(ctx context.Context, r command.Runner, devices []string) ([]Reading, []*DeviceError) {
	var readings []Reading
	var failures []*DeviceError
	for _, dev := range devices {
		out, err := r.Run(ctx, "hddtemp", dev)
		if err != nil {
			failures = append(failures, &DeviceError{Device: dev, Err: err})
			continue
		}
		reading, err := Parse(string(out))
		if err != nil {
			failures = append(failures, &DeviceError{Device: dev, Err: err})
			continue
		}
		readings = append(readings, reading)
	}
	return readings, failures
}
