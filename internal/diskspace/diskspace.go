// Package diskspace parses `df -h` tables into per-mount usage records.
package diskspace

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/sigreer/disks/internal/command"
	"github.com/sigreer/disks/internal/config"
)

// BarWidth is the number of characters in a usage bar.
const BarWidth = 42

// Usage is one parsed df data line.
type Usage struct {
	Filesystem string
	Size       string
	Used       string
	Available  string
	Percent    int
	Mountpoint string
	Line       string // the data line as printed by df
}

// Severity classifies a usage percentage.
type Severity int

const (
	Normal Severity = iota
	Warning
	Critical
)

func (s Severity) String() string {
	switch s {
	case Critical:
		return "critical"
	case Warning:
		return "warning"
	default:
		return "normal"
	}
}

// SeverityFor returns Critical at 90% and above, Warning from 70% and Normal
// below that.
func SeverityFor(percent int) Severity {
	switch {
	case percent >= 90:
		return Critical
	case percent >= 70:
		return Warning
	default:
		return Normal
	}
}

// Fill returns the number of filled bar characters for percent.
func Fill(percent int) int {
	return percent * BarWidth / 100
}

// FormatError reports a df line that does not have the expected columns.
type FormatError struct {
	Line   string
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("unexpected df output %q: %s", e.Line, e.Reason)
}

// Parse scans df output for the header line and the data line of mountpoint.
// Columns: Filesystem, Size, Used, Avail, Use%, Mounted on.
// A mount point with no data line yields a nil record and no error.
func Parse(output, mountpoint string) (string, *Usage, error) {
	var header string
	for _, line := range strings.Split(output, "\n") {
		if header == "" && strings.HasPrefix(line, "Filesystem") {
			header = line
			continue
		}

		cols := strings.Fields(line)
		if len(cols) == 0 || cols[len(cols)-1] != mountpoint {
			continue
		}
		if len(cols) < 6 {
			return header, nil, &FormatError{Line: line, Reason: fmt.Sprintf("expected 6 columns, got %d", len(cols))}
		}

		pct := strings.TrimSuffix(cols[4], "%")
		percent, err := strconv.Atoi(pct)
		if err != nil {
			return header, nil, &FormatError{Line: line, Reason: fmt.Sprintf("invalid use%% %q", cols[4])}
		}
		if percent < 0 || percent > 100 {
			return header, nil, &FormatError{Line: line, Reason: fmt.Sprintf("use%% %d out of range", percent)}
		}

		return header, &Usage{
			Filesystem: cols[0],
			Size:       cols[1],
			Used:       cols[2],
			Available:  cols[3],
			Percent:    percent,
			Mountpoint: mountpoint,
			Line:       line,
		}, nil
	}
	return header, nil, nil
}

// Entry pairs a configured disk with its usage.
type Entry struct {
	Disk  config.Disk
	Usage Usage
}

// Report is the collected result for every configured mount point.
type Report struct {
	Header  string // first df header seen
	Entries []Entry
}

// Collect runs df for each disk in order. -P keeps long device names from
// wrapping onto a second line. The first command or format error
// aborts collection. Mount points df does not report are skipped.
func Collect(ctx context.Context, r command.Runner, disks []config.Disk) (*Report, error) {
	rep := &Report{}
	for _, d := range disks {
		out, err := r.Run(ctx, "df", "-hP", d.Mountpoint)
		if err != nil {
			return nil, err
		}

		header, usage, err := Parse(string(out), d.Mountpoint)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", d.Mountpoint, err)
		}
		if rep.Header == "" {
			rep.Header = header
		}
		if usage == nil {
			continue
		}
		rep.Entries = append(rep.Entries, Entry{Disk: d, Usage: *usage})
	}
	return rep, nil
}
