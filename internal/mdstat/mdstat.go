// Package mdstat parses the Linux software RAID status file (/proc/mdstat).
//
// Example input:
//
//	Personalities : [raid1] [linear] [multipath] [raid0] [raid6] [raid5] [raid4] [raid10]
//	md0 : active raid1 sdc1[1] sdb1[0]
//	      9766302720 blocks super 1.2 [2/2] [UU]
//	      bitmap: 0/73 pages [0KB], 65536KB chunk
//
//	md1 : active raid1 sda1[0] sde1[1]
//	      1000072192 blocks super 1.2 [2/2] [UU]
//	      bitmap: 4/8 pages [16KB], 65536KB chunk
//
//	unused devices: <none>
package mdstat

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Health of an array.
type Health string

const (
	Healthy  Health = "HEALTHY"
	Degraded Health = "DEGRADED"
	Failed   Health = "FAILED"
)

// StateActive is the array state that distinguishes degraded from failed.
const StateActive = "active"

// Array is one md device.
type Array struct {
	Name    string
	State   string // active, inactive
	Level   string // raid1, raid5, ... or "-" when not reported
	Total   int
	Active  int
	Failed  int
	Devices string // per-member status, e.g. UU or U_
	Health  Health
}

// ParseError reports a status line that cannot be interpreted.
type ParseError struct {
	Line   int
	Text   string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("mdstat line %d %q: %s", e.Line, e.Text, e.Reason)
}

// ReadFile reads and parses a status file.
func ReadFile(path string) ([]Array, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return Parse(string(data))
}

// Parse folds step over every line and flushes the array still being built
// once input ends, so a final array without a trailing blank line is kept.
func Parse(text string) ([]Array, error) {
	s := newState()
	for i, line := range strings.Split(text, "\n") {
		var err error
		if s, err = step(s, line); err != nil {
			if perr, ok := err.(*ParseError); ok {
				perr.Line = i + 1
			}
			return nil, err
		}
	}
	return s.flush().arrays, nil
}

// state is the parser's accumulator: the array being built and every array
// completed so far.
type state struct {
	current Array
	arrays  []Array
}

func newState() state {
	return state{current: Array{Health: Healthy}}
}

// flush emits the current array if it has been named and starts a new one.
func (s state) flush() state {
	if s.current.Name != "" {
		s.arrays = append(s.arrays, s.current)
	}
	s.current = Array{Health: Healthy}
	return s
}

// step advances the parser by one line.
func step(s state, line string) (state, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return s.flush(), nil
	}

	switch fields[0] {
	case "Personalities", "unused":
		return s, nil
	}

	if line[0] != ' ' && line[0] != '\t' {
		// A header without a blank line before it still starts a new array
		if s.current.Name != "" {
			s = s.flush()
		}
		return parseHeader(s, line)
	}

	if strings.Contains(line, "blocks") {
		return parseBlocks(s, line)
	}

	// bitmap, resync progress and other continuation lines
	return s, nil
}

// parseHeader reads "md0 : active raid1 sdc1[1] sdb1[0]".
func parseHeader(s state, line string) (state, error) {
	fields := strings.Fields(strings.ReplaceAll(line, ":", ""))
	if len(fields) < 2 {
		return s, &ParseError{Text: line, Reason: "expected array name and state"}
	}

	s.current.Name = fields[0]
	s.current.State = fields[1]
	s.current.Level = "-"

	for _, f := range fields[2:] {
		// (auto-read-only), (read-only)
		if strings.HasPrefix(f, "(") {
			continue
		}
		// inactive arrays list members straight after the state
		if !strings.Contains(f, "[") {
			s.current.Level = f
		}
		break
	}
	return s, nil
}

// parseBlocks reads "9766302720 blocks super 1.2 [2/2] [UU]".
func parseBlocks(s state, line string) (state, error) {
	_, drives, ok := strings.Cut(line, " [")
	if !ok {
		return s, &ParseError{Text: line, Reason: "no device counts"}
	}
	groups := strings.SplitN(drives, "] [", 2)
	if len(groups) != 2 {
		return s, &ParseError{Text: line, Reason: "no device status"}
	}

	totalStr, activeStr, ok := strings.Cut(groups[0], "/")
	if !ok {
		return s, &ParseError{Text: line, Reason: fmt.Sprintf("invalid device counts %q", groups[0])}
	}
	total, err := strconv.Atoi(totalStr)
	if err != nil {
		return s, &ParseError{Text: line, Reason: fmt.Sprintf("invalid total devices %q", totalStr)}
	}
	active, err := strconv.Atoi(activeStr)
	if err != nil {
		return s, &ParseError{Text: line, Reason: fmt.Sprintf("invalid active devices %q", activeStr)}
	}

	s.current.Total = total
	s.current.Active = active
	s.current.Failed = max(total-active, 0)
	s.current.Devices = strings.TrimSpace(strings.ReplaceAll(groups[1], "]", ""))
	s.current.Health = classify(s.current.State, s.current.Failed)
	return s, nil
}

// classify maps failed members to a health value. Only "active" is treated
// as still serving data; resync and recovery are not distinguished.
func classify(state string, failed int) Health {
	if failed == 0 {
		return Healthy
	}
	if state == StateActive {
		return Degraded
	}
	return Failed
}
