package hddtemp

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sigreer/disks/internal/command"
)

func TestParse(t *testing.T) {
	r, err := Parse("/dev/sda: WDC WD40EFRX-68WT0N0: 35°C\n")
	require.NoError(t, err)

	assert.Equal(t, Reading{Device: "sda", Temperature: 35, Unit: "C", Text: "35°C"}, r)
}

func TestParseFahrenheit(t *testing.T) {
	r, err := Parse("/dev/sdb: ST8000NM0055: 104°F")
	require.NoError(t, err)
	assert.Equal(t, "sdb", r.Device)
	assert.Equal(t, 104, r.Temperature)
	assert.Equal(t, "F", r.Unit)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name   string
		output string
	}{
		{"empty", ""},
		{"two fields", "/dev/sda: 35°C"},
		{"four fields", "/dev/sda: WDC: extra: 35°C"},
		{"sleeping drive", "/dev/sda: WDC WD40EFRX: drive is sleeping"},
		{"not a number", "/dev/sda: WDC: hot°C"},
		{"no device", ": WDC: 35°C"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.output)
			var perr *ParseError
			assert.True(t, errors.As(err, &perr), "got %v", err)
		})
	}
}

func TestBandFor(t *testing.T) {
	for temp := -10; temp <= 80; temp++ {
		got := BandFor(temp)
		switch {
		case temp >= 50:
			assert.Equal(t, Hot, got, "temp %d", temp)
		case temp >= 40:
			assert.Equal(t, Warm, got, "temp %d", temp)
		case temp >= 25:
			assert.Equal(t, Normal, got, "temp %d", temp)
		default:
			assert.Equal(t, Cool, got, "temp %d", temp)
		}
	}
}

func TestProbe(t *testing.T) {
	fake := &command.Fake{Results: map[string]command.Result{
		"hddtemp /dev/sda": {Output: "/dev/sda: WDC: 35°C\n"},
	}}

	assert.True(t, Probe(context.Background(), fake, []string{"/dev/sda", "/dev/sdb"}).Permitted)
	assert.False(t, Probe(context.Background(), fake, []string{"/dev/sdb"}).Permitted)
	assert.False(t, Probe(context.Background(), fake, nil).Permitted)
}

func TestCollectPartialFailure(t *testing.T) {
	fake := &command.Fake{Results: map[string]command.Result{
		"hddtemp /dev/sda": {Output: "/dev/sda: WDC WD40EFRX: 35°C\n"},
		"hddtemp /dev/sdb": {Output: "/dev/sdb: WDC WD40EFRX: drive is sleeping\n"},
		"hddtemp /dev/sdd": {Output: "/dev/sdd: ST8000NM0055: 52°C\n"},
	}}

	readings, failures := Collect(context.Background(), fake, []string{"/dev/sda", "/dev/sdb", "/dev/sdc", "/dev/sdd"})

	require.Len(t, readings, 2)
	assert.Equal(t, "sda", readings[0].Device)
	assert.Equal(t, "sdd", readings[1].Device)
	assert.Equal(t, Hot, BandFor(readings[1].Temperature))

	require.Len(t, failures, 2)
	assert.Equal(t, "/dev/sdb", failures[0].Device)
	var perr *ParseError
	assert.True(t, errors.As(failures[0], &perr))

	assert.Equal(t, "/dev/sdc", failures[1].Device)
	var cerr *command.CommandError
	assert.True(t, errors.As(failures[1], &cerr))
}
