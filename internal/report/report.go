// Package report runs the enabled report sections and writes the colorized
// summary.
package report

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/rs/zerolog/log"

	"github.com/sigreer/disks/internal/command"
	"github.com/sigreer/disks/internal/config"
	"github.com/sigreer/disks/internal/diskspace"
	"github.com/sigreer/disks/internal/hddtemp"
	"github.com/sigreer/disks/internal/mdstat"
)

// Section names, used in diagnostics.
const (
	SectionDiskSpace = "diskspace"
	SectionHDDTemp   = "hddtemp"
	SectionMdstat    = "mdstat"
)

// SectionError is a section that failed and was left out of the report.
type SectionError struct {
	Section string
	Err     error
}

func (e *SectionError) Error() string {
	return fmt.Sprintf("%s: %v", e.Section, e.Err)
}

func (e *SectionError) Unwrap() error { return e.Err }

// partialError marks a section whose output is still worth printing even
// though some of its items failed.
type partialError struct {
	errs []error
}

func (e *partialError) Error() string {
	return errors.Join(e.errs...).Error()
}

func (e *partialError) Unwrap() []error { return e.errs }

// Reporter renders the report sections to an io.Writer.
type Reporter struct {
	runner  command.Runner
	out     io.Writer
	palette palette
}

// New returns a Reporter. Colors follow fatih/color terminal detection,
// which honors NO_COLOR and disables colors when out is not a terminal.
func New(r command.Runner, out io.Writer) *Reporter {
	return NewWithColor(r, out, !color.NoColor)
}

// NewWithColor returns a Reporter with colors forced on or off.
func NewWithColor(r command.Runner, out io.Writer, colors bool) *Reporter {
	return &Reporter{
		runner:  r,
		out:     out,
		palette: newPalette(colors),
	}
}

type section struct {
	name string
	run  func(ctx context.Context, w io.Writer, cfg *config.Config) error
}

// Run renders every enabled section in order. Each section is buffered and
// only written when it succeeds; a failed section is logged and omitted. The
// returned error joins one *SectionError per failed section.
func (r *Reporter) Run(ctx context.Context, cfg *config.Config) error {
	var sections []section
	if cfg.DiskSpace.Enabled {
		sections = append(sections, section{SectionDiskSpace, r.diskSpace})
	}
	if cfg.HDDTemp.Enabled {
		sections = append(sections, section{SectionHDDTemp, r.temperatures})
	}
	if cfg.Mdstat.Enabled {
		sections = append(sections, section{SectionMdstat, r.arrays})
	}

	var failed []error
	for _, s := range sections {
		var buf bytes.Buffer
		err := s.run(ctx, &buf, cfg)

		var partial *partialError
		if err == nil || errors.As(err, &partial) {
			if _, werr := r.out.Write(buf.Bytes()); werr != nil {
				return fmt.Errorf("failed to write report: %w", werr)
			}
		}
		if err == nil {
			continue
		}

		if partial != nil {
			for _, e := range partial.errs {
				log.Warn().Str("section", s.name).Err(e).Msg("item omitted from report")
			}
		} else {
			log.Warn().Str("section", s.name).Err(err).Msg("section omitted from report")
		}
		failed = append(failed, &SectionError{Section: s.name, Err: err})
	}

	return errors.Join(failed...)
}

func (r *Reporter) diskSpace(ctx context.Context, w io.Writer, cfg *config.Config) error {
	rep, err := diskspace.Collect(ctx, r.runner, cfg.DiskSpace.Disks)
	if err != nil {
		return err
	}
	r.palette.renderUsage(w, rep)
	return nil
}

func (r *Reporter) temperatures(ctx context.Context, w io.Writer, cfg *config.Config) error {
	perm := hddtemp.Probe(ctx, r.runner, cfg.HDDTemp.Disks)
	if !perm.Permitted {
		log.Debug().Str("reason", perm.Reason).Msg("hddtemp not permitted, skipping temperatures")
		return nil
	}

	readings, failures := hddtemp.Collect(ctx, r.runner, cfg.HDDTemp.Disks)
	r.palette.renderTemps(w, readings)
	if len(failures) == 0 {
		return nil
	}

	errs := make([]error, len(failures))
	for i, f := range failures {
		errs[i] = f
	}
	return &partialError{errs: errs}
}

func (r *Reporter) arrays(_ context.Context, w io.Writer, cfg *config.Config) error {
	arrays, err := mdstat.ReadFile(cfg.Mdstat.Path)
	if err != nil {
		return err
	}
	r.palette.renderArrays(w, arrays)
	return nil
}
