package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/sigreer/disks/internal/command"
	"github.com/sigreer/disks/internal/config"
	"github.com/sigreer/disks/internal/report"
	"github.com/sigreer/disks/internal/version"
)

// envLogLevel selects diagnostic verbosity on stderr.
const envLogLevel = "DISKS_LOG_LEVEL"

var rootCmd = &cobra.Command{
	Use:     version.Name,
	Short:   "Summarize disk usage, temperatures and mdadm array health",
	Version: version.Version,
	Long: `disks prints a one-shot storage health report: space used per mount point,
drive temperatures from hddtemp and the state of software RAID arrays from
/proc/mdstat.

The config file is read from $DISKS_CONFIG, or the first of
/etc/disks/config.yaml, ~/.config/disks/config.yaml, ./config.yaml and
./config.json that exists.`,
	Args: cobra.NoArgs,
	Run:  runReport,
}

func init() {
	rootCmd.SetVersionTemplate("{{.Name}} {{.Version}}\n")
}

func runReport(cmd *cobra.Command, args []string) {
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runner := command.Exec{Timeout: cfg.CommandTimeout}
	if err := report.New(runner, os.Stdout).Run(ctx, cfg); err != nil {
		log.Debug().Err(err).Msg("report incomplete")
		stop()
		os.Exit(1)
	}
}

// setupLogging configures zerolog from DISKS_LOG_LEVEL.
func setupLogging() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	switch strings.ToLower(os.Getenv(envLogLevel)) {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	}
}

func main() {
	setupLogging()

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
