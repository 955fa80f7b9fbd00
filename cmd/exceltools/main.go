package main

import (
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/daniel-flint-26/exceltools/internal/config"
	"github.com/daniel-flint-26/exceltools/internal/server"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:          "exceltools",
		Short:        "MCP server for reading and manipulating Excel workbooks",
		Long:         "exceltools serves MCP tools over stdio for reading, writing, formatting and protecting Excel workbooks, driving a running Excel instance when one is available and falling back to direct file manipulation otherwise.",
		Version:      version,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()

			// stdout carries the MCP transport, logs go to stderr
			log.SetOutput(os.Stderr)
			level, err := log.ParseLevel(cfg.LogLevel)
			if err != nil {
				log.WithField("logLevel", cfg.LogLevel).Warn("invalid log level, using info")
				level = log.InfoLevel
			}
			log.SetLevel(level)

			log.WithField("version", version).Info("starting stdio server")
			return server.New(version, cfg).Start()
		},
	}
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
