package main

import (
	"github.com/spf13/cobra"
)

// Version is set at build time with -ldflags "-X main.Version=...".
var Version = "dev"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "pvserver",
		Short: "Parameter validation service",
		Long: `pvserver validates JSON instances against YAML rule sets.

Rule sets bind catalog rules (IBAN, Luhn, ranges, formats ...) to query
expressions on the instance. The service keeps a report of every run in
memory, Redis or PostgreSQL and exposes Prometheus metrics.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringSlice("env-file", nil, "dotenv files loaded before the configuration")

	root.AddCommand(
		newServeCmd(),
		newLintCmd(),
		newValidateCmd(),
		newRulesCmd(),
		newVersionCmd(),
	)
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Println("pvserver", Version)
		},
	}
}
