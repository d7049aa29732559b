package main

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/okian/podium/internal/probe"
)

func newProbeCmd(_ *rootOptions) *cobra.Command {
	config := probe.Config{}
	cmd := &cobra.Command{
		Use:   "probe",
		Short: "Check a running dashboard over HTTP",
		Long: `Fetch every view from a running instance and check the ranked lists,
the cumulative series, the medal totals shared by several views and the
behaviour of empty and narrowed selections.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			report, err := probe.Run(cmd.Context(), config)
			if report != nil {
				printReport(cmd.OutOrStdout(), report)
			}
			return err
		},
	}

	f := cmd.Flags()
	f.StringVar(&config.BaseURL, "base-url", "http://localhost:8080", "base URL of the service")
	f.DurationVar(&config.Timeout, "timeout", probe.DefaultTimeout, "HTTP request timeout")
	f.IntVar(&config.Concurrency, "concurrency", probe.DefaultConcurrency, "views fetched in parallel")
	f.BoolVarP(&config.Verbose, "verbose", "v", false, "log every checked view")
	return cmd
}

func printReport(w io.Writer, r *probe.Report) {
	for _, f := range r.Failures {
		fmt.Fprintf(w, "%s %s %s: %s\n", color.RedString("FAIL"), f.View, f.Check, f.Message)
	}
	status := color.GreenString("ok")
	if !r.OK() {
		status = color.RedString("failed")
	}
	fmt.Fprintf(w, "%s: %d views, %d checks, %d failures in %s\n",
		status, len(r.Views), r.Checks, len(r.Failures), r.Duration.Round(time.Millisecond))
}
