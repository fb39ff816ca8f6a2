package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"

	"github.com/dbrecon/dbrecon/compare"
	"github.com/dbrecon/dbrecon/config"
	"github.com/dbrecon/dbrecon/report"
)

// CompareOptions represents the options for the compare command.
type CompareOptions struct {
	ConfigPath   string
	Source       string
	Target       string
	SourceQuery  string
	TargetQuery  string
	KeyColumns   []string
	OutputFormat string
	OutputPath   string
}

// newCompareCommand creates the one-shot comparison command.
func newCompareCommand() *cobra.Command {
	options := &CompareOptions{OutputFormat: "json"}

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare two query result sets and report differences",
		Long: `The compare command executes one query against each of two named
connections from the config file, matches rows on the given key columns
(or all columns common to both result sets), and reports matched and
mismatched counts with a bounded sample of differing rows.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompare(cmd.Context(), options)
		},
	}

	cmd.Flags().StringVarP(&options.ConfigPath, "config", "c", "agent.yaml", "Path to the config file with named connections")
	cmd.Flags().StringVar(&options.Source, "source", "", "Name of the source connection")
	cmd.Flags().StringVar(&options.Target, "target", "", "Name of the target connection")
	cmd.Flags().StringVar(&options.SourceQuery, "source-query", "", "SQL to run on the source")
	cmd.Flags().StringVar(&options.TargetQuery, "target-query", "", "SQL to run on the target")
	cmd.Flags().StringSliceVarP(&options.KeyColumns, "key", "k", nil, "Key columns for row matching")
	cmd.Flags().StringVarP(&options.OutputFormat, "output", "o", "json", "Output format (json, html)")
	cmd.Flags().StringVar(&options.OutputPath, "output-path", "", "Output path (defaults to stdout for JSON)")

	for _, flag := range []string{"source", "target", "source-query", "target-query"} {
		_ = cmd.MarkFlagRequired(flag)
	}
	return cmd
}

func runCompare(ctx context.Context, options *CompareOptions) error {
	cfg, err := config.LoadConfig(options.ConfigPath)
	if err != nil {
		return err
	}

	source, err := cfg.Connection(options.Source)
	if err != nil {
		return err
	}
	target, err := cfg.Connection(options.Target)
	if err != nil {
		return err
	}

	req := compare.ComparisonRequest{
		Source:      source,
		Target:      target,
		SourceQuery: options.SourceQuery,
		TargetQuery: options.TargetQuery,
		KeyColumns:  options.KeyColumns,
	}

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " comparing result sets..."
	s.Start()
	result, err := compare.NewEngine().Compare(ctx, req)
	s.Stop()
	if err != nil {
		return err
	}

	if err := writeResult(result, options); err != nil {
		return err
	}

	printSummary(result)
	if result.Summary.ComparisonStatus != compare.StatusPassed {
		os.Exit(1)
	}
	return nil
}

func writeResult(result *compare.ComparisonResult, options *CompareOptions) error {
	switch options.OutputFormat {
	case "json":
		gen := &report.JSONReportGenerator{}
		if options.OutputPath != "" {
			return gen.SaveReportToFile(*result, options.OutputPath)
		}
		data, err := gen.GenerateComparisonReport(*result)
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	case "html":
		if options.OutputPath == "" {
			return fmt.Errorf("html output requires --output-path")
		}
		gen := &report.HTMLReportGenerator{}
		return gen.SaveReportToFile(*result, options.OutputPath)
	default:
		return fmt.Errorf("unknown output format %q", options.OutputFormat)
	}
}

func printSummary(result *compare.ComparisonResult) {
	s := result.Summary
	fmt.Fprintf(os.Stderr, "status=%s source=%d target=%d matched=%d mismatched=%d targetOnly=%d (%d ms)\n",
		s.ComparisonStatus, s.SourceRowCount, s.TargetRowCount,
		s.MatchedRows, s.MismatchedRows, s.TargetOnlyRows, result.ExecutionTimeMs)
}
