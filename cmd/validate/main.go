package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"benchfuse/adapters/excel"
	"benchfuse/domain/artifact"
	"benchfuse/domain/benchmark"
	"benchfuse/domain/verdict"
	"benchfuse/internal/config"
	"benchfuse/internal/container"
	"benchfuse/internal/fusion"
	"benchfuse/internal/validator"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "benchfuse",
		Short: "Benchmark-fusion validation of scientific discovery artifacts",
	}

	rootCmd.AddCommand(newValidateCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newValidateCmd() *cobra.Command {
	var (
		contextFile string
		benchmarks  []string
		bypassCache bool
		jsonOutput  bool
		excelOutput string
	)

	cmd := &cobra.Command{
		Use:   "validate [artifact.json]",
		Short: "Run the benchmark panel against a discovery artifact",
		Long: `Validate a discovery artifact against the enabled benchmarks and print
the fused verdict.

Example: benchfuse validate discovery.json --context context.json --benchmarks physical-limits,practicality`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
				fmt.Fprintf(os.Stderr, "skipping .env: %v\n", err)
			}
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("loading configuration: %w", err)
			}

			discovery, err := loadDiscovery(args[0])
			if err != nil {
				return err
			}
			vctx, err := loadContext(contextFile)
			if err != nil {
				return err
			}

			c, err := container.New(cfg)
			if err != nil {
				return fmt.Errorf("building container: %w", err)
			}
			defer c.Close()

			result, err := runValidation(cmd.Context(), c, discovery, vctx, benchmarks, bypassCache)
			if err != nil {
				return err
			}

			if excelOutput != "" {
				if err := excel.NewReportWriter().Write(result, excelOutput); err != nil {
					return fmt.Errorf("writing workbook: %w", err)
				}
			}

			if jsonOutput {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(result)
			}
			fmt.Print(fusion.RenderText(result))
			return nil
		},
	}

	cmd.Flags().StringVar(&contextFile, "context", "", "JSON file with literature/simulation/rubric context")
	cmd.Flags().StringSliceVar(&benchmarks, "benchmarks", nil, "restrict to a benchmark subset (comma-separated kinds)")
	cmd.Flags().BoolVar(&bypassCache, "bypass-cache", false, "skip the cache lookup and force a fresh run")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "emit the raw verdict as JSON")
	cmd.Flags().StringVar(&excelOutput, "excel", "", "also write the verdict to an xlsx workbook at this path")
	return cmd
}

func runValidation(
	ctx context.Context,
	c *container.Container,
	discovery artifact.Discovery,
	vctx *artifact.Context,
	benchmarkNames []string,
	bypassCache bool,
) (*verdict.AggregatedValidation, error) {
	if len(benchmarkNames) > 0 {
		kinds := make([]benchmark.Kind, 0, len(benchmarkNames))
		for _, name := range benchmarkNames {
			kinds = append(kinds, benchmark.Kind(name))
		}
		return c.Orchestrator.ValidateSubset(ctx, discovery, vctx, kinds)
	}
	return c.Orchestrator.ValidateWithOptions(ctx, discovery, vctx,
		validator.Options{BypassCache: bypassCache})
}

func loadDiscovery(path string) (artifact.Discovery, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading artifact file: %w", err)
	}
	var discovery artifact.Discovery
	if err := json.Unmarshal(data, &discovery); err != nil {
		return nil, fmt.Errorf("parsing artifact JSON: %w", err)
	}
	return discovery, nil
}

func loadContext(path string) (*artifact.Context, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading context file: %w", err)
	}
	var vctx artifact.Context
	if err := json.Unmarshal(data, &vctx); err != nil {
		return nil, fmt.Errorf("parsing context JSON: %w", err)
	}
	return &vctx, nil
}
