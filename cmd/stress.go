package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"fixturectl/internal/config"
	"fixturectl/internal/fixture"
	"fixturectl/internal/stress"
	"fixturectl/pkg/logging"
)

type stressFlags struct {
	seed       int64
	workers    int
	iterations int
	maxDelay   time.Duration
	target     string
	showLogs   bool
}

func newStressCmd() *cobra.Command {
	var f stressFlags
	cmd := &cobra.Command{
		Use:   "stress",
		Short: "Hammer the shared logger or fixture registry from concurrent workers",
		Long: `Invokes a target many times from concurrent workers, with a random delay
before each call drawn from a seeded source. The seed is always printed so
a failing run can be replayed with --seed.

Targets:
  logger    write entries through the shared logger
  registry  register and discover fixture types on a private registry`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStress(cmd, &f)
		},
	}

	cmd.Flags().Int64Var(&f.seed, "seed", 0, "Seed for the delay schedule (0 picks one from the clock)")
	cmd.Flags().IntVar(&f.workers, "workers", 0, "Number of concurrent workers (default from config)")
	cmd.Flags().IntVar(&f.iterations, "iterations", 0, "Number of invocations (default from config)")
	cmd.Flags().DurationVar(&f.maxDelay, "max-delay", 0, "Upper bound of the random delay before each invocation")
	cmd.Flags().StringVar(&f.target, "target", "logger", "What to stress (logger, registry)")
	cmd.Flags().BoolVar(&f.showLogs, "show-logs", false, "Print the logger target's output to stderr")

	_ = cmd.RegisterFlagCompletionFunc("target", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{"logger", "registry"}, cobra.ShellCompDirectiveDefault
	})
	return cmd
}

func runStress(cmd *cobra.Command, f *stressFlags) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}

	harness := stress.Harness{
		Seed:     settings.Stress.Seed,
		MaxDelay: settings.Stress.MaxDelay,
		Workers:  settings.Stress.Workers,
	}
	iterations := settings.Stress.Iterations
	flags := cmd.Flags()
	if flags.Changed("seed") {
		harness.Seed = f.seed
	}
	if flags.Changed("workers") {
		harness.Workers = f.workers
	}
	if flags.Changed("max-delay") {
		harness.MaxDelay = f.maxDelay
	}
	if flags.Changed("iterations") {
		iterations = f.iterations
	}
	if iterations < 1 {
		return fmt.Errorf("iterations must be positive, got %d", iterations)
	}

	var logOutput io.Writer = io.Discard
	if f.showLogs {
		logOutput = os.Stderr
	}
	logging.InitForCLI(logging.LevelDebug, logOutput)

	var target stress.Delegate
	switch f.target {
	case "logger":
		target = stress.LoggerTarget("Stress")
	case "registry":
		target = stress.RegistryTarget(fixture.NewRegistry(), "Stress.Fixture")
	default:
		return fmt.Errorf("unknown stress target %q (supported: logger, registry)", f.target)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "🔥 Stressing %s with %d iterations\n", f.target, iterations)
	report, err := harness.Run(ctx, iterations, target)
	fmt.Fprintf(out, "📊 %s\n", report)
	if err != nil {
		fmt.Fprintf(out, "❌ Replay with --seed %d\n", report.Seed)
		return err
	}
	fmt.Fprintf(out, "✅ No failures\n")
	return nil
}

// loadSettings loads the configuration the same way the application does.
func loadSettings() (config.FixturectlConfig, error) {
	if configPath != "" {
		return config.LoadConfigFromPath(configPath)
	}
	return config.LoadConfig()
}
