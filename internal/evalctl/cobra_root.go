package evalctl

import (
	"github.com/spf13/cobra"
)

// Config carries the CLI's resolved settings.
type Config struct {
	Addr        string
	LogLvl      string
	Requests    int
	Concurrency int
	GenTokens   int
	TopP        float64
	Temp        float64
}

func defaultConfig() *Config {
	return &Config{
		Addr:        envStr("EVALD_ADDR", "http://127.0.0.1:5000"),
		LogLvl:      envStr("EVALCTL_LOG_LEVEL", "info"),
		Requests:    envInt("EVALCTL_REQUESTS", 50),
		Concurrency: envInt("EVALCTL_CONCURRENCY", 8),
		GenTokens:   4,
		TopP:        0,
		Temp:        0,
	}
}

// Main parses args and runs the selected action. It returns a process exit code.
func Main(args []string) int {
	root := buildRootCmdWith(defaultConfig())
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		errl("%v", err)
		return 1
	}
	return 0
}

// buildRootCmd is a convenience for help-only fallbacks.
func buildRootCmd() *cobra.Command { return buildRootCmdWith(defaultConfig()) }

// buildRootCmdWith constructs the Cobra command tree wired to the fn* actions.
func buildRootCmdWith(cfg *Config) *cobra.Command {
	root := &cobra.Command{
		Use:           "evalctl",
		Short:         "Operator utilities for a running evald daemon",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Persistent flags -> Config
	root.PersistentFlags().StringVar(&cfg.Addr, "addr", cfg.Addr, "Base URL of the evald daemon (defaults EVALD_ADDR)")
	root.PersistentFlags().StringVar(&cfg.LogLvl, "log-level", cfg.LogLvl, "Log level: debug|info|warn|error (defaults EVALCTL_LOG_LEVEL or info)")
	root.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		SetLogLevel(cfg.LogLvl)
	}

	smokeCmd := &cobra.Command{
		Use:     "smoke",
		Short:   "Submit one small job and print the result",
		Example: "  evalctl smoke --gen-tokens 4",
		RunE:    func(cmd *cobra.Command, args []string) error { return fnSmoke(cfg) },
	}
	smokeCmd.Flags().IntVar(&cfg.GenTokens, "gen-tokens", cfg.GenTokens, "Tokens to generate per context")
	smokeCmd.Flags().Float64Var(&cfg.TopP, "top-p", cfg.TopP, "Nucleus sampling probability")
	smokeCmd.Flags().Float64Var(&cfg.Temp, "temp", cfg.Temp, "Sampling temperature")
	root.AddCommand(smokeCmd)

	benchCmd := &cobra.Command{
		Use:     "bench",
		Short:   "Run concurrent load and report latency percentiles",
		Example: "  evalctl bench --requests 100 --concurrency 16",
		RunE:    func(cmd *cobra.Command, args []string) error { return fnBench(cfg) },
	}
	benchCmd.Flags().IntVar(&cfg.Requests, "requests", cfg.Requests, "Total requests to send")
	benchCmd.Flags().IntVar(&cfg.Concurrency, "concurrency", cfg.Concurrency, "In-flight request limit")
	benchCmd.Flags().IntVar(&cfg.GenTokens, "gen-tokens", cfg.GenTokens, "Tokens to generate per context")
	benchCmd.Flags().Float64Var(&cfg.TopP, "top-p", cfg.TopP, "Nucleus sampling probability")
	benchCmd.Flags().Float64Var(&cfg.Temp, "temp", cfg.Temp, "Sampling temperature")
	root.AddCommand(benchCmd)

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Print the daemon's /status as JSON",
		RunE:  func(cmd *cobra.Command, args []string) error { return fnStatus(cfg) },
	}
	root.AddCommand(statusCmd)

	return root
}
