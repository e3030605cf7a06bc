package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"evald/internal/common/fsutil"
	"evald/internal/config"
	"evald/internal/gateway"
	"evald/internal/httpapi"
	"evald/internal/tokenizer"
)

// version is stamped at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type serveOptions struct {
	configPath        string
	addr              string
	seqLen            int
	padTokenID        int
	queueCapacity     int
	pollIntervalMS    int
	requestTimeoutS   int
	maxGenTokens      int
	maxBodyBytes      int64
	tokenizerEncoding string
	modelPath         string
	threads           int
	corsOrigins       string
	logLevel          string
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "evald",
		Short:         "Inference-serving gateway for batch completion/evaluation jobs",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	opts := &serveOptions{}
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the gateway daemon",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, opts)
		},
	}
	f := serveCmd.Flags()
	f.StringVar(&opts.configPath, "config", envStr("EVALD_CONFIG", ""), "Config file (.toml/.yaml/.yml/.json)")
	f.StringVar(&opts.addr, "addr", envStr("EVALD_ADDR", ":5000"), "HTTP listen address, e.g. :5000")
	f.IntVar(&opts.seqLen, "seq-len", envInt("EVALD_SEQ_LEN", 2048), "Fixed model window every batch row is padded/truncated to")
	f.IntVar(&opts.padTokenID, "pad-token-id", envInt("EVALD_PAD_TOKEN_ID", 0), "Token id used for left padding")
	f.IntVar(&opts.queueCapacity, "queue-capacity", envInt("EVALD_QUEUE_CAPACITY", 100), "Admission queue bound")
	f.IntVar(&opts.pollIntervalMS, "poll-interval-ms", envInt("EVALD_POLL_INTERVAL_MS", 10), "Worker idle poll interval in milliseconds")
	f.IntVar(&opts.requestTimeoutS, "request-timeout-s", envInt("EVALD_REQUEST_TIMEOUT_S", 0), "Per-request result wait timeout in seconds (0=wait forever)")
	f.IntVar(&opts.maxGenTokens, "max-gen-tokens", envInt("EVALD_MAX_GEN_TOKENS", 512), "Maximum gen_tokens a job may request")
	f.Int64Var(&opts.maxBodyBytes, "max-body-bytes", int64(envInt("EVALD_MAX_BODY_BYTES", 1<<20)), "Maximum request body size in bytes")
	f.StringVar(&opts.tokenizerEncoding, "tokenizer-encoding", envStr("EVALD_TOKENIZER_ENCODING", tokenizer.DefaultEncoding), "tiktoken encoding name")
	f.StringVar(&opts.modelPath, "model-path", envStr("EVALD_MODEL_PATH", ""), "Model weights path (llama builds)")
	f.IntVar(&opts.threads, "threads", envInt("EVALD_THREADS", 0), "Engine threads (llama builds, 0=auto)")
	f.StringVar(&opts.corsOrigins, "cors-origins", envStr("EVALD_CORS_ORIGINS", "*"), "Comma-separated allowed CORS origins")
	f.StringVar(&opts.logLevel, "log-level", envStr("EVALD_LOG_LEVEL", "info"), "Log level: debug|info|warn|error")
	root.AddCommand(serveCmd)

	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(version)
		},
	})

	return root
}

// applyFileConfig overlays file values onto opts for flags the user did not
// set explicitly. Flags (and their env defaults) win over the file.
func applyFileConfig(cmd *cobra.Command, opts *serveOptions, fc config.Config) {
	changed := func(name string) bool { return cmd.Flags().Changed(name) }
	if !changed("addr") && fc.Addr != "" {
		opts.addr = fc.Addr
	}
	if !changed("seq-len") && fc.SeqLen > 0 {
		opts.seqLen = fc.SeqLen
	}
	if !changed("pad-token-id") && fc.PadTokenID > 0 {
		opts.padTokenID = fc.PadTokenID
	}
	if !changed("queue-capacity") && fc.QueueCapacity > 0 {
		opts.queueCapacity = fc.QueueCapacity
	}
	if !changed("poll-interval-ms") && fc.PollIntervalMS > 0 {
		opts.pollIntervalMS = fc.PollIntervalMS
	}
	if !changed("request-timeout-s") && fc.RequestTimeoutS > 0 {
		opts.requestTimeoutS = fc.RequestTimeoutS
	}
	if !changed("max-gen-tokens") && fc.MaxGenTokens > 0 {
		opts.maxGenTokens = fc.MaxGenTokens
	}
	if !changed("max-body-bytes") && fc.MaxBodyBytes > 0 {
		opts.maxBodyBytes = fc.MaxBodyBytes
	}
	if !changed("tokenizer-encoding") && fc.TokenizerEncoding != "" {
		opts.tokenizerEncoding = fc.TokenizerEncoding
	}
	if !changed("model-path") && fc.ModelPath != "" {
		opts.modelPath = fc.ModelPath
	}
	if !changed("threads") && fc.Threads > 0 {
		opts.threads = fc.Threads
	}
	if !changed("cors-origins") && fc.CORSOrigins != "" {
		opts.corsOrigins = fc.CORSOrigins
	}
	if !changed("log-level") && fc.LogLevel != "" {
		opts.logLevel = fc.LogLevel
	}
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	var out = zerolog.New(os.Stderr)
	if isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd()) {
		out = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
	return out.Level(lvl).With().Timestamp().Logger()
}

func runServe(cmd *cobra.Command, opts *serveOptions) error {
	if opts.configPath != "" {
		fc, err := config.Load(opts.configPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		applyFileConfig(cmd, opts, fc)
	}

	logger := newLogger(opts.logLevel)

	tok, err := tokenizer.New(opts.tokenizerEncoding)
	if err != nil {
		return fmt.Errorf("tokenizer: %w", err)
	}

	modelPath, err := fsutil.ExpandHome(opts.modelPath)
	if err != nil {
		return err
	}
	engine, err := buildEngine(modelPath, opts, tok)
	if err != nil {
		return fmt.Errorf("engine: %w", err)
	}

	gw := gateway.New(gateway.Config{
		SeqLen:         opts.seqLen,
		PadTokenID:     uint32(opts.padTokenID),
		QueueCapacity:  opts.queueCapacity,
		PollInterval:   time.Duration(opts.pollIntervalMS) * time.Millisecond,
		RequestTimeout: time.Duration(opts.requestTimeoutS) * time.Second,
		MaxGenTokens:   opts.maxGenTokens,
		Logger:         &logger,
	}, engine, tok)

	sanity := gw.Sanity()
	logger.Info().
		Bool("engine_ready", sanity.EngineReady).
		Bool("tokenizer_ready", sanity.TokenizerReady).
		Str("error", sanity.Error).
		Msg("sanity report")

	httpapi.SetLogger(logger)
	httpapi.SetMaxBodyBytes(opts.maxBodyBytes)
	httpapi.SetCORSOrigins(splitCSV(opts.corsOrigins))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	httpapi.SetBaseContext(ctx)

	srv := &http.Server{Addr: opts.addr, Handler: httpapi.NewMux(gw)}

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		return gw.Run(egCtx)
	})
	eg.Go(func() error {
		logger.Info().Str("addr", opts.addr).Msg("evald listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	eg.Go(func() error {
		<-egCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn().Err(err).Msg("graceful shutdown error")
		}
		return nil
	})
	return eg.Wait()
}

func envStr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		var n int
		if _, err := fmt.Sscanf(v, "%d", &n); err == nil {
			return n
		}
	}
	return def
}
