package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/shravya-mutyala/agent-test/internal/agent"
	agentcli "github.com/shravya-mutyala/agent-test/internal/cli"
	"github.com/shravya-mutyala/agent-test/internal/config"
	"github.com/shravya-mutyala/agent-test/internal/googlesearch"
	"github.com/shravya-mutyala/agent-test/internal/synthesis"
	"github.com/shravya-mutyala/agent-test/internal/web"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

// Version information (set during build)
var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

// parseLogLevel parses the LOG_LEVEL environment variable.
// Defaults to WarnLevel if not set or invalid.
func parseLogLevel() logrus.Level {
	logLevelStr := strings.ToLower(strings.TrimSpace(os.Getenv("LOG_LEVEL")))

	switch logLevelStr {
	case "debug":
		return logrus.DebugLevel
	case "info":
		return logrus.InfoLevel
	case "warn", "warning":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	case "fatal":
		return logrus.FatalLevel
	case "panic":
		return logrus.PanicLevel
	default:
		return logrus.WarnLevel
	}
}

func main() {
	// Create context with signal handling for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// .env is optional; environment variables win either way.
	_ = godotenv.Load()

	logger := logrus.New()
	logger.SetLevel(parseLogLevel())
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	app := &cli.App{
		Name:    "strands-agent",
		Usage:   "Real-time information assistant combining static knowledge with web search",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "question",
				Aliases: []string{"q"},
				Usage:   "Ask a single question and exit",
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error)",
				EnvVars: []string{"LOG_LEVEL"},
			},
			&cli.BoolFlag{
				Name:  "validate",
				Usage: "Validate API credentials with a test search before starting",
			},
		},
		Action: func(c *cli.Context) error {
			applyLogLevel(logger, c.String("log-level"))
			return runCLI(ctx, c, logger)
		},
		Commands: []*cli.Command{
			{
				Name:  "web",
				Usage: "Start the browser chat interface",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "host",
						Value:   "0.0.0.0",
						Usage:   "Address to bind the web UI to",
						EnvVars: []string{"STRANDS_AGENT_HOST"},
					},
					&cli.IntFlag{
						Name:    "port",
						Aliases: []string{"p"},
						Value:   5000,
						Usage:   "Port to serve the web UI on",
						EnvVars: []string{"STRANDS_AGENT_PORT"},
					},
				},
				Action: func(c *cli.Context) error {
					applyLogLevel(logger, c.String("log-level"))
					return runWeb(ctx, c, logger)
				},
			},
		},
	}

	if err := app.RunContext(ctx, os.Args); err != nil {
		logger.WithError(err).Error("Application error")
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func applyLogLevel(logger *logrus.Logger, level string) {
	if level == "" {
		return
	}
	if parsed, err := logrus.ParseLevel(strings.ToLower(level)); err == nil {
		logger.SetLevel(parsed)
	}
}

// buildAgent wires config, search client, and agent. Returns an error when
// credentials are missing or rejected.
func buildAgent(c *cli.Context, cfg *config.Config, logger *logrus.Logger) (*agent.Agent, error) {
	if !cfg.IsConfigured() {
		return nil, fmt.Errorf("missing required configuration: %s (set them in your environment or a .env file)",
			strings.Join(cfg.MissingConfig(), ", "))
	}

	client, err := googlesearch.NewClientWithInterval(cfg.GoogleAPIKey, cfg.SearchEngineID, cfg.MinRequestInterval(), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialise search client: %w", err)
	}

	if c.Bool("validate") {
		logger.Info("Validating API credentials...")
		if !client.TestConnection(c.Context) {
			return nil, fmt.Errorf("API credential validation failed: check your Google API key and search engine ID")
		}
		logger.Info("API credentials validated successfully")
	}

	summarizer := synthesis.NewSummarizerWithOptions(cfg.Settings.Synthesis, logger)
	a := agent.NewWithSummarizer(client, summarizer, logger)
	a.SetNumResults(cfg.NumResults())
	return a, nil
}

func runCLI(ctx context.Context, c *cli.Context, logger *logrus.Logger) error {
	cfg := config.Load(logger)

	a, err := buildAgent(c, cfg, logger)
	if err != nil {
		return err
	}

	runner := agentcli.NewRunner(a, cfg, logger)
	runner.PrintBanner()

	if question := c.String("question"); question != "" {
		runner.AskOnce(ctx, question)
		return nil
	}

	return runner.Interactive(ctx)
}

func runWeb(ctx context.Context, c *cli.Context, logger *logrus.Logger) error {
	cfg := config.Load(logger)

	// The web UI starts even without credentials; the agent stays nil and
	// /ask explains the problem instead of answering.
	a, err := buildAgent(c, cfg, logger)
	if err != nil {
		logger.WithError(err).Warn("Agent not available - web UI will start without it")
		a = nil
	}

	server := web.NewServer(a, cfg, logger)
	addr := fmt.Sprintf("%s:%d", c.String("host"), c.Int("port"))

	fmt.Printf("Starting Strands Agent web UI on http://%s\n", addr)
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe(addr)
	}()

	select {
	case <-ctx.Done():
		logger.Info("Shutting down web UI")
		return nil
	case err := <-errCh:
		return err
	}
}
