package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"strings"
	"syscall"

	log "github.com/sirupsen/logrus"

	"github.com/2beens/dietplan/internal"
	"github.com/2beens/dietplan/internal/config"
	"github.com/2beens/dietplan/internal/logging"
)

// overridden at build time with -ldflags "-X main.version=..."
var version = ""

func main() {
	env := flag.String("env", "development", "environment [prod | production | dev | development]")
	configPath := flag.String("config", "./config.toml", "path for the TOML config file")
	flag.Parse()

	if err := run(*env, *configPath); err != nil {
		fmt.Fprintf(os.Stderr, "dietplan: %s\n", err)
		os.Exit(1)
	}
}

func run(env, configPath string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx, env, configPath)
	if err != nil {
		return err
	}

	closeLogging, err := logging.Setup(logging.LoggerSetupParams{
		LogFileName:      cfg.LogsPath,
		LogToStdout:      cfg.LogToStdout,
		LogLevel:         cfg.LogLevel,
		LogFormatJSON:    cfg.LogFormatJSON,
		Environment:      cfg.Environment,
		SentryEnabled:    cfg.SentryEnabled,
		SentryDSN:        cfg.Secrets.SentryDSN,
		SentryServerName: "dietplan-service",
	})
	if err != nil {
		return fmt.Errorf("setup logging: %w", err)
	}
	defer closeLogging()

	log.Warnf("---->> running in [%s] environment, port %d", env, cfg.Port)
	warnAboutMissingSecrets(cfg)

	versionInfo := resolveVersion()
	log.Debugf("running version: %s", versionInfo)

	server, err := internal.NewServer(ctx, internal.NewServerParams{
		Config:                  cfg,
		VersionInfo:             versionInfo,
		HoneycombTracingEnabled: cfg.Secrets.HoneycombEnabled,
	})
	if err != nil {
		return fmt.Errorf("new server: %w", err)
	}

	server.Serve(ctx, cfg.Host, cfg.Port)

	<-ctx.Done()
	log.Warnln("shutdown signal received, stopping ...")
	server.GracefulShutdown()

	return nil
}

func warnAboutMissingSecrets(cfg *config.Config) {
	if cfg.Secrets.RedisPassword == "" {
		log.Warnln("redis password not set, use DIETPLAN_REDIS_PASS")
	}
	if cfg.Secrets.PostgresPassword == "" {
		log.Warnln("postgres password not set, use DIETPLAN_DB_PASS")
	}
	if cfg.Secrets.NotificationToken == "" && cfg.NotificationServiceURL != "" {
		log.Warnln("notification service token not set, use DIETPLAN_NOTIFICATION_TOKEN")
	}
	if !cfg.Secrets.HoneycombEnabled {
		log.Debugln("honeycomb tracing disabled")
		return
	}
	if cfg.Secrets.HoneycombAPIKey == "" {
		log.Warnln("HONEYCOMB_API_KEY env var not set")
	}
	if os.Getenv("OTEL_SERVICE_NAME") == "" {
		log.Warnln("OTEL_SERVICE_NAME env var not set")
	}
}

// resolveVersion prefers the linked-in version, then the git HEAD of the
// working directory.
func resolveVersion() string {
	if version != "" {
		return version
	}
	out, err := exec.Command("git", "rev-parse", "HEAD").Output()
	if err != nil {
		log.Tracef("failed to get last commit hash: %s", err)
		return "unknown"
	}
	return strings.TrimSpace(string(out))
}
