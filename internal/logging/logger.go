package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/2beens/dietplan/pkg"
)

const sentryFlushTimeout = 5 * time.Second

type LoggerSetupParams struct {
	// LogFileName empty means stdout only.
	LogFileName      string
	LogToStdout      bool
	LogLevel         string
	LogFormatJSON    bool
	Environment      string
	SentryEnabled    bool
	SentryDSN        string
	SentryServerName string
}

// Setup configures the global logrus logger. The returned func flushes sentry
// and closes the log file, call it last on shutdown.
func Setup(params LoggerSetupParams) (func(), error) {
	logrus.SetLevel(GetLevel(params.LogLevel))
	if params.LogFormatJSON {
		logrus.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339Nano})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	var closers []func()
	closeAll := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	if params.SentryEnabled {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              params.SentryDSN,
			Environment:      params.Environment,
			ServerName:       params.SentryServerName,
			TracesSampleRate: 1.0,
		}); err != nil {
			return closeAll, fmt.Errorf("init sentry: %w", err)
		}
		logrus.AddHook(NewSentryHook(DefaultSentryLevels))
		closers = append(closers, func() {
			if !sentry.Flush(sentryFlushTimeout) {
				logrus.Warnln("sentry flush timed out")
			}
		})
	}

	out, closeOut := output(params)
	logrus.SetOutput(out)
	closers = append(closers, closeOut)

	logrus.Debugf("logging at [%s] to %s", logrus.GetLevel(), describeOutput(params))
	return closeAll, nil
}

func output(params LoggerSetupParams) (io.Writer, func()) {
	if params.LogFileName == "" {
		return os.Stdout, func() {}
	}

	rotated := &lumberjack.Logger{
		Filename:   LogFilePath(params.LogFileName),
		MaxSize:    50, // megabytes
		MaxBackups: 20,
		MaxAge:     90, // days
		Compress:   true,
	}
	closeFile := func() {
		if err := rotated.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "close log file: %s\n", err)
		}
	}

	if params.LogToStdout {
		return pkg.NewCombinedWriter(os.Stdout, rotated), closeFile
	}
	return rotated, closeFile
}

func describeOutput(params LoggerSetupParams) string {
	switch {
	case params.LogFileName == "":
		return "stdout"
	case params.LogToStdout:
		return LogFilePath(params.LogFileName) + " and stdout"
	default:
		return LogFilePath(params.LogFileName)
	}
}

func LogFilePath(name string) string {
	if strings.HasSuffix(name, ".log") {
		return name
	}
	return name + ".log"
}

// GetLevel falls back to trace for unknown values.
func GetLevel(level string) logrus.Level {
	switch strings.ToLower(level) {
	case "panic":
		return logrus.PanicLevel
	case "fatal":
		return logrus.FatalLevel
	case "error":
		return logrus.ErrorLevel
	case "warn", "warning":
		return logrus.WarnLevel
	case "info":
		return logrus.InfoLevel
	case "debug":
		return logrus.DebugLevel
	default:
		return logrus.TraceLevel
	}
}
