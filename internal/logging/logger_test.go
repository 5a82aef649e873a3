package logging

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetLevel(t *testing.T) {
	for level, want := range map[string]logrus.Level{
		"debug":   logrus.DebugLevel,
		"ERROR":   logrus.ErrorLevel,
		"info":    logrus.InfoLevel,
		"warn":    logrus.WarnLevel,
		"warning": logrus.WarnLevel,
		"panic":   logrus.PanicLevel,
		"":        logrus.TraceLevel,
		"verbose": logrus.TraceLevel,
	} {
		assert.Equal(t, want, GetLevel(level), level)
	}
}

func TestSentryHook_Fire(t *testing.T) {
	var captured *sentry.Event
	id := sentry.EventID("abc")
	hook := &SentryHook{
		levels: DefaultSentryLevels,
		capture: func(e *sentry.Event) *sentry.EventID {
			captured = e
			return &id
		},
	}
	assert.Equal(t, DefaultSentryLevels, hook.Levels())

	ts := time.Date(2026, 10, 16, 9, 30, 0, 0, time.UTC)
	entry := &logrus.Entry{
		Level:   logrus.ErrorLevel,
		Message: "toggle meal failed",
		Time:    ts,
		Data: logrus.Fields{
			"student":       "student-1",
			logrus.ErrorKey: errors.New("store down"),
		},
	}
	require.NoError(t, hook.Fire(entry))
	require.NotNil(t, captured)

	assert.Equal(t, sentry.LevelError, captured.Level)
	assert.Equal(t, "toggle meal failed", captured.Message)
	assert.Equal(t, ts, captured.Timestamp)
	assert.Equal(t, "student-1", captured.Extra["student"])
	require.Len(t, captured.Exception, 1)
	assert.Equal(t, "store down", captured.Exception[0].Value)
}

func TestSentryHook_Dropped(t *testing.T) {
	hook := &SentryHook{
		levels:  DefaultSentryLevels,
		capture: func(*sentry.Event) *sentry.EventID { return nil },
	}
	assert.Error(t, hook.Fire(&logrus.Entry{Level: logrus.FatalLevel, Message: "boom"}))
}

func TestSentryLevel(t *testing.T) {
	assert.Equal(t, sentry.LevelFatal, sentryLevel(logrus.PanicLevel))
	assert.Equal(t, sentry.LevelWarning, sentryLevel(logrus.WarnLevel))
	assert.Equal(t, sentry.LevelDebug, sentryLevel(logrus.TraceLevel))
}

func TestLogFilePath(t *testing.T) {
	assert.Equal(t, "/var/log/dietplan/service.log", LogFilePath("/var/log/dietplan/service"))
	assert.Equal(t, "service.log", LogFilePath("service.log"))
}

func TestSetup_FileAndStdout(t *testing.T) {
	prevOut, prevLevel, prevFormatter := logrus.StandardLogger().Out, logrus.GetLevel(), logrus.StandardLogger().Formatter
	t.Cleanup(func() {
		logrus.SetOutput(prevOut)
		logrus.SetLevel(prevLevel)
		logrus.SetFormatter(prevFormatter)
	})

	logFile := filepath.Join(t.TempDir(), "dietplan")
	closeLogging, err := Setup(LoggerSetupParams{
		LogFileName:   logFile,
		LogToStdout:   true,
		LogLevel:      "debug",
		LogFormatJSON: true,
	})
	require.NoError(t, err)

	assert.Equal(t, logrus.DebugLevel, logrus.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, logrus.StandardLogger().Formatter)

	logrus.Infof("plan %d activated", 7)
	closeLogging()

	written, err := os.ReadFile(logFile + ".log")
	require.NoError(t, err)
	assert.Contains(t, string(written), "plan 7 activated")
}
