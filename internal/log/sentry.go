package log

import (
	"time"

	"github.com/getsentry/sentry-go"
	sentrylogrus "github.com/getsentry/sentry-go/logrus"
	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"
)

// SentryOptions represents the configuration required to bootstrap Sentry.
// An empty DSN disables reporting entirely.
type SentryOptions struct {
	DSN         string
	Environment string
	Release     string
}

// InitSentry wires up Sentry exception reporting and hooks error-level
// logrus entries into it. The returned flush function drains pending events
// and should run before process exit.
func InitSentry(logger *logrus.Logger, opts SentryOptions) (*sentry.Hub, func(), error) {
	if opts.DSN == "" {
		return nil, func() {}, nil
	}

	client, err := sentry.NewClient(sentry.ClientOptions{
		Dsn:         opts.DSN,
		Environment: opts.Environment,
		Release:     opts.Release,
	})
	if err != nil {
		return nil, nil, eris.Wrap(err, "initializing sentry client")
	}

	hub := sentry.NewHub(client, sentry.NewScope())

	hook := sentrylogrus.NewLogHookFromClient([]logrus.Level{
		logrus.ErrorLevel,
		logrus.FatalLevel,
		logrus.PanicLevel,
	}, client)
	logger.AddHook(hook)

	flush := func() {
		hub.Flush(2 * time.Second)
	}

	return hub, flush, nil
}
