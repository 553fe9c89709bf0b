package http

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"github.com/getsentry/sentry-go"
	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"

	"github.com/david-rosenfeld/r7dme-sub000/internal/content"
)

const (
	notFoundMessage    = "The requested content was not found."
	badRequestMessage  = "The request payload failed validation."
	internalErrMessage = "We couldn't process your request right now."
)

// domainError translates a content store failure into the matching HTTP
// error: NotFound becomes 404, invalid input 400, anything else 500.
// Infrastructure failures are logged and reported before being masked.
func (s *Server) domainError(ctx context.Context, err error, logMessage string, fields logrus.Fields) error {
	switch {
	case eris.Is(err, content.ErrNotFound):
		return huma.Error404NotFound(notFoundMessage)
	case eris.Is(err, content.ErrInvalidInput):
		return huma.Error400BadRequest(badRequestMessage)
	default:
		s.recordError(ctx, err, logMessage, fields)
		return huma.Error500InternalServerError(internalErrMessage)
	}
}

func (s *Server) recordError(ctx context.Context, err error, message string, fields logrus.Fields) {
	if err == nil {
		return
	}

	if s.logger != nil {
		entry := s.logger.WithField("error", err.Error())
		if fields != nil {
			entry = entry.WithFields(fields)
		}
		if requestID := RequestIDFromContext(ctx); requestID != "" {
			entry = entry.WithField("request_id", requestID)
		}
		entry.Error(message)
	}

	if hub := sentry.GetHubFromContext(ctx); hub != nil {
		hub.CaptureException(err)
		return
	}
	if s.sentry != nil {
		s.sentry.CaptureException(err)
	}
}
