package http

import (
	"context"
	"crypto/subtle"
	stdhttp "net/http"

	"github.com/danielgtaylor/huma/v2"
)

type loginInput struct {
	Body struct {
		Secret string `json:"secret" minLength:"1" doc:"Shared admin secret"`
	}
}

type loginOutput struct {
	Body struct {
		Token string `json:"token"`
	}
}

type logoutInput struct {
	Authorization string `header:"Authorization"`
}

func (s *Server) registerAuthRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "login",
		Method:      stdhttp.MethodPost,
		Path:        loginPath,
		Summary:     "Exchange the admin secret for a session token",
	}, s.loginHandler)

	huma.Register(s.api, huma.Operation{
		OperationID:   "logout",
		Method:        stdhttp.MethodPost,
		Path:          "/api/auth/logout",
		Summary:       "Invalidate a session token",
		DefaultStatus: stdhttp.StatusNoContent,
	}, s.logoutHandler)
}

// loginHandler compares the submitted secret against the shared admin secret
// in constant time and issues a session token on match.
func (s *Server) loginHandler(ctx context.Context, input *loginInput) (*loginOutput, error) {
	if subtle.ConstantTimeCompare([]byte(input.Body.Secret), []byte(s.adminSecret)) != 1 {
		if s.logger != nil {
			s.logger.WithField("request_id", RequestIDFromContext(ctx)).Warn("login attempt with wrong secret")
		}
		return nil, huma.Error401Unauthorized("Invalid admin secret.")
	}

	out := &loginOutput{}
	out.Body.Token = s.sessions.Create()
	return out, nil
}

// logoutHandler deletes whatever token the caller presents. Idempotent:
// logging out an unknown or already-expired token succeeds quietly.
func (s *Server) logoutHandler(_ context.Context, input *logoutInput) (*struct{}, error) {
	if token := bearerToken(input.Authorization); token != "" {
		s.sessions.Delete(token)
	}
	return nil, nil
}
