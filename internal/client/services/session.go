package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/sicmundus/tracker/internal/client/client"
	"github.com/sicmundus/tracker/internal/client/models"
	"github.com/sicmundus/tracker/internal/logging"
)

// TokenStore persists the session token between runs.
type TokenStore interface {
	Load(ctx context.Context) (string, error)
	Save(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

type SessionState int

const (
	StateLoggedOut SessionState = iota
	// StatePending: a token is held but the profile is not known yet.
	StatePending
	StateAuthenticated
)

func (s SessionState) String() string {
	switch s {
	case StateLoggedOut:
		return "logged out"
	case StatePending:
		return "pending"
	case StateAuthenticated:
		return "authenticated"
	}
	return fmt.Sprintf("SessionState(%d)", int(s))
}

// EndReason tells session-ended listeners why the session is gone.
type EndReason string

const (
	EndReasonLogout EndReason = "logout"
	EndReasonStale  EndReason = "stale"
)

// EndedFunc is called after the session has been cleared.
type EndedFunc func(ctx context.Context, reason EndReason)

// SessionService owns the token and the signed-in user's profile.
//
// Invariant: a profile is only ever held together with a token.
type SessionService struct {
	client client.Client
	store  TokenStore
	logger logging.Logger

	mu        sync.RWMutex
	token     string
	user      *models.UserProfile
	listeners []EndedFunc
}

func NewSessionService(c client.Client, store TokenStore, logger logging.Logger) *SessionService {
	return &SessionService{client: c, store: store, logger: logger}
}

// OnEnded registers fn to run whenever the session ends.
func (s *SessionService) OnEnded(fn EndedFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// Restore picks up a token persisted by an earlier run and, when one is
// found, fetches the matching profile.
func (s *SessionService) Restore(ctx context.Context) {
	token, err := s.store.Load(ctx)
	if err != nil {
		s.logger.Warn(ctx, "cannot load saved token", "err", err)
		return
	}
	if token == "" {
		return
	}

	s.mu.Lock()
	s.token = token
	needProfile := s.user == nil
	s.mu.Unlock()

	if needProfile {
		s.FetchProfile(ctx)
	}
}

// Login authenticates against the server. On failure the current session,
// if any, is left as it was.
func (s *SessionService) Login(ctx context.Context, username, password string) error {
	resp, err := s.client.Login(ctx, models.LoginRequest{Username: username, Password: password})
	if err != nil {
		s.logger.Warn(ctx, "login failed", "username", username, "err", err)
		return fmt.Errorf("login: %w", err)
	}
	s.begin(ctx, resp)
	return nil
}

func (s *SessionService) Register(ctx context.Context, username, password, fullName string) error {
	resp, err := s.client.Register(ctx, models.RegisterRequest{Username: username, Password: password, FullName: fullName})
	if err != nil {
		s.logger.Warn(ctx, "registration failed", "username", username, "err", err)
		return fmt.Errorf("register: %w", err)
	}
	s.begin(ctx, resp)
	return nil
}

func (s *SessionService) begin(ctx context.Context, resp *models.AuthResponse) {
	user := resp.User
	user.Normalize()

	s.mu.Lock()
	s.token = resp.Token
	s.user = &user
	s.mu.Unlock()

	if err := s.store.Save(ctx, resp.Token); err != nil {
		s.logger.Error(ctx, "cannot persist token", "err", err)
	}
	s.logger.Info(ctx, "signed in", "user_id", user.ID, "username", user.Username)
}

// ChangePassword changes the password of the signed-in user. The token is
// kept as is.
func (s *SessionService) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	if !s.IsAuthenticated() {
		return ErrNotAuthenticated
	}

	err := s.client.ChangePassword(ctx, models.ChangePasswordRequest{OldPassword: oldPassword, NewPassword: newPassword})
	if err != nil {
		s.logger.Warn(ctx, "password change failed", "err", err)
		return fmt.Errorf("change password: %w", err)
	}

	s.mu.Lock()
	if s.user != nil {
		s.user.ForceChangePassword = false
	}
	s.mu.Unlock()
	return nil
}

// FetchProfile loads the profile for the held token. Any failure means the
// token is no longer good and ends the session with EndReasonStale, unless a
// login replaced the token while the call was in flight.
func (s *SessionService) FetchProfile(ctx context.Context) {
	token := s.Token()
	if token == "" {
		return
	}

	user, err := s.client.Me(ctx)
	if err != nil {
		if !s.endFor(ctx, token, EndReasonStale) {
			s.logger.Debug(ctx, "ignoring profile failure for a replaced token", "err", err)
			return
		}
		s.logger.Warn(ctx, "profile fetch failed, session ended", "err", err)
		return
	}

	profile := *user
	profile.Normalize()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.token != token {
		// signed out or switched user while the call was in flight
		return
	}
	s.user = &profile
}

// Logout clears the session in memory and on disk and notifies listeners.
func (s *SessionService) Logout(ctx context.Context) {
	s.end(ctx, EndReasonLogout)
}

func (s *SessionService) end(ctx context.Context, reason EndReason) {
	s.mu.Lock()
	s.finish(ctx, reason)
}

// endFor ends the session only while token is still the one held. It reports
// whether the session was ended.
func (s *SessionService) endFor(ctx context.Context, token string, reason EndReason) bool {
	s.mu.Lock()
	if s.token != token {
		s.mu.Unlock()
		return false
	}
	s.finish(ctx, reason)
	return true
}

// finish must be called with s.mu held; it releases it.
func (s *SessionService) finish(ctx context.Context, reason EndReason) {
	s.token = ""
	s.user = nil
	listeners := append([]EndedFunc(nil), s.listeners...)
	s.mu.Unlock()

	if err := s.store.Clear(ctx); err != nil {
		s.logger.Error(ctx, "cannot clear saved token", "err", err)
	}
	s.logger.Info(ctx, "session ended", "reason", string(reason))

	for _, fn := range listeners {
		fn(ctx, reason)
	}
}

func (s *SessionService) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *SessionService) IsAuthenticated() bool {
	return s.Token() != ""
}

func (s *SessionService) IsAdmin() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil && s.user.Role == models.RoleAdmin
}

func (s *SessionService) MustChangePassword() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil && s.user.ForceChangePassword
}

// User returns a copy of the profile, nil when none is known.
func (s *SessionService) User() *models.UserProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

func (s *SessionService) State() SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	switch {
	case s.token == "":
		return StateLoggedOut
	case s.user == nil:
		return StatePending
	default:
		return StateAuthenticated
	}
}
