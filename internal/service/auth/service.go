package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/medflow-hq/medflow/internal/domain/models"
	"github.com/medflow-hq/medflow/internal/repository/slots"
)

// InvalidCredentialsMessage is the single failure message returned for both
// unknown usernames and wrong passwords, so callers cannot enumerate users.
const InvalidCredentialsMessage = "Invalid Credentials"

// LoginResult is the outcome of a login attempt.
type LoginResult struct {
	Success bool         `json:"success"`
	Token   string       `json:"token,omitempty"`
	User    *models.User `json:"user,omitempty"`
	Message string       `json:"message,omitempty"`
}

// Recorder is the audit sink for login and logout events.
type Recorder interface {
	Record(ctx context.Context, action, description, actor string) error
}

// Service validates credentials against the users slot and manages the
// single current-session record.
type Service struct {
	store    slots.Store
	recorder Recorder
	logger   *zap.Logger
	now      func() time.Time
}

// NewService wires the auth service over the given slot store.
func NewService(store slots.Store, recorder Recorder, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:    store,
		recorder: recorder,
		logger:   logger,
		now:      time.Now,
	}
}

// EnsureDefaultAdmin seeds the users slot with the default administrator
// when the slot is empty or missing. Existing accounts are left untouched.
func (s *Service) EnsureDefaultAdmin(ctx context.Context) error {
	users, err := slots.Load[[]models.User](ctx, s.store, slots.SlotUsers, s.logger)
	if err != nil {
		return err
	}
	if len(users) > 0 {
		return nil
	}

	users = []models.User{{
		ID:       1,
		Username: "admin",
		Password: "123",
		Role:     "admin",
		Name:     "Super Admin",
	}}
	if err := slots.Save(ctx, s.store, slots.SlotUsers, users); err != nil {
		return err
	}

	s.logger.Info("seeded default admin account")
	return nil
}

// Login matches username and password exactly (case sensitive). On success
// the user becomes the current session; on failure the generic message is
// returned with no further detail.
func (s *Service) Login(ctx context.Context, username, password string) (LoginResult, error) {
	users, err := slots.Load[[]models.User](ctx, s.store, slots.SlotUsers, s.logger)
	if err != nil {
		return LoginResult{}, err
	}

	for _, user := range users {
		if user.Username != username || user.Password != password {
			continue
		}

		session := models.Session{
			Token:      uuid.NewString(),
			User:       user,
			LoggedInAt: s.now().UTC(),
		}
		if err := slots.Save(ctx, s.store, slots.SlotSession, session); err != nil {
			return LoginResult{}, err
		}

		s.audit(ctx, models.ActionLogin, "User logged in: "+user.Username, user.Name)
		s.logger.Info("login succeeded", zap.String("username", user.Username))
		return LoginResult{Success: true, Token: session.Token, User: &session.User}, nil
	}

	s.logger.Warn("login failed", zap.String("username", username))
	return LoginResult{Success: false, Message: InvalidCredentialsMessage}, nil
}

// Logout clears the session slot unconditionally.
func (s *Service) Logout(ctx context.Context) error {
	actor := ""
	if session, err := s.CurrentSession(ctx); err == nil && session != nil {
		actor = session.User.Name
	}

	if err := s.store.Delete(ctx, slots.SlotSession); err != nil {
		return err
	}

	s.audit(ctx, models.ActionLogout, "User logged out", actor)
	return nil
}

// CurrentSession returns the session record, or nil when nobody is logged
// in.
func (s *Service) CurrentSession(ctx context.Context) (*models.Session, error) {
	session, err := slots.Load[*models.Session](ctx, s.store, slots.SlotSession, s.logger)
	if err != nil {
		return nil, err
	}
	if session == nil || session.Token == "" {
		return nil, nil
	}
	return session, nil
}

// Authenticate resolves a bearer token against the current session and
// returns the session holder, or nil when the token does not match.
func (s *Service) Authenticate(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, nil
	}

	session, err := s.CurrentSession(ctx)
	if err != nil {
		return nil, err
	}
	if session == nil || session.Token != token {
		return nil, nil
	}

	user := session.User
	return &user, nil
}

func (s *Service) audit(ctx context.Context, action, description, actor string) {
	if s.recorder == nil {
		return
	}
	if err := s.recorder.Record(ctx, action, description, actor); err != nil {
		s.logger.Warn("failed to record activity", zap.String("action", action), zap.Error(err))
	}
}
