package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"insureops/api/internal/config"
	"insureops/api/internal/models"
	"insureops/api/internal/security"
	"insureops/api/internal/store"
)

var (
	// ErrInvalidCredentials is deliberately the only failure a login can
	// surface; callers must not learn whether the email exists.
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email is unavailable")
)

// AccountService wraps credential creation and verification around the
// users, sessions and login_audit tables.
type AccountService struct {
	store store.Store
	cfg   *config.AppConfig
	log   zerolog.Logger
}

func NewAccountService(st store.Store, cfg *config.AppConfig, log zerolog.Logger) *AccountService {
	return &AccountService{store: st, cfg: cfg, log: log}
}

// Register creates a User with the default role and an argon2id password
// hash. The email must not already belong to a user.
func (s *AccountService) Register(ctx context.Context, email, password string) (models.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return models.User{}, errors.New("email and password required")
	}

	taken, err := s.store.UserEmailInUse(ctx, email, 0)
	if err != nil {
		return models.User{}, err
	}
	if taken {
		return models.User{}, ErrEmailTaken
	}

	hash, err := security.HashPassword(password)
	if err != nil {
		return models.User{}, err
	}

	user := models.User{
		Email:        email,
		PasswordHash: hash,
		Role:         models.UserRoleDefault,
		IsActive:     true,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.store.CreateUser(ctx, &user); err != nil {
		return models.User{}, err
	}
	return user, nil
}

type LoginInput struct {
	Email     string
	Password  string
	IPAddress string
	UserAgent string
}

type LoginResult struct {
	User    models.User
	Session models.Session
}

// Login verifies the credentials, establishes a session row and writes a
// login audit entry. All failure paths return ErrInvalidCredentials.
func (s *AccountService) Login(ctx context.Context, input LoginInput) (LoginResult, error) {
	email := strings.TrimSpace(strings.ToLower(input.Email))

	user, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.audit(ctx, nil, "LOGIN_FAIL", input)
			return LoginResult{}, ErrInvalidCredentials
		}
		return LoginResult{}, err
	}

	ok, err := security.VerifyPassword(input.Password, user.PasswordHash)
	if err != nil || !ok || !user.IsActive {
		s.audit(ctx, &user.ID, "LOGIN_FAIL", input)
		return LoginResult{}, ErrInvalidCredentials
	}

	now := time.Now().UTC()
	expires := now.Add(s.cfg.Security.SessionTTL)
	session := models.Session{
		ID:          uuid.NewString(),
		UserID:      user.ID,
		SessionHash: security.NewSessionHash(),
		CreatedAt:   now,
		ExpiresAt:   &expires,
		IPAddress:   input.IPAddress,
	}
	if input.UserAgent != "" {
		session.UserAgent = &input.UserAgent
	}
	if err := s.store.CreateSession(ctx, session); err != nil {
		return LoginResult{}, err
	}

	s.audit(ctx, &user.ID, "LOGIN_SUCCESS", input)

	return LoginResult{User: user, Session: session}, nil
}

// Logout revokes the session and records the event. Revoking an unknown
// session reports store.ErrNotFound.
func (s *AccountService) Logout(ctx context.Context, sessionID string, ip, userAgent string) error {
	session, err := s.store.GetSession(ctx, sessionID)
	if err != nil {
		return err
	}
	if err := s.store.RevokeSession(ctx, sessionID, time.Now().UTC()); err != nil {
		return err
	}
	s.audit(ctx, &session.UserID, "LOGOUT", LoginInput{IPAddress: ip, UserAgent: userAgent})
	return nil
}

// audit records a login event; a failed audit write never fails the request.
func (s *AccountService) audit(ctx context.Context, userID *int64, event string, input LoginInput) {
	entry := models.LoginAudit{
		UserID:     userID,
		Event:      event,
		OccurredAt: time.Now().UTC(),
	}
	if input.IPAddress != "" {
		entry.IPAddress = &input.IPAddress
	}
	if input.UserAgent != "" {
		entry.UserAgent = &input.UserAgent
	}
	if err := s.store.CreateLoginAudit(ctx, &entry); err != nil {
		s.log.Warn().Err(err).Str("event", event).Msg("login audit write failed")
	}
}
