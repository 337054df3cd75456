package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/careerboost/internal/domain/entity"
	repo "github.com/oksasatya/careerboost/internal/domain/repository"
	"github.com/oksasatya/careerboost/pkg/helpers"
)

type AuthService struct {
	Users      repo.UserRepository
	Candidates repo.CandidateRepository
	JWT        *helpers.JWTManager
	Sessions   SessionStore
	SessionTTL time.Duration
	Audit      *Auditor
	Logger     *logrus.Logger
}

func NewAuthService(users repo.UserRepository, candidates repo.CandidateRepository, jwt *helpers.JWTManager,
	sessions SessionStore, sessionTTL time.Duration, audit *Auditor, logger *logrus.Logger) *AuthService {
	if sessionTTL <= 0 {
		sessionTTL = 24 * time.Hour
	}
	return &AuthService{
		Users:      users,
		Candidates: candidates,
		JWT:        jwt,
		Sessions:   sessions,
		SessionTTL: sessionTTL,
		Audit:      audit,
		Logger:     logger,
	}
}

type TokenPair struct {
	AccessToken        string
	AccessTokenExpiry  time.Time
	RefreshToken       string
	RefreshTokenExpiry time.Time
}

type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Role      entity.Role
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a CANDIDATE or RECRUITER account and logs it in.
func (s *AuthService) Register(ctx context.Context, in RegisterInput, meta RequestMeta) (*entity.User, TokenPair, error) {
	if !in.Role.SelfRegistrable() {
		return nil, TokenPair{}, ErrRoleNotAllowed
	}
	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, TokenPair{}, fmt.Errorf("hash password: %w", err)
	}
	u := &entity.User{
		Email:     normalizeEmail(in.Email),
		Password:  hash,
		FirstName: strings.TrimSpace(in.FirstName),
		LastName:  strings.TrimSpace(in.LastName),
		Role:      in.Role,
		IsActive:  true,
	}
	if err := s.Users.Create(ctx, u); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, TokenPair{}, ErrEmailTaken
		}
		return nil, TokenPair{}, fmt.Errorf("create user: %w", err)
	}
	if u.Role == entity.RoleCandidate && s.Candidates != nil {
		if err := s.Candidates.UpsertProfile(ctx, &entity.CandidateProfile{UserID: u.ID}); err != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Warn("create empty candidate profile failed")
		}
	}
	s.Audit.Record(ctx, u.ID, u.Email, AuditRegister, meta, map[string]any{"role": string(u.Role)})

	pair, err := s.IssueTokens(ctx, u)
	if err != nil {
		return nil, TokenPair{}, err
	}
	return u, pair, nil
}

// Authenticate validates email/password and returns the user without issuing tokens.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*entity.User, error) {
	u, err := s.Users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		return nil, ErrInvalidCredentials
	}
	if !u.CanLogin() {
		return nil, ErrAccountDisabled
	}
	return u, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string, meta RequestMeta) (*entity.User, TokenPair, error) {
	u, err := s.Authenticate(ctx, email, password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) || errors.Is(err, ErrAccountDisabled) {
			s.Audit.Record(ctx, "", normalizeEmail(email), AuditLoginFailed, meta, map[string]any{"reason": err.Error()})
		}
		return nil, TokenPair{}, err
	}
	pair, err := s.IssueTokens(ctx, u)
	if err != nil {
		return nil, TokenPair{}, err
	}
	now := time.Now()
	if err := s.Users.TouchLogin(ctx, u.ID, now); err != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Warn("touch last login failed")
	}
	u.LastLoginAt = &now
	s.Audit.Record(ctx, u.ID, u.Email, AuditLogin, meta, nil)
	return u, pair, nil
}

// IssueTokens generates access/refresh tokens and records a session.
func (s *AuthService) IssueTokens(ctx context.Context, u *entity.User) (TokenPair, error) {
	sid := uuid.NewString()
	pair, err := s.sign(u, sid)
	if err != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Error("generate tokens failed")
		return TokenPair{}, err
	}
	if s.Sessions != nil {
		sess := entity.Session{UserID: u.ID, SessionID: sid, Email: u.Email, Role: u.Role, CreatedAt: time.Now()}
		if err := s.Sessions.Save(ctx, sess, s.SessionTTL); err != nil {
			return TokenPair{}, fmt.Errorf("save session: %w", err)
		}
	}
	return pair, nil
}

func (s *AuthService) sign(u *entity.User, sid string) (TokenPair, error) {
	access, aexp, err := s.JWT.GenerateAccessToken(u.ID, sid, string(u.Role))
	if err != nil {
		return TokenPair{}, err
	}
	refresh, rexp, err := s.JWT.GenerateRefreshToken(u.ID, sid, string(u.Role))
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{AccessToken: access, AccessTokenExpiry: aexp, RefreshToken: refresh, RefreshTokenExpiry: rexp}, nil
}

// Refresh validates the refresh token against the stored session and rotates the session id.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (TokenPair, *entity.User, error) {
	claims, err := s.JWT.ParseRefreshToken(refreshToken)
	if err != nil {
		return TokenPair{}, nil, ErrInvalidCredentials
	}
	u, err := s.Users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return TokenPair{}, nil, ErrInvalidCredentials
		}
		return TokenPair{}, nil, err
	}
	if !u.CanLogin() {
		return TokenPair{}, nil, ErrAccountDisabled
	}
	var created time.Time
	if s.Sessions != nil {
		sess, err := s.Sessions.Get(ctx, u.ID)
		if err != nil {
			return TokenPair{}, nil, fmt.Errorf("load session: %w", err)
		}
		if sess == nil || sess.SessionID != claims.SessionID {
			return TokenPair{}, nil, ErrSessionExpired
		}
		created = sess.CreatedAt
	}

	sid := uuid.NewString()
	pair, err := s.sign(u, sid)
	if err != nil {
		return TokenPair{}, nil, err
	}
	if s.Sessions != nil {
		sess := entity.Session{UserID: u.ID, SessionID: sid, Email: u.Email, Role: u.Role, CreatedAt: created}
		if err := s.Sessions.Save(ctx, sess, s.SessionTTL); err != nil {
			return TokenPair{}, nil, fmt.Errorf("rotate session: %w", err)
		}
	}
	return pair, u, nil
}

func (s *AuthService) Logout(ctx context.Context, userID string, meta RequestMeta) error {
	if s.Sessions != nil {
		if err := s.Sessions.Delete(ctx, userID); err != nil {
			return fmt.Errorf("delete session: %w", err)
		}
	}
	s.Audit.Record(ctx, userID, "", AuditLogout, meta, nil)
	return nil
}

func (s *AuthService) Me(ctx context.Context, userID string) (*entity.User, error) {
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u.DeletedAt != nil {
		return nil, ErrNotFound
	}
	return u, nil
}

// ValidateSession checks that sid is the user's current session.
func (s *AuthService) ValidateSession(ctx context.Context, userID, sid string) error {
	if s.Sessions == nil {
		return nil
	}
	sess, err := s.Sessions.Get(ctx, userID)
	if err != nil {
		return err
	}
	if sess == nil || sess.SessionID != sid {
		return ErrSessionExpired
	}
	return nil
}
