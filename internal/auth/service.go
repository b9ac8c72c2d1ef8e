package auth

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"penscribe/sign-portal/sign-portal-backend/pkg/apperr"
)

// Service manages accounts and session tokens.
type Service struct {
	repo       Repository
	jwtSecret  []byte
	sessionTTL time.Duration
	logger     *zap.Logger
}

func NewService(repo Repository, jwtSecret string, sessionTTL time.Duration, logger *zap.Logger) *Service {
	return &Service{
		repo:       repo,
		jwtSecret:  []byte(jwtSecret),
		sessionTTL: sessionTTL,
		logger:     logger,
	}
}

type sessionClaims struct {
	UserID uuid.UUID `json:"user_id"`
	jwt.RegisteredClaims
}

// Register creates an account with a bcrypt-hashed password.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	existing, err := s.repo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.New(apperr.KindConflict, "email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &User{
		ID:           uuid.New(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user registered", zap.String("user_id", user.ID.String()))
	return user, nil
}

// Login exchanges credentials for a session token.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	user, err := s.repo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.New(apperr.KindUnauthorized, "invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, apperr.New(apperr.KindUnauthorized, "invalid credentials")
	}

	now := time.Now()
	claims := sessionClaims{
		UserID: user.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.sessionTTL)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		return nil, err
	}

	return &LoginResponse{Token: token, User: user}, nil
}

// VerifySession parses a session token and returns the user id it carries.
func (s *Service) VerifySession(token string) (uuid.UUID, error) {
	claims := &sessionClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, apperr.New(apperr.KindInvalidToken, "unexpected signing method")
		}
		return s.jwtSecret, nil
	})
	if err != nil || !parsed.Valid {
		return uuid.Nil, apperr.Wrap(apperr.KindInvalidToken, "invalid session token", err)
	}
	return claims.UserID, nil
}

// GetUser fetches a user by id.
func (s *Service) GetUser(ctx context.Context, id uuid.UUID) (*User, error) {
	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.New(apperr.KindNotFound, "user not found")
	}
	return user, nil
}
