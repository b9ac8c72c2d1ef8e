package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"penscribe/sign-portal/sign-portal-backend/pkg/apperr"
)

// MockRepository is a mock implementation of the Repository interface
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) CreateUser(ctx context.Context, user *User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockRepository) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockRepository) GetUserByID(ctx context.Context, id uuid.UUID) (*User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func TestRegisterAndLogin(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, "test-secret", time.Hour, zap.NewNop())
	ctx := context.Background()

	var stored *User
	mockRepo.On("GetUserByEmail", ctx, "jane@example.com").Return(nil, nil).Once()
	mockRepo.On("CreateUser", ctx, mock.AnythingOfType("*auth.User")).
		Run(func(args mock.Arguments) { stored = args.Get(1).(*User) }).
		Return(nil)

	user, err := service.Register(ctx, RegisterRequest{
		Name:     "Jane Roe",
		Email:    "jane@example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)
	assert.NotEqual(t, "correct-horse", user.PasswordHash)

	mockRepo.On("GetUserByEmail", ctx, "jane@example.com").Return(stored, nil)

	resp, err := service.Login(ctx, LoginRequest{Email: "jane@example.com", Password: "correct-horse"})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)

	gotID, err := service.VerifySession(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, gotID)
}

func TestLoginWrongPassword(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, "test-secret", time.Hour, zap.NewNop())
	ctx := context.Background()

	mockRepo.On("GetUserByEmail", ctx, "jane@example.com").Return(nil, nil).Once()
	mockRepo.On("CreateUser", ctx, mock.AnythingOfType("*auth.User")).Return(nil)

	user, err := service.Register(ctx, RegisterRequest{
		Name:     "Jane Roe",
		Email:    "jane@example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)

	mockRepo.On("GetUserByEmail", ctx, "jane@example.com").Return(user, nil)

	_, err = service.Login(ctx, LoginRequest{Email: "jane@example.com", Password: "wrong"})
	require.Error(t, err)
	assert.Equal(t, apperr.KindUnauthorized, apperr.KindOf(err))
}

func TestVerifySessionRejectsGarbage(t *testing.T) {
	service := NewService(new(MockRepository), "test-secret", time.Hour, zap.NewNop())

	_, err := service.VerifySession("not-a-token")
	require.Error(t, err)
	assert.Equal(t, apperr.KindInvalidToken, apperr.KindOf(err))
}

func TestVerifySessionRejectsForeignSecret(t *testing.T) {
	mockRepo := new(MockRepository)
	ctx := context.Background()
	mockRepo.On("GetUserByEmail", ctx, mock.Anything).Return(nil, nil).Once()
	mockRepo.On("CreateUser", ctx, mock.Anything).Return(nil)

	issuing := NewService(mockRepo, "secret-a", time.Hour, zap.NewNop())
	user, err := issuing.Register(ctx, RegisterRequest{Name: "J", Email: "j@example.com", Password: "pw123456"})
	require.NoError(t, err)
	mockRepo.On("GetUserByEmail", ctx, "j@example.com").Return(user, nil)
	resp, err := issuing.Login(ctx, LoginRequest{Email: "j@example.com", Password: "pw123456"})
	require.NoError(t, err)

	verifying := NewService(new(MockRepository), "secret-b", time.Hour, zap.NewNop())
	_, err = verifying.VerifySession(resp.Token)
	require.Error(t, err)
	assert.Equal(t, apperr.KindInvalidToken, apperr.KindOf(err))
}
