package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/fitcore/gym-api/internal/dto"
	"github.com/fitcore/gym-api/internal/model"
)

type mockUserRepo struct {
	users map[string]*model.User
	byID  map[uuid.UUID]*model.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User), byID: make(map[uuid.UUID]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	user.ID = uuid.New()
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()
	m.users[user.Email] = user
	m.byID[user.ID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	return m.byID[id], nil
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	return m.users[email], nil
}

func seedCredentials(repo *mockUserRepo, email, password, role string) *model.User {
	hashed, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	user := &model.User{ID: uuid.New(), Email: email, Password: string(hashed), Role: role}
	repo.users[email] = user
	repo.byID[user.ID] = user
	return user
}

func TestAuthService_Register(t *testing.T) {
	repo := newMockUserRepo()
	svc := NewAuthService(repo, "test-secret", time.Hour)

	resp, err := svc.Register(context.Background(), dto.RegisterRequest{
		Email: "asha@example.com", Password: "trainhard1",
		FirstName: "Asha", LastName: "Rai",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "asha@example.com", resp.User.Email)
	assert.Equal(t, "customer", resp.User.Role)

	// The stored password is a bcrypt hash, never the plaintext.
	stored := repo.users["asha@example.com"]
	require.NotNil(t, stored)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("trainhard1")))
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	repo := newMockUserRepo()
	svc := NewAuthService(repo, "test-secret", time.Hour)

	seedCredentials(repo, "asha@example.com", "trainhard1", "customer")

	_, err := svc.Register(context.Background(), dto.RegisterRequest{
		Email: "asha@example.com", Password: "trainhard1",
		FirstName: "Asha", LastName: "Rai",
	})
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestAuthService_Login(t *testing.T) {
	repo := newMockUserRepo()
	svc := NewAuthService(repo, "test-secret", time.Hour)

	user := seedCredentials(repo, "coach@example.com", "benchpress5", "admin")

	resp, err := svc.Login(context.Background(), dto.LoginRequest{
		Email: "coach@example.com", Password: "benchpress5",
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)

	// Token carries the subject and role the middleware relies on.
	token, err := jwt.Parse(resp.Token, func(*jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	claims, ok := token.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, user.ID.String(), claims["sub"])
	assert.Equal(t, "admin", claims["role"])
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	repo := newMockUserRepo()
	svc := NewAuthService(repo, "test-secret", time.Hour)

	seedCredentials(repo, "asha@example.com", "trainhard1", "customer")

	_, err := svc.Login(context.Background(), dto.LoginRequest{
		Email: "asha@example.com", Password: "wrong",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	svc := NewAuthService(newMockUserRepo(), "test-secret", time.Hour)

	_, err := svc.Login(context.Background(), dto.LoginRequest{
		Email: "ghost@example.com", Password: "whatever1",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
