package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/fleetdepot/depot/internal/domain"
	"github.com/fleetdepot/depot/internal/repository"
)

func TestAuthService_Signup(t *testing.T) {
	repo := new(mockUserRepo)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(u domain.User) bool {
		return u.Email == "clerk@depot.test" &&
			bcrypt.CompareHashAndPassword([]byte(u.Password), []byte("secret123")) == nil
	})).Return(domain.User{ID: 7, Email: "clerk@depot.test", Role: domain.RoleClerk}, nil)

	svc := NewAuthService(repo)
	user, err := svc.Signup(context.Background(), domain.User{Email: " Clerk@Depot.test ", Password: "secret123", Role: domain.RoleClerk})

	require.NoError(t, err)
	assert.Equal(t, uint(7), user.ID)
	repo.AssertExpectations(t)
}

func TestAuthService_SignupDuplicate(t *testing.T) {
	repo := new(mockUserRepo)
	repo.On("Create", mock.Anything, mock.Anything).Return(domain.User{}, repository.ErrUserEmailExists)

	_, err := NewAuthService(repo).Signup(context.Background(), domain.User{Email: "a@b.c", Password: "secret123"})

	assert.ErrorIs(t, err, ErrUserEmailExists)
}

func TestAuthService_Login(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)

	repo := new(mockUserRepo)
	repo.On("FindByEmail", mock.Anything, "picker@depot.test").
		Return(domain.User{ID: 3, Email: "picker@depot.test", Password: string(hash)}, nil)
	repo.On("FindByEmail", mock.Anything, "ghost@depot.test").
		Return(domain.User{}, repository.ErrUserNotFound)

	svc := NewAuthService(repo)

	user, err := svc.Login(context.Background(), "Picker@depot.test", "secret123")
	require.NoError(t, err)
	assert.Equal(t, uint(3), user.ID)

	_, err = svc.Login(context.Background(), "picker@depot.test", "wrong")
	assert.ErrorIs(t, err, ErrWrongPassword)

	_, err = svc.Login(context.Background(), "ghost@depot.test", "secret123")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
