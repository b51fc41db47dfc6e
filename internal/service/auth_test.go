package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"retail-pos-backend/internal/domain"
)

func TestLogin(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.MinCost)
	assert.NoError(t, err)

	employee := &domain.Employee{
		ID:           1,
		Username:     "alice",
		Name:         "Alice",
		PasswordHash: string(hash),
		Position:     domain.PositionCashier,
		IsActive:     true,
	}

	t.Run("Valid credentials", func(t *testing.T) {
		employeeRepo := new(MockEmployeeRepo)
		tokens := new(MockTokenManager)
		svc := NewAuthService(employeeRepo, tokens)

		employeeRepo.On("GetByUsername", mock.Anything, "alice").Return(employee, nil)
		tokens.On("Generate", employee).Return("signed-token", nil)

		token, got, err := svc.Login(context.Background(), "alice", "hunter2")
		assert.NoError(t, err)
		assert.Equal(t, "signed-token", token)
		assert.Equal(t, employee, got)
	})

	t.Run("Wrong password", func(t *testing.T) {
		employeeRepo := new(MockEmployeeRepo)
		tokens := new(MockTokenManager)
		svc := NewAuthService(employeeRepo, tokens)

		employeeRepo.On("GetByUsername", mock.Anything, "alice").Return(employee, nil)

		_, _, err := svc.Login(context.Background(), "alice", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
		tokens.AssertNotCalled(t, "Generate", mock.Anything)
	})

	t.Run("Unknown username", func(t *testing.T) {
		employeeRepo := new(MockEmployeeRepo)
		tokens := new(MockTokenManager)
		svc := NewAuthService(employeeRepo, tokens)

		employeeRepo.On("GetByUsername", mock.Anything, "mallory").Return(nil, sql.ErrNoRows)

		_, _, err := svc.Login(context.Background(), "mallory", "hunter2")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("Inactive employee", func(t *testing.T) {
		employeeRepo := new(MockEmployeeRepo)
		tokens := new(MockTokenManager)
		svc := NewAuthService(employeeRepo, tokens)

		inactive := *employee
		inactive.IsActive = false
		employeeRepo.On("GetByUsername", mock.Anything, "alice").Return(&inactive, nil)

		_, _, err := svc.Login(context.Background(), "alice", "hunter2")
		assert.ErrorIs(t, err, ErrEmployeeInactive)
	})
}
