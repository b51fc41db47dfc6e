package service

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"retail-pos-backend/internal/domain"
	"retail-pos-backend/internal/repository"
	"retail-pos-backend/internal/security"
)

type authService struct {
	employeeRepo repository.EmployeeRepository
	tokens       security.TokenManager
}

func NewAuthService(employeeRepo repository.EmployeeRepository, tokens security.TokenManager) AuthService {
	return &authService{
		employeeRepo: employeeRepo,
		tokens:       tokens,
	}
}

func (s *authService) Login(ctx context.Context, username, password string) (string, *domain.Employee, error) {
	employee, err := s.employeeRepo.GetByUsername(ctx, username)
	if err != nil {
		return "", nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(employee.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	if !employee.IsActive {
		return "", nil, ErrEmployeeInactive
	}

	token, err := s.tokens.Generate(employee)
	if err != nil {
		return "", nil, err
	}
	return token, employee, nil
}
