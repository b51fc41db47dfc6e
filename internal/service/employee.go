package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"retail-pos-backend/internal/domain"
	"retail-pos-backend/internal/repository"
)

type employeeService struct {
	employeeRepo repository.EmployeeRepository
}

func NewEmployeeService(employeeRepo repository.EmployeeRepository) EmployeeService {
	return &employeeService{employeeRepo: employeeRepo}
}

func (s *employeeService) CreateEmployee(ctx context.Context, input CreateEmployeeInput) (*domain.Employee, error) {
	if input.Username == "" || input.Name == "" || input.Password == "" || input.Position == "" {
		return nil, fmt.Errorf("%w: username, name, password, and position are required", ErrValidation)
	}

	if _, err := s.employeeRepo.GetByUsername(ctx, input.Username); err == nil {
		return nil, ErrDuplicateUsername
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	employee := &domain.Employee{
		Username:     input.Username,
		Name:         input.Name,
		PasswordHash: string(hash),
		Position:     input.Position,
		IsActive:     input.IsActive,
	}
	if err := s.employeeRepo.Create(ctx, employee); err != nil {
		return nil, err
	}
	return employee, nil
}

func (s *employeeService) GetEmployee(ctx context.Context, id int64) (*domain.Employee, error) {
	employee, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEmployeeNotFound
		}
		return nil, err
	}
	return employee, nil
}

func (s *employeeService) ListEmployees(ctx context.Context) ([]domain.Employee, error) {
	return s.employeeRepo.List(ctx)
}

func (s *employeeService) UpdateEmployee(ctx context.Context, id int64, input UpdateEmployeeInput) (*domain.Employee, error) {
	employee, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEmployeeNotFound
		}
		return nil, err
	}

	if input.Name != "" {
		employee.Name = input.Name
	}
	if input.Position != "" {
		employee.Position = input.Position
	}
	if input.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		employee.PasswordHash = string(hash)
	}
	if input.IsActive != nil {
		employee.IsActive = *input.IsActive
	}

	if err := s.employeeRepo.Update(ctx, employee); err != nil {
		return nil, err
	}
	return employee, nil
}

func (s *employeeService) DeactivateEmployee(ctx context.Context, id int64) error {
	err := s.employeeRepo.Deactivate(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrEmployeeNotFound
	}
	return err
}
