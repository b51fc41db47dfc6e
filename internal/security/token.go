package security

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"retail-pos-backend/internal/domain"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)

// EmployeeClaims carries the employee identity inside the bearer token. The
// employee record is re-read on every request, so an employee deactivated
// after login is rejected even with a live token.
type EmployeeClaims struct {
	EmployeeID int64           `json:"employee_id"`
	Username   string          `json:"username"`
	Position   domain.Position `json:"position"`
	jwt.RegisteredClaims
}

type TokenManager interface {
	Generate(employee *domain.Employee) (string, error)
	Validate(tokenString string) (*EmployeeClaims, error)
}

type tokenManager struct {
	secret []byte
	expiry time.Duration
}

func NewTokenManager(secret string, expiry time.Duration) TokenManager {
	if expiry <= 0 {
		expiry = 24 * time.Hour
	}
	return &tokenManager{secret: []byte(secret), expiry: expiry}
}

func (m *tokenManager) Generate(employee *domain.Employee) (string, error) {
	claims := EmployeeClaims{
		EmployeeID: employee.ID,
		Username:   employee.Username,
		Position:   employee.Position,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(employee.ID, 10),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(m.expiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "pos-backend",
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

func (m *tokenManager) Validate(tokenString string) (*EmployeeClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &EmployeeClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*EmployeeClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.EmployeeID == 0 && claims.Subject != "" {
		id, _ := strconv.ParseInt(claims.Subject, 10, 64)
		claims.EmployeeID = id
	}
	return claims, nil
}
