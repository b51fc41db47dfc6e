package domain

import "time"

type Position string

const (
	PositionAdmin   Position = "admin"
	PositionManager Position = "manager"
	PositionCashier Position = "cashier"
)

type Employee struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	Position     Position  `json:"position"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
}
