package domain

import "time"

// Role enumerates what an employee may do inside the offboarding module.
type Role string

const (
	RoleEmployee Role = "EMPLOYEE"
	RoleManager  Role = "MANAGER"
	RoleAdmin    Role = "ADMIN"
)

// Employee is a read-only view over the HR employee directory.
type Employee struct {
	ID        string
	Name      string
	Email     string
	Role      Role
	IsActive  bool
	CreatedAt time.Time
}
