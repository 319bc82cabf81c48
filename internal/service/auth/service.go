package auth

import (
	authmodel "github.com/lukemarsh/sentichat/internal/model/auth"
)

// Login response messages.
const (
	MsgFieldsRequired     = "email and password are required"
	MsgInvalidCredentials = "invalid email or password"
)

// Result is the login outcome returned to the client. Validation failures
// are carried in the body, never as an HTTP error status.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// Service validates login attempts against a static credential table.
// Comparison is plain string equality on purpose: the table holds demo
// accounts and hardening is out of scope.
type Service struct {
	store authmodel.Store
}

// NewService returns a login service backed by the given credential store.
func NewService(store authmodel.Store) *Service {
	return &Service{store: store}
}

// Login checks an email/password pair. Missing fields short-circuit without
// consulting the table.
func (s *Service) Login(email, password string) Result {
	if email == "" || password == "" {
		return Result{Success: false, Message: MsgFieldsRequired}
	}

	if !s.store.Check(email, password) {
		return Result{Success: false, Message: MsgInvalidCredentials}
	}

	return Result{Success: true}
}
