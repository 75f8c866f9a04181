// internal/services/authorization_service.go
package services

import (
	"github.com/google/uuid"

	"github.com/prodmarket/marketplace-backend/internal/models"
)

// Actor is the authenticated identity a request acts as. Services receive
// it explicitly instead of reading ambient request state.
type Actor struct {
	ID         uuid.UUID
	Email      string
	Role       models.Role
	BusinessID uuid.UUID
}

// AuthorizationService evaluates the static role permission table and the
// tenant boundary. It holds no state and performs no I/O, which keeps every
// access decision trivially testable.
type AuthorizationService struct{}

func NewAuthorizationService() *AuthorizationService {
	return &AuthorizationService{}
}

// IsAllowed reports whether the actor's role grants the action. Unknown
// roles hold no permissions.
func (s *AuthorizationService) IsAllowed(actor Actor, action models.Action) bool {
	return actor.Role.Can(action)
}

// InScope reports whether a resource owned by businessID is visible to the
// actor. Scope is strict equality; no role bypasses it.
func (s *AuthorizationService) InScope(actor Actor, businessID uuid.UUID) bool {
	return actor.BusinessID == businessID
}

// Authorize combines the role check and the tenant check. The scope check
// runs first so a cross-business resource yields ErrNotFound rather than
// ErrForbidden, keeping its existence hidden.
func (s *AuthorizationService) Authorize(actor Actor, action models.Action, businessID uuid.UUID) error {
	if !s.InScope(actor, businessID) {
		return ErrNotFound
	}
	if !s.IsAllowed(actor, action) {
		return ErrForbidden
	}
	return nil
}
