package user

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/taxnation/crm-backend/internal/domain"
)

// Create provisions a new account with the given role. A duplicate email
// surfaces as domain.ErrConflict from the repository.
func (s *Service) Create(ctx context.Context, input CreateInput) (*domain.User, error) {
	ident, err := s.require(ctx, domain.ActionCreate)
	if err != nil {
		return nil, err
	}

	input.Normalize()
	if err := input.Validate(); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("user.Create hash password: %w", err)
	}

	now := time.Now()
	u := &domain.User{
		ID:           uuid.New(),
		Name:         input.Name,
		Email:        input.Email,
		Phone:        input.Phone,
		PasswordHash: string(hash),
		Role:         input.Role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, fmt.Errorf("user.Create: %w", err)
	}

	s.log.InfoContext(ctx, "user created",
		slog.String("user_id", u.ID.String()),
		slog.String("role", u.Role.String()),
		slog.String("created_by", ident.ID.String()))

	return u, nil
}

// Update edits name, phone and role. A role change revokes the target's
// refresh tokens so stale role claims cannot outlive the change.
func (s *Service) Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*domain.User, error) {
	ident, err := s.require(ctx, domain.ActionUpdate)
	if err != nil {
		return nil, err
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	current, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("user.Update get: %w", err)
	}

	if ident.ID == id && input.Role != current.Role {
		return nil, domain.NewValidationError("role", "cannot change your own role")
	}

	updated, err := s.users.Update(ctx, id, input.Name, input.Phone, input.Role)
	if err != nil {
		return nil, fmt.Errorf("user.Update: %w", err)
	}

	if updated.Role != current.Role {
		if err := s.tokens.RevokeAllByUser(ctx, id); err != nil {
			return nil, fmt.Errorf("user.Update revoke sessions: %w", err)
		}
		s.log.InfoContext(ctx, "user role changed",
			slog.String("user_id", id.String()),
			slog.String("old_role", current.Role.String()),
			slog.String("new_role", updated.Role.String()))
	}

	return updated, nil
}

// Delete removes an account. Refresh tokens go with it via FK cascade, but
// revoke explicitly first so the account is locked out even if the delete
// races a concurrent refresh.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	ident, err := s.require(ctx, domain.ActionTrash)
	if err != nil {
		return err
	}

	if ident.ID == id {
		return domain.NewValidationError("id", "cannot delete your own account")
	}

	if err := s.tokens.RevokeAllByUser(ctx, id); err != nil {
		return fmt.Errorf("user.Delete revoke sessions: %w", err)
	}
	if err := s.users.Delete(ctx, id); err != nil {
		return fmt.Errorf("user.Delete: %w", err)
	}

	s.log.InfoContext(ctx, "user deleted",
		slog.String("user_id", id.String()),
		slog.String("deleted_by", ident.ID.String()))
	return nil
}
