package user

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/taxnation/crm-backend/internal/domain"
	"github.com/taxnation/crm-backend/pkg/ctxutil"
)

// Get returns a single user. Any authenticated caller may read their own
// account; reading others requires read permission on the user collection.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	ident, ok := ctxutil.IdentityFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if ident.ID != id && !domain.Permits(ident.Role, domain.ResourceTypeUser, domain.ActionRead) {
		return nil, domain.ErrForbidden
	}

	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("user.Get: %w", err)
	}
	return u, nil
}

// List returns all users, newest first.
func (s *Service) List(ctx context.Context) ([]*domain.User, error) {
	if _, err := s.require(ctx, domain.ActionReadAll); err != nil {
		return nil, err
	}

	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("user.List: %w", err)
	}
	return users, nil
}
