// Package user implements user account management: superadmins provision
// accounts with a role, managers can look them up, everyone else is denied
// by the role policy.
package user

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/taxnation/crm-backend/internal/domain"
	"github.com/taxnation/crm-backend/pkg/ctxutil"
)

// userRepo defines the user repository interface needed by user service.
type userRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, u *domain.User) error
	Update(ctx context.Context, id uuid.UUID, name string, phone *string, role domain.Role) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// tokenRepo defines the refresh token interface needed by user service.
// Role changes and deletions must kill live sessions.
type tokenRepo interface {
	RevokeAllByUser(ctx context.Context, userID uuid.UUID) error
}

// Service implements user management operations.
type Service struct {
	log    *slog.Logger
	users  userRepo
	tokens tokenRepo
}

// NewService creates a new user service instance.
func NewService(logger *slog.Logger, users userRepo, tokens tokenRepo) *Service {
	return &Service{
		log:    logger.With("service", "user"),
		users:  users,
		tokens: tokens,
	}
}

// require checks that the caller is authenticated and the role policy permits
// the action on the user collection.
func (s *Service) require(ctx context.Context, action domain.Action) (domain.Identity, error) {
	ident, ok := ctxutil.IdentityFromCtx(ctx)
	if !ok {
		return domain.Identity{}, domain.ErrUnauthorized
	}
	if !domain.Permits(ident.Role, domain.ResourceTypeUser, action) {
		return domain.Identity{}, domain.ErrForbidden
	}
	return ident, nil
}
