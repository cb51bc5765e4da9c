package auth

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/taxnation/crm-backend/internal/domain"
	"github.com/taxnation/crm-backend/pkg/ctxutil"
)

// Logout revokes all refresh tokens for the authenticated caller.
// Returns ErrUnauthorized if no identity is found in context.
func (s *Service) Logout(ctx context.Context) error {
	ident, ok := ctxutil.IdentityFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	if err := s.tokens.RevokeAllByUser(ctx, ident.ID); err != nil {
		return fmt.Errorf("auth.Logout: %w", err)
	}

	s.log.InfoContext(ctx, "user logged out", slog.String("user_id", ident.ID.String()))
	return nil
}

// ValidateToken validates an access token and returns the identity it carries.
// Returns ErrUnauthorized if the token is invalid or expired.
func (s *Service) ValidateToken(ctx context.Context, token string) (domain.Identity, error) {
	ident, err := s.jwt.ValidateAccessToken(token)
	if err != nil {
		return domain.Identity{}, domain.ErrUnauthorized
	}
	return ident, nil
}

// CleanupExpiredTokens removes all expired refresh tokens from the database.
// Returns the number of tokens deleted. This is a maintenance operation.
func (s *Service) CleanupExpiredTokens(ctx context.Context) (int, error) {
	count, err := s.tokens.DeleteExpired(ctx)
	if err != nil {
		s.log.ErrorContext(ctx, "token cleanup failed", slog.String("error", err.Error()))
		return 0, fmt.Errorf("auth.CleanupExpiredTokens: %w", err)
	}

	if count > 0 {
		s.log.InfoContext(ctx, "cleaned up expired tokens", slog.Int("count", count))
	}

	return count, nil
}
