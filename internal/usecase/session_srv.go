package usecase

import (
	"context"

	"fairshare-booking/internal/data/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SessionService revokes sessions. Issuance lives outside this system; the
// boundary here only validates and retires tokens.
type SessionService interface {
	Logout(ctx context.Context, token string) error
	LogoutAll(ctx context.Context, ownerID uuid.UUID) error
}

type sessionService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewSessionService(repo *repository.Repository, log *zap.Logger) SessionService {
	return &sessionService{
		repo: repo,
		log:  log.With(zap.String("service", "session")),
	}
}

func (s *sessionService) Logout(ctx context.Context, token string) error {
	if err := s.repo.Session.Revoke(ctx, token); err != nil {
		return err
	}
	s.log.Info("Session revoked")
	return nil
}

func (s *sessionService) LogoutAll(ctx context.Context, ownerID uuid.UUID) error {
	if err := s.repo.Session.RevokeAllOwnerSessions(ctx, ownerID); err != nil {
		return err
	}
	s.log.Info("All sessions revoked", zap.String("owner_id", ownerID.String()))
	return nil
}
