package service

import (
	"context"
	"fmt"

	"github.com/savichev/memodeck/internal/adapter"
	"github.com/savichev/memodeck/internal/logger"
	"github.com/savichev/memodeck/models"
)

type clientAuthService struct {
	transport adapter.SyncTransport
	logger    *logger.Logger
}

func NewClientAuthService(transport adapter.SyncTransport, logger *logger.Logger) ClientAuthService {
	return &clientAuthService{transport: transport, logger: logger}
}

func (s *clientAuthService) Register(ctx context.Context, user models.User) (int64, error) {
	if user.Login == "" || user.Password == "" {
		return 0, fmt.Errorf("%w: login and password are required", ErrInvalidDataProvided)
	}

	registered, err := s.transport.Register(ctx, user)
	if err != nil {
		s.logger.Err(err).Str("func", "*clientAuthService.Register").Msg("registration failed")
		return 0, err
	}

	return registered.UserID, nil
}

func (s *clientAuthService) Login(ctx context.Context, user models.User) (int64, error) {
	if user.Login == "" || user.Password == "" {
		return 0, fmt.Errorf("%w: login and password are required", ErrInvalidDataProvided)
	}

	token, err := s.transport.Login(ctx, user)
	if err != nil {
		s.logger.Err(err).Str("func", "*clientAuthService.Login").Msg("login failed")
		return 0, err
	}

	return token.UserID, nil
}
