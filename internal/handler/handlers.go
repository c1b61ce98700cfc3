package handler

import (
	"github.com/savichev/memodeck/internal/config"
	"github.com/savichev/memodeck/internal/handler/http"
	"github.com/savichev/memodeck/internal/logger"
	"github.com/savichev/memodeck/internal/service"
)

type Handlers struct {
	HTTP *http.Handler
}

func NewHandlers(services *service.Services, cfg config.Server, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	handlers := &Handlers{}

	if cfg.HTTPAddress != "" {
		handlers.HTTP = http.NewHandler(services, logger)
	}

	if handlers.HTTP == nil {
		return nil, errNoHandlersAreCreated
	}

	return handlers, nil
}
