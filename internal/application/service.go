// Package application orchestrates bulk operations over a pool of chat
// platform accounts: one authenticated session per account, a bounded
// sequence of paced remote actions per session, and per-item failure
// isolation so one bad guild, user or account does not abort the batch.
package application

import (
	"chatpool/internal/ports"

	"go.uber.org/zap"
)

type Service struct {
	gateway ports.SessionGateway
	secrets ports.SecretStore
	clock   ports.Clock
	logger  *zap.Logger
	cfg     Config
}

func NewService(gateway ports.SessionGateway, secrets ports.SecretStore, clock ports.Clock, logger *zap.Logger, cfg Config) *Service {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Service{
		gateway: gateway,
		secrets: secrets,
		clock:   clock,
		logger:  logger,
		cfg:     cfg.withDefaults(),
	}
}
