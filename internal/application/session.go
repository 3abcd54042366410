package application

import (
	"context"
	"errors"
	"fmt"

	"chatpool/internal/domain"
	"chatpool/internal/ports"

	"go.uber.org/zap"
)

// withSession runs fn against a ready session for the account: resolve the
// token, dial, login, start background connection processing, and block
// until the session reports ready. The session is closed on every exit
// path, and the connect goroutine is reaped before the function returns.
func (s *Service) withSession(ctx context.Context, account domain.Account, fn func(context.Context, ports.Session) error) error {
	token, err := s.secrets.Get(ctx, account.Auth.SecretRef)
	if err != nil {
		return fmt.Errorf("resolve token for account %s: %w", account.ID, err)
	}

	sess := s.gateway.NewSession(account)
	defer func() {
		if sess.Closed() {
			return
		}
		if closeErr := sess.Close(); closeErr != nil {
			s.logger.Warn("closing session failed",
				zap.String("account", string(account.ID)),
				zap.Error(closeErr))
		}
	}()

	if err := sess.Login(ctx, token); err != nil {
		return fmt.Errorf("login account %s: %w", account.ID, err)
	}

	// Connect runs for the session's lifetime and is never awaited for
	// completion, only reaped on exit so no goroutine outlives the scope.
	connectCtx, stopConnect := context.WithCancel(ctx)
	connectDone := make(chan struct{})
	defer func() {
		stopConnect()
		<-connectDone
	}()

	go func() {
		defer close(connectDone)
		if err := sess.Connect(connectCtx); err != nil && connectCtx.Err() == nil {
			s.logger.Warn("session connection ended",
				zap.String("account", string(account.ID)),
				zap.Error(err))
		}
	}()

	readyCtx, cancelReady := context.WithTimeout(ctx, s.cfg.ReadyTimeout)
	defer cancelReady()

	if err := sess.WaitUntilReady(readyCtx); err != nil {
		if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
			return fmt.Errorf("account %s: %w", account.ID, domain.ErrReadyTimeout)
		}
		return fmt.Errorf("wait until ready for account %s: %w", account.ID, err)
	}

	return fn(ctx, sess)
}
