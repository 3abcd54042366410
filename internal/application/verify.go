package application

import (
	"context"
	"fmt"

	"chatpool/internal/domain"
	"chatpool/internal/ports"

	"go.uber.org/zap"
)

// VerifyAccount reports whether the account is in good standing: its
// self-profile fetch succeeds without a permission-denied signal.
//
// A transient failure backs off for the configured retry delay and retries
// the whole operation with a fresh session, up to MaxRetries attempts;
// exhaustion surfaces as domain.ErrRetriesExhausted wrapping the last
// failure. Any other failure is fatal for the account.
func (s *Service) VerifyAccount(ctx context.Context, account domain.Account) (bool, error) {
	for attempt := 1; ; attempt++ {
		good, err := s.verifyOnce(ctx, account)
		if err == nil {
			return good, nil
		}
		if domain.Classify(err) != domain.SeverityTransient {
			return false, err
		}
		if attempt >= s.cfg.MaxRetries {
			return false, fmt.Errorf("verify account %s after %d attempts: %w: %w",
				account.ID, attempt, domain.ErrRetriesExhausted, err)
		}

		s.logger.Warn("verification rate limited, backing off",
			zap.String("account", string(account.ID)),
			zap.Int("attempt", attempt),
			zap.Duration("delay", s.cfg.RetryDelay))

		if sleepErr := s.clock.Sleep(ctx, s.cfg.RetryDelay); sleepErr != nil {
			return false, sleepErr
		}
	}
}

func (s *Service) verifyOnce(ctx context.Context, account domain.Account) (bool, error) {
	good := false

	err := s.withSession(ctx, account, func(ctx context.Context, sess ports.Session) error {
		_, err := sess.FetchProfile(ctx, account.User.ID)
		switch domain.Classify(err) {
		case domain.SeverityNone:
			good = true
			s.logger.Info("account is in good standing",
				zap.String("account", string(account.ID)),
				zap.String("user", account.User.Tag()),
				zap.String("email", account.Email))
			return nil
		case domain.SeverityForbidden:
			s.logger.Error("account is not in good standing",
				zap.String("account", string(account.ID)),
				zap.String("user", account.User.Tag()),
				zap.String("email", account.Email))
			return nil
		default:
			return fmt.Errorf("fetch own profile: %w", err)
		}
	})
	if err != nil {
		return false, err
	}

	return good, nil
}

// VerifyAll verifies every account concurrently and returns the sub-list in
// good standing, preserving input order, together with the per-account
// batch report.
func (s *Service) VerifyAll(ctx context.Context, accounts []domain.Account) ([]domain.Account, domain.BatchReport, error) {
	batch, err := s.runForAll(ctx, accounts, func(ctx context.Context, account domain.Account) domain.AccountResult {
		good, verifyErr := s.VerifyAccount(ctx, account)
		return domain.AccountResult{Good: good, Err: verifyErr}
	})
	if err != nil {
		return nil, batch, err
	}

	good := make([]domain.Account, 0, len(accounts))
	for _, result := range batch.Results {
		if result.Err == nil && result.Good {
			good = append(good, result.Account)
		}
	}

	return good, batch, nil
}
