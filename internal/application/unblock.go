package application

import (
	"context"
	"fmt"

	"chatpool/internal/domain"
	"chatpool/internal/ports"

	"go.uber.org/zap"
)

// UnblockAll unblocks every blocked user known to the account's session,
// skipping the account's own identity and users that are not blocked.
// Failure handling and pacing follow LeaveAll: transient failures are
// logged and skipped, unclassified failures abort the remaining users, and
// the pacing delay follows every unblock attempt.
func (s *Service) UnblockAll(ctx context.Context, account domain.Account) (domain.OperationReport, error) {
	var report domain.OperationReport

	err := s.withSession(ctx, account, func(ctx context.Context, sess ports.Session) error {
		self := sess.Identity()

		users, err := sess.Users(ctx)
		if err != nil {
			return fmt.Errorf("enumerate users: %w", err)
		}

		for _, user := range users {
			ref := user.Ref()
			if ref.ID == self.ID {
				continue
			}
			if !user.Blocked() {
				report.Skipped++
				continue
			}

			unblockErr := user.Unblock(ctx)

			switch domain.Classify(unblockErr) {
			case domain.SeverityNone:
				report.Succeeded++
				s.logger.Info("unblocked user",
					zap.String("user", ref.Tag()),
					zap.String("user_id", ref.ID),
					zap.String("as", self.Tag()))
			case domain.SeverityTransient, domain.SeverityForbidden:
				report.Failed++
				s.logger.Warn("couldn't unblock user",
					zap.String("user", ref.Tag()),
					zap.String("user_id", ref.ID),
					zap.String("as", self.Tag()),
					zap.Error(unblockErr))
				unblockErr = nil
			default:
				report.Failed++
			}

			if sleepErr := s.clock.Sleep(ctx, s.cfg.PaceDelay); sleepErr != nil {
				return sleepErr
			}

			if unblockErr != nil {
				return fmt.Errorf("unblock user %s: %w", ref.ID, unblockErr)
			}
		}

		return nil
	})
	if err != nil {
		return report, fmt.Errorf("unblock all for account %s: %w", account.ID, err)
	}

	return report, nil
}

// UnblockAllAsAll runs UnblockAll for every account concurrently.
func (s *Service) UnblockAllAsAll(ctx context.Context, accounts []domain.Account) (domain.BatchReport, error) {
	return s.runForAll(ctx, accounts, func(ctx context.Context, account domain.Account) domain.AccountResult {
		report, err := s.UnblockAll(ctx, account)
		return domain.AccountResult{Report: report, Err: err}
	})
}
