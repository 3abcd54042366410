package application

import (
	"context"
	"fmt"

	"chatpool/internal/domain"
	"chatpool/internal/ports"

	"go.uber.org/zap"
)

// LeaveAll leaves every community the account has joined, in enumeration
// order, continuing past transient per-guild failures. An unclassified
// failure aborts the remaining guilds and propagates.
//
// Every attempt is followed by the fixed pacing delay, including an attempt
// whose fatal failure is about to propagate: the delay throttles the abort
// path the same way it throttles the happy path.
func (s *Service) LeaveAll(ctx context.Context, account domain.Account) (domain.OperationReport, error) {
	var report domain.OperationReport

	err := s.withSession(ctx, account, func(ctx context.Context, sess ports.Session) error {
		self := sess.Identity()

		guilds, err := sess.Guilds(ctx)
		if err != nil {
			return fmt.Errorf("enumerate guilds: %w", err)
		}

		for _, guild := range guilds {
			leaveErr := guild.Leave(ctx)

			switch domain.Classify(leaveErr) {
			case domain.SeverityNone:
				report.Succeeded++
				s.logger.Info("left guild",
					zap.String("guild", guild.Name()),
					zap.String("guild_id", guild.ID()),
					zap.String("as", self.Tag()))
			case domain.SeverityTransient, domain.SeverityForbidden:
				report.Failed++
				s.logger.Warn("couldn't leave guild",
					zap.String("guild", guild.Name()),
					zap.String("guild_id", guild.ID()),
					zap.String("as", self.Tag()),
					zap.Error(leaveErr))
				leaveErr = nil
			default:
				report.Failed++
			}

			if sleepErr := s.clock.Sleep(ctx, s.cfg.PaceDelay); sleepErr != nil {
				return sleepErr
			}

			if leaveErr != nil {
				return fmt.Errorf("leave guild %s: %w", guild.ID(), leaveErr)
			}
		}

		return nil
	})
	if err != nil {
		return report, fmt.Errorf("leave all for account %s: %w", account.ID, err)
	}

	return report, nil
}

// LeaveAllAsAll runs LeaveAll for every account concurrently. It exists
// purely to drive side effects across the pool; outcomes land in the batch
// report.
func (s *Service) LeaveAllAsAll(ctx context.Context, accounts []domain.Account) (domain.BatchReport, error) {
	return s.runForAll(ctx, accounts, func(ctx context.Context, account domain.Account) domain.AccountResult {
		report, err := s.LeaveAll(ctx, account)
		return domain.AccountResult{Report: report, Err: err}
	})
}
