package application

import (
	"context"

	"chatpool/internal/domain"

	"golang.org/x/sync/errgroup"
)

// accountTask is one account's operation within a batch. The Account field
// of the returned result is filled in by the fan-out.
type accountTask func(ctx context.Context, account domain.Account) domain.AccountResult

// runForAll launches one task per account and aggregates results in input
// order. No task outlives the call: the group is always fully awaited.
//
// With FailFast off (the default) every account runs to completion and
// fatal failures are reported per account in the batch report, with a nil
// top-level error. With FailFast on, the first fatal failure cancels the
// shared context so sibling sessions wind down, and that failure is also
// returned as the top-level error once all tasks have finished.
func (s *Service) runForAll(ctx context.Context, accounts []domain.Account, task accountTask) (domain.BatchReport, error) {
	results := make([]domain.AccountResult, len(accounts))

	group, groupCtx := errgroup.WithContext(ctx)
	if s.cfg.MaxConcurrent > 0 {
		group.SetLimit(s.cfg.MaxConcurrent)
	}

	for i, account := range accounts {
		group.Go(func() error {
			result := task(groupCtx, account)
			result.Account = account
			results[i] = result

			if s.cfg.FailFast && result.Err != nil {
				return result.Err
			}

			return nil
		})
	}

	err := group.Wait()
	batch := domain.BatchReport{Results: results}

	if s.cfg.FailFast && err != nil {
		return batch, err
	}

	return batch, nil
}
