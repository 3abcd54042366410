package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	reportadapter "chatpool/internal/adapters/render/report"
	"chatpool/internal/application"
	"chatpool/internal/domain"

	"github.com/spf13/cobra"
)

type batchFlags struct {
	accountID   string
	asJSON      bool
	failFast    bool
	pace        time.Duration
	retryDelay  time.Duration
	maxRetries  int
	concurrency int
}

func registerBatchFlags(cmd *cobra.Command, flags *batchFlags) {
	cmd.Flags().StringVar(&flags.accountID, "account", "", "Account ID (default: all accounts)")
	cmd.Flags().BoolVar(&flags.asJSON, "json", false, "Render JSON output")
	cmd.Flags().BoolVar(&flags.failFast, "fail-fast", false, "Cancel remaining accounts on the first fatal failure")
	cmd.Flags().DurationVar(&flags.pace, "pace", application.DefaultPaceDelay, "Delay between remote actions within one account")
	cmd.Flags().DurationVar(&flags.retryDelay, "retry-delay", application.DefaultRetryDelay, "Back-off before retrying a rate-limited verification")
	cmd.Flags().IntVar(&flags.maxRetries, "max-retries", application.DefaultMaxRetries, "Verification attempts before giving up")
	cmd.Flags().IntVar(&flags.concurrency, "concurrency", 0, "Maximum accounts operated on at once (0 = no cap)")
}

func (f batchFlags) config() application.Config {
	return application.Config{
		PaceDelay:     f.pace,
		RetryDelay:    f.retryDelay,
		MaxRetries:    f.maxRetries,
		MaxConcurrent: f.concurrency,
		FailFast:      f.failFast,
	}
}

func loadAccounts(cmd *cobra.Command, app *app, accountID string) ([]domain.Account, error) {
	if accountID == "" {
		accounts, err := app.accounts.List(cmd.Context())
		if err != nil {
			return nil, fmt.Errorf("list accounts: %w", err)
		}
		if len(accounts) == 0 {
			return nil, fmt.Errorf("no accounts configured")
		}
		return accounts, nil
	}

	account, err := app.accounts.GetByID(cmd.Context(), domain.AccountID(accountID))
	if err != nil {
		return nil, fmt.Errorf("account %q: %w", accountID, err)
	}

	return []domain.Account{account}, nil
}

func runBatch(cmd *cobra.Command, asJSON bool, label string, run func(context.Context) error) error {
	if asJSON {
		return run(cmd.Context())
	}

	return runBatchSpinner(cmd.Context(), cmd.ErrOrStderr(), label, run)
}

func writeBatchOutput(cmd *cobra.Command, batch domain.BatchReport, opts reportadapter.RenderOptions, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(batchToJSON(batch))
	}

	_, err := fmt.Fprintln(cmd.OutOrStdout(), reportadapter.Render(batch, opts))
	return err
}

type accountResultJSON struct {
	AccountID string `json:"account_id"`
	Name      string `json:"name"`
	Good      bool   `json:"good,omitempty"`
	Succeeded int    `json:"succeeded"`
	Skipped   int    `json:"skipped"`
	Failed    int    `json:"failed"`
	Error     string `json:"error,omitempty"`
}

func batchToJSON(batch domain.BatchReport) []accountResultJSON {
	results := make([]accountResultJSON, 0, len(batch.Results))
	for _, result := range batch.Results {
		encoded := accountResultJSON{
			AccountID: string(result.Account.ID),
			Name:      result.Account.Name,
			Good:      result.Good,
			Succeeded: result.Report.Succeeded,
			Skipped:   result.Report.Skipped,
			Failed:    result.Report.Failed,
		}
		if result.Err != nil {
			encoded.Error = result.Err.Error()
		}
		results = append(results, encoded)
	}

	return results
}
