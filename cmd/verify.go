package cmd

import (
	"context"

	reportadapter "chatpool/internal/adapters/render/report"
	"chatpool/internal/domain"

	"github.com/spf13/cobra"
)

func newVerifyCmd(app *app) *cobra.Command {
	var flags batchFlags

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Check which accounts are in good standing",
		Long:  "Logs in to every account, fetches the account's own profile and reports whether the account is still in good standing.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			accounts, err := loadAccounts(cmd, app, flags.accountID)
			if err != nil {
				return err
			}

			svc, err := app.service(flags.config())
			if err != nil {
				return err
			}

			var batch domain.BatchReport
			run := func(ctx context.Context) error {
				var runErr error
				_, batch, runErr = svc.VerifyAll(ctx, accounts)
				return runErr
			}

			if err := runBatch(cmd, flags.asJSON, "Verifying accounts...", run); err != nil {
				return err
			}

			opts := reportadapter.RenderOptions{Title: "Account standing", Verification: true}
			return writeBatchOutput(cmd, batch, opts, flags.asJSON)
		},
	}

	registerBatchFlags(cmd, &flags)

	return cmd
}
