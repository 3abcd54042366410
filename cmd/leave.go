package cmd

import (
	"context"

	reportadapter "chatpool/internal/adapters/render/report"
	"chatpool/internal/domain"

	"github.com/spf13/cobra"
)

func newLeaveCmd(app *app) *cobra.Command {
	var flags batchFlags

	cmd := &cobra.Command{
		Use:   "leave",
		Short: "Leave every guild on the selected accounts",
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
				batch, runErr = svc.LeaveAllAsAll(ctx, accounts)
				return runErr
			}

			if err := runBatch(cmd, flags.asJSON, "Leaving guilds...", run); err != nil {
				return err
			}

			opts := reportadapter.RenderOptions{Title: "Guilds left"}
			return writeBatchOutput(cmd, batch, opts, flags.asJSON)
		},
	}

	registerBatchFlags(cmd, &flags)

	return cmd
}
