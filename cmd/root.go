package cmd

import "github.com/spf13/cobra"

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "chatpool",
		Short:         "chatpool: bulk operations over a pool of chat-platform accounts",
		Long:          "chatpool verifies account standing, mass-leaves joined communities, and mass-unblocks users across a pool of accounts, one concurrent session per account.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	rootCmd.PersistentFlags().BoolVar(&app.verbose, "verbose", false, "Enable debug logging")

	rootCmd.AddCommand(
		newVersionCmd(),
		newAccountCmd(app),
		newVerifyCmd(app),
		newLeaveCmd(app),
		newUnblockCmd(app),
	)

	return rootCmd
}
