package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var prefixFlag string
	var envFileFlag string
	return newRootCommandWith(newCommandContext(&prefixFlag, &envFileFlag), &prefixFlag, &envFileFlag)
}

func newRootCommandWith(ctx *commandContext, prefixFlag, envFileFlag *string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "notifyctl",
		Short:         "Post and observe name-only notifications",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if ctx.hub != nil {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(prefixFlag, "prefix", "p", "", "Prefix joined to every notification name with a dot")
	rootCmd.PersistentFlags().StringVar(envFileFlag, "env-file", "", "Environment file loaded before reading configuration")

	rootCmd.AddCommand(newPostCommand(ctx))
	rootCmd.AddCommand(newObserveCommand(ctx))
	rootCmd.AddCommand(newServeCommand(ctx))

	return rootCmd
}
