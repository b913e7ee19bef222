package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/notifycenter"
)

func newPostCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "post NAME...",
		Short: "Post one or more notifications",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hub, err := ctx.openHub(cmd.Context())
			if err != nil {
				return err
			}
			defer ctx.close()

			var errs []error
			for _, name := range args {
				qualified := name
				if p := ctx.prefix(); p != "" {
					qualified = notifycenter.NewPrefixed(hub, p).Name(name)
				}
				if err := hub.PostContext(cmd.Context(), qualified); err != nil {
					errs = append(errs, fmt.Errorf("post %s: %w", qualified, err))
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "posted %s\n", qualified)
			}
			return errors.Join(errs...)
		},
	}
}
