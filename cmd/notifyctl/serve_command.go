package main

import (
	"github.com/spf13/cobra"

	"github.com/dmitrymomot/notifycenter/pkg/httpbridge"
	"github.com/dmitrymomot/notifycenter/pkg/httpserver"
)

func newServeCommand(ctx *commandContext) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP bridge",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			hub, err := ctx.openHub(cmd.Context())
			if err != nil {
				return err
			}
			defer ctx.close()

			opts := []httpbridge.Option{httpbridge.WithLogger(ctx.log())}
			for _, c := range ctx.checks {
				opts = append(opts, httpbridge.WithHealthcheck(c.name, c.fn))
			}

			httpCfg := ctx.config.HTTP
			if addr != "" {
				httpCfg.Addr = addr
			}
			srv := httpserver.NewFromConfig(httpCfg, httpserver.WithLogger(ctx.log()))
			return srv.Run(cmd.Context(), httpbridge.New(ctx.center(hub), opts...))
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides HTTP_ADDR)")

	return cmd
}
