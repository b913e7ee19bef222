package main

import (
	"fmt"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/notifycenter"
)

func newObserveCommand(ctx *commandContext) *cobra.Command {
	var count int
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "observe NAME...",
		Short: "Print notifications as they are posted",
		Long:  "Prints one line per delivered notification until interrupted, --count deliveries or --timeout.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hub, err := ctx.openHub(cmd.Context())
			if err != nil {
				return err
			}
			defer ctx.close()

			queue, releaseQueue := ctx.queue()
			defer releaseQueue()

			var (
				mu        sync.Mutex
				delivered int
			)
			done := make(chan struct{})
			var doneOnce sync.Once

			center := ctx.center(hub)
			for _, name := range args {
				token, err := center.Observe(name, queue, func(n notifycenter.Notification) {
					mu.Lock()
					defer mu.Unlock()
					if count > 0 && delivered >= count {
						return
					}
					delivered++
					fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", time.Now().Format(time.RFC3339Nano), n.Name)
					if count > 0 && delivered == count {
						doneOnce.Do(func() { close(done) })
					}
				})
				if err != nil {
					return fmt.Errorf("observe %s: %w", name, err)
				}
				defer center.RemoveObserver(token)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "observing %d name(s)\n", len(args))

			var deadline <-chan time.Time
			if timeout > 0 {
				timer := time.NewTimer(timeout)
				defer timer.Stop()
				deadline = timer.C
			}

			select {
			case <-done:
			case <-deadline:
			case <-cmd.Context().Done():
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", 0, "Exit after this many notifications (0 waits forever)")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "Exit after this long (0 waits forever)")

	return cmd
}
