package root

import (
	"context"

	"github.com/spf13/cobra"

	"dailyquest/internal/api"
)

func newServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the JSON HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			return api.NewServer(svc).ListenAndServe(addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "Listen address")

	return cmd
}
