package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pthm/swfilms/internal/server"
)

func newServeCmd(a *app) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the films page over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("addr") {
				a.cfg.Server.Addr = addr
			}
			return a.runServe(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides server.addr)")
	return cmd
}

func (a *app) runServe(ctx context.Context) error {
	client, err := a.newFetchClient(a.cfg.Fetch.Suspense)
	if err != nil {
		return err
	}

	if a.cfg.Server.Key == "" {
		a.logger.Warn().Msg("server.key not set, using a random key; resume URLs do not survive restarts")
	}

	srv := server.New(client, a.logger, server.Options{
		Addr:               a.cfg.Server.Addr,
		ShutdownTimeout:    a.cfg.Server.ShutdownTimeout,
		Key:                []byte(a.cfg.Server.Key),
		ShowCharacterNames: a.cfg.Characters.Names,
	})

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	return srv.Run(ctx)
}
