package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/fledge-tests/fledge-mockserver/framework"
	"github.com/fledge-tests/fledge-mockserver/logging"
	"github.com/fledge-tests/fledge-mockserver/peers"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func newServeCommand() *cobra.Command {
	var params serveParams
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run mock peer servers until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := params.validate(); err != nil {
				return err
			}
			logger := logging.NewLogger(logging.Options{
				Debug:      params.debug,
				LogFile:    params.logFile,
				MaxSizeMB:  10,
				MaxBackups: 3,
				Console:    cmd.ErrOrStderr(),
			})
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, params, cmd.Flags().Changed, logger)
		},
	}
	params.addFlags(cmd.Flags())
	return cmd
}

func runServe(ctx context.Context, params serveParams, changed func(string) bool, logger zerolog.Logger) error {
	config, err := params.peersConfig(changed)
	if err != nil {
		return err
	}
	if config.CertFile == "" {
		certFile, keyFile, cleanup, err := temporaryCertificate()
		if err != nil {
			return err
		}
		defer cleanup()
		logger.Warn().Str("cert", certFile).Msg("No certificate given, using a temporary self-signed one")
		config.CertFile, config.KeyFile = certFile, keyFile
	}

	group, err := peers.Start(config, func(name string) framework.Logger {
		return logging.ForComponent(logger, name)
	}, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err := group.Close(); err != nil {
			logger.Error().Err(err).Msg("Error stopping servers")
		}
	}()

	for _, p := range config.Peers {
		s := group.Server(p.Name)
		p.Port = s.Port()
		logger.Info().
			Str("peer", p.Name).
			Str("address", s.Address()).
			Str("directory", s.Directory()).
			Msg("Serving")
		logger.Debug().Str("peer", p.Name).Msg("Equivalent command: " + peerCommandLine(config, p))
	}

	<-ctx.Done()
	logger.Info().Msg("Shutting down")
	return nil
}
