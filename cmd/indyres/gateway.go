/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package main

import (
	"context"
	"net"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/hyperledger/indy-resolver-go/pkg/common/logging"
	"github.com/hyperledger/indy-resolver-go/pkg/core/config"
	"github.com/hyperledger/indy-resolver-go/pkg/core/config/lookup"
	"github.com/hyperledger/indy-resolver-go/pkg/pool/grpcpool"
	"github.com/hyperledger/indy-resolver-go/pkg/pool/loopback"
)

// gatewaySettings is the optional "gateway" section of the config file
type gatewaySettings struct {
	Listen string
	Nodes  []string
}

func newGatewayCmd(opts *globalOptions) *cobra.Command {
	var listen string
	var nodes []string

	cmd := &cobra.Command{
		Use:   "gateway",
		Short: "Serve an in-process pool as a gRPC gateway",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			lp, err := opts.loggerProvider(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			logging.Initialize(lp)

			settings, err := opts.gatewaySettings()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("listen") || settings.Listen == "" {
				settings.Listen = listen
			}
			if cmd.Flags().Changed("nodes") || len(settings.Nodes) == 0 {
				settings.Nodes = nodes
			}

			lis, err := net.Listen("tcp", settings.Listen)
			if err != nil {
				return errors.Wrapf(err, "listening on %s failed", settings.Listen)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runGateway(ctx, lis, settings.Nodes)
		},
	}
	cmd.Flags().StringVar(&listen, "listen", "127.0.0.1:9700", "address to serve on")
	cmd.Flags().StringSliceVar(&nodes, "nodes", config.DefaultPoolNodes, "names of the pool nodes")
	return cmd
}

func (o *globalOptions) gatewaySettings() (gatewaySettings, error) {
	settings := gatewaySettings{}
	cfg, err := config.New(o.configProvider())
	if err != nil {
		return settings, err
	}
	err = cfg.Lookup().UnmarshalKey("gateway", &settings, lookup.WithStrictDecode())
	return settings, errors.WithMessage(err, "invalid gateway settings")
}

// runGateway serves a loopback pool on lis until ctx is done
func runGateway(ctx context.Context, lis net.Listener, nodes []string) error {
	backend := loopback.New(loopback.WithNodes(nodes...))
	defer backend.Close()

	srv := grpcpool.NewServer(backend, backend.Open())
	errch := make(chan error, 1)
	go func() {
		errch <- srv.Serve(lis)
	}()

	select {
	case err := <-errch:
		srv.Stop()
		return errors.Wrap(err, "serving gateway failed")
	case <-ctx.Done():
		logger.Info("stopping gateway")
		srv.Stop()
		<-errch
		return nil
	}
}
