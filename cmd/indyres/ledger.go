/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package main

import (
	"time"

	"github.com/spf13/cobra"
)

func newSignCmd(opts *globalOptions) *cobra.Command {
	var multi bool

	cmd := &cobra.Command{
		Use:   "sign <request|@file|->",
		Short: "Sign a request with the submitter key",
		Args:  cobra.ExactArgs(1),
		RunE: withSession(opts, func(cmd *cobra.Command, s *session, args []string) (string, error) {
			submitter, err := s.submitter()
			if err != nil {
				return "", err
			}
			req, err := readDocument(cmd, args[0])
			if err != nil {
				return "", err
			}
			if multi {
				return s.client.MultiSignRequest(submitter, req)
			}
			return s.client.SignRequest(submitter, req)
		}),
	}
	cmd.Flags().BoolVar(&multi, "multi", false, "add a signature to the request's multi-signature")
	return cmd
}

func newMetadataCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "metadata <response|@file|->",
		Short: "Print the metadata of a ledger response",
		Args:  cobra.ExactArgs(1),
		RunE: withSession(opts, func(cmd *cobra.Command, s *session, args []string) (string, error) {
			response, err := readDocument(cmd, args[0])
			if err != nil {
				return "", err
			}
			return s.client.GetResponseMetadata(response)
		}),
	}
}

func newSubmitCmd(opts *globalOptions) *cobra.Command {
	var sign bool
	var taaText, taaVersion, mechanism string
	var acceptedAt uint64

	cmd := &cobra.Command{
		Use:   "submit <request|@file|->",
		Short: "Submit a request to the pool and print the reply",
		Args:  cobra.ExactArgs(1),
		RunE: withSession(opts, func(cmd *cobra.Command, s *session, args []string) (string, error) {
			req, err := readDocument(cmd, args[0])
			if err != nil {
				return "", err
			}
			if cmd.Flags().Changed("taa-text") || cmd.Flags().Changed("taa-version") {
				req, err = s.client.AppendTxnAuthorAgreementAcceptance(req,
					optionalString(cmd.Flags(), "taa-text", taaText), optionalString(cmd.Flags(), "taa-version", taaVersion),
					nil, mechanism, acceptedAt)
				if err != nil {
					return "", err
				}
			}
			if !sign {
				return s.client.SubmitRequest(req)
			}
			submitter, err := s.submitter()
			if err != nil {
				return "", err
			}
			return s.client.SignAndSubmitRequest(submitter, req)
		}),
	}
	cmd.Flags().BoolVar(&sign, "sign", false, "sign the request with the submitter key first")
	cmd.Flags().StringVar(&taaText, "taa-text", "", "text of the accepted transaction author agreement")
	cmd.Flags().StringVar(&taaVersion, "taa-version", "", "version of the accepted transaction author agreement")
	cmd.Flags().StringVar(&mechanism, "taa-mechanism", "on_file", "acceptance mechanism")
	cmd.Flags().Uint64Var(&acceptedAt, "taa-time", 0, "acceptance time in seconds since the epoch")
	return cmd
}

func newActionCmd(opts *globalOptions) *cobra.Command {
	var nodes []string
	var nodeTimeout time.Duration

	cmd := &cobra.Command{
		Use:   "action <request|@file|->",
		Short: "Send a POOL_RESTART or GET_VALIDATOR_INFO request to pool nodes",
		Args:  cobra.ExactArgs(1),
		RunE: withSession(opts, func(cmd *cobra.Command, s *session, args []string) (string, error) {
			req, err := readDocument(cmd, args[0])
			if err != nil {
				return "", err
			}
			var timeout *time.Duration
			if cmd.Flags().Changed("node-timeout") {
				timeout = &nodeTimeout
			}
			return s.client.SubmitAction(req, nodes, timeout)
		}),
	}
	cmd.Flags().StringSliceVar(&nodes, "nodes", nil, "target nodes (default all)")
	cmd.Flags().DurationVar(&nodeTimeout, "node-timeout", 0, "how long to wait for each node")
	return cmd
}
