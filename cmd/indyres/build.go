/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package main

import (
	"github.com/spf13/cobra"

	"github.com/hyperledger/indy-resolver-go/pkg/ledger/request"
)

func newBuildCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build a ledger request",
	}
	cmd.AddCommand(
		newBuildGetTxnCmd(opts),
		newBuildValidatorInfoCmd(opts),
		newBuildNodeCmd(opts),
		newBuildPoolRestartCmd(opts),
		newBuildAuthRulesCmd(opts),
		newBuildGetAuthRuleCmd(opts),
		newBuildTaaCmd(opts),
		newBuildGetTaaCmd(opts),
		newBuildAmlCmd(opts),
		newBuildGetAmlCmd(opts),
	)
	return cmd
}

func newBuildGetTxnCmd(opts *globalOptions) *cobra.Command {
	var ledgerType string
	var seqNo int32

	cmd := &cobra.Command{
		Use:   "get-txn",
		Short: "Build a GET_TXN request",
		Args:  cobra.NoArgs,
		RunE: withSession(opts, func(cmd *cobra.Command, s *session, args []string) (string, error) {
			return s.client.BuildGetTxnRequest(s.optionalSubmitter(), ledgerType, seqNo)
		}),
	}
	cmd.Flags().StringVar(&ledgerType, "ledger", "DOMAIN", "ledger: DOMAIN, POOL, CONFIG or a numeric ledger id")
	cmd.Flags().Int32Var(&seqNo, "seq-no", 0, "sequence number of the transaction")
	return cmd
}

func newBuildValidatorInfoCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validator-info",
		Short: "Build a GET_VALIDATOR_INFO action",
		Args:  cobra.NoArgs,
		RunE: withSession(opts, func(cmd *cobra.Command, s *session, args []string) (string, error) {
			submitter, err := s.submitter()
			if err != nil {
				return "", err
			}
			return s.client.BuildGetValidatorInfoRequest(submitter)
		}),
	}
}

func newBuildNodeCmd(opts *globalOptions) *cobra.Command {
	var target, file string

	cmd := &cobra.Command{
		Use:   "node",
		Short: "Build a NODE request from a node data file",
		Args:  cobra.NoArgs,
		RunE: withSession(opts, func(cmd *cobra.Command, s *session, args []string) (string, error) {
			submitter, err := s.submitter()
			if err != nil {
				return "", err
			}
			var data request.NodeOperationData
			if err := readYAML(file, &data); err != nil {
				return "", err
			}
			return s.client.BuildNodeRequest(submitter, target, data)
		}),
	}
	cmd.Flags().StringVar(&target, "target", "", "DID of the node")
	cmd.Flags().StringVar(&file, "file", "", "node data file")
	return cmd
}

func newBuildPoolRestartCmd(opts *globalOptions) *cobra.Command {
	var action, datetime string

	cmd := &cobra.Command{
		Use:   "pool-restart",
		Short: "Build a POOL_RESTART action",
		Args:  cobra.NoArgs,
		RunE: withSession(opts, func(cmd *cobra.Command, s *session, args []string) (string, error) {
			submitter, err := s.submitter()
			if err != nil {
				return "", err
			}
			return s.client.BuildPoolRestartRequest(submitter, action, optionalString(cmd.Flags(), "datetime", datetime))
		}),
	}
	cmd.Flags().StringVar(&action, "action", request.StartAction, "start or cancel")
	cmd.Flags().StringVar(&datetime, "datetime", "", "restart time (ISO 8601)")
	return cmd
}

func newBuildAuthRulesCmd(opts *globalOptions) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "auth-rules",
		Short: "Build an AUTH_RULE or AUTH_RULES request from a rules file",
		Long:  "Build an AUTH_RULE request when the file holds a single rule and an AUTH_RULES request for a list.",
		Args:  cobra.NoArgs,
		RunE: withSession(opts, func(cmd *cobra.Command, s *session, args []string) (string, error) {
			submitter, err := s.submitter()
			if err != nil {
				return "", err
			}
			var rules request.AuthRules
			if err := readYAML(file, &rules); err != nil {
				var rule request.AuthRule
				if ruleErr := readYAML(file, &rule); ruleErr != nil {
					return "", err
				}
				return s.client.BuildAuthRuleRequest(submitter, rule)
			}
			return s.client.BuildAuthRulesRequest(submitter, rules)
		}),
	}
	cmd.Flags().StringVar(&file, "file", "", "auth rules file")
	return cmd
}

func newBuildGetAuthRuleCmd(opts *globalOptions) *cobra.Command {
	var authType, authAction, field, oldValue, newValue string

	cmd := &cobra.Command{
		Use:   "get-auth-rule",
		Short: "Build a GET_AUTH_RULE request",
		Args:  cobra.NoArgs,
		RunE: withSession(opts, func(cmd *cobra.Command, s *session, args []string) (string, error) {
			query := request.GetAuthRule{
				AuthType:   optionalString(cmd.Flags(), "auth-type", authType),
				AuthAction: optionalString(cmd.Flags(), "auth-action", authAction),
				Field:      optionalString(cmd.Flags(), "field", field),
				OldValue:   optionalString(cmd.Flags(), "old-value", oldValue),
				NewValue:   optionalString(cmd.Flags(), "new-value", newValue),
			}
			return s.client.BuildGetAuthRuleRequest(s.optionalSubmitter(), query)
		}),
	}
	cmd.Flags().StringVar(&authType, "auth-type", "", "transaction type")
	cmd.Flags().StringVar(&authAction, "auth-action", "", "ADD or EDIT")
	cmd.Flags().StringVar(&field, "field", "", "transaction field")
	cmd.Flags().StringVar(&oldValue, "old-value", "", "old value of the field")
	cmd.Flags().StringVar(&newValue, "new-value", "", "new value of the field")
	return cmd
}

func newBuildTaaCmd(opts *globalOptions) *cobra.Command {
	var text, version string

	cmd := &cobra.Command{
		Use:   "taa",
		Short: "Build a TXN_AUTHOR_AGREEMENT request",
		Args:  cobra.NoArgs,
		RunE: withSession(opts, func(cmd *cobra.Command, s *session, args []string) (string, error) {
			submitter, err := s.submitter()
			if err != nil {
				return "", err
			}
			return s.client.BuildTxnAuthorAgreementRequest(submitter, text, version)
		}),
	}
	cmd.Flags().StringVar(&text, "text", "", "agreement text")
	cmd.Flags().StringVar(&version, "version", "", "agreement version")
	return cmd
}

func newBuildGetTaaCmd(opts *globalOptions) *cobra.Command {
	var digest, version string
	var timestamp uint64

	cmd := &cobra.Command{
		Use:   "get-taa",
		Short: "Build a GET_TXN_AUTHR_AGRMT request",
		Args:  cobra.NoArgs,
		RunE: withSession(opts, func(cmd *cobra.Command, s *session, args []string) (string, error) {
			var data *request.GetTxnAuthorAgreementData
			if cmd.Flags().Changed("digest") || cmd.Flags().Changed("version") || cmd.Flags().Changed("timestamp") {
				data = &request.GetTxnAuthorAgreementData{
					Digest:  optionalString(cmd.Flags(), "digest", digest),
					Version: optionalString(cmd.Flags(), "version", version),
				}
				if cmd.Flags().Changed("timestamp") {
					data.Timestamp = &timestamp
				}
			}
			return s.client.BuildGetTxnAuthorAgreementRequest(s.optionalSubmitter(), data)
		}),
	}
	cmd.Flags().StringVar(&digest, "digest", "", "agreement digest")
	cmd.Flags().StringVar(&version, "version", "", "agreement version")
	cmd.Flags().Uint64Var(&timestamp, "timestamp", 0, "ledger time of the agreement")
	return cmd
}

func newBuildAmlCmd(opts *globalOptions) *cobra.Command {
	var file, version, amlContext string

	cmd := &cobra.Command{
		Use:   "aml",
		Short: "Build a TXN_AUTHR_AGRMT_AML request from a mechanisms file",
		Args:  cobra.NoArgs,
		RunE: withSession(opts, func(cmd *cobra.Command, s *session, args []string) (string, error) {
			submitter, err := s.submitter()
			if err != nil {
				return "", err
			}
			aml := request.AcceptanceMechanisms{}
			if err := readYAML(file, &aml); err != nil {
				return "", err
			}
			return s.client.BuildAcceptanceMechanismsRequest(submitter, aml, version, optionalString(cmd.Flags(), "context", amlContext))
		}),
	}
	cmd.Flags().StringVar(&file, "file", "", "acceptance mechanisms file")
	cmd.Flags().StringVar(&version, "version", "", "mechanisms version")
	cmd.Flags().StringVar(&amlContext, "context", "", "mechanisms context")
	return cmd
}

func newBuildGetAmlCmd(opts *globalOptions) *cobra.Command {
	var version string
	var timestamp uint64

	cmd := &cobra.Command{
		Use:   "get-aml",
		Short: "Build a GET_TXN_AUTHR_AGRMT_AML request",
		Args:  cobra.NoArgs,
		RunE: withSession(opts, func(cmd *cobra.Command, s *session, args []string) (string, error) {
			var ts *uint64
			if cmd.Flags().Changed("timestamp") {
				ts = &timestamp
			}
			return s.client.BuildGetAcceptanceMechanismsRequest(s.optionalSubmitter(), ts, optionalString(cmd.Flags(), "version", version))
		}),
	}
	cmd.Flags().StringVar(&version, "version", "", "mechanisms version")
	cmd.Flags().Uint64Var(&timestamp, "timestamp", 0, "ledger time of the mechanisms")
	return cmd
}
