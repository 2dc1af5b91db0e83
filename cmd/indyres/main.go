/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Command indyres builds, signs and submits Indy ledger requests. It also
// serves an in-process pool as a gRPC gateway.
package main

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"runtime/debug"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/hyperledger/indy-resolver-go/pkg/client/ledger"
	"github.com/hyperledger/indy-resolver-go/pkg/common/logging"
	"github.com/hyperledger/indy-resolver-go/pkg/common/providers/core"
	"github.com/hyperledger/indy-resolver-go/pkg/core/config"
	"github.com/hyperledger/indy-resolver-go/pkg/core/logging/api"
	"github.com/hyperledger/indy-resolver-go/pkg/core/logging/zerologger"
	"github.com/hyperledger/indy-resolver-go/pkg/indysdk"
)

var logger = logging.NewLogger("indyres")

var exampleUsage = strings.TrimSpace(`
  indyres build get-txn --ledger DOMAIN --seq-no 1
  indyres build auth-rules --seed $SEED --file rules.yaml | indyres sign --seed $SEED -
  indyres submit --config indyres.yaml --seed $SEED --sign @request.json
  indyres gateway --listen 127.0.0.1:9700
`)

type globalOptions struct {
	configFile string
	logFormat  string
	seed       string
	timeout    time.Duration
}

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		logger.Errorf("indyres: %s", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	root := &cobra.Command{
		Use:           "indyres",
		Short:         "Build, sign and submit Indy ledger requests",
		Example:       exampleUsage,
		Version:       fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configFile, "config", "", "path to the configuration file (yaml or json)")
	flags.StringVar(&opts.logFormat, "log-format", "console", "log output format: console or json")
	flags.StringVar(&opts.seed, "seed", "", "32 byte seed of the submitter DID")
	flags.DurationVar(&opts.timeout, "timeout", 0, "how long to wait for a response (default from client.timeout)")

	root.AddCommand(
		newBuildCmd(opts),
		newSignCmd(opts),
		newMetadataCmd(opts),
		newSubmitCmd(opts),
		newActionCmd(opts),
		newGatewayCmd(opts),
	)
	return root
}

// session is an SDK opened for the duration of one command
type session struct {
	sdk    *indysdk.SDK
	client *ledger.Client
	did    string
}

func (o *globalOptions) configProvider() core.ConfigProvider {
	if o.configFile == "" {
		return config.Empty()
	}
	return config.FromFile(o.configFile)
}

func (o *globalOptions) loggerProvider(out io.Writer) (api.LoggerProvider, error) {
	switch o.logFormat {
	case "console":
		return zerologger.NewConsole(), nil
	case "json":
		return zerologger.New(out), nil
	default:
		return nil, errors.Errorf("unsupported log format [%s]", o.logFormat)
	}
}

func (o *globalOptions) open(cmd *cobra.Command) (*session, error) {
	lp, err := o.loggerProvider(cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}

	sdk, err := indysdk.New(indysdk.WithConfig(o.configProvider()), indysdk.WithLoggerProvider(lp))
	if err != nil {
		return nil, err
	}

	s := &session{sdk: sdk}
	if o.seed != "" {
		did, err := sdk.CreateDID([]byte(o.seed))
		if err != nil {
			s.close()
			return nil, errors.WithMessage(err, "creating submitter DID failed")
		}
		s.did = did.Did
		logger.Debugf("submitter DID: %s", s.did)
	}

	var clientOpts []ledger.ClientOption
	if o.timeout > 0 {
		clientOpts = append(clientOpts, ledger.WithDefaultTimeout(o.timeout))
	}
	s.client, err = sdk.LedgerClient(clientOpts...)
	if err != nil {
		s.close()
		return nil, err
	}
	return s, nil
}

// submitter returns the DID derived from --seed
func (s *session) submitter() (string, error) {
	if s.did == "" {
		return "", errors.New("a submitter is required: set --seed")
	}
	return s.did, nil
}

// optionalSubmitter returns nil when no seed was given
func (s *session) optionalSubmitter() *string {
	if s.did == "" {
		return nil
	}
	return &s.did
}

func (s *session) close() {
	if err := s.sdk.Close(); err != nil {
		logger.Debugf("closing SDK failed: %s", err)
	}
}

// withSession opens a session, runs fn and prints its result
func withSession(opts *globalOptions, fn func(cmd *cobra.Command, s *session, args []string) (string, error)) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		s, err := opts.open(cmd)
		if err != nil {
			return err
		}
		defer s.close()

		result, err := fn(cmd, s, args)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), result)
		return err
	}
}
