/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package indysdk assembles a ready to use ledger client from configuration:
// the pool transport, the in-memory wallet, the ed25519 crypto suite and the
// command executor.
package indysdk

import (
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/hyperledger/indy-resolver-go/pkg/client/ledger"
	"github.com/hyperledger/indy-resolver-go/pkg/common/logging"
	"github.com/hyperledger/indy-resolver-go/pkg/common/options"
	"github.com/hyperledger/indy-resolver-go/pkg/common/providers/core"
	"github.com/hyperledger/indy-resolver-go/pkg/common/providers/indy"
	"github.com/hyperledger/indy-resolver-go/pkg/core/config"
	"github.com/hyperledger/indy-resolver-go/pkg/core/logging/api"
	"github.com/hyperledger/indy-resolver-go/pkg/crypto/ed25519suite"
	"github.com/hyperledger/indy-resolver-go/pkg/ledger/executor"
	"github.com/hyperledger/indy-resolver-go/pkg/ledger/metrics"
	"github.com/hyperledger/indy-resolver-go/pkg/ledger/request"
	"github.com/hyperledger/indy-resolver-go/pkg/ledger/rules"
	"github.com/hyperledger/indy-resolver-go/pkg/pool/grpcpool"
	"github.com/hyperledger/indy-resolver-go/pkg/pool/loopback"
	"github.com/hyperledger/indy-resolver-go/pkg/wallet/memwallet"
)

var logger = logging.NewLogger("indyres/sdk")

// Transport is a pool that hands out handles
type Transport interface {
	indy.Pool
	Open() indy.PoolHandle
	ClosePool(handle indy.PoolHandle) error
}

// SDK holds the collaborators and the running executor
type SDK struct {
	opts         sdkOptions
	config       *config.SDKConfig
	pool         Transport
	closePool    func() error
	poolHandle   indy.PoolHandle
	wallet       *memwallet.Wallet
	walletHandle indy.WalletHandle
	cryptoSuite  *ed25519suite.Suite
	rules        *rules.Rules
	metrics      *metrics.ExecutorMetrics
	executor     *executor.Executor
}

type sdkOptions struct {
	configProvider core.ConfigProvider
	loggerProvider api.LoggerProvider
	registerer     prometheus.Registerer
	pool           Transport
	executorOpts   []options.Opt
}

// Option configures the SDK
type Option func(opts *sdkOptions) error

// WithConfig loads the configuration from provider. Without it the defaults
// and environment overrides apply.
func WithConfig(provider core.ConfigProvider) Option {
	return func(opts *sdkOptions) error {
		if provider == nil {
			return errors.New("config provider is required")
		}
		opts.configProvider = provider
		return nil
	}
}

// WithLoggerProvider installs the logging backend
func WithLoggerProvider(provider api.LoggerProvider) Option {
	return func(opts *sdkOptions) error {
		opts.loggerProvider = provider
		return nil
	}
}

// WithRegisterer registers the executor metrics with registerer when metrics
// are enabled. The default is prometheus.DefaultRegisterer.
func WithRegisterer(registerer prometheus.Registerer) Option {
	return func(opts *sdkOptions) error {
		opts.registerer = registerer
		return nil
	}
}

// WithPool uses transport instead of the configured pool. The SDK does not
// close it.
func WithPool(transport Transport) Option {
	return func(opts *sdkOptions) error {
		opts.pool = transport
		return nil
	}
}

// WithExecutorOpts passes additional options to the executor
func WithExecutorOpts(opts ...options.Opt) Option {
	return func(o *sdkOptions) error {
		o.executorOpts = append(o.executorOpts, opts...)
		return nil
	}
}

// New initializes the SDK and starts its executor
func New(opts ...Option) (*SDK, error) {
	sdk := &SDK{
		opts: sdkOptions{
			configProvider: config.Empty(),
			registerer:     prometheus.DefaultRegisterer,
		},
	}
	for _, opt := range opts {
		if err := opt(&sdk.opts); err != nil {
			return nil, errors.WithMessage(err, "Error in option passed to New")
		}
	}

	if sdk.opts.loggerProvider != nil {
		if !logging.Initialize(sdk.opts.loggerProvider) {
			logger.Debug("logger provider already bound, ignoring WithLoggerProvider")
		}
	}

	cfg, err := config.New(sdk.opts.configProvider)
	if err != nil {
		return nil, errors.WithMessage(err, "failed to initialize config")
	}
	sdk.config = cfg

	if cfg.MetricsEnabled() {
		m, err := metrics.New(sdk.opts.registerer, cfg.MetricsNamespace())
		if err != nil {
			return nil, errors.WithMessage(err, "failed to initialize metrics")
		}
		sdk.metrics = m
	}

	if err := sdk.initPool(); err != nil {
		return nil, errors.WithMessage(err, "failed to initialize pool")
	}

	sdk.wallet = memwallet.New()
	sdk.walletHandle = sdk.wallet.Open()
	sdk.cryptoSuite = ed25519suite.New()
	sdk.rules = rules.New()

	execOpts := []options.Opt{
		executor.WithCommandBufferSize(uint(cfg.CommandBufferSize())),
		executor.WithMetrics(sdk.metrics),
		request.WithProtocolVersion(cfg.ProtocolVersion()),
	}
	sdk.executor = executor.New(sdk, append(execOpts, sdk.opts.executorOpts...)...)
	if err := sdk.executor.Start(); err != nil {
		sdk.closeTransport()
		return nil, errors.WithMessage(err, "failed to start executor")
	}

	logger.Debugf("SDK initialized with pool handle %d and wallet handle %d", sdk.poolHandle, sdk.walletHandle)
	return sdk, nil
}

func (sdk *SDK) initPool() error {
	if sdk.opts.pool != nil {
		sdk.pool = sdk.opts.pool
		sdk.poolHandle = sdk.pool.Open()
		return nil
	}

	address := sdk.config.PoolAddress()
	if address == "" {
		p := loopback.New(
			loopback.WithNodes(sdk.config.PoolNodes()...),
			loopback.WithActionTimeout(sdk.config.PoolTimeout()),
		)
		sdk.pool = p
		sdk.closePool = func() error {
			p.Close()
			return nil
		}
		logger.Debug("using in-process pool")
	} else {
		c, err := grpcpool.Dial(address, grpcpool.WithRequestTimeout(sdk.config.PoolTimeout()))
		if err != nil {
			return err
		}
		sdk.pool = c
		sdk.closePool = c.Close
		logger.Debugf("using pool gateway at %s", address)
	}
	sdk.poolHandle = sdk.pool.Open()
	return nil
}

// Pool returns the pool transport
func (sdk *SDK) Pool() indy.Pool {
	return sdk.pool
}

// Wallet returns the wallet
func (sdk *SDK) Wallet() indy.Wallet {
	return sdk.wallet
}

// CryptoSuite returns the crypto suite
func (sdk *SDK) CryptoSuite() indy.CryptoSuite {
	return sdk.cryptoSuite
}

// Rules returns the ledger rules
func (sdk *SDK) Rules() indy.Rules {
	return sdk.rules
}

// Config returns the loaded configuration
func (sdk *SDK) Config() *config.SDKConfig {
	return sdk.config
}

// Metrics returns the executor metrics, nil when disabled
func (sdk *SDK) Metrics() *metrics.ExecutorMetrics {
	return sdk.metrics
}

// CreateDID creates a DID and its key in the SDK wallet. An empty seed
// generates a random key.
func (sdk *SDK) CreateDID(seed []byte) (*indy.Did, error) {
	return sdk.wallet.CreateAndStoreDID(sdk.walletHandle, seed)
}

// LedgerClient returns a client bound to the SDK pool and wallet. Blocking
// calls wait at most client.timeout unless opts say otherwise.
func (sdk *SDK) LedgerClient(opts ...ledger.ClientOption) (*ledger.Client, error) {
	clientOpts := []ledger.ClientOption{
		ledger.WithPoolHandle(sdk.poolHandle),
		ledger.WithWalletHandle(sdk.walletHandle),
		ledger.WithDefaultTimeout(sdk.config.ClientTimeout()),
	}
	return ledger.New(sdk.executor, append(clientOpts, opts...)...)
}

// Close stops the executor and releases the pool and the wallet. Pending
// submissions complete with an executor stopped error.
func (sdk *SDK) Close() error {
	err := sdk.executor.Stop()
	if err != nil {
		logger.Warnf("stopping executor failed: %s", err)
	}
	if cerr := sdk.wallet.Close(sdk.walletHandle); cerr != nil {
		logger.Debugf("closing wallet failed: %s", cerr)
	}
	if cerr := sdk.pool.ClosePool(sdk.poolHandle); cerr != nil {
		logger.Debugf("closing pool handle failed: %s", cerr)
	}
	if cerr := sdk.closeTransport(); cerr != nil && err == nil {
		err = cerr
	}
	return err
}

func (sdk *SDK) closeTransport() error {
	if sdk.closePool == nil {
		return nil
	}
	return errors.WithMessage(sdk.closePool(), "closing pool failed")
}
