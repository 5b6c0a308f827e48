package app

import (
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"freshprint/internal/clock"
	"freshprint/internal/crypto"
	"freshprint/internal/domain"
	"freshprint/internal/platform/ratelimiter"
	fpsvc "freshprint/internal/services/fingerprint"
	"freshprint/internal/store"
	"freshprint/internal/verifier"
)

// Wire bundles the stores, services and logger for the CLI.
type Wire struct {
	Config       Config
	Log          *zap.Logger
	KeyStore     domain.KeyStore
	Provider     domain.CryptoProvider
	Clock        domain.Clock
	Fingerprints *fpsvc.Service
}

// NewWire constructs the dependency graph from cfg. A nil clk uses the
// system clock.
func NewWire(cfg Config, clk domain.Clock) (*Wire, error) {
	home, err := ResolveHome(cfg.Home)
	if err != nil {
		return nil, err
	}
	cfg.Home = home
	if err := os.MkdirAll(home, 0o700); err != nil {
		return nil, err
	}

	log, err := NewLogger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, err
	}
	if clk == nil {
		clk = clock.System{}
	}

	keyStore := store.NewKeyFileStore(home)
	provider := crypto.NewEd25519Provider()

	return &Wire{
		Config:       cfg,
		Log:          log,
		KeyStore:     keyStore,
		Provider:     provider,
		Clock:        clk,
		Fingerprints: fpsvc.New(keyStore, provider, clk, log.Named("fingerprint")),
	}, nil
}

// NewVerifierServer builds the HTTP verifier from the server config.
func (w *Wire) NewVerifierServer() *verifier.Server {
	sc := w.Config.Server
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return verifier.NewServer(w.Fingerprints, verifier.Options{
		Limiter:      ratelimiter.New(sc.RateLimitRPS, sc.RateLimitBurst, 0),
		Registry:     reg,
		Logger:       w.Log.Named("verifier"),
		MaxBodyBytes: sc.MaxBodyBytes,
	})
}

// Close flushes the logger.
func (w *Wire) Close() {
	_ = w.Log.Sync()
}
