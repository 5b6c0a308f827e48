package verifier

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"freshprint/internal/domain"
	"freshprint/internal/platform/ratelimiter"
	proto "freshprint/internal/protocol/fingerprint"
	fpsvc "freshprint/internal/services/fingerprint"
)

const (
	defaultMaxBodyBytes = 16 << 10
	shutdownTimeout     = 5 * time.Second
)

// Checker verifies a fingerprint against a PEM public key.
type Checker interface {
	Check(pub domain.PublicKeyPEM, fp domain.Fingerprint) error
}

type verifyRequest struct {
	PublicKey   string `json:"public_key"`
	Fingerprint string `json:"fingerprint"`
}

type verifyResponse struct {
	Valid bool `json:"valid"`
}

// Options tune a Server. Zero values pick defaults.
type Options struct {
	Limiter      *ratelimiter.KeyLimiter
	Registry     *prometheus.Registry
	Logger       *zap.Logger
	MaxBodyBytes int64
}

// Server is the HTTP verifier.
type Server struct {
	checker  Checker
	limiter  *ratelimiter.KeyLimiter
	registry *prometheus.Registry
	metrics  *Metrics
	log      *zap.Logger
	maxBody  int64
	now      func() time.Time
}

// NewServer returns a Server using checker.
func NewServer(checker Checker, opts Options) *Server {
	reg := opts.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	maxBody := opts.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = defaultMaxBodyBytes
	}
	return &Server{
		checker:  checker,
		limiter:  opts.Limiter,
		registry: reg,
		metrics:  NewMetrics(reg),
		log:      log,
		maxBody:  maxBody,
		now:      time.Now,
	}
}

// Metrics returns the server collectors.
func (s *Server) Metrics() *Metrics { return s.metrics }

// Handler returns the routed handler wrapped in the access log.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/verify", s.handleVerify)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	mux.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	return s.accessLog(mux)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		s.log.Info("verifier listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func (s *Server) handleVerify(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if !s.limiter.Allow(remoteHost(r), s.now()) {
		s.metrics.RateLimited.Inc()
		http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
		return
	}
	start := s.now()
	defer func() { s.metrics.Duration.Observe(s.now().Sub(start).Seconds()) }()

	var req verifyRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, s.maxBody))
	if err := dec.Decode(&req); err != nil {
		s.metrics.Verifications.WithLabelValues(reasonBadRequestBody).Inc()
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.PublicKey == "" || req.Fingerprint == "" {
		s.metrics.Verifications.WithLabelValues(reasonBadRequestBody).Inc()
		http.Error(w, "public_key and fingerprint are required", http.StatusBadRequest)
		return
	}

	err := s.checker.Check(domain.PublicKeyPEM(req.PublicKey), domain.Fingerprint(req.Fingerprint))
	if errors.Is(err, fpsvc.ErrInvalidPublicKey) {
		s.metrics.Verifications.WithLabelValues(reasonInvalidPubKey).Inc()
		http.Error(w, "invalid public key", http.StatusBadRequest)
		return
	}
	reason := proto.Reason(err)
	s.metrics.Verifications.WithLabelValues(reason).Inc()
	if err != nil {
		s.log.Info("verification failed", zap.String("reason", reason), zap.String("remote", remoteHost(r)))
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(verifyResponse{Valid: err == nil})
}

// statusRecorder captures the status code and body size for the access log.
type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	n, err := r.ResponseWriter.Write(b)
	r.bytes += n
	return n, err
}

func (s *Server) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w}
		next.ServeHTTP(rec, r)
		s.log.Debug("http request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("remote", r.RemoteAddr),
			zap.Int("status", rec.status),
			zap.Int("bytes", rec.bytes),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

func remoteHost(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return strings.TrimSpace(r.RemoteAddr)
	}
	return host
}
