package verifier_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"freshprint/internal/clock"
	"freshprint/internal/crypto"
	"freshprint/internal/domain"
	"freshprint/internal/platform/ratelimiter"
	proto "freshprint/internal/protocol/fingerprint"
	fpsvc "freshprint/internal/services/fingerprint"
	"freshprint/internal/verifier"
)

const t0 = 1700000000

type fixture struct {
	srv    *verifier.Server
	ts     *httptest.Server
	pubPEM domain.PublicKeyPEM
	fp     domain.Fingerprint
}

func newFixture(t *testing.T, at uint64, limiter *ratelimiter.KeyLimiter) *fixture {
	t.Helper()
	provider := crypto.NewEd25519Provider()
	kp, err := provider.GenerateKeyPair()
	require.NoError(t, err)
	fp, err := proto.New(provider).Generate(kp, clock.Fixed(t0))
	require.NoError(t, err)
	pubPEM, err := crypto.EncodePublicKeyPEM(kp.Public)
	require.NoError(t, err)

	checker := fpsvc.New(nil, provider, clock.Fixed(at), nil)
	srv := verifier.NewServer(checker, verifier.Options{Limiter: limiter, Logger: zaptest.NewLogger(t)})
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return &fixture{srv: srv, ts: ts, pubPEM: pubPEM, fp: fp}
}

func (f *fixture) post(t *testing.T, body any) (*http.Response, []byte) {
	t.Helper()
	var buf bytes.Buffer
	switch v := body.(type) {
	case string:
		buf.WriteString(v)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(v))
	}
	resp, err := http.Post(f.ts.URL+"/verify", "application/json", &buf)
	require.NoError(t, err)
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, b
}

func decodeValid(t *testing.T, b []byte) bool {
	t.Helper()
	var out struct {
		Valid bool `json:"valid"`
	}
	require.NoError(t, json.Unmarshal(b, &out))
	return out.Valid
}

func TestVerify_Valid(t *testing.T) {
	f := newFixture(t, t0+60, nil)
	resp, b := f.post(t, map[string]string{"public_key": string(f.pubPEM), "fingerprint": string(f.fp)})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.True(t, decodeValid(t, b))
	require.Equal(t, 1.0, testutil.ToFloat64(f.srv.Metrics().Verifications.WithLabelValues("ok")))
}

func TestVerify_Stale(t *testing.T) {
	f := newFixture(t, t0+3601, nil)
	resp, b := f.post(t, map[string]string{"public_key": string(f.pubPEM), "fingerprint": string(f.fp)})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.False(t, decodeValid(t, b))
	require.Equal(t, 1.0, testutil.ToFloat64(f.srv.Metrics().Verifications.WithLabelValues("stale")))
}

func TestVerify_MalformedFingerprint(t *testing.T) {
	f := newFixture(t, t0, nil)
	resp, b := f.post(t, map[string]string{"public_key": string(f.pubPEM), "fingerprint": "sha256.a.b.ed25519"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.False(t, decodeValid(t, b))
	require.Equal(t, 1.0, testutil.ToFloat64(f.srv.Metrics().Verifications.WithLabelValues("malformed_field_count")))
}

func TestVerify_BadRequests(t *testing.T) {
	f := newFixture(t, t0, nil)

	resp, _ := f.post(t, "{not json")
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = f.post(t, map[string]string{"public_key": string(f.pubPEM)})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = f.post(t, map[string]string{"public_key": "garbage", "fingerprint": string(f.fp)})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Equal(t, 1.0, testutil.ToFloat64(f.srv.Metrics().Verifications.WithLabelValues("invalid_public_key")))

	huge := `{"public_key":"` + strings.Repeat("A", 20<<10) + `"}`
	resp, _ = f.post(t, huge)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestVerify_MethodNotAllowed(t *testing.T) {
	f := newFixture(t, t0, nil)
	resp, err := http.Get(f.ts.URL + "/verify")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
	require.Equal(t, http.MethodPost, resp.Header.Get("Allow"))
}

func TestVerify_RateLimited(t *testing.T) {
	f := newFixture(t, t0, ratelimiter.New(0.001, 2, time.Minute))
	body := map[string]string{"public_key": string(f.pubPEM), "fingerprint": string(f.fp)}

	for i := 0; i < 2; i++ {
		resp, _ := f.post(t, body)
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}
	resp, _ := f.post(t, body)
	require.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	require.Equal(t, 1.0, testutil.ToFloat64(f.srv.Metrics().RateLimited))
}

func TestHealthzAndMetrics(t *testing.T) {
	f := newFixture(t, t0, nil)

	resp, err := http.Get(f.ts.URL + "/healthz")
	require.NoError(t, err)
	b, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "ok", string(b))

	resp, err = http.Get(f.ts.URL + "/metrics")
	require.NoError(t, err)
	b, _ = io.ReadAll(resp.Body)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, string(b), "freshprint_verifications_total")
}
