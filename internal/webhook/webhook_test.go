// AngelaMos | 2026
// webhook_test.go

package webhook

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/templates/inventory-api/internal/config"
	"github.com/carterperez-dev/templates/inventory-api/internal/core"
)

const (
	testSecret = "s3cret"
	mainPush   = `{"ref":"refs/heads/main","after":"abc123"}`
)

type countingDeployer struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (d *countingDeployer) Deploy(context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.calls++
	return d.err
}

func (d *countingDeployer) count() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.calls
}

type outcomeRecorder struct {
	mu       sync.Mutex
	outcomes []string
}

func (o *outcomeRecorder) WebhookEvent(outcome string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.outcomes = append(o.outcomes, outcome)
}

func newRedis(t *testing.T) (*core.Redis, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb, err := core.NewRedis(context.Background(), config.RedisConfig{
		URL:      "redis://" + mr.Addr(),
		PoolSize: 2,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdb.Close() })
	return rdb, mr
}

func testConfig() config.WebhookConfig {
	return config.WebhookConfig{
		Secret:      testSecret,
		Branch:      "main",
		DeliveryTTL: time.Hour,
		Timeout:     10 * time.Second,
	}
}

func newRouter(t *testing.T, deployer Deployer) (http.Handler, *outcomeRecorder, *miniredis.Miniredis) {
	t.Helper()
	rdb, mr := newRedis(t)
	rec := &outcomeRecorder{}
	r := chi.NewRouter()
	NewHandler(NewService(testConfig(), deployer, rdb, rec)).RegisterRoutes(r)
	return r, rec, mr
}

func post(t *testing.T, h http.Handler, payload, signature, delivery string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/webhook/github", strings.NewReader(payload))
	if signature != "" {
		req.Header.Set(SignatureHeader, signature)
	}
	if delivery != "" {
		req.Header.Set(DeliveryHeader, delivery)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return rec.Code, out
}

func TestVerifySignature(t *testing.T) {
	payload := []byte(mainPush)
	valid := Sign(payload, testSecret)

	assert.True(t, strings.HasPrefix(valid, "sha1="))
	assert.Len(t, valid, len("sha1=")+40)

	tests := []struct {
		name      string
		signature string
		secret    string
		want      bool
	}{
		{"valid", valid, testSecret, true},
		{"wrong secret", Sign(payload, "other"), testSecret, false},
		{"missing prefix", strings.TrimPrefix(valid, "sha1="), testSecret, false},
		{"uppercase hex", "sha1=" + strings.ToUpper(strings.TrimPrefix(valid, "sha1=")), testSecret, false},
		{"empty signature", "", testSecret, false},
		{"empty secret", Sign(payload, ""), "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, VerifySignature(payload, tt.signature, tt.secret))
		})
	}
}

func TestVerifySignatureTamperedPayload(t *testing.T) {
	sig := Sign([]byte(mainPush), testSecret)
	assert.False(t, VerifySignature([]byte(`{"ref":"refs/heads/evil"}`), sig, testSecret))
}

func TestHandlerDeploysOnValidPush(t *testing.T) {
	deployer := &countingDeployer{}
	h, rec, _ := newRouter(t, deployer)

	code, body := post(t, h, mainPush, Sign([]byte(mainPush), testSecret), "d-1")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "success", body["status"])
	assert.Equal(t, "Deploy triggered successfully.", body["message"])
	assert.Equal(t, 1, deployer.count())
	assert.Equal(t, []string{OutcomeDeployed}, rec.outcomes)
}

func TestHandlerRejectsBadSignature(t *testing.T) {
	deployer := &countingDeployer{}
	h, rec, _ := newRouter(t, deployer)

	code, body := post(t, h, mainPush, Sign([]byte(mainPush), "wrong"), "d-1")
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, "GitHub webhook signature verification failed.", body["message"])

	code, _ = post(t, h, mainPush, "", "d-2")
	assert.Equal(t, http.StatusForbidden, code)

	assert.Zero(t, deployer.count())
	assert.Equal(t, []string{OutcomeBadSignature, OutcomeBadSignature}, rec.outcomes)
}

func TestHandlerIgnoresOtherBranch(t *testing.T) {
	deployer := &countingDeployer{}
	h, _, _ := newRouter(t, deployer)
	payload := `{"ref":"refs/heads/feature"}`

	code, body := post(t, h, payload, Sign([]byte(payload), testSecret), "d-1")
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, "Pushed branch is not the target branch", body["message"])
	assert.Zero(t, deployer.count())
}

func TestHandlerMalformedPayload(t *testing.T) {
	deployer := &countingDeployer{}
	h, _, _ := newRouter(t, deployer)
	payload := `not json`

	code, _ := post(t, h, payload, Sign([]byte(payload), testSecret), "d-1")
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Zero(t, deployer.count())
}

func TestHandlerDuplicateDeliveryDeploysOnce(t *testing.T) {
	deployer := &countingDeployer{}
	h, rec, mr := newRouter(t, deployer)
	sig := Sign([]byte(mainPush), testSecret)

	code, _ := post(t, h, mainPush, sig, "d-1")
	require.Equal(t, http.StatusOK, code)

	code, body := post(t, h, mainPush, sig, "d-1")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Delivery already processed.", body["message"])
	assert.Equal(t, 1, deployer.count())
	assert.Equal(t, []string{OutcomeDeployed, OutcomeDuplicate}, rec.outcomes)

	mr.FastForward(2 * time.Hour)
	code, _ = post(t, h, mainPush, sig, "d-1")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 2, deployer.count())
}

func TestHandlerDeployFailure(t *testing.T) {
	deployer := &countingDeployer{err: errors.New("git pull: exit status 1")}
	h, rec, mr := newRouter(t, deployer)
	sig := Sign([]byte(mainPush), testSecret)

	code, body := post(t, h, mainPush, sig, "d-1")
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, "Internal server error.", body["message"])
	assert.Equal(t, []string{OutcomeFailed}, rec.outcomes)
	assert.False(t, mr.Exists(deliveryKeyPrefix+"d-1"), "failed delivery must be retryable")

	deployer.err = nil
	code, _ = post(t, h, mainPush, sig, "d-1")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, 2, deployer.count())
}

func TestServiceFailsOpenWithoutRedis(t *testing.T) {
	rdb, mr := newRedis(t)
	mr.Close()

	deployer := &countingDeployer{}
	svc := NewService(testConfig(), deployer, rdb, nil)
	sig := Sign([]byte(mainPush), testSecret)

	outcome, err := svc.Handle(context.Background(), []byte(mainPush), sig, "d-1")
	require.NoError(t, err)
	assert.Equal(t, OutcomeDeployed, outcome)
	assert.Equal(t, 1, deployer.count())
}

func TestServiceEmptySecretRejectsEverything(t *testing.T) {
	cfg := testConfig()
	cfg.Secret = ""
	deployer := &countingDeployer{}
	svc := NewService(cfg, deployer, nil, nil)

	outcome, err := svc.Handle(context.Background(), []byte(mainPush), Sign([]byte(mainPush), ""), "")
	assert.ErrorIs(t, err, ErrInvalidSignature)
	assert.Equal(t, OutcomeBadSignature, outcome)
	assert.Zero(t, deployer.count())
}

func TestCommandDeployerRunsInRepoDir(t *testing.T) {
	if _, err := exec.LookPath("touch"); err != nil {
		t.Skip("touch not available")
	}
	dir := t.TempDir()

	d := NewCommandDeployer(config.WebhookConfig{
		RepoDir:  dir,
		Commands: []string{"touch step-one", "touch step-two"},
		Timeout:  10 * time.Second,
	})
	require.NoError(t, d.Deploy(context.Background()))

	for _, name := range []string{"step-one", "step-two"} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, name)
	}
}

func TestCommandDeployerStopsAtFirstFailure(t *testing.T) {
	if _, err := exec.LookPath("false"); err != nil {
		t.Skip("false not available")
	}
	dir := t.TempDir()

	d := NewCommandDeployer(config.WebhookConfig{
		RepoDir:  dir,
		Commands: []string{"false", "touch never"},
		Timeout:  10 * time.Second,
	})
	err := d.Deploy(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), `run "false"`)

	_, statErr := os.Stat(filepath.Join(dir, "never"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestCommandDeployerDefaultsToGitPull(t *testing.T) {
	d := NewCommandDeployer(config.WebhookConfig{Branch: "release", Timeout: time.Second})
	assert.Equal(t, []string{"git pull origin release"}, d.commands)
}
