package controllers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"github.com/webproformation/LaboutiqueOK-sub001/app/services"
	"github.com/webproformation/LaboutiqueOK-sub001/config"
)

func newWebhookController(t *testing.T, frontendURL string) *WebhookController {
	t.Helper()
	config.Set("WEBHOOK_SECRET", "hook-secret")
	config.Set("REVALIDATE_SECRET", "reval-secret")
	config.Set("REVALIDATE_URL", frontendURL)
	t.Cleanup(func() {
		config.Set("WEBHOOK_SECRET", "")
		config.Set("REVALIDATE_SECRET", "")
		config.Set("REVALIDATE_URL", "")
	})
	return NewWebhookController(services.NewRevalidateService())
}

func TestDBChangeRejectsMissingOrWrongSecret(t *testing.T) {
	c := newWebhookController(t, "http://frontend.invalid")

	for _, req := range []*http.Request{
		httptest.NewRequest(http.MethodPost, "/api/webhooks/db", strings.NewReader(`{"table":"products"}`)),
		func() *http.Request {
			r := httptest.NewRequest(http.MethodPost, "/api/webhooks/db", strings.NewReader(`{"table":"products"}`))
			r.Header.Set("X-Webhook-Secret", "wrong")
			return r
		}(),
	} {
		rec := httptest.NewRecorder()
		c.DBChange(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	}
}

func TestDBChangeRejectsWhenSecretUnconfigured(t *testing.T) {
	config.Set("WEBHOOK_SECRET", "")
	c := NewWebhookController(services.NewRevalidateService())

	req := httptest.NewRequest(http.MethodPost, "/api/webhooks/db", strings.NewReader(`{"table":"products"}`))
	req.Header.Set("X-Webhook-Secret", "")
	rec := httptest.NewRecorder()
	c.DBChange(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestDBChangeFansOutToFrontend(t *testing.T) {
	var mu sync.Mutex
	var paths []string
	frontend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		paths = append(paths, r.URL.Query().Get("path"))
		mu.Unlock()
	}))
	defer frontend.Close()

	c := newWebhookController(t, frontend.URL)

	req := httptest.NewRequest(http.MethodPost, "/api/webhooks/db",
		strings.NewReader(`{"table":"categories","type":"UPDATE","record":{"id":10}}`))
	req.Header.Set("X-Webhook-Secret", "hook-secret")
	rec := httptest.NewRecorder()
	c.DBChange(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Equal(t, "categories", gjson.Get(body, "table").String())
	assert.Len(t, gjson.Get(body, "revalidated").Array(), 2)
	assert.ElementsMatch(t, []string{"/", "/boutique"}, paths)
}

func TestDBChangeAcceptsQuerySecret(t *testing.T) {
	frontend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer frontend.Close()

	c := newWebhookController(t, frontend.URL)

	req := httptest.NewRequest(http.MethodPost, "/api/webhooks/db?secret=hook-secret",
		strings.NewReader(`{"table":"products"}`))
	rec := httptest.NewRecorder()
	c.DBChange(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestDBChangeRequiresTable(t *testing.T) {
	c := newWebhookController(t, "http://frontend.invalid")

	req := httptest.NewRequest(http.MethodPost, "/api/webhooks/db", strings.NewReader(`{"type":"UPDATE"}`))
	req.Header.Set("X-Webhook-Secret", "hook-secret")
	rec := httptest.NewRecorder()
	c.DBChange(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRevalidateAcceptsExplicitPaths(t *testing.T) {
	var mu sync.Mutex
	var paths []string
	frontend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		paths = append(paths, r.URL.Query().Get("path"))
		mu.Unlock()
	}))
	defer frontend.Close()

	c := newWebhookController(t, frontend.URL)

	req := httptest.NewRequest(http.MethodPost, "/api/revalidate",
		strings.NewReader(`{"paths":["/","/produit/robe-fleurie"]}`))
	req.Header.Set("X-Webhook-Secret", "reval-secret")
	rec := httptest.NewRecorder()
	c.Revalidate(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.ElementsMatch(t, []string{"/", "/produit/robe-fleurie"}, paths)
}

func TestRevalidateAcceptsQueryPath(t *testing.T) {
	var mu sync.Mutex
	var paths []string
	frontend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		paths = append(paths, r.URL.Query().Get("path"))
		mu.Unlock()
	}))
	defer frontend.Close()

	c := newWebhookController(t, frontend.URL)

	req := httptest.NewRequest(http.MethodPost, "/api/revalidate?path=/boutique&secret=reval-secret", nil)
	rec := httptest.NewRecorder()
	c.Revalidate(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"/boutique"}, paths)
}

func TestRevalidateRequiresPathOrTable(t *testing.T) {
	c := newWebhookController(t, "http://frontend.invalid")

	req := httptest.NewRequest(http.MethodPost, "/api/revalidate", strings.NewReader(`{}`))
	req.Header.Set("X-Webhook-Secret", "reval-secret")
	rec := httptest.NewRecorder()
	c.Revalidate(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
