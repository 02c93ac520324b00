package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/webproformation/LaboutiqueOK-sub001/pkg/workerpool"
)

func newTestRevalidateService(url string) *RevalidateService {
	return &RevalidateService{
		url:    url,
		secret: "s3cret",
		pool:   workerpool.New(revalidateWorkers),
	}
}

func TestPathsForKnownTables(t *testing.T) {
	assert.Equal(t, []string{"/", "/boutique", "/produit/[slug]"}, PathsFor("products"))
	assert.Equal(t, []string{"/", "/boutique"}, PathsFor("categories"))
	assert.Equal(t, []string{"/"}, PathsFor("loyalty_points"))
}

func TestPathsRevalidatesEveryPage(t *testing.T) {
	var mu sync.Mutex
	seen := map[string]int{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "s3cret", r.URL.Query().Get("secret"))
		mu.Lock()
		seen[r.URL.Query().Get("path")]++
		mu.Unlock()
	}))
	defer srv.Close()

	svc := newTestRevalidateService(srv.URL)
	outcomes, err := svc.Table(context.Background(), "products")
	require.NoError(t, err)
	require.Len(t, outcomes, 3)

	for _, o := range outcomes {
		assert.True(t, o.OK, "path %s", o.Path)
		assert.Empty(t, o.Error)
	}
	assert.Equal(t, map[string]int{"/": 1, "/boutique": 1, "/produit/[slug]": 1}, seen)
}

func TestPathsCollectsFailuresPerPath(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("path") == "/boutique" {
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer srv.Close()

	svc := newTestRevalidateService(srv.URL)
	outcomes, err := svc.Paths(context.Background(), []string{"/", "/boutique"})
	require.NoError(t, err)
	require.Len(t, outcomes, 2)

	// Outcomes keep input order, so a partial failure is attributable.
	assert.Equal(t, "/", outcomes[0].Path)
	assert.True(t, outcomes[0].OK)
	assert.Equal(t, "/boutique", outcomes[1].Path)
	assert.False(t, outcomes[1].OK)
	assert.NotEmpty(t, outcomes[1].Error)
}

func TestPathsWithoutConfiguredURL(t *testing.T) {
	svc := newTestRevalidateService("")
	_, err := svc.Paths(context.Background(), []string{"/"})
	assert.ErrorIs(t, err, ErrRevalidateUnconfigured)
}
