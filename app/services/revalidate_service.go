package services

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"

	"github.com/webproformation/LaboutiqueOK-sub001/config"
	"github.com/webproformation/LaboutiqueOK-sub001/pkg/httpx"
	"github.com/webproformation/LaboutiqueOK-sub001/pkg/logger"
	"github.com/webproformation/LaboutiqueOK-sub001/pkg/metrics"
	"github.com/webproformation/LaboutiqueOK-sub001/pkg/workerpool"
)

// ErrRevalidateUnconfigured is returned when REVALIDATE_URL is empty.
var ErrRevalidateUnconfigured = errors.New("revalidate: no frontend URL configured")

// revalidateWorkers bounds concurrent calls to the frontend.
const revalidateWorkers = 8

// tablePaths maps a changed database table to the frontend pages that render
// it. Unknown tables fall back to the home page only.
var tablePaths = map[string][]string{
	"products":   {"/", "/boutique", "/produit/[slug]"},
	"categories": {"/", "/boutique"},
}

// Outcome reports one revalidation call. Every requested path gets an
// Outcome whether the call succeeded or not.
type Outcome struct {
	Path  string `json:"path"`
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// RevalidateService asks the frontend to re-render cached pages after a
// catalog change.
type RevalidateService struct {
	url    string
	secret string
	pool   *workerpool.Pool
}

func NewRevalidateService() *RevalidateService {
	return &RevalidateService{
		url:    config.RevalidateURL(),
		secret: config.RevalidateSecret(),
		pool:   workerpool.New(revalidateWorkers),
	}
}

// PathsFor resolves the pages affected by a change to the given table.
func PathsFor(table string) []string {
	if paths, ok := tablePaths[table]; ok {
		return paths
	}
	return []string{"/"}
}

// Table fans one call out per affected page and waits for all of them.
func (s *RevalidateService) Table(ctx context.Context, table string) ([]Outcome, error) {
	return s.Paths(ctx, PathsFor(table))
}

// Paths revalidates the given pages concurrently and returns one outcome per
// path, in input order. A failed call is an outcome, not an error; the error
// return covers only configuration and pool problems.
func (s *RevalidateService) Paths(ctx context.Context, paths []string) ([]Outcome, error) {
	if s.url == "" {
		return nil, ErrRevalidateUnconfigured
	}

	outcomes := make([]Outcome, len(paths))
	var wg sync.WaitGroup
	for i, path := range paths {
		i, path := i, path
		wg.Add(1)
		err := s.pool.Submit(func() {
			defer wg.Done()
			outcomes[i] = s.call(ctx, path)
		})
		if err != nil {
			wg.Done()
			outcomes[i] = Outcome{Path: path, Error: err.Error()}
			metrics.RevalidateCalls.WithLabelValues("error").Inc()
		}
	}
	wg.Wait()
	return outcomes, nil
}

func (s *RevalidateService) call(ctx context.Context, path string) Outcome {
	resp, err := httpx.Post(s.url).
		WithContext(ctx).
		Query("path", path).
		Query("secret", s.secret).
		Timeout(10 * time.Second).
		Send()
	if err != nil {
		metrics.RevalidateCalls.WithLabelValues("error").Inc()
		logger.Warn("revalidate: call failed", "path", path, "error", err)
		return Outcome{Path: path, Error: err.Error()}
	}
	if !resp.OK() {
		metrics.RevalidateCalls.WithLabelValues("error").Inc()
		logger.Warn("revalidate: frontend refused", "path", path, "status", resp.StatusCode)
		return Outcome{Path: path, Error: "status " + strconv.Itoa(resp.StatusCode)}
	}
	metrics.RevalidateCalls.WithLabelValues("ok").Inc()
	return Outcome{Path: path, OK: true}
}
