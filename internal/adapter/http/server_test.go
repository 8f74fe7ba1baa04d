package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/couchcryptid/storm-data-cyclone-service/internal/domain"
	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockReadiness struct {
	err error
}

func (m *mockReadiness) CheckReadiness(_ context.Context) error {
	return m.err
}

type fakeCyclones struct {
	listing domain.Listing
	listErr error
	records map[string]domain.CycloneRecord
	getErr  error
	gotCode string
}

func (f *fakeCyclones) List(_ context.Context) (domain.Listing, error) {
	return f.listing, f.listErr
}

func (f *fakeCyclones) Get(_ context.Context, code string) (domain.CycloneRecord, error) {
	f.gotCode = code
	if f.getErr != nil {
		return domain.CycloneRecord{}, f.getErr
	}
	rec, ok := f.records[code]
	if !ok {
		return domain.CycloneRecord{}, fmt.Errorf("%s: %w", code, domain.ErrNotFound)
	}
	return rec, nil
}

func newTestServer(cyclones CycloneService, ready sharedobs.ReadinessChecker) *Server {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewServer(":0", cyclones, ready, logger)
}

func noru() domain.CycloneRecord {
	return domain.CycloneRecord{
		CycloneHeader: domain.CycloneHeader{
			Code:          "07W",
			Category:      "Typhoon",
			Name:          "Noru",
			WarningNumber: 47,
			IssuedAt:      "01/0900Z",
			BulletinLink:  "https://example.test/wp0717web.txt",
		},
		BulletinID: "wp0717",
		Track: domain.Track{
			{Timestamp: "010600Z", Latitude: "30.1N", Longitude: "134.2E", MaxSustainedWind: "090 KT", WindGust: "110 KT"},
		},
	}
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(&fakeCyclones{}, &mockReadiness{})

	req := httptest.NewRequest(http.MethodGet, "/healthz", http.NoBody)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "healthy", body["status"])
}

func TestReadyEndpoint_Ready(t *testing.T) {
	srv := newTestServer(&fakeCyclones{}, &mockReadiness{})

	req := httptest.NewRequest(http.MethodGet, "/readyz", http.NoBody)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "ready", body["status"])
}

func TestReadyEndpoint_NotReady(t *testing.T) {
	srv := newTestServer(&fakeCyclones{}, &mockReadiness{err: errors.New("no successful poll yet")})

	req := httptest.NewRequest(http.MethodGet, "/readyz", http.NoBody)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var body map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "not ready", body["status"])
	assert.Equal(t, "no successful poll yet", body["error"])
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(&fakeCyclones{}, &mockReadiness{})

	req := httptest.NewRequest(http.MethodGet, "/metrics", http.NoBody)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestListEndpoint(t *testing.T) {
	listing := domain.NewListing()
	listing.Add(noru())
	listing.Fail("13W", errors.New("parse bulletin: gust missing"))
	srv := newTestServer(&fakeCyclones{listing: listing}, &mockReadiness{})

	req := httptest.NewRequest(http.MethodGet, "/cyclones", http.NoBody)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body domain.Listing
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.Contains(t, body.Cyclones, "07W")
	assert.Equal(t, "Noru", body.Cyclones["07W"].Name)
	assert.Equal(t, "parse bulletin: gust missing", body.Failed["13W"])
}

func TestListEndpoint_UpstreamFailure(t *testing.T) {
	srv := newTestServer(&fakeCyclones{listErr: errors.New("feed unavailable")}, &mockReadiness{})

	req := httptest.NewRequest(http.MethodGet, "/cyclones", http.NoBody)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadGateway, rec.Code)

	var body map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "feed unavailable", body["error"])
}

func TestGetEndpoint(t *testing.T) {
	fake := &fakeCyclones{records: map[string]domain.CycloneRecord{"07W": noru()}}
	srv := newTestServer(fake, &mockReadiness{})

	req := httptest.NewRequest(http.MethodGet, "/cyclones/07w", http.NoBody)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "07W", fake.gotCode)

	var body domain.CycloneRecord
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "wp0717", body.BulletinID)
	require.Len(t, body.Track, 1)
	assert.Equal(t, "110 KT", body.Track[0].WindGust)
}

func TestGetEndpoint_NotFound(t *testing.T) {
	srv := newTestServer(&fakeCyclones{}, &mockReadiness{})

	req := httptest.NewRequest(http.MethodGet, "/cyclones/99W", http.NoBody)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetEndpoint_UpstreamFailure(t *testing.T) {
	srv := newTestServer(&fakeCyclones{getErr: errors.New("fetch bulletin: timeout")}, &mockReadiness{})

	req := httptest.NewRequest(http.MethodGet, "/cyclones/07W", http.NoBody)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}
