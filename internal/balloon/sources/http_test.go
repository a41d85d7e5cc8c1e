package sources

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/balloon-playback/internal/balloon"
	"github.com/i474232898/balloon-playback/internal/common"
)

func newTreasureServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/treasure/00.json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[[10.0, 20.0, 5000.0]]`))
	})
	mux.HandleFunc("/treasure/01.json", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	mux.HandleFunc("/treasure/02.json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(`<html>oops</html>`))
	})
	mux.HandleFunc("/treasure/03.json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(`[[1.5, 2.5, 3000.0]]`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestHTTPSource_Fetch(t *testing.T) {
	srv := newTreasureServer(t)
	src := NewHTTPSource(srv.Client(), srv.URL+"/treasure/%s.json")

	body, err := src.Fetch(context.Background(), "00")
	require.NoError(t, err)
	assert.JSONEq(t, `[[10.0, 20.0, 5000.0]]`, string(body))
}

func TestHTTPSource_ServerErrorNotRetried(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	src := NewHTTPSource(srv.Client(), srv.URL+"/%s.json")
	_, err := src.Fetch(context.Background(), "03")

	assert.ErrorIs(t, err, common.ErrServerError)
	assert.Equal(t, 1, calls)
}

func TestHTTPSource_Failures(t *testing.T) {
	srv := newTreasureServer(t)
	src := NewHTTPSource(srv.Client(), srv.URL+"/treasure/%s.json")

	_, err := src.Fetch(context.Background(), "01")
	assert.ErrorIs(t, err, common.ErrServerError)

	_, err = src.Fetch(context.Background(), "17")
	assert.ErrorIs(t, err, common.ErrUnexpected)
}

func TestHTTPSource_ContentTypeIgnored(t *testing.T) {
	srv := newTreasureServer(t)
	src := NewHTTPSource(srv.Client(), srv.URL+"/treasure/%s.json")

	// A valid document is accepted even with the wrong header.
	body, err := src.Fetch(context.Background(), "03")
	require.NoError(t, err)
	snap, err := balloon.ParseSnapshot("03", body)
	require.NoError(t, err)
	assert.Equal(t, []balloon.Observation{{Lat: 1.5, Lon: 2.5, Alt: 3000}}, snap.Observations)

	// An error page is fetched, then rejected as a snapshot.
	body, err = src.Fetch(context.Background(), "02")
	require.NoError(t, err)
	_, err = balloon.ParseSnapshot("02", body)
	assert.ErrorIs(t, err, balloon.ErrInvalidSnapshot)
}

func TestHTTPSource_URL(t *testing.T) {
	assert.Equal(t, "https://a.windbornesystems.com/treasure/07.json", NewHTTPSource(nil, "").URL("07"))
	assert.Equal(t, "http://mirror/data/07.json", NewHTTPSource(nil, "http://mirror/data/").URL("07"))
}
