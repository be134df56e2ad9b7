package server

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SmitUplenchwar2687/Tempo/internal/clock"
	"github.com/SmitUplenchwar2687/Tempo/internal/recorder"
	"github.com/SmitUplenchwar2687/Tempo/internal/storage"
)

var epoch = clock.FromTime(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))

func startTestServer(t *testing.T, clk clock.Clock, opts Options) (string, func()) {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	srv := New(ln.Addr().String(), clk, opts)
	go srv.StartOnListener(ln)
	baseURL := "http://" + ln.Addr().String()
	return baseURL, func() {
		srv.Shutdown(context.Background())
	}
}

func TestServer_Root(t *testing.T) {
	vc := clock.NewVirtualClock(epoch)
	baseURL, cleanup := startTestServer(t, vc, Options{})
	defer cleanup()

	resp, err := http.Get(baseURL + "/")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}

	var body map[string]any
	json.NewDecoder(resp.Body).Decode(&body)
	if body["service"] != "tempo" {
		t.Errorf("service = %q, want %q", body["service"], "tempo")
	}
}

func TestServer_Health(t *testing.T) {
	vc := clock.NewVirtualClock(epoch)
	baseURL, cleanup := startTestServer(t, vc, Options{})
	defer cleanup()

	resp, err := http.Get(baseURL + "/health")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
}

func TestServer_NotFound(t *testing.T) {
	vc := clock.NewVirtualClock(epoch)
	baseURL, cleanup := startTestServer(t, vc, Options{})
	defer cleanup()

	resp, err := http.Get(baseURL + "/nonexistent")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}

func TestServer_Now(t *testing.T) {
	clk := clock.NewConstant(1500)
	baseURL, cleanup := startTestServer(t, clk, Options{Source: "fixed"})
	defer cleanup()

	resp, err := http.Get(baseURL + "/api/now")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var body struct {
		Source  string       `json:"source"`
		Millis  clock.Millis `json:"millis"`
		Seconds int64        `json:"seconds"`
	}
	json.NewDecoder(resp.Body).Decode(&body)

	if body.Source != "fixed" {
		t.Errorf("source = %q, want %q", body.Source, "fixed")
	}
	if body.Millis != 1500 {
		t.Errorf("millis = %d, want 1500", body.Millis)
	}
	if body.Seconds != 2 {
		t.Errorf("seconds = %d, want 2", body.Seconds)
	}
}

func TestServer_NowSeconds(t *testing.T) {
	clk := clock.NewConstant(1499)
	baseURL, cleanup := startTestServer(t, clk, Options{})
	defer cleanup()

	resp, err := http.Get(baseURL + "/api/now/seconds")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var body map[string]int64
	json.NewDecoder(resp.Body).Decode(&body)
	if body["seconds"] != 1 {
		t.Errorf("seconds = %d, want 1", body["seconds"])
	}
}

func TestServer_LatestAndHistory(t *testing.T) {
	vc := clock.NewVirtualClock(epoch)
	store := storage.NewMemoryStorage(vc, 0)
	store.Put(context.Background(), recorder.Reading{Source: "system", Millis: 1000, Seconds: 1})
	store.Put(context.Background(), recorder.Reading{Source: "system", Millis: 2000, Seconds: 2})

	baseURL, cleanup := startTestServer(t, vc, Options{Storage: store})
	defer cleanup()

	resp, err := http.Get(baseURL + "/api/latest/system")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var latest recorder.Reading
	json.NewDecoder(resp.Body).Decode(&latest)
	if latest.Millis != 2000 {
		t.Errorf("latest millis = %d, want 2000", latest.Millis)
	}

	resp2, err := http.Get(baseURL + "/api/history/system?since=0&limit=10")
	if err != nil {
		t.Fatal(err)
	}
	defer resp2.Body.Close()

	var history []recorder.Reading
	json.NewDecoder(resp2.Body).Decode(&history)
	if len(history) != 2 {
		t.Errorf("history has %d readings, want 2", len(history))
	}
}

func TestServer_LatestUnknownSource(t *testing.T) {
	vc := clock.NewVirtualClock(epoch)
	store := storage.NewMemoryStorage(vc, 0)
	baseURL, cleanup := startTestServer(t, vc, Options{Storage: store})
	defer cleanup()

	resp, err := http.Get(baseURL + "/api/latest/nope")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}

func TestServer_HistoryBadQuery(t *testing.T) {
	vc := clock.NewVirtualClock(epoch)
	store := storage.NewMemoryStorage(vc, 0)
	baseURL, cleanup := startTestServer(t, vc, Options{Storage: store})
	defer cleanup()

	resp, err := http.Get(baseURL + "/api/history/system?since=abc")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestServer_Dashboard(t *testing.T) {
	vc := clock.NewVirtualClock(epoch)
	baseURL, cleanup := startTestServer(t, vc, Options{})
	defer cleanup()

	resp, err := http.Get(baseURL + "/dashboard/")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "text/html; charset=utf-8" {
		t.Errorf("content type = %q, want text/html", ct)
	}
}

func TestServer_TickRecordsAndStores(t *testing.T) {
	clk := clock.NewConstant(5000)
	rec := recorder.New(nil)
	store := storage.NewMemoryStorage(clk, 0)

	srv := New("127.0.0.1:0", clk, Options{
		Recorder: rec,
		Storage:  store,
		Source:   "fixed",
	})
	srv.tick()

	if rec.Len() != 1 {
		t.Fatalf("recorder has %d readings, want 1", rec.Len())
	}
	got := rec.Readings()[0]
	if got.Millis != 5000 || got.Seconds != 5 || got.Source != "fixed" {
		t.Errorf("recorded reading = %+v", got)
	}

	latest, err := store.Latest(context.Background(), "fixed")
	if err != nil {
		t.Fatal(err)
	}
	if latest == nil || latest.Millis != 5000 {
		t.Errorf("stored latest = %+v, want reading at 5000ms", latest)
	}
}

func TestStampMiddleware(t *testing.T) {
	clk := clock.NewConstant(1234)
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	rr := httptest.NewRecorder()
	StampMiddleware(inner, clk).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	if got := rr.Header().Get("X-Tempo-Millis"); got != "1234" {
		t.Errorf("X-Tempo-Millis = %q, want %q", got, "1234")
	}
}

func TestRecordingMiddleware(t *testing.T) {
	clk := clock.NewConstant(2500)
	rec := recorder.New(nil)
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	handler := RecordingMiddleware(inner, rec, clk, "http")
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Len() != 2 {
		t.Fatalf("recorder has %d readings, want 2", rec.Len())
	}
	if got := rec.Readings()[0]; got.Source != "http" || got.Seconds != 3 {
		t.Errorf("recorded reading = %+v", got)
	}
}

func TestHub_ClientCount(t *testing.T) {
	hub := NewHub()
	if hub.ClientCount() != 0 {
		t.Errorf("ClientCount() = %d, want 0", hub.ClientCount())
	}
}
