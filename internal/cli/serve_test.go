package cli

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func newTestServer(t *testing.T) *server {
	t.Helper()
	c := newTestCLI(t)
	srv := &server{
		logger: log.New(io.Discard),
		root:   seedTree(t),
		opts:   c.defaultLayoutOpts(),
	}
	if err := srv.rescan(); err != nil {
		t.Fatalf("rescan: %v", err)
	}
	return srv
}

func TestServer_Healthz(t *testing.T) {
	ts := httptest.NewServer(newTestServer(t).routes())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
}

func TestServer_Report(t *testing.T) {
	ts := httptest.NewServer(newTestServer(t).routes())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/report")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var body struct {
		ID    string `json:"report_id"`
		Files int64  `json:"files"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode report: %v", err)
	}
	if body.ID == "" {
		t.Error("report has no id")
	}
	if body.Files != 2 {
		t.Errorf("files = %d, want 2", body.Files)
	}
}

func TestServer_TreemapSVG(t *testing.T) {
	ts := httptest.NewServer(newTestServer(t).routes())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/treemap.svg?w=400&h=300")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if ct := resp.Header.Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("Content-Type = %q, want image/svg+xml", ct)
	}
	data, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(data), "<svg") {
		t.Error("response is not an SVG document")
	}
}

func TestServer_BadDimensions(t *testing.T) {
	ts := httptest.NewServer(newTestServer(t).routes())
	defer ts.Close()

	for _, query := range []string{"?w=abc", "?w=-10", "?h=0"} {
		resp, err := http.Get(ts.URL + "/api/layout" + query)
		if err != nil {
			t.Fatal(err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want %d", query, resp.StatusCode, http.StatusBadRequest)
		}
	}
}

func TestServer_Rescan(t *testing.T) {
	srv := newTestServer(t)
	ts := httptest.NewServer(srv.routes())
	defer ts.Close()

	_, before := srv.snapshot()

	resp, err := http.Post(ts.URL+"/api/rescan", "application/json", nil)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	_, after := srv.snapshot()
	if before.ID == after.ID {
		t.Error("rescan should produce a fresh report id")
	}
}
