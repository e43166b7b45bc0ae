package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/leozw/monday-sms-bridge/internal/bridge"
	"github.com/leozw/monday-sms-bridge/internal/config"
	"github.com/leozw/monday-sms-bridge/internal/metrics"
	"github.com/leozw/monday-sms-bridge/internal/monday"
)

// fakeMonday records GraphQL calls and serves canned lookup results.
type fakeMonday struct {
	srv *httptest.Server

	lookupItems   string // JSON array of items served by the lookup query
	failLookups   bool
	updateItemIDs []string
}

func newFakeMonday(t *testing.T) *fakeMonday {
	t.Helper()
	f := &fakeMonday{lookupItems: "[]"}
	f.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Query     string                 `json:"query"`
			Variables map[string]interface{} `json:"variables"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode graphql request: %v", err)
		}
		switch {
		case strings.Contains(req.Query, "items_page"):
			if f.failLookups {
				http.Error(w, "boom", http.StatusInternalServerError)
				return
			}
			w.Write([]byte(`{"data": {"boards": [{"items_page": {"items": ` + f.lookupItems + `}}]}}`))
		case strings.Contains(req.Query, "create_update"):
			f.updateItemIDs = append(f.updateItemIDs, req.Variables["item_id"].(string))
			w.Write([]byte(`{"data": {"create_update": {"id": "77"}}}`))
		case strings.Contains(req.Query, "create_notification"):
			w.Write([]byte(`{"data": {"create_notification": {"id": "5"}}}`))
		default:
			t.Errorf("unexpected query: %s", req.Query)
		}
	}))
	t.Cleanup(f.srv.Close)
	return f
}

func newTestServer(t *testing.T, upstream *fakeMonday) *Server {
	t.Helper()
	cfg := &config.Config{
		Server: config.ServerConfig{Port: "8080", Mode: "test"},
		Monday: config.MondayConfig{
			APIURL:        upstream.srv.URL,
			APIKey:        "test-key",
			BoardID:       "111",
			PhoneColumnID: "phone_1",
			DefaultItemID: "900",
			PageLimit:     500,
			Timeout:       2 * time.Second,
		},
	}
	logger := zap.NewNop()
	collector := metrics.NewCollector(prometheus.NewRegistry())
	client := monday.NewClient(cfg.Monday, logger)
	service := bridge.NewService(cfg, client, collector, logger)
	return NewServer(cfg, service, logger)
}

func postJSON(s *Server, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/sms", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.Router.ServeHTTP(w, req)
	return w
}

func postForm(s *Server, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/sms", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	s.Router.ServeHTTP(w, req)
	return w
}

func TestSMSMatchedContact(t *testing.T) {
	upstream := newFakeMonday(t)
	upstream.lookupItems = `[{"id": "42", "name": "Alice", "column_values": [{"id": "phone_1", "text": "+15551234567"}]}]`
	s := newTestServer(t, upstream)

	w := postJSON(s, `{"from":"+15551234567","body":"Hello","timestamp":"2024-01-01T00:00:00Z"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), "accepted") {
		t.Errorf("body = %q, want accepted", w.Body.String())
	}
	if len(upstream.updateItemIDs) != 1 || upstream.updateItemIDs[0] != "42" {
		t.Errorf("updates posted to %v, want [42]", upstream.updateItemIDs)
	}
}

func TestSMSNoMatchUsesDefaultItem(t *testing.T) {
	upstream := newFakeMonday(t)
	s := newTestServer(t, upstream)

	w := postJSON(s, `{"from":"+15551234567","body":"Hello","timestamp":"2024-01-01T00:00:00Z"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if len(upstream.updateItemIDs) != 1 || upstream.updateItemIDs[0] != "900" {
		t.Errorf("updates posted to %v, want default [900]", upstream.updateItemIDs)
	}
}

func TestSMSLookupFailureUsesDefaultItem(t *testing.T) {
	upstream := newFakeMonday(t)
	upstream.failLookups = true
	s := newTestServer(t, upstream)

	w := postJSON(s, `{"from":"+15551234567","body":"Hello","timestamp":"2024-01-01T00:00:00Z"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 even when the lookup fails", w.Code)
	}
	if len(upstream.updateItemIDs) != 1 || upstream.updateItemIDs[0] != "900" {
		t.Errorf("updates posted to %v, want default [900]", upstream.updateItemIDs)
	}
}

func TestSMSMissingFromReturnsErrorBody(t *testing.T) {
	upstream := newFakeMonday(t)
	s := newTestServer(t, upstream)

	w := postJSON(s, `{"body":"Hello"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 for invalid payload", w.Code)
	}
	if !strings.Contains(w.Body.String(), "error") {
		t.Errorf("body = %q, want an error indicator", w.Body.String())
	}
	if len(upstream.updateItemIDs) != 0 {
		t.Errorf("no outbound calls expected, got updates to %v", upstream.updateItemIDs)
	}
}

func TestSMSMalformedJSONReturnsErrorBody(t *testing.T) {
	upstream := newFakeMonday(t)
	s := newTestServer(t, upstream)

	w := postJSON(s, `{"from":`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 for malformed payload", w.Code)
	}
	if !strings.Contains(w.Body.String(), "error") {
		t.Errorf("body = %q, want an error indicator", w.Body.String())
	}
}

func TestSMSTwilioFormPayload(t *testing.T) {
	upstream := newFakeMonday(t)
	upstream.lookupItems = `[{"id": "42", "name": "Alice", "column_values": [{"id": "phone_1", "text": "555-123-4567"}]}]`
	s := newTestServer(t, upstream)

	w := postForm(s, url.Values{
		"From": {"+15551234567"},
		"Body": {"Hello from Twilio"},
	})

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if len(upstream.updateItemIDs) != 1 || upstream.updateItemIDs[0] != "42" {
		t.Errorf("updates posted to %v, want [42]", upstream.updateItemIDs)
	}
}

func TestRootAlwaysHealthy(t *testing.T) {
	s := newTestServer(t, newFakeMonday(t))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	s.Router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if w.Body.Len() == 0 {
		t.Error("expected a liveness marker in the body")
	}
}

func TestHealthEndpoint(t *testing.T) {
	s := newTestServer(t, newFakeMonday(t))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	s.Router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), "healthy") {
		t.Errorf("body = %q, want healthy", w.Body.String())
	}
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t, newFakeMonday(t))

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	s.Router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
}
