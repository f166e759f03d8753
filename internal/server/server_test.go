// ABOUTME: Tests for the HTTP transport using a fake pipeline
// ABOUTME: Checks status mapping, validation, health and CORS preflight
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/harper/legal-crew/internal/crew"
	"github.com/harper/legal-crew/internal/logging"
	"github.com/harper/legal-crew/internal/models"
)

type fakeAsker struct {
	mu       sync.Mutex
	result   crew.Result
	got      models.Question
	deadline bool
}

func (f *fakeAsker) Run(ctx context.Context, q models.Question) crew.Result {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.got = q
	_, f.deadline = ctx.Deadline()
	return f.result
}

func (f *fakeAsker) last() (models.Question, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.got, f.deadline
}

type testServer struct {
	URL    string
	client *http.Client
}

func newTestServer(t *testing.T, cfg Config) *testServer {
	t.Helper()
	if cfg.Logger == nil {
		cfg.Logger = logging.Discard()
	}
	ln, err := net.Listen("tcp4", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	srv := &http.Server{Handler: New(cfg)}
	go func() { _ = srv.Serve(ln) }()
	t.Cleanup(func() {
		_ = srv.Shutdown(context.Background())
		_ = ln.Close()
	})
	return &testServer{URL: "http://" + ln.Addr().String(), client: &http.Client{Timeout: 5 * time.Second}}
}

func (s *testServer) do(t *testing.T, method, path string, body any) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, s.URL+path, reader)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := s.client.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp, data
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, Config{Asker: &fakeAsker{}, Version: "1.2.3"})

	resp, body := s.do(t, http.MethodGet, "/health", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, body = %s", resp.StatusCode, body)
	}
	var out map[string]string
	if err := json.Unmarshal(body, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out["status"] != "ok" || out["version"] != "1.2.3" {
		t.Errorf("health = %v", out)
	}
}

func TestLegalAdvice_StatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		result crew.Result
		want   string
	}{
		{"answered", crew.Result{RunID: "a", Status: crew.StatusAnswered, Answer: "Yes."}, "success"},
		{"decided", crew.Result{RunID: "b", Status: crew.StatusDecided, Decision: models.Decision{Outcome: models.FavorsTenant, Round: 1}}, "success"},
		{"undecided", crew.Result{RunID: "c", Status: crew.StatusUndecided, Decision: models.Decision{Outcome: models.Undecided}}, "success"},
		{"needs context", crew.Result{RunID: "d", Status: crew.StatusNeedsContext, Message: "Upload the contract"}, "contract_needed"},
		{"failed", crew.Result{RunID: "e", Status: crew.StatusFailed, Err: crew.ErrCollaboratorUnavailable}, "error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t, Config{Asker: &fakeAsker{result: tt.result}})

			resp, body := s.do(t, http.MethodPost, "/legal-advice", map[string]string{"question": "Can my rent go up?"})
			if resp.StatusCode != http.StatusOK {
				t.Fatalf("status = %d, body = %s", resp.StatusCode, body)
			}
			var rep crew.Report
			if err := json.Unmarshal(body, &rep); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if rep.Status != tt.want {
				t.Errorf("status = %q, want %q", rep.Status, tt.want)
			}
			if rep.RunID != tt.result.RunID {
				t.Errorf("run_id = %q, want %q", rep.RunID, tt.result.RunID)
			}
			if rep.Response == "" {
				t.Error("response should not be empty")
			}
		})
	}
}

func TestLegalAdvice_ForwardsDocument(t *testing.T) {
	asker := &fakeAsker{result: crew.Result{Status: crew.StatusAnswered, Answer: "Clause 4."}}
	s := newTestServer(t, Config{Asker: asker, RequestTimeout: time.Minute})

	resp, body := s.do(t, http.MethodPost, "/legal-advice", map[string]string{
		"question": "  Can my rent go up?  ",
		"document": "Clause 4: indexation",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, body = %s", resp.StatusCode, body)
	}
	got, deadline := asker.last()
	if got.Text != "Can my rent go up?" || got.Document != "Clause 4: indexation" {
		t.Errorf("question = %+v", got)
	}
	if !deadline {
		t.Error("request timeout should set a deadline")
	}
}

func TestLegalAdvice_Validation(t *testing.T) {
	s := newTestServer(t, Config{Asker: &fakeAsker{}})

	resp, body := s.do(t, http.MethodPost, "/legal-advice", map[string]string{"question": ""})
	if resp.StatusCode < 400 || resp.StatusCode >= 500 {
		t.Errorf("empty question: status = %d, body = %s", resp.StatusCode, body)
	}

	resp, body = s.do(t, http.MethodPost, "/legal-advice", map[string]string{"question": "   "})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("blank question: status = %d, body = %s", resp.StatusCode, body)
	}

	resp, _ = s.do(t, http.MethodPost, "/legal-advice", map[string]string{"document": "x"})
	if resp.StatusCode < 400 || resp.StatusCode >= 500 {
		t.Errorf("missing question: status = %d", resp.StatusCode)
	}
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer(t, Config{Asker: &fakeAsker{}})

	resp, _ := s.do(t, http.MethodOptions, "/legal-advice", nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("status = %d, want 204", resp.StatusCode)
	}
	if resp.Header.Get("Access-Control-Allow-Origin") != "*" {
		t.Error("missing CORS header")
	}
}

func TestListenAndServe_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- ListenAndServe(ctx, "127.0.0.1:0", New(Config{Asker: &fakeAsker{}, Logger: logging.Discard()}), logging.Discard())
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("ListenAndServe() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("ListenAndServe() did not stop")
	}
}
