package speech

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"audiofields-backend/internal/gcloud"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	api, err := gcloud.New(context.Background(), gcloud.Options{Endpoint: srv.URL, APIKey: "test"})
	if err != nil {
		t.Fatalf("gcloud.New: %v", err)
	}
	return NewClient(api, DefaultConfig())
}

func TestRecognizeSendsConfigAndContent(t *testing.T) {
	audio := []byte("ID3-fake-mp3")
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != recognizePath {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var req recognizeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode: %v", err)
		}
		if req.Config != DefaultConfig() {
			t.Errorf("unexpected config %+v", req.Config)
		}
		if req.Audio.Content != base64.StdEncoding.EncodeToString(audio) {
			t.Errorf("unexpected content %q", req.Audio.Content)
		}
		_, _ = w.Write([]byte(`{"results":[{"alternatives":[{"transcript":"my name is John Smith","confidence":0.9},{"transcript":"other"}]},{"alternatives":[{"transcript":"second"}]}]}`))
	})

	got, err := client.Recognize(context.Background(), audio)
	if err != nil {
		t.Fatalf("Recognize: %v", err)
	}
	if got != "my name is John Smith" {
		t.Fatalf("unexpected transcript %q", got)
	}
}

func TestRecognizeEmptyResults(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	})

	got, err := client.Recognize(context.Background(), []byte("x"))
	if err != nil {
		t.Fatalf("Recognize: %v", err)
	}
	if got != "" {
		t.Fatalf("expected empty transcript, got %q", got)
	}
}

func TestRecognizePropagatesBackendError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"code":400,"message":"bad encoding","status":"INVALID_ARGUMENT"}}`))
	})

	if _, err := client.Recognize(context.Background(), []byte("x")); err == nil {
		t.Fatalf("expected error")
	}
}
