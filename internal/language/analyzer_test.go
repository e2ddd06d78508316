package language

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"audiofields-backend/internal/gcloud"
)

func TestAnalyzeEntities(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != analyzeEntitiesPath {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var req analyzeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode: %v", err)
		}
		if req.Document.Type != "PLAIN_TEXT" || req.EncodingType != "UTF8" {
			t.Errorf("unexpected request %+v", req)
		}
		if req.Document.Content != "John lives in Paris" {
			t.Errorf("unexpected content %q", req.Document.Content)
		}
		_, _ = w.Write([]byte(`{
			"entities": [
				{"name": "John", "type": "PERSON", "salience": 0.7,
				 "mentions": [{"text": {"content": "John", "beginOffset": 0}, "type": "PROPER"}]},
				{"name": "Paris", "type": "LOCATION", "salience": 0.3,
				 "mentions": [{"text": {"content": "Paris", "beginOffset": 14}, "type": "PROPER"}]}
			],
			"language": "en"
		}`))
	}))
	defer srv.Close()

	api, err := gcloud.New(context.Background(), gcloud.Options{Endpoint: srv.URL, APIKey: "k"})
	if err != nil {
		t.Fatalf("gcloud.New: %v", err)
	}

	resp, err := NewClient(api).AnalyzeEntities(context.Background(), "John lives in Paris")
	if err != nil {
		t.Fatalf("AnalyzeEntities: %v", err)
	}
	if len(resp.Entities) != 2 || resp.Language != "en" {
		t.Fatalf("unexpected response %+v", resp)
	}
	paris := resp.Entities[1]
	if paris.Type != "LOCATION" || paris.Mentions[0].Text.BeginOffset != 14 || paris.Mentions[0].Type != "PROPER" {
		t.Fatalf("unexpected entity %+v", paris)
	}
}
