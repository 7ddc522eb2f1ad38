package agent

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"patient-intake-agent/internal/intake"
)

func newTestGroq(t *testing.T, handler http.HandlerFunc) *GroqClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c := NewGroqClient("test-key", "test-model")
	c.baseURL = srv.URL
	return c
}

func TestGroqClient_Generate(t *testing.T) {
	var gotReq chatRequest
	c := newTestGroq(t, func(w http.ResponseWriter, r *http.Request) {
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-key" {
			t.Errorf("authorization header = %q", auth)
		}
		json.NewDecoder(r.Body).Decode(&gotReq)
		w.Write([]byte(`{"choices":[{"message":{"content":"` + "```json\\n{\\\"ok\\\":true}\\n```" + `"}}]}`))
	})

	out, err := c.Generate(context.Background(), "hello", intake.GenerateOptions{JSONMode: true, Temperature: 0.3, MaxTokens: 2000})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if out != `{"ok":true}` {
		t.Errorf("content = %q, want fences stripped", out)
	}
	if gotReq.Model != "test-model" {
		t.Errorf("model = %q", gotReq.Model)
	}
	if gotReq.Temperature != 0.3 || gotReq.MaxTokens != 2000 {
		t.Errorf("options not applied: %+v", gotReq)
	}
	if gotReq.ResponseFormat == nil || gotReq.ResponseFormat.Type != "json_object" {
		t.Errorf("response_format = %+v", gotReq.ResponseFormat)
	}
}

func TestGroqClient_Generate_Defaults(t *testing.T) {
	var gotReq chatRequest
	c := newTestGroq(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotReq)
		w.Write([]byte(`{"choices":[{"message":{"content":"hi"}}]}`))
	})

	if _, err := c.Generate(context.Background(), "hello", intake.GenerateOptions{}); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if gotReq.Temperature != 0.6 || gotReq.MaxTokens != 1024 {
		t.Errorf("defaults not applied: %+v", gotReq)
	}
	if gotReq.ResponseFormat != nil {
		t.Errorf("response_format should be omitted, got %+v", gotReq.ResponseFormat)
	}
}

func TestGroqClient_Generate_APIError(t *testing.T) {
	c := newTestGroq(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"message":"rate limited"}}`))
	})

	if _, err := c.Generate(context.Background(), "hello", intake.GenerateOptions{}); err == nil {
		t.Fatal("expected error on 429")
	}
}

func TestGroqClient_Generate_NoChoices(t *testing.T) {
	c := newTestGroq(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	})

	if _, err := c.Generate(context.Background(), "hello", intake.GenerateOptions{}); err == nil {
		t.Fatal("expected error on empty choices")
	}
}
