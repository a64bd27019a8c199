package suggest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
)

func TestGroq_Suggest(t *testing.T) {
	var gotAuth string
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"{\"suggestions\":[\"kruh\",\"sir\"]}"}}]}`))
	}))
	defer srv.Close()

	g := NewGroq("secret", "")
	g.Endpoint = srv.URL
	got, err := g.Suggest(context.Background(), Request{ListName: "ZAJTRK", Count: 5})
	if err != nil {
		t.Fatalf("Suggest: %v", err)
	}
	if !reflect.DeepEqual(got, []string{"kruh", "sir"}) {
		t.Fatalf("unexpected suggestions %v", got)
	}
	if gotAuth != "Bearer secret" {
		t.Fatalf("unexpected auth header %q", gotAuth)
	}
	if gotBody["model"] != defaultGroqModel || gotBody["response_format"] == nil {
		t.Fatalf("unexpected request body %+v", gotBody)
	}
}

func TestGroq_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	g := NewGroq("secret", "llama-3.1-8b-instant")
	g.Endpoint = srv.URL
	if _, err := g.Categorize(context.Background(), "kruh", "English"); err == nil {
		t.Fatalf("expected error for 429")
	}
	s := &Service{Provider: g}
	if got := s.Categorize(context.Background(), "kruh"); got != FallbackCategory {
		t.Fatalf("expected fallback, got %q", got)
	}
}
