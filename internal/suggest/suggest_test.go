package suggest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"pkt.systems/pslog"

	"github.com/robiweb74/makupovalni-seznam/internal/config"
)

type fakeProvider struct {
	suggestions []string
	category    string
	err         error
	gotReq      Request
	block       bool
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) Suggest(ctx context.Context, req Request) ([]string, error) {
	f.gotReq = req
	if f.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return f.suggestions, f.err
}

func (f *fakeProvider) Categorize(ctx context.Context, item, language string) (string, error) {
	return f.category, f.err
}

type logCapture struct {
	buf bytes.Buffer
}

func (c *logCapture) Write(p []byte) (int, error) {
	return c.buf.Write(p)
}

func (c *logCapture) entries(t *testing.T) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(c.buf.String()), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		var m map[string]any
		if err := json.Unmarshal([]byte(line), &m); err != nil {
			t.Fatalf("decode log line %q: %v", line, err)
		}
		out = append(out, m)
	}
	return out
}

func captureCtx() (context.Context, *logCapture) {
	capture := &logCapture{}
	logger := pslog.NewWithOptions(capture, pslog.Options{
		Mode:          pslog.ModeStructured,
		NoColor:       true,
		MinLevel:      pslog.InfoLevel,
		VerboseFields: true,
	})
	return pslog.ContextWithLogger(context.Background(), logger), capture
}

func TestService_SuggestFiltersAndUppercases(t *testing.T) {
	p := &fakeProvider{suggestions: []string{"mleko", "  jajca ", " MLEKO ", "", "kruh", "sir", "maslo", "jogurt", "med"}}
	s := &Service{Provider: p, Language: "Slovenian", Uppercase: true}
	got := s.Suggest(context.Background(), "ZAJTRK", []string{"MLEKO"})
	want := []string{"JAJCA", "KRUH", "SIR", "MASLO", "JOGURT"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Suggest = %v, want %v", got, want)
	}
	if p.gotReq.ListName != "ZAJTRK" || p.gotReq.Count != BatchSize || p.gotReq.Language != "Slovenian" {
		t.Fatalf("unexpected request: %+v", p.gotReq)
	}
}

func TestService_SuggestFailureIsEmptyAndLogged(t *testing.T) {
	ctx, capture := captureCtx()
	s := &Service{Provider: &fakeProvider{err: errors.New("boom")}}
	got := s.Suggest(ctx, "ZAJTRK", nil)
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil batch, got %#v", got)
	}
	entries := capture.entries(t)
	if len(entries) != 1 {
		t.Fatalf("expected one log entry, got %d", len(entries))
	}
	if entries[0]["list"] != "ZAJTRK" || entries[0]["provider"] != "fake" || entries[0]["err"] == nil {
		t.Fatalf("unexpected log entry: %+v", entries[0])
	}
}

func TestService_SuggestTimesOut(t *testing.T) {
	s := &Service{Provider: &fakeProvider{block: true}, Timeout: 10 * time.Millisecond}
	if got := s.Suggest(context.Background(), "X", nil); len(got) != 0 {
		t.Fatalf("expected empty batch on timeout, got %v", got)
	}
}

func TestService_DisabledProvider(t *testing.T) {
	s := &Service{Provider: None{}}
	if s.Enabled() {
		t.Fatalf("expected None to be disabled")
	}
	if got := s.Suggest(context.Background(), "X", nil); len(got) != 0 {
		t.Fatalf("expected no suggestions")
	}
	if got := s.Categorize(context.Background(), "kruh"); got != FallbackCategory {
		t.Fatalf("expected fallback category, got %q", got)
	}
}

func TestService_Categorize(t *testing.T) {
	s := &Service{Provider: &fakeProvider{category: "  čistila.\n"}}
	if got := s.Categorize(context.Background(), "detergent"); got != "Čistila" {
		t.Fatalf("expected Čistila, got %q", got)
	}
	s = &Service{Provider: &fakeProvider{err: errors.New("down")}}
	if got := s.Categorize(context.Background(), "detergent"); got != FallbackCategory {
		t.Fatalf("expected fallback on error, got %q", got)
	}
	s = &Service{Provider: &fakeProvider{category: "  "}}
	if got := s.Categorize(context.Background(), "detergent"); got != FallbackCategory {
		t.Fatalf("expected fallback on blank reply, got %q", got)
	}
}

func TestNew_ProviderSelection(t *testing.T) {
	t.Setenv("SEZNAM_TEST_NOKEY", "")
	cfg := config.Default()

	cfg.LLM.Provider = "none"
	svc, err := New(context.Background(), cfg)
	if err != nil || svc.Enabled() {
		t.Fatalf("expected disabled service, err=%v", err)
	}

	cfg.LLM.Provider = "groq"
	cfg.LLM.APIKey = ""
	cfg.LLM.APIKeyEnv = "SEZNAM_TEST_NOKEY"
	svc, err = New(context.Background(), cfg)
	if !errors.Is(err, ErrNoAPIKey) || svc == nil || svc.Enabled() {
		t.Fatalf("expected ErrNoAPIKey with disabled fallback, got %v", err)
	}

	cfg.LLM.APIKey = "k"
	svc, err = New(context.Background(), cfg)
	if err != nil || svc.Provider.Name() != "groq" {
		t.Fatalf("expected groq provider, got %v", err)
	}

	cfg.LLM.Provider = "carrier-pigeon"
	if _, err := New(context.Background(), cfg); !errors.Is(err, ErrUnknownBackend) {
		t.Fatalf("expected ErrUnknownBackend, got %v", err)
	}
}

func TestParseSuggestions(t *testing.T) {
	for _, in := range []string{
		`{"suggestions":["a","b"]}`,
		"```json\n{\"suggestions\": [\"a\", \"b\"]}\n```",
		`["a","b"]`,
	} {
		got, err := parseSuggestions(in)
		if err != nil || !reflect.DeepEqual(got, []string{"a", "b"}) {
			t.Fatalf("parseSuggestions(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := parseSuggestions("sorry, no"); err == nil {
		t.Fatalf("expected error for prose")
	}
}

type closingProvider struct {
	fakeProvider
	closed int
}

func (c *closingProvider) Close() error {
	c.closed++
	return nil
}

func TestService_CloseReleasesProvider(t *testing.T) {
	p := &closingProvider{}
	s := &Service{Provider: p}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if p.closed != 1 {
		t.Fatalf("expected provider closed once, got %d", p.closed)
	}

	// Providers without a client and a nil service are fine.
	if err := (&Service{Provider: None{}}).Close(); err != nil {
		t.Fatalf("Close none: %v", err)
	}
	var nilSvc *Service
	if err := nilSvc.Close(); err != nil {
		t.Fatalf("Close nil: %v", err)
	}
}
