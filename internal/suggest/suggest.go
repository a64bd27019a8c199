// Package suggest asks a language model for shopping items that fit a list.
// Callers go through Service, which never returns errors: failures are logged
// and collapse to an empty batch or the fallback category.
package suggest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"pkt.systems/pslog"

	"github.com/robiweb74/makupovalni-seznam/internal/config"
)

var (
	ErrNoAPIKey       = errors.New("suggestions: missing api key")
	ErrUnknownBackend = errors.New("suggestions: unknown provider")
)

const (
	// BatchSize is how many suggestions are requested per call.
	BatchSize        = 5
	FallbackCategory = "Other"
)

// Provider talks to one model backend. Implementations may return errors.
type Provider interface {
	Name() string
	Suggest(ctx context.Context, req Request) ([]string, error)
	Categorize(ctx context.Context, item string, language string) (string, error)
}

type Request struct {
	ListName string
	Existing []string
	Count    int
	Language string
}

// Service wraps a Provider with timeouts, filtering and fail-quiet semantics.
type Service struct {
	Provider Provider
	Timeout  time.Duration
	Language string
	// Uppercase normalizes returned suggestions to upper case.
	Uppercase bool
}

// New builds a Service from config. A provider that cannot be built degrades to
// None and the reason is returned alongside so callers can log it.
func New(ctx context.Context, cfg config.Config) (*Service, error) {
	svc := &Service{
		Provider:  None{},
		Timeout:   cfg.LLM.Timeout,
		Language:  cfg.LLM.Language,
		Uppercase: cfg.UI.Uppercase,
	}
	p, err := newProvider(ctx, cfg.LLM)
	if err != nil {
		return svc, err
	}
	svc.Provider = p
	return svc, nil
}

func newProvider(ctx context.Context, cfg config.LLMConfig) (Provider, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "", "none", "off":
		return None{}, nil
	case "gemini":
		key := cfg.ResolveAPIKey()
		if key == "" {
			return nil, fmt.Errorf("%w (set %s)", ErrNoAPIKey, cfg.APIKeyEnv)
		}
		return NewGemini(ctx, key, cfg.Model)
	case "groq":
		key := cfg.ResolveAPIKey()
		if key == "" {
			return nil, fmt.Errorf("%w (set %s)", ErrNoAPIKey, cfg.APIKeyEnv)
		}
		return NewGroq(key, cfg.Model), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Provider)
	}
}

// Close releases the provider's client when it holds one.
func (s *Service) Close() error {
	if s == nil {
		return nil
	}
	if c, ok := s.Provider.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.Timeout > 0 {
		return context.WithTimeout(ctx, s.Timeout)
	}
	return context.WithCancel(ctx)
}

func (s *Service) Enabled() bool {
	if s == nil || s.Provider == nil {
		return false
	}
	_, off := s.Provider.(None)
	return !off
}

// Suggest returns up to BatchSize new item texts for the list. It never fails;
// any provider error yields an empty batch.
func (s *Service) Suggest(ctx context.Context, listName string, existing []string) []string {
	if !s.Enabled() {
		return []string{}
	}
	log := pslog.Ctx(ctx).With("provider", s.Provider.Name(), "list", listName)
	cctx, cancel := s.withTimeout(ctx)
	defer cancel()

	raw, err := s.Provider.Suggest(cctx, Request{
		ListName: listName,
		Existing: existing,
		Count:    BatchSize,
		Language: s.Language,
	})
	if err != nil {
		log.Warn("suggestions failed", "err", err)
		return []string{}
	}
	out := Filter(raw, existing, BatchSize)
	if s.Uppercase {
		for i := range out {
			out[i] = strings.ToUpper(out[i])
		}
	}
	log.Debug("suggestions received", "raw", len(raw), "kept", len(out))
	return out
}

// Categorize returns a single-word store section for item, or FallbackCategory.
func (s *Service) Categorize(ctx context.Context, item string) string {
	item = strings.TrimSpace(item)
	if item == "" || !s.Enabled() {
		return FallbackCategory
	}
	cctx, cancel := s.withTimeout(ctx)
	defer cancel()
	cat, err := s.Provider.Categorize(cctx, item, s.Language)
	if err != nil {
		pslog.Ctx(ctx).Warn("categorize failed", "provider", s.Provider.Name(), "item", item, "err", err)
		return FallbackCategory
	}
	if cat = cleanCategory(cat); cat == "" {
		return FallbackCategory
	}
	return cat
}

// cleanCategory keeps the first word of the reply without punctuation.
func cleanCategory(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	w := strings.Trim(fields[0], ".,;:!?\"'`*")
	if w == "" {
		return ""
	}
	r, size := utf8.DecodeRuneInString(w)
	return string(unicode.ToUpper(r)) + w[size:]
}

// None is the disabled provider.
type None struct{}

func (None) Name() string { return "none" }

func (None) Suggest(context.Context, Request) ([]string, error) { return nil, nil }

func (None) Categorize(context.Context, string, string) (string, error) {
	return FallbackCategory, nil
}
