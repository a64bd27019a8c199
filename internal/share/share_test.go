package share

import (
	"encoding/base64"
	"errors"
	"strings"
	"testing"

	"github.com/robiweb74/makupovalni-seznam/internal/model"
)

func TestEncodeDecode_URLSafe(t *testing.T) {
	items := []model.ListItem{
		{ID: "it-1", Text: "ČOKOLADA ???", Completed: true},
		{ID: "it-2", Text: "MLEKO >>", Category: "Mlečni"},
	}
	tok := Encode("VIKEND", items)
	if strings.ContainsAny(tok, "+/=") {
		t.Fatalf("expected url-safe token, got %q", tok)
	}
	p, err := Decode(tok)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if p.Name != "VIKEND" || len(p.Items) != 2 || !p.Items[0].Completed || p.Items[1].Category != "Mlečni" {
		t.Fatalf("unexpected payload: %+v", p)
	}
}

func TestDecode_AcceptsStandardBase64(t *testing.T) {
	tok := base64.StdEncoding.EncodeToString([]byte(`{"name":"STARO","items":[{"id":"1","text":"KRUH","completed":false}]}`))
	p, err := Decode(tok)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if p.Name != "STARO" || len(p.Items) != 1 {
		t.Fatalf("unexpected payload: %+v", p)
	}
}

func TestDecode_Malformed(t *testing.T) {
	for _, tok := range []string{
		"",
		"!!!not-base64!!!",
		base64.RawURLEncoding.EncodeToString([]byte("not json")),
		base64.RawURLEncoding.EncodeToString([]byte(`{"items":[]}`)),
	} {
		if _, err := Decode(tok); !errors.Is(err, ErrDecode) {
			t.Fatalf("expected ErrDecode for %q, got %v", tok, err)
		}
	}
}

func TestLinkRoundTrip(t *testing.T) {
	tok := Encode("A", nil)
	link := Link("https://seznam.example/app#old", tok)
	if link != "https://seznam.example/app#share="+tok {
		t.Fatalf("unexpected link %q", link)
	}
	if !LooksLikeLink(link) {
		t.Fatalf("expected link to be recognised")
	}
	got, err := ParseLink(link)
	if err != nil || got != tok {
		t.Fatalf("ParseLink = %q, %v", got, err)
	}
	if got, _ := ParseLink("#share=" + tok); got != tok {
		t.Fatalf("expected bare fragment to parse")
	}
	if got, _ := ParseLink(tok); got != tok {
		t.Fatalf("expected bare token to pass through")
	}
	if _, err := ParseLink("https://x/#other=1"); !errors.Is(err, ErrDecode) {
		t.Fatalf("expected ErrDecode for foreign fragment, got %v", err)
	}
}

func TestParseLink_PercentEncodedKeepsPlus(t *testing.T) {
	tok := base64.StdEncoding.EncodeToString([]byte(`{"name":"VIKEND >>","items":[]}`))
	if !strings.Contains(tok, "+") || !strings.HasSuffix(tok, "=") {
		t.Fatalf("fixture must carry '+' and padding, got %q", tok)
	}
	link := "https://seznam.example/#share=" + strings.ReplaceAll(tok, "=", "%3D")
	got, err := ParseLink(link)
	if err != nil || got != tok {
		t.Fatalf("ParseLink = %q, %v; want %q", got, err, tok)
	}
	p, err := DecodeLink(link)
	if err != nil || p.Name != "VIKEND >>" {
		t.Fatalf("DecodeLink = %+v, %v", p, err)
	}
}
