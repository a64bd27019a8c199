// Package share encodes a list into a URL-safe token and back.
//
// A token is the base64url encoding (no padding) of {"name": ..., "items": [...]}.
// Decode also accepts the standard alphabet with or without padding so links
// produced by older clients still import.
package share

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/robiweb74/makupovalni-seznam/internal/model"
)

var ErrDecode = errors.New("invalid share token")

const fragmentKey = "share"

type Payload struct {
	Name  string           `json:"name"`
	Items []model.ListItem `json:"items"`
}

func Encode(name string, items []model.ListItem) string {
	if items == nil {
		items = []model.ListItem{}
	}
	b, err := json.Marshal(Payload{Name: name, Items: items})
	if err != nil {
		// Payload only holds strings and bools.
		panic(err)
	}
	return base64.RawURLEncoding.EncodeToString(b)
}

func EncodeList(l model.ShoppingList) string {
	return Encode(l.Name, l.Items)
}

var decoders = []*base64.Encoding{
	base64.RawURLEncoding,
	base64.URLEncoding,
	base64.StdEncoding,
	base64.RawStdEncoding,
}

func Decode(token string) (Payload, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return Payload{}, ErrDecode
	}
	var raw []byte
	for _, enc := range decoders {
		b, err := enc.DecodeString(token)
		if err == nil {
			raw = b
			break
		}
	}
	if raw == nil {
		return Payload{}, fmt.Errorf("%w: not base64", ErrDecode)
	}
	var p Payload
	if err := json.Unmarshal(raw, &p); err != nil {
		return Payload{}, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if strings.TrimSpace(p.Name) == "" {
		return Payload{}, fmt.Errorf("%w: missing name", ErrDecode)
	}
	return p, nil
}

// Link returns base#share=token. The fragment never reaches a server.
func Link(base, token string) string {
	base = strings.TrimSpace(base)
	if i := strings.IndexByte(base, '#'); i >= 0 {
		base = base[:i]
	}
	return base + "#" + fragmentKey + "=" + token
}

// ParseLink extracts the token from a share link, a bare "#share=" fragment, or a
// bare token.
func ParseLink(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", ErrDecode
	}
	frag := s
	if i := strings.IndexByte(s, '#'); i >= 0 {
		frag = s[i+1:]
	} else if !strings.HasPrefix(s, fragmentKey+"=") {
		return s, nil
	}
	if !strings.HasPrefix(frag, fragmentKey+"=") {
		return "", fmt.Errorf("%w: no %s fragment", ErrDecode, fragmentKey)
	}
	tok := strings.TrimPrefix(frag, fragmentKey+"=")
	if un, err := url.PathUnescape(tok); err == nil && strings.Contains(tok, "%") {
		tok = un
	}
	if tok == "" {
		return "", ErrDecode
	}
	return tok, nil
}

// LooksLikeLink reports whether s carries a share fragment.
func LooksLikeLink(s string) bool {
	return strings.Contains(s, "#"+fragmentKey+"=")
}

// DecodeLink is ParseLink followed by Decode.
func DecodeLink(s string) (Payload, error) {
	tok, err := ParseLink(s)
	if err != nil {
		return Payload{}, err
	}
	return Decode(tok)
}
