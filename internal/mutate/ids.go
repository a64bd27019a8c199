package mutate

import (
	"crypto/rand"
	"encoding/base32"
	"strings"
)

const (
	ListIDPrefix = "list"
	ItemIDPrefix = "it"
)

// newRandomID returns prefix-<suffix> where suffix is lowercase base32 without padding.
// Item ids only need to be unique within one list, so they are shorter.
func newRandomID(prefix string) string {
	var b [5]byte // 40 bits -> 8 base32 chars
	if _, err := rand.Read(b[:]); err != nil {
		panic(err)
	}
	enc := base32.StdEncoding.WithPadding(base32.NoPadding)
	suffix := strings.ToLower(enc.EncodeToString(b[:]))
	if prefix == ItemIDPrefix {
		suffix = suffix[:6]
	}
	return prefix + "-" + suffix
}
