package format

import (
	"bytes"
	"strings"
	"testing"
)

type row struct {
	ID        string `json:"id"`
	Completed bool   `json:"completed"`
}

func TestWrite_JSON(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, row{ID: "it-1"}, "", false); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if got := buf.String(); got != "{\"id\":\"it-1\",\"completed\":false}\n" {
		t.Fatalf("unexpected json %q", got)
	}
}

func TestWrite_YAMLUsesJSONKeys(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, []row{{ID: "it-1", Completed: true}}, "yaml", false); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got := buf.String()
	if !strings.Contains(got, "- completed: true") || !strings.Contains(got, "id: it-1") {
		t.Fatalf("unexpected yaml:\n%s", got)
	}
}

func TestWrite_UnknownFormat(t *testing.T) {
	if err := Write(&bytes.Buffer{}, 1, "edn", false); err == nil {
		t.Fatalf("expected error for unknown format")
	}
}
