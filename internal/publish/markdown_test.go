package publish

import (
	"strings"
	"testing"

	"github.com/robiweb74/makupovalni-seznam/internal/model"
)

func sample() model.ShoppingList {
	return model.ShoppingList{
		ID:   "list-a",
		Name: "TEDEN",
		Items: []model.ListItem{
			{ID: "it-1", Text: "MLEKO", Category: "Dairy"},
			{ID: "it-2", Text: "KRUH_*", Completed: true},
			{ID: "it-3", Text: "SIR", Category: "Dairy"},
		},
	}
}

func TestListMarkdown_Checklist(t *testing.T) {
	got := ListMarkdown(sample(), RenderOptions{ShareLink: "https://x/#share=t"})
	want := "# TEDEN\n\n- [ ] MLEKO\n- [x] KRUH\\_\\*\n- [ ] SIR\n\n[Open shared list](https://x/#share=t)\n"
	if got != want {
		t.Fatalf("unexpected markdown:\n%q\nwant\n%q", got, want)
	}
}

func TestListMarkdown_GroupByCategory(t *testing.T) {
	got := ListMarkdown(sample(), RenderOptions{GroupByCategory: true})
	dairy := strings.Index(got, "## Dairy")
	other := strings.Index(got, "## Other")
	if dairy < 0 || other < 0 || dairy > other {
		t.Fatalf("expected Dairy then Other sections:\n%s", got)
	}
	if !strings.Contains(got, "## Dairy\n\n- [ ] MLEKO\n- [ ] SIR\n") {
		t.Fatalf("expected dairy items grouped:\n%s", got)
	}
}

func TestListMarkdown_Empty(t *testing.T) {
	got := ListMarkdown(model.ShoppingList{Name: "PRAZNO"}, RenderOptions{})
	if !strings.Contains(got, "_No items yet._") {
		t.Fatalf("expected empty-state line:\n%s", got)
	}
}

func TestRender_ProducesText(t *testing.T) {
	out, err := Render(ListMarkdown(sample(), RenderOptions{}), 60)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(out, "TEDEN") || !strings.Contains(out, "MLEKO") {
		t.Fatalf("expected rendered text to keep content:\n%s", out)
	}
}
