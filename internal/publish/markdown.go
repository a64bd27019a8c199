package publish

import (
	"bytes"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/robiweb74/makupovalni-seznam/internal/model"
)

type RenderOptions struct {
	// GroupByCategory emits one section per category, in first-seen order.
	GroupByCategory bool
	// ShareLink, when set, is appended as a link line.
	ShareLink string
}

// ListMarkdown renders a list as a GitHub-style checklist.
func ListMarkdown(l model.ShoppingList, opt RenderOptions) string {
	var buf bytes.Buffer
	writeLn := func(s string) {
		buf.WriteString(s)
		buf.WriteString("\n")
	}

	writeLn("# " + strings.TrimSpace(l.Name))
	writeLn("")
	switch {
	case len(l.Items) == 0:
		writeLn("_No items yet._")
	case opt.GroupByCategory:
		order := []string{}
		groups := map[string][]model.ListItem{}
		for _, it := range l.Items {
			cat := strings.TrimSpace(it.Category)
			if cat == "" {
				cat = "Other"
			}
			if _, ok := groups[cat]; !ok {
				order = append(order, cat)
			}
			groups[cat] = append(groups[cat], it)
		}
		for i, cat := range order {
			if i > 0 {
				writeLn("")
			}
			writeLn("## " + cat)
			writeLn("")
			for _, it := range groups[cat] {
				writeLn(checklistLine(it))
			}
		}
	default:
		for _, it := range l.Items {
			writeLn(checklistLine(it))
		}
	}

	if link := strings.TrimSpace(opt.ShareLink); link != "" {
		writeLn("")
		writeLn("[Open shared list](" + link + ")")
	}
	return buf.String()
}

func checklistLine(it model.ListItem) string {
	box := "[ ]"
	if it.Completed {
		box = "[x]"
	}
	return "- " + box + " " + escapeInline(strings.TrimSpace(it.Text))
}

var inlineEscaper = strings.NewReplacer(`\`, `\\`, "*", `\*`, "_", `\_`, "`", "\\`", "[", `\[`, "]", `\]`)

func escapeInline(s string) string {
	return inlineEscaper.Replace(s)
}

// Render styles markdown for the terminal at the given word-wrap width.
func Render(md string, width int) (string, error) {
	if width <= 0 {
		width = 80
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", err
	}
	return r.Render(md)
}
