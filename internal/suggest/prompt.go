package suggest

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

func suggestPrompt(req Request) string {
	existing := "none yet"
	if len(req.Existing) > 0 {
		existing = strings.Join(req.Existing, ", ")
	}
	lang := strings.TrimSpace(req.Language)
	if lang == "" {
		lang = "English"
	}
	n := req.Count
	if n <= 0 {
		n = BatchSize
	}
	return fmt.Sprintf(
		"Based on the shopping list named %q and its existing items (%s), suggest %d additional items the user might need. "+
			"Do not repeat existing items. Answer in %s as JSON: {\"suggestions\": [\"...\"]}.",
		req.ListName, existing, n, lang)
}

func categorizePrompt(item, language string) string {
	lang := strings.TrimSpace(language)
	if lang == "" {
		lang = "English"
	}
	return fmt.Sprintf(
		"Which store section does the item %q belong to? Answer in %s with one single word (e.g. Fruit, Vegetables, Dairy, Meat, Cleaning, Drinks).",
		item, lang)
}

// parseSuggestions accepts {"suggestions": [...]} or a bare JSON array, optionally
// wrapped in a markdown code fence.
func parseSuggestions(text string) ([]string, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, errors.New("empty response")
	}
	if strings.HasPrefix(text, "[") {
		var xs []string
		if err := json.Unmarshal([]byte(text), &xs); err != nil {
			return nil, fmt.Errorf("decode suggestions: %w", err)
		}
		return xs, nil
	}
	var obj struct {
		Suggestions []string `json:"suggestions"`
	}
	if err := json.Unmarshal([]byte(text), &obj); err != nil {
		return nil, fmt.Errorf("decode suggestions: %w", err)
	}
	return obj.Suggestions, nil
}
