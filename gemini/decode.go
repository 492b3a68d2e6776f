package gemini

import (
	"encoding/json"
	"strings"

	"github.com/jwalczak/menuscan"
)

// DecodeItems parses the model's response into segmented items. Models
// sometimes wrap JSON in code fences or append commentary, so decoding is
// lenient: it strips fences and falls back to the outermost bracketed
// span before giving up.
func DecodeItems(text string) ([]menuscan.SegmentedItem, error) {
	cleaned := stripFences(text)

	items, err := decodeArray(cleaned)
	if err == nil {
		return items, nil
	}

	if recovered, ok := bracketSpan(cleaned); ok {
		if items, err2 := decodeArray(recovered); err2 == nil {
			return items, nil
		}
	}
	return nil, menuscan.Errorf(menuscan.EEXTRACTION, "gemini: undecodable response: %s", err)
}

type wireItem struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       string `json:"price"`
	Section     string `json:"section"`
}

func decodeArray(s string) ([]menuscan.SegmentedItem, error) {
	var wire []wireItem
	if err := json.Unmarshal([]byte(s), &wire); err != nil {
		return nil, err
	}
	items := make([]menuscan.SegmentedItem, 0, len(wire))
	for _, w := range wire {
		if strings.TrimSpace(w.Name) == "" {
			continue
		}
		items = append(items, menuscan.SegmentedItem{
			Name:        strings.TrimSpace(w.Name),
			Description: strings.TrimSpace(w.Description),
			Price:       strings.TrimSpace(w.Price),
			Section:     strings.TrimSpace(w.Section),
		})
	}
	return items, nil
}

// stripFences removes a surrounding markdown code fence if present.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[i+1:] // drop the language tag line
	}
	if i := strings.LastIndex(s, "```"); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}

// bracketSpan returns the outermost [...] span in s.
func bracketSpan(s string) (string, bool) {
	start := strings.IndexByte(s, '[')
	end := strings.LastIndexByte(s, ']')
	if start < 0 || end <= start {
		return "", false
	}
	return s[start : end+1], true
}
