package provider

import (
	"errors"
	"strings"

	"github.com/tidwall/gjson"

	"wordbank/internal/model"
)

// DecodeDrafts extracts category drafts from free-form provider output.
// Models routinely wrap the payload in prose or markdown fences, so the
// first well-formed JSON array found in the text is taken as the payload.
// Item fields are coerced to strings and word lists are truncated at
// model.MaxWords; items without a name or words are dropped.
func DecodeDrafts(raw, source string) ([]model.Draft, error) {
	arr, ok := firstJSONArray(raw)
	if !ok {
		return nil, errors.New("no JSON array in response")
	}

	var drafts []model.Draft
	for _, item := range arr.Array() {
		name := strings.TrimSpace(item.Get("categoryName").String())
		if name == "" {
			name = strings.TrimSpace(item.Get("name").String())
		}
		if name == "" {
			continue
		}

		var words []string
		for _, w := range item.Get("words").Array() {
			word := strings.TrimSpace(w.String())
			if word == "" {
				continue
			}
			words = append(words, word)
			if len(words) == model.MaxWords {
				break
			}
		}
		if len(words) == 0 {
			continue
		}

		drafts = append(drafts, model.Draft{Name: name, Words: words, Source: source})
	}
	if len(drafts) == 0 {
		return nil, errors.New("no usable items in response")
	}
	return drafts, nil
}

// firstJSONArray scans raw for the first bracket-balanced, valid JSON array.
func firstJSONArray(raw string) (gjson.Result, bool) {
	for offset := 0; offset < len(raw); {
		i := strings.IndexByte(raw[offset:], '[')
		if i < 0 {
			return gjson.Result{}, false
		}
		i += offset
		if end, ok := matchBracket(raw, i); ok {
			if candidate := raw[i : end+1]; gjson.Valid(candidate) {
				return gjson.Parse(candidate), true
			}
		}
		offset = i + 1
	}
	return gjson.Result{}, false
}

// matchBracket finds the ']' closing the '[' at start, skipping over string
// literals and escape sequences.
func matchBracket(s string, start int) (int, bool) {
	depth := 0
	inString := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch c {
			case '\\':
				i++
			case '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return i, true
			}
		}
	}
	return 0, false
}
