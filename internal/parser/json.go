// Package parser pulls structured data out of free-form model replies.
//
// A planner that answers in prose instead of a tool call usually still
// embeds one JSON object, either in a ```json fence or inline. ExtractJSON
// finds it using a key as an anchor.
package parser

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ExtractJSON returns the JSON object in text that contains key.
//
// A fenced ```json block containing key wins. Otherwise the object
// enclosing key, or failing that the first object after it, is isolated by
// brace matching. A key that never appears yields (nil, nil); an object
// that is found but does not parse yields an error.
func ExtractJSON(text, key string) (map[string]any, error) {
	if text == "" || !strings.Contains(text, key) {
		return nil, nil
	}
	if obj, err := fromFence(text, key); obj != nil || err != nil {
		return obj, err
	}
	return fromBraces(text, key)
}

func fromFence(text, key string) (map[string]any, error) {
	const open, close = "```json", "```"
	rest := text
	for {
		i := strings.Index(rest, open)
		if i < 0 {
			return nil, nil
		}
		start := i + len(open)
		end := strings.Index(rest[start:], close)
		if end < 0 {
			return nil, nil
		}
		block := rest[start : start+end]
		if strings.Contains(block, key) {
			var obj map[string]any
			if err := json.Unmarshal([]byte(strings.TrimSpace(block)), &obj); err != nil {
				return nil, fmt.Errorf("json in code block: %w", err)
			}
			return obj, nil
		}
		rest = rest[start+end+len(close):]
	}
}

func fromBraces(text, key string) (map[string]any, error) {
	at := strings.Index(text, key)

	// Enclosing object first.
	if open := strings.LastIndex(text[:at], "{"); open >= 0 {
		if end, ok := closingBrace(text[open:]); ok {
			candidate := text[open : open+end+1]
			var obj map[string]any
			if strings.Contains(candidate, key) && json.Unmarshal([]byte(candidate), &obj) == nil {
				return obj, nil
			}
		}
	}

	open := strings.Index(text[at:], "{")
	if open < 0 {
		return nil, nil
	}
	open += at
	end, ok := closingBrace(text[open:])
	if !ok {
		return nil, fmt.Errorf("unmatched braces after %q", key)
	}
	var obj map[string]any
	if err := json.Unmarshal([]byte(text[open:open+end+1]), &obj); err != nil {
		return nil, fmt.Errorf("bracket-matched json: %w", err)
	}
	return obj, nil
}

// closingBrace returns the index of the '}' closing the '{' at s[0],
// skipping over string literals and escapes.
func closingBrace(s string) (int, bool) {
	if s == "" || s[0] != '{' {
		return 0, false
	}
	depth := 0
	inString := false
	for i := 0; i < len(s); i++ {
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
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i, true
			}
		}
	}
	return 0, false
}
