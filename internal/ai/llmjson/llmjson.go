// Package llmjson pulls a JSON document out of a chat model reply
package llmjson

import (
	"encoding/json"
	"errors"
	"strings"
)

var ErrNoJSON = errors.New("llmjson: no JSON found in reply")

// Extract strips code fences and leading prose, returning the text from the
// first '{' or '[' up to its matching closing bracket.
func Extract(reply string) (string, error) {
	s := strings.TrimSpace(reply)
	if i := strings.Index(s, "```"); i >= 0 {
		rest := s[i+3:]
		if nl := strings.IndexByte(rest, '\n'); nl >= 0 {
			rest = rest[nl+1:]
		}
		if end := strings.Index(rest, "```"); end >= 0 {
			rest = rest[:end]
		}
		s = strings.TrimSpace(rest)
	}

	start := strings.IndexAny(s, "{[")
	if start < 0 {
		return "", ErrNoJSON
	}

	opening, closing := s[start], byte('}')
	if opening == '[' {
		closing = ']'
	}

	depth := 0
	inString, escaped := false, false
	for i := start; i < len(s); i++ {
		c := s[i]
		switch {
		case escaped:
			escaped = false
		case c == '\\' && inString:
			escaped = true
		case c == '"':
			inString = !inString
		case inString:
		case c == opening:
			depth++
		case c == closing:
			depth--
			if depth == 0 {
				return s[start : i+1], nil
			}
		}
	}
	return "", ErrNoJSON
}

// Decode extracts the JSON document from reply and unmarshals it into v
func Decode(reply string, v any) error {
	doc, err := Extract(reply)
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(doc), v)
}
