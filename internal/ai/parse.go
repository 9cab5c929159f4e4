package ai

import (
	"errors"
	"regexp"
	"strings"
)

var ErrNoJSONObject = errors.New("no JSON object found in response")

var codeFenceRegex = regexp.MustCompile("(?s)```(?:json|javascript|js)?\\s*\\n?(.*?)\\n?```")

// ExtractJSONObject pulls the outermost JSON object out of a model reply.
// It strips markdown code fences and any prose around the object; it does not
// validate the JSON itself.
func ExtractJSONObject(text string) (string, error) {
	s := strings.TrimSpace(text)
	if m := codeFenceRegex.FindStringSubmatch(s); m != nil {
		s = strings.TrimSpace(m[1])
	}

	start := strings.IndexByte(s, '{')
	if start < 0 {
		return "", ErrNoJSONObject
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		ch := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1], nil
			}
		}
	}
	return "", ErrNoJSONObject
}
