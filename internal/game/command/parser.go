package command

import (
	"strings"
	"unicode"
)

// ParseResult is one input line split into a command word and arguments.
type ParseResult struct {
	// Command is the first word, lowercased.
	Command string
	// Args are the remaining tokens. Double quotes group words into one token
	// and are removed, so `types="water ground"` is `types=water ground`.
	Args []string
	// RawArgs is the trimmed text after the command word, quotes included.
	RawArgs string
}

// Parse splits line into a command word and its arguments.
//
// Postcondition: Command is empty exactly when line is blank.
func Parse(line string) ParseResult {
	line = strings.TrimSpace(line)
	if line == "" {
		return ParseResult{}
	}
	end := strings.IndexFunc(line, unicode.IsSpace)
	if end < 0 {
		return ParseResult{Command: strings.ToLower(line)}
	}
	rest := strings.TrimSpace(line[end:])
	return ParseResult{
		Command: strings.ToLower(line[:end]),
		Args:    Tokenize(rest),
		RawArgs: rest,
	}
}

// Tokenize splits s at whitespace outside double quotes. An unterminated
// quote runs to the end of s.
//
// Postcondition: Returns nil for blank s.
func Tokenize(s string) []string {
	var tokens []string
	var cur strings.Builder
	inToken, quoted := false, false
	for _, r := range s {
		switch {
		case r == '"':
			quoted = !quoted
			inToken = true
		case !quoted && unicode.IsSpace(r):
			if inToken {
				tokens = append(tokens, cur.String())
				cur.Reset()
				inToken = false
			}
		default:
			cur.WriteRune(r)
			inToken = true
		}
	}
	if inToken {
		tokens = append(tokens, cur.String())
	}
	return tokens
}
