package command

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestParse_Empty(t *testing.T) {
	result := Parse("")
	assert.Equal(t, "", result.Command)
	assert.Nil(t, result.Args)
}

func TestParse_SingleWord(t *testing.T) {
	result := Parse("help")
	assert.Equal(t, "help", result.Command)
	assert.Nil(t, result.Args)
	assert.Equal(t, "", result.RawArgs)
}

func TestParse_Lowercase(t *testing.T) {
	result := Parse("INFER")
	assert.Equal(t, "infer", result.Command)
}

func TestParse_WithArgs(t *testing.T) {
	result := Parse("simple 8 50 20 5")
	assert.Equal(t, "simple", result.Command)
	assert.Equal(t, []string{"8", "50", "20", "5"}, result.Args)
	assert.Equal(t, "8 50 20 5", result.RawArgs)
}

func TestParse_ExtraWhitespace(t *testing.T) {
	result := Parse("  infer   dmg=5   crit  ")
	assert.Equal(t, "infer", result.Command)
	assert.Equal(t, []string{"dmg=5", "crit"}, result.Args)
	assert.Equal(t, "dmg=5   crit", result.RawArgs)
}

func TestParse_Alias(t *testing.T) {
	result := Parse("?")
	assert.Equal(t, "?", result.Command)
}

func TestParse_ArgsKeepCase(t *testing.T) {
	result := Parse("Species Swampert")
	assert.Equal(t, "species", result.Command)
	assert.Equal(t, []string{"Swampert"}, result.Args)
}

func TestParse_QuotedArgument(t *testing.T) {
	result := Parse(`infer dmg=30 types="water ground" crit`)
	assert.Equal(t, []string{"dmg=30", "types=water ground", "crit"}, result.Args)
	assert.Equal(t, `dmg=30 types="water ground" crit`, result.RawArgs)
}

func TestParse_TabSeparatesCommand(t *testing.T) {
	result := Parse("simple\t8 50")
	assert.Equal(t, "simple", result.Command)
	assert.Equal(t, []string{"8", "50"}, result.Args)
}

func TestTokenize(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"   ", nil},
		{"a b", []string{"a", "b"}},
		{`"a b" c`, []string{"a b", "c"}},
		{`x=""`, []string{"x="}},
		{`"unterminated quote`, []string{"unterminated quote"}},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Tokenize(tc.in), "input %q", tc.in)
	}
}

func TestPropertyTokenizeWithoutQuotesMatchesFields(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := rapid.StringMatching(`[a-z0-9= \t]{0,40}`).Draw(t, "s")
		want := strings.Fields(s)
		if len(want) == 0 {
			want = nil
		}
		assert.Equal(t, want, Tokenize(s))
	})
}

func TestPropertyParseAlwaysLowercasesCommand(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		word := rapid.StringMatching(`[A-Za-z]{1,20}`).Draw(t, "word")
		result := Parse(word)
		for _, c := range result.Command {
			if c >= 'A' && c <= 'Z' {
				t.Fatalf("command %q contains uppercase char in Parse result %q", word, result.Command)
			}
		}
	})
}

func TestPropertyParseNonEmptyInputHasCommand(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		word := rapid.StringMatching(`[a-z]{1,10}`).Draw(t, "word")
		result := Parse(word)
		if result.Command == "" {
			t.Fatalf("non-empty input %q produced empty command", word)
		}
	})
}
