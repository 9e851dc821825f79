package services

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	MatchStrategySubstring = "substring"
	MatchStrategyWord      = "word"
)

// Matcher decides whether a skill token occurs in normalized CV text.
type Matcher interface {
	Name() string
	Matches(text, skill string) bool
}

// NewMatcher resolves a configured strategy name.
func NewMatcher(strategy string) (Matcher, error) {
	switch strings.ToLower(strings.TrimSpace(strategy)) {
	case "", MatchStrategySubstring:
		return SubstringMatcher{}, nil
	case MatchStrategyWord:
		return WordBoundaryMatcher{}, nil
	default:
		return nil, fmt.Errorf("unknown match strategy %q", strategy)
	}
}

// SubstringMatcher reports a match when the skill appears anywhere in the
// text, including inside unrelated words ("go" matches "good").
type SubstringMatcher struct{}

func (SubstringMatcher) Name() string { return MatchStrategySubstring }

func (SubstringMatcher) Matches(text, skill string) bool {
	return strings.Contains(text, skill)
}

var sentenceDot = regexp.MustCompile(`\.(\s|$)`)

// WordBoundaryMatcher only matches whole space-delimited tokens, ignoring a
// sentence-ending dot. It changes ranking results compared to
// SubstringMatcher and is opt-in.
type WordBoundaryMatcher struct{}

func (WordBoundaryMatcher) Name() string { return MatchStrategyWord }

func (WordBoundaryMatcher) Matches(text, skill string) bool {
	tokens := strings.Join(strings.Fields(sentenceDot.ReplaceAllString(text, " ")), " ")
	return strings.Contains(" "+tokens+" ", " "+skill+" ")
}
