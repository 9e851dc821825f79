package services

import (
	"regexp"
	"sort"
	"strings"

	"github.com/jdkato/prose/v2"
)

var defaultStopwords = []string{
	"a", "an", "the", "and", "or", "of", "in", "on", "for", "with", "to", "be",
	"is", "are", "it", "at", "from", "as", "by", "that", "this", "if", "we", "you",
}

// DefaultStopwords returns a fresh copy of the built-in stopword list.
func DefaultStopwords() []string {
	return append([]string(nil), defaultStopwords...)
}

// Stopwords is an immutable, case-insensitive word set shared by the skill
// extractor and the scorer.
type Stopwords struct {
	words   map[string]struct{}
	pattern *regexp.Regexp
}

func NewStopwords(words []string) *Stopwords {
	s := &Stopwords{words: make(map[string]struct{}, len(words))}

	quoted := make([]string, 0, len(words))
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		if _, dup := s.words[w]; dup {
			continue
		}
		s.words[w] = struct{}{}
		quoted = append(quoted, regexp.QuoteMeta(w))
	}
	sort.Strings(quoted)

	if len(quoted) > 0 {
		s.pattern = regexp.MustCompile(`\b(?:` + strings.Join(quoted, "|") + `)\b`)
	}
	return s
}

func (s *Stopwords) Contains(token string) bool {
	_, ok := s.words[strings.ToLower(token)]
	return ok
}

// Remove replaces whole-word stopword occurrences in lowercase text with a
// space.
func (s *Stopwords) Remove(text string) string {
	if s.pattern == nil {
		return text
	}
	return s.pattern.ReplaceAllString(text, " ")
}

// SkillSet is a deduplicated set of lowercase skill tokens.
type SkillSet map[string]struct{}

func NewSkillSet(tokens ...string) SkillSet {
	set := make(SkillSet, len(tokens))
	for _, t := range tokens {
		set[t] = struct{}{}
	}
	return set
}

func (s SkillSet) Len() int {
	return len(s)
}

func (s SkillSet) Contains(token string) bool {
	_, ok := s[token]
	return ok
}

// Sorted returns the tokens in ascending order so that iteration, and the
// skill lists derived from it, are reproducible.
func (s SkillSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for t := range s {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// NounPhraseTagger finds noun phrases with a part-of-speech tagger.
type NounPhraseTagger interface {
	NounPhrases(text string) []string
}

type proseTagger struct{}

func NewProseTagger() NounPhraseTagger {
	return proseTagger{}
}

// NounPhrases returns maximal runs of adjective and noun tags that end in a
// noun, e.g. "distributed systems" or "python", with words space-joined.
func (proseTagger) NounPhrases(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	doc, err := prose.NewDocument(text,
		prose.WithExtraction(false),
		prose.WithSegmentation(false),
	)
	if err != nil {
		return nil
	}

	var phrases []string
	var run []prose.Token

	flush := func() {
		end := len(run)
		for end > 0 && !strings.HasPrefix(run[end-1].Tag, "NN") {
			end--
		}
		if end > 0 {
			words := make([]string, 0, end)
			for _, tok := range run[:end] {
				words = append(words, tok.Text)
			}
			phrases = append(phrases, strings.Join(words, " "))
		}
		run = run[:0]
	}

	for _, tok := range doc.Tokens() {
		if strings.HasPrefix(tok.Tag, "NN") || strings.HasPrefix(tok.Tag, "JJ") {
			run = append(run, tok)
			continue
		}
		flush()
	}
	flush()

	return phrases
}

var (
	skillTokenPattern = regexp.MustCompile(`[A-Za-z0-9.+/#-]+`)
	phraseDisallowed  = regexp.MustCompile(`[^a-z0-9+#.-]`)
)

type SkillExtractor interface {
	Extract(text string) SkillSet
}

type skillExtractor struct {
	tagger    NounPhraseTagger
	stopwords *Stopwords
}

func NewSkillExtractor(tagger NounPhraseTagger, stopwords *Stopwords) SkillExtractor {
	return &skillExtractor{
		tagger:    tagger,
		stopwords: stopwords,
	}
}

// Extract unions tagged noun phrases with a permissive token scan, which
// catches acronyms such as "C++", "CI/CD" or "SQL" that a tagger misses.
func (e *skillExtractor) Extract(text string) SkillSet {
	skills := make(SkillSet)

	if e.tagger != nil {
		for _, phrase := range e.tagger.NounPhrases(text) {
			token := normalizePhrase(phrase)
			if token == "" || e.stopwords.Contains(token) {
				continue
			}
			skills[token] = struct{}{}
		}
	}

	for _, match := range skillTokenPattern.FindAllString(text, -1) {
		token := strings.ToLower(match)
		if e.stopwords.Contains(token) {
			continue
		}
		skills[token] = struct{}{}
	}

	return skills
}

// normalizePhrase lowercases a phrase and drops every character outside
// [a-z0-9+#.-], spaces included: "Distributed Systems" becomes
// "distributedsystems".
func normalizePhrase(phrase string) string {
	return phraseDisallowed.ReplaceAllString(strings.ToLower(phrase), "")
}
