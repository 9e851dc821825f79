package services

import (
	"math"
	"regexp"
	"strings"
)

const (
	bonusPoints   = 10
	maxScore      = 100.0
	reasonDegree  = "Degree +10"
	reasonYears   = "Experience +10"
	reasonJoinSep = "; "
)

var (
	scoreDisallowed = regexp.MustCompile(`[^a-z0-9+#.-]`)
	yearsPattern    = regexp.MustCompile(`\d+\s+(?:years|year)`)
	degreeKeywords  = []string{"bachelor", "master", "degree"}
)

// ScoreResult is the outcome of scoring one CV. Matched and Missing
// partition the job description skills and follow their sorted order.
type ScoreResult struct {
	Score   float64
	Matched []string
	Missing []string
	Bonus   int
	Reasons []string
}

type Scorer interface {
	Score(cvText string, skills SkillSet) ScoreResult
}

type scorer struct {
	stopwords *Stopwords
	matcher   Matcher
}

func NewScorer(stopwords *Stopwords, matcher Matcher) Scorer {
	if matcher == nil {
		matcher = SubstringMatcher{}
	}
	return &scorer{
		stopwords: stopwords,
		matcher:   matcher,
	}
}

// Score computes the share of job description skills found in the CV, plus
// fixed bonuses for degree and experience keywords, capped at 100.
func (s *scorer) Score(cvText string, skills SkillSet) ScoreResult {
	text := s.normalize(cvText)

	result := ScoreResult{
		Matched: []string{},
		Missing: []string{},
		Reasons: []string{},
	}

	for _, skill := range skills.Sorted() {
		if s.matcher.Matches(text, skill) {
			result.Matched = append(result.Matched, skill)
		} else {
			result.Missing = append(result.Missing, skill)
		}
	}

	var base float64
	if skills.Len() > 0 {
		base = float64(len(result.Matched)) / float64(skills.Len()) * 100
	}

	if containsAny(text, degreeKeywords) {
		result.Bonus += bonusPoints
		result.Reasons = append(result.Reasons, reasonDegree)
	}
	if strings.Contains(text, "experience") || yearsPattern.MatchString(text) {
		result.Bonus += bonusPoints
		result.Reasons = append(result.Reasons, reasonYears)
	}

	result.Score = math.Min(maxScore, base+float64(result.Bonus))
	return result
}

// normalize lowercases, drops stopwords and turns every character outside
// [a-z0-9+#.-] into a space so token boundaries survive.
func (s *scorer) normalize(cvText string) string {
	text := strings.ToLower(cvText)
	if s.stopwords != nil {
		text = s.stopwords.Remove(text)
	}
	return scoreDisallowed.ReplaceAllString(text, " ")
}

func containsAny(text string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}
