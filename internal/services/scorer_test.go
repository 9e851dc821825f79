package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDefaultScorer() Scorer {
	return NewScorer(NewStopwords(DefaultStopwords()), SubstringMatcher{})
}

func TestScore_AllSkillsWithBothBonuses(t *testing.T) {
	result := newDefaultScorer().Score(
		"Experienced in Python and SQL for 5 years, Bachelor's degree.",
		NewSkillSet("python", "sql"),
	)

	assert.Equal(t, []string{"python", "sql"}, result.Matched)
	assert.Empty(t, result.Missing)
	assert.Equal(t, 20, result.Bonus)
	assert.Equal(t, []string{"Degree +10", "Experience +10"}, result.Reasons)
	assert.Equal(t, 100.0, result.Score)
}

func TestScore_PartialMatch(t *testing.T) {
	result := newDefaultScorer().Score("I know Python only.", NewSkillSet("python", "sql", "react"))

	assert.Equal(t, []string{"python"}, result.Matched)
	assert.Equal(t, []string{"react", "sql"}, result.Missing)
	assert.Equal(t, 0, result.Bonus)
	assert.Empty(t, result.Reasons)
	assert.InDelta(t, 100.0/3.0, result.Score, 1e-9)
}

func TestScore_EmptySkillSetScoresBonusOnly(t *testing.T) {
	scorer := newDefaultScorer()

	result := scorer.Score("5 years experience", NewSkillSet())
	assert.Equal(t, 10.0, result.Score)
	assert.Equal(t, 10, result.Bonus)
	assert.Equal(t, []string{"Experience +10"}, result.Reasons)
	assert.Empty(t, result.Matched)
	assert.Empty(t, result.Missing)

	assert.Equal(t, 0.0, scorer.Score("nothing relevant", NewSkillSet()).Score)
	assert.Equal(t, 20.0, scorer.Score("Master of Science, 3 year internship", NewSkillSet()).Score)
}

func TestScore_YearsPatternWithoutExperienceWord(t *testing.T) {
	result := newDefaultScorer().Score("Worked 3 years at Acme", NewSkillSet("acme"))

	assert.Equal(t, []string{"Experience +10"}, result.Reasons)
	assert.Equal(t, 100.0, result.Score)
}

func TestScore_PartitionAndBounds(t *testing.T) {
	skills := NewSkillSet("go", "kubernetes", "c++", "sql", "docker", "terraform")
	texts := []string{
		"",
		"Go and Kubernetes, a degree and 10 years of experience",
		"C++ developer; SQL; Docker; Terraform; Go; Kubernetes; master",
		"Painter and decorator",
	}

	for _, text := range texts {
		result := newDefaultScorer().Score(text, skills)

		assert.GreaterOrEqual(t, result.Score, 0.0, text)
		assert.LessOrEqual(t, result.Score, 100.0, text)
		assert.Equal(t, skills.Len(), len(result.Matched)+len(result.Missing), text)

		union := NewSkillSet(append(append([]string{}, result.Matched...), result.Missing...)...)
		assert.Equal(t, skills, union, text)
		for _, m := range result.Matched {
			assert.NotContains(t, result.Missing, m, text)
		}
	}
}

func TestScore_StopwordsRemovedFromCVText(t *testing.T) {
	// "the" is stripped from the CV before matching, so a skill that spans a
	// stopword no longer matches.
	result := newDefaultScorer().Score("Head of the platform team", NewSkillSet("the platform", "platform"))

	assert.Equal(t, []string{"platform"}, result.Matched)
	assert.Equal(t, []string{"the platform"}, result.Missing)
}

func TestScore_PunctuationBecomesTokenBoundary(t *testing.T) {
	result := newDefaultScorer().Score("Skills: C#, C++, Node.js (5 yrs)", NewSkillSet("c#", "c++", "node.js", "skills:"))

	assert.Equal(t, []string{"c#", "c++", "node.js"}, result.Matched)
	assert.Equal(t, []string{"skills:"}, result.Missing)
}

// Substring matching is intentionally kept: a short skill can match inside
// an unrelated word.
func TestScore_SubstringFalsePositive(t *testing.T) {
	result := newDefaultScorer().Score("I am a good communicator", NewSkillSet("go"))

	assert.Equal(t, []string{"go"}, result.Matched)
	assert.Equal(t, 100.0, result.Score)
}

func TestScore_WordBoundaryMatcherAvoidsFalsePositive(t *testing.T) {
	scorer := NewScorer(NewStopwords(DefaultStopwords()), WordBoundaryMatcher{})

	result := scorer.Score("I am a good communicator", NewSkillSet("go"))
	assert.Empty(t, result.Matched)
	assert.Equal(t, 0.0, result.Score)

	result = scorer.Score("Backend work in Go.", NewSkillSet("go"))
	assert.Equal(t, []string{"go"}, result.Matched)
}

func TestNewMatcher(t *testing.T) {
	m, err := NewMatcher("")
	require.NoError(t, err)
	assert.Equal(t, MatchStrategySubstring, m.Name())

	m, err = NewMatcher(" Word ")
	require.NoError(t, err)
	assert.Equal(t, MatchStrategyWord, m.Name())

	_, err = NewMatcher("fuzzy")
	assert.Error(t, err)
}

func TestNewScorer_NilMatcherDefaultsToSubstring(t *testing.T) {
	result := NewScorer(nil, nil).Score("golang", NewSkillSet("go"))
	assert.Equal(t, []string{"go"}, result.Matched)
}
