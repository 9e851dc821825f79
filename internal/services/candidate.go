package services

import (
	"path/filepath"
	"regexp"
	"strings"
)

type CandidateDetails struct {
	Name  string
	Email string
	Phone string
}

var (
	emailPattern = regexp.MustCompile(`[\w.-]+@[\w.-]+\.\w+`)
	// optional +, country/area code, optional (group), then 3-4 digit groups
	phonePattern   = regexp.MustCompile(`\+?\d{1,4}[\s-]?(?:\(\d{1,4}\)[\s-]?)?\d{3,4}(?:[\s-]?\d{3,4})+`)
	yearLikeRun    = regexp.MustCompile(`\d{4,}`)
	yearRange      = regexp.MustCompile(`^(?:19|20)\d{2}[\s-](?:19|20)\d{2}$`)
	nonNameChars   = regexp.MustCompile(`[^a-zA-Z\s]`)
	whitespaceRuns = regexp.MustCompile(`\s+`)
)

const maxNameWords = 5

type CandidateExtractor interface {
	Extract(text, filename string) CandidateDetails
}

type candidateExtractor struct{}

func NewCandidateExtractor() CandidateExtractor {
	return candidateExtractor{}
}

// Extract pulls contact details out of CV text. The text should keep its
// line breaks; the name is taken from the first short line that looks like
// neither contact data nor a date.
func (candidateExtractor) Extract(text, filename string) CandidateDetails {
	details := CandidateDetails{
		Email: emailPattern.FindString(text),
		Phone: findPhone(text),
	}

	details.Name = guessName(text)
	if details.Name == "" {
		base := filepath.Base(filename)
		details.Name = strings.TrimSuffix(base, filepath.Ext(base))
	}

	return details
}

// findPhone returns the first phone-like run that is not a year range such
// as "2015-2019".
func findPhone(text string) string {
	for _, match := range phonePattern.FindAllString(text, -1) {
		if yearRange.MatchString(match) {
			continue
		}
		return whitespaceRuns.ReplaceAllString(match, "")
	}
	return ""
}

func guessName(text string) string {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.Contains(line, "@") || yearLikeRun.MatchString(line) {
			continue
		}
		if len(strings.Fields(line)) > maxNameWords {
			continue
		}
		// the first qualifying line decides; if it strips to nothing the
		// caller falls back to the filename
		return strings.TrimSpace(nonNameChars.ReplaceAllString(line, ""))
	}
	return ""
}
