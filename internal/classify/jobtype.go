// Package classify infers job types, salaries and tutorial difficulty from
// loosely structured upstream text using ordered rule tables.
package classify

import (
	"regexp"
	"strings"

	"github.com/jonathan/skillscout/internal/types"
)

// Source records which rule family produced a job type.
type Source string

const (
	SourceTag       Source = "tag"
	SourceText      Source = "text"
	SourceHeuristic Source = "heuristic"
	SourceNone      Source = "none"
)

type tagRule struct {
	tags    []string
	jobType string
}

// tagRules are checked in order against each tag; the first rule with a
// matching tag wins.
var tagRules = []tagRule{
	{tags: []string{"full_time", "full-time"}, jobType: types.JobTypeFullTime},
	{tags: []string{"contract", "contractor"}, jobType: types.JobTypeContract},
	{tags: []string{"part_time", "part-time"}, jobType: types.JobTypePartTime},
	{tags: []string{"internship", "intern"}, jobType: types.JobTypeInternship},
}

type textRule struct {
	pattern *regexp.Regexp
	jobType string
	// negation suppresses a match when it occurs just before the match.
	negation string
}

// negationWindow is how many bytes before a match are searched for a negation.
const negationWindow = 24

var textRules = []textRule{
	{
		pattern: regexp.MustCompile(`\bfull(?:-|\s)?time\b|fully remote position|competitive salary|benefits package|\d\s*years'? experience`),
		jobType: types.JobTypeFullTime,
	},
	{pattern: regexp.MustCompile(`\bpart(?:-|\s)?time\b`), jobType: types.JobTypePartTime},
	{pattern: regexp.MustCompile(`\bcontract(?:or)?\b`), jobType: types.JobTypeContract},
	{
		pattern:  regexp.MustCompile(`\bintern(?:ship)?\b`),
		jobType:  types.JobTypeInternship,
		negation: "not hiring associate/",
	},
	{pattern: regexp.MustCompile(`\b(?:temporary|temp)\b`), jobType: types.JobTypeTemporary},
	{pattern: regexp.MustCompile(`\bfreelance\b`), jobType: types.JobTypeFreelance},
}

var heuristicKeywords = []string{"senior", "professional", "collaborative team"}

// JobType determines a listing's job type. Tags take precedence over
// description text, which takes precedence over seniority heuristics.
// An empty result means no rule matched.
func JobType(tags []string, description string) (string, Source) {
	for _, rule := range tagRules {
		for _, tag := range tags {
			if containsFold(rule.tags, tag) {
				return rule.jobType, SourceTag
			}
		}
	}

	text := strings.ToLower(description)
	if text == "" {
		return "", SourceNone
	}

	for _, rule := range textRules {
		if rule.matches(text) {
			return rule.jobType, SourceText
		}
	}

	for _, kw := range heuristicKeywords {
		if strings.Contains(text, kw) {
			return types.JobTypeFullTime, SourceHeuristic
		}
	}

	return "", SourceNone
}

func (r textRule) matches(text string) bool {
	if r.negation == "" {
		return r.pattern.MatchString(text)
	}
	for _, loc := range r.pattern.FindAllStringIndex(text, -1) {
		start := max(loc[0]-negationWindow, 0)
		if !strings.Contains(text[start:loc[0]], r.negation) {
			return true
		}
	}
	return false
}

func containsFold(list []string, s string) bool {
	s = strings.TrimSpace(s)
	for _, v := range list {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}

// synonyms lets a requested type match determined types that spell it differently.
var synonyms = map[string][]string{
	"full-time": {"full"},
	"part-time": {"part"},
	"contract":  {"contract", "freelance"},
}

// MatchesJobType reports whether a listing with the determined type passes a
// filter for the requested type. An empty request matches everything; an
// undetermined type never matches a non-empty request.
func MatchesJobType(determined, requested string) bool {
	requested = strings.ToLower(strings.TrimSpace(requested))
	if requested == "" {
		return true
	}
	determined = strings.ToLower(determined)
	if determined == "" {
		return false
	}
	if strings.Contains(determined, requested) {
		return true
	}
	for _, syn := range synonyms[requested] {
		if strings.Contains(determined, syn) {
			return true
		}
	}
	return false
}
