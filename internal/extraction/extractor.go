// Package extraction derives verifiable, rule-based facts from resume text:
// years of experience, skill vocabulary matches and domain keyword densities.
package extraction

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/jonathan/resume-ranker/internal/types"
)

var (
	yearsMentionPattern = regexp.MustCompile(`(\d+)\+?\s*(?:years?|yrs?)`)
	dateRangePattern    = regexp.MustCompile(`(\d{4})\s*[-–—]\s*(\d{4}|present)`)
)

// minRangeStartYear filters out date ranges that are almost certainly
// education or too old to matter for the role's experience window.
const minRangeStartYear = 2010

// densityScale converts raw keyword density into a 0-1 score; densities at
// or above 10% of the text saturate.
const densityScale = 10.0

// Extractor produces FactBundles from resume text against a fixed skill
// taxonomy. It is safe for concurrent use once constructed.
type Extractor struct {
	taxonomy      types.SkillTaxonomy
	requiredRe    map[string]*regexp.Regexp
	preferredRe   map[string]*regexp.Regexp
	degreeFieldRe []*regexp.Regexp
	currentYear   int
}

// NewExtractor compiles word-boundary matchers for every skill in the
// taxonomy. The required vocabulary must be non-empty.
func NewExtractor(taxonomy types.SkillTaxonomy) (*Extractor, error) {
	if len(taxonomy.Required) == 0 {
		return nil, fmt.Errorf("required skill vocabulary is empty")
	}

	e := &Extractor{
		taxonomy:    taxonomy,
		requiredRe:  make(map[string]*regexp.Regexp, len(taxonomy.Required)),
		preferredRe: make(map[string]*regexp.Regexp, len(taxonomy.Preferred)),
		currentYear: time.Now().Year(),
	}
	for _, skill := range taxonomy.Required {
		e.requiredRe[skill] = wordBoundaryPattern(skill)
	}
	for _, skill := range taxonomy.Preferred {
		e.preferredRe[skill] = wordBoundaryPattern(skill)
	}
	for _, field := range taxonomy.DegreeFields {
		e.degreeFieldRe = append(e.degreeFieldRe, wordBoundaryPattern(field))
	}

	return e, nil
}

func wordBoundaryPattern(term string) *regexp.Regexp {
	return regexp.MustCompile(`\b` + regexp.QuoteMeta(strings.ToLower(term)) + `\b`)
}

// Extract builds the full fact bundle for one resume. The returned bundle
// satisfies the partition invariant: every required skill appears in exactly
// one of MatchedRequired and MissingRequired.
func (e *Extractor) Extract(text string) *types.FactBundle {
	textLower := strings.ToLower(text)

	matchedRequired := make([]string, 0, len(e.taxonomy.Required))
	missingRequired := make([]string, 0, len(e.taxonomy.Required))
	for _, skill := range e.taxonomy.Required {
		if e.requiredRe[skill].MatchString(textLower) {
			matchedRequired = append(matchedRequired, skill)
		} else {
			missingRequired = append(missingRequired, skill)
		}
	}
	sort.Strings(matchedRequired)
	sort.Strings(missingRequired)

	matchedPreferred := make([]string, 0, len(e.taxonomy.Preferred))
	for _, skill := range e.taxonomy.Preferred {
		if e.preferredRe[skill].MatchString(textLower) {
			matchedPreferred = append(matchedPreferred, skill)
		}
	}
	sort.Strings(matchedPreferred)

	return &types.FactBundle{
		YearsExperience:    e.extractYears(textLower),
		MatchedRequired:    matchedRequired,
		MissingRequired:    missingRequired,
		MatchedPreferred:   matchedPreferred,
		AIRelevance:        keywordDensity(textLower, e.taxonomy.AIKeywords),
		SupportRelevance:   keywordDensity(textLower, e.taxonomy.SupportKeywords),
		EducationRelevance: e.educationRelevance(textLower),
	}
}

// extractYears runs two heuristics and keeps the larger result: explicit
// "N years" mentions, and summed durations of post-2010 date ranges.
func (e *Extractor) extractYears(textLower string) float64 {
	var fromMention float64
	for _, m := range yearsMentionPattern.FindAllStringSubmatch(textLower, -1) {
		if n, err := strconv.Atoi(m[1]); err == nil {
			fromMention = math.Max(fromMention, float64(n))
		}
	}

	var fromRanges float64
	for _, m := range dateRangePattern.FindAllStringSubmatch(textLower, -1) {
		start, err := strconv.Atoi(m[1])
		if err != nil || start < minRangeStartYear {
			continue
		}
		end := e.currentYear
		if m[2] != "present" {
			if end, err = strconv.Atoi(m[2]); err != nil {
				continue
			}
		}
		if end > start {
			fromRanges += float64(end - start)
		}
	}

	return math.Max(fromMention, fromRanges)
}

// keywordDensity scores how much of the text is made of domain keywords.
// Matching is substring based, so "troubleshooting" hits the "troubleshoot"
// keyword and multi-word keywords like "machine learning" match whole.
func keywordDensity(textLower string, keywords []string) float64 {
	words := strings.Fields(textLower)
	if len(words) == 0 || len(keywords) == 0 {
		return 0
	}

	count := 0
	for _, kw := range keywords {
		count += strings.Count(textLower, kw)
	}

	score := math.Min(float64(count)/float64(len(words))*densityScale, 1.0)
	return round3(score)
}

// educationRelevance is categorical: 1.0 when a configured degree field
// appears, 0.5 when any degree is mentioned, 0 otherwise.
func (e *Extractor) educationRelevance(textLower string) float64 {
	for _, re := range e.degreeFieldRe {
		if re.MatchString(textLower) {
			return 1.0
		}
	}
	for _, degree := range []string{"bachelor", "master", "phd", "b.s.", "m.s.", "b.tech", "m.tech"} {
		if strings.Contains(textLower, degree) {
			return 0.5
		}
	}
	return 0
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
