package score

import (
	"math"
	"regexp"
	"strings"
)

// sections are the required headings of a well-formed paper, matched as
// literal strings.
var sections = []string{
	"## Abstract",
	"## Introduction",
	"## Methodology",
	"## Results",
	"## Discussion",
	"## Conclusion",
	"## References",
}

// stopWords are common long function words excluded from the abstract keyword
// set.
var stopWords = map[string]bool{
	"which": true, "their": true, "there": true, "these": true,
	"those": true, "where": true, "about": true, "after": true,
	"before": true, "during": true, "through": true, "between": true,
	"under": true, "above": true, "below": true, "while": true,
	"being": true, "using": true, "based": true, "with": true,
	"from": true,
}

var (
	refPattern     = regexp.MustCompile(`\[\d+\]`)
	keywordPattern = regexp.MustCompile(`\w{5,}`)
)

// Result is the outcome of scoring one paper. Score is normalized to [0,1]
// and Valid is the validation verdict submitted to the gateway.
type Result struct {
	Valid    bool    `json:"valid"`
	Score    float64 `json:"score"`
	Words    int     `json:"words"`
	Sections int     `json:"sections"`
	Refs     int     `json:"refs"`
}

// Occam computes the four-factor quality score of a paper's content. It is a
// pure function of the content: the same input always produces the same
// Result. The verdict gate is a total of 60 out of 100.
//
// The factors are section coverage (40), length (20), reference density (20),
// and abstract-conclusion coherence (20). A paper with no abstract keywords
// gets a flat coherence score of 10.
func Occam(content string) Result {
	present := 0
	for _, s := range sections {
		if strings.Contains(content, s) {
			present++
		}
	}
	sectionScore := float64(present) / 7 * 40

	words := len(strings.Fields(content))
	wordScore := math.Min(float64(words)/1500*20, 20)

	refs := len(refPattern.FindAllString(content, -1))
	refScore := math.Min(float64(refs)/3*20, 20)

	abstract := sectionText(content, "## Abstract")
	conclusion := sectionText(content, "## Conclusion")

	kws := keywords(abstract)
	coherenceScore := 10.0
	if len(kws) > 0 {
		matched := 0
		for _, k := range kws {
			if strings.Contains(conclusion, k) {
				matched++
			}
		}
		coherenceScore = float64(matched) / float64(len(kws)) * 20
	}

	total := sectionScore + wordScore + refScore + coherenceScore

	return Result{
		Valid:    total >= 60,
		Score:    math.Round(total/100*1000) / 1000,
		Words:    words,
		Sections: present,
		Refs:     refs,
	}
}

// sectionText extracts the lower-cased text under a heading, up to the next
// heading or the end of the document.
func sectionText(content, heading string) string {
	i := strings.Index(content, heading)
	if i < 0 {
		return ""
	}
	text := content[i+len(heading):]
	if j := strings.Index(text, "\n## "); j >= 0 {
		text = text[:j]
	}
	return strings.ToLower(strings.TrimSpace(text))
}

// keywords builds the deduplicated abstract keyword set: word tokens of
// length >= 5, stop words removed, capped at 20, in first-seen order.
func keywords(abstract string) []string {
	var kws []string
	seen := map[string]bool{}
	for _, w := range keywordPattern.FindAllString(abstract, -1) {
		if seen[w] || stopWords[w] {
			continue
		}
		seen[w] = true
		kws = append(kws, w)
		if len(kws) == 20 {
			break
		}
	}
	return kws
}
