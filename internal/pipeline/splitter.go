package pipeline

import (
	"regexp"
	"strings"
)

// sectionHeading matches a numbered top-level heading such as "# 1. INTRODUCTION".
// The capture excludes the leading "# " and keeps the numeral and period.
var sectionHeading = regexp.MustCompile(`^# (\d+\. .+)$`)

// Section is one top-level division of a report.
type Section struct {
	Key  string // Heading text, e.g. "1. INTRODUCTION"
	Body string // Lines after the heading, joined by "\n"
}

// sectionAccumulator holds the state of a single forward scan.
type sectionAccumulator struct {
	key      string
	started  bool
	lines    []string
	sections []Section
	index    map[string]int
}

// commit stores the buffered body under the current key.
// A repeated key keeps its first position and takes the newest body.
func (a *sectionAccumulator) commit() {
	if !a.started {
		return
	}
	body := strings.Join(a.lines, "\n")
	if i, ok := a.index[a.key]; ok {
		a.sections[i].Body = body
		return
	}
	a.index[a.key] = len(a.sections)
	a.sections = append(a.sections, Section{Key: a.key, Body: body})
}

// SplitSections partitions a document into sections introduced by numbered
// top-level headings. Lines before the first heading are discarded. Headings
// of any other level stay in the body untouched.
//
// Sections are returned in the order their keys first appear. When a key
// occurs twice, the later body replaces the earlier one.
func SplitSections(doc string) []Section {
	acc := &sectionAccumulator{index: make(map[string]int)}

	for _, line := range strings.Split(doc, "\n") {
		if m := sectionHeading.FindStringSubmatch(line); m != nil {
			acc.commit()
			acc.key = m[1]
			acc.started = true
			acc.lines = acc.lines[:0]
			continue
		}
		if acc.started {
			acc.lines = append(acc.lines, line)
		}
	}
	acc.commit()

	return acc.sections
}

// SectionMap indexes sections by heading key.
func SectionMap(sections []Section) map[string]string {
	m := make(map[string]string, len(sections))
	for _, s := range sections {
		m[s.Key] = s.Body
	}
	return m
}
