package router

import (
	"fmt"
	"strings"
)

type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

type FindingKind string

const (
	FindingDuplicate      FindingKind = "duplicate"
	FindingShadowed       FindingKind = "shadowed"
	FindingOverlap        FindingKind = "overlap"
	FindingDuplicateParam FindingKind = "duplicate-param"
	FindingEmptyParam     FindingKind = "empty-param"
	FindingEmptySegment   FindingKind = "empty-segment"
)

// Finding describes one problem with a route table. Index is the position of
// the offending pattern; Other is the earlier pattern involved, or -1.
type Finding struct {
	Kind     FindingKind
	Severity Severity
	Index    int
	Other    int
	Pattern  string
	Message  string
}

func (f Finding) String() string {
	return fmt.Sprintf("%s: %s: %s", f.Severity, f.Pattern, f.Message)
}

// Lint checks patterns in registration order. Because the first match wins,
// a later pattern covered by an earlier one is unreachable, and a pair that
// can both match one path resolves by order alone.
func Lint(patterns []string) []Finding {
	var findings []Finding
	split := make([][]string, len(patterns))

	for i, pattern := range patterns {
		split[i] = splitPath(pattern)
		findings = append(findings, lintPattern(i, pattern, split[i])...)

		for j := 0; j < i; j++ {
			if len(split[j]) != len(split[i]) {
				continue
			}
			switch relate(split[j], split[i]) {
			case relationEqual:
				findings = append(findings, Finding{
					Kind:     FindingDuplicate,
					Severity: SeverityError,
					Index:    i,
					Other:    j,
					Pattern:  pattern,
					Message:  fmt.Sprintf("duplicates %q registered earlier", patterns[j]),
				})
			case relationCovers:
				findings = append(findings, Finding{
					Kind:     FindingShadowed,
					Severity: SeverityError,
					Index:    i,
					Other:    j,
					Pattern:  pattern,
					Message:  fmt.Sprintf("never matches, %q registered earlier matches every path it does", patterns[j]),
				})
			case relationOverlaps:
				findings = append(findings, Finding{
					Kind:     FindingOverlap,
					Severity: SeverityWarning,
					Index:    i,
					Other:    j,
					Pattern:  pattern,
					Message:  fmt.Sprintf("overlaps %q, registration order decides which one wins", patterns[j]),
				})
			}
		}
	}

	return findings
}

// HasErrors reports whether any finding has error severity.
func HasErrors(findings []Finding) bool {
	for _, f := range findings {
		if f.Severity == SeverityError {
			return true
		}
	}
	return false
}

func lintPattern(index int, pattern string, segments []string) []Finding {
	var findings []Finding

	trimmed := strings.Trim(pattern, "/")
	if strings.Contains(trimmed, "//") {
		findings = append(findings, Finding{
			Kind:     FindingEmptySegment,
			Severity: SeverityWarning,
			Index:    index,
			Other:    -1,
			Pattern:  pattern,
			Message:  "contains an empty segment, which is ignored when matching",
		})
	}

	seen := make(map[string]bool)
	for _, seg := range segments {
		if !strings.HasPrefix(seg, ":") {
			continue
		}
		name := seg[1:]
		if name == "" {
			findings = append(findings, Finding{
				Kind:     FindingEmptyParam,
				Severity: SeverityError,
				Index:    index,
				Other:    -1,
				Pattern:  pattern,
				Message:  "has a parameter with no name",
			})
			continue
		}
		if seen[name] {
			findings = append(findings, Finding{
				Kind:     FindingDuplicateParam,
				Severity: SeverityError,
				Index:    index,
				Other:    -1,
				Pattern:  pattern,
				Message:  fmt.Sprintf("captures %q more than once, the last segment wins", name),
			})
		}
		seen[name] = true
	}

	return findings
}

type relation int

const (
	relationDisjoint relation = iota
	relationEqual
	relationCovers
	relationOverlaps
)

// relate compares an earlier pattern a with a later pattern b of the same
// length.
func relate(a, b []string) relation {
	equal := true
	covers := true
	for i := range a {
		aParam := strings.HasPrefix(a[i], ":")
		bParam := strings.HasPrefix(b[i], ":")
		switch {
		case aParam && bParam:
		case aParam:
			equal = false
		case bParam:
			equal = false
			covers = false
		case a[i] != b[i]:
			return relationDisjoint
		}
	}

	if equal {
		return relationEqual
	}
	if covers {
		return relationCovers
	}
	return relationOverlaps
}
