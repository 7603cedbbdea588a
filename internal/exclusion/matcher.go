package exclusion

import (
	"regexp"
	"strings"
)

// RuleSet holds compiled branch exclusion rules: exact names plus wildcard
// patterns in configured order. '*' is the only metacharacter and matches
// any sequence of characters, including the empty string and '/'.
type RuleSet struct {
	literals map[string]bool
	patterns []*regexp.Regexp
}

// Compile parses a comma-separated exclusion list into a RuleSet. Entries
// are trimmed, empty entries dropped, and each entry is either a literal
// (no '*') or a wildcard pattern. There are no error cases: only '*' is
// special, so every entry compiles.
func Compile(ruleText string) *RuleSet {
	rs := &RuleSet{literals: make(map[string]bool)}
	for _, entry := range strings.Split(ruleText, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		if !strings.Contains(entry, "*") {
			rs.literals[entry] = true
			continue
		}
		rs.patterns = append(rs.patterns, compilePattern(entry))
	}
	return rs
}

// compilePattern anchors the glob at both ends so it must match the whole
// branch name, not a substring.
func compilePattern(glob string) *regexp.Regexp {
	parts := strings.Split(glob, "*")
	for i, p := range parts {
		parts[i] = regexp.QuoteMeta(p)
	}
	return regexp.MustCompile("^" + strings.Join(parts, ".*") + "$")
}

// Matches reports whether the branch name is excluded: present in the
// literal set, or fully matched by a pattern. Patterns are checked in
// configured order and short-circuit on the first match.
func (rs *RuleSet) Matches(name string) bool {
	if rs == nil {
		return false
	}
	if rs.literals[name] {
		return true
	}
	for _, p := range rs.patterns {
		if p.MatchString(name) {
			return true
		}
	}
	return false
}

// Empty reports whether the rule set contains no rules at all.
func (rs *RuleSet) Empty() bool {
	return rs == nil || (len(rs.literals) == 0 && len(rs.patterns) == 0)
}
