// Package matcher resolves legacy free-text pathway names to canonical
// pathways using ordered literal rules. It does no similarity scoring.
package matcher

import (
	"strings"

	"github.com/alexanderramin/pathfinder/internal/domain"
)

// Rule identifies which tier of the matcher produced a hit.
type Rule string

const (
	RuleNone         Rule = ""
	RuleExactID      Rule = "exact_id"
	RuleAlias        Rule = "alias"
	RuleSpecialty    Rule = "specialty"
	RuleNameContains Rule = "name_contains"
)

// Match is the outcome of a fuzzy lookup. Trigger holds the literal that
// fired the rule (alias trigger, specialty keyword or pathway name). Rule may
// be set with a nil Pathway when the rule's target is not in the registry.
type Match struct {
	Pathway *domain.PathwayDefinition
	Rule    Rule
	Trigger string
}

// Found reports whether a pathway was matched.
func (m Match) Found() bool {
	return m.Pathway != nil
}

// Normalize lowercases and trims a free-text name.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Find resolves name against pathways. Rules are tried in order and the
// first rule that fires decides the outcome:
//  1. name equals a pathway id
//  2. legacy alias substrings
//  3. specialty-dependent mapping for generic specialty-training names
//  4. pathway name and input contain one another
//
// An alias or specialty keyword that fires on a target missing from pathways
// ends the search. The returned Match then carries Rule and Trigger but no
// Pathway, and later rules are not consulted.
func Find(pathways []domain.PathwayDefinition, name, specialty string) Match {
	for i := range pathways {
		if pathways[i].ID == name && name != "" {
			return Match{Pathway: &pathways[i], Rule: RuleExactID, Trigger: name}
		}
	}

	n := Normalize(name)
	if n == "" {
		return Match{}
	}

	for _, a := range legacyAliases {
		if strings.Contains(n, a.trigger) {
			return Match{Pathway: byID(pathways, a.pathwayID), Rule: RuleAlias, Trigger: a.trigger}
		}
	}

	if containsAny(n, specialtyTriggers) {
		if id, keyword := specialtyPathwayID(n, Normalize(specialty)); id != "" {
			return Match{Pathway: byID(pathways, id), Rule: RuleSpecialty, Trigger: keyword}
		}
	}

	for i := range pathways {
		pn := strings.ToLower(pathways[i].Name)
		if pn == "" {
			continue
		}
		if strings.Contains(pn, n) || strings.Contains(n, pn) {
			return Match{Pathway: &pathways[i], Rule: RuleNameContains, Trigger: pathways[i].Name}
		}
	}

	return Match{}
}

// specialtyPathwayID picks the pathway id for a specialty-training name.
func specialtyPathwayID(name, specialty string) (id, keyword string) {
	if specialty == "" {
		return "", ""
	}
	for _, rule := range specialtyRules {
		kw, ok := firstContained(specialty, rule.keywords)
		if !ok {
			continue
		}
		if rule.runThroughID != "" && !containsAny(name, higherPhrases) && containsAny(name, runThroughPhrases) {
			return rule.runThroughID, kw
		}
		return rule.pathwayID, kw
	}
	return "", ""
}

func byID(pathways []domain.PathwayDefinition, id string) *domain.PathwayDefinition {
	for i := range pathways {
		if pathways[i].ID == id {
			return &pathways[i]
		}
	}
	return nil
}

func containsAny(s string, subs []string) bool {
	_, ok := firstContained(s, subs)
	return ok
}

func firstContained(s string, subs []string) (string, bool) {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return sub, true
		}
	}
	return "", false
}
