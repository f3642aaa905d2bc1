package graph

import (
	"strings"
	"unicode"
)

// Canonical entity types. Extraction models return free-form type strings;
// NormalizeType folds them onto this set, with Concept as the catch-all.
const (
	TypePerson       = "Person"
	TypeOrganization = "Organization"
	TypeLocation     = "Location"
	TypeEvent        = "Event"
	TypeTime         = "Time"
	TypeAccount      = "Account"
	TypeClaim        = "Claim"
	TypeVehicle      = "Vehicle"
	TypeBranch       = "Branch"
	TypeConcept      = "Concept"
)

var typeKeywords = []struct {
	canonical string
	keywords  []string
}{
	{TypeEvent, []string{"event", "incident", "accident", "occurrence", "meeting"}},
	{TypeTime, []string{"time", "date", "year", "month", "period", "duration"}},
	{TypeBranch, []string{"branch", "office", "department", "division"}},
	{TypeOrganization, []string{"organization", "organisation", "company", "corporation", "business", "employer", "insurer", "agency", "firm"}},
	{TypePerson, []string{"person", "people", "individual", "customer", "client", "driver", "claimant", "adjuster", "agent"}},
	{TypeLocation, []string{"location", "place", "city", "state", "country", "address", "region"}},
	{TypeAccount, []string{"account", "policy"}},
	{TypeClaim, []string{"claim"}},
	{TypeVehicle, []string{"vehicle", "car", "truck", "automobile"}},
}

// NormalizeType maps a raw extracted type onto the canonical set.
// Unknown or empty types fall back to Concept.
func NormalizeType(raw string) string {
	lowered := strings.ToLower(strings.TrimSpace(raw))
	if lowered == "" {
		return TypeConcept
	}

	for _, rule := range typeKeywords {
		for _, kw := range rule.keywords {
			if strings.Contains(lowered, kw) {
				return rule.canonical
			}
		}
	}
	if lowered == "concept" {
		return TypeConcept
	}
	return TypeConcept
}

// normalizeKeyPart lowercases, trims, strips punctuation, and collapses
// whitespace so that label variants resolve to the same entity.
func normalizeKeyPart(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	lastSpace := true
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastSpace = false
		case unicode.IsSpace(r):
			if !lastSpace {
				b.WriteRune(' ')
				lastSpace = true
			}
		}
	}

	return strings.TrimRight(b.String(), " ")
}

// resolutionKey builds the identity key an entity resolves under:
// normalized type and normalized label, NUL-separated so the two parts
// cannot collide.
func resolutionKey(entityType, label string) string {
	return normalizeKeyPart(entityType) + "\x00" + normalizeKeyPart(label)
}
