package graph

import "testing"

func TestNormalizeType(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"Person", TypePerson},
		{"PERSON", TypePerson},
		{"claimant", TypePerson},
		{"insurance agent", TypePerson},
		{"Company", TypeOrganization},
		{"insurer", TypeOrganization},
		{"law firm", TypeOrganization},
		{"City", TypeLocation},
		{"street address", TypeLocation},
		{"Accident", TypeEvent},
		{"incident report", TypeEvent},
		{"Date", TypeTime},
		{"time period", TypeTime},
		{"policy", TypeAccount},
		{"bank account", TypeAccount},
		{"claim", TypeClaim},
		{"Car", TypeVehicle},
		{"pickup truck", TypeVehicle},
		{"branch office", TypeBranch},
		{"department", TypeBranch},
		{"", TypeConcept},
		{"   ", TypeConcept},
		{"widget", TypeConcept},
		{"Concept", TypeConcept},
	}

	for _, c := range cases {
		if got := NormalizeType(c.raw); got != c.want {
			t.Fatalf("NormalizeType(%q) = %q, want %q", c.raw, got, c.want)
		}
	}
}

func TestNormalizeKeyPart(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Alice Smith", "alice smith"},
		{"  Alice   Smith  ", "alice smith"},
		{"O'Brien & Sons, Ltd.", "obrien sons ltd"},
		{"ACME-Corp", "acmecorp"},
		{"Policy #12345", "policy 12345"},
		{"", ""},
	}

	for _, c := range cases {
		if got := normalizeKeyPart(c.in); got != c.want {
			t.Fatalf("normalizeKeyPart(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestResolutionKeyVariantsCollide(t *testing.T) {
	a := resolutionKey(TypePerson, "Alice Smith")
	b := resolutionKey(TypePerson, "  alice   SMITH ")
	if a != b {
		t.Fatalf("expected label variants to share a key: %q vs %q", a, b)
	}

	c := resolutionKey(TypeOrganization, "Alice Smith")
	if a == c {
		t.Fatal("expected different types to produce different keys")
	}
}
