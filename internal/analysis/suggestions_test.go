package analysis

import (
	"reflect"
	"testing"
)

func TestParseSuggestionsStructuredJSON(t *testing.T) {
	raw := `["Add a README to your main project", "Deploy one project publicly"]`
	got := parseSuggestions(raw)
	want := []string{"Add a README to your main project", "Deploy one project publicly"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("parseSuggestions = %v, want %v", got, want)
	}
}

func TestParseSuggestionsCodeFencedJSON(t *testing.T) {
	raw := "```json\n[\"Write tests for your flagship repository\"]\n```"
	got := parseSuggestions(raw)
	if len(got) != 1 || got[0] != "Write tests for your flagship repository" {
		t.Fatalf("parseSuggestions = %v", got)
	}
}

func TestParseSuggestionsWrappedObject(t *testing.T) {
	raw := `{"suggestions": ["Pin your best repositories on your profile"]}`
	got := parseSuggestions(raw)
	if len(got) != 1 || got[0] != "Pin your best repositories on your profile" {
		t.Fatalf("parseSuggestions = %v", got)
	}
}

func TestParseSuggestionsFreeTextLines(t *testing.T) {
	raw := "- Add project write-ups to your portfolio\n* Link a live demo for each project\n3. Keep your commit history active"
	got := parseSuggestions(raw)
	want := []string{
		"Add project write-ups to your portfolio",
		"Link a live demo for each project",
		"Keep your commit history active",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("parseSuggestions = %v, want %v", got, want)
	}
}

func TestParseSuggestionsDropsShortEntries(t *testing.T) {
	raw := `["ok", "yes", "Expand your portfolio with recent work"]`
	got := parseSuggestions(raw)
	if len(got) != 1 {
		t.Fatalf("parseSuggestions = %v, want short entries dropped", got)
	}
}

func TestParseSuggestionsCapsAtFive(t *testing.T) {
	raw := `["Suggestion number one here", "Suggestion number two here", "Suggestion number three here",
		"Suggestion number four here", "Suggestion number five here", "Suggestion number six here"]`
	got := parseSuggestions(raw)
	if len(got) != 5 {
		t.Fatalf("got %d suggestions, want cap of 5", len(got))
	}
}

func TestParseSuggestionsGarbageYieldsEmpty(t *testing.T) {
	for _, raw := range []string{"", "```\n```", "ok", "too short"} {
		got := parseSuggestions(raw)
		if len(got) != 0 {
			t.Fatalf("parseSuggestions(%q) = %v, want empty", raw, got)
		}
	}
}

func TestTrimBullet(t *testing.T) {
	cases := map[string]string{
		"- dashed item":    "dashed item",
		"* starred item":   "starred item",
		"12. numbered":     "numbered",
		"2) parenthesized": "parenthesized",
		"plain line":       "plain line",
		"2026 a year-led line": "2026 a year-led line",
	}
	for input, want := range cases {
		if got := trimBullet(input); got != want {
			t.Fatalf("trimBullet(%q) = %q, want %q", input, got, want)
		}
	}
}
