package game

import (
	"reflect"
	"testing"

	"github.com/robalobadob/taillight/internal/catalog"
)

var golf = catalog.Vehicle{
	ID:           "golf",
	Name:         "Volkswagen Golf MK7",
	Photo:        "p",
	Mask:         "m",
	Alternatives: []string{"Volkswagen Golf", "VW Golf"},
}

func TestIsMatch(t *testing.T) {
	tests := []struct {
		guess string
		want  bool
	}{
		{"Volkswagen Golf MK7", true},
		{"  volkswagen golf mk7 ", true},
		{"GOLF", true},         // contained in an alternative
		{"my vw golf r", true}, // contains an alternative
		{"Polo", false},
		{"", false},
		{"   ", false},
	}
	for _, tt := range tests {
		if got := IsMatch(tt.guess, golf); got != tt.want {
			t.Errorf("IsMatch(%q) = %v, want %v", tt.guess, got, tt.want)
		}
	}
}

func TestIsMatchIgnoresBlankAlternatives(t *testing.T) {
	v := catalog.Vehicle{Name: "Audi A4", Alternatives: []string{"", "  "}}
	if IsMatch("anything", v) {
		t.Fatal("blank alternative matched an unrelated guess")
	}
}

func TestSuggest(t *testing.T) {
	vs := []catalog.Vehicle{
		golf,
		{Name: "Golf Cart", Alternatives: []string{"VW Golf"}},
		{Name: "Audi A4", Alternatives: []string{"A4"}},
	}

	if got := Suggest("", vs); got != nil {
		t.Errorf("Suggest(\"\") = %v, want nil", got)
	}

	got := Suggest("golf", vs)
	want := []string{"Volkswagen Golf MK7", "Volkswagen Golf", "VW Golf", "Golf Cart"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Suggest(golf) = %v, want %v", got, want)
	}

	if got := Suggest("zzz", vs); len(got) != 0 {
		t.Errorf("Suggest(zzz) = %v, want empty", got)
	}
}

func TestSuggestLimit(t *testing.T) {
	var vs []catalog.Vehicle
	for _, n := range []string{"Car A", "Car B", "Car C", "Car D", "Car E", "Car F"} {
		vs = append(vs, catalog.Vehicle{Name: n})
	}
	if got := Suggest("car", vs); len(got) != maxSuggestions {
		t.Fatalf("len = %d, want %d", len(got), maxSuggestions)
	}
}
