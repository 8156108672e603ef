package catalog

import (
	"errors"
	"reflect"
	"testing"
)

func validVehicle(name string) Vehicle {
	return Vehicle{Name: name, Photo: "data:image/png;base64,AA==", Mask: "data:image/png;base64,AA=="}
}

type removals []int

func (r *removals) VehicleRemoved(index int) { *r = append(*r, index) }

func TestAddValidates(t *testing.T) {
	c := New(nil)
	_, err := c.Add(Vehicle{Name: "  ", Photo: "p"})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err = %v, want *ValidationError", err)
	}
	if want := []string{"name", "mask"}; !reflect.DeepEqual(verr.Fields, want) {
		t.Fatalf("Fields = %v, want %v", verr.Fields, want)
	}
	if !errors.Is(err, ErrValidation) {
		t.Fatal("errors.Is(err, ErrValidation) = false")
	}
	if c.Len() != 0 {
		t.Fatalf("invalid vehicle stored")
	}
}

func TestAddNormalizes(t *testing.T) {
	c := New(nil)
	v := validVehicle("  Audi A4 ")
	v.Alternatives = []string{" A4 ", "", "  "}
	got, err := c.Add(v)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if got.ID == "" {
		t.Error("no id assigned")
	}
	if got.Name != "Audi A4" {
		t.Errorf("Name = %q", got.Name)
	}
	if !reflect.DeepEqual(got.Alternatives, []string{"A4"}) {
		t.Errorf("Alternatives = %q", got.Alternatives)
	}
}

func TestUpdateKeepsID(t *testing.T) {
	c := New(nil)
	orig, _ := c.Add(validVehicle("Audi A4"))
	got, err := c.Update(0, validVehicle("Audi A4 B9"))
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got.ID != orig.ID || got.Name != "Audi A4 B9" {
		t.Fatalf("got %+v", got)
	}
	if _, err := c.Update(5, validVehicle("x")); !errors.Is(err, ErrIndexOutOfRange) {
		t.Fatalf("out of range: err = %v", err)
	}
}

func TestRemoveNotifies(t *testing.T) {
	c := New([]Vehicle{validVehicle("A"), validVehicle("B"), validVehicle("C")})
	var seen removals
	c.Subscribe(&seen)

	removed, err := c.Remove(1)
	if err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if removed.Name != "B" {
		t.Errorf("removed %q", removed.Name)
	}
	if !reflect.DeepEqual([]int(seen), []int{1}) {
		t.Errorf("listener saw %v", seen)
	}
	names := []string{}
	for _, v := range c.List() {
		names = append(names, v.Name)
	}
	if !reflect.DeepEqual(names, []string{"A", "C"}) {
		t.Errorf("remaining = %v", names)
	}
	if _, err := c.Remove(2); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("err = %v", err)
	}
	if len(seen) != 1 {
		t.Errorf("listener called for failed removal")
	}
}

func TestIDsAreUnique(t *testing.T) {
	a, b := validVehicle("A"), validVehicle("B")
	a.ID, b.ID = "same", "same"
	c := New([]Vehicle{a, b, validVehicle("C")})
	seen := map[string]bool{}
	for _, v := range c.List() {
		if v.ID == "" || seen[v.ID] {
			t.Fatalf("duplicate or empty id in %+v", c.List())
		}
		seen[v.ID] = true
	}
	if c.IndexOf("same") != 0 {
		t.Fatalf("IndexOf(same) = %d, want 0", c.IndexOf("same"))
	}

	added, err := c.Add(Vehicle{ID: "same", Name: "D", Photo: "p", Mask: "m"})
	if err != nil || added.ID == "same" {
		t.Fatalf("Add reused an id: %+v, %v", added, err)
	}
}

func TestListIsCopy(t *testing.T) {
	c := New([]Vehicle{validVehicle("A")})
	vs := c.List()
	vs[0].Name = "changed"
	if v, _ := c.At(0); v.Name != "A" {
		t.Fatalf("catalog mutated through List: %q", v.Name)
	}
}

func TestParseAlternatives(t *testing.T) {
	got := ParseAlternatives(" VW Golf, Golf ,, ")
	if want := []string{"VW Golf", "Golf"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("got %q, want %q", got, want)
	}
	if got := ParseAlternatives(""); len(got) != 0 {
		t.Fatalf("empty input gave %q", got)
	}
}
