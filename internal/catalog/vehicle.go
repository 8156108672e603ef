// internal/catalog/vehicle.go
//
// Vehicle definition and entry validation.
// A vehicle is playable once it has a name, a base photo and a reveal mask.
// Photo and mask are opaque references (URIs or data URIs); nothing in the
// core interprets them.

package catalog

import (
	"errors"
	"strings"
)

// Vehicle is one playable catalog entry.
type Vehicle struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`         // Canonical name, e.g. "Volkswagen Golf MK7".
	Brand        string   `json:"brand"`        // Free text, display only.
	Model        string   `json:"model"`        // Free text, display only.
	Photo        string   `json:"photoData"`    // Base image reference.
	Mask         string   `json:"maskData"`     // Reveal mask reference.
	Alternatives []string `json:"alternatives"` // Accepted alternative names.
}

// Playable reports whether v can be used for a round.
func (v Vehicle) Playable() bool {
	return strings.TrimSpace(v.Name) != "" && v.Photo != "" && v.Mask != ""
}

// ErrValidation is matched by every *ValidationError via errors.Is.
var ErrValidation = errors.New("invalid vehicle")

// ValidationError lists the required fields a vehicle entry is missing.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "invalid vehicle: missing " + strings.Join(e.Fields, ", ")
}

// Is lets errors.Is(err, ErrValidation) succeed.
func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// Validate checks the fields required for an entry to be saved.
// Alternatives may be empty.
func Validate(v Vehicle) error {
	var missing []string
	if strings.TrimSpace(v.Name) == "" {
		missing = append(missing, "name")
	}
	if v.Photo == "" {
		missing = append(missing, "photo")
	}
	if v.Mask == "" {
		missing = append(missing, "mask")
	}
	if len(missing) > 0 {
		return &ValidationError{Fields: missing}
	}
	return nil
}

// normalizeVehicle trims text fields and drops blank alternatives.
func normalizeVehicle(v Vehicle) Vehicle {
	v.Name = strings.TrimSpace(v.Name)
	v.Brand = strings.TrimSpace(v.Brand)
	v.Model = strings.TrimSpace(v.Model)
	v.Alternatives = cleanAlternatives(v.Alternatives)
	return v
}

func cleanAlternatives(in []string) []string {
	out := make([]string, 0, len(in))
	for _, a := range in {
		if a = strings.TrimSpace(a); a != "" {
			out = append(out, a)
		}
	}
	return out
}

// ParseAlternatives splits a comma-separated list as typed in the editor.
func ParseAlternatives(csv string) []string {
	return cleanAlternatives(strings.Split(csv, ","))
}
