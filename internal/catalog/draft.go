package catalog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

var (
	// ErrDraftNotFound is returned for unknown, discarded or expired draft ids.
	ErrDraftNotFound = errors.New("draft not found")
	// ErrVehicleRemoved is returned when committing an edit whose vehicle
	// was deleted after the draft was opened.
	ErrVehicleRemoved = errors.New("edited vehicle was removed")
)

// ImageField selects which image of a draft an upload fills.
type ImageField string

const (
	FieldPhoto ImageField = "photo"
	FieldMask  ImageField = "mask"
)

// ParseImageField maps "photo"/"mask" (any case) to an ImageField.
func ParseImageField(s string) (ImageField, error) {
	switch f := ImageField(strings.ToLower(strings.TrimSpace(s))); f {
	case FieldPhoto, FieldMask:
		return f, nil
	}
	return "", fmt.Errorf("unknown image field %q", s)
}

// Draft is a vehicle being edited. Target is empty for a new vehicle,
// otherwise the id of the vehicle it replaces on commit. Edits refer to
// their vehicle by id, so removals elsewhere in the catalog cannot retarget
// them.
type Draft struct {
	ID      string  `json:"id"`
	Target  string  `json:"target,omitempty"`
	Vehicle Vehicle `json:"vehicle"`
}

// IsNew reports whether committing d adds a vehicle.
func (d Draft) IsNew() bool { return d.Target == "" }

// DraftEdit carries editor text fields; nil fields are left unchanged.
// Alternatives, when set, is the comma-separated editor text.
type DraftEdit struct {
	Name         *string `json:"name,omitempty"`
	Brand        *string `json:"brand,omitempty"`
	Model        *string `json:"model,omitempty"`
	Alternatives *string `json:"alternatives,omitempty"`
}

// NewDraft opens a blank draft.
func NewDraft() Draft {
	return Draft{ID: uuid.NewString(), Vehicle: Vehicle{ID: uuid.NewString()}}
}

// EditDraft opens a draft over the vehicle at index.
func (c *Catalog) EditDraft(index int) (Draft, error) {
	v, err := c.At(index)
	if err != nil {
		return Draft{}, err
	}
	v.Alternatives = append([]string(nil), v.Alternatives...)
	return Draft{ID: uuid.NewString(), Target: v.ID, Vehicle: v}, nil
}

// Apply merges text edits into the draft.
func (d *Draft) Apply(e DraftEdit) {
	if e.Name != nil {
		d.Vehicle.Name = *e.Name
	}
	if e.Brand != nil {
		d.Vehicle.Brand = *e.Brand
	}
	if e.Model != nil {
		d.Vehicle.Model = *e.Model
	}
	if e.Alternatives != nil {
		d.Vehicle.Alternatives = ParseAlternatives(*e.Alternatives)
	}
}

// SetImage stores a fully read image reference in the draft.
func (d *Draft) SetImage(field ImageField, ref string) {
	switch field {
	case FieldPhoto:
		d.Vehicle.Photo = ref
	case FieldMask:
		d.Vehicle.Mask = ref
	}
}

// Commit validates the draft and adds or updates it. An edit is applied to
// wherever its vehicle currently sits. It returns the saved vehicle and its
// index.
func (c *Catalog) Commit(d Draft) (Vehicle, int, error) {
	if d.IsNew() {
		v, err := c.Add(d.Vehicle)
		if err != nil {
			return Vehicle{}, -1, err
		}
		return v, c.Len() - 1, nil
	}
	idx := c.IndexOf(d.Target)
	if idx < 0 {
		return Vehicle{}, -1, ErrVehicleRemoved
	}
	v, err := c.Update(idx, d.Vehicle)
	if err != nil {
		return Vehicle{}, idx, err
	}
	return v, idx, nil
}
