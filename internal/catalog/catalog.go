// internal/catalog/catalog.go
//
// Ordered, index-addressed collection of vehicles.
//
// Characteristics:
//   - Entries are validated on Add/Update; invalid entries never land.
//   - Remove notifies registered listeners with the removed index so the
//     round engine can keep its index reference consistent.
//   - Not safe for concurrent use; the session owner serializes access.

package catalog

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrIndexOutOfRange is returned for indexes that do not address a vehicle.
var ErrIndexOutOfRange = errors.New("vehicle index out of range")

// RemoveListener is told which index was removed, after removal.
type RemoveListener interface {
	VehicleRemoved(index int)
}

// Catalog holds the vehicles in insertion order.
type Catalog struct {
	vehicles  []Vehicle
	listeners []RemoveListener
}

// New constructs a catalog holding vs (not validated; used for loading).
// Entries without an id, or repeating an earlier one, get a fresh id.
func New(vs []Vehicle) *Catalog {
	c := &Catalog{vehicles: make([]Vehicle, 0, len(vs))}
	for _, v := range vs {
		if v.ID == "" || c.IndexOf(v.ID) >= 0 {
			v.ID = uuid.NewString()
		}
		c.vehicles = append(c.vehicles, v)
	}
	return c
}

// Subscribe registers l for removal notifications.
func (c *Catalog) Subscribe(l RemoveListener) {
	c.listeners = append(c.listeners, l)
}

// Add validates v, assigns an id if it has none (or one already in use),
// and appends it.
func (c *Catalog) Add(v Vehicle) (Vehicle, error) {
	v = normalizeVehicle(v)
	if err := Validate(v); err != nil {
		return Vehicle{}, err
	}
	if v.ID == "" || c.IndexOf(v.ID) >= 0 {
		v.ID = uuid.NewString()
	}
	c.vehicles = append(c.vehicles, v)
	return v, nil
}

// Update validates v and replaces the vehicle at index. The stored id is
// always kept.
func (c *Catalog) Update(index int, v Vehicle) (Vehicle, error) {
	if err := c.check(index); err != nil {
		return Vehicle{}, err
	}
	v = normalizeVehicle(v)
	if err := Validate(v); err != nil {
		return Vehicle{}, err
	}
	v.ID = c.vehicles[index].ID
	c.vehicles[index] = v
	return v, nil
}

// Remove deletes the vehicle at index and notifies listeners.
func (c *Catalog) Remove(index int) (Vehicle, error) {
	if err := c.check(index); err != nil {
		return Vehicle{}, err
	}
	removed := c.vehicles[index]
	c.vehicles = append(c.vehicles[:index:index], c.vehicles[index+1:]...)
	for _, l := range c.listeners {
		l.VehicleRemoved(index)
	}
	return removed, nil
}

// At returns the vehicle at index.
func (c *Catalog) At(index int) (Vehicle, error) {
	if err := c.check(index); err != nil {
		return Vehicle{}, err
	}
	return c.vehicles[index], nil
}

// IndexOf returns the position of the vehicle with id, or -1.
func (c *Catalog) IndexOf(id string) int {
	for i, v := range c.vehicles {
		if v.ID == id {
			return i
		}
	}
	return -1
}

// List returns a copy of the vehicles in order.
func (c *Catalog) List() []Vehicle {
	return append([]Vehicle(nil), c.vehicles...)
}

// Len reports the number of vehicles.
func (c *Catalog) Len() int { return len(c.vehicles) }

// Reset drops every vehicle. Listeners are not notified; callers resetting
// the catalog reset the session too.
func (c *Catalog) Reset() { c.vehicles = nil }

func (c *Catalog) check(index int) error {
	if index < 0 || index >= len(c.vehicles) {
		return fmt.Errorf("%w: %d", ErrIndexOutOfRange, index)
	}
	return nil
}
