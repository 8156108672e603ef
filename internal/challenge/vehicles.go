package challenge

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/taillight/internal/catalog"
)

// Vehicles returns the catalog in order.
func (c *Challenge) Vehicles() []catalog.Vehicle {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.catalog.List()
}

// AddVehicle validates and appends v, then persists the catalog. It
// returns the stored vehicle and its index.
func (c *Challenge) AddVehicle(ctx context.Context, v catalog.Vehicle) (catalog.Vehicle, int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	saved, err := c.catalog.Add(v)
	if err != nil {
		c.activity.Errorf("Vehicle rejected: %v", err)
		return catalog.Vehicle{}, -1, err
	}
	c.activity.Successf("Vehicle added: %s", saved.Name)
	c.catalogChanged(ctx)
	return saved, c.catalog.Len() - 1, nil
}

// UpdateVehicle validates v and replaces the vehicle at index.
func (c *Challenge) UpdateVehicle(ctx context.Context, index int, v catalog.Vehicle) (catalog.Vehicle, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	saved, err := c.catalog.Update(index, v)
	if err != nil {
		c.activity.Errorf("Vehicle rejected: %v", err)
		return catalog.Vehicle{}, err
	}
	c.activity.Successf("Vehicle updated: %s", saved.Name)
	c.catalogChanged(ctx)
	return saved, nil
}

// RemoveVehicle deletes the vehicle at index. The round engine is told
// through the catalog's remove listener.
func (c *Challenge) RemoveVehicle(ctx context.Context, index int) (catalog.Vehicle, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.activity.Infof("Delete clicked for vehicle %d", index)
	removed, err := c.catalog.Remove(index)
	if err != nil {
		return catalog.Vehicle{}, err
	}
	c.activity.Successf("Vehicle removed: %s (%d left)", removed.Name, c.catalog.Len())
	c.catalogChanged(ctx)
	return removed, nil
}

// catalogChanged is the catalog persistence checkpoint.
func (c *Challenge) catalogChanged(ctx context.Context) {
	c.persistVehicles(ctx)
	c.autoStart()
}

// openDraft is an editor draft and when it was last touched.
type openDraft struct {
	catalog.Draft
	touched time.Time
}

// OpenDraft starts an editor draft: blank when fromIndex < 0, otherwise a
// copy of the vehicle at fromIndex. Drafts idle for longer than draftTTL are
// dropped, and opening one past maxDrafts evicts the least recently used.
func (c *Challenge) OpenDraft(fromIndex int) (catalog.Draft, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	var d catalog.Draft
	if fromIndex < 0 {
		d = catalog.NewDraft()
		c.activity.Successf("New vehicle editor opened")
	} else {
		var err error
		if d, err = c.catalog.EditDraft(fromIndex); err != nil {
			return catalog.Draft{}, err
		}
		c.activity.Successf("Vehicle editor opened for: %s", d.Vehicle.Name)
	}
	c.pruneDrafts()
	for len(c.drafts) >= maxDrafts {
		c.evictOldestDraft()
	}
	c.drafts[d.ID] = &openDraft{Draft: d, touched: c.now()}
	return d, nil
}

// draft looks up an open draft and refreshes its age. c.mu must be held.
func (c *Challenge) draft(id string) (*openDraft, error) {
	c.pruneDrafts()
	d, ok := c.drafts[id]
	if !ok {
		return nil, catalog.ErrDraftNotFound
	}
	d.touched = c.now()
	return d, nil
}

func (c *Challenge) pruneDrafts() {
	cutoff := c.now().Add(-draftTTL)
	for id, d := range c.drafts {
		if d.touched.Before(cutoff) {
			delete(c.drafts, id)
			log.Debug().Str("draft", id).Msg("draft expired")
		}
	}
}

func (c *Challenge) evictOldestDraft() {
	var oldest string
	var at time.Time
	for id, d := range c.drafts {
		if oldest == "" || d.touched.Before(at) {
			oldest, at = id, d.touched
		}
	}
	delete(c.drafts, oldest)
	log.Debug().Str("draft", oldest).Msg("draft evicted")
}

// Draft returns the draft with id.
func (c *Challenge) Draft(id string) (catalog.Draft, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	d, err := c.draft(id)
	if err != nil {
		return catalog.Draft{}, err
	}
	return d.Draft, nil
}

// EditDraft applies text edits to a draft.
func (c *Challenge) EditDraft(id string, e catalog.DraftEdit) (catalog.Draft, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	d, err := c.draft(id)
	if err != nil {
		return catalog.Draft{}, err
	}
	d.Apply(e)
	return d.Draft, nil
}

// AttachImage reads r in the background and, once it is fully read, sets
// the draft's photo or mask in a single update. done is called exactly once
// with the updated draft or the error. Nothing is merged if ctx is done
// before the merge, and a draft discarded while the image was being read
// reports catalog.ErrDraftNotFound.
func (c *Challenge) AttachImage(ctx context.Context, id string, field catalog.ImageField, r io.Reader, done func(catalog.Draft, error)) {
	catalog.Ingest(ctx, r, c.maxImage, func(ref string, err error) {
		if err != nil {
			done(catalog.Draft{}, err)
			return
		}
		done(c.setImage(ctx, id, field, ref))
	})
}

// UploadImage is AttachImage for callers that own r only for the duration of
// the call: r is read on the calling goroutine.
func (c *Challenge) UploadImage(ctx context.Context, id string, field catalog.ImageField, r io.Reader) (catalog.Draft, error) {
	ref, err := catalog.ReadImage(r, c.maxImage)
	if err != nil {
		return catalog.Draft{}, err
	}
	return c.setImage(ctx, id, field, ref)
}

func (c *Challenge) setImage(ctx context.Context, id string, field catalog.ImageField, ref string) (catalog.Draft, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return catalog.Draft{}, err
	}
	d, err := c.draft(id)
	if err != nil {
		return catalog.Draft{}, err
	}
	d.SetImage(field, ref)
	return d.Draft, nil
}

// CommitDraft validates the draft and saves it into the catalog. A draft
// that fails validation stays open for correction; an edit whose vehicle
// has been removed is dropped.
func (c *Challenge) CommitDraft(ctx context.Context, id string) (catalog.Vehicle, int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	d, err := c.draft(id)
	if err != nil {
		return catalog.Vehicle{}, -1, err
	}
	v, idx, err := c.catalog.Commit(d.Draft)
	if errors.Is(err, catalog.ErrVehicleRemoved) {
		delete(c.drafts, id)
		c.activity.Errorf("Vehicle was removed before the edit was saved")
		return catalog.Vehicle{}, -1, err
	}
	if err != nil {
		c.activity.Errorf("Vehicle rejected: %v", err)
		return catalog.Vehicle{}, idx, err
	}
	delete(c.drafts, id)
	if d.IsNew() {
		c.activity.Successf("Vehicle added: %s", v.Name)
	} else {
		c.activity.Successf("Vehicle updated: %s", v.Name)
	}
	c.catalogChanged(ctx)
	return v, idx, nil
}

// DiscardDraft drops a draft without saving.
func (c *Challenge) DiscardDraft(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, err := c.draft(id); err != nil {
		return err
	}
	delete(c.drafts, id)
	return nil
}
