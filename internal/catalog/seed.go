// internal/catalog/seed.go
//
// Starter catalog loading.
//
// Behavior (LoadSeed):
//  1. If path is set, read vehicles from that JSON file.
//  2. Otherwise fall back to the small embedded default in assets.
//
// Entries that fail validation are dropped so a bad seed never produces
// unplayable rounds.

package catalog

import (
	"errors"
	"os"

	"github.com/robalobadob/taillight/assets"
)

// LoadSeed returns the seed vehicles, validated and with ids assigned.
func LoadSeed(path string) ([]Vehicle, error) {
	var blob []byte
	var err error
	if path != "" {
		blob, err = os.ReadFile(path)
	} else {
		blob, err = assets.SeedVehicles()
	}
	if err != nil {
		return nil, err
	}

	c := New(nil)
	for _, v := range Decode(string(blob)) {
		_, _ = c.Add(v)
	}
	if c.Len() == 0 {
		return nil, errors.New("catalog: seed contains no valid vehicles")
	}
	return c.List(), nil
}
