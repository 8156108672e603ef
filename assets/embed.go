package assets

import (
	"embed"
	"io/fs"
)

//go:embed migrations/*.sql seed/vehicles.json
var FS embed.FS

// Migrations exposes the SQL migration files, rooted at the migrations dir.
func Migrations() fs.FS {
	sub, err := fs.Sub(FS, "migrations")
	if err != nil {
		// The directory is embedded above; Sub only fails on invalid paths.
		panic(err)
	}
	return sub
}

// SeedVehicles returns the embedded starter catalog blob.
func SeedVehicles() ([]byte, error) {
	return FS.ReadFile("seed/vehicles.json")
}
