package config

import (
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/secops-lab/incidentdesk/pkg/domain/types"
	"github.com/urfave/cli/v3"
)

// Catalog holds the CLI flag for the incident type catalog file. The catalog
// declares the builtin incident type set served alongside user-defined custom
// types; without a file the compiled-in defaults are used.
type Catalog struct {
	path string
}

// Flags returns CLI flags for catalog configuration
func (c *Catalog) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "catalog",
			Usage:       "Path to incident type catalog TOML file",
			Sources:     cli.EnvVars("INCIDENTDESK_CATALOG"),
			Destination: &c.path,
		},
	}
}

// CatalogConfig is the parsed incident type catalog
type CatalogConfig struct {
	IncidentTypes []IncidentTypeEntry `toml:"incident_type"`
}

// IncidentTypeEntry declares one builtin incident type
type IncidentTypeEntry struct {
	ID          string `toml:"id"`
	Name        string `toml:"name"`
	Description string `toml:"description"`
}

// Validate checks if the IncidentTypeEntry is valid
func (e *IncidentTypeEntry) Validate() error {
	if e.ID == "" {
		return goerr.New("incident type ID is required", goerr.V("name", e.Name))
	}
	if e.Name == "" {
		return goerr.New("incident type name is required", goerr.V("id", e.ID))
	}
	return nil
}

// Validate checks if the CatalogConfig is valid
func (c *CatalogConfig) Validate() error {
	ids := make(map[string]bool)
	for _, entry := range c.IncidentTypes {
		if err := entry.Validate(); err != nil {
			return goerr.Wrap(err, "invalid incident type entry")
		}
		if ids[entry.ID] {
			return goerr.New("duplicate incident type ID", goerr.V("id", entry.ID))
		}
		ids[entry.ID] = true
	}
	return nil
}

// TypeIDs returns the catalog entries as incident type identifiers
func (c *CatalogConfig) TypeIDs() []string {
	ids := make([]string, len(c.IncidentTypes))
	for i, entry := range c.IncidentTypes {
		ids[i] = entry.ID
	}
	return ids
}

// LoadCatalog loads and validates an incident type catalog from a TOML file
func LoadCatalog(path string) (*CatalogConfig, error) {
	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read catalog file", goerr.V("path", path))
	}

	var catalog CatalogConfig
	if err := toml.Unmarshal(data, &catalog); err != nil {
		return nil, goerr.Wrap(err, "failed to parse TOML catalog", goerr.V("path", path))
	}

	if err := catalog.Validate(); err != nil {
		return nil, goerr.Wrap(err, "catalog validation failed", goerr.V("path", path))
	}

	return &catalog, nil
}

// Configure loads the catalog file when a path is set and falls back to the
// compiled-in builtin set otherwise.
func (c *Catalog) Configure() (*CatalogConfig, error) {
	if c.path == "" {
		builtin := types.BuiltinIncidentTypes()
		entries := make([]IncidentTypeEntry, len(builtin))
		for i, t := range builtin {
			entries[i] = IncidentTypeEntry{ID: t.String(), Name: t.String()}
		}
		return &CatalogConfig{IncidentTypes: entries}, nil
	}

	return LoadCatalog(c.path)
}
