// Package storageutils builds a storage.Driver from configuration.
package storageutils

import (
	"context"
	"fmt"

	"github.com/papercomputeco/pixelo/pkg/storage"
	"github.com/papercomputeco/pixelo/pkg/storage/bolt"
	"github.com/papercomputeco/pixelo/pkg/storage/fsdriver"
	"github.com/papercomputeco/pixelo/pkg/storage/inmemory"
	"github.com/papercomputeco/pixelo/pkg/storage/postgres"
	"github.com/papercomputeco/pixelo/pkg/storage/sqlite"
)

const (
	ProviderMemory   = "memory"
	ProviderFS       = "fs"
	ProviderSQLite   = "sqlite"
	ProviderPostgres = "postgres"
	ProviderBolt     = "bolt"
)

// Providers lists the supported storage providers.
var Providers = []string{ProviderFS, ProviderMemory, ProviderSQLite, ProviderPostgres, ProviderBolt}

type NewDriverOpts struct {
	// Provider is one of Providers. Empty means ProviderFS.
	Provider string

	// Target is the provider-specific location: a directory for fs, a file
	// for sqlite and bolt, a connection string for postgres.
	Target string
}

func NewDriver(ctx context.Context, o *NewDriverOpts) (storage.Driver, error) {
	switch o.Provider {
	case ProviderFS, "":
		if o.Target == "" {
			return nil, fmt.Errorf("storage target directory is required for provider %q", ProviderFS)
		}
		return fsdriver.NewOSDriver(o.Target)

	case ProviderMemory:
		return inmemory.NewDriver(), nil

	case ProviderSQLite:
		target := o.Target
		if target == "" {
			target = ":memory:"
		}
		return sqlite.NewDriver(ctx, target)

	case ProviderPostgres:
		if o.Target == "" {
			return nil, fmt.Errorf("storage target connection string is required for provider %q", ProviderPostgres)
		}
		return postgres.NewDriver(ctx, o.Target)

	case ProviderBolt:
		if o.Target == "" {
			return nil, fmt.Errorf("storage target file is required for provider %q", ProviderBolt)
		}
		return bolt.NewDriver(o.Target)

	default:
		return nil, fmt.Errorf("unsupported storage provider: %s", o.Provider)
	}
}
