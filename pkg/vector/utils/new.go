// Package vectorutils builds a vector.Driver from configuration.
package vectorutils

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"path/filepath"
	"strconv"

	"github.com/hack-pad/hackpadfs"
	osfs "github.com/hack-pad/hackpadfs/os"

	"github.com/papercomputeco/pixelo/pkg/vector"
	"github.com/papercomputeco/pixelo/pkg/vector/hnsw"
	"github.com/papercomputeco/pixelo/pkg/vector/qdrant"
	"github.com/papercomputeco/pixelo/pkg/vector/sqlitevec"
)

type NewVectorDriverOpts struct {
	// ProviderType is "hnsw", "sqlite-vec" or "qdrant".
	ProviderType string

	// Target is an index file for hnsw, a database file for sqlite-vec and
	// host:port for qdrant.
	Target string

	Collection string
	Dimensions uint
	Logger     *slog.Logger
}

func NewVectorDriver(ctx context.Context, o *NewVectorDriverOpts) (vector.Driver, error) {
	switch o.ProviderType {
	case "hnsw", "":
		c := hnsw.Config{Logger: o.Logger}
		if o.Target != "" {
			fs, path, err := hostFile(o.Target)
			if err != nil {
				return nil, err
			}
			c.FS, c.Path = fs, path
		}
		return hnsw.NewDriver(c)

	case "sqlite-vec", "sqlitevec":
		target := o.Target
		if target == "" {
			target = ":memory:"
		}
		return sqlitevec.NewDriver(sqlitevec.Config{
			DBPath:     target,
			Dimensions: o.Dimensions,
		}, o.Logger)

	case "qdrant":
		host, port, err := splitHostPort(o.Target)
		if err != nil {
			return nil, err
		}
		return qdrant.NewDriver(ctx, qdrant.Config{
			Host:       host,
			Port:       port,
			Collection: o.Collection,
			Dimensions: uint64(o.Dimensions),
		}, o.Logger)

	default:
		return nil, fmt.Errorf("unsupported vector store provider: %s", o.ProviderType)
	}
}

// hostFile maps a host path onto a hackpadfs filesystem rooted at its
// directory.
func hostFile(target string) (hackpadfs.FS, string, error) {
	abs, err := filepath.Abs(target)
	if err != nil {
		return nil, "", fmt.Errorf("failed to resolve %s: %w", target, err)
	}

	root := osfs.NewFS()
	dir, err := root.FromOSPath(filepath.Dir(abs))
	if err != nil {
		return nil, "", fmt.Errorf("failed to map %s: %w", abs, err)
	}
	if err := hackpadfs.MkdirAll(root, dir, 0o755); err != nil {
		return nil, "", fmt.Errorf("failed to create %s: %w", filepath.Dir(abs), err)
	}

	sub, err := root.Sub(dir)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open %s: %w", filepath.Dir(abs), err)
	}
	return sub, filepath.Base(abs), nil
}

func splitHostPort(target string) (string, int, error) {
	if target == "" {
		return "localhost", qdrant.DefaultPort, nil
	}

	host, portStr, err := net.SplitHostPort(target)
	if err != nil {
		// bare host
		return target, qdrant.DefaultPort, nil //nolint:nilerr // no port given
	}

	port, err := strconv.Atoi(portStr)
	if err != nil {
		return "", 0, fmt.Errorf("invalid qdrant port %q: %w", portStr, err)
	}
	return host, port, nil
}
