// Package templates manages the local cache of versioned template bundles.
// Fetching archives over the network is the caller's concern; this package
// resolves cached versions, extracts bundles and tracks the cached version
// marker so offline use keeps working.
package templates

import (
	"archive/tar"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Essential names the templates every project needs; a minimal extraction
// keeps only these.
var Essential = map[string]struct{}{
	"spec-template.md":  {},
	"plan-template.md":  {},
	"tasks-template.md": {},
	"constitution.md":   {},
}

const versionMarker = ".version"

// CacheDir returns (and creates) the template cache root.
func CacheDir() (string, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("resolve cache dir: %w", err)
	}
	dir := filepath.Join(base, "specflow", "templates")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create cache dir: %w", err)
	}
	return dir, nil
}

// Resolve returns the cache directory for a template version. With offline
// set, a version that was never cached is an error; otherwise the directory
// is created for the caller to populate.
func Resolve(version string, offline bool) (string, error) {
	version = strings.TrimSpace(version)
	if version == "" {
		version = "latest"
	}
	cache, err := CacheDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(cache, version)
	if _, err := os.Stat(dir); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("stat cache %s: %w", dir, err)
		}
		if offline {
			return "", fmt.Errorf("offline mode: no cached templates for version %q", version)
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("create cache %s: %w", dir, err)
		}
	}
	return dir, nil
}

// Extract unpacks a template tar.gz archive into target. With minimal set,
// only the essential templates are written. Entries that would escape the
// target directory are skipped.
func Extract(archivePath, target string, minimal bool) error {
	f, err := os.Open(archivePath)
	if err != nil {
		return fmt.Errorf("open archive: %w", err)
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return fmt.Errorf("read archive: %w", err)
	}
	defer gz.Close()

	if err := os.MkdirAll(target, 0o755); err != nil {
		return fmt.Errorf("create target: %w", err)
	}

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read archive entry: %w", err)
		}

		name := filepath.Base(hdr.Name)
		if minimal {
			if _, ok := Essential[name]; !ok {
				continue
			}
		}

		dest, ok := securePath(target, hdr.Name)
		if !ok {
			continue
		}

		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(dest, 0o755); err != nil {
				return fmt.Errorf("create dir %s: %w", dest, err)
			}
		case tar.TypeReg:
			if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
				return fmt.Errorf("create dir for %s: %w", dest, err)
			}
			out, err := os.OpenFile(dest, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
			if err != nil {
				return fmt.Errorf("create %s: %w", dest, err)
			}
			if _, err := io.Copy(out, tr); err != nil { //nolint:gosec // bundle size bounded by the upstream release format
				out.Close()
				return fmt.Errorf("extract %s: %w", dest, err)
			}
			if err := out.Close(); err != nil {
				return fmt.Errorf("close %s: %w", dest, err)
			}
		}
	}
}

// securePath joins an archive entry name under target, rejecting traversal.
func securePath(target, name string) (string, bool) {
	clean := filepath.Clean(filepath.FromSlash(name))
	if clean == "." || strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return "", false
	}
	return filepath.Join(target, clean), true
}

// CachedVersion reads the version marker inside a cache directory.
func CachedVersion(dir string) (string, bool) {
	data, err := os.ReadFile(filepath.Join(dir, versionMarker))
	if err != nil {
		return "", false
	}
	version := strings.TrimSpace(string(data))
	return version, version != ""
}

// RecordVersion writes the version marker after a successful extraction.
func RecordVersion(dir, version string) error {
	version = strings.TrimSpace(version)
	if version == "" {
		return errors.New("version is empty")
	}
	if err := os.WriteFile(filepath.Join(dir, versionMarker), []byte(version+"\n"), 0o644); err != nil {
		return fmt.Errorf("write version marker: %w", err)
	}
	return nil
}
