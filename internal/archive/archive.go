// Package archive reads the entry point declared in a jar's manifest.
package archive

import (
	"archive/zip"
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/afero"
)

// ManifestPath is the location of the manifest inside a jar.
const ManifestPath = "META-INF/MANIFEST.MF"

// Manifest attributes naming the entry point. Rsrc-Main-Class is written by
// Eclipse's runnable-jar export, whose Main-Class is a loader stub.
const (
	RsrcMainClassKey = "Rsrc-Main-Class"
	MainClassKey     = "Main-Class"
)

var (
	// ErrNoArchive is returned when no archive path is configured.
	ErrNoArchive = errors.New("no archive configured")

	// ErrUnreadable is returned when the archive cannot be opened as a zip.
	ErrUnreadable = errors.New("archive cannot be read")

	// ErrNoManifest is returned when the archive has no manifest.
	ErrNoManifest = errors.New("archive has no manifest")

	// ErrNoMainClass is returned when the manifest names no entry point.
	ErrNoMainClass = errors.New("manifest declares no main class")
)

// MainClass returns the entry point of the jar at path: Rsrc-Main-Class
// when present, else Main-Class.
func MainClass(fs afero.Fs, path string) (string, error) {
	if path == "" {
		return "", ErrNoArchive
	}

	m, err := ReadManifest(fs, path)
	if err != nil {
		return "", err
	}

	if v := m.Get(RsrcMainClassKey); v != "" {
		return v, nil
	}
	if v := m.Get(MainClassKey); v != "" {
		return v, nil
	}
	return "", ErrNoMainClass
}

// ReadManifest returns the main attributes of the jar at path.
func ReadManifest(fs afero.Fs, path string) (Manifest, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnreadable, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnreadable, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrUnreadable, path)
	}

	zr, err := zip.NewReader(f, info.Size())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnreadable, err)
	}

	for _, zf := range zr.File {
		if !strings.EqualFold(zf.Name, ManifestPath) {
			continue
		}
		rc, err := zf.Open()
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrUnreadable, err)
		}
		defer rc.Close()
		return ParseManifest(rc)
	}
	return nil, ErrNoManifest
}

// Manifest holds the main section of a manifest. Attribute names are case
// insensitive.
type Manifest map[string]string

// Get returns the value of the named attribute, or "".
func (m Manifest) Get(name string) string {
	return m[strings.ToLower(name)]
}

// ParseManifest parses the main section of a manifest, which ends at the
// first blank line. Lines starting with a single space continue the
// previous value.
func ParseManifest(r io.Reader) (Manifest, error) {
	m := make(Manifest)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), 1024*1024)

	var last string
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if line == "" {
			break
		}
		if strings.HasPrefix(line, " ") {
			if last != "" {
				m[last] += line[1:]
			}
			continue
		}
		name, value, ok := strings.Cut(line, ":")
		if !ok {
			return nil, fmt.Errorf("invalid manifest line %q", line)
		}
		last = strings.ToLower(strings.TrimSpace(name))
		m[last] = strings.TrimPrefix(value, " ")
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	for k, v := range m {
		m[k] = strings.TrimSpace(v)
	}
	return m, nil
}
