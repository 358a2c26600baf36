// Package config reads the service configuration file that sits next to
// the installer and exposes its values with their defaults.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/magiconair/properties"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// File names looked up in the system root, in order.
const (
	PropertiesFile = "config.properties"
	YAMLFile       = "config.yaml"
)

// ErrNotFound is returned by Load when no configuration file exists.
var ErrNotFound = errors.New("configuration file not found")

// Reader looks up raw configuration values.
type Reader interface {
	Get(key string) (string, bool)
}

// MapReader is a Reader over an in-memory map.
type MapReader map[string]string

// Get returns the value stored for key.
func (m MapReader) Get(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

type propertiesReader struct {
	p *properties.Properties
}

func (r propertiesReader) Get(key string) (string, bool) {
	return r.p.Get(key)
}

// Load reads the configuration file from dir: config.properties when it
// exists, else config.yaml.
func Load(fs afero.Fs, dir string) (Reader, error) {
	propsPath := filepath.Join(dir, PropertiesFile)
	if ok, _ := afero.Exists(fs, propsPath); ok {
		return LoadProperties(fs, propsPath)
	}

	yamlPath := filepath.Join(dir, YAMLFile)
	if ok, _ := afero.Exists(fs, yamlPath); ok {
		return LoadYAML(fs, yamlPath)
	}

	return nil, fmt.Errorf("%w: %s or %s in %s", ErrNotFound, PropertiesFile, YAMLFile, dir)
}

// LoadProperties reads a Java properties file. Like the Java loader the
// file is decoded as ISO-8859-1; Accessor.Get recovers UTF-8 text from it.
// ${...} references are kept literally.
func LoadProperties(fs afero.Fs, path string) (Reader, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	l := &properties.Loader{Encoding: properties.ISO_8859_1, DisableExpansion: true}
	p, err := l.LoadBytes(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return propertiesReader{p: p}, nil
}

// LoadYAML reads a flat YAML mapping. Scalar values are kept as written.
func LoadYAML(fs afero.Fs, path string) (Reader, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var doc map[string]yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	m := make(MapReader, len(doc))
	for k, node := range doc {
		if node.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("failed to parse config file: %q must be a scalar", k)
		}
		m[k] = node.Value
	}
	return m, nil
}

// parseInt mirrors a lenient integer parse: anything unparseable is 0.
func parseInt(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
