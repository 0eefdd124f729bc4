// Package config loads the registry endpoints eppctl can talk to.
package config

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/danmuck/eppctl/internal/epp/transport"
)

var (
	ErrNoRegistries     = errors.New("config: no [registry.NAME] tables")
	ErrUnknownRegistry  = errors.New("config: unknown registry")
	ErrUnknownKeys      = errors.New("config: unknown keys")
	ErrInvalidFrameSize = errors.New("config: max_frame_bytes out of range")
)

type fileConfig struct {
	Registry map[string]registryFile `toml:"registry"`
}

type registryFile struct {
	Host           string   `toml:"host"`
	Port           int      `toml:"port"`
	ConnectTimeout string   `toml:"connect_timeout"`
	ReadTimeout    string   `toml:"read_timeout"`
	WriteTimeout   string   `toml:"write_timeout"`
	MaxFrameBytes  int64    `toml:"max_frame_bytes"`
	ExtURIs        []string `toml:"ext_uris"`
	TLS            tlsFile  `toml:"tls"`
}

type tlsFile struct {
	Enabled            bool   `toml:"enabled"`
	CAFile             string `toml:"ca_file"`
	CertFile           string `toml:"cert_file"`
	KeyFile            string `toml:"key_file"`
	ServerName         string `toml:"server_name"`
	InsecureSkipVerify bool   `toml:"insecure_skip_verify"`
}

// Registry is one resolved endpoint.
type Registry struct {
	Name      string
	Transport transport.Config
	// ExtURIs lists the extension namespaces the registry advertises.
	ExtURIs []string
}

// Supports reports whether uri is among the advertised extensions.
func (r Registry) Supports(uri string) bool {
	return slices.Contains(r.ExtURIs, uri)
}

type Config struct {
	Registries map[string]Registry
}

// Names returns the registry names in sorted order.
func (c Config) Names() []string {
	names := make([]string, 0, len(c.Registries))
	for name := range c.Registries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (c Config) Registry(name string) (Registry, error) {
	r, ok := c.Registries[strings.TrimSpace(name)]
	if !ok {
		return Registry{}, fmt.Errorf("%w: %q (have %s)", ErrUnknownRegistry, name, strings.Join(c.Names(), ", "))
	}
	return r, nil
}

// Load decodes path. Keys left at their zero value fall back to
// transport.DefaultConfig.
func Load(path string) (Config, error) {
	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("config load failed (%s): %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return Config{}, fmt.Errorf("%w (%s): %s", ErrUnknownKeys, path, strings.Join(keys, ", "))
	}
	if len(raw.Registry) == 0 {
		return Config{}, fmt.Errorf("%w (%s)", ErrNoRegistries, path)
	}

	cfg := Config{Registries: make(map[string]Registry, len(raw.Registry))}
	for name, entry := range raw.Registry {
		reg, err := resolve(meta, name, entry)
		if err != nil {
			return Config{}, fmt.Errorf("registry[%s] invalid: %w", name, err)
		}
		cfg.Registries[name] = reg
	}
	return cfg, nil
}

func resolve(meta toml.MetaData, name string, raw registryFile) (Registry, error) {
	defined := func(key ...string) bool {
		return meta.IsDefined(append([]string{"registry", name}, key...)...)
	}
	tc := transport.DefaultConfig()
	tc.Host = strings.TrimSpace(raw.Host)
	if defined("port") {
		tc.Port = raw.Port
	}

	durations := []struct {
		key string
		raw string
		dst *time.Duration
	}{
		{"connect_timeout", raw.ConnectTimeout, &tc.ConnectTimeout},
		{"read_timeout", raw.ReadTimeout, &tc.ReadTimeout},
		{"write_timeout", raw.WriteTimeout, &tc.WriteTimeout},
	}
	for _, d := range durations {
		if !defined(d.key) {
			continue
		}
		v, err := time.ParseDuration(strings.TrimSpace(d.raw))
		if err != nil {
			return Registry{}, fmt.Errorf("parse %s: %w", d.key, err)
		}
		if v <= 0 {
			return Registry{}, fmt.Errorf("parse %s: must be positive", d.key)
		}
		*d.dst = v
	}

	if defined("max_frame_bytes") {
		if raw.MaxFrameBytes <= 0 || raw.MaxFrameBytes > math.MaxUint32-transport.HeaderLen {
			return Registry{}, fmt.Errorf("%w: %d", ErrInvalidFrameSize, raw.MaxFrameBytes)
		}
		tc.Limits.MaxPayloadBytes = uint32(raw.MaxFrameBytes)
	}

	tc.TLS = transport.TLSConfig{
		Enabled:            raw.TLS.Enabled,
		CAFile:             strings.TrimSpace(raw.TLS.CAFile),
		CertFile:           strings.TrimSpace(raw.TLS.CertFile),
		KeyFile:            strings.TrimSpace(raw.TLS.KeyFile),
		ServerName:         strings.TrimSpace(raw.TLS.ServerName),
		InsecureSkipVerify: raw.TLS.InsecureSkipVerify,
	}
	if err := tc.Validate(); err != nil {
		return Registry{}, err
	}
	return Registry{Name: name, Transport: tc, ExtURIs: normalizeURIs(raw.ExtURIs)}, nil
}

func normalizeURIs(in []string) []string {
	out := make([]string, 0, len(in))
	for _, uri := range in {
		v := strings.TrimSpace(uri)
		if v == "" || slices.Contains(out, v) {
			continue
		}
		out = append(out, v)
	}
	return out
}
