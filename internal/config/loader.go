package config

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// rawConfig is a single file as written. Pointers distinguish unset from zero
// so later files only override what they mention.
type rawConfig struct {
	Include    []string    `yaml:"include,omitempty"`
	Display    *string     `yaml:"display,omitempty"`
	XAuthority *string     `yaml:"xauthority,omitempty"`
	LogLevel   *string     `yaml:"log_level,omitempty"`
	Workspaces []Workspace `yaml:"workspaces,omitempty"`
}

// LoadResult is a loaded config plus the files it came from.
type LoadResult struct {
	Config *Config
	Files  []string // all loaded files, in load order
}

func DefaultConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "tilewm", "config.yaml"), nil
}

// Load reads the configuration from the standard location.
func Load() (*Config, error) {
	path, err := DefaultConfigPath()
	if err != nil {
		return nil, err
	}
	res, err := LoadFromPath(path)
	if err != nil {
		return nil, err
	}
	return res.Config, nil
}

// LoadFromPath loads path and its includes. A missing file yields defaults.
func LoadFromPath(path string) (*LoadResult, error) {
	cfg := DefaultConfig()
	var files []string

	exists, err := pathExists(path)
	if err != nil {
		return nil, err
	}
	if exists {
		seen := make(map[string]struct{})
		files, err = loadMerged(path, cfg, seen, nil)
		if err != nil {
			return nil, err
		}
	}

	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	if err := cfg.Validate(); err != nil {
		if len(files) > 0 {
			return nil, fmt.Errorf("%s: %w", files[len(files)-1], err)
		}
		return nil, err
	}

	return &LoadResult{Config: cfg, Files: files}, nil
}

// loadMerged applies includes first, in order, then the file itself. Scalar
// settings are overridden by later files; workspaces accumulate.
func loadMerged(path string, cfg *Config, seen map[string]struct{}, stack []string) ([]string, error) {
	canon, err := canonicalPath(path)
	if err != nil {
		return nil, err
	}
	for _, existing := range stack {
		if existing == canon {
			return nil, fmt.Errorf("include cycle detected: %s -> %s", strings.Join(stack, " -> "), canon)
		}
	}
	if _, ok := seen[canon]; ok {
		return nil, nil
	}
	seen[canon] = struct{}{}

	data, err := os.ReadFile(canon)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to read: %w", canon, err)
	}

	var raw rawConfig
	if err := decodeStrictYAML(data, &raw); err != nil {
		return nil, fmt.Errorf("%s: %w", canon, err)
	}

	var files []string
	for _, inc := range raw.Include {
		paths, err := expandInclude(canon, inc)
		if err != nil {
			return nil, fmt.Errorf("%s: include %q: %w", canon, inc, err)
		}
		for _, incPath := range paths {
			incFiles, err := loadMerged(incPath, cfg, seen, append(stack, canon))
			if err != nil {
				return nil, err
			}
			files = append(files, incFiles...)
		}
	}

	raw.applyTo(cfg)
	files = append(files, canon)
	return files, nil
}

func (r rawConfig) applyTo(cfg *Config) {
	if r.Display != nil {
		cfg.Display = *r.Display
	}
	if r.XAuthority != nil {
		cfg.XAuthority = *r.XAuthority
	}
	if r.LogLevel != nil {
		cfg.LogLevel = *r.LogLevel
	}
	cfg.Workspaces = append(cfg.Workspaces, r.Workspaces...)
}

func decodeStrictYAML(data []byte, out any) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil {
		if err == io.EOF {
			return nil
		}
		return err
	}
	return nil
}

func canonicalPath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %q: %w", path, err)
	}
	real, err := filepath.EvalSymlinks(abs)
	if err != nil {
		// Best-effort; still use abs.
		return abs, nil
	}
	return real, nil
}

// expandInclude resolves an include relative to baseFile. Directories expand
// to their *.yaml files in lexical order.
func expandInclude(baseFile string, include string) ([]string, error) {
	path := include
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		path = filepath.Join(home, path[2:])
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(filepath.Dir(baseFile), path)
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{path}, nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml") {
			out = append(out, filepath.Join(path, name))
		}
	}
	sort.Strings(out)
	return out, nil
}

func pathExists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, fmt.Errorf("%s: %w", path, err)
}

// Marshal renders cfg as YAML for `config print`.
func Marshal(cfg *Config) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
