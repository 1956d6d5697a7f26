package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/1broseidon/tilewm/internal/model"
)

// ErrAmbiguousWorkspaceConfig means a workspace has neither an output name
// nor a full set of coordinates.
var ErrAmbiguousWorkspaceConfig = errors.New("ambiguous workspace config")

// Workspace is a geometry hint for one workspace. Every field is optional;
// the workspace resolver decides how missing fields are filled.
type Workspace struct {
	X              *int32      `yaml:"x,omitempty"`
	Y              *int32      `yaml:"y,omitempty"`
	Width          *int32      `yaml:"width,omitempty"`
	Height         *int32      `yaml:"height,omitempty"`
	ID             *int32      `yaml:"id,omitempty"`
	OutputName     *string     `yaml:"output_name,omitempty"`
	MaxWindowWidth *model.Size `yaml:"max_window_width,omitempty"`
	Layouts        []string    `yaml:"layouts,omitempty"`
}

// HasLiteralGeometry reports whether all four coordinates are set.
func (w Workspace) HasLiteralGeometry() bool {
	return w.X != nil && w.Y != nil && w.Width != nil && w.Height != nil
}

// Describe returns a short human label used in logs and errors.
func (w Workspace) Describe() string {
	var parts []string
	if w.ID != nil {
		parts = append(parts, fmt.Sprintf("id=%d", *w.ID))
	}
	if w.OutputName != nil {
		parts = append(parts, fmt.Sprintf("output=%s", *w.OutputName))
	}
	if len(parts) == 0 {
		return "workspace"
	}
	return strings.Join(parts, " ")
}

// Config holds the application configuration.
type Config struct {
	Display    string      `yaml:"display,omitempty"`
	XAuthority string      `yaml:"xauthority,omitempty"`
	LogLevel   string      `yaml:"log_level"`
	Workspaces []Workspace `yaml:"workspaces,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
	}
}

var validLogLevels = map[string]struct{}{
	"debug": {},
	"info":  {},
	"warn":  {},
	"error": {},
}

// Validate checks the configuration for values the daemon cannot use.
// Workspaces that can never resolve are rejected here; named outputs are
// only looked up once a display is connected.
func (c *Config) Validate() error {
	level := strings.ToLower(strings.TrimSpace(c.LogLevel))
	if _, ok := validLogLevels[level]; !ok {
		return fmt.Errorf("log_level must be one of debug, info, warn, error (got %q)", c.LogLevel)
	}

	seen := make(map[int32]int)
	for i, ws := range c.Workspaces {
		if ws.OutputName == nil && !ws.HasLiteralGeometry() {
			return fmt.Errorf("workspaces[%d]: %w: set output_name or all of x, y, width, height", i, ErrAmbiguousWorkspaceConfig)
		}
		if ws.Width != nil && *ws.Width < 0 {
			return fmt.Errorf("workspaces[%d].width must be >= 0", i)
		}
		if ws.Height != nil && *ws.Height < 0 {
			return fmt.Errorf("workspaces[%d].height must be >= 0", i)
		}
		if ws.OutputName != nil && strings.TrimSpace(*ws.OutputName) == "" {
			return fmt.Errorf("workspaces[%d].output_name must not be empty", i)
		}
		if ws.MaxWindowWidth != nil {
			if ws.MaxWindowWidth.IsRatio() && (ws.MaxWindowWidth.Ratio <= 0 || ws.MaxWindowWidth.Ratio > 1) {
				return fmt.Errorf("workspaces[%d].max_window_width ratio must be in (0, 1]", i)
			}
			if !ws.MaxWindowWidth.IsRatio() && ws.MaxWindowWidth.Pixels <= 0 {
				return fmt.Errorf("workspaces[%d].max_window_width must be > 0", i)
			}
		}
		if ws.ID != nil {
			if prev, ok := seen[*ws.ID]; ok {
				return fmt.Errorf("workspaces[%d].id %d duplicates workspaces[%d]", i, *ws.ID, prev)
			}
			seen[*ws.ID] = i
		}
	}
	return nil
}

// ApplyEnvironment exports display settings so the X connection picks them up.
func (c *Config) ApplyEnvironment() error {
	if c.Display != "" {
		if err := os.Setenv("DISPLAY", c.Display); err != nil {
			return fmt.Errorf("failed to set DISPLAY: %w", err)
		}
	}
	if c.XAuthority != "" {
		if err := os.Setenv("XAUTHORITY", c.XAuthority); err != nil {
			return fmt.Errorf("failed to set XAUTHORITY: %w", err)
		}
	}
	return nil
}
