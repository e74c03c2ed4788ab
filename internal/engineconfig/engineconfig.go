package engineconfig

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultPath is the prefs file, relative to the process working directory.
const DefaultPath = "config/demo.json"

// Prefs holds window, camera and overlay preferences. Persisted across runs with Save.
// The scene itself (meshes, textures, lights) lives in the scene YAML named by ScenePath.
type Prefs struct {
	Title        string `json:"title"`
	WindowWidth  int    `json:"window_width"`
	WindowHeight int    `json:"window_height"`
	Fullscreen   bool   `json:"fullscreen"`
	TargetFPS    int    `json:"target_fps"`

	FovY             float32 `json:"fovy"`
	Near             float32 `json:"near"`
	Far              float32 `json:"far"`
	MouseSensitivity float32 `json:"mouse_sensitivity"`

	ColorPeriod    float32 `json:"color_period"`
	ShowFPS        bool    `json:"show_fps"`
	ShowPreview    bool    `json:"show_preview"`
	ScenePath      string  `json:"scene_path"`
	MaxTextureSize int     `json:"max_texture_size"`
	// Seed for the background palette; 0 picks a time based seed.
	Seed uint64 `json:"seed,omitempty"`
}

// Default returns the built-in preferences.
func Default() Prefs {
	return Prefs{
		Title:            "Solids of Revolution & Billboarding Demo",
		WindowWidth:      1280,
		WindowHeight:     720,
		TargetFPS:        60,
		FovY:             90,
		Near:             0.01,
		Far:              1000,
		MouseSensitivity: 0.5,
		ColorPeriod:      5,
		ScenePath:        "assets/scene.yaml",
		MaxTextureSize:   2048,
	}
}

// Load reads prefs from path. A missing or unreadable file yields Default() without error;
// a file that exists but does not parse yields Default() and the parse error so it can be reported.
// Fields that are zero or invalid after loading are reset to their defaults.
func Load(path string) (Prefs, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Default(), nil
	}
	p := Default()
	if err := json.Unmarshal(data, &p); err != nil {
		return Default(), fmt.Errorf("engineconfig: %s: %w", path, err)
	}
	return p.normalized(), nil
}

func (p Prefs) normalized() Prefs {
	d := Default()
	if p.Title == "" {
		p.Title = d.Title
	}
	if p.WindowWidth <= 0 || p.WindowHeight <= 0 {
		p.WindowWidth, p.WindowHeight = d.WindowWidth, d.WindowHeight
	}
	if p.TargetFPS <= 0 {
		p.TargetFPS = d.TargetFPS
	}
	if p.FovY <= 0 || p.FovY >= 180 {
		p.FovY = d.FovY
	}
	if p.Near <= 0 || p.Far <= p.Near {
		p.Near, p.Far = d.Near, d.Far
	}
	if p.MouseSensitivity <= 0 {
		p.MouseSensitivity = d.MouseSensitivity
	}
	if p.ColorPeriod <= 0 {
		p.ColorPeriod = d.ColorPeriod
	}
	if p.MaxTextureSize <= 0 {
		p.MaxTextureSize = d.MaxTextureSize
	}
	return p
}

// Save writes prefs to path, creating the directory if needed.
func Save(path string, p Prefs) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("engineconfig: %w", err)
	}
	data, err := json.MarshalIndent(p, "", "\t")
	if err != nil {
		return fmt.Errorf("engineconfig: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("engineconfig: %w", err)
	}
	return nil
}
