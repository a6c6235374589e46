package gizmo

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

var ErrInvalidConfig = errors.New("gizmo: invalid config")

const DefaultMinScale float32 = 0.01

// Config holds the tunables of a gizmo instance. Snap values of 0 disable
// snapping.
type Config struct {
	Space Space `yaml:"space"`

	// HandleScreenFactor is the handle length per unit of camera distance.
	HandleScreenFactor float32 `yaml:"handle_screen_factor"`
	// RingRadius, ScaleHandleStart and ScaleHandleEnd are fractions of the
	// handle length.
	RingRadius         float32 `yaml:"ring_radius"`
	ScaleHandleStart   float32 `yaml:"scale_handle_start"`
	ScaleHandleEnd     float32 `yaml:"scale_handle_end"`
	UniformScaleHandle bool    `yaml:"uniform_scale_handle"`

	PickTolerancePx float32 `yaml:"pick_tolerance_px"`

	RotationSnapDeg float32 `yaml:"rotation_snap_deg"`
	TranslationSnap float32 `yaml:"translation_snap"`
	ScaleSnap       float32 `yaml:"scale_snap"`
	MinScale        float32 `yaml:"min_scale"`
}

func DefaultConfig() Config {
	return Config{
		Space:              SpaceWorld,
		HandleScreenFactor: 0.15,
		RingRadius:         0.8,
		ScaleHandleStart:   1.15,
		ScaleHandleEnd:     1.35,
		UniformScaleHandle: true,
		PickTolerancePx:    8,
		MinScale:           DefaultMinScale,
	}
}

// ParseConfig decodes YAML on top of DefaultConfig. Unknown keys are errors.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if len(bytes.TrimSpace(data)) == 0 {
		return cfg, nil
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	return ParseConfig(data)
}

func (c Config) Validate() error {
	var problems []string
	if c.Space != SpaceWorld && c.Space != SpaceLocal {
		problems = append(problems, fmt.Sprintf("unknown space %d", int(c.Space)))
	}
	if c.HandleScreenFactor <= 0 {
		problems = append(problems, "handle_screen_factor must be > 0")
	}
	if c.RingRadius <= 0 {
		problems = append(problems, "ring_radius must be > 0")
	}
	if c.ScaleHandleStart < 0 || c.ScaleHandleEnd <= c.ScaleHandleStart {
		problems = append(problems, "scale handle segment must satisfy 0 <= start < end")
	}
	if c.PickTolerancePx <= 0 {
		problems = append(problems, "pick_tolerance_px must be > 0")
	}
	if c.RotationSnapDeg < 0 || c.TranslationSnap < 0 || c.ScaleSnap < 0 {
		problems = append(problems, "snap increments must be >= 0")
	}
	if c.MinScale <= 0 {
		problems = append(problems, "min_scale must be > 0")
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}

func (c Config) layout() handleLayout {
	return handleLayout{
		screenFactor: c.HandleScreenFactor,
		ringRadius:   c.RingRadius,
		scaleStart:   c.ScaleHandleStart,
		scaleEnd:     c.ScaleHandleEnd,
		uniform:      c.UniformScaleHandle,
	}
}

func (s Space) MarshalYAML() (any, error) {
	return s.String(), nil
}

func (s *Space) UnmarshalYAML(value *yaml.Node) error {
	var name string
	if err := value.Decode(&name); err != nil {
		return err
	}
	parsed, err := ParseSpace(name)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*s = parsed
	return nil
}
