package stage

import (
	"fmt"
	"os"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pelletier/go-toml/v2"

	"github.com/gogpu/stage/camera"
	"github.com/gogpu/stage/raycast"
)

// Config is the TOML-file counterpart of the functional options. Booleans
// that default to true are pointers so an absent key keeps the default.
//
//	vr = false
//	orthographic = true
//	frameloop = false
//	pixel_ratio = 1.5            # or: pixel_ratio_range = [1.0, 2.0]
//	size = [800.0, 600.0]
//
//	[performance]
//	min = 0.5
//	max = 1.0
//	debounce_ms = 200
//
//	[camera]
//	fov = 60.0
//	position = [0.0, 2.0, 10.0]
//
//	[raycaster]
//	far = 500.0
type Config struct {
	VR           bool  `toml:"vr"`
	Linear       bool  `toml:"linear"`
	Orthographic bool  `toml:"orthographic"`
	Frameloop    *bool `toml:"frameloop"`
	UpdateCamera *bool `toml:"update_camera"`

	PixelRatio      float64   `toml:"pixel_ratio"`
	PixelRatioRange []float64 `toml:"pixel_ratio_range"`
	Size            []float64 `toml:"size"`

	Performance PerformanceConfig `toml:"performance"`
	Camera      CameraConfig      `toml:"camera"`
	Raycaster   RaycasterConfig   `toml:"raycaster"`
}

// PerformanceConfig overrides the adaptive-quality parameters.
// Zero fields keep defaults.
type PerformanceConfig struct {
	Min        float64 `toml:"min"`
	Max        float64 `toml:"max"`
	DebounceMS int64   `toml:"debounce_ms"`
}

// CameraConfig is the TOML form of camera.Config.
type CameraConfig struct {
	FOV      float64   `toml:"fov"`
	Near     float64   `toml:"near"`
	Far      float64   `toml:"far"`
	Zoom     float64   `toml:"zoom"`
	Position []float64 `toml:"position"`
}

// RaycasterConfig is the TOML form of raycast.Config.
type RaycasterConfig struct {
	Near float64 `toml:"near"`
	Far  float64 `toml:"far"`
}

// LoadConfig reads and parses a TOML configuration file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("stage: read config: %w", err)
	}
	var c Config
	if err := toml.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("stage: parse config %s: %w", path, err)
	}
	return c, nil
}

// Options lowers the config onto functional options, so file-based and
// programmatic configuration converge on the same construction path.
func (c Config) Options() ([]Option, error) {
	var opts []Option

	if c.VR {
		opts = append(opts, WithVR())
	}
	if c.Linear {
		opts = append(opts, WithLinear())
	}
	if c.Orthographic {
		opts = append(opts, WithOrthographic())
	}
	if c.Frameloop != nil {
		opts = append(opts, WithFrameloop(*c.Frameloop))
	}
	if c.UpdateCamera != nil {
		opts = append(opts, WithUpdateCamera(*c.UpdateCamera))
	}

	switch {
	case len(c.PixelRatioRange) == 2:
		opts = append(opts, WithPixelRatioRange(c.PixelRatioRange[0], c.PixelRatioRange[1]))
	case len(c.PixelRatioRange) != 0:
		return nil, fmt.Errorf("stage: pixel_ratio_range needs 2 elements, got %d", len(c.PixelRatioRange))
	case c.PixelRatio != 0:
		opts = append(opts, WithPixelRatio(c.PixelRatio))
	}

	switch {
	case len(c.Size) == 2:
		opts = append(opts, WithSize(c.Size[0], c.Size[1]))
	case len(c.Size) != 0:
		return nil, fmt.Errorf("stage: size needs 2 elements, got %d", len(c.Size))
	}

	if p := c.Performance; p.Min != 0 || p.Max != 0 || p.DebounceMS != 0 {
		opts = append(opts, WithPerformance(p.Min, p.Max, time.Duration(p.DebounceMS)*time.Millisecond))
	}

	camCfg := camera.Config{
		FOV:  float32(c.Camera.FOV),
		Near: float32(c.Camera.Near),
		Far:  float32(c.Camera.Far),
		Zoom: float32(c.Camera.Zoom),
	}
	switch {
	case len(c.Camera.Position) == 3:
		camCfg.Position = mgl32.Vec3{
			float32(c.Camera.Position[0]),
			float32(c.Camera.Position[1]),
			float32(c.Camera.Position[2]),
		}
		camCfg.HasPosition = true
	case len(c.Camera.Position) != 0:
		return nil, fmt.Errorf("stage: camera position needs 3 elements, got %d", len(c.Camera.Position))
	}
	if camCfg != (camera.Config{}) {
		opts = append(opts, WithCameraConfig(camCfg))
	}

	if c.Raycaster != (RaycasterConfig{}) {
		opts = append(opts, WithRaycasterConfig(raycast.Config{
			Near: float32(c.Raycaster.Near),
			Far:  float32(c.Raycaster.Far),
		}))
	}

	return opts, nil
}
