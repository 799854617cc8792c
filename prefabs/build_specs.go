package prefabs

import "gopkg.in/yaml.v3"

type EntityBuildSpec struct {
	Name       string         `yaml:"name"`
	Components map[string]any `yaml:"components"`
}

func LoadEntityBuildSpec(filename string) (EntityBuildSpec, error) {
	return LoadSpec[EntityBuildSpec](filename)
}

func DecodeComponentSpec[T any](raw any) (T, error) {
	var zero T
	if raw == nil {
		return zero, nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return zero, err
	}
	var out T
	if err := yaml.Unmarshal(b, &out); err != nil {
		return zero, err
	}
	return out, nil
}

type PlayerComponentSpec struct {
	FlapImpulse float64 `yaml:"flap_impulse"`
	Width       float64 `yaml:"width"`
	Height      float64 `yaml:"height"`
}

type TransformComponentSpec struct {
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	ScaleX   float64 `yaml:"scale_x"`
	ScaleY   float64 `yaml:"scale_y"`
	Rotation float64 `yaml:"rotation"`
}

type SpriteComponentSpec struct {
	Image string `yaml:"image"`
	FlipY bool   `yaml:"flip_y"`
}

type SpriteSheetComponentSpec struct {
	Image        string  `yaml:"image"`
	FrameW       int     `yaml:"frame_w"`
	FrameH       int     `yaml:"frame_h"`
	Frames       int     `yaml:"frames"`
	FrameSeconds float64 `yaml:"frame_seconds"`
}

type RenderLayerComponentSpec struct {
	Index int `yaml:"index"`
}

type VelocityComponentSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type GravityComponentSpec struct {
	Accel float64 `yaml:"accel"`
}

type TiltComponentSpec struct {
	Factor float64 `yaml:"factor"`
	Min    float64 `yaml:"min"`
	Max    float64 `yaml:"max"`
}

type CollidableComponentSpec struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type ScrollComponentSpec struct {
	Speed  float64 `yaml:"speed"`
	WrapAt float64 `yaml:"wrap_at"`
	WrapTo float64 `yaml:"wrap_to"`
}

type ScoreComponentSpec struct {
	TickSeconds float64 `yaml:"tick_seconds"`
}

type TextComponentSpec struct {
	Format string    `yaml:"format"`
	Size   float64   `yaml:"size"`
	X      float64   `yaml:"x"`
	Y      float64   `yaml:"y"`
	Color  YAMLColor `yaml:"color"`
}

type ColorKeySpec struct {
	T     float64   `yaml:"t"`
	Color YAMLColor `yaml:"color"`
}

type SizeKeySpec struct {
	T    float64 `yaml:"t"`
	Size float64 `yaml:"size"`
}

type ParticleEmitterComponentSpec struct {
	Rate     float64        `yaml:"rate"`
	Capacity int            `yaml:"capacity"`
	Radius   float64        `yaml:"radius"`
	Speed    float64        `yaml:"speed"`
	AccelX   float64        `yaml:"accel_x"`
	AccelY   float64        `yaml:"accel_y"`
	Lifetime float64        `yaml:"lifetime"`
	Colors   []ColorKeySpec `yaml:"colors"`
	Sizes    []SizeKeySpec  `yaml:"sizes"`
}

type FollowPlayerYComponentSpec struct {
	OffsetY float64 `yaml:"offset_y"`
}

type AudioComponentSpec struct {
	Name   string  `yaml:"name"`
	File   string  `yaml:"file"`
	Volume float64 `yaml:"volume"`
}

type MusicPlayerComponentSpec struct {
	Tracks []AudioComponentSpec `yaml:"tracks"`
}
