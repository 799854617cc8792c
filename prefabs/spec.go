package prefabs

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

const TuningFile = "game.yaml"

// Tuning is the world layout shared by every state: window, camera, and how
// many scrolling tiles and pipes to lay out. Per-entity numbers (gravity,
// scroll speed, sizes) live in the entity prefabs.
type Tuning struct {
	Window     WindowSpec     `yaml:"window"`
	ClearColor YAMLColor      `yaml:"clear_color"`
	Player     PointSpec      `yaml:"player"`
	Pipes      PipeLayoutSpec `yaml:"pipes"`
	Floor      TileLayoutSpec `yaml:"floor"`
	Background TileLayoutSpec `yaml:"background"`
	Music      MusicSpec      `yaml:"music"`
}

type WindowSpec struct {
	Width  int     `yaml:"width"`
	Height int     `yaml:"height"`
	Title  string  `yaml:"title"`
	Zoom   float64 `yaml:"zoom"`
}

type PointSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// PipeLayoutSpec places pipe pairs at x = i*Spacing for First <= i < Last,
// with the top pipe at +Pos and the bottom one at -Pos.
type PipeLayoutSpec struct {
	First           int     `yaml:"first"`
	Last            int     `yaml:"last"`
	Spacing         float64 `yaml:"spacing"`
	Pos             float64 `yaml:"pos"`
	OffsetAmplitude float64 `yaml:"offset_amplitude"`
	Script          string  `yaml:"script"`
}

// TileLayoutSpec places tiles at x = i*Width for First <= i < Last.
type TileLayoutSpec struct {
	First int     `yaml:"first"`
	Last  int     `yaml:"last"`
	Width float64 `yaml:"width"`
	Y     float64 `yaml:"y"`
}

type MusicSpec struct {
	Track  string  `yaml:"track"`
	Volume float64 `yaml:"volume"`
}

func DefaultTuning() Tuning {
	return Tuning{
		Window:     WindowSpec{Width: 800, Height: 600, Title: "Flappy Bird", Zoom: 2},
		ClearColor: YAMLColor{Color: color.NRGBA{R: 255, G: 87, B: 51, A: 255}},
		Pipes: PipeLayoutSpec{
			First:           2,
			Last:            6,
			Spacing:         200,
			Pos:             265,
			OffsetAmplitude: 20,
			Script:          "pipe_offset.tengo",
		},
		Floor:      TileLayoutSpec{First: 0, Last: 10, Width: 336, Y: -200},
		Background: TileLayoutSpec{First: -3, Last: 3, Width: 288},
		Music:      MusicSpec{Track: "music", Volume: 0.75},
	}
}

// LoadTuning overlays game.yaml onto DefaultTuning.
func LoadTuning() (Tuning, error) {
	t := DefaultTuning()
	data, err := Load(TuningFile)
	if err != nil {
		return t, fmt.Errorf("prefabs: load %s: %w", TuningFile, err)
	}
	if err := yaml.Unmarshal(data, &t); err != nil {
		return DefaultTuning(), fmt.Errorf("prefabs: unmarshal %s: %w", TuningFile, err)
	}
	if err := t.Validate(); err != nil {
		return DefaultTuning(), fmt.Errorf("prefabs: %s: %w", TuningFile, err)
	}
	return t, nil
}

func (t Tuning) Validate() error {
	var errs []error
	if t.Window.Width <= 0 || t.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", t.Window.Width, t.Window.Height))
	}
	if t.Window.Zoom <= 0 {
		errs = append(errs, fmt.Errorf("window zoom %v must be positive", t.Window.Zoom))
	}
	if t.Pipes.Last < t.Pipes.First {
		errs = append(errs, fmt.Errorf("pipes range [%d,%d) is inverted", t.Pipes.First, t.Pipes.Last))
	}
	if t.Pipes.Spacing <= 0 {
		errs = append(errs, fmt.Errorf("pipe spacing %v must be positive", t.Pipes.Spacing))
	}
	if t.Floor.Last < t.Floor.First || t.Background.Last < t.Background.First {
		errs = append(errs, errors.New("tile range is inverted"))
	}
	if t.Music.Volume < 0 || t.Music.Volume > 1 {
		errs = append(errs, fmt.Errorf("music volume %v out of [0,1]", t.Music.Volume))
	}
	return errors.Join(errs...)
}

type YAMLColor struct {
	color.Color
}

// NRGBA returns the colour as non-premultiplied RGBA, transparent when unset.
func (c YAMLColor) NRGBA() color.NRGBA {
	if c.Color == nil {
		return color.NRGBA{}
	}
	return color.NRGBAModel.Convert(c.Color).(color.NRGBA)
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}
