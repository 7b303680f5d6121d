package data

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/orbitsweep/orbitsweep/internal/world"
	"gopkg.in/yaml.v3"
)

//go:embed palette.yaml
var defaultPalette []byte

// rgba decodes [r,g,b] or [r,g,b,a] sequences.
type rgba []uint8

func (c rgba) color() (world.Color, error) {
	switch len(c) {
	case 3:
		return world.RGB(c[0], c[1], c[2]), nil
	case 4:
		return world.Color{R: c[0], G: c[1], B: c[2], A: c[3]}, nil
	}
	return world.Color{}, fmt.Errorf("color needs 3 or 4 components, got %d", len(c))
}

type paletteFile struct {
	Sun     rgba   `yaml:"sun"`
	Planets []rgba `yaml:"planets"`
	Garbage struct {
		Base   rgba `yaml:"base"`
		Jitter int  `yaml:"jitter"`
	} `yaml:"garbage"`
	BandGas        []rgba   `yaml:"band_gas"`
	BandGasAlpha   [2]uint8 `yaml:"band_gas_alpha"`
	BandStars      []rgba   `yaml:"band_stars"`
	BandStarSizes  []string `yaml:"band_star_sizes"`
	OuterStars     []rgba   `yaml:"outer_stars"`
	OuterStarSizes []string `yaml:"outer_star_sizes"`
	Dust           rgba     `yaml:"dust"`
	DustAlpha      [2]uint8 `yaml:"dust_alpha"`
	DistantPlanets []rgba   `yaml:"distant_planets"`
}

// Palette is the resolved color table consumed by the generator.
// Size lists are weighted by repetition.
type Palette struct {
	Sun            world.Color
	Planets        []world.Color
	GarbageBase    world.Color
	GarbageJitter  int
	BandGas        []world.Color
	BandGasAlpha   [2]uint8
	BandStars      []world.Color
	BandStarSizes  []world.StarSize
	OuterStars     []world.Color
	OuterStarSizes []world.StarSize
	Dust           world.Color
	DustAlpha      [2]uint8
	DistantPlanets []world.Color
}

// DefaultPalette returns the built-in palette.
func DefaultPalette() *Palette {
	p, err := parsePalette(defaultPalette)
	if err != nil {
		panic(fmt.Sprintf("embedded palette: %v", err))
	}
	return p
}

// LoadPalette reads a palette YAML file.
func LoadPalette(path string) (*Palette, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read palette: %w", err)
	}
	p, err := parsePalette(raw)
	if err != nil {
		return nil, fmt.Errorf("parse palette %s: %w", path, err)
	}
	return p, nil
}

func parsePalette(raw []byte) (*Palette, error) {
	var f paletteFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, err
	}
	p := &Palette{
		GarbageJitter: f.Garbage.Jitter,
		BandGasAlpha:  f.BandGasAlpha,
		DustAlpha:     f.DustAlpha,
	}
	var err error
	one := func(dst *world.Color, src rgba, field string) {
		if err != nil {
			return
		}
		c, cerr := src.color()
		if cerr != nil {
			err = fmt.Errorf("%s: %w", field, cerr)
			return
		}
		*dst = c
	}
	many := func(src []rgba, field string) []world.Color {
		if err != nil {
			return nil
		}
		if len(src) == 0 {
			err = fmt.Errorf("%s: empty color list", field)
			return nil
		}
		out := make([]world.Color, len(src))
		for i := range src {
			one(&out[i], src[i], fmt.Sprintf("%s[%d]", field, i))
		}
		return out
	}

	one(&p.Sun, f.Sun, "sun")
	one(&p.GarbageBase, f.Garbage.Base, "garbage.base")
	one(&p.Dust, f.Dust, "dust")
	p.Planets = many(f.Planets, "planets")
	p.BandGas = many(f.BandGas, "band_gas")
	p.BandStars = many(f.BandStars, "band_stars")
	p.OuterStars = many(f.OuterStars, "outer_stars")
	p.DistantPlanets = many(f.DistantPlanets, "distant_planets")
	if err != nil {
		return nil, err
	}
	if p.BandStarSizes, err = starSizes(f.BandStarSizes); err != nil {
		return nil, fmt.Errorf("band_star_sizes: %w", err)
	}
	if p.OuterStarSizes, err = starSizes(f.OuterStarSizes); err != nil {
		return nil, fmt.Errorf("outer_star_sizes: %w", err)
	}
	return p, nil
}

func starSizes(names []string) ([]world.StarSize, error) {
	if len(names) == 0 {
		return nil, fmt.Errorf("empty size list")
	}
	out := make([]world.StarSize, len(names))
	for i, n := range names {
		switch n {
		case "small":
			out[i] = world.StarSmall
		case "medium":
			out[i] = world.StarMedium
		case "large":
			out[i] = world.StarLarge
		default:
			return nil, fmt.Errorf("unknown star size %q", n)
		}
	}
	return out, nil
}
