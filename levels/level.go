package levels

import (
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/milk9111/wallkick/common"
	"gopkg.in/yaml.v3"
)

//go:embed *.yaml
var LevelsFS embed.FS

const DefaultLevel = "training.yaml"

var ErrInvalidLevel = errors.New("levels: invalid level")

// Level is authored in physics units with Y up.
type Level struct {
	Name    string  `yaml:"name"`
	Gravity float64 `yaml:"gravity"`
	KillY   float64 `yaml:"kill_y"`
	Spawn   Point   `yaml:"spawn"`
	Solids  []Solid `yaml:"solids"`
}

type Point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// Solid is an axis-aligned box given by its bottom-left corner and size.
type Solid struct {
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	W        float64 `yaml:"w"`
	H        float64 `yaml:"h"`
	Friction float64 `yaml:"friction"`
}

// Center returns the box center.
func (s Solid) Center() (float64, float64) {
	return s.X + s.W/2, s.Y + s.H/2
}

// Bounds is the union of every solid plus the spawn point.
func (l *Level) Bounds() (minX, minY, maxX, maxY float64) {
	minX, minY = l.Spawn.X, l.Spawn.Y
	maxX, maxY = l.Spawn.X, l.Spawn.Y
	for _, s := range l.Solids {
		minX = min(minX, s.X)
		minY = min(minY, s.Y)
		maxX = max(maxX, s.X+s.W)
		maxY = max(maxY, s.Y+s.H)
	}
	return minX, minY, maxX, maxY
}

// Load reads a level by name, preferring levels/ on disk over the embedded
// copy. The .yaml extension is optional.
func Load(name string) (*Level, error) {
	clean := cleanLevelName(name)
	data, err := os.ReadFile(filepath.Join("levels", clean))
	if err != nil {
		data, err = LevelsFS.ReadFile(clean)
		if err != nil {
			return nil, fmt.Errorf("levels: read %s: %w", clean, err)
		}
	}
	lvl, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("levels: %s: %w", clean, err)
	}
	return lvl, nil
}

// Parse decodes and validates a level. Gravity defaults to common.Gravity.
func Parse(data []byte) (*Level, error) {
	var lvl Level
	if err := yaml.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("unmarshal level: %w", err)
	}
	if lvl.Gravity == 0 {
		lvl.Gravity = common.Gravity
	}
	if err := lvl.Validate(); err != nil {
		return nil, err
	}
	return &lvl, nil
}

func (l *Level) Validate() error {
	if len(l.Solids) == 0 {
		return fmt.Errorf("%w: no solids", ErrInvalidLevel)
	}
	for i, s := range l.Solids {
		if s.W <= 0 || s.H <= 0 {
			return fmt.Errorf("%w: solid %d has size %vx%v", ErrInvalidLevel, i, s.W, s.H)
		}
	}
	if l.KillY != 0 && l.Spawn.Y <= l.KillY {
		return fmt.Errorf("%w: spawn y %v is below kill_y %v", ErrInvalidLevel, l.Spawn.Y, l.KillY)
	}
	return nil
}

func cleanLevelName(name string) string {
	if name == "" {
		name = DefaultLevel
	}
	s := filepath.ToSlash(name)
	s = strings.TrimPrefix(s, "levels/")
	if filepath.Ext(s) == "" {
		s += ".yaml"
	}
	return s
}
