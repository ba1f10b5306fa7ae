// Package level loads encounter layouts from Tiled maps.
package level

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strconv"
	"strings"

	"github.com/automoto/cleave/config"
	"github.com/lafriks/go-tiled"
)

// Maps holds the built-in encounter maps.
//
//go:embed maps/*.tmx
var Maps embed.FS

// Object group and layer names read from a map.
const (
	WallsGroup       = "Walls"
	PlayerSpawnGroup = "PlayerSpawn"
	EnemiesGroup     = "Enemies"
	WallTileLayer    = "wg-tiles"
)

type Rect struct {
	X, Y, W, H float64
}

type Point struct {
	X, Y float64
}

// EnemySpawn places one enemy. Nil overrides keep the type's value.
type EnemySpawn struct {
	Point
	Type           string
	AlwaysChase    *bool
	DetectionRange *float64
	AttackRange    *float64
}

// Apply writes the spawn's overrides into et.
func (s EnemySpawn) Apply(et *config.EnemyTypeConfig) {
	if s.AlwaysChase != nil {
		et.AlwaysChase = *s.AlwaysChase
	}
	if s.DetectionRange != nil {
		et.DetectionRange = *s.DetectionRange
	}
	if s.AttackRange != nil {
		et.AttackRange = *s.AttackRange
	}
}

// Layout is everything an encounter needs from a map.
type Layout struct {
	Name        string
	Width       int // pixels
	Height      int
	Walls       []Rect
	PlayerSpawn Point
	HasPlayer   bool
	Enemies     []EnemySpawn
}

// Load parses a TMX file. It takes an fs.FS so callers can pass Maps or
// os.DirFS.
func Load(fsys fs.FS, tmxPath string) (*Layout, error) {
	levelMap, err := tiled.LoadFile(tmxPath, tiled.WithFileSystem(fsys))
	if err != nil {
		return nil, fmt.Errorf("load TMX %s: %w", tmxPath, err)
	}

	layout := &Layout{
		Name:   strings.TrimSuffix(path.Base(tmxPath), ".tmx"),
		Width:  levelMap.Width * levelMap.TileWidth,
		Height: levelMap.Height * levelMap.TileHeight,
	}

	// Solid tiles, one wall per tile
	tileW := float64(levelMap.TileWidth)
	tileH := float64(levelMap.TileHeight)
	for _, layer := range levelMap.Layers {
		if layer.Name != WallTileLayer {
			continue
		}
		for y := 0; y < levelMap.Height; y++ {
			for x := 0; x < levelMap.Width; x++ {
				tile := layer.Tiles[y*levelMap.Width+x]
				if tile.IsNil() {
					continue
				}
				layout.Walls = append(layout.Walls, Rect{
					X: float64(x) * tileW,
					Y: float64(y) * tileH,
					W: tileW,
					H: tileH,
				})
			}
		}
		break
	}

	for _, og := range levelMap.ObjectGroups {
		switch og.Name {
		case WallsGroup:
			for _, o := range og.Objects {
				if o.Width <= 0 || o.Height <= 0 {
					return nil, fmt.Errorf("load TMX %s: wall %d has no area", tmxPath, o.ID)
				}
				layout.Walls = append(layout.Walls, Rect{X: o.X, Y: o.Y, W: o.Width, H: o.Height})
			}
		case PlayerSpawnGroup:
			if len(og.Objects) > 0 {
				o := og.Objects[0]
				layout.PlayerSpawn = Point{X: o.X, Y: o.Y}
				layout.HasPlayer = true
			}
		case EnemiesGroup:
			for _, o := range og.Objects {
				spawn, err := parseEnemy(o)
				if err != nil {
					return nil, fmt.Errorf("load TMX %s: enemy %d: %w", tmxPath, o.ID, err)
				}
				layout.Enemies = append(layout.Enemies, spawn)
			}
		}
	}

	// Sort enemies left-to-right for consistent spawn order
	sort.SliceStable(layout.Enemies, func(i, j int) bool {
		return layout.Enemies[i].X < layout.Enemies[j].X
	})

	return layout, nil
}

func parseEnemy(o *tiled.Object) (EnemySpawn, error) {
	spawn := EnemySpawn{
		Point: Point{X: o.X, Y: o.Y},
		Type:  o.Properties.GetString("enemy"),
	}
	for _, p := range o.Properties {
		switch p.Name {
		case "always_chase":
			v, err := strconv.ParseBool(p.Value)
			if err != nil {
				return spawn, fmt.Errorf("always_chase: %w", err)
			}
			spawn.AlwaysChase = &v
		case "detection_range":
			v, err := strconv.ParseFloat(p.Value, 64)
			if err != nil {
				return spawn, fmt.Errorf("detection_range: %w", err)
			}
			spawn.DetectionRange = &v
		case "attack_range":
			v, err := strconv.ParseFloat(p.Value, 64)
			if err != nil {
				return spawn, fmt.Errorf("attack_range: %w", err)
			}
			spawn.AttackRange = &v
		}
	}
	return spawn, nil
}

// LoadAll discovers all .tmx files in dir within fsys and returns their
// layouts keyed by stem name plus a sorted list of names.
func LoadAll(fsys fs.FS, dir string) (map[string]*Layout, []string, error) {
	pattern := dir + "/*.tmx"
	matches, err := fs.Glob(fsys, pattern)
	if err != nil {
		return nil, nil, fmt.Errorf("glob %s: %w", pattern, err)
	}
	if len(matches) == 0 {
		return nil, nil, fmt.Errorf("no .tmx files found in %s", dir)
	}

	layouts := make(map[string]*Layout, len(matches))
	names := make([]string, 0, len(matches))
	for _, p := range matches {
		layout, err := Load(fsys, p)
		if err != nil {
			return nil, nil, err
		}
		layouts[layout.Name] = layout
		names = append(names, layout.Name)
	}

	sort.Strings(names)
	return layouts, names, nil
}
