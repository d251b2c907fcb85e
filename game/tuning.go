package game

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed default_tuning.yaml
var defaultTuningYAML []byte

// Tuning holds every layout constant and animation timing of the scene.
type Tuning struct {
	Screen  ScreenTuning  `yaml:"screen"`
	Zones   ZoneTuning    `yaml:"zones"`
	Bins    BinTuning     `yaml:"bins"`
	Tipping TipTuning     `yaml:"tipping"`
	Pieces  PieceTuning   `yaml:"pieces"`
	Spawner SpawnerTuning `yaml:"spawner"`
	Truck   TruckTuning   `yaml:"truck"`
	Stars   StarTuning    `yaml:"stars"`
}

type ScreenTuning struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type ZoneTuning struct {
	WidthRatio        float64 `yaml:"width_ratio"`
	HeightRatio       float64 `yaml:"height_ratio"`
	TruckXRatio       float64 `yaml:"truck_x_ratio"`
	TruckXOffset      float64 `yaml:"truck_x_offset"`
	TruckYRatio       float64 `yaml:"truck_y_ratio"`
	HomeXRatio        float64 `yaml:"home_x_ratio"`
	HomeColumnSpacing float64 `yaml:"home_column_spacing"`
	HomeColumns       int     `yaml:"home_columns"`
	HomeRows          int     `yaml:"home_rows"`
	HomeRowStart      float64 `yaml:"home_row_start"`
	HomeRowStep       float64 `yaml:"home_row_step"`
}

type BinTuning struct {
	Order          []Material    `yaml:"order"`
	Width          float64       `yaml:"width"`
	Height         float64       `yaml:"height"`
	DragScale      float64       `yaml:"drag_scale"`
	HighlightScale float64       `yaml:"highlight_scale"`
	RestTolerance  float64       `yaml:"rest_tolerance"`
	CleanupDelay   time.Duration `yaml:"cleanup_delay"`
}

type TipTuning struct {
	AngleDegrees float64       `yaml:"angle_degrees"`
	Rotate       time.Duration `yaml:"rotate"`
	Hold         time.Duration `yaml:"hold"`
	Return       time.Duration `yaml:"return"`
}

type PieceTuning struct {
	Size      float64       `yaml:"size"`
	Variants  int           `yaml:"variants"`
	DragScale float64       `yaml:"drag_scale"`
	Entry     time.Duration `yaml:"entry"`
	SnapBack  time.Duration `yaml:"snap_back"`
	Collect   time.Duration `yaml:"collect"`
}

type SpawnerTuning struct {
	Interval      time.Duration `yaml:"interval"`
	MaxPieces     int           `yaml:"max_pieces"`
	SlotBaseRatio float64       `yaml:"slot_base_ratio"`
	SlotSpacing   float64       `yaml:"slot_spacing"`
	RestOffset    float64       `yaml:"rest_offset"`
	EntryOffset   float64       `yaml:"entry_offset"`
}

type TruckTuning struct {
	ParkXRatio  float64       `yaml:"park_x_ratio"`
	YRatio      float64       `yaml:"y_ratio"`
	AwayOffset  float64       `yaml:"away_offset"`
	DriveIn     time.Duration `yaml:"drive_in"`
	DriveOut    time.Duration `yaml:"drive_out"`
	Wait        time.Duration `yaml:"wait"`
	GoThreshold int           `yaml:"go_threshold"`
	ButtonSize  float64       `yaml:"button_size"`
}

type StarTuning struct {
	Size         float64       `yaml:"size"`
	Jitter       int           `yaml:"jitter"`
	Stagger      time.Duration `yaml:"stagger"`
	MinSpeed     float64       `yaml:"min_speed"`
	MaxSpeed     float64       `yaml:"max_speed"`
	Flight       time.Duration `yaml:"flight"`
	Collect      time.Duration `yaml:"collect"`
	CollectScale float64       `yaml:"collect_scale"`
	CounterX     float64       `yaml:"counter_x"`
	CounterY     float64       `yaml:"counter_y"`
}

// DefaultTuning returns the built-in tuning.
func DefaultTuning() Tuning {
	var t Tuning
	if err := yaml.Unmarshal(defaultTuningYAML, &t); err != nil {
		panic(fmt.Sprintf("default tuning: %v", err))
	}
	return t
}

// ParseTuning overlays raw YAML on the built-in tuning, so a file only needs
// the keys it changes.
func ParseTuning(raw []byte) (Tuning, error) {
	t := DefaultTuning()
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return t, fmt.Errorf("tuning: %w", err)
	}
	if err := t.Validate(); err != nil {
		return t, err
	}
	return t, nil
}

// LoadTuning reads a tuning file. An empty path yields the defaults.
func LoadTuning(path string) (Tuning, error) {
	if path == "" {
		return DefaultTuning(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return Tuning{}, fmt.Errorf("read tuning: %w", err)
	}
	return ParseTuning(raw)
}

// Validate rejects tunings the scene cannot be built from.
func (t Tuning) Validate() error {
	switch {
	case t.Screen.Width <= 0 || t.Screen.Height <= 0:
		return fmt.Errorf("tuning: screen size must be positive")
	case t.Zones.HomeColumns <= 0 || t.Zones.HomeRows <= 0:
		return fmt.Errorf("tuning: home grid must have rows and columns")
	case len(t.Bins.Order) > t.Zones.HomeColumns*t.Zones.HomeRows:
		return fmt.Errorf("tuning: %d bins do not fit %d home zones", len(t.Bins.Order), t.Zones.HomeColumns*t.Zones.HomeRows)
	case t.Spawner.MaxPieces <= 0:
		return fmt.Errorf("tuning: max_pieces must be positive")
	case t.Spawner.Interval <= 0:
		return fmt.Errorf("tuning: spawn interval must be positive")
	case t.Pieces.Variants <= 0:
		return fmt.Errorf("tuning: variants must be positive")
	case t.Bins.RestTolerance <= 0:
		return fmt.Errorf("tuning: rest_tolerance must be positive")
	case t.Stars.MaxSpeed < t.Stars.MinSpeed:
		return fmt.Errorf("tuning: star max_speed below min_speed")
	}
	return nil
}

// Layout is the scene geometry derived from a tuning.
type Layout struct {
	ZoneWidth, ZoneHeight float64
	TruckZone             Point
	HomeZones             []Point
	TruckPark             Point
	Slots                 []Point
	Center                Point
}

func (t Tuning) Layout() Layout {
	w, h := t.Screen.Width, t.Screen.Height
	z := t.Zones

	l := Layout{
		ZoneWidth:  w * z.WidthRatio,
		ZoneHeight: h * z.HeightRatio,
		TruckPark:  Point{w * t.Truck.ParkXRatio, h * t.Truck.YRatio},
		Center:     Point{w / 2, h / 2},
	}
	l.TruckZone = Point{w*z.TruckXRatio + z.TruckXOffset + l.ZoneWidth/2, h * z.TruckYRatio}

	spacing := l.ZoneWidth * z.HomeColumnSpacing
	for row := range z.HomeRows {
		for col := range z.HomeColumns {
			l.HomeZones = append(l.HomeZones, Point{
				X: w*z.HomeXRatio + float64(col)*spacing,
				Y: h * (z.HomeRowStart + float64(row)*z.HomeRowStep),
			})
		}
	}

	restY := h - t.Spawner.RestOffset
	for i := range t.Spawner.MaxPieces {
		l.Slots = append(l.Slots, Point{w*t.Spawner.SlotBaseRatio + float64(i)*t.Spawner.SlotSpacing, restY})
	}
	return l
}
