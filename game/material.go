package game

import (
	"fmt"
	"strings"
)

// Material is the kind of waste a bin collects and a piece is made of.
type Material int

const (
	Plastic Material = iota
	Food
	General
	Metal
	Glass
	Paper
)

// Materials lists every material in declaration order.
var Materials = []Material{Plastic, Food, General, Metal, Glass, Paper}

var materialNames = [...]string{"plastic", "food", "general", "metal", "glass", "paper"}

func (m Material) String() string {
	if m < 0 || int(m) >= len(materialNames) {
		return fmt.Sprintf("material(%d)", int(m))
	}
	return materialNames[m]
}

// ParseMaterial accepts a material name in any case.
func ParseMaterial(s string) (Material, error) {
	for i, name := range materialNames {
		if strings.EqualFold(s, name) {
			return Material(i), nil
		}
	}
	return 0, fmt.Errorf("unknown material %q", s)
}

func (m Material) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *Material) UnmarshalText(text []byte) error {
	parsed, err := ParseMaterial(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
