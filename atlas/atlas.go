// Package atlas reads and checks sprite sheet descriptions in the JSON hash
// layout written by common texture packers.
package atlas

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// ErrInvalid is returned for documents that are not a usable atlas.
var ErrInvalid = errors.New("invalid atlas")

//go:embed atlas.schema.json
var schemaSource string

var schema = jsonschema.MustCompileString("atlas.schema.json", schemaSource)

// Rect is a region of the sheet, in pixels.
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

type Size struct {
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// TextureFrame places one sprite on the sheet. A rotated frame is stored
// turned 90 degrees, so its footprint is H wide and W tall.
type TextureFrame struct {
	Frame            Rect `json:"frame"`
	Rotated          bool `json:"rotated"`
	Trimmed          bool `json:"trimmed"`
	SpriteSourceSize Rect `json:"spriteSourceSize"`
	SourceSize       Size `json:"sourceSize"`
}

// Footprint is the area the frame covers on the sheet.
func (f TextureFrame) Footprint() Rect {
	r := f.Frame
	if f.Rotated {
		r.W, r.H = r.H, r.W
	}
	return r
}

type Meta struct {
	App     string          `json:"app,omitempty"`
	Version string          `json:"version,omitempty"`
	Image   string          `json:"image"`
	Format  string          `json:"format,omitempty"`
	Size    Size            `json:"size"`
	Scale   json.RawMessage `json:"scale,omitempty"`
}

type Atlas struct {
	Frames map[string]TextureFrame `json:"frames"`
	Meta   Meta                    `json:"meta"`
}

// FrameNames returns the frame names in sorted order.
func (a *Atlas) FrameNames() []string {
	names := make([]string, 0, len(a.Frames))
	for name := range a.Frames {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Parse validates raw and decodes it. Every failure wraps ErrInvalid.
func Parse(raw []byte) (*Atlas, error) {
	if err := validateSchema(raw); err != nil {
		return nil, err
	}

	var a Atlas
	if err := json.Unmarshal(raw, &a); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if err := a.checkBounds(); err != nil {
		return nil, err
	}
	return &a, nil
}

// Validate reports whether raw is a usable atlas without keeping the result.
func Validate(raw []byte) error {
	_, err := Parse(raw)
	return err
}

func validateSchema(raw []byte) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if dec.More() {
		return fmt.Errorf("%w: trailing data after document", ErrInvalid)
	}
	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

// checkBounds rejects frames that reach past the sheet. A sheet without a
// size is not checked.
func (a *Atlas) checkBounds() error {
	sheet := a.Meta.Size
	if sheet.W == 0 || sheet.H == 0 {
		return nil
	}

	var outside []string
	for _, name := range a.FrameNames() {
		r := a.Frames[name].Footprint()
		if r.X+r.W > sheet.W || r.Y+r.H > sheet.H {
			outside = append(outside, name)
		}
	}
	if len(outside) > 0 {
		return fmt.Errorf("%w: frames outside %gx%g sheet: %s", ErrInvalid, sheet.W, sheet.H, strings.Join(outside, ", "))
	}
	return nil
}
