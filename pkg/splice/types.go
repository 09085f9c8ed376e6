// Package splice records and classifies fiber-to-fiber connections
// within splice trays. Records are unique by (tray, fiberA, fiberB);
// re-submitting an existing pair updates it in place. Color identities
// for both ends are resolved through the colorcode package at write
// time so downstream consumers never re-derive them.
package splice

import (
	"fmt"

	"github.com/dd0wney/fiberplant/pkg/colorcode"
)

var (
	ErrSpliceNotFound = fmt.Errorf("splice not found")
	ErrInvalidFiber   = fmt.Errorf("fiber number out of range for cable")
	ErrInvalidInput   = fmt.Errorf("invalid splice input")
)

// Type is the splicing method.
type Type string

const (
	Fusion     Type = "fusion"
	Mechanical Type = "mechanical"
)

// Valid reports whether t is a known splice type.
func (t Type) Valid() bool {
	return t == Fusion || t == Mechanical
}

// Status is derived from whether a loss reading has been recorded.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
)

// Cable identifies one cable entering a tray. Cables at splice time are
// ephemeral: a name plus one of the supported fiber counts.
type Cable struct {
	Name       string `json:"name"`
	FiberCount int    `json:"fiberCount"`
}

// End is one side of a splice with its resolved color identity.
type End struct {
	CableName      string          `json:"cableName"`
	FiberNumber    int             `json:"fiberNumber"`
	TubeNumber     int             `json:"tubeNumber"`
	PositionInTube int             `json:"positionInTube"`
	TubeColor      colorcode.Color `json:"tubeColor"`
	FiberColor     colorcode.Color `json:"fiberColor"`
}

// Label renders the end as a field-readable designator, e.g.
// "FEEDER-01 f14 (tube 2 orange, fiber orange)".
func (e End) Label() string {
	return fmt.Sprintf("%s f%d (tube %d %s, fiber %s)",
		e.CableName, e.FiberNumber, e.TubeNumber, e.TubeColor.Name, e.FiberColor.Name)
}

// Splice is one recorded fiber-to-fiber connection.
type Splice struct {
	ID         string   `json:"id"`
	TrayID     string   `json:"trayId"`
	A          End      `json:"a"`
	B          End      `json:"b"`
	Type       Type     `json:"spliceType"`
	Loss       *float64 `json:"loss,omitempty"`
	Status     Status   `json:"status"`
	Technician string   `json:"technician,omitempty"`
	Notes      string   `json:"notes,omitempty"`
	CreatedAt  int64    `json:"createdAt"`
	UpdatedAt  int64    `json:"updatedAt"`
}

// Clone returns a deep copy so callers can't mutate store state.
func (s *Splice) Clone() *Splice {
	if s == nil {
		return nil
	}
	out := *s
	if s.Loss != nil {
		loss := *s.Loss
		out.Loss = &loss
	}
	return &out
}

// Pair is the identity of a splice within its tray.
type Pair struct {
	FiberA int `json:"fiberA"`
	FiberB int `json:"fiberB"`
}

// Session carries the remembered operator preferences explicitly instead
// of package-level state. Callers construct one per editing session.
type Session struct {
	Technician        string `json:"technician"`
	DefaultSpliceType Type   `json:"defaultSpliceType"`
}

// resolveEnd resolves a fiber's color identity within its cable.
func resolveEnd(cable Cable, fiberNumber int) (End, error) {
	info, ok := colorcode.FiberInfo(fiberNumber, cable.FiberCount)
	if !ok {
		return End{}, fmt.Errorf("fiber %d in cable %q (%dF): %w",
			fiberNumber, cable.Name, cable.FiberCount, ErrInvalidFiber)
	}
	return End{
		CableName:      cable.Name,
		FiberNumber:    fiberNumber,
		TubeNumber:     info.TubeNumber,
		PositionInTube: info.PositionInTube,
		TubeColor:      info.TubeColor,
		FiberColor:     info.FiberColor,
	}, nil
}
