// Package colorcode implements the TIA-598 twelve-color code used to
// identify buffer tubes and individual fibers inside an outside-plant cable.
//
// A cable of N fibers is organized into buffer tubes of 12 fibers each.
// Tube colors and fiber colors both cycle through the same ordered
// 12-entry palette; for cables larger than 144 fibers the tube color
// sequence repeats and tubes are distinguished by their group banding.
//
// Everything in this package is a pure function over a fixed table.
// Out-of-range lookups return ok=false rather than an error so callers
// can render an empty/placeholder state.
package colorcode

// FibersPerTube is the number of fibers in one buffer tube.
const FibersPerTube = 12

// TubesPerGroup is the number of tubes in one banding group. After this
// many tubes the tube color sequence starts over.
const TubesPerGroup = 12

// Color is one entry of the 12-color code. Label is a contrasting text
// color suitable for rendering a readable swatch on top of Hex.
type Color struct {
	Name  string `json:"name"`
	Hex   string `json:"hex"`
	Label string `json:"label"`
}

// palette is the fixed TIA-598 color order, shared by tube- and
// fiber-level coding.
var palette = [FibersPerTube]Color{
	{Name: "blue", Hex: "#0000FF", Label: "#FFFFFF"},
	{Name: "orange", Hex: "#FF7F00", Label: "#000000"},
	{Name: "green", Hex: "#008000", Label: "#FFFFFF"},
	{Name: "brown", Hex: "#8B4513", Label: "#FFFFFF"},
	{Name: "slate", Hex: "#708090", Label: "#FFFFFF"},
	{Name: "white", Hex: "#FFFFFF", Label: "#000000"},
	{Name: "red", Hex: "#FF0000", Label: "#FFFFFF"},
	{Name: "black", Hex: "#000000", Label: "#FFFFFF"},
	{Name: "yellow", Hex: "#FFFF00", Label: "#000000"},
	{Name: "violet", Hex: "#8A2BE2", Label: "#FFFFFF"},
	{Name: "rose", Hex: "#FF69B4", Label: "#000000"},
	{Name: "aqua", Hex: "#00FFFF", Label: "#000000"},
}

// ValidFiberCounts lists the cable sizes the engine supports.
var ValidFiberCounts = []int{12, 24, 48, 96, 144, 216, 288}

// IsValidFiberCount reports whether n is one of the supported cable sizes.
func IsValidFiberCount(n int) bool {
	for _, c := range ValidFiberCounts {
		if n == c {
			return true
		}
	}
	return false
}

// Palette returns a copy of the 12-entry color table in code order.
func Palette() []Color {
	out := make([]Color, FibersPerTube)
	copy(out[:], palette[:])
	return out
}

// ColorAt returns the palette entry for a 1-based position within a tube
// (or a 1-based tube number within a group).
func ColorAt(position int) (Color, bool) {
	if position < 1 || position > FibersPerTube {
		return Color{}, false
	}
	return palette[position-1], true
}

// FiberIdentity is the resolved identity of one fiber within a cable.
type FiberIdentity struct {
	FiberNumber    int   `json:"fiberNumber"`
	TubeNumber     int   `json:"tubeNumber"`
	TubeGroup      int   `json:"tubeGroup"`
	PositionInTube int   `json:"positionInTube"`
	TubeColor      Color `json:"tubeColor"`
	FiberColor     Color `json:"fiberColor"`
}

// Tube describes one buffer tube of a cable.
type Tube struct {
	TubeNumber int   `json:"tubeNumber"`
	TubeGroup  int   `json:"tubeGroup"`
	TubeColor  Color `json:"tubeColor"`
	StartFiber int   `json:"startFiber"`
	EndFiber   int   `json:"endFiber"`
}

// FiberInfo resolves a global fiber number within a cable of the given
// size to its tube/position/color identity. ok is false when the fiber
// number is out of range or the cable size is unsupported.
func FiberInfo(fiberNumber, fiberCount int) (FiberIdentity, bool) {
	if !IsValidFiberCount(fiberCount) || fiberNumber < 1 || fiberNumber > fiberCount {
		return FiberIdentity{}, false
	}

	tube := (fiberNumber-1)/FibersPerTube + 1
	pos := (fiberNumber-1)%FibersPerTube + 1

	return FiberIdentity{
		FiberNumber:    fiberNumber,
		TubeNumber:     tube,
		TubeGroup:      (tube-1)/TubesPerGroup + 1,
		PositionInTube: pos,
		TubeColor:      palette[(tube-1)%FibersPerTube],
		FiberColor:     palette[pos-1],
	}, true
}

// FiberNumber is the exact inverse of FiberInfo: it maps a (tube,
// position) pair back to the global fiber number. ok is false when the
// pair does not exist within a cable of the given size.
func FiberNumber(tubeNumber, positionInTube, fiberCount int) (int, bool) {
	if !IsValidFiberCount(fiberCount) {
		return 0, false
	}
	if positionInTube < 1 || positionInTube > FibersPerTube {
		return 0, false
	}
	if tubeNumber < 1 {
		return 0, false
	}

	n := (tubeNumber-1)*FibersPerTube + positionInTube
	if n > fiberCount {
		return 0, false
	}
	return n, true
}

// TubesFor returns the ordered buffer tube listing for a cable. The last
// tube holds fewer than 12 fibers when fiberCount is not a multiple of
// 12. Returns nil for unsupported cable sizes.
func TubesFor(fiberCount int) []Tube {
	if !IsValidFiberCount(fiberCount) {
		return nil
	}

	tubeCount := (fiberCount + FibersPerTube - 1) / FibersPerTube
	tubes := make([]Tube, 0, tubeCount)
	for t := 1; t <= tubeCount; t++ {
		end := t * FibersPerTube
		if end > fiberCount {
			end = fiberCount
		}
		tubes = append(tubes, Tube{
			TubeNumber: t,
			TubeGroup:  (t-1)/TubesPerGroup + 1,
			TubeColor:  palette[(t-1)%FibersPerTube],
			StartFiber: (t-1)*FibersPerTube + 1,
			EndFiber:   end,
		})
	}
	return tubes
}

// FibersInTube returns the ordered fiber descriptors for one buffer tube.
// Returns nil when the tube does not exist within the cable.
func FibersInTube(tubeNumber, fiberCount int) []FiberIdentity {
	start, ok := FiberNumber(tubeNumber, 1, fiberCount)
	if !ok {
		return nil
	}

	fibers := make([]FiberIdentity, 0, FibersPerTube)
	for n := start; n < start+FibersPerTube && n <= fiberCount; n++ {
		info, ok := FiberInfo(n, fiberCount)
		if !ok {
			break
		}
		fibers = append(fibers, info)
	}
	return fibers
}
