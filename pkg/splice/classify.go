package splice

// Grade is the quality classification of a measured splice loss.
type Grade string

const (
	GradeGood       Grade = "good"
	GradeAcceptable Grade = "acceptable"
	GradeHigh       Grade = "high"
	GradeFailed     Grade = "failed"
)

// Thresholds are the inclusive upper bounds (dB) for each grade. A loss
// above High is failed.
type Thresholds struct {
	Good       float64 `json:"good"`
	Acceptable float64 `json:"acceptable"`
	High       float64 `json:"high"`
}

// LossThresholds is the per-type boundary table. Fusion splices are held
// to the tighter industry values; mechanical splices run hotter.
var LossThresholds = map[Type]Thresholds{
	Fusion:     {Good: 0.10, Acceptable: 0.15, High: 0.30},
	Mechanical: {Good: 0.30, Acceptable: 0.50, High: 0.70},
}

// ClassifyLoss grades a loss reading against the type's threshold table.
// Unknown types grade with the stricter fusion thresholds.
func ClassifyLoss(loss float64, spliceType Type) Grade {
	th, ok := LossThresholds[spliceType]
	if !ok {
		th = LossThresholds[Fusion]
	}

	switch {
	case loss <= th.Good:
		return GradeGood
	case loss <= th.Acceptable:
		return GradeAcceptable
	case loss <= th.High:
		return GradeHigh
	default:
		return GradeFailed
	}
}
