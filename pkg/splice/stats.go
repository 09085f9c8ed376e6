package splice

// Summary aggregates a set of splices for dashboards and tray views.
type Summary struct {
	Total     int     `json:"total"`
	Completed int     `json:"completed"`
	Pending   int     `json:"pending"`
	// AvgLoss is the mean over splices with a recorded loss only;
	// zero when none have one.
	AvgLoss float64 `json:"avgLoss"`
	// PassRate is the share of measured splices grading good or
	// acceptable, in [0,1]; zero when nothing is measured.
	PassRate float64 `json:"passRate"`
}

// Stats computes summary statistics over the given splices.
func Stats(splices []*Splice) Summary {
	sum := Summary{Total: len(splices)}

	var lossTotal float64
	var measured, passed int
	for _, sp := range splices {
		if sp.Loss == nil {
			sum.Pending++
			continue
		}
		sum.Completed++
		measured++
		lossTotal += *sp.Loss

		switch ClassifyLoss(*sp.Loss, sp.Type) {
		case GradeGood, GradeAcceptable:
			passed++
		}
	}

	if measured > 0 {
		sum.AvgLoss = lossTotal / float64(measured)
		sum.PassRate = float64(passed) / float64(measured)
	}
	return sum
}
