package lossbudget

import "fmt"

// Input describes one optical link.
type Input struct {
	FiberType         FiberType     `json:"fiberType"`
	WavelengthNm      int           `json:"wavelengthNm"`
	DistanceKm        float64       `json:"distanceKm"`
	FusionSplices     int           `json:"fusionSplices"`
	MechanicalSplices int           `json:"mechanicalSplices"`
	ConnectorPairs    int           `json:"connectorPairs"`
	ConnectorType     ConnectorType `json:"connectorType,omitempty"`
	MarginDb          float64       `json:"marginDb"`
	// UseMax budgets with maximum component losses instead of typical.
	UseMax bool `json:"useMax"`
}

// Breakdown is the itemized loss budget. TotalLoss is always the exact
// sum of the five terms.
type Breakdown struct {
	FiberLoss      float64 `json:"fiberLoss"`
	FusionLoss     float64 `json:"fusionLoss"`
	MechanicalLoss float64 `json:"mechanicalLoss"`
	ConnectorLoss  float64 `json:"connectorLoss"`
	MarginLoss     float64 `json:"marginLoss"`
	TotalLoss      float64 `json:"totalLoss"`
}

// Calculate computes the itemized loss budget for a link.
func Calculate(in Input) (Breakdown, error) {
	if in.DistanceKm < 0 || in.FusionSplices < 0 || in.MechanicalSplices < 0 ||
		in.ConnectorPairs < 0 || in.MarginDb < 0 {
		return Breakdown{}, fmt.Errorf("negative quantity: %w", ErrInvalidInput)
	}

	wavelengths, ok := Attenuation[in.FiberType]
	if !ok {
		return Breakdown{}, fmt.Errorf("%q: %w", in.FiberType, ErrUnknownFiberType)
	}
	attenuation, ok := wavelengths[in.WavelengthNm]
	if !ok {
		return Breakdown{}, fmt.Errorf("%dnm on %s: %w", in.WavelengthNm, in.FiberType, ErrUnknownWavelength)
	}

	var connectorUnit float64
	if in.ConnectorPairs > 0 {
		loss, ok := ConnectorLoss[in.ConnectorType]
		if !ok {
			return Breakdown{}, fmt.Errorf("%q: %w", in.ConnectorType, ErrUnknownConnectorType)
		}
		connectorUnit = loss.Pick(in.UseMax)
	}

	b := Breakdown{
		FiberLoss:      in.DistanceKm * attenuation,
		FusionLoss:     float64(in.FusionSplices) * SpliceLoss["fusion"].Pick(in.UseMax),
		MechanicalLoss: float64(in.MechanicalSplices) * SpliceLoss["mechanical"].Pick(in.UseMax),
		ConnectorLoss:  float64(in.ConnectorPairs) * connectorUnit,
		MarginLoss:     in.MarginDb,
	}
	b.TotalLoss = b.FiberLoss + b.FusionLoss + b.MechanicalLoss + b.ConnectorLoss + b.MarginLoss
	return b, nil
}

// Verdict is the result of comparing a computed loss against an
// equipment power budget.
type Verdict struct {
	Class    EquipmentClass `json:"class"`
	BudgetDb float64        `json:"budgetDb"`
	Margin   float64        `json:"margin"`
	Pass     bool           `json:"pass"`
}

// CheckPowerBudget compares a total link loss against a named equipment
// budget. Margin is budget minus loss; the link passes when the margin
// is not negative.
func CheckPowerBudget(totalLoss float64, class EquipmentClass) (Verdict, error) {
	budget, ok := PowerBudgets[class]
	if !ok {
		return Verdict{}, fmt.Errorf("%q: %w", class, ErrUnknownEquipmentClass)
	}

	margin := budget - totalLoss
	return Verdict{
		Class:    class,
		BudgetDb: budget,
		Margin:   margin,
		Pass:     margin >= 0,
	}, nil
}
