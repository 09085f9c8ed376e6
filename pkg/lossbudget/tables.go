// Package lossbudget computes optical link loss budgets and checks them
// against named equipment power budgets. Everything is deterministic
// arithmetic over the lookup tables in this file; there is no hidden
// configuration.
package lossbudget

import "fmt"

var (
	ErrUnknownFiberType      = fmt.Errorf("unknown fiber type")
	ErrUnknownWavelength     = fmt.Errorf("unsupported wavelength for fiber type")
	ErrUnknownConnectorType  = fmt.Errorf("unknown connector type")
	ErrUnknownEquipmentClass = fmt.Errorf("unknown equipment class")
	ErrInvalidInput          = fmt.Errorf("invalid budget input")
)

// FiberType selects the attenuation table.
type FiberType string

const (
	Singlemode FiberType = "singlemode"
	Multimode  FiberType = "multimode"
)

// ConnectorType selects the connector insertion-loss row.
type ConnectorType string

const (
	ConnectorSC  ConnectorType = "SC"
	ConnectorLC  ConnectorType = "LC"
	ConnectorFC  ConnectorType = "FC"
	ConnectorST  ConnectorType = "ST"
	ConnectorAPC ConnectorType = "SC/APC"
	ConnectorMPO ConnectorType = "MPO"
)

// EquipmentClass names an optical power-budget profile.
type EquipmentClass string

const (
	GPONClassA  EquipmentClass = "GPON Class A"
	GPONClassBP EquipmentClass = "GPON Class B+"
	GPONClassCP EquipmentClass = "GPON Class C+"
	XGSPONN1    EquipmentClass = "XGS-PON N1"
	XGSPONN2    EquipmentClass = "XGS-PON N2"
	XGSPONE1    EquipmentClass = "XGS-PON E1"
	EPONPX20    EquipmentClass = "EPON PX20"
	Eth1000LX   EquipmentClass = "1000BASE-LX"
	Eth10GLR    EquipmentClass = "10GBASE-LR"
)

// TypicalMax is a typical/maximum loss pair (dB). Which one applies is
// selected by Input.UseMax.
type TypicalMax struct {
	Typical float64 `json:"typical"`
	Max     float64 `json:"max"`
}

// Pick returns the value selected by useMax.
func (tm TypicalMax) Pick(useMax bool) float64 {
	if useMax {
		return tm.Max
	}
	return tm.Typical
}

// Attenuation is fiber attenuation in dB/km by fiber type and wavelength
// (nm).
var Attenuation = map[FiberType]map[int]float64{
	Singlemode: {
		1310: 0.5,
		1490: 0.5,
		1550: 0.4,
	},
	Multimode: {
		850:  3.0,
		1300: 1.0,
	},
}

// SpliceLoss is per-splice insertion loss by splicing method.
var SpliceLoss = map[string]TypicalMax{
	"fusion":     {Typical: 0.1, Max: 0.3},
	"mechanical": {Typical: 0.3, Max: 0.7},
}

// ConnectorLoss is per-mated-pair insertion loss by connector type.
var ConnectorLoss = map[ConnectorType]TypicalMax{
	ConnectorSC:  {Typical: 0.3, Max: 0.75},
	ConnectorLC:  {Typical: 0.3, Max: 0.75},
	ConnectorFC:  {Typical: 0.3, Max: 0.75},
	ConnectorST:  {Typical: 0.3, Max: 0.75},
	ConnectorAPC: {Typical: 0.25, Max: 0.5},
	ConnectorMPO: {Typical: 0.35, Max: 0.75},
}

// PowerBudgets is the allowed end-to-end loss (dB) per equipment class.
var PowerBudgets = map[EquipmentClass]float64{
	GPONClassA:  20.0,
	GPONClassBP: 28.0,
	GPONClassCP: 32.0,
	XGSPONN1:    29.0,
	XGSPONN2:    31.0,
	XGSPONE1:    33.0,
	EPONPX20:    24.0,
	Eth1000LX:   10.5,
	Eth10GLR:    9.4,
}

// EquipmentClasses returns the known classes in a stable order for menus.
func EquipmentClasses() []EquipmentClass {
	return []EquipmentClass{
		GPONClassA, GPONClassBP, GPONClassCP,
		XGSPONN1, XGSPONN2, XGSPONE1,
		EPONPX20, Eth1000LX, Eth10GLR,
	}
}
