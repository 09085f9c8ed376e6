// Package validation checks UI-facing requests before they reach the
// engine stores, so form handlers get field-level messages instead of
// store errors.
package validation

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"
)

var (
	// validate is a singleton validator instance
	validate *validator.Validate

	// Validation constants
	MaxNameLength       = 80
	MaxNotesLength      = 1000
	MaxTechnicianLength = 80
	MaxBatchCount       = 288
	MaxTrayCapacity     = 96

	namePattern = regexp.MustCompile(`^[^\x00-\x1f]+$`)
)

func init() {
	validate = validator.New()
}

// SpliceRequest is a single splice form submission.
type SpliceRequest struct {
	TrayID      string   `json:"trayId" validate:"required"`
	CableAName  string   `json:"cableAName" validate:"required,max=80"`
	CableAFiber int      `json:"cableAFiberCount" validate:"required,oneof=12 24 48 96 144 216 288"`
	CableBName  string   `json:"cableBName" validate:"required,max=80"`
	CableBFiber int      `json:"cableBFiberCount" validate:"required,oneof=12 24 48 96 144 216 288"`
	FiberA      int      `json:"fiberA" validate:"required,min=1,max=288"`
	FiberB      int      `json:"fiberB" validate:"required,min=1,max=288"`
	SpliceType  string   `json:"spliceType" validate:"required,oneof=fusion mechanical"`
	Loss        *float64 `json:"loss" validate:"omitempty,min=0,max=50"`
	Technician  string   `json:"technician" validate:"omitempty,max=80"`
	Notes       string   `json:"notes" validate:"omitempty,max=1000"`
}

// BatchRequest is a batch-generation form submission.
type BatchRequest struct {
	TrayID      string `json:"trayId" validate:"required"`
	CableAName  string `json:"cableAName" validate:"required,max=80"`
	CableAFiber int    `json:"cableAFiberCount" validate:"required,oneof=12 24 48 96 144 216 288"`
	CableBName  string `json:"cableBName" validate:"required,max=80"`
	CableBFiber int    `json:"cableBFiberCount" validate:"required,oneof=12 24 48 96 144 216 288"`
	StartFiberA int    `json:"startFiberA" validate:"required,min=1,max=288"`
	StartFiberB int    `json:"startFiberB" validate:"required,min=1,max=288"`
	Count       int    `json:"count" validate:"required,min=1,max=288"`
	SpliceType  string `json:"spliceType" validate:"omitempty,oneof=fusion mechanical"`
}

// ElementRequest is an element create/edit form submission.
type ElementRequest struct {
	Type      string   `json:"type" validate:"required,oneof=OLT ODF CLOSURE LCP NAP"`
	Name      string   `json:"name" validate:"omitempty,max=80"`
	ParentID  string   `json:"parentId" validate:"omitempty"`
	Latitude  *float64 `json:"latitude" validate:"omitempty,min=-90,max=90"`
	Longitude *float64 `json:"longitude" validate:"omitempty,min=-180,max=180"`
}

// TrayRequest is a tray create form submission.
type TrayRequest struct {
	EnclosureID string `json:"enclosureId" validate:"required"`
	Number      int    `json:"number" validate:"required,min=1,max=96"`
	Capacity    int    `json:"capacity" validate:"required,min=1,max=96"`
}

// BudgetRequest is a loss-budget form submission.
type BudgetRequest struct {
	FiberType         string  `json:"fiberType" validate:"required,oneof=singlemode multimode"`
	WavelengthNm      int     `json:"wavelengthNm" validate:"required,oneof=850 1300 1310 1490 1550"`
	DistanceKm        float64 `json:"distanceKm" validate:"min=0,max=200"`
	FusionSplices     int     `json:"fusionSplices" validate:"min=0,max=1000"`
	MechanicalSplices int     `json:"mechanicalSplices" validate:"min=0,max=1000"`
	ConnectorPairs    int     `json:"connectorPairs" validate:"min=0,max=100"`
	ConnectorType     string  `json:"connectorType" validate:"omitempty,oneof=SC LC FC ST SC/APC MPO"`
	MarginDb          float64 `json:"marginDb" validate:"min=0,max=20"`
}

// ValidateSpliceRequest validates a splice submission.
func ValidateSpliceRequest(req *SpliceRequest) error {
	if req == nil {
		return errors.New("splice request cannot be nil")
	}
	if err := validate.Struct(req); err != nil {
		return formatValidationError(err)
	}
	if req.FiberA > req.CableAFiber {
		return fmt.Errorf("FiberA: fiber %d exceeds cable A's %d fibers", req.FiberA, req.CableAFiber)
	}
	if req.FiberB > req.CableBFiber {
		return fmt.Errorf("FiberB: fiber %d exceeds cable B's %d fibers", req.FiberB, req.CableBFiber)
	}
	return nil
}

// ValidateBatchRequest validates a batch-generation submission.
func ValidateBatchRequest(req *BatchRequest) error {
	if req == nil {
		return errors.New("batch request cannot be nil")
	}
	if err := validate.Struct(req); err != nil {
		return formatValidationError(err)
	}
	if req.StartFiberA > req.CableAFiber {
		return fmt.Errorf("StartFiberA: fiber %d exceeds cable A's %d fibers", req.StartFiberA, req.CableAFiber)
	}
	if req.StartFiberB > req.CableBFiber {
		return fmt.Errorf("StartFiberB: fiber %d exceeds cable B's %d fibers", req.StartFiberB, req.CableBFiber)
	}
	return nil
}

// ValidateElementRequest validates an element create/edit submission.
func ValidateElementRequest(req *ElementRequest) error {
	if req == nil {
		return errors.New("element request cannot be nil")
	}
	if err := validate.Struct(req); err != nil {
		return formatValidationError(err)
	}
	if req.Name != "" && !namePattern.MatchString(req.Name) {
		return fmt.Errorf("Name: contains control characters")
	}
	// GPS comes as a pair or not at all.
	if (req.Latitude == nil) != (req.Longitude == nil) {
		return errors.New("Latitude/Longitude: both coordinates are required")
	}
	return nil
}

// ValidateTrayRequest validates a tray submission.
func ValidateTrayRequest(req *TrayRequest) error {
	if req == nil {
		return errors.New("tray request cannot be nil")
	}
	if err := validate.Struct(req); err != nil {
		return formatValidationError(err)
	}
	return nil
}

// ValidateBudgetRequest validates a loss-budget submission.
func ValidateBudgetRequest(req *BudgetRequest) error {
	if req == nil {
		return errors.New("budget request cannot be nil")
	}
	if err := validate.Struct(req); err != nil {
		return formatValidationError(err)
	}
	if req.ConnectorPairs > 0 && req.ConnectorType == "" {
		return errors.New("ConnectorType: required when connector pairs are present")
	}
	return nil
}

// formatValidationError converts validator errors to a more user-friendly format
func formatValidationError(err error) error {
	if err == nil {
		return nil
	}

	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	// Return the first validation error in a user-friendly format
	for _, e := range validationErrs {
		field := e.Field()
		tag := e.Tag()
		param := e.Param()

		switch tag {
		case "required":
			return fmt.Errorf("%s: field is required", field)
		case "min":
			return fmt.Errorf("%s: must be at least %s", field, param)
		case "max":
			return fmt.Errorf("%s: must not exceed %s", field, param)
		case "oneof":
			return fmt.Errorf("%s: must be one of %s", field, param)
		default:
			return fmt.Errorf("%s: validation failed (%s)", field, tag)
		}
	}

	return err
}
