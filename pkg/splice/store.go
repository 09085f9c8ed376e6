package splice

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dd0wney/fiberplant/pkg/logging"
	"github.com/dd0wney/fiberplant/pkg/metrics"
)

// Store is the in-memory splice continuity store. All methods are safe
// for concurrent use; returned records are clones.
type Store struct {
	mu       sync.RWMutex
	splices  map[string]*Splice         // splice ID -> record
	byTray   map[string]map[Pair]string // tray ID -> pair -> splice ID
	logger   logging.Logger
	registry *metrics.Registry
}

// StoreConfig configures optional logging and instrumentation.
type StoreConfig struct {
	Logger  logging.Logger
	Metrics *metrics.Registry
}

// NewStore creates an empty splice store.
func NewStore(cfg StoreConfig) *Store {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	return &Store{
		splices:  make(map[string]*Splice),
		byTray:   make(map[string]map[Pair]string),
		logger:   logger.With(logging.Component("splice")),
		registry: cfg.Metrics,
	}
}

// UpsertInput is one splice submission.
type UpsertInput struct {
	TrayID     string
	CableA     Cable
	CableB     Cable
	FiberA     int
	FiberB     int
	Type       Type
	Loss       *float64
	Technician string
	Notes      string
}

// UpsertOutcome distinguishes a fresh insert from an update-in-place.
type UpsertOutcome string

const (
	OutcomeCreated UpsertOutcome = "created"
	OutcomeUpdated UpsertOutcome = "updated"
)

// Upsert persists a splice, updating the existing record when the
// (fiberA, fiberB) pair already exists in the tray. Status is derived:
// completed iff a loss reading is present.
//
// The same fiber may appear in more than one pair within a tray (splitter
// legs, re-splices); only the exact pair is unique. Use FibersInUse to
// warn about fan-out if the caller wants to.
func (st *Store) Upsert(input UpsertInput) (*Splice, UpsertOutcome, error) {
	if input.TrayID == "" {
		return nil, "", fmt.Errorf("tray id is required: %w", ErrInvalidInput)
	}
	if !input.Type.Valid() {
		return nil, "", fmt.Errorf("splice type %q: %w", input.Type, ErrInvalidInput)
	}

	endA, err := resolveEnd(input.CableA, input.FiberA)
	if err != nil {
		return nil, "", err
	}
	endB, err := resolveEnd(input.CableB, input.FiberB)
	if err != nil {
		return nil, "", err
	}

	st.mu.Lock()
	defer st.mu.Unlock()

	now := time.Now().Unix()
	pair := Pair{FiberA: input.FiberA, FiberB: input.FiberB}

	trayIndex, ok := st.byTray[input.TrayID]
	if !ok {
		trayIndex = make(map[Pair]string)
		st.byTray[input.TrayID] = trayIndex
	}

	if existingID, ok := trayIndex[pair]; ok {
		existing := st.splices[existingID]
		existing.A = endA
		existing.B = endB
		existing.Type = input.Type
		existing.Loss = input.Loss
		existing.Status = statusFor(input.Loss)
		existing.Technician = input.Technician
		existing.Notes = input.Notes
		existing.UpdatedAt = now

		st.registry.IncSpliceUpdated()
		st.logger.Debug("splice updated",
			logging.SpliceID(existingID), logging.TrayID(input.TrayID))
		return existing.Clone(), OutcomeUpdated, nil
	}

	sp := &Splice{
		ID:         uuid.NewString(),
		TrayID:     input.TrayID,
		A:          endA,
		B:          endB,
		Type:       input.Type,
		Loss:       input.Loss,
		Status:     statusFor(input.Loss),
		Technician: input.Technician,
		Notes:      input.Notes,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	st.splices[sp.ID] = sp
	trayIndex[pair] = sp.ID

	st.registry.IncSpliceCreated()
	st.logger.Debug("splice created",
		logging.SpliceID(sp.ID), logging.TrayID(input.TrayID))
	return sp.Clone(), OutcomeCreated, nil
}

// Get retrieves a splice by ID.
func (st *Store) Get(id string) (*Splice, error) {
	st.mu.RLock()
	defer st.mu.RUnlock()

	sp, ok := st.splices[id]
	if !ok {
		return nil, ErrSpliceNotFound
	}
	return sp.Clone(), nil
}

// ByTray returns a tray's splices ordered by (fiberA, fiberB).
func (st *Store) ByTray(trayID string) []*Splice {
	st.mu.RLock()
	defer st.mu.RUnlock()

	trayIndex := st.byTray[trayID]
	out := make([]*Splice, 0, len(trayIndex))
	for _, id := range trayIndex {
		out = append(out, st.splices[id].Clone())
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].A.FiberNumber != out[j].A.FiberNumber {
			return out[i].A.FiberNumber < out[j].A.FiberNumber
		}
		return out[i].B.FiberNumber < out[j].B.FiberNumber
	})
	return out
}

// All returns every splice in the store, ordered by tray then pair.
func (st *Store) All() []*Splice {
	st.mu.RLock()
	trayIDs := make([]string, 0, len(st.byTray))
	for id := range st.byTray {
		trayIDs = append(trayIDs, id)
	}
	st.mu.RUnlock()

	sort.Strings(trayIDs)
	out := make([]*Splice, 0, len(st.splices))
	for _, trayID := range trayIDs {
		out = append(out, st.ByTray(trayID)...)
	}
	return out
}

// Exists reports whether the exact pair is already recorded in the tray.
func (st *Store) Exists(trayID string, pair Pair) bool {
	st.mu.RLock()
	defer st.mu.RUnlock()
	_, ok := st.byTray[trayID][pair]
	return ok
}

// FibersInUse returns the cable-A fiber numbers already spliced in a
// tray, for callers that want to surface fan-out.
func (st *Store) FibersInUse(trayID string) []int {
	st.mu.RLock()
	defer st.mu.RUnlock()

	seen := make(map[int]bool)
	for pair := range st.byTray[trayID] {
		seen[pair.FiberA] = true
	}
	fibers := make([]int, 0, len(seen))
	for f := range seen {
		fibers = append(fibers, f)
	}
	sort.Ints(fibers)
	return fibers
}

// Delete removes a single splice.
func (st *Store) Delete(id string) error {
	st.mu.Lock()
	defer st.mu.Unlock()

	sp, ok := st.splices[id]
	if !ok {
		return ErrSpliceNotFound
	}
	delete(st.splices, id)
	delete(st.byTray[sp.TrayID], Pair{FiberA: sp.A.FiberNumber, FiberB: sp.B.FiberNumber})
	if len(st.byTray[sp.TrayID]) == 0 {
		delete(st.byTray, sp.TrayID)
	}

	st.registry.AddSplicesDeleted(1)
	return nil
}

// DeleteTray removes every splice in a tray and returns how many were
// removed. Deleting an unknown tray is a no-op.
func (st *Store) DeleteTray(trayID string) int {
	return st.DeleteTrays([]string{trayID})
}

// DeleteTrays removes every splice belonging to any of the given trays
// in one locked operation. The network graph calls this during cascading
// deletes so tray splices disappear together with their enclosures.
func (st *Store) DeleteTrays(trayIDs []string) int {
	st.mu.Lock()
	defer st.mu.Unlock()

	removed := 0
	for _, trayID := range trayIDs {
		for _, id := range st.byTray[trayID] {
			delete(st.splices, id)
			removed++
		}
		delete(st.byTray, trayID)
	}

	if removed > 0 {
		st.registry.AddSplicesDeleted(removed)
		st.logger.Info("tray splices deleted",
			logging.Count(removed), logging.Int("trays", len(trayIDs)))
	}
	return removed
}

// Len returns the total number of splices.
func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.splices)
}

// Restore loads previously persisted splices, replacing current state.
// Used by the project store when opening a saved project.
func (st *Store) Restore(splices []*Splice) error {
	st.mu.Lock()
	defer st.mu.Unlock()

	restored := make(map[string]*Splice, len(splices))
	byTray := make(map[string]map[Pair]string)
	for _, sp := range splices {
		if sp.ID == "" || sp.TrayID == "" {
			return fmt.Errorf("persisted splice missing identity: %w", ErrInvalidInput)
		}
		pair := Pair{FiberA: sp.A.FiberNumber, FiberB: sp.B.FiberNumber}
		if byTray[sp.TrayID] == nil {
			byTray[sp.TrayID] = make(map[Pair]string)
		}
		if _, dup := byTray[sp.TrayID][pair]; dup {
			return fmt.Errorf("persisted splice duplicates pair (%d,%d) in tray %s: %w",
				pair.FiberA, pair.FiberB, sp.TrayID, ErrInvalidInput)
		}
		byTray[sp.TrayID][pair] = sp.ID
		restored[sp.ID] = sp.Clone()
	}

	st.splices = restored
	st.byTray = byTray
	return nil
}

func statusFor(loss *float64) Status {
	if loss != nil {
		return StatusCompleted
	}
	return StatusPending
}
