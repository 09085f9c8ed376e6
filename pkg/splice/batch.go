package splice

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dd0wney/fiberplant/pkg/logging"
)

// BatchParams describes a run of sequential 1:1 splices between two
// cables: (startFiberA+i, startFiberB+i) for i in [0, count).
type BatchParams struct {
	TrayID      string
	CableA      Cable
	CableB      Cable
	StartFiberA int
	StartFiberB int
	Count       int
	// Type overrides the session default when set.
	Type Type
}

// BatchEntry is one proposed splice from batch generation. Entries are
// proposals only; nothing is persisted until CommitBatch.
type BatchEntry struct {
	TrayID     string `json:"trayId"`
	A          End    `json:"a"`
	B          End    `json:"b"`
	Type       Type   `json:"spliceType"`
	Status     Status `json:"status"`
	Technician string `json:"technician"`
}

// BatchResult reports the outcome of committing a batch: explicit
// created/skipped lists so callers can tell "inserted" from "already
// there" instead of both looking like nothing happened.
type BatchResult struct {
	Created []*Splice `json:"created"`
	Skipped []Pair    `json:"skipped"`
}

// GenerateBatch proposes up to params.Count sequential 1:1 pairs, each
// pre-resolved through the color engine for both cables. Generation
// iterates in ascending index order and stops at the shorter cable's
// fiber count rather than producing out-of-range pairs.
func (st *Store) GenerateBatch(session Session, params BatchParams) ([]BatchEntry, error) {
	spliceType := params.Type
	if spliceType == "" {
		spliceType = session.DefaultSpliceType
	}
	if !spliceType.Valid() {
		return nil, fmt.Errorf("splice type %q: %w", spliceType, ErrInvalidInput)
	}
	if params.TrayID == "" {
		return nil, fmt.Errorf("tray id is required: %w", ErrInvalidInput)
	}
	if params.Count < 1 {
		return nil, fmt.Errorf("count must be positive: %w", ErrInvalidInput)
	}
	if params.StartFiberA < 1 || params.StartFiberB < 1 {
		return nil, fmt.Errorf("start fibers must be positive: %w", ErrInvalidInput)
	}

	entries := make([]BatchEntry, 0, params.Count)
	for i := 0; i < params.Count; i++ {
		fiberA := params.StartFiberA + i
		fiberB := params.StartFiberB + i
		if fiberA > params.CableA.FiberCount || fiberB > params.CableB.FiberCount {
			break
		}

		endA, err := resolveEnd(params.CableA, fiberA)
		if err != nil {
			return nil, err
		}
		endB, err := resolveEnd(params.CableB, fiberB)
		if err != nil {
			return nil, err
		}

		entries = append(entries, BatchEntry{
			TrayID:     params.TrayID,
			A:          endA,
			B:          endB,
			Type:       spliceType,
			Status:     StatusPending,
			Technician: session.Technician,
		})
	}

	st.registry.AddBatchGenerated(len(entries))
	return entries, nil
}

// CommitBatch inserts the proposed entries, skipping any pair that
// already exists in its tray. Existing records are never overwritten by
// a batch; use Upsert for that.
func (st *Store) CommitBatch(entries []BatchEntry) BatchResult {
	st.mu.Lock()
	defer st.mu.Unlock()

	result := BatchResult{
		Created: make([]*Splice, 0, len(entries)),
		Skipped: make([]Pair, 0),
	}

	for _, entry := range entries {
		pair := Pair{FiberA: entry.A.FiberNumber, FiberB: entry.B.FiberNumber}
		trayIndex, ok := st.byTray[entry.TrayID]
		if !ok {
			trayIndex = make(map[Pair]string)
			st.byTray[entry.TrayID] = trayIndex
		}
		if _, exists := trayIndex[pair]; exists {
			result.Skipped = append(result.Skipped, pair)
			continue
		}

		sp := newFromEntry(entry)
		st.splices[sp.ID] = sp
		trayIndex[pair] = sp.ID
		result.Created = append(result.Created, sp.Clone())
	}

	st.registry.AddBatchSkipped(len(result.Skipped))
	for range result.Created {
		st.registry.IncSpliceCreated()
	}
	st.logger.Info("batch committed",
		logging.Int("created", len(result.Created)),
		logging.Int("skipped", len(result.Skipped)))
	return result
}

func newFromEntry(entry BatchEntry) *Splice {
	now := time.Now().Unix()
	return &Splice{
		ID:         uuid.NewString(),
		TrayID:     entry.TrayID,
		A:          entry.A,
		B:          entry.B,
		Type:       entry.Type,
		Status:     StatusPending,
		Technician: entry.Technician,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}
