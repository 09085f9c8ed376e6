package splice

import (
	"errors"
	"testing"
)

func floatPtr(v float64) *float64 { return &v }

func testInput() UpsertInput {
	return UpsertInput{
		TrayID:     "tray-1",
		CableA:     Cable{Name: "Feeder-01", FiberCount: 144},
		CableB:     Cable{Name: "Dist-07", FiberCount: 48},
		FiberA:     14,
		FiberB:     3,
		Type:       Fusion,
		Technician: "Jane",
	}
}

func TestUpsertCreates(t *testing.T) {
	st := NewStore(StoreConfig{})

	sp, outcome, err := st.Upsert(testInput())
	if err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}
	if outcome != OutcomeCreated {
		t.Errorf("expected created outcome, got %s", outcome)
	}
	if sp.Status != StatusPending {
		t.Errorf("splice without loss should be pending, got %s", sp.Status)
	}
	if sp.ID == "" {
		t.Errorf("splice should get an ID")
	}

	// Fiber 14 of a 144F cable sits in tube 2 (orange), position 2 (orange).
	if sp.A.TubeNumber != 2 || sp.A.TubeColor.Name != "orange" {
		t.Errorf("end A tube: got %d/%s", sp.A.TubeNumber, sp.A.TubeColor.Name)
	}
	if sp.A.FiberColor.Name != "orange" {
		t.Errorf("end A fiber color: got %s", sp.A.FiberColor.Name)
	}
	// Fiber 3 of a 48F cable sits in tube 1 (blue), position 3 (green).
	if sp.B.TubeColor.Name != "blue" || sp.B.FiberColor.Name != "green" {
		t.Errorf("end B colors: got %s/%s", sp.B.TubeColor.Name, sp.B.FiberColor.Name)
	}
}

func TestUpsertDuplicatePairUpdates(t *testing.T) {
	st := NewStore(StoreConfig{})

	first, _, err := st.Upsert(testInput())
	if err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	input := testInput()
	input.Loss = floatPtr(0.12)
	input.Technician = "Omar"
	second, outcome, err := st.Upsert(input)
	if err != nil {
		t.Fatalf("second Upsert failed: %v", err)
	}
	if outcome != OutcomeUpdated {
		t.Errorf("expected updated outcome, got %s", outcome)
	}
	if second.ID != first.ID {
		t.Errorf("update must keep the existing record, got new ID")
	}
	if second.Status != StatusCompleted {
		t.Errorf("splice with loss should be completed, got %s", second.Status)
	}
	if second.Technician != "Omar" {
		t.Errorf("technician not updated: %s", second.Technician)
	}
	if st.Len() != 1 {
		t.Errorf("expected 1 splice after update, got %d", st.Len())
	}
}

func TestUpsertSamePairDifferentTray(t *testing.T) {
	st := NewStore(StoreConfig{})

	if _, _, err := st.Upsert(testInput()); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}
	input := testInput()
	input.TrayID = "tray-2"
	_, outcome, err := st.Upsert(input)
	if err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}
	if outcome != OutcomeCreated {
		t.Errorf("pair uniqueness is per tray; expected created, got %s", outcome)
	}
}

func TestUpsertValidation(t *testing.T) {
	st := NewStore(StoreConfig{})

	input := testInput()
	input.FiberA = 145 // out of range for 144F
	if _, _, err := st.Upsert(input); !errors.Is(err, ErrInvalidFiber) {
		t.Errorf("expected ErrInvalidFiber, got %v", err)
	}

	input = testInput()
	input.TrayID = ""
	if _, _, err := st.Upsert(input); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for missing tray, got %v", err)
	}

	input = testInput()
	input.Type = "solder"
	if _, _, err := st.Upsert(input); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for unknown type, got %v", err)
	}

	if st.Len() != 0 {
		t.Errorf("failed upserts must not persist anything, got %d", st.Len())
	}
}

func TestFanOutAllowed(t *testing.T) {
	st := NewStore(StoreConfig{})

	if _, _, err := st.Upsert(testInput()); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}
	// Same fiber A to a different fiber B in the same tray.
	input := testInput()
	input.FiberB = 4
	_, outcome, err := st.Upsert(input)
	if err != nil {
		t.Fatalf("fan-out Upsert failed: %v", err)
	}
	if outcome != OutcomeCreated {
		t.Errorf("fan-out pair should create a new record, got %s", outcome)
	}

	fibers := st.FibersInUse("tray-1")
	if len(fibers) != 1 || fibers[0] != 14 {
		t.Errorf("FibersInUse = %v, want [14]", fibers)
	}
}

func TestByTrayOrdering(t *testing.T) {
	st := NewStore(StoreConfig{})

	for _, pair := range []Pair{{5, 5}, {1, 2}, {1, 1}, {3, 3}} {
		input := testInput()
		input.FiberA = pair.FiberA
		input.FiberB = pair.FiberB
		if _, _, err := st.Upsert(input); err != nil {
			t.Fatalf("Upsert(%v) failed: %v", pair, err)
		}
	}

	splices := st.ByTray("tray-1")
	if len(splices) != 4 {
		t.Fatalf("expected 4 splices, got %d", len(splices))
	}
	want := []Pair{{1, 1}, {1, 2}, {3, 3}, {5, 5}}
	for i, sp := range splices {
		got := Pair{sp.A.FiberNumber, sp.B.FiberNumber}
		if got != want[i] {
			t.Errorf("position %d: got %v, want %v", i, got, want[i])
		}
	}
}

func TestDeleteTrays(t *testing.T) {
	st := NewStore(StoreConfig{})

	for _, tray := range []string{"tray-1", "tray-2", "tray-3"} {
		input := testInput()
		input.TrayID = tray
		if _, _, err := st.Upsert(input); err != nil {
			t.Fatalf("Upsert failed: %v", err)
		}
	}

	removed := st.DeleteTrays([]string{"tray-1", "tray-3", "tray-missing"})
	if removed != 2 {
		t.Errorf("expected 2 removed, got %d", removed)
	}
	if st.Len() != 1 {
		t.Errorf("expected 1 splice left, got %d", st.Len())
	}
	if len(st.ByTray("tray-1")) != 0 {
		t.Errorf("tray-1 should be empty")
	}
}

func TestGetAndDelete(t *testing.T) {
	st := NewStore(StoreConfig{})

	sp, _, err := st.Upsert(testInput())
	if err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	got, err := st.Get(sp.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	// Returned records are clones; mutating one must not affect the store.
	got.Technician = "mutated"
	again, _ := st.Get(sp.ID)
	if again.Technician != "Jane" {
		t.Errorf("store state was mutated through a returned record")
	}

	if err := st.Delete(sp.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := st.Get(sp.ID); !errors.Is(err, ErrSpliceNotFound) {
		t.Errorf("expected ErrSpliceNotFound after delete, got %v", err)
	}
	if err := st.Delete(sp.ID); !errors.Is(err, ErrSpliceNotFound) {
		t.Errorf("double delete should report not found, got %v", err)
	}
}

func TestRestoreRoundTrip(t *testing.T) {
	st := NewStore(StoreConfig{})
	input := testInput()
	input.Loss = floatPtr(0.07)
	if _, _, err := st.Upsert(input); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	saved := st.All()

	st2 := NewStore(StoreConfig{})
	if err := st2.Restore(saved); err != nil {
		t.Fatalf("Restore failed: %v", err)
	}
	if st2.Len() != 1 {
		t.Fatalf("expected 1 restored splice, got %d", st2.Len())
	}
	// Pair index must be rebuilt: the same pair updates, not duplicates.
	_, outcome, err := st2.Upsert(testInput())
	if err != nil {
		t.Fatalf("Upsert after restore failed: %v", err)
	}
	if outcome != OutcomeUpdated {
		t.Errorf("expected update against restored pair, got %s", outcome)
	}
}

func TestRestoreRejectsDuplicatePairs(t *testing.T) {
	st := NewStore(StoreConfig{})
	sp1, _, _ := st.Upsert(testInput())
	dup := sp1.Clone()
	dup.ID = "other-id"

	st2 := NewStore(StoreConfig{})
	if err := st2.Restore([]*Splice{sp1, dup}); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for duplicate persisted pair, got %v", err)
	}
}
