package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dd0wney/fiberplant/pkg/netgraph"
	"github.com/dd0wney/fiberplant/pkg/splice"
)

func buildProjectStores(t *testing.T) (*netgraph.Graph, *splice.Store) {
	t.Helper()

	splices := splice.NewStore(splice.StoreConfig{})
	g := netgraph.NewGraph(netgraph.GraphConfig{Splices: splices})

	olt, err := g.CreateRoot("CO-1")
	if err != nil {
		t.Fatalf("CreateRoot failed: %v", err)
	}
	closure, err := g.CreateChild(olt.ID, netgraph.TypeClosure, "")
	if err != nil {
		t.Fatalf("CreateChild failed: %v", err)
	}
	tray, err := g.AddTray(closure.ID, 1, 24)
	if err != nil {
		t.Fatalf("AddTray failed: %v", err)
	}

	loss := 0.08
	_, _, err = splices.Upsert(splice.UpsertInput{
		TrayID: tray.ID,
		CableA: splice.Cable{Name: "Feeder-01", FiberCount: 144},
		CableB: splice.Cable{Name: "Dist-01", FiberCount: 48},
		FiberA: 1,
		FiberB: 1,
		Type:   splice.Fusion,
		Loss:   &loss,
	})
	if err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}
	return g, splices
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	st, err := Open(dir, Config{})
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	g, splices := buildProjectStores(t)
	if err := st.SaveFrom("ospdoc-demo", g, splices); err != nil {
		t.Fatalf("SaveFrom failed: %v", err)
	}

	g2 := netgraph.NewGraph(netgraph.GraphConfig{})
	s2 := splice.NewStore(splice.StoreConfig{})
	p, err := st.RestoreTo(g2, s2)
	if err != nil {
		t.Fatalf("RestoreTo failed: %v", err)
	}
	if p.Name != "ospdoc-demo" {
		t.Errorf("project name: %s", p.Name)
	}
	if p.SavedAt == 0 {
		t.Errorf("SavedAt not stamped")
	}
	if g2.Len() != 2 {
		t.Errorf("expected 2 restored elements, got %d", g2.Len())
	}
	if s2.Len() != 1 {
		t.Errorf("expected 1 restored splice, got %d", s2.Len())
	}
	restored := s2.All()
	if restored[0].Status != splice.StatusCompleted {
		t.Errorf("restored splice lost its status: %s", restored[0].Status)
	}
}

func TestCompressedSnapshot(t *testing.T) {
	dir := t.TempDir()
	st, err := Open(dir, Config{EnableCompression: true})
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	g, splices := buildProjectStores(t)
	if err := st.SaveFrom("compressed", g, splices); err != nil {
		t.Fatalf("SaveFrom failed: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, compressedSnapshotFile)); err != nil {
		t.Fatalf("compressed snapshot missing: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, snapshotFile)); !os.IsNotExist(err) {
		t.Errorf("plain snapshot should not exist when compression is on")
	}

	p, err := st.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(p.Elements) != 2 || len(p.Splices) != 1 {
		t.Errorf("compressed round trip lost data: %d elements, %d splices",
			len(p.Elements), len(p.Splices))
	}
}

func TestLoadMissingIsFreshProject(t *testing.T) {
	st, err := Open(t.TempDir(), Config{})
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	p, err := st.Load()
	if err != nil {
		t.Fatalf("Load of missing snapshot should not fail: %v", err)
	}
	if len(p.Elements) != 0 || len(p.Splices) != 0 {
		t.Errorf("fresh project should be empty")
	}
}

func TestLoadCorruptSnapshot(t *testing.T) {
	dir := t.TempDir()
	st, err := Open(dir, Config{})
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, snapshotFile), []byte("{nope"), 0644); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if _, err := st.Load(); err == nil {
		t.Errorf("corrupt snapshot should fail to load")
	}
}

func TestSaveIsAtomic(t *testing.T) {
	dir := t.TempDir()
	st, err := Open(dir, Config{})
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	g, splices := buildProjectStores(t)
	if err := st.SaveFrom("x", g, splices); err != nil {
		t.Fatalf("SaveFrom failed: %v", err)
	}
	// No temporary file may survive a successful save.
	if _, err := os.Stat(filepath.Join(dir, snapshotFile+".tmp")); !os.IsNotExist(err) {
		t.Errorf("temporary snapshot left behind")
	}
}
