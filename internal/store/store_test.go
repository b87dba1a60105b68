package store

import (
	"testing"

	"github.com/san-kum/molsim/internal/sim"
	"github.com/san-kum/molsim/internal/system"
)

func finishedMCState() *sim.State {
	sys := &system.System{
		Name:  "ar2",
		Atoms: []system.Particle{{Element: "Ar", Mass: 39.948}},
	}
	st := sim.NewState(sys, sim.Config{
		Mode:        sim.MonteCarlo,
		Temperature: 120,
		TotalConfs:  100,
		DispMag:     0.25,
		Seed:        42,
	})
	st.Conf = 100
	st.Accepted = 60
	st.Rejected = 40
	return st
}

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID, err := st.Save(finishedMCState(), 42, "energy.dat", "geom.xyz")
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if runID == "" {
		t.Fatal("expected non-empty run id")
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.Mode != "mc" {
		t.Errorf("mode = %q, want mc", meta.Mode)
	}
	if meta.Accepted != 60 || meta.Rejected != 40 {
		t.Errorf("acceptance stats = %d/%d, want 60/40", meta.Accepted, meta.Rejected)
	}
	if meta.Seed != 42 {
		t.Errorf("seed = %d, want 42", meta.Seed)
	}
}

func TestStoreList(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected empty store, got %d runs", len(runs))
	}

	if _, err := st.Save(finishedMCState(), 1, "e.dat", "g.xyz"); err != nil {
		t.Fatal(err)
	}
	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 1 {
		t.Errorf("expected 1 run, got %d", len(runs))
	}
}

func TestStoreListMissingDir(t *testing.T) {
	st := New("/nonexistent/molsim-test")
	runs, err := st.List()
	if err != nil {
		t.Fatalf("list of missing dir should not fail: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}
}
