package sim

import (
	"errors"
	"math"
	"testing"
)

func TestUpdateDisplacementDirection(t *testing.T) {
	tests := []struct {
		name             string
		accepts, rejects int
		want             func(before, after float64) bool
	}{
		{"accept-heavy grows", 80, 20, func(b, a float64) bool { return a > b }},
		{"reject-heavy shrinks", 20, 80, func(b, a float64) bool { return a < b }},
		{"balanced unchanged", 50, 50, func(b, a float64) bool { return math.Abs(a-b) < 1e-12 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := NewState(argonCluster(), Config{Mode: MonteCarlo, Temperature: 300, DispMag: 0.1})
			st.NAccept, st.NReject = tt.accepts, tt.rejects

			before := st.DispMag
			if err := st.UpdateDisplacement(); err != nil {
				t.Fatalf("UpdateDisplacement: %v", err)
			}
			if !tt.want(before, st.DispMag) {
				t.Errorf("magnitude %g -> %g with %d/%d", before, st.DispMag, tt.accepts, tt.rejects)
			}
			if st.NAccept != 0 || st.NReject != 0 {
				t.Errorf("counters not reset: %d/%d", st.NAccept, st.NReject)
			}
		})
	}
}

func TestUpdateDisplacementSymmetry(t *testing.T) {
	// 80/20 then 20/80 should land back on the starting magnitude.
	st := NewState(argonCluster(), Config{Mode: MonteCarlo, Temperature: 300, DispMag: 0.1})

	st.NAccept, st.NReject = 80, 20
	if err := st.UpdateDisplacement(); err != nil {
		t.Fatal(err)
	}
	st.NAccept, st.NReject = 20, 80
	if err := st.UpdateDisplacement(); err != nil {
		t.Fatal(err)
	}
	if math.Abs(st.DispMag-0.1) > 1e-12 {
		t.Errorf("magnitude = %g, want 0.1 after symmetric windows", st.DispMag)
	}
}

func TestUpdateDisplacementNoTrials(t *testing.T) {
	st := NewState(argonCluster(), Config{Mode: MonteCarlo, Temperature: 300, DispMag: 0.1})
	if err := st.UpdateDisplacement(); !errors.Is(err, ErrNoTrials) {
		t.Errorf("error = %v, want ErrNoTrials", err)
	}
}
