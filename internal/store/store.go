// Package store keeps per-run metadata under a data directory, one
// subdirectory per run, so finished simulations can be listed and their
// output files located later.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/san-kum/molsim/internal/sim"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// RunMetadata is the durable record of one finished run.
type RunMetadata struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Mode        string    `json:"mode"`
	Timestamp   time.Time `json:"timestamp"`
	Seed        uint64    `json:"seed"`
	Temperature float64   `json:"temperature"`

	Timestep  float64 `json:"timestep,omitempty"`
	TotalTime float64 `json:"total_time,omitempty"`

	TotalConfs int     `json:"total_confs,omitempty"`
	Accepted   int     `json:"accepted,omitempty"`
	Rejected   int     `json:"rejected,omitempty"`
	DispMag    float64 `json:"disp_mag,omitempty"`

	EnergyOut string `json:"energy_out"`
	GeomOut   string `json:"geom_out"`
}

// Save records the final state of a run and returns the run id.
func (s *Store) Save(st *sim.State, seed uint64, energyOut, geomOut string) (string, error) {
	runID := fmt.Sprintf("%s_%s_%d", st.Sys.Name, st.Mode, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:          runID,
		Name:        st.Sys.Name,
		Mode:        st.Mode.String(),
		Timestamp:   time.Now(),
		Seed:        seed,
		Temperature: st.Temperature,
		EnergyOut:   energyOut,
		GeomOut:     geomOut,
	}
	switch st.Mode {
	case sim.MolecularDynamics:
		meta.Timestep = st.Timestep
		meta.TotalTime = st.TotalTime
	case sim.MonteCarlo:
		meta.TotalConfs = st.TotalConfs
		meta.Accepted = st.Accepted
		meta.Rejected = st.Rejected
		meta.DispMag = st.DispMag
	}

	f, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}
	return runID, nil
}

// Load reads one run's metadata by id.
func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}
	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// List returns metadata for every stored run, newest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}
	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.After(runs[j].Timestamp) })
	return runs, nil
}
