// Package output owns the on-disk side of a run: the fixed-width energy
// table, the xyz trajectory, and periodic status lines. It implements
// [sim.Reporter], deciding from its own cadence bookkeeping when the engine's
// per-step hook actually produces a record. Paths ending in .gz are
// compressed transparently.
package output

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/klauspost/compress/gzip"

	"github.com/san-kum/molsim/internal/energy"
	"github.com/san-kum/molsim/internal/sim"
)

// cadenceEpsilon re-arms a time accumulator just above zero, mirroring the
// engine's clock seed, so interval comparisons stay exact.
const cadenceEpsilon = 1e-10

// Options configures a Writer. Zero cadences disable the respective record
// kind except for the forced start/end emissions.
type Options struct {
	Mode       sim.Mode
	SystemName string

	EnergyPath string
	GeomPath   string

	// Dynamics cadences, simulated ps between records.
	EnergyEvery float64
	GeomEvery   float64
	EqTime      float64 // echoed in the energy header

	// Monte-Carlo cadences, accepted configurations between records.
	EnergyConfs int
	GeomConfs   int

	// Wall-clock interval between status lines, independent of simulation
	// progress.
	StatusEvery time.Duration

	// Status destination; os.Stdout when nil.
	Status io.Writer
}

// Writer writes energy and geometry records on the engine's schedule. Not
// safe for concurrent use; the engine is single-threaded.
type Writer struct {
	opts    Options
	status  io.Writer
	started time.Time

	energyW *bufio.Writer
	geomW   *bufio.Writer
	closers []io.Closer

	etime, gtime float64
	econf, gconf int
	lastConf     int
	lastStatus   time.Time
	primed       bool
}

// New opens the output files, writes the energy header, and arms the
// wall-clock status timer.
func New(opts Options) (*Writer, error) {
	w := &Writer{
		opts:       opts,
		status:     opts.Status,
		started:    time.Now(),
		lastStatus: time.Now(),
		etime:      cadenceEpsilon,
		gtime:      cadenceEpsilon,
	}
	if w.status == nil {
		w.status = os.Stdout
	}

	var err error
	if w.energyW, err = w.open(opts.EnergyPath); err != nil {
		return nil, err
	}
	if w.geomW, err = w.open(opts.GeomPath); err != nil {
		w.Close()
		return nil, err
	}
	w.writeEnergyHeader()
	return w, nil
}

// open creates path, stacking a gzip layer when the name asks for one, the
// way compressed trajectory writers usually do.
func (w *Writer) open(path string) (*bufio.Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("output: %w", err)
	}
	w.closers = append(w.closers, f)
	var dst io.Writer = f
	if strings.HasSuffix(path, ".gz") {
		gz := gzip.NewWriter(f)
		w.closers = append(w.closers, gz)
		dst = gz
	}
	return bufio.NewWriter(dst), nil
}

// Report implements sim.Reporter.
func (w *Writer) Report(st *sim.State, res energy.Result, force bool) error {
	switch w.opts.Mode {
	case sim.MolecularDynamics:
		w.reportMD(st, res, force)
	case sim.MonteCarlo:
		w.reportMC(st, res, force)
	}
	if force || (w.opts.StatusEvery > 0 && time.Since(w.lastStatus) > w.opts.StatusEvery) {
		w.printStatus(st)
		w.lastStatus = time.Now()
	}
	return w.flush()
}

func (w *Writer) reportMD(st *sim.State, res energy.Result, force bool) {
	if force || (w.opts.EnergyEvery > 0 && w.etime >= w.opts.EnergyEvery) {
		w.writeEnergyMD(st, res)
		w.etime = cadenceEpsilon
	}
	if force || (w.opts.GeomEvery > 0 && w.gtime >= w.opts.GeomEvery) {
		w.writeGeom(st, fmt.Sprintf("%.4f ps", st.Time))
		w.gtime = cadenceEpsilon
	}
	// No simulated time has passed when the forced start report arrives, so
	// the accumulators first advance on the report after it.
	if w.primed {
		w.etime += st.Timestep
		w.gtime += st.Timestep
	}
	w.primed = true
}

func (w *Writer) reportMC(st *sim.State, res energy.Result, force bool) {
	nconf := st.Conf - w.lastConf
	w.lastConf = st.Conf

	if force || (w.opts.EnergyConfs > 0 && w.econf >= w.opts.EnergyConfs) {
		w.writeEnergyMC(st, res)
		w.econf = 0
	}
	if force || (w.opts.GeomConfs > 0 && w.gconf >= w.opts.GeomConfs) {
		w.writeGeom(st, fmt.Sprintf("conf %d", st.Conf))
		w.gconf = 0
	}
	w.econf += nconf
	w.gconf += nconf
}

func (w *Writer) writeEnergyHeader() {
	fmt.Fprintf(w.energyW, "# energy [kcal/mol] of %s", w.opts.SystemName)
	if w.opts.Mode == sim.MolecularDynamics {
		fmt.Fprintf(w.energyW, " (%.4f ps of eq)\n", w.opts.EqTime)
		fmt.Fprintf(w.energyW, "#    time      e_total        e_kin        e_pot")
	} else {
		fmt.Fprintf(w.energyW, "\n#    conf        e_pot")
	}
	fmt.Fprintf(w.energyW, "        e_vdw       e_elst      e_bound")
	if w.opts.Mode == sim.MolecularDynamics {
		fmt.Fprintf(w.energyW, "      temp     press")
	}
	fmt.Fprintf(w.energyW, "\n")
}

func (w *Writer) writeEnergyMD(st *sim.State, res energy.Result) {
	fmt.Fprintf(w.energyW, "%9.4f %12.5e %12.5e %12.5e %12.5e %12.5e %12.5e %9.3f %9.3f\n",
		st.Time, res.Total, res.Kinetic, res.Potential,
		res.Vdw, res.Elst, res.Bound, res.Temperature, res.Pressure)
}

func (w *Writer) writeEnergyMC(st *sim.State, res energy.Result) {
	fmt.Fprintf(w.energyW, "%9d %12.5e %12.5e %12.5e %12.5e\n",
		st.Conf, res.Potential, res.Vdw, res.Elst, res.Bound)
}

// writeGeom appends one xyz frame to the trajectory.
func (w *Writer) writeGeom(st *sim.State, label string) {
	fmt.Fprintf(w.geomW, "%d\n%s %s\n", st.Sys.NumAtoms(), w.opts.SystemName, label)
	for i := range st.Sys.Atoms {
		a := &st.Sys.Atoms[i]
		fmt.Fprintf(w.geomW, "%-2s %11.6f %11.6f %11.6f\n", a.Element, a.Pos[0], a.Pos[1], a.Pos[2])
	}
}

func (w *Writer) printStatus(st *sim.State) {
	switch w.opts.Mode {
	case sim.MolecularDynamics:
		fmt.Fprintf(w.status, "%.4f/%.4f ps", st.Time, st.TotalTime)
	case sim.MonteCarlo:
		fmt.Fprintf(w.status, "%d/%d confs", st.Conf, st.TotalConfs)
	}
	fmt.Fprintf(w.status, " as of %s\n", time.Now().Format("15:04:05"))
}

func (w *Writer) flush() error {
	if err := w.energyW.Flush(); err != nil {
		return fmt.Errorf("output: %w", err)
	}
	if err := w.geomW.Flush(); err != nil {
		return fmt.Errorf("output: %w", err)
	}
	return nil
}

// Close flushes and releases every file handle. Runs on both normal
// completion and propagating failures, so partial records stay well formed.
func (w *Writer) Close() error {
	var first error
	if w.energyW != nil && w.geomW != nil {
		first = w.flush()
	}
	// Close gzip layers before their files: closers were appended in
	// stacking order.
	for i := len(w.closers) - 1; i >= 0; i-- {
		if err := w.closers[i].Close(); err != nil && first == nil {
			first = fmt.Errorf("output: %w", err)
		}
	}
	w.closers = nil
	return first
}
