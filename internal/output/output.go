// Package output implements the snapshot-writing collaborator of spec.md
// §6's write_snapshot contract and the restart-reload half of its persistent
// state layout. HDF5/binary output itself is explicitly out of the core's
// scope (spec.md §1's "Deliberately out of scope... on-disk output
// (HDF5/binary)"); JSONWriter here is the text-format stand-in the core
// depends on through the same Writer interface a production build would
// satisfy with an HDF5-backed implementation.
package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/notargets/cholla/internal/grid"
)

// Snapshot is the serializable form of one sub-block's state plus the scalar
// time/step counters spec.md §6 requires a restart to restore.
type Snapshot struct {
	Step int     `json:"step"`
	Time float64 `json:"time"`

	Nx    int `json:"nx"`
	Ny    int `json:"ny"`
	Nz    int `json:"nz"`
	Ghost int `json:"ghost"`

	Density        []float64   `json:"density"`
	MomentumX      []float64   `json:"momentum_x"`
	MomentumY      []float64   `json:"momentum_y"`
	MomentumZ      []float64   `json:"momentum_z"`
	Energy         []float64   `json:"energy"`
	InternalEnergy []float64   `json:"internal_energy,omitempty"`
	Bx             []float64   `json:"bx,omitempty"`
	By             []float64   `json:"by,omitempty"`
	Bz             []float64   `json:"bz,omitempty"`
	Scalars        [][]float64 `json:"scalars,omitempty"`

	Phi []float64 `json:"phi,omitempty"`
}

// Writer is the external collaborator the core invokes at cadences the time
// controller determines (spec.md §6: "write_snapshot(step, t, U, optional
// Phi)").
type Writer interface {
	WriteSnapshot(step int, t float64, b *grid.Block, phi []float64) error
	ReadSnapshot() (*Snapshot, error)
}

func toSnapshot(step int, t float64, b *grid.Block, phi []float64) *Snapshot {
	s := &Snapshot{
		Step: step, Time: t,
		Nx: b.Nx, Ny: b.Ny, Nz: b.Nz, Ghost: b.Ghost,
		Density:   append([]float64(nil), b.Density...),
		MomentumX: append([]float64(nil), b.MomentumX...),
		MomentumY: append([]float64(nil), b.MomentumY...),
		MomentumZ: append([]float64(nil), b.MomentumZ...),
		Energy:    append([]float64(nil), b.Energy...),
	}
	if b.Features.DualEnergy {
		s.InternalEnergy = append([]float64(nil), b.InternalEnergy...)
	}
	if b.Features.MHD {
		s.Bx = append([]float64(nil), b.BFieldX...)
		s.By = append([]float64(nil), b.BFieldY...)
		s.Bz = append([]float64(nil), b.BFieldZ...)
	}
	for _, sc := range b.Scalars {
		s.Scalars = append(s.Scalars, append([]float64(nil), sc...))
	}
	if phi != nil {
		s.Phi = append([]float64(nil), phi...)
	}
	return s
}

// RestoreInto copies a Snapshot's arrays into an already-allocated block of
// matching shape, returning the step/time counters it carried.
func RestoreInto(s *Snapshot, b *grid.Block) (step int, t float64, err error) {
	if s.Nx != b.Nx || s.Ny != b.Ny || s.Nz != b.Nz || s.Ghost != b.Ghost {
		return 0, 0, fmt.Errorf("output: snapshot shape (%d,%d,%d,g=%d) does not match block (%d,%d,%d,g=%d)",
			s.Nx, s.Ny, s.Nz, s.Ghost, b.Nx, b.Ny, b.Nz, b.Ghost)
	}
	copy(b.Density, s.Density)
	copy(b.MomentumX, s.MomentumX)
	copy(b.MomentumY, s.MomentumY)
	copy(b.MomentumZ, s.MomentumZ)
	copy(b.Energy, s.Energy)
	if b.Features.DualEnergy && len(s.InternalEnergy) > 0 {
		copy(b.InternalEnergy, s.InternalEnergy)
	}
	if b.Features.MHD && len(s.Bx) > 0 {
		copy(b.BFieldX, s.Bx)
		copy(b.BFieldY, s.By)
		copy(b.BFieldZ, s.Bz)
	}
	for i := range b.Scalars {
		if i < len(s.Scalars) {
			copy(b.Scalars[i], s.Scalars[i])
		}
	}
	return s.Step, s.Time, nil
}

// JSONWriter writes/reads newline-delimited JSON snapshots to/from an
// io.ReadWriter; the most recent snapshot written is what ReadSnapshot
// returns, matching the restart contract of reloading "the same conserved
// field arrays... and the scalar time/step counters".
type JSONWriter struct {
	w       io.Writer
	r       io.Reader
	last    *Snapshot
}

func NewJSONWriter(w io.Writer, r io.Reader) *JSONWriter {
	return &JSONWriter{w: w, r: r}
}

func (j *JSONWriter) WriteSnapshot(step int, t float64, b *grid.Block, phi []float64) error {
	s := toSnapshot(step, t, b, phi)
	j.last = s
	if j.w == nil {
		return nil
	}
	enc := json.NewEncoder(j.w)
	return enc.Encode(s)
}

func (j *JSONWriter) ReadSnapshot() (*Snapshot, error) {
	if j.last != nil {
		return j.last, nil
	}
	if j.r == nil {
		return nil, fmt.Errorf("output: no snapshot available to restore")
	}
	dec := json.NewDecoder(j.r)
	var s Snapshot
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("output: decoding snapshot: %w", err)
	}
	j.last = &s
	return &s, nil
}

// MemoryWriter keeps the latest snapshot in memory without any I/O, used by
// tests and by runs with output disabled.
type MemoryWriter struct {
	Last *Snapshot
}

func (m *MemoryWriter) WriteSnapshot(step int, t float64, b *grid.Block, phi []float64) error {
	m.Last = toSnapshot(step, t, b, phi)
	return nil
}

func (m *MemoryWriter) ReadSnapshot() (*Snapshot, error) {
	if m.Last == nil {
		return nil, fmt.Errorf("output: no snapshot available to restore")
	}
	return m.Last, nil
}
