/*
 * dump.go, part of goreac.
 *
 * Copyright 2026 Raul Mera A. (raulpuntomeraatusachpuntocl)
 *
    This program is free software: you can redistribute it and/or modify
    it under the terms of the GNU Lesser General Public License as published by
    the Free Software Foundation, either version 2.1 of the License, or
    (at your option) any later version.

    This program is distributed in the hope that it will be useful,
    but WITHOUT ANY WARRANTY; without even the implied warranty of
    MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
    GNU General Public License for more details.

    You should have received a copy of the GNU Lesser General Public License
    along with this program.  If not, see <http://www.gnu.org/licenses/>.
 *
 *
*/

//Package lammpsdump reads LAMMPS dump trajectories ("dump custom" output
//with at least id, type and x y z columns). Dumps record positions, not
//bonds, so a reac.Bonder is needed to obtain the bonds of each timestep.
package lammpsdump

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"

	reac "github.com/rmera/goreac"
	"github.com/rmera/goreac/bonder"
)

const (
	natomsItem = "ITEM: NUMBER OF ATOMS"
	timeItem   = "ITEM: TIMESTEP"
	boxItem    = "ITEM: BOX BOUNDS"
	atomsItem  = "ITEM: ATOMS"
)

// DumpTraj reads a LAMMPS dump trajectory. It implements reac.Traj.
type DumpTraj struct {
	natoms   int
	span     int //raw lines per timestep block
	filename string
	names    []string //element symbol for each 0-based atom type
	b        reac.Bonder
	pbc      bool
	idcol    int
	typecol  int
	xcol     int
	ycol     int
	zcol     int
	traj     *os.File
	reader   *bufio.Reader
	readable bool
}

// New opens the dump trajectory in filename. names maps each atom type
// (starting from type 1 at names[0], as types are 1-based in LAMMPS
// files) to its element symbol, which is what the Bonder b gets to see.
// If pbc is true, bonds across the periodic boundaries are searched for,
// which requires the dump to contain box information. ReadHeader must be
// called on the returned object before reading any block.
func New(filename string, names []string, b reac.Bonder, pbc bool) (*DumpTraj, error) {
	D := new(DumpTraj)
	D.filename = filename
	D.names = names
	D.b = b
	D.pbc = pbc
	D.idcol, D.typecol, D.xcol, D.ycol, D.zcol = -1, -1, -1, -1, -1
	f, err := os.Open(filename)
	if err != nil {
		return nil, Error{UnableToOpen, filename, []string{"os.Open", "New"}, true}
	}
	D.traj = f
	D.reader = bufio.NewReader(f)
	D.readable = true
	return D, nil
}

// ReadHeader scans the file for the atom count, the atom types of the
// first timestep, the dump column layout and the number of lines per
// timestep block, then rewinds it, leaving it ready for Next. As with bond
// trajectories, the block length is taken from the distance between the
// first two "ITEM: NUMBER OF ATOMS" lines and assumed constant.
func (D *DumpTraj) ReadHeader() (*reac.Header, error) {
	if !D.readable {
		return nil, Error{TrajUnIni, D.filename, []string{"ReadHeader"}, true}
	}
	var types []int
	natoms := 0
	span := 0
	first := -1 //line index of the first delimiter
	index := 0
	expectN := false
	inAtoms := false
scan:
	for {
		line, rerr := D.reader.ReadString('\n')
		if rerr != nil && rerr != io.EOF {
			return nil, Error{ReadError + ": " + rerr.Error(), D.filename, []string{"ReadHeader"}, true}
		}
		if line == "" && rerr == io.EOF {
			break
		}
		switch {
		case strings.HasPrefix(line, natomsItem):
			inAtoms = false
			if first >= 0 {
				span = index - first
				break scan
			}
			first = index
			expectN = true
		case expectN:
			expectN = false
			n, err := strconv.Atoi(strings.TrimSpace(line))
			if err != nil || n < 1 {
				return nil, Error{fmt.Sprintf("%s: bad atom count %q", WrongFormat, strings.TrimSpace(line)), D.filename, []string{"ReadHeader"}, true}
			}
			natoms = n
			types = make([]int, natoms)
		case strings.HasPrefix(line, atomsItem):
			if D.idcol < 0 {
				if err := D.columns(line); err != nil {
					return nil, errDecorate(err, "ReadHeader")
				}
			}
			inAtoms = true
		case strings.HasPrefix(line, "ITEM:"):
			inAtoms = false
		case inAtoms:
			s := strings.Fields(line)
			if len(s) <= D.idcol || len(s) <= D.typecol {
				return nil, Error{fmt.Sprintf("%s: %q", WrongFormat, strings.TrimSpace(line)), D.filename, []string{"ReadHeader"}, true}
			}
			id, err1 := strconv.Atoi(s[D.idcol])
			typ, err2 := strconv.Atoi(s[D.typecol])
			if err1 != nil || err2 != nil || id < 1 || id > natoms {
				return nil, Error{fmt.Sprintf("%s: %q", WrongFormat, strings.TrimSpace(line)), D.filename, []string{"ReadHeader"}, true}
			}
			types[id-1] = typ - 1
		}
		index++
		if rerr == io.EOF {
			break
		}
	}
	if first < 0 {
		return nil, Error{fmt.Sprintf("%s: no %q line found", WrongFormat, natomsItem), D.filename, []string{"ReadHeader"}, true}
	}
	if D.idcol < 0 {
		return nil, Error{fmt.Sprintf("%s: no %q line found", WrongFormat, atomsItem), D.filename, []string{"ReadHeader"}, true}
	}
	if span == 0 {
		span = index //a single-timestep file: the block is the whole file
	}
	if _, err := D.traj.Seek(0, 0); err != nil {
		return nil, Error{ReadError + ": " + err.Error(), D.filename, []string{"ReadHeader"}, true}
	}
	D.reader = bufio.NewReader(D.traj)
	D.natoms = natoms
	D.span = span
	return &reac.Header{N: natoms, Types: types, Span: span}, nil
}

//columns locates the needed columns among the names declared in the
//"ITEM: ATOMS ..." line. Dumps declare their column layout there, so no
//column has a fixed position.
func (D *DumpTraj) columns(line string) error {
	f := strings.Fields(line)
	if len(f) < 3 {
		return Error{fmt.Sprintf("%s: no columns declared in %q", WrongFormat, strings.TrimSpace(line)), D.filename, []string{"columns"}, true}
	}
	for i, k := range f[2:] { //f[0] and f[1] are "ITEM:" and "ATOMS"
		switch k {
		case "id":
			D.idcol = i
		case "type":
			D.typecol = i
		case "x":
			D.xcol = i
		case "y":
			D.ycol = i
		case "z":
			D.zcol = i
		}
	}
	missing := ""
	switch {
	case D.idcol < 0:
		missing = "id"
	case D.typecol < 0:
		missing = "type"
	case D.xcol < 0:
		missing = "x"
	case D.ycol < 0:
		missing = "y"
	case D.zcol < 0:
		missing = "z"
	}
	if missing != "" {
		return Error{fmt.Sprintf("%s: no %q column declared in dump", WrongFormat, missing), D.filename, []string{"columns"}, true}
	}
	return nil
}

// Next returns the raw lines of the next timestep block, or, if keep is
// false, reads them and returns nil. The end of the trajectory (including a
// trailing piece shorter than one block) is signaled with a LastStepError.
func (D *DumpTraj) Next(keep bool) ([]string, error) {
	if !D.readable || D.span <= 0 {
		return nil, Error{TrajUnIni, D.filename, []string{"Next"}, true}
	}
	var block []string
	if keep {
		block = make([]string, 0, D.span)
	}
	read := 0
	for read < D.span {
		line, err := D.reader.ReadString('\n')
		if line != "" {
			read++
			if keep {
				block = append(block, line)
			}
		}
		if err != nil {
			if err == io.EOF {
				if read < D.span {
					return nil, newlastStepError(D.filename, "Next")
				}
				break
			}
			return nil, Error{ReadError + ": " + err.Error(), D.filename, []string{"Next"}, true}
		}
	}
	return block, nil
}

type dumpAtom struct {
	id      int
	typ     int
	x, y, z float64
}

// Parse builds the bond graph of one timestep block: it reads the atoms,
// sorts them by id, and asks the Bonder for their bonds, going through the
// periodic-image machinery when periodic boundaries were requested. The
// atom types are re-read on every timestep, so the returned Step carries
// its own type assignment. Parse is safe to call concurrently on different
// blocks.
func (D *DumpTraj) Parse(block []string) (*reac.Step, error) {
	if D.natoms <= 0 {
		return nil, Error{TrajUnIni, D.filename, []string{"Parse"}, true}
	}
	time := 0
	var cell []float64
	atoms := make([]dumpAtom, 0, D.natoms)
	expectTime := false
	expectCount := false
	expectBox := 0
	inAtoms := false
	for _, line := range block {
		switch {
		case strings.HasPrefix(line, timeItem):
			inAtoms = false
			expectTime = true
		case expectTime:
			expectTime = false
			if t, err := strconv.Atoi(strings.TrimSpace(line)); err == nil {
				time = t
			}
		case strings.HasPrefix(line, natomsItem):
			inAtoms = false
			expectCount = true
		case expectCount:
			expectCount = false
			n, err := strconv.Atoi(strings.TrimSpace(line))
			if err != nil || n != D.natoms {
				return nil, Error{fmt.Sprintf("%s: timestep with %q atoms, expected %d", WrongFormat, strings.TrimSpace(line), D.natoms), D.filename, []string{"Parse"}, true}
			}
		case strings.HasPrefix(line, boxItem):
			inAtoms = false
			expectBox = 3
			cell = make([]float64, 0, 3)
		case expectBox > 0:
			expectBox--
			s := strings.Fields(line)
			if len(s) < 2 {
				return nil, Error{fmt.Sprintf("%s: bad box line %q", WrongFormat, strings.TrimSpace(line)), D.filename, []string{"Parse"}, true}
			}
			lo, err1 := strconv.ParseFloat(s[0], 64)
			hi, err2 := strconv.ParseFloat(s[1], 64)
			if err1 != nil || err2 != nil {
				return nil, Error{fmt.Sprintf("%s: bad box line %q", WrongFormat, strings.TrimSpace(line)), D.filename, []string{"Parse"}, true}
			}
			cell = append(cell, hi-lo) //orthorhombic cell; tilt factors, if present, are ignored
		case strings.HasPrefix(line, atomsItem):
			inAtoms = true
		case strings.HasPrefix(line, "ITEM:"):
			inAtoms = false
		case inAtoms:
			s := strings.Fields(line)
			if len(s) == 0 {
				continue
			}
			if len(s) <= D.idcol || len(s) <= D.typecol || len(s) <= D.xcol || len(s) <= D.ycol || len(s) <= D.zcol {
				return nil, Error{fmt.Sprintf("%s: %q", WrongFormat, strings.TrimSpace(line)), D.filename, []string{"Parse"}, true}
			}
			var a dumpAtom
			var err1, err2, err3, err4, err5 error
			a.id, err1 = strconv.Atoi(s[D.idcol])
			a.typ, err2 = strconv.Atoi(s[D.typecol])
			a.x, err3 = strconv.ParseFloat(s[D.xcol], 64)
			a.y, err4 = strconv.ParseFloat(s[D.ycol], 64)
			a.z, err5 = strconv.ParseFloat(s[D.zcol], 64)
			if err1 != nil || err2 != nil || err3 != nil || err4 != nil || err5 != nil {
				return nil, Error{fmt.Sprintf("%s: %q", WrongFormat, strings.TrimSpace(line)), D.filename, []string{"Parse"}, true}
			}
			atoms = append(atoms, a)
		}
	}
	if len(atoms) != D.natoms {
		return nil, Error{fmt.Sprintf("%s: %d atom lines in timestep, expected %d", WrongFormat, len(atoms), D.natoms), D.filename, []string{"Parse"}, true}
	}
	sort.Slice(atoms, func(i, j int) bool { return atoms[i].id < atoms[j].id })
	symbols := make([]string, D.natoms)
	types := make([]int, D.natoms)
	pos := mat.NewDense(D.natoms, 3, nil)
	for i, a := range atoms {
		if a.id != i+1 {
			return nil, Error{fmt.Sprintf("%s: atom ids in timestep are not 1..%d", WrongFormat, D.natoms), D.filename, []string{"Parse"}, true}
		}
		t := a.typ - 1
		if t < 0 || t >= len(D.names) {
			return nil, Error{fmt.Sprintf("%s: atom type %d not covered by the names table", WrongFormat, a.typ), D.filename, []string{"Parse"}, true}
		}
		types[i] = t
		symbols[i] = D.names[t]
		pos.Set(i, 0, a.x)
		pos.Set(i, 1, a.y)
		pos.Set(i, 2, a.z)
	}
	var bonds []reac.Bond
	var err error
	if D.pbc {
		if len(cell) < 3 {
			return nil, Error{fmt.Sprintf("%s: no %q in timestep, needed for periodic boundaries", WrongFormat, boxItem), D.filename, []string{"Parse"}, true}
		}
		bonds, err = bonder.Periodic(D.b, symbols, pos, cell)
	} else {
		bonds, err = D.b.Bonds(symbols, pos)
	}
	if err != nil {
		return nil, errDecorate(err, "Parse")
	}
	G := reac.NewBondGraph(D.natoms)
	for _, b := range bonds {
		G.AddBond(b.A, b.B, b.Order)
	}
	return &reac.Step{Graph: G, Time: time, Types: types}, nil
}

// Readable returns true if the trajectory can still be read.
func (D *DumpTraj) Readable() bool {
	return D.readable
}

// Len returns the number of atoms per timestep.
func (D *DumpTraj) Len() int {
	return D.natoms
}

// Close closes the file and marks the trajectory as not readable.
func (D *DumpTraj) Close() {
	if D.traj != nil {
		D.traj.Close()
	}
	D.readable = false
}

//Errors

//errDecorate is a helper function that asserts that the error implements
//reac.Error and decorates the error with the caller's name before
//returning it. If used with a non-reac.Error error, it will cause a panic.
func errDecorate(err error, caller string) error {
	err2 := err.(reac.Error)
	err2.Decorate(caller)
	return err2
}

//Error is the general structure for dump-trajectory errors. It fullfills reac.Error and reac.TrajError.
type Error struct {
	message  string
	filename string //the input file that has problems, or an empty string if none.
	deco     []string
	critical bool
}

func (err Error) Error() string {
	return fmt.Sprintf("LAMMPS dump trajectory file %s error: %s", err.filename, err.message)
}

func (E Error) Decorate(deco string) []string {
	//Even though this method does not use a pointer as a receiver, and tries to alter the receiver,
	//it should work, since E.deco is a slice, and hence a pointer itself.
	if deco != "" {
		E.deco = append(E.deco, deco)
	}
	return E.deco
}

func (err Error) FileName() string { return err.filename }

func (err Error) Format() string { return "LAMMPS dump" }

func (err Error) Critical() bool { return err.critical }

const (
	TrajUnIni    = "Traj object uninitialized to read"
	ReadError    = "Error reading timestep"
	UnableToOpen = "Unable to open file"
	WrongFormat  = "Wrong format in the trajectory file or timestep"
	EOF          = "EOF"
)

//lastStepError implements reac.LastStepError
type lastStepError struct {
	deco     []string
	fileName string
}

//lastStepError does nothing
func (E lastStepError) NormalLastStepTermination() {}

func (E lastStepError) FileName() string { return E.fileName }

func (E lastStepError) Error() string { return EOF }

func (E lastStepError) Critical() bool { return false }

func (E lastStepError) Format() string { return "LAMMPS dump" }

func (E lastStepError) Decorate(deco string) []string {
	//Even though this method does not use a pointer as a receiver, and tries to alter the receiver,
	//it should work, since E.deco is a slice, and hence a pointer itself.
	if deco != "" {
		E.deco = append(E.deco, deco)
	}
	return E.deco
}

func newlastStepError(filename string, caller string) *lastStepError {
	e := new(lastStepError)
	e.fileName = filename
	e.deco = []string{caller}
	return e
}
