/*
 * bond.go, part of goreac.
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

//Package reaxbond reads LAMMPS/ReaxFF bond-order trajectories, i.e. the
//files written by "fix reaxff/bonds". Since they already record the bonds
//of every atom at every timestep, no Bonder is needed for this format.
package reaxbond

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	reac "github.com/rmera/goreac"
)

//the comment that opens the per-timestep header and carries the atom count.
const delimiter = "# Number of particles"

// BondTraj reads a ReaxFF bond trajectory. It implements reac.Traj.
type BondTraj struct {
	natoms   int
	span     int //raw lines per timestep block
	filename string
	traj     *os.File
	reader   *bufio.Reader
	readable bool
}

// New opens the bond trajectory in filename. ReadHeader must be called
// on the returned object before reading any block.
func New(filename string) (*BondTraj, error) {
	B := new(BondTraj)
	B.filename = filename
	f, err := os.Open(filename)
	if err != nil {
		return nil, Error{UnableToOpen, filename, []string{"os.Open", "New"}, true}
	}
	B.traj = f
	B.reader = bufio.NewReader(f)
	B.readable = true
	return B, nil
}

// ReadHeader scans the file for the atom count, the type of each atom and
// the number of lines per timestep block, and rewinds it, leaving it ready
// for Next. The block length is taken from the distance between the first
// two per-timestep headers (or the whole file, if there is only one) and
// assumed constant from then on; a file where it is not will be read wrong,
// with no diagnostic.
func (B *BondTraj) ReadHeader() (*reac.Header, error) {
	if !B.readable {
		return nil, Error{TrajUnIni, B.filename, []string{"ReadHeader"}, true}
	}
	var types []int
	natoms := 0
	span := 0
	first := -1 //line index of the first delimiter
	index := 0
	for {
		line, rerr := B.reader.ReadString('\n')
		if rerr != nil && rerr != io.EOF {
			return nil, Error{ReadError + ": " + rerr.Error(), B.filename, []string{"ReadHeader"}, true}
		}
		if line == "" && rerr == io.EOF {
			break
		}
		if strings.HasPrefix(line, delimiter) {
			if first >= 0 {
				span = index - first
				break
			}
			first = index
			n, ok := atomCount(line)
			if !ok {
				return nil, Error{fmt.Sprintf("%s: no atom count in %q", WrongFormat, strings.TrimSpace(line)), B.filename, []string{"ReadHeader"}, true}
			}
			natoms = n
			types = make([]int, natoms)
		} else if first >= 0 && !strings.HasPrefix(line, "#") {
			s := strings.Fields(line)
			if len(s) >= 2 {
				id, err1 := strconv.Atoi(s[0])
				typ, err2 := strconv.Atoi(s[1])
				if err1 != nil || err2 != nil || id < 1 || id > natoms {
					return nil, Error{fmt.Sprintf("%s: %q", WrongFormat, strings.TrimSpace(line)), B.filename, []string{"ReadHeader"}, true}
				}
				types[id-1] = typ - 1
			}
		}
		index++
		if rerr == io.EOF {
			break
		}
	}
	if first < 0 {
		return nil, Error{fmt.Sprintf("%s: no %q line found", WrongFormat, delimiter), B.filename, []string{"ReadHeader"}, true}
	}
	if span == 0 {
		span = index //a single-timestep file: the block is the whole file
	}
	if _, err := B.traj.Seek(0, 0); err != nil {
		return nil, Error{ReadError + ": " + err.Error(), B.filename, []string{"ReadHeader"}, true}
	}
	B.reader = bufio.NewReader(B.traj)
	B.natoms = natoms
	B.span = span
	return &reac.Header{N: natoms, Types: types, Span: span}, nil
}

//atomCount concatenates the digits in the delimiter line. The count is the
//only number in it.
func atomCount(line string) (int, bool) {
	var b []byte
	for i := 0; i < len(line); i++ {
		if line[i] >= '0' && line[i] <= '9' {
			b = append(b, line[i])
		}
	}
	if len(b) == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(string(b))
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

// Next returns the raw lines of the next timestep block, or, if keep is
// false, reads them and returns nil. The end of the trajectory (including a
// trailing piece shorter than one block) is signaled with a LastStepError.
func (B *BondTraj) Next(keep bool) ([]string, error) {
	if !B.readable || B.span <= 0 {
		return nil, Error{TrajUnIni, B.filename, []string{"Next"}, true}
	}
	var block []string
	if keep {
		block = make([]string, 0, B.span)
	}
	read := 0
	for read < B.span {
		line, err := B.reader.ReadString('\n')
		if line != "" {
			read++
			if keep {
				block = append(block, line)
			}
		}
		if err != nil {
			if err == io.EOF {
				if read < B.span {
					return nil, newlastStepError(B.filename, "Next")
				}
				break
			}
			return nil, Error{ReadError + ": " + err.Error(), B.filename, []string{"Next"}, true}
		}
	}
	return block, nil
}

// Parse builds the bond graph of one timestep block. Each atom line reads
// `id type nb neighbor*nb mol order*nb ...`: nb 1-based neighbor ids, then
// the molecule-id column (skipped), then the nb bond orders, which come as
// continuous values and are rounded to the nearest integer, with 1 as the
// minimum. The simulation time is taken from the "# Timestep" comment.
// Parse is safe to call concurrently on different blocks.
func (B *BondTraj) Parse(block []string) (*reac.Step, error) {
	if B.natoms <= 0 {
		return nil, Error{TrajUnIni, B.filename, []string{"Parse"}, true}
	}
	G := reac.NewBondGraph(B.natoms)
	time := 0
	seen := 0
	for _, line := range block {
		if strings.HasPrefix(line, "#") {
			if strings.HasPrefix(line, "# Timestep") {
				s := strings.Fields(line)
				if t, err := strconv.Atoi(s[len(s)-1]); err == nil {
					time = t
				}
			}
			continue
		}
		s := strings.Fields(line)
		if len(s) == 0 {
			continue
		}
		if len(s) < 3 {
			return nil, Error{fmt.Sprintf("%s: %q", WrongFormat, strings.TrimSpace(line)), B.filename, []string{"Parse"}, true}
		}
		id, err := strconv.Atoi(s[0])
		if err != nil || id < 1 || id > B.natoms {
			return nil, Error{fmt.Sprintf("%s: bad atom id in %q", WrongFormat, strings.TrimSpace(line)), B.filename, []string{"Parse"}, true}
		}
		nb, err := strconv.Atoi(s[2])
		if err != nil || nb < 0 || len(s) < 4+2*nb {
			return nil, Error{fmt.Sprintf("%s: bad bond count in %q", WrongFormat, strings.TrimSpace(line)), B.filename, []string{"Parse"}, true}
		}
		neigh := make([]int, nb)
		order := make([]int, nb)
		for k := 0; k < nb; k++ {
			nid, err := strconv.Atoi(s[3+k])
			if err != nil || nid < 1 || nid > B.natoms {
				return nil, Error{fmt.Sprintf("%s: bad neighbor id in %q", WrongFormat, strings.TrimSpace(line)), B.filename, []string{"Parse"}, true}
			}
			neigh[k] = nid - 1
			bo, err := strconv.ParseFloat(s[4+nb+k], 64) //s[3+nb] is the molecule-id column
			if err != nil {
				return nil, Error{fmt.Sprintf("%s: bad bond order in %q", WrongFormat, strings.TrimSpace(line)), B.filename, []string{"Parse"}, true}
			}
			o := int(math.Round(bo))
			if o < 1 {
				o = 1
			}
			order[k] = o
		}
		G.Neigh[id-1] = neigh
		G.Order[id-1] = order
		seen++
	}
	if seen != B.natoms {
		return nil, Error{fmt.Sprintf("%s: %d atom lines in timestep, expected %d", WrongFormat, seen, B.natoms), B.filename, []string{"Parse"}, true}
	}
	return &reac.Step{Graph: G, Time: time}, nil
}

// Readable returns true if the trajectory can still be read.
func (B *BondTraj) Readable() bool {
	return B.readable
}

// Len returns the number of atoms per timestep.
func (B *BondTraj) Len() int {
	return B.natoms
}

// Close closes the file and marks the trajectory as not readable.
func (B *BondTraj) Close() {
	if B.traj != nil {
		B.traj.Close()
	}
	B.readable = false
}

//Errors

//Error is the general structure for bond-trajectory errors. It fullfills reac.Error and reac.TrajError.
type Error struct {
	message  string
	filename string //the input file that has problems, or an empty string if none.
	deco     []string
	critical bool
}

func (err Error) Error() string {
	return fmt.Sprintf("LAMMPS bond trajectory file %s error: %s", err.filename, err.message)
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

func (err Error) Format() string { return "LAMMPS bond" }

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

func (E lastStepError) Format() string { return "LAMMPS bond" }

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
