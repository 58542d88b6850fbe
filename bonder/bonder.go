/*
 * bonder.go, part of goreac.
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

//Package bonder provides bonding oracles: given the element symbols and
//positions of the atoms in one timestep, an oracle returns the bonds
//between them. Oracles are needed for trajectory formats that record
//positions but not connectivity. All oracles here are safe for concurrent
//use, as the parallel reader calls them from several goroutines.
package bonder

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/kdtree"

	reac "github.com/rmera/goreac"
)

//constants from DOI:10.1186/1758-2946-3-33
const (
	tooclose = 0.63
	bondtol  = 0.45
)

//images this close to a real atom are kept as ghost atoms, so bonds
//crossing the box boundary can be seen by the oracle.
const ghostCutoff = 5.0

//a candidate bond, shared between the per-atom lists of both its atoms.
type cand struct {
	a, b    int
	dist    float64
	removed bool
}

// Covalent is a bonding oracle that assigns bonds based on a simple
// distance criterium, similar to that described in DOI:10.1186/1758-2946-3-33.
// Distances alone say little about bond order, so every bond gets order 1.
type Covalent struct{}

// NewCovalent returns a ready-to-use Covalent oracle.
func NewCovalent() *Covalent {
	return new(Covalent)
}

// Bonds returns the bonds between the given atoms. Two atoms are bonded if
// their distance is under the sum of their covalent radii plus a tolerance,
// but not close enough to be an artifact. Atoms with more bonds than their
// element allows lose their longest bonds. The search is quadratic on the
// number of atoms, so it might get slow for large systems.
func (C *Covalent) Bonds(symbols []string, pos *mat.Dense) ([]reac.Bond, error) {
	n := len(symbols)
	r, c := pos.Dims()
	if r != n || c != 3 {
		return nil, Error{fmt.Sprintf("positions are %dx%d, want %dx3", r, c, n), "Covalent", []string{"Bonds"}}
	}
	cands := make([]*cand, 0, n)
	peratom := make([][]*cand, n)
	for i := 0; i < n; i++ {
		cov1 := symbolCovrad[symbols[i]]
		if cov1 == 0 {
			return nil, Error{fmt.Sprintf("Couldn't find the covalent radii for %s %d", symbols[i], i), "Covalent", []string{"Bonds"}}
		}
		for j := i + 1; j < n; j++ {
			cov2 := symbolCovrad[symbols[j]]
			if cov2 == 0 {
				return nil, Error{fmt.Sprintf("Couldn't find the covalent radii for %s %d", symbols[j], j), "Covalent", []string{"Bonds"}}
			}
			dx := pos.At(i, 0) - pos.At(j, 0)
			dy := pos.At(i, 1) - pos.At(j, 1)
			dz := pos.At(i, 2) - pos.At(j, 2)
			d := math.Sqrt(dx*dx + dy*dy + dz*dz)
			if d < cov1+cov2+bondtol && d > tooclose {
				b := &cand{a: i, b: j, dist: d}
				cands = append(cands, b)
				peratom[i] = append(peratom[i], b)
				peratom[j] = append(peratom[j], b)
			}
		}
	}
	//Now we check that no atom has too many bonds.
	for i := 0; i < n; i++ {
		max := symbolMaxBonds[symbols[i]]
		if max == 0 { //means there is not a specified number of bonds for this atom.
			continue
		}
		bs := peratom[i]
		sort.Slice(bs, func(k, l int) bool { return bs[k].dist < bs[l].dist })
		left := 0
		for _, b := range bs {
			if !b.removed {
				left++
			}
		}
		for k := len(bs) - 1; left > max && k >= 0; k-- { //we remove the longest bonds
			if bs[k].removed {
				continue
			}
			bs[k].removed = true
			left--
		}
	}
	ret := make([]reac.Bond, 0, len(cands))
	for _, b := range cands {
		if !b.removed {
			ret = append(ret, reac.Bond{A: b.a, B: b.b, Order: 1})
		}
	}
	return ret, nil
}

// Periodic returns the bonds for atoms in a periodic, orthorhombic box
// with the given cell lengths, including bonds that cross the box
// boundaries. It extends the system with the images of the atoms under
// each positive combination of the cell vectors, keeps only images lying
// within ghostCutoff of some real atom, asks b for the bonds of the
// extended system, and remaps bonds involving images back to the real
// atoms. Bonds between two images have a copy among the real atoms, so
// they are discarded, and a bond found both directly and through an image
// is reported only once.
func Periodic(b reac.Bonder, symbols []string, pos *mat.Dense, cell []float64) ([]reac.Bond, error) {
	n := len(symbols)
	r, c := pos.Dims()
	if r != n || c != 3 {
		return nil, Error{fmt.Sprintf("positions are %dx%d, want %dx3", r, c, n), "Periodic", []string{"Periodic"}}
	}
	if len(cell) < 3 || cell[0] <= 0 || cell[1] <= 0 || cell[2] <= 0 {
		return nil, Error{fmt.Sprintf("bad cell %v", cell), "Periodic", []string{"Periodic"}}
	}
	points := make(kdtree.Points, n)
	excrd := make([]float64, 3*n, 6*n)
	for i := 0; i < n; i++ {
		x, y, z := pos.At(i, 0), pos.At(i, 1), pos.At(i, 2)
		points[i] = kdtree.Point{x, y, z}
		excrd[3*i], excrd[3*i+1], excrd[3*i+2] = x, y, z
	}
	tree := kdtree.New(points, false)
	exsym := make([]string, n, 2*n)
	copy(exsym, symbols)
	origin := make([]int, 0, n) //origin[k] is the real atom of which atom n+k is an image
	for dx := 0; dx <= 1; dx++ {
		for dy := 0; dy <= 1; dy++ {
			for dz := 0; dz <= 1; dz++ {
				if dx == 0 && dy == 0 && dz == 0 {
					continue
				}
				for i := 0; i < n; i++ {
					x := pos.At(i, 0) + float64(dx)*cell[0]
					y := pos.At(i, 1) + float64(dy)*cell[1]
					z := pos.At(i, 2) + float64(dz)*cell[2]
					_, d2 := tree.Nearest(kdtree.Point{x, y, z})
					if d2 >= ghostCutoff*ghostCutoff { //Nearest returns the squared distance
						continue
					}
					exsym = append(exsym, symbols[i])
					excrd = append(excrd, x, y, z)
					origin = append(origin, i)
				}
			}
		}
	}
	expos := mat.NewDense(len(exsym), 3, excrd)
	bonds, err := b.Bonds(exsym, expos)
	if err != nil {
		return nil, errDecorate(err, "Periodic")
	}
	ret := make([]reac.Bond, 0, len(bonds))
	seen := make(map[[2]int]bool, len(bonds))
	for _, bo := range bonds {
		a1, a2 := bo.A, bo.B
		if a1 >= n && a2 >= n {
			continue
		}
		if a1 >= n {
			a1 = origin[a1-n]
		}
		if a2 >= n {
			a2 = origin[a2-n]
		}
		if a1 == a2 { //an atom bonded to its own image
			continue
		}
		if a1 > a2 {
			a1, a2 = a2, a1
		}
		if seen[[2]int{a1, a2}] {
			continue
		}
		seen[[2]int{a1, a2}] = true
		ret = append(ret, reac.Bond{A: a1, B: a2, Order: bo.Order})
	}
	return ret, nil
}

//Errors

//errDecorate adds the caller to the decoration trail of the error, if it
//is a reac.Error, and wraps it into one otherwise. The wrapping is needed
//because Periodic can be given any Bonder implementation, also one from
//outside this module.
func errDecorate(err error, caller string) error {
	err2, ok := err.(reac.Error)
	if !ok {
		return Error{message: err.Error(), oracle: "external", deco: []string{caller}}
	}
	err2.Decorate(caller)
	return err2
}

//Error is the general structure for bonding-oracle errors. It fullfills reac.Error.
type Error struct {
	message string
	oracle  string //the oracle that produced the error
	deco    []string
}

func (err Error) Error() string {
	return fmt.Sprintf("bonding oracle %s error: %s", err.oracle, err.message)
}

func (E Error) Decorate(deco string) []string {
	//Even though this method does not use a pointer as a receiver, and tries to alter the receiver,
	//it should work, since E.deco is a slice, and hence a pointer itself.
	if deco != "" {
		E.deco = append(E.deco, deco)
	}
	return E.deco
}
