/*
 * bond_test.go, part of goreac.
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

package reaxbond

import (
	"fmt"
	"testing"

	reac "github.com/rmera/goreac"
)

func TestBondHeader(Te *testing.T) {
	fmt.Println("ReaxFF bond file header test!")
	B, err := New("../../test/test.bond")
	if err != nil {
		Te.Fatal(err)
	}
	defer B.Close()
	hdr, err := B.ReadHeader()
	if err != nil {
		Te.Fatal(err)
	}
	if hdr.N != 8 || B.Len() != 8 {
		Te.Errorf("got %d atoms, want 8", hdr.N)
	}
	if hdr.Span != 16 {
		Te.Errorf("got a block span of %d lines, want 16", hdr.Span)
	}
	want := []int{1, 0, 0, 1, 0, 0, 0, 0}
	for i, t := range want {
		if hdr.Types[i] != t {
			Te.Errorf("atom %d has type %d, want %d", i, hdr.Types[i], t)
		}
	}
}

func TestBondWalk(Te *testing.T) {
	fmt.Println("ReaxFF bond file walk test!")
	B, err := New("../../test/test.bond")
	if err != nil {
		Te.Fatal(err)
	}
	defer B.Close()
	if _, err := B.ReadHeader(); err != nil {
		Te.Fatal(err)
	}
	var steps []*reac.Step
	for {
		block, err := B.Next(true)
		if err != nil {
			if _, ok := err.(reac.LastStepError); ok {
				break
			}
			Te.Fatal(err)
		}
		st, err := B.Parse(block)
		if err != nil {
			Te.Fatal(err)
		}
		steps = append(steps, st)
	}
	if len(steps) != 4 {
		Te.Fatalf("read %d timesteps, want 4", len(steps))
	}
	for i, want := range []int{0, 10, 20, 30} {
		if steps[i].Time != want {
			Te.Errorf("timestep %d declares time %d, want %d", i, steps[i].Time, want)
		}
	}
	sizes := func(st *reac.Step) []int {
		var r []int
		for _, M := range st.Graph.Molecules() {
			r = append(r, len(M.Atoms))
		}
		return r
	}
	if s := sizes(steps[0]); len(s) != 3 || s[0] != 3 || s[1] != 3 || s[2] != 2 {
		Te.Errorf("first timestep has molecules of sizes %v, want [3 3 2]", s)
	}
	if s := sizes(steps[1]); len(s) != 3 || s[0] != 4 || s[1] != 2 || s[2] != 2 {
		Te.Errorf("second timestep has molecules of sizes %v, want [4 2 2]", s)
	}
	if s := sizes(steps[3]); len(s) != 4 || s[2] != 1 || s[3] != 1 {
		Te.Errorf("last timestep has molecules of sizes %v, want [3 3 1 1]", s)
	}
	first := steps[0].Graph.Molecules()[0]
	if len(first.Atoms) != 3 || first.Atoms[0] != 0 || first.Atoms[1] != 1 || first.Atoms[2] != 2 {
		Te.Errorf("first molecule holds the atoms %v, want [0 1 2]", first.Atoms)
	}
	if len(first.Bonds) != 2 || first.Orders[0] != 1 || first.Orders[1] != 1 {
		Te.Errorf("first molecule has bonds %v with orders %v", first.Bonds, first.Orders)
	}
	//the parsed graphs must be symmetric
	for _, st := range steps {
		G := st.Graph
		for a := 0; a < G.Len(); a++ {
			for k, b := range G.Neigh[a] {
				found := false
				for j, back := range G.Neigh[b] {
					if back == a && G.Order[b][j] == G.Order[a][k] {
						found = true
						break
					}
				}
				if !found {
					Te.Errorf("bond %d-%d has no symmetric counterpart", a, b)
				}
			}
		}
	}
}

func TestBondDetect(Te *testing.T) {
	fmt.Println("ReaxFF bond file detection test!")
	B, err := New("../../test/test.bond")
	if err != nil {
		Te.Fatal(err)
	}
	defer B.Close()
	T, err := reac.Detect(B, nil)
	if err != nil {
		Te.Fatal(err)
	}
	if T.Steps() != 4 {
		Te.Errorf("processed %d steps, want 4", T.Steps())
	}
	names := []string{"H", "O"}
	want := []string{"H2O", "H2", "H3O", "HO", "H"}
	keys := T.Keys()
	if len(keys) != len(want) {
		Te.Fatalf("found %d species, want %d", len(keys), len(want))
	}
	for i, k := range keys {
		if f := reac.KeyFormula(k, names); f != want[i] {
			Te.Errorf("species %d is %s, want %s", i, f, want[i])
		}
	}
	wantocc := [][]int{{0, 0, 2, 2, 3, 3}, {0, 1, 2}, {1}, {1}, {3, 3}}
	for i, k := range keys {
		occ := T.Occurrences(k)
		if len(occ) != len(wantocc[i]) {
			Te.Errorf("%s seen at steps %v, want %v", want[i], occ, wantocc[i])
			continue
		}
		for j := range occ {
			if occ[j] != wantocc[i][j] {
				Te.Errorf("%s seen at steps %v, want %v", want[i], occ, wantocc[i])
				break
			}
		}
	}
	for i, w := range []int{0, 10, 20, 30} {
		if T.Time(i) != w {
			Te.Errorf("step %d has time %d, want %d", i, T.Time(i), w)
		}
	}
}

func TestBondDetectInterval(Te *testing.T) {
	B, err := New("../../test/test.bond")
	if err != nil {
		Te.Fatal(err)
	}
	defer B.Close()
	o := reac.DefaultOptions()
	o.Interval(2)
	T, err := reac.Detect(B, o)
	if err != nil {
		Te.Fatal(err)
	}
	if T.Steps() != 2 {
		Te.Fatalf("with interval 2, processed %d steps, want 2", T.Steps())
	}
	if T.Time(0) != 0 || T.Time(1) != 20 {
		Te.Errorf("with interval 2, times are %d and %d, want 0 and 20", T.Time(0), T.Time(1))
	}
	if T.Molecules() != 2 {
		Te.Errorf("with interval 2, found %d species, want 2", T.Molecules())
	}
}

//a file with a single timestep, whose block is the whole file, and a
//fractional bond order.
func TestBondSingleStep(Te *testing.T) {
	B, err := New("../../test/single.bond")
	if err != nil {
		Te.Fatal(err)
	}
	defer B.Close()
	hdr, err := B.ReadHeader()
	if err != nil {
		Te.Fatal(err)
	}
	if hdr.N != 2 {
		Te.Errorf("got %d atoms, want 2", hdr.N)
	}
	block, err := B.Next(true)
	if err != nil {
		Te.Fatal(err)
	}
	st, err := B.Parse(block)
	if err != nil {
		Te.Fatal(err)
	}
	mols := st.Graph.Molecules()
	if len(mols) != 1 || len(mols[0].Atoms) != 2 {
		Te.Fatalf("got %d molecules, want a single 2-atom one", len(mols))
	}
	if len(mols[0].Orders) != 1 || mols[0].Orders[0] != 1 {
		Te.Errorf("the 1.4 bond order came out as %v, want [1]", mols[0].Orders)
	}
	if _, err := B.Next(true); err == nil {
		Te.Error("reading past the single timestep did not fail")
	} else if _, ok := err.(reac.LastStepError); !ok {
		Te.Errorf("reading past the single timestep gave the wrong error: %v", err)
	}
}

func TestBondBadFiles(Te *testing.T) {
	if _, err := New("../../test/not_a_file.bond"); err == nil {
		Te.Error("opening a missing file did not fail")
	}
	B, err := New("../../test/noheader.bond")
	if err != nil {
		Te.Fatal(err)
	}
	defer B.Close()
	if _, err := B.ReadHeader(); err == nil {
		Te.Error("a file with no particle-count line did not fail")
	} else if terr, ok := err.(reac.TrajError); !ok || terr.Format() != "LAMMPS bond" || !terr.Critical() {
		Te.Errorf("wrong error for a headerless file: %v", err)
	}
	C, err := New("../../test/badcount.bond")
	if err != nil {
		Te.Fatal(err)
	}
	defer C.Close()
	if _, err := C.ReadHeader(); err == nil {
		Te.Error("a file with a non-numeric particle count did not fail")
	}
}
