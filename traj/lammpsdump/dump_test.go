/*
 * dump_test.go, part of goreac.
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

package lammpsdump

import (
	"fmt"
	"strings"
	"testing"

	reac "github.com/rmera/goreac"
	"github.com/rmera/goreac/bonder"
)

var waterNames = []string{"O", "H"}

func TestDumpHeader(Te *testing.T) {
	fmt.Println("LAMMPS dump header test!")
	D, err := New("../../test/test.dump", waterNames, bonder.NewCovalent(), false)
	if err != nil {
		Te.Fatal(err)
	}
	defer D.Close()
	hdr, err := D.ReadHeader()
	if err != nil {
		Te.Fatal(err)
	}
	if hdr.N != 3 || D.Len() != 3 {
		Te.Errorf("got %d atoms, want 3", hdr.N)
	}
	if hdr.Span != 12 {
		Te.Errorf("got a block span of %d lines, want 12", hdr.Span)
	}
	want := []int{0, 1, 1}
	for i, t := range want {
		if hdr.Types[i] != t {
			Te.Errorf("atom %d has type %d, want %d", i, hdr.Types[i], t)
		}
	}
}

func TestDumpDetect(Te *testing.T) {
	fmt.Println("LAMMPS dump detection test!")
	D, err := New("../../test/test.dump", waterNames, bonder.NewCovalent(), false)
	if err != nil {
		Te.Fatal(err)
	}
	defer D.Close()
	T, err := reac.Detect(D, nil)
	if err != nil {
		Te.Fatal(err)
	}
	if T.Steps() != 2 {
		Te.Fatalf("processed %d steps, want 2", T.Steps())
	}
	if T.Time(0) != 0 || T.Time(1) != 100 {
		Te.Errorf("times are %d and %d, want 0 and 100", T.Time(0), T.Time(1))
	}
	keys := T.Keys()
	want := []string{"OH2", "OH", "H"}
	if len(keys) != len(want) {
		Te.Fatalf("found %d species, want %d", len(keys), len(want))
	}
	for i, k := range keys {
		if f := reac.KeyFormula(k, waterNames); f != want[i] {
			Te.Errorf("species %d is %s, want %s", i, f, want[i])
		}
	}
	//the water is seen only in the first step, its fragments only in the
	//second, whose atom lines come scrambled in the file.
	wantocc := [][]int{{0}, {1}, {1}}
	for i, k := range keys {
		occ := T.Occurrences(k)
		if len(occ) != len(wantocc[i]) || occ[0] != wantocc[i][0] {
			Te.Errorf("%s seen at steps %v, want %v", want[i], occ, wantocc[i])
		}
	}
}

func TestDumpWalk(Te *testing.T) {
	D, err := New("../../test/test.dump", waterNames, bonder.NewCovalent(), false)
	if err != nil {
		Te.Fatal(err)
	}
	defer D.Close()
	if _, err := D.ReadHeader(); err != nil {
		Te.Fatal(err)
	}
	block, err := D.Next(true)
	if err != nil {
		Te.Fatal(err)
	}
	st, err := D.Parse(block)
	if err != nil {
		Te.Fatal(err)
	}
	mols := st.Graph.Molecules()
	if len(mols) != 1 || len(mols[0].Atoms) != 3 || len(mols[0].Bonds) != 2 {
		Te.Errorf("the intact water came out wrong: %d molecules", len(mols))
	}
	for _, b := range mols[0].Bonds {
		if b[0] != 0 {
			Te.Errorf("bond %v does not involve the oxygen", b)
		}
	}
	if _, err := D.Next(false); err != nil {
		Te.Fatal(err)
	}
	if _, err := D.Next(true); err == nil {
		Te.Error("reading past the last timestep did not fail")
	} else if _, ok := err.(reac.LastStepError); !ok {
		Te.Errorf("reading past the last timestep gave the wrong error: %v", err)
	}
}

func TestDumpPBC(Te *testing.T) {
	fmt.Println("LAMMPS dump periodic-boundary test!")
	D, err := New("../../test/pbc.dump", waterNames, bonder.NewCovalent(), true)
	if err != nil {
		Te.Fatal(err)
	}
	defer D.Close()
	T, err := reac.Detect(D, nil)
	if err != nil {
		Te.Fatal(err)
	}
	if T.Molecules() != 1 {
		Te.Fatalf("found %d species across the boundary, want 1", T.Molecules())
	}
	k := T.Keys()[0]
	if f := reac.KeyFormula(k, waterNames); f != "OH" {
		Te.Errorf("the species across the boundary is %s, want OH", f)
	}
	//the bond through the wall must be recorded once, not once per image
	E, err := New("../../test/pbc.dump", waterNames, bonder.NewCovalent(), true)
	if err != nil {
		Te.Fatal(err)
	}
	defer E.Close()
	if _, err := E.ReadHeader(); err != nil {
		Te.Fatal(err)
	}
	block, err := E.Next(true)
	if err != nil {
		Te.Fatal(err)
	}
	st, err := E.Parse(block)
	if err != nil {
		Te.Fatal(err)
	}
	mols := st.Graph.Molecules()
	if len(mols) != 1 {
		Te.Fatalf("got %d molecules across the boundary, want 1", len(mols))
	}
	if len(mols[0].Bonds) != 1 || mols[0].Bonds[0] != [2]int{0, 1} {
		Te.Errorf("the boundary-crossing molecule has bonds %v, want [[0 1]]", mols[0].Bonds)
	}
}

func TestDumpNoPBC(Te *testing.T) {
	D, err := New("../../test/pbc.dump", waterNames, bonder.NewCovalent(), false)
	if err != nil {
		Te.Fatal(err)
	}
	defer D.Close()
	T, err := reac.Detect(D, nil)
	if err != nil {
		Te.Fatal(err)
	}
	if T.Molecules() != 2 {
		Te.Fatalf("without periodicity, found %d species, want 2", T.Molecules())
	}
	for i, want := range []string{"O", "H"} {
		if f := reac.KeyFormula(T.Keys()[i], waterNames); f != want {
			Te.Errorf("species %d is %s, want %s", i, f, want)
		}
	}
}

func TestDumpMissingColumn(Te *testing.T) {
	D, err := New("../../test/nox.dump", waterNames, bonder.NewCovalent(), false)
	if err != nil {
		Te.Fatal(err)
	}
	defer D.Close()
	_, err = D.ReadHeader()
	if err == nil {
		Te.Fatal("a dump with no x column did not fail")
	}
	if !strings.Contains(err.Error(), "x") {
		Te.Errorf("the error does not name the missing column: %v", err)
	}
	if terr, ok := err.(reac.TrajError); !ok || terr.Format() != "LAMMPS dump" {
		Te.Errorf("wrong error type for a missing column: %v", err)
	}
}
