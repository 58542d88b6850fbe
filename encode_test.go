/*
 * encode_test.go, part of goreac.
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

package reac

import (
	"encoding/binary"
	"fmt"
	"testing"
)

//The same water, built with 3 different atom labelings. Type 0 is H,
//type 1 is O.
func TestKeyDeterminism(Te *testing.T) {
	fmt.Println("Key determinism test!")
	M1 := &Molecule{Atoms: []int{0, 1, 2}, Bonds: [][2]int{{0, 1}, {0, 2}}, Orders: []int{1, 1}}
	t1 := []int{1, 0, 0} //O is atom 0
	M2 := &Molecule{Atoms: []int{0, 1, 2}, Bonds: [][2]int{{0, 1}, {1, 2}}, Orders: []int{1, 1}}
	t2 := []int{0, 1, 0} //O is atom 1
	M3 := &Molecule{Atoms: []int{5, 6, 7}, Bonds: [][2]int{{6, 5}, {6, 7}}, Orders: []int{1, 1}}
	t3 := []int{9, 9, 9, 9, 9, 0, 1, 0} //water at the end of a larger timestep
	k1 := M1.Key(t1)
	k2 := M2.Key(t2)
	k3 := M3.Key(t3)
	if k1 != k2 || k2 != k3 {
		Te.Errorf("the same water got different keys: %x %x %x", k1, k2, k3)
	}
	if f := KeyFormula(k1, []string{"H", "O"}); f != "H2O" {
		Te.Errorf("water formula came out as %q, want H2O", f)
	}
}

func TestKeySensitivity(Te *testing.T) {
	water := &Molecule{Atoms: []int{0, 1, 2}, Bonds: [][2]int{{0, 1}, {0, 2}}, Orders: []int{1, 1}}
	types := []int{1, 0, 0}
	k := water.Key(types)
	//a double bond instead of a single one
	doubled := &Molecule{Atoms: []int{0, 1, 2}, Bonds: [][2]int{{0, 1}, {0, 2}}, Orders: []int{2, 1}}
	if doubled.Key(types) == k {
		Te.Error("changing a bond order did not change the key")
	}
	//one more H
	h3o := &Molecule{Atoms: []int{0, 1, 2, 3}, Bonds: [][2]int{{0, 1}, {0, 2}, {0, 3}}, Orders: []int{1, 1, 1}}
	if h3o.Key([]int{1, 0, 0, 0}) == k {
		Te.Error("adding an atom did not change the key")
	}
	//same composition, different element assignment
	if water.Key([]int{0, 1, 1}) == k {
		Te.Error("swapping the atom types did not change the key")
	}
}

func TestKeyLayout(Te *testing.T) {
	single := &Molecule{Atoms: []int{0}}
	k := []byte(single.Key([]int{3}))
	if len(k) != 12 {
		Te.Errorf("single-atom key is %d bytes, want 12", len(k))
	}
	if binary.BigEndian.Uint32(k) != 1 || binary.BigEndian.Uint32(k[4:]) != 3 || binary.BigEndian.Uint32(k[8:]) != 0 {
		Te.Errorf("unexpected single-atom key layout: % x", k)
	}
	if f := KeyFormula(Key(k), []string{"H", "O"}); f != "T3" {
		Te.Errorf("out-of-table type rendered as %q, want T3", f)
	}
	if KeyFormula(Key("ab"), nil) != "" {
		Te.Error("a truncated key should render as an empty formula")
	}
}

func TestEncodeBonds(Te *testing.T) {
	M := &Molecule{Atoms: []int{0, 1, 2}, Bonds: [][2]int{{0, 2}, {1, 2}}, Orders: []int{1, 12}}
	p := M.EncodeBonds()
	if len(p) != 4+12*2 {
		Te.Fatalf("encoded bonds are %d bytes, want %d", len(p), 4+12*2)
	}
	if binary.BigEndian.Uint32(p) != 2 {
		Te.Errorf("bond count field is %d, want 2", binary.BigEndian.Uint32(p))
	}
	want := []uint32{0, 2, 1, 1, 2, 12}
	for i, w := range want {
		if got := binary.BigEndian.Uint32(p[4+4*i:]); got != w {
			Te.Errorf("field %d of the bond encoding is %d, want %d", i, got, w)
		}
	}
	empty := &Molecule{Atoms: []int{4}}
	if len(empty.EncodeBonds()) != 4 {
		Te.Error("a bondless molecule should encode to just the count field")
	}
}
