/*
 * molecules.go, part of goreac.
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
	"fmt"
	"sort"
)

// Molecules partitions the atoms of the graph into its connected
// components, i.e. into the molecules present at that timestep. Every atom
// of the graph ends up in exactly one molecule; atoms with no bonds form
// single-atom molecules with empty bond lists. The traversal is a
// depth-first search with an explicit stack, so molecules of any size are
// fine, and the output order (of the molecules, and of the bonds within
// each molecule) is reproducible for a given graph.
func (G *BondGraph) Molecules() []*Molecule {
	n := G.Len()
	visited := make([]bool, n)
	mols := make([]*Molecule, 0, n/2+1)
	stack := make([]int, 0, 32)
	assigned := 0
	for root := 0; root < n; root++ {
		if visited[root] {
			continue
		}
		M := new(Molecule)
		visited[root] = true
		stack = append(stack[:0], root)
		for len(stack) > 0 {
			a := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			M.Atoms = append(M.Atoms, a)
			for k, b := range G.Neigh[a] {
				//each bond is recorded when its lower-index atom is expanded,
				//so it appears exactly once, always as (low,high).
				if a < b {
					M.Bonds = append(M.Bonds, [2]int{a, b})
					M.Orders = append(M.Orders, G.Order[a][k])
				}
				if !visited[b] {
					visited[b] = true
					stack = append(stack, b)
				}
			}
		}
		sort.Ints(M.Atoms)
		assigned += len(M.Atoms)
		mols = append(mols, M)
	}
	if assigned != n {
		//this can only happen if the code above is wrong, so it warrants a panic.
		panic(fmt.Sprintf("goreac: only %d of %d atoms were assigned to a molecule. This is a bug in goreac, please report it", assigned, n))
	}
	return mols
}
