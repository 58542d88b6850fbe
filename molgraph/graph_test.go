package molgraph

import (
	"fmt"
	"testing"

	reac "github.com/rmera/goreac"
)

//the graph of two waters and an H2. Type 0 is H, type 1 is O.
func waters() (*reac.BondGraph, []int) {
	G := reac.NewBondGraph(8)
	G.AddBond(0, 1, 1)
	G.AddBond(0, 2, 1)
	G.AddBond(3, 4, 1)
	G.AddBond(3, 5, 2)
	G.AddBond(6, 7, 1)
	return G, []int{1, 0, 0, 1, 0, 0, 0, 0}
}

func TestComponents(Te *testing.T) {
	fmt.Println("Graph components test!")
	B, types := waters()
	G := FromBonds(B, types)
	comps := G.Components()
	mols := B.Molecules()
	if len(comps) != len(mols) {
		Te.Fatalf("got %d components for %d molecules", len(comps), len(mols))
	}
	for i, comp := range comps {
		if len(comp) != len(mols[i].Atoms) {
			Te.Errorf("component %d has %d atoms, the molecule has %d", i, len(comp), len(mols[i].Atoms))
			continue
		}
		for j, at := range comp {
			if at.Idx != mols[i].Atoms[j] {
				Te.Errorf("component %d holds the atom %d where the molecule holds %d", i, at.Idx, mols[i].Atoms[j])
			}
			if at.Type != types[at.Idx] {
				Te.Errorf("atom %d carries the type %d, want %d", at.Idx, at.Type, types[at.Idx])
			}
		}
	}
}

func TestWeights(Te *testing.T) {
	B, types := waters()
	M := B.Molecules()[1] //the water with the double bond
	G := FromMolecule(M, types)
	if !G.HasEdgeBetween(3, 5) || !G.HasEdgeBetween(5, 3) {
		Te.Error("the graph is not symmetric")
	}
	if w, ok := G.Weight(3, 5); !ok || w != 2 {
		Te.Errorf("the double bond weighs %v (ok %v), want 2", w, ok)
	}
	if w, ok := G.Weight(3, 4); !ok || w != 1 {
		Te.Errorf("the single bond weighs %v (ok %v), want 1", w, ok)
	}
	if _, ok := G.Weight(4, 5); ok {
		Te.Error("the two hydrogens came out bonded")
	}
	if w, ok := G.Weight(3, 3); !ok || w != 0 {
		Te.Error("the self weight should be 0, true")
	}
	if e := G.WeightedEdge(3, 5); e == nil || e.Weight() != 2 {
		Te.Error("the double bond is missing its weighted edge")
	}
	if e := G.Edge(4, 5); e != nil {
		Te.Errorf("got the edge %v between unbonded atoms", e)
	}
}

func TestNodes(Te *testing.T) {
	B, types := waters()
	G := FromBonds(B, types)
	it := G.Nodes()
	if it.Len() != 8 {
		Te.Errorf("the node iterator claims %d nodes, want 8", it.Len())
	}
	count := 0
	for it.Next() {
		count++
	}
	if count != 8 {
		Te.Errorf("iterated over %d nodes, want 8", count)
	}
	if G.Node(3) == nil || G.Node(99) != nil {
		Te.Error("Node lookups came out wrong")
	}
	from := G.From(0)
	neighbors := 0
	for from.Next() {
		n := from.Node().ID()
		if n != 1 && n != 2 {
			Te.Errorf("atom 0 neighbors atom %d", n)
		}
		neighbors++
	}
	if neighbors != 2 {
		Te.Errorf("atom 0 has %d neighbors, want 2", neighbors)
	}
	empty := newGraph(0)
	if empty.Nodes().Len() != 0 {
		Te.Error("an empty graph should have an empty node iterator")
	}
}
