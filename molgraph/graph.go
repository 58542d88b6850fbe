//Package molgraph puts detected molecules in gonum graph form, so graph
//algorithms (connected components, shortest paths, isomorphism tests) can
//be run on them.
package molgraph

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/iterator"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"

	reac "github.com/rmera/goreac"
)

// Atom is one atom of a timestep, as a graph node. Idx is the 0-based
// index of the atom in the timestep and Type its 0-based atom type.
type Atom struct {
	Idx  int
	Type int
}

func (A Atom) ID() int64 {
	return int64(A.Idx)
}

// Graph is an undirected graph of atoms where the edge weights are bond
// orders. It implements graph.Graph, graph.Undirected and graph.Weighted.
type Graph struct {
	atoms map[int64]Atom
	order []Atom //in ascending index order
	adj   map[int64]map[int64]float64
}

func newGraph(natoms int) *Graph {
	return &Graph{
		atoms: make(map[int64]Atom, natoms),
		order: make([]Atom, 0, natoms),
		adj:   make(map[int64]map[int64]float64, natoms),
	}
}

func (G *Graph) addAtom(idx int, types []int) {
	if idx >= len(types) {
		panic(fmt.Sprintf("molgraph: atom %d has no type in a table of %d. This is a bug in goreac, please report it", idx, len(types)))
	}
	at := Atom{Idx: idx, Type: types[idx]}
	G.atoms[at.ID()] = at
	G.order = append(G.order, at)
	G.adj[at.ID()] = make(map[int64]float64)
}

func (G *Graph) addBond(a, b, order int) {
	G.adj[int64(a)][int64(b)] = float64(order)
	G.adj[int64(b)][int64(a)] = float64(order)
}

// FromMolecule builds the graph of one detected molecule. types is the
// atom-type table of the timestep the molecule came from.
func FromMolecule(M *reac.Molecule, types []int) *Graph {
	G := newGraph(len(M.Atoms))
	for _, a := range M.Atoms {
		G.addAtom(a, types)
	}
	for i, b := range M.Bonds {
		G.addBond(b[0], b[1], M.Orders[i])
	}
	return G
}

// FromBonds builds the graph of a whole timestep.
func FromBonds(B *reac.BondGraph, types []int) *Graph {
	n := B.Len()
	G := newGraph(n)
	for i := 0; i < n; i++ {
		G.addAtom(i, types)
	}
	for i := 0; i < n; i++ {
		for k, j := range B.Neigh[i] {
			if i < j {
				G.addBond(i, j, B.Order[i][k])
			}
		}
	}
	return G
}

func (G *Graph) Node(id int64) graph.Node {
	if a, ok := G.atoms[id]; ok {
		return a
	}
	return nil
}

func (G *Graph) Nodes() graph.Nodes {
	if len(G.order) == 0 {
		return graph.Empty
	}
	nodes := make([]graph.Node, len(G.order))
	for i, a := range G.order {
		nodes[i] = a
	}
	return iterator.NewOrderedNodes(nodes)
}

func (G *Graph) From(id int64) graph.Nodes {
	ns := G.adj[id]
	if len(ns) == 0 {
		return graph.Empty
	}
	ret := make([]graph.Node, 0, len(ns))
	for nid := range ns {
		ret = append(ret, G.atoms[nid])
	}
	sort.Slice(ret, func(i, j int) bool { return ret[i].ID() < ret[j].ID() })
	return iterator.NewOrderedNodes(ret)
}

func (G *Graph) HasEdgeBetween(xid, yid int64) bool {
	_, ok := G.adj[xid][yid]
	return ok
}

//the graph is always undirected
func (G *Graph) Edge(uid, vid int64) graph.Edge {
	return G.WeightedEdge(uid, vid)
}

func (G *Graph) EdgeBetween(xid, yid int64) graph.Edge {
	return G.WeightedEdge(xid, yid)
}

func (G *Graph) WeightedEdge(uid, vid int64) graph.WeightedEdge {
	w, ok := G.adj[uid][vid]
	if !ok {
		return nil
	}
	return simple.WeightedEdge{F: G.atoms[uid], T: G.atoms[vid], W: w}
}

func (G *Graph) WeightedEdgeBetween(xid, yid int64) graph.WeightedEdge {
	return G.WeightedEdge(xid, yid)
}

func (G *Graph) Weight(xid, yid int64) (w float64, ok bool) {
	if xid == yid {
		return 0, true
	}
	w, ok = G.adj[xid][yid]
	return w, ok
}

// Components returns the connected components of the graph, each sorted
// by atom index, and ordered among themselves by their smallest atom
// index. On a graph built with FromBonds they match the molecules that
// reac detects for the same timestep.
func (G *Graph) Components() [][]Atom {
	cc := topo.ConnectedComponents(G)
	ret := make([][]Atom, 0, len(cc))
	for _, comp := range cc {
		atoms := make([]Atom, 0, len(comp))
		for _, n := range comp {
			atoms = append(atoms, n.(Atom))
		}
		sort.Slice(atoms, func(i, j int) bool { return atoms[i].Idx < atoms[j].Idx })
		ret = append(ret, atoms)
	}
	sort.Slice(ret, func(i, j int) bool { return ret[i][0].Idx < ret[j][0].Idx })
	return ret
}
