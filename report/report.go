//Package report summarizes detection runs: per-step population series,
//species rankings and their plots.
package report

import (
	"image/color"
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	reac "github.com/rmera/goreac"
)

// Pop holds the population series of a detection run: for each processed
// step, the total number of molecules alive and the number of distinct
// species among them.
type Pop struct {
	Times     []int //simulation timestep of each processed step
	Molecules []int
	Species   []int
}

// Series extracts the population series from a timeline.
func Series(t *reac.Timeline) *Pop {
	n := t.Steps()
	P := &Pop{
		Times:     make([]int, n),
		Molecules: make([]int, n),
		Species:   make([]int, n),
	}
	for i := 0; i < n; i++ {
		P.Times[i] = t.Time(i)
	}
	for _, k := range t.Keys() {
		//occurrence lists are nondecreasing, so repeats of a step are adjacent
		last := -1
		for _, s := range t.Occurrences(k) {
			P.Molecules[s]++
			if s != last {
				P.Species[s]++
				last = s
			}
		}
	}
	return P
}

// Plot writes the population series along the simulation time to the
// named file. The format is taken from the extension (png, pdf, svg and
// the other formats vg can write).
func (P *Pop) Plot(name string) error {
	p := plot.New()
	p.Title.Text = "Species along the trajectory"
	p.X.Label.Text = "Simulation timestep"
	p.Y.Label.Text = "Count"
	p.Add(plotter.NewGrid())
	mol := make(plotter.XYs, len(P.Molecules))
	sps := make(plotter.XYs, len(P.Species))
	for i := range P.Molecules {
		x := float64(P.Times[i])
		mol[i].X = x
		mol[i].Y = float64(P.Molecules[i])
		sps[i].X = x
		sps[i].Y = float64(P.Species[i])
	}
	lmol, err := plotter.NewLine(mol)
	if err != nil {
		return err
	}
	lmol.Color = color.RGBA{B: 255, A: 255}
	lsps, err := plotter.NewLine(sps)
	if err != nil {
		return err
	}
	lsps.Color = color.RGBA{R: 255, A: 255}
	p.Add(lmol, lsps)
	p.Legend.Add("molecules", lmol)
	p.Legend.Add("species", lsps)
	return p.Save(6*vg.Inch, 4*vg.Inch, name)
}

// Count ranks one species: the total number of occurrences along the
// trajectory, counting several copies per step, and the number of
// distinct steps where the species shows up.
type Count struct {
	Key   reac.Key
	Total int
	Steps int
}

// Top returns the n most frequent species by total occurrences, the most
// frequent first. If n <= 0, or past the number of species, all of them
// are returned. Ties keep their first-appearance order.
func Top(t *reac.Timeline, n int) []Count {
	keys := t.Keys()
	ret := make([]Count, 0, len(keys))
	for _, k := range keys {
		occ := t.Occurrences(k)
		c := Count{Key: k, Total: len(occ)}
		last := -1
		for _, s := range occ {
			if s != last {
				c.Steps++
				last = s
			}
		}
		ret = append(ret, c)
	}
	sort.SliceStable(ret, func(i, j int) bool { return ret[i].Total > ret[j].Total })
	if n > 0 && n < len(ret) {
		ret = ret[:n]
	}
	return ret
}
