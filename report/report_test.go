package report

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	reac "github.com/rmera/goreac"
)

//a timeline with 3 steps: two copies of A and one B at step 0, one A at
//step 1, one B and one C at step 2.
func testTimeline() *reac.Timeline {
	T := reac.NewTimeline()
	ka, kb, kc := reac.Key("AAAA"), reac.Key("BBBB"), reac.Key("CCCC")
	T.Add(ka, nil, 0)
	T.Add(ka, nil, 0)
	T.Add(kb, nil, 0)
	T.SetTime(0, 0)
	T.Add(ka, nil, 1)
	T.SetTime(1, 100)
	T.Add(kb, nil, 2)
	T.Add(kc, nil, 2)
	T.SetTime(2, 200)
	return T
}

func TestSeries(Te *testing.T) {
	fmt.Println("Population series test!")
	P := Series(testTimeline())
	if len(P.Times) != 3 {
		Te.Fatalf("the series covers %d steps, want 3", len(P.Times))
	}
	for i, want := range []int{0, 100, 200} {
		if P.Times[i] != want {
			Te.Errorf("step %d has time %d, want %d", i, P.Times[i], want)
		}
	}
	for i, want := range []int{3, 1, 2} {
		if P.Molecules[i] != want {
			Te.Errorf("step %d has %d molecules, want %d", i, P.Molecules[i], want)
		}
	}
	for i, want := range []int{2, 1, 2} {
		if P.Species[i] != want {
			Te.Errorf("step %d has %d species, want %d", i, P.Species[i], want)
		}
	}
}

func TestTop(Te *testing.T) {
	T := testTimeline()
	top := Top(T, 0)
	if len(top) != 3 {
		Te.Fatalf("got %d ranked species, want 3", len(top))
	}
	if top[0].Key != reac.Key("AAAA") || top[0].Total != 3 || top[0].Steps != 2 {
		Te.Errorf("the top species came out as %+v", top[0])
	}
	if top[1].Key != reac.Key("BBBB") || top[1].Total != 2 || top[1].Steps != 2 {
		Te.Errorf("the second species came out as %+v", top[1])
	}
	if top[2].Total != 1 {
		Te.Errorf("the third species came out as %+v", top[2])
	}
	if got := Top(T, 1); len(got) != 1 || got[0].Key != reac.Key("AAAA") {
		Te.Errorf("Top(1) came out as %+v", got)
	}
	if got := Top(T, 10); len(got) != 3 {
		Te.Errorf("Top past the species count returned %d entries", len(got))
	}
}

func TestPlot(Te *testing.T) {
	name := filepath.Join(Te.TempDir(), "pop.png")
	P := Series(testTimeline())
	if err := P.Plot(name); err != nil {
		Te.Fatal(err)
	}
	info, err := os.Stat(name)
	if err != nil {
		Te.Fatal(err)
	}
	if info.Size() == 0 {
		Te.Error("the plot file is empty")
	}
}
