package dag

import (
	"slices"
	"testing"
)

func idsToNames(idx Index, ids []NodeID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = idx.IDToName[int(id)]
	}
	return out
}

func batchesToNames(idx Index, batches [][]NodeID) [][]string {
	out := make([][]string, len(batches))
	for i, batch := range batches {
		out[i] = idsToNames(idx, batch)
	}
	return out
}

func TestBuildIndexSortsUniqueNames(t *testing.T) {
	idx := BuildIndex([]string{"b", "a", "", "b", "c"})

	wantNames := []string{"a", "b", "c"}
	if !slices.Equal(idx.IDToName, wantNames) {
		t.Fatalf("idx.IDToName = %v, want %v", idx.IDToName, wantNames)
	}
	for i, want := range wantNames {
		if id, ok := idx.NameToID[want]; !ok || int(id) != i {
			t.Fatalf("idx.NameToID[%q] = %v, want %d", want, id, i)
		}
	}
}

func TestBuildGraphReportsProblems(t *testing.T) {
	idx := BuildIndex([]string{"a", "b", "c", "d"})
	nodes := []Node{
		{Name: "a", After: []string{"b", "c", "b"}},
		{Name: "b", After: []string{"zz"}},
		{Name: "a"},
		{Name: "d", After: []string{"d"}},
	}
	graph, problems := BuildGraph(idx, nodes)

	a, b, c := idx.NameToID["a"], idx.NameToID["b"], idx.NameToID["c"]
	if got := graph.Edges[int(b)]; !slices.Equal(got, []NodeID{a}) {
		t.Fatalf("edges from b = %v, want [%v]", got, a)
	}
	if got := graph.Edges[int(c)]; !slices.Equal(got, []NodeID{a}) {
		t.Fatalf("edges from c = %v, want [%v]", got, a)
	}
	if graph.Indeg[int(a)] != 1 {
		t.Fatalf("indeg(a) = %d, want 1 (c is not declared)", graph.Indeg[int(a)])
	}
	if !graph.Present[int(a)] || graph.Present[int(c)] {
		t.Fatalf("unexpected Present flags: %v", graph.Present)
	}

	want := []Problem{
		{Kind: ProblemDuplicate, Node: "a"},
		{Kind: ProblemMissing, Node: "b", Ref: "zz"},
		{Kind: ProblemSelf, Node: "d", Ref: "d"},
	}
	if !slices.Equal(problems, want) {
		t.Fatalf("problems = %+v, want %+v", problems, want)
	}
}

func TestToposortBatches(t *testing.T) {
	idx := BuildIndex([]string{"a", "b", "c", "d"})
	graph, _ := BuildGraph(idx, []Node{
		{Name: "a", After: []string{"b", "c"}},
		{Name: "b"},
		{Name: "d", After: []string{"d"}},
	})
	topo := ToposortKahn(graph)

	if topo.Cyclic {
		t.Fatalf("unexpected cycle: %v", idsToNames(idx, topo.Cycles))
	}
	if got := idsToNames(idx, topo.Order); !slices.Equal(got, []string{"b", "d", "a"}) {
		t.Fatalf("order = %v", got)
	}
	got := batchesToNames(idx, topo.Batches)
	if len(got) != 2 || !slices.Equal(got[0], []string{"b", "d"}) || !slices.Equal(got[1], []string{"a"}) {
		t.Fatalf("batches = %v", got)
	}
}

func TestToposortFindsCycles(t *testing.T) {
	idx := BuildIndex([]string{"w", "x", "y", "z"})
	graph, _ := BuildGraph(idx, []Node{
		{Name: "x", After: []string{"y"}},
		{Name: "y", After: []string{"x"}},
		{Name: "z", After: []string{"x"}},
		{Name: "w"},
	})
	topo := ToposortKahn(graph)

	if !topo.Cyclic {
		t.Fatal("expected a cycle")
	}
	if got := idsToNames(idx, topo.Order); !slices.Equal(got, []string{"w"}) {
		t.Fatalf("order = %v, want [w]", got)
	}
	if got := idsToNames(idx, topo.Cycles); !slices.Equal(got, []string{"x", "y", "z"}) {
		t.Fatalf("cycles = %v, want [x y z]", got)
	}
}
