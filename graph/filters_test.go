// meta-scallop: a meta-assembler of RNA-seq transcripts across multiple samples.
// Copyright (c) 2021 Shao Group, The Pennsylvania State University.

// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version, and Additional Terms
// (see below).

// This program is distributed in the hope that it will be useful, but
// WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
// Affero General Public License for more details.

// You should have received a copy of the GNU Affero General Public
// License and Additional Terms along with this program. If not, see
// <https://github.com/Shao-Group/meta-scallop/blob/master/LICENSE.txt>.

package graph

import "testing"

// buildFilterGraph builds a graph with two alternative start
// boundaries and a junction: sentinels at 100 and 600, intervals
// [100,200), [250,300), [400,500), [500,600).
func buildFilterGraph() *SpliceGraph {
	gr := NewSpliceGraph()
	for i := 0; i < 6; i++ {
		gr.AddVertex()
	}
	gr.SetVertexInfo(0, VertexInfo{Lpos: 100, Rpos: 100})
	gr.SetVertexInfo(1, VertexInfo{Lpos: 100, Rpos: 200, Length: 100})
	gr.SetVertexInfo(2, VertexInfo{Lpos: 250, Rpos: 300, Length: 50})
	gr.SetVertexInfo(3, VertexInfo{Lpos: 400, Rpos: 500, Length: 100})
	gr.SetVertexInfo(4, VertexInfo{Lpos: 500, Rpos: 600, Length: 100})
	gr.SetVertexInfo(5, VertexInfo{Lpos: 600, Rpos: 600})
	for _, x := range []struct {
		s, t int
		w    float64
	}{
		{0, 1, 1}, {0, 2, 1}, {1, 2, 5}, {2, 3, 1}, {3, 4, 5}, {4, 5, 5},
	} {
		e := gr.AddEdge(x.s, x.t)
		e.Weight = x.w
	}
	gr.BuildVertexIndex()
	return gr
}

func TestFilterStartBoundaries(t *testing.T) {
	gr := buildFilterGraph()
	FilterStartBoundaries(gr, PositionSet{250: true}, 2.0)
	if _, ok := gr.Edge(0, 2); !ok {
		t.Error("whitelisted start boundary was removed")
	}

	gr = buildFilterGraph()
	FilterStartBoundaries(gr, PositionSet{}, 2.0)
	if _, ok := gr.Edge(0, 1); !ok {
		t.Error("start boundary at the sentinel position was removed")
	}
	if _, ok := gr.Edge(0, 2); ok {
		t.Error("sub-threshold start boundary survived")
	}
	checkDAG(t, gr, "filtered graph")
}

func TestFilterEndBoundaries(t *testing.T) {
	gr := buildFilterGraph()
	e, _ := gr.Edge(4, 5)
	e.Weight = 1
	ee := gr.AddEdge(3, 5)
	ee.Weight = 1

	FilterEndBoundaries(gr, PositionSet{500: true}, 2.0)

	if _, ok := gr.Edge(4, 5); !ok {
		t.Error("end boundary at the sentinel position was removed")
	}
	if _, ok := gr.Edge(3, 5); !ok {
		t.Error("whitelisted end boundary was removed")
	}

	gr = buildFilterGraph()
	ee = gr.AddEdge(3, 5)
	ee.Weight = 1
	FilterEndBoundaries(gr, PositionSet{}, 2.0)
	if _, ok := gr.Edge(3, 5); ok {
		t.Error("sub-threshold end boundary survived")
	}
}

func TestFilterJunctions(t *testing.T) {
	gr := buildFilterGraph()
	FilterJunctions(gr, PositionSet{}, 2.0)

	// the (2,3) junction over (300,400) weighs 1 and is not
	// whitelisted; refine then clears the disconnected tail
	if _, ok := gr.Edge(2, 3); ok {
		t.Error("sub-threshold junction survived")
	}

	gr = buildFilterGraph()
	FilterJunctions(gr, PositionSet{300: true, 400: true}, 2.0)
	if _, ok := gr.Edge(2, 3); !ok {
		t.Error("whitelisted junction was removed")
	}
}

func TestKeepSurvivingJunctionEdges(t *testing.T) {
	gr := buildFilterGraph()
	changed := KeepSurvivingJunctionEdges(gr, PairSet{{P1: 300, P2: 400}: true}, 2.0)
	if !changed {
		t.Error("no edge was filtered")
	}
	if _, ok := gr.Edge(2, 3); !ok {
		t.Error("whitelisted junction pair was removed")
	}
}

func TestKeepSurvivingEdgesWhitelist(t *testing.T) {
	gr := buildFilterGraph()
	changed := KeepSurvivingEdgesWhitelist(gr,
		PositionSet{300: true, 400: true}, // junctions
		PositionSet{},                     // adjacencies
		PositionSet{100: true},            // start bounds
		PositionSet{600: true},            // end bounds
		2.0)
	if !changed {
		t.Error("no edge was filtered")
	}
	if _, ok := gr.Edge(2, 3); !ok {
		t.Error("whitelisted junction was removed")
	}
	if _, ok := gr.Edge(0, 1); !ok {
		t.Error("whitelisted start bound was removed")
	}
}

func TestFilterGraph(t *testing.T) {
	gr := buildFilterGraph()
	FilterGraph(gr, PositionSet{}, PositionSet{}, PositionSet{}, PositionSet{}, 2.0)

	for _, e := range gr.Edges() {
		if e.Weight < 2.0 {
			t.Errorf("sub-threshold edge (%d, %d) survived", e.Source(), e.Target())
		}
	}
}
