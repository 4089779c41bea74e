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

// buildChainGraph builds the five-vertex chain used throughout the
// tests: sentinels at 100 and 400, internal intervals [100,200),
// [200,300), [300,400), chained by edges of weight 100.
func buildChainGraph() *SpliceGraph {
	gr := NewSpliceGraph()
	gr.Chrm = "chr1"
	gr.Strand = '+'
	for i := 0; i < 5; i++ {
		gr.AddVertex()
	}
	gr.SetVertexInfo(0, VertexInfo{Lpos: 100, Rpos: 100})
	gr.SetVertexInfo(1, VertexInfo{Lpos: 100, Rpos: 200, Length: 100})
	gr.SetVertexInfo(2, VertexInfo{Lpos: 200, Rpos: 300, Length: 100})
	gr.SetVertexInfo(3, VertexInfo{Lpos: 300, Rpos: 400, Length: 100})
	gr.SetVertexInfo(4, VertexInfo{Lpos: 400, Rpos: 400})
	for i := 1; i < 4; i++ {
		gr.SetVertexWeight(i, 100)
	}
	for i := 0; i < 4; i++ {
		e := gr.AddEdge(i, i+1)
		e.Weight = 100
	}
	gr.BuildVertexIndex()
	return gr
}

func checkDAG(t *testing.T, gr *SpliceGraph, name string) {
	t.Helper()
	for _, e := range gr.Edges() {
		if e.Source() >= e.Target() {
			t.Errorf("%v: edge (%d, %d) against topological order", name, e.Source(), e.Target())
		}
	}
}

func checkIndexConsistency(t *testing.T, gr *SpliceGraph, name string) {
	t.Helper()
	n := gr.NumVertices() - 1
	for i := 1; i < n; i++ {
		vi := gr.VertexInfo(i)
		if gr.Lindex[vi.Lpos] != i {
			t.Errorf("%v: lindex[%d] != %d", name, vi.Lpos, i)
		}
		if gr.Rindex[vi.Rpos] != i {
			t.Errorf("%v: rindex[%d] != %d", name, vi.Rpos, i)
		}
	}
}

func TestSpliceGraphBasics(t *testing.T) {
	gr := buildChainGraph()
	if gr.NumVertices() != 5 {
		t.Error("NumVertices failed")
	}
	checkDAG(t, gr, "chain graph")
	checkIndexConsistency(t, gr, "chain graph")

	if gr.InDegree(2) != 1 || gr.OutDegree(2) != 1 || gr.Degree(2) != 2 {
		t.Error("degrees failed")
	}
	if _, ok := gr.Edge(1, 2); !ok {
		t.Error("edge lookup failed")
	}
	if _, ok := gr.Edge(1, 3); ok {
		t.Error("absent edge lookup failed")
	}
	if len(gr.Edges()) != 4 {
		t.Error("edge iteration failed")
	}
}

func TestLocateVertex(t *testing.T) {
	gr := buildChainGraph()
	if gr.LocateVertex(99) != -1 {
		t.Error("LocateVertex before graph failed")
	}
	if gr.LocateVertex(100) != 1 {
		t.Error("LocateVertex at first lpos failed")
	}
	if gr.LocateVertex(199) != 1 {
		t.Error("LocateVertex at first rpos-1 failed")
	}
	if gr.LocateVertex(200) != 2 {
		t.Error("LocateVertex at boundary failed")
	}
	if gr.LocateVertex(399) != 3 {
		t.Error("LocateVertex at last position failed")
	}
	if gr.LocateVertex(400) != -1 {
		t.Error("LocateVertex past graph failed")
	}
}

func TestClearVertex(t *testing.T) {
	gr := buildChainGraph()
	gr.ClearVertex(2)
	if gr.Degree(2) != 0 {
		t.Error("ClearVertex failed")
	}
	if gr.OutDegree(1) != 0 || gr.InDegree(3) != 0 {
		t.Error("ClearVertex neighbours failed")
	}
	checkDAG(t, gr, "cleared graph")
}

func TestMaxEdges(t *testing.T) {
	gr := buildChainGraph()
	e := gr.AddEdge(1, 3)
	e.Weight = 200
	if gr.MaxInEdge(3).Weight != 200 {
		t.Error("MaxInEdge failed")
	}
	if gr.MaxOutEdge(1).Weight != 200 {
		t.Error("MaxOutEdge failed")
	}

	defer func() {
		if recover() == nil {
			t.Error("MaxInEdge on edgeless vertex did not panic")
		}
	}()
	gr.ClearVertex(2)
	gr.MaxInEdge(2)
}

func TestAddEdgePanicsOnBackwardEdge(t *testing.T) {
	gr := buildChainGraph()
	defer func() {
		if recover() == nil {
			t.Error("AddEdge with s >= t did not panic")
		}
	}()
	gr.AddEdge(3, 1)
}

func TestBuildVertexIndexRejectsDuplicates(t *testing.T) {
	gr := NewSpliceGraph()
	for i := 0; i < 4; i++ {
		gr.AddVertex()
	}
	gr.SetVertexInfo(0, VertexInfo{Lpos: 100, Rpos: 100})
	gr.SetVertexInfo(1, VertexInfo{Lpos: 100, Rpos: 200})
	gr.SetVertexInfo(2, VertexInfo{Lpos: 100, Rpos: 300})
	gr.SetVertexInfo(3, VertexInfo{Lpos: 300, Rpos: 300})
	defer func() {
		if recover() == nil {
			t.Error("duplicate lpos did not panic")
		}
	}()
	gr.BuildVertexIndex()
}
