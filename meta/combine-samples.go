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

package meta

import (
	"github.com/exascience/pargo/parallel"
	"github.com/google/uuid"

	"github.com/Shao-Group/meta-scallop/bridge"
	"github.com/Shao-Group/meta-scallop/graph"
	"github.com/Shao-Group/meta-scallop/phase"
)

// Bundle is the per-sample input for one chromosomal locus: an initial
// splice graph plus the paired-end fragment clusters aligned to it.
// Alignment ingestion produces bundles; the core never parses files.
type Bundle struct {
	Gr         *graph.SpliceGraph
	Clusters   []bridge.PereadsCluster
	LengthLow  int32
	LengthHigh int32
}

// SampleSummary reports the bridging outcome of one bundle.
type SampleSummary struct {
	BridgedClusters int
	TotalClusters   int
	BridgedReads    int
	TotalReads      int
}

// BuildHyperSetFromPhases converts coordinate phases into vertex paths
// of gr. Phases that no longer map onto the revised graph are dropped.
func BuildHyperSetFromPhases(gr *graph.SpliceGraph, ps *phase.PhaseSet) *phase.HyperSet {
	hs := phase.NewHyperSet()
	for k, chain := range ps.Chains {
		vv, ok := graph.BuildPathFromMixedCoordinates(gr, chain)
		if !ok {
			continue
		}
		if len(vv) == 0 {
			continue
		}
		hs.AddNodeList(vv, ps.Counts[k])
	}
	return hs
}

// CombineSamples runs the per-sample pipeline (revise, bridge, phase)
// over all bundles, merges the per-sample combined graphs, and
// resolves the merged graph. Bundles are independent, so the
// per-sample stage runs in parallel; everything downstream of the
// merge is single-threaded.
func CombineSamples(bundles []*Bundle, params *graph.Parameters) (*CombinedGraph, *graph.SpliceGraph, *phase.HyperSet, []SampleSummary) {
	if len(bundles) == 0 {
		return nil, nil, nil, nil
	}

	cgs := make([]*CombinedGraph, len(bundles))
	summaries := make([]SampleSummary, len(bundles))

	parallel.Range(0, len(bundles), 0, func(low, high int) {
		for i := low; i < high; i++ {
			b := bundles[i]
			if b.Gr.Gid == "" {
				b.Gr.Gid = uuid.New().String()
			}
			b.Gr.BuildVertexIndex()
			graph.ReviseFull(b.Gr, params)

			sv := bridge.Solve(b.Gr, b.Clusters, params, b.LengthLow, b.LengthHigh)
			bc, tc, br, tr := sv.Stats()
			summaries[i] = SampleSummary{bc, tc, br, tr}

			ps := phase.NewPhaseSet()
			sv.BuildPhaseSet(ps)
			hs := BuildHyperSetFromPhases(b.Gr, ps)

			cg := NewCombinedGraph()
			cg.Gid = b.Gr.Gid
			cg.Build(b.Gr, hs)
			cgs[i] = cg
		}
	})

	root := cgs[0]
	for _, cg := range cgs[1:] {
		root.Combine(cg)
	}
	root.CombineChildren()

	gr := graph.NewSpliceGraph()
	hs := phase.NewHyperSet()
	root.Resolve(gr, hs, params)
	return root, gr, hs, summaries
}
