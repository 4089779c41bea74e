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

package cmd

import (
	"errors"
	"flag"
	"log"

	"github.com/Shao-Group/meta-scallop/graph"
	"github.com/Shao-Group/meta-scallop/meta"
)

// CombineHelp is the help string for the combine command.
const CombineHelp = "\ncombine parameters:\n" +
	"meta-scallop combine\n" +
	"[--min-exon-length number]\n" +
	"[--min-surviving-edge-weight number]\n" +
	"[--max-intron-contamination-coverage number]\n" +
	"[--bridge-dp-solution-size number]\n" +
	"[--bridge-dp-stack-size number]\n" +
	"[--max-group-boundary-distance number]\n" +
	"[--max-group-junction-distance number]\n" +
	"[--verbose number]\n"

// Combine implements the combine command: revise and bridge every
// sample bundle, merge the per-sample graphs, and resolve the merged
// graph.
func Combine() error {
	var flags flag.FlagSet
	params := graph.DefaultParameters()

	minExonLength := flags.Int("min-exon-length", int(params.MinExonLength), "minimum exon length")
	minSurvivingEdgeWeight := flags.Float64("min-surviving-edge-weight", params.MinSurvivingEdgeWeight, "minimum weight of a surviving edge")
	maxIntronContamination := flags.Float64("max-intron-contamination-coverage", params.MaxIntronContaminationCoverage, "maximum coverage of an intron contamination")
	solutionSize := flags.Int("bridge-dp-solution-size", params.BridgeDPSolutionSize, "number of candidate paths kept per vertex")
	stackSize := flags.Int("bridge-dp-stack-size", params.BridgeDPStackSize, "width of the bottleneck stack")
	maxGroupBoundaryDistance := flags.Int("max-group-boundary-distance", int(params.MaxGroupBoundaryDistance), "maximum distance when grouping boundaries")
	maxGroupJunctionDistance := flags.Int("max-group-junction-distance", int(params.MaxGroupJunctionDistance), "maximum distance when grouping junctions")
	verbose := flags.Int("verbose", 0, "verbosity level")

	parseFlags(flags, 2, CombineHelp)

	params.MinExonLength = int32(*minExonLength)
	params.MinSurvivingEdgeWeight = *minSurvivingEdgeWeight
	params.MaxIntronContaminationCoverage = *maxIntronContamination
	params.BridgeDPSolutionSize = *solutionSize
	params.BridgeDPStackSize = *stackSize
	params.MaxGroupBoundaryDistance = int32(*maxGroupBoundaryDistance)
	params.MaxGroupJunctionDistance = int32(*maxGroupJunctionDistance)
	params.Verbose = *verbose

	if LoadBundles == nil {
		return errors.New("no alignment ingestion backend available")
	}
	bundles, err := LoadBundles(&params)
	if err != nil {
		return err
	}

	cg, gr, hs, summaries := meta.CombineSamples(bundles, &params)
	if cg == nil {
		log.Println("No bundles to combine.")
		return nil
	}

	for i, s := range summaries {
		log.Printf("sample %v: bridged clusters %v / %v, reads %v / %v\n",
			i, s.BridgedClusters, s.TotalClusters, s.BridgedReads, s.TotalReads)
	}
	log.Printf("combined %v samples: %v regions, %v junctions, %v phasing paths, %v vertices\n",
		cg.NumCombined, len(cg.Regions), len(cg.Junctions), hs.Len(), gr.NumVertices())
	logMaxRSS()
	return nil
}
