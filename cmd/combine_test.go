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
	"bytes"
	"log"
	"os"
	"strings"
	"testing"

	"github.com/Shao-Group/meta-scallop/graph"
	"github.com/Shao-Group/meta-scallop/meta"
)

// runCombine invokes Combine with the given command line, capturing
// the log output and restoring the globals it touches.
func runCombine(t *testing.T, args []string) (string, error) {
	t.Helper()
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()
	os.Args = append([]string{"meta-scallop", "combine"}, args...)

	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	err := Combine()
	return buf.String(), err
}

func TestCombineAppliesFlags(t *testing.T) {
	oldLoad := LoadBundles
	defer func() { LoadBundles = oldLoad }()

	var got graph.Parameters
	LoadBundles = func(params *graph.Parameters) ([]*meta.Bundle, error) {
		got = *params
		return LoadDemoBundles(params)
	}

	out, err := runCombine(t, []string{
		"--min-exon-length", "11",
		"--min-surviving-edge-weight", "2.5",
		"--max-intron-contamination-coverage", "3.5",
		"--bridge-dp-solution-size", "7",
		"--bridge-dp-stack-size", "4",
		"--max-group-boundary-distance", "50",
		"--max-group-junction-distance", "60",
		"--verbose", "1",
	})
	if err != nil {
		t.Fatal(err)
	}

	if got.MinExonLength != 11 {
		t.Errorf("MinExonLength = %d, want 11", got.MinExonLength)
	}
	if got.MinSurvivingEdgeWeight != 2.5 {
		t.Errorf("MinSurvivingEdgeWeight = %v, want 2.5", got.MinSurvivingEdgeWeight)
	}
	if got.MaxIntronContaminationCoverage != 3.5 {
		t.Errorf("MaxIntronContaminationCoverage = %v, want 3.5", got.MaxIntronContaminationCoverage)
	}
	if got.BridgeDPSolutionSize != 7 {
		t.Errorf("BridgeDPSolutionSize = %d, want 7", got.BridgeDPSolutionSize)
	}
	if got.BridgeDPStackSize != 4 {
		t.Errorf("BridgeDPStackSize = %d, want 4", got.BridgeDPStackSize)
	}
	if got.MaxGroupBoundaryDistance != 50 {
		t.Errorf("MaxGroupBoundaryDistance = %d, want 50", got.MaxGroupBoundaryDistance)
	}
	if got.MaxGroupJunctionDistance != 60 {
		t.Errorf("MaxGroupJunctionDistance = %d, want 60", got.MaxGroupJunctionDistance)
	}
	if got.Verbose != 1 {
		t.Errorf("Verbose = %d, want 1", got.Verbose)
	}

	if !strings.Contains(out, "combined 2 samples") {
		t.Errorf("summary output missing, got:\n%s", out)
	}
}

func TestCombineDefaultParameters(t *testing.T) {
	oldLoad := LoadBundles
	defer func() { LoadBundles = oldLoad }()

	var got graph.Parameters
	LoadBundles = func(params *graph.Parameters) ([]*meta.Bundle, error) {
		got = *params
		return nil, nil
	}

	out, err := runCombine(t, nil)
	if err != nil {
		t.Fatal(err)
	}
	if got != graph.DefaultParameters() {
		t.Errorf("parameters = %+v, want defaults", got)
	}
	if !strings.Contains(out, "No bundles to combine.") {
		t.Errorf("empty-input message missing, got:\n%s", out)
	}
}

func TestCombineDemoBundles(t *testing.T) {
	out, err := runCombine(t, nil)
	if err != nil {
		t.Fatal(err)
	}

	// both demo samples bridge both of their clusters
	if !strings.Contains(out, "sample 0: bridged clusters 2 / 2, reads 4 / 4") {
		t.Errorf("sample 0 summary missing, got:\n%s", out)
	}
	if !strings.Contains(out, "sample 1: bridged clusters 2 / 2, reads 3 / 3") {
		t.Errorf("sample 1 summary missing, got:\n%s", out)
	}
	if !strings.Contains(out, "combined 2 samples") {
		t.Errorf("combine summary missing, got:\n%s", out)
	}
	if !strings.Contains(out, "Maximum resident set size") {
		t.Errorf("resource report missing, got:\n%s", out)
	}
}

func TestCombineNoBackend(t *testing.T) {
	oldLoad := LoadBundles
	defer func() { LoadBundles = oldLoad }()
	LoadBundles = nil

	if _, err := runCombine(t, nil); err == nil {
		t.Error("nil bundle loader did not fail")
	}
}

func TestLoadDemoBundles(t *testing.T) {
	params := graph.DefaultParameters()
	bundles, err := LoadDemoBundles(&params)
	if err != nil {
		t.Fatal(err)
	}
	if len(bundles) != 2 {
		t.Fatalf("demo bundles = %d, want 2", len(bundles))
	}
	for i, b := range bundles {
		if b.Gr == nil || b.Gr.NumVertices() != 6 {
			t.Errorf("bundle %d graph malformed", i)
		}
		if len(b.Clusters) != 2 {
			t.Errorf("bundle %d clusters = %d, want 2", i, len(b.Clusters))
		}
		if b.LengthLow >= b.LengthHigh {
			t.Errorf("bundle %d length window inverted", i)
		}
	}
}
