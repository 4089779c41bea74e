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

// Parameters collects the tuning options of the assembly core. A
// Parameters value is read-only once handed to the core; verbosity
// travels here rather than in a process-wide knob.
type Parameters struct {
	MinExonLength                  int32
	MinSurvivingEdgeWeight         float64
	MaxIntronContaminationCoverage float64
	BridgeDPSolutionSize           int
	BridgeDPStackSize              int
	MaxGroupBoundaryDistance       int32
	MaxGroupJunctionDistance       int32
	Verbose                        int
}

// DefaultParameters returns the parameter set used by the combine
// command when no flags override them.
func DefaultParameters() Parameters {
	return Parameters{
		MinExonLength:                  20,
		MinSurvivingEdgeWeight:         1.5,
		MaxIntronContaminationCoverage: 2.0,
		BridgeDPSolutionSize:           10,
		BridgeDPStackSize:              5,
		MaxGroupBoundaryDistance:       10000,
		MaxGroupJunctionDistance:       100,
	}
}
