// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package lxu

import "fmt"

// Handles into the arenas of a Matrix.  The zero value of each is null.
type (
	VarID    int32
	CubeID   int32
	LitID    int32
	PairID   int32
	DivID    int32
	SingleID int32
)

const (
	VarNull    VarID    = 0
	CubeNull   CubeID   = 0
	LitNull    LitID    = 0
	PairNull   PairID   = 0
	DivNull    DivID    = 0
	SingleNull SingleID = 0
)

func (v VarID) String() string {
	return fmt.Sprintf("v%d", int32(v))
}

func (c CubeID) String() string {
	return fmt.Sprintf("c%d", int32(c))
}

// NodeType tags the variables of a node.
type NodeType uint8

const (
	Internal NodeType = iota
	PI
	LatchOut
	PO
	LatchIn
)

func (t NodeType) String() string {
	switch t {
	case PI:
		return "pi"
	case LatchOut:
		return "lo"
	case PO:
		return "po"
	case LatchIn:
		return "li"
	default:
		return "int"
	}
}
