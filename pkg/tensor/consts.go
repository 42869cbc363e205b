/*
 * Copyright (c) 2026-present unTill Software Development Group B.V.
 */

package tensor

// Cell value type of tensor
type CellType uint8

const (
	// Default cell type, also the type of all scalars
	CellType_double CellType = iota
	CellType_float
	CellType_bfloat16
	CellType_int8

	CellType_count
)

// Kind of tensor dimension
type DimKind uint8

const (
	// Sparse dimension, `x{}`
	DimKind_Mapped DimKind = iota

	// Dense dimension with known size, `x[10]`
	DimKind_IndexedBound

	// Dense dimension with unknown size, `x[]`
	DimKind_IndexedUnbound
)

const tensorKeyword = "tensor"

var cellTypeNames = [CellType_count]string{
	CellType_double:   "double",
	CellType_float:    "float",
	CellType_bfloat16: "bfloat16",
	CellType_int8:     "int8",
}

// Empty is the type of all scalar (rank 0) values.
var Empty = Type{}
