/*
 * Copyright (c) 2026-present unTill Software Development Group B.V.
 */

package tensor

import (
	"fmt"
	"strings"

	"golang.org/x/exp/slices"
)

// Tensor dimension
type Dimension struct {
	Name string
	Kind DimKind
	// Size of indexed bound dimension, zero otherwise
	Size uint64
}

func Mapped(name string) Dimension { return Dimension{Name: name, Kind: DimKind_Mapped} }

func Indexed(name string, size uint64) Dimension {
	return Dimension{Name: name, Kind: DimKind_IndexedBound, Size: size}
}

func IndexedUnbound(name string) Dimension {
	return Dimension{Name: name, Kind: DimKind_IndexedUnbound}
}

func (d Dimension) IsIndexed() bool { return d.Kind != DimKind_Mapped }

func (d Dimension) IsBound() bool { return d.Kind == DimKind_IndexedBound }

func (d Dimension) String() string {
	switch d.Kind {
	case DimKind_Mapped:
		return d.Name + "{}"
	case DimKind_IndexedBound:
		return fmt.Sprintf("%s[%d]", d.Name, d.Size)
	default:
		return d.Name + "[]"
	}
}

func (c CellType) String() string {
	if c < CellType_count {
		return cellTypeNames[c]
	}
	return fmt.Sprintf("CellType(%d)", c)
}

// Tensor type: cell type and dimensions ordered by name.
//
// Zero value is the scalar type, see Empty.
type Type struct {
	cell CellType
	dims []Dimension
}

// Returns new tensor type. Dimensions are sorted by name.
// Returns error if dimension names are duplicated or empty.
func New(cell CellType, dims ...Dimension) (Type, error) {
	if cell >= CellType_count {
		return Empty, ErrInvalidType("unknown cell type %d", cell)
	}
	if len(dims) == 0 {
		return Empty, nil
	}
	sorted := slices.Clone(dims)
	slices.SortFunc(sorted, func(a, b Dimension) bool { return a.Name < b.Name })
	for i, d := range sorted {
		if d.Name == "" {
			return Empty, ErrInvalidType("dimension without name")
		}
		if i > 0 && sorted[i-1].Name == d.Name {
			return Empty, ErrInvalidType("duplicated dimension «%s»", d.Name)
		}
		if d.Kind == DimKind_IndexedBound && d.Size == 0 {
			return Empty, ErrInvalidType("dimension «%s» must have positive size", d.Name)
		}
	}
	return Type{cell: cell, dims: sorted}, nil
}

// Same as New, but panics on error
func MustNew(cell CellType, dims ...Dimension) Type {
	t, err := New(cell, dims...)
	if err != nil {
		panic(err)
	}
	return t
}

func (t Type) CellType() CellType { return t.cell }

// Returns copy of type dimensions
func (t Type) Dimensions() []Dimension { return slices.Clone(t.dims) }

func (t Type) Dimension(name string) (Dimension, bool) {
	for _, d := range t.dims {
		if d.Name == name {
			return d, true
		}
	}
	return Dimension{}, false
}

func (t Type) Rank() int { return len(t.dims) }

func (t Type) IsScalar() bool { return len(t.dims) == 0 }

// Returns true if type has at least one indexed dimension without size
func (t Type) HasUnboundIndexed() bool {
	for _, d := range t.dims {
		if d.Kind == DimKind_IndexedUnbound {
			return true
		}
	}
	return false
}

// Returns true if all dimensions are indexed and type is not scalar
func (t Type) IsDense() bool {
	for _, d := range t.dims {
		if !d.IsIndexed() {
			return false
		}
	}
	return len(t.dims) > 0
}

func (t Type) Equal(o Type) bool {
	return t.cell == o.cell && slices.Equal(t.dims, o.dims)
}

// Renders type as `tensor<cell>(dims)`, cell type is omitted for double
func (t Type) String() string {
	s := strings.Builder{}
	s.WriteString(tensorKeyword)
	if t.cell != CellType_double {
		s.WriteString("<" + t.cell.String() + ">")
	}
	s.WriteString("(")
	for i, d := range t.dims {
		if i > 0 {
			s.WriteString(",")
		}
		s.WriteString(d.String())
	}
	s.WriteString(")")
	return s.String()
}
