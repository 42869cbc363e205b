/*
 * Copyright (c) 2026-present unTill Software Development Group B.V.
 */

package tensor

// Returns the widest (most precise) of two cell types
func widest(a, b CellType) CellType {
	if a < b {
		return a
	}
	return b
}

// Returns the most specific type both a and b are instances of, dimension by dimension.
//
// Types must have the same dimension names. Indexed dimensions of different
// sizes generalize to unbound; mapped and indexed dimensions do not generalize.
func DimensionwiseGeneralization(a, b Type) (Type, bool) {
	if a.Equal(b) {
		return a, true
	}
	if len(a.dims) != len(b.dims) {
		return Empty, false
	}
	dims := make([]Dimension, len(a.dims))
	for i := range a.dims {
		da, db := a.dims[i], b.dims[i]
		if da.Name != db.Name || da.IsIndexed() != db.IsIndexed() {
			return Empty, false
		}
		switch {
		case da == db:
			dims[i] = da
		case !da.IsIndexed():
			dims[i] = da
		default:
			dims[i] = IndexedUnbound(da.Name)
		}
	}
	t, err := New(widest(a.cell, b.cell), dims...)
	if err != nil {
		return Empty, false
	}
	return t, true
}

// Returns type of the value that may be either of a or b, used for `if` branches
func Generalize(a, b Type) (Type, bool) {
	if a.IsScalar() && b.IsScalar() {
		return Empty, true
	}
	return DimensionwiseGeneralization(a, b)
}

// Returns the type of joining a and b: union of dimensions.
//
// Bound indexed dimensions of different sizes join to the smaller size.
func Join(a, b Type) (Type, error) {
	if a.IsScalar() {
		return b, nil
	}
	if b.IsScalar() {
		return a, nil
	}
	dims := make([]Dimension, 0, len(a.dims)+len(b.dims))
	i, j := 0, 0
	for i < len(a.dims) || j < len(b.dims) {
		switch {
		case j == len(b.dims) || (i < len(a.dims) && a.dims[i].Name < b.dims[j].Name):
			dims = append(dims, a.dims[i])
			i++
		case i == len(a.dims) || b.dims[j].Name < a.dims[i].Name:
			dims = append(dims, b.dims[j])
			j++
		default:
			d, err := joinDimension(a, b, a.dims[i], b.dims[j])
			if err != nil {
				return Empty, err
			}
			dims = append(dims, d)
			i++
			j++
		}
	}
	return New(widest(a.cell, b.cell), dims...)
}

func joinDimension(a, b Type, da, db Dimension) (Dimension, error) {
	if da.IsIndexed() != db.IsIndexed() {
		return Dimension{}, ErrIncompatible(a, b, "dimension «%s» is mapped in one and indexed in other", da.Name)
	}
	switch {
	case !da.IsIndexed():
		return da, nil
	case da.IsBound() && db.IsBound():
		if db.Size < da.Size {
			return db, nil
		}
		return da, nil
	case da.IsBound():
		return da, nil
	default:
		return db, nil
	}
}

// Returns the type of reducing t over specified dimensions, or over all dimensions if none specified
func Reduce(t Type, dims ...string) (Type, error) {
	if len(dims) == 0 {
		return Empty, nil
	}
	remove := make(map[string]bool, len(dims))
	for _, d := range dims {
		if _, ok := t.Dimension(d); !ok {
			return Empty, ErrInvalidType("%v has no dimension «%s» to reduce", t, d)
		}
		remove[d] = true
	}
	kept := make([]Dimension, 0, len(t.dims))
	for _, d := range t.dims {
		if !remove[d.Name] {
			kept = append(kept, d)
		}
	}
	return New(t.cell, kept...)
}
