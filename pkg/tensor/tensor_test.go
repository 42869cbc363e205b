/*
 * Copyright (c) 2026-present unTill Software Development Group B.V.
 */

package tensor

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_Parse(t *testing.T) {
	require := require.New(t)

	t.Run("should be ok to parse mixed type", func(t *testing.T) {
		tt, err := Parse("tensor<float>(y{}, x[3])")
		require.NoError(err)
		require.Equal(CellType_float, tt.CellType())
		require.Equal([]Dimension{Indexed("x", 3), Mapped("y")}, tt.Dimensions())
		require.Equal("tensor<float>(x[3],y{})", tt.String())
	})

	t.Run("should be ok to parse scalars", func(t *testing.T) {
		for _, s := range []string{"", "double", "tensor()", "tensor<float>()"} {
			tt, err := Parse(s)
			require.NoError(err, s)
			require.True(tt.IsScalar(), s)
			require.Equal(Empty, tt, s)
		}
	})

	t.Run("should be ok to parse unbound dimension", func(t *testing.T) {
		tt := MustParse("tensor(x[])")
		require.True(tt.HasUnboundIndexed())
		require.True(tt.IsDense())
	})

	t.Run("should be errors", func(t *testing.T) {
		for _, s := range []string{"tensor<half>(x[1])", "tensor(x[1],x{})", "tensor(x[0])", "tensor(x", "vector(x[3])"} {
			_, err := Parse(s)
			require.ErrorIs(err, ErrInvalidTypeError, s)
		}
	})
}

func Test_DimensionwiseGeneralization(t *testing.T) {
	require := require.New(t)

	gen := func(a, b string) (string, bool) {
		t, ok := DimensionwiseGeneralization(MustParse(a), MustParse(b))
		return t.String(), ok
	}

	t.Run("should be ok to generalize", func(t *testing.T) {
		s, ok := gen("tensor(x[3])", "tensor(x[3])")
		require.True(ok)
		require.Equal("tensor(x[3])", s)

		s, ok = gen("tensor(x[3])", "tensor<float>(x[5])")
		require.True(ok)
		require.Equal("tensor(x[])", s)

		s, ok = gen("tensor<float>(x[3],y{})", "tensor<float>(x[],y{})")
		require.True(ok)
		require.Equal("tensor<float>(x[],y{})", s)
	})

	t.Run("should not generalize", func(t *testing.T) {
		_, ok := gen("tensor(x[3])", "tensor(y[3])")
		require.False(ok)
		_, ok = gen("tensor(x[3])", "tensor(x{})")
		require.False(ok)
		_, ok = gen("tensor(x[3])", "tensor(x[3],y[2])")
		require.False(ok)
	})
}

func Test_JoinReduce(t *testing.T) {
	require := require.New(t)

	t.Run("should be ok to join", func(t *testing.T) {
		j, err := Join(MustParse("tensor<float>(x[3])"), MustParse("tensor(x[2],y{})"))
		require.NoError(err)
		require.Equal("tensor(x[2],y{})", j.String())

		j, err = Join(Empty, MustParse("tensor<int8>(z[4])"))
		require.NoError(err)
		require.Equal("tensor<int8>(z[4])", j.String())
	})

	t.Run("should be error to join mapped with indexed", func(t *testing.T) {
		_, err := Join(MustParse("tensor(x[3])"), MustParse("tensor(x{})"))
		require.ErrorIs(err, ErrIncompatibleError)
	})

	t.Run("should be ok to reduce", func(t *testing.T) {
		tt := MustParse("tensor<float>(x[3],y{})")
		r, err := Reduce(tt, "x")
		require.NoError(err)
		require.Equal("tensor<float>(y{})", r.String())

		r, err = Reduce(tt)
		require.NoError(err)
		require.True(r.IsScalar())

		_, err = Reduce(tt, "z")
		require.ErrorIs(err, ErrInvalidTypeError)
	})
}
