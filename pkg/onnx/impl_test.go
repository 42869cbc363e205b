/*
 * Copyright (c) 2026-present unTill Software Development Group B.V.
 */

package onnx

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/voedger/searchschema/pkg/tensor"
)

func Test_ModelInfo(t *testing.T) {
	require := require.New(t)

	info, err := NewModelInfo("models/mnist.onnx",
		[]Tensor{{Name: "image", Type: tensor.MustParse("tensor<float>(d0[],d1[784])")}},
		[]Tensor{
			{Name: "scores", Type: tensor.MustParse("tensor<float>(d0[],d1[10])")},
			{Name: "hidden", Type: tensor.MustParse("tensor<float>(d1[64])")},
		})
	require.NoError(err)
	require.Equal([]string{"image"}, info.Inputs())
	require.Equal([]string{"scores", "hidden"}, info.Outputs())
	require.Equal("scores", info.DefaultOutput())

	t.Run("should be ok to resolve unbound output dimensions from inputs", func(t *testing.T) {
		typ, err := info.TensorType("scores", map[string]tensor.Type{"image": tensor.MustParse("tensor<float>(d0[1],d1[784])")})
		require.NoError(err)
		require.Equal(tensor.MustParse("tensor<float>(d0[1],d1[10])"), typ)

		typ, err = info.TensorType("scores", nil)
		require.NoError(err)
		require.Equal(tensor.MustParse("tensor<float>(d0[],d1[10])"), typ)
	})

	t.Run("should be errors", func(t *testing.T) {
		_, err := info.TensorType("unknown", nil)
		require.ErrorIs(err, ErrModelError)

		_, err = info.TensorType("scores", map[string]tensor.Type{"image": tensor.MustParse("tensor(d0{})")})
		require.ErrorIs(err, ErrModelError)

		_, err = NewModelInfo("m.onnx", nil, nil)
		require.ErrorIs(err, ErrModelError)

		_, err = NewModelInfo("m.onnx", []Tensor{{Name: "a"}}, []Tensor{{Name: "a"}})
		require.ErrorIs(err, ErrModelError)
	})

	t.Run("should be ok to find models by path", func(t *testing.T) {
		models := NewModels(info)
		found, ok := models.ModelInfo("models/mnist.onnx")
		require.True(ok)
		require.Equal("scores", found.DefaultOutput())
		_, ok = models.ModelInfo("other.onnx")
		require.False(ok)
	})
}

func Test_Model(t *testing.T) {
	require := require.New(t)

	m := &Model{
		Name:    "mnist",
		Path:    "models/mnist.onnx",
		Inputs:  []Binding{{Name: "image", Value: "query(image)"}},
		Outputs: []Binding{{Name: "scores", Value: "out"}},
	}
	require.Equal("query(image)", m.InputSource("image"))
	require.Equal("other", m.InputSource("other"))
	require.Equal("out", m.OutputAlias("scores"))
	require.Equal("hidden", m.OutputAlias("hidden"))

	c := m.Clone()
	c.Inputs[0].Value = "attribute(image)"
	require.Equal("query(image)", m.InputSource("image"))
}
