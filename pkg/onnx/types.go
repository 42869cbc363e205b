/*
 * Copyright (c) 2026-present unTill Software Development Group B.V.
 */

package onnx

import "github.com/voedger/searchschema/pkg/tensor"

// ONNX model declared by schema or rank profile
type Model struct {
	Name string

	// Path of model file, key of model metadata
	Path string

	// Model input name to ranking feature, like `query(q)` or `attribute(a)`
	Inputs []Binding

	// Model output name to alias used in `onnx(model).alias`
	Outputs []Binding
}

// Name to value pair of model declaration
type Binding struct {
	Name  string
	Value string
}

// Returns copy of model
func (m *Model) Clone() *Model {
	c := *m
	c.Inputs = append([]Binding(nil), m.Inputs...)
	c.Outputs = append([]Binding(nil), m.Outputs...)
	return &c
}

// Returns feature bound to model input. If not declared, input name itself is returned
func (m *Model) InputSource(input string) string {
	for _, b := range m.Inputs {
		if b.Name == input {
			return b.Value
		}
	}
	return input
}

// Returns alias of model output. If not declared, output name itself is returned
func (m *Model) OutputAlias(output string) string {
	for _, b := range m.Outputs {
		if b.Name == output {
			return b.Value
		}
	}
	return output
}

// Named tensor of model metadata
type Tensor struct {
	Name string
	Type tensor.Type
}

// Declared model metadata
type ModelInfo struct {
	Path    string
	inputs  []Tensor
	outputs []Tensor

	defaultOutput string
}

// Models metadata by path
type Models struct {
	models map[string]*ModelInfo
}
