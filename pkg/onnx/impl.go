/*
 * Copyright (c) 2026-present unTill Software Development Group B.V.
 */

package onnx

import (
	"github.com/voedger/searchschema/pkg/tensor"
)

// Returns model metadata with given inputs and outputs.
// First output is the default one
func NewModelInfo(path string, inputs, outputs []Tensor) (*ModelInfo, error) {
	if len(outputs) == 0 {
		return nil, ErrModel(path, "model has no outputs")
	}
	names := map[string]bool{}
	for _, t := range append(append([]Tensor(nil), inputs...), outputs...) {
		if names[t.Name] {
			return nil, ErrModel(path, "duplicate tensor «%s»", t.Name)
		}
		names[t.Name] = true
	}
	return &ModelInfo{
		Path:          path,
		inputs:        inputs,
		outputs:       outputs,
		defaultOutput: outputs[0].Name,
	}, nil
}

func (i *ModelInfo) Inputs() []string { return tensorNames(i.inputs) }

func (i *ModelInfo) Outputs() []string { return tensorNames(i.outputs) }

func (i *ModelInfo) DefaultOutput() string { return i.defaultOutput }

// Returns declared output type with unbound indexed dimensions resolved from
// bound dimensions of the same name in given input types
func (i *ModelInfo) TensorType(output string, inputTypes map[string]tensor.Type) (tensor.Type, error) {
	var declared *Tensor
	for n := range i.outputs {
		if i.outputs[n].Name == output {
			declared = &i.outputs[n]
			break
		}
	}
	if declared == nil {
		return tensor.Empty, ErrModel(i.Path, "unknown output «%s»", output)
	}

	for _, in := range i.inputs {
		if t, ok := inputTypes[in.Name]; ok {
			if _, err := tensor.Join(in.Type, t); err != nil {
				return tensor.Empty, ErrModel(i.Path, "input «%s» type %v does not match %v", in.Name, t, in.Type)
			}
		}
	}

	dims := declared.Type.Dimensions()
	for n, d := range dims {
		if d.Kind != tensor.DimKind_IndexedUnbound {
			continue
		}
		for _, in := range i.inputs {
			t, ok := inputTypes[in.Name]
			if !ok {
				t = in.Type
			}
			if id, ok := t.Dimension(d.Name); ok && id.IsBound() {
				dims[n] = id
				break
			}
		}
	}
	return tensor.New(declared.Type.CellType(), dims...)
}

// Returns models metadata keyed by path
func NewModels(infos ...*ModelInfo) *Models {
	m := &Models{models: map[string]*ModelInfo{}}
	for _, i := range infos {
		m.models[i.Path] = i
	}
	return m
}

func (m *Models) ModelInfo(path string) (IModelInfo, bool) {
	i, ok := m.models[path]
	if !ok {
		return nil, false
	}
	return i, true
}

func tensorNames(tt []Tensor) []string {
	names := make([]string, len(tt))
	for i, t := range tt {
		names[i] = t.Name
	}
	return names
}
