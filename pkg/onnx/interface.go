/*
 * Copyright (c) 2026-present unTill Software Development Group B.V.
 */

package onnx

import "github.com/voedger/searchschema/pkg/tensor"

// Metadata of ONNX model file
type IModelInfo interface {
	// Returns names of model inputs in declaration order
	Inputs() []string

	// Returns names of model outputs in declaration order
	Outputs() []string

	// Returns name of output used when model is referenced without output
	DefaultOutput() string

	// Returns type of output for given types of inputs.
	// Input types are keyed by model input names
	TensorType(output string, inputTypes map[string]tensor.Type) (tensor.Type, error)
}

// Model metadata by model file path
type IModels interface {
	ModelInfo(path string) (IModelInfo, bool)
}
