/*
 * Copyright (c) 2026-present unTill Software Development Group B.V.
 */

package featuretypes

// Size of memo of top-level function call types
const DefaultMemoSize = 1024

// Functions keeping argument type
var unaryFunctions = map[string]bool{
	"abs": true, "acos": true, "asin": true, "atan": true, "ceil": true, "cos": true,
	"cosh": true, "elu": true, "erf": true, "exp": true, "fabs": true, "floor": true,
	"isNan": true, "log": true, "log10": true, "relu": true, "round": true, "sigmoid": true,
	"sign": true, "sin": true, "sinh": true, "square": true, "sqrt": true, "tan": true,
	"tanh": true, "l2_normalize": true, "softmax": true, "cell_cast": true,
}

// Functions joining argument types
var joinFunctions = map[string]bool{
	"pow": true, "atan2": true, "fmod": true, "ldexp": true, "bit": true, "hamming": true,
}

// Aggregators reducing first argument over dimensions listed by next arguments
var reduceFunctions = map[string]bool{
	"sum": true, "avg": true, "prod": true, "count": true, "median": true,
	"argmax": true, "argmin": true,
}

// Functions joining two first arguments and reducing the result over the third one
var joinReduceFunctions = map[string]bool{
	"cosine_similarity": true, "euclidean_distance": true, "matmul": true,
}

const (
	functionMax     = "max"
	functionMin     = "min"
	functionReduce  = "reduce"
	functionXWPlusB = "xw_plus_b"
)
