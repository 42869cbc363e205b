/*
 * Copyright (c) 2026-present unTill Software Development Group B.V.
 */

package expression

// Binary arithmetic and logical operators
type ArithmeticOp uint8

const (
	ArithmeticOp_Or ArithmeticOp = iota
	ArithmeticOp_And
	ArithmeticOp_Add
	ArithmeticOp_Sub
	ArithmeticOp_Mul
	ArithmeticOp_Div
	ArithmeticOp_Mod
	ArithmeticOp_Pow

	ArithmeticOp_count
)

var arithmeticOps = [ArithmeticOp_count]string{"||", "&&", "+", "-", "*", "/", "%", "^"}

// Comparison operators
type ComparisonOp uint8

const (
	ComparisonOp_Eq ComparisonOp = iota
	ComparisonOp_NotEq
	ComparisonOp_Less
	ComparisonOp_LessEq
	ComparisonOp_Greater
	ComparisonOp_GreaterEq
	ComparisonOp_Approx

	ComparisonOp_count
)

var comparisonOps = [ComparisonOp_count]string{"==", "!=", "<", "<=", ">", ">=", "~="}

// Rendering precedence levels, higher binds tighter
const (
	precOr = iota + 1
	precAnd
	precComparison
	precAdd
	precMul
	precPow
	precUnary
	precPrimary
)

// Names of features with a single simple argument whose types are declared directly
const (
	FeatureQuery     = "query"
	FeatureAttribute = "attribute"
	FeatureConstant  = "constant"

	// Indirect reference to a function by name
	FeatureRankingExpression = "rankingExpression"

	FeatureOnnx = "onnx"
)
