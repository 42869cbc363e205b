/*
 * Copyright (c) 2026-present unTill Software Development Group B.V.
 */

package rankprofile

// Names of builtin rank profiles, which may be redeclared
const (
	DefaultProfile  = "default"
	UnrankedProfile = "unranked"
)

// Kind of field rank setting
type RankSettingKind uint8

const (
	RankSettingKind_null RankSettingKind = iota

	// Field weight, int
	RankSettingKind_Weight

	// Field rank type, schema.RankType
	RankSettingKind_RankType

	// Literal boost, int
	RankSettingKind_LiteralBoost

	// Use bit vector for field, bool
	RankSettingKind_PreferBitVector

	RankSettingKind_count
)

var rankSettingKindNames = [RankSettingKind_count]string{
	RankSettingKind_null:            "null",
	RankSettingKind_Weight:          "weight",
	RankSettingKind_RankType:        "rank-type",
	RankSettingKind_LiteralBoost:    "literal-boost",
	RankSettingKind_PreferBitVector: "prefer-bitvector",
}

// Values of knobs which are not set
const (
	UnsetCount           = -1
	DefaultTermwiseLimit = 1.0
)

// Max count of functions transforms may add while profile is compiled
const MaxGeneratedFunctions = 1000

// Rank property emitted for tensor constants
const constantTypeProperty = ".type"
