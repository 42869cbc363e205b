/*
 * Copyright (c) 2026-present unTill Software Development Group B.V.
 */

package schema

// Rank type of indexed field
type RankType uint8

const (
	RankType_default RankType = iota
	RankType_identity
	RankType_about
	RankType_tags
	RankType_empty

	RankType_count
)

var rankTypeNames = [RankType_count]string{
	RankType_default:  "default",
	RankType_identity: "identity",
	RankType_about:    "about",
	RankType_tags:     "tags",
	RankType_empty:    "empty",
}

// Default field weight
const DefaultWeight = 100
