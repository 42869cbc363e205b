/*
 * Copyright (c) 2026-present unTill Software Development Group B.V.
 */

package queryprofile

const (
	featurePrefix       = "query("
	rankingFeaturesPath = "ranking.features."
)
