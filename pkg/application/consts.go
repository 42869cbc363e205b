/*
 * Copyright (c) 2026-present unTill Software Development Group B.V.
 */

package application

// Directories of application package
const (
	SchemasDir           = "schemas"
	RankProfilesDir      = "rank-profiles"
	QueryProfileTypesDir = "query-profile-types"
	ModelsDir            = "models"
)

var yamlExts = []string{".yaml", ".yml"}

// Values of field indexing list
const (
	indexingAttribute = "attribute"
	indexingIndex     = "index"
	indexingSummary   = "summary"
)
