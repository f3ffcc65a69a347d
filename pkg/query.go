package pkg

import (
	"fmt"
	"net/url"
	"strings"
)

const (
	FamilyParam     = "family"
	DragonNameParam = "dragonName"
	FamilyField     = "family_str"

	selectAll = "SELECT * FROM s3object s"
	// the space before the value is part of the stored data format
	filterTemplate = "SELECT * FROM S3Object[*][*] s WHERE s.%s = ' %s'"
)

type QueryBuilder struct {
	FamilyField     string
	DragonNameField string
}

var defaultBuilder = QueryBuilder{FamilyField: FamilyField, DragonNameField: FamilyField}

// NewQueryBuilder returns a builder comparing dragonName against
// dragonNameField, or against family_str when it is empty.
func NewQueryBuilder(dragonNameField string) QueryBuilder {
	if dragonNameField == "" {
		dragonNameField = FamilyField
	}
	return QueryBuilder{FamilyField: FamilyField, DragonNameField: dragonNameField}
}

// Build maps the request parameters to a select expression. family wins over
// dragonName; without either the whole document is selected.
func (b QueryBuilder) Build(params map[string]string) string {
	if value, ok := params[FamilyParam]; ok {
		return fmt.Sprintf(filterTemplate, b.FamilyField, quoteLiteral(value))
	}
	if value, ok := params[DragonNameParam]; ok {
		return fmt.Sprintf(filterTemplate, b.DragonNameField, quoteLiteral(value))
	}
	return selectAll
}

func BuildQuery(params map[string]string) string {
	return defaultBuilder.Build(params)
}

// quoteLiteral doubles single quotes so the value stays inside the literal.
func quoteLiteral(value string) string {
	return strings.ReplaceAll(value, "'", "''")
}

// FirstValues flattens url query values, keeping the first value of each key.
func FirstValues(query url.Values) map[string]string {
	params := make(map[string]string, len(query))
	for k, v := range query {
		if len(v) > 0 {
			params[k] = v[0]
		} else {
			params[k] = ""
		}
	}
	return params
}
