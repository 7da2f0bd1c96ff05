package dao

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/logicalclocks/featurestore-go-sdk/constants"
	"github.com/logicalclocks/featurestore-go-sdk/domain"
)

// OnDemandAlias is the name the query of an on-demand feature group is exposed as.
func OnDemandAlias(featurestore string, featureGroup *domain.OnDemandFeatureGroup) string {
	return fmt.Sprintf("%s_%s", featurestore, featureGroup.GetTableName())
}

// ReadOnDemandTable wraps the query of an on-demand feature group, qualified by the
// featurestore name. The query runs when the dataset is collected.
func ReadOnDemandTable(db *sql.DB, driverName string, featureGroup *domain.OnDemandFeatureGroup, featurestore string) *SQLDataset {
	flavor := FlavorOf(driverName)
	query := strings.TrimRight(strings.TrimSpace(featureGroup.GetQuery()), ";")

	sb := flavor.NewSelectBuilder()
	sb.Select("*").From(fmt.Sprintf("(%s) AS %s", query, OnDemandAlias(featurestore, featureGroup)))

	fieldTypeMap := FieldTypeMapOf(featureGroup)
	return NewSQLDataset(db, flavor, sb, featureGroup.GetFeatureNames(), fieldTypeMap)
}

// FieldTypeMapOf maps the features of a feature group to their types.
func FieldTypeMapOf(featureGroup domain.FeatureGroup) map[string]constants.FSType {
	fieldTypeMap := make(map[string]constants.FSType, len(featureGroup.GetFeatures()))
	for _, feature := range featureGroup.GetFeatures() {
		fieldTypeMap[feature.Name] = constants.ParseFSType(feature.Type)
	}
	return fieldTypeMap
}
