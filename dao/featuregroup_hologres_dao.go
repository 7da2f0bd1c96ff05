package dao

import (
	"database/sql"

	"github.com/huandu/go-sqlbuilder"
	"github.com/logicalclocks/featurestore-go-sdk/constants"
	"github.com/logicalclocks/featurestore-go-sdk/datasource/hologres"
)

type FeatureGroupHologresDao struct {
	db           *sql.DB
	schema       string
	table        string
	fields       []string
	fieldTypeMap map[string]constants.FSType
}

func NewFeatureGroupHologresDao(config DaoConfig) (*FeatureGroupHologresDao, error) {
	h, err := hologres.GetHologres(config.HologresName)
	if err != nil {
		return nil, err
	}

	return &FeatureGroupHologresDao{
		db:           h.DB,
		schema:       config.HologresSchemaName,
		table:        config.HologresTableName,
		fields:       config.Fields,
		fieldTypeMap: config.FieldTypeMap,
	}, nil
}

func (d *FeatureGroupHologresDao) Scan() Dataset {
	flavor := sqlbuilder.PostgreSQL
	table := flavor.Quote(d.table)
	if d.schema != "" {
		table = flavor.Quote(d.schema) + "." + table
	}

	sb := flavor.NewSelectBuilder()
	sb.Select(quoteColumns(flavor.Quote, d.fields)...).From(table)

	return NewSQLDataset(d.db, flavor, sb, d.fields, d.fieldTypeMap)
}
