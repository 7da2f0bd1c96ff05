package dao

import (
	"database/sql"

	"github.com/huandu/go-sqlbuilder"
	"github.com/logicalclocks/featurestore-go-sdk/constants"
	"github.com/logicalclocks/featurestore-go-sdk/datasource/mysql"
)

type FeatureGroupMysqlDao struct {
	db           *sql.DB
	table        string
	fields       []string
	fieldTypeMap map[string]constants.FSType
}

func NewFeatureGroupMysqlDao(config DaoConfig) (*FeatureGroupMysqlDao, error) {
	m, err := mysql.GetMySQL(config.MySQLName)
	if err != nil {
		return nil, err
	}

	return &FeatureGroupMysqlDao{
		db:           m.DB,
		table:        config.MySQLTableName,
		fields:       config.Fields,
		fieldTypeMap: config.FieldTypeMap,
	}, nil
}

func (d *FeatureGroupMysqlDao) Scan() Dataset {
	flavor := sqlbuilder.MySQL
	sb := flavor.NewSelectBuilder()
	sb.Select(quoteColumns(flavor.Quote, d.fields)...).From(flavor.Quote(d.table))

	return NewSQLDataset(d.db, flavor, sb, d.fields, d.fieldTypeMap)
}
