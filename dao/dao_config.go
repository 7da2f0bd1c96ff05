package dao

import (
	"github.com/logicalclocks/featurestore-go-sdk/constants"
)

type DaoConfig struct {
	DatasourceType string

	PrimaryKeyField string
	Fields          []string
	FieldTypeMap    map[string]constants.FSType

	// hologres
	HologresName       string
	HologresSchemaName string
	HologresTableName  string

	// mysql
	MySQLName      string
	MySQLTableName string

	// redis
	RedisName      string
	RedisKeyPrefix string

	// tablestore
	TableStoreName      string
	TableStoreTableName string
}
