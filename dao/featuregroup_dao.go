package dao

import (
	"fmt"

	"github.com/logicalclocks/featurestore-go-sdk/constants"
)

// FeatureGroupDao reads the table of one feature group version from a store.
type FeatureGroupDao interface {
	Scan() Dataset
}

func NewFeatureGroupDao(config DaoConfig) (FeatureGroupDao, error) {
	switch config.DatasourceType {
	case constants.Datasource_Type_Hologres:
		return NewFeatureGroupHologresDao(config)
	case constants.Datasource_Type_MySQL:
		return NewFeatureGroupMysqlDao(config)
	case constants.Datasource_Type_Redis:
		return NewFeatureGroupRedisDao(config)
	case constants.Datasource_Type_TableStore:
		return NewFeatureGroupTableStoreDao(config)
	}

	return nil, fmt.Errorf("not found FeatureGroupDao implement, datasource type:%s", config.DatasourceType)
}

func quoteColumns(quote func(string) string, fields []string) []string {
	if len(fields) == 0 {
		return []string{"*"}
	}
	columns := make([]string, 0, len(fields))
	for _, field := range fields {
		columns = append(columns, quote(field))
	}
	return columns
}
