package dao

import (
	"context"
	"errors"
	"fmt"

	"github.com/aliyun/aliyun-tablestore-go-sdk/tablestore"
	"github.com/logicalclocks/featurestore-go-sdk/constants"
	fstablestore "github.com/logicalclocks/featurestore-go-sdk/datasource/tablestore"
	"github.com/logicalclocks/featurestore-go-sdk/utils"
)

// rangeReader is the part of *tablestore.TableStoreClient a scan needs.
type rangeReader interface {
	GetRange(request *tablestore.GetRangeRequest) (*tablestore.GetRangeResponse, error)
}

type FeatureGroupTableStoreDao struct {
	tablestoreClient rangeReader
	table            string
	primaryKeyField  string
	fields           []string
	fieldTypeMap     map[string]constants.FSType
}

func NewFeatureGroupTableStoreDao(config DaoConfig) (*FeatureGroupTableStoreDao, error) {
	if config.PrimaryKeyField == "" {
		return nil, errors.New("tablestore feature group needs a primary key field")
	}
	client, err := fstablestore.GetTableStoreClient(config.TableStoreName)
	if err != nil {
		return nil, err
	}

	return &FeatureGroupTableStoreDao{
		tablestoreClient: client.GetClient(),
		table:            config.TableStoreTableName,
		primaryKeyField:  config.PrimaryKeyField,
		fields:           config.Fields,
		fieldTypeMap:     config.FieldTypeMap,
	}, nil
}

func (d *FeatureGroupTableStoreDao) Scan() Dataset {
	return &tablestoreDataset{dao: d}
}

type tablestoreDataset struct {
	dao *FeatureGroupTableStoreDao
}

func (d *tablestoreDataset) Columns() []string {
	return d.dao.fields
}

func (d *tablestoreDataset) Where(filter string) (Dataset, error) {
	return newFilteredDataset(d, filter)
}

func (d *tablestoreDataset) Collect(ctx context.Context) ([]map[string]interface{}, error) {
	getRangeRequest := &tablestore.GetRangeRequest{}
	rangeRowQueryCriteria := &tablestore.RangeRowQueryCriteria{}
	rangeRowQueryCriteria.TableName = d.dao.table

	startPK := new(tablestore.PrimaryKey)
	startPK.AddPrimaryKeyColumnWithMinValue(d.dao.primaryKeyField)
	endPK := new(tablestore.PrimaryKey)
	endPK.AddPrimaryKeyColumnWithMaxValue(d.dao.primaryKeyField)

	rangeRowQueryCriteria.StartPrimaryKey = startPK
	rangeRowQueryCriteria.EndPrimaryKey = endPK
	rangeRowQueryCriteria.Direction = tablestore.FORWARD
	rangeRowQueryCriteria.MaxVersion = 1
	rangeRowQueryCriteria.Limit = 1000
	for _, field := range d.dao.fields {
		if field != d.dao.primaryKeyField {
			rangeRowQueryCriteria.ColumnsToGet = append(rangeRowQueryCriteria.ColumnsToGet, field)
		}
	}
	getRangeRequest.RangeRowQueryCriteria = rangeRowQueryCriteria

	var result []map[string]interface{}
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		getRangeResp, err := d.dao.tablestoreClient.GetRange(getRangeRequest)
		if err != nil {
			return nil, err
		}

		for _, row := range getRangeResp.Rows {
			newMap := make(map[string]interface{}, len(row.Columns)+1)
			if row.PrimaryKey != nil {
				for _, pkValue := range row.PrimaryKey.PrimaryKeys {
					if newMap[pkValue.ColumnName], err = d.convert(pkValue.ColumnName, pkValue.Value); err != nil {
						return nil, err
					}
				}
			}
			for _, column := range row.Columns {
				if newMap[column.ColumnName], err = d.convert(column.ColumnName, column.Value); err != nil {
					return nil, err
				}
			}
			result = append(result, newMap)
		}

		if getRangeResp.NextStartPrimaryKey == nil {
			break
		}
		getRangeRequest.RangeRowQueryCriteria.StartPrimaryKey = getRangeResp.NextStartPrimaryKey
	}

	return result, nil
}

func (d *tablestoreDataset) convert(field string, value interface{}) (interface{}, error) {
	t, ok := d.dao.fieldTypeMap[field]
	if !ok {
		return value, nil
	}
	v, err := utils.ConvertValue(value, t)
	if err != nil {
		return nil, fmt.Errorf("convert column:%s error, err=%w", field, err)
	}
	return v, nil
}

func (d *tablestoreDataset) Count(ctx context.Context) (int, error) {
	rows, err := d.Collect(ctx)
	if err != nil {
		return 0, err
	}
	return len(rows), nil
}
