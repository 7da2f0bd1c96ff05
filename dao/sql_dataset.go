package dao

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/huandu/go-sqlbuilder"
	"github.com/logicalclocks/featurestore-go-sdk/constants"
	"github.com/logicalclocks/featurestore-go-sdk/utils"
)

// FlavorOf returns the sql flavor spoken by a database/sql driver.
func FlavorOf(driverName string) sqlbuilder.Flavor {
	if driverName == constants.Datasource_Type_MySQL {
		return sqlbuilder.MySQL
	}
	return sqlbuilder.PostgreSQL
}

type SQLDataset struct {
	db           *sql.DB
	flavor       sqlbuilder.Flavor
	builder      *sqlbuilder.SelectBuilder
	columns      []string
	fieldTypeMap map[string]constants.FSType
}

func NewSQLDataset(db *sql.DB, flavor sqlbuilder.Flavor, builder *sqlbuilder.SelectBuilder, columns []string, fieldTypeMap map[string]constants.FSType) *SQLDataset {
	return &SQLDataset{
		db:           db,
		flavor:       flavor,
		builder:      builder,
		columns:      columns,
		fieldTypeMap: fieldTypeMap,
	}
}

// SQL returns the statement the dataset runs on Collect.
func (d *SQLDataset) SQL() (string, []interface{}) {
	return d.builder.BuildWithFlavor(d.flavor)
}

func (d *SQLDataset) Columns() []string {
	return d.columns
}

func (d *SQLDataset) Where(filter string) (Dataset, error) {
	return newFilteredDataset(d, filter)
}

func (d *SQLDataset) Collect(ctx context.Context) ([]map[string]interface{}, error) {
	query, args := d.SQL()
	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query error, sql:%s, err=%w", query, err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var result []map[string]interface{}
	for rows.Next() {
		values := make([]interface{}, len(columns))
		pointers := make([]interface{}, len(columns))
		for i := range values {
			pointers[i] = &values[i]
		}
		if err := rows.Scan(pointers...); err != nil {
			return nil, err
		}

		row := make(map[string]interface{}, len(columns))
		for i, column := range columns {
			value := values[i]
			if b, ok := value.([]byte); ok {
				value = string(b)
			}
			if t, ok := d.fieldTypeMap[column]; ok {
				if value, err = utils.ConvertValue(value, t); err != nil {
					return nil, fmt.Errorf("convert column:%s error, err=%w", column, err)
				}
			}
			row[column] = value
		}
		result = append(result, row)
	}

	return result, rows.Err()
}

func (d *SQLDataset) Count(ctx context.Context) (int, error) {
	cb := sqlbuilder.NewSelectBuilder()
	cb.Select("COUNT(*)").From(cb.BuilderAs(d.builder, "t"))
	query, args := cb.BuildWithFlavor(d.flavor)

	var count int
	if err := d.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("query error, sql:%s, err=%w", query, err)
	}
	return count, nil
}
