package dao

import (
	"context"
	"errors"
	"testing"

	"fortio.org/assert"
	"github.com/aliyun/aliyun-tablestore-go-sdk/tablestore"
	"github.com/logicalclocks/featurestore-go-sdk/constants"
)

// pagedRangeReader serves one page per GetRange call.
type pagedRangeReader struct {
	pages    []*tablestore.GetRangeResponse
	requests []tablestore.RangeRowQueryCriteria
	err      error
}

func (r *pagedRangeReader) GetRange(request *tablestore.GetRangeRequest) (*tablestore.GetRangeResponse, error) {
	if r.err != nil {
		return nil, r.err
	}
	r.requests = append(r.requests, *request.RangeRowQueryCriteria)
	page := r.pages[0]
	r.pages = r.pages[1:]
	return page, nil
}

func tablestoreRow(userId int64, clicks interface{}) *tablestore.Row {
	pk := new(tablestore.PrimaryKey)
	pk.AddPrimaryKeyColumn("user_id", userId)
	return &tablestore.Row{
		PrimaryKey: pk,
		Columns:    []*tablestore.AttributeColumn{{ColumnName: "clicks", Value: clicks}},
	}
}

func newTableStoreTestDao(reader rangeReader) *FeatureGroupTableStoreDao {
	return &FeatureGroupTableStoreDao{
		tablestoreClient: reader,
		table:            "demo_featurestore_clicks_1",
		primaryKeyField:  "user_id",
		fields:           []string{"user_id", "clicks"},
		fieldTypeMap: map[string]constants.FSType{
			"user_id": constants.FS_INT64,
			"clicks":  constants.FS_INT32,
		},
	}
}

func TestTableStoreCollect(t *testing.T) {
	next := new(tablestore.PrimaryKey)
	next.AddPrimaryKeyColumn("user_id", int64(3))
	reader := &pagedRangeReader{
		pages: []*tablestore.GetRangeResponse{
			{Rows: []*tablestore.Row{tablestoreRow(1, int64(10)), tablestoreRow(2, int64(20))}, NextStartPrimaryKey: next},
			{Rows: []*tablestore.Row{tablestoreRow(3, int64(30))}},
		},
	}

	dataset := newTableStoreTestDao(reader).Scan()
	rows, err := dataset.Collect(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, []map[string]interface{}{
		{"user_id": int64(1), "clicks": int32(10)},
		{"user_id": int64(2), "clicks": int32(20)},
		{"user_id": int64(3), "clicks": int32(30)},
	}, rows)

	assert.Equal(t, 2, len(reader.requests))
	assert.Equal(t, "demo_featurestore_clicks_1", reader.requests[0].TableName)
	assert.Equal(t, []string{"clicks"}, reader.requests[0].ColumnsToGet)
	assert.Equal(t, int32(1), reader.requests[0].MaxVersion)
	assert.True(t, reader.requests[1].StartPrimaryKey == next)
}

func TestTableStoreCollectWhere(t *testing.T) {
	reader := &pagedRangeReader{
		pages: []*tablestore.GetRangeResponse{
			{Rows: []*tablestore.Row{tablestoreRow(1, int64(10)), tablestoreRow(2, int64(20))}},
		},
	}

	dataset, err := newTableStoreTestDao(reader).Scan().Where("clicks > 15")
	assert.NoError(t, err)
	count, err := dataset.Count(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestTableStoreCollectErrors(t *testing.T) {
	_, err := newTableStoreTestDao(&pagedRangeReader{err: errors.New("OTSServerBusy")}).Scan().Collect(context.Background())
	assert.Error(t, err)

	reader := &pagedRangeReader{
		pages: []*tablestore.GetRangeResponse{
			{Rows: []*tablestore.Row{tablestoreRow(1, int64(1<<40))}},
		},
	}
	_, err = newTableStoreTestDao(reader).Scan().Collect(context.Background())
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = newTableStoreTestDao(&pagedRangeReader{}).Scan().Collect(ctx)
	assert.True(t, errors.Is(err, context.Canceled))
}
