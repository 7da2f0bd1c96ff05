package featurestore

import (
	"context"

	"github.com/antihax/optional"
	"github.com/logicalclocks/featurestore-go-sdk/dao"
)

// Reader is an operation that reads from the featurestore. Writes are a separate
// capability and no read operation implements them.
type Reader interface {
	Read(ctx context.Context) (dao.Dataset, error)
}

// FeaturestoreOp holds the state shared by the featurestore operations.
type FeaturestoreOp struct {
	name          string
	featurestore  string
	version       int
	client        *FeatureStoreClient
	jdbcArguments map[string]string
	online        optional.Bool
}

// ReadRequest is an immutable snapshot of a read. A zero Version selects the latest
// version and an empty Featurestore the default featurestore of the client.
type ReadRequest struct {
	Name          string
	Featurestore  string
	Version       int
	JdbcArguments map[string]string
	Online        optional.Bool
}
