package featurestore

import (
	"context"
	"errors"
	"fmt"

	"github.com/antihax/optional"
	"github.com/logicalclocks/featurestore-go-sdk/constants"
	"github.com/logicalclocks/featurestore-go-sdk/dao"
	"github.com/logicalclocks/featurestore-go-sdk/domain"
)

var _ Reader = (*ReadFeatureGroupOp)(nil)

// ReadFeatureGroupOp reads a feature group. Version defaults to 1.
type ReadFeatureGroupOp struct {
	FeaturestoreOp
}

func NewReadFeatureGroupOp(name string) *ReadFeatureGroupOp {
	return &ReadFeatureGroupOp{
		FeaturestoreOp: FeaturestoreOp{
			name:    name,
			version: 1,
		},
	}
}

func (op *ReadFeatureGroupOp) SetName(name string) *ReadFeatureGroupOp {
	op.name = name
	return op
}

func (op *ReadFeatureGroupOp) SetFeaturestore(featurestore string) *ReadFeatureGroupOp {
	op.featurestore = featurestore
	return op
}

func (op *ReadFeatureGroupOp) SetClient(client *FeatureStoreClient) *ReadFeatureGroupOp {
	op.client = client
	return op
}

// SetVersion sets the version to read, 0 reads the latest version.
func (op *ReadFeatureGroupOp) SetVersion(version int) *ReadFeatureGroupOp {
	op.version = version
	return op
}

// SetJdbcArguments sets arguments passed to the JDBC connection of an on-demand
// feature group. They override the arguments of the storage connector.
func (op *ReadFeatureGroupOp) SetJdbcArguments(jdbcArguments map[string]string) *ReadFeatureGroupOp {
	op.jdbcArguments = jdbcArguments
	return op
}

func (op *ReadFeatureGroupOp) SetOnline(online bool) *ReadFeatureGroupOp {
	op.online = optional.NewBool(online)
	return op
}

// Request returns a snapshot of the operation, later setter calls do not change it.
func (op *ReadFeatureGroupOp) Request() ReadRequest {
	var jdbcArguments map[string]string
	if op.jdbcArguments != nil {
		jdbcArguments = make(map[string]string, len(op.jdbcArguments))
		for k, v := range op.jdbcArguments {
			jdbcArguments[k] = v
		}
	}

	return ReadRequest{
		Name:          op.name,
		Featurestore:  op.featurestore,
		Version:       op.version,
		JdbcArguments: jdbcArguments,
		Online:        op.online,
	}
}

// Read looks the feature group up in the featurestore metadata and reads it from
// the store its type lives in.
func (op *ReadFeatureGroupOp) Read(ctx context.Context) (dao.Dataset, error) {
	if op.client == nil {
		return nil, errors.New("featurestore client is not set")
	}

	req := op.Request()
	if req.Featurestore == "" {
		req.Featurestore = op.client.GetDefaultFeaturestore()
	}
	metadata, err := op.client.GetFeaturestoreMetadata(req.Featurestore)
	if err != nil {
		return nil, err
	}

	if req.Version == 0 {
		if req.Version, err = metadata.LatestVersion(req.Name); err != nil {
			return nil, err
		}
	}

	fg, err := metadata.FindFeatureGroup(req.Name, req.Version)
	if err != nil {
		return nil, err
	}

	op.client.SetJobGroup(constants.Job_Group_Fetch_Featuregroup,
		fmt.Sprintf("Getting Feature group: %s from the featurestore:%s", req.Name, req.Featurestore))

	switch featureGroup := fg.(type) {
	case *domain.OnDemandFeatureGroup:
		return op.readOnDemand(ctx, req, featureGroup, metadata)
	case *domain.CachedFeatureGroup:
		return op.readCached(ctx, req)
	}

	return nil, fmt.Errorf("not support featuregroup type:%s", fg.GetType())
}

// ReadOnDemandFeatureGroup reads an on-demand feature group by running its query
// against the JDBC storage connector it was registered with.
func (op *ReadFeatureGroupOp) ReadOnDemandFeatureGroup(ctx context.Context, featureGroup *domain.OnDemandFeatureGroup,
	metadata *domain.FeaturestoreMetadata) (dao.Dataset, error) {
	if op.client == nil {
		return nil, errors.New("featurestore client is not set")
	}
	return op.readOnDemand(ctx, op.Request(), featureGroup, metadata)
}

// ReadCachedFeatureGroup reads a cached feature group from the online or the offline store.
func (op *ReadFeatureGroupOp) ReadCachedFeatureGroup(ctx context.Context) (dao.Dataset, error) {
	if op.client == nil {
		return nil, errors.New("featurestore client is not set")
	}
	return op.readCached(ctx, op.Request())
}

func (op *ReadFeatureGroupOp) readOnDemand(ctx context.Context, req ReadRequest, featureGroup *domain.OnDemandFeatureGroup,
	metadata *domain.FeaturestoreMetadata) (dao.Dataset, error) {
	connector, err := metadata.FindStorageConnector(featureGroup.GetJdbcConnectorName())
	if err != nil {
		return nil, err
	}
	if !connector.IsJDBC() {
		return nil, fmt.Errorf("storage connector:%s is not a jdbc connector, type:%s", connector.Name, connector.Type)
	}

	helper := op.client.helper
	url, err := helper.GetJDBCURLFromConnector(connector, req.JdbcArguments)
	if err != nil {
		return nil, err
	}
	helper.RegisterCustomJDBCDialects()

	return helper.GetOnDemandFeatureGroup(ctx, featureGroup, url, metadata.GetFeaturestoreName())
}

func (op *ReadFeatureGroupOp) readCached(ctx context.Context, req ReadRequest) (dao.Dataset, error) {
	online := op.client.onlineDefault
	if req.Online.IsSet() {
		online = req.Online.Value()
	}
	return op.client.helper.GetCachedFeatureGroup(ctx, req.Name, req.Featurestore, req.Version, online)
}
