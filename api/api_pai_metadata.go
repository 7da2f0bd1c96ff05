package api

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	openapi "github.com/alibabacloud-go/darabonba-openapi/v2/client"
	paifeaturestore "github.com/alibabacloud-go/paifeaturestore-20230621/v4/client"
	"github.com/logicalclocks/featurestore-go-sdk/constants"
	"github.com/logicalclocks/featurestore-go-sdk/errdefs"
)

// PaiMetadataApiService serves featurestore metadata from a PAI-FeatureStore instance.
// A PAI project is a featurestore, its feature views are feature groups and its
// datasources are storage connectors. Feature views registered on an external table
// are exposed as on-demand feature groups.
type PaiMetadataApiService struct {
	cfg        *Configuration
	client     *paifeaturestore.Client
	instanceId string
}

func NewPaiMetadataApiService(cfg *Configuration) (*PaiMetadataApiService, error) {
	regionId := cfg.GetRegionId()
	endpoint, protocol := cfg.GetDomain(), "https"
	if strings.HasPrefix(endpoint, "http://") {
		protocol = "http"
	}
	endpoint = strings.TrimSuffix(strings.TrimPrefix(strings.TrimPrefix(endpoint, "http://"), "https://"), "/")
	config := &openapi.Config{
		AccessKeyId:     &cfg.AccessKeyId,
		AccessKeySecret: &cfg.AccessKeySecret,
		RegionId:        &regionId,
		Endpoint:        &endpoint,
		Protocol:        &protocol,
		UserAgent:       &cfg.UserAgent,
	}
	if cfg.Token != "" {
		config.SecurityToken = &cfg.Token
	}

	client, err := paifeaturestore.NewClient(config)
	if err != nil {
		return nil, fmt.Errorf("create paifeaturestore client error, err=%w", err)
	}

	return &PaiMetadataApiService{
		cfg:        cfg,
		client:     client,
		instanceId: cfg.InstanceId,
	}, nil
}

func (a *PaiMetadataApiService) ListFeaturestores(ctx context.Context) ([]string, error) {
	request := paifeaturestore.ListProjectsRequest{}
	response, err := a.client.ListProjects(&a.instanceId, &request)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, p := range response.Body.Projects {
		if p.Name != nil {
			names = append(names, *p.Name)
		}
	}
	return names, nil
}

func (a *PaiMetadataApiService) GetFeaturestoreMetadata(ctx context.Context, featurestore string) (*FeaturestoreMetadata, error) {
	request := paifeaturestore.ListProjectsRequest{}
	request.SetName(featurestore)
	response, err := a.client.ListProjects(&a.instanceId, &request)
	if err != nil {
		return nil, err
	}

	var project *paifeaturestore.ListProjectsResponseBodyProjects
	for _, p := range response.Body.Projects {
		if p.Name != nil && *p.Name == featurestore {
			project = p
			break
		}
	}
	if project == nil || project.ProjectId == nil {
		return nil, &errdefs.FeaturestoreNotFoundError{Name: featurestore}
	}

	projectId, err := strconv.Atoi(*project.ProjectId)
	if err != nil {
		return nil, &errdefs.MetadataDecodeError{Featurestore: featurestore, Err: err}
	}
	metadata := &FeaturestoreMetadata{
		Featurestore: &Featurestore{
			FeaturestoreId:   projectId,
			FeaturestoreName: featurestore,
			ProjectId:        projectId,
			ProjectName:      a.cfg.ProjectName,
		},
	}

	if project.OnlineDatasourceId != nil && *project.OnlineDatasourceId != "" {
		connector, storeType, err := a.getStorageConnector(*project.OnlineDatasourceId)
		if err != nil {
			return nil, err
		}
		if storeType != "" {
			metadata.Featurestore.OnlineEnabled = true
			metadata.Featurestore.OnlineFeaturestoreType = storeType
			metadata.Featurestore.OnlineFeaturestoreName = connector.Name
			metadata.OnlineFeaturestoreConnector = connector
		}
	}

	connectors := make(map[string]*StorageConnector)
	var (
		pagesize   int32 = 100
		pagenumber int32 = 1
	)
	for {
		listRequest := paifeaturestore.ListFeatureViewsRequest{}
		listRequest.SetPageSize(pagesize)
		listRequest.SetPageNumber(pagenumber)
		listRequest.SetProjectId(*project.ProjectId)

		listResponse, err := a.client.ListFeatureViews(&a.instanceId, &listRequest)
		if err != nil {
			return nil, err
		}

		for _, view := range listResponse.Body.FeatureViews {
			if view.FeatureViewId == nil {
				continue
			}
			fg, connector, err := a.getFeaturegroup(*view.FeatureViewId)
			if err != nil {
				return nil, err
			}
			fg.FeaturestoreName = featurestore
			metadata.Featuregroups = append(metadata.Featuregroups, fg)
			if connector != nil {
				connectors[connector.Name] = connector
			}
		}

		total := 0
		if listResponse.Body.TotalCount != nil {
			total = int(*listResponse.Body.TotalCount)
		}
		if len(listResponse.Body.FeatureViews) == 0 || int(pagesize*pagenumber) >= total {
			break
		}
		pagenumber++
	}

	for _, connector := range connectors {
		metadata.StorageConnectors = append(metadata.StorageConnectors, connector)
	}

	return metadata, nil
}

func (a *PaiMetadataApiService) getFeaturegroup(featureViewId string) (*Featuregroup, *StorageConnector, error) {
	response, err := a.client.GetFeatureView(&a.instanceId, &featureViewId)
	if err != nil {
		return nil, nil, err
	}
	body := response.Body

	fg := &Featuregroup{
		Name:    stringValue(body.Name),
		Version: 1,
		Type:    constants.Featuregroup_Type_Cached,
	}
	fg.Id, _ = strconv.Atoi(featureViewId)
	if body.SyncOnlineTable != nil {
		fg.OnlineEnabled = *body.SyncOnlineTable
	}
	if config := stringValue(body.Config); config != "" {
		configM := make(map[string]interface{})
		if err := json.Unmarshal([]byte(config), &configM); err == nil {
			if v, ok := configM["version"].(float64); ok && v > 0 {
				fg.Version = int(v)
			}
		}
	}

	for _, fieldItem := range body.Fields {
		feature := &Feature{
			Name: stringValue(fieldItem.Name),
			Type: stringValue(fieldItem.Type),
		}
		for _, attr := range fieldItem.Attributes {
			switch stringValue(attr) {
			case "PrimaryKey":
				feature.Primary = true
			case "Partition":
				feature.Partition = true
			}
		}
		fg.Features = append(fg.Features, feature)
	}

	registerTable := stringValue(body.RegisterTable)
	registerDatasourceId := stringValue(body.RegisterDatasourceId)
	if registerTable == "" || registerDatasourceId == "" {
		return fg, nil, nil
	}

	connector, _, err := a.getStorageConnector(registerDatasourceId)
	if err != nil {
		return nil, nil, err
	}
	fg.Type = constants.Featuregroup_Type_OnDemand
	fg.JdbcConnectorName = connector.Name
	fg.Query = fmt.Sprintf("SELECT * FROM %s", registerTable)

	return fg, connector, nil
}

// getStorageConnector converts a PAI datasource to a storage connector. The second
// return value is the online store type the datasource can serve, empty if none.
func (a *PaiMetadataApiService) getStorageConnector(datasourceId string) (*StorageConnector, string, error) {
	response, err := a.client.GetDatasource(&a.instanceId, &datasourceId)
	if err != nil {
		return nil, "", err
	}
	body := response.Body

	connector := &StorageConnector{
		Name: stringValue(body.Name),
	}
	connector.Id, _ = strconv.Atoi(datasourceId)
	credentials := fmt.Sprintf("user=%s,password=%s", a.cfg.AccessKeyId, a.cfg.AccessKeySecret)
	uri := stringValue(body.Uri)
	region := a.cfg.GetRegionId()

	switch stringValue(body.Type) {
	case "Hologres":
		uris := strings.SplitN(uri, "/", 2)
		if len(uris) != 2 {
			return nil, "", fmt.Errorf("invalid hologres datasource uri:%s", uri)
		}
		connector.Type = constants.Storage_Connector_Type_JDBC
		connector.ConnectionString = fmt.Sprintf("jdbc:hologres://%s-%s-vpc-st.hologres.aliyuncs.com:80/%s", uris[0], region, uris[1])
		connector.Arguments = credentials
		return connector, "", nil
	case "Tablestore":
		connector.Type = constants.Datasource_Type_TableStore
		connector.ConnectionString = fmt.Sprintf("https://%s.%s.vpc.tablestore.aliyuncs.com", uri, region)
		connector.Arguments = fmt.Sprintf("instance=%s,%s", uri, credentials)
		return connector, constants.Datasource_Type_TableStore, nil
	default:
		connector.Type = stringValue(body.Type)
		connector.ConnectionString = uri
		return connector, "", nil
	}
}

func stringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
