package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path"
	"strings"
	"sync"
	"testing"

	"fortio.org/assert"
	"github.com/logicalclocks/featurestore-go-sdk/constants"
	"github.com/logicalclocks/featurestore-go-sdk/errdefs"
)

// paiInstance serves the PAI-FeatureStore endpoints the metadata source calls.
type paiInstance struct {
	projects     []map[string]interface{}
	featureViews map[string]map[string]interface{}
	datasources  map[string]map[string]interface{}
	// viewPages holds the feature view ids of each ListFeatureViews page
	viewPages  [][]string
	totalViews int

	mu          sync.Mutex
	pageNumbers []string
	projectIds  []string
	paths       []string
}

func (p *paiInstance) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	p.mu.Lock()
	p.paths = append(p.paths, r.URL.Path)
	p.mu.Unlock()

	query := r.URL.Query()
	var body interface{}
	switch {
	case strings.HasSuffix(r.URL.Path, "/projects"):
		var projects []map[string]interface{}
		for _, project := range p.projects {
			if name := query.Get("Name"); name == "" || name == project["Name"] {
				projects = append(projects, project)
			}
		}
		body = map[string]interface{}{"Projects": projects, "TotalCount": len(projects)}
	case strings.HasSuffix(r.URL.Path, "/featureviews"):
		p.mu.Lock()
		p.pageNumbers = append(p.pageNumbers, query.Get("PageNumber"))
		p.projectIds = append(p.projectIds, query.Get("ProjectId"))
		p.mu.Unlock()

		var views []map[string]interface{}
		page := len(p.pageNumbers) - 1
		if page < len(p.viewPages) {
			for _, id := range p.viewPages[page] {
				views = append(views, map[string]interface{}{"FeatureViewId": id})
			}
		}
		body = map[string]interface{}{"FeatureViews": views, "TotalCount": p.totalViews}
	case strings.Contains(r.URL.Path, "/featureviews/"):
		view, ok := p.featureViews[path.Base(r.URL.Path)]
		if !ok {
			notFound(w)
			return
		}
		body = view
	case strings.Contains(r.URL.Path, "/datasources/"):
		datasource, ok := p.datasources[path.Base(r.URL.Path)]
		if !ok {
			notFound(w)
			return
		}
		body = datasource
	default:
		notFound(w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(body)
}

func notFound(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	w.Write([]byte(`{"Code":"ResourceNotFound","Message":"resource not found","RequestId":"test"}`))
}

func newPaiTestService(t *testing.T, instance http.Handler) *PaiMetadataApiService {
	t.Setenv("HTTP_PROXY", "")
	t.Setenv("http_proxy", "")
	t.Setenv("HTTPS_PROXY", "")
	t.Setenv("https_proxy", "")

	server := httptest.NewServer(instance)
	t.Cleanup(server.Close)

	cfg := NewConfiguration("cn-hangzhou", "ak", "sk", "", "demo")
	cfg.InstanceId = "fs-demo"
	cfg.SetDomain(server.URL)
	service, err := NewPaiMetadataApiService(cfg)
	if err != nil {
		t.Fatal(err)
	}
	return service
}

func demoPaiInstance() *paiInstance {
	return &paiInstance{
		projects: []map[string]interface{}{
			{"ProjectId": "7", "Name": "demo_fs", "OnlineDatasourceId": "2", "OfflineDatasourceId": "3"},
			{"ProjectId": "8", "Name": "other_fs"},
		},
		viewPages:  [][]string{{"11", "12"}, {"13"}},
		totalViews: 150,
		featureViews: map[string]map[string]interface{}{
			"11": {
				"FeatureViewId":   "11",
				"Name":            "clicks",
				"Config":          `{"version":2}`,
				"SyncOnlineTable": true,
				"Fields": []map[string]interface{}{
					{"Name": "user_id", "Type": "INT64", "Attributes": []string{"PrimaryKey"}},
					{"Name": "clicks", "Type": "INT32"},
					{"Name": "ds", "Type": "STRING", "Attributes": []string{"Partition"}},
				},
			},
			"12": {
				"FeatureViewId":        "12",
				"Name":                 "sessions",
				"RegisterTable":        "sessions_src",
				"RegisterDatasourceId": "3",
				"Fields": []map[string]interface{}{
					{"Name": "user_id", "Type": "INT64", "Attributes": []string{"PrimaryKey"}},
					{"Name": "duration", "Type": "DOUBLE"},
				},
			},
			"13": {
				"FeatureViewId": "13",
				"Name":          "orders",
				"Fields": []map[string]interface{}{
					{"Name": "order_id", "Type": "STRING", "Attributes": []string{"PrimaryKey"}},
				},
			},
		},
		datasources: map[string]map[string]interface{}{
			"2": {"DatasourceId": "2", "Name": "ots_online", "Type": "Tablestore", "Uri": "fs-ots"},
			"3": {"DatasourceId": "3", "Name": "holo_offline", "Type": "Hologres", "Uri": "fs-holo/analytics"},
		},
	}
}

func TestPaiGetFeaturestoreMetadata(t *testing.T) {
	instance := demoPaiInstance()
	service := newPaiTestService(t, instance)

	metadata, err := service.GetFeaturestoreMetadata(context.Background(), "demo_fs")
	assert.NoError(t, err)

	fs := metadata.Featurestore
	assert.Equal(t, 7, fs.FeaturestoreId)
	assert.Equal(t, "demo_fs", fs.FeaturestoreName)
	assert.Equal(t, "demo", fs.ProjectName)
	assert.True(t, fs.OnlineEnabled)
	assert.Equal(t, constants.Datasource_Type_TableStore, fs.OnlineFeaturestoreType)
	assert.Equal(t, "ots_online", fs.OnlineFeaturestoreName)

	online := metadata.OnlineFeaturestoreConnector
	assert.Equal(t, 2, online.Id)
	assert.Equal(t, "https://fs-ots.cn-hangzhou.vpc.tablestore.aliyuncs.com", online.ConnectionString)
	assert.Equal(t, "instance=fs-ots,user=ak,password=sk", online.Arguments)

	assert.Equal(t, 3, len(metadata.Featuregroups))
	clicks := metadata.Featuregroups[0]
	assert.Equal(t, "clicks", clicks.Name)
	assert.Equal(t, 11, clicks.Id)
	assert.Equal(t, 2, clicks.Version)
	assert.Equal(t, constants.Featuregroup_Type_Cached, clicks.Type)
	assert.True(t, clicks.OnlineEnabled)
	assert.Equal(t, "demo_fs", clicks.FeaturestoreName)
	assert.Equal(t, []*Feature{
		{Name: "user_id", Type: "INT64", Primary: true},
		{Name: "clicks", Type: "INT32"},
		{Name: "ds", Type: "STRING", Partition: true},
	}, clicks.Features)

	sessions := metadata.Featuregroups[1]
	assert.Equal(t, constants.Featuregroup_Type_OnDemand, sessions.Type)
	assert.Equal(t, 1, sessions.Version)
	assert.Equal(t, "holo_offline", sessions.JdbcConnectorName)
	assert.Equal(t, "SELECT * FROM sessions_src", sessions.Query)

	orders := metadata.Featuregroups[2]
	assert.Equal(t, constants.Featuregroup_Type_Cached, orders.Type)
	assert.False(t, orders.OnlineEnabled)

	assert.Equal(t, 1, len(metadata.StorageConnectors))
	holo := metadata.StorageConnectors[0]
	assert.Equal(t, "holo_offline", holo.Name)
	assert.Equal(t, constants.Storage_Connector_Type_JDBC, holo.Type)
	assert.Equal(t, "jdbc:hologres://fs-holo-cn-hangzhou-vpc-st.hologres.aliyuncs.com:80/analytics", holo.ConnectionString)
	assert.Equal(t, "user=ak,password=sk", holo.Arguments)

	assert.Equal(t, []string{"1", "2"}, instance.pageNumbers)
	assert.Equal(t, []string{"7", "7"}, instance.projectIds)
	for _, p := range instance.paths {
		assert.True(t, strings.Contains(p, "/instances/fs-demo/"))
	}
}

func TestPaiListFeaturestores(t *testing.T) {
	service := newPaiTestService(t, demoPaiInstance())

	names, err := service.ListFeaturestores(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, []string{"demo_fs", "other_fs"}, names)
}

func TestPaiFeaturestoreNotFound(t *testing.T) {
	service := newPaiTestService(t, demoPaiInstance())

	_, err := service.GetFeaturestoreMetadata(context.Background(), "missing_fs")
	var notFound *errdefs.FeaturestoreNotFoundError
	assert.True(t, errors.As(err, &notFound))
	assert.Equal(t, "missing_fs", notFound.Name)
}

func TestPaiMissingDatasource(t *testing.T) {
	instance := demoPaiInstance()
	delete(instance.datasources, "3")
	service := newPaiTestService(t, instance)

	_, err := service.GetFeaturestoreMetadata(context.Background(), "demo_fs")
	assert.Error(t, err)
}

func TestPaiProjectWithoutOnlineStore(t *testing.T) {
	instance := demoPaiInstance()
	instance.viewPages = [][]string{{"13"}}
	instance.totalViews = 1
	service := newPaiTestService(t, instance)

	metadata, err := service.GetFeaturestoreMetadata(context.Background(), "other_fs")
	assert.NoError(t, err)
	assert.Equal(t, 8, metadata.Featurestore.FeaturestoreId)
	assert.False(t, metadata.Featurestore.OnlineEnabled)
	assert.True(t, metadata.OnlineFeaturestoreConnector == nil)
	assert.Equal(t, 1, len(metadata.Featuregroups))
	assert.Equal(t, []string{"1"}, instance.pageNumbers)
	assert.Equal(t, []string{"8"}, instance.projectIds)
}
