package featurestore

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/logicalclocks/featurestore-go-sdk/api"
	"github.com/logicalclocks/featurestore-go-sdk/config"
	"github.com/logicalclocks/featurestore-go-sdk/constants"
	"github.com/logicalclocks/featurestore-go-sdk/datasource/hologres"
	"github.com/logicalclocks/featurestore-go-sdk/domain"
	"github.com/logicalclocks/featurestore-go-sdk/errdefs"
)

// offlineStoreName is the name the offline hologres instance is registered under.
const offlineStoreName = "featurestore_offline"

type ClientOption func(c *FeatureStoreClient)

func WithLogger(l Logger) ClientOption {
	return func(e *FeatureStoreClient) {
		e.Logger = l
	}
}

func WithErrorLogger(l Logger) ClientOption {
	return func(e *FeatureStoreClient) {
		e.ErrorLogger = l
	}
}

// WithDomain set the metadata service domain, e.g. "hopsworks.example.com:443"
func WithDomain(domain string) ClientOption {
	return func(e *FeatureStoreClient) {
		e.domain = domain
	}
}

func WithApiKey(apiKey string) ClientOption {
	return func(e *FeatureStoreClient) {
		e.apiKey = apiKey
	}
}

func WithLoopData(loopLoad bool) ClientOption {
	return func(e *FeatureStoreClient) {
		e.loopLoadData = loopLoad
	}
}

func WithRefreshInterval(interval time.Duration) ClientOption {
	return func(e *FeatureStoreClient) {
		if interval > 0 {
			e.refreshInterval = interval
		}
	}
}

// WithPaiMetadata reads the metadata from a PAI-FeatureStore instance instead of the REST metadata service.
func WithPaiMetadata(regionId, accessKeyId, accessKeySecret, instanceId string) ClientOption {
	return func(e *FeatureStoreClient) {
		e.pai = &paiOptions{
			regionId:        regionId,
			accessKeyId:     accessKeyId,
			accessKeySecret: accessKeySecret,
			instanceId:      instanceId,
		}
	}
}

// WithToken sets the sts token used with WithPaiMetadata
func WithToken(token string) ClientOption {
	return func(e *FeatureStoreClient) {
		e.token = token
	}
}

func WithMetadataSource(source api.MetadataSource) ClientOption {
	return func(e *FeatureStoreClient) {
		e.metadataSource = source
	}
}

// WithFeaturestores restricts the metadata cache to the given featurestores.
// By default every featurestore of the project is loaded.
func WithFeaturestores(featurestores ...string) ClientOption {
	return func(e *FeatureStoreClient) {
		e.featurestores = featurestores
	}
}

func WithDefaultFeaturestore(featurestore string) ClientOption {
	return func(e *FeatureStoreClient) {
		e.defaultFeaturestore = featurestore
	}
}

// WithOfflineStoreDSN enables reads of cached feature groups from the offline store.
func WithOfflineStoreDSN(dsn string) ClientOption {
	return func(e *FeatureStoreClient) {
		e.offlineStoreDSN = dsn
	}
}

// WithOnlineFeaturestoreLogin overrides the credentials of the online featurestore connector.
func WithOnlineFeaturestoreLogin(username, password string) ClientOption {
	return func(e *FeatureStoreClient) {
		e.onlineUser = username
		e.onlinePassword = password
	}
}

// WithOnlineDefault sets the store read when a request does not set online.
func WithOnlineDefault(online bool) ClientOption {
	return func(e *FeatureStoreClient) {
		e.onlineDefault = online
	}
}

type paiOptions struct {
	regionId        string
	accessKeyId     string
	accessKeySecret string
	instanceId      string
}

// JobGroup labels the work the client is doing, for logs only.
type JobGroup struct {
	GroupId     string
	Description string
}

type FeatureStoreClient struct {
	// loopLoadData flag to invoke loopLoadMetadata function
	loopLoadData    bool
	refreshInterval time.Duration

	projectName string
	domain      string
	apiKey      string
	token       string
	pai         *paiOptions

	metadataSource api.MetadataSource

	// featurestores to load, empty means all of the project
	featurestores       []string
	defaultFeaturestore string

	mu          sync.RWMutex
	metadataMap map[string]*domain.FeaturestoreMetadata

	// Logger specifies a logger used to report internal changes within the client
	Logger Logger

	// ErrorLogger is the logger to report errors
	ErrorLogger Logger

	offlineStoreDSN string
	onlineUser      string
	onlinePassword  string
	onlineDefault   bool

	jobGroup atomic.Value

	helper featurestoreHelper

	closeOnce sync.Once
	closeCh   chan struct{}
}

func NewFeatureStoreClient(projectName string, opts ...ClientOption) (*FeatureStoreClient, error) {
	client := FeatureStoreClient{
		projectName:         projectName,
		metadataMap:         make(map[string]*domain.FeaturestoreMetadata),
		loopLoadData:        true,
		refreshInterval:     time.Minute,
		defaultFeaturestore: strings.ToLower(projectName) + constants.Featurestore_Suffix,
		closeCh:             make(chan struct{}),
	}

	for _, opt := range opts {
		opt(&client)
	}
	client.helper = &defaultFeaturestoreHelper{client: &client}

	if client.metadataSource == nil {
		source, err := client.newMetadataSource()
		if err != nil {
			return nil, err
		}
		client.metadataSource = source
	}

	if client.offlineStoreDSN != "" {
		if err := hologres.RegisterHologres(offlineStoreName, client.offlineStoreDSN); err != nil {
			return nil, err
		}
	}

	if err := client.LoadMetadata(context.Background()); err != nil {
		return nil, err
	}

	if client.loopLoadData {
		go client.loopLoadMetadata()
	}

	return &client, nil
}

// NewFeatureStoreClientFromConfig creates a client from a loaded configuration. Options
// are applied after the configuration.
func NewFeatureStoreClientFromConfig(cfg *config.Config, opts ...ClientOption) (*FeatureStoreClient, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	options := []ClientOption{
		WithDomain(cfg.Domain),
		WithApiKey(cfg.ApiKey),
		WithLoopData(cfg.LoopLoadData),
		WithRefreshInterval(cfg.RefreshInterval),
		WithOfflineStoreDSN(cfg.OfflineStoreDSN),
		WithOnlineFeaturestoreLogin(cfg.OnlineUser, cfg.OnlinePassword),
		WithOnlineDefault(cfg.OnlineDefault),
	}
	if len(cfg.Featurestores) > 0 {
		options = append(options, WithFeaturestores(cfg.Featurestores...))
	}
	if cfg.DefaultFeaturestore != "" {
		options = append(options, WithDefaultFeaturestore(cfg.DefaultFeaturestore))
	}
	if cfg.Pai.InstanceId != "" {
		options = append(options, WithPaiMetadata(cfg.Pai.RegionId, cfg.Pai.AccessKeyId, cfg.Pai.AccessKeySecret, cfg.Pai.InstanceId),
			WithToken(cfg.Pai.Token))
	}

	return NewFeatureStoreClient(cfg.ProjectName, append(options, opts...)...)
}

func (c *FeatureStoreClient) newMetadataSource() (api.MetadataSource, error) {
	if c.pai != nil {
		cfg := api.NewConfiguration(c.pai.regionId, c.pai.accessKeyId, c.pai.accessKeySecret, c.token, c.projectName)
		cfg.InstanceId = c.pai.instanceId
		if c.domain != "" {
			cfg.SetDomain(c.domain)
		}
		return api.NewPaiMetadataApiService(cfg)
	}

	if c.domain == "" {
		return nil, errors.New("metadata service domain is empty")
	}
	cfg := api.NewConfiguration("", "", "", "", c.projectName)
	cfg.SetDomain(c.domain)
	cfg.ApiKey = c.apiKey

	return api.NewAPIClient(cfg).MetadataApi, nil
}

// GetFeaturestoreMetadata returns the cached metadata of a featurestore; an empty
// name selects the default featurestore.
func (c *FeatureStoreClient) GetFeaturestoreMetadata(featurestore string) (*domain.FeaturestoreMetadata, error) {
	if featurestore == "" {
		featurestore = c.defaultFeaturestore
	}

	c.mu.RLock()
	metadata, ok := c.metadataMap[featurestore]
	c.mu.RUnlock()
	if ok {
		return metadata, nil
	}

	return nil, &errdefs.FeaturestoreNotFoundError{Name: featurestore}
}

func (c *FeatureStoreClient) GetDefaultFeaturestore() string {
	return c.defaultFeaturestore
}

// ReadFeatureGroup starts a read of version 1 of a feature group of the default featurestore.
func (c *FeatureStoreClient) ReadFeatureGroup(name string) *ReadFeatureGroupOp {
	return NewReadFeatureGroupOp(name).SetClient(c)
}

func (c *FeatureStoreClient) SetJobGroup(groupId, description string) {
	c.jobGroup.Store(JobGroup{GroupId: groupId, Description: description})
	c.logInfo("event=SetJobGroup\tgroup=%s\tdescription=%s", groupId, description)
}

func (c *FeatureStoreClient) JobGroup() JobGroup {
	if jobGroup, ok := c.jobGroup.Load().(JobGroup); ok {
		return jobGroup
	}
	return JobGroup{}
}

func (c *FeatureStoreClient) logInfo(format string, v ...interface{}) {
	if c.Logger != nil {
		c.Logger.Printf(format, v...)
	}
}

func (c *FeatureStoreClient) logError(err error) {
	if c.ErrorLogger != nil {
		c.ErrorLogger.Printf("%s", err.Error())
		return
	}

	if c.Logger != nil {
		c.Logger.Printf("%s", err.Error())
	}
}

// LoadMetadata loads the metadata of the featurestores from the metadata service.
// The cache is only replaced when every featurestore loaded.
func (c *FeatureStoreClient) LoadMetadata(ctx context.Context) error {
	featurestores := c.featurestores
	if len(featurestores) == 0 {
		names, err := c.metadataSource.ListFeaturestores(ctx)
		if err != nil {
			c.logError(fmt.Errorf("list featurestores error, err=%v", err))
			return err
		}
		featurestores = names
	}

	metadataMap := make(map[string]*domain.FeaturestoreMetadata, len(featurestores))
	for _, name := range featurestores {
		dto, err := c.metadataSource.GetFeaturestoreMetadata(ctx, name)
		if err != nil {
			c.logError(fmt.Errorf("get featurestore metadata error, featurestore:%s, err=%v", name, err))
			return err
		}

		metadata := domain.NewFeaturestoreMetadata(dto)
		if metadata.FeaturestoreName == "" {
			metadata.FeaturestoreName = name
		}
		metadataMap[name] = metadata
	}

	if len(metadataMap) > 0 {
		c.mu.Lock()
		c.metadataMap = metadataMap
		c.mu.Unlock()
		c.logInfo("event=LoadMetadata\tfeaturestores=%d", len(metadataMap))
	}

	return nil
}

func (c *FeatureStoreClient) loopLoadMetadata() {
	ticker := time.NewTicker(c.refreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.LoadMetadata(context.Background())
		case <-c.closeCh:
			return
		}
	}
}

// Close stops the metadata refresh loop.
func (c *FeatureStoreClient) Close() {
	c.closeOnce.Do(func() {
		close(c.closeCh)
	})
}
