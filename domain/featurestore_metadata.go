package domain

import (
	"github.com/logicalclocks/featurestore-go-sdk/api"
	"github.com/logicalclocks/featurestore-go-sdk/constants"
	"github.com/logicalclocks/featurestore-go-sdk/errdefs"
)

// FeaturestoreMetadata is the parsed, read-only metadata of one featurestore.
type FeaturestoreMetadata struct {
	*api.Featurestore
	featureGroups     []FeatureGroup
	storageConnectors []*StorageConnector
	onlineConnector   *StorageConnector
	onlineStore       OnlineStore
}

func NewFeaturestoreMetadata(m *api.FeaturestoreMetadata) *FeaturestoreMetadata {
	metadata := FeaturestoreMetadata{
		Featurestore: m.Featurestore,
	}
	if metadata.Featurestore == nil {
		metadata.Featurestore = &api.Featurestore{}
	}

	for _, fg := range m.Featuregroups {
		if fg == nil {
			continue
		}
		metadata.featureGroups = append(metadata.featureGroups, NewFeatureGroup(fg))
	}
	for _, connector := range m.StorageConnectors {
		if connector == nil {
			continue
		}
		metadata.storageConnectors = append(metadata.storageConnectors, NewStorageConnector(connector))
	}

	if m.OnlineFeaturestoreConnector != nil {
		metadata.onlineConnector = NewStorageConnector(m.OnlineFeaturestoreConnector)
	}
	if metadata.OnlineEnabled {
		metadata.onlineStore = NewOnlineStore(metadata.Featurestore, metadata.onlineConnector)
	}

	return &metadata
}

func (m *FeaturestoreMetadata) GetFeaturestoreName() string {
	return m.FeaturestoreName
}

func (m *FeaturestoreMetadata) GetFeatureGroups() []FeatureGroup {
	return m.featureGroups
}

func (m *FeaturestoreMetadata) GetStorageConnectors() []*StorageConnector {
	return m.storageConnectors
}

// GetOnlineConnector returns the connector of the online featurestore, nil if there is none.
func (m *FeaturestoreMetadata) GetOnlineConnector() *StorageConnector {
	return m.onlineConnector
}

// GetOnlineStore returns nil when the online featurestore is disabled.
func (m *FeaturestoreMetadata) GetOnlineStore() OnlineStore {
	return m.onlineStore
}

func (m *FeaturestoreMetadata) FindFeatureGroup(name string, version int) (FeatureGroup, error) {
	return FindFeatureGroup(m.featureGroups, name, version)
}

func (m *FeaturestoreMetadata) FindStorageConnector(name string) (*StorageConnector, error) {
	return FindStorageConnector(m.storageConnectors, name)
}

// LatestVersion returns the highest version of the named feature group.
func (m *FeaturestoreMetadata) LatestVersion(name string) (int, error) {
	latest := 0
	for _, fg := range m.featureGroups {
		if fg.GetName() == name && fg.GetVersion() > latest {
			latest = fg.GetVersion()
		}
	}
	if latest == 0 {
		return 0, &errdefs.FeatureGroupNotFoundError{Name: name}
	}
	return latest, nil
}

func FindFeatureGroup(featureGroups []FeatureGroup, name string, version int) (FeatureGroup, error) {
	for _, fg := range featureGroups {
		if fg.GetName() == name && fg.GetVersion() == version {
			return fg, nil
		}
	}

	return nil, &errdefs.FeatureGroupNotFoundError{Name: name, Version: version}
}

func FindStorageConnector(connectors []*StorageConnector, name string) (*StorageConnector, error) {
	for _, connector := range connectors {
		if connector.Name == name {
			return connector, nil
		}
	}

	return nil, &errdefs.StorageConnectorNotFoundError{Name: name}
}

func NewOnlineStore(fs *api.Featurestore, connector *StorageConnector) OnlineStore {
	switch fs.OnlineFeaturestoreType {
	case constants.Datasource_Type_Redis:
		return &RedisOnlineStore{StorageConnector: connector, featurestore: fs.FeaturestoreName}
	case constants.Datasource_Type_TableStore:
		return &TableStoreOnlineStore{StorageConnector: connector, featurestore: fs.FeaturestoreName}
	default:
		return &MysqlOnlineStore{StorageConnector: connector, database: fs.OnlineFeaturestoreName}
	}
}
