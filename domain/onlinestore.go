package domain

type OnlineStore interface {
	GetTableName(featureGroup FeatureGroup) string
	GetDatasourceName() string
	GetType() string
	GetConnector() *StorageConnector
}
