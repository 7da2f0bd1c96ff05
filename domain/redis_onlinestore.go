package domain

import (
	"fmt"

	"github.com/logicalclocks/featurestore-go-sdk/constants"
)

type RedisOnlineStore struct {
	*StorageConnector
	featurestore string
}

// GetTableName returns the key prefix of the feature group hashes.
func (s *RedisOnlineStore) GetTableName(featureGroup FeatureGroup) string {
	return fmt.Sprintf("%s:%s:", s.featurestore, featureGroup.GetTableName())
}

func (s *RedisOnlineStore) GetDatasourceName() string {
	return s.featurestore
}

func (s *RedisOnlineStore) GetType() string {
	return constants.Datasource_Type_Redis
}

func (s *RedisOnlineStore) GetConnector() *StorageConnector {
	return s.StorageConnector
}
