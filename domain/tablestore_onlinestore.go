package domain

import (
	"fmt"

	"github.com/logicalclocks/featurestore-go-sdk/constants"
)

type TableStoreOnlineStore struct {
	*StorageConnector
	featurestore string
}

func (s *TableStoreOnlineStore) GetTableName(featureGroup FeatureGroup) string {
	return fmt.Sprintf("%s_%s", s.featurestore, featureGroup.GetTableName())
}

func (s *TableStoreOnlineStore) GetDatasourceName() string {
	return s.featurestore
}

func (s *TableStoreOnlineStore) GetType() string {
	return constants.Datasource_Type_TableStore
}

func (s *TableStoreOnlineStore) GetConnector() *StorageConnector {
	return s.StorageConnector
}
