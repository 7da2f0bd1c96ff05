package domain

import "github.com/logicalclocks/featurestore-go-sdk/constants"

type MysqlOnlineStore struct {
	*StorageConnector
	database string
}

func (s *MysqlOnlineStore) GetTableName(featureGroup FeatureGroup) string {
	return featureGroup.GetTableName()
}

// GetDatasourceName is the online database, which defaults to the connector name.
func (s *MysqlOnlineStore) GetDatasourceName() string {
	if s.database != "" {
		return s.database
	}
	if s.StorageConnector != nil {
		return s.Name
	}
	return ""
}

func (s *MysqlOnlineStore) GetType() string {
	return constants.Datasource_Type_MySQL
}

func (s *MysqlOnlineStore) GetConnector() *StorageConnector {
	return s.StorageConnector
}
