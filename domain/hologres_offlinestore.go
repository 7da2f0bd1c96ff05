package domain

import "fmt"

// HologresOfflineStore keeps one schema per featurestore and one table per feature group version.
type HologresOfflineStore struct {
	Featurestore string
}

func (s *HologresOfflineStore) GetSchemaName() string {
	return s.Featurestore
}

func (s *HologresOfflineStore) GetTableName(featureGroup FeatureGroup) string {
	return featureGroup.GetTableName()
}

// GetQualifiedTableName returns "schema.table".
func (s *HologresOfflineStore) GetQualifiedTableName(featureGroup FeatureGroup) string {
	return fmt.Sprintf("%s.%s", s.GetSchemaName(), s.GetTableName(featureGroup))
}
