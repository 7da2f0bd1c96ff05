package api

type Featurestore struct {
	FeaturestoreId         int    `json:"featurestoreId"`
	FeaturestoreName       string `json:"featurestoreName"`
	ProjectId              int    `json:"projectId,omitempty"`
	ProjectName            string `json:"projectName,omitempty"`
	Description            string `json:"featurestoreDescription,omitempty"`
	OnlineEnabled          bool   `json:"onlineEnabled"`
	OnlineFeaturestoreType string `json:"onlineFeaturestoreType,omitempty"`
	OnlineFeaturestoreName string `json:"onlineFeaturestoreName,omitempty"`
}

type Feature struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
	Primary     bool   `json:"primary,omitempty"`
	Partition   bool   `json:"partition,omitempty"`
}

type Featuregroup struct {
	Id               int        `json:"id"`
	Name             string     `json:"name"`
	Version          int        `json:"version"`
	Type             string     `json:"type"`
	Description      string     `json:"description,omitempty"`
	FeaturestoreName string     `json:"featurestoreName,omitempty"`
	Features         []*Feature `json:"features"`

	// cached feature groups
	OnlineEnabled bool `json:"onlineEnabled,omitempty"`

	// on-demand feature groups
	JdbcConnectorName string `json:"jdbcConnectorName,omitempty"`
	Query             string `json:"query,omitempty"`
}

type StorageConnector struct {
	Id               int    `json:"id"`
	Name             string `json:"name"`
	Type             string `json:"storageConnectorType"`
	Description      string `json:"description,omitempty"`
	ConnectionString string `json:"connectionString,omitempty"`
	// Arguments is a comma separated list of key=value pairs
	Arguments string `json:"arguments,omitempty"`
}

type FeaturestoreMetadata struct {
	Featurestore                *Featurestore       `json:"featurestore"`
	Featuregroups               []*Featuregroup     `json:"featuregroups"`
	StorageConnectors           []*StorageConnector `json:"storageConnectors"`
	OnlineFeaturestoreConnector *StorageConnector   `json:"onlineFeaturestoreConnector,omitempty"`
}
