package domain

import (
	"fmt"

	"github.com/logicalclocks/featurestore-go-sdk/api"
	"github.com/logicalclocks/featurestore-go-sdk/constants"
)

// FeatureGroup is implemented by *OnDemandFeatureGroup and *CachedFeatureGroup only.
// The variant is fixed when the metadata is parsed.
type FeatureGroup interface {
	GetName() string
	GetVersion() int
	GetType() string
	GetTableName() string
	GetFeatures() []*api.Feature
	GetFeatureNames() []string
	GetPrimaryKey() string

	featureGroup()
}

func NewFeatureGroup(fg *api.Featuregroup) FeatureGroup {
	switch fg.Type {
	case constants.Featuregroup_Type_OnDemand, "onDemandFeaturegroupDTO":
		return NewOnDemandFeatureGroup(fg)
	default:
		return NewCachedFeatureGroup(fg)
	}
}

// TableName is the physical table of a feature group version.
func TableName(name string, version int) string {
	return fmt.Sprintf("%s_%d", name, version)
}

type baseFeatureGroup struct {
	*api.Featuregroup
	featureNames []string
	primaryKey   string
}

func newBaseFeatureGroup(fg *api.Featuregroup) baseFeatureGroup {
	base := baseFeatureGroup{Featuregroup: fg}
	for _, feature := range fg.Features {
		if feature == nil {
			continue
		}
		if feature.Primary && base.primaryKey == "" {
			base.primaryKey = feature.Name
		}
		base.featureNames = append(base.featureNames, feature.Name)
	}
	return base
}

func (f *baseFeatureGroup) GetName() string {
	return f.Name
}

func (f *baseFeatureGroup) GetVersion() int {
	return f.Version
}

func (f *baseFeatureGroup) GetTableName() string {
	return TableName(f.Name, f.Version)
}

func (f *baseFeatureGroup) GetFeatures() []*api.Feature {
	return f.Features
}

func (f *baseFeatureGroup) GetFeatureNames() []string {
	return f.featureNames
}

// GetPrimaryKey returns the first primary key feature, or the first feature when none is flagged.
func (f *baseFeatureGroup) GetPrimaryKey() string {
	if f.primaryKey == "" && len(f.featureNames) > 0 {
		return f.featureNames[0]
	}
	return f.primaryKey
}

func (f *baseFeatureGroup) featureGroup() {}

// OnDemandFeatureGroup is computed at read time by a SQL query against an external database.
type OnDemandFeatureGroup struct {
	baseFeatureGroup
}

func NewOnDemandFeatureGroup(fg *api.Featuregroup) *OnDemandFeatureGroup {
	return &OnDemandFeatureGroup{baseFeatureGroup: newBaseFeatureGroup(fg)}
}

func (f *OnDemandFeatureGroup) GetType() string {
	return constants.Featuregroup_Type_OnDemand
}

func (f *OnDemandFeatureGroup) GetJdbcConnectorName() string {
	return f.JdbcConnectorName
}

func (f *OnDemandFeatureGroup) GetQuery() string {
	return f.Query
}

// CachedFeatureGroup is materialized in the offline store and, if enabled, the online store.
type CachedFeatureGroup struct {
	baseFeatureGroup
}

func NewCachedFeatureGroup(fg *api.Featuregroup) *CachedFeatureGroup {
	return &CachedFeatureGroup{baseFeatureGroup: newBaseFeatureGroup(fg)}
}

func (f *CachedFeatureGroup) GetType() string {
	return constants.Featuregroup_Type_Cached
}

func (f *CachedFeatureGroup) IsOnlineEnabled() bool {
	return f.OnlineEnabled
}
