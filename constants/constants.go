package constants

import "strings"

type FSType int

const (
	FS_INT32 FSType = iota + 1 // int32
	FS_INT64                   // int64
	FS_FLOAT
	FS_DOUBLE
	FS_STRING
	FS_BOOLEAN
	FS_TIMESTAMP
)

// ParseFSType maps the SQL type names used in featurestore metadata to FSType,
// ignoring case. Unknown names fall back to FS_STRING, so DECIMAL keeps its exact text.
func ParseFSType(t string) FSType {
	switch strings.ToUpper(strings.TrimSpace(t)) {
	case "INT", "INTEGER", "INT32":
		return FS_INT32
	case "BIGINT", "INT64":
		return FS_INT64
	case "FLOAT":
		return FS_FLOAT
	case "DOUBLE":
		return FS_DOUBLE
	case "BOOLEAN":
		return FS_BOOLEAN
	case "TIMESTAMP", "DATE":
		return FS_TIMESTAMP
	default:
		return FS_STRING
	}
}

const (
	Featuregroup_Type_OnDemand = "ON_DEMAND_FEATURE_GROUP"
	Featuregroup_Type_Cached   = "CACHED_FEATURE_GROUP"
)

const (
	Storage_Connector_Type_JDBC   = "JDBC"
	Storage_Connector_Type_S3     = "S3"
	Storage_Connector_Type_HopsFS = "HOPSFS"
)

const (
	Datasource_Type_Hologres   = "hologres"
	Datasource_Type_Postgres   = "postgres"
	Datasource_Type_MySQL      = "mysql"
	Datasource_Type_Redis      = "redis"
	Datasource_Type_TableStore = "tablestore"
)

const (
	Featurestore_Suffix = "_featurestore"

	Job_Group_Fetch_Featuregroup = "Fetching Feature Group"
)
