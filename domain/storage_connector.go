package domain

import (
	"strings"

	"github.com/logicalclocks/featurestore-go-sdk/api"
	"github.com/logicalclocks/featurestore-go-sdk/constants"
)

type StorageConnector struct {
	*api.StorageConnector
	arguments map[string]string
}

func NewStorageConnector(connector *api.StorageConnector) *StorageConnector {
	return &StorageConnector{
		StorageConnector: connector,
		arguments:        ParseArguments(connector.Arguments),
	}
}

func (c *StorageConnector) IsJDBC() bool {
	return strings.EqualFold(c.Type, constants.Storage_Connector_Type_JDBC)
}

// GetArguments returns a copy of the parsed connector arguments.
func (c *StorageConnector) GetArguments() map[string]string {
	args := make(map[string]string, len(c.arguments))
	for k, v := range c.arguments {
		args[k] = v
	}
	return args
}

func (c *StorageConnector) GetArgument(key string) string {
	return c.arguments[key]
}

// ParseArguments parses "k1=v1,k2=v2". Entries without '=' are kept with an empty value.
func ParseArguments(arguments string) map[string]string {
	args := make(map[string]string)
	for _, item := range strings.Split(arguments, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		kv := strings.SplitN(item, "=", 2)
		key := strings.TrimSpace(kv[0])
		if len(kv) == 2 {
			args[key] = strings.TrimSpace(kv[1])
		} else {
			args[key] = ""
		}
	}
	return args
}
