package tablestore

import (
	"fmt"
	"sync"

	"github.com/aliyun/aliyun-tablestore-go-sdk/tablestore"
)

type TableStoreClient struct {
	Name      string
	signature string
	client    *tablestore.TableStoreClient
}

var tablestoreInstances sync.Map

// newClient creates a client, using the sts token when one is given.
func newClient(endpoint, instanceName, accessKeyId, accessKeySecret, securityToken string) *tablestore.TableStoreClient {
	if securityToken != "" {
		return tablestore.NewClientWithConfig(endpoint, instanceName, accessKeyId, accessKeySecret, securityToken, nil)
	}
	return tablestore.NewClient(endpoint, instanceName, accessKeyId, accessKeySecret)
}

// RegisterTableStoreClient registers the online store of a featurestore. The client is
// created once per endpoint, instance and credentials and replaced when they change.
func RegisterTableStoreClient(name, endpoint, instanceName, accessKeyId, accessKeySecret, securityToken string) *TableStoreClient {
	signature := fmt.Sprintf("%s|%s|%s|%s|%s", endpoint, instanceName, accessKeyId, accessKeySecret, securityToken)
	if value, ok := tablestoreInstances.Load(name); ok {
		if c := value.(*TableStoreClient); c.signature == signature {
			return c
		}
	}

	c := &TableStoreClient{
		Name:      name,
		signature: signature,
		client:    newClient(endpoint, instanceName, accessKeyId, accessKeySecret, securityToken),
	}
	tablestoreInstances.Store(name, c)
	return c
}

func GetTableStoreClient(name string) (*TableStoreClient, error) {
	value, ok := tablestoreInstances.Load(name)
	if !ok {
		return nil, fmt.Errorf("TableStoreClient not found, name:%s", name)
	}

	return value.(*TableStoreClient), nil
}

func RemoveTableStoreClient(name string) {
	tablestoreInstances.Delete(name)
}

func (o *TableStoreClient) GetClient() *tablestore.TableStoreClient {
	return o.client
}
