package tablestore

import (
	"testing"

	"fortio.org/assert"
)

func TestRegisterTableStoreClient(t *testing.T) {
	defer RemoveTableStoreClient("ots_test")

	endpoint := "https://ots-demo.cn-hangzhou.vpc.tablestore.aliyuncs.com"
	c1 := RegisterTableStoreClient("ots_test", endpoint, "ots-demo", "ak", "sk", "")
	c2 := RegisterTableStoreClient("ots_test", endpoint, "ots-demo", "ak", "sk", "")
	assert.True(t, c1 == c2)
	assert.True(t, c1.GetClient() == c2.GetClient())

	c3 := RegisterTableStoreClient("ots_test", endpoint, "ots-demo", "ak", "sk2", "")
	assert.True(t, c1 != c3)

	c4 := RegisterTableStoreClient("ots_test", endpoint, "ots-demo", "ak", "sk2", "sts-token")
	assert.True(t, c3 != c4)

	current, err := GetTableStoreClient("ots_test")
	assert.NoError(t, err)
	assert.True(t, current == c4)
}

func TestGetTableStoreClientNotFound(t *testing.T) {
	_, err := GetTableStoreClient("missing")
	assert.Error(t, err)
}
