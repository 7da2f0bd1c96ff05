package api

import "fmt"

type Configuration struct {
	regionId        string
	AccessKeyId     string
	AccessKeySecret string
	Token           string
	// InstanceId is the PAI-FeatureStore instance, only used by the PAI metadata source
	InstanceId string
	// ApiKey authenticates against the REST metadata service
	ApiKey      string
	ProjectName string
	UserAgent   string
	domain      string
}

func NewConfiguration(regionId, accessKeyId, accessKeySecret, token, projectName string) *Configuration {
	cfg := &Configuration{
		UserAgent:       "FeatureStore/1.0.0/go",
		regionId:        regionId,
		ProjectName:     projectName,
		AccessKeyId:     accessKeyId,
		AccessKeySecret: accessKeySecret,
		Token:           token,
	}
	return cfg
}

func (c *Configuration) SetDomain(domain string) {
	c.domain = domain
}

func (c *Configuration) GetRegionId() string {
	return c.regionId
}

// GetDomain returns the metadata service host. Without a custom domain the PAI
// vpc endpoint of the region is used.
func (c *Configuration) GetDomain() string {
	if c.domain == "" && c.regionId != "" {
		c.domain = fmt.Sprintf("paifeaturestore-vpc.%s.aliyuncs.com", c.regionId)
	}

	return c.domain
}
