package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const envPrefix = "FEATURESTORE"

type Config struct {
	ProjectName         string        `mapstructure:"project_name"`
	Domain              string        `mapstructure:"domain"`
	ApiKey              string        `mapstructure:"api_key"`
	Featurestores       []string      `mapstructure:"featurestores"`
	DefaultFeaturestore string        `mapstructure:"default_featurestore"`
	LoopLoadData        bool          `mapstructure:"loop_load_data"`
	RefreshInterval     time.Duration `mapstructure:"refresh_interval"`
	OfflineStoreDSN     string        `mapstructure:"offline_store_dsn"`
	OnlineUser          string        `mapstructure:"online_user"`
	OnlinePassword      string        `mapstructure:"online_password"`
	OnlineDefault       bool          `mapstructure:"online_default"`
	LogLevel            string        `mapstructure:"log_level"`
	Pai                 PaiConfig     `mapstructure:"pai"`
}

// PaiConfig selects PAI-FeatureStore as the metadata source when InstanceId is set.
type PaiConfig struct {
	RegionId        string `mapstructure:"region_id"`
	AccessKeyId     string `mapstructure:"access_key_id"`
	AccessKeySecret string `mapstructure:"access_key_secret"`
	InstanceId      string `mapstructure:"instance_id"`
	Token           string `mapstructure:"token"`
}

// Load reads the configuration file at path, if any, and overlays FEATURESTORE_* environment variables.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetDefault("loop_load_data", true)
	v.SetDefault("refresh_interval", time.Minute)
	v.SetDefault("log_level", "info")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindEnvVars(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file:%s error, err=%w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config error, err=%w", err)
	}

	return &cfg, nil
}

// Unmarshal only sees environment variables of bound keys.
func bindEnvVars(v *viper.Viper) {
	v.BindEnv("project_name")
	v.BindEnv("domain")
	v.BindEnv("api_key")
	v.BindEnv("featurestores")
	v.BindEnv("default_featurestore")
	v.BindEnv("loop_load_data")
	v.BindEnv("refresh_interval")
	v.BindEnv("offline_store_dsn")
	v.BindEnv("online_user")
	v.BindEnv("online_password")
	v.BindEnv("online_default")
	v.BindEnv("log_level")

	// PAI metadata source
	v.BindEnv("pai.region_id")
	v.BindEnv("pai.access_key_id")
	v.BindEnv("pai.access_key_secret")
	v.BindEnv("pai.instance_id")
	v.BindEnv("pai.token")
}

func (c *Config) Validate() error {
	if c.ProjectName == "" {
		return errors.New("project_name is empty")
	}
	if c.Domain == "" && c.Pai.InstanceId == "" {
		return errors.New("one of domain and pai.instance_id must be set")
	}
	return nil
}
