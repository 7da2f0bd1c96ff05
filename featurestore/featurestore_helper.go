package featurestore

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
	"github.com/go-sql-driver/mysql"
	"github.com/logicalclocks/featurestore-go-sdk/constants"
	"github.com/logicalclocks/featurestore-go-sdk/dao"
	"github.com/logicalclocks/featurestore-go-sdk/datasource/jdbc"
	fsmysql "github.com/logicalclocks/featurestore-go-sdk/datasource/mysql"
	fsredis "github.com/logicalclocks/featurestore-go-sdk/datasource/redis"
	"github.com/logicalclocks/featurestore-go-sdk/datasource/tablestore"
	"github.com/logicalclocks/featurestore-go-sdk/domain"
	"github.com/logicalclocks/featurestore-go-sdk/errdefs"
)

// featurestoreHelper does the storage work of a read.
type featurestoreHelper interface {
	GetJDBCURLFromConnector(connector *domain.StorageConnector, jdbcArguments map[string]string) (jdbc.ConnectionURL, error)
	RegisterCustomJDBCDialects()
	GetOnDemandFeatureGroup(ctx context.Context, featureGroup *domain.OnDemandFeatureGroup, url jdbc.ConnectionURL, featurestore string) (dao.Dataset, error)
	GetCachedFeatureGroup(ctx context.Context, name, featurestore string, version int, online bool) (dao.Dataset, error)
}

type defaultFeaturestoreHelper struct {
	client *FeatureStoreClient
}

func (h *defaultFeaturestoreHelper) GetJDBCURLFromConnector(connector *domain.StorageConnector, jdbcArguments map[string]string) (jdbc.ConnectionURL, error) {
	return jdbc.BuildURL(connector.ConnectionString, connector.GetArguments(), jdbcArguments)
}

func (h *defaultFeaturestoreHelper) RegisterCustomJDBCDialects() {
	jdbc.RegisterCustomDialects()
}

func (h *defaultFeaturestoreHelper) GetOnDemandFeatureGroup(ctx context.Context, featureGroup *domain.OnDemandFeatureGroup,
	url jdbc.ConnectionURL, featurestore string) (dao.Dataset, error) {
	db, err := jdbc.GetDB(url)
	if err != nil {
		return nil, err
	}

	return dao.ReadOnDemandTable(db, url.DriverName, featureGroup, featurestore), nil
}

func (h *defaultFeaturestoreHelper) GetCachedFeatureGroup(ctx context.Context, name, featurestore string, version int,
	online bool) (dao.Dataset, error) {
	metadata, err := h.client.GetFeaturestoreMetadata(featurestore)
	if err != nil {
		return nil, err
	}

	fg, err := metadata.FindFeatureGroup(name, version)
	if err != nil {
		return nil, err
	}
	featureGroup, ok := fg.(*domain.CachedFeatureGroup)
	if !ok {
		return nil, fmt.Errorf("featuregroup:%s is not a cached featuregroup, type:%s", name, fg.GetType())
	}

	var config dao.DaoConfig
	if online {
		config, err = h.onlineDaoConfig(metadata, featureGroup)
	} else {
		config, err = h.offlineDaoConfig(metadata, featureGroup)
	}
	if err != nil {
		return nil, err
	}

	featureGroupDao, err := dao.NewFeatureGroupDao(config)
	if err != nil {
		return nil, err
	}

	return featureGroupDao.Scan(), nil
}

func newDaoConfig(featureGroup domain.FeatureGroup) dao.DaoConfig {
	return dao.DaoConfig{
		PrimaryKeyField: featureGroup.GetPrimaryKey(),
		Fields:          featureGroup.GetFeatureNames(),
		FieldTypeMap:    dao.FieldTypeMapOf(featureGroup),
	}
}

func (h *defaultFeaturestoreHelper) offlineDaoConfig(metadata *domain.FeaturestoreMetadata, featureGroup *domain.CachedFeatureGroup) (dao.DaoConfig, error) {
	if h.client.offlineStoreDSN == "" {
		return dao.DaoConfig{}, errdefs.ErrHiveNotEnabled
	}

	store := domain.HologresOfflineStore{Featurestore: metadata.GetFeaturestoreName()}
	config := newDaoConfig(featureGroup)
	config.DatasourceType = constants.Datasource_Type_Hologres
	config.HologresName = offlineStoreName
	config.HologresSchemaName = store.GetSchemaName()
	config.HologresTableName = store.GetTableName(featureGroup)

	return config, nil
}

func (h *defaultFeaturestoreHelper) onlineDaoConfig(metadata *domain.FeaturestoreMetadata, featureGroup *domain.CachedFeatureGroup) (dao.DaoConfig, error) {
	onlineStore := metadata.GetOnlineStore()
	if !metadata.OnlineEnabled || onlineStore == nil {
		return dao.DaoConfig{}, fmt.Errorf("featurestore:%s, %w", metadata.GetFeaturestoreName(), errdefs.ErrOnlineFeaturestoreNotEnabled)
	}
	if !featureGroup.IsOnlineEnabled() {
		return dao.DaoConfig{}, fmt.Errorf("featuregroup:%s, %w", featureGroup.GetName(), errdefs.ErrOnlineFeaturestoreNotEnabled)
	}

	connector := onlineStore.GetConnector()
	if connector == nil {
		return dao.DaoConfig{}, &errdefs.StorageConnectorNotFoundError{Name: metadata.GetFeaturestoreName() + "_online"}
	}
	user, password, err := h.onlineCredentials(connector)
	if err != nil {
		return dao.DaoConfig{}, err
	}

	name := metadata.GetFeaturestoreName()
	config := newDaoConfig(featureGroup)
	config.DatasourceType = onlineStore.GetType()

	switch onlineStore.GetType() {
	case constants.Datasource_Type_Redis:
		opts, err := redis.ParseURL(connector.ConnectionString)
		if err != nil {
			return dao.DaoConfig{}, fmt.Errorf("invalid redis connection string:%s, err=%w", connector.ConnectionString, err)
		}
		opts.Username = user
		opts.Password = password
		fsredis.RegisterRedis(name, opts)

		config.RedisName = name
		config.RedisKeyPrefix = onlineStore.GetTableName(featureGroup)
	case constants.Datasource_Type_TableStore:
		instance := connector.GetArgument("instance")
		if instance == "" {
			instance = onlineStore.GetDatasourceName()
		}
		tablestore.RegisterTableStoreClient(name, connector.ConnectionString, instance, user, password, connector.GetArgument("token"))

		config.TableStoreName = name
		config.TableStoreTableName = onlineStore.GetTableName(featureGroup)
	default:
		url, err := jdbc.BuildURL(connector.ConnectionString, nil, map[string]string{"user": user, "password": password})
		if err != nil {
			return dao.DaoConfig{}, err
		}
		cfg, err := mysql.ParseDSN(url.DSN)
		if err != nil {
			return dao.DaoConfig{}, err
		}
		if cfg.DBName == "" {
			cfg.DBName = onlineStore.GetDatasourceName()
		}
		if _, err := fsmysql.RegisterMySQL(name, cfg); err != nil {
			return dao.DaoConfig{}, err
		}

		config.DatasourceType = constants.Datasource_Type_MySQL
		config.MySQLName = name
		config.MySQLTableName = onlineStore.GetTableName(featureGroup)
	}

	return config, nil
}

// onlineCredentials reads the login of the online featurestore from the connector
// arguments. Credentials set on the client take precedence.
func (h *defaultFeaturestoreHelper) onlineCredentials(connector *domain.StorageConnector) (string, string, error) {
	user := connector.GetArgument("user")
	if h.client.onlineUser != "" {
		user = h.client.onlineUser
	}
	password := connector.GetArgument("password")
	if h.client.onlinePassword != "" {
		password = h.client.onlinePassword
	}

	if user == "" {
		return "", "", errdefs.ErrOnlineFeaturestoreUserNotFound
	}
	if password == "" {
		return "", "", errdefs.ErrOnlineFeaturestorePasswordNotFound
	}
	return user, password, nil
}
