package dao

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-redis/redis/v8"
	"github.com/logicalclocks/featurestore-go-sdk/constants"
	fsredis "github.com/logicalclocks/featurestore-go-sdk/datasource/redis"
	"github.com/logicalclocks/featurestore-go-sdk/utils"
)

const redisScanCount = 100

// FeatureGroupRedisDao reads feature group rows stored as hashes keyed
// "<prefix><primary key>".
type FeatureGroupRedisDao struct {
	client          *redis.Client
	keyPrefix       string
	primaryKeyField string
	fields          []string
	fieldTypeMap    map[string]constants.FSType
}

func NewFeatureGroupRedisDao(config DaoConfig) (*FeatureGroupRedisDao, error) {
	r, err := fsredis.GetRedis(config.RedisName)
	if err != nil {
		return nil, err
	}

	return &FeatureGroupRedisDao{
		client:          r.GetClient(),
		keyPrefix:       config.RedisKeyPrefix,
		primaryKeyField: config.PrimaryKeyField,
		fields:          config.Fields,
		fieldTypeMap:    config.FieldTypeMap,
	}, nil
}

func (d *FeatureGroupRedisDao) Scan() Dataset {
	return &redisDataset{dao: d}
}

type redisDataset struct {
	dao *FeatureGroupRedisDao
}

func (d *redisDataset) Columns() []string {
	return d.dao.fields
}

func (d *redisDataset) Where(filter string) (Dataset, error) {
	return newFilteredDataset(d, filter)
}

func (d *redisDataset) Collect(ctx context.Context) ([]map[string]interface{}, error) {
	var (
		result []map[string]interface{}
		cursor uint64
	)
	for {
		keys, next, err := d.dao.client.Scan(ctx, cursor, d.dao.keyPrefix+"*", redisScanCount).Result()
		if err != nil {
			return nil, err
		}

		if len(keys) > 0 {
			rows, err := d.fetch(ctx, keys)
			if err != nil {
				return nil, err
			}
			result = append(result, rows...)
		}

		cursor = next
		if cursor == 0 {
			break
		}
	}

	return result, nil
}

func (d *redisDataset) fetch(ctx context.Context, keys []string) ([]map[string]interface{}, error) {
	pipe := d.dao.client.Pipeline()
	cmds := make([]*redis.StringStringMapCmd, len(keys))
	for i, key := range keys {
		cmds[i] = pipe.HGetAll(ctx, key)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, err
	}

	rows := make([]map[string]interface{}, 0, len(keys))
	for i, cmd := range cmds {
		values := cmd.Val()
		if len(values) == 0 {
			continue
		}
		row := make(map[string]interface{}, len(values)+1)
		for field, value := range values {
			v, err := utils.ConvertValue(value, d.fieldType(field))
			if err != nil {
				return nil, fmt.Errorf("convert column:%s of key:%s error, err=%w", field, keys[i], err)
			}
			row[field] = v
		}
		if d.dao.primaryKeyField != "" {
			pk := strings.TrimPrefix(keys[i], d.dao.keyPrefix)
			v, err := utils.ConvertValue(pk, d.fieldType(d.dao.primaryKeyField))
			if err != nil {
				return nil, fmt.Errorf("convert primary key:%s error, err=%w", keys[i], err)
			}
			row[d.dao.primaryKeyField] = v
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (d *redisDataset) fieldType(field string) constants.FSType {
	if t, ok := d.dao.fieldTypeMap[field]; ok {
		return t
	}
	return constants.FS_STRING
}

func (d *redisDataset) Count(ctx context.Context) (int, error) {
	rows, err := d.Collect(ctx)
	if err != nil {
		return 0, err
	}
	return len(rows), nil
}
