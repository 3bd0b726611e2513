package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormSnapshots stores workspace configs in the config_snapshots table
type GormSnapshots struct {
	DB *gorm.DB
}

// Save upserts the workspace's snapshot
func (g *GormSnapshots) Save(ctx context.Context, workspace string, data []byte) error {
	return g.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "workspace"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
	}).Create(&ConfigSnapshot{
		Workspace: workspace,
		Payload:   datatypes.JSON(data),
	}).Error
}

// Load returns the workspace's snapshot, found=false when there is none
func (g *GormSnapshots) Load(ctx context.Context, workspace string) ([]byte, bool, error) {
	var snap ConfigSnapshot
	res := g.DB.WithContext(ctx).Where("workspace = ?", workspace).Limit(1).Find(&snap)
	if res.Error != nil {
		return nil, false, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, false, nil
	}
	return []byte(snap.Payload), true, nil
}

// RedisKeyPrefix namespaces snapshot keys
const RedisKeyPrefix = "roster:config:"

// RedisSnapshots stores workspace configs as redis strings
type RedisSnapshots struct {
	Client *redis.Client
	TTL    time.Duration
}

// NewRedisClient connects to redis and checks the connection
func NewRedisClient(addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := client.Ping(ctx).Result(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}
	return client, nil
}

// Save writes the workspace's snapshot. A zero TTL keeps it forever.
func (r *RedisSnapshots) Save(ctx context.Context, workspace string, data []byte) error {
	return r.Client.Set(ctx, RedisKeyPrefix+workspace, data, r.TTL).Err()
}

// Load reads the workspace's snapshot, found=false when the key is missing
func (r *RedisSnapshots) Load(ctx context.Context, workspace string) ([]byte, bool, error) {
	data, err := r.Client.Get(ctx, RedisKeyPrefix+workspace).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}
