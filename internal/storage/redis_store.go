package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/palemoky/king-of-montenegro/internal/config"
)

const (
	// Redis key 前缀
	matchKeyPrefix = "kom:match:"
	recentMatchKey = "kom:match:recent"

	// 对局记录过期时间
	matchExpiration = 30 * 24 * time.Hour
	// 最近对局列表长度
	recentMatchLimit = 100
)

// MatchRecord 对局记录（用于 Redis 序列化）
type MatchRecord struct {
	MatchID    string             `json:"match_id"`
	Winner     int                `json:"winner"` // -1 表示无人获胜
	Reason     string             `json:"reason"`
	Rounds     int                `json:"rounds"`
	Players    [2]MatchPlayerData `json:"players"`
	FinishedAt int64              `json:"finished_at"`
}

// MatchPlayerData 对局中的玩家数据
type MatchPlayerData struct {
	Name         string `json:"name"`
	DuelsWon     int    `json:"duels_won"`
	WarsDeclared int    `json:"wars_declared"`
	WarsWon      int    `json:"wars_won"`
	ArmyCards    int    `json:"army_cards"`
}

// RedisStore 对局记录存储
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore 创建 Redis 存储
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// NewClient 按配置创建 Redis 客户端并检查连通性
func NewClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("连接 Redis %s 失败: %w", cfg.Addr, err)
	}
	return client, nil
}

// SaveMatch 保存对局记录并加入最近对局列表
func (rs *RedisStore) SaveMatch(ctx context.Context, rec *MatchRecord) error {
	if rec == nil {
		return nil
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("序列化对局记录失败: %w", err)
	}

	pipe := rs.client.TxPipeline()
	pipe.Set(ctx, matchKeyPrefix+rec.MatchID, data, matchExpiration)
	pipe.LPush(ctx, recentMatchKey, rec.MatchID)
	pipe.LTrim(ctx, recentMatchKey, 0, recentMatchLimit-1)
	_, err = pipe.Exec(ctx)
	return err
}

// LoadMatch 读取对局记录，不存在时返回 nil, nil
func (rs *RedisStore) LoadMatch(ctx context.Context, matchID string) (*MatchRecord, error) {
	data, err := rs.client.Get(ctx, matchKeyPrefix+matchID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var rec MatchRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("反序列化对局记录失败: %w", err)
	}
	return &rec, nil
}

// RecentMatches 最近的对局记录，新的在前；已过期的记录被跳过
func (rs *RedisStore) RecentMatches(ctx context.Context, limit int) ([]*MatchRecord, error) {
	if limit <= 0 {
		return nil, nil
	}

	ids, err := rs.client.LRange(ctx, recentMatchKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}

	records := make([]*MatchRecord, 0, len(ids))
	for _, id := range ids {
		rec, err := rs.LoadMatch(ctx, id)
		if err != nil {
			return nil, err
		}
		if rec != nil {
			records = append(records, rec)
		}
	}
	return records, nil
}

// DeleteMatch 删除对局记录
func (rs *RedisStore) DeleteMatch(ctx context.Context, matchID string) error {
	pipe := rs.client.TxPipeline()
	pipe.Del(ctx, matchKeyPrefix+matchID)
	pipe.LRem(ctx, recentMatchKey, 0, matchID)
	_, err := pipe.Exec(ctx)
	return err
}

// Close 关闭连接
func (rs *RedisStore) Close() error {
	return rs.client.Close()
}
