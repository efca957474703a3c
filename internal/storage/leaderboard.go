package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// Redis key
	playerStatsKey    = "kom:player:stats:"
	leaderboardKey    = "kom:leaderboard:score"
	dailyLeaderboard  = "kom:leaderboard:daily:"
	weeklyLeaderboard = "kom:leaderboard:weekly:"
)

// Outcome 一名玩家在一局中的结果
type Outcome int

const (
	Loss Outcome = iota
	Win
	Draw // 牌用尽或达到回合上限
)

// PlayerStats 玩家统计数据，以玩家名为 ID
type PlayerStats struct {
	PlayerName string `json:"player_name"`

	// 总计
	TotalGames int `json:"total_games"` // 总场次
	Wins       int `json:"wins"`        // 胜场
	Losses     int `json:"losses"`      // 败场
	Draws      int `json:"draws"`       // 平局

	// 对局内统计
	DuelsWon     int `json:"duels_won"`
	WarsDeclared int `json:"wars_declared"`
	WarsWon      int `json:"wars_won"`

	// 积分
	Score int `json:"score"` // 当前积分

	// 连胜/连败
	CurrentStreak int `json:"current_streak"` // 正数为连胜，负数为连败
	MaxWinStreak  int `json:"max_win_streak"` // 最大连胜

	// 时间
	LastPlayedAt int64 `json:"last_played_at"` // 最后游戏时间
	CreatedAt    int64 `json:"created_at"`     // 首次游戏时间
}

// WinRate 胜率（百分比）
func (s *PlayerStats) WinRate() float64 {
	if s.TotalGames == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.TotalGames) * 100
}

// 积分规则
const (
	WinScore    = 20
	LossScore   = -10
	WarWonScore = 2 // 每赢一场战争

	// 连胜加成
	StreakBonus3  = 5  // 3 连胜加成
	StreakBonus5  = 10 // 5 连胜加成
	StreakBonus10 = 20 // 10 连胜加成
)

// MatchStats 一局结束后需要计入的数据
type MatchStats struct {
	PlayerName   string
	Outcome      Outcome
	DuelsWon     int
	WarsDeclared int
	WarsWon      int
}

// LeaderboardType 排行榜类型
type LeaderboardType string

const (
	LeaderboardTotal  LeaderboardType = "total"
	LeaderboardDaily  LeaderboardType = "daily"
	LeaderboardWeekly LeaderboardType = "weekly"
)

// LeaderboardEntry 排行榜条目
type LeaderboardEntry struct {
	Rank       int     `json:"rank"`
	PlayerName string  `json:"player_name"`
	Score      int     `json:"score"`
	Wins       int     `json:"wins"`
	WinRate    float64 `json:"win_rate"`
}

// LeaderboardManager 排行榜管理器
type LeaderboardManager struct {
	redis *redis.Client
	now   func() time.Time
}

// NewLeaderboardManager 创建排行榜管理器
func NewLeaderboardManager(client *redis.Client) *LeaderboardManager {
	return &LeaderboardManager{redis: client, now: time.Now}
}

// GetPlayerStats 获取玩家统计，玩家不存在时返回 nil, nil
func (lm *LeaderboardManager) GetPlayerStats(ctx context.Context, playerName string) (*PlayerStats, error) {
	data, err := lm.redis.Get(ctx, playerStatsKey+playerName).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var stats PlayerStats
	if err := json.Unmarshal(data, &stats); err != nil {
		return nil, fmt.Errorf("decode stats of %q: %w", playerName, err)
	}
	return &stats, nil
}

// SavePlayerStats 保存玩家统计
func (lm *LeaderboardManager) SavePlayerStats(ctx context.Context, stats *PlayerStats) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	return lm.redis.Set(ctx, playerStatsKey+stats.PlayerName, data, 0).Err()
}

// getOrCreateStats 获取或创建玩家统计
func (lm *LeaderboardManager) getOrCreateStats(ctx context.Context, playerName string) (*PlayerStats, error) {
	stats, err := lm.GetPlayerStats(ctx, playerName)
	if err != nil {
		return nil, err
	}
	if stats == nil {
		stats = &PlayerStats{
			PlayerName: playerName,
			CreatedAt:  lm.now().Unix(),
		}
	}
	return stats, nil
}

// updateOutcomeStats 更新胜负统计和连胜/连败，返回基础积分变化
func updateOutcomeStats(stats *PlayerStats, outcome Outcome) int {
	switch outcome {
	case Win:
		stats.Wins++
		stats.CurrentStreak = max(1, stats.CurrentStreak+1)
		stats.MaxWinStreak = max(stats.MaxWinStreak, stats.CurrentStreak)
		return WinScore
	case Loss:
		stats.Losses++
		stats.CurrentStreak = min(-1, stats.CurrentStreak-1)
		return LossScore
	default:
		stats.Draws++
		stats.CurrentStreak = 0
		return 0
	}
}

// calculateStreakBonus 计算连胜加成
func calculateStreakBonus(streak int) int {
	switch {
	case streak >= 10:
		return StreakBonus10
	case streak >= 5:
		return StreakBonus5
	case streak >= 3:
		return StreakBonus3
	default:
		return 0
	}
}

// RecordGameResult 记录一名玩家的对局结果
func (lm *LeaderboardManager) RecordGameResult(ctx context.Context, m MatchStats) error {
	stats, err := lm.getOrCreateStats(ctx, m.PlayerName)
	if err != nil {
		return err
	}

	stats.TotalGames++
	stats.DuelsWon += m.DuelsWon
	stats.WarsDeclared += m.WarsDeclared
	stats.WarsWon += m.WarsWon
	stats.LastPlayedAt = lm.now().Unix()

	scoreChange := updateOutcomeStats(stats, m.Outcome)
	scoreChange += m.WarsWon * WarWonScore
	if m.Outcome == Win {
		scoreChange += calculateStreakBonus(stats.CurrentStreak)
	}
	stats.Score = max(0, stats.Score+scoreChange)

	// 保存并更新排行榜
	if err := lm.SavePlayerStats(ctx, stats); err != nil {
		return err
	}
	return lm.UpdateLeaderboard(ctx, stats)
}

func (lm *LeaderboardManager) leaderboardKey(kind LeaderboardType) string {
	now := lm.now()
	switch kind {
	case LeaderboardDaily:
		return dailyLeaderboard + now.Format("2006-01-02")
	case LeaderboardWeekly:
		year, week := now.ISOWeek()
		return fmt.Sprintf("%s%d-W%02d", weeklyLeaderboard, year, week)
	default:
		return leaderboardKey
	}
}

// UpdateLeaderboard 更新总榜、日榜和周榜
func (lm *LeaderboardManager) UpdateLeaderboard(ctx context.Context, stats *PlayerStats) error {
	z := redis.Z{Score: float64(stats.Score), Member: stats.PlayerName}

	pipe := lm.redis.TxPipeline()
	pipe.ZAdd(ctx, lm.leaderboardKey(LeaderboardTotal), z)

	dailyKey := lm.leaderboardKey(LeaderboardDaily)
	pipe.ZAdd(ctx, dailyKey, z)
	pipe.Expire(ctx, dailyKey, 48*time.Hour)

	weeklyKey := lm.leaderboardKey(LeaderboardWeekly)
	pipe.ZAdd(ctx, weeklyKey, z)
	pipe.Expire(ctx, weeklyKey, 8*24*time.Hour)

	_, err := pipe.Exec(ctx)
	return err
}

// GetLeaderboard 获取排行榜（从高到低）
func (lm *LeaderboardManager) GetLeaderboard(ctx context.Context, kind LeaderboardType, limit int) ([]*LeaderboardEntry, error) {
	if limit <= 0 {
		return nil, nil
	}

	results, err := lm.redis.ZRevRangeWithScores(ctx, lm.leaderboardKey(kind), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}

	entries := make([]*LeaderboardEntry, 0, len(results))
	for i, result := range results {
		name, ok := result.Member.(string)
		if !ok {
			continue
		}

		stats, err := lm.GetPlayerStats(ctx, name)
		if err != nil || stats == nil {
			continue
		}

		entries = append(entries, &LeaderboardEntry{
			Rank:       i + 1,
			PlayerName: name,
			Score:      int(result.Score),
			Wins:       stats.Wins,
			WinRate:    stats.WinRate(),
		})
	}
	return entries, nil
}

// GetPlayerRank 获取玩家在总榜的排名，未上榜返回 -1
func (lm *LeaderboardManager) GetPlayerRank(ctx context.Context, playerName string) (int64, error) {
	rank, err := lm.redis.ZRevRank(ctx, leaderboardKey, playerName).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return -1, nil
		}
		return -1, err
	}
	return rank + 1, nil // Redis 排名从 0 开始
}

// SortByScore 按积分排序
func SortByScore(entries []LeaderboardEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score > entries[j].Score
	})
}
