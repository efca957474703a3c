package storage

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/palemoky/king-of-montenegro/internal/game"
)

// ResultRecorder 记录对局结果
type ResultRecorder interface {
	Record(ctx context.Context, res game.Result) error
}

// Recorder 把对局结果写入对局记录与排行榜
type Recorder struct {
	store       *RedisStore
	leaderboard *LeaderboardManager
	now         func() time.Time
}

// NewRecorder 创建记录器
func NewRecorder(store *RedisStore, lm *LeaderboardManager) *Recorder {
	return &Recorder{store: store, leaderboard: lm, now: time.Now}
}

// Record 实现 ResultRecorder；排行榜更新失败不影响其余玩家
func (r *Recorder) Record(ctx context.Context, res game.Result) error {
	if err := r.store.SaveMatch(ctx, NewMatchRecord(res, r.now())); err != nil {
		return err
	}

	var errs []error
	for i, p := range res.Players {
		m := MatchStats{
			PlayerName:   p.Name,
			Outcome:      outcomeFor(res, i),
			DuelsWon:     p.DuelsWon,
			WarsDeclared: p.WarsDeclared,
			WarsWon:      p.WarsWon,
		}
		if err := r.leaderboard.RecordGameResult(ctx, m); err != nil {
			errs = append(errs, err)
		}
	}

	log.Info().Str("match", res.MatchID).Str("reason", string(res.Reason)).Msg("match recorded")
	return errors.Join(errs...)
}

// NewMatchRecord 由对局结果生成记录
func NewMatchRecord(res game.Result, finishedAt time.Time) *MatchRecord {
	rec := &MatchRecord{
		MatchID:    res.MatchID,
		Winner:     res.Winner,
		Reason:     string(res.Reason),
		Rounds:     res.Rounds,
		FinishedAt: finishedAt.Unix(),
	}
	for i, p := range res.Players {
		rec.Players[i] = MatchPlayerData{
			Name:         p.Name,
			DuelsWon:     p.DuelsWon,
			WarsDeclared: p.WarsDeclared,
			WarsWon:      p.WarsWon,
			ArmyCards:    p.ArmyCards,
		}
	}
	return rec
}

func outcomeFor(res game.Result, seat int) Outcome {
	switch {
	case !res.HasWinner():
		return Draw
	case res.Winner == seat:
		return Win
	default:
		return Loss
	}
}
