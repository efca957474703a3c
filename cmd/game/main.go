package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/palemoky/king-of-montenegro/internal/ai"
	"github.com/palemoky/king-of-montenegro/internal/config"
	"github.com/palemoky/king-of-montenegro/internal/game"
	"github.com/palemoky/king-of-montenegro/internal/game/card"
	"github.com/palemoky/king-of-montenegro/internal/game/player"
	"github.com/palemoky/king-of-montenegro/internal/game/table"
	"github.com/palemoky/king-of-montenegro/internal/logger"
	"github.com/palemoky/king-of-montenegro/internal/sound"
	"github.com/palemoky/king-of-montenegro/internal/spectate"
	"github.com/palemoky/king-of-montenegro/internal/storage"
	"github.com/palemoky/king-of-montenegro/internal/ui"
	"github.com/palemoky/king-of-montenegro/internal/ui/view"
)

type options struct {
	console     bool
	auto        bool
	leaderboard bool
}

func main() {
	configPath := flag.String("config", "configs/config.yaml", "配置文件路径")
	seed := flag.Uint64("seed", 0, "洗牌种子，覆盖配置文件")
	opponent := flag.String("opponent", "", "对手类型: human | random | scripted")
	var opts options
	flag.BoolVar(&opts.console, "console", false, "使用行式终端代替全屏界面")
	flag.BoolVar(&opts.auto, "auto", false, "两名电脑玩家对战")
	flag.BoolVar(&opts.leaderboard, "leaderboard", false, "打印排行榜后退出")
	flag.Parse()

	// 加载配置
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置文件失败，使用默认配置: %v\n", err)
		cfg = config.Default()
	}
	if *seed != 0 {
		cfg.Game.Seed = *seed
	}
	if *opponent != "" {
		cfg.Players.Opponent = *opponent
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	if err := logger.Init(cfg.Log.Level); err != nil {
		fmt.Fprintf(os.Stderr, "初始化日志失败: %v\n", err)
	}
	defer logger.Close()
	defer func() {
		if r := recover(); r != nil {
			logger.LogPanic(r)
			panic(r)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if opts.leaderboard {
		err = printLeaderboard(ctx, cfg)
	} else {
		err = run(ctx, cfg, opts)
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Error().Err(err).Msg("game failed")
		fmt.Fprintf(os.Stderr, "出错了: %v\n", err)
		stop()
		logger.Close()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, opts options) error {
	seed := cfg.Game.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	log.Info().Uint64("seed", seed).Str("opponent", cfg.Players.Opponent).Msg("starting game")

	rng := rand.New(rand.NewPCG(seed, seed^0x5851f42d4c957f2d))
	tb := table.New(card.NewDeck(rng),
		player.New(cfg.Players.Names[0]),
		player.New(cfg.Players.Names[1]))
	tb.Deal()

	// 人类对手只能在同一个行式终端上轮流操作
	if cfg.Players.Opponent == config.OpponentHuman && !opts.auto {
		opts.console = true
	}

	opponent, err := newOpponent(cfg, seed)
	if err != nil {
		return err
	}

	var sinks game.MultiSink

	if cfg.Sound.Enabled && !opts.console {
		sm := sound.NewSoundManager(cfg.Sound.Dir)
		if err := sm.Init(); err != nil {
			log.Warn().Err(err).Msg("sound disabled")
		} else {
			defer sm.Close()
			sinks = append(sinks, sound.NewCueSink(sm))
		}
	}

	if cfg.Spectate.Enabled() {
		hub := spectate.NewHub(cfg.Spectate.AllowedOrigins, cfg.Spectate.MaxSpectators)
		srv := spectate.NewServer(cfg.Spectate, hub)
		if err := srv.Start(); err != nil {
			return fmt.Errorf("start spectate server: %w", err)
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
		sinks = append(sinks, hub)
	}

	gameOpts := []game.Option{
		game.WithMaxRounds(cfg.Game.MaxRounds),
		game.WithMaxInvalidActions(cfg.Game.MaxInvalidActions),
	}

	var (
		res     game.Result
		playErr error
	)
	switch {
	case opts.auto:
		self := ai.WithDelay(ai.NewSeededRandom(seed+1), cfg.Game.AIDelayDuration())
		sinks = append(sinks, game.SinkFunc(printSnapshot))
		g := game.New(tb, [2]game.ActionProvider{self, opponent}, sinks, gameOpts...)
		res, playErr = g.Run(ctx)

	case opts.console:
		console := ai.NewConsole(os.Stdin, os.Stdout, 0)
		providers := [2]game.ActionProvider{console, opponent}
		sinks = append(sinks, console)
		if cfg.Players.Opponent == config.OpponentHuman {
			second := console.ForSeat(1)
			providers[1] = second
			sinks = append(sinks, second)
		}
		g := game.New(tb, providers, sinks, gameOpts...)
		res, playErr = g.Run(ctx)

	default:
		bridge := ui.NewBridge(0)
		sinks = append(sinks, bridge)
		g := game.New(tb, [2]game.ActionProvider{bridge, opponent}, sinks, gameOpts...)
		res, playErr = ui.Run(ctx, g, bridge)
	}
	if playErr != nil {
		return playErr
	}

	log.Info().Str("match", res.MatchID).Str("reason", string(res.Reason)).
		Int("winner", res.Winner).Int("rounds", res.Rounds).Msg("game finished")
	return recordResult(ctx, cfg, res)
}

// printSnapshot 以观战视角打印每个快照
func printSnapshot(s game.Snapshot) {
	fmt.Println(view.TextView(s, view.Spectator))
	if s.Result != nil {
		fmt.Println(view.GameOverView(*s.Result, 60))
	}
}

func newOpponent(cfg *config.Config, seed uint64) (game.ActionProvider, error) {
	kind := ai.KindRandom
	if cfg.Players.Opponent == config.OpponentScripted {
		kind = ai.KindScripted
	}
	p, err := ai.New(kind, seed, cfg.Players.Script)
	if err != nil {
		return nil, err
	}
	return ai.WithDelay(p, cfg.Game.AIDelayDuration()), nil
}

// recordResult 写入对局统计；未配置 redis 时跳过
func recordResult(ctx context.Context, cfg *config.Config, res game.Result) error {
	if !cfg.Redis.Enabled() {
		return nil
	}

	// 对局已结束，退出信号不应打断统计写入
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()

	client, err := storage.NewClient(ctx, cfg.Redis)
	if err != nil {
		return fmt.Errorf("connect redis: %w", err)
	}
	store := storage.NewRedisStore(client)
	defer func() { _ = store.Close() }()

	return saveResult(ctx, storage.NewRecorder(store, storage.NewLeaderboardManager(client)), res)
}

func saveResult(ctx context.Context, rec storage.ResultRecorder, res game.Result) error {
	if err := rec.Record(ctx, res); err != nil {
		return fmt.Errorf("record result: %w", err)
	}
	log.Info().Str("match", res.MatchID).Msg("result recorded")
	return nil
}

func printLeaderboard(ctx context.Context, cfg *config.Config) error {
	if !cfg.Redis.Enabled() {
		return errors.New("leaderboard needs redis.addr")
	}

	client, err := storage.NewClient(ctx, cfg.Redis)
	if err != nil {
		return fmt.Errorf("connect redis: %w", err)
	}
	defer func() { _ = client.Close() }()

	entries, err := storage.NewLeaderboardManager(client).GetLeaderboard(ctx, storage.LeaderboardTotal, 10)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("No games recorded yet.")
		return nil
	}

	fmt.Printf("%-4s %-16s %6s %5s %6s\n", "#", "Player", "Score", "Won", "Rate")
	for _, e := range entries {
		fmt.Printf("%-4d %-16s %6d %5d %5.0f%%\n", e.Rank, e.PlayerName, e.Score, e.Wins, e.WinRate)
	}
	return nil
}
