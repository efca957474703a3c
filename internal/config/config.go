package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// 对手类型
const (
	OpponentHuman    = "human"
	OpponentRandom   = "random"
	OpponentScripted = "scripted"
)

// Config 游戏配置
type Config struct {
	Game     GameConfig     `yaml:"game"`
	Players  PlayersConfig  `yaml:"players"`
	Redis    RedisConfig    `yaml:"redis"`
	Spectate SpectateConfig `yaml:"spectate"`
	Sound    SoundConfig    `yaml:"sound"`
	Log      LogConfig      `yaml:"log"`
}

// GameConfig 对局配置
type GameConfig struct {
	Seed              uint64 `yaml:"seed"`                // 洗牌种子，0 表示随机
	MaxRounds         int    `yaml:"max_rounds"`          // 回合上限，0 表示不限
	MaxInvalidActions int    `yaml:"max_invalid_actions"` // 连续无效动作上限，0 表示不限
	AIDelay           int    `yaml:"ai_delay"`            // 电脑玩家思考时间（毫秒）
}

// AIDelayDuration 返回电脑玩家思考时长
func (c *GameConfig) AIDelayDuration() time.Duration {
	return time.Duration(c.AIDelay) * time.Millisecond
}

// PlayersConfig 玩家配置
type PlayersConfig struct {
	Names    [2]string `yaml:"names"`
	Opponent string    `yaml:"opponent"` // human | random | scripted
	Script   []string  `yaml:"script"`   // scripted 对手的指令序列
}

// RedisConfig Redis 配置，Addr 为空时不记录战绩
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// Enabled 是否启用战绩记录
func (c *RedisConfig) Enabled() bool {
	return c.Addr != ""
}

// SpectateConfig 观战服务配置，Addr 为空时不启动
type SpectateConfig struct {
	Addr           string   `yaml:"addr"`
	Path           string   `yaml:"path"`
	AllowedOrigins []string `yaml:"allowed_origins"`
	MaxSpectators  int      `yaml:"max_spectators"` // 0 使用默认上限
}

// Enabled 是否启动观战服务
func (c *SpectateConfig) Enabled() bool {
	return c.Addr != ""
}

// SoundConfig 音效配置
type SoundConfig struct {
	Enabled bool   `yaml:"enabled"`
	Dir     string `yaml:"dir"` // 音效文件目录，为空时使用内置提示音
}

// LogConfig 日志配置
type LogConfig struct {
	Level string `yaml:"level"`
}

// Load 加载配置文件；文件中未出现的项保持默认值，环境变量优先于文件
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	def := Default()
	for i, name := range cfg.Players.Names {
		if strings.TrimSpace(name) == "" {
			cfg.Players.Names[i] = def.Players.Names[i]
		}
	}
	if cfg.Spectate.Path == "" {
		cfg.Spectate.Path = def.Spectate.Path
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv 环境变量覆盖
func (c *Config) applyEnv() error {
	if v := os.Getenv("KOM_REDIS_ADDR"); v != "" {
		c.Redis.Addr = v
	}
	if v := os.Getenv("KOM_REDIS_PASSWORD"); v != "" {
		c.Redis.Password = v
	}
	if v := os.Getenv("KOM_SPECTATE_ADDR"); v != "" {
		c.Spectate.Addr = v
	}
	if v := os.Getenv("KOM_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("KOM_GAME_SEED"); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("config: KOM_GAME_SEED: %w", err)
		}
		c.Game.Seed = seed
	}
	return nil
}

// Validate 检查配置取值
func (c *Config) Validate() error {
	switch c.Players.Opponent {
	case OpponentHuman, OpponentRandom, OpponentScripted:
	default:
		return fmt.Errorf("config: unknown opponent %q", c.Players.Opponent)
	}
	if c.Game.MaxRounds < 0 {
		return fmt.Errorf("config: max_rounds must not be negative")
	}
	if c.Game.MaxInvalidActions < 0 {
		return fmt.Errorf("config: max_invalid_actions must not be negative")
	}
	if c.Game.AIDelay < 0 {
		return fmt.Errorf("config: ai_delay must not be negative")
	}
	if c.Spectate.MaxSpectators < 0 {
		return fmt.Errorf("config: max_spectators must not be negative")
	}
	return nil
}

// Default 返回默认配置
func Default() *Config {
	return &Config{
		Game: GameConfig{
			AIDelay: 600,
		},
		Players: PlayersConfig{
			Names:    [2]string{"Player 1", "AI"},
			Opponent: OpponentRandom,
		},
		Spectate: SpectateConfig{
			Path: "/ws",
		},
		Sound: SoundConfig{
			Enabled: true,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}
