package ai

import (
	"fmt"

	"github.com/palemoky/king-of-montenegro/internal/game"
)

// Kind 电脑玩家类型
type Kind string

const (
	KindRandom   Kind = "random"
	KindScripted Kind = "scripted"
)

// New 按类型创建电脑玩家；脚本用完后由随机策略接手
func New(kind Kind, seed uint64, script []string) (game.ActionProvider, error) {
	random := NewSeededRandom(seed)
	switch kind {
	case KindRandom:
		return random, nil
	case KindScripted:
		return NewScripted(script, random), nil
	default:
		return nil, fmt.Errorf("unknown ai kind: %q", kind)
	}
}
