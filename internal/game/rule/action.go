package rule

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/palemoky/king-of-montenegro/internal/apperrors"
	"github.com/palemoky/king-of-montenegro/internal/game/card"
)

// ActionKind 定义动作类型
type ActionKind int

const (
	Invalid ActionKind = iota
	Play               // play <i>
	Wild               // wild <k> <c>
	Call               // call
	Concede            // concede
	War                // war <suit> [<suit> ...]
	Pass               // pass
)

// actionNames 动作关键字映射表
var actionNames = map[ActionKind]string{
	Play:    "play",
	Wild:    "wild",
	Call:    "call",
	Concede: "concede",
	War:     "war",
	Pass:    "pass",
}

func (k ActionKind) String() string {
	if name, ok := actionNames[k]; ok {
		return name
	}
	return "invalid"
}

// IsDuelAction 决斗阶段可用的动作
func (k ActionKind) IsDuelAction() bool {
	return k == Play || k == Wild || k == Call || k == Concede
}

// IsWarAction 宣战阶段可用的动作
func (k ActionKind) IsWarAction() bool {
	return k == War || k == Pass
}

// Action 解析后的玩家动作
type Action struct {
	Kind           ActionKind
	Index          int // play 的手牌索引
	KingIndex      int // wild 中 K 的索引
	CardIndex      int // wild 中另一张牌的索引
	Suit           card.Suit
	Reinforcements []card.Suit
}

func (a Action) String() string {
	switch a.Kind {
	case Play:
		return fmt.Sprintf("play %d", a.Index)
	case Wild:
		return fmt.Sprintf("wild %d %d", a.KingIndex, a.CardIndex)
	case War:
		parts := []string{"war", a.Suit.String()}
		for _, r := range a.Reinforcements {
			parts = append(parts, r.String())
		}
		return strings.Join(parts, " ")
	default:
		return a.Kind.String()
	}
}

// 预构造的无参数动作
var (
	CallAction    = Action{Kind: Call}
	ConcedeAction = Action{Kind: Concede}
	PassAction    = Action{Kind: Pass}
)

// ParseAction 解析动作字符串（大小写敏感）
func ParseAction(input string) (Action, error) {
	fields := strings.Fields(input)
	if len(fields) == 0 {
		return Action{}, fmt.Errorf("empty input: %w", apperrors.ErrUnrecognizedAction)
	}

	args := fields[1:]
	switch fields[0] {
	case "play":
		idx, err := parseIndices(args, 1)
		if err != nil {
			return Action{}, err
		}
		return Action{Kind: Play, Index: idx[0]}, nil

	case "wild":
		idx, err := parseIndices(args, 2)
		if err != nil {
			return Action{}, err
		}
		return Action{Kind: Wild, KingIndex: idx[0], CardIndex: idx[1]}, nil

	case "war":
		if len(args) == 0 {
			return Action{}, fmt.Errorf("war needs at least one suit: %w", apperrors.ErrUnrecognizedAction)
		}
		suits := make([]card.Suit, len(args))
		for i, name := range args {
			s, err := card.ParseSuit(name)
			if err != nil {
				return Action{}, fmt.Errorf("%v: %w", err, apperrors.ErrUnrecognizedAction)
			}
			suits[i] = s
		}
		return Action{Kind: War, Suit: suits[0], Reinforcements: suits[1:]}, nil

	case "call", "concede", "pass":
		if len(args) != 0 {
			return Action{}, fmt.Errorf("%s takes no arguments: %w", fields[0], apperrors.ErrUnrecognizedAction)
		}
		switch fields[0] {
		case "call":
			return CallAction, nil
		case "concede":
			return ConcedeAction, nil
		default:
			return PassAction, nil
		}
	}

	return Action{}, fmt.Errorf("%q: %w", fields[0], apperrors.ErrUnrecognizedAction)
}

// parseIndices 解析固定数量的整数索引；格式错误视为索引无效
func parseIndices(args []string, n int) ([]int, error) {
	if len(args) != n {
		return nil, fmt.Errorf("expected %d indices: %w", n, apperrors.ErrInvalidIndex)
	}
	out := make([]int, n)
	for i, a := range args {
		v, err := strconv.Atoi(a)
		if err != nil {
			return nil, fmt.Errorf("index %q is not a number: %w", a, apperrors.ErrInvalidIndex)
		}
		out[i] = v
	}
	return out, nil
}
