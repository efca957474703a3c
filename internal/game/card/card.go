package card

import (
	"fmt"
	"strings"
)

// Suit 定义花色
type Suit int

// Rank 定义点数
type Rank int

const (
	Spades   Suit = iota // 黑桃
	Hearts               // 红心
	Diamonds             // 方块
	Clubs                // 梅花
)

// NumSuits 花色数量
const NumSuits = 4

// Suits 按固定顺序列出全部花色
var Suits = [NumSuits]Suit{Spades, Hearts, Diamonds, Clubs}

// suitNames 花色名称映射表（同时用于动作解析和资源命名）
var suitNames = map[Suit]string{
	Spades:   "spades",
	Hearts:   "hearts",
	Diamonds: "diamonds",
	Clubs:    "clubs",
}

// suitSymbols 花色符号映射表
var suitSymbols = map[Suit]string{
	Spades:   "♠",
	Hearts:   "♥",
	Diamonds: "♦",
	Clubs:    "♣",
}

func (s Suit) String() string {
	if name, ok := suitNames[s]; ok {
		return name
	}
	return fmt.Sprintf("suit(%d)", int(s))
}

// Symbol 返回花色符号
func (s Suit) Symbol() string {
	return suitSymbols[s]
}

// IsRed 红心和方块为红色
func (s Suit) IsRed() bool {
	return s == Hearts || s == Diamonds
}

// Valid 是否为合法花色
func (s Suit) Valid() bool {
	return s >= Spades && s <= Clubs
}

// ParseSuit 解析花色名称（大小写敏感）
func ParseSuit(name string) (Suit, error) {
	for s, n := range suitNames {
		if n == name {
			return s, nil
		}
	}
	return -1, fmt.Errorf("unknown suit %q", name)
}

const (
	Rank2 Rank = iota + 2
	Rank3
	Rank4
	Rank5
	Rank6
	Rank7
	Rank8
	Rank9
	Rank10
	RankJ // Jack
	RankQ // Queen
	RankK // King
	RankA // Ace
)

// rankNames 牌面值字符串映射表
var rankNames = map[Rank]string{
	Rank2:  "2",
	Rank3:  "3",
	Rank4:  "4",
	Rank5:  "5",
	Rank6:  "6",
	Rank7:  "7",
	Rank8:  "8",
	Rank9:  "9",
	Rank10: "10",
	RankJ:  "J",
	RankQ:  "Q",
	RankK:  "K",
	RankA:  "A",
}

func (r Rank) String() string {
	if name, ok := rankNames[r]; ok {
		return name
	}
	return fmt.Sprintf("rank(%d)", int(r))
}

// Card 定义一张牌，按值比较
type Card struct {
	Suit Suit
	Rank Rank
}

// New 创建一张牌
func New(s Suit, r Rank) Card {
	return Card{Suit: s, Rank: r}
}

// Value 点数大小，2=2 ... A=14
func (c Card) Value() int {
	return int(c.Rank)
}

// IsKing 是否为 K
func (c Card) IsKing() bool {
	return c.Rank == RankK
}

// Beats 同花色且点数严格更大时返回 true
func (c Card) Beats(other Card) bool {
	if c.Suit != other.Suit {
		return false
	}
	return c.Value() > other.Value()
}

func (c Card) String() string {
	return c.Rank.String() + c.Suit.Symbol()
}

// Name 返回 "<rank> of <suit>" 形式的名称
func (c Card) Name() string {
	return fmt.Sprintf("%s of %s", c.Rank, c.Suit)
}

// AssetName 返回牌面图片文件名
func (c Card) AssetName() string {
	return fmt.Sprintf("%s_of_%s.png", c.Rank, c.Suit)
}

// BackAssetName 牌背图片文件名
const BackAssetName = "back.png"

// Format 将一组牌格式化为空格分隔的字符串
func Format(cards []Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}
