package spectate

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// RateLimiter 按 IP 限制观战连接频率
type RateLimiter struct {
	mu      sync.Mutex
	clients map[string]*clientRate

	maxPerMinute int           // 每分钟最多建立的连接数
	banDuration  time.Duration // 封禁时长
	now          func() time.Time
}

// clientRate 客户端连接记录
type clientRate struct {
	count       int
	windowStart time.Time
	bannedUntil time.Time
}

// NewRateLimiter 创建速率限制器，maxPerMinute <= 0 表示不限制
func NewRateLimiter(maxPerMinute int, banDuration time.Duration) *RateLimiter {
	return &RateLimiter{
		clients:      make(map[string]*clientRate),
		maxPerMinute: maxPerMinute,
		banDuration:  banDuration,
		now:          time.Now,
	}
}

// Allow 检查是否允许该 IP 建立连接
func (rl *RateLimiter) Allow(ip string) bool {
	if rl.maxPerMinute <= 0 {
		return true
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	rl.prune(now)

	rate, ok := rl.clients[ip]
	if !ok {
		rl.clients[ip] = &clientRate{count: 1, windowStart: now}
		return true
	}

	if now.Before(rate.bannedUntil) {
		return false
	}
	if now.Sub(rate.windowStart) >= time.Minute {
		rate.count = 0
		rate.windowStart = now
	}

	rate.count++
	if rate.count > rl.maxPerMinute {
		rate.bannedUntil = now.Add(rl.banDuration)
		log.Warn().Str("ip", ip).Dur("ban", rl.banDuration).Msg("too many spectate connections")
		return false
	}
	return true
}

// IsBanned 检查 IP 是否被封禁
func (rl *RateLimiter) IsBanned(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	rate, ok := rl.clients[ip]
	return ok && rl.now().Before(rate.bannedUntil)
}

// prune 删除十分钟内没有活动的记录，调用方持有锁
func (rl *RateLimiter) prune(now time.Time) {
	for ip, rate := range rl.clients {
		if now.Sub(rate.windowStart) > 10*time.Minute && now.After(rate.bannedUntil) {
			delete(rl.clients, ip)
		}
	}
}

// --- 来源验证 ---

// OriginChecker 来源验证器
type OriginChecker struct {
	allowedOrigins map[string]bool
	allowAll       bool
}

// NewOriginChecker 创建来源验证器；列表为空或包含 "*" 时允许所有来源
func NewOriginChecker(origins []string) *OriginChecker {
	oc := &OriginChecker{
		allowedOrigins: make(map[string]bool),
		allowAll:       len(origins) == 0,
	}

	for _, origin := range origins {
		if origin == "*" {
			oc.allowAll = true
			return oc
		}
		oc.allowedOrigins[strings.ToLower(origin)] = true
	}

	return oc
}

// Check 检查请求来源
func (oc *OriginChecker) Check(r *http.Request) bool {
	if oc.allowAll {
		return true
	}

	origin := r.Header.Get("Origin")
	if origin == "" {
		// 没有 Origin 头，可能是同源请求或本地客户端
		return true
	}

	return oc.allowedOrigins[strings.ToLower(origin)]
}

// clientIP 获取客户端真实 IP
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if first, _, _ := strings.Cut(xff, ","); strings.TrimSpace(first) != "" {
			return strings.TrimSpace(first)
		}
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
