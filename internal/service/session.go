// File: internal/service/session.go
package service

import (
	"context"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"book-auth/internal/cache"
	"book-auth/internal/dto"

	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/blake2b"
)

const sessionKeyPrefix = "auth:session:"

// ErrSessionMiss 快取中沒有對應帳密的登入結果
var ErrSessionMiss = errors.New("session not cached")

var (
	timeNow         = time.Now
	parseUnverified = jwt.NewParser().ParseUnverified
)

// SessionCache 以帳密衍生的雜湊為 key，把上游回傳的 UserAuthResponse 存進 Redis
// 帳號與密碼不會以明文出現在 Redis
type SessionCache struct {
	cache cache.Cache
	key   [32]byte
	ttl   time.Duration
}

// NewSessionCache secret 用來對 key 做 keyed hash；ttl 為快取上限
func NewSessionCache(c cache.Cache, secret string, ttl time.Duration) *SessionCache {
	return &SessionCache{
		cache: c,
		key:   blake2b.Sum256([]byte(secret)),
		ttl:   ttl,
	}
}

// Get 回傳快取的登入結果；沒有資料時回傳 ErrSessionMiss，
// 內容損毀時回傳 *dto.DeserializationError
func (s *SessionCache) Get(ctx context.Context, username, password string) (*dto.UserAuthResponse, error) {
	val, err := s.cache.Get(ctx, s.cacheKey(username, password)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionMiss
	}
	if err != nil {
		return nil, fmt.Errorf("SessionCache.Get: %w", err)
	}

	p, err := dto.ParseUserAuthResponse(val)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Put 寫入快取；已過期的令牌直接略過
func (s *SessionCache) Put(ctx context.Context, username, password string, p dto.UserAuthResponse) error {
	ttl := TokenTTL(p.AccessToken, s.ttl)
	if ttl <= 0 {
		return nil
	}

	b, err := p.MarshalJSON()
	if err != nil {
		return fmt.Errorf("SessionCache.Put: %w", err)
	}
	if err := s.cache.Set(ctx, s.cacheKey(username, password), b, ttl).Err(); err != nil {
		return fmt.Errorf("SessionCache.Put: %w", err)
	}
	return nil
}

func (s *SessionCache) cacheKey(username, password string) string {
	// New256 only fails for keys longer than 64 bytes.
	h, _ := blake2b.New256(s.key[:])
	h.Write(binary.BigEndian.AppendUint64(nil, uint64(len(username))))
	h.Write([]byte(username))
	h.Write([]byte(password))
	return sessionKeyPrefix + hex.EncodeToString(h.Sum(nil))
}

// TokenTTL 若 access token 是帶 exp 的 JWT，回傳剩餘效期與 fallback 的較小值，
// 否則回傳 fallback。只讀 claims，不驗證簽章。
func TokenTTL(accessToken string, fallback time.Duration) time.Duration {
	var claims jwt.RegisteredClaims
	if _, _, err := parseUnverified(accessToken, &claims); err != nil || claims.ExpiresAt == nil {
		return fallback
	}
	return min(claims.ExpiresAt.Sub(timeNow()), fallback)
}
