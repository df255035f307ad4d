package indexer

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/coocood/freecache"
)

// cacheSize is the freecache arena size in bytes
const cacheSize = 8 * 1024 * 1024

// CachedFetcher serves repeated fetches for the same owner from memory for ttl.
// Failures are never cached.
type CachedFetcher struct {
	next  Fetcher
	scope string
	ttl   time.Duration
	cache *freecache.Cache
}

// NewCachedFetcher wraps next. scope separates keys of different collections.
// A ttl below one second disables caching.
func NewCachedFetcher(next Fetcher, scope string, ttl time.Duration) *CachedFetcher {
	return &CachedFetcher{
		next:  next,
		scope: strings.ToLower(scope),
		ttl:   ttl,
		cache: freecache.NewCache(cacheSize),
	}
}

func (f *CachedFetcher) key(owner string) []byte {
	return []byte(f.scope + ":" + strings.ToLower(strings.TrimSpace(owner)))
}

func tokenKey(ownerKey []byte, tokenID string) []byte {
	return append(append(append([]byte{}, ownerKey...), '#'), tokenID...)
}

// FetchOwnedTokens returns cached tokens when present, otherwise delegates
func (f *CachedFetcher) FetchOwnedTokens(ctx context.Context, owner string) ([]OwnedToken, error) {
	expire := int(f.ttl / time.Second)
	if expire <= 0 {
		return f.next.FetchOwnedTokens(ctx, owner)
	}

	key := f.key(owner)
	if tokens, ok := f.load(key); ok {
		return tokens, nil
	}

	tokens, err := f.next.FetchOwnedTokens(ctx, owner)
	if err != nil {
		return nil, err
	}
	f.store(key, tokens, expire)
	return tokens, nil
}

// load reads the owner's token id index, then every token. A missing piece is a miss.
func (f *CachedFetcher) load(key []byte) ([]OwnedToken, bool) {
	data, err := f.cache.Get(key)
	if err != nil {
		return nil, false
	}
	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return nil, false
	}
	tokens := make([]OwnedToken, 0, len(ids))
	for _, id := range ids {
		data, err := f.cache.Get(tokenKey(key, id))
		if err != nil {
			return nil, false
		}
		var t OwnedToken
		if err := json.Unmarshal(data, &t); err != nil {
			return nil, false
		}
		tokens = append(tokens, t)
	}
	return tokens, true
}

// store writes tokens before the index so a visible index never points at nothing
func (f *CachedFetcher) store(key []byte, tokens []OwnedToken, expire int) {
	ids := make([]string, 0, len(tokens))
	for _, t := range tokens {
		data, err := json.Marshal(t)
		if err != nil {
			return
		}
		if err := f.cache.Set(tokenKey(key, t.TokenID), data, expire); err != nil {
			return
		}
		ids = append(ids, t.TokenID)
	}
	data, err := json.Marshal(ids)
	if err != nil {
		return
	}
	_ = f.cache.Set(key, data, expire)
}

// Invalidate drops the cached entry for owner
func (f *CachedFetcher) Invalidate(owner string) {
	f.cache.Del(f.key(owner))
}
