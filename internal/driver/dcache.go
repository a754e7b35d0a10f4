package driver

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"novel/internal/compile"
	"novel/internal/diagfmt"
	"novel/internal/source"
)

// Current schema version - increment when TokenPayload format changes
const tokenCacheSchemaVersion uint16 = 1

// TokenCache хранит дампы токенов чистых (без диагностик) юнитов на диске.
// Thread-safe for concurrent access.
type TokenCache struct {
	mu  sync.RWMutex
	dir string
}

// TokenPayload is the on-disk record of one unit.
type TokenPayload struct {
	// Schema version for safe invalidation when format changes
	Schema uint16
	Path   string
	Hash   [32]byte
	Tokens []diagfmt.TokenOutput
}

// OpenTokenCache opens the cache under $XDG_CACHE_HOME/<app> (or
// ~/.cache/<app>).
func OpenTokenCache(app string) (*TokenCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return OpenTokenCacheDir(filepath.Join(base, app))
}

// OpenTokenCacheDir opens a cache rooted at dir.
func OpenTokenCacheDir(dir string) (*TokenCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("open token cache: %w", err)
	}
	return &TokenCache{dir: dir}, nil
}

// Dir returns the cache root.
func (c *TokenCache) Dir() string { return c.dir }

func (c *TokenCache) pathFor(key Digest) string {
	hexKey := hex.EncodeToString(key[:])
	// подкаталог по первому байту, чтобы не держать тысячи файлов в одном месте
	return filepath.Join(c.dir, "tokens", hexKey[:2], hexKey+".mp")
}

// Put serializes and writes a payload to the cache.
func (c *TokenCache) Put(key Digest, payload *TokenPayload) (err error) {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		// после успешного Rename файла уже нет
		if rmErr := os.Remove(f.Name()); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) && err == nil {
			err = rmErr
		}
	}()

	if err := msgpack.NewEncoder(f).Encode(payload); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(f.Name(), p)
}

// Get reads a payload. A missing entry is not an error.
func (c *TokenCache) Get(key Digest, out *TokenPayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer f.Close()
	if err := msgpack.NewDecoder(f).Decode(out); err != nil {
		return false, err
	}
	return true, nil
}

// DropAll invalidates the cache.
func (c *TokenCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	// переименуем каталог и удалим, чтобы параллельный читатель не увидел половину
	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if err := os.RemoveAll(old); err != nil {
		return err
	}
	return os.MkdirAll(c.dir, 0o755)
}

// lookup returns a cached dump for u. Decode failures and schema or hash
// mismatches count as misses.
func (c *TokenCache) lookup(u *source.Unit, opts compile.Options) ([]diagfmt.TokenOutput, bool) {
	var payload TokenPayload
	ok, err := c.Get(CacheKey(u.Hash, opts.Lexer, opts.Policy), &payload)
	if err != nil || !ok {
		return nil, false
	}
	if payload.Schema != tokenCacheSchemaVersion || payload.Hash != u.Hash {
		return nil, false
	}
	return payload.Tokens, true
}

func (c *TokenCache) store(u *source.Unit, opts compile.Options, dump []diagfmt.TokenOutput) error {
	return c.Put(CacheKey(u.Hash, opts.Lexer, opts.Policy), &TokenPayload{
		Schema: tokenCacheSchemaVersion,
		Path:   u.Path,
		Hash:   u.Hash,
		Tokens: dump,
	})
}
