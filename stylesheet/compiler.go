package stylesheet

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"slices"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/cespare/xxhash/v2"
	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"themestyle/themejson"
)

// Compiler memoizes Build. Identical trees built with identical options are
// served from in-memory cache until entry expires. Safe for concurrent use.
type Compiler struct {
	cache  *gocache.Cache
	log    *zap.Logger
	hits   atomic.Uint64
	misses atomic.Uint64
}

// NewCompiler creates compiler keeping results for ttl (forever when zero)
// and purging expired entries every cleanup interval (never when zero).
func NewCompiler(ttl, cleanup time.Duration, log *zap.Logger) *Compiler {
	if log == nil {
		log = zap.NewNop()
	}
	if ttl <= 0 {
		ttl = gocache.NoExpiration
	}
	return &Compiler{
		cache: gocache.New(ttl, cleanup),
		log:   log,
	}
}

// Compile returns stylesheet for tree, building it only when there is no
// cached result. Errors are never cached.
func (c *Compiler) Compile(tree themejson.Tree, opts Options) (*Result, error) {
	key, err := cacheKey(tree, opts)
	if err != nil {
		c.log.Warn("Unable to compute cache key, building without cache", zap.Error(err))
		c.misses.Add(1)
		return Build(tree, opts, c.log)
	}

	if v, found := c.cache.Get(key); found {
		if res, ok := v.(*Result); ok {
			c.hits.Add(1)
			c.log.Debug("Stylesheet cache hit", zap.String("key", key))
			return res, nil
		}
	}
	c.misses.Add(1)

	res, err := Build(tree, opts, c.log)
	if err != nil {
		return nil, err
	}
	c.cache.SetDefault(key, res)
	return res, nil
}

// Stats returns number of cache hits and misses so far.
func (c *Compiler) Stats() (hits, misses uint64) {
	return c.hits.Load(), c.misses.Load()
}

// Len returns number of cached results, including expired but not yet purged.
func (c *Compiler) Len() int {
	return c.cache.ItemCount()
}

// Flush drops all cached results.
func (c *Compiler) Flush() {
	c.cache.Flush()
}

// cacheKey hashes canonical form of the input: object keys sorted, numbers
// of any decoded type written the same way. NaN and infinities which YAML
// documents may carry are hashed as text.
func cacheKey(tree themejson.Tree, opts Options) (string, error) {
	h := xxhash.New()
	writeCanonical(h, map[string]any(tree))
	if err := json.NewEncoder(h).Encode(opts); err != nil {
		return "", fmt.Errorf("unable to hash options: %w", err)
	}
	return strconv.FormatUint(h.Sum64(), 16), nil
}

func writeCanonical(w io.Writer, v any) {
	switch val := v.(type) {
	case nil:
		io.WriteString(w, "null")
	case bool:
		io.WriteString(w, strconv.FormatBool(val))
	case string:
		io.WriteString(w, strconv.Quote(val))
	case float64:
		io.WriteString(w, strconv.FormatFloat(val, 'g', -1, 64))
	case float32:
		io.WriteString(w, strconv.FormatFloat(float64(val), 'g', -1, 64))
	case int:
		io.WriteString(w, strconv.FormatFloat(float64(val), 'g', -1, 64))
	case int64:
		io.WriteString(w, strconv.FormatFloat(float64(val), 'g', -1, 64))
	case uint64:
		io.WriteString(w, strconv.FormatFloat(float64(val), 'g', -1, 64))
	case []any:
		io.WriteString(w, "[")
		for i, item := range val {
			if i > 0 {
				io.WriteString(w, ",")
			}
			writeCanonical(w, item)
		}
		io.WriteString(w, "]")
	case themejson.Tree:
		writeCanonical(w, map[string]any(val))
	case map[string]any:
		io.WriteString(w, "{")
		for i, k := range slices.Sorted(maps.Keys(val)) {
			if i > 0 {
				io.WriteString(w, ",")
			}
			io.WriteString(w, strconv.Quote(k))
			io.WriteString(w, ":")
			writeCanonical(w, val[k])
		}
		io.WriteString(w, "}")
	default:
		fmt.Fprintf(w, "%T(%v)", val, val)
	}
}
