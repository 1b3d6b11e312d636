package deps

import (
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/paperdesk/paperdesk/internal/index"
	"github.com/paperdesk/paperdesk/internal/logger"
	"github.com/paperdesk/paperdesk/internal/papers"
	"github.com/paperdesk/paperdesk/internal/session"
	"github.com/paperdesk/paperdesk/internal/store/sqlite"
)

type Deps struct {
	Logger    logger.Logger
	StartTime time.Time
	Version   string
	Commit    string
	BuildDate string
	GoVersion string
	TimeNow   func() time.Time // for testing, defaults to time.Now

	Service     *papers.Service    // read/write orchestration
	Sessions    session.Store      // session identity and vote guards
	MemoryIndex *index.MemoryIndex // in-memory paper index
	Store       *sqlite.Store      // durable entity store, probed by /infra
	RedisClient *redis.Client      // nil when the session backend is in-memory

	RefreshTrigger   chan struct{} // channel to trigger a manual catalog refresh
	DefaultDateRange string        // range preset applied when the request names none

	AllowedCIDRS []string // IPs allowed on /refresh, /readyz and /infra
	TrustProxy   bool     // true if running behind a trusted reverse proxy

	RateLimitBurst  int // write-endpoint burst size
	RateLimitPerMin int // write-endpoint refill per IP per minute
}
