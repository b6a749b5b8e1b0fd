package deps

import (
	"time"

	"github.com/MrSnakeDoc/linkedit/internal/collection"
	"github.com/MrSnakeDoc/linkedit/internal/domain"
	"github.com/MrSnakeDoc/linkedit/internal/ingest"
	"github.com/MrSnakeDoc/linkedit/internal/logger"
	"github.com/redis/go-redis/v9"
)

type Deps struct {
	Logger         logger.Logger
	StartTime      time.Time
	Version        string
	Commit         string
	BuildDate      string
	GoVersion      string
	TimeNow        func() time.Time // for testing, defaults to time.Now
	AllowedHosts   []string         // Host headers allowed to access the server
	AllowedCIDRS   []string         // IPs allowed to access infra endpoints
	AllowedOrigins []string         // CORS origins
	TrustProxy     bool             // true if running behind a trusted reverse proxy (e.g., cloudflared)
	RequestTimeout time.Duration    // per-request timeout

	RedisClient *redis.Client          // Redis client connection (nil = memory only)
	Links       *collection.Collection // the ordered links being edited
	Pack        *domain.ReloadablePack // static icon pack offered by the selector
	Resolver    *domain.Resolver       // classifies icon selectors against Pack
	Ingestor    *ingest.Ingestor       // decodes uploaded icons, one live upload per link

	MaxUploadBytes     int64         // upper bound of an uploaded icon
	DecodeTimeout      time.Duration // max time to decode one upload
	UploadBurst        int           // upload rate limit burst, per client IP
	UploadRefillPerMin int           // upload rate limit refill, per client IP

	ReloadTrigger chan struct{} // Channel to trigger a manual icon pack reload (nil if no icons file)
}
