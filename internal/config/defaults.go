package config

import "time"

// Default value constants.
const (
	DefaultServerPort      = 3000
	DefaultServerMode      = "release"
	DefaultReadTimeout     = 30 * time.Second
	DefaultWriteTimeout    = 30 * time.Second
	DefaultShutdownTimeout = 10 * time.Second

	DefaultCacheBackend = "memory"
	// DefaultCacheTTL is the fixed freshness window for every cached result,
	// successful or not.
	DefaultCacheTTL = time.Hour

	DefaultRedisAddr      = "localhost:6379"
	DefaultRedisKeyPrefix = "ipgate:"

	// DefaultProviderTimeout bounds every upstream call; USPTO endpoints are
	// slow under load but anything beyond this is treated as a miss.
	DefaultProviderTimeout = 15 * time.Second

	DefaultPatentExaminationURL = "https://ped.uspto.gov/api"
	DefaultGrantedPatentsURL    = "https://api.patentsview.org"
	DefaultTrademarkStatusURL   = "https://tsdrapi.uspto.gov"

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
)

// ApplyDefaults fills every zero-value field in cfg with the service default.
// Fields already set by the caller are left unchanged so that explicit
// configuration always wins.  It must be called after unmarshalling and
// before Validate so optional-but-defaulted fields are never seen as missing.
func ApplyDefaults(cfg *Config) {
	if cfg == nil {
		return
	}

	if cfg.Server.Port == 0 {
		cfg.Server.Port = DefaultServerPort
	}
	if cfg.Server.Mode == "" {
		cfg.Server.Mode = DefaultServerMode
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = DefaultReadTimeout
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = DefaultWriteTimeout
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = DefaultShutdownTimeout
	}

	if cfg.Cache.Backend == "" {
		cfg.Cache.Backend = DefaultCacheBackend
	}
	if cfg.Cache.TTL == 0 {
		cfg.Cache.TTL = DefaultCacheTTL
	}

	if cfg.Redis.Addr == "" {
		cfg.Redis.Addr = DefaultRedisAddr
	}
	if cfg.Redis.KeyPrefix == "" {
		cfg.Redis.KeyPrefix = DefaultRedisKeyPrefix
	}
	if cfg.Redis.DialTimeout == 0 {
		cfg.Redis.DialTimeout = 5 * time.Second
	}
	if cfg.Redis.ReadTimeout == 0 {
		cfg.Redis.ReadTimeout = 3 * time.Second
	}
	if cfg.Redis.WriteTimeout == 0 {
		cfg.Redis.WriteTimeout = 3 * time.Second
	}

	applyProviderDefaults(&cfg.Providers.PatentExamination, DefaultPatentExaminationURL)
	applyProviderDefaults(&cfg.Providers.GrantedPatents, DefaultGrantedPatentsURL)
	applyProviderDefaults(&cfg.Providers.TrademarkStatus, DefaultTrademarkStatusURL)

	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = DefaultLogFormat
	}
}

func applyProviderDefaults(p *ProviderConfig, baseURL string) {
	if p.BaseURL == "" {
		p.BaseURL = baseURL
		// A provider block that was omitted entirely gets the full default
		// posture: enabled, with the documented trust relaxation.
		p.Enabled = true
		p.InsecureSkipVerify = true
	}
	if p.Timeout == 0 {
		p.Timeout = DefaultProviderTimeout
	}
}
