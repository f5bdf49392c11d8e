package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

const defaultPath = "."

type Config struct {
	Env struct {
		Env         string `json:"env" yaml:"env"`
		ServiceName string `json:"serviceName" yaml:"serviceName"`
		Debug       bool   `json:"debug" yaml:"debug"`
		Log         Log    `json:"log" yaml:"log"`
	} `json:"env" yaml:"env"`

	HTTP struct {
		Port     int `json:"port" yaml:"port"`
		Timeouts struct {
			ReadTimeout       time.Duration `json:"readTimeout" yaml:"readTimeout"`
			ReadHeaderTimeout time.Duration `json:"readHeaderTimeout" yaml:"readHeaderTimeout"`
			WriteTimeout      time.Duration `json:"writeTimeout" yaml:"writeTimeout"`
			IdleTimeout       time.Duration `json:"idleTimeout" yaml:"idleTimeout"`
		} `json:"timeouts" yaml:"timeouts"`
	} `json:"http" yaml:"http"`

	// Services holds the base URLs of the upstream storefront services.
	Services ServicesConfig `json:"services" yaml:"services"`

	// Session configuration for shopper identity cookies.
	Session *SessionConfig `json:"session" yaml:"session"`

	// Upstream tuning for the HTTP clients.
	Upstream *UpstreamConfig `json:"upstream" yaml:"upstream"`
}

// ServicesConfig lists one base URL per upstream service.
type ServicesConfig struct {
	Catalog  string `json:"catalog" yaml:"catalog"`
	Cart     string `json:"cart" yaml:"cart"`
	Order    string `json:"order" yaml:"order"`
	Payment  string `json:"payment" yaml:"payment"`
	Shipping string `json:"shipping" yaml:"shipping"`
	Review   string `json:"review" yaml:"review"`
	Auth     string `json:"auth" yaml:"auth"`
}

// SessionConfig defines cookie names and lifetimes for shopper identity.
type SessionConfig struct {
	TokenCookie    string        `json:"tokenCookie" yaml:"tokenCookie"`
	SessionCookie  string        `json:"sessionCookie" yaml:"sessionCookie"`
	TokenTTL       time.Duration `json:"tokenTtl" yaml:"tokenTtl"`
	VerifyCacheTTL time.Duration `json:"verifyCacheTtl" yaml:"verifyCacheTtl"`
	SecureCookies  bool          `json:"secureCookies" yaml:"secureCookies"`
}

// UpstreamConfig tunes outbound calls to the storefront services.
type UpstreamConfig struct {
	Timeout     time.Duration `json:"timeout" yaml:"timeout"`
	VoteTimeout time.Duration `json:"voteTimeout" yaml:"voteTimeout"`
	Breaker     BreakerConfig `json:"breaker" yaml:"breaker"`
}

// BreakerConfig configures the per-service circuit breakers.
type BreakerConfig struct {
	MaxRequests uint32        `json:"maxRequests" yaml:"maxRequests"`
	Interval    time.Duration `json:"interval" yaml:"interval"`
	Timeout     time.Duration `json:"timeout" yaml:"timeout"`
	MinRequests uint32        `json:"minRequests" yaml:"minRequests"`
	FailureRate float64       `json:"failureRate" yaml:"failureRate"`
}

type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
}

// LoadWithEnv loads .yaml files through koanf.
func LoadWithEnv[T any](currEnv string, configPath ...string) (*T, error) {
	cfg := new(T)
	koanfInstance := koanf.New(".")

	// Build list of paths to search for config file
	searchPaths := []string{defaultPath}
	if len(configPath) != 0 {
		pwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "os.Getwd")
		}
		for _, path := range configPath {
			abs := filepath.Join(pwd, path)
			searchPaths = append(searchPaths, abs)
		}
	}

	// Try to find and load the config file
	var configFile string
	var found bool
	for _, path := range searchPaths {
		candidate := filepath.Join(path, currEnv+".yaml")
		if _, err := os.Stat(candidate); err == nil {
			configFile = candidate
			found = true

			break
		}
	}

	if !found {
		return nil, errors.Errorf("config file %s.yaml not found in any search path", currEnv)
	}

	// Load YAML config file
	if err := koanfInstance.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		return nil, errors.Wrapf(err, "read %s config failed", currEnv)
	}

	existingConfigMap := koanfInstance.Raw()

	// Load environment variables
	if err := koanfInstance.Load(env.Provider(".", env.Opt{
		TransformFunc: func(k, v string) (string, any) {
			// Convert ENV_VAR_NAME to path and align each segment with existing YAML keys.
			// Example: SERVICES_CART -> services.cart (not services.CART)
			key := canonicalizeEnvKey(k, existingConfigMap)

			return key, v
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables failed")
	}

	// Unmarshal into the config struct (case-insensitive to match env vars)
	if err := koanfInstance.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
			MatchName: func(mapKey, fieldName string) bool {
				// Case-insensitive matching for env var overrides
				return strings.EqualFold(mapKey, fieldName)
			},
		},
	}); err != nil {
		return nil, errors.Wrapf(err, "unmarshal %s config failed", currEnv)
	}

	return cfg, nil
}

func New() (*Config, error) {
	cfg, err := LoadWithEnv[Config]("config", "config", "../config", "../../config")
	if err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	return cfg, nil
}

func (cfg *Config) applyDefaults() {
	if cfg.Session == nil {
		cfg.Session = &SessionConfig{}
	}
	if cfg.Session.TokenCookie == "" {
		cfg.Session.TokenCookie = "authToken"
	}
	if cfg.Session.SessionCookie == "" {
		cfg.Session.SessionCookie = "sessionId"
	}
	if cfg.Session.TokenTTL == 0 {
		cfg.Session.TokenTTL = 7 * 24 * time.Hour
	}
	if cfg.Session.VerifyCacheTTL == 0 {
		cfg.Session.VerifyCacheTTL = 5 * time.Minute
	}

	if cfg.Upstream == nil {
		cfg.Upstream = &UpstreamConfig{}
	}
	if cfg.Upstream.Timeout == 0 {
		cfg.Upstream.Timeout = 15 * time.Second
	}
	if cfg.Upstream.VoteTimeout == 0 {
		cfg.Upstream.VoteTimeout = 5 * time.Second
	}
	if cfg.Upstream.Breaker.MinRequests == 0 {
		cfg.Upstream.Breaker.MinRequests = 5
	}
	if cfg.Upstream.Breaker.FailureRate == 0 {
		cfg.Upstream.Breaker.FailureRate = 0.6
	}
	if cfg.Upstream.Breaker.Timeout == 0 {
		cfg.Upstream.Breaker.Timeout = 30 * time.Second
	}
}

func canonicalizeEnvKey(rawKey string, existing map[string]any) string {
	segments := strings.Split(strings.ToLower(rawKey), "_")
	canonical := make([]string, 0, len(segments))
	current := existing

	for _, segment := range segments {
		if segment == "" {
			continue
		}

		if matched, next, ok := findExistingSegment(current, segment); ok {
			canonical = append(canonical, matched)
			current = next
		} else {
			canonical = append(canonical, segment)
			current = nil
		}
	}

	return strings.Join(canonical, ".")
}

func findExistingSegment(current map[string]any, segment string) (matched string, next map[string]any, ok bool) {
	if len(current) == 0 {
		return "", nil, false
	}

	needle := normalizeToken(segment)
	for key, value := range current {
		if normalizeToken(key) != needle {
			continue
		}

		child, _ := value.(map[string]any)

		return key, child, true
	}

	return "", nil, false
}

func normalizeToken(s string) string {
	var normalized strings.Builder
	normalized.Grow(len(s))

	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		normalized.WriteRune(unicode.ToLower(r))
	}

	return normalized.String()
}
