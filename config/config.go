package config

import (
	"os"
	"path/filepath"
	"strconv"
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

const (
	defaultPath               = "."
	defaultMaxRequestBodySize = "1MB"
	defaultSessionTTL         = 2 * time.Hour
	defaultSessionCookieName  = "session"
	defaultChatTimeout        = 30 * time.Second
	defaultChatModel          = "gpt-4o-mini"
	defaultChatSystemPrompt   = "You are Hubba, the SkateHubba assistant. You help skaters with tricks, " +
		"spots, gear and the SkateHubba app. Keep answers short, friendly and safe. " +
		"Decline requests unrelated to skateboarding or the app."
	defaultMaxAvatarBytes     = 5 << 20
	defaultWorkerPort         = 8081

	EnvProduction  = "production"
	EnvDevelopment = "development"
)

type Config struct {
	Env struct {
		Env         string `json:"env" yaml:"env"`
		ServiceName string `json:"serviceName" yaml:"serviceName"`
		Debug       bool   `json:"debug" yaml:"debug"`
		Log         Log    `json:"log" yaml:"log"`
	} `json:"env" yaml:"env"`

	HTTP struct {
		Port               int    `json:"port" yaml:"port"`
		MaxRequestBodySize string `json:"maxRequestBodySize" yaml:"maxRequestBodySize"`
		// TrustedProxies lists proxy CIDRs or IPs whose X-Forwarded-For hops are believed.
		// Empty means rate limits key on the socket peer alone.
		TrustedProxies []string `json:"trustedProxies" yaml:"trustedProxies"`
		Timeouts           struct {
			ReadTimeout       time.Duration `json:"readTimeout" yaml:"readTimeout"`
			ReadHeaderTimeout time.Duration `json:"readHeaderTimeout" yaml:"readHeaderTimeout"`
			WriteTimeout      time.Duration `json:"writeTimeout" yaml:"writeTimeout"`
			IdleTimeout       time.Duration `json:"idleTimeout" yaml:"idleTimeout"`
		} `json:"timeouts" yaml:"timeouts"`
	} `json:"http" yaml:"http"`

	// Session configures the application session cookie minted from Firebase ID tokens
	Session *SessionConfig `json:"session" yaml:"session"`

	// Firebase configuration for identity verification and Firestore
	Firebase *FirebaseConfig `json:"firebase" yaml:"firebase"`

	// Postgres holds the signup store connection
	Postgres *PostgresConfig `json:"postgres" yaml:"postgres"`

	// Redis is optional; when set it can back shared rate limit counters
	Redis *RedisConfig `json:"redis" yaml:"redis"`

	RateLimit *RateLimitConfig `json:"rateLimit" yaml:"rateLimit"`

	CORS *CORSConfig `json:"cors" yaml:"cors"`

	Chat *ChatConfig `json:"chat" yaml:"chat"`

	Mail *MailConfig `json:"mail" yaml:"mail"`

	// Storage configures the avatar bucket
	Storage *StorageConfig `json:"storage" yaml:"storage"`

	// PubSub configuration for event publishing
	PubSub *PubSubConfig `json:"pubsub" yaml:"pubsub"`

	Sentry *SentryConfig `json:"sentry" yaml:"sentry"`

	// Static serves the built front end in production
	Static *StaticConfig `json:"static" yaml:"static"`

	// Debug routes are only mounted when enabled
	Debug *DebugConfig `json:"debug" yaml:"debug"`

	Worker *WorkerConfig `json:"worker" yaml:"worker"`
}

type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
}

// SessionConfig defines the signing secret and lifetime of the session cookie
type SessionConfig struct {
	Secret     string        `json:"secret" yaml:"secret"`
	TTL        time.Duration `json:"ttl" yaml:"ttl"`
	CookieName string        `json:"cookieName" yaml:"cookieName"`
}

// FirebaseConfig defines Firebase Admin SDK configuration
type FirebaseConfig struct {
	ProjectID       string `json:"projectId" yaml:"projectId"`
	CredentialsPath string `json:"credentialsPath" yaml:"credentialsPath"`
}

type PostgresConfig struct {
	URL             string        `json:"url" yaml:"url"`
	MaxOpenConns    int           `json:"maxOpenConns" yaml:"maxOpenConns"`
	MaxIdleConns    int           `json:"maxIdleConns" yaml:"maxIdleConns"`
	ConnMaxLifetime time.Duration `json:"connMaxLifetime" yaml:"connMaxLifetime"`
	AutoMigrate     bool          `json:"autoMigrate" yaml:"autoMigrate"`
}

type RedisConfig struct {
	Addr     string `json:"addr" yaml:"addr"`
	Password string `json:"password" yaml:"password"`
	DB       int    `json:"db" yaml:"db"`
}

// RateLimitConfig defines the per-IP limits. Backend is "memory" or "redis".
type RateLimitConfig struct {
	Backend string    `json:"backend" yaml:"backend"`
	Global  LimitRule `json:"global" yaml:"global"`
	Signup  LimitRule `json:"signup" yaml:"signup"`
}

type LimitRule struct {
	Requests int           `json:"requests" yaml:"requests"`
	Window   time.Duration `json:"window" yaml:"window"`
}

type CORSConfig struct {
	AllowedOrigins []string `json:"allowedOrigins" yaml:"allowedOrigins"`
}

// ChatConfig points at an OpenAI-compatible chat completions API
type ChatConfig struct {
	BaseURL      string        `json:"baseUrl" yaml:"baseUrl"`
	APIKey       string        `json:"apiKey" yaml:"apiKey"`
	Model        string        `json:"model" yaml:"model"`
	Timeout      time.Duration `json:"timeout" yaml:"timeout"`
	SystemPrompt string        `json:"systemPrompt" yaml:"systemPrompt"`
}

type MailConfig struct {
	ResendAPIKey string `json:"resendApiKey" yaml:"resendApiKey"`
	From         string `json:"from" yaml:"from"`
	AppURL       string `json:"appUrl" yaml:"appUrl"`
}

// StorageConfig defines where avatars are written. BucketURL is a gocloud.dev URL
// such as gs://my-project.appspot.com, file:///tmp/avatars or mem://.
type StorageConfig struct {
	BucketURL      string `json:"bucketUrl" yaml:"bucketUrl"`
	PublicBaseURL  string `json:"publicBaseUrl" yaml:"publicBaseUrl"`
	MaxAvatarBytes int64  `json:"maxAvatarBytes" yaml:"maxAvatarBytes"`
}

// PubSubConfig defines Pub/Sub configuration for event publishing
type PubSubConfig struct {
	// Provider type: "local" for local HTTP or "google" for Google Pub/Sub
	Provider string `json:"provider" yaml:"provider"`

	ProjectID string `json:"projectId" yaml:"projectId"`

	TopicID string `json:"topicId" yaml:"topicId"`

	// Local HTTP endpoint for development (for local provider)
	LocalEndpoint string `json:"localEndpoint" yaml:"localEndpoint"`
}

type SentryConfig struct {
	DSN        string  `json:"dsn" yaml:"dsn"`
	SampleRate float64 `json:"sampleRate" yaml:"sampleRate"`
}

type StaticConfig struct {
	Enabled bool   `json:"enabled" yaml:"enabled"`
	Root    string `json:"root" yaml:"root"`
}

type DebugConfig struct {
	Enabled bool `json:"enabled" yaml:"enabled"`
}

// WorkerConfig configures the Pub/Sub push worker
type WorkerConfig struct {
	Port         int    `json:"port" yaml:"port"`
	PushAudience string `json:"pushAudience" yaml:"pushAudience"`
}

// IsProduction reports whether the service runs with production settings.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env.Env, EnvProduction)
}

// LoadWithEnv loads .yaml files through koanf.
func LoadWithEnv[T any](currEnv string, configPath ...string) (*T, error) {
	cfg := new(T)
	koanfInstance := koanf.New(".")

	searchPaths := []string{defaultPath}
	if len(configPath) != 0 {
		pwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "os.Getwd")
		}
		for _, path := range configPath {
			searchPaths = append(searchPaths, filepath.Join(pwd, path))
		}
	}

	var configFile string
	for _, path := range searchPaths {
		candidate := filepath.Join(path, currEnv+".yaml")
		if _, err := os.Stat(candidate); err == nil {
			configFile = candidate

			break
		}
	}

	if configFile == "" {
		return nil, errors.Errorf("config file %s.yaml not found in any search path", currEnv)
	}

	if err := koanfInstance.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		return nil, errors.Wrapf(err, "read %s config failed", currEnv)
	}

	existingConfigMap := koanfInstance.Raw()

	// ENV_VAR_NAME is mapped onto the existing YAML key path, e.g. SESSION_COOKIENAME -> session.cookieName
	if err := koanfInstance.Load(env.Provider(".", env.Opt{
		TransformFunc: func(k, v string) (string, any) {
			return canonicalizeEnvKey(k, existingConfigMap), v
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables failed")
	}

	if err := koanfInstance.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
			MatchName: func(mapKey, fieldName string) bool {
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

	if err := applyLegacyEnv(cfg, os.Getenv); err != nil {
		return nil, err
	}
	applyDefaults(cfg)

	return cfg, nil
}

// applyLegacyEnv maps the environment names inherited from the Node deployment
// (APP_JWT_SECRET, DATABASE_URL, ...) onto their config keys.
func applyLegacyEnv(cfg *Config, getenv func(string) string) error {
	if v := getenv("NODE_ENV"); v != "" {
		cfg.Env.Env = v
	}
	if v := getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return errors.Wrapf(err, "invalid PORT %q", v)
		}
		cfg.HTTP.Port = port
	}
	if v := getenv("APP_JWT_SECRET"); v != "" {
		if cfg.Session == nil {
			cfg.Session = &SessionConfig{}
		}
		cfg.Session.Secret = v
	}
	if v := getenv("DATABASE_URL"); v != "" {
		if cfg.Postgres == nil {
			cfg.Postgres = &PostgresConfig{}
		}
		cfg.Postgres.URL = v
	}
	if v := getenv("VITE_FIREBASE_PROJECT_ID"); v != "" {
		if cfg.Firebase == nil {
			cfg.Firebase = &FirebaseConfig{}
		}
		cfg.Firebase.ProjectID = v
	}
	if v := getenv("SENTRY_DSN"); v != "" {
		if cfg.Sentry == nil {
			cfg.Sentry = &SentryConfig{}
		}
		cfg.Sentry.DSN = v
	}

	return nil
}

// Defaults returns a Config carrying only the built-in defaults.
func Defaults() *Config {
	cfg := &Config{}
	applyDefaults(cfg)

	return cfg
}

func applyDefaults(cfg *Config) {
	if strings.TrimSpace(cfg.HTTP.MaxRequestBodySize) == "" {
		cfg.HTTP.MaxRequestBodySize = defaultMaxRequestBodySize
	}
	if cfg.Env.Env == "" {
		cfg.Env.Env = EnvDevelopment
	}
	if cfg.Session == nil {
		cfg.Session = &SessionConfig{}
	}
	if cfg.Session.TTL <= 0 {
		cfg.Session.TTL = defaultSessionTTL
	}
	if cfg.Session.CookieName == "" {
		cfg.Session.CookieName = defaultSessionCookieName
	}
	if cfg.RateLimit == nil {
		cfg.RateLimit = &RateLimitConfig{}
	}
	if cfg.RateLimit.Signup.Requests <= 0 {
		cfg.RateLimit.Signup = LimitRule{Requests: 5, Window: 15 * time.Minute}
	}
	if cfg.RateLimit.Global.Requests <= 0 {
		cfg.RateLimit.Global = LimitRule{Requests: 100, Window: 15 * time.Minute}
	}
	if cfg.Firebase == nil {
		cfg.Firebase = &FirebaseConfig{}
	}
	if cfg.Postgres == nil {
		cfg.Postgres = &PostgresConfig{}
	}
	if cfg.CORS == nil {
		cfg.CORS = &CORSConfig{}
	}
	if cfg.Chat == nil {
		cfg.Chat = &ChatConfig{}
	}
	if cfg.Chat.Timeout <= 0 {
		cfg.Chat.Timeout = defaultChatTimeout
	}
	if cfg.Chat.Model == "" {
		cfg.Chat.Model = defaultChatModel
	}
	if strings.TrimSpace(cfg.Chat.SystemPrompt) == "" {
		cfg.Chat.SystemPrompt = defaultChatSystemPrompt
	}
	if cfg.Mail == nil {
		cfg.Mail = &MailConfig{}
	}
	if cfg.Storage == nil {
		cfg.Storage = &StorageConfig{}
	}
	if cfg.Storage.BucketURL == "" {
		cfg.Storage.BucketURL = "mem://"
	}
	if cfg.Storage.MaxAvatarBytes <= 0 {
		cfg.Storage.MaxAvatarBytes = defaultMaxAvatarBytes
	}
	if cfg.PubSub == nil {
		cfg.PubSub = &PubSubConfig{}
	}
	if cfg.Sentry == nil {
		cfg.Sentry = &SentryConfig{}
	}
	if cfg.Static == nil {
		cfg.Static = &StaticConfig{}
	}
	if cfg.Debug == nil {
		cfg.Debug = &DebugConfig{}
	}
	if cfg.Worker == nil {
		cfg.Worker = &WorkerConfig{}
	}
	if cfg.Worker.Port == 0 {
		cfg.Worker.Port = defaultWorkerPort
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
