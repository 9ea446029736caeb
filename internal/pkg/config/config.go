package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"

	"github.com/catalogshop/catalog-api/internal/infrastructure/jws"
)

type Config struct {
	Port     string `env:"PORT,      default=8443"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// Served over HTTPS when both are set.
	TLSCertFile string `env:"TLS_CERT_FILE"`
	TLSKeyFile  string `env:"TLS_KEY_FILE"`

	Mongo MongoConfig
	Redis RedisConfig
	JWT   JWTConfig
	IAM   IAMConfig
	Mail  MailConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=catalog"`
}

type RedisConfig struct {
	Addr     string        `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string        `env:"REDIS_PASSWORD"`
	DB       int           `env:"REDIS_DB,       default=0"`
	CacheTTL time.Duration `env:"CACHE_TTL,      default=5m"`
}

type JWTConfig struct {
	Algorithm jws.Algorithm `env:"JWT_ALGORITHM, default=RS256"`
	Issuer    string        `env:"JWT_ISSUER,    default=https://catalog.example/shop"`
	TTL       time.Duration `env:"JWT_TTL,       default=24h"`
	Bearer    string        `env:"JWT_BEARER,    default=Bearer"`
	Realm     string        `env:"JWT_REALM,     default=catalog.example"`

	Secret        string `env:"JWT_SECRET"`
	RSAPrivateKey string `env:"JWT_RSA_PRIVATE_KEY_FILE, default=config/jwt/rsa-private.pem"`
	RSAPublicKey  string `env:"JWT_RSA_PUBLIC_KEY_FILE,  default=config/jwt/rsa-public.pem"`
	ECPrivateKey  string `env:"JWT_EC_PRIVATE_KEY_FILE,  default=config/jwt/ec-private.pem"`
	ECPublicKey   string `env:"JWT_EC_PUBLIC_KEY_FILE,   default=config/jwt/ec-public.pem"`
}

// KeyFiles returns the key sources for jws.LoadKeys.
func (c JWTConfig) KeyFiles() jws.KeyFiles {
	return jws.KeyFiles{
		Secret:        c.Secret,
		RSAPrivateKey: c.RSAPrivateKey,
		RSAPublicKey:  c.RSAPublicKey,
		ECPrivateKey:  c.ECPrivateKey,
		ECPublicKey:   c.ECPublicKey,
	}
}

type IAMConfig struct {
	// Empty paths use the bundled directories.
	UsersFile string `env:"IAM_USERS_FILE"`
	RolesFile string `env:"IAM_ROLES_FILE"`
	HashCost  int    `env:"BCRYPT_COST, default=10"`
}

type MailConfig struct {
	// No mail is sent over SMTP when Host is empty; mails are only logged.
	Host     string `env:"MAIL_HOST"`
	Port     int    `env:"MAIL_PORT,     default=25"`
	Username string `env:"MAIL_USERNAME"`
	Password string `env:"MAIL_PASSWORD"`
	TLS      bool   `env:"MAIL_TLS,      default=false"`
	From     string `env:"MAIL_FROM,     default=catalog@catalog.example"`
	NotifyTo string `env:"MAIL_NOTIFY_TO, default=joe@doe.mail"`
	Workers  int    `env:"MAIL_WORKERS,  default=2"`
	Queue    int    `env:"MAIL_QUEUE,    default=64"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	cfg, err := LoadFrom(context.Background(), envconfig.OsLookuper())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

// LoadFrom reads configuration from l. An unknown JWT algorithm is rejected
// here rather than at first use.
func LoadFrom(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) IsDevelopment() bool { return c.Env == "development" }

func (c *Config) TLSEnabled() bool { return c.TLSCertFile != "" && c.TLSKeyFile != "" }
