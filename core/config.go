package core

import (
	"log"
	"net"
	"net/mail"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Storage backends
const (
	BackendDummy    = "dummy"
	BackendPostgres = "postgres"
	BackendSqlx     = "sqlx"
	BackendBolt     = "bolt"
	BackendRemote   = "remote"
)

type (
	Config struct {
		Env       string `mapstructure:"env"`
		Build     string `mapstructure:"build"`
		AppName   string `mapstructure:"appName"`
		Debug     bool   `mapstructure:"debug"`
		TestMode  bool   `mapstructure:"testMode"`
		SecretKey string `mapstructure:"secretKey"`

		RollbarToken string `mapstructure:"rollbarToken"`

		Server   ServerConfig   `mapstructure:"server"`
		Storage  StorageConfig  `mapstructure:"storage"`
		Database DatabaseConfig `mapstructure:"database"`
		Bolt     BoltConfig     `mapstructure:"bolt"`
		Remote   RemoteConfig   `mapstructure:"remote"`
		Redis    RedisConfig    `mapstructure:"redis"`
		B2       B2Config       `mapstructure:"b2"`
		Email    EmailConfig    `mapstructure:"email"`
		Grading  GradingConfig  `mapstructure:"grading"`
	}

	ServerConfig struct {
		Host               string        `mapstructure:"host"`
		DebugHost          string        `mapstructure:"debugHost"`
		ShutdownTimeout    time.Duration `mapstructure:"shutdownTimeout"`
		AuthEnabled        bool          `mapstructure:"authEnabled"`
		JWTExpirationDelta time.Duration `mapstructure:"jwtExpirationDelta"`
	}

	StorageConfig struct {
		Backend      string        `mapstructure:"backend"`
		FixtureDelay time.Duration `mapstructure:"fixtureDelay"`
	}

	DatabaseConfig struct {
		Engine        string `mapstructure:"engine"`
		Host          string `mapstructure:"host"`
		Port          string `mapstructure:"port"`
		Name          string `mapstructure:"name"`
		User          string `mapstructure:"user"`
		Password      string `mapstructure:"password"`
		AdminUser     string `mapstructure:"adminUser"`
		AdminPassword string `mapstructure:"adminPassword"`
		DisableTLS    bool   `mapstructure:"disableTLS"`
	}

	BoltConfig struct {
		Path string `mapstructure:"path"`
	}

	RemoteConfig struct {
		BaseURL   string        `mapstructure:"baseURL"`
		ProjectID string        `mapstructure:"projectID"`
		PublicKey string        `mapstructure:"publicKey"`
		Timeout   time.Duration `mapstructure:"timeout"`
	}

	RedisConfig struct {
		Enabled  bool          `mapstructure:"enabled"`
		Addr     string        `mapstructure:"addr"`
		Password string        `mapstructure:"password"`
		DB       int           `mapstructure:"db"`
		TTL      time.Duration `mapstructure:"ttl"`
	}

	B2Config struct {
		AccountID string `mapstructure:"accountID"`
		AppKey    string `mapstructure:"appKey"`
		Bucket    string `mapstructure:"bucket"`
	}

	EmailConfig struct {
		SendgridApiKey   string `mapstructure:"sendgridApiKey"`
		DefaultFromName  string `mapstructure:"defaultFromName"`
		DefaultFromEmail string `mapstructure:"defaultFromEmail"`
	}

	GradingConfig struct {
		UpcomingDays int `mapstructure:"upcomingDays"`
	}
)

func (db DatabaseConfig) Address() string {
	return net.JoinHostPort(db.Host, db.Port)
}

func (ec EmailConfig) DefaultFrom() mail.Address {
	return mail.Address{Name: ec.DefaultFromName, Address: ec.DefaultFromEmail}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("build", "develop")
	v.SetDefault("appName", "StudyHub")
	v.SetDefault("debug", true)
	v.SetDefault("testMode", false)
	v.SetDefault("secretKey", "k3u!o4)lz8-w_v=9#s0d^6m2q+7jx(t5b%ny&1ecrfhpga")
	v.SetDefault("rollbarToken", "")

	v.SetDefault("server.host", ":8000")
	v.SetDefault("server.debugHost", ":4000")
	v.SetDefault("server.shutdownTimeout", 5*time.Second)
	v.SetDefault("server.authEnabled", false)
	v.SetDefault("server.jwtExpirationDelta", 30*24*time.Hour)

	v.SetDefault("storage.backend", BackendDummy)
	v.SetDefault("storage.fixtureDelay", 300*time.Millisecond)

	v.SetDefault("database.engine", "postgres")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.name", "studyhub")
	v.SetDefault("database.user", "studyhub")
	v.SetDefault("database.password", "")
	v.SetDefault("database.adminUser", "")
	v.SetDefault("database.adminPassword", "")
	v.SetDefault("database.disableTLS", true)

	v.SetDefault("bolt.path", filepath.Join("data", "studyhub.db"))

	v.SetDefault("remote.baseURL", "")
	v.SetDefault("remote.projectID", "")
	v.SetDefault("remote.publicKey", "")
	v.SetDefault("remote.timeout", 10*time.Second)

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.ttl", 5*time.Minute)

	v.SetDefault("b2.accountID", "")
	v.SetDefault("b2.appKey", "")
	v.SetDefault("b2.bucket", "")

	v.SetDefault("email.sendgridApiKey", "")
	v.SetDefault("email.defaultFromName", "StudyHub")
	v.SetDefault("email.defaultFromEmail", "noreply@localhost")

	v.SetDefault("grading.upcomingDays", 7)
}

// NewConfig loads the app configuration from defaults, `config/.env.<env>` (if any) and the environment.
// Env vars are prefixed by the environment name, nested keys are separated by "_" (e.g. DEV_STORAGE_BACKEND).
func NewConfig() *Config {
	v := viper.New()
	v.SetTypeByDefaultValue(true)
	setDefaults(v)

	env := strings.ToUpper(os.Getenv("ENV")) // DEV (local; default), TEST, QA, PROD
	if env == "" {
		env = "DEV"
	}
	if env == "TEST" {
		v.SetDefault("testMode", true)
		v.SetDefault("storage.fixtureDelay", time.Duration(0))
	}
	v.SetDefault("env", env)
	v.SetEnvPrefix(env)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(ProjectRoot(), "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	v.AutomaticEnv()

	conf := new(Config)
	if err := v.Unmarshal(conf); err != nil {
		log.Fatalf("config.Unmarshal: %v", err)
	}
	return conf
}
