package config

import (
	"encoding/hex"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"

	defaultRunAddress   = ":8080"
	defaultStoreTimeout = 5 * time.Second
)

type Config struct {
	Env    string
	Server server
	Auth   auth
	Vault  vault
	Blob   blob
	Logger logger
}

type server struct {
	RunAddress string
	PublicURL  string
}

type auth struct {
	// TokenSecret keys the HMAC over issued bearer tokens.
	TokenSecret string
	// Operator credentials: a single configured user, password stored
	// as a bcrypt hash (see vaultctl hash-password).
	OperatorLogin        string
	OperatorPasswordHash string
}

type vault struct {
	// EncryptionKey is the hex-encoded 32-byte AES key protecting
	// secrets at rest. Generated with vaultctl keygen.
	EncryptionKey string
	StoreTimeout  time.Duration
}

type blob struct {
	Driver      string
	DatabaseURI string
	Migrations  string
	SQLitePath  string
	RedisAddr   string
	S3Bucket    string
	S3Region    string
	S3Endpoint  string
}

type logger struct {
	LogLevel string
}

// MustLoad reads configuration from the environment (and an optional .env
// file). Secret material is never defaulted: a missing token secret or
// encryption key is a startup error, not a silent fallback.
func MustLoad() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	viper.AutomaticEnv()

	cfg := &Config{
		Env: viper.GetString("app_env"),
		Server: server{
			RunAddress: viper.GetString("run_address"),
			PublicURL:  viper.GetString("public_url"),
		},
		Auth: auth{
			TokenSecret:          viper.GetString("token_secret"),
			OperatorLogin:        viper.GetString("operator_login"),
			OperatorPasswordHash: viper.GetString("operator_password_hash"),
		},
		Vault: vault{
			EncryptionKey: viper.GetString("vault_encryption_key"),
			StoreTimeout:  viper.GetDuration("store_timeout"),
		},
		Blob: blob{
			Driver:      viper.GetString("blob_driver"),
			DatabaseURI: viper.GetString("database_uri"),
			Migrations:  viper.GetString("migrations_path"),
			SQLitePath:  viper.GetString("sqlite_path"),
			RedisAddr:   viper.GetString("redis_addr"),
			S3Bucket:    viper.GetString("s3_bucket"),
			S3Region:    viper.GetString("s3_region"),
			S3Endpoint:  viper.GetString("s3_endpoint"),
		},
		Logger: logger{LogLevel: viper.GetString("log_level")},
	}

	if cfg.Server.RunAddress == "" {
		cfg.Server.RunAddress = defaultRunAddress
	}
	if cfg.Vault.StoreTimeout == 0 {
		cfg.Vault.StoreTimeout = defaultStoreTimeout
	}

	if err := cfg.Validate(); err != nil {
		log.Fatalln(err)
	}

	return cfg
}

// Validate checks the parts of the configuration the server cannot run
// without.
func (c *Config) Validate() error {
	if c.Auth.TokenSecret == "" {
		return fmt.Errorf("TOKEN_SECRET must be set")
	}
	if c.Auth.OperatorLogin == "" || c.Auth.OperatorPasswordHash == "" {
		return fmt.Errorf("OPERATOR_LOGIN and OPERATOR_PASSWORD_HASH must be set")
	}
	key, err := hex.DecodeString(c.Vault.EncryptionKey)
	if err != nil || len(key) != 32 {
		return fmt.Errorf("VAULT_ENCRYPTION_KEY must be 32 bytes hex")
	}
	return nil
}

// EncryptionKeyBytes decodes the configured vault key. Validate must have
// passed before this is called.
func (c *Config) EncryptionKeyBytes() []byte {
	key, _ := hex.DecodeString(c.Vault.EncryptionKey)
	return key
}
