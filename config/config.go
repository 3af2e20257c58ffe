package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/spf13/viper"
)

const envPrefix = "CHAMADOS"

type Configuration struct {
	ApiPort   string `mapstructure:"api_port"`
	LogPath   string `mapstructure:"log_path"`
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"` // "json" ou "text"

	Database string `mapstructure:"database"` // "mysql", "postgres" ou "sqlite3"
	DbHost   string `mapstructure:"db_host"`
	DbPort   string `mapstructure:"db_port"`
	DbUser   string `mapstructure:"db_user"`
	DbName   string `mapstructure:"db_name"`
	DbPass   string `mapstructure:"db_pass"`
	DbPath   string `mapstructure:"db_path"` // só para sqlite3

	DbPool struct {
		MaxOpenConns       int `mapstructure:"max_open_conns"`
		MaxIdleConns       int `mapstructure:"max_idle_conns"`
		ConnMaxLifetimeMin int `mapstructure:"conn_max_lifetime_minutes"`
	} `mapstructure:"db_pool"`

	AutoMigrate bool `mapstructure:"auto_migrate"`

	CORS struct {
		AllowOrigins []string `mapstructure:"allow_origins"`
	} `mapstructure:"cors"`

	Security struct {
		Password struct {
			MemoryKiB   uint32 `mapstructure:"memory_kib"`
			Iterations  uint32 `mapstructure:"iterations"`
			Parallelism uint8  `mapstructure:"parallelism"`
		} `mapstructure:"password"`
	} `mapstructure:"security"`
}

// Read carrega o arquivo JSON em path. Variáveis CHAMADOS_* sobrescrevem as chaves
// (ex: CHAMADOS_DB_HOST sobrescreve db_host). Arquivo ausente não é erro.
func Read(path string) (Configuration, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindEnvKeys(v)

	var c Configuration
	if err := v.ReadInConfig(); err != nil {
		if !isNotFound(err) {
			return c, fmt.Errorf("lendo config %s: %w", path, err)
		}
	}
	if err := v.Unmarshal(&c); err != nil {
		return c, fmt.Errorf("decodificando config: %w", err)
	}

	applyDefaults(&c)
	if err := c.Validate(); err != nil {
		return c, err
	}
	return c, nil
}

// AutomaticEnv só enxerga chaves que o viper já conhece.
func bindEnvKeys(v *viper.Viper) {
	for _, k := range []string{
		"api_port", "log_path", "log_level", "log_format",
		"database", "db_host", "db_port", "db_user", "db_name", "db_pass", "db_path",
		"db_pool.max_open_conns", "db_pool.max_idle_conns", "db_pool.conn_max_lifetime_minutes",
		"auto_migrate",
	} {
		_ = v.BindEnv(k)
	}
}

func isNotFound(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist)
}

func applyDefaults(c *Configuration) {
	if c.ApiPort == "" {
		c.ApiPort = "3000"
	}
	if c.LogPath == "" {
		c.LogPath = "logs/server.log"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.LogFormat == "" {
		c.LogFormat = "json"
	}
	if c.Database == "" {
		c.Database = "mysql"
	}
	if c.DbHost == "" {
		c.DbHost = "localhost"
	}
	if c.DbPort == "" {
		switch c.Database {
		case "postgres", "postgresql":
			c.DbPort = "5432"
		default:
			c.DbPort = "3306"
		}
	}
	if c.DbName == "" {
		c.DbName = "credenciais"
	}
	if c.DbPath == "" {
		c.DbPath = "db/database.db"
	}
	if c.DbPool.MaxOpenConns <= 0 {
		c.DbPool.MaxOpenConns = 10
	}
	if c.DbPool.MaxIdleConns <= 0 {
		c.DbPool.MaxIdleConns = 5
	}
	if c.DbPool.ConnMaxLifetimeMin <= 0 {
		c.DbPool.ConnMaxLifetimeMin = 30
	}
	if len(c.CORS.AllowOrigins) == 0 {
		c.CORS.AllowOrigins = []string{"*"}
	}
	if c.Security.Password.MemoryKiB == 0 {
		c.Security.Password.MemoryKiB = 64 * 1024
	}
	if c.Security.Password.Iterations == 0 {
		c.Security.Password.Iterations = 3
	}
	if c.Security.Password.Parallelism == 0 {
		c.Security.Password.Parallelism = 2
	}
}

func (c Configuration) Validate() error {
	switch c.Database {
	case "mysql", "postgres", "postgresql", "sqlite3":
	default:
		return fmt.Errorf("database %q não suportado (use mysql, postgres ou sqlite3)", c.Database)
	}
	if c.Database != "sqlite3" && c.DbUser == "" {
		return fmt.Errorf("db_user é obrigatório para %s", c.Database)
	}
	return nil
}
