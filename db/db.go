package db

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"chamados/config"
	"chamados/logs"
	"chamados/models"

	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/mysql"
	_ "github.com/jinzhu/gorm/dialects/postgres"
	_ "github.com/jinzhu/gorm/dialects/sqlite"
)

// Connect abre o pool conforme conf.Database (mysql por padrão) e ajusta os limites.
func Connect(conf config.Configuration, logger *slog.Logger) (*gorm.DB, error) {
	dialect, dsn, err := source(conf)
	if err != nil {
		return nil, err
	}

	logger.Info("conectando ao banco", slog.String("dialect", dialect), slog.String("host", conf.DbHost))
	database, err := gorm.Open(dialect, dsn)
	if err != nil {
		logger.Error("erro ao conectar no banco", slog.String("error", err.Error()))
		return nil, err
	}

	database.SetLogger(logs.GormLogger{Logger: logger})
	database.LogMode(logger.Enabled(context.Background(), slog.LevelDebug))

	sqlDB := database.DB()
	if dialect == "sqlite3" {
		// sqlite aceita um único escritor; uma conexão só enfileira as transações no pool
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(conf.DbPool.MaxOpenConns)
	}
	sqlDB.SetMaxIdleConns(conf.DbPool.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(conf.DbPool.ConnMaxLifetimeMin) * time.Minute)

	if conf.AutoMigrate {
		if err := Migrate(database); err != nil {
			database.Close()
			return nil, err
		}
	}
	return database, nil
}

func source(conf config.Configuration) (string, string, error) {
	switch conf.Database {
	case "mysql":
		return "mysql", fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			conf.DbUser, conf.DbPass, conf.DbHost, conf.DbPort, conf.DbName), nil
	case "postgres", "postgresql":
		return "postgres", fmt.Sprintf("host=%s port=%s user=%s dbname=%s password=%s sslmode=disable",
			conf.DbHost, conf.DbPort, conf.DbUser, conf.DbName, conf.DbPass), nil
	case "sqlite3":
		if conf.DbPath == ":memory:" {
			return "sqlite3", conf.DbPath, nil
		}
		if err := os.MkdirAll(filepath.Dir(conf.DbPath), 0o755); err != nil {
			return "", "", err
		}
		// BEGIN IMMEDIATE pega o lock de escrita no início; outros processos esperam até 5s
		return "sqlite3", conf.DbPath + "?_txlock=immediate&_busy_timeout=5000", nil
	}
	return "", "", fmt.Errorf("database %q não suportado", conf.Database)
}

// Migrate cria/ajusta as tabelas.
func Migrate(database *gorm.DB) error {
	err := database.AutoMigrate(
		&models.Chamado{},
		&models.Colaborador{},
		&models.ChamadoSequencia{},
	).Error
	if err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}
	return nil
}
