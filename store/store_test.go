package store

import (
	"testing"
	"time"

	"chamados/models"
	"chamados/tools"

	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/sqlite"
	"github.com/stretchr/testify/require"
)

func init() {
	tools.SetPasswordParams(1024, 1, 1)
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	database, err := gorm.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	// :memory: é por conexão
	database.DB().SetMaxOpenConns(1)
	require.NoError(t, database.AutoMigrate(
		&models.Chamado{},
		&models.Colaborador{},
		&models.ChamadoSequencia{},
	).Error)
	t.Cleanup(func() { database.Close() })
	return database
}

func fixedClock(year int, month time.Month, d int) func() time.Time {
	return func() time.Time {
		return time.Date(year, month, d, 14, 30, 0, 0, time.UTC)
	}
}

func strPtr(s string) *string { return &s }
