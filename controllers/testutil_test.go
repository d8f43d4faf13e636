package controllers

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"cleanfoss-backend/config"
)

// setupMockDB swaps the global DB handle for a sqlmock-backed one for the
// duration of the test.
func setupMockDB(t *testing.T) sqlmock.Sqlmock {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	gdb, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	prev := config.DB
	config.DB = gdb
	t.Cleanup(func() {
		config.DB = prev
		sqlDB.Close()
	})

	return mock
}

func init() {
	gin.SetMode(gin.TestMode)
}
