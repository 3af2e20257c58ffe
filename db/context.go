package db

import (
	"chamados/store"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/gorm"
)

const dbKey = "db"

// Inject coloca o pool no contexto de cada requisição.
func Inject(database *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(dbKey, database)
		c.Next()
	}
}

// FromContext devolve o pool injetado, ou nil se o middleware não rodou.
func FromContext(c *gin.Context) *gorm.DB {
	v, ok := c.Get(dbKey)
	if !ok {
		return nil
	}
	database, _ := v.(*gorm.DB)
	return database
}

func Chamados(c *gin.Context) *store.Chamados {
	if database := FromContext(c); database != nil {
		return store.NewChamados(database)
	}
	return nil
}

func Colaboradores(c *gin.Context) *store.Colaboradores {
	if database := FromContext(c); database != nil {
		return store.NewColaboradores(database)
	}
	return nil
}
