package controllers

import (
	"net/http"

	dbpkg "chamados/db"

	"github.com/gin-gonic/gin"
)

// GET /health
func Health(c *gin.Context) {
	database := dbpkg.FromContext(c)
	if database == nil || database.DB().Ping() != nil {
		c.String(http.StatusServiceUnavailable, "db indisponível")
		return
	}
	c.String(http.StatusOK, "ok")
}
