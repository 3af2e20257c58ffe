package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"chamados/models"
	"chamados/store"

	"github.com/gin-gonic/gin"
)

func RespondError(c *gin.Context, msg string, code int) {
	c.JSON(code, gin.H{"message": msg})
}

func RespondSuccess(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

func RespondCreated(c *gin.Context, payload any) {
	c.JSON(http.StatusCreated, payload)
}

// RespondAppError traduz os erros de validação, não encontrado e persistência
// em 400, 404 e 500. internalMsg é a mensagem mostrada nos erros 500.
func RespondAppError(c *gin.Context, err error, internalMsg string) {
	var (
		verr *models.ValidationError
		nerr *store.NotFoundError
		perr *store.PersistenceError
	)
	switch {
	case errors.As(err, &verr):
		RespondError(c, verr.Message, http.StatusBadRequest)
	case errors.As(err, &nerr):
		RespondError(c, nerr.Error(), http.StatusNotFound)
	case errors.As(err, &perr):
		slog.Error(internalMsg, slog.String("op", perr.Op), slog.String("error", perr.Err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"message": internalMsg, "details": perr.Err.Error()})
	default:
		slog.Error(internalMsg, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"message": internalMsg, "details": err.Error()})
	}
}
