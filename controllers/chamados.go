package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	dbpkg "chamados/db"
	"chamados/models"
	"chamados/store"

	"github.com/gin-gonic/gin"
)

// POST /api/chamados
func CreateChamado(c *gin.Context) {
	var in models.ChamadoInput
	if err := c.ShouldBind(&in); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	if err := in.Validate(); err != nil {
		RespondAppError(c, err, "Erro interno do servidor ao registrar o chamado.")
		return
	}

	chamados := dbpkg.Chamados(c)
	if chamados == nil {
		RespondError(c, msgNoDB, http.StatusInternalServerError)
		return
	}

	chamado, err := chamados.Create(in)
	if err != nil {
		RespondAppError(c, err, "Erro interno do servidor ao registrar o chamado.")
		return
	}

	slog.Info("chamado inserido", slog.Int64("id", chamado.ID), slog.String("nm_chamado", chamado.NmChamado))
	RespondCreated(c, gin.H{
		"message":    "Chamado registrado com sucesso!",
		"id":         chamado.ID,
		"nm_chamado": chamado.NmChamado,
	})
}

// GET /api/chamados/search?nm_chamado=...|email=...
func SearchChamados(c *gin.Context) {
	chamados := dbpkg.Chamados(c)
	if chamados == nil {
		RespondError(c, msgNoDB, http.StatusInternalServerError)
		return
	}

	result, err := chamados.Search(c.Query("nm_chamado"), c.Query("email"))
	if err != nil {
		var nerr *store.NotFoundError
		if errors.As(err, &nerr) {
			RespondError(c, "Nenhum chamado encontrado para o critério de busca fornecido.", http.StatusNotFound)
			return
		}
		RespondAppError(c, err, "Erro interno do servidor ao buscar chamados.")
		return
	}
	RespondSuccess(c, result)
}

// GET /api/chamados?status=&limit=&offset=
func ListChamados(c *gin.Context) {
	chamados := dbpkg.Chamados(c)
	if chamados == nil {
		RespondError(c, msgNoDB, http.StatusInternalServerError)
		return
	}

	list, total, err := chamados.List(c.Query("status"), queryInt(c, "limit", 50), queryInt(c, "offset", 0))
	if err != nil {
		RespondAppError(c, err, "Erro interno do servidor ao listar chamados.")
		return
	}
	RespondSuccess(c, gin.H{"chamados": list, "total": total})
}

// GET /api/chamados/:nm_chamado
func GetChamado(c *gin.Context) {
	chamados := dbpkg.Chamados(c)
	if chamados == nil {
		RespondError(c, msgNoDB, http.StatusInternalServerError)
		return
	}

	chamado, err := chamados.Get(c.Param("nm_chamado"))
	if err != nil {
		RespondAppError(c, err, "Erro interno do servidor ao buscar o chamado.")
		return
	}
	RespondSuccess(c, chamado)
}

// PUT /api/chamados/:nm_chamado
func RespondChamado(c *gin.Context) {
	var u models.ChamadoUpdate
	if err := c.ShouldBind(&u); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	chamados := dbpkg.Chamados(c)
	if chamados == nil {
		RespondError(c, msgNoDB, http.StatusInternalServerError)
		return
	}

	chamado, err := chamados.Respond(c.Param("nm_chamado"), u)
	if err != nil {
		RespondAppError(c, err, "Erro interno do servidor ao atualizar o chamado.")
		return
	}
	slog.Info("chamado atualizado", slog.String("nm_chamado", chamado.NmChamado), slog.String("status", chamado.StatusAtual))
	RespondSuccess(c, chamado)
}
