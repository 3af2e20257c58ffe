package controllers

import (
	"net/http"

	dbpkg "chamados/db"
	"chamados/models"

	"github.com/gin-gonic/gin"
)

// GET /api/colaboradores
func GetColaboradores(c *gin.Context) {
	colaboradores := dbpkg.Colaboradores(c)
	if colaboradores == nil {
		RespondError(c, msgNoDB, http.StatusInternalServerError)
		return
	}

	list, err := colaboradores.List()
	if err != nil {
		RespondAppError(c, err, "Erro interno do servidor ao listar colaboradores.")
		return
	}
	RespondSuccess(c, gin.H{"colaboradores": list})
}

// GET /api/colaboradores/:id
func GetColaboradorByID(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	colaboradores := dbpkg.Colaboradores(c)
	if colaboradores == nil {
		RespondError(c, msgNoDB, http.StatusInternalServerError)
		return
	}

	colaborador, err := colaboradores.Get(id)
	if err != nil {
		RespondAppError(c, err, "Erro interno do servidor ao buscar colaborador.")
		return
	}
	RespondSuccess(c, gin.H{"colaborador": colaborador})
}

// POST /api/colaboradores
func CreateColaborador(c *gin.Context) {
	var in models.ColaboradorInput
	if err := c.ShouldBind(&in); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	colaboradores := dbpkg.Colaboradores(c)
	if colaboradores == nil {
		RespondError(c, msgNoDB, http.StatusInternalServerError)
		return
	}

	colaborador, err := colaboradores.Create(in)
	if err != nil {
		RespondAppError(c, err, "Erro interno do servidor ao cadastrar colaborador.")
		return
	}
	RespondCreated(c, gin.H{"colaborador": colaborador})
}

// PUT /api/colaboradores/:id
func UpdateColaborador(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	var in models.ColaboradorInput
	if err := c.ShouldBind(&in); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	colaboradores := dbpkg.Colaboradores(c)
	if colaboradores == nil {
		RespondError(c, msgNoDB, http.StatusInternalServerError)
		return
	}

	colaborador, err := colaboradores.Update(id, in)
	if err != nil {
		RespondAppError(c, err, "Erro interno do servidor ao atualizar colaborador.")
		return
	}
	RespondSuccess(c, gin.H{"colaborador": colaborador})
}

// DELETE /api/colaboradores/:id
func DeleteColaborador(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	colaboradores := dbpkg.Colaboradores(c)
	if colaboradores == nil {
		RespondError(c, msgNoDB, http.StatusInternalServerError)
		return
	}

	if err := colaboradores.Delete(id); err != nil {
		RespondAppError(c, err, "Erro interno do servidor ao remover colaborador.")
		return
	}
	RespondSuccess(c, gin.H{"status": "deleted"})
}
