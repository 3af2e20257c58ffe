package controllers

import (
	"errors"
	"net/http"

	dbpkg "chamados/db"
	"chamados/models"
	"chamados/store"

	"github.com/gin-gonic/gin"
)

type LoginRequest struct {
	Email string `json:"email" form:"email"`
	Senha string `json:"senha" form:"senha"`
}

type LoginResponse struct {
	Message     string             `json:"message"`
	Colaborador models.Colaborador `json:"colaborador"`
}

// POST /api/login
func Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	colaboradores := dbpkg.Colaboradores(c)
	if colaboradores == nil {
		RespondError(c, msgNoDB, http.StatusInternalServerError)
		return
	}

	colaborador, err := colaboradores.Authenticate(req.Email, req.Senha)
	if errors.Is(err, store.ErrInvalidCredentials) {
		RespondError(c, "usuário ou senha inválidos", http.StatusUnauthorized)
		return
	}
	if err != nil {
		RespondAppError(c, err, "Erro interno do servidor ao validar o login.")
		return
	}

	RespondSuccess(c, LoginResponse{Message: "Login realizado com sucesso", Colaborador: colaborador})
}
