package models

import (
	"strings"
	"time"

	"chamados/tools"
)

const COLABORADOR_PERFIL_SOLICITANTE = "solicitante"
const COLABORADOR_PERFIL_ANALISTA = "analista"
const COLABORADOR_PERFIL_ADMIN = "admin"

// Colaborador é o perfil usado no login. Senha guarda só o hash Argon2id.
type Colaborador struct {
	ID        int64      `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	Nome      string     `gorm:"column:nome;not null" json:"nome"`
	Email     string     `gorm:"column:email;not null;unique" json:"email"`
	Senha     string     `gorm:"column:senha;not null" json:"-"`
	Area      string     `gorm:"column:area" json:"area"`
	Cargo     string     `gorm:"column:cargo" json:"cargo"`
	Gestor    string     `gorm:"column:gestor" json:"gestor"`
	Perfil    string     `gorm:"column:perfil;default:'solicitante'" json:"perfil"`
	CreatedAt *time.Time `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

func (Colaborador) TableName() string { return "login" }

// ColaboradorInput é o corpo de criação e de atualização.
// Na atualização só os campos enviados são aplicados.
type ColaboradorInput struct {
	Nome   *string `json:"nome" form:"nome"`
	Email  *string `json:"email" form:"email"`
	Senha  *string `json:"senha" form:"senha"`
	Area   *string `json:"area" form:"area"`
	Cargo  *string `json:"cargo" form:"cargo"`
	Gestor *string `json:"gestor" form:"gestor"`
	Perfil *string `json:"perfil" form:"perfil"`
}

func str(p *string) string {
	if p == nil {
		return ""
	}
	return strings.TrimSpace(*p)
}

func (in ColaboradorInput) MissingFields() string {
	if str(in.Nome) == "" {
		return "nome"
	} else if str(in.Email) == "" {
		return "email"
	} else if str(in.Senha) == "" {
		return "senha"
	}
	return ""
}

func (in ColaboradorInput) ValidateCreate() error {
	if missing := in.MissingFields(); missing != "" {
		return MissingField(missing)
	}
	return in.validateValues()
}

func (in ColaboradorInput) ValidateUpdate() error {
	if in.Nome != nil && str(in.Nome) == "" {
		return InvalidField("nome", "nome não pode ser vazio")
	}
	if in.Email != nil && str(in.Email) == "" {
		return InvalidField("email", "email não pode ser vazio")
	}
	return in.validateValues()
}

func (in ColaboradorInput) validateValues() error {
	if in.Email != nil && !tools.ValidateEmail(str(in.Email)) {
		return InvalidField("email", "E-mail inválido!")
	}
	// a senha é guardada como enviada, então o tamanho também conta os espaços
	if str(in.Senha) != "" && tools.CheckPassword(*in.Senha) != "" {
		return InvalidField("senha", "senha deve ter ao menos 6 caracteres")
	}
	if in.Perfil != nil && !IsColaboradorPerfil(str(in.Perfil)) {
		return InvalidField("perfil", "perfil inválido")
	}
	return nil
}

func IsColaboradorPerfil(p string) bool {
	switch p {
	case COLABORADOR_PERFIL_SOLICITANTE, COLABORADOR_PERFIL_ANALISTA, COLABORADOR_PERFIL_ADMIN:
		return true
	}
	return false
}

// ToColaborador monta o registro de criação. A senha ainda precisa ser hasheada.
func (in ColaboradorInput) ToColaborador() Colaborador {
	c := Colaborador{
		Nome:   str(in.Nome),
		Email:  str(in.Email),
		Area:   str(in.Area),
		Cargo:  str(in.Cargo),
		Gestor: str(in.Gestor),
		Perfil: str(in.Perfil),
	}
	if c.Perfil == "" {
		c.Perfil = COLABORADOR_PERFIL_SOLICITANTE
	}
	return c
}

// Changes devolve as colunas a atualizar, sem a senha.
func (in ColaboradorInput) Changes() map[string]interface{} {
	changes := map[string]interface{}{}
	if in.Nome != nil {
		changes["nome"] = str(in.Nome)
	}
	if in.Email != nil {
		changes["email"] = str(in.Email)
	}
	if in.Area != nil {
		changes["area"] = str(in.Area)
	}
	if in.Cargo != nil {
		changes["cargo"] = str(in.Cargo)
	}
	if in.Gestor != nil {
		changes["gestor"] = str(in.Gestor)
	}
	if in.Perfil != nil {
		changes["perfil"] = str(in.Perfil)
	}
	return changes
}
