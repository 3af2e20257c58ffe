package models

import (
	"strings"
	"time"

	"chamados/tools"
)

/************************************************
/**** MARK: CHAMADO STATUS ****/
/************************************************/
const CHAMADO_STATUS_NAO_ANALISADA = "NÃO ANALISADA"
const CHAMADO_STATUS_EM_ANALISE = "EM ANÁLISE"
const CHAMADO_STATUS_CONCLUIDA = "CONCLUÍDA"
const CHAMADO_STATUS_RECUSADA = "RECUSADA"

// Chamado representa uma solicitação de suporte.
// NmChamado é gerado na criação (ano + sequência) e nunca muda.
type Chamado struct {
	ID                int64      `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	NmChamado         string     `gorm:"column:nm_chamado;type:varchar(8);not null;unique" json:"nm_chamado"`
	NomeSolicitante   string     `gorm:"column:nome_solicitante;not null" json:"nome_solicitante"`
	EmailSolicitante  string     `gorm:"column:email_solicitante;not null;index" json:"email_solicitante"`
	AreaSetor         string     `gorm:"column:area_setor;type:varchar(100)" json:"area_setor"`
	GestorResponsavel string     `gorm:"column:gestor_responsavel" json:"gestor_responsavel"`
	Titulo            string     `gorm:"column:titulo;default:''" json:"titulo"`
	DataAbertura      *time.Time `gorm:"column:data_abertura;type:date" json:"data_abertura"`
	TipoSolicitacao   string     `gorm:"column:tipo_solicitacao;type:varchar(100)" json:"tipo_solicitacao"`
	Impacto           string     `gorm:"column:impacto;type:varchar(50)" json:"impacto"`
	AreaAnalise       string     `gorm:"column:area_analise;type:varchar(100)" json:"area_analise"`
	Descricao         string     `gorm:"column:descricao;type:text;not null" json:"descricao"`
	StatusAtual       string     `gorm:"column:status_atual;type:varchar(50);default:'NÃO ANALISADA'" json:"status_atual"`
	Devolutiva        *string    `gorm:"column:devolutiva;type:text" json:"devolutiva"`
	DataConclusao     *time.Time `gorm:"column:data_conclusao;type:date" json:"data_conclusao"`
	CreatedAt         *time.Time `json:"created_at"`
	UpdatedAt         *time.Time `json:"updated_at"`
}

func (Chamado) TableName() string { return "chamados" }

// ChamadoInput é o corpo aceito na abertura de um chamado.
type ChamadoInput struct {
	Nome            string `json:"nome" form:"nome"`
	Email           string `json:"email" form:"email"`
	Area            string `json:"area" form:"area"`
	Gestor          string `json:"gestor" form:"gestor"`
	Titulo          string `json:"titulo" form:"titulo"`
	Tipo            string `json:"tipo" form:"tipo"`
	Impacto         string `json:"impacto" form:"impacto"`
	AreaSolicitacao string `json:"area_solicitacao" form:"area_solicitacao"`
	Descricao       string `json:"descricao" form:"descricao"`
}

func (in ChamadoInput) MissingFields() string {
	if strings.TrimSpace(in.Nome) == "" {
		return "nome"
	} else if strings.TrimSpace(in.Email) == "" {
		return "email"
	} else if strings.TrimSpace(in.Descricao) == "" {
		return "descricao"
	}
	return ""
}

// Validate devolve *ValidationError quando falta campo obrigatório ou o e-mail é inválido.
func (in ChamadoInput) Validate() error {
	if missing := in.MissingFields(); missing != "" {
		return MissingField(missing)
	}
	if !tools.ValidateEmail(strings.TrimSpace(in.Email)) {
		return InvalidField("email", "E-mail inválido!")
	}
	return nil
}

// ToChamado mapeia o corpo da requisição para as colunas da tabela.
// NmChamado e DataAbertura ficam a cargo de quem persiste.
func (in ChamadoInput) ToChamado() Chamado {
	return Chamado{
		NomeSolicitante:   strings.TrimSpace(in.Nome),
		EmailSolicitante:  strings.TrimSpace(in.Email),
		AreaSetor:         in.Area,
		GestorResponsavel: in.Gestor,
		Titulo:            in.Titulo,
		TipoSolicitacao:   in.Tipo,
		Impacto:           in.Impacto,
		AreaAnalise:       in.AreaSolicitacao,
		Descricao:         in.Descricao,
		StatusAtual:       CHAMADO_STATUS_NAO_ANALISADA,
	}
}

// ChamadoUpdate é a devolutiva da equipe de análise.
type ChamadoUpdate struct {
	StatusAtual *string `json:"status_atual" form:"status_atual"`
	Devolutiva  *string `json:"devolutiva" form:"devolutiva"`
}

func (u ChamadoUpdate) Validate() error {
	if u.StatusAtual == nil && u.Devolutiva == nil {
		return InvalidField("status_atual", "Nada para atualizar (status_atual ou devolutiva)")
	}
	if u.StatusAtual != nil && !IsChamadoStatus(*u.StatusAtual) {
		return InvalidField("status_atual", "status_atual inválido")
	}
	return nil
}

func IsChamadoStatus(s string) bool {
	switch s {
	case CHAMADO_STATUS_NAO_ANALISADA, CHAMADO_STATUS_EM_ANALISE, CHAMADO_STATUS_CONCLUIDA, CHAMADO_STATUS_RECUSADA:
		return true
	}
	return false
}
