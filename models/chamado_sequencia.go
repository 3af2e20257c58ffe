package models

import "time"

// ChamadoSequencia guarda o último número de chamado emitido em cada ano.
// A linha do ano é travada durante a abertura de um chamado.
type ChamadoSequencia struct {
	Ano         int        `gorm:"column:ano;primary_key;AUTO_INCREMENT:false" json:"ano"`
	UltimoValor int        `gorm:"column:ultimo_valor;not null;default:0" json:"ultimo_valor"`
	UpdatedAt   *time.Time `json:"updated_at"`
}

func (ChamadoSequencia) TableName() string { return "chamado_sequencias" }
