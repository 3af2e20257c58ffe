package store

import (
	"strconv"
	"time"

	"chamados/models"
	"chamados/tools"

	"github.com/jinzhu/gorm"
)

// Chamados acessa a tabela de chamados e a sequência anual de números.
type Chamados struct {
	db  *gorm.DB
	now func() time.Time
}

func NewChamados(db *gorm.DB) *Chamados {
	return &Chamados{db: db, now: time.Now}
}

// WithClock troca o relógio usado para o ano do número e a data de abertura.
func (s *Chamados) WithClock(now func() time.Time) *Chamados {
	s.now = now
	return s
}

// Create valida a entrada e abre o chamado em uma única transação:
// trava a sequência do ano, calcula o próximo número e insere o registro.
func (s *Chamados) Create(in models.ChamadoInput) (models.Chamado, error) {
	if err := in.Validate(); err != nil {
		return models.Chamado{}, err
	}

	now := s.now()
	chamado := in.ToChamado()
	today := day(now)
	chamado.DataAbertura = &today

	tx := s.db.Begin()
	if tx.Error != nil {
		return models.Chamado{}, persistence("iniciando transação", tx.Error)
	}

	nm, err := nextTicketNumber(tx, now.Year())
	if err != nil {
		tx.Rollback()
		return models.Chamado{}, err
	}
	chamado.NmChamado = nm

	if err := tx.Create(&chamado).Error; err != nil {
		tx.Rollback()
		return models.Chamado{}, persistence("inserindo chamado", err)
	}
	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return models.Chamado{}, persistence("confirmando chamado", err)
	}
	return chamado, nil
}

// EnsureSequence cria a linha de sequência do ano se ainda não existir,
// para que a primeira abertura do ano não dispute a criação da linha.
func (s *Chamados) EnsureSequence(year int) error {
	return persistence("criando sequência do ano", insertSequence(s.db, year))
}

// insertSequence cria a linha do ano sem falhar quando outra transação já a criou.
// No mysql e no postgres o INSERT concorrente espera o commit da outra transação.
func insertSequence(tx *gorm.DB, year int) error {
	stmt := "INSERT INTO chamado_sequencias (ano, ultimo_valor, updated_at) VALUES (?, 0, ?)"
	switch tx.Dialect().GetName() {
	case "mysql":
		stmt = "INSERT IGNORE INTO chamado_sequencias (ano, ultimo_valor, updated_at) VALUES (?, 0, ?)"
	default:
		stmt += " ON CONFLICT (ano) DO NOTHING"
	}
	return tx.Exec(stmt, year, gorm.NowFunc()).Error
}

func nextTicketNumber(tx *gorm.DB, year int) (string, error) {
	seq, err := lockSequence(tx, year)
	if err != nil {
		return "", err
	}

	var existing []string
	err = tx.Model(&models.Chamado{}).
		Where("nm_chamado LIKE ?", tools.TicketPrefix(year)+"%").
		Pluck("nm_chamado", &existing).Error
	if err != nil {
		return "", persistence("lendo números do ano", err)
	}
	if seq.UltimoValor > 0 {
		existing = append(existing, tools.FormatTicketNumber(year, seq.UltimoValor))
	}

	nm, err := tools.NextTicketNumber(year, existing)
	if err != nil {
		return "", persistence("gerando número do chamado", err)
	}

	next, _ := tools.TicketSequence(year, nm)
	if err := tx.Model(&seq).Update("ultimo_valor", next).Error; err != nil {
		return "", persistence("atualizando sequência do ano", err)
	}
	return nm, nil
}

func lockSequence(tx *gorm.DB, year int) (models.ChamadoSequencia, error) {
	var seq models.ChamadoSequencia
	if err := insertSequence(tx, year); err != nil {
		return seq, persistence("criando sequência do ano", err)
	}
	if err := forUpdate(tx).Where("ano = ?", year).First(&seq).Error; err != nil {
		return seq, persistence("travando sequência do ano", err)
	}
	return seq, nil
}

// sqlite não aceita FOR UPDATE; ele já serializa as escritas.
func forUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialect().GetName() == "sqlite3" {
		return tx
	}
	return tx.Set("gorm:query_option", "FOR UPDATE")
}

// Search busca por número do chamado ou, na falta dele, por e-mail do solicitante.
func (s *Chamados) Search(nmChamado, email string) ([]models.Chamado, error) {
	q := s.db.Model(&models.Chamado{})
	key := ""
	switch {
	case nmChamado != "":
		q = q.Where("nm_chamado = ?", nmChamado)
		key = "nm_chamado=" + nmChamado
	case email != "":
		q = q.Where("email_solicitante = ?", email)
		key = "email=" + email
	default:
		return nil, models.InvalidField("nm_chamado", `Parâmetro de busca ausente. Forneça "nm_chamado" ou "email".`)
	}

	var chamados []models.Chamado
	if err := q.Order("data_abertura desc").Order("id desc").Find(&chamados).Error; err != nil {
		return nil, persistence("buscando chamados", err)
	}
	if len(chamados) == 0 {
		return nil, &NotFoundError{Entity: "chamado", Key: key}
	}
	return chamados, nil
}

// List pagina os chamados, opcionalmente filtrando por status.
func (s *Chamados) List(status string, limit, offset int) ([]models.Chamado, int, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	q := s.db.Model(&models.Chamado{})
	if status != "" {
		q = q.Where("status_atual = ?", status)
	}

	var total int
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, persistence("contando chamados", err)
	}

	chamados := []models.Chamado{}
	err := q.Order("data_abertura desc").Order("id desc").
		Limit(limit).Offset(offset).
		Find(&chamados).Error
	if err != nil {
		return nil, 0, persistence("listando chamados", err)
	}
	return chamados, total, nil
}

// Get devolve o chamado pelo número.
func (s *Chamados) Get(nmChamado string) (models.Chamado, error) {
	var chamado models.Chamado
	err := s.db.Where("nm_chamado = ?", nmChamado).First(&chamado).Error
	if gorm.IsRecordNotFoundError(err) {
		return chamado, &NotFoundError{Entity: "chamado", Key: nmChamado}
	}
	return chamado, persistence("buscando chamado", err)
}

// Respond registra a devolutiva e/ou o novo status. Concluir o chamado carimba
// data_conclusao com a data atual; qualquer outro status limpa a data.
func (s *Chamados) Respond(nmChamado string, u models.ChamadoUpdate) (models.Chamado, error) {
	if err := u.Validate(); err != nil {
		return models.Chamado{}, err
	}

	chamado, err := s.Get(nmChamado)
	if err != nil {
		return chamado, err
	}

	changes := map[string]interface{}{}
	if u.Devolutiva != nil {
		changes["devolutiva"] = *u.Devolutiva
	}
	if u.StatusAtual != nil {
		changes["status_atual"] = *u.StatusAtual
		if *u.StatusAtual == models.CHAMADO_STATUS_CONCLUIDA {
			changes["data_conclusao"] = day(s.now())
		} else {
			changes["data_conclusao"] = gorm.Expr("NULL")
		}
	}

	if err := s.db.Model(&chamado).Updates(changes).Error; err != nil {
		return chamado, persistence("atualizando chamado "+strconv.FormatInt(chamado.ID, 10), err)
	}
	return s.Get(nmChamado)
}

func day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
