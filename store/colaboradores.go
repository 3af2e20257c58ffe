package store

import (
	"errors"
	"strconv"
	"strings"

	"chamados/models"
	"chamados/tools"

	"github.com/jinzhu/gorm"
)

// ErrInvalidCredentials cobre e-mail desconhecido e senha errada, sem distinguir os dois.
var ErrInvalidCredentials = errors.New("usuário ou senha inválidos")

// Colaboradores acessa a tabela de login/perfis.
type Colaboradores struct {
	db *gorm.DB
}

func NewColaboradores(db *gorm.DB) *Colaboradores {
	return &Colaboradores{db: db}
}

func (s *Colaboradores) List() ([]models.Colaborador, error) {
	colaboradores := []models.Colaborador{}
	if err := s.db.Order("id asc").Find(&colaboradores).Error; err != nil {
		return nil, persistence("listando colaboradores", err)
	}
	return colaboradores, nil
}

func (s *Colaboradores) Get(id int64) (models.Colaborador, error) {
	var colaborador models.Colaborador
	err := s.db.First(&colaborador, id).Error
	if gorm.IsRecordNotFoundError(err) {
		return colaborador, &NotFoundError{Entity: "colaborador", Key: strconv.FormatInt(id, 10)}
	}
	return colaborador, persistence("buscando colaborador", err)
}

func (s *Colaboradores) findByEmail(email string) (models.Colaborador, bool, error) {
	var colaborador models.Colaborador
	err := s.db.Where("email = ?", strings.TrimSpace(email)).First(&colaborador).Error
	if gorm.IsRecordNotFoundError(err) {
		return colaborador, false, nil
	}
	if err != nil {
		return colaborador, false, persistence("buscando colaborador por e-mail", err)
	}
	return colaborador, true, nil
}

func (s *Colaboradores) Create(in models.ColaboradorInput) (models.Colaborador, error) {
	if err := in.ValidateCreate(); err != nil {
		return models.Colaborador{}, err
	}

	colaborador := in.ToColaborador()
	_, exists, err := s.findByEmail(colaborador.Email)
	if err != nil {
		return models.Colaborador{}, err
	} else if exists {
		return models.Colaborador{}, models.InvalidField("email", "Colaborador já existe")
	}

	hash, err := tools.HashPassword(*in.Senha)
	if err != nil {
		return models.Colaborador{}, persistence("gerando hash da senha", err)
	}
	colaborador.Senha = hash

	if err := s.db.Create(&colaborador).Error; err != nil {
		return models.Colaborador{}, persistence("inserindo colaborador", err)
	}
	return colaborador, nil
}

// Update aplica só os campos enviados. A senha só é trocada quando vier preenchida.
func (s *Colaboradores) Update(id int64, in models.ColaboradorInput) (models.Colaborador, error) {
	if err := in.ValidateUpdate(); err != nil {
		return models.Colaborador{}, err
	}

	current, err := s.Get(id)
	if err != nil {
		return current, err
	}

	changes := in.Changes()
	if email, ok := changes["email"].(string); ok && email != current.Email {
		other, exists, err := s.findByEmail(email)
		if err != nil {
			return current, err
		}
		if exists && other.ID != id {
			return current, models.InvalidField("email", "E-mail já usado por outro colaborador")
		}
	}
	if in.Senha != nil && strings.TrimSpace(*in.Senha) != "" {
		hash, err := tools.HashPassword(*in.Senha)
		if err != nil {
			return current, persistence("gerando hash da senha", err)
		}
		changes["senha"] = hash
	}

	if len(changes) == 0 {
		return current, nil
	}
	if err := s.db.Model(&current).Updates(changes).Error; err != nil {
		return current, persistence("atualizando colaborador", err)
	}
	return s.Get(id)
}

func (s *Colaboradores) Delete(id int64) error {
	res := s.db.Delete(&models.Colaborador{}, "id = ?", id)
	if res.Error != nil {
		return persistence("removendo colaborador", res.Error)
	}
	if res.RowsAffected == 0 {
		return &NotFoundError{Entity: "colaborador", Key: strconv.FormatInt(id, 10)}
	}
	return nil
}

// Authenticate confere e-mail e senha contra o hash guardado.
func (s *Colaboradores) Authenticate(email, senha string) (models.Colaborador, error) {
	if strings.TrimSpace(email) == "" {
		return models.Colaborador{}, models.MissingField("email")
	}
	if senha == "" {
		return models.Colaborador{}, models.MissingField("senha")
	}

	colaborador, exists, err := s.findByEmail(email)
	if err != nil {
		return models.Colaborador{}, err
	}
	if !exists {
		return models.Colaborador{}, ErrInvalidCredentials
	}
	// hash em formato desconhecido conta como senha errada
	if err := tools.VerifyPassword(colaborador.Senha, senha); err != nil {
		return models.Colaborador{}, ErrInvalidCredentials
	}
	return colaborador, nil
}
