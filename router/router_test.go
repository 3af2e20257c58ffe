package router

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"
	"time"

	"chamados/config"
	"chamados/db"
	"chamados/models"
	"chamados/tools"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/gorm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
	tools.SetPasswordParams(1024, 1, 1)
}

func newTestServer(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	cfg := config.Configuration{Database: "sqlite3", DbPath: ":memory:"}
	cfg.DbPool.MaxOpenConns = 1
	cfg.DbPool.MaxIdleConns = 1
	cfg.DbPool.ConnMaxLifetimeMin = 60
	cfg.AutoMigrate = true
	cfg.CORS.AllowOrigins = []string{"http://intranet.local"}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	database, err := db.Connect(cfg, logger)
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	return New(cfg, database, logger), database
}

func do(t *testing.T, r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v))
}

func chamadoBody() map[string]string {
	return map[string]string{
		"nome":      "Ana Souza",
		"email":     "ana@empresa.com",
		"titulo":    "Impressora",
		"tipo":      "Incidente",
		"impacto":   "Baixo",
		"descricao": "A impressora do 3º andar não imprime.",
	}
}

func TestCreateChamado(t *testing.T) {
	r, _ := newTestServer(t)

	w := do(t, r, http.MethodPost, "/api/chamados", chamadoBody())
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Message   string `json:"message"`
		ID        int64  `json:"id"`
		NmChamado string `json:"nm_chamado"`
	}
	decode(t, w, &resp)
	assert.Equal(t, tools.FormatTicketNumber(time.Now().Year(), 1), resp.NmChamado)
	assert.NotZero(t, resp.ID)
	assert.Equal(t, "Chamado registrado com sucesso!", resp.Message)

	w = do(t, r, http.MethodPost, "/api/chamados", chamadoBody())
	require.Equal(t, http.StatusCreated, w.Code)
	decode(t, w, &resp)
	assert.Equal(t, tools.FormatTicketNumber(time.Now().Year(), 2), resp.NmChamado)
}

func TestCreateChamadoMissingDescricao(t *testing.T) {
	r, database := newTestServer(t)

	body := chamadoBody()
	delete(body, "descricao")
	w := do(t, r, http.MethodPost, "/api/chamados", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "descricao")

	var count int
	require.NoError(t, database.Model(&models.ChamadoSequencia{}).Count(&count).Error)
	assert.Zero(t, count)
	require.NoError(t, database.Model(&models.Chamado{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCreateChamadoExhausted(t *testing.T) {
	r, database := newTestServer(t)
	require.NoError(t, database.Create(&models.ChamadoSequencia{Ano: time.Now().Year(), UltimoValor: 9999}).Error)

	w := do(t, r, http.MethodPost, "/api/chamados", chamadoBody())
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var resp map[string]string
	decode(t, w, &resp)
	assert.Equal(t, "Erro interno do servidor ao registrar o chamado.", resp["message"])
	assert.Contains(t, resp["details"], "9999")
}

func TestSearchChamados(t *testing.T) {
	r, _ := newTestServer(t)
	for i := 0; i < 2; i++ {
		require.Equal(t, http.StatusCreated, do(t, r, http.MethodPost, "/api/chamados", chamadoBody()).Code)
	}

	w := do(t, r, http.MethodGet, "/api/chamados/search?email=ana@empresa.com", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list []models.Chamado
	decode(t, w, &list)
	require.Len(t, list, 2)
	assert.Greater(t, list[0].ID, list[1].ID)

	first := tools.FormatTicketNumber(time.Now().Year(), 1)
	w = do(t, r, http.MethodGet, "/api/chamados/search?nm_chamado="+first, nil)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &list)
	require.Len(t, list, 1)
	assert.Equal(t, first, list[0].NmChamado)

	w = do(t, r, http.MethodGet, "/api/chamados/search?email=ninguem@empresa.com", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, r, http.MethodGet, "/api/chamados/search", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRespondChamado(t *testing.T) {
	r, _ := newTestServer(t)
	require.Equal(t, http.StatusCreated, do(t, r, http.MethodPost, "/api/chamados", chamadoBody()).Code)
	nm := tools.FormatTicketNumber(time.Now().Year(), 1)

	w := do(t, r, http.MethodPut, "/api/chamados/"+nm, map[string]string{
		"status_atual": models.CHAMADO_STATUS_CONCLUIDA,
		"devolutiva":   "Toner trocado.",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var chamado models.Chamado
	decode(t, w, &chamado)
	assert.Equal(t, models.CHAMADO_STATUS_CONCLUIDA, chamado.StatusAtual)
	assert.NotNil(t, chamado.DataConclusao)

	w = do(t, r, http.MethodGet, "/api/chamados/"+nm, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(t, r, http.MethodPut, "/api/chamados/20000001", map[string]string{"devolutiva": "x"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, r, http.MethodGet, "/api/chamados?status="+url.QueryEscape(models.CHAMADO_STATUS_CONCLUIDA), nil)
	require.Equal(t, http.StatusOK, w.Code)
	var page struct {
		Chamados []models.Chamado `json:"chamados"`
		Total    int              `json:"total"`
	}
	decode(t, w, &page)
	assert.Equal(t, 1, page.Total)
}

func TestLogin(t *testing.T) {
	r, _ := newTestServer(t)
	w := do(t, r, http.MethodPost, "/api/colaboradores", map[string]string{
		"nome":  "Carla Lima",
		"email": "carla@empresa.com",
		"senha": "segredo1",
		"area":  "TI",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = do(t, r, http.MethodPost, "/api/login", map[string]string{"email": "carla@empresa.com", "senha": "errada"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(t, r, http.MethodPost, "/api/login", map[string]string{"email": "ninguem@empresa.com", "senha": "segredo1"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(t, r, http.MethodPost, "/api/login", map[string]string{"email": "carla@empresa.com"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, r, http.MethodPost, "/api/login", map[string]string{"email": "carla@empresa.com", "senha": "segredo1"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "senha")
	assert.NotContains(t, w.Body.String(), "argon2")

	var resp struct {
		Colaborador models.Colaborador `json:"colaborador"`
	}
	decode(t, w, &resp)
	assert.Equal(t, "Carla Lima", resp.Colaborador.Nome)
	assert.Equal(t, "TI", resp.Colaborador.Area)
}

func TestColaboradoresCRUD(t *testing.T) {
	r, _ := newTestServer(t)

	w := do(t, r, http.MethodPost, "/api/colaboradores", map[string]string{"nome": "Sem Senha", "email": "x@empresa.com"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, r, http.MethodPost, "/api/colaboradores", map[string]string{
		"nome":  "Carla Lima",
		"email": "carla@empresa.com",
		"senha": "segredo1",
		"cargo": "Analista",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var created struct {
		Colaborador models.Colaborador `json:"colaborador"`
	}
	decode(t, w, &created)
	id := created.Colaborador.ID
	path := "/api/colaboradores/" + strconv.FormatInt(id, 10)

	w = do(t, r, http.MethodPut, path, map[string]string{"cargo": "Coordenadora"})
	require.Equal(t, http.StatusOK, w.Code)
	var updated struct {
		Colaborador models.Colaborador `json:"colaborador"`
	}
	decode(t, w, &updated)
	assert.Equal(t, "Coordenadora", updated.Colaborador.Cargo)
	assert.Equal(t, "carla@empresa.com", updated.Colaborador.Email)

	// senha antiga continua valendo
	w = do(t, r, http.MethodPost, "/api/login", map[string]string{"email": "carla@empresa.com", "senha": "segredo1"})
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(t, r, http.MethodPut, path, map[string]string{"senha": "", "area": "RH"})
	require.Equal(t, http.StatusOK, w.Code)
	w = do(t, r, http.MethodPost, "/api/login", map[string]string{"email": "carla@empresa.com", "senha": "segredo1"})
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(t, r, http.MethodPut, path, map[string]string{"senha": "outrasenha"})
	require.Equal(t, http.StatusOK, w.Code)
	w = do(t, r, http.MethodPost, "/api/login", map[string]string{"email": "carla@empresa.com", "senha": "outrasenha"})
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(t, r, http.MethodGet, "/api/colaboradores", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list struct {
		Colaboradores []models.Colaborador `json:"colaboradores"`
	}
	decode(t, w, &list)
	assert.Len(t, list.Colaboradores, 1)

	w = do(t, r, http.MethodGet, path, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(t, r, http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = do(t, r, http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = do(t, r, http.MethodPut, path, map[string]string{"cargo": "x"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, r, http.MethodGet, "/api/colaboradores/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCORSAndHealth(t *testing.T) {
	r, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/chamados", nil)
	req.Header.Set("Origin", "http://intranet.local")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://intranet.local", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodOptions, "/api/chamados", nil)
	req.Header.Set("Origin", "http://outro.local")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))

	w = do(t, r, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", w.Body.String())
}
