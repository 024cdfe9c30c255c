package handlers_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/clinica-hce/historia-backend/auth"
	"github.com/clinica-hce/historia-backend/handlers"
	"github.com/clinica-hce/historia-backend/models"
	"github.com/clinica-hce/historia-backend/routes"
)

// entorno arma la aplicación completa (rutas y middleware reales) sobre
// stores en memoria
type entorno struct {
	app        *fiber.App
	h          *handlers.Handler
	usuarios   *memUsuarios
	pacientes  *memPacientes
	admisiones *memAdmisiones
	logs       *memLoginLogs
	tokens     *auth.TokenService
}

func nuevoEntorno(t *testing.T) *entorno {
	t.Helper()

	pacientes := newMemPacientes()
	usuarios := newMemUsuarios(pacientes)
	admisiones := &memAdmisiones{}
	logs := &memLoginLogs{}
	tokens := auth.NewTokenService("secreto-de-prueba")

	h := handlers.New(usuarios, pacientes, admisiones, logs, tokens)

	// Immutable: los stores en memoria retienen los strings del contexto más
	// allá del handler; sin esto aliasearían el buffer reutilizado de fasthttp.
	app := fiber.New(fiber.Config{Immutable: true})
	routes.SetupRoutes(app, h, tokens, "")

	return &entorno{
		app:        app,
		h:          h,
		usuarios:   usuarios,
		pacientes:  pacientes,
		admisiones: admisiones,
		logs:       logs,
		tokens:     tokens,
	}
}

// crearCuenta registra una identidad directamente en el store
func (e *entorno) crearCuenta(t *testing.T, username, password, rol string) *models.Usuario {
	t.Helper()
	hash, err := auth.HashPassword(password)
	require.NoError(t, err)
	u := &models.Usuario{Username: username, HashedPassword: hash, Rol: rol}
	require.NoError(t, e.usuarios.Crear(context.Background(), u))
	return u
}

// crearPaciente inserta una historia clínica con su cuenta de paciente
func (e *entorno) crearPaciente(t *testing.T, documentoID, nombre, apellido string) {
	t.Helper()
	e.crearCuenta(t, documentoID, documentoID, models.RolPaciente)
	e.pacientes.mu.Lock()
	defer e.pacientes.mu.Unlock()
	e.pacientes.insertar(&models.Paciente{
		DocumentoID:     documentoID,
		Nombre:          nombre,
		Apellido:        apellido,
		FechaNacimiento: "1980-01-01",
		FechaCreacion:   "2024-01-01T09:00:00Z",
		Secciones:       make(map[string]*string),
	})
}

// tokenPara emite un token real para la cuenta dada
func (e *entorno) tokenPara(t *testing.T, username string) string {
	t.Helper()
	u, err := e.usuarios.PorUsername(context.Background(), username)
	require.NoError(t, err)
	token, err := e.tokens.Emitir(u)
	require.NoError(t, err)
	return token
}

func formRequest(method, target, token string, valores url.Values) *http.Request {
	body := ""
	if valores != nil {
		body = valores.Encode()
	}
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func getRequest(target, token string) *http.Request {
	req := httptest.NewRequest("GET", target, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func (e *entorno) hacer(t *testing.T, req *http.Request) (*http.Response, map[string]interface{}) {
	t.Helper()
	resp, err := e.app.Test(req, int(5*time.Second/time.Millisecond))
	require.NoError(t, err)

	cuerpo, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var datos map[string]interface{}
	if len(cuerpo) > 0 && strings.Contains(resp.Header.Get("Content-Type"), "json") {
		require.NoError(t, json.Unmarshal(cuerpo, &datos), "cuerpo: %s", cuerpo)
	}
	return resp, datos
}

// login hace un POST al endpoint de token indicado y devuelve la respuesta
func (e *entorno) login(t *testing.T, endpoint string, valores url.Values) (*http.Response, map[string]interface{}) {
	t.Helper()
	return e.hacer(t, formRequest("POST", endpoint, "", valores))
}

// decodificarLista decodifica una respuesta cuyo cuerpo es un arreglo JSON
func decodificarLista(t *testing.T, resp *http.Response, destino interface{}) {
	t.Helper()
	cuerpo, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(cuerpo, destino), "cuerpo: %s", cuerpo)
}
