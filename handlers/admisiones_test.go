package handlers_test

import (
	"context"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinica-hce/historia-backend/models"
)

func TestCrearAdmision(t *testing.T) {
	e := nuevoEntorno(t)
	e.crearCuenta(t, "admision", "admision123", models.RolAdmisionista)
	e.crearPaciente(t, "1001", "María", "García")
	token := e.tokenPara(t, "admision")

	valores := url.Values{
		"documento_id":  {"1001"},
		"fecha_ingreso": {"2024-03-15"},
		"motivo":        {"Dolor abdominal agudo"},
	}
	resp, datos := e.hacer(t, formRequest("POST", "/admission", token, valores))
	require.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, "Admisión creada", datos["message"])
	assert.EqualValues(t, 1, datos["id"])

	// La admisión aparece en la historia del paciente
	resp, historia := e.hacer(t, getRequest("/paciente/1001", token))
	require.Equal(t, 200, resp.StatusCode)
	admisiones, ok := historia["admissions"].([]interface{})
	require.True(t, ok)
	require.Len(t, admisiones, 1)
	primera := admisiones[0].(map[string]interface{})
	assert.Equal(t, "2024-03-15", primera["fecha_ingreso"])
	assert.Equal(t, "Dolor abdominal agudo", primera["motivo"])

	// El ingreso queda atribuido al admisionista autenticado
	registradas := e.admisiones.items
	require.Len(t, registradas, 1)
	quien, err := e.usuarios.PorUsername(context.Background(), "admision")
	require.NoError(t, err)
	assert.Equal(t, quien.ID, registradas[0].AdmisionistaID)
}

func TestCrearAdmisionSinMotivo(t *testing.T) {
	e := nuevoEntorno(t)
	e.crearCuenta(t, "admision", "admision123", models.RolAdmisionista)
	e.crearPaciente(t, "1001", "María", "García")

	valores := url.Values{
		"documento_id":  {"1001"},
		"fecha_ingreso": {"2024-03-15"},
	}
	resp, _ := e.hacer(t, formRequest("POST", "/admission", e.tokenPara(t, "admision"), valores))
	assert.Equal(t, 200, resp.StatusCode)
}

func TestCrearAdmisionCamposRequeridos(t *testing.T) {
	e := nuevoEntorno(t)
	e.crearCuenta(t, "admision", "admision123", models.RolAdmisionista)
	e.crearPaciente(t, "1001", "María", "García")
	token := e.tokenPara(t, "admision")

	casos := []url.Values{
		{"fecha_ingreso": {"2024-03-15"}},
		{"documento_id": {"1001"}},
		{},
	}
	for _, valores := range casos {
		resp, datos := e.hacer(t, formRequest("POST", "/admission", token, valores))
		assert.Equal(t, 400, resp.StatusCode)
		assert.Equal(t, "Documento ID y fecha de ingreso son requeridos", datos["error"])
	}
}

func TestCrearAdmisionPacienteNoExiste(t *testing.T) {
	e := nuevoEntorno(t)
	e.crearCuenta(t, "admision", "admision123", models.RolAdmisionista)

	valores := url.Values{
		"documento_id":  {"9999"},
		"fecha_ingreso": {"2024-03-15"},
	}
	resp, datos := e.hacer(t, formRequest("POST", "/admission", e.tokenPara(t, "admision"), valores))
	assert.Equal(t, 404, resp.StatusCode)
	assert.Equal(t, "Paciente no encontrado", datos["error"])
}

func TestCrearAdmisionSoloAdmisionista(t *testing.T) {
	e := nuevoEntorno(t)
	e.crearCuenta(t, "gabriel", "medico123", models.RolMedico)
	e.crearPaciente(t, "1001", "María", "García")

	valores := url.Values{
		"documento_id":  {"1001"},
		"fecha_ingreso": {"2024-03-15"},
	}
	resp, _ := e.hacer(t, formRequest("POST", "/admission", e.tokenPara(t, "gabriel"), valores))
	assert.Equal(t, 403, resp.StatusCode)

	resp, _ = e.hacer(t, formRequest("POST", "/admission", e.tokenPara(t, "1001"), valores))
	assert.Equal(t, 403, resp.StatusCode)
}
