// Package store contiene el acceso a datos. Los contratos se definen como
// interfaces para que los handlers puedan probarse con implementaciones en
// memoria; las implementaciones reales usan PostgreSQL vía pgxpool.
package store

import (
	"context"
	"errors"

	"github.com/clinica-hce/historia-backend/auth"
	"github.com/clinica-hce/historia-backend/models"
)

var (
	// ErrNoEncontrado indica que la fila buscada no existe
	ErrNoEncontrado = errors.New("no encontrado")
	// ErrUsuarioDuplicado indica que el username ya está tomado
	ErrUsuarioDuplicado = errors.New("usuario ya existe")
	// ErrPacienteDuplicado indica que ya hay un paciente con ese documento
	ErrPacienteDuplicado = errors.New("paciente ya existe")
)

// UsuarioStore persiste identidades
type UsuarioStore interface {
	PorUsername(ctx context.Context, username string) (*models.Usuario, error)
	Crear(ctx context.Context, u *models.Usuario) error
	// CrearConPaciente crea identidad y paciente en una sola transacción:
	// o se persisten ambos o ninguno.
	CrearConPaciente(ctx context.Context, u *models.Usuario, p *models.Paciente) error
	ActualizarMFA(ctx context.Context, username, secreto, codigosRespaldo string, habilitado bool) error
}

// PacienteStore persiste historias clínicas
type PacienteStore interface {
	PorDocumento(ctx context.Context, documentoID string) (*models.Paciente, error)
	Existe(ctx context.Context, documentoID string) (bool, error)
	// ActualizarCampos escribe únicamente las secciones incluidas en campos;
	// las demás columnas no se tocan.
	ActualizarCampos(ctx context.Context, documentoID string, campos map[string]string) error
}

// AdmisionStore persiste admisiones (solo inserción y lectura)
type AdmisionStore interface {
	Crear(ctx context.Context, a *models.Admision) (int, error)
	PorDocumento(ctx context.Context, documentoID string) ([]models.Admision, error)
}

// LoginLogStore persiste el registro de autenticación
type LoginLogStore interface {
	Registrar(ctx context.Context, e *models.LoginLog) error
	Recientes(ctx context.Context, limite int) ([]models.LoginLog, error)
}

// VerificarCredenciales busca la identidad por username exacto y compara la
// contraseña. Credenciales incorrectas devuelven (nil, nil): el caller
// distingue "credenciales malas" de "fallo del sistema" por ese centinela.
func VerificarCredenciales(ctx context.Context, usuarios UsuarioStore, username, password string) (*models.Usuario, error) {
	u, err := usuarios.PorUsername(ctx, username)
	if errors.Is(err, ErrNoEncontrado) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if !auth.VerificarPassword(u.HashedPassword, password) {
		return nil, nil
	}
	return u, nil
}
