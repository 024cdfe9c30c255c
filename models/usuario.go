package models

// Roles soportados por el sistema
const (
	RolMedico       = "medico"
	RolAdmisionista = "admisionista"
	RolPaciente     = "paciente"
	RolResultados   = "resultados"
)

// RolValido indica si el rol recibido es uno de los cuatro roles conocidos
func RolValido(rol string) bool {
	switch rol {
	case RolMedico, RolAdmisionista, RolPaciente, RolResultados:
		return true
	}
	return false
}

// Usuario representa la tabla users en la base de datos.
// Para cuentas con rol paciente, username == documento_id.
type Usuario struct {
	ID             int    `json:"id" db:"id"`
	Username       string `json:"username" db:"username"`
	HashedPassword string `json:"-" db:"hashed_password"`
	Rol            string `json:"role" db:"role"`
	MFAEnabled     bool   `json:"mfa_enabled" db:"mfa_enabled"`
	MFASecret      string `json:"-" db:"mfa_secret"`
	BackupCodes    string `json:"-" db:"backup_codes"`
}

// LoginResponse es la respuesta de los tres endpoints de login
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	Rol         string `json:"role"`
}

// PerfilResponse es la respuesta de GET /perfil
type PerfilResponse struct {
	Username string `json:"username"`
	Rol      string `json:"role"`
}

// MFASetupResponse contiene el secreto pendiente de verificación
type MFASetupResponse struct {
	Secret      string   `json:"secret"`
	QRCodeURL   string   `json:"qr_code_url"`
	BackupCodes []string `json:"backup_codes"`
}
