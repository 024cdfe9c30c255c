package config

import (
	"errors"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config agrupa toda la configuración del proceso. Se carga una sola vez al
// arrancar y se inyecta en los componentes que la necesitan; no hay secretos
// embebidos en el código.
type Config struct {
	Port        string
	DatabaseURL string
	// JWTSecret firma los tokens de acceso; es obligatorio
	JWTSecret string
	// SembrarUsuarios habilita la creación de las cuentas de personal por
	// defecto durante la migración
	SembrarUsuarios bool
	MedicoUser      string
	MedicoPassword  string
	AdmisionUser    string
	AdmisionPassword string
	// StaticDir es el directorio del frontend estático; vacío lo deshabilita
	StaticDir string
}

// ErrSecretoFaltante se devuelve cuando JWT_SECRET no está definido
var ErrSecretoFaltante = errors.New("JWT_SECRET no está definido")

// Cargar lee .env si existe y construye la configuración desde el entorno
func Cargar() (*Config, error) {
	// El archivo .env es opcional; en producción las variables vienen del
	// entorno del proceso
	_ = godotenv.Load()

	cfg := &Config{
		Port:             getenv("PORT", "8000"),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		JWTSecret:        os.Getenv("JWT_SECRET"),
		SembrarUsuarios:  getenvBool("SEED_DEFAULT_USERS", true),
		MedicoUser:       getenv("MEDICO_USER", "gabriel"),
		MedicoPassword:   getenv("MEDICO_PASSWORD", "medico123"),
		AdmisionUser:     getenv("ADMISION_USER", "admision"),
		AdmisionPassword: getenv("ADMISION_PASSWORD", "admision123"),
		StaticDir:        getenv("STATIC_DIR", "./static"),
	}
	if cfg.JWTSecret == "" {
		return nil, ErrSecretoFaltante
	}
	return cfg, nil
}

func getenv(clave, porDefecto string) string {
	if v := os.Getenv(clave); v != "" {
		return v
	}
	return porDefecto
}

func getenvBool(clave string, porDefecto bool) bool {
	v := os.Getenv(clave)
	if v == "" {
		return porDefecto
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return porDefecto
	}
	return b
}
