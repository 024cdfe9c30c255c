package auth

import (
	"strings"

	"github.com/google/uuid"
	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

const mfaIssuer = "Historia Clínica"

// GenerarClaveMFA crea un secreto TOTP nuevo para la cuenta indicada
func GenerarClaveMFA(username string) (*otp.Key, error) {
	return totp.Generate(totp.GenerateOpts{
		Issuer:      mfaIssuer,
		AccountName: username,
	})
}

// GenerarCodigosRespaldo produce códigos de un solo uso para cuando el
// usuario no tiene acceso a su aplicación TOTP
func GenerarCodigosRespaldo(n int) []string {
	codigos := make([]string, 0, n)
	for i := 0; i < n; i++ {
		codigos = append(codigos, strings.ReplaceAll(uuid.NewString(), "-", "")[:10])
	}
	return codigos
}

// ValidarCodigoMFA acepta un código TOTP vigente o un código de respaldo sin
// usar. Devuelve si el código fue válido y la lista de códigos de respaldo
// restante (un código de respaldo se consume al usarse).
func ValidarCodigoMFA(secreto, codigosRespaldo, codigo string) (bool, string) {
	if codigo == "" {
		return false, codigosRespaldo
	}
	if totp.Validate(codigo, secreto) {
		return true, codigosRespaldo
	}
	if codigosRespaldo == "" {
		return false, codigosRespaldo
	}
	codigos := strings.Split(codigosRespaldo, ",")
	for i, c := range codigos {
		if c == codigo {
			restantes := append(codigos[:i], codigos[i+1:]...)
			return true, strings.Join(restantes, ",")
		}
	}
	return false, codigosRespaldo
}
