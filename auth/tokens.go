package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/clinica-hce/historia-backend/models"
)

// ErrTokenInvalido cubre firma incorrecta, payload malformado, expiración y
// claims incompletos. El caller debe volver a autenticarse.
var ErrTokenInvalido = errors.New("token inválido")

// DuracionToken es la vida útil fija de los tokens emitidos
const DuracionToken = 60 * time.Minute

// Claims personalizados para el JWT
type Claims struct {
	Rol string `json:"role"`
	jwt.RegisteredClaims
}

// TokenService emite y valida tokens bearer firmados con HMAC. La validación
// es puramente criptográfica y temporal: no se consulta la base de datos, por
// lo que un cambio de rol posterior a la emisión no surte efecto hasta que el
// token expire.
type TokenService struct {
	secreto  []byte
	duracion time.Duration
	ahora    func() time.Time
}

// NewTokenService crea el servicio con el secreto de firma inyectado desde la
// configuración
func NewTokenService(secreto string) *TokenService {
	return &TokenService{
		secreto:  []byte(secreto),
		duracion: DuracionToken,
		ahora:    time.Now,
	}
}

// Emitir genera un token firmado con sub=username, role y expiración absoluta
func (s *TokenService) Emitir(u *models.Usuario) (string, error) {
	now := s.ahora()
	claims := Claims{
		Rol: u.Rol,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.Username,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.duracion)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secreto)
}

// Validar verifica firma y expiración y devuelve (username, rol). Cualquier
// problema se reporta como ErrTokenInvalido sin distinguir la causa.
func (s *TokenService) Validar(tokenString string) (string, string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return s.secreto, nil
	}, jwt.WithValidMethods([]string{"HS256"}), jwt.WithTimeFunc(s.ahora))
	if err != nil || !token.Valid {
		return "", "", ErrTokenInvalido
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || claims.Subject == "" {
		return "", "", ErrTokenInvalido
	}
	return claims.Subject, claims.Rol, nil
}
