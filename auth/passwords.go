package auth

import "golang.org/x/crypto/bcrypt"

// HashPassword genera un hash bcrypt de la contraseña. El hash resultante
// incluye sal y costo, así que la verificación es autodescriptiva.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerificarPassword compara la contraseña en claro contra el hash almacenado
func VerificarPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
