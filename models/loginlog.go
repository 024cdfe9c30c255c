package models

// LoginLog es una entrada del registro de autenticación. Se escribe una por
// cada login exitoso; los intentos fallidos no se registran. El timestamp se
// guarda como texto ISO-8601, por lo que el orden lexicográfico coincide con
// el cronológico.
type LoginLog struct {
	ID        int     `json:"id"`
	Username  string  `json:"username"`
	Rol       string  `json:"role"`
	Timestamp string  `json:"timestamp"`
	IPAddress *string `json:"ip_address"`
}
