package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/clinica-hce/historia-backend/auth"
)

// JWTMiddleware valida el token bearer del header Authorization y deja
// username y rol en el contexto de la petición
func JWTMiddleware(tokens *auth.TokenService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(401).JSON(fiber.Map{
				"error": "Token de autorización requerido",
			})
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			return c.Status(401).JSON(fiber.Map{
				"error": "Formato de token inválido",
			})
		}

		username, rol, err := tokens.Validar(tokenString)
		if err != nil {
			return c.Status(401).JSON(fiber.Map{
				"error": "Token inválido",
			})
		}

		c.Locals("username", username)
		c.Locals("rol", rol)
		return c.Next()
	}
}

// RequireRol exige que el rol del token sea uno de los permitidos
func RequireRol(rolesPermitidos ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		rol, ok := c.Locals("rol").(string)
		if !ok {
			return c.Status(403).JSON(fiber.Map{
				"error": "Rol de usuario no encontrado",
			})
		}
		for _, permitido := range rolesPermitidos {
			if rol == permitido {
				return c.Next()
			}
		}
		return c.Status(403).JSON(fiber.Map{
			"error": "No tienes permisos para esta acción",
		})
	}
}

// ClientIP obtiene la IP real del cliente respetando los headers de proxy
func ClientIP(c *fiber.Ctx) string {
	ip := c.IP()
	if forwarded := c.Get("X-Forwarded-For"); forwarded != "" {
		ip = strings.TrimSpace(strings.Split(forwarded, ",")[0])
	}
	if realIP := c.Get("X-Real-IP"); realIP != "" {
		ip = realIP
	}
	return ip
}
