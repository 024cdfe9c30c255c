package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashYVerificarPassword(t *testing.T) {
	hash, err := HashPassword("medico123")
	require.NoError(t, err)
	assert.NotEqual(t, "medico123", hash)
	// bcrypt guarda algoritmo, costo y sal dentro del propio hash
	assert.True(t, strings.HasPrefix(hash, "$2a$"))

	assert.True(t, VerificarPassword(hash, "medico123"))
	assert.False(t, VerificarPassword(hash, "medico124"))
	assert.False(t, VerificarPassword(hash, ""))
}

func TestVerificarPasswordHashCorrupto(t *testing.T) {
	assert.False(t, VerificarPassword("no-es-un-hash", "cualquiera"))
	assert.False(t, VerificarPassword("", "cualquiera"))
}

func TestHashesDistintosPorSal(t *testing.T) {
	h1, err := HashPassword("1001")
	require.NoError(t, err)
	h2, err := HashPassword("1001")
	require.NoError(t, err)
	assert.NotEqual(t, h1, h2)
	assert.True(t, VerificarPassword(h1, "1001"))
	assert.True(t, VerificarPassword(h2, "1001"))
}
