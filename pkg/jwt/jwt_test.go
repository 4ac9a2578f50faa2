package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/saeron-inventario/pkg/jwt"
)

func TestGenerateParse(t *testing.T) {
	token, err := jwt.Generate("secreto", "김재고", "staff", "saeron", 5)
	require.NoError(t, err)

	op, role, err := jwt.Parse("secreto", token)
	require.NoError(t, err)
	assert.Equal(t, "김재고", op)
	assert.Equal(t, "staff", role)
}

func TestParse_FirmaIncorrecta(t *testing.T) {
	token, err := jwt.Generate("secreto", "a", "admin", "saeron", 5)
	require.NoError(t, err)

	_, _, err = jwt.Parse("otro", token)
	assert.Error(t, err)
}

func TestParse_Expirado(t *testing.T) {
	token, err := jwt.Generate("secreto", "a", "admin", "saeron", -1)
	require.NoError(t, err)

	_, _, err = jwt.Parse("secreto", token)
	assert.Error(t, err)
}

func TestSecretVacio(t *testing.T) {
	_, err := jwt.Generate("", "a", "admin", "saeron", 5)
	assert.Error(t, err)
	_, _, err = jwt.Parse("", "x.y.z")
	assert.Error(t, err)
}
