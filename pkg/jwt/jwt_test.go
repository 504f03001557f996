package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Activos-api/pkg/jwt"
)

const testSecret = "secreto-de-prueba"

func TestGenerateYParse_RoundTrip(t *testing.T) {
	dept := "dept-it"
	caps := []string{"create borrowings", "view own borrowings"}

	token, err := jwt.Generate(testSecret, "user-1", &dept, caps, "activos-api", 60)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := jwt.Parse(testSecret, token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	require.NotNil(t, claims.DepartmentID)
	assert.Equal(t, "dept-it", *claims.DepartmentID)
	assert.ElementsMatch(t, caps, claims.Capabilities)
	assert.Equal(t, "activos-api", claims.Issuer)
}

func TestParse_SinDepartamento(t *testing.T) {
	token, err := jwt.Generate(testSecret, "user-2", nil, nil, "activos-api", 60)
	require.NoError(t, err)

	claims, err := jwt.Parse(testSecret, token)
	require.NoError(t, err)
	assert.Nil(t, claims.DepartmentID)
}

func TestParse_SecretIncorrecto(t *testing.T) {
	token, err := jwt.Generate(testSecret, "user-1", nil, nil, "activos-api", 60)
	require.NoError(t, err)

	_, err = jwt.Parse("otro-secreto", token)
	assert.Error(t, err)
}

func TestParse_TokenExpirado(t *testing.T) {
	token, err := jwt.Generate(testSecret, "user-1", nil, nil, "activos-api", -5)
	require.NoError(t, err)

	_, err = jwt.Parse(testSecret, token)
	assert.Error(t, err)
}

func TestGenerate_SecretVacio(t *testing.T) {
	_, err := jwt.Generate("", "user-1", nil, nil, "activos-api", 60)
	assert.Error(t, err)
}
