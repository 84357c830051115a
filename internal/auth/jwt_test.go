package auth

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestKeys(t *testing.T) (privPath, pubPath string) {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	dir := t.TempDir()
	privPath = filepath.Join(dir, "jwt_private.pem")
	pubPath = filepath.Join(dir, "jwt_public.pem")

	privPem := pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(key),
	})
	require.NoError(t, os.WriteFile(privPath, privPem, 0o600))

	pubDer, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)
	pubPem := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: pubDer})
	require.NoError(t, os.WriteFile(pubPath, pubPem, 0o644))

	return privPath, pubPath
}

func TestGenerateAndVerifyToken(t *testing.T) {
	privPath, pubPath := writeTestKeys(t)
	mgr, err := NewJWTManager(privPath, pubPath, "relevamiento-gesell")
	require.NoError(t, err)

	in := UserClaims{
		UserID: "f2b9c1e4-0000-4000-8000-000000000001",
		Email:  "ana@gesell.gob.ar",
		Nombre: "Ana García",
		Rol:    "agente",
	}
	token, exp, err := mgr.GenerateToken(in, time.Hour)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, time.Minute)

	out, err := mgr.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, in, *out)
}

func TestVerifyTokenRejectsForeignSignature(t *testing.T) {
	privA, pubA := writeTestKeys(t)
	mgrA, err := NewJWTManager(privA, pubA, "relevamiento-gesell")
	require.NoError(t, err)

	privB, pubB := writeTestKeys(t)
	mgrB, err := NewJWTManager(privB, pubB, "relevamiento-gesell")
	require.NoError(t, err)

	token, _, err := mgrA.GenerateToken(UserClaims{UserID: "x", Rol: "viewer"}, time.Hour)
	require.NoError(t, err)

	_, err = mgrB.VerifyToken(token)
	assert.Error(t, err)
}

func TestVerifyTokenRejectsExpired(t *testing.T) {
	privPath, pubPath := writeTestKeys(t)
	mgr, err := NewJWTManager(privPath, pubPath, "relevamiento-gesell")
	require.NoError(t, err)

	token, _, err := mgr.GenerateToken(UserClaims{UserID: "x", Rol: "viewer"}, -time.Hour)
	require.NoError(t, err)

	_, err = mgr.VerifyToken(token)
	assert.Error(t, err)
}

func TestVerifyTokenRejectsGarbage(t *testing.T) {
	privPath, pubPath := writeTestKeys(t)
	mgr, err := NewJWTManager(privPath, pubPath, "relevamiento-gesell")
	require.NoError(t, err)

	_, err = mgr.VerifyToken("not-a-token")
	assert.Error(t, err)
}
