package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"SehatCare/models"
	"SehatCare/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryVault struct {
	files []models.VaultFile
	err   error
}

func (m *memoryVault) Upload(_ context.Context, name, _ string, _ []byte) (models.VaultFile, error) {
	if m.err != nil {
		return models.VaultFile{}, m.err
	}
	f := models.VaultFile{Name: name, URL: "https://vault.test/" + name, Timestamp: time.Now()}
	m.files = append(m.files, f)
	return f, nil
}

func (m *memoryVault) List(context.Context) ([]models.VaultFile, error) {
	return m.files, m.err
}

func TestVault(t *testing.T) {
	ctx := context.Background()
	prev := Vault
	defer func() { Vault = prev }()

	Vault = nil
	_, err := StoreInVault(ctx, &UploadedFile{Name: "a.pdf"})
	assert.EqualError(t, err, util.VAULT_NOT_CONFIGURED)

	vault := &memoryVault{}
	Vault = vault
	stored, err := StoreInVault(ctx, &UploadedFile{Name: "a.pdf", Data: pdfBytes})
	require.NoError(t, err)
	assert.Equal(t, "https://vault.test/a.pdf", stored.URL)

	files, err := ListVaultFiles(ctx)
	require.NoError(t, err)
	assert.Len(t, files, 1)

	vault.err = errors.New("401 unauthorized")
	_, err = StoreInVault(ctx, &UploadedFile{Name: "b.pdf"})
	assert.Equal(t, 502, util.StatusFor(err))
}
