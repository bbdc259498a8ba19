package services

import (
	"context"

	"SehatCare/models"
	"SehatCare/util"

	"github.com/rs/zerolog/log"
)

// DocumentVault stores documents outside the local uploads directory.
// Implemented by the Pinata and S3 clients.
type DocumentVault interface {
	Upload(ctx context.Context, name, contentType string, data []byte) (models.VaultFile, error)
	List(ctx context.Context) ([]models.VaultFile, error)
}

var Vault DocumentVault

func StoreInVault(ctx context.Context, file *UploadedFile) (*models.VaultFile, error) {
	if file == nil {
		return nil, util.Validation(util.NO_FILE_UPLOADED)
	}
	if Vault == nil {
		return nil, util.Upstream(util.VAULT_NOT_CONFIGURED)
	}
	stored, err := Vault.Upload(ctx, file.Name, file.MimeType, file.Data)
	if err != nil {
		log.Error().Err(err).Str("file", file.Name).Msg("Error uploading to vault")
		return nil, util.Upstream(err.Error())
	}
	return &stored, nil
}

func ListVaultFiles(ctx context.Context) ([]models.VaultFile, error) {
	if Vault == nil {
		return nil, util.Upstream(util.VAULT_NOT_CONFIGURED)
	}
	files, err := Vault.List(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Error listing vault files")
		return nil, util.Upstream(err.Error())
	}
	return files, nil
}
