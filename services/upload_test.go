package services

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"SehatCare/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateUploadAllowList(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		data    []byte
		rule    UploadRule
		wantExt string
		wantErr bool
	}{
		{name: "pdf document", file: "card.pdf", data: pdfBytes, rule: DocumentRule, wantExt: ".pdf"},
		{name: "png document", file: "card.PNG", data: pngBytes, rule: DocumentRule, wantExt: ".png"},
		{name: "text document", file: "card.pdf", data: []byte("just some text"), rule: DocumentRule, wantErr: true},
		{name: "pdf as image", file: "scan.pdf", data: pdfBytes, rule: ImageRule, wantErr: true},
		{name: "vault takes anything", file: "notes.txt", data: []byte("just some text"), rule: VaultRule, wantExt: ".txt"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			file, err := ValidateUpload(tt.file, bytes.NewReader(tt.data), int64(len(tt.data)), tt.rule)
			if tt.wantErr {
				assert.True(t, errors.Is(err, util.ErrValidation))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantExt, file.Ext)
		})
	}
}

func TestValidateUploadSizeBound(t *testing.T) {
	rule := UploadRule{MaxSize: 16, Allowed: []string{"application/pdf"}, Label: "PDF"}

	_, err := ValidateUpload("big.pdf", bytes.NewReader(pdfBytes), 100, rule)
	assert.True(t, errors.Is(err, util.ErrValidation))

	// a lying header is still caught by the read limit
	_, err = ValidateUpload("big.pdf", bytes.NewReader(pdfBytes), 1, rule)
	assert.True(t, errors.Is(err, util.ErrValidation))

	_, err = ValidateUpload("empty.pdf", bytes.NewReader(nil), 0, DocumentRule)
	assert.True(t, errors.Is(err, util.ErrValidation))
}

func TestSaveUpload(t *testing.T) {
	UploadRoot = t.TempDir()
	defer func() { UploadRoot = "uploads" }()

	file, err := ValidateUpload("card.png", bytes.NewReader(pngBytes), int64(len(pngBytes)), DocumentRule)
	require.NoError(t, err)

	stored, err := SaveUpload(util.HealthCardsDir, "health-card-", file)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stored.Path, "/uploads/health-cards/health-card-"))
	assert.True(t, strings.HasSuffix(stored.Filename, ".png"))

	onDisk, err := os.ReadFile(filepath.Join(UploadRoot, util.HealthCardsDir, stored.Filename))
	require.NoError(t, err)
	assert.Equal(t, pngBytes, onDisk)

	again, err := SaveUpload(util.HealthCardsDir, "health-card-", file)
	require.NoError(t, err)
	assert.NotEqual(t, stored.Filename, again.Filename)
}

func TestListUploadsSkipsDirectories(t *testing.T) {
	UploadRoot = t.TempDir()
	defer func() { UploadRoot = "uploads" }()

	files, err := ListUploads()
	require.NoError(t, err)
	assert.Empty(t, files)

	file := &UploadedFile{Name: "a.png", Ext: ".png", Data: pngBytes}
	_, err = SaveUpload("", "", file)
	require.NoError(t, err)
	_, err = SaveUpload(util.PrescriptionsDir, "prescription-", file)
	require.NoError(t, err)

	files, err = ListUploads()
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.True(t, strings.HasPrefix(files[0].Path, "/uploads/"))
	assert.Equal(t, int64(len(pngBytes)), files[0].Size)
}
