package services

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"SehatCare/models"
	"SehatCare/util"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// UploadRoot is the directory served under /uploads.
var UploadRoot = "uploads"

type UploadRule struct {
	MaxSize int64
	Allowed []string
	Label   string
}

var (
	DocumentRule = UploadRule{
		MaxSize: util.MaxDocumentSize,
		Allowed: []string{"application/pdf", "image/jpeg", "image/png"},
		Label:   "PDF, JPEG, and PNG",
	}
	ImageRule = UploadRule{
		MaxSize: util.MaxImageSize,
		Allowed: []string{"image/jpeg", "image/png"},
		Label:   "JPEG, JPG, and PNG",
	}
	// VaultRule accepts any content type.
	VaultRule = UploadRule{MaxSize: util.MaxDocumentSize}
)

// UploadedFile is a validated multipart file held in memory.
type UploadedFile struct {
	Name     string
	MimeType string
	Ext      string
	Data     []byte
}

// FileTooLarge is the error reported when a file exceeds rule.MaxSize.
func FileTooLarge(rule UploadRule) error {
	return util.Validation(fmt.Sprintf(util.FILE_TOO_LARGE, rule.MaxSize>>20))
}

/*
* Reject by declared size first
* Read at most MaxSize+1 bytes so a lying header cannot push us past the limit
* Sniff the content type from the bytes and check it against the allow-list
 */
func ValidateUpload(name string, r io.Reader, declaredSize int64, rule UploadRule) (*UploadedFile, error) {
	if declaredSize > rule.MaxSize {
		return nil, FileTooLarge(rule)
	}
	data, err := io.ReadAll(io.LimitReader(r, rule.MaxSize+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > rule.MaxSize {
		return nil, FileTooLarge(rule)
	}
	if len(data) == 0 {
		return nil, util.Validation(util.NO_FILE_UPLOADED)
	}
	mt := mimetype.Detect(data)
	if len(rule.Allowed) > 0 && !mimeAllowed(mt, rule.Allowed) {
		return nil, util.Validation(fmt.Sprintf(util.INVALID_FILE_TYPE, rule.Label))
	}
	ext := strings.ToLower(filepath.Ext(name))
	if len(rule.Allowed) > 0 || ext == "" {
		ext = mt.Extension()
	}
	return &UploadedFile{
		Name:     filepath.Base(name),
		MimeType: mt.String(),
		Ext:      ext,
		Data:     data,
	}, nil
}

func mimeAllowed(mt *mimetype.MIME, allowed []string) bool {
	for _, a := range allowed {
		if mt.Is(a) {
			return true
		}
	}
	return false
}

func ReadUpload(fh *multipart.FileHeader, rule UploadRule) (*UploadedFile, error) {
	if fh == nil {
		return nil, util.Validation(util.NO_FILE_UPLOADED)
	}
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ValidateUpload(fh.Filename, f, fh.Size, rule)
}

func uniqueName(prefix, ext string) string {
	return fmt.Sprintf("%s%d-%s%s", prefix, time.Now().UnixMilli(), uuid.NewString()[:8], ext)
}

// SaveUpload writes the file below UploadRoot/subdir and returns its public
// path under /uploads.
func SaveUpload(subdir, prefix string, file *UploadedFile) (models.StoredFile, error) {
	dir := filepath.Join(UploadRoot, subdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return models.StoredFile{}, err
	}
	name := uniqueName(prefix, file.Ext)
	if err := os.WriteFile(filepath.Join(dir, name), file.Data, 0o644); err != nil {
		return models.StoredFile{}, err
	}
	log.Debug().Str("file", name).Str("dir", dir).Msg("file uploaded successfully")
	return models.StoredFile{
		Filename: name,
		Path:     publicPath(subdir, name),
		Size:     int64(len(file.Data)),
		MimeType: file.MimeType,
	}, nil
}

// discardUpload removes a file written by SaveUpload whose record was never stored.
func discardUpload(subdir string, file models.StoredFile) {
	if err := os.Remove(filepath.Join(UploadRoot, subdir, file.Filename)); err != nil {
		log.Warn().Err(err).Str("file", file.Filename).Msg("Error while removing orphaned upload")
	}
}

func publicPath(subdir, name string) string {
	if subdir == "" {
		return util.UploadsRoute + "/" + name
	}
	return util.UploadsRoute + "/" + subdir + "/" + name
}

// ListUploads lists the regular files stored directly in UploadRoot.
func ListUploads() ([]models.StoredFile, error) {
	entries, err := os.ReadDir(UploadRoot)
	if err != nil {
		if os.IsNotExist(err) {
			return []models.StoredFile{}, nil
		}
		return nil, err
	}
	files := make([]models.StoredFile, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		files = append(files, models.StoredFile{
			Filename: e.Name(),
			Path:     publicPath("", e.Name()),
			Size:     info.Size(),
		})
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Filename < files[j].Filename })
	return files, nil
}
