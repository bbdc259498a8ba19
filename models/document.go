package models

import "time"

// StoredFile describes a file kept in the local uploads directory.
type StoredFile struct {
	Filename string `json:"filename"`
	Path     string `json:"path"`
	Size     int64  `json:"size,omitempty"`
	MimeType string `json:"mimetype,omitempty"`
}

// VaultFile describes a document held by the external document vault.
type VaultFile struct {
	Name      string            `json:"name"`
	Hash      string            `json:"ipfsHash,omitempty"`
	URL       string            `json:"url"`
	Timestamp time.Time         `json:"timestamp"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}
