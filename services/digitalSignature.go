package services

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog/log"
)

var (
	signingMu  sync.Mutex
	signingKey *rsa.PrivateKey
)

func GenerateKeyPair() (*rsa.PrivateKey, *rsa.PublicKey, error) {
	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		return nil, nil, err
	}
	return privateKey, &privateKey.PublicKey, nil
}

func SignData(data []byte, privateKey *rsa.PrivateKey) (string, error) {
	hash := sha256.Sum256(data)

	signature, err := rsa.SignPKCS1v15(
		rand.Reader,
		privateKey,
		crypto.SHA256,
		hash[:],
	)
	if err != nil {
		return "", err
	}

	return base64.StdEncoding.EncodeToString(signature), nil
}

func VerifySignature(data []byte, base64Signature string, publicKey *rsa.PublicKey) error {
	signature, err := base64.StdEncoding.DecodeString(base64Signature)
	if err != nil {
		return err
	}

	hash := sha256.Sum256(data)

	return rsa.VerifyPKCS1v15(
		publicKey,
		crypto.SHA256,
		hash[:],
		signature,
	)
}

/*
* Read a PKCS#1 PEM key from path
* If the file does not exist, generate a key and write it there
* An empty path keeps the key in memory only
 */
func LoadOrGenerateSigningKey(path string) (*rsa.PrivateKey, error) {
	if path != "" {
		raw, err := os.ReadFile(path)
		if err == nil {
			block, _ := pem.Decode(raw)
			if block == nil {
				return nil, errors.New("signing key: no PEM block found")
			}
			return x509.ParsePKCS1PrivateKey(block.Bytes)
		}
		if !os.IsNotExist(err) {
			return nil, err
		}
	}

	key, _, err := GenerateKeyPair()
	if err != nil {
		return nil, err
	}
	if path == "" {
		return key, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, err
	}
	encoded := pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(key)})
	if err := os.WriteFile(path, encoded, 0o600); err != nil {
		return nil, err
	}
	log.Info().Str("path", path).Msg("generated prescription signing key")
	return key, nil
}

func SetSigningKey(key *rsa.PrivateKey) {
	signingMu.Lock()
	defer signingMu.Unlock()
	signingKey = key
}

// currentSigningKey falls back to an in-memory key when none was configured.
func currentSigningKey() (*rsa.PrivateKey, error) {
	signingMu.Lock()
	defer signingMu.Unlock()
	if signingKey == nil {
		key, _, err := GenerateKeyPair()
		if err != nil {
			return nil, err
		}
		signingKey = key
	}
	return signingKey, nil
}
