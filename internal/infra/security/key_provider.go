package security

import (
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrKeyNotFound indicates no verification key exists for the requested kid.
var ErrKeyNotFound = errors.New("key not found")

// KeyProvider defines the interface for providing signing and verification keys.
type KeyProvider interface {
	GetSigningKey() (*rsa.PrivateKey, error)
	GetVerificationKey(kid string) (*rsa.PublicKey, error)
}

// FileKeyProvider loads RSA keys from a directory of PEM files. The file name
// without extension becomes the kid; the first private key found signs.
type FileKeyProvider struct {
	keys       map[string]*rsa.PublicKey
	signingKey *rsa.PrivateKey
	signingKid string
}

// NewFileKeyProvider reads every PEM file in keyDir.
func NewFileKeyProvider(keyDir string) (*FileKeyProvider, error) {
	files, err := os.ReadDir(keyDir)
	if err != nil {
		return nil, fmt.Errorf("read key directory: %w", err)
	}

	provider := &FileKeyProvider{keys: make(map[string]*rsa.PublicKey)}

	for _, file := range files {
		if file.IsDir() {
			continue
		}

		path := filepath.Join(keyDir, file.Name())
		keyData, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read key file %s: %w", path, err)
		}

		block, _ := pem.Decode(keyData)
		if block == nil {
			return nil, fmt.Errorf("decode PEM block from %s", path)
		}

		kid := strings.TrimSuffix(file.Name(), filepath.Ext(file.Name()))

		if key, err := x509.ParsePKCS1PrivateKey(block.Bytes); err == nil {
			provider.adoptPrivateKey(kid, key)
			continue
		}

		if key, err := x509.ParsePKCS8PrivateKey(block.Bytes); err == nil {
			if rsaKey, ok := key.(*rsa.PrivateKey); ok {
				provider.adoptPrivateKey(kid, rsaKey)
				continue
			}
		}

		if key, err := x509.ParsePKIXPublicKey(block.Bytes); err == nil {
			if rsaKey, ok := key.(*rsa.PublicKey); ok {
				provider.keys[kid] = rsaKey
				continue
			}
		}

		return nil, fmt.Errorf("parse key from file %s", path)
	}

	if provider.signingKey == nil {
		return nil, errors.New("no private key found for signing")
	}

	return provider, nil
}

func (p *FileKeyProvider) adoptPrivateKey(kid string, key *rsa.PrivateKey) {
	if p.signingKey == nil {
		p.signingKey = key
		p.signingKid = kid
	}
	p.keys[kid] = &key.PublicKey
}

// GetSigningKey returns the private key for signing tokens.
func (p *FileKeyProvider) GetSigningKey() (*rsa.PrivateKey, error) {
	return p.signingKey, nil
}

// GetVerificationKey returns the public key for verifying tokens.
func (p *FileKeyProvider) GetVerificationKey(kid string) (*rsa.PublicKey, error) {
	key, ok := p.keys[kid]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrKeyNotFound, kid)
	}
	return key, nil
}

// SigningKid returns the kid announced in signed token headers.
func (p *FileKeyProvider) SigningKid() string {
	return p.signingKid
}

// MemoryKeyProvider serves a single in-memory key pair. Used by tests and
// ephemeral development setups.
type MemoryKeyProvider struct {
	Kid string
	Key *rsa.PrivateKey
}

// GetSigningKey returns the held private key.
func (p *MemoryKeyProvider) GetSigningKey() (*rsa.PrivateKey, error) {
	if p.Key == nil {
		return nil, errors.New("no signing key configured")
	}
	return p.Key, nil
}

// GetVerificationKey returns the held public key when the kid matches.
func (p *MemoryKeyProvider) GetVerificationKey(kid string) (*rsa.PublicKey, error) {
	if p.Key == nil || kid != p.Kid {
		return nil, fmt.Errorf("%w: %s", ErrKeyNotFound, kid)
	}
	return &p.Key.PublicKey, nil
}
