package middleware

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"github.com/aretw0/nodegraph/pkg/codec"
	"github.com/aretw0/nodegraph/pkg/domain"
	"github.com/aretw0/nodegraph/pkg/ports"
)

// Envelope record written in place of an encrypted document's nodes.
const (
	PluginIDEnvelope = "net.sf.nodegraph.encrypted"
	EnvelopeName     = "Envelope"
	envelopeParam    = "payload"
)

// EncryptionConfig holds the keys for encryption and decryption.
type EncryptionConfig struct {
	// ActiveKey is the key used for encrypting new data.
	// Must be 32 bytes for AES-256.
	ActiveKey []byte

	// FallbackKeys is a list of old keys to try when decryption fails.
	// This enables zero-downtime key rotation.
	FallbackKeys [][]byte
}

type encryptionMiddleware struct {
	ports.GraphStore
	config EncryptionConfig
}

// NewEncryptionMiddleware creates a middleware that encrypts documents using
// AES-GCM. The stored document keeps its name and version; its nodes are
// replaced by a single envelope record.
func NewEncryptionMiddleware(config EncryptionConfig) Middleware {
	if len(config.ActiveKey) != 32 {
		panic("active key must be 32 bytes (AES-256)")
	}
	return func(next ports.GraphStore) ports.GraphStore {
		return &encryptionMiddleware{
			GraphStore: next,
			config:     config,
		}
	}
}

func (m *encryptionMiddleware) SaveGraph(ctx context.Context, name string, doc *domain.Document) error {
	plainText, err := codec.Marshal(doc, codec.FormatJSON)
	if err != nil {
		return err
	}

	ciphertext, err := encrypt(plainText, m.config.ActiveKey)
	if err != nil {
		return fmt.Errorf("failed to encrypt graph: %w", err)
	}

	envelope := &domain.Document{
		Name:    doc.Name,
		Version: doc.Version,
		Nodes: []*domain.Record{{
			PluginID:   PluginIDEnvelope,
			ScriptName: EnvelopeName,
			Params: map[string]any{
				envelopeParam: base64.StdEncoding.EncodeToString(ciphertext),
			},
		}},
	}
	return m.GraphStore.SaveGraph(ctx, name, envelope)
}

func (m *encryptionMiddleware) LoadGraph(ctx context.Context, name string) (*domain.Document, error) {
	envelope, err := m.GraphStore.LoadGraph(ctx, name)
	if err != nil {
		return nil, err
	}

	// Fail secure: a plain document is not accepted once encryption is on.
	if len(envelope.Nodes) != 1 || envelope.Nodes[0].PluginID != PluginIDEnvelope {
		return nil, errors.New("graph is missing encrypted data envelope")
	}
	encoded, ok := envelope.Nodes[0].Params[envelopeParam].(string)
	if !ok {
		return nil, errors.New("graph is missing encrypted data envelope")
	}

	ciphertext, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("failed to decode ciphertext base64: %w", err)
	}

	plainText, err := decryptWithRotation(ciphertext, m.config.ActiveKey, m.config.FallbackKeys)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt graph: %w", err)
	}
	return codec.Unmarshal(plainText, codec.FormatJSON)
}

// Helpers

func encrypt(plaintext []byte, key []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}

	return gcm.Seal(nonce, nonce, plaintext, nil), nil
}

func decryptWithRotation(ciphertext []byte, activeKey []byte, fallbackKeys [][]byte) ([]byte, error) {
	if plain, err := decrypt(ciphertext, activeKey); err == nil {
		return plain, nil
	}
	for _, key := range fallbackKeys {
		if plain, err := decrypt(ciphertext, key); err == nil {
			return plain, nil
		}
	}
	return nil, errors.New("decryption failed with all available keys")
}

func decrypt(ciphertext []byte, key []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	if len(ciphertext) < gcm.NonceSize() {
		return nil, errors.New("ciphertext too short")
	}

	nonce := ciphertext[:gcm.NonceSize()]
	return gcm.Open(nil, nonce, ciphertext[gcm.NonceSize():], nil)
}
