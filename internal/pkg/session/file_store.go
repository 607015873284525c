package session

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/crypto/nacl/secretbox"
)

const sealedPrefix = "sealed:"

// FileStore persists the token in a small JSON document on disk, keyed by a
// well-known name. With a secret the value is sealed with NaCl secretbox.
type FileStore struct {
	path   string
	key    string
	secret *[32]byte

	mu sync.Mutex
}

func NewFileStore(path, key string) *FileStore {
	return &FileStore{path: path, key: key}
}

// WithSecret enables sealing. hexKey must decode to exactly 32 bytes.
func (s *FileStore) WithSecret(hexKey string) (*FileStore, error) {
	raw, err := hex.DecodeString(strings.TrimSpace(hexKey))
	if err != nil {
		return nil, fmt.Errorf("invalid session secret: %w", err)
	}
	if len(raw) != 32 {
		return nil, fmt.Errorf("invalid session secret: want 32 bytes, got %d", len(raw))
	}
	var k [32]byte
	copy(k[:], raw)
	s.secret = &k
	return s, nil
}

func (s *FileStore) Load(_ context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return "", err
	}
	v := doc[s.key]
	if v == "" {
		return "", nil
	}
	return s.open(v)
}

func (s *FileStore) Save(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return err
	}
	v, err := s.seal(token)
	if err != nil {
		return err
	}
	doc[s.key] = v
	return s.write(doc)
}

func (s *FileStore) Delete(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return err
	}
	if _, ok := doc[s.key]; !ok {
		return nil
	}
	delete(doc, s.key)
	return s.write(doc)
}

func (s *FileStore) read() (map[string]string, error) {
	doc := map[string]string{}
	b, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return doc, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}
	if len(b) == 0 {
		return doc, nil
	}
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode session file: %w", err)
	}
	return doc, nil
}

// write replaces the file atomically so a crash never leaves half a token behind.
func (s *FileStore) write(doc map[string]string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("failed to create session dir: %w", err)
	}
	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".session-*")
	if err != nil {
		return fmt.Errorf("failed to create temp session file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write session file: %w", err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), s.path)
}

func (s *FileStore) seal(token string) (string, error) {
	if s.secret == nil {
		return token, nil
	}
	var nonce [24]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}
	box := secretbox.Seal(nonce[:], []byte(token), &nonce, s.secret)
	return sealedPrefix + base64.RawURLEncoding.EncodeToString(box), nil
}

func (s *FileStore) open(v string) (string, error) {
	if !strings.HasPrefix(v, sealedPrefix) {
		if s.secret != nil {
			return "", errors.New("session token is not sealed")
		}
		return v, nil
	}
	if s.secret == nil {
		return "", errors.New("session token is sealed but no secret is configured")
	}
	box, err := base64.RawURLEncoding.DecodeString(strings.TrimPrefix(v, sealedPrefix))
	if err != nil || len(box) < 24 {
		return "", errors.New("corrupt sealed session token")
	}
	var nonce [24]byte
	copy(nonce[:], box[:24])
	out, ok := secretbox.Open(nil, box[24:], &nonce, s.secret)
	if !ok {
		return "", errors.New("failed to open sealed session token")
	}
	return string(out), nil
}
