// Package secrets stores the advisor API key in the OS keychain.
package secrets

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/zalando/go-keyring"
)

const (
	defaultService = "tuimole"
	accountAPIKey  = "advisor-api-key"
)

// ErrNotFound is returned when no key is stored.
var ErrNotFound = keyring.ErrNotFound

// Keyring wraps the OS keychain with an optional file fallback for systems
// without a keyring backend.
type Keyring struct {
	service      string
	fallbackPath string
	mu           sync.Mutex
}

// NewKeyring creates a keyring wrapper.
func NewKeyring(service, fallbackPath string) *Keyring {
	if strings.TrimSpace(service) == "" {
		service = defaultService
	}
	return &Keyring{service: service, fallbackPath: fallbackPath}
}

// APIKey returns the stored advisor key.
func (k *Keyring) APIKey() (string, error) {
	val, err := keyring.Get(k.service, accountAPIKey)
	if err == nil {
		return val, nil
	}
	if !isUnavailable(err) && !errors.Is(err, keyring.ErrNotFound) {
		return "", fmt.Errorf("failed to read keyring: %w", err)
	}
	fallback, ferr := k.getFallback()
	if ferr == nil {
		return fallback, nil
	}
	if errors.Is(err, keyring.ErrNotFound) || errors.Is(ferr, keyring.ErrNotFound) {
		return "", ErrNotFound
	}
	return "", ferr
}

// SetAPIKey stores the advisor key.
func (k *Keyring) SetAPIKey(value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return errors.New("API key is empty")
	}
	err := keyring.Set(k.service, accountAPIKey, value)
	if err == nil {
		return nil
	}
	if !isUnavailable(err) {
		return fmt.Errorf("failed to write keyring: %w", err)
	}
	return k.setFallback(value)
}

// DeleteAPIKey removes the advisor key from the keyring and the fallback file.
func (k *Keyring) DeleteAPIKey() error {
	err := keyring.Delete(k.service, accountAPIKey)
	if ferr := k.deleteFallback(); ferr != nil {
		return ferr
	}
	if err != nil && !errors.Is(err, keyring.ErrNotFound) && !isUnavailable(err) {
		return fmt.Errorf("failed to delete keyring entry: %w", err)
	}
	return nil
}

func isUnavailable(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "secret service") ||
		strings.Contains(msg, "dbus") ||
		strings.Contains(msg, "no keychain") ||
		strings.Contains(msg, "keyring backend not available")
}

type fallbackSecrets map[string]string

func (k *Keyring) setFallback(value string) error {
	if strings.TrimSpace(k.fallbackPath) == "" {
		return errors.New("keyring unavailable and no fallback path configured")
	}
	k.mu.Lock()
	defer k.mu.Unlock()

	data, err := k.readFallback()
	if err != nil {
		return err
	}
	data[k.service] = value
	return k.writeFallback(data)
}

func (k *Keyring) getFallback() (string, error) {
	if strings.TrimSpace(k.fallbackPath) == "" {
		return "", keyring.ErrNotFound
	}
	k.mu.Lock()
	defer k.mu.Unlock()

	data, err := k.readFallback()
	if err != nil {
		return "", err
	}
	val, ok := data[k.service]
	if !ok {
		return "", keyring.ErrNotFound
	}
	return val, nil
}

func (k *Keyring) deleteFallback() error {
	if strings.TrimSpace(k.fallbackPath) == "" {
		return nil
	}
	k.mu.Lock()
	defer k.mu.Unlock()

	data, err := k.readFallback()
	if err != nil {
		return err
	}
	if _, ok := data[k.service]; !ok {
		return nil
	}
	delete(data, k.service)
	return k.writeFallback(data)
}

func (k *Keyring) readFallback() (fallbackSecrets, error) {
	out := fallbackSecrets{}
	raw, err := os.ReadFile(k.fallbackPath)
	if err != nil {
		if os.IsNotExist(err) {
			return out, nil
		}
		return nil, fmt.Errorf("failed to read fallback secrets: %w", err)
	}
	if len(raw) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("failed to decode fallback secrets: %w", err)
	}
	return out, nil
}

func (k *Keyring) writeFallback(data fallbackSecrets) error {
	if err := os.MkdirAll(filepath.Dir(k.fallbackPath), 0o700); err != nil {
		return fmt.Errorf("failed to create fallback dir: %w", err)
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to encode fallback secrets: %w", err)
	}
	if err := os.WriteFile(k.fallbackPath, raw, 0o600); err != nil {
		return fmt.Errorf("failed to write fallback secrets: %w", err)
	}
	return nil
}
