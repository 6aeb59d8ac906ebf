package service

import (
	"fmt"

	"github.com/fernet/fernet-go"
	"github.com/sirupsen/logrus"

	"github.com/WAGMIFund01/crypto-investment-manager/internal/repository"
)

// Setting keys for external provider credentials.
const (
	SettingCoinGeckoAPIKey = "coingecko_api_key"
	SettingEthplorerAPIKey = "ethplorer_api_key"
)

// SettingsService manages system settings. Secret values (provider API
// keys) are fernet-encrypted before they reach the database and decrypted
// on read; the database never holds them in the clear.
type SettingsService struct {
	settingRepo *repository.SettingRepository
	key         *fernet.Key
}

// NewSettingsService creates a SettingsService. encodedKey is the base64
// fernet key from configuration; when it is empty an ephemeral key is
// generated, which keeps the service usable but means stored secrets do
// not survive a restart.
func NewSettingsService(settingRepo *repository.SettingRepository, encodedKey string, log *logrus.Logger) (*SettingsService, error) {
	var key *fernet.Key

	if encodedKey == "" {
		key = new(fernet.Key)
		if err := key.Generate(); err != nil {
			return nil, fmt.Errorf("failed to generate fernet key: %w", err)
		}
		log.Warn("FERNET_KEY not set; stored secrets will not survive a restart")
	} else {
		keys, err := fernet.DecodeKeys(encodedKey)
		if err != nil {
			return nil, fmt.Errorf("invalid fernet key: %w", err)
		}
		key = keys[0]
	}

	return &SettingsService{
		settingRepo: settingRepo,
		key:         key,
	}, nil
}

// SetSecret encrypts and stores a secret setting value.
func (s *SettingsService) SetSecret(key, plaintext string) error {
	token, err := fernet.EncryptAndSign([]byte(plaintext), s.key)
	if err != nil {
		return fmt.Errorf("failed to encrypt setting %s: %w", key, err)
	}

	return s.settingRepo.SetSetting(key, string(token))
}

// GetSecret retrieves and decrypts a secret setting value. Returns
// apperrors.ErrSettingNotFound when the key has no stored value.
func (s *SettingsService) GetSecret(key string) (string, error) {
	setting, err := s.settingRepo.GetSetting(key)
	if err != nil {
		return "", err
	}

	plaintext := fernet.VerifyAndDecrypt([]byte(setting.Value), 0, []*fernet.Key{s.key})
	if plaintext == nil {
		return "", fmt.Errorf("failed to decrypt setting %s", key)
	}

	return string(plaintext), nil
}
