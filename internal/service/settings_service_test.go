package service_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/fernet/fernet-go"

	"github.com/WAGMIFund01/crypto-investment-manager/internal/apperrors"
	"github.com/WAGMIFund01/crypto-investment-manager/internal/repository"
	"github.com/WAGMIFund01/crypto-investment-manager/internal/service"
	"github.com/WAGMIFund01/crypto-investment-manager/internal/testutil"
)

func testFernetKey(t *testing.T) string {
	t.Helper()
	key := new(fernet.Key)
	if err := key.Generate(); err != nil {
		t.Fatalf("Failed to generate fernet key: %v", err)
	}
	return key.Encode()
}

func TestSettingsService_Secrets(t *testing.T) {
	t.Run("round-trips a secret without storing it in the clear", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewSettingRepository(db)

		ss, err := service.NewSettingsService(repo, testFernetKey(t), testutil.SilentLogger())
		if err != nil {
			t.Fatalf("NewSettingsService failed: %v", err)
		}

		if err := ss.SetSecret(service.SettingCoinGeckoAPIKey, "super-secret"); err != nil {
			t.Fatalf("SetSecret failed: %v", err)
		}

		stored, err := repo.GetSetting(service.SettingCoinGeckoAPIKey)
		if err != nil {
			t.Fatalf("GetSetting failed: %v", err)
		}
		if strings.Contains(stored.Value, "super-secret") {
			t.Error("Expected the stored value to be encrypted")
		}

		plaintext, err := ss.GetSecret(service.SettingCoinGeckoAPIKey)
		if err != nil {
			t.Fatalf("GetSecret failed: %v", err)
		}
		if plaintext != "super-secret" {
			t.Errorf("Expected round-trip to return the secret, got %q", plaintext)
		}
	})

	t.Run("missing settings yield a defined not-found error", func(t *testing.T) {
		db := testutil.SetupTestDB(t)

		ss, err := service.NewSettingsService(repository.NewSettingRepository(db), testFernetKey(t), testutil.SilentLogger())
		if err != nil {
			t.Fatalf("NewSettingsService failed: %v", err)
		}

		_, err = ss.GetSecret("never_stored")
		if !errors.Is(err, apperrors.ErrSettingNotFound) {
			t.Errorf("Expected ErrSettingNotFound, got %v", err)
		}
	})

	t.Run("an empty configured key falls back to an ephemeral one", func(t *testing.T) {
		db := testutil.SetupTestDB(t)

		ss, err := service.NewSettingsService(repository.NewSettingRepository(db), "", testutil.SilentLogger())
		if err != nil {
			t.Fatalf("NewSettingsService failed: %v", err)
		}

		if err := ss.SetSecret("k", "v"); err != nil {
			t.Fatalf("SetSecret failed: %v", err)
		}
		got, err := ss.GetSecret("k")
		if err != nil || got != "v" {
			t.Errorf("Expected ephemeral key to round-trip, got %q, %v", got, err)
		}
	})

	t.Run("a malformed configured key is rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)

		_, err := service.NewSettingsService(repository.NewSettingRepository(db), "not-base64!", testutil.SilentLogger())
		if err == nil {
			t.Error("Expected an error for a malformed fernet key")
		}
	})
}
