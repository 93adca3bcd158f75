package secrets

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/zalando/go-keyring"
)

const (
	// “Service” groups the app's secrets in the OS keychain.
	KeyringService = "visahunt"

	EnvEmail    = "LI_EMAIL"
	EnvPassword = "LI_PASSWORD"
)

var ErrMissingCredentials = errors.New("linkedin credentials not found")

type Credentials struct {
	Email    string
	Password string
}

// LoadDotEnv loads .env from the working directory if present. Variables
// already set in the environment win.
func LoadDotEnv() {
	_ = godotenv.Load()
}

// LinkedIn resolves the login credentials. The e-mail must come from the
// environment; the password comes from the environment, then the keychain.
func LinkedIn() (Credentials, error) {
	email := strings.TrimSpace(os.Getenv(EnvEmail))
	if email == "" {
		return Credentials{}, fmt.Errorf("%w: %s is not set", ErrMissingCredentials, EnvEmail)
	}

	if pw := os.Getenv(EnvPassword); pw != "" {
		return Credentials{Email: email, Password: pw}, nil
	}

	pw, err := keyring.Get(KeyringService, KeyringAccount(email))
	if err == nil && strings.TrimSpace(pw) != "" {
		return Credentials{Email: email, Password: pw}, nil
	}
	return Credentials{}, fmt.Errorf("%w: %s is not set and no keychain entry for %s", ErrMissingCredentials, EnvPassword, email)
}

func SetLinkedInPassword(email, password string) error {
	if strings.TrimSpace(email) == "" {
		return errors.New("email is empty")
	}
	if strings.TrimSpace(password) == "" {
		return errors.New("password is empty")
	}
	return keyring.Set(KeyringService, KeyringAccount(email), password)
}

func DeleteLinkedInPassword(email string) error {
	if strings.TrimSpace(email) == "" {
		return errors.New("email is empty")
	}
	return keyring.Delete(KeyringService, KeyringAccount(email))
}

func KeyringAccount(email string) string {
	return "linkedin:" + strings.ToLower(strings.TrimSpace(email))
}
