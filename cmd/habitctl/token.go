package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/comitanigiacomo/kanso-habits/internal/client"
)

type savedLogin struct {
	Token  string `json:"token"`
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}

func saveToken(path string, login savedLogin) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create token dir: %w", err)
	}
	raw, err := json.Marshal(login)
	if err != nil {
		return err
	}
	return os.WriteFile(path, raw, 0o600)
}

// loadToken returns client.ErrNotAuthenticated when nobody has logged in yet.
func loadToken(path string) (savedLogin, error) {
	var login savedLogin
	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return login, fmt.Errorf("%w: run habitctl login first", client.ErrNotAuthenticated)
	}
	if err != nil {
		return login, fmt.Errorf("read token: %w", err)
	}
	if err := json.Unmarshal(raw, &login); err != nil || login.Token == "" {
		return login, fmt.Errorf("%w: token file is corrupt, log in again", client.ErrNotAuthenticated)
	}
	return login, nil
}

func removeToken(path string) error {
	err := os.Remove(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
