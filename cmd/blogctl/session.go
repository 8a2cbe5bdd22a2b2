package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/golang-jwt/jwt/v5"
)

// Identity is the locally decoded view of the session token's claims.
type Identity struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Username  string `json:"username"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// Session holds the stored token plus the identity decoded from it. It is a
// convenience mirror only: the token is decoded without signature
// verification, and the server re-verifies it on every privileged call.
type Session struct {
	Token string   `json:"token"`
	User  Identity `json:"user"`
}

type tokenClaims struct {
	Email     string `json:"email"`
	Username  string `json:"username"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	jwt.RegisteredClaims
}

func sessionPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".blogit", "session.json"), nil
}

// SaveSession decodes the token's claims locally and persists the session.
func SaveSession(token string) (*Session, error) {
	identity, err := decodeIdentity(token)
	if err != nil {
		return nil, err
	}

	session := &Session{Token: token, User: *identity}

	path, err := sessionPath()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, err
	}

	data, err := json.MarshalIndent(session, "", "  ")
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return nil, err
	}

	return session, nil
}

// LoadSession reads the stored session, if any.
func LoadSession() (*Session, error) {
	path, err := sessionPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, errors.New("not logged in")
		}
		return nil, err
	}

	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, err
	}
	if session.Token == "" {
		return nil, errors.New("not logged in")
	}

	return &session, nil
}

// ClearSession removes the stored session.
func ClearSession() error {
	path, err := sessionPath()
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// decodeIdentity extracts the identity claims without verifying the
// signature; only the server holds the secret.
func decodeIdentity(token string) (*Identity, error) {
	var claims tokenClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return nil, fmt.Errorf("failed to decode token: %w", err)
	}
	if claims.Subject == "" {
		return nil, errors.New("token is missing subject claim")
	}

	return &Identity{
		ID:        claims.Subject,
		Email:     claims.Email,
		Username:  claims.Username,
		FirstName: claims.FirstName,
		LastName:  claims.LastName,
	}, nil
}
