// Copyright 2026 The Trellminal Authors
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
)

// ErrAccountNotFound is returned when an account ID is not stored.
var ErrAccountNotFound = errors.New("store: account not found")

// Account is a Trello member together with the token granted for it.
type Account struct {
	ID       string `toml:"id"`
	Username string `toml:"username"`
	Token    string `toml:"token"`
}

// database is the on-disk shape of the store file.
type database struct {
	FirstLoad     bool      `toml:"first_load"`
	ActiveAccount string    `toml:"active_account,omitempty"`
	Accounts      []Account `toml:"accounts"`
}

// Store is the account database. Safe for concurrent use.
type Store struct {
	path string

	mu   sync.Mutex
	data database
}

// Open loads the store at path. A missing file yields an empty store
// in its first-load state; the file is created on the first Save.
func Open(path string) (*Store, error) {
	store := &Store{
		path: path,
		data: database{FirstLoad: true},
	}

	content, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return store, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading store %s: %w", path, err)
	}
	if _, err := toml.Decode(string(content), &store.data); err != nil {
		return nil, fmt.Errorf("parsing store %s: %w", path, err)
	}
	if store.data.ActiveAccount != "" && store.indexLocked(store.data.ActiveAccount) < 0 {
		store.data.ActiveAccount = ""
	}
	return store, nil
}

// Path returns the file the store saves to.
func (store *Store) Path() string {
	return store.path
}

// Save writes the store to disk atomically (temp file + rename).
func (store *Store) Save() error {
	store.mu.Lock()
	snapshot := database{
		FirstLoad:     store.data.FirstLoad,
		ActiveAccount: store.data.ActiveAccount,
		Accounts:      slices.Clone(store.data.Accounts),
	}
	store.mu.Unlock()

	var builder strings.Builder
	if err := toml.NewEncoder(&builder).Encode(snapshot); err != nil {
		return fmt.Errorf("encoding store: %w", err)
	}

	directory := filepath.Dir(store.path)
	if err := os.MkdirAll(directory, 0o700); err != nil {
		return fmt.Errorf("creating store directory %s: %w", directory, err)
	}
	temporary, err := os.CreateTemp(directory, ".trellminaldb-*")
	if err != nil {
		return fmt.Errorf("creating temporary store file: %w", err)
	}
	temporaryPath := temporary.Name()
	defer os.Remove(temporaryPath)

	if _, err := temporary.WriteString(builder.String()); err != nil {
		temporary.Close()
		return fmt.Errorf("writing store: %w", err)
	}
	if err := temporary.Chmod(0o600); err != nil {
		temporary.Close()
		return fmt.Errorf("setting store permissions: %w", err)
	}
	if err := temporary.Close(); err != nil {
		return fmt.Errorf("closing store: %w", err)
	}
	if err := os.Rename(temporaryPath, store.path); err != nil {
		return fmt.Errorf("replacing store %s: %w", store.path, err)
	}
	return nil
}

// FirstLoad reports whether the welcome screen has not yet been
// dismissed.
func (store *Store) FirstLoad() bool {
	store.mu.Lock()
	defer store.mu.Unlock()
	return store.data.FirstLoad
}

// CompleteFirstLoad records that the welcome screen was dismissed.
func (store *Store) CompleteFirstLoad() {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.data.FirstLoad = false
}

// ActiveAccount returns the account currently in use.
func (store *Store) ActiveAccount() (Account, bool) {
	store.mu.Lock()
	defer store.mu.Unlock()
	index := store.indexLocked(store.data.ActiveAccount)
	if index < 0 {
		return Account{}, false
	}
	return store.data.Accounts[index], true
}

// SetActiveAccount makes the account with the given ID active.
func (store *Store) SetActiveAccount(id string) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	if store.indexLocked(id) < 0 {
		return fmt.Errorf("%w: %s", ErrAccountNotFound, id)
	}
	store.data.ActiveAccount = id
	return nil
}

// ClearActiveAccount leaves no account active.
func (store *Store) ClearActiveAccount() {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.data.ActiveAccount = ""
}

// AddAccount stores an account, replacing any account with the same ID
// (a re-authenticated member keeps a single entry with the new token).
func (store *Store) AddAccount(account Account) {
	store.mu.Lock()
	defer store.mu.Unlock()
	if index := store.indexLocked(account.ID); index >= 0 {
		store.data.Accounts[index] = account
		return
	}
	store.data.Accounts = append(store.data.Accounts, account)
}

// RemoveAccount deletes an account. Removing the active account leaves
// no account active.
func (store *Store) RemoveAccount(id string) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	index := store.indexLocked(id)
	if index < 0 {
		return fmt.Errorf("%w: %s", ErrAccountNotFound, id)
	}
	store.data.Accounts = slices.Delete(store.data.Accounts, index, index+1)
	if store.data.ActiveAccount == id {
		store.data.ActiveAccount = ""
	}
	return nil
}

// Accounts returns every stored account sorted by username.
func (store *Store) Accounts() []Account {
	store.mu.Lock()
	accounts := slices.Clone(store.data.Accounts)
	store.mu.Unlock()

	slices.SortFunc(accounts, func(a, b Account) int {
		return strings.Compare(a.Username, b.Username)
	})
	return accounts
}

func (store *Store) indexLocked(id string) int {
	if id == "" {
		return -1
	}
	return slices.IndexFunc(store.data.Accounts, func(account Account) bool {
		return account.ID == id
	})
}
