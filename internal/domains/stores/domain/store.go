package domain

import (
	"errors"
	"strings"
)

var (
	ErrEmptyName    = errors.New("store name is required")
	ErrEmptyAddress = errors.New("store address is required")
)

// Store is a physical retail location. Order placement only reads it.
type Store struct {
	ID      int64
	Name    string
	Address string
}

// NewStore validates and constructs a store.
func NewStore(id int64, name, address string) (*Store, error) {
	store := &Store{ID: id}
	if err := store.Rename(name); err != nil {
		return nil, err
	}
	if err := store.Relocate(address); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *Store) Rename(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyName
	}
	s.Name = name
	return nil
}

func (s *Store) Relocate(address string) error {
	if strings.TrimSpace(address) == "" {
		return ErrEmptyAddress
	}
	s.Address = address
	return nil
}

// Validate re-applies invariants for persistence.
func (s *Store) Validate() error {
	if err := s.Rename(s.Name); err != nil {
		return err
	}
	return s.Relocate(s.Address)
}
