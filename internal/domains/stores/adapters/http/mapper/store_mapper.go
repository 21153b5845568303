package mapper

import (
	"github.com/retailops/backoffice/internal/domains/stores/domain"
)

// Store is the HTTP representation of a retail location.
type Store struct {
	ID      int64  `json:"id,omitempty"`
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
}

// ToDomainStore maps a transport store into the domain aggregate.
func ToDomainStore(input Store) (*domain.Store, error) {
	return domain.NewStore(input.ID, input.Name, input.Address)
}

// FromDomainStore maps a domain store into the transport representation.
func FromDomainStore(store *domain.Store) Store {
	return Store{ID: store.ID, Name: store.Name, Address: store.Address}
}

// FromDomainStoreList maps a slice of domain stores.
func FromDomainStoreList(list []*domain.Store) []Store {
	result := make([]Store, 0, len(list))
	for _, store := range list {
		result = append(result, FromDomainStore(store))
	}
	return result
}
