// Package usecase contains the application use cases.
package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/task-reminder/internal/domain"
)

// InitStoreInput contains the input parameters for InitStore.
type InitStoreInput struct{}

// InitStoreOutput contains the output from InitStore.
type InitStoreOutput struct {
	AlreadyInitialized bool // True if every collection already existed
}

// InitStore creates the data directory and any missing empty collections.
type InitStore struct {
	storeInit domain.StoreInitializer
}

// NewInitStore creates a new InitStore use case.
func NewInitStore(storeInit domain.StoreInitializer) *InitStore {
	return &InitStore{storeInit: storeInit}
}

// Execute initializes the store. Running it again repairs missing collections
// and never touches existing ones.
func (uc *InitStore) Execute(_ context.Context, _ InitStoreInput) (*InitStoreOutput, error) {
	already := uc.storeInit.IsInitialized()
	if err := uc.storeInit.Initialize(); err != nil {
		return nil, fmt.Errorf("initialize store: %w", err)
	}
	return &InitStoreOutput{AlreadyInitialized: already}, nil
}
