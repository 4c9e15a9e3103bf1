// Package memory provides the in-process store. It is the default
// backend: deterministic, dependency-free and safe for concurrent use.
package memory

import (
	"collectrent/internal/repository"
)

type Store struct {
	repository.AssetRepository
	repository.AgreementRepository
	repository.ShareRepository
}

func NewStore() *Store {
	return &Store{
		AssetRepository:     NewAssetRepository(),
		AgreementRepository: NewAgreementRepository(),
		ShareRepository:     NewShareRepository(),
	}
}
