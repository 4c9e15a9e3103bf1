// Package postgres provides the durable store. Schema lives in
// migrations/0001_init.up.sql.
package postgres

import (
	"database/sql"

	"collectrent/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.AssetRepository
	repository.AgreementRepository
	repository.ShareRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                  db,
		AssetRepository:     NewAssetRepository(db),
		AgreementRepository: NewAgreementRepository(db),
		ShareRepository:     NewShareRepository(db),
	}
}
