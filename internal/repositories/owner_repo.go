package repositories

import (
	"context"

	"pgmaint/internal/models"
)

type OwnerRepository interface {
	Create(ctx context.Context, owner *models.Owner) error
	GetByUsername(ctx context.Context, username string) (*models.Owner, error)
	Count(ctx context.Context) (int, error)
}

type ownerRepo struct {
	db DBTX
}

func NewOwnerRepo(db DBTX) OwnerRepository {
	return &ownerRepo{db: db}
}

func (r *ownerRepo) Create(ctx context.Context, owner *models.Owner) error {
	query := `
		INSERT INTO owners (id, username, password_hash, name, email, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING created_at
	`
	return r.db.QueryRow(ctx, query, owner.ID, owner.Username, owner.PasswordHash, owner.Name, owner.Email).
		Scan(&owner.CreatedAt)
}

func (r *ownerRepo) GetByUsername(ctx context.Context, username string) (*models.Owner, error) {
	owner := &models.Owner{}
	query := `
		SELECT id, username, password_hash, name, email, created_at
		FROM owners
		WHERE username = $1
	`
	err := r.db.QueryRow(ctx, query, username).Scan(&owner.ID, &owner.Username, &owner.PasswordHash, &owner.Name, &owner.Email, &owner.CreatedAt)
	if err != nil {
		return nil, notFound(err, "Owner")
	}
	return owner, nil
}

func (r *ownerRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM owners`).Scan(&count)
	return count, err
}
