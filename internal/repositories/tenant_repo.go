package repositories

import (
	"context"

	"github.com/google/uuid"

	"pgmaint/internal/common"
	"pgmaint/internal/models"
)

type TenantRepository interface {
	Create(ctx context.Context, tenant *models.Tenant) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Tenant, error)
	GetByContact(ctx context.Context, contact string) (*models.Tenant, error)
	Update(ctx context.Context, tenant *models.Tenant) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]*models.Tenant, error)
}

type tenantRepo struct {
	db DBTX
}

func NewTenantRepo(db DBTX) TenantRepository {
	return &tenantRepo{db: db}
}

const tenantColumns = `tenant_id, name, room_number, contact, deposit, monthly_rent, rent_status, last_payment_date, created_at`

func scanTenant(row interface{ Scan(dest ...interface{}) error }) (*models.Tenant, error) {
	tenant := &models.Tenant{}
	err := row.Scan(&tenant.ID, &tenant.Name, &tenant.RoomNumber, &tenant.Contact, &tenant.Deposit,
		&tenant.MonthlyRent, &tenant.RentStatus, &tenant.LastPaymentDate, &tenant.CreatedAt)
	if err != nil {
		return nil, err
	}
	return tenant, nil
}

func (r *tenantRepo) Create(ctx context.Context, tenant *models.Tenant) error {
	query := `
		INSERT INTO tenants (tenant_id, name, room_number, contact, deposit, monthly_rent, rent_status, last_payment_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		RETURNING created_at
	`
	return r.db.QueryRow(ctx, query, tenant.ID, tenant.Name, tenant.RoomNumber, tenant.Contact, tenant.Deposit,
		tenant.MonthlyRent, tenant.RentStatus, tenant.LastPaymentDate).Scan(&tenant.CreatedAt)
}

func (r *tenantRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Tenant, error) {
	query := `SELECT ` + tenantColumns + ` FROM tenants WHERE tenant_id = $1`
	tenant, err := scanTenant(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, notFound(err, "Tenant")
	}
	return tenant, nil
}

// GetByContact resolves a login contact. Contacts are not unique, so ties go to
// the oldest registration.
func (r *tenantRepo) GetByContact(ctx context.Context, contact string) (*models.Tenant, error) {
	query := `SELECT ` + tenantColumns + ` FROM tenants WHERE contact = $1 ORDER BY created_at ASC, tenant_id ASC LIMIT 1`
	tenant, err := scanTenant(r.db.QueryRow(ctx, query, contact))
	if err != nil {
		return nil, notFound(err, "Tenant")
	}
	return tenant, nil
}

func (r *tenantRepo) Update(ctx context.Context, tenant *models.Tenant) error {
	query := `
		UPDATE tenants
		SET name = $1, room_number = $2, contact = $3, deposit = $4, monthly_rent = $5, rent_status = $6, last_payment_date = $7
		WHERE tenant_id = $8
	`
	tag, err := r.db.Exec(ctx, query, tenant.Name, tenant.RoomNumber, tenant.Contact, tenant.Deposit,
		tenant.MonthlyRent, tenant.RentStatus, tenant.LastPaymentDate, tenant.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return common.NewNotFoundError("Tenant")
	}
	return nil
}

func (r *tenantRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM tenants WHERE tenant_id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return common.NewNotFoundError("Tenant")
	}
	return nil
}

func (r *tenantRepo) List(ctx context.Context) ([]*models.Tenant, error) {
	query := `SELECT ` + tenantColumns + ` FROM tenants ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tenants := []*models.Tenant{}
	for rows.Next() {
		tenant, err := scanTenant(rows)
		if err != nil {
			return nil, err
		}
		tenants = append(tenants, tenant)
	}
	return tenants, rows.Err()
}
