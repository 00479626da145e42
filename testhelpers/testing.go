package testhelpers

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"pgmaint/internal/models"
	"pgmaint/pkg/database"
)

// SetupTestDB connects to TEST_DATABASE_URL, applies the schema and empties
// every table. The test is skipped when no database is configured.
func SetupTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()

	connString := os.Getenv("TEST_DATABASE_URL")
	if connString == "" {
		t.Skip("TEST_DATABASE_URL not set; skipping database test")
	}

	ctx := context.Background()
	pool, err := database.NewPool(ctx, connString, zap.NewNop())
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	t.Cleanup(pool.Close)

	if err := database.Bootstrap(ctx, pool); err != nil {
		t.Fatalf("Failed to apply schema: %v", err)
	}
	if _, err := pool.Exec(ctx, `TRUNCATE complaints, tenants, owners`); err != nil {
		t.Fatalf("Failed to reset test database: %v", err)
	}
	return pool
}

// SeedTenant inserts a tenant with the given creation time
func SeedTenant(t *testing.T, pool *pgxpool.Pool, name, contact string, createdAt time.Time) *models.Tenant {
	t.Helper()

	tenant := &models.Tenant{
		ID:         uuid.New(),
		Name:       name,
		RoomNumber: "101",
		Contact:    contact,
		RentStatus: models.RentStatusPending,
		CreatedAt:  createdAt,
	}
	query := `
		INSERT INTO tenants (tenant_id, name, room_number, contact, deposit, monthly_rent, rent_status, created_at)
		VALUES ($1, $2, $3, $4, 0, 0, $5, $6)
	`
	_, err := pool.Exec(context.Background(), query, tenant.ID, tenant.Name, tenant.RoomNumber, tenant.Contact,
		tenant.RentStatus, tenant.CreatedAt)
	if err != nil {
		t.Fatalf("Failed to create test tenant: %v", err)
	}
	return tenant
}

// SeedComplaint files a pending complaint for tenantID
func SeedComplaint(t *testing.T, pool *pgxpool.Pool, tenantID uuid.UUID, issue string) uuid.UUID {
	t.Helper()

	id := uuid.New()
	query := `
		INSERT INTO complaints (complaint_id, tenant_id, room_number, issue_description, status, created_at)
		VALUES ($1, $2, '101', $3, 'Pending', NOW())
	`
	if _, err := pool.Exec(context.Background(), query, id, tenantID, issue); err != nil {
		t.Fatalf("Failed to create test complaint: %v", err)
	}
	return id
}
