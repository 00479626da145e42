package repositories

import (
	"context"

	"github.com/google/uuid"

	"pgmaint/internal/common"
	"pgmaint/internal/models"
)

type ComplaintRepository interface {
	Create(ctx context.Context, complaint *models.Complaint) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Complaint, error)
	List(ctx context.Context) ([]*models.Complaint, error)
	ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]*models.Complaint, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.ComplaintStatus) error
}

type complaintRepo struct {
	db DBTX
}

func NewComplaintRepo(db DBTX) ComplaintRepository {
	return &complaintRepo{db: db}
}

func (r *complaintRepo) Create(ctx context.Context, complaint *models.Complaint) error {
	query := `
		INSERT INTO complaints (complaint_id, tenant_id, room_number, issue_description, status, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING created_at
	`
	return r.db.QueryRow(ctx, query, complaint.ID, complaint.TenantID, complaint.RoomNumber,
		complaint.IssueDescription, complaint.Status).Scan(&complaint.CreatedAt)
}

func (r *complaintRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Complaint, error) {
	complaint := &models.Complaint{}
	query := `
		SELECT complaint_id, tenant_id, room_number, issue_description, status, created_at
		FROM complaints
		WHERE complaint_id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&complaint.ID, &complaint.TenantID, &complaint.RoomNumber,
		&complaint.IssueDescription, &complaint.Status, &complaint.CreatedAt)
	if err != nil {
		return nil, notFound(err, "Complaint")
	}
	return complaint, nil
}

func (r *complaintRepo) List(ctx context.Context) ([]*models.Complaint, error) {
	query := `
		SELECT c.complaint_id, c.tenant_id, c.room_number, c.issue_description, c.status, c.created_at, t.name
		FROM complaints c
		JOIN tenants t ON c.tenant_id = t.tenant_id
		ORDER BY c.created_at DESC
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	complaints := []*models.Complaint{}
	for rows.Next() {
		complaint := &models.Complaint{}
		var tenantName string
		if err := rows.Scan(&complaint.ID, &complaint.TenantID, &complaint.RoomNumber, &complaint.IssueDescription,
			&complaint.Status, &complaint.CreatedAt, &tenantName); err != nil {
			return nil, err
		}
		complaint.TenantName = &tenantName
		complaints = append(complaints, complaint)
	}
	return complaints, rows.Err()
}

func (r *complaintRepo) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]*models.Complaint, error) {
	query := `
		SELECT complaint_id, tenant_id, room_number, issue_description, status, created_at
		FROM complaints
		WHERE tenant_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.db.Query(ctx, query, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	complaints := []*models.Complaint{}
	for rows.Next() {
		complaint := &models.Complaint{}
		if err := rows.Scan(&complaint.ID, &complaint.TenantID, &complaint.RoomNumber, &complaint.IssueDescription,
			&complaint.Status, &complaint.CreatedAt); err != nil {
			return nil, err
		}
		complaints = append(complaints, complaint)
	}
	return complaints, rows.Err()
}

func (r *complaintRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status models.ComplaintStatus) error {
	tag, err := r.db.Exec(ctx, `UPDATE complaints SET status = $1 WHERE complaint_id = $2`, status, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return common.NewNotFoundError("Complaint")
	}
	return nil
}
