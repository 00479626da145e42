package repositories

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	pgx "github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"pgmaint/internal/common"
	"pgmaint/internal/models"
)

type ComplaintRepoTestSuite struct {
	suite.Suite
	mock        pgxmock.PgxPoolIface
	repo        ComplaintRepository
	tenantID    uuid.UUID
	complaintID uuid.UUID
	context     context.Context
}

func (suite *ComplaintRepoTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	require.NoError(suite.T(), err)
	suite.mock = mock
	suite.repo = NewComplaintRepo(mock)
	suite.tenantID = uuid.New()
	suite.complaintID = uuid.New()
	suite.context = context.Background()
}

func (suite *ComplaintRepoTestSuite) TearDownTest() {
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
	suite.mock.Close()
}

func TestComplaintRepoTestSuite(t *testing.T) {
	suite.Run(t, new(ComplaintRepoTestSuite))
}

func (suite *ComplaintRepoTestSuite) TestCreate_Success() {
	complaint := &models.Complaint{
		ID:               suite.complaintID,
		TenantID:         suite.tenantID,
		RoomNumber:       "101",
		IssueDescription: "Leaking tap",
		Status:           models.ComplaintStatusPending,
	}
	createdAt := time.Date(2024, 4, 2, 9, 30, 0, 0, time.UTC)

	suite.mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO complaints`)).
		WithArgs(complaint.ID, complaint.TenantID, complaint.RoomNumber, complaint.IssueDescription, complaint.Status).
		WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(createdAt))

	require.NoError(suite.T(), suite.repo.Create(suite.context, complaint))
	assert.Equal(suite.T(), createdAt, complaint.CreatedAt)
}

func (suite *ComplaintRepoTestSuite) TestGetByID_NotFound() {
	suite.mock.ExpectQuery(regexp.QuoteMeta(`FROM complaints`)).
		WithArgs(suite.complaintID).
		WillReturnError(pgx.ErrNoRows)

	complaint, err := suite.repo.GetByID(suite.context, suite.complaintID)
	assert.Nil(suite.T(), complaint)
	assert.EqualError(suite.T(), err, "Complaint not found")
}

func (suite *ComplaintRepoTestSuite) TestList_IncludesTenantName() {
	suite.mock.ExpectQuery(regexp.QuoteMeta(`JOIN tenants t ON c.tenant_id = t.tenant_id`)).
		WillReturnRows(pgxmock.NewRows([]string{"complaint_id", "tenant_id", "room_number", "issue_description", "status", "created_at", "name"}).
			AddRow(suite.complaintID, suite.tenantID, "101", "No hot water", "Fixed", time.Now(), "Ravi"))

	complaints, err := suite.repo.List(suite.context)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), complaints, 1)
	require.NotNil(suite.T(), complaints[0].TenantName)
	assert.Equal(suite.T(), "Ravi", *complaints[0].TenantName)
	assert.Equal(suite.T(), models.ComplaintStatusFixed, complaints[0].Status)
}

func (suite *ComplaintRepoTestSuite) TestListByTenant() {
	suite.mock.ExpectQuery(regexp.QuoteMeta(`WHERE tenant_id = $1`)).
		WithArgs(suite.tenantID).
		WillReturnRows(pgxmock.NewRows([]string{"complaint_id", "tenant_id", "room_number", "issue_description", "status", "created_at"}).
			AddRow(suite.complaintID, suite.tenantID, "101", "Broken fan", "Pending", time.Now()))

	complaints, err := suite.repo.ListByTenant(suite.context, suite.tenantID)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), complaints, 1)
	assert.Nil(suite.T(), complaints[0].TenantName)
}

func (suite *ComplaintRepoTestSuite) TestUpdateStatus() {
	suite.mock.ExpectExec(regexp.QuoteMeta(`UPDATE complaints SET status = $1 WHERE complaint_id = $2`)).
		WithArgs(models.ComplaintStatusFixed, suite.complaintID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	assert.NoError(suite.T(), suite.repo.UpdateStatus(suite.context, suite.complaintID, models.ComplaintStatusFixed))
}

func (suite *ComplaintRepoTestSuite) TestUpdateStatus_NotFound() {
	suite.mock.ExpectExec(regexp.QuoteMeta(`UPDATE complaints SET status = $1 WHERE complaint_id = $2`)).
		WithArgs(models.ComplaintStatusFixed, suite.complaintID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	assert.ErrorIs(suite.T(), suite.repo.UpdateStatus(suite.context, suite.complaintID, models.ComplaintStatusFixed), common.ErrNotFound)
}
