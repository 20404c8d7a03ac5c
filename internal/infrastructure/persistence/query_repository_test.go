package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travvip/backend/internal/domain/crm"
	"github.com/travvip/backend/internal/domain/shared"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockQueryRepository creates a GormQueryRepository with a mocked SQL connection
func newMockQueryRepository(t *testing.T) (*GormQueryRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormQueryRepository(gormDB), mock, mockDB
}

func TestGormQueryRepository_Create(t *testing.T) {
	t.Run("assigns first number when organization has no queries", func(t *testing.T) {
		repo, mock, mockDB := newMockQueryRepository(t)
		defer mockDB.Close()

		orgID := uuid.New()
		query, err := crm.NewQuery(orgID, "Asha Verma", "+91 98765 43210", 3, 2)
		require.NoError(t, err)

		mock.ExpectBegin()
		mock.ExpectExec(`SELECT pg_advisory_xact_lock\(\$1\)`).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(`SELECT COALESCE\(MAX\(CAST\(SUBSTRING\(query_number FROM 5\) AS INTEGER\)\), 0\) FROM "queries"`).
			WithArgs(orgID).
			WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(0))
		mock.ExpectExec(`INSERT INTO "queries"`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err = repo.Create(context.Background(), query)

		assert.NoError(t, err)
		assert.Equal(t, "QRY-001", query.QueryNumber)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("continues the per-organization sequence", func(t *testing.T) {
		repo, mock, mockDB := newMockQueryRepository(t)
		defer mockDB.Close()

		orgID := uuid.New()
		query, err := crm.NewQuery(orgID, "Rahul Nair", "+91 91234 56789", 5, 2)
		require.NoError(t, err)

		mock.ExpectBegin()
		mock.ExpectExec(`SELECT pg_advisory_xact_lock\(\$1\)`).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(`SELECT COALESCE\(MAX\(CAST\(SUBSTRING\(query_number FROM 5\) AS INTEGER\)\), 0\) FROM "queries"`).
			WithArgs(orgID).
			WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(41))
		mock.ExpectExec(`INSERT INTO "queries"`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err = repo.Create(context.Background(), query)

		assert.NoError(t, err)
		assert.Equal(t, "QRY-042", query.QueryNumber)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormQueryRepository_FindByIDForOrg(t *testing.T) {
	t.Run("returns not found for a query in another organization", func(t *testing.T) {
		repo, mock, mockDB := newMockQueryRepository(t)
		defer mockDB.Close()

		orgID := uuid.New()
		queryID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "queries" WHERE organization_id = \$1 AND id = \$2 ORDER BY .* LIMIT .*`).
			WithArgs(orgID, queryID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		query, err := repo.FindByIDForOrg(context.Background(), orgID, queryID)

		assert.Nil(t, query)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormQueryRepository_StatsForOrg(t *testing.T) {
	t.Run("maps the aggregate row", func(t *testing.T) {
		repo, mock, mockDB := newMockQueryRepository(t)
		defer mockDB.Close()

		orgID := uuid.New()

		rows := sqlmock.NewRows([]string{
			"total", "new", "ongoing", "confirmed", "cancelled", "confirmed_revenue", "pending_follow_ups",
		}).AddRow(12, 3, 5, 2, 2, "155000.00", 4)

		mock.ExpectQuery(`SELECT COUNT\(\*\) AS total,`).
			WithArgs(orgID).
			WillReturnRows(rows)

		stats, err := repo.StatsForOrg(context.Background(), orgID)

		require.NoError(t, err)
		assert.Equal(t, int64(12), stats.Total)
		assert.Equal(t, int64(3), stats.New)
		assert.Equal(t, int64(5), stats.Ongoing)
		assert.Equal(t, int64(2), stats.Confirmed)
		assert.Equal(t, int64(2), stats.Cancelled)
		assert.True(t, stats.ConfirmedRevenue.Equal(decimal.NewFromInt(155000)))
		assert.Equal(t, int64(4), stats.PendingFollowUps)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
