package postgresql_test

import (
	"context"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/givenmphiwe/bioclock-backend-go/internal/domain/leave"
	"github.com/givenmphiwe/bioclock-backend-go/internal/repository/postgresql"
)

const updateBalance = `UPDATE leave_balances
		SET remaining = remaining - \$1, updated_at = NOW\(\)
		WHERE employee_id = \$2 AND year = \$3 AND remaining >= \$1`

func mockCtx(t *testing.T) (context.Context, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return context.WithValue(t.Context(), "tx", mock), mock
}

func TestDecrementBalance(t *testing.T) {
	t.Parallel()
	repo := postgresql.NewLeaveRepository(nil)

	t.Run("applies when balance covers the days", func(t *testing.T) {
		t.Parallel()
		ctx, mock := mockCtx(t)

		mock.ExpectExec(updateBalance).
			WithArgs(5, "emp-1", 2026).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		ok, err := repo.DecrementBalance(ctx, "emp-1", 2026, 5)

		require.NoError(t, err)
		assert.True(t, ok)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("refuses when balance is short", func(t *testing.T) {
		t.Parallel()
		ctx, mock := mockCtx(t)

		mock.ExpectExec(updateBalance).
			WithArgs(6, "emp-1", 2026).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		ok, err := repo.DecrementBalance(ctx, "emp-1", 2026, 6)

		require.NoError(t, err)
		assert.False(t, ok)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("propagates database errors", func(t *testing.T) {
		t.Parallel()
		ctx, mock := mockCtx(t)

		mock.ExpectExec(updateBalance).
			WithArgs(1, "emp-1", 2026).
			WillReturnError(assert.AnError)

		ok, err := repo.DecrementBalance(ctx, "emp-1", 2026, 1)

		require.Error(t, err)
		assert.False(t, ok)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUpdateStatus(t *testing.T) {
	t.Parallel()
	repo := postgresql.NewLeaveRepository(nil)

	t.Run("already decided request is rejected", func(t *testing.T) {
		t.Parallel()
		ctx, mock := mockCtx(t)

		decidedAt := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
		mock.ExpectExec(`UPDATE leave_requests`).
			WithArgs(leave.StatusApproved, (*string)(nil), "admin-1", decidedAt, "req-1").
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		err := repo.UpdateStatus(ctx, "req-1", leave.StatusApproved, nil, "admin-1", decidedAt)

		require.ErrorIs(t, err, leave.ErrAlreadyDecided)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
