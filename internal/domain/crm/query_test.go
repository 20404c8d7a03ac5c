package crm

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewQuery(t *testing.T) {
	orgID := uuid.New()

	t.Run("creates query with valid inputs", func(t *testing.T) {
		query, err := NewQuery(orgID, "Rahul Sharma", "+91 9876543210", 3, 2)
		require.NoError(t, err)
		require.NotNil(t, query)

		assert.Equal(t, orgID, query.OrganizationID)
		assert.Equal(t, "Rahul Sharma", query.CustomerName)
		assert.Equal(t, "+91 9876543210", query.Phone)
		assert.Equal(t, 3, query.Nights)
		assert.Equal(t, 2, query.Adults)
		assert.Equal(t, QueryStatusNew, query.Status)
		assert.Equal(t, SourceDirect, query.Source)
		assert.Empty(t, query.QueryNumber)
		assert.True(t, query.QuoteTotal.IsZero())
		assert.NotEmpty(t, query.ID)
	})

	t.Run("trims customer name", func(t *testing.T) {
		query, err := NewQuery(orgID, "  Priya  ", "123", 1, 1)
		require.NoError(t, err)
		assert.Equal(t, "Priya", query.CustomerName)
	})

	t.Run("fails with empty customer name", func(t *testing.T) {
		_, err := NewQuery(orgID, "  ", "123", 3, 2)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Customer name")
	})

	t.Run("fails with empty phone", func(t *testing.T) {
		_, err := NewQuery(orgID, "Rahul", "", 3, 2)
		require.Error(t, err)
	})

	t.Run("fails with zero nights", func(t *testing.T) {
		_, err := NewQuery(orgID, "Rahul", "123", 0, 2)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Nights")
	})

	t.Run("fails with zero adults", func(t *testing.T) {
		_, err := NewQuery(orgID, "Rahul", "123", 3, 0)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Adults")
	})
}

func TestQueryTransitions(t *testing.T) {
	orgID := uuid.New()

	newQuery := func(t *testing.T) *Query {
		t.Helper()
		query, err := NewQuery(orgID, "Rahul", "123", 3, 2)
		require.NoError(t, err)
		return query
	}

	t.Run("new to ongoing", func(t *testing.T) {
		query := newQuery(t)
		require.NoError(t, query.TransitionTo(QueryStatusOngoing, false))
		assert.Equal(t, QueryStatusOngoing, query.Status)
	})

	t.Run("ongoing to confirmed", func(t *testing.T) {
		query := newQuery(t)
		require.NoError(t, query.TransitionTo(QueryStatusOngoing, false))
		require.NoError(t, query.TransitionTo(QueryStatusConfirmed, false))
		assert.Equal(t, QueryStatusConfirmed, query.Status)
	})

	t.Run("cancelled reachable from every non-terminal state", func(t *testing.T) {
		for _, from := range []QueryStatus{QueryStatusNew, QueryStatusOngoing, QueryStatusConfirmed} {
			query := newQuery(t)
			query.Status = from
			require.NoError(t, query.TransitionTo(QueryStatusCancelled, false))
			assert.Equal(t, QueryStatusCancelled, query.Status)
		}
	})

	t.Run("cancelled is terminal", func(t *testing.T) {
		query := newQuery(t)
		query.Status = QueryStatusCancelled
		err := query.TransitionTo(QueryStatusOngoing, false)
		require.Error(t, err)
		assert.Equal(t, QueryStatusCancelled, query.Status)
	})

	t.Run("confirmed cannot go back to new", func(t *testing.T) {
		query := newQuery(t)
		query.Status = QueryStatusConfirmed
		require.Error(t, query.TransitionTo(QueryStatusNew, false))
	})

	t.Run("override permits backwards moves", func(t *testing.T) {
		query := newQuery(t)
		query.Status = QueryStatusConfirmed
		require.NoError(t, query.TransitionTo(QueryStatusNew, true))
		assert.Equal(t, QueryStatusNew, query.Status)
	})

	t.Run("rejects unknown status even with override", func(t *testing.T) {
		query := newQuery(t)
		require.Error(t, query.TransitionTo(QueryStatus("archived"), true))
	})

	t.Run("same status is a no-op", func(t *testing.T) {
		query := newQuery(t)
		require.NoError(t, query.TransitionTo(QueryStatusNew, false))
		assert.Equal(t, QueryStatusNew, query.Status)
	})
}

func TestQueryFollowUps(t *testing.T) {
	orgID := uuid.New()

	t.Run("appends and promotes new to ongoing", func(t *testing.T) {
		query, err := NewQuery(orgID, "Rahul", "123", 3, 2)
		require.NoError(t, err)

		scheduled := time.Now().Add(24 * time.Hour)
		require.NoError(t, query.AddFollowUp("call back tomorrow", &scheduled, "Amit"))

		require.Len(t, query.FollowUps, 1)
		assert.Equal(t, "call back tomorrow", query.FollowUps[0].Note)
		assert.Equal(t, "Amit", query.FollowUps[0].CreatedBy)
		assert.Equal(t, QueryStatusOngoing, query.Status)
		assert.NotNil(t, query.LastFollowUp)
		require.NotNil(t, query.NextFollowUp)
		assert.True(t, query.NextFollowUp.Equal(scheduled))
	})

	t.Run("does not demote confirmed query", func(t *testing.T) {
		query, err := NewQuery(orgID, "Rahul", "123", 3, 2)
		require.NoError(t, err)
		query.Status = QueryStatusConfirmed

		require.NoError(t, query.AddFollowUp("post-sale check-in", nil, "Amit"))
		assert.Equal(t, QueryStatusConfirmed, query.Status)
	})

	t.Run("rejects empty note", func(t *testing.T) {
		query, err := NewQuery(orgID, "Rahul", "123", 3, 2)
		require.NoError(t, err)
		require.Error(t, query.AddFollowUp("  ", nil, "Amit"))
		assert.Empty(t, query.FollowUps)
	})

	t.Run("pending follow-up detection", func(t *testing.T) {
		query, err := NewQuery(orgID, "Rahul", "123", 3, 2)
		require.NoError(t, err)
		assert.False(t, query.PendingFollowUp(time.Now()))

		past := time.Now().Add(-time.Hour)
		require.NoError(t, query.AddFollowUp("overdue call", &past, "Amit"))
		assert.True(t, query.PendingFollowUp(time.Now()))
	})
}

func TestQueryQuoteCache(t *testing.T) {
	orgID := uuid.New()

	t.Run("mark quoted promotes and caches", func(t *testing.T) {
		query, err := NewQuery(orgID, "Rahul", "123", 3, 2)
		require.NoError(t, err)

		query.MarkQuoted(decimal.NewFromInt(7750))
		assert.Equal(t, QueryStatusOngoing, query.Status)
		assert.True(t, query.QuoteTotal.Equal(decimal.NewFromInt(7750)))
	})

	t.Run("mark quoted keeps ongoing status", func(t *testing.T) {
		query, err := NewQuery(orgID, "Rahul", "123", 3, 2)
		require.NoError(t, err)
		query.Status = QueryStatusOngoing

		query.MarkQuoted(decimal.NewFromInt(8000))
		assert.Equal(t, QueryStatusOngoing, query.Status)
	})

	t.Run("mark confirmed sets terminal-path status", func(t *testing.T) {
		query, err := NewQuery(orgID, "Rahul", "123", 3, 2)
		require.NoError(t, err)

		query.MarkConfirmed(decimal.NewFromInt(7750))
		assert.Equal(t, QueryStatusConfirmed, query.Status)
		assert.True(t, query.QuoteTotal.Equal(decimal.NewFromInt(7750)))
	})
}
