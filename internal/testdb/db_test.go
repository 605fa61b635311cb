package testdb_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/phrazzld/widget-api/internal/domain"
	"github.com/phrazzld/widget-api/internal/store"
	"github.com/phrazzld/widget-api/internal/testdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenIsMigratedAndIsolated(t *testing.T) {
	ctx := context.Background()

	first := testdb.Open(t)
	require.NoError(t, first.WidgetStore().Create(ctx, &domain.Widget{Name: "only-here"}))

	second := testdb.Open(t)
	widgets, err := second.WidgetStore().List(ctx)
	require.NoError(t, err)
	assert.Empty(t, widgets)
}

func TestWithTxRollsBack(t *testing.T) {
	ctx := context.Background()
	db := testdb.Open(t)
	widgets := db.WidgetStore()

	db.WithTx(t, func(t *testing.T, tx *sql.Tx) {
		require.NoError(t, widgets.WithTx(tx).Create(ctx, &domain.Widget{Name: "ephemeral"}))
	})

	_, err := widgets.GetByName(ctx, "ephemeral")
	assert.ErrorIs(t, err, store.ErrWidgetNotFound)
}
