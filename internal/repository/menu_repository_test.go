package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMenuRepositoryGetItemsByIDs(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMenuRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "menu_items"`).
		WithArgs(10, 11).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "available", "restaurant_id"}).
			AddRow(10, "Burger", true, 1))

	items, err := repo.GetItemsByIDs(context.Background(), []uint{10, 11})
	require.NoError(t, err)
	require.Len(t, items, 1, "missing IDs are absent, not an error")
	assert.Equal(t, "Burger", items[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMenuRepositoryDeleteCategoryCascadesItems(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMenuRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "menu_items" SET "deleted_at"`).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`UPDATE "menu_categories" SET "deleted_at"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.DeleteCategory(context.Background(), 2))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMenuRepositoryGetItemNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMenuRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "menu_items"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	item, err := repo.GetItem(context.Background(), 42)
	require.NoError(t, err)
	assert.Nil(t, item)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMenuRepositoryListByRestaurantFiltersAvailability(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMenuRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "menu_categories"`).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "restaurant_id"}).
			AddRow(2, "Mains", 1))
	mock.ExpectQuery(`SELECT \* FROM "menu_items" WHERE .*available`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "category_id", "available"}).
			AddRow(3, "Burger", 2, true))

	categories, err := repo.ListByRestaurant(context.Background(), 1, false)
	require.NoError(t, err)
	require.Len(t, categories, 1)
	assert.Len(t, categories[0].Items, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}
