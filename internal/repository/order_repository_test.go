package repository

import (
	"context"
	"testing"

	"github.com/vicriadty/cafe-app-ai/internal/model"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderRepositoryCreateIsTransactional(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewOrderRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "orders"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectQuery(`INSERT INTO "order_items"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1).AddRow(2))
	mock.ExpectCommit()

	order := &model.Order{
		OrderNumber:  model.NewOrderNumber(),
		TotalAmount:  decimal.RequireFromString("19.98"),
		Status:       model.OrderStatusPending,
		CustomerID:   2,
		RestaurantID: 1,
		Items: []model.OrderItem{
			{MenuItemID: 10, Quantity: 1, UnitPrice: decimal.RequireFromString("9.99"), TotalPrice: decimal.RequireFromString("9.99")},
			{MenuItemID: 11, Quantity: 1, UnitPrice: decimal.RequireFromString("9.99"), TotalPrice: decimal.RequireFromString("9.99")},
		},
	}
	require.NoError(t, repo.Create(context.Background(), order))
	assert.Equal(t, uint(1), order.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepositoryCreateRollsBackOnFailure(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewOrderRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "orders"`).
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	order := &model.Order{
		OrderNumber:  model.NewOrderNumber(),
		TotalAmount:  decimal.RequireFromString("9.99"),
		Status:       model.OrderStatusPending,
		CustomerID:   2,
		RestaurantID: 1,
		Items:        []model.OrderItem{{MenuItemID: 10, Quantity: 1}},
	}
	require.Error(t, repo.Create(context.Background(), order))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepositoryGetByIDNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewOrderRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "orders"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	order, err := repo.GetByID(context.Background(), 42)
	require.NoError(t, err, "missing rows are not an error")
	assert.Nil(t, order)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepositoryGetByIDPreloadsItems(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewOrderRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "orders"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "order_number", "status", "customer_id", "restaurant_id"}).
			AddRow(1, "ORD-1-AAAAAAAAA", "PENDING", 2, 1))
	mock.ExpectQuery(`SELECT \* FROM "order_items"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "order_id", "menu_item_id", "quantity"}).
			AddRow(5, 1, 10, 2))

	order, err := repo.GetByID(context.Background(), 1)
	require.NoError(t, err)
	require.NotNil(t, order)
	assert.Equal(t, model.OrderStatusPending, order.Status)
	require.Len(t, order.Items, 1)
	assert.Equal(t, 2, order.Items[0].Quantity)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepositoryUpdateOmitsItems(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewOrderRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "orders"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	order := &model.Order{
		ID:           1,
		OrderNumber:  "ORD-1-AAAAAAAAA",
		TotalAmount:  decimal.RequireFromString("9.99"),
		Status:       model.OrderStatusPreparing,
		CustomerID:   2,
		RestaurantID: 1,
		Items:        []model.OrderItem{{ID: 5, OrderID: 1}},
	}
	require.NoError(t, repo.Update(context.Background(), order))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepositoryListByCustomer(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewOrderRepository(db)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "orders"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
	mock.ExpectQuery(`SELECT \* FROM "orders"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "customer_id", "status"}).
			AddRow(3, 2, "PENDING").
			AddRow(2, 2, "PENDING"))
	mock.ExpectQuery(`SELECT \* FROM "order_items"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "order_id"}))

	orders, total, err := repo.ListByCustomer(context.Background(), 2, model.OrderStatusPending, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, orders, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}
