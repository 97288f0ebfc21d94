// internal/domain/order/service_test.go
package order

import (
	"errors"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront-backend/internal/domain/catalog"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type statusEvent struct {
	order  *Order
	status Status
}

// recordingNotifier captures lifecycle events. Because dispatch is
// fire-and-forget, a failing transport and a recording one look the
// same to the service: neither can hand an error back.
type recordingNotifier struct {
	created []*Order
	changed []statusEvent
}

func (n *recordingNotifier) OrderCreated(o *Order) {
	n.created = append(n.created, o)
}

func (n *recordingNotifier) OrderStatusChanged(o *Order, status Status) {
	n.changed = append(n.changed, statusEvent{order: o, status: status})
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&catalog.Product{}, &catalog.Variant{},
		&Order{}, &Item{}, &StatusHistory{},
	))
	return db
}

func newTestService(t *testing.T, db *gorm.DB, notifier Notifier) *Service {
	t.Helper()
	return NewService(db, nil, catalog.NewService(db), nil, notifier)
}

func seedOrder(t *testing.T, db *gorm.DB, status Status, items []Item) *Order {
	t.Helper()
	o := &Order{
		OrderNumber:   "ORD-20260829-00042",
		CustomerName:  "Jane Doe",
		CustomerEmail: "jane@example.com",
		Status:        status,
		Subtotal:      decimal.RequireFromString("59.99"),
		ShippingFee:   decimal.RequireFromString("5.00"),
		Total:         decimal.RequireFromString("64.99"),
		Items:         items,
	}
	require.NoError(t, db.Create(o).Error)
	return o
}

func TestService_UpdateStatus_PersistsAndNotifies(t *testing.T) {
	db := newTestDB(t)
	notifier := &recordingNotifier{}
	svc := newTestService(t, db, notifier)

	seeded := seedOrder(t, db, StatusProcessing, nil)

	updated, err := svc.UpdateStatus(seeded.ID, &UpdateStatusRequest{
		Status:  StatusShipped,
		Comment: "Handed to carrier",
	})
	require.NoError(t, err)
	assert.Equal(t, StatusShipped, updated.Status)

	// The write must be durable, not just reflected on the returned copy.
	stored, err := svc.Get(seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusShipped, stored.Status)
	require.NotNil(t, stored.ShippedAt)

	require.Len(t, stored.StatusHistory, 1)
	assert.Equal(t, StatusShipped, stored.StatusHistory[0].Status)
	assert.Equal(t, "Handed to carrier", stored.StatusHistory[0].Comment)

	require.Len(t, notifier.changed, 1)
	assert.Equal(t, StatusShipped, notifier.changed[0].status)
	assert.Equal(t, StatusShipped, notifier.changed[0].order.Status)
	assert.Equal(t, seeded.OrderNumber, notifier.changed[0].order.OrderNumber)
}

func TestService_UpdateStatus_SurvivesNotifierDoingNothing(t *testing.T) {
	// A transport outage surfaces as a notifier that drops the event on
	// the floor; the interface gives it no way to fail the caller. The
	// status write must stand regardless.
	db := newTestDB(t)
	svc := newTestService(t, db, &recordingNotifier{})

	seeded := seedOrder(t, db, StatusConfirmed, nil)

	_, err := svc.UpdateStatus(seeded.ID, &UpdateStatusRequest{Status: StatusShipped})
	require.NoError(t, err)

	stored, err := svc.Get(seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusShipped, stored.Status)
}

func TestService_UpdateStatus_RejectsBackwardTransition(t *testing.T) {
	db := newTestDB(t)
	notifier := &recordingNotifier{}
	svc := newTestService(t, db, notifier)

	seeded := seedOrder(t, db, StatusShipped, nil)

	_, err := svc.UpdateStatus(seeded.ID, &UpdateStatusRequest{Status: StatusProcessing})
	require.ErrorIs(t, err, ErrInvalidTransition)

	stored, err := svc.Get(seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusShipped, stored.Status)
	assert.Empty(t, notifier.changed)
}

func TestService_UpdateStatus_NotFound(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(t, db, &recordingNotifier{})

	_, err := svc.UpdateStatus(9999, &UpdateStatusRequest{Status: StatusShipped})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestService_Cancel_RestoresStockAndRecordsReason(t *testing.T) {
	db := newTestDB(t)
	notifier := &recordingNotifier{}
	svc := newTestService(t, db, notifier)

	product := catalog.Product{
		SKU:  "LAMP-1",
		Name: "Desk Lamp",
		Slug: "desk-lamp",
		Pricing: catalog.Pricing{
			RetailPrice: decimal.RequireFromString("19.99"),
		},
		StockInfo: catalog.StockInfo{Stock: 2, TrackStock: true},
	}
	require.NoError(t, db.Create(&product).Error)

	seeded := seedOrder(t, db, StatusPending, []Item{{
		ProductID: product.ID,
		Name:      product.Name,
		UnitPrice: decimal.RequireFromString("19.99"),
		Quantity:  3,
		LineTotal: decimal.RequireFromString("59.97"),
	}})

	cancelled, err := svc.Cancel(seeded.ID, "changed my mind")
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, cancelled.Status)

	var restocked catalog.Product
	require.NoError(t, db.First(&restocked, product.ID).Error)
	assert.Equal(t, 5, restocked.Stock)

	stored, err := svc.Get(seeded.ID)
	require.NoError(t, err)
	require.Len(t, stored.StatusHistory, 1)
	assert.Equal(t, "Order cancelled: changed my mind", stored.StatusHistory[0].Comment)

	require.Len(t, notifier.changed, 1)
	assert.Equal(t, StatusCancelled, notifier.changed[0].status)
}

func TestService_UpdateStatus_TerminalStateIsFinal(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(t, db, &recordingNotifier{})

	seeded := seedOrder(t, db, StatusDelivered, nil)

	_, err := svc.UpdateStatus(seeded.ID, &UpdateStatusRequest{Status: StatusCancelled})
	require.True(t, errors.Is(err, ErrInvalidTransition))
}
