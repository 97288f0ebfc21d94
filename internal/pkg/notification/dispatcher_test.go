// internal/pkg/notification/dispatcher_test.go
package notification

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/order"
	"github.com/your-org/storefront-backend/internal/pkg/email"
)

// fakeSender records messages and optionally fails every send.
type fakeSender struct {
	mu       sync.Mutex
	messages []*email.Message
	err      error
}

func (f *fakeSender) Send(_ context.Context, msg *email.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messages = append(f.messages, msg)
	return f.err
}

func (f *fakeSender) sent() []*email.Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*email.Message(nil), f.messages...)
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.App.Name = "Storefront"
	cfg.Admin.NotifyEmails = []string{"ops@example.com", "owner@example.com"}
	return cfg
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func testOrder() *order.Order {
	return &order.Order{
		OrderNumber:   "ORD-20260829-00007",
		CustomerName:  "Dana Reyes",
		CustomerEmail: "dana@example.com",
		Status:        order.StatusPending,
		Subtotal:      decimal.RequireFromString("49.99"),
		ShippingFee:   decimal.RequireFromString("10.00"),
		Total:         decimal.RequireFromString("59.99"),
	}
}

func TestDispatcher_StatusChangeNotifiesCustomer(t *testing.T) {
	sender := &fakeSender{}
	d := NewDispatcher(testConfig(), sender, quietLogger())

	d.OrderStatusChanged(testOrder(), order.StatusShipped)
	d.Close()

	msgs := sender.sent()
	require.Len(t, msgs, 1)
	assert.Equal(t, []string{"dana@example.com"}, msgs[0].To)
	assert.Equal(t, "Your order ORD-20260829-00007 has shipped", msgs[0].Subject)
	assert.Contains(t, msgs[0].HTMLContent, "ORD-20260829-00007")
	assert.Contains(t, msgs[0].HTMLContent, "$59.99")
}

func TestDispatcher_OrderCreatedAlsoNotifiesAdmins(t *testing.T) {
	sender := &fakeSender{}
	d := NewDispatcher(testConfig(), sender, quietLogger())

	d.OrderCreated(testOrder())
	d.Close()

	msgs := sender.sent()
	require.Len(t, msgs, 2)
	assert.Equal(t, []string{"dana@example.com"}, msgs[0].To)
	assert.Equal(t, []string{"ops@example.com", "owner@example.com"}, msgs[1].To)
	assert.Equal(t, "New order ORD-20260829-00007", msgs[1].Subject)
}

func TestDispatcher_UnknownStatusFallsBackToGenericMessage(t *testing.T) {
	sender := &fakeSender{}
	d := NewDispatcher(testConfig(), sender, quietLogger())

	d.OrderStatusChanged(testOrder(), order.Status("archived"))
	d.Close()

	msgs := sender.sent()
	require.Len(t, msgs, 1)
	assert.Equal(t, "Your order ORD-20260829-00007 has been updated", msgs[0].Subject)
}

func TestDispatcher_SendFailureIsSwallowed(t *testing.T) {
	sender := &fakeSender{err: errors.New("mail provider outage")}
	d := NewDispatcher(testConfig(), sender, quietLogger())

	o := testOrder()
	o.Status = order.StatusShipped

	// Must not panic and must not surface the transport error anywhere;
	// the order the caller holds keeps its assigned status.
	d.OrderStatusChanged(o, order.StatusShipped)
	d.Close()

	require.Len(t, sender.sent(), 1)
	assert.Equal(t, order.StatusShipped, o.Status)
}

func TestTemplateFor_CoversLifecycle(t *testing.T) {
	for _, status := range []order.Status{
		order.StatusConfirmed,
		order.StatusProcessing,
		order.StatusShipped,
		order.StatusDelivered,
		order.StatusCancelled,
	} {
		tmpl := templateFor(status)
		assert.NotEmpty(t, tmpl.Subject, "missing subject for %s", status)
		assert.NotEmpty(t, tmpl.Lead, "missing lead for %s", status)
	}

	assert.Equal(t, genericTemplate, templateFor(order.StatusPending))
}
