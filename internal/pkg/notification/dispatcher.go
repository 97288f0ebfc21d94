// internal/pkg/notification/dispatcher.go
package notification

import (
	"context"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/order"
	"github.com/your-org/storefront-backend/internal/pkg/email"
)

// Dispatcher turns order events into emails. Events are handed off to a
// worker over a buffered channel so the transaction that raised them
// never waits on the mail transport; delivery failures are logged and
// dropped, never propagated.
type Dispatcher struct {
	sender      email.Sender
	log         *logrus.Logger
	siteName    string
	adminEmails []string

	queue chan job
	wg    sync.WaitGroup
	once  sync.Once
}

type job struct {
	order   *order.Order
	status  order.Status
	created bool
}

// queueSize bounds pending notifications; past it, events are dropped
// with a log line rather than blocking order processing.
const queueSize = 256

// NewDispatcher creates a dispatcher and starts its worker.
func NewDispatcher(cfg *config.Config, sender email.Sender, log *logrus.Logger) *Dispatcher {
	d := &Dispatcher{
		sender:      sender,
		log:         log,
		siteName:    cfg.App.Name,
		adminEmails: cfg.Admin.NotifyEmails,
		queue:       make(chan job, queueSize),
	}

	d.wg.Add(1)
	go d.worker()

	return d
}

// Close drains pending notifications and stops the worker.
func (d *Dispatcher) Close() {
	d.once.Do(func() {
		close(d.queue)
	})
	d.wg.Wait()
}

// OrderCreated notifies the customer and the configured admin list that
// a new order exists.
func (d *Dispatcher) OrderCreated(o *order.Order) {
	d.enqueue(job{order: o, status: o.Status, created: true})
}

// OrderStatusChanged notifies the customer of a status assignment.
func (d *Dispatcher) OrderStatusChanged(o *order.Order, status order.Status) {
	d.enqueue(job{order: o, status: status})
}

func (d *Dispatcher) enqueue(j job) {
	select {
	case d.queue <- j:
	default:
		d.log.WithFields(logrus.Fields{
			"order_number": j.order.OrderNumber,
			"status":       j.status,
		}).Warn("notification queue full, dropping notification")
	}
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()
	for j := range d.queue {
		d.deliver(j)
	}
}

// deliver sends the emails for one event. Failures are soft: logged with
// context, never returned anywhere.
func (d *Dispatcher) deliver(j job) {
	ctx := context.Background()

	if err := d.notifyCustomer(ctx, j); err != nil {
		d.log.WithFields(logrus.Fields{
			"order_number": j.order.OrderNumber,
			"status":       j.status,
			"recipient":    j.order.CustomerEmail,
		}).WithError(err).Warn("failed to send customer notification")
	}

	if j.created {
		if err := d.notifyAdmins(ctx, j); err != nil {
			d.log.WithFields(logrus.Fields{
				"order_number": j.order.OrderNumber,
			}).WithError(err).Warn("failed to send admin notification")
		}
	}
}

func (d *Dispatcher) notifyCustomer(ctx context.Context, j job) error {
	var subject, lead string
	if j.created {
		subject = fmt.Sprintf("Order %s received", j.order.OrderNumber)
		lead = "Thank you for your order! We have received it and will confirm it shortly."
	} else {
		t := templateFor(j.status)
		subject = fmt.Sprintf(t.Subject, j.order.OrderNumber)
		lead = t.Lead
	}

	body, err := renderBody(d.siteName, lead, j.order, j.status)
	if err != nil {
		return err
	}

	return d.sender.Send(ctx, &email.Message{
		To:          []string{j.order.CustomerEmail},
		Subject:     subject,
		HTMLContent: body,
	})
}

func (d *Dispatcher) notifyAdmins(ctx context.Context, j job) error {
	if len(d.adminEmails) == 0 {
		return nil
	}

	lead := fmt.Sprintf("New order from %s (%s).", j.order.CustomerName, j.order.CustomerEmail)
	body, err := renderBody(d.siteName, lead, j.order, j.status)
	if err != nil {
		return err
	}

	return d.sender.Send(ctx, &email.Message{
		To:          d.adminEmails,
		Subject:     fmt.Sprintf("New order %s", j.order.OrderNumber),
		HTMLContent: body,
	})
}
