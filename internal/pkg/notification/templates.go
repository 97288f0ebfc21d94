// internal/pkg/notification/templates.go
package notification

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/your-org/storefront-backend/internal/domain/order"
	"github.com/your-org/storefront-backend/internal/pkg/money"
)

// statusTemplate holds the subject line and lead paragraph for a status
// update email.
type statusTemplate struct {
	Subject string
	Lead    string
}

// statusTemplates maps each order status to its message content. Unknown
// statuses fall back to a generic "status updated" message.
var statusTemplates = map[order.Status]statusTemplate{
	order.StatusConfirmed: {
		Subject: "Your order %s is confirmed",
		Lead:    "We have confirmed your order and will start preparing it shortly.",
	},
	order.StatusProcessing: {
		Subject: "Your order %s is being prepared",
		Lead:    "Our team is preparing your order for shipment.",
	},
	order.StatusShipped: {
		Subject: "Your order %s has shipped",
		Lead:    "Your order is on its way.",
	},
	order.StatusDelivered: {
		Subject: "Your order %s has been delivered",
		Lead:    "Your order has been delivered. We hope you enjoy it!",
	},
	order.StatusCancelled: {
		Subject: "Your order %s has been cancelled",
		Lead:    "Your order has been cancelled. If this was unexpected, please contact us.",
	},
}

var genericTemplate = statusTemplate{
	Subject: "Your order %s has been updated",
	Lead:    "The status of your order has been updated.",
}

// templateFor returns the content for a status, falling back to the
// generic message for anything outside the known lifecycle.
func templateFor(status order.Status) statusTemplate {
	if t, ok := statusTemplates[status]; ok {
		return t
	}
	return genericTemplate
}

var bodyTemplate = template.Must(template.New("order_email").Parse(`
<html>
  <body style="font-family: Arial, sans-serif; color: #333;">
    <h2>{{.SiteName}}</h2>
    <p>Hi {{.CustomerName}},</p>
    <p>{{.Lead}}</p>
    <table style="border-collapse: collapse;">
      <tr><td style="padding: 4px 12px 4px 0;">Order number</td><td>{{.OrderNumber}}</td></tr>
      <tr><td style="padding: 4px 12px 4px 0;">Status</td><td>{{.Status}}</td></tr>
      <tr><td style="padding: 4px 12px 4px 0;">Subtotal</td><td>{{.Subtotal}}</td></tr>
      <tr><td style="padding: 4px 12px 4px 0;">Shipping</td><td>{{.ShippingFee}}</td></tr>
      <tr><td style="padding: 4px 12px 4px 0;"><strong>Total</strong></td><td><strong>{{.Total}}</strong></td></tr>
    </table>
    <p>Thank you for shopping with us.</p>
  </body>
</html>
`))

type bodyData struct {
	SiteName     string
	CustomerName string
	Lead         string
	OrderNumber  string
	Status       string
	Subtotal     string
	ShippingFee  string
	Total        string
}

// renderBody renders the shared order email body.
func renderBody(siteName, lead string, o *order.Order, status order.Status) (string, error) {
	var buf bytes.Buffer
	err := bodyTemplate.Execute(&buf, bodyData{
		SiteName:     siteName,
		CustomerName: o.CustomerName,
		Lead:         lead,
		OrderNumber:  o.OrderNumber,
		Status:       string(status),
		Subtotal:     money.Format(o.Subtotal),
		ShippingFee:  money.Format(o.ShippingFee),
		Total:        money.Format(o.Total),
	})
	if err != nil {
		return "", fmt.Errorf("failed to render notification body: %w", err)
	}
	return buf.String(), nil
}
