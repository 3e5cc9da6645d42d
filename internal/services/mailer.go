package services

import (
	"bytes"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/wneessen/go-mail"

	"furnirent_backend/internal/models"
)

// SendQuotationEmail delivers an HTML message with the quotation PDF
// attached through the configured SMTP relay.
func SendQuotationEmail(to, subject, htmlBody string, pdfAttachment []byte, filename string) error {
	msg := mail.NewMsg()

	from := os.Getenv("SMTP_FROM")
	if from == "" {
		from = "noreply@furnirent.in"
	}
	if err := msg.From(from); err != nil {
		return err
	}
	if err := msg.To(to); err != nil {
		return err
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextHTML, htmlBody)

	if pdfAttachment != nil {
		msg.AttachReader(filename, bytes.NewReader(pdfAttachment))
	}

	host := os.Getenv("SMTP_HOST")
	if host == "" {
		host = "localhost"
	}
	port := 587
	if p, err := strconv.Atoi(os.Getenv("SMTP_PORT")); err == nil && p > 0 {
		port = p
	}

	client, err := mail.NewClient(host,
		mail.WithPort(port),
		mail.WithSMTPAuth(mail.SMTPAuthLogin),
		mail.WithUsername(os.Getenv("SMTP_USERNAME")),
		mail.WithPassword(os.Getenv("SMTP_PASSWORD")),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	)
	if err != nil {
		return err
	}

	log.Println("📤 Sending email to", to)
	return client.DialAndSend(msg)
}

// QuotationEmailHTML builds the customer-facing order summary body.
func QuotationEmailHTML(order models.Order, companyName string) string {
	itemsHTML := ""
	for _, item := range order.Items {
		itemsHTML += fmt.Sprintf(`
			<tr>
				<td style="padding: 8px; border: 1px solid #ddd;">%s</td>
				<td style="padding: 8px; border: 1px solid #ddd;">%d months</td>
				<td style="padding: 8px; border: 1px solid #ddd;">%d</td>
				<td style="padding: 8px; border: 1px solid #ddd;">&#8377;%.2f</td>
			</tr>`, item.Name, item.TenureMonths, item.Quantity, item.Price*float64(item.Quantity))
	}

	return fmt.Sprintf(`
<!DOCTYPE html>
<html lang="en">
<head><meta charset="UTF-8"><title>Your Rental Quotation</title></head>
<body style="font-family: Arial, sans-serif; background-color: #f9f9f9; padding: 20px;">
	<div style="max-width: 600px; margin: auto; background-color: white; padding: 20px; border-radius: 10px;">
		<h2 style="color: #333;">Thank you for your order!</h2>
		<p>Your quotation <strong>%s</strong> is attached to this email.</p>

		<table style="width: 100%%; border-collapse: collapse; margin: 20px 0;">
			<thead>
				<tr style="background-color: #f0f0f0;">
					<th style="padding: 8px; text-align: left; border: 1px solid #ddd;">Item</th>
					<th style="padding: 8px; text-align: left; border: 1px solid #ddd;">Tenure</th>
					<th style="padding: 8px; text-align: left; border: 1px solid #ddd;">Qty</th>
					<th style="padding: 8px; text-align: left; border: 1px solid #ddd;">Total</th>
				</tr>
			</thead>
			<tbody>%s</tbody>
			<tfoot>
				<tr>
					<td colspan="3" style="padding: 8px; text-align: right; font-weight: bold;">Grand Total:</td>
					<td style="padding: 8px; font-weight: bold;">&#8377;%.2f</td>
				</tr>
			</tfoot>
		</table>

		<p style="color: #555;">The grand total includes your refundable deposit and the transportation fee.
		Payment instructions are on the attached quotation. If anything looks wrong, just reply to this email.</p>

		<p style="margin-top: 30px; color: #555;">
			Warm regards,<br>
			<strong>The %s team</strong>
		</p>
	</div>
</body>
</html>`, order.QuotationNumber, itemsHTML, order.Total, companyName)
}

// PurchaseAlertHTML is the short heads-up sent to the shop admin.
func PurchaseAlertHTML(order models.Order) string {
	return fmt.Sprintf(`
<h2>New purchase</h2>
<p>Quotation <strong>%s</strong> was generated for %s (%s, %s).</p>
<p>%d line item(s), grand total &#8377;%.2f. The quotation is attached.</p>`,
		order.QuotationNumber, order.Customer.Name, order.Customer.Email,
		order.Customer.Phone, len(order.Items), order.Total)
}
