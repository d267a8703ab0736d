package utils

import (
	"bytes"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/wneessen/go-mail"

	"verdura_back_end/internal/models"
)

// SendConfirmationEmail envoie l'e-mail de confirmation, facture PDF en pièce jointe
func SendConfirmationEmail(to, subject, htmlBody string, pdfAttachment []byte) error {
	msg := mail.NewMsg()

	from := os.Getenv("MAIL_FROM")
	if from == "" {
		from = "noreply@verdura.shop"
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
		msg.AttachReader("facture_verdura.pdf", bytes.NewReader(pdfAttachment))
	}

	port := 587
	if p, err := strconv.Atoi(os.Getenv("SMTP_PORT")); err == nil && p > 0 {
		port = p
	}

	client, err := mail.NewClient(os.Getenv("SMTP_HOST"),
		mail.WithPort(port),
		mail.WithSMTPAuth(mail.SMTPAuthLogin),
		mail.WithUsername(os.Getenv("SMTP_USERNAME")),
		mail.WithPassword(os.Getenv("SMTP_PASSWORD")),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return err
	}

	log.Println("📤 Envoi de l'e-mail à", to)
	return client.DialAndSend(msg)
}

// GenerateOrderConfirmationHTML génère le HTML de confirmation de commande
func GenerateOrderConfirmationHTML(order models.Order) string {
	itemsHTML := ""
	for _, item := range order.LineItems {
		unit := float64(item.UnitAmount) / 100
		itemsHTML += fmt.Sprintf(`
			<tr>
				<td>%s</td>
				<td>%d</td>
				<td>%.2f€</td>
				<td>%.2f€</td>
			</tr>`, item.Name, item.Quantity, unit, unit*float64(item.Quantity))
	}

	return fmt.Sprintf(`
<!DOCTYPE html>
<html lang="fr">
<head>
	<meta charset="UTF-8">
	<meta name="viewport" content="width=device-width, initial-scale=1.0">
	<title>Confirmation de commande</title>
</head>
<body style="font-family: Arial, sans-serif; background-color: #f9f9f9; padding: 20px;">
	<div style="max-width: 600px; margin: auto; background-color: white; padding: 20px; border-radius: 10px;">
		<h2 style="color: #333;">Confirmation de votre commande</h2>
		<p>Bonjour %s,</p>
		<p>Votre paiement a bien été reçu, votre commande est confirmée.</p>

		<h3>Détails de la commande</h3>
		<table style="width: 100%%; border-collapse: collapse; margin: 20px 0;">
			<thead>
				<tr style="background-color: #f0f0f0;">
					<th style="padding: 10px; text-align: left; border: 1px solid #ddd;">Produit</th>
					<th style="padding: 10px; text-align: left; border: 1px solid #ddd;">Quantité</th>
					<th style="padding: 10px; text-align: left; border: 1px solid #ddd;">Prix unitaire</th>
					<th style="padding: 10px; text-align: left; border: 1px solid #ddd;">Total</th>
				</tr>
			</thead>
			<tbody>
				%s
			</tbody>
			<tfoot>
				<tr>
					<td colspan="3" style="padding: 10px; text-align: right; font-weight: bold;">Total:</td>
					<td style="padding: 10px; font-weight: bold;">%.2f€</td>
				</tr>
			</tfoot>
		</table>

		<p>Livraison : %s, %s %s, %s</p>

		<p style="margin-top: 30px; color: #555;">
			Cordialement,<br>
			<strong>L'équipe Verdura</strong>
		</p>
	</div>
</body>
</html>`, order.Name, itemsHTML, float64(order.Total())/100,
		order.StreetAddress, order.PostalCode, order.City, order.Country)
}
