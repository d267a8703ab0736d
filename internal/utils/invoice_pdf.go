package utils

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	qrcode "github.com/skip2/go-qrcode"

	"verdura_back_end/internal/models"
)

// GenerateSepaQR génère un QR de virement SEPA (format EPC) en base64,
// prêt à mettre dans un <img src="...">
func GenerateSepaQR(iban, bic, name, ref string, amount float64) (string, error) {
	sepa := fmt.Sprintf(`BCD
001
1
SCT
%s
%s
%s
EUR%.2f
%s`, bic, name, iban, amount, ref)

	png, err := qrcode.Encode(sepa, qrcode.Medium, 256)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}

// GenerateInvoicePDF imprime la facture de la commande en PDF via Chrome headless
func GenerateInvoicePDF(order models.Order) ([]byte, error) {
	html := invoiceHTML(order)
	dataURL := "data:text/html;base64," + base64.StdEncoding.EncodeToString([]byte(html))

	ctx, cancel := chromedp.NewContext(context.Background())
	defer cancel()

	// timeout pour éviter de bloquer le settlement
	ctx, cancel = context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	var pdfBuf []byte
	err := chromedp.Run(ctx,
		chromedp.Navigate(dataURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			buf, _, err := page.PrintToPDF().WithPrintBackground(true).Do(ctx)
			if err != nil {
				return err
			}
			pdfBuf = buf
			return nil
		}),
	)
	if err != nil {
		return nil, err
	}

	return pdfBuf, nil
}

func invoiceHTML(order models.Order) string {
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

	// Bloc virement SEPA seulement si l'IBAN marchand est configuré
	qrHTML := ""
	if iban := os.Getenv("SEPA_IBAN"); iban != "" {
		qr, err := GenerateSepaQR(iban, os.Getenv("SEPA_BIC"), "Verdura",
			order.ID.Hex(), float64(order.Total())/100)
		if err == nil {
			qrHTML = fmt.Sprintf(`<p>Virement SEPA :</p><img src="%s" width="128" height="128">`, qr)
		}
	}

	return fmt.Sprintf(`
<!DOCTYPE html>
<html lang="fr">
<head><meta charset="UTF-8"><title>Facture %s</title></head>
<body style="font-family: Arial, sans-serif; padding: 40px;">
	<h1>Facture</h1>
	<p>Commande %s — %s</p>
	<p>%s<br>%s<br>%s %s, %s</p>
	<table style="width: 100%%; border-collapse: collapse;" border="1" cellpadding="8">
		<thead>
			<tr><th>Produit</th><th>Quantité</th><th>Prix unitaire</th><th>Total</th></tr>
		</thead>
		<tbody>%s</tbody>
		<tfoot>
			<tr><td colspan="3" style="text-align: right;"><b>Total</b></td><td><b>%.2f€</b></td></tr>
		</tfoot>
	</table>
	%s
</body>
</html>`,
		order.ID.Hex(), order.ID.Hex(), order.CreatedAt.Format("02/01/2006"),
		order.Name, order.StreetAddress, order.PostalCode, order.City, order.Country,
		itemsHTML, float64(order.Total())/100, qrHTML)
}
