package utils

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"velora_back_end/internal/config"
	"velora_back_end/internal/models"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/skip2/go-qrcode"
)

// GenerateSepaQR génère un QR SEPA (EPC) en base64 prêt à mettre dans <img src="...">
func GenerateSepaQR(iban, bic, name, ref string, amount float64) (string, error) {
	// format EPC basique
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

// GenerateInvoicePDF rend la facture HTML en PDF via un Chrome headless.
func GenerateInvoicePDF(cfg *config.Config, order *models.Order) ([]byte, error) {
	ref := fmt.Sprintf("FACT-%s", order.ID)

	qrBase64, err := GenerateSepaQR(cfg.CompanyIBAN, cfg.CompanyBIC, cfg.CompanyName, ref, order.TotalPrice)
	if err != nil {
		return nil, fmt.Errorf("erreur génération QR: %v", err)
	}

	html := generateInvoiceHTML(cfg, order, ref, qrBase64)
	return renderHTMLToPDF(html)
}

func renderHTMLToPDF(html string) ([]byte, error) {
	ctx, cancel := chromedp.NewContext(context.Background())
	defer cancel()

	// timeout pour éviter de bloquer
	ctx, cancel = context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	dataURL := "data:text/html;base64," + base64.StdEncoding.EncodeToString([]byte(html))

	var pdfBuf []byte
	err := chromedp.Run(ctx,
		chromedp.Navigate(dataURL),
		chromedp.WaitVisible("body", chromedp.ByQuery),
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

func generateInvoiceHTML(cfg *config.Config, order *models.Order, ref, qrBase64 string) string {
	itemsHTML := ""
	for _, item := range order.OrderItems {
		itemsHTML += fmt.Sprintf(`<tr><td>%s</td><td>%d</td><td>%.2f€</td></tr>`,
			item.Name, item.Quantity, item.Price*float64(item.Quantity))
	}

	return fmt.Sprintf(`
<!DOCTYPE html>
<html lang="fr">
<head><meta charset="UTF-8"><title>%s</title></head>
<body style="font-family: Arial, sans-serif; padding: 40px;">
	<h1>%s</h1>
	<p>Facture <strong>%s</strong> — commande %s</p>
	<table style="width: 100%%; border-collapse: collapse;" border="1" cellpadding="8">
		<thead><tr><th>Produit</th><th>Quantité</th><th>Total</th></tr></thead>
		<tbody>%s</tbody>
	</table>
	<h3>Total : %.2f€</h3>
	<p>Paiement par virement : scannez le QR SEPA ci-dessous.</p>
	<img src="%s" alt="QR SEPA" width="200" height="200">
	<p>IBAN %s — BIC %s</p>
</body>
</html>`, ref, cfg.CompanyName, ref, order.ID, itemsHTML, order.TotalPrice,
		qrBase64, cfg.CompanyIBAN, cfg.CompanyBIC)
}
