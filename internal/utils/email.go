package utils

import (
	"bytes"
	"fmt"
	"log"

	"velora_back_end/internal/config"
	"velora_back_end/internal/models"

	"github.com/wneessen/go-mail"
)

// Mailer envoie les emails transactionnels via SMTP.
type Mailer struct {
	cfg *config.Config
}

func NewMailer(cfg *config.Config) *Mailer {
	return &Mailer{cfg: cfg}
}

func (m *Mailer) Send(to, subject, htmlBody string, pdfAttachment []byte) error {
	msg := mail.NewMsg()

	if err := msg.From(m.cfg.MailFrom); err != nil {
		return err
	}
	if err := msg.To(to); err != nil {
		return err
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextHTML, htmlBody)

	if pdfAttachment != nil {
		msg.AttachReader("facture_velora.pdf", bytes.NewReader(pdfAttachment))
	}

	client, err := mail.NewClient(m.cfg.SMTPHost,
		mail.WithPort(m.cfg.SMTPPort),
		mail.WithSMTPAuth(mail.SMTPAuthLogin),
		mail.WithUsername(m.cfg.SMTPUsername),
		mail.WithPassword(m.cfg.SMTPPassword),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return err
	}

	log.Println("📤 Envoi de l'e-mail à", to)
	return client.DialAndSend(msg)
}

// SendOrderConfirmation envoie la confirmation de commande avec la facture
// PDF en pièce jointe. La facture est optionnelle : si sa génération
// échoue, l'email part sans.
func (m *Mailer) SendOrderConfirmation(user models.User, order *models.Order) error {
	html := GenerateOrderConfirmationHTML(order, user.Name)

	pdf, err := GenerateInvoicePDF(m.cfg, order)
	if err != nil {
		log.Println("❌ Erreur génération PDF :", err)
		pdf = nil
	}

	return m.Send(user.Email, "Confirmation de votre commande Velora", html, pdf)
}

// SendLowStockAlert prévient l'admin quand un produit passe sous son seuil.
func (m *Mailer) SendLowStockAlert(p *models.Product) error {
	if m.cfg.AdminEmail == "" {
		return nil
	}
	html := fmt.Sprintf(`
		<p>Le produit <strong>%s</strong> est passé sous son seuil de stock.</p>
		<p>Stock restant : <strong>%d</strong> (seuil : %d)</p>`,
		p.Name, p.Stock, p.LowStockThreshold)
	return m.Send(m.cfg.AdminEmail, "⚠️ Stock bas : "+p.Name, html, nil)
}

// GenerateOrderConfirmationHTML génère le HTML de confirmation de commande
func GenerateOrderConfirmationHTML(order *models.Order, userName string) string {
	itemsHTML := ""
	for _, item := range order.OrderItems {
		itemsHTML += fmt.Sprintf(`
			<tr>
				<td>%s</td>
				<td>%d</td>
				<td>%.2f€</td>
				<td>%.2f€</td>
			</tr>`, item.Name, item.Quantity, item.Price, item.Price*float64(item.Quantity))
	}

	greeting := "Bonjour,"
	if userName != "" {
		greeting = "Bonjour " + userName + ","
	}

	return fmt.Sprintf(`
<!DOCTYPE html>
<html lang="fr">
<head>
	<meta charset="UTF-8">
	<title>Confirmation de commande</title>
</head>
<body style="font-family: Arial, sans-serif; background-color: #f9f9f9; padding: 20px;">
	<div style="max-width: 600px; margin: auto; background-color: white; padding: 20px; border-radius: 10px;">
		<h2 style="color: #333;">Confirmation de votre commande</h2>
		<p>%s</p>
		<p>Votre commande <strong>%s</strong> a été confirmée avec succès.</p>

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
			<strong>L'équipe Velora</strong>
		</p>
	</div>
</body>
</html>`, greeting, order.ID, itemsHTML, order.TotalPrice,
		order.ShippingInfo.Address, order.ShippingInfo.City,
		order.ShippingInfo.State, order.ShippingInfo.Country)
}
