package utils

import (
	"fmt"
	"log"
	"os"

	"mobigear_back_end/internal/models"

	"github.com/wneessen/go-mail"
)

func SendEmail(to, subject, htmlBody string) error {
	msg := mail.NewMsg()

	if err := msg.From(os.Getenv("SMTP_FROM")); err != nil {
		return err
	}
	if err := msg.To(to); err != nil {
		return err
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextHTML, htmlBody)

	client, err := mail.NewClient(os.Getenv("SMTP_HOST"),
		mail.WithPort(587),
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

// SendOrderStatusEmail envoie un email de notification de changement de statut
func SendOrderStatusEmail(order models.Order, userEmail string, newStatus string) error {
	subject := StatusEmailSubject(newStatus)
	html := generateStatusEmailHTML(order, newStatus)

	if err := SendEmail(userEmail, subject, html); err != nil {
		log.Printf("❌ Erreur envoi email statut: %v", err)
		return err
	}

	log.Printf("📧 Email de statut envoyé: %s → %s", newStatus, userEmail)
	return nil
}

func StatusEmailSubject(status string) string {
	switch status {
	case models.OrderStatusConfirmed:
		return "✅ Paiement confirmé - MobiGear"
	case models.OrderStatusShipped:
		return "📦 Votre commande a été expédiée - MobiGear"
	case models.OrderStatusOutForDelivery:
		return "🚚 Votre commande est en cours de livraison - MobiGear"
	case models.OrderStatusDelivered:
		return "🎉 Votre commande a été livrée - MobiGear"
	case models.OrderStatusCancelled:
		return "❌ Commande annulée - MobiGear"
	default:
		return "📋 Mise à jour de votre commande - MobiGear"
	}
}

func statusMessage(status string) string {
	switch status {
	case models.OrderStatusConfirmed:
		return "Votre paiement a bien été reçu, votre commande est confirmée."
	case models.OrderStatusShipped:
		return "Votre commande a quitté notre entrepôt."
	case models.OrderStatusOutForDelivery:
		return "Le livreur est en route, votre commande arrive aujourd'hui."
	case models.OrderStatusDelivered:
		return "Votre commande a été livrée. Merci pour votre confiance !"
	case models.OrderStatusCancelled:
		return "Votre commande a été annulée. Contactez-nous pour toute question."
	default:
		return "Le statut de votre commande a été mis à jour."
	}
}

func generateStatusEmailHTML(order models.Order, status string) string {
	return fmt.Sprintf(`
<!DOCTYPE html>
<html lang="fr">
<head>
	<meta charset="UTF-8">
	<title>Mise à jour de commande</title>
</head>
<body style="font-family: Arial, sans-serif; background-color: #f9f9f9; padding: 20px;">
	<div style="max-width: 600px; margin: auto; background-color: white; padding: 20px; border-radius: 10px;">
		<h2 style="color: #333;">MobiGear</h2>
		<p>%s</p>
		<table style="width: 100%%; border-collapse: collapse; margin: 20px 0;">
			<tr>
				<td style="padding: 8px; color: #666;">Numéro de commande</td>
				<td style="padding: 8px; text-align: right;"><strong>%s</strong></td>
			</tr>
			<tr>
				<td style="padding: 8px; color: #666;">Montant total</td>
				<td style="padding: 8px; text-align: right;"><strong>₹%.2f</strong></td>
			</tr>
			<tr>
				<td style="padding: 8px; color: #666;">Statut</td>
				<td style="padding: 8px; text-align: right;"><strong>%s</strong></td>
			</tr>
		</table>
		<p style="color: #999; font-size: 12px;">Suivez votre commande sur mobigear.in/track/%s</p>
	</div>
</body>
</html>`, statusMessage(status), order.OrderNumber, order.TotalPrice, status, order.OrderNumber)
}
