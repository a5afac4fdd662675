package utils

import (
	"log"

	"mobigear_back_end/internal/models"
)

// SendPush "envoie" une notification push à un utilisateur.
// La signature web-push n'est pas branchée : on journalise et on répond
// comme si l'envoi avait réussi. Aucun push réel ne part d'ici.
func SendPush(payload models.PushPayload) models.PushResult {
	if payload.UserPhone == "" || payload.Title == "" {
		return models.PushResult{
			Success: false,
			Sent:    0,
			Failed:  1,
			Message: "user_phone et title requis",
		}
	}

	log.Printf("🔔 Push (stub) pour %s : %s — %s", payload.UserPhone, payload.Title, payload.Body)

	return models.PushResult{
		Success: true,
		Sent:    1,
		Failed:  0,
		Message: "Notification enregistrée (envoi simulé)",
	}
}
