package utils

import (
	"crypto/rand"
	"fmt"
	"time"
)

const orderNumberAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// GenerateOrderNumber génère un numéro de commande lisible, distinct de l'ID interne.
// Format: MG-20260829-7KQ4X
func GenerateOrderNumber(now time.Time) string {
	suffix := make([]byte, 5)
	buf := make([]byte, 5)
	_, _ = rand.Read(buf)
	for i, b := range buf {
		suffix[i] = orderNumberAlphabet[int(b)%len(orderNumberAlphabet)]
	}
	return fmt.Sprintf("MG-%s-%s", now.Format("20060102"), string(suffix))
}
