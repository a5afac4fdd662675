package utils

import (
	"fmt"

	"github.com/skip2/go-qrcode"
)

// GenerateTrackingQR génère un QR PNG pointant vers la page de suivi d'une commande
func GenerateTrackingQR(orderNumber string) ([]byte, error) {
	url := fmt.Sprintf("https://mobigear.in/track/%s", orderNumber)
	return qrcode.Encode(url, qrcode.Medium, 256)
}
