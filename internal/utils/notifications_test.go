package utils

import (
	"testing"

	"mobigear_back_end/internal/models"

	"github.com/stretchr/testify/require"
)

func TestSendPushStub(t *testing.T) {
	result := SendPush(models.PushPayload{
		UserPhone: "9876543210",
		Title:     "Commande expédiée",
		Body:      "Commande MG-20260829-7KQ4X",
	})

	require.True(t, result.Success)
	require.Equal(t, 1, result.Sent)
	require.Equal(t, 0, result.Failed)
}

func TestSendPushMissingFields(t *testing.T) {
	result := SendPush(models.PushPayload{Title: "Sans destinataire"})
	require.False(t, result.Success)
	require.Equal(t, 1, result.Failed)

	result = SendPush(models.PushPayload{UserPhone: "9876543210"})
	require.False(t, result.Success)
}
