package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOrderStatusValidation(t *testing.T) {
	for _, status := range []string{
		OrderStatusProcessing, OrderStatusConfirmed, OrderStatusShipped,
		OrderStatusOutForDelivery, OrderStatusDelivered, OrderStatusCancelled,
	} {
		require.True(t, IsValidOrderStatus(status), status)
	}

	require.False(t, IsValidOrderStatus("Pending"))
	require.False(t, IsValidOrderStatus("processing")) // sensible à la casse
	require.False(t, IsValidOrderStatus(""))
}

func TestOrderTransitions(t *testing.T) {
	// Cycle nominal
	require.True(t, CanTransitionOrder(OrderStatusProcessing, OrderStatusConfirmed))
	require.True(t, CanTransitionOrder(OrderStatusConfirmed, OrderStatusShipped))
	require.True(t, CanTransitionOrder(OrderStatusShipped, OrderStatusOutForDelivery))
	require.True(t, CanTransitionOrder(OrderStatusOutForDelivery, OrderStatusDelivered))

	// Pas de saut ni de retour en arrière
	require.False(t, CanTransitionOrder(OrderStatusProcessing, OrderStatusShipped))
	require.False(t, CanTransitionOrder(OrderStatusShipped, OrderStatusConfirmed))
	require.False(t, CanTransitionOrder(OrderStatusDelivered, OrderStatusShipped))
}

func TestOrderCancellation(t *testing.T) {
	// Annulable depuis tout statut non terminal
	for _, status := range []string{
		OrderStatusProcessing, OrderStatusConfirmed,
		OrderStatusShipped, OrderStatusOutForDelivery,
	} {
		require.True(t, CanTransitionOrder(status, OrderStatusCancelled), status)
	}

	// Les statuts terminaux sont figés
	require.False(t, CanTransitionOrder(OrderStatusDelivered, OrderStatusCancelled))
	require.False(t, CanTransitionOrder(OrderStatusCancelled, OrderStatusProcessing))
}

func TestTerminalOrderStatuses(t *testing.T) {
	require.True(t, IsTerminalOrderStatus(OrderStatusDelivered))
	require.True(t, IsTerminalOrderStatus(OrderStatusCancelled))
	require.False(t, IsTerminalOrderStatus(OrderStatusProcessing))
	require.False(t, IsTerminalOrderStatus(OrderStatusOutForDelivery))
}

func TestNextOrderStatuses(t *testing.T) {
	require.ElementsMatch(t,
		[]string{OrderStatusConfirmed, OrderStatusCancelled},
		NextOrderStatuses(OrderStatusProcessing))
	require.Empty(t, NextOrderStatuses(OrderStatusDelivered))
}
