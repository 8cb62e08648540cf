package store

import "lumea_back_end/internal/models"

// Règles de transition du cycle de vie des commandes. Toutes les transitions
// sont monotones : rien ne sort de completed ni de cancelled.

// CanPay : paiement possible uniquement depuis pending.
func CanPay(status string) bool {
	return status == models.OrderStatusPending
}

// CanReceive : réception possible uniquement depuis shipped.
func CanReceive(status string) bool {
	return status == models.OrderStatusShipped
}

// CanCancel : le propriétaire annule depuis pending, un admin depuis
// pending ou processing.
func CanCancel(status string, admin bool) bool {
	if admin {
		return status == models.OrderStatusPending || status == models.OrderStatusProcessing
	}
	return status == models.OrderStatusPending
}
