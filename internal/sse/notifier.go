package sse

import (
	"time"

	"github.com/modatienda/boutique_api/internal/models"
)

// StoreNotifier is the interface services use to emit storefront events.
// Consumers refetch on cart.changed; the event carries no cart contents.
type StoreNotifier interface {
	NotifySaleCompleted(sale *models.Sale)
	NotifyCartChanged(userID string)
}

// HubNotifier implements StoreNotifier using the SSE Hub.
type HubNotifier struct {
	hub *Hub
}

// NewHubNotifier creates a notifier backed by the given Hub.
func NewHubNotifier(hub *Hub) *HubNotifier {
	return &HubNotifier{hub: hub}
}

func (n *HubNotifier) NotifySaleCompleted(sale *models.Sale) {
	if n.hub.ClientCount() == 0 {
		return
	}
	total := sale.Total
	n.hub.Broadcast(&StoreEvent{
		Event:      EventSaleCompleted,
		UserID:     sale.UserID,
		SaleNumber: sale.SaleNumber,
		Total:      &total,
		ItemCount:  len(sale.LineItems),
		Timestamp:  time.Now(),
	})
}

func (n *HubNotifier) NotifyCartChanged(userID string) {
	if n.hub.ClientCount() == 0 {
		return
	}
	n.hub.Broadcast(&StoreEvent{
		Event:     EventCartChanged,
		UserID:    userID,
		Timestamp: time.Now(),
	})
}

// NopNotifier is a no-op implementation for when SSE is not needed.
type NopNotifier struct{}

func (n *NopNotifier) NotifySaleCompleted(sale *models.Sale) {}

func (n *NopNotifier) NotifyCartChanged(userID string) {}
