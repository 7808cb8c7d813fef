package handler

import (
	"github.com/taskbid/marketplace/internal/core/domain"
)

// --- Domain → HTTP response ---

func toTaskResponse(t *domain.Task, platformFee int) taskResponse {
	history := make([]statusHistoryItemResponse, len(t.StatusHistory))
	for i, entry := range t.StatusHistory {
		history[i] = statusHistoryItemResponse{
			Status:    string(entry.Status),
			Timestamp: entry.Timestamp.UTC(),
			Actor:     entry.Actor,
		}
	}
	return taskResponse{
		ID:             t.ID,
		Title:          t.Title,
		Description:    t.Description,
		Buyer:          t.Buyer,
		Price:          t.Price,
		SellerPayout:   t.Payout(platformFee),
		Status:         string(t.Status),
		AssignedSeller: t.AssignedSeller,
		StatusHistory:  history,
		CreatedAt:      t.CreatedAt.UTC(),
		UpdatedAt:      t.UpdatedAt.UTC(),
	}
}

func toListTasksResponse(tasks []*domain.Task, platformFee int) listTasksResponse {
	items := make([]taskResponse, len(tasks))
	for i, t := range tasks {
		items[i] = toTaskResponse(t, platformFee)
		// status history is noise in list payloads
		items[i].StatusHistory = nil
	}
	return listTasksResponse{Data: items}
}

func toBidResponse(b *domain.Bid) bidResponse {
	return bidResponse{
		ID:        b.ID,
		TaskID:    b.TaskID,
		TaskTitle: b.TaskTitle,
		Seller:    b.Seller,
		Message:   b.Message,
		CreatedAt: b.CreatedAt.UTC(),
	}
}

func toListBidsResponse(bids []*domain.Bid) listBidsResponse {
	items := make([]bidResponse, len(bids))
	for i, b := range bids {
		items[i] = toBidResponse(b)
	}
	return listBidsResponse{Data: items}
}
