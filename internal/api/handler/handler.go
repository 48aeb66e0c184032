package handler

import (
	"momentmap/backend/internal/bubblehub"
	"momentmap/backend/internal/storage"
)

// Handler bundles the dependencies of all HTTP endpoints.
type Handler struct {
	Hub     *bubblehub.ManagerService
	Bubbles storage.BubbleStorage
	Users   storage.UserStorage
}

func NewHandler(hub *bubblehub.ManagerService, bubbles storage.BubbleStorage, users storage.UserStorage) *Handler {
	return &Handler{Hub: hub, Bubbles: bubbles, Users: users}
}
