package handlers

import (
	"github.com/bonuseducation/crm_bot/internal/conversation"
	"github.com/bonuseducation/crm_bot/internal/service"
	"go.uber.org/zap"
)

// Handlers содержит все зависимости для обработки команд
type Handlers struct {
	userService    *service.UserService
	catalogService *service.CatalogService
	bookingService *service.BookingService
	machine        *conversation.Machine
	logger         *zap.Logger
}

// NewHandlers создаёт новый обработчик команд
func NewHandlers(
	userService *service.UserService,
	catalogService *service.CatalogService,
	bookingService *service.BookingService,
	machine *conversation.Machine,
	logger *zap.Logger,
) *Handlers {
	return &Handlers{
		userService:    userService,
		catalogService: catalogService,
		bookingService: bookingService,
		machine:        machine,
		logger:         logger,
	}
}
