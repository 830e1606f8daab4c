// Package http exposes the freight ledger's commands and queries over a REST
// API. It coordinates between HTTP handlers and application use cases.
package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"freightledger/internal/core/application/usecases/commands"
	"freightledger/internal/core/application/usecases/queries"
	"freightledger/internal/core/domain/model/carrier"
	"freightledger/internal/core/domain/model/kernel"
	"freightledger/internal/core/domain/model/order"
	"freightledger/internal/core/domain/model/registry"
	"freightledger/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server routes HTTP requests to the application's command and query handlers.
type Server struct {
	// Command handlers
	createOrderHandler       commands.CreateOrderCommandHandler
	submitOrderHandler       commands.SubmitOrderCommandHandler
	launchLegHandler         commands.LaunchLegCommandHandler
	reportLegHandler         commands.ReportLegCommandHandler
	registerCarrierHandler   commands.RegisterCarrierCommandHandler
	unregisterCarrierHandler commands.UnregisterCarrierCommandHandler
	settleIncentiveHandler   commands.SettleIncentiveCommandHandler

	// Query handlers
	getCarrierRatingsHandler    queries.GetCarrierRatingsQueryHandler
	getRecipientBalancesHandler queries.GetRecipientBalancesQueryHandler
	getOpenOrdersHandler        queries.GetOpenOrdersQueryHandler
	getAuditLogHandler          queries.GetAuditLogQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	submitOrderHandler commands.SubmitOrderCommandHandler,
	launchLegHandler commands.LaunchLegCommandHandler,
	reportLegHandler commands.ReportLegCommandHandler,
	registerCarrierHandler commands.RegisterCarrierCommandHandler,
	unregisterCarrierHandler commands.UnregisterCarrierCommandHandler,
	settleIncentiveHandler commands.SettleIncentiveCommandHandler,
	getCarrierRatingsHandler queries.GetCarrierRatingsQueryHandler,
	getRecipientBalancesHandler queries.GetRecipientBalancesQueryHandler,
	getOpenOrdersHandler queries.GetOpenOrdersQueryHandler,
	getAuditLogHandler queries.GetAuditLogQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:          createOrderHandler,
		submitOrderHandler:          submitOrderHandler,
		launchLegHandler:            launchLegHandler,
		reportLegHandler:            reportLegHandler,
		registerCarrierHandler:      registerCarrierHandler,
		unregisterCarrierHandler:    unregisterCarrierHandler,
		settleIncentiveHandler:      settleIncentiveHandler,
		getCarrierRatingsHandler:    getCarrierRatingsHandler,
		getRecipientBalancesHandler: getRecipientBalancesHandler,
		getOpenOrdersHandler:        getOpenOrdersHandler,
		getAuditLogHandler:          getAuditLogHandler,
	}
}

// RegisterRoutes wires every API route onto the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/orders", s.CreateOrder)
	api.POST("/orders/:id/submit", s.SubmitOrder)
	api.GET("/orders/open", s.GetOpenOrders)

	api.POST("/carriers", s.RegisterCarrier)
	api.DELETE("/carriers/:id", s.UnregisterCarrier)
	api.POST("/carriers/:id/launch", s.LaunchLeg)
	api.POST("/carriers/:id/report", s.ReportLeg)
	api.GET("/carriers/ratings", s.GetCarrierRatings)

	api.POST("/settlements", s.Settle)
	api.GET("/balances", s.GetRecipientBalances)
	api.GET("/audit", s.GetAuditLog)
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req CreateOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	orderID, err := kernel.UUIDFromString(req.OrderID)
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}
	shipper, err := kernel.UUIDFromString(req.Shipper)
	if err != nil {
		return badRequest(ctx, "Invalid shipper id: "+err.Error())
	}

	legs := make([]commands.LegSpec, 0, len(req.Legs))
	for _, leg := range req.Legs {
		party, partyErr := kernel.UUIDFromString(leg.Party)
		if partyErr != nil {
			return badRequest(ctx, "Invalid leg party: "+partyErr.Error())
		}
		legs = append(legs, commands.LegSpec{
			Party:     party,
			Target:    order.StatusCode(leg.Target),
			Incentive: leg.Incentive,
		})
	}

	cmd, err := commands.NewCreateOrderCommand(orderID, shipper, legs)
	if err != nil {
		return badRequest(ctx, "Invalid order data: "+err.Error())
	}

	if handleErr := s.createOrderHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return commandError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusCreated)
}

// SubmitOrder handles POST /api/v1/orders/:id/submit.
func (s *Server) SubmitOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}

	var req SubmitOrderRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}
	origin, err := kernel.UUIDFromString(req.Origin)
	if err != nil {
		return badRequest(ctx, "Invalid origin id: "+err.Error())
	}

	submittedAt, err := parseTimestamp(req.SubmittedAt)
	if err != nil {
		return badRequest(ctx, "Invalid submittedAt: "+err.Error())
	}

	cmd, err := commands.NewSubmitOrderCommand(orderID, origin, submittedAt)
	if err != nil {
		return badRequest(ctx, "Invalid submission: "+err.Error())
	}

	if handleErr := s.submitOrderHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return commandError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusOK)
}

// RegisterCarrier handles POST /api/v1/carriers.
func (s *Server) RegisterCarrier(ctx echo.Context) error {
	var req RegisterCarrierRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	carrierID, err := kernel.UUIDFromString(req.CarrierID)
	if err != nil {
		return badRequest(ctx, "Invalid carrier id: "+err.Error())
	}
	payoutRecipient, err := kernel.UUIDFromString(req.PayoutRecipient)
	if err != nil {
		return badRequest(ctx, "Invalid payout recipient: "+err.Error())
	}

	cmd, err := commands.NewRegisterCarrierCommand(carrierID, req.Name, payoutRecipient)
	if err != nil {
		return badRequest(ctx, "Invalid carrier data: "+err.Error())
	}

	if handleErr := s.registerCarrierHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return commandError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusCreated)
}

// UnregisterCarrier handles DELETE /api/v1/carriers/:id.
func (s *Server) UnregisterCarrier(ctx echo.Context) error {
	carrierID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid carrier id: "+err.Error())
	}

	cmd, err := commands.NewUnregisterCarrierCommand(carrierID)
	if err != nil {
		return badRequest(ctx, "Invalid carrier id: "+err.Error())
	}

	if handleErr := s.unregisterCarrierHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return commandError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusOK)
}

// LaunchLeg handles POST /api/v1/carriers/:id/launch.
func (s *Server) LaunchLeg(ctx echo.Context) error {
	carrierID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid carrier id: "+err.Error())
	}

	var req LaunchLegRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}
	orderID, err := kernel.UUIDFromString(req.OrderID)
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}

	cmd, err := commands.NewLaunchLegCommand(carrierID, orderID, req.LegIndex)
	if err != nil {
		return badRequest(ctx, "Invalid launch data: "+err.Error())
	}

	if handleErr := s.launchLegHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return commandError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusOK)
}

// ReportLeg handles POST /api/v1/carriers/:id/report.
func (s *Server) ReportLeg(ctx echo.Context) error {
	carrierID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid carrier id: "+err.Error())
	}

	var req ReportLegRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}
	orderID, err := kernel.UUIDFromString(req.OrderID)
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}

	reportedAt, err := parseTimestamp(req.ReportedAt)
	if err != nil {
		return badRequest(ctx, "Invalid reportedAt: "+err.Error())
	}

	cmd, err := commands.NewReportLegCommand(carrierID, orderID, req.LegIndex, order.StatusCode(req.Code), reportedAt)
	if err != nil {
		return badRequest(ctx, "Invalid report data: "+err.Error())
	}

	if handleErr := s.reportLegHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return commandError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusOK)
}

// Settle handles POST /api/v1/settlements.
func (s *Server) Settle(ctx echo.Context) error {
	var req SettleRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	recipient, err := kernel.UUIDFromString(req.Recipient)
	if err != nil {
		return badRequest(ctx, "Invalid recipient id: "+err.Error())
	}

	cmd, err := commands.NewSettleIncentiveCommand(recipient)
	if err != nil {
		return badRequest(ctx, "Invalid settlement: "+err.Error())
	}

	if handleErr := s.settleIncentiveHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return commandError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusOK)
}

// GetCarrierRatings handles GET /api/v1/carriers/ratings.
func (s *Server) GetCarrierRatings(ctx echo.Context) error {
	query := queries.NewGetCarrierRatingsQuery()

	ratings, err := s.getCarrierRatingsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return internalError(ctx, "Failed to retrieve ratings")
	}

	response := make([]CarrierRating, len(ratings))
	for i, rating := range ratings {
		response[i] = CarrierRating{
			Carrier:        rating.Carrier.String(),
			Name:           rating.Name,
			AssignedTotal:  rating.AssignedTotal,
			CompletedTotal: rating.CompletedTotal,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetRecipientBalances handles GET /api/v1/balances.
func (s *Server) GetRecipientBalances(ctx echo.Context) error {
	query := queries.NewGetRecipientBalancesQuery()

	balances, err := s.getRecipientBalancesHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return internalError(ctx, "Failed to retrieve balances")
	}

	response := make([]RecipientBalance, len(balances))
	for i, balance := range balances {
		response[i] = RecipientBalance{
			Recipient:         balance.Recipient.String(),
			AccruedTotal:      balance.AccruedTotal,
			PendingSettlement: balance.PendingSettlement,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetOpenOrders handles GET /api/v1/orders/open.
func (s *Server) GetOpenOrders(ctx echo.Context) error {
	query := queries.NewGetOpenOrdersQuery()

	orders, err := s.getOpenOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return internalError(ctx, "Failed to retrieve orders")
	}

	response := make([]OpenOrder, len(orders))
	for i, o := range orders {
		response[i] = OpenOrder{
			ID:             o.ID.String(),
			TrackingID:     o.TrackingID,
			Status:         o.Status.String(),
			CurrentStep:    o.CurrentStep,
			TotalIncentive: o.TotalIncentive,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetAuditLog handles GET /api/v1/audit.
func (s *Server) GetAuditLog(ctx echo.Context) error {
	limit := 100
	if raw := ctx.QueryParam("limit"); raw != "" {
		parsed, parseErr := strconv.Atoi(raw)
		if parseErr != nil {
			return badRequest(ctx, "Invalid limit: "+parseErr.Error())
		}
		limit = parsed
	}

	query, err := queries.NewGetAuditLogQuery(limit)
	if err != nil {
		return badRequest(ctx, "Invalid limit: "+err.Error())
	}

	entries, err := s.getAuditLogHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return internalError(ctx, "Failed to retrieve audit log")
	}

	response := make([]AuditEntry, len(entries))
	for i, entry := range entries {
		response[i] = AuditEntry{
			ID:         entry.ID,
			Name:       entry.Name,
			Payload:    string(entry.Payload),
			OccurredAt: entry.OccurredAt.UTC().Format(time.RFC3339),
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// parseTimestamp reads an optional RFC3339 timestamp; empty means unset.
func parseTimestamp(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339, raw)
}

// badRequest writes a 400 response with the given message.
func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// internalError writes a 500 response with the given message.
func internalError(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusInternalServerError, Error{
		Code:    http.StatusInternalServerError,
		Message: message,
	})
}

// commandError maps a command failure onto an HTTP status: unknown aggregates
// are 404, protocol conflicts are 409, everything else is a 400.
func commandError(ctx echo.Context, err error) error {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return ctx.JSON(http.StatusNotFound, Error{
			Code:    http.StatusNotFound,
			Message: err.Error(),
		})
	case errors.Is(err, order.ErrOrderAlreadyTerminal),
		errors.Is(err, order.ErrCodeMismatch),
		errors.Is(err, order.ErrPartyNotAuthorized),
		errors.Is(err, carrier.ErrLegNotLaunched),
		errors.Is(err, registry.ErrCarrierAlreadyRegistered),
		errors.Is(err, registry.ErrCarrierNotRegistered),
		errors.Is(err, registry.ErrOrderAlreadyAdmitted),
		errors.Is(err, registry.ErrBalanceUnderflow):
		return ctx.JSON(http.StatusConflict, Error{
			Code:    http.StatusConflict,
			Message: err.Error(),
		})
	default:
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		})
	}
}
