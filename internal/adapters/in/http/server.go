// Package http exposes the application's use cases over an echo HTTP API.
// The server coordinates between HTTP handlers and application use cases;
// all business rules live in the command and query handlers.
package http

import (
	"errors"
	"net/http"
	"strconv"

	"redemption/internal/core/application/usecases/commands"
	"redemption/internal/core/application/usecases/queries"
	"redemption/internal/core/domain/model/burn"
	"redemption/internal/core/domain/model/kernel"
	"redemption/internal/core/domain/model/order"
	"redemption/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server implements the HTTP API for redemption orders, variant inventory
// and burn execution.
type Server struct {
	// Command handlers
	createOrderHandler     commands.CreateOrderCommandHandler
	updateOrderHandler     commands.UpdateOrderCommandHandler
	replaceHistoryHandler  commands.ReplaceFulfillmentHistoryCommandHandler
	addVariationHandler    commands.AddVariationCommandHandler
	removeVariationHandler commands.RemoveVariationCommandHandler
	setVariantStockHandler commands.SetVariantStockCommandHandler
	executeBurnHandler     commands.ExecuteBurnCommandHandler

	// Query handlers
	getOrderHandler        queries.GetOrderQueryHandler
	getItemVariantsHandler queries.GetItemVariantsQueryHandler

	// runs serves the polled burn progress endpoint
	runs *burn.Registry
}

// NewServer creates a new HTTP server with the required command and query
// handlers. The registry must be the same instance the burn handler writes to.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	updateOrderHandler commands.UpdateOrderCommandHandler,
	replaceHistoryHandler commands.ReplaceFulfillmentHistoryCommandHandler,
	addVariationHandler commands.AddVariationCommandHandler,
	removeVariationHandler commands.RemoveVariationCommandHandler,
	setVariantStockHandler commands.SetVariantStockCommandHandler,
	executeBurnHandler commands.ExecuteBurnCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	getItemVariantsHandler queries.GetItemVariantsQueryHandler,
	runs *burn.Registry,
) *Server {
	return &Server{
		createOrderHandler:     createOrderHandler,
		updateOrderHandler:     updateOrderHandler,
		replaceHistoryHandler:  replaceHistoryHandler,
		addVariationHandler:    addVariationHandler,
		removeVariationHandler: removeVariationHandler,
		setVariantStockHandler: setVariantStockHandler,
		executeBurnHandler:     executeBurnHandler,
		getOrderHandler:        getOrderHandler,
		getItemVariantsHandler: getItemVariantsHandler,
		runs:                   runs,
	}
}

// RegisterRoutes attaches all API routes to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	v1 := e.Group("/api/v1")
	v1.POST("/orders", s.CreateOrder)
	v1.GET("/orders/:orderId", s.GetOrder)
	v1.PATCH("/orders/:orderId", s.UpdateOrder)
	v1.PUT("/orders/:orderId/history", s.ReplaceHistory)
	v1.POST("/orders/:orderId/burn", s.ExecuteBurn)
	v1.GET("/orders/:orderId/burn", s.GetBurnProgress)
	v1.POST("/items/:itemId/variations", s.AddVariation)
	v1.DELETE("/items/:itemId/variations/:variationId", s.RemoveVariation)
	v1.PUT("/items/:itemId/variants/stock", s.SetVariantStock)
	v1.GET("/items/:itemId/variants", s.GetItemVariants)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "healthy"})
}

// CreateOrder handles POST /api/v1/orders - places a new redemption order.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req CreateOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	shipping, err := order.NewShippingInfo(
		req.Shipping.RecipientName,
		req.Shipping.AddressLine1,
		req.Shipping.AddressLine2,
		req.Shipping.City,
		req.Shipping.PostalCode,
		req.Shipping.Country,
	)
	if err != nil {
		return writeError(ctx, err)
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(
		orderID,
		req.AccountID,
		req.TokenID,
		req.PhysicalItemID,
		req.Amount,
		req.VariantCombination,
		shipping,
	)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.createOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreateOrderResponse{OrderID: orderID.String()})
}

// GetOrder handles GET /api/v1/orders/:orderId - the public lookup by the
// order identifier capability token.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, err := parseOrderID(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid order identifier")
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return writeError(ctx, err)
	}

	resp, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderResponseFromQuery(resp))
}

// UpdateOrder handles PATCH /api/v1/orders/:orderId - merges scalar fields
// and optionally appends one fulfillment update through the status machine.
func (s *Server) UpdateOrder(ctx echo.Context) error {
	orderID, err := parseOrderID(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid order identifier")
	}

	var req UpdateOrderRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewUpdateOrderCommand(orderID, commands.UpdateOrderParams{
		Status:            req.Status,
		Message:           req.Message,
		PerformedBy:       req.PerformedBy,
		TrackingNumber:    req.TrackingNumber,
		TrackingURL:       req.TrackingURL,
		Carrier:           req.Carrier,
		EstimatedDelivery: req.EstimatedDelivery,
		Notes:             req.Notes,
		TransactionID:     req.TransactionID,
	})
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.updateOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ReplaceHistory handles PUT /api/v1/orders/:orderId/history - the
// administrative full-replacement path for the fulfillment history.
func (s *Server) ReplaceHistory(ctx echo.Context) error {
	orderID, err := parseOrderID(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid order identifier")
	}

	var req ReplaceHistoryRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	entries := make([]commands.HistoryEntry, 0, len(req.Entries))
	for _, e := range req.Entries {
		entries = append(entries, commands.HistoryEntry(e))
	}

	cmd, err := commands.NewReplaceFulfillmentHistoryCommand(orderID, entries, req.PerformedBy)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.replaceHistoryHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ExecuteBurn handles POST /api/v1/orders/:orderId/burn - runs the burn to
// completion.
//
// The response distinguishes three outcomes the client must treat
// differently: 200 means burned and recorded, 202 means the tokens may be or
// are burned but the final record is pending reconciliation, and an error
// status means nothing irreversible happened.
func (s *Server) ExecuteBurn(ctx echo.Context) error {
	orderID, err := parseOrderID(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid order identifier")
	}

	cmd, err := commands.NewExecuteBurnCommand(orderID)
	if err != nil {
		return writeError(ctx, err)
	}

	transactionID, err := s.executeBurnHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		if errors.Is(err, commands.ErrBurnPendingReconciliation) {
			return ctx.JSON(http.StatusAccepted, BurnResponse{
				TransactionID: transactionID,
				Status:        "reconciliation_pending",
			})
		}

		var callErr *errs.ExternalCallError
		if errors.As(err, &callErr) && callErr.Ambiguous() {
			return ctx.JSON(http.StatusAccepted, BurnResponse{
				TransactionID: callErr.TransactionID,
				Status:        "reconciliation_pending",
			})
		}

		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, BurnResponse{
		TransactionID: transactionID,
		Status:        "completed",
	})
}

// GetBurnProgress handles GET /api/v1/orders/:orderId/burn - the polled view
// of the order's burn run.
func (s *Server) GetBurnProgress(ctx echo.Context) error {
	orderID, err := parseOrderID(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid order identifier")
	}

	snap, ok := s.runs.Get(orderID)
	if !ok {
		return ctx.JSON(http.StatusNotFound, Error{
			Code:    http.StatusNotFound,
			Message: "No burn run for this order",
		})
	}

	return ctx.JSON(http.StatusOK, BurnProgressResponse{
		Stage:               snap.Stage.String(),
		TransactionID:       snap.TransactionID,
		Reason:              snap.Reason,
		NeedsReconciliation: snap.NeedsReconciliation,
		StartedAt:           snap.StartedAt,
		UpdatedAt:           snap.UpdatedAt,
	})
}

// AddVariation handles POST /api/v1/items/:itemId/variations - declares a
// variation and recomputes the item's variant combinations.
func (s *Server) AddVariation(ctx echo.Context) error {
	itemID, err := parseItemID(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid item identifier")
	}

	var req AddVariationRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	variationID := kernel.NewUUID()
	cmd, err := commands.NewAddVariationCommand(variationID, itemID, req.Name, req.Options)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.addVariationHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, AddVariationResponse{VariationID: variationID.String()})
}

// RemoveVariation handles DELETE /api/v1/items/:itemId/variations/:variationId -
// deletes a variation and prunes orphaned stock records.
func (s *Server) RemoveVariation(ctx echo.Context) error {
	itemID, err := parseItemID(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid item identifier")
	}

	variationID, err := kernel.UUIDFromString(ctx.Param("variationId"))
	if err != nil {
		return badRequest(ctx, "Invalid variation identifier")
	}

	cmd, err := commands.NewRemoveVariationCommand(variationID, itemID)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.removeVariationHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// SetVariantStock handles PUT /api/v1/items/:itemId/variants/stock - sets
// the stock counter of one variant combination.
func (s *Server) SetVariantStock(ctx echo.Context) error {
	itemID, err := parseItemID(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid item identifier")
	}

	var req SetVariantStockRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewSetVariantStockCommand(itemID, req.Combination, req.Stock)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.setVariantStockHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetItemVariants handles GET /api/v1/items/:itemId/variants - the admin
// listing of variations and variant stocks.
func (s *Server) GetItemVariants(ctx echo.Context) error {
	itemID, err := parseItemID(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid item identifier")
	}

	query, err := queries.NewGetItemVariantsQuery(itemID)
	if err != nil {
		return writeError(ctx, err)
	}

	resp, err := s.getItemVariantsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, itemVariantsResponseFromQuery(resp))
}

func parseOrderID(ctx echo.Context) (kernel.UUID, error) {
	return kernel.UUIDFromString(ctx.Param("orderId"))
}

func parseItemID(ctx echo.Context) (int64, error) {
	return strconv.ParseInt(ctx.Param("itemId"), 10, 64)
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// writeError maps domain and application errors onto HTTP statuses.
//
// The mapping preserves the distinctions callers need to act safely:
// validation failures are 400 and retryable after correction, conflicts with
// an existing or in-flight burn are 409 and must not be retried blindly, and
// a failed pre-broadcast ledger call is 502 and cleanly retryable.
func writeError(ctx echo.Context, err error) error {
	var status int

	var notFoundErr *errs.ObjectNotFoundError
	var transitionErr *errs.InvalidTransitionError
	var callErr *errs.ExternalCallError

	switch {
	case errors.Is(err, burn.ErrRunInFlight),
		errors.Is(err, burn.ErrRunRequiresReconciliation),
		errors.Is(err, burn.ErrRunAlreadyCompleted),
		errors.Is(err, order.ErrTransactionAlreadyAttached):
		status = http.StatusConflict
	case errors.As(err, &transitionErr):
		status = http.StatusConflict
	case errors.As(err, &notFoundErr):
		status = http.StatusNotFound
	case errors.As(err, &callErr):
		status = http.StatusBadGateway
	case errors.Is(err, errs.ErrValueIsInvalid), errors.Is(err, errs.ErrValueIsRequired):
		status = http.StatusBadRequest
	default:
		status = http.StatusInternalServerError
	}

	return ctx.JSON(status, Error{
		Code:    status,
		Message: err.Error(),
	})
}
