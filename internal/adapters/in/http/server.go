// Package http exposes the order intake API over HTTP.
// Handlers translate requests into commands and queries, map domain errors
// to status codes and keep no state of their own.
package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/application/usecases/queries"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

type createOrderHandler interface {
	Handle(ctx context.Context, cmd commands.CreateOrderCommand) (*order.Order, error)
}

type getOrderByIDHandler interface {
	Handle(ctx context.Context, query queries.GetOrderByIDQuery) (queries.OrderResponse, error)
}

type getAllOrdersHandler interface {
	Handle(ctx context.Context, query queries.GetAllOrdersQuery) ([]queries.OrderResponse, error)
}

// CreateOrderRequest is the body of POST /orders.
type CreateOrderRequest struct {
	CustomerName string  `json:"customerName"`
	ProductName  string  `json:"productName"`
	Quantity     int     `json:"quantity"`
	TotalAmount  float64 `json:"totalAmount"`
}

// OrderResponse is the representation of an order returned by the API.
type OrderResponse struct {
	ID           string    `json:"id"`
	CustomerName string    `json:"customerName"`
	ProductName  string    `json:"productName"`
	Quantity     int       `json:"quantity"`
	TotalAmount  float64   `json:"totalAmount"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"createdAtUtc"`
}

// ErrorResponse is the error body returned on non-2xx statuses.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	createOrderHandler  createOrderHandler
	getOrderByIDHandler getOrderByIDHandler
	getAllOrdersHandler getAllOrdersHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler createOrderHandler,
	getOrderByIDHandler getOrderByIDHandler,
	getAllOrdersHandler getAllOrdersHandler,
) *Server {
	return &Server{
		createOrderHandler:  createOrderHandler,
		getOrderByIDHandler: getOrderByIDHandler,
		getAllOrdersHandler: getAllOrdersHandler,
	}
}

// RegisterRoutes binds the API endpoints to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.POST("/orders", s.CreateOrder)
	e.GET("/orders", s.GetOrders)
	e.GET("/orders/:id", s.GetOrderByID)
	e.GET("/health", s.Health)
}

// CreateOrder handles POST /orders - accepts a new order into the pipeline.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req CreateOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	cmd, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(), req.CustomerName, req.ProductName, req.Quantity, req.TotalAmount)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid order data: " + err.Error(),
		})
	}

	created, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil && created == nil {
		return ctx.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    http.StatusInternalServerError,
			Message: "Failed to create order",
		})
	}
	// A non-nil order alongside an error means the order was persisted but
	// the direct publish failed. The relay job delivers the event, so the
	// request still succeeded from the caller's point of view.

	ctx.Response().Header().Set(echo.HeaderLocation, "/orders/"+created.ID().String())
	return ctx.JSON(http.StatusCreated, toOrderResponse(created))
}

// GetOrderByID handles GET /orders/:id - retrieves a single order.
func (s *Server) GetOrderByID(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid order id",
		})
	}

	query, err := queries.NewGetOrderByIDQuery(orderID)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid order id",
		})
	}

	resp, err := s.getOrderByIDHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return ctx.JSON(http.StatusNotFound, ErrorResponse{
				Code:    http.StatusNotFound,
				Message: "Order not found",
			})
		}
		return ctx.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    http.StatusInternalServerError,
			Message: "Failed to retrieve order",
		})
	}

	return ctx.JSON(http.StatusOK, fromQueryResponse(resp))
}

// GetOrders handles GET /orders - retrieves all orders, newest first.
func (s *Server) GetOrders(ctx echo.Context) error {
	query := queries.NewGetAllOrdersQuery()

	orders, err := s.getAllOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    http.StatusInternalServerError,
			Message: "Failed to retrieve orders",
		})
	}

	response := make([]OrderResponse, len(orders))
	for i, o := range orders {
		response[i] = fromQueryResponse(o)
	}

	return ctx.JSON(http.StatusOK, response)
}

// Health handles GET /health - liveness probe.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func toOrderResponse(o *order.Order) OrderResponse {
	return OrderResponse{
		ID:           o.ID().String(),
		CustomerName: o.CustomerName(),
		ProductName:  o.ProductName(),
		Quantity:     o.Quantity(),
		TotalAmount:  o.TotalAmount(),
		Status:       o.Status().String(),
		CreatedAt:    o.CreatedAt(),
	}
}

func fromQueryResponse(resp queries.OrderResponse) OrderResponse {
	return OrderResponse{
		ID:           resp.ID.String(),
		CustomerName: resp.CustomerName,
		ProductName:  resp.ProductName,
		Quantity:     resp.Quantity,
		TotalAmount:  resp.TotalAmount,
		Status:       resp.Status,
		CreatedAt:    resp.CreatedAt,
	}
}
