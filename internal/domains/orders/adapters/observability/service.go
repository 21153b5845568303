package observability

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	inventoryports "github.com/retailops/backoffice/internal/domains/inventory/ports"
	"github.com/retailops/backoffice/internal/domains/orders/domain"
	"github.com/retailops/backoffice/internal/domains/orders/ports"
)

const tracerName = "github.com/retailops/backoffice/internal/domains/orders/adapters/observability/service"

// Service decorates the orders application port with tracing, logging, and metrics.
type Service struct {
	inner   ports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

// WithLogger injects a slog logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithTracer injects a tracer implementation.
func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

// WithMeter injects the meter used to create service metrics instruments.
func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wires a decorator around the core service.
func New(inner ports.Service, opts ...Option) ports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		logger:  defaultLogger(),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	if s.logger == nil {
		s.logger = defaultLogger()
	}
	return s
}

// PlaceOrder runs the placement unit of work with instrumentation.
func (s *Service) PlaceOrder(ctx context.Context, input ports.PlaceOrderInput) (*ports.OrderConfirmation, error) {
	ctx, span := s.startSpan(ctx, "Service.PlaceOrder",
		attribute.Int64("order.store_id", input.StoreID),
		attribute.Int("order.lines.requested", len(input.Lines)),
	)
	defer span.End()

	s.logInfo(ctx, "placing order", slog.Int64("store.id", input.StoreID), slog.Int("lines", len(input.Lines)))
	result, err := s.inner.PlaceOrder(ctx, input)
	if err != nil {
		var shortfall *inventoryports.InsufficientStockError
		if errors.As(err, &shortfall) {
			s.metrics.recordRejected(ctx, shortfall.ProductID)
			span.SetAttributes(
				attribute.Int64("order.shortfall.product_id", shortfall.ProductID),
				attribute.Int("order.shortfall.requested", int(shortfall.Requested)),
				attribute.Int("order.shortfall.available", int(shortfall.Available)),
			)
		}
		return nil, s.handleError(ctx, span, err, "failed to place order", slog.Int64("store.id", input.StoreID))
	}
	if result != nil {
		s.metrics.recordPlaced(ctx, result.Total)
		span.SetAttributes(attribute.Int64("order.id", result.OrderID))
		s.logInfo(ctx, "order placed",
			slog.Int64("order.id", result.OrderID),
			slog.Int64("customer.id", result.CustomerID),
			slog.Float64("order.total", result.Total),
		)
	}
	return result, nil
}

// GetByID loads a single recorded order.
func (s *Service) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	ctx, span := s.startSpan(ctx, "Service.GetByID", attribute.Int64("order.id", id))
	defer span.End()

	result, err := s.inner.GetByID(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load order", slog.Int64("order.id", id))
	}
	return result, nil
}

// ListByCustomer returns the order history of one customer.
func (s *Service) ListByCustomer(ctx context.Context, customerID int64) ([]*domain.Order, error) {
	ctx, span := s.startSpan(ctx, "Service.ListByCustomer", attribute.Int64("customer.id", customerID))
	defer span.End()

	result, err := s.inner.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list orders by customer", slog.Int64("customer.id", customerID))
	}
	span.SetAttributes(attribute.Int("order.result.count", len(result)))
	return result, nil
}

// ListByStore returns the orders recorded against one store.
func (s *Service) ListByStore(ctx context.Context, storeID int64) ([]*domain.Order, error) {
	ctx, span := s.startSpan(ctx, "Service.ListByStore", attribute.Int64("store.id", storeID))
	defer span.End()

	result, err := s.inner.ListByStore(ctx, storeID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list orders by store", slog.Int64("store.id", storeID))
	}
	span.SetAttributes(attribute.Int("order.result.count", len(result)))
	return result, nil
}

func (s *Service) startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	tracer := s.tracer
	if tracer == nil {
		tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) logError(ctx context.Context, msg string, err error, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if err == nil {
		return nil
	}
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	s.logError(ctx, msg, err, attrs...)
	return err
}

func defaultLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type serviceMetrics struct {
	ordersPlaced   metric.Int64Counter
	ordersRejected metric.Int64Counter
	orderTotals    metric.Float64Histogram
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	ordersPlaced, _ := m.Int64Counter("orders.service.placed", metric.WithDescription("Number of orders placed"))
	ordersRejected, _ := m.Int64Counter("orders.service.rejected_insufficient_stock", metric.WithDescription("Number of orders rejected for insufficient stock"))
	orderTotals, _ := m.Float64Histogram("orders.service.total", metric.WithDescription("Distribution of order totals"))
	return serviceMetrics{
		ordersPlaced:   ordersPlaced,
		ordersRejected: ordersRejected,
		orderTotals:    orderTotals,
	}
}

func (m serviceMetrics) recordPlaced(ctx context.Context, total float64) {
	if m.ordersPlaced != nil {
		m.ordersPlaced.Add(ctx, 1)
	}
	if m.orderTotals != nil {
		m.orderTotals.Record(ctx, total)
	}
}

func (m serviceMetrics) recordRejected(ctx context.Context, productID int64) {
	if m.ordersRejected != nil {
		m.ordersRejected.Add(ctx, 1, metric.WithAttributes(attribute.Int64("product.id", productID)))
	}
}

var _ ports.Service = (*Service)(nil)
