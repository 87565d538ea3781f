package services

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"sync"

	"go.uber.org/zap"

	"pedidos_directos/internal/catalog"
	"pedidos_directos/internal/models"
	"pedidos_directos/internal/money"
	"pedidos_directos/internal/order"
	"pedidos_directos/internal/session"
	"pedidos_directos/pkg/sheets"
)

// ErrEmptyCart means a send was attempted with nothing in the cart.
var ErrEmptyCart = errors.New("order: cart is empty")

// ErrSendInFlight means a send for the same session is still running.
// Overlapping sends are rejected rather than queued so the visitor
// cannot double-log one order by mashing the button.
var ErrSendInFlight = errors.New("order: send already in flight")

// OrderLogger is the outbound order-log dependency.
type OrderLogger interface {
	Submit(ctx context.Context, payload sheets.OrderPayload) sheets.Result
}

// OrderPreview is the running view shown while the visitor edits the
// cart: the message as it currently stands and the link that carries it.
type OrderPreview struct {
	Lines       []models.CartLine
	Total       money.Cents
	TotalText   string
	OrderNumber string
	Message     string
	Link        string
}

// SendResult is the outcome of one send action. The link is always
// present: a failed or unconfigured order log never blocks the order.
type SendResult struct {
	Message     string
	Link        string
	OrderNumber string
	Outcome     sheets.Outcome
	Total       money.Cents
	TotalText   string
}

// OrderService owns the per-session order flow: catalog-backed session
// creation, cart and customer commands, previews and the send sequence.
type OrderService interface {
	CreateSession(ctx context.Context, slug string) (*session.Session, error)
	GetSession(ctx context.Context, sessionID string) (*session.Session, error)
	IncrementItem(ctx context.Context, sessionID, itemID string) (*session.Session, error)
	DecrementItem(ctx context.Context, sessionID, itemID string) (*session.Session, error)
	SelectOption(ctx context.Context, sessionID, itemID, choice string) (*session.Session, error)
	UpdateCustomer(ctx context.Context, sessionID string, customer models.Customer) (*session.Session, error)
	Preview(ctx context.Context, sessionID string) (OrderPreview, error)
	Send(ctx context.Context, sessionID string) (SendResult, error)
}

// lockShards bounds the session lock table: sessions hash onto a fixed
// set of mutexes instead of growing one lock per session id.
const lockShards = 256

type orderService struct {
	loader    catalog.Loader
	store     session.Store
	gateway   OrderLogger
	formatter *money.Formatter
	logger    *zap.Logger

	locks [lockShards]sync.Mutex

	mu       sync.Mutex
	inFlight map[string]bool
}

// NewOrderService wires the catalog loader, session store and order
// log gateway into the order flow.
func NewOrderService(loader catalog.Loader, store session.Store, gateway OrderLogger, formatter *money.Formatter, logger *zap.Logger) OrderService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &orderService{
		loader:    loader,
		store:     store,
		gateway:   gateway,
		formatter: formatter,
		logger:    logger,
		inFlight:  make(map[string]bool),
	}
}

func (s *orderService) sessionLock(sessionID string) *sync.Mutex {
	h := fnv.New32a()
	h.Write([]byte(sessionID))
	return &s.locks[h.Sum32()%lockShards]
}

func (s *orderService) markInFlight(sessionID string, value bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if value {
		s.inFlight[sessionID] = true
	} else {
		delete(s.inFlight, sessionID)
	}
}

func (s *orderService) sendInFlight(sessionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inFlight[sessionID]
}

func (s *orderService) CreateSession(ctx context.Context, slug string) (*session.Session, error) {
	slug = catalog.NormalizeSlug(slug)

	biz, err := s.loader.Load(ctx, slug)
	if err != nil {
		return nil, err
	}

	sess := session.New(slug, biz)
	if err := s.store.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	s.logger.Info("session created",
		zap.String("session_id", sess.ID),
		zap.String("slug", slug),
		zap.String("business", biz.Name))

	return sess, nil
}

func (s *orderService) GetSession(ctx context.Context, sessionID string) (*session.Session, error) {
	return s.store.Get(ctx, sessionID)
}

// withSession runs a mutation under the session lock and persists the
// result.
func (s *orderService) withSession(ctx context.Context, sessionID string, fn func(*session.Session) error) (*session.Session, error) {
	lock := s.sessionLock(sessionID)
	lock.Lock()
	defer lock.Unlock()

	sess, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := fn(sess); err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}
	return sess, nil
}

func (s *orderService) IncrementItem(ctx context.Context, sessionID, itemID string) (*session.Session, error) {
	return s.withSession(ctx, sessionID, func(sess *session.Session) error {
		return sess.Increment(itemID)
	})
}

func (s *orderService) DecrementItem(ctx context.Context, sessionID, itemID string) (*session.Session, error) {
	return s.withSession(ctx, sessionID, func(sess *session.Session) error {
		return sess.Decrement(itemID)
	})
}

func (s *orderService) SelectOption(ctx context.Context, sessionID, itemID, choice string) (*session.Session, error) {
	return s.withSession(ctx, sessionID, func(sess *session.Session) error {
		return sess.SelectOption(itemID, choice)
	})
}

func (s *orderService) UpdateCustomer(ctx context.Context, sessionID string, customer models.Customer) (*session.Session, error) {
	return s.withSession(ctx, sessionID, func(sess *session.Session) error {
		sess.SetCustomer(customer)
		return nil
	})
}

func (s *orderService) Preview(ctx context.Context, sessionID string) (OrderPreview, error) {
	sess, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return OrderPreview{}, err
	}
	return s.preview(sess), nil
}

func (s *orderService) preview(sess *session.Session) OrderPreview {
	lines := sess.Cart.Lines()
	total := sess.Cart.Total()

	message := order.FormatCustomerMessage(sess.Business, lines, sess.Customer, total, sess.LastOrderNumber, s.formatter)

	return OrderPreview{
		Lines:       lines,
		Total:       total,
		TotalText:   s.formatter.Format(total),
		OrderNumber: sess.LastOrderNumber,
		Message:     message,
		Link:        order.WhatsAppLink(sess.Business.WhatsApp, message),
	}
}

// orderSnapshot freezes the send inputs at call time. The resulting
// message is built from this snapshot even if the visitor keeps
// editing while the submission is in flight.
type orderSnapshot struct {
	business models.Business
	slug     string
	lines    []models.CartLine
	customer models.Customer
	total    money.Cents
	revision uint64
}

func (s *orderService) Send(ctx context.Context, sessionID string) (SendResult, error) {
	lock := s.sessionLock(sessionID)

	lock.Lock()
	if s.sendInFlight(sessionID) {
		lock.Unlock()
		return SendResult{}, ErrSendInFlight
	}

	sess, err := s.store.Get(ctx, sessionID)
	if err != nil {
		lock.Unlock()
		return SendResult{}, err
	}
	if sess.Cart.Empty() {
		lock.Unlock()
		return SendResult{}, ErrEmptyCart
	}

	snap := orderSnapshot{
		business: sess.Business,
		slug:     sess.Slug,
		lines:    sess.Cart.Lines(),
		customer: sess.Customer.Normalized(),
		total:    sess.Cart.Total(),
		revision: sess.Revision,
	}
	s.markInFlight(sessionID, true)
	lock.Unlock()

	defer s.markInFlight(sessionID, false)

	result := s.gateway.Submit(ctx, sheets.OrderPayload{
		Business:     snap.business.Name,
		BusinessSlug: snap.slug,
		Customer:     snap.customer.Name,
		Phone:        snap.customer.Phone,
		Address:      snap.customer.Address,
		Note:         snap.customer.Note,
		Order:        order.FormatLogSummary(snap.lines),
		Total:        snap.total.Float(),
	})

	var number string
	if result.Outcome == sheets.OutcomeSubmitted {
		number = result.OrderNumber
	} else {
		s.logger.Info("order log unavailable, continuing without order number",
			zap.String("session_id", sessionID),
			zap.String("outcome", result.Outcome.String()))
	}

	lock.Lock()
	defer lock.Unlock()

	if number != "" {
		// Record the number only if the cart has not moved on since
		// the snapshot; a stale number would describe an order the
		// visitor is no longer sending.
		if current, err := s.store.Get(ctx, sessionID); err == nil && current.Revision == snap.revision {
			current.RecordOrderNumber(number)
			if err := s.store.Save(ctx, current); err != nil {
				s.logger.Warn("failed to save order number", zap.Error(err))
			}
		}
	}

	message := order.FormatCustomerMessage(snap.business, snap.lines, snap.customer, snap.total, number, s.formatter)

	return SendResult{
		Message:     message,
		Link:        order.WhatsAppLink(snap.business.WhatsApp, message),
		OrderNumber: number,
		Outcome:     result.Outcome,
		Total:       snap.total,
		TotalText:   s.formatter.Format(snap.total),
	}, nil
}
