package service

import (
	"context"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/BigFrankV/proyecto-cuentas-claras-sub008/internal/model"
)

// IntentStore defines the interface for payment intent storage
type IntentStore interface {
	Save(ctx context.Context, intent *model.PaymentIntent) error
	// Get returns nil, nil when the intent does not exist
	Get(ctx context.Context, id string) (*model.PaymentIntent, error)
}

// PaymentService creates and looks up payment intents. Intents are accepted
// after the guard chain has validated the request; no gateway is contacted.
type PaymentService struct {
	store IntentStore
	now   func() time.Time
	newID func() string
}

// PaymentServiceConfig holds configuration for the payment service
type PaymentServiceConfig struct {
	Store IntentStore
	Now   func() time.Time
	NewID func() string
}

// NewPaymentService creates a new payment service. A nil store means an
// in-memory one.
func NewPaymentService(cfg PaymentServiceConfig) *PaymentService {
	if cfg.Store == nil {
		cfg.Store = NewMemoryIntentStore()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.NewID == nil {
		cfg.NewID = func() string { return uuid.New().String() }
	}
	return &PaymentService{
		store: cfg.Store,
		now:   cfg.Now,
		newID: cfg.NewID,
	}
}

// CreateIntent records a pending payment intent
func (s *PaymentService) CreateIntent(ctx context.Context, req model.CreatePaymentIntentRequest) (*model.PaymentIntent, error) {
	gateway, ok := model.ParseGateway(string(req.Gateway))
	if !ok {
		return nil, ErrUnsupportedGateway
	}
	if req.Amount < model.MinPaymentAmount || req.Amount > model.MaxPaymentAmount {
		return nil, ErrAmountOutOfRange
	}
	if utf8.RuneCountInString(req.Description) > model.MaxDescriptionLength {
		return nil, ErrDescriptionTooLong
	}

	intent := &model.PaymentIntent{
		ID:          s.newID(),
		Gateway:     gateway,
		Environment: req.Environment,
		Amount:      req.Amount,
		Currency:    model.CurrencyCLP,
		Description: req.Description,
		PayerEmail:  req.PayerEmail,
		UserID:      req.UserID,
		Status:      model.PaymentIntentPending,
		Warnings:    req.Warnings,
		CreatedOn:   s.now().UTC(),
	}

	if err := s.store.Save(ctx, intent); err != nil {
		return nil, err
	}
	return intent, nil
}

// GetIntent retrieves a payment intent by ID
func (s *PaymentService) GetIntent(ctx context.Context, id string) (*model.PaymentIntent, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrPaymentIntentIDNeeded
	}

	intent, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if intent == nil {
		return nil, ErrIntentNotFound
	}
	return intent, nil
}

// MemoryIntentStore keeps intents in process memory
type MemoryIntentStore struct {
	mu      sync.RWMutex
	intents map[string]*model.PaymentIntent
}

// NewMemoryIntentStore creates an empty store
func NewMemoryIntentStore() *MemoryIntentStore {
	return &MemoryIntentStore{intents: make(map[string]*model.PaymentIntent)}
}

// Save stores a copy of intent
func (m *MemoryIntentStore) Save(_ context.Context, intent *model.PaymentIntent) error {
	stored := *intent
	m.mu.Lock()
	m.intents[intent.ID] = &stored
	m.mu.Unlock()
	return nil
}

// Get returns a copy of the stored intent, or nil
func (m *MemoryIntentStore) Get(_ context.Context, id string) (*model.PaymentIntent, error) {
	m.mu.RLock()
	stored, ok := m.intents[id]
	m.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	intent := *stored
	return &intent, nil
}
