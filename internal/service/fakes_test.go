package service_test

import (
	"context"
	"strconv"
	"sync"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/restaurant-service/internal/domain"
	"github.com/spec-kit/restaurant-service/internal/events"
	"github.com/spec-kit/restaurant-service/internal/repository"
)

type memUserRepo struct {
	mu    sync.Mutex
	seq   int
	users map[string]*domain.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: map[string]*domain.User{}}
}

func (m *memUserRepo) Create(_ context.Context, user *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	user.ID = "user-" + strconv.Itoa(m.seq)
	cp := *user
	m.users[user.ID] = &cp
	return nil
}

func (m *memUserRepo) Update(_ context.Context, user *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	cp := *user
	m.users[user.ID] = &cp
	return nil
}

func (m *memUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if user, ok := m.users[id]; ok {
		cp := *user
		return &cp, nil
	}
	return nil, pgx.ErrNoRows
}

func (m *memUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, user := range m.users {
		if user.Email == email {
			cp := *user
			return &cp, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (m *memUserRepo) List(_ context.Context, limit, offset int) ([]domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.User, 0, len(m.users))
	for _, user := range m.users {
		out = append(out, *user)
	}
	return out, nil
}

func (m *memUserRepo) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(m.users, id)
	return nil
}

type memTokenRepo struct {
	mu     sync.Mutex
	seq    int
	tokens map[string]*domain.Token
}

func newMemTokenRepo() *memTokenRepo {
	return &memTokenRepo{tokens: map[string]*domain.Token{}}
}

func (m *memTokenRepo) Create(_ context.Context, token *domain.Token) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	token.ID = "token-" + strconv.Itoa(m.seq)
	cp := *token
	m.tokens[token.Token] = &cp
	return nil
}

func (m *memTokenRepo) GetByToken(_ context.Context, raw string) (*domain.Token, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if token, ok := m.tokens[raw]; ok {
		cp := *token
		return &cp, nil
	}
	return nil, pgx.ErrNoRows
}

func (m *memTokenRepo) GetByUser(_ context.Context, userID string) (*domain.Token, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, token := range m.tokens {
		if token.UserID == userID {
			cp := *token
			return &cp, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (m *memTokenRepo) Replace(_ context.Context, userID string, token *domain.Token) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for raw, existing := range m.tokens {
		if existing.UserID == userID {
			delete(m.tokens, raw)
		}
	}
	m.seq++
	token.ID = "token-" + strconv.Itoa(m.seq)
	cp := *token
	m.tokens[token.Token] = &cp
	return nil
}

func (m *memTokenRepo) Delete(_ context.Context, raw string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.tokens, raw)
	return nil
}

func (m *memTokenRepo) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.tokens)
}

type memRestaurantRepo struct {
	mu          sync.Mutex
	seq         int
	restaurants map[string]*domain.Restaurant
}

func newMemRestaurantRepo() *memRestaurantRepo {
	return &memRestaurantRepo{restaurants: map[string]*domain.Restaurant{}}
}

func (m *memRestaurantRepo) Create(_ context.Context, restaurant *domain.Restaurant) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	restaurant.ID = "restaurant-" + strconv.Itoa(m.seq)
	cp := *restaurant
	m.restaurants[restaurant.ID] = &cp
	return nil
}

func (m *memRestaurantRepo) Update(_ context.Context, restaurant *domain.Restaurant) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.restaurants[restaurant.ID]; !ok {
		return pgx.ErrNoRows
	}
	cp := *restaurant
	m.restaurants[restaurant.ID] = &cp
	return nil
}

func (m *memRestaurantRepo) GetByID(_ context.Context, id string) (*domain.Restaurant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if restaurant, ok := m.restaurants[id]; ok {
		cp := *restaurant
		return &cp, nil
	}
	return nil, pgx.ErrNoRows
}

func (m *memRestaurantRepo) List(_ context.Context, limit, offset int) ([]domain.Restaurant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Restaurant, 0, len(m.restaurants))
	for _, restaurant := range m.restaurants {
		out = append(out, *restaurant)
	}
	return out, nil
}

func (m *memRestaurantRepo) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.restaurants[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(m.restaurants, id)
	return nil
}

type memOrderRepo struct {
	mu     sync.Mutex
	seq    int
	orders map[string]*domain.Order
}

func newMemOrderRepo() *memOrderRepo {
	return &memOrderRepo{orders: map[string]*domain.Order{}}
}

func (m *memOrderRepo) Create(_ context.Context, order *domain.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	order.ID = "order-" + strconv.Itoa(m.seq)
	cp := *order
	m.orders[order.ID] = &cp
	return nil
}

func (m *memOrderRepo) UpdateStatus(_ context.Context, id string, status domain.OrderStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	order, ok := m.orders[id]
	if !ok {
		return pgx.ErrNoRows
	}
	order.Status = status
	return nil
}

func (m *memOrderRepo) GetByID(_ context.Context, id string) (*domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if order, ok := m.orders[id]; ok {
		cp := *order
		return &cp, nil
	}
	return nil, pgx.ErrNoRows
}

func (m *memOrderRepo) List(_ context.Context, filter repository.OrderFilter) ([]domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Order, 0, len(m.orders))
	for _, order := range m.orders {
		if filter.UserID != "" && order.UserID != filter.UserID {
			continue
		}
		if filter.Status != "" && order.Status != filter.Status {
			continue
		}
		out = append(out, *order)
	}
	return out, nil
}

func (m *memOrderRepo) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.orders[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(m.orders, id)
	return nil
}

type recordingDispatcher struct {
	mu     sync.Mutex
	events []events.Event
}

func (d *recordingDispatcher) Publish(_ context.Context, event events.Event) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, event)
	return nil
}

func (d *recordingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func (d *recordingDispatcher) recorded() []events.Event {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]events.Event{}, d.events...)
}
