package service

import (
	"context"
	"sort"
	"sync"

	"github.com/vicriadty/cafe-app-ai/internal/model"
)

// memStore is an in-memory implementation of the repository interfaces used
// to exercise the services without a database.
type memStore struct {
	mu          sync.Mutex
	restaurants map[uint]*model.Restaurant
	categories  map[uint]*model.MenuCategory
	items       map[uint]*model.MenuItem
	orders      map[uint]*model.Order
	nextID      uint

	createOrderErr error
}

func newMemStore() *memStore {
	return &memStore{
		restaurants: make(map[uint]*model.Restaurant),
		categories:  make(map[uint]*model.MenuCategory),
		items:       make(map[uint]*model.MenuItem),
		orders:      make(map[uint]*model.Order),
	}
}

func (s *memStore) id() uint {
	s.nextID++
	return s.nextID
}

// RestaurantRepository

func (s *memStore) Create(_ context.Context, restaurant *model.Restaurant) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	restaurant.ID = s.id()
	s.restaurants[restaurant.ID] = restaurant
	return nil
}

func (s *memStore) GetByID(_ context.Context, id uint) (*model.Restaurant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	restaurant, ok := s.restaurants[id]
	if !ok {
		return nil, nil
	}
	copied := *restaurant
	copied.Categories = nil
	return &copied, nil
}

func (s *memStore) GetByIDWithMenu(ctx context.Context, id uint) (*model.Restaurant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	restaurant, ok := s.restaurants[id]
	if !ok {
		return nil, nil
	}
	return s.withMenu(restaurant), nil
}

func (s *memStore) GetBySlugWithMenu(_ context.Context, slug string) (*model.Restaurant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, restaurant := range s.restaurants {
		if restaurant.Slug == slug {
			return s.withMenu(restaurant), nil
		}
	}
	return nil, nil
}

func (s *memStore) withMenu(restaurant *model.Restaurant) *model.Restaurant {
	copied := *restaurant
	copied.Categories = nil
	var categories []model.MenuCategory
	for _, category := range s.categories {
		if category.RestaurantID == restaurant.ID {
			withItems := *category
			withItems.Items = nil
			for _, item := range s.items {
				if item.CategoryID == category.ID {
					withItems.Items = append(withItems.Items, *item)
				}
			}
			sortItems(withItems.Items)
			categories = append(categories, withItems)
		}
	}
	sortCategories(categories)
	copied.Categories = categories
	return &copied
}

func (s *memStore) ListActive(_ context.Context) ([]model.Restaurant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []model.Restaurant
	for _, restaurant := range s.restaurants {
		if restaurant.Active {
			result = append(result, *restaurant)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID > result[j].ID })
	return result, nil
}

func (s *memStore) ListByOwner(_ context.Context, ownerID uint) ([]model.Restaurant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []model.Restaurant
	for _, restaurant := range s.restaurants {
		if restaurant.OwnerID == ownerID {
			result = append(result, *s.withMenu(restaurant))
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID > result[j].ID })
	return result, nil
}

func (s *memStore) CountBySlug(_ context.Context, slug string, excludeID uint) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var count int64
	for _, restaurant := range s.restaurants {
		if restaurant.Slug == slug && restaurant.ID != excludeID {
			count++
		}
	}
	return count, nil
}

func (s *memStore) Update(_ context.Context, restaurant *model.Restaurant) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *restaurant
	copied.Categories = nil
	s.restaurants[restaurant.ID] = &copied
	return nil
}

func (s *memStore) Delete(_ context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.restaurants, id)
	for categoryID, category := range s.categories {
		if category.RestaurantID == id {
			delete(s.categories, categoryID)
		}
	}
	for itemID, item := range s.items {
		if item.RestaurantID == id {
			delete(s.items, itemID)
		}
	}
	for orderID, order := range s.orders {
		if order.RestaurantID == id {
			delete(s.orders, orderID)
		}
	}
	return nil
}

// MenuRepository

func (s *memStore) CreateCategory(_ context.Context, category *model.MenuCategory) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	category.ID = s.id()
	s.categories[category.ID] = category
	return nil
}

func (s *memStore) GetCategory(_ context.Context, id uint) (*model.MenuCategory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	category, ok := s.categories[id]
	if !ok {
		return nil, nil
	}
	copied := *category
	return &copied, nil
}

func (s *memStore) UpdateCategory(_ context.Context, category *model.MenuCategory) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *category
	s.categories[category.ID] = &copied
	return nil
}

func (s *memStore) DeleteCategory(_ context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.categories, id)
	for itemID, item := range s.items {
		if item.CategoryID == id {
			delete(s.items, itemID)
		}
	}
	return nil
}

func (s *memStore) CreateItem(_ context.Context, item *model.MenuItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	item.ID = s.id()
	s.items[item.ID] = item
	return nil
}

func (s *memStore) GetItem(_ context.Context, id uint) (*model.MenuItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.items[id]
	if !ok {
		return nil, nil
	}
	copied := *item
	return &copied, nil
}

func (s *memStore) GetItemsByIDs(_ context.Context, ids []uint) ([]model.MenuItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []model.MenuItem
	seen := make(map[uint]bool)
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		if item, ok := s.items[id]; ok {
			result = append(result, *item)
		}
	}
	return result, nil
}

func (s *memStore) UpdateItem(_ context.Context, item *model.MenuItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *item
	s.items[item.ID] = &copied
	return nil
}

func (s *memStore) DeleteItem(_ context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, id)
	return nil
}

func (s *memStore) ListByRestaurant(_ context.Context, restaurantID uint, includeUnavailable bool) ([]model.MenuCategory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var categories []model.MenuCategory
	for _, category := range s.categories {
		if category.RestaurantID != restaurantID {
			continue
		}
		withItems := *category
		withItems.Items = nil
		for _, item := range s.items {
			if item.CategoryID == category.ID && (includeUnavailable || item.Available) {
				withItems.Items = append(withItems.Items, *item)
			}
		}
		sortItems(withItems.Items)
		categories = append(categories, withItems)
	}
	sortCategories(categories)
	return categories, nil
}

// OrderRepository

func (s *memStore) CreateOrder(ctx context.Context, order *model.Order) error {
	return s.createOrder(ctx, order)
}

func (s *memStore) createOrder(_ context.Context, order *model.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.createOrderErr != nil {
		return s.createOrderErr
	}
	order.ID = s.id()
	for i := range order.Items {
		order.Items[i].ID = s.id()
		order.Items[i].OrderID = order.ID
	}
	copied := *order
	s.orders[order.ID] = &copied
	return nil
}

func (s *memStore) GetOrder(_ context.Context, id uint) (*model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	order, ok := s.orders[id]
	if !ok {
		return nil, nil
	}
	copied := *order
	return &copied, nil
}

func (s *memStore) UpdateOrder(_ context.Context, order *model.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *order
	s.orders[order.ID] = &copied
	return nil
}

func (s *memStore) ListByCustomer(_ context.Context, customerID uint, status model.OrderStatus, page, limit int) ([]model.Order, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listOrders(func(o *model.Order) bool { return o.CustomerID == customerID }, status, page, limit)
}

func (s *memStore) ListByRestaurantOrders(_ context.Context, restaurantID uint, status model.OrderStatus, page, limit int) ([]model.Order, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listOrders(func(o *model.Order) bool { return o.RestaurantID == restaurantID }, status, page, limit)
}

func (s *memStore) listOrders(match func(*model.Order) bool, status model.OrderStatus, page, limit int) ([]model.Order, int64, error) {
	var all []model.Order
	for _, order := range s.orders {
		if match(order) && (status == "" || order.Status == status) {
			all = append(all, *order)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })
	total := int64(len(all))
	start := (page - 1) * limit
	if start >= len(all) {
		return nil, total, nil
	}
	end := start + limit
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}

func sortCategories(categories []model.MenuCategory) {
	sort.Slice(categories, func(i, j int) bool {
		if categories[i].DisplayOrder != categories[j].DisplayOrder {
			return categories[i].DisplayOrder < categories[j].DisplayOrder
		}
		return categories[i].ID < categories[j].ID
	})
}

func sortItems(items []model.MenuItem) {
	sort.Slice(items, func(i, j int) bool {
		if items[i].DisplayOrder != items[j].DisplayOrder {
			return items[i].DisplayOrder < items[j].DisplayOrder
		}
		return items[i].ID < items[j].ID
	})
}

// orderStore adapts memStore to the OrderRepository interface, whose method
// names collide with RestaurantRepository's.
type orderStore struct {
	*memStore
}

func (s orderStore) Create(ctx context.Context, order *model.Order) error {
	return s.memStore.createOrder(ctx, order)
}

func (s orderStore) GetByID(ctx context.Context, id uint) (*model.Order, error) {
	return s.memStore.GetOrder(ctx, id)
}

func (s orderStore) Update(ctx context.Context, order *model.Order) error {
	return s.memStore.UpdateOrder(ctx, order)
}

func (s orderStore) ListByRestaurant(ctx context.Context, restaurantID uint, status model.OrderStatus, page, limit int) ([]model.Order, int64, error) {
	return s.memStore.ListByRestaurantOrders(ctx, restaurantID, status, page, limit)
}

// fakePublisher records emitted events.
type fakePublisher struct {
	created []uint
	changes []string
}

func (p *fakePublisher) OrderCreated(_ context.Context, order *model.Order) {
	p.created = append(p.created, order.ID)
}

func (p *fakePublisher) OrderStatusChanged(_ context.Context, order *model.Order, previous model.OrderStatus) {
	p.changes = append(p.changes, string(previous)+"->"+string(order.Status))
}

// fakeGenerator returns a canned reply or error and records the prompt.
type fakeGenerator struct {
	reply      string
	err        error
	lastPrompt string
}

func (g *fakeGenerator) Generate(_ context.Context, prompt string) (string, error) {
	g.lastPrompt = prompt
	if g.err != nil {
		return "", g.err
	}
	return g.reply, nil
}

// fakeCache is a map-backed DirectoryCache.
type fakeCache struct {
	entries map[string]*model.Restaurant
	hits    int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string]*model.Restaurant)}
}

func (c *fakeCache) GetBySlug(_ context.Context, slug string) (*model.Restaurant, bool) {
	restaurant, ok := c.entries[slug]
	if ok {
		c.hits++
	}
	return restaurant, ok
}

func (c *fakeCache) SetBySlug(_ context.Context, restaurant *model.Restaurant) {
	c.entries[restaurant.Slug] = restaurant
}

func (c *fakeCache) Invalidate(_ context.Context, slugs ...string) {
	for _, slug := range slugs {
		delete(c.entries, slug)
	}
}
