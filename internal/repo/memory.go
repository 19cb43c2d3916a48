package repo

import (
	"sync"
	"time"

	"github.com/rogerio-castellano/medisync/internal/models"
)

// InMemoryDB is the shared state behind the in-memory repositories. Tests seed it through
// the Add* helpers; Now controls the clock used for record dates.
type InMemoryDB struct {
	mu sync.Mutex

	Now func() time.Time

	categories    []models.Category
	units         []models.Unit
	products      []models.Product
	purchases     []models.Purchase
	orders        []models.Order
	transactions  []models.Transaction
	notifications []models.Notification
	users         []models.User
}

func NewInMemoryDB() *InMemoryDB {
	return &InMemoryDB{Now: time.Now}
}

func (m *InMemoryDB) AddCategory(name string) models.Category {
	m.mu.Lock()
	defer m.mu.Unlock()

	c := models.Category{ID: len(m.categories) + 1, Name: name, CreatedAt: dateOf(m.Now())}
	m.categories = append(m.categories, c)
	return c
}

func (m *InMemoryDB) AddUnit(name string) models.Unit {
	m.mu.Lock()
	defer m.mu.Unlock()

	u := models.Unit{ID: len(m.units) + 1, Name: name}
	m.units = append(m.units, u)
	return u
}

// AddProduct stores p as given, assigning the next id.
func (m *InMemoryDB) AddProduct(p models.Product) models.Product {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.insertProduct(p)
}

func (m *InMemoryDB) insertProduct(p models.Product) models.Product {
	p.ID = len(m.products) + 1
	if p.Status == "" {
		p.Status = models.ProductStatusActive
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = dateOf(m.Now())
	}
	m.products = append(m.products, p)
	return p
}

// AddPurchase stores a purchase row without touching product stock.
func (m *InMemoryDB) AddPurchase(p models.Purchase) models.Purchase {
	m.mu.Lock()
	defer m.mu.Unlock()

	p.ID = len(m.purchases) + 1
	if p.Status == "" {
		p.Status = models.PurchaseStatusActive
	}
	if p.PurchaseDate.IsZero() {
		p.PurchaseDate = dateOf(m.Now())
	}
	m.purchases = append(m.purchases, p)
	return p
}

// AddOrder stores an order row without touching product stock.
func (m *InMemoryDB) AddOrder(o models.Order) models.Order {
	m.mu.Lock()
	defer m.mu.Unlock()

	o.ID = len(m.orders) + 1
	if o.OrderDate.IsZero() {
		o.OrderDate = dateOf(m.Now())
	}
	m.orders = append(m.orders, o)
	return o
}

func (m *InMemoryDB) AddNotification(n models.Notification) models.Notification {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.insertNotification(n)
}

func (m *InMemoryDB) insertNotification(n models.Notification) models.Notification {
	n.ID = len(m.notifications) + 1
	if n.CreatedAt.IsZero() {
		n.CreatedAt = m.Now()
	}
	m.notifications = append(m.notifications, n)
	return n
}

func (m *InMemoryDB) productIndex(id int) int {
	for i, p := range m.products {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func (m *InMemoryDB) productName(id int) string {
	if i := m.productIndex(id); i >= 0 {
		return m.products[i].Name
	}
	return ""
}

// adjustStock applies delta to the product, floors it at zero and recomputes the status.
func (m *InMemoryDB) adjustStock(id, delta, threshold int) (models.Product, error) {
	i := m.productIndex(id)
	if i < 0 {
		return models.Product{}, ErrProductNotFound
	}
	p := &m.products[i]
	p.StockQuantity = max(p.StockQuantity+delta, 0)
	p.StockStatus = models.StockStatusFor(p.StockQuantity, threshold)
	return *p, nil
}
