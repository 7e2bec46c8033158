package service

import (
	"fmt"
	"sort"

	"github.com/modatienda/boutique_api/internal/models"
)

// Hand-written in-memory fakes shared by the service tests. They implement
// the narrow store interfaces the services consume.

type fakeProductStore struct {
	products map[int64]*models.Product

	stockUpdates        map[int64]int
	monthlySalesUpdates map[int64]int
	failStockUpdateFor  int64
}

func newFakeProductStore(products ...*models.Product) *fakeProductStore {
	s := &fakeProductStore{
		products:            make(map[int64]*models.Product),
		stockUpdates:        make(map[int64]int),
		monthlySalesUpdates: make(map[int64]int),
	}
	for _, p := range products {
		s.products[p.ID] = p
	}
	return s
}

func (s *fakeProductStore) GetByID(id int64) (*models.Product, error) {
	p, ok := s.products[id]
	if !ok {
		return nil, fmt.Errorf("product %d not found", id)
	}
	cp := *p
	return &cp, nil
}

func (s *fakeProductStore) UpdateStock(id int64, quantity int) error {
	if s.failStockUpdateFor != 0 && s.failStockUpdateFor == id {
		return fmt.Errorf("stock update rejected for product %d", id)
	}
	p, ok := s.products[id]
	if !ok {
		return fmt.Errorf("product %d not found", id)
	}
	p.Quantity = quantity
	s.stockUpdates[id] = quantity
	return nil
}

func (s *fakeProductStore) UpdateMonthlySales(id int64, monthlySales int) error {
	p, ok := s.products[id]
	if !ok {
		return fmt.Errorf("product %d not found", id)
	}
	p.MonthlySales = monthlySales
	s.monthlySalesUpdates[id] = monthlySales
	return nil
}

// fakeCatalogStore extends fakeProductStore to the full catalog surface.
type fakeCatalogStore struct {
	*fakeProductStore
}

func newFakeCatalogStore(products ...*models.Product) *fakeCatalogStore {
	return &fakeCatalogStore{fakeProductStore: newFakeProductStore(products...)}
}

func (s *fakeCatalogStore) GetAll(filter models.ProductFilter) ([]models.Product, error) {
	var out []models.Product
	for _, p := range s.products {
		out = append(out, *p)
	}
	return out, nil
}

func (s *fakeCatalogStore) GetAllPaged(filter models.ProductFilter, page, limit int) ([]models.Product, int, error) {
	all, err := s.GetAll(filter)
	return all, len(all), err
}

func (s *fakeCatalogStore) ExistsName(name string, excludeID int64) (bool, error) {
	for _, p := range s.products {
		if p.Name == name && p.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeCatalogStore) ExistsReference(reference string, excludeID int64) (bool, error) {
	if reference == "" {
		return false, nil
	}
	for _, p := range s.products {
		if p.Reference == reference && p.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeCatalogStore) Create(p *models.Product) error {
	var maxID int64
	for id := range s.products {
		if id > maxID {
			maxID = id
		}
	}
	p.ID = maxID + 1
	cp := *p
	s.products[p.ID] = &cp
	return nil
}

func (s *fakeCatalogStore) Update(p *models.Product) error {
	if _, ok := s.products[p.ID]; !ok {
		return fmt.Errorf("product %d not found", p.ID)
	}
	cp := *p
	s.products[p.ID] = &cp
	return nil
}

func (s *fakeCatalogStore) Delete(id int64) error {
	if _, ok := s.products[id]; !ok {
		return fmt.Errorf("product %d not found", id)
	}
	delete(s.products, id)
	return nil
}

func (s *fakeCatalogStore) TopSellers(limit int) ([]models.Product, error) {
	all, _ := s.GetAll(models.ProductFilter{})
	sort.Slice(all, func(a, b int) bool { return all[a].MonthlySales > all[b].MonthlySales })
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (s *fakeCatalogStore) LowRotation(threshold float64) ([]models.Product, error) {
	var out []models.Product
	for _, p := range s.products {
		if p.MonthlyRotation < threshold {
			out = append(out, *p)
		}
	}
	return out, nil
}

type fakeCartStore struct {
	items  map[int64]*models.CartItem
	nextID int64
}

func newFakeCartStore(items ...*models.CartItem) *fakeCartStore {
	s := &fakeCartStore{items: make(map[int64]*models.CartItem), nextID: 1}
	for _, it := range items {
		if it.ID == 0 {
			it.ID = s.nextID
		}
		if it.ID >= s.nextID {
			s.nextID = it.ID + 1
		}
		s.items[it.ID] = it
	}
	return s
}

func (s *fakeCartStore) GetByUser(userID string) ([]models.CartItem, error) {
	var out []models.CartItem
	for _, it := range s.items {
		if it.UserID == userID {
			out = append(out, *it)
		}
	}
	return out, nil
}

func (s *fakeCartStore) GetItem(userID string, productID int64) (*models.CartItem, error) {
	for _, it := range s.items {
		if it.UserID == userID && it.ProductID == productID {
			cp := *it
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *fakeCartStore) GetByID(itemID int64) (*models.CartItem, error) {
	it, ok := s.items[itemID]
	if !ok {
		return nil, nil
	}
	cp := *it
	return &cp, nil
}

func (s *fakeCartStore) Insert(item *models.CartItem) error {
	item.ID = s.nextID
	s.nextID++
	cp := *item
	s.items[item.ID] = &cp
	return nil
}

func (s *fakeCartStore) UpdateQuantity(itemID int64, quantity int) error {
	it, ok := s.items[itemID]
	if !ok {
		return fmt.Errorf("cart item %d not found", itemID)
	}
	it.Quantity = quantity
	return nil
}

func (s *fakeCartStore) Delete(itemID int64) error {
	delete(s.items, itemID)
	return nil
}

func (s *fakeCartStore) DeleteByUser(userID string) error {
	for id, it := range s.items {
		if it.UserID == userID {
			delete(s.items, id)
		}
	}
	return nil
}

type fakeSaleStore struct {
	sales     []*models.Sale
	lineItems []models.SaleLineItem
	nextID    int64

	failCreateLineItems bool
}

func newFakeSaleStore() *fakeSaleStore {
	return &fakeSaleStore{nextID: 1}
}

func (s *fakeSaleStore) Create(sale *models.Sale) error {
	sale.ID = s.nextID
	s.nextID++
	cp := *sale
	s.sales = append(s.sales, &cp)
	return nil
}

func (s *fakeSaleStore) CreateLineItems(items []models.SaleLineItem) error {
	if s.failCreateLineItems {
		return fmt.Errorf("line item insert rejected")
	}
	s.lineItems = append(s.lineItems, items...)
	return nil
}

func (s *fakeSaleStore) List(filter models.SaleFilter) ([]models.Sale, error) {
	var out []models.Sale
	for _, sale := range s.sales {
		if !filter.From.IsZero() && sale.SoldAt.Before(filter.From) {
			continue
		}
		if !filter.To.IsZero() && sale.SoldAt.After(filter.To) {
			continue
		}
		out = append(out, *sale)
	}
	return out, nil
}

func (s *fakeSaleStore) ListByUser(userID string) ([]models.Sale, error) {
	var out []models.Sale
	for _, sale := range s.sales {
		if sale.UserID == userID {
			out = append(out, *sale)
		}
	}
	return out, nil
}

type fakeAuditLog struct {
	entries []models.LogEntry
	fail    bool
}

func (l *fakeAuditLog) Insert(logType, message string) error {
	if l.fail {
		return fmt.Errorf("audit insert rejected")
	}
	l.entries = append(l.entries, models.LogEntry{Type: logType, Message: message})
	return nil
}

type fakeKPIStore struct {
	snapshots []*models.KPISnapshot
	updates   int
	nextID    int64
}

func newFakeKPIStore() *fakeKPIStore {
	return &fakeKPIStore{nextID: 1}
}

func (s *fakeKPIStore) GetLatest() (*models.KPISnapshot, error) {
	if len(s.snapshots) == 0 {
		return nil, nil
	}
	cp := *s.snapshots[len(s.snapshots)-1]
	return &cp, nil
}

func (s *fakeKPIStore) Insert(snap *models.KPISnapshot) error {
	snap.ID = s.nextID
	s.nextID++
	cp := *snap
	s.snapshots = append(s.snapshots, &cp)
	return nil
}

func (s *fakeKPIStore) Update(snap *models.KPISnapshot) error {
	for i := range s.snapshots {
		if s.snapshots[i].ID == snap.ID {
			cp := *snap
			s.snapshots[i] = &cp
			s.updates++
			return nil
		}
	}
	return fmt.Errorf("snapshot %d not found", snap.ID)
}

type fakeCredentialStore struct {
	creds map[string]*models.Credential // by id

	failCreate bool
	failDelete bool
	deleted    []string
}

func newFakeCredentialStore() *fakeCredentialStore {
	return &fakeCredentialStore{creds: make(map[string]*models.Credential)}
}

func (s *fakeCredentialStore) Create(c *models.Credential) error {
	if s.failCreate {
		return fmt.Errorf("credential insert rejected")
	}
	cp := *c
	s.creds[c.ID] = &cp
	return nil
}

func (s *fakeCredentialStore) GetByEmail(email string) (*models.Credential, error) {
	for _, c := range s.creds {
		if c.Email == email {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *fakeCredentialStore) Delete(id string) error {
	s.deleted = append(s.deleted, id)
	if s.failDelete {
		return fmt.Errorf("credential delete rejected")
	}
	delete(s.creds, id)
	return nil
}

type fakeProfileStore struct {
	users map[string]*models.User

	failCreate bool
}

func newFakeProfileStore() *fakeProfileStore {
	return &fakeProfileStore{users: make(map[string]*models.User)}
}

func (s *fakeProfileStore) Create(u *models.User) error {
	if s.failCreate {
		return fmt.Errorf("profile insert rejected")
	}
	cp := *u
	s.users[u.ID] = &cp
	return nil
}

func (s *fakeProfileStore) GetByID(id string) (*models.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, fmt.Errorf("user %s not found", id)
	}
	cp := *u
	return &cp, nil
}

func (s *fakeProfileStore) ListAll() ([]models.User, error) {
	var out []models.User
	for _, u := range s.users {
		out = append(out, *u)
	}
	return out, nil
}

func (s *fakeProfileStore) ListByRole(role models.Role) ([]models.User, error) {
	var out []models.User
	for _, u := range s.users {
		if u.Role == role {
			out = append(out, *u)
		}
	}
	return out, nil
}
