package application

import (
	"context"
	"fmt"
	"sync"
	"time"

	"giftwrap-admin-layer/internal/domain"
)

const (
	testShop      = "gifts.myshopify.com"
	testProductID = "gid://shopify/Product/1001"
	testVariantID = "gid://shopify/ProductVariant/2001"
)

// fakeCatalog is an in-memory CatalogClient. Calls may arrive concurrently.
type fakeCatalog struct {
	mu    sync.Mutex
	calls map[string]int

	createErr  error
	publishErr error
	variantErr error
	titleErr   error
	priceErr   error
	deleteErr  error
	getErr     error

	createdTitle   string
	createdStatus  domain.ProductStatus
	updatedTitle   string
	pricedVariant  string
	price          int64
	currentVariant string
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{calls: map[string]int{}, currentVariant: testVariantID}
}

func (f *fakeCatalog) record(op string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[op]++
}

func (f *fakeCatalog) count(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[op]
}

func (f *fakeCatalog) CreateProduct(_ context.Context, title string, status domain.ProductStatus) (*domain.Product, error) {
	f.record("create")
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.mu.Lock()
	f.createdTitle, f.createdStatus = title, status
	f.mu.Unlock()
	return &domain.Product{ID: testProductID, Title: title, Status: status}, nil
}

func (f *fakeCatalog) PublishToStorefront(context.Context, string) error {
	f.record("publish")
	return f.publishErr
}

func (f *fakeCatalog) GetFirstVariant(context.Context, string) (*domain.Variant, error) {
	f.record("variant")
	if f.variantErr != nil {
		return nil, f.variantErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return &domain.Variant{ID: f.currentVariant, Price: "20.00"}, nil
}

func (f *fakeCatalog) UpdateProductTitle(_ context.Context, productID string, title string) (*domain.Product, error) {
	f.record("title")
	if f.titleErr != nil {
		return nil, f.titleErr
	}
	f.mu.Lock()
	f.updatedTitle = title
	f.mu.Unlock()
	return &domain.Product{ID: productID, Title: title, Status: domain.ProductStatusActive}, nil
}

func (f *fakeCatalog) UpdateVariantPrice(_ context.Context, _ string, variantID string, price int64) (*domain.Variant, error) {
	f.record("price")
	if f.priceErr != nil {
		return nil, f.priceErr
	}
	f.mu.Lock()
	f.pricedVariant, f.price = variantID, price
	f.mu.Unlock()
	return &domain.Variant{ID: variantID, Price: domain.FormatMinorUnits(price)}, nil
}

func (f *fakeCatalog) DeleteProduct(_ context.Context, productID string) (string, error) {
	f.record("delete")
	if f.deleteErr != nil {
		return "", f.deleteErr
	}
	return productID, nil
}

func (f *fakeCatalog) GetProduct(_ context.Context, productID string) (*domain.Product, error) {
	f.record("get")
	if f.getErr != nil {
		return nil, f.getErr
	}
	return &domain.Product{ID: productID, Title: "Gift Wrap", Status: domain.ProductStatusActive}, nil
}

// fakeLinkRepo is an in-memory ProductLinkRepository
type fakeLinkRepo struct {
	mu      sync.Mutex
	links   map[string]*domain.ProductLink
	creates int
	deletes int

	getErr    error
	createErr error
	// raceWinner is stored by Create, which then fails with a duplicate key error
	raceWinner *domain.ProductLink
}

func newFakeLinkRepo() *fakeLinkRepo {
	return &fakeLinkRepo{links: map[string]*domain.ProductLink{}}
}

func (r *fakeLinkRepo) GetByShop(_ context.Context, shop string) (*domain.ProductLink, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.getErr != nil {
		return nil, r.getErr
	}
	link, ok := r.links[shop]
	if !ok {
		return nil, nil
	}
	cp := *link
	return &cp, nil
}

func (r *fakeLinkRepo) Create(_ context.Context, link *domain.ProductLink) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.raceWinner != nil {
		r.links[link.Shop] = r.raceWinner
		return domain.NewPersistenceError("product_link.create", fmt.Errorf("failed to insert product link: %w", domain.ErrAlreadyExists))
	}
	if r.createErr != nil {
		return r.createErr
	}
	if _, ok := r.links[link.Shop]; ok {
		return domain.NewPersistenceError("product_link.create", domain.ErrAlreadyExists)
	}
	r.creates++
	link.ID = fmt.Sprintf("link-%d", r.creates)
	link.CreatedAt = time.Now()
	cp := *link
	r.links[link.Shop] = &cp
	return nil
}

func (r *fakeLinkRepo) DeleteByShop(_ context.Context, shop string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.links[shop]; !ok {
		return domain.NewNotFoundError("product_link.delete", fmt.Errorf("no product link for shop %s", shop))
	}
	r.deletes++
	delete(r.links, shop)
	return nil
}

func (r *fakeLinkRepo) seed(link *domain.ProductLink) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.links[link.Shop] = link
}

func (r *fakeLinkRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.links)
}

// fakeSettingsRepo is an in-memory SettingsRepository
type fakeSettingsRepo struct {
	settings map[string]*domain.Settings
	gets     int
	creates  int
	updates  int
	getErr   error
	// afterGet runs once the record has been read
	afterGet func()
}

func newFakeSettingsRepo() *fakeSettingsRepo {
	return &fakeSettingsRepo{settings: map[string]*domain.Settings{}}
}

func (r *fakeSettingsRepo) GetByShop(_ context.Context, shop string) (*domain.Settings, error) {
	r.gets++
	if r.getErr != nil {
		return nil, r.getErr
	}
	s, ok := r.settings[shop]
	if !ok {
		return nil, nil
	}
	cp := *s
	if hook := r.afterGet; hook != nil {
		r.afterGet = nil
		hook()
	}
	return &cp, nil
}

func (r *fakeSettingsRepo) Create(_ context.Context, s *domain.Settings) error {
	if _, ok := r.settings[s.Shop]; ok {
		return domain.NewPersistenceError("settings.create", domain.ErrAlreadyExists)
	}
	r.creates++
	s.ID = fmt.Sprintf("settings-%d", r.creates)
	cp := *s
	r.settings[s.Shop] = &cp
	return nil
}

func (r *fakeSettingsRepo) Update(_ context.Context, s *domain.Settings) error {
	existing, ok := r.settings[s.Shop]
	if !ok || existing.ID != s.ID {
		return domain.NewNotFoundError("settings.update", fmt.Errorf("settings %s not found", s.ID))
	}
	r.updates++
	cp := *s
	r.settings[s.Shop] = &cp
	return nil
}

func (r *fakeSettingsRepo) DeleteByShop(_ context.Context, shop string) error {
	if _, ok := r.settings[shop]; !ok {
		return domain.NewNotFoundError("settings.delete", fmt.Errorf("no settings for shop %s", shop))
	}
	delete(r.settings, shop)
	return nil
}

// fakeCache is an in-memory GiftWrapCache with the same generation guard as the Redis one
type fakeCache struct {
	views         map[string]*domain.GiftWrapView
	generations   map[string]int64
	getErr        error
	sets          int
	invalidations int
}

func newFakeCache() *fakeCache {
	return &fakeCache{views: map[string]*domain.GiftWrapView{}, generations: map[string]int64{}}
}

func (c *fakeCache) Generation(_ context.Context, shop string) (int64, error) {
	return c.generations[shop], nil
}

func (c *fakeCache) Get(_ context.Context, shop string) (*domain.GiftWrapView, bool, error) {
	if c.getErr != nil {
		return nil, false, c.getErr
	}
	view, ok := c.views[shop]
	return view, ok, nil
}

func (c *fakeCache) Set(_ context.Context, shop string, generation int64, view *domain.GiftWrapView) (bool, error) {
	if c.generations[shop] != generation {
		return false, nil
	}
	c.sets++
	c.views[shop] = view
	return true, nil
}

func (c *fakeCache) Invalidate(_ context.Context, shop string) error {
	c.invalidations++
	c.generations[shop]++
	delete(c.views, shop)
	return nil
}

// fakeMetrics records workflow outcomes as "workflow/outcome"
type fakeMetrics struct {
	mu       sync.Mutex
	outcomes []string
}

func (m *fakeMetrics) RecordWorkflow(workflow string, outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.outcomes = append(m.outcomes, workflow+"/"+outcome)
}

func (m *fakeMetrics) recorded() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.outcomes...)
}

func int64Ptr(v int64) *int64 { return &v }

func boolPtr(v bool) *bool { return &v }
