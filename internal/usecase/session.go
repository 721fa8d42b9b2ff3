package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/chesuper/engine/internal/cart"
	"github.com/chesuper/engine/internal/domain"
	"github.com/chesuper/engine/internal/listfile"
)

const categoriesCacheKey = "categorias"

// SessionConfig holds tuning for the session coordinator
type SessionConfig struct {
	SearchDebounce time.Duration // delay before a queued search is issued
	RequestTimeout time.Duration // timeout for debounce-issued requests
	CacheTTL       time.Duration // TTL for cached catalog responses
}

// Session owns the per-session state: the cart store, the comparison cache
// with its derived totals, the last applied catalog page and the current
// pricing mode. A mutex serializes user actions; the generation counters
// below guarantee ordering for async responses: a response is applied only
// while its generation is still the latest issued.
type Session struct {
	mu      sync.Mutex
	backend domain.BackendClient
	cache   domain.CacheRepository

	cart      *cart.Store
	results   *ComparisonCache
	derived   *Derived
	usePromos bool

	catalogPage  *domain.ProductPage
	catalogQuery domain.ProductQuery

	searchGen   uint64
	searchTimer *time.Timer
	compareGen  uint64

	lastError string

	debounce time.Duration
	timeout  time.Duration
	cacheTTL time.Duration
}

// NewSession creates a session with its own empty cart and comparison cache.
// cache may be nil to disable catalog response caching.
func NewSession(backend domain.BackendClient, cache domain.CacheRepository, config SessionConfig) *Session {
	debounce := config.SearchDebounce
	if debounce == 0 {
		debounce = 400 * time.Millisecond
	}
	timeout := config.RequestTimeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	cacheTTL := config.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 5 * time.Minute
	}

	return &Session{
		backend:  backend,
		cache:    cache,
		cart:     cart.NewStore(),
		results:  NewComparisonCache(),
		debounce: debounce,
		timeout:  timeout,
		cacheTTL: cacheTTL,
	}
}

// SetQuantity applies a quantity delta to the cart line for an EAN.
// Creating a line requires a nombre; see cart.Store.SetQuantity.
func (s *Session) SetQuantity(ean, nombre, marca string, delta int) (domain.CartLine, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.SetQuantity(ean, nombre, marca, delta)
}

// RemoveItem removes a cart line by EAN
func (s *Session) RemoveItem(ean string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.Remove(ean)
}

// ClearCart empties the cart. The user confirmation for this destructive
// action happens at the delivery boundary, not here.
func (s *Session) ClearCart() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.Clear()
}

// CartTotals returns the cart summary counters
func (s *Session) CartTotals() domain.CartTotals {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Totals()
}

// ImportCart validates a serialized list and atomically replaces the cart.
// On any validation failure the cart is left untouched.
func (s *Session) ImportCart(data []byte) error {
	lines, err := listfile.Parse(data)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.ReplaceAll(lines)
}

// ExportCart serializes the cart lines and returns the dated filename
func (s *Session) ExportCart() ([]byte, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cart.Empty() {
		return nil, "", domain.ErrEmptyCart
	}
	data, err := listfile.Export(s.cart.Lines())
	if err != nil {
		return nil, "", err
	}
	return data, listfile.Filename(time.Now()), nil
}

// Compare snapshots the cart, fetches the comparison and the optimized plan
// in parallel, and replaces the comparison cache wholesale once both have
// completed. Partial results are never rendered: a failure in either request
// leaves the previous cache intact. A compare superseded by a newer one
// never populates the cache, even if its network calls resolve later.
func (s *Session) Compare(ctx context.Context, usePromos bool) error {
	s.mu.Lock()
	if s.cart.Empty() {
		s.mu.Unlock()
		return domain.ErrEmptyCart
	}
	s.compareGen++
	gen := s.compareGen
	req := domain.ComparisonRequest{Items: s.cart.Items(), UsePromos: usePromos}
	s.mu.Unlock()

	var (
		comparison   *domain.ComparisonResult
		optimization *domain.OptimizationResult
		compareErr   error
		optimizeErr  error
		wg           sync.WaitGroup
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		comparison, compareErr = s.backend.Compare(ctx, req)
	}()
	go func() {
		defer wg.Done()
		optimization, optimizeErr = s.backend.Optimize(ctx, req)
	}()
	wg.Wait()

	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.compareGen {
		// superseded by a newer compare; drop this response
		return nil
	}

	if compareErr != nil || optimizeErr != nil {
		err := compareErr
		if err == nil {
			err = optimizeErr
		}
		s.lastError = "Error al conectar con el servidor."
		return fmt.Errorf("%w: %v", domain.ErrBackendFailure, err)
	}

	s.results.Set(comparison, optimization)
	// the server echoes the mode it priced the initial totals with; the
	// first render follows it, later toggles override it locally
	s.usePromos = s.results.InitialPromo()
	s.derived = s.results.Recompute(s.usePromos)
	s.lastError = ""
	return nil
}

// SetPricingMode re-derives all displayed totals and the store ordering
// under the new mode, without contacting the network. No-op while no
// comparison is cached.
func (s *Session) SetPricingMode(usePromos bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.results.Populated() {
		return
	}
	s.usePromos = usePromos
	s.derived = s.results.Recompute(usePromos)
}

// PricingMode returns the currently active pricing mode
func (s *Session) PricingMode() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.usePromos
}

// ShareStore builds the shareable list text for one store using the
// currently active pricing mode
func (s *Session) ShareStore(bandera string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.results.Populated() {
		return "", domain.ErrNoComparison
	}
	entry, ok := s.results.Entry(bandera)
	if !ok {
		return "", domain.ErrUnknownStore
	}
	return BuildShareSummary(entry, s.usePromos), nil
}

// LeaveResults clears the comparison cache when the user navigates away
// from the results view; pricing-mode toggles become no-ops until the next
// compare
func (s *Session) LeaveResults() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results.Clear()
	s.derived = nil
}

// QueueSearch debounces a catalog search: the request is issued only after
// the debounce window passes without another queued search, and its result
// is applied only if no newer search was issued meanwhile.
//
// The generation is taken at queue time, not when the timer fires. Stop on
// an already-fired timer cannot cancel its callback, so a later Search must
// be able to outrank the pending one through the generation alone.
func (s *Session) QueueSearch(query domain.ProductQuery) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.searchTimer != nil {
		s.searchTimer.Stop()
	}
	s.searchGen++
	gen := s.searchGen
	s.searchTimer = time.AfterFunc(s.debounce, func() {
		s.mu.Lock()
		stale := gen != s.searchGen
		s.mu.Unlock()
		if stale {
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()
		_ = s.runSearch(ctx, gen, query)
	})
}

// Search issues a catalog query immediately (category navigation,
// pagination, availability toggle) and applies the page unless a newer
// search supersedes it while in flight
func (s *Session) Search(ctx context.Context, query domain.ProductQuery) error {
	s.mu.Lock()
	if s.searchTimer != nil {
		s.searchTimer.Stop()
		s.searchTimer = nil
	}
	s.searchGen++
	gen := s.searchGen
	s.mu.Unlock()

	return s.runSearch(ctx, gen, query)
}

// runSearch fetches one catalog page and applies it while its generation is
// still current; stale responses are silently dropped
func (s *Session) runSearch(ctx context.Context, gen uint64, query domain.ProductQuery) error {
	page, err := s.fetchPage(ctx, query)

	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.searchGen {
		return nil
	}
	if err != nil {
		s.lastError = "No se pudieron cargar los productos."
		return fmt.Errorf("%w: %v", domain.ErrBackendFailure, err)
	}
	s.catalogPage = page
	s.catalogQuery = query
	s.lastError = ""
	return nil
}

// fetchPage serves a catalog page from the response cache when possible
func (s *Session) fetchPage(ctx context.Context, query domain.ProductQuery) (*domain.ProductPage, error) {
	key := pageCacheKey(query)
	if s.cache != nil {
		if value, err := s.cache.Get(ctx, key); err == nil {
			if page, ok := value.(*domain.ProductPage); ok {
				return page, nil
			}
		}
	}

	page, err := s.backend.SearchProducts(ctx, query)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.Set(ctx, key, page, s.cacheTTL)
	}
	return page, nil
}

// Categories lists the catalog categories, cached between calls
func (s *Session) Categories(ctx context.Context) ([]string, error) {
	if s.cache != nil {
		if value, err := s.cache.Get(ctx, categoriesCacheKey); err == nil {
			if categories, ok := value.([]string); ok {
				return categories, nil
			}
		}
	}

	categories, err := s.backend.Categories(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrBackendFailure, err)
	}
	if s.cache != nil {
		_ = s.cache.Set(ctx, categoriesCacheKey, categories, s.cacheTTL)
	}
	return categories, nil
}

// View derives the complete rendering state from the current session
func (s *Session) View() ViewState {
	s.mu.Lock()
	defer s.mu.Unlock()

	return ViewState{
		Cart: CartView{
			Lines:      s.cart.Lines(),
			Totals:     s.cart.Totals(),
			CanCompare: !s.cart.Empty(),
		},
		Catalog: buildCatalogView(s.catalogPage, s.catalogQuery, s.cart.Quantity),
		Results: s.derived,
		Error:   s.lastError,
	}
}

func pageCacheKey(q domain.ProductQuery) string {
	return fmt.Sprintf("productos:%d:%s:%s:%d:%d", q.Page, q.Query, q.Categoria, q.MinSupermercados, q.Limit)
}
