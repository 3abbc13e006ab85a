package usecase

import (
	"context"
	"io"
	"property-catalog/internal/contextkeys"
	"property-catalog/internal/core/apierr"
	"property-catalog/internal/core/domain"
	"property-catalog/internal/core/port"
	"property-catalog/pkg/debounce"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// DefaultQuietPeriod - пауза после последнего изменения фильтра перед перезагрузкой.
const DefaultQuietPeriod = 500 * time.Millisecond

const (
	MsgPropertyCreated = "Property created successfully"
	MsgPropertyUpdated = "Property updated successfully"
	MsgPropertyDeleted = "Property deleted successfully"
	MsgImageUploaded   = "Image uploaded successfully"
)

// ControllerOptions - настройки CatalogController.
type ControllerOptions struct {
	QuietPeriod time.Duration
	Logger      port.LoggerPort
	// Validator проверяет форму создания до отправки. nil - без проверки.
	Validator port.InputValidatorPort
	OnSuccess func(message string)
	OnError   func(err *apierr.APIError)
}

// CatalogController владеет состоянием каталога в памяти:
// списком объектов, справочником категорий, фильтром и выбранным объектом.
// Внешний код читает состояние только через Snapshot.
type CatalogController struct {
	api       port.PropertyAPIPort
	validator port.InputValidatorPort
	logger    port.LoggerPort
	debouncer *debounce.Debouncer
	quiet     time.Duration
	onSuccess func(string)
	onError   func(*apierr.APIError)

	mu          sync.Mutex
	baseCtx     context.Context
	properties  []domain.Property
	categories  []domain.Category
	filter      domain.PropertyFilter
	selected    *domain.Property
	activeLoads int
	submitting  int
	// loadSeq - номер последней запущенной загрузки; ответы старых загрузок отбрасываются.
	loadSeq uint64
}

var _ port.CatalogUseCase = (*CatalogController)(nil)

func NewCatalogController(api port.PropertyAPIPort, opts ControllerOptions) *CatalogController {
	if opts.QuietPeriod <= 0 {
		opts.QuietPeriod = DefaultQuietPeriod
	}
	logger := opts.Logger
	if logger == nil {
		logger = contextkeys.NoopLogger{}
	}
	return &CatalogController{
		api:        api,
		validator:  opts.Validator,
		logger:     logger.WithFields(port.Fields{"component": "CatalogController"}),
		debouncer:  debounce.New(),
		quiet:      opts.QuietPeriod,
		onSuccess:  opts.OnSuccess,
		onError:    opts.OnError,
		baseCtx:    context.Background(),
		properties: []domain.Property{},
		categories: []domain.Category{},
	}
}

// Mount запоминает контекст контроллера и сразу загружает данные без задержки.
func (c *CatalogController) Mount(ctx context.Context) {
	c.mu.Lock()
	c.baseCtx = ctx
	c.mu.Unlock()

	c.logger.Info("Catalog mounted, loading initial data", nil)
	c.load(ctx)
}

// SetFilter сохраняет фильтр и откладывает перезагрузку на QuietPeriod.
// Повторный вызов до истечения паузы перезапускает отсчет.
func (c *CatalogController) SetFilter(filter domain.PropertyFilter) {
	c.mu.Lock()
	c.filter = filter.Clone()
	c.mu.Unlock()

	c.logger.Debug("Filter changed, scheduling reload", port.Fields{"quiet_period_ms": c.quiet.Milliseconds()})
	c.debouncer.Schedule(func() {
		c.load(c.context())
	}, c.quiet)
}

// ResetFilter снимает все ограничения фильтра. Перезагрузка тоже отложенная.
func (c *CatalogController) ResetFilter() {
	c.SetFilter(domain.PropertyFilter{})
}

// Refresh перезагружает данные немедленно, отменяя отложенную перезагрузку.
func (c *CatalogController) Refresh(ctx context.Context) {
	c.debouncer.CancelPending()
	c.load(c.withLogger(ctx))
}

// Close отменяет отложенную перезагрузку.
func (c *CatalogController) Close() {
	c.debouncer.CancelPending()
}

// load загружает объекты и, если справочник пуст, категории - параллельно.
// Ошибка не трогает текущее состояние и уходит только в OnError.
func (c *CatalogController) load(ctx context.Context) {
	c.mu.Lock()
	c.loadSeq++
	seq := c.loadSeq
	filter := c.filter.Clone()
	needCategories := len(c.categories) == 0
	c.activeLoads++
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.activeLoads--
		c.mu.Unlock()
	}()

	loadLogger := c.logger.WithFields(port.Fields{"load_seq": seq})
	loadLogger.Debug("Loading catalog", port.Fields{"with_categories": needCategories})

	var (
		g          errgroup.Group
		properties []domain.Property
		categories []domain.Category
	)
	g.Go(func() error {
		var err error
		properties, err = c.api.GetProperties(ctx, filter)
		return err
	})
	if needCategories {
		g.Go(func() error {
			var err error
			categories, err = c.api.GetCategories(ctx)
			return err
		})
	}

	err := g.Wait()

	c.mu.Lock()
	if latest := c.loadSeq; seq != latest {
		c.mu.Unlock()
		fields := port.Fields{"latest_seq": latest}
		if err != nil {
			fields["error"] = err.Error()
		}
		loadLogger.Debug("Discarding stale load response", fields)
		return
	}
	if err != nil {
		c.mu.Unlock()
		apiErr := apierr.Parse(err)
		loadLogger.Error("Failed to load catalog, keeping current data", apiErr, nil)
		c.reportError(apiErr)
		return
	}
	c.properties = properties
	if needCategories && categories != nil {
		c.categories = categories
	}
	c.mu.Unlock()

	loadLogger.Info("Catalog loaded", port.Fields{
		"properties_count": len(properties),
		"categories_count": len(categories),
	})
}

// Create проверяет форму, создает объект на сервере и добавляет его в начало списка.
// Ошибка сообщается через OnError и возвращается вызывающему.
func (c *CatalogController) Create(ctx context.Context, input domain.PropertyInput) (*domain.Property, error) {
	ctx = c.withLogger(ctx)

	if c.validator != nil {
		if err := c.validator.ValidatePropertyInput(input); err != nil {
			apiErr := apierr.Parse(err)
			c.logger.Warn("Property input rejected by validation", port.Fields{"field_errors": apiErr.Errors})
			c.reportError(apiErr)
			return nil, apiErr
		}
	}

	c.beginSubmit()
	defer c.endSubmit()

	created, err := c.api.CreateProperty(ctx, input)
	if err != nil {
		apiErr := apierr.Parse(err)
		c.reportError(apiErr)
		return nil, apiErr
	}

	c.mu.Lock()
	c.properties = append([]domain.Property{*created}, c.properties...)
	c.mu.Unlock()

	c.logger.Info("Property added to catalog", port.Fields{"property_id": created.ID})
	c.reportSuccess(MsgPropertyCreated)
	return created, nil
}

// Update заменяет объект с тем же ID ответом сервера.
func (c *CatalogController) Update(ctx context.Context, id string, patch domain.PropertyPatch) (*domain.Property, error) {
	ctx = c.withLogger(ctx)

	c.beginSubmit()
	defer c.endSubmit()

	updated, err := c.api.UpdateProperty(ctx, id, patch)
	if err != nil {
		apiErr := apierr.Parse(err)
		c.reportError(apiErr)
		return nil, apiErr
	}

	c.mu.Lock()
	c.replaceLocked(*updated)
	c.mu.Unlock()

	c.logger.Info("Property updated in catalog", port.Fields{"property_id": id})
	c.reportSuccess(MsgPropertyUpdated)
	return updated, nil
}

// Delete удаляет объект на сервере и из списка; снимает выбор, если он был на этом объекте.
func (c *CatalogController) Delete(ctx context.Context, id string) error {
	ctx = c.withLogger(ctx)

	if err := c.api.DeleteProperty(ctx, id); err != nil {
		apiErr := apierr.Parse(err)
		c.reportError(apiErr)
		return apiErr
	}

	c.mu.Lock()
	kept := make([]domain.Property, 0, len(c.properties))
	for _, p := range c.properties {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	c.properties = kept
	if c.selected != nil && c.selected.ID == id {
		c.selected = nil
	}
	c.mu.Unlock()

	c.logger.Info("Property removed from catalog", port.Fields{"property_id": id})
	c.reportSuccess(MsgPropertyDeleted)
	return nil
}

// View загружает актуальную версию объекта и делает его выбранным.
func (c *CatalogController) View(ctx context.Context, id string) (*domain.Property, error) {
	ctx = c.withLogger(ctx)

	property, err := c.api.GetPropertyByID(ctx, id)
	if err != nil {
		apiErr := apierr.Parse(err)
		c.reportError(apiErr)
		return nil, apiErr
	}

	c.mu.Lock()
	c.replaceLocked(*property)
	selected := *property
	c.selected = &selected
	c.mu.Unlock()

	return property, nil
}

// Select выбирает объект из текущего списка без запроса к серверу.
func (c *CatalogController) Select(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, p := range c.properties {
		if p.ID == id {
			selected := p
			c.selected = &selected
			return true
		}
	}
	return false
}

func (c *CatalogController) ClearSelection() {
	c.mu.Lock()
	c.selected = nil
	c.mu.Unlock()
}

// UploadImage загружает изображение для формы. Состояние списка не меняется.
func (c *CatalogController) UploadImage(ctx context.Context, fileName string, content io.Reader) (*domain.UploadedImage, error) {
	ctx = c.withLogger(ctx)

	c.beginSubmit()
	defer c.endSubmit()

	uploaded, err := c.api.UploadImage(ctx, fileName, content)
	if err != nil {
		apiErr := apierr.Parse(err)
		c.reportError(apiErr)
		return nil, apiErr
	}

	c.reportSuccess(MsgImageUploaded)
	return uploaded, nil
}

// Snapshot возвращает копию текущего состояния.
func (c *CatalogController) Snapshot() domain.CatalogState {
	c.mu.Lock()
	defer c.mu.Unlock()

	state := domain.CatalogState{
		Properties:   append([]domain.Property(nil), c.properties...),
		Categories:   append([]domain.Category(nil), c.categories...),
		Filter:       c.filter.Clone(),
		IsLoading:    c.activeLoads > 0,
		IsSubmitting: c.submitting > 0,
	}
	if state.Properties == nil {
		state.Properties = []domain.Property{}
	}
	if state.Categories == nil {
		state.Categories = []domain.Category{}
	}
	if c.selected != nil {
		selected := *c.selected
		state.Selected = &selected
	}
	return state
}

func (c *CatalogController) replaceLocked(updated domain.Property) {
	for i := range c.properties {
		if c.properties[i].ID == updated.ID {
			c.properties[i] = updated
		}
	}
	if c.selected != nil && c.selected.ID == updated.ID {
		selected := updated
		c.selected = &selected
	}
}

func (c *CatalogController) beginSubmit() {
	c.mu.Lock()
	c.submitting++
	c.mu.Unlock()
}

func (c *CatalogController) endSubmit() {
	c.mu.Lock()
	c.submitting--
	c.mu.Unlock()
}

func (c *CatalogController) context() context.Context {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.withLogger(c.baseCtx)
}

// withLogger добавляет логгер контроллера, если в контексте своего нет.
func (c *CatalogController) withLogger(ctx context.Context) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	if contextkeys.HasLogger(ctx) {
		return ctx
	}
	return contextkeys.ContextWithLogger(ctx, c.logger)
}

func (c *CatalogController) reportSuccess(message string) {
	if c.onSuccess != nil {
		c.onSuccess(message)
	}
}

func (c *CatalogController) reportError(err *apierr.APIError) {
	if c.onError != nil {
		c.onError(err)
	}
}
