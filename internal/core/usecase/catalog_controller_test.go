package usecase

import (
	"context"
	"property-catalog/internal/core/apierr"
	"property-catalog/internal/core/domain"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var (
	seedProperties = []domain.Property{
		{ID: "1", Name: "Casa Azul", Type: "House", PriceProperty: 250000, CreatedAt: domain.NewTimestamp(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))},
		{ID: "2", Name: "Loft", Type: "Apartment", PriceProperty: 120000, CreatedAt: domain.NewTimestamp(time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC))},
	}
	seedCategories = []domain.Category{{ID: "c1", Name: "House", Color: "#f00"}}
)

// callbacks собирает сообщения, которые контроллер отправляет в UI.
type callbacks struct {
	mu        sync.Mutex
	successes []string
	errors    []*apierr.APIError
}

func (cb *callbacks) options() ControllerOptions {
	return ControllerOptions{
		QuietPeriod: 30 * time.Millisecond,
		OnSuccess: func(msg string) {
			cb.mu.Lock()
			defer cb.mu.Unlock()
			cb.successes = append(cb.successes, msg)
		},
		OnError: func(err *apierr.APIError) {
			cb.mu.Lock()
			defer cb.mu.Unlock()
			cb.errors = append(cb.errors, err)
		},
	}
}

func (cb *callbacks) errorCount() int {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return len(cb.errors)
}

func mountedController(t *testing.T) (*CatalogController, *MockPropertyAPI, *callbacks) {
	t.Helper()
	api := &MockPropertyAPI{}
	api.On("GetProperties", mock.Anything, domain.PropertyFilter{}).Return(append([]domain.Property(nil), seedProperties...), nil).Once()
	api.On("GetCategories", mock.Anything).Return(seedCategories, nil).Once()

	cb := &callbacks{}
	c := NewCatalogController(api, cb.options())
	t.Cleanup(c.Close)

	c.Mount(context.Background())
	require.Len(t, c.Snapshot().Properties, 2)
	return c, api, cb
}

func TestMountLoadsPropertiesAndCategories(t *testing.T) {
	c, api, cb := mountedController(t)

	state := c.Snapshot()
	assert.Equal(t, seedProperties, state.Properties)
	assert.Equal(t, seedCategories, state.Categories)
	assert.False(t, state.IsLoading)
	assert.Zero(t, cb.errorCount())
	api.AssertExpectations(t)
}

func TestSetFilterDebouncesBurst(t *testing.T) {
	c, api, _ := mountedController(t)

	filters := make(chan domain.PropertyFilter, 4)
	api.On("GetProperties", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { filters <- args.Get(1).(domain.PropertyFilter) }).
		Return([]domain.Property{seedProperties[0]}, nil)

	c.SetFilter(domain.PropertyFilter{Name: domain.Ptr("A")})
	c.SetFilter(domain.PropertyFilter{Name: domain.Ptr("AB")})

	select {
	case got := <-filters:
		require.NotNil(t, got.Name)
		assert.Equal(t, "AB", *got.Name)
	case <-time.After(time.Second):
		t.Fatal("debounced reload never happened")
	}

	time.Sleep(100 * time.Millisecond)
	assert.Empty(t, filters, "only the last filter in a burst triggers a reload")
	assert.Eventually(t, func() bool { return len(c.Snapshot().Properties) == 1 }, time.Second, 5*time.Millisecond)

	// категории уже загружены и повторно не запрашиваются
	api.AssertNumberOfCalls(t, "GetCategories", 1)
}

func TestSnapshotFilterUpdatesImmediately(t *testing.T) {
	c, api, _ := mountedController(t)
	api.On("GetProperties", mock.Anything, mock.Anything).Return(seedProperties, nil).Maybe()

	c.SetFilter(domain.PropertyFilter{Type: domain.Ptr("House")})
	got := c.Snapshot().Filter
	require.NotNil(t, got.Type)
	assert.Equal(t, "House", *got.Type)

	c.ResetFilter()
	assert.True(t, c.Snapshot().Filter.IsEmpty())
}

func TestRefreshCancelsPendingReload(t *testing.T) {
	c, api, _ := mountedController(t)
	api.On("GetProperties", mock.Anything, mock.Anything).Return(seedProperties, nil)

	c.SetFilter(domain.PropertyFilter{Name: domain.Ptr("Casa")})
	c.Refresh(context.Background())

	time.Sleep(80 * time.Millisecond)
	// Mount + Refresh, отложенная перезагрузка отменена
	api.AssertNumberOfCalls(t, "GetProperties", 2)
}

func TestLoadFailureKeepsCachedState(t *testing.T) {
	c, api, cb := mountedController(t)
	api.On("GetProperties", mock.Anything, mock.Anything).Return(nil, apierr.New(503, "down"))

	c.Refresh(context.Background())

	state := c.Snapshot()
	assert.Equal(t, seedProperties, state.Properties)
	assert.Equal(t, seedCategories, state.Categories)
	require.Equal(t, 1, cb.errorCount())
	assert.Equal(t, 503, cb.errors[0].StatusCode)
}

func TestLoadIsAllOrNothing(t *testing.T) {
	api := &MockPropertyAPI{}
	api.On("GetProperties", mock.Anything, mock.Anything).Return(seedProperties, nil)
	api.On("GetCategories", mock.Anything).Return(nil, apierr.New(500, "categories failed"))

	cb := &callbacks{}
	c := NewCatalogController(api, cb.options())
	c.Mount(context.Background())

	state := c.Snapshot()
	assert.Empty(t, state.Properties)
	assert.Empty(t, state.Categories)
	assert.Equal(t, 1, cb.errorCount())
}

func TestStaleLoadResponseIsDiscarded(t *testing.T) {
	api := &MockPropertyAPI{}
	started := make(chan struct{})
	release := make(chan struct{})
	stale := []domain.Property{{ID: "old"}}
	fresh := []domain.Property{{ID: "new"}}

	api.On("GetProperties", mock.Anything, mock.Anything).
		Run(func(mock.Arguments) {
			close(started)
			<-release
		}).
		Return(stale, nil).Once()
	api.On("GetProperties", mock.Anything, mock.Anything).Return(fresh, nil).Once()
	api.On("GetCategories", mock.Anything).Return(seedCategories, nil)

	c := NewCatalogController(api, ControllerOptions{})

	done := make(chan struct{})
	go func() {
		defer close(done)
		c.Refresh(context.Background())
	}()
	<-started

	c.Refresh(context.Background())
	assert.Equal(t, fresh, c.Snapshot().Properties)

	close(release)
	<-done
	assert.Equal(t, fresh, c.Snapshot().Properties)
	assert.False(t, c.Snapshot().IsLoading)
}

func TestStaleLoadFailureIsNotReported(t *testing.T) {
	api := &MockPropertyAPI{}
	started := make(chan struct{})
	release := make(chan struct{})
	fresh := []domain.Property{{ID: "new"}}

	api.On("GetProperties", mock.Anything, mock.Anything).
		Run(func(mock.Arguments) {
			close(started)
			<-release
		}).
		Return(nil, apierr.New(503, "superseded")).Once()
	api.On("GetProperties", mock.Anything, mock.Anything).Return(fresh, nil).Once()
	api.On("GetCategories", mock.Anything).Return(seedCategories, nil)

	cb := &callbacks{}
	c := NewCatalogController(api, cb.options())

	done := make(chan struct{})
	go func() {
		defer close(done)
		c.Refresh(context.Background())
	}()
	<-started

	c.Refresh(context.Background())
	close(release)
	<-done

	assert.Zero(t, cb.errorCount())
	assert.Equal(t, fresh, c.Snapshot().Properties)
}

func TestCreatePrependsServerRecord(t *testing.T) {
	c, api, cb := mountedController(t)

	input := domain.PropertyInput{Name: "X", AddressProperty: "Somewhere", Type: "House", PriceProperty: 1}
	created := &domain.Property{ID: "3", Name: "X", CreatedAt: domain.NewTimestamp(time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC))}
	api.On("CreateProperty", mock.Anything, input).Return(created, nil).Once()

	got, err := c.Create(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, "3", got.ID)

	state := c.Snapshot()
	require.Len(t, state.Properties, 3)
	assert.Equal(t, "3", state.Properties[0].ID)
	assert.Equal(t, "1", state.Properties[1].ID)
	assert.False(t, state.IsSubmitting)
	assert.Equal(t, []string{MsgPropertyCreated}, cb.successes)
}

func TestCreateFailureReportsAndReturns(t *testing.T) {
	c, api, cb := mountedController(t)
	api.On("CreateProperty", mock.Anything, mock.Anything).Return(nil, apierr.New(409, "duplicate")).Once()

	_, err := c.Create(context.Background(), domain.PropertyInput{Name: "Dup"})
	require.Error(t, err)
	assert.Equal(t, 409, apierr.Parse(err).StatusCode)

	state := c.Snapshot()
	assert.Len(t, state.Properties, 2)
	assert.False(t, state.IsSubmitting)
	assert.Equal(t, 1, cb.errorCount())
	assert.Empty(t, cb.successes)
}

func TestCreateMarksSubmittingWhileInFlight(t *testing.T) {
	c, api, _ := mountedController(t)
	inFlight := make(chan bool, 1)
	api.On("CreateProperty", mock.Anything, mock.Anything).
		Run(func(mock.Arguments) { inFlight <- c.Snapshot().IsSubmitting }).
		Return(&domain.Property{ID: "9"}, nil).Once()

	_, err := c.Create(context.Background(), domain.PropertyInput{Name: "Y"})
	require.NoError(t, err)
	assert.True(t, <-inFlight)
	assert.False(t, c.Snapshot().IsSubmitting)
}

func TestCreateRejectedByValidatorSkipsAPI(t *testing.T) {
	api := &MockPropertyAPI{}
	validator := &MockValidator{}
	invalid := apierr.New(422, "Validation failed")
	invalid.Errors = map[string][]string{"name": {"required"}}
	validator.On("ValidatePropertyInput", mock.Anything).Return(invalid)

	cb := &callbacks{}
	opts := cb.options()
	opts.Validator = validator
	c := NewCatalogController(api, opts)

	_, err := c.Create(context.Background(), domain.PropertyInput{})
	require.Error(t, err)
	assert.Equal(t, []string{"required"}, apierr.Parse(err).FieldErrors("name"))
	api.AssertNotCalled(t, "CreateProperty", mock.Anything, mock.Anything)
	assert.Equal(t, 1, cb.errorCount())
}

func TestUpdateReplacesInPlace(t *testing.T) {
	c, api, cb := mountedController(t)
	patch := domain.PropertyPatch{Name: domain.Ptr("Loft Deluxe")}
	updated := seedProperties[1]
	updated.Name = "Loft Deluxe"
	api.On("UpdateProperty", mock.Anything, "2", patch).Return(&updated, nil).Once()

	require.True(t, c.Select("2"))
	_, err := c.Update(context.Background(), "2", patch)
	require.NoError(t, err)

	state := c.Snapshot()
	require.Len(t, state.Properties, 2)
	assert.Equal(t, "Loft Deluxe", state.Properties[1].Name)
	assert.Equal(t, "Casa Azul", state.Properties[0].Name)
	require.NotNil(t, state.Selected)
	assert.Equal(t, "Loft Deluxe", state.Selected.Name)
	assert.Equal(t, []string{MsgPropertyUpdated}, cb.successes)
}

func TestUpdateFailureReturnsError(t *testing.T) {
	c, api, cb := mountedController(t)
	api.On("UpdateProperty", mock.Anything, "2", mock.Anything).Return(nil, apierr.New(422, "bad price")).Once()

	_, err := c.Update(context.Background(), "2", domain.PropertyPatch{PriceProperty: domain.Ptr(-1.0)})
	require.Error(t, err)
	assert.Equal(t, "Loft", c.Snapshot().Properties[1].Name)
	assert.Equal(t, 1, cb.errorCount())
}

func TestDeleteRemovesAndClearsSelection(t *testing.T) {
	c, api, cb := mountedController(t)
	api.On("DeleteProperty", mock.Anything, "1").Return(nil).Once()

	require.True(t, c.Select("1"))
	require.NoError(t, c.Delete(context.Background(), "1"))

	state := c.Snapshot()
	require.Len(t, state.Properties, 1)
	assert.Equal(t, "2", state.Properties[0].ID)
	assert.Nil(t, state.Selected)
	assert.Equal(t, []string{MsgPropertyDeleted}, cb.successes)
}

func TestDeleteKeepsOtherSelection(t *testing.T) {
	c, api, _ := mountedController(t)
	api.On("DeleteProperty", mock.Anything, "1").Return(nil).Once()

	require.True(t, c.Select("2"))
	require.NoError(t, c.Delete(context.Background(), "1"))

	require.NotNil(t, c.Snapshot().Selected)
	assert.Equal(t, "2", c.Snapshot().Selected.ID)
}

func TestDeleteFailureKeepsList(t *testing.T) {
	c, api, cb := mountedController(t)
	api.On("DeleteProperty", mock.Anything, "1").Return(apierr.New(404, "gone")).Once()

	err := c.Delete(context.Background(), "1")
	require.Error(t, err)
	assert.Equal(t, 404, apierr.Parse(err).StatusCode)
	assert.Len(t, c.Snapshot().Properties, 2)
	assert.Equal(t, 1, cb.errorCount())
}

func TestViewSelectsFreshRecord(t *testing.T) {
	c, api, _ := mountedController(t)
	fresh := seedProperties[0]
	fresh.PriceProperty = 260000
	api.On("GetPropertyByID", mock.Anything, "1").Return(&fresh, nil).Once()

	got, err := c.View(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, 260000.0, got.PriceProperty)

	state := c.Snapshot()
	require.NotNil(t, state.Selected)
	assert.Equal(t, "1", state.Selected.ID)
	assert.Equal(t, 260000.0, state.Properties[0].PriceProperty)

	c.ClearSelection()
	assert.Nil(t, c.Snapshot().Selected)
	assert.False(t, c.Select("missing"))
}

func TestSnapshotIsACopy(t *testing.T) {
	c, _, _ := mountedController(t)

	state := c.Snapshot()
	state.Properties[0].Name = "mutated"

	assert.Equal(t, "Casa Azul", c.Snapshot().Properties[0].Name)
}
