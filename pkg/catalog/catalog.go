// Package catalog enumerates sensors from the configured sources and
// publishes them as an immutable, atomically replaced snapshot.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/sguter90/sensormaestro/pkg/models"
	"github.com/sguter90/sensormaestro/pkg/source"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

var (
	// ErrSensorNotFound is returned when no sensor matches a lookup
	ErrSensorNotFound = errors.New("sensor not found")
	// ErrNoSources is returned by Refresh when no source is configured
	ErrNoSources = errors.New("no sensor sources configured")
	// ErrUnknownSource is returned when a configured source type is not registered
	ErrUnknownSource = errors.New("unknown source type")
)

const defaultRefreshTimeout = 30 * time.Second

// Store persists catalog snapshots
type Store interface {
	SaveSnapshot(ctx context.Context, snapshot models.CatalogSnapshot) error
	LoadLatestSnapshot(ctx context.Context) (models.CatalogSnapshot, error)
}

// Publisher announces a freshly published catalog
type Publisher interface {
	Publish(ctx context.Context, summary models.CatalogSummary) error
}

// Option configures a Catalog
type Option func(*Catalog)

// WithStore persists every refreshed snapshot to store
func WithStore(store Store) Option {
	return func(c *Catalog) {
		c.store = store
	}
}

// WithPublisher announces every refreshed snapshot through publisher
func WithPublisher(publisher Publisher) Option {
	return func(c *Catalog) {
		c.publisher = publisher
	}
}

// WithRangeOverrides corrects range and resolution of sensors by name
func WithRangeOverrides(overrides map[string]RangeOverride) Option {
	return func(c *Catalog) {
		c.overrides = overrides
	}
}

// WithSource adds a source to enumerate on every refresh
func WithSource(sourceType string, config map[string]string) Option {
	return func(c *Catalog) {
		c.specs = append(c.specs, source.Spec{Type: sourceType, Config: config})
	}
}

// WithSpecs adds every parsed source spec
func WithSpecs(specs ...source.Spec) Option {
	return func(c *Catalog) {
		c.specs = append(c.specs, specs...)
	}
}

// state is one published catalog. It is never modified after publication.
type state struct {
	snapshot models.CatalogSnapshot
	sensors  []*models.Sensor
	byType   map[models.SensorType][]*models.Sensor
	byHandle map[int]*models.Sensor
}

// Catalog is the only owner of the SensorProducer. Readers see the last
// published snapshot and never block on a refresh.
type Catalog struct {
	registry  *source.Registry
	logger    *zap.SugaredLogger
	producer  *models.SensorProducer
	specs     []source.Spec
	store     Store
	publisher Publisher
	overrides map[string]RangeOverride

	current   atomic.Pointer[state]
	refreshMu sync.Mutex

	stopChan chan struct{}
	wg       sync.WaitGroup
	running  bool
	runMu    sync.Mutex
}

// New creates a catalog enumerating sources from registry
func New(registry *source.Registry, logger *zap.SugaredLogger, opts ...Option) *Catalog {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	c := &Catalog{
		registry: registry,
		logger:   logger,
		producer: models.NewSensorProducer(),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.current.Store(newState(models.CatalogSnapshot{}, nil))
	return c
}

// Refresh enumerates every configured source and replaces the catalog.
// Sources that fail are skipped; Refresh only fails when all of them do.
func (c *Catalog) Refresh(ctx context.Context) (models.CatalogSnapshot, error) {
	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()

	if len(c.specs) == 0 {
		return models.CatalogSnapshot{}, ErrNoSources
	}

	var (
		infos     []models.SensorInfo
		used      []string
		sourceErr error
	)
	for _, spec := range c.specs {
		found, err := c.enumerate(ctx, spec)
		if err != nil {
			c.logger.Warnw("Sensor source failed", "source", spec.String(), "error", err)
			sourceErr = multierr.Append(sourceErr, err)
			continue
		}
		infos = append(infos, found...)
		used = append(used, spec.String())
	}

	if len(used) == 0 {
		return models.CatalogSnapshot{}, fmt.Errorf("all sensor sources failed: %w", sourceErr)
	}

	sensors := c.build(infos)

	snapshot := models.CatalogSnapshot{
		ID:          uuid.New(),
		RefreshedAt: time.Now().UTC(),
		Sources:     used,
		Sensors:     make([]models.SensorInfo, 0, len(sensors)),
	}
	for _, s := range sensors {
		snapshot.Sensors = append(snapshot.Sensors, s.Info())
	}

	c.current.Store(newState(snapshot, sensors))
	c.logger.Infow("Sensor catalog refreshed",
		"id", snapshot.ID,
		"sensors", len(sensors),
		"sources", len(used),
	)

	var err error
	if c.store != nil {
		if saveErr := c.store.SaveSnapshot(ctx, snapshot); saveErr != nil {
			c.logger.Errorw("Failed to persist catalog snapshot", "id", snapshot.ID, "error", saveErr)
			err = multierr.Append(err, fmt.Errorf("failed to persist snapshot: %w", saveErr))
		}
	}
	if c.publisher != nil {
		if pubErr := c.publisher.Publish(ctx, snapshot.Summary()); pubErr != nil {
			c.logger.Errorw("Failed to announce catalog snapshot", "id", snapshot.ID, "error", pubErr)
			err = multierr.Append(err, fmt.Errorf("failed to announce snapshot: %w", pubErr))
		}
	}

	return snapshot, err
}

func (c *Catalog) enumerate(ctx context.Context, spec source.Spec) ([]models.SensorInfo, error) {
	src, ok := c.registry.Get(spec.Type)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSource, spec.Type)
	}

	config, err := source.ResolveConfig(src, spec.Config)
	if err != nil {
		return nil, fmt.Errorf("source %s: invalid config: %w", spec.Type, err)
	}

	if err := src.ValidateConfig(config); err != nil {
		return nil, fmt.Errorf("source %s: invalid config: %w", spec.Type, err)
	}

	infos, err := src.Enumerate(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("source %s: %w", spec.Type, err)
	}
	return infos, nil
}

// build turns valid infos into sensors, applies the range overrides and
// orders the result by type and handle
func (c *Catalog) build(infos []models.SensorInfo) []*models.Sensor {
	seen := make(map[int]bool, len(infos))
	sensors := make([]*models.Sensor, 0, len(infos))

	for _, info := range infos {
		if err := info.Validate(); err != nil {
			c.logger.Warnw("Skipping invalid sensor", "error", err)
			continue
		}
		if seen[info.Handle] {
			c.logger.Warnw("Skipping sensor with duplicate handle", "handle", info.Handle, "name", info.Name)
			continue
		}
		seen[info.Handle] = true

		s := c.producer.Produce(info)
		if override, ok := c.overrides[info.Name]; ok {
			if err := override.Validate(); err != nil {
				c.logger.Warnw("Ignoring invalid range override", "name", info.Name, "error", err)
			} else if err := c.producer.SetRange(s, override.MaxRange, override.Resolution); err != nil {
				c.logger.Warnw("Failed to apply range override", "name", info.Name, "error", err)
			}
		}
		sensors = append(sensors, s)
	}

	sortSensors(sensors)
	return sensors
}

// Restore publishes the latest persisted snapshot. Stored snapshots already
// carry corrected ranges, so overrides are not applied again.
func (c *Catalog) Restore(ctx context.Context) (models.CatalogSnapshot, error) {
	if c.store == nil {
		return models.CatalogSnapshot{}, fmt.Errorf("no snapshot store configured")
	}

	snapshot, err := c.store.LoadLatestSnapshot(ctx)
	if err != nil {
		return models.CatalogSnapshot{}, fmt.Errorf("failed to load snapshot: %w", err)
	}

	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()

	sensors := make([]*models.Sensor, 0, len(snapshot.Sensors))
	for _, info := range snapshot.Sensors {
		if err := info.Validate(); err != nil {
			c.logger.Warnw("Skipping invalid stored sensor", "id", snapshot.ID, "error", err)
			continue
		}
		sensors = append(sensors, c.producer.Produce(info))
	}
	sortSensors(sensors)

	snapshot.Sensors = make([]models.SensorInfo, 0, len(sensors))
	for _, s := range sensors {
		snapshot.Sensors = append(snapshot.Sensors, s.Info())
	}

	c.current.Store(newState(snapshot, sensors))
	c.logger.Infow("Sensor catalog restored", "id", snapshot.ID, "sensors", len(sensors))
	return snapshot, nil
}

// Sensors returns the sensors of type t. SensorTypeAll returns every
// sensor, an unknown type returns none.
func (c *Catalog) Sensors(t models.SensorType) []*models.Sensor {
	st := c.current.Load()
	if t == models.SensorTypeAll {
		return append([]*models.Sensor(nil), st.sensors...)
	}
	return append([]*models.Sensor(nil), st.byType[t]...)
}

// DefaultSensor returns the first sensor of type t
func (c *Catalog) DefaultSensor(t models.SensorType) (*models.Sensor, error) {
	if !t.IsValid() {
		return nil, fmt.Errorf("%w: %d", models.ErrUnknownSensorType, int(t))
	}

	sensors := c.current.Load().byType[t]
	if len(sensors) == 0 {
		return nil, fmt.Errorf("%w: no %s sensor", ErrSensorNotFound, t)
	}
	return sensors[0], nil
}

// SensorByHandle returns the sensor with the given handle
func (c *Catalog) SensorByHandle(handle int) (*models.Sensor, error) {
	s, ok := c.current.Load().byHandle[handle]
	if !ok {
		return nil, fmt.Errorf("%w: handle %d", ErrSensorNotFound, handle)
	}
	return s, nil
}

// Query returns every sensor matching params
func (c *Catalog) Query(params models.SensorQueryParams) ([]*models.Sensor, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	var result []*models.Sensor
	for _, s := range c.Sensors(params.Type) {
		if params.Matches(s) {
			result = append(result, s)
		}
	}
	return result, nil
}

// Snapshot returns the currently published snapshot
func (c *Catalog) Snapshot() models.CatalogSnapshot {
	return c.current.Load().snapshot
}

// Start refreshes the catalog every interval until Stop is called
func (c *Catalog) Start(interval time.Duration) {
	c.runMu.Lock()
	defer c.runMu.Unlock()

	if c.running {
		return
	}
	c.running = true
	c.stopChan = make(chan struct{})

	c.wg.Add(1)
	go c.run(interval, c.stopChan)
	c.logger.Infow("Catalog refresh loop started", "interval", interval)
}

// Stop halts the refresh loop and waits for a running refresh to finish
func (c *Catalog) Stop() {
	c.runMu.Lock()
	if !c.running {
		c.runMu.Unlock()
		return
	}
	c.running = false
	close(c.stopChan)
	c.runMu.Unlock()

	c.wg.Wait()
	c.logger.Info("Catalog refresh loop stopped")
}

func (c *Catalog) run(interval time.Duration, stop <-chan struct{}) {
	defer c.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			c.refreshOnce(stop)
		}
	}
}

func (c *Catalog) refreshOnce(stop <-chan struct{}) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultRefreshTimeout)
	defer cancel()

	go func() {
		select {
		case <-stop:
			cancel()
		case <-ctx.Done():
		}
	}()

	if _, err := c.Refresh(ctx); err != nil {
		c.logger.Errorw("Catalog refresh failed", "error", err)
	}
}

func newState(snapshot models.CatalogSnapshot, sensors []*models.Sensor) *state {
	st := &state{
		snapshot: snapshot,
		sensors:  sensors,
		byType:   make(map[models.SensorType][]*models.Sensor),
		byHandle: make(map[int]*models.Sensor, len(sensors)),
	}
	for _, s := range sensors {
		st.byType[s.Type()] = append(st.byType[s.Type()], s)
		st.byHandle[s.Handle()] = s
	}
	return st
}

func sortSensors(sensors []*models.Sensor) {
	sort.SliceStable(sensors, func(i, j int) bool {
		if sensors[i].Type() != sensors[j].Type() {
			return sensors[i].Type() < sensors[j].Type()
		}
		return sensors[i].Handle() < sensors[j].Handle()
	})
}
