package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"sunflower/internal/plants/models"
	"sunflower/internal/plants/ports"
)

var (
	tomato = models.Plant{ID: "solanum-lycopersicum", Name: "Tomato", GrowZoneNumber: 9, WateringInterval: 4}
	apple  = models.Plant{ID: "malus-pumila", Name: "Apple", GrowZoneNumber: 3, WateringInterval: 30}
	beet   = models.Plant{ID: "beta-vulgaris", Name: "Beet", GrowZoneNumber: 2, WateringInterval: 7}
	grape  = models.Plant{ID: "vitis-vinifera", Name: "Grape", GrowZoneNumber: 9, WateringInterval: 3}
)

// PlantStoreSuite runs the same contract against every PlantStore.
type PlantStoreSuite struct {
	suite.Suite
	newStore func(t *testing.T) ports.PlantStore
	store    ports.PlantStore
	ctx      context.Context
	cancel   context.CancelFunc
}

func TestInMemoryPlantStoreSuite(t *testing.T) {
	suite.Run(t, &PlantStoreSuite{newStore: func(*testing.T) ports.PlantStore {
		return NewInMemoryPlantStore(nil)
	}})
}

func TestSQLitePlantStoreSuite(t *testing.T) {
	suite.Run(t, &PlantStoreSuite{newStore: func(t *testing.T) ports.PlantStore {
		s, err := OpenSQLite(filepath.Join(t.TempDir(), "plants.db"), nil)
		require.NoError(t, err)
		t.Cleanup(func() { _ = s.Close() })
		return s
	}})
}

func (s *PlantStoreSuite) SetupTest() {
	s.store = s.newStore(s.T())
	s.ctx, s.cancel = context.WithCancel(context.Background())
}

func (s *PlantStoreSuite) TearDownTest() {
	s.cancel()
}

func (s *PlantStoreSuite) TestListOrdersByNameAndFilters() {
	s.Require().NoError(s.store.Upsert(s.ctx, []models.Plant{tomato, apple, beet, grape}))

	all, err := s.store.List(s.ctx, models.NoGrowZone)
	s.Require().NoError(err)
	s.Equal([]models.Plant{apple, beet, grape, tomato}, all)

	zone9, err := s.store.List(s.ctx, 9)
	s.Require().NoError(err)
	s.Equal([]models.Plant{grape, tomato}, zone9)

	none, err := s.store.List(s.ctx, 11)
	s.Require().NoError(err)
	s.Empty(none)
}

func (s *PlantStoreSuite) TestUpsertReplacesByID() {
	s.Require().NoError(s.store.Upsert(s.ctx, []models.Plant{apple}))
	renamed := apple
	renamed.Name = "Apple Tree"
	renamed.GrowZoneNumber = 4
	s.Require().NoError(s.store.Upsert(s.ctx, []models.Plant{renamed}))

	all, err := s.store.List(s.ctx, models.NoGrowZone)
	s.Require().NoError(err)
	s.Equal([]models.Plant{renamed}, all)
}

func (s *PlantStoreSuite) TestUpsertWithDoneContextWritesNothing() {
	ctx, cancel := context.WithCancel(s.ctx)
	cancel()

	s.Error(s.store.Upsert(ctx, []models.Plant{apple}))

	all, err := s.store.List(s.ctx, models.NoGrowZone)
	s.Require().NoError(err)
	s.Empty(all)
}

func (s *PlantStoreSuite) TestWatchEmitsSnapshotThenChanges() {
	s.Require().NoError(s.store.Upsert(s.ctx, []models.Plant{tomato}))

	ch, err := s.store.Watch(s.ctx, 9)
	s.Require().NoError(err)
	s.Equal([]models.Plant{tomato}, s.next(ch))

	s.Require().NoError(s.store.Upsert(s.ctx, []models.Plant{grape, apple}))
	s.eventually(ch, []models.Plant{grape, tomato})
}

func (s *PlantStoreSuite) TestWatchClosesWithContext() {
	ctx, cancel := context.WithCancel(s.ctx)
	ch, err := s.store.Watch(ctx, models.NoGrowZone)
	s.Require().NoError(err)
	cancel()

	s.Eventually(func() bool {
		select {
		case _, ok := <-ch:
			return !ok
		default:
			return false
		}
	}, time.Second, 5*time.Millisecond)
}

func (s *PlantStoreSuite) next(ch <-chan []models.Plant) []models.Plant {
	select {
	case plants := <-ch:
		return plants
	case <-time.After(2 * time.Second):
		s.FailNow("no emission from watch")
		return nil
	}
}

// eventually reads emissions until want arrives; intermediate values may be
// conflated away.
func (s *PlantStoreSuite) eventually(ch <-chan []models.Plant, want []models.Plant) {
	deadline := time.After(2 * time.Second)
	for {
		select {
		case got := <-ch:
			if len(got) == len(want) {
				s.Equal(want, got)
				return
			}
		case <-deadline:
			s.FailNow("watch did not emit expected plants", "%v", want)
			return
		}
	}
}
