package pipeline

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"

	"sunflower/internal/plants/metrics"
	"sunflower/internal/plants/models"
)

type PipelineSuite struct {
	suite.Suite
	ctx     context.Context
	cancel  context.CancelFunc
	metrics *metrics.Metrics
	p       *Pipeline
	plants  chan Batch
	orders  chan models.SortOrder
	done    chan error
}

func TestPipelineSuite(t *testing.T) {
	suite.Run(t, new(PipelineSuite))
}

func (s *PipelineSuite) SetupTest() {
	s.ctx, s.cancel = context.WithCancel(context.Background())
	s.metrics = metrics.New(prometheus.NewRegistry())
	s.p = New(nil, s.metrics)
	s.plants = make(chan Batch)
	s.orders = make(chan models.SortOrder)
	s.done = make(chan error, 1)
	go func() { s.done <- s.p.Run(s.ctx, s.plants, s.orders) }()
}

func (s *PipelineSuite) TearDownTest() {
	s.cancel()
	select {
	case err := <-s.done:
		s.NoError(err)
	case <-time.After(time.Second):
		s.Fail("pipeline did not stop")
	}
}

func (s *PipelineSuite) eventuallyNames(want ...string) models.PlantList {
	var last models.PlantList
	s.Require().Eventually(func() bool {
		list, ok := s.p.Current()
		if !ok {
			return false
		}
		last = list
		return s.equalNames(want, list.Plants)
	}, time.Second, 5*time.Millisecond, "want %v, last %v", want, names(last.Plants))
	return last
}

func (s *PipelineSuite) equalNames(want []string, plants []models.Plant) bool {
	got := names(plants)
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

func (s *PipelineSuite) TestWaitsForBothInputs() {
	s.plants <- Batch{Filter: models.NoGrowZone, Plants: []models.Plant{apple, banana}}

	s.Never(func() bool {
		_, ok := s.p.Current()
		return ok
	}, 50*time.Millisecond, 5*time.Millisecond)

	s.orders <- models.SortOrder{"b", "a"}
	s.eventuallyNames("Banana", "Apple")
}

func (s *PipelineSuite) TestRecomputesOnPlantChangeWithoutNewOrder() {
	s.orders <- models.SortOrder{"b", "a"}
	close(s.orders)
	s.plants <- Batch{Filter: models.NoGrowZone, Plants: []models.Plant{apple, banana}}
	first := s.eventuallyNames("Banana", "Apple")

	s.plants <- Batch{Filter: models.NoGrowZone, Plants: []models.Plant{apple, banana, cherry}}
	second := s.eventuallyNames("Banana", "Apple", "Cherry")
	s.Greater(second.Version, first.Version)
}

func (s *PipelineSuite) TestRecomputesOnOrderChange() {
	s.plants <- Batch{Filter: models.GrowZone(3), Plants: []models.Plant{apple, banana, cherry}}
	s.orders <- models.SortOrder{}
	s.eventuallyNames("Apple", "Banana", "Cherry")

	s.orders <- models.SortOrder{"c"}
	list := s.eventuallyNames("Cherry", "Apple", "Banana")
	s.Equal(models.GrowZone(3), list.Filter)
}

func (s *PipelineSuite) TestSlowSubscriberSeesOnlyLatest() {
	sub := s.p.Subscribe(s.ctx)
	s.orders <- models.SortOrder{"b", "a"}

	batches := [][]models.Plant{
		{apple},
		{apple, banana},
		{apple, banana, cherry},
		{apple, banana, cherry, date},
	}
	for _, b := range batches {
		s.plants <- Batch{Filter: models.NoGrowZone, Plants: b}
	}
	s.eventuallyNames("Banana", "Apple", "Cherry", "Date")

	// only the newest projection is buffered for the subscriber
	select {
	case list := <-sub:
		s.Equal([]string{"Banana", "Apple", "Cherry", "Date"}, names(list.Plants))
	case <-time.After(time.Second):
		s.Fail("no projection delivered")
	}
	select {
	case list := <-sub:
		s.Failf("unexpected buffered projection", "%v", names(list.Plants))
	default:
	}
	s.Positive(testutil.ToFloat64(s.metrics.Recomputations))
}

func (s *PipelineSuite) TestStopsWhenInputsClose() {
	plants := make(chan Batch)
	orders := make(chan models.SortOrder)
	p := New(nil, nil)
	done := make(chan error, 1)
	go func() { done <- p.Run(context.Background(), plants, orders) }()

	orders <- models.SortOrder{"a"}
	plants <- Batch{Plants: []models.Plant{banana, apple}}
	close(plants)
	close(orders)

	select {
	case err := <-done:
		s.NoError(err)
	case <-time.After(time.Second):
		s.Fail("pipeline did not stop after inputs closed")
	}
	list, ok := p.Current()
	s.True(ok)
	s.Equal([]string{"Apple", "Banana"}, names(list.Plants))
}
