package models

import (
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"sunflower/pkg/platform/sentinel"
)

// PlantID is the stable key of a plant across the remote API and local store.
type PlantID string

func (id PlantID) String() string { return string(id) }

// GrowZone is a USDA hardiness zone. NoGrowZone means "no filter".
type GrowZone int

// NoGrowZone selects every plant regardless of zone.
const NoGrowZone GrowZone = -1

// IsSet reports whether the zone names a real filter.
func (z GrowZone) IsSet() bool { return z != NoGrowZone }

func (z GrowZone) String() string {
	if !z.IsSet() {
		return "none"
	}
	return strconv.Itoa(int(z))
}

// ParseGrowZone parses a non-negative zone number.
func ParseGrowZone(s string) (GrowZone, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return NoGrowZone, fmt.Errorf("grow zone %q is not a number: %w", s, sentinel.ErrInvalidInput)
	}
	if n < 0 {
		return NoGrowZone, fmt.Errorf("grow zone %d must not be negative: %w", n, sentinel.ErrInvalidInput)
	}
	return GrowZone(n), nil
}

// DefaultWateringInterval is used when the remote API omits the interval.
const DefaultWateringInterval = 7

// Plant is a catalogue entry. The pipeline treats it as read-only.
type Plant struct {
	ID               PlantID  `json:"plantId"`
	Name             string   `json:"name"`
	Description      string   `json:"description"`
	GrowZoneNumber   GrowZone `json:"growZoneNumber"`
	WateringInterval int      `json:"wateringInterval"`
	ImageURL         string   `json:"imageUrl"`
}

// SortOrder lists plant IDs in custom display precedence. Empty means no
// custom precedence.
type SortOrder []PlantID

// PlantList is the sorted projection delivered to the UI.
type PlantList struct {
	Plants  []Plant  `json:"plants"`
	Filter  GrowZone `json:"filter"`
	Version uint64   `json:"version"`
}

// Status carries the UI flags next to the plant list.
type Status struct {
	Filter  GrowZone `json:"filter"`
	Loading bool     `json:"loading"`
	Message string   `json:"message,omitempty"`
}

// RefreshOutcome classifies how a refresh ended.
type RefreshOutcome string

const (
	RefreshSucceeded RefreshOutcome = "success"
	RefreshFailed    RefreshOutcome = "failed"
	RefreshCanceled  RefreshOutcome = "canceled"
	RefreshTimedOut  RefreshOutcome = "timeout"
)

// RefreshEvent records one fetch-and-store attempt.
type RefreshEvent struct {
	ID       uuid.UUID      `json:"id"`
	Filter   GrowZone       `json:"filter"`
	Outcome  RefreshOutcome `json:"outcome"`
	Count    int            `json:"count"`
	Error    string         `json:"error,omitempty"`
	Duration time.Duration  `json:"duration"`
	At       time.Time      `json:"at"`
}
