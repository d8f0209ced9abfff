package pipeline

import (
	"cmp"
	"slices"

	"sunflower/internal/plants/models"
)

// notInOrder ranks plants missing from the sort order after every listed one.
const notInOrder = int(^uint(0) >> 1)

// SortPlants returns a copy of plants ordered by position in order, with
// plants absent from order placed last. Ties, including every pair of absent
// plants, are broken by name. plants is not modified.
func SortPlants(plants []models.Plant, order models.SortOrder) []models.Plant {
	rank := make(map[models.PlantID]int, len(order))
	for i, id := range order {
		if _, seen := rank[id]; !seen {
			rank[id] = i
		}
	}
	position := func(id models.PlantID) int {
		if i, ok := rank[id]; ok {
			return i
		}
		return notInOrder
	}

	sorted := slices.Clone(plants)
	if sorted == nil {
		sorted = []models.Plant{}
	}
	slices.SortStableFunc(sorted, func(a, b models.Plant) int {
		return cmp.Or(
			cmp.Compare(position(a.ID), position(b.ID)),
			cmp.Compare(a.Name, b.Name),
		)
	})
	return sorted
}
