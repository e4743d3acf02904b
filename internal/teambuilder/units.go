package teambuilder

import (
	"sort"

	"github.com/google/uuid"
)

// unit is the atom moved during partitioning: a lone player or a whole group
type unit []Player

// formUnits collapses groups into units. Members missing from players are
// dropped, a group with no present member emits nothing, and groups that
// share a player end up in the same unit. Units keep the order in which
// their first player appears in players.
func formUnits(players []Player, groups map[string][]uuid.UUID) []unit {
	index := make(map[uuid.UUID]int, len(players))
	for i, p := range players {
		index[p.ID] = i
	}

	parent := make([]int, len(players))
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(i int) int {
		if parent[i] != i {
			parent[i] = find(parent[i])
		}
		return parent[i]
	}

	groupIDs := make([]string, 0, len(groups))
	for id := range groups {
		groupIDs = append(groupIDs, id)
	}
	sort.Strings(groupIDs)

	for _, gid := range groupIDs {
		first := -1
		for _, memberID := range groups[gid] {
			i, ok := index[memberID]
			if !ok {
				continue
			}
			if first < 0 {
				first = i
				continue
			}
			if a, b := find(first), find(i); a != b {
				parent[b] = a
			}
		}
	}

	var units []unit
	slot := make(map[int]int)
	for i, p := range players {
		root := find(i)
		n, ok := slot[root]
		if !ok {
			n = len(units)
			slot[root] = n
			units = append(units, nil)
		}
		units[n] = append(units[n], p)
	}
	return units
}

func size(units []unit) int {
	n := 0
	for _, u := range units {
		n += len(u)
	}
	return n
}
