package engine

import "sort"

// BuildConflictGraph returns, for each requirement index, the indices it
// can never share a timeslot with: same teacher or same class group.
// Subject identity is irrelevant. Pairwise O(R²), acceptable because R
// is bounded by a school's total weekly sessions.
func BuildConflictGraph(requirements []SessionRequirement) [][]int {
	conflicts := make([][]int, len(requirements))
	for i := range requirements {
		for j := i + 1; j < len(requirements); j++ {
			if requirements[i].TeacherID == requirements[j].TeacherID ||
				requirements[i].ClassGroup == requirements[j].ClassGroup {
				conflicts[i] = append(conflicts[i], j)
				conflicts[j] = append(conflicts[j], i)
			}
		}
	}
	return conflicts
}

// OrderByDegree returns requirement indices sorted by descending
// conflict degree. Ties keep expansion order: the most constrained
// requirements are placed first, a classic greedy coloring heuristic.
func OrderByDegree(conflicts [][]int) []int {
	order := make([]int, len(conflicts))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return len(conflicts[order[a]]) > len(conflicts[order[b]])
	})
	return order
}
