// Package assign solves the rectangular assignment problem on a dense
// float64 matrix. It is a pure function with no knowledge of the value
// model, so the matching algorithm stays testable in isolation.
package assign

import "math"

// MaxSum finds the one-to-one partial matching between rows and columns that
// maximizes the total score, producing min(rows, cols) pairs. The result
// maps each row to its column, or -1 when the row is unassigned (only
// possible when rows > cols). Runs the Kuhn-Munkres algorithm in O(n^2*m).
func MaxSum(score [][]float64) []int {
	n := len(score)
	if n == 0 {
		return nil
	}
	m := len(score[0])
	if m == 0 {
		out := make([]int, n)
		for i := range out {
			out[i] = -1
		}
		return out
	}

	// Kuhn-Munkres minimizes, so flip the matrix around its maximum.
	maxScore := score[0][0]
	for _, row := range score {
		for _, s := range row {
			if s > maxScore {
				maxScore = s
			}
		}
	}

	if n <= m {
		cost := make([][]float64, n)
		for i, row := range score {
			cost[i] = make([]float64, m)
			for j, s := range row {
				cost[i][j] = maxScore - s
			}
		}
		return minCost(cost)
	}

	// More rows than columns: solve the transpose, then invert the mapping.
	cost := make([][]float64, m)
	for j := 0; j < m; j++ {
		cost[j] = make([]float64, n)
		for i := 0; i < n; i++ {
			cost[j][i] = maxScore - score[i][j]
		}
	}
	colToRow := minCost(cost)
	rowToCol := make([]int, n)
	for i := range rowToCol {
		rowToCol[i] = -1
	}
	for j, i := range colToRow {
		if i >= 0 {
			rowToCol[i] = j
		}
	}
	return rowToCol
}

// minCost runs the potentials-based Kuhn-Munkres algorithm on an n x m cost
// matrix with n <= m, assigning every row. Indices are 1-based internally;
// column 0 is the virtual start of each augmenting path.
func minCost(cost [][]float64) []int {
	n := len(cost)
	m := len(cost[0])

	u := make([]float64, n+1)
	v := make([]float64, m+1)
	assigned := make([]int, m+1) // assigned[j] = row occupying column j, 0 = free
	way := make([]int, m+1)

	for i := 1; i <= n; i++ {
		assigned[0] = i
		j0 := 0
		minv := make([]float64, m+1)
		used := make([]bool, m+1)
		for j := range minv {
			minv[j] = math.Inf(1)
		}

		// Grow the alternating tree until a free column is reached.
		for {
			used[j0] = true
			i0 := assigned[j0]
			delta := math.Inf(1)
			j1 := 0
			for j := 1; j <= m; j++ {
				if used[j] {
					continue
				}
				cur := cost[i0-1][j-1] - u[i0] - v[j]
				if cur < minv[j] {
					minv[j] = cur
					way[j] = j0
				}
				if minv[j] < delta {
					delta = minv[j]
					j1 = j
				}
			}
			for j := 0; j <= m; j++ {
				if used[j] {
					u[assigned[j]] += delta
					v[j] -= delta
				} else {
					minv[j] -= delta
				}
			}
			j0 = j1
			if assigned[j0] == 0 {
				break
			}
		}

		// Augment along the found path.
		for j0 != 0 {
			j1 := way[j0]
			assigned[j0] = assigned[j1]
			j0 = j1
		}
	}

	rowToCol := make([]int, n)
	for i := range rowToCol {
		rowToCol[i] = -1
	}
	for j := 1; j <= m; j++ {
		if assigned[j] > 0 {
			rowToCol[assigned[j]-1] = j - 1
		}
	}
	return rowToCol
}
