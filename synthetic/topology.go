package synthetic

import (
	"fmt"
	"golang.org/x/tools/container/intsets"
	"math/rand"
)

// Topology represents an undirected graph over vertices 0..n-1
type Topology struct {
	adjacency []*intsets.Sparse
}

// NewTopology creates an empty topology with n vertices
func NewTopology(n int) *Topology {
	result := &Topology{adjacency: make([]*intsets.Sparse, n)}
	for i := range result.adjacency {
		result.adjacency[i] = &intsets.Sparse{}
	}
	return result
}

// Len returns number of vertices
func (t *Topology) Len() int {
	return len(t.adjacency)
}

// Connect adds undirected edge u-v
func (t *Topology) Connect(u, v int) {
	if u == v {
		return
	}
	t.adjacency[u].Insert(v)
	t.adjacency[v].Insert(u)
}

// Disconnect removes undirected edge u-v
func (t *Topology) Disconnect(u, v int) {
	t.adjacency[u].Remove(v)
	t.adjacency[v].Remove(u)
}

// Connected returns true if u-v exists
func (t *Topology) Connected(u, v int) bool {
	return t.adjacency[u].Has(v)
}

// Degree returns number of neighbours of u
func (t *Topology) Degree(u int) int {
	return t.adjacency[u].Len()
}

// Neighbours returns neighbours of u in ascending order
func (t *Topology) Neighbours(u int) []int {
	return t.adjacency[u].AppendTo(nil)
}

// Edges returns every undirected edge once as (u, v) with u < v, in ascending order
func (t *Topology) Edges() [][2]int {
	var result [][2]int
	for u := range t.adjacency {
		for _, v := range t.Neighbours(u) {
			if v > u {
				result = append(result, [2]int{u, v})
			}
		}
	}
	return result
}

// WattsStrogatz builds a ring lattice where every vertex joins its k/2 successors, then
// rewires each lattice edge (u, u+j) with probability p to (u, w) for a random w that is
// neither u nor already a neighbour of u
func WattsStrogatz(n, k int, p float64, rng *rand.Rand) (*Topology, error) {
	if k > n {
		return nil, fmt.Errorf("neighbors %d must not exceed nodes %d", k, n)
	}
	result := NewTopology(n)
	if k == n {
		for u := 0; u < n; u++ {
			for v := u + 1; v < n; v++ {
				result.Connect(u, v)
			}
		}
		return result, nil
	}
	half := k / 2
	for j := 1; j <= half; j++ {
		for u := 0; u < n; u++ {
			result.Connect(u, (u+j)%n)
		}
	}
	for j := 1; j <= half; j++ {
		for u := 0; u < n; u++ {
			v := (u + j) % n
			if rng.Float64() >= p {
				continue
			}
			if !result.Connected(u, v) || result.Degree(u) >= n-1 {
				continue
			}
			w := rng.Intn(n)
			for w == u || result.Connected(u, w) {
				w = rng.Intn(n)
			}
			result.Disconnect(u, v)
			result.Connect(u, w)
		}
	}
	return result, nil
}
