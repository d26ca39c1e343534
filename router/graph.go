package router

import (
	"container/heap"
	"math"
)

type (
	VertexID int
	EdgeID   int
)

type Edge struct {
	From   VertexID
	To     VertexID
	Weight float64
}

// Graph is a directed graph with non-negative edge weights.
type Graph struct {
	edges     []Edge
	incidence [][]EdgeID
}

func NewGraph(vertices int) *Graph {
	return &Graph{incidence: make([][]EdgeID, vertices)}
}

func (g *Graph) VertexCount() int { return len(g.incidence) }

func (g *Graph) EdgeCount() int { return len(g.edges) }

func (g *Graph) AddEdge(e Edge) EdgeID {
	id := EdgeID(len(g.edges))
	g.edges = append(g.edges, e)
	g.incidence[e.From] = append(g.incidence[e.From], id)
	return id
}

func (g *Graph) Edge(id EdgeID) Edge { return g.edges[id] }

// ShortestPath runs Dijkstra from one vertex to another. It returns the edges
// of the path in order and its total weight; ok is false when to cannot be
// reached.
func (g *Graph) ShortestPath(from, to VertexID) (path []EdgeID, weight float64, ok bool) {
	n := len(g.incidence)
	if int(from) >= n || int(to) >= n || from < 0 || to < 0 {
		return nil, 0, false
	}

	dist := make([]float64, n)
	prev := make([]EdgeID, n)
	for i := range dist {
		dist[i] = math.Inf(1)
		prev[i] = -1
	}
	dist[from] = 0

	pq := &queue{{vertex: from}}
	for pq.Len() > 0 {
		cur := heap.Pop(pq).(item)
		if cur.dist > dist[cur.vertex] {
			continue
		}
		if cur.vertex == to {
			break
		}
		for _, id := range g.incidence[cur.vertex] {
			e := g.edges[id]
			if d := cur.dist + e.Weight; d < dist[e.To] {
				dist[e.To] = d
				prev[e.To] = id
				heap.Push(pq, item{vertex: e.To, dist: d})
			}
		}
	}

	if math.IsInf(dist[to], 1) {
		return nil, 0, false
	}
	for v := to; v != from; {
		id := prev[v]
		path = append(path, id)
		v = g.edges[id].From
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path, dist[to], true
}

type item struct {
	vertex VertexID
	dist   float64
}

type queue []item

func (q queue) Len() int           { return len(q) }
func (q queue) Less(i, j int) bool { return q[i].dist < q[j].dist }
func (q queue) Swap(i, j int)      { q[i], q[j] = q[j], q[i] }
func (q *queue) Push(x any)        { *q = append(*q, x.(item)) }
func (q *queue) Pop() any {
	old := *q
	it := old[len(old)-1]
	*q = old[:len(old)-1]
	return it
}
