/*
 * stress-test runs the spring embedder on generated graphs of increasing
 * size and logs per-run statistics
 */
package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/suxatcode/cose-layout/layout"
)

func randomTree(rnd *rand.Rand, n int) *layout.Graph {
	graph := &layout.Graph{}
	for i := 0; i < n; i++ {
		graph.Nodes = append(graph.Nodes, &layout.Node{
			ID:     fmt.Sprintf("n%d", i),
			Width:  20 + float64(rnd.Intn(80)),
			Height: 20 + float64(rnd.Intn(40)),
		})
	}
	for i := 1; i < n; i++ {
		graph.Edges = append(graph.Edges, &layout.Edge{
			Source: graph.Nodes[rnd.Intn(i)].ID,
			Target: graph.Nodes[i].ID,
		})
	}
	return graph
}

// randomCyclic adds n/4 extra edges to a random tree
func randomCyclic(rnd *rand.Rand, n int) *layout.Graph {
	graph := randomTree(rnd, n)
	for i := 0; i < n/4; i++ {
		graph.Edges = append(graph.Edges, &layout.Edge{
			Source: graph.Nodes[rnd.Intn(n)].ID,
			Target: graph.Nodes[rnd.Intn(n)].ID,
		})
	}
	return graph
}

// randomDisconnected builds two cyclic components with no edges between them
func randomDisconnected(rnd *rand.Rand, n int) *layout.Graph {
	graph := randomCyclic(rnd, n/2)
	other := randomCyclic(rnd, n-n/2)
	for _, node := range other.Nodes {
		node.ID = "m" + node.ID
		graph.Nodes = append(graph.Nodes, node)
	}
	for _, edge := range other.Edges {
		edge.Source = "m" + edge.Source
		edge.Target = "m" + edge.Target
		graph.Edges = append(graph.Edges, edge)
	}
	return graph
}

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	ctx := log.Logger.WithContext(context.Background())
	rnd := rand.New(rand.NewSource(42))
	embedder := layout.NewSpringEmbedder(layout.SpringEmbedderConfig{})
	for _, size := range []int{10, 50, 100, 500, 1000} {
		for _, run := range []struct {
			Kind  string
			Graph *layout.Graph
		}{
			{Kind: "tree", Graph: randomTree(rnd, size)},
			{Kind: "cyclic", Graph: randomCyclic(rnd, size)},
			{Kind: "disconnected", Graph: randomDisconnected(rnd, size)},
		} {
			_, stats := embedder.ComputeLayout(ctx, run.Graph)
			log.Info().
				Str("kind", run.Kind).
				Int("nodes", size).
				Int("iterations", stats.Iterations).
				Dur("total_time", stats.TotalTime).
				Msg("layout finished")
		}
	}
}
