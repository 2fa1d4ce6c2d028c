package view

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
)

var (
	// ErrResourceCycle is returned when a dependency cycle between
	// resources is found. It always indicates a misconfiguration of a
	// RelationCalculator: a resource ends up needing to be rendered both
	// before and after another one.
	ErrResourceCycle = errors.New("resource cycle detected")
)

// resource is implemented by Script and Stylesheet so both can be ordered by
// the same graph code.
type resource[Type any] interface {
	key() string
	linked() bool
	implicitlyOrdered() bool
	relation(ctx context.Context, other Type) ResourceRelationship
	validate() error
}

// graph is a directed acyclic graph of resources. Nodes point to their
// dependencies and dependencies are always walked first; i.e., if there's a
// node 1 and a node 2, and an edge from 1->2, 2 will always appear before 1
// when walking the graph.
type graph[Type resource[Type]] struct {
	nodes []Type

	// edgesTo is keyed by the node being pointed to. With an edge from
	// 1->2, edgesTo has a key of 2 holding 1.
	edgesTo map[int]map[int]struct{}

	// edgesFrom is keyed by the node doing the pointing. With an edge from
	// 1->2, edgesFrom has a key of 1 holding 2.
	edgesFrom map[int]map[int]struct{}
}

func newGraph[Type resource[Type]]() *graph[Type] {
	return &graph[Type]{
		edgesTo:   map[int]map[int]struct{}{},
		edgesFrom: map[int]map[int]struct{}{},
	}
}

// add includes the resources one Component declares. Each resource gets an
// implicit dependency on the previous implicitly-ordered resource in the
// slice, so their order is preserved when rendering them. Resources already
// in the graph are skipped.
func (g *graph[Type]) add(resources []Type) error {
	last := -1
	for _, res := range resources {
		if err := res.validate(); err != nil {
			return fmt.Errorf("%s: %w", res.key(), err)
		}
		if slices.ContainsFunc(g.nodes, func(existing Type) bool {
			return existing.key() == res.key()
		}) {
			continue
		}
		g.nodes = append(g.nodes, res)
		if !res.implicitlyOrdered() {
			continue
		}
		thisNode := len(g.nodes) - 1
		if last >= 0 {
			g.addEdge(thisNode, last)
		}
		last = thisNode
	}
	return nil
}

// addEdge records that from needs to be rendered after to.
func (g *graph[Type]) addEdge(from, to int) {
	if g.edgesFrom[from] == nil {
		g.edgesFrom[from] = map[int]struct{}{}
	}
	if g.edgesTo[to] == nil {
		g.edgesTo[to] = map[int]struct{}{}
	}
	g.edgesFrom[from][to] = struct{}{}
	g.edgesTo[to][from] = struct{}{}
}

// relate asks every node's RelationCalculator about every other node and
// records the explicit edges they ask for.
func (g *graph[Type]) relate(ctx context.Context) {
	for pos, res := range g.nodes {
		for compPos, comparison := range g.nodes {
			if pos == compPos {
				continue
			}
			switch res.relation(ctx, comparison) {
			case ResourceRelationshipAfter:
				g.addEdge(pos, compPos)
			case ResourceRelationshipBefore:
				g.addEdge(compPos, pos)
			case ResourceRelationshipNeutral:
				// do nothing, this doesn't imply dependency
			}
		}
	}
}

// compareNodes breaks ties between nodes that are ready at the same time:
// linked resources come before inline ones, then they're sorted by key.
func compareNodes[Type resource[Type]](first, second Type) int {
	if first.linked() != second.linked() {
		if first.linked() {
			return -1
		}
		return 1
	}
	return cmp.Compare(first.key(), second.key())
}

// walk returns the nodes in dependency order. It consumes the graph's edges.
func (g *graph[Type]) walk() ([]Type, error) {
	ready := make([]int, 0, len(g.nodes))
	results := make([]Type, 0, len(g.nodes))
	byNode := func(a, b int) int {
		return compareNodes(g.nodes[a], g.nodes[b])
	}
	for pos := range g.nodes {
		if len(g.edgesFrom[pos]) < 1 {
			delete(g.edgesFrom, pos)
			ready = append(ready, pos)
		}
	}
	slices.SortFunc(ready, byNode)
	for len(ready) > 0 {
		pos := ready[0]
		ready = ready[1:]
		results = append(results, g.nodes[pos])
		var readyChanged bool
		for child := range g.edgesTo[pos] {
			delete(g.edgesFrom[child], pos)
			if len(g.edgesFrom[child]) < 1 {
				delete(g.edgesFrom, child)
				ready = append(ready, child)
				readyChanged = true
			}
		}
		delete(g.edgesTo, pos)
		if readyChanged {
			slices.SortFunc(ready, byNode)
		}
	}
	if len(g.edgesFrom) > 0 {
		return results, fmt.Errorf("%w: %s", ErrResourceCycle, g.describe())
	}
	return results, nil
}

// describe lists the remaining edges and every resource, for cycle errors.
func (g *graph[Type]) describe() string {
	var edges, ids []string
	for _, from := range slices.Sorted(maps.Keys(g.edgesFrom)) {
		var targets []string
		for _, to := range slices.Sorted(maps.Keys(g.edgesFrom[from])) {
			targets = append(targets, strconv.Itoa(to))
		}
		edges = append(edges, fmt.Sprintf("%d:%s", from, strings.Join(targets, ",")))
	}
	for _, node := range g.nodes {
		ids = append(ids, node.key())
	}
	return fmt.Sprintf("edges_from=[%s], resources=[%s]", strings.Join(edges, "; "), strings.Join(ids, ", "))
}

// orderScripts collects the scripts of every Component, split into the ones
// for the head and the ones for the footer, each in render order.
func orderScripts(ctx context.Context, components []Component) (head, foot []Script, err error) {
	headGraph, footGraph := newGraph[Script](), newGraph[Script]()
	for _, component := range components {
		provider, ok := component.(ScriptProvider)
		if !ok {
			continue
		}
		var headScripts, footScripts []Script
		for _, script := range provider.Scripts(ctx) {
			if script.inHead() {
				headScripts = append(headScripts, script)
			} else {
				footScripts = append(footScripts, script)
			}
		}
		if err := headGraph.add(headScripts); err != nil {
			return nil, nil, fmt.Errorf("error adding scripts from %T: %w", component, err)
		}
		if err := footGraph.add(footScripts); err != nil {
			return nil, nil, fmt.Errorf("error adding scripts from %T: %w", component, err)
		}
	}
	headGraph.relate(ctx)
	footGraph.relate(ctx)
	head, err = headGraph.walk()
	if err != nil {
		return nil, nil, fmt.Errorf("error ordering head scripts: %w", err)
	}
	foot, err = footGraph.walk()
	if err != nil {
		return nil, nil, fmt.Errorf("error ordering footer scripts: %w", err)
	}
	return head, foot, nil
}

// orderStylesheets collects the stylesheets of every Component in render
// order.
func orderStylesheets(ctx context.Context, components []Component) ([]Stylesheet, error) {
	sheets := newGraph[Stylesheet]()
	for _, component := range components {
		provider, ok := component.(StylesheetProvider)
		if !ok {
			continue
		}
		if err := sheets.add(provider.Stylesheets(ctx)); err != nil {
			return nil, fmt.Errorf("error adding stylesheets from %T: %w", component, err)
		}
	}
	sheets.relate(ctx)
	ordered, err := sheets.walk()
	if err != nil {
		return nil, fmt.Errorf("error ordering stylesheets: %w", err)
	}
	return ordered, nil
}
