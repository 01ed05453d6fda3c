// Package cycle validates decomposition tables for reference cycles and
// orders acyclic ones.
package cycle

import (
	"fmt"
	"maps"
	"slices"

	"github.com/Iron-Ham/zhong/internal/decomp"
	"github.com/Iron-Ham/zhong/internal/errors"
)

// IsInCycle reports whether id can reach itself through its referents.
//
// Each direct referent is walked depth first with its own visited set, so
// an unrelated cycle below id terminates the walk without making id part of
// it. A referent missing from the table is a MalformedRecordError naming the
// line of the record that refers to it.
func IsInCycle(t *decomp.Table, id string) (bool, error) {
	rec, err := t.Get(id)
	if err != nil {
		return false, err
	}

	for _, ref := range rec.Referents() {
		visited := make(map[string]bool)
		found, err := reaches(t, rec, ref, id, visited)
		if err != nil {
			return false, err
		}
		if found {
			return true, nil
		}
	}
	return false, nil
}

// reaches walks from node, which parent refers to, looking for target.
func reaches(t *decomp.Table, parent decomp.Record, node, target string, visited map[string]bool) (bool, error) {
	if node == target {
		return true, nil
	}
	if visited[node] {
		return false, nil
	}
	visited[node] = true

	rec, err := t.Get(node)
	if err != nil {
		return false, errors.NewMalformedRecordError(
			fmt.Sprintf("%q refers to unknown id %q", parent.ID, node), err,
		).WithLine(parent.Line)
	}

	for _, ref := range rec.Referents() {
		found, err := reaches(t, rec, ref, target, visited)
		if err != nil || found {
			return found, err
		}
	}
	return false, nil
}

// Message formats the diagnostic for a record found in a cycle.
func Message(rec decomp.Record) string {
	if rec.Kind == decomp.Group {
		return fmt.Sprintf("Group %s is in a cycle.", rec.ID)
	}
	return fmt.Sprintf("%q is in a cycle.", rec.ID)
}

// CheckAll returns one diagnostic per record that is part of a cycle, in
// sorted id order. The result is empty, not nil, for an acyclic table.
func CheckAll(t *decomp.Table) ([]string, error) {
	messages := []string{}
	for _, id := range t.SortedKeys() {
		inCycle, err := IsInCycle(t, id)
		if err != nil {
			return nil, err
		}
		if inCycle {
			rec, _ := t.Get(id)
			messages = append(messages, Message(rec))
		}
	}
	return messages, nil
}

// TopologicalSort orders graph so that every node comes after the nodes it
// points at. Nodes that only appear as targets are included. Keys are
// visited in sorted order and targets in the order listed.
func TopologicalSort(graph map[string][]string) ([]string, error) {
	const (
		unvisited = iota
		inProgress
		done
	)
	state := make(map[string]int, len(graph))
	order := make([]string, 0, len(graph))

	var visit func(node string, path []string) error
	visit = func(node string, path []string) error {
		switch state[node] {
		case done:
			return nil
		case inProgress:
			return errors.NewCycleError("").
				WithMessage("the graph has a cycle").
				WithPath(append(path, node))
		}
		state[node] = inProgress
		path = append(path, node)

		for _, next := range graph[node] {
			if err := visit(next, path); err != nil {
				return err
			}
		}

		state[node] = done
		order = append(order, node)
		return nil
	}

	for _, node := range slices.Sorted(maps.Keys(graph)) {
		if err := visit(node, nil); err != nil {
			return nil, err
		}
	}
	return order, nil
}

// Order returns the table's ids with every component before the records
// built from it.
func Order(t *decomp.Table) ([]string, error) {
	graph := make(map[string][]string, t.Len())
	for id := range t.Keys() {
		rec, _ := t.Get(id)
		graph[id] = rec.Referents()
	}
	return TopologicalSort(graph)
}
