package format

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// Schedule orders the enabled rules so that every rule runs after the
// enabled rules it names in RunsAfter. Among rules that are ready at the same
// time, those sharing their first shared option key are kept together and
// names break the remaining ties, so the order is deterministic.
func Schedule(registry *Registry, enabled map[string]bool) ([]Rule, error) {
	nodes := make(map[string]Rule, len(enabled))
	for name, on := range enabled {
		if !on {
			continue
		}
		rule, ok := registry.Get(name)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownRule, name)
		}
		nodes[name] = rule
	}

	indegree := make(map[string]int, len(nodes))
	dependents := make(map[string][]string, len(nodes))
	for name := range nodes {
		indegree[name] = 0
	}
	for name, rule := range nodes {
		for _, dep := range rule.RunsAfter() {
			if _, ok := nodes[dep]; !ok || dep == name {
				continue
			}
			indegree[name]++
			dependents[dep] = append(dependents[dep], name)
		}
	}

	var ready []Rule
	for name, n := range indegree {
		if n == 0 {
			ready = append(ready, nodes[name])
		}
	}

	order := make([]Rule, 0, len(nodes))
	for len(ready) > 0 {
		slices.SortFunc(ready, compareReady)
		next := ready[0]
		ready = ready[1:]
		order = append(order, next)

		for _, name := range dependents[next.Name()] {
			indegree[name]--
			if indegree[name] == 0 {
				ready = append(ready, nodes[name])
			}
		}
	}

	if len(order) < len(nodes) {
		var stuck []string
		for name, n := range indegree {
			if n > 0 {
				stuck = append(stuck, name)
			}
		}
		slices.Sort(stuck)
		return nil, fmt.Errorf("%w: %s", ErrRuleCycle, strings.Join(stuck, ", "))
	}

	return order, nil
}

func compareReady(a, b Rule) int {
	return cmp.Or(
		cmp.Compare(groupKey(a), groupKey(b)),
		cmp.Compare(a.Name(), b.Name()),
	)
}

func groupKey(r Rule) string {
	if shared := r.SharedOptions(); len(shared) > 0 {
		return shared[0]
	}
	return ""
}

// Names returns the names of rules in order.
func Names(rules []Rule) []string {
	names := make([]string, len(rules))
	for i, r := range rules {
		names[i] = r.Name()
	}
	return names
}
