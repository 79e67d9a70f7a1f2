package internal

// rewire makes next the subscription set of sub: sources only in prev are
// unsubscribed, sources only in next are subscribed.
func rewire(sub Subscriber, prev, next []Dependency) {
	keep := make(map[*Source]struct{}, len(next))
	for _, dep := range next {
		keep[dep.Source] = struct{}{}
	}

	had := make(map[*Source]struct{}, len(prev))
	for _, dep := range prev {
		had[dep.Source] = struct{}{}
		if _, ok := keep[dep.Source]; !ok {
			dep.Source.unsubscribe(sub)
		}
	}

	for _, dep := range next {
		if _, ok := had[dep.Source]; !ok {
			dep.Source.subscribe(sub)
		}
	}
}

// mergeDeps returns prev extended with the sources of next it does not
// already contain. Used after a failed run so the node stays reachable.
func mergeDeps(prev, next []Dependency) []Dependency {
	merged := make([]Dependency, 0, len(prev)+len(next))
	seen := make(map[*Source]struct{}, len(prev)+len(next))

	for _, deps := range [][]Dependency{prev, next} {
		for _, dep := range deps {
			if _, ok := seen[dep.Source]; ok {
				continue
			}
			seen[dep.Source] = struct{}{}
			merged = append(merged, dep)
		}
	}

	return merged
}

// stale reports whether any dependency was written after it was read. A write
// landing between the read and the subscription would otherwise go unnoticed.
func stale(deps []Dependency) bool {
	for _, dep := range deps {
		if dep.Source.Version() != dep.Version {
			return true
		}
	}
	return false
}

func unsubscribeAll(sub Subscriber, deps []Dependency) {
	for _, dep := range deps {
		dep.Source.unsubscribe(sub)
	}
}

func dependencyIDs(deps []Dependency) []NodeID {
	ids := make([]NodeID, len(deps))
	for i, dep := range deps {
		ids[i] = dep.Source.ID()
	}
	return ids
}
