package network

import (
	"fmt"
	"sort"
)

// Violation kinds reported by Validate.
const (
	ViolationDanglingEndpoint = "dangling_endpoint"
	ViolationNegativeWeight   = "negative_weight"
	ViolationAsymmetricEdge   = "asymmetric_edge"
)

// Violation is one consistency finding.
type Violation struct {
	Kind   string
	Detail string
}

// Validate scans the network for consistency problems: connections whose
// endpoints were never registered, negative weights, and unordered pairs
// whose two directions disagree. It reports findings in a deterministic
// order and never fails; an empty result means the network is consistent.
func (n *Network) Validate() []Violation {
	n.mu.RLock()
	defer n.mu.RUnlock()

	var violations []Violation

	froms := make([]string, 0, len(n.adjacency))
	for from := range n.adjacency {
		froms = append(froms, from)
	}
	sort.Strings(froms)

	for _, from := range froms {
		tos := make([]string, 0, len(n.adjacency[from]))
		for to := range n.adjacency[from] {
			tos = append(tos, to)
		}
		sort.Strings(tos)

		for _, to := range tos {
			e := n.adjacency[from][to]

			// Pair-level checks run once, from the lexicographically
			// smaller endpoint.
			if from < to {
				for _, endpoint := range []string{from, to} {
					if _, ok := n.stations[endpoint]; !ok {
						violations = append(violations, Violation{
							Kind:   ViolationDanglingEndpoint,
							Detail: fmt.Sprintf("connection %s-%s references unregistered station %q", from, to, endpoint),
						})
					}
				}
				if e.distanceKm < 0 {
					violations = append(violations, Violation{
						Kind:   ViolationNegativeWeight,
						Detail: fmt.Sprintf("connection %s-%s has negative distance %.3f", from, to, e.distanceKm),
					})
				}
				if e.timeMin < 0 {
					violations = append(violations, Violation{
						Kind:   ViolationNegativeWeight,
						Detail: fmt.Sprintf("connection %s-%s has negative time %.3f", from, to, e.timeMin),
					})
				}
			}

			back, ok := n.adjacency[to][from]
			if !ok || back != e {
				violations = append(violations, Violation{
					Kind:   ViolationAsymmetricEdge,
					Detail: fmt.Sprintf("connection %s-%s is not mirrored by %s-%s", from, to, to, from),
				})
			}
		}
	}
	return violations
}
