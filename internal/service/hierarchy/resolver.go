package hierarchy

import (
	"context"
	"fmt"

	"github.com/absenin/absensi-backend-go/internal/domain/user"
)

// Resolver computes the transitive set of subordinates under a manager by
// walking the atasan_id relation. The walk is iterative with an explicit
// stack and a visited set, so cyclic or malformed graphs terminate instead
// of recursing forever; a cycle simply contributes no further subordinates.
type Resolver struct {
	userRepo user.UserRepository
}

func NewResolver(userRepo user.UserRepository) *Resolver {
	return &Resolver{userRepo: userRepo}
}

// SubordinatesOf returns every direct and indirect subordinate id of
// managerID. The manager itself is never included.
func (r *Resolver) SubordinatesOf(ctx context.Context, managerID string) ([]string, error) {
	visited := map[string]struct{}{managerID: {}}
	var result []string

	stack := []string{managerID}
	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		reports, err := r.userRepo.GetDirectReports(ctx, current)
		if err != nil {
			return nil, fmt.Errorf("failed to get direct reports of %s: %w", current, err)
		}

		for _, rep := range reports {
			if _, seen := visited[rep.ID]; seen {
				continue
			}
			visited[rep.ID] = struct{}{}
			result = append(result, rep.ID)
			stack = append(stack, rep.ID)
		}
	}

	return result, nil
}

// IsSubordinate reports whether candidateID sits anywhere under managerID.
// It short-circuits as soon as the candidate turns up in the traversal.
func (r *Resolver) IsSubordinate(ctx context.Context, managerID, candidateID string) (bool, error) {
	if managerID == candidateID {
		return false, nil
	}

	visited := map[string]struct{}{managerID: {}}

	stack := []string{managerID}
	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		reports, err := r.userRepo.GetDirectReports(ctx, current)
		if err != nil {
			return false, fmt.Errorf("failed to get direct reports of %s: %w", current, err)
		}

		for _, rep := range reports {
			if rep.ID == candidateID {
				return true, nil
			}
			if _, seen := visited[rep.ID]; seen {
				continue
			}
			visited[rep.ID] = struct{}{}
			stack = append(stack, rep.ID)
		}
	}

	return false, nil
}

// Closure computes the subordinate set over an in-memory adjacency map
// (manager id -> direct report ids). Same traversal as SubordinatesOf
// without touching storage; bulk callers that prefetch the whole user
// table use it to avoid per-node queries.
func Closure(adjacency map[string][]string, managerID string) []string {
	visited := map[string]struct{}{managerID: {}}
	var result []string

	stack := []string{managerID}
	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for _, rep := range adjacency[current] {
			if _, seen := visited[rep]; seen {
				continue
			}
			visited[rep] = struct{}{}
			result = append(result, rep)
			stack = append(stack, rep)
		}
	}

	return result
}
