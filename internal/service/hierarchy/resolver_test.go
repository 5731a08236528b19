package hierarchy

import (
	"context"
	"testing"

	"github.com/absenin/absensi-backend-go/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeUserRepo serves GetDirectReports from an in-memory adjacency map.
type fakeUserRepo struct {
	user.UserRepository
	adjacency map[string][]string
}

func (f *fakeUserRepo) GetDirectReports(ctx context.Context, managerID string) ([]user.User, error) {
	var reports []user.User
	for _, id := range f.adjacency[managerID] {
		reports = append(reports, user.User{ID: id})
	}
	return reports, nil
}

func TestSubordinatesOf_TransitiveClosure(t *testing.T) {
	repo := &fakeUserRepo{adjacency: map[string][]string{
		"gm":  {"mgr1", "mgr2"},
		"mgr1": {"spv1"},
		"spv1": {"kry1", "kry2"},
		"mgr2": {"kry3"},
	}}
	r := NewResolver(repo)

	subs, err := r.SubordinatesOf(context.Background(), "gm")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"mgr1", "mgr2", "spv1", "kry1", "kry2", "kry3"}, subs)
}

func TestSubordinatesOf_ExcludesManagerItself(t *testing.T) {
	repo := &fakeUserRepo{adjacency: map[string][]string{
		"mgr": {"kry1"},
	}}
	r := NewResolver(repo)

	subs, err := r.SubordinatesOf(context.Background(), "mgr")
	require.NoError(t, err)
	assert.NotContains(t, subs, "mgr")
}

func TestSubordinatesOf_LeafManager(t *testing.T) {
	repo := &fakeUserRepo{adjacency: map[string][]string{}}
	r := NewResolver(repo)

	subs, err := r.SubordinatesOf(context.Background(), "kry1")
	require.NoError(t, err)
	assert.Empty(t, subs)
}

func TestSubordinatesOf_TerminatesOnCycle(t *testing.T) {
	// a -> b -> c -> a is broken data; the traversal must still terminate
	// and report b and c exactly once.
	repo := &fakeUserRepo{adjacency: map[string][]string{
		"a": {"b"},
		"b": {"c"},
		"c": {"a"},
	}}
	r := NewResolver(repo)

	subs, err := r.SubordinatesOf(context.Background(), "a")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"b", "c"}, subs)
}

func TestIsSubordinate(t *testing.T) {
	repo := &fakeUserRepo{adjacency: map[string][]string{
		"gm":   {"mgr1"},
		"mgr1": {"spv1"},
		"spv1": {"kry1"},
	}}
	r := NewResolver(repo)
	ctx := context.Background()

	ok, err := r.IsSubordinate(ctx, "gm", "kry1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = r.IsSubordinate(ctx, "mgr1", "gm")
	require.NoError(t, err)
	assert.False(t, ok)

	// A user is not their own subordinate.
	ok, err = r.IsSubordinate(ctx, "gm", "gm")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestIsSubordinate_CyclicGraph(t *testing.T) {
	repo := &fakeUserRepo{adjacency: map[string][]string{
		"a": {"b"},
		"b": {"a"},
	}}
	r := NewResolver(repo)

	ok, err := r.IsSubordinate(context.Background(), "a", "missing")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestClosure_InMemory(t *testing.T) {
	adjacency := map[string][]string{
		"gm":   {"mgr1", "mgr2"},
		"mgr1": {"kry1"},
	}

	assert.ElementsMatch(t, []string{"mgr1", "mgr2", "kry1"}, Closure(adjacency, "gm"))
	assert.Empty(t, Closure(adjacency, "kry1"))
}
