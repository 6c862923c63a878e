package layout

import (
	"errors"
	"fmt"
	"sort"

	"github.com/bnema/floatdock/internal/domain/entity"
)

var (
	// ErrSelfAnchor is returned when a panel would become its own anchor.
	ErrSelfAnchor = errors.New("panel cannot anchor itself")
	// ErrAttachmentCycle is returned when an attachment would close a loop.
	ErrAttachmentCycle = errors.New("attachment would create a cycle")
)

// Forest stores which panel trails below which. Every follower has at most one
// anchor and Attach refuses any assignment that would create a cycle, so walking
// anchors upward always ends at a root.
type Forest struct {
	anchor    map[entity.PanelID]entity.PanelID
	followers map[entity.PanelID]map[entity.PanelID]struct{}
}

// NewForest returns an empty forest.
func NewForest() *Forest {
	return &Forest{
		anchor:    make(map[entity.PanelID]entity.PanelID),
		followers: make(map[entity.PanelID]map[entity.PanelID]struct{}),
	}
}

// Attach makes follower trail below anchor, replacing any previous anchor.
func (f *Forest) Attach(follower, anchor entity.PanelID) error {
	if follower == anchor {
		return ErrSelfAnchor
	}
	for cur, ok := anchor, true; ok; cur, ok = f.anchor[cur] {
		if cur == follower {
			return fmt.Errorf("%w: %s below %s", ErrAttachmentCycle, follower, anchor)
		}
	}

	f.unlink(follower)
	f.anchor[follower] = anchor
	set, ok := f.followers[anchor]
	if !ok {
		set = make(map[entity.PanelID]struct{})
		f.followers[anchor] = set
	}
	set[follower] = struct{}{}
	return nil
}

// AnchorOf returns the anchor of id, if any.
func (f *Forest) AnchorOf(id entity.PanelID) (entity.PanelID, bool) {
	a, ok := f.anchor[id]
	return a, ok
}

// FollowersOf returns the direct followers of id sorted by id.
func (f *Forest) FollowersOf(id entity.PanelID) []entity.PanelID {
	set := f.followers[id]
	if len(set) == 0 {
		return nil
	}
	out := make([]entity.PanelID, 0, len(set))
	for follower := range set {
		out = append(out, follower)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Detach removes id as a follower and drops every panel directly attached below
// it. Deeper descendants keep their own anchors.
func (f *Forest) Detach(id entity.PanelID) {
	f.unlink(id)
	for follower := range f.followers[id] {
		delete(f.anchor, follower)
	}
	delete(f.followers, id)
}

// Clear removes every attachment.
func (f *Forest) Clear() {
	f.anchor = make(map[entity.PanelID]entity.PanelID)
	f.followers = make(map[entity.PanelID]map[entity.PanelID]struct{})
}

// Len returns the number of follower→anchor edges.
func (f *Forest) Len() int { return len(f.anchor) }

// Edges returns a copy of the follower→anchor map.
func (f *Forest) Edges() map[entity.PanelID]entity.PanelID {
	out := make(map[entity.PanelID]entity.PanelID, len(f.anchor))
	for k, v := range f.anchor {
		out[k] = v
	}
	return out
}

// Replace discards the current edges and attaches the given ones. Edges that
// would introduce a cycle are skipped and returned.
func (f *Forest) Replace(edges map[entity.PanelID]entity.PanelID) []entity.PanelID {
	f.Clear()

	followers := make([]entity.PanelID, 0, len(edges))
	for follower := range edges {
		followers = append(followers, follower)
	}
	sort.Slice(followers, func(i, j int) bool { return followers[i] < followers[j] })

	var rejected []entity.PanelID
	for _, follower := range followers {
		if err := f.Attach(follower, edges[follower]); err != nil {
			rejected = append(rejected, follower)
		}
	}
	return rejected
}

func (f *Forest) unlink(follower entity.PanelID) {
	prev, ok := f.anchor[follower]
	if !ok {
		return
	}
	delete(f.anchor, follower)
	if set := f.followers[prev]; set != nil {
		delete(set, follower)
		if len(set) == 0 {
			delete(f.followers, prev)
		}
	}
}
