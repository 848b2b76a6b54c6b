package notify

import "sort"

// RecipientSet is the deduplicated set of user ids that must observe an event.
type RecipientSet map[int64]struct{}

// Contains reports whether id is in the set.
func (s RecipientSet) Contains(id int64) bool {
	_, ok := s[id]
	return ok
}

// IDs returns the set's members in ascending order.
func (s RecipientSet) IDs() []int64 {
	ids := make([]int64, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Resolve computes which users must receive the decoded change.
// Deterministic and pure.
func Resolve(c *Change) RecipientSet {
	switch {
	case c.Message != nil:
		return setOf(c.Message.Members)
	case c.Diff != nil:
		return c.Diff.recipients()
	}
	return RecipientSet{}
}

func (d *ChatDiff) recipients() RecipientSet {
	switch {
	case d.Old != nil && d.New != nil:
		oldSet := setOf(d.Old.Members)
		newSet := setOf(d.New.Members)
		// Identical member sets mean no membership-visible change: nobody is
		// notified, which also suppresses content-only edits such as renames.
		if setsEqual(oldSet, newSet) {
			return RecipientSet{}
		}
		// Union of both sides, so removed members learn they were removed and
		// added members learn they were added.
		for id := range newSet {
			oldSet[id] = struct{}{}
		}
		return oldSet
	case d.Old != nil:
		return setOf(d.Old.Members)
	case d.New != nil:
		return setOf(d.New.Members)
	}
	return RecipientSet{}
}

func setOf(ids []int64) RecipientSet {
	s := make(RecipientSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

func setsEqual(a, b RecipientSet) bool {
	if len(a) != len(b) {
		return false
	}
	for id := range a {
		if _, ok := b[id]; !ok {
			return false
		}
	}
	return true
}
