package notify

import (
	"reflect"
	"testing"

	"github.com/alfredjeanlab/chatwire/internal/model"
)

func chatWithMembers(members ...int64) *model.Chat {
	return &model.Chat{ID: 1, Members: members}
}

func TestResolve_IdenticalMembersSuppressed(t *testing.T) {
	// Same member set in a different order is still "no membership change";
	// this also suppresses content-only edits such as renames.
	change := &Change{Diff: &ChatDiff{
		Op:  OpUpdate,
		Old: chatWithMembers(1, 2, 3),
		New: chatWithMembers(3, 2, 1),
	}}

	if got := Resolve(change); len(got) != 0 {
		t.Errorf("Resolve = %v, want empty set", got.IDs())
	}
}

func TestResolve_ChangedMembersUnion(t *testing.T) {
	cases := []struct {
		name     string
		old, new []int64
		want     []int64
	}{
		{"member added", []int64{1, 2}, []int64{1, 2, 3}, []int64{1, 2, 3}},
		{"member removed", []int64{1, 2, 3}, []int64{1, 2}, []int64{1, 2, 3}},
		{"member swapped", []int64{1, 2}, []int64{1, 3}, []int64{1, 2, 3}},
		{"order ignored", []int64{2, 1}, []int64{3, 1}, []int64{1, 2, 3}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			change := &Change{Diff: &ChatDiff{
				Op:  OpUpdate,
				Old: chatWithMembers(tc.old...),
				New: chatWithMembers(tc.new...),
			}}
			if got := Resolve(change).IDs(); !reflect.DeepEqual(got, tc.want) {
				t.Errorf("Resolve = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestResolve_InsertUsesNewMembers(t *testing.T) {
	change := &Change{Diff: &ChatDiff{Op: OpInsert, New: chatWithMembers(4, 5, 4)}}

	if got := Resolve(change).IDs(); !reflect.DeepEqual(got, []int64{4, 5}) {
		t.Errorf("Resolve = %v, want [4 5]", got)
	}
}

func TestResolve_DeleteUsesOldMembers(t *testing.T) {
	change := &Change{Diff: &ChatDiff{Op: OpDelete, Old: chatWithMembers(7, 8)}}

	if got := Resolve(change).IDs(); !reflect.DeepEqual(got, []int64{7, 8}) {
		t.Errorf("Resolve = %v, want [7 8]", got)
	}
}

func TestResolve_EmptyDiff(t *testing.T) {
	change := &Change{Diff: &ChatDiff{Op: OpUpdate}}

	if got := Resolve(change); len(got) != 0 {
		t.Errorf("Resolve = %v, want empty set", got.IDs())
	}
}

func TestResolve_MessageMembersDeduplicated(t *testing.T) {
	change := &Change{Message: &MessageCreated{
		Message: &model.Message{ID: 1, ChatID: 1, Content: "hi"},
		Members: []int64{1, 2, 1},
	}}

	got := Resolve(change)
	if want := []int64{1, 2}; !reflect.DeepEqual(got.IDs(), want) {
		t.Errorf("Resolve = %v, want %v", got.IDs(), want)
	}
	if !got.Contains(2) || got.Contains(3) {
		t.Error("Contains misreports membership")
	}
}

func TestResolve_MessageOrderIndependent(t *testing.T) {
	a := Resolve(&Change{Message: &MessageCreated{Message: &model.Message{}, Members: []int64{3, 1, 2}}})
	b := Resolve(&Change{Message: &MessageCreated{Message: &model.Message{}, Members: []int64{2, 3, 1}}})

	if !reflect.DeepEqual(a.IDs(), b.IDs()) {
		t.Errorf("order-dependent resolve: %v vs %v", a.IDs(), b.IDs())
	}
}
