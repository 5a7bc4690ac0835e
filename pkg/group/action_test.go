package group_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-storefront/pkg/group"
)

func TestReduceMatchesMethods(t *testing.T) {
	start := group.New(colorBlank, colorBlank())

	actions := []group.Action{
		group.Append(),
		group.UpdateField(1, "name", "Blue"),
		group.Append(),
		group.UpdateField(2, "color_code", "#000"),
		group.RemoveAt(0),
	}

	reduced := start
	for _, action := range actions {
		reduced = group.Reduce(reduced, action)
	}

	direct := start.Append().UpdateField(1, "name", "Blue").Append().UpdateField(2, "color_code", "#000").RemoveAt(0)

	if diff := cmp.Diff(direct.Records(), reduced.Records()); diff != "" {
		t.Fatalf("reduce mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(direct.IDs(), reduced.IDs()); diff != "" {
		t.Fatalf("reduce ids mismatch (-want +got):\n%s", diff)
	}
}

func TestReduceIDTakesPrecedenceOverIndex(t *testing.T) {
	g := group.New(colorBlank, colorBlank(), colorBlank())
	second := g.IDs()[1]

	g = group.Reduce(g, group.Action{Op: group.OpUpdateField, Index: 0, ID: second, Field: "name", Value: "Teal"})

	first, _ := g.At(0)
	target, _ := g.At(1)
	if first.Field("name") != "" || target.Field("name") != "Teal" {
		t.Fatalf("expected update on id %d only, got %#v / %#v", second, first, target)
	}
}

func TestReduceUnknownOrMissingTargetIsNoop(t *testing.T) {
	g := group.New(colorBlank, colorRecord("Red", "#f00"))

	cases := []group.Action{
		{Op: "rename"},
		group.RemoveByID(99),
		group.UpdateFieldByID(99, "name", "x"),
		group.SetImageByID(99, nil),
		group.ClearImage(5),
	}
	for _, action := range cases {
		next := group.Reduce(g, action)
		if diff := cmp.Diff(g.Records(), next.Records()); diff != "" {
			t.Fatalf("action %#v changed the group (-want +got):\n%s", action, diff)
		}
	}
}
