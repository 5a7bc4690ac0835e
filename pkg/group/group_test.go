package group_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-storefront/pkg/group"
	"github.com/goliatone/go-storefront/pkg/preview"
)

func colorBlank() group.Fields {
	return group.NewFields("name", "color_code")
}

func colorRecord(name, code string) group.Fields {
	return group.Fields{Values: map[string]string{"name": name, "color_code": code}}
}

func TestGroupAppendAddsBlankRecord(t *testing.T) {
	g := group.New(colorBlank, colorRecord("Red", "#f00"), colorRecord("Green", "#0f0"))

	next := g.Append()

	if next.Len() != g.Len()+1 {
		t.Fatalf("expected length %d, got %d", g.Len()+1, next.Len())
	}
	last, ok := next.At(next.Len() - 1)
	if !ok {
		t.Fatalf("expected appended record")
	}
	if diff := cmp.Diff(colorBlank(), last); diff != "" {
		t.Fatalf("appended record mismatch (-want +got):\n%s", diff)
	}
	if g.Len() != 2 {
		t.Fatalf("append mutated the original group")
	}
}

func TestGroupAppendZeroValueWithoutBlank(t *testing.T) {
	g := group.New[group.Fields](nil).Append()

	record, _ := g.At(0)
	if !record.Empty() {
		t.Fatalf("expected empty record, got %#v", record)
	}
}

func TestGroupRemoveAtShiftsLaterRecords(t *testing.T) {
	g := group.New(colorBlank,
		colorRecord("Red", "#f00"),
		colorRecord("Green", "#0f0"),
		colorRecord("Blue", "#00f"),
		colorRecord("Black", "#000"),
	)

	next := g.RemoveAt(1)

	want := []group.Fields{
		colorRecord("Red", "#f00"),
		colorRecord("Blue", "#00f"),
		colorRecord("Black", "#000"),
	}
	if diff := cmp.Diff(want, next.Records()); diff != "" {
		t.Fatalf("records mismatch (-want +got):\n%s", diff)
	}
	if g.Len() != 4 {
		t.Fatalf("remove mutated the original group")
	}
}

func TestGroupRemoveAtOutOfRangeIsNoop(t *testing.T) {
	g := group.New(colorBlank, colorRecord("Red", "#f00"), colorRecord("Blue", "#00f"))

	for _, index := range []int{-1, 2, 10} {
		next := g.RemoveAt(index)
		if diff := cmp.Diff(g.Records(), next.Records()); diff != "" {
			t.Fatalf("RemoveAt(%d) changed records (-want +got):\n%s", index, diff)
		}
		if diff := cmp.Diff(g.IDs(), next.IDs()); diff != "" {
			t.Fatalf("RemoveAt(%d) changed ids (-want +got):\n%s", index, diff)
		}
	}
}

func TestGroupUpdateFieldTouchesOnlyTarget(t *testing.T) {
	g := group.New(colorBlank, colorRecord("", "#f00"), colorRecord("Green", "#0f0"))

	next := g.UpdateField(0, "name", "Red")

	want := []group.Fields{
		colorRecord("Red", "#f00"),
		colorRecord("Green", "#0f0"),
	}
	if diff := cmp.Diff(want, next.Records()); diff != "" {
		t.Fatalf("records mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(g.IDs(), next.IDs()); diff != "" {
		t.Fatalf("update reordered records (-want +got):\n%s", diff)
	}
	original, _ := g.At(0)
	if original.Field("name") != "" {
		t.Fatalf("update mutated the original record")
	}
}

func TestGroupUpdateFieldOutOfRangeIsNoop(t *testing.T) {
	g := group.New(colorBlank, colorRecord("Red", "#f00"))

	next := g.UpdateField(3, "name", "Blue")

	if diff := cmp.Diff(g.Records(), next.Records()); diff != "" {
		t.Fatalf("records changed (-want +got):\n%s", diff)
	}
}

func TestGroupColorScenario(t *testing.T) {
	g := group.New(colorBlank, colorBlank())

	g = g.Append()
	if g.Len() != 2 {
		t.Fatalf("expected 2 records, got %d", g.Len())
	}
	if diff := cmp.Diff([]group.Fields{colorBlank(), colorBlank()}, g.Records()); diff != "" {
		t.Fatalf("after append (-want +got):\n%s", diff)
	}

	g = g.UpdateField(1, "name", "Blue")
	want := []group.Fields{colorRecord("", ""), colorRecord("Blue", "")}
	if diff := cmp.Diff(want, g.Records()); diff != "" {
		t.Fatalf("after update (-want +got):\n%s", diff)
	}

	g = g.RemoveAt(0)
	want = []group.Fields{colorRecord("Blue", "")}
	if diff := cmp.Diff(want, g.Records()); diff != "" {
		t.Fatalf("after remove (-want +got):\n%s", diff)
	}
}

func TestGroupIDsAreStableAndNeverReused(t *testing.T) {
	g := group.New(colorBlank).Append().Append().Append()
	ids := g.IDs()

	g = g.RemoveAt(1)
	if diff := cmp.Diff([]group.ID{ids[0], ids[2]}, g.IDs()); diff != "" {
		t.Fatalf("ids after remove (-want +got):\n%s", diff)
	}

	g = g.Append()
	fresh := g.IDs()[2]
	for _, id := range ids {
		if fresh == id {
			t.Fatalf("id %d reused after removal", id)
		}
	}
	if g.IndexOf(ids[2]) != 1 {
		t.Fatalf("expected id %d at position 1, got %d", ids[2], g.IndexOf(ids[2]))
	}
	if g.IndexOf(ids[1]) != -1 {
		t.Fatalf("removed id should not resolve")
	}
}

func TestGroupByIDOperations(t *testing.T) {
	g := group.New(colorBlank, colorRecord("Red", ""), colorRecord("Blue", ""))
	blueID := g.IDs()[1]

	g = g.RemoveAt(0).UpdateFieldID(blueID, "color_code", "#00f")

	want := []group.Fields{colorRecord("Blue", "#00f")}
	if diff := cmp.Diff(want, g.Records()); diff != "" {
		t.Fatalf("records mismatch (-want +got):\n%s", diff)
	}

	g = g.RemoveID(blueID)
	if g.Len() != 0 {
		t.Fatalf("expected empty group, got %d", g.Len())
	}
}

func TestGroupSetImageAndClear(t *testing.T) {
	img := &preview.Image{Preview: "data:image/png;base64,AA==", MediaType: "image/png"}
	g := group.New(colorBlank, colorBlank())

	g = g.SetImage(0, img)
	record, _ := g.At(0)
	if record.ImageRef() != img {
		t.Fatalf("expected image to be attached")
	}

	g = g.SetImage(0, nil)
	record, _ = g.At(0)
	if record.ImageRef() != nil {
		t.Fatalf("expected image to be cleared")
	}
}

func TestGroupResetKeepsCountingIDs(t *testing.T) {
	g := group.New(colorBlank, colorBlank(), colorBlank())
	before := g.IDs()

	g = g.Reset(colorRecord("White", "#fff"))
	if g.Len() != 1 {
		t.Fatalf("expected 1 record, got %d", g.Len())
	}
	if g.IDs()[0] <= before[len(before)-1] {
		t.Fatalf("expected reset ids to continue after %d, got %d", before[len(before)-1], g.IDs()[0])
	}
}
