package asset

import (
	"testing"

	"github.com/matzehuels/pixelforge/pkg/palette"
)

func TestRegistryWithBuiltins(t *testing.T) {
	r := NewRegistry().WithBuiltins()

	for _, id := range []ID{
		NewID(KindPalette, "default"),
		NewID(KindStamp, "corner"),
		NewID(KindBrush, "checker"),
		NewID(KindShader, "default"),
		NewID(KindTarget, "p8"),
	} {
		if !r.Has(id) {
			t.Errorf("Has(%s) = false", id)
		}
		if !r.IsBuiltin(id) {
			t.Errorf("IsBuiltin(%s) = false", id)
		}
	}
	if r.Len() != 1+7+7+1+3 {
		t.Errorf("Len() = %d", r.Len())
	}
}

func TestRegistryUserShadowsBuiltin(t *testing.T) {
	r := NewRegistry().WithBuiltins()
	custom, _ := NewBrush("checker", []string{"AAB"})
	r.AddBrush(custom)

	if r.Brushes["checker"] != custom {
		t.Error("user brush should replace the builtin")
	}
	if r.IsBuiltin(NewID(KindBrush, "checker")) {
		t.Error("shadowed builtin still reported as builtin")
	}

	r.AddPalette(palette.NewBuilder("default").Define("edge", "#FF0000"))
	if r.IsBuiltin(NewID(KindPalette, "default")) {
		t.Error("shadowed default palette still reported as builtin")
	}
}

func TestRegistryComposites(t *testing.T) {
	r := NewRegistry()
	r.AddShape(&Shape{Name: "wall", Grid: NewGrid([]string{"#"})})
	r.AddComposite(&Composite{Kind: KindPrefab, Name: "room", Legend: map[rune]string{'W': "wall"}})
	r.AddComposite(&Composite{Kind: KindMap, Name: "level",
		Legend: map[rune]string{'R': "room", 'W': "wall", '.': EmptyRef}})

	if id, ok := r.ResolvePiece("wall"); !ok || id.Kind != KindShape {
		t.Errorf("ResolvePiece(wall) = %v, %v", id, ok)
	}
	if id, ok := r.ResolvePiece("room"); !ok || id.Kind != KindPrefab {
		t.Errorf("ResolvePiece(room) = %v, %v", id, ok)
	}
	if _, ok := r.ResolvePiece("ghost"); ok {
		t.Error("ResolvePiece(ghost) should miss")
	}

	level, ok := r.Composite(NewID(KindMap, "level"))
	if !ok {
		t.Fatal("Composite(map:level) missing")
	}
	refs := level.References()
	if len(refs) != 2 || refs[0] != "room" || refs[1] != "wall" {
		t.Errorf("References() = %v, want [room wall]", refs)
	}

	ids := r.IDs()
	want := []string{"shape:wall", "prefab:room", "map:level"}
	if len(ids) != len(want) {
		t.Fatalf("IDs() = %v", ids)
	}
	for i := range want {
		if ids[i].String() != want[i] {
			t.Errorf("IDs()[%d] = %s, want %s", i, ids[i], want[i])
		}
	}
}
