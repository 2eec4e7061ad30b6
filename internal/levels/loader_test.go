package levels

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/vovakirdan/lumin/internal/game/world"
	"github.com/vovakirdan/lumin/internal/levels/formats"
)

const testLevel = `id: 7
name: "Test Hall"
kind: standard
start: {x: 80, y: 600}
objects:
  - {id: 1, kind: platform, x: 0, y: 728, w: 1024, h: 40}
  - {id: 2, kind: pressure_plate, x: 200, y: 708, w: 80, h: 20, target: 3}
  - {id: 3, kind: door, x: 600, y: 608, w: 80, h: 120}
  - {id: 4, kind: door, x: 900, y: 608, w: 80, h: 120}
  - {id: 5, kind: patrolling_trap, x: 300, y: 500, w: 40, h: 40, motion: {vx: 2, min_x: 280, max_x: 500}}
`

func TestCampaign(t *testing.T) {
	lvls, err := Campaign()
	if err != nil {
		t.Fatalf("Campaign failed: %v", err)
	}
	if len(lvls) != 4 {
		t.Fatalf("expected 4 campaign levels, got %d", len(lvls))
	}

	kinds := []Kind{KindStandard, KindStandard, KindStandard, KindEncounter}
	for i, lvl := range lvls {
		if lvl.ID != i+1 {
			t.Errorf("level %d has ID %d", i, lvl.ID)
		}
		if lvl.Kind != kinds[i] {
			t.Errorf("level %d kind = %q, expected %q", lvl.ID, lvl.Kind, kinds[i])
		}
		if lvl.FilePath != "" {
			t.Errorf("embedded level %d has FilePath %q", lvl.ID, lvl.FilePath)
		}
		if w := Warnings(lvl); len(w) > 0 {
			t.Errorf("level %d warnings: %v", lvl.ID, w)
		}
	}

	if got := len(lvls[0].BookIDs()); got != 4 {
		t.Errorf("level 1 has %d books, expected 4", got)
	}
	if lvls[3].Width != 3520 {
		t.Errorf("encounter width = %v, expected 3520", lvls[3].Width)
	}
}

func TestCampaignLinks(t *testing.T) {
	lvls, err := Campaign()
	if err != nil {
		t.Fatalf("Campaign failed: %v", err)
	}

	find := func(lvl Level, id int) world.Object {
		for _, o := range lvl.Objects {
			if world.ID(o) == id {
				return o
			}
		}
		t.Fatalf("level %d has no object %d", lvl.ID, id)
		return nil
	}

	tests := []struct {
		level  int
		door   int
		linked bool
		timed  bool
	}{
		{1, 202, false, false},
		{2, 2402, true, false},
		{3, 3401, true, false},
		{3, 3901, true, true},
	}
	for _, tt := range tests {
		door := find(lvls[tt.level-1], tt.door).(*world.Door)
		if door.Linked != tt.linked || door.Timed != tt.timed {
			t.Errorf("door %d: linked=%v timed=%v, expected %v/%v", tt.door, door.Linked, door.Timed, tt.linked, tt.timed)
		}
	}

	trap := find(lvls[2], 3302).(*world.PatrollingTrap)
	if trap.Motion.SpeedY != 2 || trap.Motion.MinY != 520 || trap.Motion.MaxY != 720 {
		t.Errorf("patrolling trap motion = %+v", trap.Motion)
	}
	if fb := find(lvls[3], 4999).(*world.FinalBook); !fb.Hidden {
		t.Error("final book should start hidden")
	}
}

func TestCampaignRoundTrip(t *testing.T) {
	lvls, err := Campaign()
	if err != nil {
		t.Fatalf("Campaign failed: %v", err)
	}

	for _, lvl := range lvls {
		data, err := Marshal(lvl)
		if err != nil {
			t.Fatalf("Marshal(%d) failed: %v", lvl.ID, err)
		}
		parsed, err := formats.ParseYAML(data)
		if err != nil {
			t.Fatalf("re-parsing level %d failed: %v", lvl.ID, err)
		}
		if !reflect.DeepEqual(parsed.Objects, lvl.Objects) {
			t.Errorf("level %d objects changed across a round trip", lvl.ID)
		}
		if parsed.Start != lvl.Start || parsed.Name != lvl.Name || !reflect.DeepEqual(parsed.Intro, lvl.Intro) {
			t.Errorf("level %d header changed across a round trip", lvl.ID)
		}
	}
}

func TestLoaderFromFS(t *testing.T) {
	fsys := fstest.MapFS{
		"a/hall.yaml": {Data: []byte(testLevel)},
		"notes.txt":   {Data: []byte("not a level")},
	}
	loader := &Loader{FS: fsys, Root: "levels"}

	lvls, err := loader.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}
	if len(lvls) != 1 {
		t.Fatalf("expected 1 level, got %d", len(lvls))
	}

	lvl := lvls[0]
	if lvl.ID != 7 || lvl.Name != "Test Hall" || lvl.Kind != KindStandard {
		t.Errorf("unexpected header: %+v", lvl)
	}
	if lvl.FilePath != "levels/a/hall.yaml" {
		t.Errorf("FilePath = %q", lvl.FilePath)
	}

	linked := lvl.Objects[2].(*world.Door)
	free := lvl.Objects[3].(*world.Door)
	if !linked.Linked || free.Linked {
		t.Errorf("linked=%v free=%v, expected only the plate target linked", linked.Linked, free.Linked)
	}

	if _, err := loader.LoadByID(8); err == nil {
		t.Error("LoadByID should fail for a missing id")
	}
}

func TestLoaderFromDisk(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "hall.yml"), []byte(testLevel), 0o644); err != nil {
		t.Fatal(err)
	}

	lvl, err := NewLoader(dir).LoadByID(7)
	if err != nil {
		t.Fatalf("LoadByID failed: %v", err)
	}
	if lvl.FilePath != filepath.ToSlash(filepath.Join(dir, "hall.yml")) && lvl.FilePath != filepath.Join(dir, "hall.yml") {
		t.Errorf("FilePath = %q", lvl.FilePath)
	}
}

func TestLoaderErrors(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr string
	}{
		{
			name:    "invalid yaml",
			data:    "id: [",
			wantErr: "yaml unmarshal",
		},
		{
			name:    "unknown object kind",
			data:    "id: 1\nkind: standard\nobjects:\n  - {id: 1, kind: dragon}\n",
			wantErr: `unknown kind "dragon"`,
		},
		{
			name:    "runtime-only kind",
			data:    "id: 1\nkind: standard\nobjects:\n  - {id: 1, kind: projectile}\n",
			wantErr: "spawned at runtime",
		},
		{
			name:    "patrol without motion",
			data:    "id: 1\nkind: standard\nobjects:\n  - {id: 1, kind: patrolling_trap}\n",
			wantErr: "needs a motion",
		},
		{
			name:    "duplicate ids",
			data:    "id: 1\nkind: standard\nobjects:\n  - {id: 5, kind: key}\n  - {id: 5, kind: trap}\n",
			wantErr: "duplicate object id 5",
		},
		{
			name:    "unknown level kind",
			data:    "id: 1\nkind: arcade\n",
			wantErr: `unknown kind "arcade"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loader := &Loader{FS: fstest.MapFS{"l.yaml": {Data: []byte(tt.data)}}}
			_, err := loader.LoadAll()
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestDuplicateLevelIDs(t *testing.T) {
	fsys := fstest.MapFS{
		"a.yaml": {Data: []byte(testLevel)},
		"b.yaml": {Data: []byte(testLevel)},
	}
	if _, err := (&Loader{FS: fsys}).LoadAll(); err == nil || !strings.Contains(err.Error(), "duplicate level id 7") {
		t.Errorf("LoadAll error = %v, expected a duplicate level id", err)
	}
}

func TestValidateJoinsErrors(t *testing.T) {
	lvl := Level{
		ID:   1,
		Kind: KindStandard,
		Objects: []world.Object{
			&world.Key{Base: world.Base{ID: 1}},
			&world.Key{Base: world.Base{ID: 1}},
			&world.Trap{Base: world.Base{ID: 2}},
		},
	}
	lvl.Objects[2].Common().Box.W = -5

	err := Validate(lvl)
	if err == nil {
		t.Fatal("expected validation errors")
	}
	msg := err.Error()
	if !strings.Contains(msg, "duplicate object id 1") || !strings.Contains(msg, "negative size") {
		t.Errorf("error %q should report both problems", msg)
	}
}

func TestWarningsForDanglingTargets(t *testing.T) {
	lvl := Level{
		ID: 1,
		Objects: []world.Object{
			&world.PressurePlate{Base: world.Base{ID: 1}, TargetID: 99},
			&world.Teleporter{Base: world.Base{ID: 2}, TargetID: 1},
		},
	}
	w := Warnings(lvl)
	if len(w) != 1 || !strings.Contains(w[0], "missing object 99") {
		t.Errorf("Warnings() = %v, expected one dangling plate", w)
	}
}

func TestCloneIsDeep(t *testing.T) {
	lvls, err := Campaign()
	if err != nil {
		t.Fatalf("Campaign failed: %v", err)
	}
	orig := lvls[1]
	clone := orig.Clone()
	clone.Objects[0].Common().Box.X = 12345

	if world.Box(orig.Objects[0]).X == 12345 {
		t.Error("Clone should not share objects with the original")
	}

	live := orig.NewObjects()
	live.Remove(world.ID(orig.Objects[0]))
	if len(orig.Objects) != live.Len()+1 {
		t.Error("NewObjects should be independent of the templates")
	}
}
