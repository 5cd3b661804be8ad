package rowan

import (
	"strings"
	"testing"
)

const sampleDoc = `
sprites:
  bg:
    path: assets/bg.png
    width: 320
    height: 240
    x: {value: 0, anchors: {self: 0.5, parent: 0.5}}
    y: 0
  hero:
    parent: bg
    tag: actors
    z: 3
    width: 16
    height: 16
    x: 0.25
shapes:
  cursor:
    radius: 4
    color: {r: 1, g: 0, b: 0, a: 1}
filters:
  dim:
    target: actors
    amount: 0.5
transitions:
  bob:
    target: hero
    property: y
    frames: [0, 10, 0]
    times: [0, 0.5, 1]
    repeat: true
aliases:
  bg: {assetPath: assets/bg.png}
`

func TestLoadSnapshot(t *testing.T) {
	s, err := LoadSnapshot([]byte(sampleDoc))
	if err != nil {
		t.Fatalf("LoadSnapshot: %v", err)
	}
	if len(s.Sprites) != 2 || len(s.Shapes) != 1 || len(s.Filters) != 1 || len(s.Transitions) != 1 {
		t.Fatalf("kind counts wrong: %d/%d/%d/%d",
			len(s.Sprites), len(s.Shapes), len(s.Filters), len(s.Transitions))
	}

	hero := s.Sprites["hero"]
	if hero.Parent != "bg" || hero.Tag != "actors" || hero.ZIndex != 3 {
		t.Errorf("hero structure fields wrong: %+v", hero)
	}
	if s.Aliases["bg"].AssetPath != "assets/bg.png" {
		t.Errorf("alias = %+v", s.Aliases["bg"])
	}
	if c := s.Shapes["cursor"].Color; c.R != 1 || c.G != 0 {
		t.Errorf("cursor color = %+v", c)
	}
	bob := s.Transitions["bob"]
	if !bob.Repeat || len(bob.Frames) != 3 || bob.Property != "y" {
		t.Errorf("bob = %+v", bob)
	}
}

func TestPositionScalarShorthand(t *testing.T) {
	s, err := LoadSnapshot([]byte(sampleDoc))
	if err != nil {
		t.Fatalf("LoadSnapshot: %v", err)
	}
	// "x: 0.25" is shorthand for value 0.25 with centered anchors.
	x := s.Sprites["hero"].X
	if x.Value != 0.25 {
		t.Errorf("x.Value = %v, want 0.25", x.Value)
	}
	if x.Anchors != (Anchors{Self: 0.5, Parent: 0.5}) {
		t.Errorf("x.Anchors = %+v, want centered", x.Anchors)
	}
}

func TestPositionAnchorsDefaultToCenter(t *testing.T) {
	doc := `
sprites:
  a:
    x: {value: 0.1}
    y: {value: 0, anchors: {self: 1}}
`
	s, err := LoadSnapshot([]byte(doc))
	if err != nil {
		t.Fatalf("LoadSnapshot: %v", err)
	}
	a := s.Sprites["a"]
	if a.X.Anchors != (Anchors{Self: 0.5, Parent: 0.5}) {
		t.Errorf("omitted anchors = %+v, want centered", a.X.Anchors)
	}
	// Partially specified anchors fill the rest with 0.5.
	if a.Y.Anchors != (Anchors{Self: 1, Parent: 0.5}) {
		t.Errorf("partial anchors = %+v", a.Y.Anchors)
	}
}

func TestLoadSnapshotValidation(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr string
	}{
		{
			name:    "anchor out of range",
			doc:     "sprites: {a: {x: {value: 0, anchors: {self: 1.5}}}}",
			wantErr: "outside [0,1]",
		},
		{
			name:    "times frames mismatch",
			doc:     "transitions: {t: {target: a, property: x, frames: [0, 1], times: [0]}}",
			wantErr: "times",
		},
		{
			name:    "too few frames",
			doc:     "transitions: {t: {target: a, property: x, frames: [0], times: [0]}}",
			wantErr: "at least 2 frames",
		},
		{
			name:    "decreasing times",
			doc:     "transitions: {t: {target: a, property: x, frames: [0, 1, 2], times: [0, 2, 1]}}",
			wantErr: "must not decrease",
		},
		{
			name:    "transition missing target",
			doc:     "transitions: {t: {property: x, frames: [0, 1], times: [0, 1]}}",
			wantErr: "missing target",
		},
		{
			name:    "filter missing target",
			doc:     "filters: {f: {amount: 1}}",
			wantErr: "missing target",
		},
		{
			name:    "not yaml",
			doc:     "sprites: [this is a sequence",
			wantErr: "parse snapshot",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadSnapshot([]byte(tt.doc))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("err = %v, want substring %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadedSnapshotReconciles(t *testing.T) {
	s, err := LoadSnapshot([]byte(sampleDoc))
	if err != nil {
		t.Fatalf("LoadSnapshot: %v", err)
	}
	st := NewStage(640, 480)
	reconcile(t, st, s)

	if st.Registry(KindSprite).Len() != 2 {
		t.Errorf("sprites = %d, want 2", st.Registry(KindSprite).Len())
	}
	hero := st.Registry(KindSprite).Lookup("hero")
	bg := st.Registry(KindSprite).Lookup("bg")
	if st.Graph().ParentOf(hero) != bg {
		t.Error("hero should parent to bg")
	}
	if len(hero.Filters()) != 1 {
		t.Errorf("hero filters = %d, want 1 (via actors tag)", len(hero.Filters()))
	}
}
