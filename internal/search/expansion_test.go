package search

import "testing"

func TestExpansions_ToggleTwiceRestores(t *testing.T) {
	e := Expansions{}

	if !e.Toggle("52771") {
		t.Error("first Toggle should expand")
	}
	if !e.IsExpanded("52771") {
		t.Error("IsExpanded = false after first Toggle")
	}
	if e.Toggle("52771") {
		t.Error("second Toggle should collapse")
	}
	if e.IsExpanded("52771") {
		t.Error("IsExpanded = true after second Toggle")
	}
	if len(e) != 0 {
		t.Errorf("len = %d, want 0 (entry should be removed)", len(e))
	}
}

func TestExpansions_ToggleLeavesOthers(t *testing.T) {
	e := Expansions{}
	e.Toggle("a")
	e.Toggle("b")
	e.Toggle("b")

	if !e.IsExpanded("a") {
		t.Error("toggling b changed a")
	}
	if e.IsExpanded("b") {
		t.Error("b should be collapsed")
	}
}

func TestExpansions_Reset(t *testing.T) {
	e := Expansions{}
	e.Toggle("a")
	e.Reset()
	if e.IsExpanded("a") {
		t.Error("a should be collapsed after Reset")
	}
}
