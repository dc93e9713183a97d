package room

import "testing"

func TestRegistryGetOrCreate(t *testing.T) {
	reg := NewRegistry(96)

	r1, created := reg.GetOrCreate("r1")
	if !created {
		t.Error("first GetOrCreate did not create")
	}
	if r1.Seats().Capacity() != 96 {
		t.Errorf("capacity = %d, want 96", r1.Seats().Capacity())
	}

	r2, created := reg.GetOrCreate("r1")
	if created {
		t.Error("second GetOrCreate created a duplicate")
	}
	if r1 != r2 {
		t.Error("GetOrCreate returned a different room")
	}
	if reg.Len() != 1 {
		t.Errorf("Len = %d, want 1", reg.Len())
	}
}

func TestRegistryDelete(t *testing.T) {
	reg := NewRegistry(96)
	reg.GetOrCreate("r1")

	reg.Delete("r1")
	if _, ok := reg.Get("r1"); ok {
		t.Error("room still present after Delete")
	}
	reg.Delete("r1") // deleting a missing room is fine
}

func TestRegistryHas(t *testing.T) {
	reg := NewRegistry(96)
	if reg.Has("r1") {
		t.Error("Has true for unknown room")
	}
	reg.GetOrCreate("r1")
	if !reg.Has("r1") {
		t.Error("Has false for live room")
	}
}

func TestRegistrySweepEmpty(t *testing.T) {
	reg := NewRegistry(96)

	empty, _ := reg.GetOrCreate("empty")
	occupied, _ := reg.GetOrCreate("occupied")
	occupied.Join("a", Attributes{})
	_ = empty

	removed := reg.SweepEmpty()
	if len(removed) != 1 || removed[0] != "empty" {
		t.Errorf("removed = %v, want [empty]", removed)
	}
	if reg.Has("empty") {
		t.Error("empty room survived sweep")
	}
	if !reg.Has("occupied") {
		t.Error("occupied room swept")
	}

	if removed := reg.SweepEmpty(); len(removed) != 0 {
		t.Errorf("second sweep removed %v", removed)
	}
}
