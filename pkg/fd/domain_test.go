package fd

import "testing"

func TestIntDomainBasics(t *testing.T) {
	d := NewIntDomain(1, 5)
	if d.Size() != 5 {
		t.Fatalf("Size() = %d, want 5", d.Size())
	}
	if !d.Has(3) || d.Has(0) || d.Has(6) {
		t.Fatalf("membership wrong for %v", d)
	}
	if d.IsFixed() {
		t.Fatalf("[1..5] reported fixed")
	}
}

func TestIntDomainRemove(t *testing.T) {
	d := NewIntDomain(1, 5).Remove(3)
	if d.Has(3) {
		t.Fatalf("3 still present after Remove")
	}
	if d.Size() != 4 {
		t.Fatalf("Size() = %d, want 4", d.Size())
	}
	if d.Min() != 1 || d.Max() != 5 {
		t.Fatalf("bounds changed: %v", d)
	}

	// Removing a bound slides it past any adjacent holes.
	d = d.Remove(5).Remove(4)
	if d.Max() != 2 {
		t.Fatalf("Max() = %d, want 2 after removing 3,4,5", d.Max())
	}
}

func TestIntDomainRemoveToEmpty(t *testing.T) {
	d := SingletonDomain(7).Remove(7)
	if !d.IsEmpty() {
		t.Fatalf("singleton minus its value should be empty, got %v", d)
	}
}

func TestIntDomainBounds(t *testing.T) {
	d := NewIntDomain(0, 10).Remove(5)
	d = d.AtLeast(4).AtMost(6)
	if d.Size() != 2 || !d.Has(4) || !d.Has(6) {
		t.Fatalf("want {4,6}, got %v", d)
	}
	d = d.AtLeast(5)
	if !d.IsFixed() || d.Value() != 6 {
		t.Fatalf("want {6}, got %v", d)
	}
}

func TestIntDomainIntersect(t *testing.T) {
	a := NewIntDomain(0, 10).Remove(4)
	b := NewIntDomain(3, 6).Remove(5)
	got := a.Intersect(b)
	if got.Size() != 2 || !got.Has(3) || !got.Has(6) {
		t.Fatalf("want {3,6}, got %v", got)
	}
	if !NewIntDomain(1, 2).Intersect(NewIntDomain(5, 6)).IsEmpty() {
		t.Fatalf("disjoint intersect not empty")
	}
}

func TestDomainFromValues(t *testing.T) {
	d := DomainFromValues([]int{7, 2, 5, 2})
	if d.Min() != 2 || d.Max() != 7 {
		t.Fatalf("bounds wrong: %v", d)
	}
	if d.Size() != 3 || d.Has(3) || d.Has(6) || !d.Has(5) {
		t.Fatalf("want {2,5,7}, got %v", d)
	}
	if !DomainFromValues(nil).IsEmpty() {
		t.Fatalf("empty value list should yield empty domain")
	}
}

func TestIterateValues(t *testing.T) {
	d := NewIntDomain(1, 5).Remove(2).Remove(4)
	var got []int
	d.IterateValues(func(v int) bool {
		got = append(got, v)
		return true
	})
	want := []int{1, 3, 5}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestFloatInterval(t *testing.T) {
	f := NewFloatInterval(0, 10).AtLeast(2.5).AtMost(7.5)
	if f.Lo != 2.5 || f.Hi != 7.5 {
		t.Fatalf("got %v", f)
	}
	if f.IsFixed() {
		t.Fatalf("wide interval reported fixed")
	}
	if !f.AtLeast(8).IsEmpty() {
		t.Fatalf("crossed bounds should be empty")
	}
}
