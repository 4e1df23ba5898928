package ecs

import (
	"sort"
	"testing"
)

func collect[T any](v View[T]) []EntityID {
	var ids []EntityID
	for e := range v.All() {
		ids = append(ids, e.ID())
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func TestViewYieldsExactlyHolders(t *testing.T) {
	m := NewManager(nil)
	a := m.CreateEntity()
	b := m.CreateEntity()
	c := m.CreateEntity()
	CreateComponent(m, a, position{X: 1})
	CreateComponent(m, c, position{X: 3})
	CreateComponent(m, b, velocity{})

	v := ViewOf[position](m)
	got := collect(v)
	if len(got) != 2 || got[0] != a || got[1] != c {
		t.Fatalf("view = %v, want [%d %d]", got, a, c)
	}

	sum := 0.0
	for it := v.Begin(); it.Valid(); it.Next() {
		if it.Entity().Manager() != m {
			t.Error("handle bound to wrong manager")
		}
		sum += it.Component().X
	}
	if sum != 4 {
		t.Errorf("sum = %v, want 4", sum)
	}
}

func TestViewIsLiveNotSnapshot(t *testing.T) {
	m := NewManager(nil)
	a := m.CreateEntity()
	CreateComponent(m, a, position{})

	v := ViewOf[position](m)
	b := m.CreateEntity()
	CreateComponent(m, b, position{})

	if got := collect(v); len(got) != 2 {
		t.Errorf("view built before insert saw %v", got)
	}

	RemoveComponent[position](m, a)
	if got := collect(v); len(got) != 1 || got[0] != b {
		t.Errorf("view after removal = %v", got)
	}
}

func TestViewOnUnusedTypeIsEmptyThenLive(t *testing.T) {
	m := NewManager(nil)
	v := ViewOf[tag](m)
	if v.Len() != 0 {
		t.Fatalf("Len = %d", v.Len())
	}
	it := v.Begin()
	if it.Valid() {
		t.Fatal("iterator over empty view is valid")
	}

	e := m.CreateEntity()
	CreateComponent(m, e, tag{Name: "late"})
	if got := collect(v); len(got) != 1 {
		t.Errorf("view = %v", got)
	}
}

func TestViewSurvivesClear(t *testing.T) {
	m := NewManager(nil)
	v := ViewOf[position](m)
	CreateComponent(m, m.CreateEntity(), position{})
	m.Clear()
	if v.Len() != 0 {
		t.Fatalf("Len after clear = %d", v.Len())
	}
	CreateComponent(m, m.CreateEntity(), position{})
	if v.Len() != 1 {
		t.Errorf("view detached from pool after clear")
	}
}

func TestIteratorRestartAndEquality(t *testing.T) {
	m := NewManager(nil)
	for i := 0; i < 3; i++ {
		CreateComponent(m, m.CreateEntity(), position{X: float64(i)})
	}
	v := ViewOf[position](m)

	first := v.Begin()
	second := v.Begin()
	if !first.Equal(second) {
		t.Error("two fresh iterators differ")
	}
	second.Next()
	if first.Equal(second) {
		t.Error("iterators at different positions compare equal")
	}

	n := 0
	it := v.Begin()
	for ; it.Valid(); it.Next() {
		n++
	}
	if n != 3 {
		t.Fatalf("walked %d, want 3", n)
	}
	end := v.Begin()
	for end.Valid() {
		end.Next()
	}
	if !it.Equal(end) {
		t.Error("exhausted iterators differ")
	}

	elsewhere := NewManager(nil)
	for i := 0; i < 3; i++ {
		CreateComponent(elsewhere, elsewhere.CreateEntity(), position{})
	}
	other := ViewOf[position](elsewhere).Begin()
	for other.Valid() {
		other.Next()
	}
	if it.Equal(other) {
		t.Error("iterators over different pools compare equal")
	}
	if restarted := v.Begin(); !restarted.Valid() {
		t.Error("restart did not rewind")
	}
}

func TestAllStopsEarly(t *testing.T) {
	m := NewManager(nil)
	for i := 0; i < 5; i++ {
		CreateComponent(m, m.CreateEntity(), position{})
	}
	n := 0
	for range ViewOf[position](m).All() {
		n++
		if n == 2 {
			break
		}
	}
	if n != 2 {
		t.Errorf("n = %d", n)
	}
}

func TestEach2Intersection(t *testing.T) {
	m := NewManager(nil)
	both := m.CreateEntity()
	onlyPos := m.CreateEntity()
	onlyVel := m.CreateEntity()
	CreateComponent(m, both, position{})
	CreateComponent(m, both, velocity{X: 2})
	CreateComponent(m, onlyPos, position{})
	CreateComponent(m, onlyVel, velocity{})
	for i := 0; i < 5; i++ {
		CreateComponent(m, m.CreateEntity(), position{})
	}

	var hits []EntityID
	Each2(m, func(e Entity, p *position, v *velocity) {
		hits = append(hits, e.ID())
		p.X += v.X
	})
	if len(hits) != 1 || hits[0] != both {
		t.Fatalf("hits = %v, want [%d]", hits, both)
	}
	if GetComponent[position](m, both).X != 2 {
		t.Error("Each2 did not hand out live pointers")
	}
}

func TestEntityHandle(t *testing.T) {
	m := NewManager(nil)
	e := m.Entity(m.CreateEntity())
	if !e.Valid() {
		t.Fatal("fresh handle invalid")
	}
	Add(e, tag{Name: "ship"})
	if !Has[tag](e) || Get[tag](e).Name != "ship" {
		t.Error("handle helpers disagree with manager")
	}
	if _, ok := TryGet[velocity](e); ok {
		t.Error("TryGet found absent component")
	}
	if e != m.Entity(e.ID()) {
		t.Error("handles for the same id differ")
	}

	e.Destroy()
	if e.Valid() {
		t.Error("destroyed handle still valid")
	}
	var zero Entity
	if zero.Valid() || Has[tag](zero) {
		t.Error("zero handle reports state")
	}
}
