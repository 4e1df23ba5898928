package ecs

// Pool is the per-type index: every entity holding one component type,
// stored as a sparse set so add, remove and lookup are O(1) and iteration
// walks a dense slice.
type Pool struct {
	typeID   ComponentTypeID
	entities []EntityID
	holders  []holder
	index    map[EntityID]int
}

func newPool(id ComponentTypeID) *Pool {
	return &Pool{
		typeID:   id,
		entities: make([]EntityID, 0, 64),
		holders:  make([]holder, 0, 64),
		index:    make(map[EntityID]int, 64),
	}
}

// TypeID returns the component type this pool indexes.
func (p *Pool) TypeID() ComponentTypeID { return p.typeID }

// Len returns the number of entities holding the component.
func (p *Pool) Len() int { return len(p.entities) }

// Has reports whether id holds the component.
func (p *Pool) Has(id EntityID) bool {
	_, ok := p.index[id]
	return ok
}

// Entities returns a copy of the entity ids in iteration order.
func (p *Pool) Entities() []EntityID {
	out := make([]EntityID, len(p.entities))
	copy(out, p.entities)
	return out
}

func (p *Pool) get(id EntityID) (holder, bool) {
	i, ok := p.index[id]
	if !ok {
		return nil, false
	}
	return p.holders[i], true
}

func (p *Pool) at(i int) (EntityID, holder) {
	return p.entities[i], p.holders[i]
}

func (p *Pool) insert(id EntityID, h holder) {
	p.index[id] = len(p.entities)
	p.entities = append(p.entities, id)
	p.holders = append(p.holders, h)
}

// remove swaps the last element into the hole, so positions past the
// removed one shift.
func (p *Pool) remove(id EntityID) (holder, bool) {
	i, ok := p.index[id]
	if !ok {
		return nil, false
	}
	h := p.holders[i]
	last := len(p.entities) - 1
	if i != last {
		moved := p.entities[last]
		p.entities[i] = moved
		p.holders[i] = p.holders[last]
		p.index[moved] = i
	}
	p.holders[last] = nil
	p.entities = p.entities[:last]
	p.holders = p.holders[:last]
	delete(p.index, id)
	return h, true
}
