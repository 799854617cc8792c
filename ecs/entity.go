package ecs

import "strconv"

// Entity packs a 32-bit slot id (low bits) and a generation (high bits).
// The zero Entity is never handed out.
type Entity uint64

const entityIDBits = 32

func makeEntity(id, gen uint32) Entity {
	return Entity(uint64(gen)<<entityIDBits | uint64(id))
}

func (e Entity) id() uint32 {
	return uint32(e)
}

// Slot is the entity's storage slot; a reused slot keeps its number.
func (e Entity) Slot() uint32 {
	return e.id()
}

func (e Entity) generation() uint32 {
	return uint32(uint64(e) >> entityIDBits)
}

func (e Entity) String() string {
	return strconv.FormatUint(uint64(e.id()), 10) + "v" + strconv.FormatUint(uint64(e.generation()), 10)
}

func (e Entity) Valid() bool {
	return e != 0
}
