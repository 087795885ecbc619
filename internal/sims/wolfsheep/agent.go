package wolfsheep

// Breed tags the closed set of agent kinds.
type Breed uint8

const (
	Sheep Breed = iota
	Wolf
	GrassPatch

	breedCount = 3
)

// activationOrder is the fixed per-tick order: prey before predators, grass last.
var activationOrder = [breedCount]Breed{Sheep, Wolf, GrassPatch}

func (b Breed) String() string {
	switch b {
	case Sheep:
		return "sheep"
	case Wolf:
		return "wolf"
	case GrassPatch:
		return "grass"
	default:
		return "unknown"
	}
}

// ID identifies an agent for the lifetime of a Model. IDs start at 1 and are
// never reused.
type ID uint64

// Agent is the state of one agent. Energy and Moore apply to Sheep and Wolf;
// FullyGrown and Countdown apply to GrassPatch.
type Agent struct {
	ID    ID
	Breed Breed
	Pos   Pos

	Energy int
	Moore  bool

	FullyGrown bool
	Countdown  int
}

// registry is a dense arena of live agents. Freed slots are recycled for new
// agents; IDs are not.
//
// Pointers returned by get are only valid until the next create.
type registry struct {
	slots  []Agent
	live   []bool
	free   []int
	index  map[ID]int
	nextID ID
}

func newRegistry(capacity int) *registry {
	return &registry{
		slots: make([]Agent, 0, capacity),
		live:  make([]bool, 0, capacity),
		index: make(map[ID]int, capacity),
	}
}

// create stores a copy of a under a fresh ID and returns that ID.
func (r *registry) create(a Agent) ID {
	r.nextID++
	a.ID = r.nextID
	var slot int
	if n := len(r.free); n > 0 {
		slot = r.free[n-1]
		r.free = r.free[:n-1]
		r.slots[slot] = a
		r.live[slot] = true
	} else {
		slot = len(r.slots)
		r.slots = append(r.slots, a)
		r.live = append(r.live, true)
	}
	r.index[a.ID] = slot
	return a.ID
}

func (r *registry) get(id ID) (*Agent, bool) {
	slot, ok := r.index[id]
	if !ok {
		return nil, false
	}
	return &r.slots[slot], true
}

// release retires id. It reports false when id was not live.
func (r *registry) release(id ID) bool {
	slot, ok := r.index[id]
	if !ok {
		return false
	}
	delete(r.index, id)
	r.slots[slot] = Agent{}
	r.live[slot] = false
	r.free = append(r.free, slot)
	return true
}

func (r *registry) len() int { return len(r.index) }

// each visits live agents in slot order.
func (r *registry) each(fn func(*Agent)) {
	for i := range r.slots {
		if r.live[i] {
			fn(&r.slots[i])
		}
	}
}
