package wolfsheep

import pcore "wolfsheep/pkg/core"

// schedule activates every agent once per tick, breed by breed, in a random
// order drawn from the shared stream. Each breed pass iterates a snapshot taken
// when the pass starts: agents added during the pass wait for the next one,
// agents removed before their turn are skipped.
type schedule struct {
	rng    *pcore.RNG
	breeds [breedCount]breedList
	buf    []ID
	steps  int
}

// breedList keeps IDs in insertion order. Removed entries become tombstones
// (ID 0) and are compacted once they outnumber live ones.
type breedList struct {
	ids  []ID
	at   map[ID]int
	dead int
}

func newSchedule(rng *pcore.RNG) *schedule {
	s := &schedule{rng: rng}
	for b := range s.breeds {
		s.breeds[b].at = make(map[ID]int)
	}
	return s
}

func (s *schedule) add(b Breed, id ID) {
	l := &s.breeds[b]
	l.at[id] = len(l.ids)
	l.ids = append(l.ids, id)
}

// remove drops id from its breed list at once. Absent IDs are ignored.
func (s *schedule) remove(b Breed, id ID) bool {
	l := &s.breeds[b]
	i, ok := l.at[id]
	if !ok {
		return false
	}
	delete(l.at, id)
	l.ids[i] = 0
	l.dead++
	if l.dead*2 > len(l.ids) {
		l.compact()
	}
	return true
}

func (l *breedList) compact() {
	n := 0
	for _, id := range l.ids {
		if id == 0 {
			continue
		}
		l.ids[n] = id
		l.at[id] = n
		n++
	}
	clear(l.ids[n:])
	l.ids = l.ids[:n]
	l.dead = 0
}

// live appends the live IDs of l to dst in insertion order.
func (l *breedList) live(dst []ID) []ID {
	for _, id := range l.ids {
		if id != 0 {
			dst = append(dst, id)
		}
	}
	return dst
}

func (s *schedule) count(b Breed) int {
	return len(s.breeds[b].at)
}

func (s *schedule) total() int {
	n := 0
	for b := range s.breeds {
		n += len(s.breeds[b].at)
	}
	return n
}

// step runs one pass per breed. activate must tolerate IDs that are no longer
// live and report whether it ran.
func (s *schedule) step(activate func(ID) bool) {
	for _, b := range activationOrder {
		s.buf = s.breeds[b].live(s.buf[:0])
		snapshot := s.buf
		s.rng.Shuffle(len(snapshot), func(i, j int) {
			snapshot[i], snapshot[j] = snapshot[j], snapshot[i]
		})
		for i := 0; i < len(snapshot); i++ {
			activate(snapshot[i])
		}
	}
	s.steps++
}
