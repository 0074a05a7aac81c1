package lift

// FloorSet is a set of floors that remembers the order members were first added.
// That order is the tie-break when two stops are equally near.
type FloorSet struct {
	arr []Floor
}

func newFloorSet(capacity int) *FloorSet {
	return &FloorSet{make([]Floor, 0, capacity)}
}

// set adds floor and reports whether it was already a member.
func (fs *FloorSet) set(floor Floor) bool {
	if fs.has(floor) {
		return true
	}
	fs.arr = append(fs.arr, floor)
	return false
}

func (fs *FloorSet) has(floor Floor) bool {
	for _, f := range fs.arr {
		if f == floor {
			return true
		}
	}
	return false
}

func (fs *FloorSet) empty() bool { return len(fs.arr) == 0 }

func (fs *FloorSet) size() int { return len(fs.arr) }

// nearest returns the member closest to floor. The earliest added member wins a tie.
func (fs *FloorSet) nearest(floor Floor) (Floor, bool) {
	if fs.empty() {
		return floor, false
	}
	best := fs.arr[0]
	for _, f := range fs.arr[1:] {
		if f.distance(floor) < best.distance(floor) {
			best = f
		}
	}
	return best, true
}
