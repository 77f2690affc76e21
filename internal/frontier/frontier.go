package frontier

import "container/heap"

// Priority ranks a discovered link by how likely it is to list contacts.
// Lower values are visited sooner.
type Priority int

const (
	// PriorityInitial is reserved for the seed URL, guaranteeing it is
	// visited first even when it also matches a keyword family.
	PriorityInitial Priority = iota

	// PriorityStaff marks links whose URL or anchor text suggests a
	// staff directory or roster.
	PriorityStaff

	// PriorityContact marks contact and about pages.
	PriorityContact

	// PriorityTopic marks links matching the vertical's activity
	// vocabulary.
	PriorityTopic

	// PriorityOther is the default for unclassified links.
	PriorityOther
)

// String returns the priority name for logging.
func (p Priority) String() string {
	switch p {
	case PriorityInitial:
		return "initial"
	case PriorityStaff:
		return "staff"
	case PriorityContact:
		return "contact"
	case PriorityTopic:
		return "topic"
	default:
		return "other"
	}
}

// Entry is one URL awaiting a visit. Entries are immutable once pushed.
type Entry struct {
	// URL is the absolute, normalized URL to visit.
	URL string

	// Depth is the link-follow distance from the seed. The seed is 0.
	Depth int

	// Priority orders this entry against the rest of the frontier.
	Priority Priority
}

// Frontier is a priority queue of entries ordered by (priority, depth)
// ascending. Ties are broken in unspecified order. It is owned by a single
// crawl job and is not safe for concurrent use.
//
// Design decision: We use container/heap rather than sorting a slice on
// every pop because aggressive crawls can hold hundreds of pending links,
// and the heap keeps both push and pop logarithmic.
type Frontier struct {
	entries entryHeap
}

// New creates an empty frontier.
func New() *Frontier {
	return &Frontier{}
}

// Push adds an entry to the frontier. Duplicate URLs are the caller's
// concern; the frontier stores whatever it is given.
func (f *Frontier) Push(e Entry) {
	heap.Push(&f.entries, e)
}

// Pop removes and returns the entry with the lowest (priority, depth)
// among those present. The second return value is false when the frontier
// is empty.
func (f *Frontier) Pop() (Entry, bool) {
	if f.entries.Len() == 0 {
		return Entry{}, false
	}
	return heap.Pop(&f.entries).(Entry), true
}

// Len returns the number of pending entries.
func (f *Frontier) Len() int {
	return f.entries.Len()
}

// entryHeap implements heap.Interface over entries.
type entryHeap []Entry

func (h entryHeap) Len() int { return len(h) }

func (h entryHeap) Less(i, j int) bool {
	if h[i].Priority != h[j].Priority {
		return h[i].Priority < h[j].Priority
	}
	return h[i].Depth < h[j].Depth
}

func (h entryHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *entryHeap) Push(x any) {
	*h = append(*h, x.(Entry))
}

func (h *entryHeap) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	*h = old[:n-1]
	return e
}
