package scanner

import "time"

// debouncer suppresses a symbol that is still in view: the same content seen
// again within window of its previous sighting is dropped.
type debouncer struct {
	window   time.Duration
	last     string
	lastSeen time.Time
}

func (d *debouncer) accept(content string, now time.Time) bool {
	if content == d.last && !d.lastSeen.IsZero() && now.Sub(d.lastSeen) < d.window {
		d.lastSeen = now
		return false
	}
	d.last = content
	d.lastSeen = now
	return true
}
