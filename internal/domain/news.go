package domain

import "time"

// DateKeyFormat is the calendar-date key used throughout the digest history.
const DateKeyFormat = "2006-01-02"

// DateKey renders t as a digest-history key.
func DateKey(t time.Time) string {
	return t.Format(DateKeyFormat)
}

// Article is a single normalized feed entry. Articles are immutable once
// produced and are never persisted individually.
type Article struct {
	Title     string
	Link      string
	Summary   string
	Source    string
	Published time.Time
}

// FeedList is the ordered set of subscribed feed URLs. Order is preserved
// for display; URLs are unique.
type FeedList []string

// Contains reports whether url is already subscribed.
func (l FeedList) Contains(url string) bool {
	for _, u := range l {
		if u == url {
			return true
		}
	}
	return false
}

// Without returns a copy of the list with url removed.
func (l FeedList) Without(url string) FeedList {
	out := make(FeedList, 0, len(l))
	for _, u := range l {
		if u != url {
			out = append(out, u)
		}
	}
	return out
}

// DigestHistory maps a DateKey to the markdown digest produced for that day.
// At most one digest exists per date; a rerun overwrites the entry.
type DigestHistory map[string]string

// Stats is the persisted visit counter.
type Stats struct {
	Visits      uint64    `json:"visits"`
	LastUpdated time.Time `json:"last_updated,omitzero"`
}
