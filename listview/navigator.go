package listview

import (
	"strings"
	"sync"
)

// Location is a path plus its query string, including the leading "?"
type Location struct {
	Path   string
	Search string
}

func (l Location) String() string {
	return l.Path + l.Search
}

// ParseLocation splits "/niveau?sort=id,asc" into path and search
func ParseLocation(raw string) Location {
	path, query, found := strings.Cut(raw, "?")
	if !found {
		return Location{Path: path}
	}
	return Location{Path: path, Search: "?" + query}
}

// Navigator reads and replaces the current navigational location
type Navigator interface {
	Location() Location
	Navigate(to string)
}

// MemoryNavigator keeps locations in an in-process history
type MemoryNavigator struct {
	mu      sync.Mutex
	history []Location
}

// NewMemoryNavigator starts a history at start
func NewMemoryNavigator(start string) *MemoryNavigator {
	return &MemoryNavigator{history: []Location{ParseLocation(start)}}
}

// Location returns the most recent entry of the history
func (n *MemoryNavigator) Location() Location {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.history[len(n.history)-1]
}

// Navigate pushes to onto the history
func (n *MemoryNavigator) Navigate(to string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.history = append(n.history, ParseLocation(to))
}

// History returns every location visited, oldest first
func (n *MemoryNavigator) History() []Location {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]Location(nil), n.history...)
}
