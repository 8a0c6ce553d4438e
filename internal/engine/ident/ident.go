package ident

import (
	"errors"
	"fmt"
)

// ReservedSite is the site number owned by the sentinels. No live replica
// may use it.
const ReservedSite = 0

// firstClock is the first clock value a site may mint. Clocks 0 and 1 are
// reserved at every site so the sentinel tuples stay unreachable.
const firstClock = 2

// Errors returned by identity operations.
var (
	// ErrReservedSite indicates an attempt to create a Site with the
	// sentinel site number.
	ErrReservedSite = errors.New("site number is reserved")

	// ErrEmptyBlock indicates a block allocation of fewer than one ID.
	ErrEmptyBlock = errors.New("id block must contain at least one id")
)

// ID identifies a command or a character. IDs are totally ordered
// lexicographically by (Site, Clock), Site first.
type ID struct {
	Site  uint64
	Clock uint64
}

// Sentinel IDs bracketing every character sequence. They are fixed at all
// replicas and are never minted by any Site.
var (
	Begin = ID{Site: ReservedSite, Clock: 0}
	End   = ID{Site: ReservedSite, Clock: 1}
)

// Compare returns -1, 0, or 1 as a orders before, equal to, or after b.
func Compare(a, b ID) int {
	switch {
	case a.Site < b.Site:
		return -1
	case a.Site > b.Site:
		return 1
	case a.Clock < b.Clock:
		return -1
	case a.Clock > b.Clock:
		return 1
	}
	return 0
}

// Less reports whether a orders strictly before b.
func (a ID) Less(b ID) bool {
	return Compare(a, b) < 0
}

// IsSentinel reports whether the ID is Begin or End.
func (a ID) IsSentinel() bool {
	return a == Begin || a == End
}

// String formats the ID as "site.clock".
func (a ID) String() string {
	return fmt.Sprintf("%d.%d", a.Site, a.Clock)
}

// Site mints IDs for one replica. A Site is not safe for concurrent use;
// callers serialize command emission, which is already required for the
// per-site clock to reflect emission order.
type Site struct {
	site  uint64
	clock uint64
}

// NewSite creates a Site with the given replica number. The number must be
// unique among live replicas; uniqueness is the caller's contract.
func NewSite(site uint64) (*Site, error) {
	if site == ReservedSite {
		return nil, fmt.Errorf("%w: %d", ErrReservedSite, site)
	}
	return &Site{site: site, clock: firstClock}, nil
}

// ID returns the replica number.
func (s *Site) ID() uint64 {
	return s.site
}

// GenerateID mints the next ID, advancing the clock by one.
func (s *Site) GenerateID() ID {
	id := ID{Site: s.site, Clock: s.clock}
	s.clock++
	return id
}

// GenerateIDBlock reserves n consecutive clock values and returns the first
// and last ID of the block.
func (s *Site) GenerateIDBlock(n int) (first, last ID, err error) {
	if n < 1 {
		return ID{}, ID{}, fmt.Errorf("%w: n=%d", ErrEmptyBlock, n)
	}
	first = ID{Site: s.site, Clock: s.clock}
	last = ID{Site: s.site, Clock: s.clock + uint64(n) - 1}
	s.clock += uint64(n)
	return first, last, nil
}
