package hospital

import (
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/AvSoft-Technologies-Pvt-LTD/DigiHealth-sub000/models"
)

// ReserveOutcome is the result of a TryReserve call. Contention is an
// expected outcome, not an error.
type ReserveOutcome int

// TryReserve outcomes
const (
	Reserved ReserveOutcome = iota
	AlreadyTaken
	UnderMaintenance
	BedNotFound
)

func (o ReserveOutcome) String() string {
	switch o {
	case Reserved:
		return "reserved"
	case AlreadyTaken:
		return "already-taken"
	case UnderMaintenance:
		return "under-maintenance"
	default:
		return "not-found"
	}
}

// ReleaseOutcome is the result of a Release call
type ReleaseOutcome int

// Release outcomes
const (
	Released ReleaseOutcome = iota
	ReleaseNotHeldByCaller
)

// CommitOutcome is the result of a Commit call
type CommitOutcome int

// Commit outcomes
const (
	Committed CommitOutcome = iota
	CommitNotHeldByCaller
)

// MaintenanceOutcome is the result of toggling a bed's maintenance flag
type MaintenanceOutcome int

// Maintenance outcomes. Only available beds can be flagged and only
// flagged beds can be cleared.
const (
	MaintenanceSet MaintenanceOutcome = iota
	MaintenanceCleared
	MaintenanceRejected
	MaintenanceBedNotFound
)

type bed struct {
	state       models.BedState
	holderID    string
	committed   bool
	leaseExpiry time.Time
}

// ExpiredHold identifies a tentative hold reclaimed by the sweep
type ExpiredHold struct {
	WardType   models.WardType
	WardNumber string
	BedNumber  int
	HolderID   string
}

// Registry is the single source of truth for bed occupancy. Every
// mutation happens under one lock so availability snapshots are always
// consistent and TryReserve behaves as a compare-and-swap: under
// simultaneous calls for the same bed exactly one caller wins.
type Registry struct {
	mu      sync.RWMutex
	catalog *Catalog
	holdTTL time.Duration
	beds    map[wardKey]map[int]*bed

	watchMu  sync.Mutex
	watchers map[wardKey]map[int]chan models.WardAvailability
	watchSeq int
}

// NewRegistry creates a registry with every catalog bed available.
// holdTTL bounds tentative holds; committed occupancy never expires.
func NewRegistry(catalog *Catalog, holdTTL time.Duration) *Registry {
	r := &Registry{
		catalog:  catalog,
		holdTTL:  holdTTL,
		beds:     make(map[wardKey]map[int]*bed),
		watchers: make(map[wardKey]map[int]chan models.WardAvailability),
	}
	for _, w := range catalog.ListWards() {
		k := wardKey{Type: w.Type, Number: w.Number}
		r.beds[k] = make(map[int]*bed, w.TotalBeds)
		for n := 1; n <= w.TotalBeds; n++ {
			r.beds[k][n] = &bed{state: models.BedAvailable}
		}
	}
	return r
}

// Availability returns a consistent snapshot of one ward's occupancy
func (r *Registry) Availability(wardType models.WardType, wardNumber string) (models.WardAvailability, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.snapshotLocked(wardKey{Type: wardType, Number: wardNumber})
}

// snapshotLocked builds a snapshot; the caller must hold at least the
// read lock
func (r *Registry) snapshotLocked(k wardKey) (models.WardAvailability, bool) {
	ward, ok := r.catalog.GetWard(k.Type, k.Number)
	if !ok {
		return models.WardAvailability{}, false
	}
	snap := models.WardAvailability{
		WardType:   k.Type,
		WardNumber: k.Number,
		TotalBeds:  ward.TotalBeds,
		Beds:       make(map[int]models.BedStatus, ward.TotalBeds),
	}
	for n := 1; n <= ward.TotalBeds; n++ {
		b := r.beds[k][n]
		st := models.BedStatus{Number: n, State: b.state, Facilities: ward.BedFacilities[n]}
		switch b.state {
		case models.BedAvailable:
			snap.Available++
		case models.BedUnderMaintenance:
			snap.Maintenance++
		default:
			// held counts as occupied: the bed is not selectable either way
			snap.Occupied++
			st.HolderID = b.holderID
		}
		snap.Beds[n] = st
	}
	return snap, true
}

// TryReserve atomically moves an available bed to a tentative hold for
// requestID. Exactly one of any set of simultaneous competitors for the
// same bed succeeds.
func (r *Registry) TryReserve(wardType models.WardType, wardNumber string, bedNumber int, requestID string) ReserveOutcome {
	k := wardKey{Type: wardType, Number: wardNumber}
	r.mu.Lock()
	b, ok := r.beds[k][bedNumber]
	if !ok {
		r.mu.Unlock()
		return BedNotFound
	}
	var out ReserveOutcome
	switch b.state {
	case models.BedAvailable:
		b.state = models.BedHeld
		b.holderID = requestID
		b.committed = false
		b.leaseExpiry = time.Now().Add(r.holdTTL)
		out = Reserved
	case models.BedUnderMaintenance:
		out = UnderMaintenance
	default:
		out = AlreadyTaken
	}
	r.mu.Unlock()
	if out == Reserved {
		zap.S().Debugw("bed reserved", "ward", fmt.Sprintf("%s-%s", wardType, wardNumber), "bed", bedNumber, "requestID", requestID)
		r.notify(k)
	}
	return out
}

// Release frees a bed held or occupied by requestID. Used on wizard
// cancellation and on discharge. Callers that do not hold the bed are
// rejected.
func (r *Registry) Release(wardType models.WardType, wardNumber string, bedNumber int, requestID string) ReleaseOutcome {
	k := wardKey{Type: wardType, Number: wardNumber}
	r.mu.Lock()
	b, ok := r.beds[k][bedNumber]
	if !ok || (b.state != models.BedHeld && b.state != models.BedOccupied) || b.holderID != requestID {
		r.mu.Unlock()
		return ReleaseNotHeldByCaller
	}
	b.state = models.BedAvailable
	b.holderID = ""
	b.committed = false
	b.leaseExpiry = time.Time{}
	r.mu.Unlock()
	zap.S().Debugw("bed released", "ward", fmt.Sprintf("%s-%s", wardType, wardNumber), "bed", bedNumber, "requestID", requestID)
	r.notify(k)
	return Released
}

// Commit converts the tentative hold owned by requestID into durable
// occupancy. Only valid after a successful TryReserve with the same id.
func (r *Registry) Commit(wardType models.WardType, wardNumber string, bedNumber int, requestID string) CommitOutcome {
	k := wardKey{Type: wardType, Number: wardNumber}
	r.mu.Lock()
	b, ok := r.beds[k][bedNumber]
	if !ok || b.state != models.BedHeld || b.holderID != requestID {
		r.mu.Unlock()
		return CommitNotHeldByCaller
	}
	b.state = models.BedOccupied
	b.committed = true
	b.leaseExpiry = time.Time{}
	r.mu.Unlock()
	r.notify(k)
	return Committed
}

// SetMaintenance flags an available bed as under maintenance. Occupied
// and held beds are rejected so the flag can never evict a patient.
func (r *Registry) SetMaintenance(wardType models.WardType, wardNumber string, bedNumber int) MaintenanceOutcome {
	k := wardKey{Type: wardType, Number: wardNumber}
	r.mu.Lock()
	b, ok := r.beds[k][bedNumber]
	if !ok {
		r.mu.Unlock()
		return MaintenanceBedNotFound
	}
	if b.state != models.BedAvailable {
		r.mu.Unlock()
		return MaintenanceRejected
	}
	b.state = models.BedUnderMaintenance
	r.mu.Unlock()
	r.notify(k)
	return MaintenanceSet
}

// ClearMaintenance returns a flagged bed to service
func (r *Registry) ClearMaintenance(wardType models.WardType, wardNumber string, bedNumber int) MaintenanceOutcome {
	k := wardKey{Type: wardType, Number: wardNumber}
	r.mu.Lock()
	b, ok := r.beds[k][bedNumber]
	if !ok {
		r.mu.Unlock()
		return MaintenanceBedNotFound
	}
	if b.state != models.BedUnderMaintenance {
		r.mu.Unlock()
		return MaintenanceRejected
	}
	b.state = models.BedAvailable
	r.mu.Unlock()
	r.notify(k)
	return MaintenanceCleared
}

// SeedOccupied marks a bed as committed occupancy at startup, restoring
// registry state from persisted active admissions
func (r *Registry) SeedOccupied(wardType models.WardType, wardNumber string, bedNumber int, requestID string) error {
	k := wardKey{Type: wardType, Number: wardNumber}
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.beds[k][bedNumber]
	if !ok {
		return fmt.Errorf("unknown bed %s-%s/%d", wardType, wardNumber, bedNumber)
	}
	if b.state != models.BedAvailable {
		return fmt.Errorf("bed %s-%s/%d already %s", wardType, wardNumber, bedNumber, b.state)
	}
	b.state = models.BedOccupied
	b.holderID = requestID
	b.committed = true
	return nil
}

// SweepExpired releases every tentative hold whose lease expired before
// now and reports what was reclaimed. Committed occupancy is never
// touched.
func (r *Registry) SweepExpired(now time.Time) []ExpiredHold {
	var reclaimed []ExpiredHold
	var touched []wardKey
	r.mu.Lock()
	for k, ward := range r.beds {
		before := len(reclaimed)
		for n, b := range ward {
			if b.state == models.BedHeld && !b.committed && b.leaseExpiry.Before(now) {
				reclaimed = append(reclaimed, ExpiredHold{
					WardType:   k.Type,
					WardNumber: k.Number,
					BedNumber:  n,
					HolderID:   b.holderID,
				})
				b.state = models.BedAvailable
				b.holderID = ""
				b.leaseExpiry = time.Time{}
			}
		}
		if len(reclaimed) > before {
			touched = append(touched, k)
		}
	}
	r.mu.Unlock()
	for _, h := range reclaimed {
		zap.S().Infow("expired bed hold reclaimed",
			"ward", fmt.Sprintf("%s-%s", h.WardType, h.WardNumber),
			"bed", h.BedNumber,
			"requestID", h.HolderID,
		)
	}
	for _, k := range touched {
		r.notify(k)
	}
	return reclaimed
}

// Watch subscribes to availability snapshots for one ward. Every state
// change pushes a fresh snapshot; slow consumers drop intermediate
// snapshots rather than block the registry.
func (r *Registry) Watch(wardType models.WardType, wardNumber string) (<-chan models.WardAvailability, func(), bool) {
	k := wardKey{Type: wardType, Number: wardNumber}
	if _, ok := r.catalog.GetWard(wardType, wardNumber); !ok {
		return nil, nil, false
	}
	ch := make(chan models.WardAvailability, 1)
	r.watchMu.Lock()
	if r.watchers[k] == nil {
		r.watchers[k] = make(map[int]chan models.WardAvailability)
	}
	r.watchSeq++
	id := r.watchSeq
	r.watchers[k][id] = ch
	r.watchMu.Unlock()

	cancel := func() {
		r.watchMu.Lock()
		if c, ok := r.watchers[k][id]; ok {
			delete(r.watchers[k], id)
			close(c)
		}
		r.watchMu.Unlock()
	}
	return ch, cancel, true
}

func (r *Registry) notify(k wardKey) {
	snap, ok := r.Availability(k.Type, k.Number)
	if !ok {
		return
	}
	r.watchMu.Lock()
	for _, ch := range r.watchers[k] {
		select {
		case ch <- snap:
		default:
			// consumer still has an unread snapshot, replace it
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- snap:
			default:
			}
		}
	}
	r.watchMu.Unlock()
}
