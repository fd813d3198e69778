package hospital_test

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/AvSoft-Technologies-Pvt-LTD/DigiHealth-sub000/hospital"
	"github.com/AvSoft-Technologies-Pvt-LTD/DigiHealth-sub000/models"
)

func newTestRegistry(t *testing.T) *hospital.Registry {
	t.Helper()
	c, err := hospital.NewCatalog(testWards())
	assert.NoError(t, err)
	return hospital.NewRegistry(c, 15*time.Minute)
}

func TestRegistry_AvailabilitySnapshot(t *testing.T) {
	r := newTestRegistry(t)

	// ICU ward C has 10 beds; occupy 1,2,3,5,6,8,9
	for _, n := range []int{1, 2, 3, 5, 6, 8, 9} {
		err := r.SeedOccupied(models.WardICU, "C", n, fmt.Sprintf("adm-%d", n))
		assert.NoError(t, err)
	}

	snap, ok := r.Availability(models.WardICU, "C")
	assert.True(t, ok)
	assert.Equal(t, 10, snap.TotalBeds)
	assert.Equal(t, 3, snap.Available)
	assert.Equal(t, 7, snap.Occupied)
	assert.Equal(t, 0, snap.Maintenance)
	assert.Equal(t, []int{4, 7, 10}, snap.FreeBedNumbers())
}

func TestRegistry_AvailabilityUnknownWard(t *testing.T) {
	r := newTestRegistry(t)
	_, ok := r.Availability(models.WardMaternity, "Z")
	assert.False(t, ok)
}

func TestRegistry_TryReserveExclusive(t *testing.T) {
	r := newTestRegistry(t)

	const competitors = 16
	results := make([]hospital.ReserveOutcome, competitors)
	var wg sync.WaitGroup
	for i := 0; i < competitors; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = r.TryReserve(models.WardICU, "C", 4, fmt.Sprintf("req-%d", i))
		}(i)
	}
	wg.Wait()

	reserved, taken := 0, 0
	for _, out := range results {
		switch out {
		case hospital.Reserved:
			reserved++
		case hospital.AlreadyTaken:
			taken++
		}
	}
	assert.Equal(t, 1, reserved)
	assert.Equal(t, competitors-1, taken)

	snap, _ := r.Availability(models.WardICU, "C")
	assert.Equal(t, 1, snap.Occupied)
	assert.Equal(t, models.BedHeld, snap.Beds[4].State)
}

func TestRegistry_Conservation(t *testing.T) {
	r := newTestRegistry(t)

	check := func() {
		snap, ok := r.Availability(models.WardGeneral, "A")
		assert.True(t, ok)
		assert.Equal(t, snap.TotalBeds, snap.Available+snap.Occupied+snap.Maintenance)
	}

	check()
	assert.Equal(t, hospital.Reserved, r.TryReserve(models.WardGeneral, "A", 1, "req-1"))
	check()
	assert.Equal(t, hospital.MaintenanceSet, r.SetMaintenance(models.WardGeneral, "A", 2))
	check()
	assert.Equal(t, hospital.Committed, r.Commit(models.WardGeneral, "A", 1, "req-1"))
	check()
	assert.Equal(t, hospital.Released, r.Release(models.WardGeneral, "A", 1, "req-1"))
	check()
	assert.Equal(t, hospital.MaintenanceCleared, r.ClearMaintenance(models.WardGeneral, "A", 2))
	check()
}

func TestRegistry_ReleaseRequiresHolder(t *testing.T) {
	r := newTestRegistry(t)

	assert.Equal(t, hospital.Reserved, r.TryReserve(models.WardGeneral, "A", 3, "req-owner"))
	assert.Equal(t, hospital.ReleaseNotHeldByCaller, r.Release(models.WardGeneral, "A", 3, "req-intruder"))
	assert.Equal(t, hospital.ReleaseNotHeldByCaller, r.Release(models.WardGeneral, "A", 4, "req-owner"))
	assert.Equal(t, hospital.Released, r.Release(models.WardGeneral, "A", 3, "req-owner"))

	snap, _ := r.Availability(models.WardGeneral, "A")
	assert.Equal(t, models.BedAvailable, snap.Beds[3].State)
}

func TestRegistry_CommitRequiresPriorReserve(t *testing.T) {
	r := newTestRegistry(t)

	assert.Equal(t, hospital.CommitNotHeldByCaller, r.Commit(models.WardGeneral, "A", 1, "req-1"))

	assert.Equal(t, hospital.Reserved, r.TryReserve(models.WardGeneral, "A", 1, "req-1"))
	assert.Equal(t, hospital.CommitNotHeldByCaller, r.Commit(models.WardGeneral, "A", 1, "req-2"))
	assert.Equal(t, hospital.Committed, r.Commit(models.WardGeneral, "A", 1, "req-1"))

	// committing twice is a defect signal, not a silent success
	assert.Equal(t, hospital.CommitNotHeldByCaller, r.Commit(models.WardGeneral, "A", 1, "req-1"))
}

func TestRegistry_MaintenanceBlocksReservation(t *testing.T) {
	r := newTestRegistry(t)

	assert.Equal(t, hospital.MaintenanceSet, r.SetMaintenance(models.WardICU, "C", 5))
	assert.Equal(t, hospital.UnderMaintenance, r.TryReserve(models.WardICU, "C", 5, "req-1"))

	// the flag is stable across reads, not recomputed per query
	snap1, _ := r.Availability(models.WardICU, "C")
	snap2, _ := r.Availability(models.WardICU, "C")
	assert.Equal(t, models.BedUnderMaintenance, snap1.Beds[5].State)
	assert.Equal(t, snap1.Beds[5], snap2.Beds[5])

	assert.Equal(t, hospital.MaintenanceCleared, r.ClearMaintenance(models.WardICU, "C", 5))
	assert.Equal(t, hospital.Reserved, r.TryReserve(models.WardICU, "C", 5, "req-1"))
}

func TestRegistry_MaintenanceRejectsOccupiedBed(t *testing.T) {
	r := newTestRegistry(t)

	assert.Equal(t, hospital.Reserved, r.TryReserve(models.WardICU, "C", 1, "req-1"))
	assert.Equal(t, hospital.MaintenanceRejected, r.SetMaintenance(models.WardICU, "C", 1))
	assert.Equal(t, hospital.MaintenanceBedNotFound, r.SetMaintenance(models.WardICU, "C", 42))
}

func TestRegistry_UnknownBed(t *testing.T) {
	r := newTestRegistry(t)
	assert.Equal(t, hospital.BedNotFound, r.TryReserve(models.WardICU, "C", 11, "req-1"))
	assert.Equal(t, hospital.BedNotFound, r.TryReserve(models.WardMaternity, "Z", 1, "req-1"))
}

func TestRegistry_SweepReclaimsExpiredHolds(t *testing.T) {
	c, err := hospital.NewCatalog(testWards())
	assert.NoError(t, err)
	r := hospital.NewRegistry(c, time.Minute)

	assert.Equal(t, hospital.Reserved, r.TryReserve(models.WardGeneral, "A", 1, "req-stale"))
	assert.Equal(t, hospital.Reserved, r.TryReserve(models.WardGeneral, "A", 2, "req-committed"))
	assert.Equal(t, hospital.Committed, r.Commit(models.WardGeneral, "A", 2, "req-committed"))

	reclaimed := r.SweepExpired(time.Now().Add(2 * time.Minute))
	assert.Len(t, reclaimed, 1)
	assert.Equal(t, "req-stale", reclaimed[0].HolderID)
	assert.Equal(t, 1, reclaimed[0].BedNumber)

	snap, _ := r.Availability(models.WardGeneral, "A")
	assert.Equal(t, models.BedAvailable, snap.Beds[1].State)
	// committed occupancy never expires
	assert.Equal(t, models.BedOccupied, snap.Beds[2].State)
}

func TestRegistry_SweepLeavesFreshHolds(t *testing.T) {
	r := newTestRegistry(t)
	assert.Equal(t, hospital.Reserved, r.TryReserve(models.WardGeneral, "A", 1, "req-fresh"))

	reclaimed := r.SweepExpired(time.Now())
	assert.Empty(t, reclaimed)

	snap, _ := r.Availability(models.WardGeneral, "A")
	assert.Equal(t, models.BedHeld, snap.Beds[1].State)
}

func TestRegistry_WatchDeliversSnapshots(t *testing.T) {
	r := newTestRegistry(t)

	updates, cancel, ok := r.Watch(models.WardICU, "C")
	assert.True(t, ok)
	defer cancel()

	assert.Equal(t, hospital.Reserved, r.TryReserve(models.WardICU, "C", 4, "req-1"))

	select {
	case snap := <-updates:
		assert.Equal(t, models.BedHeld, snap.Beds[4].State)
	case <-time.After(time.Second):
		t.Fatal("no snapshot delivered after reservation")
	}
}

func TestRegistry_WatchUnknownWard(t *testing.T) {
	r := newTestRegistry(t)
	_, _, ok := r.Watch(models.WardMaternity, "Z")
	assert.False(t, ok)
}
