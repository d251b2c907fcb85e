package game

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/kamstrup/intmap"

	"github.com/plus3/binsort/ecs"
)

var (
	ErrZoneOccupied = errors.New("zone occupied")
	ErrNotZone      = errors.New("entity is not a zone")
	ErrNotBin       = errors.New("entity is not a bin")
)

// Violation describes one place where zone and bin handles disagree.
type Violation struct {
	Zone   ecs.EntityId
	Bin    ecs.EntityId
	Reason string
}

func (v Violation) String() string {
	return fmt.Sprintf("zone %d / bin %d: %s", v.Zone, v.Bin, v.Reason)
}

// ReconcileReport summarizes one reconciliation pass.
type ReconcileReport struct {
	Violations []Violation
	Repairs    int
}

// Occupancy keeps zone occupants and bin zone handles paired. Every zone
// points at the bin it holds and that bin points back at it.
type Occupancy struct {
	storage *ecs.Storage
	logger  *slog.Logger
	zones   *ecs.Query[struct {
		ecs.EntityId
		*Zone
	}]
	bins *ecs.Query[struct {
		ecs.EntityId
		*Bin
	}]
}

// NewOccupancy creates an occupancy ledger over the zones and bins in storage.
func NewOccupancy(storage *ecs.Storage, logger *slog.Logger) *Occupancy {
	if logger == nil {
		logger = slog.Default()
	}
	return &Occupancy{
		storage: storage,
		logger:  logger,
		zones: ecs.NewQuery[struct {
			ecs.EntityId
			*Zone
		}](storage),
		bins: ecs.NewQuery[struct {
			ecs.EntityId
			*Bin
		}](storage),
	}
}

func (o *Occupancy) zone(id ecs.EntityId) (*Zone, error) {
	z := ecs.ReadComponent[Zone](o.storage, id)
	if z == nil {
		return nil, fmt.Errorf("%w: %d", ErrNotZone, id)
	}
	return z, nil
}

func (o *Occupancy) bin(id ecs.EntityId) (*Bin, error) {
	b := ecs.ReadComponent[Bin](o.storage, id)
	if b == nil {
		return nil, fmt.Errorf("%w: %d", ErrNotBin, id)
	}
	return b, nil
}

// Assign places bin in zone. Any other zone holding the bin lets go of it.
// Assigning to a zone that holds a different bin fails with ErrZoneOccupied
// and changes nothing.
func (o *Occupancy) Assign(zoneID, binID ecs.EntityId) error {
	z, err := o.zone(zoneID)
	if err != nil {
		return err
	}
	b, err := o.bin(binID)
	if err != nil {
		return err
	}
	if z.Occupant.Valid() && !z.Occupant.Is(binID) {
		return fmt.Errorf("assign bin %d to zone %d: %w by bin %d", binID, zoneID, ErrZoneOccupied, z.Occupant.Id)
	}

	for other := range o.zones.Values() {
		if other.EntityId != zoneID && other.Zone.Occupant.Is(binID) {
			other.Zone.Occupant = nil
		}
	}
	z.Occupant = o.storage.CreateEntityRef(binID)
	b.Zone = o.storage.CreateEntityRef(zoneID)
	return nil
}

// Release takes the bin out of whatever zone holds it.
func (o *Occupancy) Release(binID ecs.EntityId) error {
	b, err := o.bin(binID)
	if err != nil {
		return err
	}
	for z := range o.zones.Values() {
		if z.Zone.Occupant.Is(binID) {
			z.Zone.Occupant = nil
		}
	}
	b.Zone = nil
	return nil
}

// OccupantOf returns the bin held by zone.
func (o *Occupancy) OccupantOf(zoneID ecs.EntityId) (ecs.EntityId, bool) {
	z := ecs.ReadComponent[Zone](o.storage, zoneID)
	if z == nil || !z.Occupant.Valid() {
		return 0, false
	}
	return z.Occupant.Id, true
}

// ZoneOf returns the zone the bin believes it is in.
func (o *Occupancy) ZoneOf(binID ecs.EntityId) (ecs.EntityId, bool) {
	b := ecs.ReadComponent[Bin](o.storage, binID)
	if b == nil || !b.Zone.Valid() {
		return 0, false
	}
	return b.Zone.Id, true
}

// Check lists every disagreement between zone and bin handles without
// touching them.
func (o *Occupancy) Check() []Violation {
	var violations []Violation

	for z := range o.zones.Values() {
		if !z.Zone.Occupant.Valid() {
			continue
		}
		binID := z.Zone.Occupant.Id
		b := ecs.ReadComponent[Bin](o.storage, binID)
		switch {
		case b == nil:
			violations = append(violations, Violation{Zone: z.EntityId, Bin: binID, Reason: "occupant is not a bin"})
		case !b.Zone.Is(z.EntityId):
			violations = append(violations, Violation{Zone: z.EntityId, Bin: binID, Reason: "occupant does not point back at zone"})
		}
	}

	for b := range o.bins.Values() {
		if !b.Bin.Zone.Valid() {
			continue
		}
		zoneID := b.Bin.Zone.Id
		z := ecs.ReadComponent[Zone](o.storage, zoneID)
		switch {
		case z == nil:
			violations = append(violations, Violation{Zone: zoneID, Bin: b.EntityId, Reason: "bin zone is not a zone"})
		case !z.Occupant.Is(b.EntityId):
			violations = append(violations, Violation{Zone: zoneID, Bin: b.EntityId, Reason: "zone does not hold bin"})
		}
	}

	return violations
}

// Reconcile repairs the pairing. Bin handles are authoritative: each zone
// takes the bin that claims it (the last such bin if several do), and bins
// whose zone ended up holding something else are cleared.
func (o *Occupancy) Reconcile() ReconcileReport {
	report := ReconcileReport{Violations: o.Check()}
	for _, v := range report.Violations {
		o.logger.Warn("zone occupancy violation", "zone", v.Zone, "bin", v.Bin, "reason", v.Reason)
	}

	claims := intmap.New[ecs.EntityId, ecs.EntityId](8)
	for b := range o.bins.Values() {
		if b.Bin.Zone.Valid() && ecs.ReadComponent[Zone](o.storage, b.Bin.Zone.Id) != nil {
			claims.Put(b.Bin.Zone.Id, b.EntityId)
		}
	}

	for z := range o.zones.Values() {
		binID, claimed := claims.Get(z.EntityId)
		switch {
		case !claimed && z.Zone.Occupant != nil:
			z.Zone.Occupant = nil
			report.Repairs++
		case claimed && !z.Zone.Occupant.Is(binID):
			z.Zone.Occupant = o.storage.CreateEntityRef(binID)
			report.Repairs++
		}
	}

	for b := range o.bins.Values() {
		if b.Bin.Zone == nil {
			continue
		}
		z := ecs.ReadComponent[Zone](o.storage, b.Bin.Zone.Id)
		if !b.Bin.Zone.Valid() || z == nil || !z.Occupant.Is(b.EntityId) {
			b.Bin.Zone = nil
			report.Repairs++
		}
	}

	if report.Repairs > 0 {
		o.logger.Info("zone occupancy repaired", "violations", len(report.Violations), "repairs", report.Repairs)
	}
	return report
}
