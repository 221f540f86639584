package services

import (
	"strings"

	"freight-wms/models"
	"freight-wms/repositories"

	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// InventoryFilter narrows the stock view. Fields on the unit itself
// (pallet, location, item code) filter before provenance resolution;
// the rest filter on the resolved demand line. Empty fields match all.
type InventoryFilter struct {
	Pallet       string `json:"pallet"`
	LocationFrom string `json:"location_from"`
	LocationTo   string `json:"location_to"`
	ItemCode     string `json:"item_code"`
	ItemName     string `json:"item_name"`
	BatchNo      string `json:"batch_no"`
	ExpiryDate   string `json:"expiry_date"`
	Attribute1   string `json:"attribute1"`
	Attribute2   string `json:"attribute2"`
	CustomerName string `json:"customer_name"`
	ContainerNo  string `json:"container_no"`
	CustomerRef  string `json:"customer_ref"`
	JobNo        string `json:"job_no"`
	BookingNo    string `json:"booking_no"`
}

// LocationQty is the per-location slice of a group's stock.
type LocationQty struct {
	Location string `json:"location"`
	Pallets  int    `json:"pallets"`
	Quantity int    `json:"quantity"`
}

// DemandLineRef points at a demand document touching the group's SKU.
type DemandLineRef struct {
	Kind     string `json:"kind"`
	JobNo    string `json:"job_no"`
	ItemCode string `json:"item_code"`
	Quantity int    `json:"quantity"`
	Status   string `json:"status"`
}

// InventoryGroup is one (item, batch) bucket of in-stock units.
type InventoryGroup struct {
	ItemCode  string          `json:"item_code"`
	ItemName  string          `json:"item_name"`
	BatchNo   string          `json:"batch_no"`
	Uom       string          `json:"uom"`
	TotalQty  int             `json:"total_qty"`
	Pallets   int             `json:"pallets"`
	Locations []LocationQty   `json:"locations"`
	Demands   []DemandLineRef `json:"demands"`
}

// UnresolvedUnit reports a unit whose provenance could not be resolved.
// Such units are left out of the groups instead of failing the search.
type UnresolvedUnit struct {
	Pallet          string `json:"pallet"`
	ItemCode        string `json:"item_code"`
	Location        string `json:"location"`
	Quantity        int    `json:"quantity"`
	SourceKind      string `json:"source_kind"`
	SourceID        uint   `json:"source_id"`
	SourceLineIndex int    `json:"source_line_index"`
	Reason          string `json:"reason"`
}

// InventoryService is the read side: it never mutates units or demand
// lines, only folds them into a filtered, grouped stock view.
type InventoryService struct {
	db       *gorm.DB
	units    *repositories.PutawayRepository
	resolver *ProvenanceResolver
}

func NewInventoryService(db *gorm.DB) *InventoryService {
	return &InventoryService{
		db:       db,
		units:    repositories.NewPutawayRepository(db),
		resolver: NewProvenanceResolver(db),
	}
}

// Search folds the warehouse's in-stock units into filtered (item, batch)
// groups. Units with broken provenance do not fail the search; they come
// back separately so the integrity problem stays visible.
func (s *InventoryService) Search(whsCode string, filter InventoryFilter) ([]InventoryGroup, []UnresolvedUnit, error) {
	units, err := s.units.FindByWarehouse(whsCode)
	if err != nil {
		return nil, nil, err
	}

	units = filterUnits(units, filter)

	allowInbound, allowAlloc, restrict, err := s.crossRefSets(filter)
	if err != nil {
		return nil, nil, err
	}

	inStock := units[:0]
	for _, u := range units {
		if u.Status != models.UnitStatusInStock {
			continue
		}
		if restrict {
			switch u.SourceKind {
			case models.SourceKindInboundLine:
				if !allowInbound[u.SourceID] {
					continue
				}
			case models.SourceKindAllocationLine:
				if !allowAlloc[u.SourceID] {
					continue
				}
			}
		}
		inStock = append(inStock, u)
	}
	units = inStock

	metas, errs := s.resolver.ResolveAll(units)

	type bucket struct {
		group     *InventoryGroup
		locations map[string]*LocationQty
	}
	buckets := make(map[string]*bucket)
	var order []string
	var unresolved []UnresolvedUnit

	for i := range units {
		unit := &units[i]
		meta := metas[i]
		if meta == nil {
			unresolved = append(unresolved, UnresolvedUnit{
				Pallet:          unit.Pallet,
				ItemCode:        unit.ItemCode,
				Location:        unit.Location,
				Quantity:        unit.Quantity,
				SourceKind:      unit.SourceKind,
				SourceID:        unit.SourceID,
				SourceLineIndex: unit.SourceLineIndex,
				Reason:          errs[i].Error(),
			})
			continue
		}
		if !matchMeta(meta, filter) {
			continue
		}

		key := unit.ItemCode + "\x00" + meta.BatchNo
		b, ok := buckets[key]
		if !ok {
			b = &bucket{
				group: &InventoryGroup{
					ItemCode: unit.ItemCode,
					ItemName: meta.ItemName,
					BatchNo:  meta.BatchNo,
					Uom:      meta.Uom,
				},
				locations: make(map[string]*LocationQty),
			}
			buckets[key] = b
			order = append(order, key)
		}
		b.group.TotalQty += unit.Quantity
		b.group.Pallets++
		loc, ok := b.locations[unit.Location]
		if !ok {
			loc = &LocationQty{Location: unit.Location}
			b.locations[unit.Location] = loc
		}
		loc.Pallets++
		loc.Quantity += unit.Quantity
	}

	groups := make([]InventoryGroup, 0, len(order))
	for _, key := range order {
		b := buckets[key]
		for _, loc := range b.locations {
			b.group.Locations = append(b.group.Locations, *loc)
		}
		slices.SortStableFunc(b.group.Locations, func(a, c LocationQty) int {
			return strings.Compare(a.Location, c.Location)
		})
		if err := s.attachSupplyDemand(b.group); err != nil {
			return nil, nil, err
		}
		if err := s.attachOutboundDemand(b.group); err != nil {
			return nil, nil, err
		}
		groups = append(groups, *b.group)
	}

	slices.SortStableFunc(groups, func(a, c InventoryGroup) int {
		if n := strings.Compare(a.ItemCode, c.ItemCode); n != 0 {
			return n
		}
		return strings.Compare(a.BatchNo, c.BatchNo)
	})
	return groups, unresolved, nil
}

func filterUnits(units []models.PutawayRecord, f InventoryFilter) []models.PutawayRecord {
	out := units[:0]
	for _, u := range units {
		if f.Pallet != "" && !strings.Contains(u.Pallet, strings.ToUpper(f.Pallet)) {
			continue
		}
		if f.ItemCode != "" && !strings.Contains(u.ItemCode, strings.ToUpper(f.ItemCode)) {
			continue
		}
		if f.LocationFrom != "" && u.Location < f.LocationFrom {
			continue
		}
		if f.LocationTo != "" && u.Location > f.LocationTo {
			continue
		}
		out = append(out, u)
	}
	return out
}

func matchMeta(meta *LineMeta, f InventoryFilter) bool {
	if f.ItemName != "" && !strings.Contains(strings.ToLower(meta.ItemName), strings.ToLower(f.ItemName)) {
		return false
	}
	if f.BatchNo != "" && !strings.Contains(meta.BatchNo, f.BatchNo) {
		return false
	}
	if f.ExpiryDate != "" && meta.ExpiryDate != f.ExpiryDate {
		return false
	}
	if f.Attribute1 != "" && meta.Attribute1 != f.Attribute1 {
		return false
	}
	if f.Attribute2 != "" && meta.Attribute2 != f.Attribute2 {
		return false
	}
	if f.CustomerName != "" && !strings.Contains(strings.ToLower(meta.CustomerName), strings.ToLower(f.CustomerName)) {
		return false
	}
	if f.ContainerNo != "" && meta.ContainerNo != f.ContainerNo {
		return false
	}
	if f.CustomerRef != "" && meta.CustomerRef != f.CustomerRef {
		return false
	}
	return true
}

// crossRefSets turns document-number filters into sets of source IDs the
// provenance must point into. restrict is false when neither filter is
// set, so unmatched codes narrow the result to nothing rather than being
// ignored.
func (s *InventoryService) crossRefSets(f InventoryFilter) (map[uint]bool, map[uint]bool, bool, error) {
	if f.JobNo == "" && f.BookingNo == "" {
		return nil, nil, false, nil
	}
	allowInbound := make(map[uint]bool)
	allowAlloc := make(map[uint]bool)

	if f.JobNo != "" {
		var lines []models.InboundLine
		if err := s.db.
			Joins("JOIN inbound_jobs ON inbound_jobs.id = inbound_lines.inbound_id").
			Where("inbound_jobs.inbound_no = ?", f.JobNo).
			Find(&lines).Error; err != nil {
			return nil, nil, false, err
		}
		for _, l := range lines {
			allowInbound[l.ID] = true
		}
	}
	if f.BookingNo != "" {
		var allocs []models.StockAllocation
		if err := s.db.
			Joins("JOIN container_bookings ON container_bookings.id = stock_allocations.booking_id").
			Where("container_bookings.booking_no = ?", f.BookingNo).
			Find(&allocs).Error; err != nil {
			return nil, nil, false, err
		}
		for _, a := range allocs {
			allowAlloc[a.ID] = true
		}
	}
	return allowInbound, allowAlloc, true, nil
}

// attachSupplyDemand adds the inbound and booking lines of the group's
// SKU, deduplicated by source job. Same scope as the outbound side: the
// whole SKU, not just the jobs the group's own units came from.
func (s *InventoryService) attachSupplyDemand(group *InventoryGroup) error {
	var inboundLines []models.InboundLine
	if err := s.db.
		Where("item_code = ?", group.ItemCode).
		Order("inbound_no ASC").
		Find(&inboundLines).Error; err != nil {
		return err
	}
	seen := make(map[string]bool)
	for _, l := range inboundLines {
		if seen[l.InboundNo] {
			continue
		}
		seen[l.InboundNo] = true
		group.Demands = append(group.Demands, DemandLineRef{
			Kind:     "inbound",
			JobNo:    l.InboundNo,
			ItemCode: l.ItemCode,
			Quantity: l.Quantity,
			Status:   l.Status,
		})
	}

	var allocLines []models.StockAllocationLine
	if err := s.db.Where("item_code = ?", group.ItemCode).Find(&allocLines).Error; err != nil {
		return err
	}
	if len(allocLines) == 0 {
		return nil
	}
	allocIDs := make([]uint, 0, len(allocLines))
	for _, l := range allocLines {
		allocIDs = append(allocIDs, l.AllocationID)
	}
	var allocs []models.StockAllocation
	if err := s.db.Where("id IN ?", allocIDs).Find(&allocs).Error; err != nil {
		return err
	}
	bookingNo := make(map[uint]string, len(allocs))
	for _, a := range allocs {
		bookingNo[a.ID] = a.BookingNo
	}
	seenBooking := make(map[string]bool)
	for _, l := range allocLines {
		no := bookingNo[l.AllocationID]
		if no == "" || seenBooking[no] {
			continue
		}
		seenBooking[no] = true
		group.Demands = append(group.Demands, DemandLineRef{
			Kind:     "booking",
			JobNo:    no,
			ItemCode: l.ItemCode,
			Quantity: l.Quantity,
			Status:   l.Status,
		})
	}
	return nil
}

// attachOutboundDemand adds open outbound lines of the group's SKU,
// deduplicated by job.
func (s *InventoryService) attachOutboundDemand(group *InventoryGroup) error {
	var lines []models.OutboundLine
	if err := s.db.
		Where("item_code = ? AND status <> ?", group.ItemCode, "complete").
		Order("job_no ASC").
		Find(&lines).Error; err != nil {
		return err
	}
	seen := make(map[string]bool)
	for _, l := range lines {
		if seen[l.JobNo] {
			continue
		}
		seen[l.JobNo] = true
		group.Demands = append(group.Demands, DemandLineRef{
			Kind:     "outbound",
			JobNo:    l.JobNo,
			ItemCode: l.ItemCode,
			Quantity: l.Quantity,
			Status:   l.Status,
		})
	}
	return nil
}
