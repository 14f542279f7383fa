package agenda

import "time"

// CellKind classifies a slot in the rendered grid.
type CellKind int

const (
	// CellFree marks a slot with no appointment; it offers a create action.
	CellFree CellKind = iota
	// CellAppointment marks a slot where an appointment starts (active or
	// cancelled; the entry carries the distinction).
	CellAppointment
	// CellOccupied marks a slot covered by an appointment that started
	// earlier and has not ended; it offers no actions.
	CellOccupied
)

// Entry is the grid builder's view of an appointment: the fields needed to
// index, mark occupancy and label a row.
type Entry struct {
	ID        string
	PatientID string
	Notes     string
	StartAt   time.Time
	EndAt     time.Time
	Cancelled bool
}

// Cell is the rendering decision for one slot label. Entry is non-nil only
// for CellAppointment.
type Cell struct {
	Label string
	Kind  CellKind
	Entry *Entry
}

// BuildGrid classifies every slot label against the day's entries. Each label
// falls into exactly one kind:
//
//   - an entry starts at the label (local time)  -> CellAppointment
//   - a non-cancelled entry covers the label     -> CellOccupied
//   - otherwise                                  -> CellFree
//
// Cancelled entries keep their start cell so the receptionist sees them at
// their original slot, but contribute no occupancy. If two entries start at
// the same label the last one wins; the backend's overlap rejection makes
// that unreachable for a single practitioner's day.
func BuildGrid(slots []string, entries []Entry, step int) []Cell {
	if step <= 0 {
		step = SlotMinutes
	}

	byStart := make(map[string]*Entry, len(entries))
	occupied := make(map[string]bool)

	for i := range entries {
		e := &entries[i]
		byStart[ToLocalHHMM(e.StartAt)] = e

		if e.Cancelled {
			continue
		}
		start, err := HHMMToMinutes(ToLocalHHMM(e.StartAt))
		if err != nil {
			continue
		}
		end, err := HHMMToMinutes(ToLocalHHMM(e.EndAt))
		if err != nil {
			continue
		}
		// Every slot starting strictly before the end instant is covered,
		// so non-aligned durations round their occupancy up.
		for t := start; t < end; t += step {
			occupied[MinutesToHHMM(t)] = true
		}
	}

	cells := make([]Cell, 0, len(slots))
	for _, label := range slots {
		switch {
		case byStart[label] != nil:
			cells = append(cells, Cell{Label: label, Kind: CellAppointment, Entry: byStart[label]})
		case occupied[label]:
			cells = append(cells, Cell{Label: label, Kind: CellOccupied})
		default:
			cells = append(cells, Cell{Label: label, Kind: CellFree})
		}
	}
	return cells
}
