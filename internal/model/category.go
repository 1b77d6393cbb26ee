package model

// EquipmentCategory identifies which taxonomy bucket a simulation block
// resolves to. The set is closed; Unknown is the designed fallback and is
// never absent.
type EquipmentCategory string

const (
	// CategoryHeatExchanger covers heaters, coolers, condensers and reboilers.
	CategoryHeatExchanger EquipmentCategory = "HeatExchanger"
	// CategoryDistillationColumn covers rigorous and shortcut column models.
	CategoryDistillationColumn EquipmentCategory = "DistillationColumn"
	// CategoryReactor covers stoichiometric, CSTR, plug-flow and related models.
	CategoryReactor EquipmentCategory = "Reactor"
	// CategoryPump covers liquid pumps.
	CategoryPump EquipmentCategory = "Pump"
	// CategoryCompressor covers single and multi-stage gas compressors,
	// including devices re-examined as fans or turbines at costing time.
	CategoryCompressor EquipmentCategory = "Compressor"
	// CategoryVacuumSystem covers vacuum pumps and steam ejectors.
	CategoryVacuumSystem EquipmentCategory = "VacuumSystem"
	// CategoryEvaporator covers flash drums and evaporator trains.
	CategoryEvaporator EquipmentCategory = "Evaporator"
	// CategorySeparator covers decanters, filters and centrifuges.
	CategorySeparator EquipmentCategory = "Separator"
	// CategoryMixer covers stream mixers.
	CategoryMixer EquipmentCategory = "Mixer"
	// CategorySplitter covers stream splitters.
	CategorySplitter EquipmentCategory = "Splitter"
	// CategoryIgnored marks blocks that never receive a cost (valves, utilities).
	CategoryIgnored EquipmentCategory = "Ignored"
	// CategoryUnknown is the fallback when no rule matches.
	CategoryUnknown EquipmentCategory = "Unknown"
)

// AllCategories returns every category in canonical report order.
func AllCategories() []EquipmentCategory {
	return []EquipmentCategory{
		CategoryHeatExchanger,
		CategoryDistillationColumn,
		CategoryReactor,
		CategoryPump,
		CategoryCompressor,
		CategoryVacuumSystem,
		CategoryEvaporator,
		CategorySeparator,
		CategoryMixer,
		CategorySplitter,
		CategoryIgnored,
		CategoryUnknown,
	}
}

// Valid reports whether c is a member of the closed category set.
func (c EquipmentCategory) Valid() bool {
	for _, known := range AllCategories() {
		if c == known {
			return true
		}
	}
	return false
}

// Costable reports whether devices in this category are ever handed to the
// cost engine. Ignored and Unknown blocks are listed in the report but never
// costed.
func (c EquipmentCategory) Costable() bool {
	return c != CategoryIgnored && c != CategoryUnknown && c.Valid()
}

func (c EquipmentCategory) String() string {
	return string(c)
}
