// Package classifier maps simulation blocks onto the equipment taxonomy
// using a three-tier rule table: authoritative record-type tags, then name
// patterns, then keyword substrings.
package classifier

import "github.com/phygon975/API-project/internal/model"

// DefaultRules returns the built-in rule table. Record types are the exact
// model-type tags the simulation engine reports; patterns follow the common
// plant naming conventions (E-101, COL-2, P3, ...). Priority only matters
// when two rules match in the same tier; multi-letter prefixes carry higher
// priority than the ambiguous single letters so EVAP-1 beats the bare E
// prefix and COMP-2 beats the bare C prefix.
func DefaultRules() []model.ClassificationRule {
	return []model.ClassificationRule{
		{
			Category:        model.CategoryHeatExchanger,
			DefaultSubtype:  "fixed_tube",
			RecordTypes:     []string{"HeatX", "Heater", "Cooler", "Condenser", "Reboiler"},
			Patterns:        []string{`^(?i:HX|EXCH)-?\d+`, `^(?i:E)-?\d+`},
			Keywords:        []string{"EXCHANGER", "HEATER", "COOLER", "CONDENSER", "REBOILER"},
			Priority:        20,
			ConfidenceBonus: 0.05,
		},
		{
			Category:       model.CategoryDistillationColumn,
			DefaultSubtype: "tray",
			RecordTypes:    []string{"RadFrac", "Distl", "DWSTU"},
			Patterns:       []string{`^(?i:COL|DIST)-?\d+`, `^(?i:T)-?\d+`},
			Keywords:       []string{"COLUMN", "TOWER", "DISTIL"},
			Priority:       30,
		},
		{
			Category:       model.CategoryReactor,
			DefaultSubtype: "jacketed_agitated",
			RecordTypes:    []string{"RStoic", "RCSTR", "RPlug", "RBatch", "REquil", "RYield"},
			Patterns:       []string{`^(?i:RX|RXR)-?\d+`, `^(?i:R)-?\d+`},
			Keywords:       []string{"REACTOR", "CSTR", "PFR"},
			Priority:       20,
		},
		{
			Category:       model.CategoryPump,
			DefaultSubtype: "centrifugal",
			RecordTypes:    []string{"Pump"},
			Patterns:       []string{`^(?i:PUMP)-?\d+`, `^(?i:P)-?\d+`},
			Keywords:       []string{"PUMP"},
			Priority:       20,
		},
		{
			Category:       model.CategoryCompressor,
			DefaultSubtype: "centrifugal",
			RecordTypes:    []string{"Compr", "MCompr"},
			Patterns:       []string{`^(?i:COMP)-?\d+`, `^(?i:C)-?\d+`, `^(?i:K)-?\d+`},
			Keywords:       []string{"COMPRESSOR", "COMPR"},
			Priority:       20,
		},
		{
			Category:       model.CategoryVacuumSystem,
			DefaultSubtype: "ejector",
			RecordTypes:    []string{"Vacuum", "Ejector"},
			Patterns:       []string{`^(?i:VAC|EJ)-?\d+`},
			Keywords:       []string{"VACUUM", "EJECTOR"},
			Priority:       40,
		},
		{
			Category:       model.CategoryEvaporator,
			DefaultSubtype: "flash_drum",
			RecordTypes:    []string{"Flash", "Flash2", "Flash3", "EVAP1", "EVAP2", "EVAP3"},
			Patterns:       []string{`^(?i:EVAP)-?\d+`, `^(?i:FL)-?\d+`},
			Keywords:       []string{"EVAPORATOR", "FLASH"},
			Priority:       40,
		},
		{
			Category:       model.CategorySeparator,
			DefaultSubtype: "decanter",
			RecordTypes:    []string{"Sep", "Decanter", "Filter", "Centrifuge"},
			Patterns:       []string{`^(?i:SEP|DEC|FILT)-?\d+`},
			Keywords:       []string{"SEPARATOR", "DECANTER", "FILTER", "CENTRIFUGE"},
			Priority:       30,
		},
		{
			Category:       model.CategoryMixer,
			DefaultSubtype: "inline",
			RecordTypes:    []string{"Mixer"},
			Patterns:       []string{`^(?i:MIX)-?\d+`},
			Keywords:       []string{"MIXER"},
			Priority:       30,
		},
		{
			Category:       model.CategorySplitter,
			DefaultSubtype: "tee",
			RecordTypes:    []string{"FSplit", "Splitter"},
			Patterns:       []string{`^(?i:SPLIT|FS)-?\d+`},
			Keywords:       []string{"SPLITTER"},
			Priority:       30,
		},
		{
			Category:       model.CategoryIgnored,
			DefaultSubtype: "",
			RecordTypes:    []string{"Valve", "Utility"},
			Patterns:       []string{`^(?i:UTIL)-?\d*`, `^(?i:V)-?\d+`},
			Keywords:       []string{"VALVE", "UTILITY"},
			Priority:       10,
		},
	}
}
