// Package airline provides static display-name lookup tables for carrier and
// aircraft-type codes. The tables are initialized once and never mutated at
// runtime; lookups are pure functions and a miss always yields a
// deterministic fallback string, never an error.
package airline

import "fmt"

// Fixed labels for empty/absent codes.
const (
	UnknownCarrierLabel  = "未知航空"
	UnknownAircraftLabel = "未知機型"
)

// carrierNames maps IATA carrier codes to display names.
var carrierNames = map[string]string{
	"TW": "台灣虎航",
	"BR": "長榮航空",
	"CI": "中華航空",
	"JL": "日本航空",
	"NH": "全日空航空",
	"MM": "樂桃航空",
	"VJ": "越捷航空",
	"JX": "星宇航空",
	"AK": "亞洲航空",
	"TR": "酷航",
}

// aircraftNames maps IATA aircraft-type codes to display names.
var aircraftNames = map[string]string{
	"738": "波音 737-800",
	"747": "波音 747",
	"744": "波音 747-400",
	"748": "波音 747-800",
	"333": "空巴 A330-300",
	"359": "空巴 A350-900",
	"32N": "空巴 A320neo",
	"321": "空巴 A321",
	"32Q": "空巴 A321neo",
	"320": "空巴 A320",
	"789": "波音 787-9",
	"788": "波音 787-8",
	"77W": "波音 777-300ER",
	"772": "波音 777-200",
	"773": "波音 777-300",
	"330": "空巴 A330",
	"332": "空巴 A330-200",
	"346": "空巴 A340-600",
	"35K": "空巴 A350-1000",
	"380": "空巴 A380",
}

// CarrierName resolves a carrier code to its display name. Unknown codes get
// a fallback embedding the raw code; an empty code gets the fixed unknown
// label.
func CarrierName(code string) string {
	if code == "" {
		return UnknownCarrierLabel
	}
	if name, ok := carrierNames[code]; ok {
		return name
	}
	return fmt.Sprintf("其他航空(%s)", code)
}

// AircraftName resolves an aircraft-type code to its display name with the
// same miss policy as CarrierName.
func AircraftName(code string) string {
	if code == "" {
		return UnknownAircraftLabel
	}
	if name, ok := aircraftNames[code]; ok {
		return name
	}
	return fmt.Sprintf("其他機型(%s)", code)
}
