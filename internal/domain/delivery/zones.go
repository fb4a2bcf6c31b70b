package delivery

import "strings"

// cityZones maps lower-cased city names and common spellings to zone types.
var cityZones = map[string]string{
	"abidjan":       "abidjan",
	"cocody":        "abidjan",
	"yopougon":      "abidjan",
	"marcory":       "abidjan",
	"treichville":   "abidjan",
	"adjame":        "abidjan",
	"plateau":       "abidjan",
	"abobo":         "abidjan",
	"anyama":        "abidjan",
	"koumassi":      "abidjan",
	"port-bouet":    "abidjan",
	"bingerville":   "abidjan",
	"attécoubé":     "abidjan",
	"attecoube":     "abidjan",
	"williamsville": "abidjan",

	"grand-bassam": "bassam",
	"grand bassam": "bassam",
	"bassam":       "bassam",
	"jacqueville":  "bassam",
	"bonoua":       "bassam",

	"san-pédro": "sanpedro",
	"san pedro": "sanpedro",
	"sanpedro":  "sanpedro",
	"sassandra": "sanpedro",
	"tabou":     "sanpedro",

	"yamoussoukro": "yamoussoukro",
	"yamossoukro":  "yamoussoukro",
	"tabé":         "yamoussoukro",
	"bangolo":      "yamoussoukro",

	"bouaké":    "bouake",
	"bouake":    "bouake",
	"katiola":   "bouake",
	"boundiali": "bouake",

	"daloa": "daloa",
	"issia": "daloa",
	"oumé":  "daloa",
	"oume":  "daloa",

	"korhogo":        "korhogo",
	"korogo":         "korhogo",
	"tingrela":       "korhogo",
	"ferkessedougou": "korhogo",
	"ferkessédougou": "korhogo",
	"ferkesse":       "korhogo",

	"man":     "man",
	"duékoué": "man",
	"duekoue": "man",
	"guiglo":  "man",
	"touba":   "man",

	"gagnoa":    "gagnoa",
	"ouragahio": "gagnoa",

	"divo":   "divo",
	"lakota": "divo",

	"abengourou":   "abengourou",
	"agboville":    "abengourou",
	"agnibilekrou": "abengourou",

	"odienné": "odienne",
	"odienne": "odienne",
	"seguela": "odienne",
	"séguela": "odienne",
	"madinan": "odienne",
}

// ZoneFor returns the zone type for a city name, matched case-insensitively.
// Unknown cities belong to ZoneOther.
func ZoneFor(city string) string {
	if z, ok := cityZones[strings.ToLower(strings.TrimSpace(city))]; ok {
		return z
	}
	return ZoneOther
}

// Zones lists the zone types cities map to, ZoneOther included.
func Zones() []string {
	return []string{
		"abidjan", "bassam", "sanpedro", "yamoussoukro", "bouake", "daloa",
		"korhogo", "man", "gagnoa", "divo", "abengourou", "odienne", ZoneOther,
	}
}
