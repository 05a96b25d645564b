package lexicon

// Towns are the twenty municipalities and component city of La Union.
var Towns = []string{
	"Agoo",
	"Aringay",
	"Bacnotan",
	"Bagulin",
	"Balaoan",
	"Bangar",
	"Bauang",
	"Burgos",
	"Caba",
	"Luna",
	"Naguilian",
	"Pugo",
	"Rosario",
	"San Fernando",
	"San Gabriel",
	"San Juan",
	"Santol",
	"Santo Tomas",
	"Sudipen",
	"Tubao",
}

// TownAliases maps common misspellings, abbreviations and local shorthand to
// canonical town names. Keys are matched case-insensitively.
var TownAliases = map[string]string{
	"sfc":               "San Fernando",
	"san fer":           "San Fernando",
	"sanfernando":       "San Fernando",
	"san fernando city": "San Fernando",
	"naguillian":        "Naguilian",
	"nagilian":          "Naguilian",
	"sto tomas":         "Santo Tomas",
	"sto. tomas":        "Santo Tomas",
	"san gab":           "San Gabriel",
	"sn juan":           "San Juan",
	"urbiztondo":        "San Juan",
	"bawang":            "Bauang",
	"balawan":           "Balaoan",
	"elyu":              Umbrella,
	"launion":           Umbrella,
}

// ProductAliases maps Ilocano and colloquial product names to the canonical
// names used in the catalog.
var ProductAliases = map[string]string{
	"bangus":            "Milkfish",
	"tuyo":              "Dried Fish",
	"daing":             "Dried Fish",
	"inabel":            "Inabel Fabric",
	"abel":              "Inabel Fabric",
	"abel iloco":        "Inabel Fabric",
	"basi":              "Basi",
	"sugarcane wine":    "Basi",
	"damili":            "Damili Pottery",
	"tapuey":            "Rice Wine",
	"walis tambo":       "Soft Broom",
	"tiger grass broom": "Soft Broom",
	"ube":               "Ube Wine",
	"bagoong":           "Fish Paste",
	"sukang iloco":      "Cane Vinegar",
	"kurtib":            "Peanut Brittle",
	"honey bee":         "Honey",
}
