package syncer

import "strings"

// cityStates maps free-text city names (lowercased) to their state. Client
// addresses arrive with a bare city field; the view layer wants the state.
var cityStates = map[string]string{
	"caracas":                "Distrito Capital",
	"maracaibo":              "Zulia",
	"valencia":               "Carabobo",
	"barquisimeto":           "Lara",
	"maracay":                "Aragua",
	"ciudad guayana":         "Bolívar",
	"barcelona":              "Anzoátegui",
	"puerto la cruz":         "Anzoátegui",
	"maturín":                "Monagas",
	"san cristóbal":          "Táchira",
	"barinas":                "Barinas",
	"cumaná":                 "Sucre",
	"puerto ordaz":           "Bolívar",
	"guatire":                "Miranda",
	"guarenas":               "Miranda",
	"los teques":             "Miranda",
	"la guaira":              "La Guaira",
	"san felipe":             "Yaracuy",
	"acarigua":               "Portuguesa",
	"araure":                 "Portuguesa",
	"el tigre":               "Anzoátegui",
	"coro":                   "Falcón",
	"trujillo":               "Trujillo",
	"mérida":                 "Mérida",
	"valera":                 "Trujillo",
	"san carlos":             "Cojedes",
	"san fernando de apure":  "Apure",
	"guanare":                "Portuguesa",
	"carúpano":               "Sucre",
	"tucupita":               "Delta Amacuro",
	"el vigía":               "Mérida",
	"ciudad bolívar":         "Bolívar",
	"la asunción":            "Nueva Esparta",
	"porlamar":               "Nueva Esparta",
	"punto fijo":             "Falcón",
	"guacara":                "Carabobo",
	"naguanagua":             "Carabobo",
	"tinaquillo":             "Cojedes",
	"ocumare del tuy":        "Miranda",
	"charallave":             "Miranda",
	"san juan de los morros": "Guárico",
	"calabozo":               "Guárico",
	"valle de la pascua":     "Guárico",
	"cabimas":                "Zulia",
	"santa rita":             "Zulia",
	"machiques":              "Zulia",
}

// Common misspellings of the capital seen in the source data.
var caracasVariants = map[string]bool{
	"caraccas":  true,
	"caracaas":  true,
	"caraca":    true,
	"cararacas": true,
	"caracs":    true,
}

// stateForCity resolves a free-text city to its state, or "" when the city is
// blank or unknown.
func stateForCity(city string) string {
	city = strings.ToLower(strings.TrimSpace(city))
	if city == "" {
		return ""
	}
	if caracasVariants[city] {
		city = "caracas"
	}
	return cityStates[city]
}
