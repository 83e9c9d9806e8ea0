package model

import "strings"

// CrimeType is the closed set of canonical incident categories.
type CrimeType string

const (
	CrimeMurder       CrimeType = "MURDER"
	CrimeAssault      CrimeType = "ASSAULT"
	CrimeRobbery      CrimeType = "ROBBERY"
	CrimeBurglary     CrimeType = "BURGLARY"
	CrimeTheft        CrimeType = "THEFT"
	CrimeVehicleTheft CrimeType = "VEHICLE_THEFT"
	CrimeCyber        CrimeType = "CYBER"
	CrimeFraud        CrimeType = "FRAUD"
	CrimeVandalism    CrimeType = "VANDALISM"
	CrimeDrugOffense  CrimeType = "DRUG_OFFENSE"
	CrimeOther        CrimeType = "OTHER"
)

// AllCrimeTypes lists every canonical type in a fixed order. Aggregations
// iterate this slice so that zero counts are always present.
var AllCrimeTypes = []CrimeType{
	CrimeMurder, CrimeAssault, CrimeRobbery, CrimeBurglary, CrimeTheft,
	CrimeVehicleTheft, CrimeCyber, CrimeFraud, CrimeVandalism,
	CrimeDrugOffense, CrimeOther,
}

// crimeTypeSynonyms maps normalized labels to canonical types. Lookup is
// exact match only; no fuzzy matching is attempted, so ambiguous labels
// degrade to OTHER.
var crimeTypeSynonyms = map[string]CrimeType{
	"MURDER":                CrimeMurder,
	"HOMICIDE":              CrimeMurder,
	"ASSAULT":               CrimeAssault,
	"BATTERY":               CrimeAssault,
	"ROBBERY":               CrimeRobbery,
	"BURGLARY":              CrimeBurglary,
	"BREAKING_AND_ENTERING": CrimeBurglary,
	"THEFT":                 CrimeTheft,
	"LARCENY":               CrimeTheft,
	"VEHICLE_THEFT":         CrimeVehicleTheft,
	"CAR_THEFT":             CrimeVehicleTheft,
	"AUTO_THEFT":            CrimeVehicleTheft,
	"CYBER":                 CrimeCyber,
	"CYBERCRIME":            CrimeCyber,
	"FRAUD":                 CrimeFraud,
	"VANDALISM":             CrimeVandalism,
	"CRIMINAL_DAMAGE":       CrimeVandalism,
	"DRUG_OFFENSE":          CrimeDrugOffense,
	"DRUGS":                 CrimeDrugOffense,
	"NARCOTICS":             CrimeDrugOffense,
}

// NormalizeCrimeType folds a free-text label into the canonical set. The
// label is uppercased and whitespace runs become underscores before the
// synonym lookup; anything unmatched maps to CrimeOther.
func NormalizeCrimeType(label string) CrimeType {
	key := strings.ToUpper(strings.TrimSpace(label))
	key = strings.Join(strings.Fields(key), "_")
	if ct, ok := crimeTypeSynonyms[key]; ok {
		return ct
	}
	return CrimeOther
}

// Label returns the type with underscores replaced by spaces, e.g.
// "VEHICLE THEFT", matching how insights describe categories.
func (c CrimeType) Label() string {
	return strings.ReplaceAll(string(c), "_", " ")
}
