package models

import (
	"fmt"
	"strings"
)

// Party is a party label as it appears in the 11th Meghalaya Assembly table.
type Party string

const (
	PartyNPP         Party = "NPP"
	PartyUDP         Party = "UDP"
	PartyINC         Party = "INC"
	PartyVPP         Party = "VPP"
	PartyBJP         Party = "BJP"
	PartyAITC        Party = "AITC"
	PartyPDF         Party = "PDF"
	PartyHSPDP       Party = "HSPDP"
	PartyVacant      Party = "Vacant"
	PartyIndependent Party = "Independent"
)

// KnownParties is the static party enumeration, used for reporting only.
var KnownParties = []Party{
	PartyNPP, PartyUDP, PartyINC, PartyVPP, PartyBJP,
	PartyAITC, PartyPDF, PartyHSPDP, PartyVacant, PartyIndependent,
}

// IsKnown reports whether p is in KnownParties.
func (p Party) IsKnown() bool {
	for _, k := range KnownParties {
		if k == p {
			return true
		}
	}
	return false
}

// District is a district header label.
type District string

// KnownDistricts is the static district enumeration, used for reporting only.
var KnownDistricts = []District{
	"West Jaintia Hills district",
	"East Jaintia Hills district",
	"Ri Bhoi district",
	"East Khasi Hills district",
	"West Khasi Hills district",
	"Eastern West Khasi Hills district",
	"South West Khasi Hills district",
	"North Garo Hills district",
	"East Garo Hills district",
	"South Garo Hills district",
	"West Garo Hills district",
	"South West Garo Hills district",
}

// IsKnown reports whether d is in KnownDistricts.
func (d District) IsKnown() bool {
	for _, k := range KnownDistricts {
		if k == d {
			return true
		}
	}
	return false
}

// ColorChoice selects the dimension records are grouped by in summaries.
type ColorChoice string

const (
	ByParty    ColorChoice = "Party"
	ByDistrict ColorChoice = "District"
)

// ParseColorChoice matches s against the choices, ignoring case.
func ParseColorChoice(s string) (ColorChoice, error) {
	for _, c := range []ColorChoice{ByParty, ByDistrict} {
		if strings.EqualFold(strings.TrimSpace(s), string(c)) {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown grouping %q (valid: %s, %s)", s, ByParty, ByDistrict)
}
