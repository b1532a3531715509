package resolver

import "github.com/alexanderramin/pathfinder/internal/matcher"

// legacyNames maps historical display names (lowercase) to canonical ids.
// Keys are compared after lowercasing and trimming the input.
var legacyNames = map[string]string{
	"uk emergency medicine hst":      matcher.EmergencyHSTID,
	"emergency medicine (hst)":       matcher.EmergencyHSTID,
	"em run-through":                 matcher.EmergencyRunThroughID,
	"accs emergency medicine":        matcher.EmergencyRunThroughID,
	"imt":                            matcher.InternalMedicineID,
	"core medical training":          matcher.InternalMedicineID,
	"cmt":                            matcher.InternalMedicineID,
	"core surgical training":         matcher.SurgicalCoreID,
	"cst":                            matcher.SurgicalCoreID,
	"gp training":                    matcher.GeneralPracticeID,
	"gp specialty training (uk)":     matcher.GeneralPracticeID,
	"core psychiatry training":       matcher.PsychiatryCoreID,
	"core anaesthetics training":     matcher.AnaestheticsCoreID,
	"cat":                            matcher.AnaestheticsCoreID,
	"paediatrics specialty training": matcher.PaediatricsRunThroughID,
	"o&g specialty training":         matcher.ObstetricsRunThroughID,
	"clinical radiology st1":         matcher.RadiologyID,
	"international medical graduate": matcher.ServicePathwayID,
	"img service pathway":            matcher.ServicePathwayID,
}
