package matcher

// Pathway ids targeted by the heuristic tables.
const (
	ServicePathwayID        = "img-service"
	EmergencyHSTID          = "rcem-hst"
	EmergencyRunThroughID   = "rcem-run-through"
	InternalMedicineID      = "mrcp-imt"
	MedicineHSTID           = "medicine-hst"
	SurgicalCoreID          = "core-surgical"
	SurgicalHSTID           = "surgical-hst"
	PaediatricsRunThroughID = "rcpch-run-through"
	PaediatricsSTID         = "paediatrics-st"
	PsychiatryCoreID        = "psychiatry-core"
	PsychiatryHSTID         = "psychiatry-hst"
	GeneralPracticeID       = "gpst"
	AnaestheticsCoreID      = "anaesthetics-core"
	AnaestheticsHSTID       = "anaesthetics-hst"
	RadiologyID             = "radiology-st"
	ObstetricsRunThroughID  = "og-run-through"
	USResidencyID           = "usmle-residency"
	AustraliaPathwayID      = "amc-australia"
)

// alias maps a lowercase trigger substring to a pathway id.
type alias struct {
	trigger   string
	pathwayID string
}

// legacyAliases is evaluated top to bottom. A trigger that contains another
// trigger must come first (mrcpch before mrcp).
var legacyAliases = []alias{
	{"non-training", ServicePathwayID},
	{"non training", ServicePathwayID},
	{"service post", ServicePathwayID},
	{"trust grade", ServicePathwayID},
	{"staff grade", ServicePathwayID},
	{"clinical fellow", ServicePathwayID},
	{"locum", ServicePathwayID},

	{"mrcpch", PaediatricsRunThroughID},
	{"rcpch", PaediatricsRunThroughID},
	{"mrcpsych", PsychiatryCoreID},
	{"rcpsych", PsychiatryCoreID},
	{"jrcptb", InternalMedicineID},
	{"mrcp", InternalMedicineID},
	{"frcem", EmergencyHSTID},
	{"mrcem", EmergencyHSTID},
	{"rcem", EmergencyHSTID},
	{"mrcgp", GeneralPracticeID},
	{"rcgp", GeneralPracticeID},
	{"mrcog", ObstetricsRunThroughID},
	{"rcog", ObstetricsRunThroughID},
	{"frca", AnaestheticsCoreID},
	{"rcoa", AnaestheticsCoreID},
	{"frcr", RadiologyID},
	{"mrcs", SurgicalCoreID},
	{"jcst", SurgicalCoreID},
	{"usmle", USResidencyID},
	{"australian medical council", AustraliaPathwayID},
}

// specialtyTriggers mark a name as a generic specialty-training reference
// whose meaning depends on the user's specialty.
var specialtyTriggers = []string{
	"higher specialty training",
	"higher speciality training",
	"higher specialist training",
	"specialty training",
	"speciality training",
	"run-through",
	"run through",
	"registrar",
	"hst",
	"st3",
}

// specialtyRule maps any of keywords (matched against the lowercase
// specialty) to a pathway. When runThroughID is set, run-through phrasing in
// the name selects it instead of pathwayID.
type specialtyRule struct {
	keywords     []string
	pathwayID    string
	runThroughID string
}

var specialtyRules = []specialtyRule{
	{keywords: []string{"emergency"}, pathwayID: EmergencyHSTID, runThroughID: EmergencyRunThroughID},
	{keywords: []string{"internal medicine", "general medicine", "acute medicine", "general internal"}, pathwayID: MedicineHSTID},
	{keywords: []string{"surg", "orthopaed", "orthoped"}, pathwayID: SurgicalHSTID},
	{keywords: []string{"paediatric", "pediatric"}, pathwayID: PaediatricsSTID},
	{keywords: []string{"psychiatr"}, pathwayID: PsychiatryHSTID},
	{keywords: []string{"general practice", "family medicine", "gp"}, pathwayID: GeneralPracticeID},
	{keywords: []string{"anaesthe", "anesthe"}, pathwayID: AnaestheticsHSTID},
	{keywords: []string{"radiolog"}, pathwayID: RadiologyID},
	{keywords: []string{"obstetric", "gynaecolog", "gynecolog"}, pathwayID: ObstetricsRunThroughID},
}

var (
	higherPhrases     = []string{"higher", "hst"}
	runThroughPhrases = []string{"run-through", "run through", "acct"}
)
