package domain

type RequirementCategory string

const (
	CategoryExam        RequirementCategory = "Exam"
	CategoryCertificate RequirementCategory = "Certificate"
	CategoryPlacement   RequirementCategory = "Placement"
	CategoryPortfolio   RequirementCategory = "Portfolio"
	CategoryCourse      RequirementCategory = "Course"
	CategoryTraining    RequirementCategory = "Training"
)

// ValidCategories is the canonical set of accepted category labels.
var ValidCategories = map[string]bool{
	"Exam": true, "Certificate": true, "Placement": true,
	"Portfolio": true, "Course": true, "Training": true,
}

type RecordStatus string

const (
	RecordActive   RecordStatus = "active"
	RecordDraft    RecordStatus = "draft"
	RecordArchived RecordStatus = "archived"
)

type MilestoneStatus string

const (
	MilestoneNotStarted MilestoneStatus = "not_started"
	MilestoneTodo       MilestoneStatus = "todo"
	MilestoneInProgress MilestoneStatus = "in_progress"
	MilestoneDone       MilestoneStatus = "done"
)

// ValidMilestoneStatuses is the canonical set of accepted milestone status strings.
var ValidMilestoneStatuses = map[string]bool{
	"not_started": true, "todo": true, "in_progress": true, "done": true,
}
