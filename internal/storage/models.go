package storage

// MonthPlan is one month of the roadmap. Order of Targets defines target numbering.
type MonthPlan struct {
	Month          string   `json:"month" yaml:"month" validate:"required"`
	Targets        []string `json:"targets" yaml:"targets" validate:"required"`
	HowToAchieve   []string `json:"howToAchieve" yaml:"howToAchieve" validate:"required"`
	MonthlySummary string   `json:"monthlySummary" yaml:"monthlySummary"`
}

// MasterPlan maps a month-key (YYYY-MM) to its plan.
type MasterPlan map[string]MonthPlan

// MonthPlanPatch is a shallow partial update. Nil fields are left alone; a
// non-nil Targets replaces the whole sequence.
type MonthPlanPatch struct {
	Month          *string   `json:"month,omitempty"`
	Targets        *[]string `json:"targets,omitempty"`
	HowToAchieve   *[]string `json:"howToAchieve,omitempty"`
	MonthlySummary *string   `json:"monthlySummary,omitempty"`
}

// UserNotes maps month-key → day number (decimal string) → note text.
type UserNotes map[string]map[string]string

// DailyProgress maps month-key → day number → completed.
type DailyProgress map[string]map[string]bool

// UserSummaries maps month-key → monthly reflection.
type UserSummaries map[string]string

// TargetCompletion maps month-key → target index → completed.
type TargetCompletion map[string]map[string]bool

type Settings struct {
	LockMode bool `json:"lockMode"`
	AutoSave bool `json:"autoSave"`
}

// SettingsPatch is a shallow partial update of Settings.
type SettingsPatch struct {
	LockMode *bool `json:"lockMode,omitempty"`
	AutoSave *bool `json:"autoSave,omitempty"`
}

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

func (t Theme) IsValid() bool {
	switch t {
	case ThemeLight, ThemeDark:
		return true
	default:
		return false
	}
}

// DefaultSettings is what Settings reads as when nothing is stored.
func DefaultSettings() Settings {
	return Settings{LockMode: false, AutoSave: true}
}

// Bundle is the export/import and auto-backup document. Nil fields are
// absent from the document and left untouched on import.
type Bundle struct {
	MasterPlan    *MasterPlan    `json:"masterPlan,omitempty"`
	UserNotes     *UserNotes     `json:"userNotes,omitempty"`
	DailyProgress *DailyProgress `json:"dailyProgress,omitempty"`
	UserSummaries *UserSummaries `json:"userSummaries,omitempty"`
	Theme         *Theme         `json:"theme,omitempty"`
	Settings      *Settings      `json:"settings,omitempty"`
	ExportDate    string         `json:"exportDate,omitempty"`
}

// ExportDateLayout is the ISO-8601 form written into Bundle.ExportDate.
const ExportDateLayout = "2006-01-02T15:04:05.000Z"
