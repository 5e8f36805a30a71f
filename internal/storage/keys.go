package storage

// Namespace prefixes every key the planner owns in the medium.
const Namespace = "planner_"

const (
	KeyMasterPlan       = Namespace + "master_plan"
	KeyUserNotes        = Namespace + "user_notes"
	KeyDailyProgress    = Namespace + "daily_progress"
	KeyUserSummaries    = Namespace + "user_summaries"
	KeySettings         = Namespace + "settings"
	KeyTheme            = Namespace + "theme"
	KeyTargetCompletion = Namespace + "target_completion"

	// AutoBackupPrefix is followed by the snapshot's epoch milliseconds.
	AutoBackupPrefix = Namespace + "auto_backup_"
)
