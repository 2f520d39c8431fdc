package config

// Defaults shared by the configuration loader and the components that fall
// back to them when a field is left empty.
const (
	DefaultRosterPath  = "main.csv"
	DefaultIDColumn    = "Roll_Number"
	DefaultNameColumn  = "Name"
	DefaultDelimiter   = ","
	DefaultChartPath   = "marks_chart.xlsx"
	DefaultChartSheet  = "Marks"
	DefaultChartTitle  = "Marks Distribution of Students in Different Exams"
	DefaultLogFilePath = "logs/gradebook.log"

	// MaxSheetNameLength is Excel's limit on worksheet names.
	MaxSheetNameLength = 31
)
