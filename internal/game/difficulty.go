package game

type Difficulty struct {
	Name    string
	Meter   string
	Section string // Raw chart section, used to identify the chart
}

// Chart types with one lane per direction.
var ChartTypes = map[string]bool{
	"dance-single": true,
}
