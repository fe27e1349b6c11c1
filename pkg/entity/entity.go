package entity

type WeightUnit string

const (
	WeightUnitKg  WeightUnit = "kg"
	WeightUnitLbs WeightUnit = "lbs"
)

// RestTime is the default rest between sets, in seconds
type RestTime int

const (
	RestTimeShort  RestTime = 30
	RestTimeMedium RestTime = 60
	RestTimeLong   RestTime = 90
)

// Next returns the following value of the 30 -> 60 -> 90 -> 30 cycle.
// Values outside the cycle restart it.
func (rt RestTime) Next() RestTime {
	switch rt {
	case RestTimeShort:
		return RestTimeMedium
	case RestTimeMedium:
		return RestTimeLong
	default:
		return RestTimeShort
	}
}

// Settings is the user's preferences record. JSON names are the ones
// already present in stored blobs and must not change.
type Settings struct {
	Notifications  bool       `json:"notifications"`
	DarkMode       bool       `json:"darkMode"`
	WeightUnit     WeightUnit `json:"weightUnit"`
	RestTime       RestTime   `json:"restTime"`
	CalorieTracker string     `json:"calorieTracker"`
}

func DefaultSettings() Settings {
	return Settings{
		Notifications:  false,
		DarkMode:       false,
		WeightUnit:     WeightUnitKg,
		RestTime:       RestTimeShort,
		CalorieTracker: "0",
	}
}

type WorkoutEntry struct {
	ID       int64  `json:"id"`
	Exercise string `json:"exercise"`
	Duration string `json:"duration"`
	Calories int    `json:"calories"`
}

type Totals struct {
	Sessions int     `json:"sessions"`
	Minutes  float64 `json:"minutes"`
	Calories int     `json:"calories"`
}

type Progress struct {
	Totals   Totals         `json:"totals"`
	Workouts []WorkoutEntry `json:"workouts"`
}

// Palette is a set of UI colours, picked by Settings.DarkMode
type Palette struct {
	Primary    string `json:"primary"`
	Secondary  string `json:"secondary"`
	Success    string `json:"success"`
	Background string `json:"background"`
	Card       string `json:"card"`
	Text       string `json:"text"`
	Border     string `json:"border"`
	Subtitle   string `json:"subtitle"`
}
