package domain

// PrayerOrder is the canonical daily order. The resolver depends on this
// ordering for its wraparound logic.
var PrayerOrder = []string{"Fajr", "Dhuhr", "Asr", "Maghrib", "Isha"}

// PrayerTimes maps the five daily prayers to "HH:MM" clock strings,
// interpreted in the device's local time. The JSON field names match the
// aladhan API timing keys.
type PrayerTimes struct {
	Fajr    string `json:"Fajr"`
	Dhuhr   string `json:"Dhuhr"`
	Asr     string `json:"Asr"`
	Maghrib string `json:"Maghrib"`
	Isha    string `json:"Isha"`
}

// At returns the clock string for a prayer name, or "" for an unknown name.
func (p PrayerTimes) At(name string) string {
	switch name {
	case "Fajr":
		return p.Fajr
	case "Dhuhr":
		return p.Dhuhr
	case "Asr":
		return p.Asr
	case "Maghrib":
		return p.Maghrib
	case "Isha":
		return p.Isha
	}
	return ""
}

// NextPrayer is the derived view of the upcoming prayer. It is recomputed
// every tick and never persisted.
type NextPrayer struct {
	Name      string
	Time      string
	Countdown string
}

// NoNextPrayer is the sentinel view shown while no schedule is loaded.
func NoNextPrayer() NextPrayer {
	return NextPrayer{Name: "--", Time: "--:--", Countdown: "--"}
}
