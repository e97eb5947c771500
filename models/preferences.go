package models

// Preference bucket keys.
const (
	SettingsBucket       = "ana-muslim-settings"
	FavoritePhotosBucket = "ana-muslim-favorite-photos"
)

// Settings is the blob stored under [SettingsBucket].
type Settings struct {
	Prayers  PrayerSettings   `json:"prayers"`
	DateTime DateTimeSettings `json:"dateTime"`
}

type PrayerSettings struct {
	Alarms PrayerAlarms `json:"alarms"`
}

type PrayerAlarms struct {
	Enable bool     `json:"enable"`
	List   []string `json:"list"`
}

// DateTimeSettings configures the clock and date widget.
type DateTimeSettings struct {
	// Calendar is "hijri" (Umm al-Qura) or "gregorian".
	Calendar string `json:"calendar"`
	// Lang is "ar" or "en".
	Lang string `json:"lang"`
	// TimeMode is "12" or "24".
	TimeMode string `json:"timeMode"`
}

// Is24Hour reports whether the clock shows 24-hour time.
func (s DateTimeSettings) Is24Hour() bool {
	return s.TimeMode == "24"
}

// DefaultSettings returns the declared shape of a fresh settings bucket.
func DefaultSettings() Settings {
	return Settings{
		Prayers:  PrayerSettings{Alarms: PrayerAlarms{List: []string{}}},
		DateTime: DateTimeSettings{Calendar: "hijri", Lang: "en", TimeMode: "12"},
	}
}

// FavoritePhotos is the blob stored under [FavoritePhotosBucket]: the ids of
// the photos the user liked, in the order they were added.
type FavoritePhotos struct {
	Photos []string `json:"photos"`
}

func DefaultFavoritePhotos() FavoritePhotos {
	return FavoritePhotos{Photos: []string{}}
}
