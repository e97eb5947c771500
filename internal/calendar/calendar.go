// Package calendar breaks a day into the parts shown by the date widget, in
// the Umm al-Qura Hijri or the Gregorian calendar, in Arabic or English.
package calendar

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	hijri "github.com/hablullah/go-hijri"
)

type Calendar string

const (
	Hijri     Calendar = "hijri"
	Gregorian Calendar = "gregorian"
)

type Lang string

const (
	Arabic  Lang = "ar"
	English Lang = "en"
)

// DateParts is one calendar day, with names already localized.
type DateParts struct {
	Calendar Calendar
	Lang     Lang
	Day      int
	Month    string
	Year     int
	Weekday  string
	Era      string
}

// Parts returns the parts of t's local calendar day. Hijri dates outside
// the Umm al-Qura tables (1937 to 2077) return an error.
func Parts(t time.Time, cal Calendar, lang Lang) (DateParts, error) {
	if lang != Arabic {
		lang = English
	}
	parts := DateParts{
		Calendar: cal,
		Lang:     lang,
		Weekday:  weekdayNames[lang][t.Weekday()],
	}

	switch cal {
	case Hijri:
		// the conversion works on the UTC day, so pin the local day at noon UTC
		day := time.Date(t.Year(), t.Month(), t.Day(), 12, 0, 0, 0, time.UTC)
		uq, err := hijri.CreateUmmAlQuraDate(day)
		if err != nil {
			return DateParts{}, fmt.Errorf("hijri date of %s: %w", day.Format(time.DateOnly), err)
		}
		parts.Day = int(uq.Day)
		parts.Year = int(uq.Year)
		parts.Month = hijriMonthNames[lang][uq.Month-1]
	case Gregorian:
		parts.Day = t.Day()
		parts.Year = t.Year()
		parts.Month = gregorianMonthNames[lang][t.Month()-1]
	default:
		return DateParts{}, fmt.Errorf("unknown calendar %q", cal)
	}
	parts.Era = eras[cal][lang]

	return parts, nil
}

// String renders "Saturday 6 Jumada I 1448 AH". Arabic dates use
// Arabic-Indic digits.
func (p DateParts) String() string {
	return p.Weekday + " " + p.DayMonthYear()
}

// DayMonthYear is String without the weekday.
func (p DateParts) DayMonthYear() string {
	s := strings.Join([]string{strconv.Itoa(p.Day), p.Month, strconv.Itoa(p.Year), p.Era}, " ")
	if p.Lang == Arabic {
		return ToArabicDigits(s)
	}
	return s
}

var weekdayNames = map[Lang][7]string{
	English: {"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"},
	Arabic:  {"الأحد", "الاثنين", "الثلاثاء", "الأربعاء", "الخميس", "الجمعة", "السبت"},
}

var hijriMonthNames = map[Lang][12]string{
	English: {"Muharram", "Safar", "Rabiʻ I", "Rabiʻ II", "Jumada I", "Jumada II", "Rajab", "Shaʻban", "Ramadan", "Shawwal", "Dhuʻl-Qiʻdah", "Dhuʻl-Hijjah"},
	Arabic:  {"محرم", "صفر", "ربيع الأول", "ربيع الآخر", "جمادى الأولى", "جمادى الآخرة", "رجب", "شعبان", "رمضان", "شوال", "ذو القعدة", "ذو الحجة"},
}

var gregorianMonthNames = map[Lang][12]string{
	English: {"January", "February", "March", "April", "May", "June", "July", "August", "September", "October", "November", "December"},
	Arabic:  {"يناير", "فبراير", "مارس", "أبريل", "مايو", "يونيو", "يوليو", "أغسطس", "سبتمبر", "أكتوبر", "نوفمبر", "ديسمبر"},
}

var eras = map[Calendar]map[Lang]string{
	Hijri:     {English: "AH", Arabic: "هـ"},
	Gregorian: {English: "AD", Arabic: "م"},
}
