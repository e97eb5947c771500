package calendar

import "strings"

var arabicDigits = strings.NewReplacer("0", "٠", "1", "١", "2", "٢", "3", "٣", "4", "٤", "5", "٥", "6", "٦", "7", "٧", "8", "٨", "9", "٩")

// ToArabicDigits replaces every ASCII digit of s with its Arabic-Indic form.
func ToArabicDigits(s string) string {
	return arabicDigits.Replace(s)
}
