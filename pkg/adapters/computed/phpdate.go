package computed

import (
	"strconv"
	"strings"
	"time"
)

// FormatDate formats t using PHP date() format characters.
//
// Supported: d D j l N w z W F m M n t L Y y a A g G h H i s v e T P O U.
// A backslash escapes the next character. Any other character is copied.
func FormatDate(t time.Time, format string) string {
	var b strings.Builder
	b.Grow(len(format) * 2)

	runes := []rune(format)
	for i := 0; i < len(runes); i++ {
		c := runes[i]
		if c == '\\' {
			if i+1 < len(runes) {
				i++
				b.WriteRune(runes[i])
			}
			continue
		}
		b.WriteString(dateToken(t, c))
	}
	return b.String()
}

func dateToken(t time.Time, c rune) string {
	switch c {
	// day
	case 'd':
		return pad2(t.Day())
	case 'D':
		return t.Format("Mon")
	case 'j':
		return strconv.Itoa(t.Day())
	case 'l':
		return t.Weekday().String()
	case 'N':
		wd := int(t.Weekday())
		if wd == 0 {
			wd = 7
		}
		return strconv.Itoa(wd)
	case 'w':
		return strconv.Itoa(int(t.Weekday()))
	case 'z':
		return strconv.Itoa(t.YearDay() - 1)

	// week
	case 'W':
		_, week := t.ISOWeek()
		return pad2(week)

	// month
	case 'F':
		return t.Month().String()
	case 'm':
		return pad2(int(t.Month()))
	case 'M':
		return t.Format("Jan")
	case 'n':
		return strconv.Itoa(int(t.Month()))
	case 't':
		return strconv.Itoa(daysIn(t))

	// year
	case 'L':
		if daysInYear(t.Year()) == 366 {
			return "1"
		}
		return "0"
	case 'Y':
		return strconv.Itoa(t.Year())
	case 'y':
		return t.Format("06")

	// time
	case 'a':
		return t.Format("pm")
	case 'A':
		return t.Format("PM")
	case 'g':
		return t.Format("3")
	case 'G':
		return strconv.Itoa(t.Hour())
	case 'h':
		return t.Format("03")
	case 'H':
		return pad2(t.Hour())
	case 'i':
		return pad2(t.Minute())
	case 's':
		return pad2(t.Second())
	case 'v':
		return t.Format(".000")[1:]

	// timezone
	case 'e':
		return t.Location().String()
	case 'T':
		return t.Format("MST")
	case 'P':
		return t.Format("-07:00")
	case 'O':
		return t.Format("-0700")

	case 'U':
		return strconv.FormatInt(t.Unix(), 10)
	}
	return string(c)
}

func pad2(n int) string {
	if n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}

func daysIn(t time.Time) int {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, t.Location()).Day()
}

func daysInYear(year int) int {
	return time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC).YearDay()
}
