package format

import (
	"strconv"
	"strings"
	"sync"
	"time"
)

// Time formats t according to spec, a string of datetime tokens mixed
// with literal text. Tokens are matched longest first, so MMMM is the
// full month name rather than MMM followed by M; anything that matches no
// token passes through verbatim.
//
// The table:
//
//	YYYY  zero-padded year          YY     year mod 100, unpadded
//	Q     quarter 1-4
//	MMMM  full month name           MMM    abbreviated month name
//	MM    zero-padded month         M      unpadded month
//	DDDD  zero-padded day of year   DDD    unpadded day of year
//	DD    zero-padded day of month  D      unpadded day of month
//	ddd   full weekday name         dd     abbreviated weekday name
//	d     weekday number, Monday=0
//	HH    zero-padded 12-hour       H      unpadded 12-hour
//	hh    zero-padded 24-hour       h      unpadded 24-hour
//	mm    zero-padded minute        m      unpadded minute
//	ss    zero-padded second        s      unpadded second
//	SSSSSS zero-padded microsecond  SSSSS  microsecond/10, padded
//	SSSS  microsecond/100, padded   SSS    zero-padded millisecond
//	SS    centisecond, padded       S      decisecond
//	A     AM or PM
//	Z     timezone name             z      UTC offset (+0530, -0330, +0000)
//	X     Unix seconds with fractional microseconds
//	x     Unix microseconds
//
// Offsets render as sign, hours and minutes, with seconds appended only
// when the zone's offset is not a whole minute. Month and weekday names
// are English.
//
// A small cache of recent (instant, spec) pairs fronts the formatter;
// repeated stamps of the same instant reuse the rendered string.
func Time(t time.Time, spec string) string {
	nanos := t.UnixNano()
	loc := t.Location()

	timeCacheMu.Lock()
	for i := range timeCache {
		e := &timeCache[i]
		if e.nanos == nanos && e.loc == loc && e.spec == spec && e.out != "" {
			out := e.out
			timeCacheMu.Unlock()
			return out
		}
	}
	timeCacheMu.Unlock()

	out := formatTime(t, spec)

	timeCacheMu.Lock()
	timeCache[timeCacheNext] = timeCacheEntry{nanos: nanos, loc: loc, spec: spec, out: out}
	timeCacheNext = (timeCacheNext + 1) % len(timeCache)
	timeCacheMu.Unlock()
	return out
}

type timeCacheEntry struct {
	nanos int64
	loc   *time.Location
	spec  string
	out   string
}

var (
	timeCacheMu   sync.Mutex
	timeCache     [6]timeCacheEntry
	timeCacheNext int
)

func formatTime(t time.Time, spec string) string {
	var b strings.Builder
	b.Grow(len(spec) + 16)

	for len(spec) > 0 {
		token, n := matchToken(spec)
		if n == 0 {
			b.WriteByte(spec[0])
			spec = spec[1:]
			continue
		}
		appendToken(&b, t, token)
		spec = spec[n:]
	}
	return b.String()
}

// tokenRuns lists, per leading byte, the candidate tokens longest first.
var tokenRuns = map[byte][]string{
	'Y': {"YYYY", "YY"},
	'Q': {"Q"},
	'M': {"MMMM", "MMM", "MM", "M"},
	'D': {"DDDD", "DDD", "DD", "D"},
	'd': {"ddd", "dd", "d"},
	'H': {"HH", "H"},
	'h': {"hh", "h"},
	'm': {"mm", "m"},
	's': {"ss", "s"},
	'S': {"SSSSSS", "SSSSS", "SSSS", "SSS", "SS", "S"},
	'A': {"A"},
	'Z': {"Z"},
	'z': {"z"},
	'X': {"X"},
	'x': {"x"},
}

func matchToken(spec string) (string, int) {
	for _, candidate := range tokenRuns[spec[0]] {
		if strings.HasPrefix(spec, candidate) {
			return candidate, len(candidate)
		}
	}
	return "", 0
}

func appendToken(b *strings.Builder, t time.Time, token string) {
	switch token {
	case "YYYY":
		pad4(b, t.Year())
	case "YY":
		b.WriteString(strconv.Itoa(t.Year() % 100))
	case "Q":
		b.WriteString(strconv.Itoa((int(t.Month()) + 2) / 3))
	case "MMMM":
		b.WriteString(t.Month().String())
	case "MMM":
		b.WriteString(t.Month().String()[:3])
	case "MM":
		pad2(b, int(t.Month()))
	case "M":
		b.WriteString(strconv.Itoa(int(t.Month())))
	case "DDDD":
		pad3(b, t.YearDay())
	case "DDD":
		b.WriteString(strconv.Itoa(t.YearDay()))
	case "DD":
		pad2(b, t.Day())
	case "D":
		b.WriteString(strconv.Itoa(t.Day()))
	case "ddd":
		b.WriteString(t.Weekday().String())
	case "dd":
		b.WriteString(t.Weekday().String()[:3])
	case "d":
		b.WriteString(strconv.Itoa((int(t.Weekday()) + 6) % 7))
	case "HH":
		pad2(b, hour12(t))
	case "H":
		b.WriteString(strconv.Itoa(hour12(t)))
	case "hh":
		pad2(b, t.Hour())
	case "h":
		b.WriteString(strconv.Itoa(t.Hour()))
	case "mm":
		pad2(b, t.Minute())
	case "m":
		b.WriteString(strconv.Itoa(t.Minute()))
	case "ss":
		pad2(b, t.Second())
	case "s":
		b.WriteString(strconv.Itoa(t.Second()))
	case "SSSSSS":
		pad6(b, micros(t))
	case "SSSSS":
		pad5(b, micros(t)/10)
	case "SSSS":
		pad4(b, micros(t)/100)
	case "SSS":
		pad3(b, micros(t)/1000)
	case "SS":
		pad2(b, micros(t)/10000)
	case "S":
		b.WriteString(strconv.Itoa(micros(t) / 100000))
	case "A":
		if t.Hour() < 12 {
			b.WriteString("AM")
		} else {
			b.WriteString("PM")
		}
	case "Z":
		name, _ := t.Zone()
		if name == "" {
			b.WriteString(offsetString(t))
		} else {
			b.WriteString(name)
		}
	case "z":
		b.WriteString(offsetString(t))
	case "X":
		b.WriteString(strconv.FormatFloat(float64(t.UnixMicro())/1e6, 'f', -1, 64))
	case "x":
		b.WriteString(strconv.FormatInt(t.UnixMicro(), 10))
	}
}

func hour12(t time.Time) int {
	return (t.Hour()+11)%12 + 1
}

func micros(t time.Time) int {
	return t.Nanosecond() / 1000
}

func offsetString(t time.Time) string {
	_, offset := t.Zone()
	sign := "+"
	if offset < 0 {
		sign = "-"
		offset = -offset
	}
	h := offset / 3600
	m := offset % 3600 / 60
	s := offset % 60
	out := sign + pad2String(h) + pad2String(m)
	if s != 0 {
		out += pad2String(s)
	}
	return out
}

func pad2String(v int) string {
	if v < 10 {
		return "0" + strconv.Itoa(v)
	}
	return strconv.Itoa(v)
}

func pad2(b *strings.Builder, v int) {
	if v < 10 {
		b.WriteByte('0')
	}
	b.WriteString(strconv.Itoa(v))
}

func pad3(b *strings.Builder, v int) {
	switch {
	case v < 10:
		b.WriteString("00")
	case v < 100:
		b.WriteByte('0')
	}
	b.WriteString(strconv.Itoa(v))
}

func pad4(b *strings.Builder, v int) {
	switch {
	case v < 10:
		b.WriteString("000")
	case v < 100:
		b.WriteString("00")
	case v < 1000:
		b.WriteByte('0')
	}
	b.WriteString(strconv.Itoa(v))
}

func pad5(b *strings.Builder, v int) {
	switch {
	case v < 10:
		b.WriteString("0000")
	case v < 100:
		b.WriteString("000")
	case v < 1000:
		b.WriteString("00")
	case v < 10000:
		b.WriteByte('0')
	}
	b.WriteString(strconv.Itoa(v))
}

func pad6(b *strings.Builder, v int) {
	switch {
	case v < 10:
		b.WriteString("00000")
	case v < 100:
		b.WriteString("0000")
	case v < 1000:
		b.WriteString("000")
	case v < 10000:
		b.WriteString("00")
	case v < 100000:
		b.WriteByte('0')
	}
	b.WriteString(strconv.Itoa(v))
}
