package harvest

import (
	"fmt"
	"strings"
	"time"
)

const (
	fileNamePrefix  = "harvest_"
	fileNameExt     = ".pdf"
	anonymousName   = "sin_nombre"
	timestampLayout = "2006-01-02_15-04-05"
)

// FileName builds the report file name for fullName saved at t, e.g.
// harvest_Juan_Perez_2025-08-13_12-34-56.pdf
func FileName(fullName string, t time.Time) string {
	return fmt.Sprintf("%s%s_%s%s", fileNamePrefix, SanitizeName(fullName), Timestamp(t), fileNameExt)
}

// SanitizeName replaces every rune that is not an ASCII letter or digit
// with an underscore.
func SanitizeName(fullName string) string {
	if fullName == "" {
		return anonymousName
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		}
		return '_'
	}, fullName)
}

// Timestamp formats t with second resolution for use in file names
func Timestamp(t time.Time) string {
	return t.Format(timestampLayout)
}
