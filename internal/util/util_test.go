package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"
)

func env(vars map[string]string) func(string) string {
	return func(key string) string { return vars[key] }
}

func TestLocaleTag(t *testing.T) {
	tests := []struct {
		name string
		vars map[string]string
		want language.Tag
	}{
		{"unset", nil, language.English},
		{"posix C", map[string]string{"LANG": "C"}, language.English},
		{"lang with encoding", map[string]string{"LANG": "de_DE.UTF-8"}, language.MustParse("de-DE")},
		{"modifier stripped", map[string]string{"LANG": "fr_FR@euro"}, language.MustParse("fr-FR")},
		{"LC_ALL wins", map[string]string{"LC_ALL": "fr_FR.UTF-8", "LANG": "de_DE.UTF-8"}, language.MustParse("fr-FR")},
		{"garbage", map[string]string{"LANG": "!!"}, language.English},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LocaleTag(env(tt.vars)))
		})
	}
}

func TestNewPrinter_GroupsDigits(t *testing.T) {
	p := NewPrinter(env(nil))
	assert.Equal(t, "1,234,567", p.Sprintf("%d", 1234567))
}

func TestFormatTime(t *testing.T) {
	ts := time.Date(2026, 3, 4, 5, 6, 0, 0, time.Local)
	assert.Equal(t, "2026-03-04 05:06", FormatTime(ts))
}
