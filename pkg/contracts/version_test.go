package contracts

import (
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetVersionInfo(t *testing.T) {
	info := GetVersionInfo()
	assert.Equal(t, Version, info.Version)
	assert.Equal(t, runtime.Version(), info.GoVersion)
	assert.Equal(t, SummaryFormatVersion, info.SummaryFormat)

	s := GetFullVersionString()
	assert.True(t, strings.HasPrefix(s, "gcpeaks v"+Version))
	assert.Contains(t, s, runtime.GOOS+"/"+runtime.GOARCH)
}
