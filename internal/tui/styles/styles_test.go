package styles

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeverityStyle(t *testing.T) {
	assert.Equal(t, SeverityHighStyle, SeverityStyle("HIGH"))
	assert.Equal(t, SeverityMediumStyle, SeverityStyle("MEDIUM"))
	assert.Equal(t, SeverityLowStyle, SeverityStyle("LOW"))
}

func TestSeverityStyleUnknown(t *testing.T) {
	style := SeverityStyle("CRITICAL")
	assert.False(t, style.GetBold())
}
