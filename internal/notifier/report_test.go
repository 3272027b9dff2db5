package notifier_test

import (
	"testing"

	"github.com/MichalMitros/catalog-stock-monitor/internal/notifier"
	"github.com/stretchr/testify/assert"
)

func TestUnitAnnouncement(t *testing.T) {
	assert.Equal(t,
		"🔍 <b>Product Monitor Started</b>\n\nTracking 42 products from SHEINVERSE",
		notifier.Announcement(42, "SHEINVERSE"),
		"should render bootstrap announcement",
	)
}
