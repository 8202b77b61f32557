package notification

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBookingNotice_Compose(t *testing.T) {
	wash := "Basic Wash"
	cases := []struct {
		name     string
		notice   BookingNotice
		wantType Type
		contains []string
	}{
		{
			name:     "voice note",
			notice:   BookingNotice{ClientName: "Amine", HasVoiceNote: true, HasDescription: true},
			wantType: TypeVoice,
			contains: []string{"رسالة صوتية", "Amine"},
		},
		{
			name:     "description only",
			notice:   BookingNotice{ClientName: "Sara", HasDescription: true, ServiceName: &wash},
			wantType: TypeVoice,
			contains: []string{"طلب خاص", "Sara"},
		},
		{
			name:     "plain booking with service",
			notice:   BookingNotice{ClientName: "Yacine", ServiceName: &wash},
			wantType: TypeStandard,
			contains: []string{"حجز جديد", "Yacine", "Basic Wash"},
		},
		{
			name:     "plain booking without service",
			notice:   BookingNotice{ClientName: "Yacine"},
			wantType: TypeStandard,
			contains: []string{"حجز جديد", "Yacine"},
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			msg, typ := c.notice.Compose()
			assert.Equal(t, c.wantType, typ)
			for _, part := range c.contains {
				assert.True(t, strings.Contains(msg, part), "%q should contain %q", msg, part)
			}
		})
	}
}
