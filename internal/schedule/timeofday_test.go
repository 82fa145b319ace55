package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTimeOfDay_Valid(t *testing.T) {
	tod, ok := ParseTimeOfDay("07:30")
	assert.True(t, ok)
	assert.Equal(t, TimeOfDay{Hour: 7, Minute: 30}, tod)

	tod, ok = ParseTimeOfDay("00:00")
	assert.True(t, ok)
	assert.Equal(t, TimeOfDay{Hour: 0, Minute: 0}, tod)

	tod, ok = ParseTimeOfDay("23:59")
	assert.True(t, ok)
	assert.Equal(t, TimeOfDay{Hour: 23, Minute: 59}, tod)
}

func TestParseTimeOfDay_OutOfRange(t *testing.T) {
	_, ok := ParseTimeOfDay("24:00")
	assert.False(t, ok)

	_, ok = ParseTimeOfDay("12:60")
	assert.False(t, ok)
}

func TestParseTimeOfDay_MissingZeroPad(t *testing.T) {
	_, ok := ParseTimeOfDay("7:30")
	assert.False(t, ok)
}

func TestParseTimeOfDay_Garbage(t *testing.T) {
	for _, input := range []string{"", "0730", "ab:cd", "07:30 ", "07-30", "07:3a"} {
		_, ok := ParseTimeOfDay(input)
		assert.False(t, ok, "input %q should be rejected", input)
	}
}

func TestTimeOfDay_String(t *testing.T) {
	assert.Equal(t, "07:05", TimeOfDay{Hour: 7, Minute: 5}.String())
	assert.Equal(t, "23:59", TimeOfDay{Hour: 23, Minute: 59}.String())
}
