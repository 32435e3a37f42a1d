package facet

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatDateSuffix(t *testing.T) {
	s, err := FormatDateSuffix(date(2022, time.June, 25))
	require.NoError(t, err)
	assert.Equal(t, "~20220625", s)

	s, err = FormatDateSuffix(date(7, time.January, 2))
	require.NoError(t, err)
	assert.Equal(t, "~00070102", s)
}

func TestFormatDateSuffix_OutOfRange(t *testing.T) {
	for _, y := range []int{-1, 10000} {
		_, err := FormatDateSuffix(date(y, time.January, 1))
		assert.ErrorIs(t, err, ErrDateOutOfRange, "year %d", y)
	}
}

func TestFromPrefixWithDateSuffix_RoundTrip(t *testing.T) {
	want := date(2022, time.June, 25)
	f, err := FromPrefixWithDateSuffix("tag", want)
	require.NoError(t, err)
	assert.Equal(t, "tag~20220625", f.String())
	assert.True(t, f.IsValid())
	assert.True(t, f.HasDateLikeSuffix())

	prefix, d, ok := f.SplitDateSuffix()
	require.True(t, ok)
	assert.Equal(t, "tag", prefix)
	require.NotNil(t, d)
	assert.True(t, want.Equal(*d))
}

func TestFromPrefixWithDateSuffix_TrailingWhitespace(t *testing.T) {
	f, err := FromPrefixWithDateSuffix("tag ", date(2022, time.June, 25))
	require.NoError(t, err)
	assert.False(t, f.HasDateLikeSuffix())
	assert.True(t, f.HasInvalidDateLikeSuffix())
}

func TestFromPrefixWithDateSuffix_OutOfRange(t *testing.T) {
	f, err := FromPrefixWithDateSuffix("tag", date(12345, time.January, 1))
	assert.ErrorIs(t, err, ErrDateOutOfRange)
	assert.True(t, f.IsEmpty())
}

func TestFromPrefixArgsWithDateSuffix(t *testing.T) {
	f, err := FromPrefixArgsWithDateSuffix(date(2022, time.June, 25), "%s-%d", "tag", 7)
	require.NoError(t, err)
	assert.Equal(t, "tag-7~20220625", f.String())

	f, err = FromPrefixArgsWithDateSuffix(date(2022, time.June, 25), "")
	require.NoError(t, err)
	assert.Equal(t, "~20220625", f.String())
}
