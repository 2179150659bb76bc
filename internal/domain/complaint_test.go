package domain_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randomtoy/moonblock-go/internal/domain"
)

func TestNormalizeComplaint(t *testing.T) {
	got, err := domain.NormalizeComplaint("  老板画饼  ")
	require.NoError(t, err)
	assert.Equal(t, "老板画饼", got)

	_, err = domain.NormalizeComplaint("   ")
	assert.ErrorIs(t, err, domain.ErrEmptyComplaint)

	_, err = domain.NormalizeComplaint(strings.Repeat("饼", domain.MaxComplaintRunes))
	assert.NoError(t, err, "limit counts runes, not bytes")

	_, err = domain.NormalizeComplaint(strings.Repeat("饼", domain.MaxComplaintRunes+1))
	assert.ErrorIs(t, err, domain.ErrComplaintTooLong)
}

func TestComplaintOrDefault(t *testing.T) {
	got, err := domain.ComplaintOrDefault("  ")
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultComplaint, got)

	got, err = domain.ComplaintOrDefault(" 周报 ")
	require.NoError(t, err)
	assert.Equal(t, "周报", got)

	_, err = domain.ComplaintOrDefault(strings.Repeat("饼", domain.MaxComplaintRunes+1))
	assert.ErrorIs(t, err, domain.ErrComplaintTooLong)
}

func TestComplaint_Destroyed(t *testing.T) {
	assert.False(t, domain.Complaint{Status: domain.StatusPending}.Destroyed())
	assert.True(t, domain.Complaint{Status: domain.StatusShredded}.Destroyed())
	assert.True(t, domain.Complaint{Status: domain.StatusBurnt}.Destroyed())
}

func TestUntilClockOut(t *testing.T) {
	loc := time.FixedZone("CST", 8*3600)

	before := domain.UntilClockOut(time.Date(2026, 10, 17, 15, 58, 30, 0, loc), 18)
	assert.False(t, before.OffWork)
	assert.Equal(t, 2*time.Hour+time.Minute+30*time.Second, before.Remaining)
	assert.Equal(t, "2时1分30秒", before.Label())

	after := domain.UntilClockOut(time.Date(2026, 10, 17, 18, 0, 1, 0, loc), 18)
	assert.True(t, after.OffWork)
	assert.Equal(t, "已下班！快跑！", after.Label())
}
