package utils

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTargetDate(t *testing.T) {
	now := time.Date(2026, 8, 28, 15, 42, 7, 0, time.FixedZone("KST", 9*3600))

	got := TargetDate(now, 90)

	assert.Equal(t, time.Date(2026, 11, 26, 0, 0, 0, 0, time.UTC), got)
	assert.Equal(t, time.UTC, got.Location())
}

func TestTargetDateSameDayAgrees(t *testing.T) {
	morning := time.Date(2026, 8, 28, 1, 0, 0, 0, time.UTC)
	evening := time.Date(2026, 8, 28, 23, 59, 59, 0, time.UTC)

	assert.Equal(t, TargetDate(morning, 90), TargetDate(evening, 90))
}

func TestStartOfDay(t *testing.T) {
	kst := time.Date(2026, 8, 28, 3, 15, 0, 0, time.FixedZone("KST", 9*3600))

	got := StartOfDay(kst)

	// 03:15 KST is still the previous UTC day.
	assert.Equal(t, time.Date(2026, 8, 27, 0, 0, 0, 0, time.UTC), got)
}

func TestToPointer(t *testing.T) {
	assert.Equal(t, 150.0, *ToPointer(150.0))
	assert.False(t, *ToPointer(false))
}

func TestGoSafeRecoversPanic(t *testing.T) {
	done := make(chan struct{})
	GoSafe(func() {
		defer close(done)
		panic("boom")
	})

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("panicking function never ran")
	}
}

func TestNewReferralCode(t *testing.T) {
	pattern := regexp.MustCompile(`^[0-9A-F]{8}$`)

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		code := NewReferralCode()
		assert.Regexp(t, pattern, code)
		seen[code] = true
	}
	assert.Greater(t, len(seen), 1, "codes must not repeat in practice")
}

func TestHashToken(t *testing.T) {
	a := HashToken("token-a")
	b := HashToken("token-b")

	assert.Len(t, a, 64)
	assert.NotEqual(t, a, b)
	assert.Equal(t, a, HashToken("token-a"))
	assert.NotContains(t, a, "token-a")
}

func TestNormalizeTicker(t *testing.T) {
	assert.Equal(t, "AAPL", NormalizeTicker("  aapl \n"))
	assert.Equal(t, "", NormalizeTicker("   "))
}

func TestContainsString(t *testing.T) {
	assert.True(t, ContainsString([]string{"google", "kakao"}, "kakao"))
	assert.False(t, ContainsString([]string{"google", "kakao"}, "naver"))
	assert.False(t, ContainsString(nil, "google"))
}
