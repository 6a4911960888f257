package statemachine

import (
	"testing"

	"dining-review-api/models"

	"github.com/stretchr/testify/assert"
)

func TestParseStatus(t *testing.T) {
	cases := []struct {
		raw  string
		want models.ReviewStatus
	}{
		{"accepted", models.StatusAccepted},
		{"Accepted", models.StatusAccepted},
		{"ACCEPTED", models.StatusAccepted},
		{"rejected", models.StatusRejected},
		{"Rejected", models.StatusRejected},
		{"REJECTED", models.StatusRejected},
		{"pending", models.StatusPending},
		{"banana", models.StatusPending},
		{"", models.StatusPending},
		{" accepted", models.StatusPending},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ParseStatus(tc.raw), "raw input %q", tc.raw)
	}
}

func TestGetAllTransitions_CoversEveryStatus(t *testing.T) {
	seen := map[models.ReviewStatus]bool{}
	for _, tr := range GetAllTransitions() {
		seen[tr.To] = true
	}
	assert.True(t, seen[models.StatusPending])
	assert.True(t, seen[models.StatusAccepted])
	assert.True(t, seen[models.StatusRejected])
}
