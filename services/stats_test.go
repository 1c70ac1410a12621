package services

import (
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recircuit-server/models"
)

func TestSummarizeRequestStatuses_BucketsAndOrder(t *testing.T) {
	requests := []models.PickupRequest{
		{Status: models.PickupStatusPending},
		{Status: models.PickupStatusCompleted},
		{Status: models.PickupStatusAccepted},
		{Status: models.PickupStatusPending},
		{Status: models.PickupStatusCompleted},
	}

	summary := SummarizeRequestStatuses(requests)

	assert.Equal(t, int64(5), summary.Total)
	assert.Equal(t, int64(2), summary.Pending)
	assert.Equal(t, int64(1), summary.Accepted)
	assert.Equal(t, int64(2), summary.Completed)
	assert.Equal(t, int64(0), summary.Excluded)
	assert.InDelta(t, 0.4, summary.CompletionRate, 1e-9)

	// Chart follows the fixed enumeration order regardless of row order
	require.Len(t, summary.Chart, 3)
	assert.Equal(t, "pending", summary.Chart[0].Label)
	assert.Equal(t, "accepted", summary.Chart[1].Label)
	assert.Equal(t, "completed", summary.Chart[2].Label)
	assert.Equal(t, int64(2), summary.Chart[0].Value)
	assert.Equal(t, int64(1), summary.Chart[1].Value)
	assert.Equal(t, int64(2), summary.Chart[2].Value)
}

func TestSummarizeRequestStatuses_UnknownStatusExcluded(t *testing.T) {
	requests := []models.PickupRequest{
		{Status: models.PickupStatusPending},
		{Status: "cancelled"},
		{Status: ""},
		{Status: models.PickupStatusCompleted},
	}

	summary := SummarizeRequestStatuses(requests)

	assert.Equal(t, int64(4), summary.Total)
	assert.Equal(t, int64(2), summary.Excluded)

	// Unknown rows land in no bucket; bucket sum can fall short of total
	bucketSum := summary.Pending + summary.Accepted + summary.Completed
	assert.Equal(t, summary.Total-summary.Excluded, bucketSum)
	assert.Less(t, bucketSum, summary.Total)
}

func TestSummarizeRequestStatuses_Empty(t *testing.T) {
	summary := SummarizeRequestStatuses(nil)

	assert.Equal(t, int64(0), summary.Total)
	assert.Equal(t, float64(0), summary.CompletionRate)
	require.Len(t, summary.Chart, 3)
	for _, point := range summary.Chart {
		assert.Equal(t, int64(0), point.Value)
	}
}

func TestCompletionRate(t *testing.T) {
	assert.Equal(t, float64(0), CompletionRate(0, 0))
	assert.Equal(t, float64(0), CompletionRate(5, 0))
	assert.InDelta(t, 0.5, CompletionRate(1, 2), 1e-9)
	assert.InDelta(t, 1.0, CompletionRate(3, 3), 1e-9)
}

func TestSummarizeProfileRoles(t *testing.T) {
	users := []models.User{
		{Role: models.RoleUser},
		{Role: models.RoleUser},
		{Role: models.RoleCollector},
		{Role: models.RoleRecycler},
		{Role: models.RoleRegulator},
		{Role: models.RoleAdmin},
		{Role: "superuser"},
	}

	summary := SummarizeProfileRoles(users)

	assert.Equal(t, int64(7), summary.Total)
	assert.Equal(t, int64(2), summary.HouseholdUsers)
	assert.Equal(t, int64(1), summary.Collectors)
	assert.Equal(t, int64(1), summary.Recyclers)
	assert.Equal(t, int64(1), summary.Regulators)
	assert.Equal(t, int64(1), summary.Admins)
	assert.Equal(t, int64(2), summary.ServiceProviders)
	assert.Equal(t, int64(1), summary.Excluded)

	require.Len(t, summary.Chart, len(models.AllRoles))
	assert.Equal(t, "user", summary.Chart[0].Label)
	assert.Equal(t, "admin", summary.Chart[len(summary.Chart)-1].Label)
}

func TestSummarizeDeviceTypes(t *testing.T) {
	requests := []models.PickupRequest{
		{DeviceTypes: pq.StringArray{"Batteries", "Laptops & Computers"}},
		{DeviceTypes: pq.StringArray{"Batteries"}},
		{DeviceTypes: pq.StringArray{"Floppy Disks"}}, // outside the closed set
	}

	chart := SummarizeDeviceTypes(requests)

	require.Len(t, chart, len(models.DeviceTypes))

	byLabel := make(map[string]int64, len(chart))
	for _, point := range chart {
		byLabel[point.Label] = point.Value
	}
	assert.Equal(t, int64(2), byLabel["Batteries"])
	assert.Equal(t, int64(1), byLabel["Laptops & Computers"])
	assert.NotContains(t, byLabel, "Floppy Disks")

	// Chart order mirrors the form's category order
	assert.Equal(t, models.DeviceTypes[0], chart[0].Label)
}

func TestBuildComplianceReport_DivergentRowSets(t *testing.T) {
	// The two fetches are independent; a user row with no requests and
	// requests from a user missing from the profile fetch must both reduce
	// cleanly.
	requests := []models.PickupRequest{
		{UserID: 99, Status: models.PickupStatusCompleted},
		{UserID: 99, Status: models.PickupStatusPending},
	}
	users := []models.User{
		{ID: 1, Role: models.RoleUser},
	}

	report := BuildComplianceReport(requests, users)

	assert.Equal(t, int64(2), report.Requests.Total)
	assert.Equal(t, int64(1), report.Roles.Total)
	assert.InDelta(t, 0.5, report.ComplianceRate, 1e-9)
}
