package services

import (
	"recircuit-server/models"
)

// ChartPoint is one ordered (label, value) pair handed to a chart
type ChartPoint struct {
	Label string `json:"label"`
	Value int64  `json:"value"`
}

// RequestStatusSummary is the single-pass reduction of a pickup request row
// set into status buckets. Rows whose status is outside the closed set land
// in no bucket and are reported via Excluded.
type RequestStatusSummary struct {
	Total          int64        `json:"total"`
	Pending        int64        `json:"pending"`
	Accepted       int64        `json:"accepted"`
	Completed      int64        `json:"completed"`
	Excluded       int64        `json:"excluded"`
	CompletionRate float64      `json:"completion_rate"`
	Chart          []ChartPoint `json:"chart"`
}

// SummarizeRequestStatuses reduces pickup requests into status buckets.
// Every row increments exactly one bucket or none; chart ordering follows
// the fixed status enumeration, not row order.
func SummarizeRequestStatuses(requests []models.PickupRequest) RequestStatusSummary {
	buckets := make(map[models.PickupStatus]int64, len(models.AllPickupStatuses))
	var excluded int64

	for _, request := range requests {
		switch request.Status {
		case models.PickupStatusPending, models.PickupStatusAccepted, models.PickupStatusCompleted:
			buckets[request.Status]++
		default:
			excluded++
		}
	}

	summary := RequestStatusSummary{
		Total:     int64(len(requests)),
		Pending:   buckets[models.PickupStatusPending],
		Accepted:  buckets[models.PickupStatusAccepted],
		Completed: buckets[models.PickupStatusCompleted],
		Excluded:  excluded,
	}
	summary.CompletionRate = CompletionRate(summary.Completed, summary.Total)

	for _, status := range models.AllPickupStatuses {
		summary.Chart = append(summary.Chart, ChartPoint{
			Label: string(status),
			Value: buckets[status],
		})
	}

	return summary
}

// RoleSummary is the single-pass reduction of a profile row set into role
// buckets. ServiceProviders counts collectors plus recyclers.
type RoleSummary struct {
	Total            int64        `json:"total"`
	HouseholdUsers   int64        `json:"household_users"`
	Collectors       int64        `json:"collectors"`
	Recyclers        int64        `json:"recyclers"`
	Regulators       int64        `json:"regulators"`
	Admins           int64        `json:"admins"`
	ServiceProviders int64        `json:"service_providers"`
	Excluded         int64        `json:"excluded"`
	Chart            []ChartPoint `json:"chart"`
}

// SummarizeProfileRoles reduces user profiles into role buckets
func SummarizeProfileRoles(users []models.User) RoleSummary {
	buckets := make(map[models.UserRole]int64, len(models.AllRoles))
	var excluded, serviceProviders int64

	for _, user := range users {
		if user.IsValidRole() {
			buckets[user.Role]++
		} else {
			excluded++
		}
		if user.IsServiceProvider() {
			serviceProviders++
		}
	}

	summary := RoleSummary{
		Total:            int64(len(users)),
		HouseholdUsers:   buckets[models.RoleUser],
		Collectors:       buckets[models.RoleCollector],
		Recyclers:        buckets[models.RoleRecycler],
		Regulators:       buckets[models.RoleRegulator],
		Admins:           buckets[models.RoleAdmin],
		ServiceProviders: serviceProviders,
		Excluded:         excluded,
	}

	for _, role := range models.AllRoles {
		summary.Chart = append(summary.Chart, ChartPoint{
			Label: string(role),
			Value: buckets[role],
		})
	}

	return summary
}

// SummarizeDeviceTypes reduces pickup requests into device-type buckets.
// A request carrying several device tags increments one bucket per tag;
// tags outside the closed device-type set are excluded.
func SummarizeDeviceTypes(requests []models.PickupRequest) []ChartPoint {
	buckets := make(map[string]int64, len(models.DeviceTypes))

	for _, request := range requests {
		for _, deviceType := range request.DeviceTypes {
			if models.IsValidDeviceType(deviceType) {
				buckets[deviceType]++
			}
		}
	}

	chart := make([]ChartPoint, 0, len(models.DeviceTypes))
	for _, deviceType := range models.DeviceTypes {
		chart = append(chart, ChartPoint{Label: deviceType, Value: buckets[deviceType]})
	}

	return chart
}

// CompletionRate returns completed/total as a fraction, and exactly 0 when
// total is 0.
func CompletionRate(completed, total int64) float64 {
	if total == 0 {
		return 0
	}
	return float64(completed) / float64(total)
}

// ComplianceReport combines request and role summaries for the regulator
// dashboard. The two row sets come from independent fetches, so they may
// reflect different points in time (read skew is accepted, not corrected).
type ComplianceReport struct {
	Requests       RequestStatusSummary `json:"requests"`
	Roles          RoleSummary          `json:"roles"`
	ComplianceRate float64              `json:"compliance_rate"`
}

// BuildComplianceReport reduces both row sets into the regulator's report
func BuildComplianceReport(requests []models.PickupRequest, users []models.User) ComplianceReport {
	requestSummary := SummarizeRequestStatuses(requests)
	return ComplianceReport{
		Requests:       requestSummary,
		Roles:          SummarizeProfileRoles(users),
		ComplianceRate: requestSummary.CompletionRate,
	}
}
