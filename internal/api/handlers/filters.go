package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/zenhealth/hospital-analytics/internal/domain/repositories"
	apperrors "github.com/zenhealth/hospital-analytics/pkg/errors"
)

// parseMetricsFilter reads the shared filter query parameters. Every value
// is parsed into a typed field; malformed values are rejected rather than
// silently dropped.
func parseMetricsFilter(r *http.Request) (repositories.MetricsFilter, error) {
	filter := repositories.MetricsFilter{}

	branchID, err := queryInt(r, "branch_id")
	if err != nil {
		return filter, err
	}
	filter.BranchID = branchID

	deptID, err := queryInt(r, "dept_id")
	if err != nil {
		return filter, err
	}
	filter.DeptID = deptID

	startDate, err := queryDate(r, "start_date")
	if err != nil {
		return filter, err
	}
	filter.StartDate = startDate

	endDate, err := queryDate(r, "end_date")
	if err != nil {
		return filter, err
	}
	filter.EndDate = endDate

	month, err := queryMonth(r, "month")
	if err != nil {
		return filter, err
	}
	filter.Month = month

	return filter, nil
}

// queryInt parses an optional integer query parameter
func queryInt(r *http.Request, name string) (*int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return nil, apperrors.NewValidationError(fmt.Sprintf("%s must be an integer", name))
	}
	return &value, nil
}

// queryMonth parses an optional YYYY-MM query parameter
func queryMonth(r *http.Request, name string) (string, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return "", nil
	}
	if _, err := time.Parse("2006-01", raw); err != nil {
		return "", apperrors.NewValidationError(fmt.Sprintf("%s must be a YYYY-MM month", name))
	}
	return raw, nil
}

// queryDate parses an optional YYYY-MM-DD query parameter
func queryDate(r *http.Request, name string) (*time.Time, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	value, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, apperrors.NewValidationError(fmt.Sprintf("%s must be a YYYY-MM-DD date", name))
	}
	return &value, nil
}
