package database

import (
	"context"
	"database/sql"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"

	"github.com/zenhealth/hospital-analytics/internal/domain/entities"
	"github.com/zenhealth/hospital-analytics/internal/domain/repositories"
	"github.com/zenhealth/hospital-analytics/internal/infrastructure/clients/postgres"
	apperrors "github.com/zenhealth/hospital-analytics/pkg/errors"
)

// CatalogAdapter implements CatalogRepository over PostgreSQL
type CatalogAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

var _ repositories.CatalogRepository = (*CatalogAdapter)(nil)

// NewCatalogAdapter creates a new catalog adapter
func NewCatalogAdapter(client *postgres.Client) *CatalogAdapter {
	return &CatalogAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// FilterOptions gathers every value the dashboard filter dropdowns offer
func (c *CatalogAdapter) FilterOptions(ctx context.Context) (*entities.FilterOptions, error) {
	options := &entities.FilterOptions{
		Branches:       []entities.BranchOption{},
		Departments:    []entities.DepartmentOption{},
		Diagnoses:      []string{},
		InsuranceTypes: []string{},
	}

	query, args, err := c.db.From("branches").
		Select(goqu.C("branch_id"), goqu.C("branch_name"), goqu.C("location")).
		Order(goqu.C("branch_name").Asc()).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build branches query", err)
	}
	rows, err := c.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewUnavailableError("branches query failed", err)
	}
	defer rows.Close()
	for rows.Next() {
		var b entities.BranchOption
		if err := rows.Scan(&b.BranchID, &b.BranchName, &b.Location); err != nil {
			return nil, apperrors.NewInternalError("failed to scan branch option", err)
		}
		options.Branches = append(options.Branches, b)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating branch options", err)
	}

	query, args, err = c.db.From("departments").
		Select(goqu.C("dept_id"), goqu.C("dept_name"), goqu.C("dept_type"), goqu.C("branch_id")).
		Order(goqu.C("dept_name").Asc()).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build departments query", err)
	}
	deptRows, err := c.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewUnavailableError("departments query failed", err)
	}
	defer deptRows.Close()
	for deptRows.Next() {
		var d entities.DepartmentOption
		if err := deptRows.Scan(&d.DeptID, &d.DeptName, &d.DeptType, &d.BranchID); err != nil {
			return nil, apperrors.NewInternalError("failed to scan department option", err)
		}
		options.Departments = append(options.Departments, d)
	}
	if err := deptRows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating department options", err)
	}

	diagnoses, err := c.distinctStrings(ctx, "admissions", "diagnosis_category", true)
	if err != nil {
		return nil, err
	}
	options.Diagnoses = diagnoses

	insuranceTypes, err := c.distinctStrings(ctx, "patients", "insurance_type", false)
	if err != nil {
		return nil, err
	}
	options.InsuranceTypes = insuranceTypes

	return options, nil
}

// distinctStrings returns the sorted distinct non-null values of one column
func (c *CatalogAdapter) distinctStrings(ctx context.Context, table, column string, skipNull bool) ([]string, error) {
	q := c.db.From(table).
		SelectDistinct(goqu.C(column)).
		Order(goqu.C(column).Asc())
	if skipNull {
		q = q.Where(goqu.C(column).IsNotNull())
	}
	query, args, err := q.Prepared(true).ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build distinct values query", err)
	}

	rows, err := c.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewUnavailableError("distinct values query failed", err)
	}
	defer rows.Close()

	values := []string{}
	for rows.Next() {
		var v sql.NullString
		if err := rows.Scan(&v); err != nil {
			return nil, apperrors.NewInternalError("failed to scan distinct value", err)
		}
		if v.Valid {
			values = append(values, v.String)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating distinct values", err)
	}
	return values, nil
}
