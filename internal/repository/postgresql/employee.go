package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/paycore-hr/payroll-backend-go/internal/domain/employee"
	"github.com/paycore-hr/payroll-backend-go/internal/pkg/database"
	"github.com/paycore-hr/payroll-backend-go/internal/pkg/timeclock"
	"github.com/shopspring/decimal"
)

type employeeRepository struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepository{db: db}
}

const employeeColumns = `
	id, employee_code, full_name, joining_date,
	shift_start, shift_end, salary_type, hourly_rate, monthly_amount,
	employment_status, created_at, updated_at
`

// employeeRow carries the raw column values before shift times are parsed
// into minutes.
type employeeRow struct {
	id               string
	employeeCode     string
	fullName         string
	joiningDate      time.Time
	shiftStart       string
	shiftEnd         string
	salaryType       string
	hourlyRate       decimal.Decimal
	monthlyAmount    decimal.Decimal
	employmentStatus string
	createdAt        time.Time
	updatedAt        time.Time
}

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var r employeeRow
	if err := row.Scan(
		&r.id, &r.employeeCode, &r.fullName, &r.joiningDate,
		&r.shiftStart, &r.shiftEnd, &r.salaryType, &r.hourlyRate, &r.monthlyAmount,
		&r.employmentStatus, &r.createdAt, &r.updatedAt,
	); err != nil {
		return employee.Employee{}, err
	}

	shiftStart, err := timeclock.Parse(r.shiftStart)
	if err != nil {
		return employee.Employee{}, fmt.Errorf("employee %s: bad shift_start %q: %w", r.id, r.shiftStart, err)
	}
	shiftEnd, err := timeclock.Parse(r.shiftEnd)
	if err != nil {
		return employee.Employee{}, fmt.Errorf("employee %s: bad shift_end %q: %w", r.id, r.shiftEnd, err)
	}

	return employee.Employee{
		ID:           r.id,
		EmployeeCode: r.employeeCode,
		FullName:     r.fullName,
		JoiningDate:  r.joiningDate,
		Shift: employee.ShiftConfig{
			Start: shiftStart,
			End:   shiftEnd,
		},
		Salary: employee.SalaryConfig{
			Type:          employee.SalaryType(r.salaryType),
			HourlyRate:    r.hourlyRate,
			MonthlyAmount: r.monthlyAmount,
		},
		EmploymentStatus: employee.EmploymentStatus(r.employmentStatus),
		CreatedAt:        r.createdAt,
		UpdatedAt:        r.updatedAt,
	}, nil
}

func (r *employeeRepository) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = $1`

	emp, err := scanEmployee(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}

	return emp, nil
}

func (r *employeeRepository) GetByCode(ctx context.Context, code string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE employee_code = $1`

	emp, err := scanEmployee(q.QueryRow(ctx, query, code))
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee by code: %w", err)
	}

	return emp, nil
}

func (r *employeeRepository) ListActive(ctx context.Context) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + `
		FROM employees
		WHERE employment_status = 'active'
		ORDER BY employee_code`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list active employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, emp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate employees: %w", err)
	}

	return employees, nil
}
