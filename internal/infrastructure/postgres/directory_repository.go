package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Activos-api/internal/domain/entity"
	"github.com/jhoicas/Activos-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)
var _ repository.DepartmentRepository = (*DepartmentRepo)(nil)
var _ repository.CategoryRepository = (*CategoryRepo)(nil)
var _ repository.ComputerRepository = (*ComputerRepo)(nil)

// Adaptadores de directorio: lecturas simples por id y listados paginados.

// UserRepo lookup de usuarios sobre PostgreSQL.
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de usuarios.
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

// GetByID obtiene un usuario por ID.
func (r *UserRepo) GetByID(id string) (*entity.User, error) {
	var u entity.User
	err := r.q.QueryRow(context.Background(),
		`SELECT id, name, email, department_id, created_at FROM users WHERE id = $1`, id,
	).Scan(&u.ID, &u.Name, &u.Email, &u.DepartmentID, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}

// List lista usuarios con paginación.
func (r *UserRepo) List(limit, offset int) ([]*entity.User, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, name, email, department_id, created_at FROM users ORDER BY name LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()
	var list []*entity.User
	for rows.Next() {
		var u entity.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.DepartmentID, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		list = append(list, &u)
	}
	return list, rows.Err()
}

// DepartmentRepo lookup de departamentos sobre PostgreSQL.
type DepartmentRepo struct {
	q Querier
}

// NewDepartmentRepository construye el adaptador de departamentos.
func NewDepartmentRepository(q Querier) *DepartmentRepo {
	return &DepartmentRepo{q: q}
}

// GetByID obtiene un departamento por ID.
func (r *DepartmentRepo) GetByID(id string) (*entity.Department, error) {
	var d entity.Department
	err := r.q.QueryRow(context.Background(),
		`SELECT id, name, description, created_at FROM departments WHERE id = $1`, id,
	).Scan(&d.ID, &d.Name, &d.Description, &d.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get department: %w", err)
	}
	return &d, nil
}

// List lista departamentos con paginación.
func (r *DepartmentRepo) List(limit, offset int) ([]*entity.Department, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, name, description, created_at FROM departments ORDER BY name LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("list departments: %w", err)
	}
	defer rows.Close()
	var list []*entity.Department
	for rows.Next() {
		var d entity.Department
		if err := rows.Scan(&d.ID, &d.Name, &d.Description, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan department: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}

// CategoryRepo lookup de categorías sobre PostgreSQL.
type CategoryRepo struct {
	q Querier
}

// NewCategoryRepository construye el adaptador de categorías.
func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{q: q}
}

// GetByID obtiene una categoría por ID.
func (r *CategoryRepo) GetByID(id string) (*entity.Category, error) {
	var c entity.Category
	err := r.q.QueryRow(context.Background(),
		`SELECT id, name, description, created_at FROM categories WHERE id = $1`, id,
	).Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return &c, nil
}

// List lista categorías con paginación.
func (r *CategoryRepo) List(limit, offset int) ([]*entity.Category, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, name, description, created_at FROM categories ORDER BY name LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()
	var list []*entity.Category
	for rows.Next() {
		var c entity.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// ComputerRepo lookup de computadores sobre PostgreSQL.
type ComputerRepo struct {
	q Querier
}

// NewComputerRepository construye el adaptador de computadores.
func NewComputerRepository(q Querier) *ComputerRepo {
	return &ComputerRepo{q: q}
}

// GetByID obtiene un computador por ID.
func (r *ComputerRepo) GetByID(id string) (*entity.Computer, error) {
	var c entity.Computer
	err := r.q.QueryRow(context.Background(),
		`SELECT id, name, serial_number, department_id, status, created_at FROM computers WHERE id = $1`, id,
	).Scan(&c.ID, &c.Name, &c.SerialNumber, &c.DepartmentID, &c.Status, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get computer: %w", err)
	}
	return &c, nil
}

// List lista computadores, opcionalmente por departamento.
func (r *ComputerRepo) List(departmentID string, limit, offset int) ([]*entity.Computer, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, name, serial_number, department_id, status, created_at FROM computers
		 WHERE ($1 = '' OR department_id = $1) ORDER BY name LIMIT $2 OFFSET $3`,
		departmentID, limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("list computers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Computer
	for rows.Next() {
		var c entity.Computer
		if err := rows.Scan(&c.ID, &c.Name, &c.SerialNumber, &c.DepartmentID, &c.Status, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan computer: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}
