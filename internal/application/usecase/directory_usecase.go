package usecase

import (
	"context"

	"github.com/jhoicas/Activos-api/internal/domain"
	"github.com/jhoicas/Activos-api/internal/domain/entity"
	"github.com/jhoicas/Activos-api/internal/domain/repository"
)

// DirectoryUseCase lookups de solo lectura sobre los colaboradores del núcleo:
// usuarios, departamentos, categorías y computadores. Sin lógica de workflow.
type DirectoryUseCase struct {
	users       repository.UserRepository
	departments repository.DepartmentRepository
	categories  repository.CategoryRepository
	computers   repository.ComputerRepository
}

// NewDirectoryUseCase construye el caso de uso.
func NewDirectoryUseCase(
	users repository.UserRepository,
	departments repository.DepartmentRepository,
	categories repository.CategoryRepository,
	computers repository.ComputerRepository,
) *DirectoryUseCase {
	return &DirectoryUseCase{users: users, departments: departments, categories: categories, computers: computers}
}

// GetUser lookup de usuario por id.
func (uc *DirectoryUseCase) GetUser(ctx context.Context, id string) (*entity.User, error) {
	u, err := uc.users.GetByID(id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrNotFound
	}
	return u, nil
}

// ListUsers lista usuarios.
func (uc *DirectoryUseCase) ListUsers(ctx context.Context, limit, offset int) ([]*entity.User, error) {
	return uc.users.List(limit, offset)
}

// GetDepartment lookup de departamento por id.
func (uc *DirectoryUseCase) GetDepartment(ctx context.Context, id string) (*entity.Department, error) {
	d, err := uc.departments.GetByID(id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, domain.ErrNotFound
	}
	return d, nil
}

// ListDepartments lista departamentos.
func (uc *DirectoryUseCase) ListDepartments(ctx context.Context, limit, offset int) ([]*entity.Department, error) {
	return uc.departments.List(limit, offset)
}

// ListCategories lista categorías del catálogo.
func (uc *DirectoryUseCase) ListCategories(ctx context.Context, limit, offset int) ([]*entity.Category, error) {
	return uc.categories.List(limit, offset)
}

// GetComputer lookup de computador por id.
func (uc *DirectoryUseCase) GetComputer(ctx context.Context, id string) (*entity.Computer, error) {
	c, err := uc.computers.GetByID(id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return c, nil
}

// ListComputers lista computadores, opcionalmente por departamento.
func (uc *DirectoryUseCase) ListComputers(ctx context.Context, departmentID string, limit, offset int) ([]*entity.Computer, error) {
	return uc.computers.List(departmentID, limit, offset)
}
