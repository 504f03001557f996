package lending_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Activos-api/internal/domain/entity"
	"github.com/jhoicas/Activos-api/internal/domain/lending"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func datePtr(s string) *time.Time {
	d := date(s)
	return &d
}

// Préstamo vencido: prestado el 1, esperado el 5, consultado el 10 -> 5 días de atraso.
func TestDerived_PrestamoVencido(t *testing.T) {
	b := &entity.Borrowing{
		BorrowDate:         date("2024-01-01"),
		ExpectedReturnDate: date("2024-01-05"),
		Status:             entity.BorrowingStatusBorrowed,
	}
	now := date("2024-01-10")

	assert.Equal(t, 9, lending.DaysBorrowed(b, now), "días prestado = borrow_date -> now")
	assert.True(t, lending.IsOverdue(b, now), "debe estar vencido")
	assert.Equal(t, 5, lending.DaysOverdue(b, now), "días de atraso = expected -> now")
}

// Préstamo devuelto: los derivados usan return_date y nunca marcan vencido.
func TestDerived_PrestamoDevuelto(t *testing.T) {
	b := &entity.Borrowing{
		BorrowDate:         date("2024-01-01"),
		ExpectedReturnDate: date("2024-01-05"),
		ReturnDate:         datePtr("2024-01-04"),
		Status:             entity.BorrowingStatusReturned,
	}
	now := date("2024-02-01")

	assert.Equal(t, 3, lending.DaysBorrowed(b, now), "devuelto: cuenta hasta return_date")
	assert.False(t, lending.IsOverdue(b, now), "returned nunca está vencido")
	assert.Equal(t, 0, lending.DaysOverdue(b, now))
}

// Devuelto tarde pero ya devuelto: sin atraso aunque return_date > expected.
func TestDerived_DevueltoTardeNoEsVencido(t *testing.T) {
	b := &entity.Borrowing{
		BorrowDate:         date("2024-01-01"),
		ExpectedReturnDate: date("2024-01-05"),
		ReturnDate:         datePtr("2024-01-08"),
		Status:             entity.BorrowingStatusReturned,
	}
	assert.False(t, lending.IsOverdue(b, date("2024-01-10")))
}

// Fechas invertidas: days_borrowed negativo se conserva, no es error.
func TestDerived_FechasInvertidasDanNegativo(t *testing.T) {
	b := &entity.Borrowing{
		BorrowDate:         date("2024-01-10"),
		ExpectedReturnDate: date("2024-01-15"),
		ReturnDate:         datePtr("2024-01-05"),
		Status:             entity.BorrowingStatusReturned,
	}
	assert.Equal(t, -5, lending.DaysBorrowed(b, date("2024-02-01")),
		"return_date anterior a borrow_date produce un valor negativo")
}

// Préstamo perdido sigue acumulando atraso: lost no es terminal para overdue.
func TestDerived_PerdidoSigueVencido(t *testing.T) {
	b := &entity.Borrowing{
		BorrowDate:         date("2024-01-01"),
		ExpectedReturnDate: date("2024-01-05"),
		Status:             entity.BorrowingStatusLost,
	}
	now := date("2024-01-12")
	assert.True(t, lending.IsOverdue(b, now))
	assert.Equal(t, 7, lending.DaysOverdue(b, now))
}

// Estado inicial: departamentos distintos -> pending, sin importar el estado explícito.
func TestInitialStatus_DepartamentosDistintosEsPending(t *testing.T) {
	requester := "dept-a"
	origin := "dept-b"
	assert.Equal(t, entity.BorrowingStatusPending,
		lending.InitialStatus(&requester, &origin, entity.BorrowingStatusBorrowed),
		"origen distinto al solicitante siempre nace pending")
}

// Estado inicial: mismo departamento -> estado explícito o borrowed por defecto.
func TestInitialStatus_MismoDepartamento(t *testing.T) {
	dept := "dept-a"
	assert.Equal(t, entity.BorrowingStatusBorrowed, lending.InitialStatus(&dept, &dept, ""))
	assert.Equal(t, entity.BorrowingStatusPending, lending.InitialStatus(&dept, &dept, entity.BorrowingStatusPending))
}

// Estado inicial: origen desconocido (ítem sin departamento) -> no puede nacer pending por regla.
func TestInitialStatus_OrigenDesconocido(t *testing.T) {
	requester := "dept-a"
	assert.Equal(t, entity.BorrowingStatusBorrowed, lending.InitialStatus(&requester, nil, ""))
}
