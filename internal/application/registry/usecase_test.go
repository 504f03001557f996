package registry_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Activos-api/internal/application/actor"
	"github.com/jhoicas/Activos-api/internal/application/dto"
	"github.com/jhoicas/Activos-api/internal/application/registry"
	"github.com/jhoicas/Activos-api/internal/domain"
	"github.com/jhoicas/Activos-api/internal/domain/entity"
	"github.com/jhoicas/Activos-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeAssetRepo struct {
	assets map[string]*entity.Asset
}

func (f *fakeAssetRepo) Create(a *entity.Asset) error { f.assets[a.ID] = a; return nil }
func (f *fakeAssetRepo) GetByID(id string) (*entity.Asset, error) {
	a, ok := f.assets[id]
	if !ok {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}
func (f *fakeAssetRepo) GetForUpdate(id string) (*entity.Asset, error) { return f.GetByID(id) }
func (f *fakeAssetRepo) Update(a *entity.Asset) error                  { f.assets[a.ID] = a; return nil }
func (f *fakeAssetRepo) Delete(id string) error                        { delete(f.assets, id); return nil }
func (f *fakeAssetRepo) List(_, _ string, _, _ int) ([]*entity.Asset, error) {
	out := make([]*entity.Asset, 0, len(f.assets))
	for _, a := range f.assets {
		out = append(out, a)
	}
	return out, nil
}
func (f *fakeAssetRepo) NextTagSequence(id string) (int, error) {
	a, ok := f.assets[id]
	if !ok {
		return 0, domain.ErrNotFound
	}
	a.TagSequence++
	return a.TagSequence, nil
}

type fakeSerialRepo struct {
	serials map[string]*entity.AssetSerial
}

func (f *fakeSerialRepo) Create(s *entity.AssetSerial) error {
	for _, other := range f.serials {
		if other.SerialNumber == s.SerialNumber || other.AssetTag == s.AssetTag {
			return domain.ErrDuplicate
		}
	}
	f.serials[s.ID] = s
	return nil
}
func (f *fakeSerialRepo) GetByID(id string) (*entity.AssetSerial, error) {
	s, ok := f.serials[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}
func (f *fakeSerialRepo) Update(s *entity.AssetSerial) error { f.serials[s.ID] = s; return nil }
func (f *fakeSerialRepo) Delete(id string) error             { delete(f.serials, id); return nil }
func (f *fakeSerialRepo) List(filter repository.SerialFilter) ([]*entity.AssetSerial, error) {
	var out []*entity.AssetSerial
	for _, s := range f.serials {
		if filter.AssetID != "" && s.AssetID != filter.AssetID {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}
func (f *fakeSerialRepo) CountByAsset(assetID string) (int, error) {
	n := 0
	for _, s := range f.serials {
		if s.AssetID == assetID {
			n++
		}
	}
	return n, nil
}
func (f *fakeSerialRepo) CountByStatus(assetID string) (map[string]int, error) {
	counts := map[string]int{}
	for _, s := range f.serials {
		if s.AssetID == assetID {
			counts[s.Status]++
		}
	}
	return counts, nil
}

type fakeAuditRepo struct {
	logs []*entity.AuditLog
}

func (f *fakeAuditRepo) Create(l *entity.AuditLog) error { f.logs = append(f.logs, l); return nil }
func (f *fakeAuditRepo) List(repository.AuditLogFilter) ([]*entity.AuditLog, int, error) {
	return f.logs, len(f.logs), nil
}
func (f *fakeAuditRepo) Modules() ([]string, error) { return nil, nil }
func (f *fakeAuditRepo) Actions() ([]string, error) { return nil, nil }

type fakeBorrowingRepo struct {
	activeSerials map[string]bool
}

func (f *fakeBorrowingRepo) Create(*entity.Borrowing) error                { return nil }
func (f *fakeBorrowingRepo) GetByID(string) (*entity.Borrowing, error)     { return nil, nil }
func (f *fakeBorrowingRepo) GetForUpdate(string) (*entity.Borrowing, error) { return nil, nil }
func (f *fakeBorrowingRepo) Update(*entity.Borrowing) error                { return nil }
func (f *fakeBorrowingRepo) Delete(string) error                           { return nil }
func (f *fakeBorrowingRepo) List(repository.BorrowingFilter) ([]*entity.Borrowing, error) {
	return nil, nil
}
func (f *fakeBorrowingRepo) ActiveExistsForSerial(serialID string) (bool, error) {
	return f.activeSerials[serialID], nil
}

// fakeTxRunner ejecuta el callback directo con los fakes, sin transacción real.
type fakeTxRunner struct {
	serials *fakeSerialRepo
	assets  *fakeAssetRepo
	audit   *fakeAuditRepo
}

func (f *fakeTxRunner) Run(_ context.Context, fn func(
	repository.AssetSerialRepository,
	repository.AssetRepository,
	repository.AuditLogRepository,
) error) error {
	return fn(f.serials, f.assets, f.audit)
}

// ──────────────────────────────────────────────────────────────────────────────
// Setup
// ──────────────────────────────────────────────────────────────────────────────

type registryFixture struct {
	uc      *registry.UseCase
	assets  *fakeAssetRepo
	serials *fakeSerialRepo
	audit   *fakeAuditRepo
}

func newRegistryFixture() *registryFixture {
	assets := &fakeAssetRepo{assets: map[string]*entity.Asset{}}
	serials := &fakeSerialRepo{serials: map[string]*entity.AssetSerial{}}
	audit := &fakeAuditRepo{}
	borrowings := &fakeBorrowingRepo{activeSerials: map[string]bool{}}
	tx := &fakeTxRunner{serials: serials, assets: assets, audit: audit}
	return &registryFixture{
		uc:      registry.NewUseCase(tx, serials, borrowings),
		assets:  assets,
		serials: serials,
		audit:   audit,
	}
}

func manager() actor.Actor {
	return actor.New("user-1", nil, actor.CapManageSerialNumbers)
}

func createReq(assetID, serialNumber string) dto.CreateSerialRequest {
	return dto.CreateSerialRequest{AssetID: assetID, SerialNumber: serialNumber}
}

// ──────────────────────────────────────────────────────────────────────────────
// Guard de capacidad y generación de tags
// ──────────────────────────────────────────────────────────────────────────────

// Activo "Keyboard" con cantidad 2: dos altas pasan con tags KEY-0001 y KEY-0002,
// la tercera rebota con el error de capacidad y sus conteos.
func TestCreate_GuardDeCapacidadYTags(t *testing.T) {
	f := newRegistryFixture()
	f.assets.assets["a1"] = &entity.Asset{ID: "a1", Name: "Keyboard", Quantity: 2}
	ctx := context.Background()

	first, err := f.uc.Create(ctx, manager(), createReq("a1", "SN-001"))
	require.NoError(t, err)
	assert.Equal(t, "KEY-0001", first.AssetTag)

	second, err := f.uc.Create(ctx, manager(), createReq("a1", "SN-002"))
	require.NoError(t, err)
	assert.Equal(t, "KEY-0002", second.AssetTag)

	_, err = f.uc.Create(ctx, manager(), createReq("a1", "SN-003"))
	require.Error(t, err)
	var capErr *domain.CapacityError
	require.ErrorAs(t, err, &capErr, "la tercera alta debe rebotar por capacidad")
	assert.Equal(t, 2, capErr.CurrentCount)
	assert.Equal(t, 2, capErr.MaxQuantity)
	assert.Equal(t, "Keyboard", capErr.AssetName)
}

// La secuencia de tags es durable: borrar una unidad no libera su número.
func TestCreate_SecuenciaSobreviveBorrado(t *testing.T) {
	f := newRegistryFixture()
	f.assets.assets["a1"] = &entity.Asset{ID: "a1", Name: "Monitor", Quantity: 5}
	ctx := context.Background()

	first, err := f.uc.Create(ctx, manager(), createReq("a1", "SN-001"))
	require.NoError(t, err)
	assert.Equal(t, "MON-0001", first.AssetTag)

	require.NoError(t, f.uc.Delete(ctx, manager(), first.ID))

	second, err := f.uc.Create(ctx, manager(), createReq("a1", "SN-002"))
	require.NoError(t, err)
	assert.Equal(t, "MON-0002", second.AssetTag, "el tag borrado nunca se reutiliza")
}

// Prefijo del tag: primeros 3 alfanuméricos del nombre, mayúsculas.
func TestCreate_PrefijoDelTag(t *testing.T) {
	f := newRegistryFixture()
	f.assets.assets["a1"] = &entity.Asset{ID: "a1", Name: "3D Printer", Quantity: 5}
	ctx := context.Background()

	out, err := f.uc.Create(ctx, manager(), createReq("a1", "SN-001"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out.AssetTag, "3DP-"), "got %s", out.AssetTag)
}

// Tag explícito del caller se respeta sin tocar la secuencia.
func TestCreate_TagExplicito(t *testing.T) {
	f := newRegistryFixture()
	f.assets.assets["a1"] = &entity.Asset{ID: "a1", Name: "Laptop", Quantity: 5}
	ctx := context.Background()

	tag := "CUSTOM-01"
	in := createReq("a1", "SN-001")
	in.AssetTag = &tag
	out, err := f.uc.Create(ctx, manager(), in)
	require.NoError(t, err)
	assert.Equal(t, "CUSTOM-01", out.AssetTag)
	assert.Equal(t, 0, f.assets.assets["a1"].TagSequence, "la secuencia no avanza con tag explícito")
}

// Serial duplicado rebota con ErrDuplicate.
func TestCreate_SerialDuplicado(t *testing.T) {
	f := newRegistryFixture()
	f.assets.assets["a1"] = &entity.Asset{ID: "a1", Name: "Laptop", Quantity: 5}
	ctx := context.Background()

	_, err := f.uc.Create(ctx, manager(), createReq("a1", "SN-001"))
	require.NoError(t, err)
	_, err = f.uc.Create(ctx, manager(), createReq("a1", "SN-001"))
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

// Sin capacidad de gestión no hay alta.
func TestCreate_SinCapacidadEsForbidden(t *testing.T) {
	f := newRegistryFixture()
	f.assets.assets["a1"] = &entity.Asset{ID: "a1", Name: "Laptop", Quantity: 5}

	_, err := f.uc.Create(context.Background(), actor.New("user-2", nil), createReq("a1", "SN-001"))
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// Cada alta deja exactamente una entrada de auditoría con snapshot.
func TestCreate_EscribeAuditoria(t *testing.T) {
	f := newRegistryFixture()
	f.assets.assets["a1"] = &entity.Asset{ID: "a1", Name: "Laptop", Quantity: 5}

	_, err := f.uc.Create(context.Background(), manager(), createReq("a1", "SN-001"))
	require.NoError(t, err)
	require.Len(t, f.audit.logs, 1)
	assert.Equal(t, "created", f.audit.logs[0].Action)
	assert.Equal(t, entity.AuditModuleAssetSerials, f.audit.logs[0].Module)
	assert.Equal(t, "SN-001", f.audit.logs[0].NewValues["serial_number"])
}

// ──────────────────────────────────────────────────────────────────────────────
// Reasignación y borrado
// ──────────────────────────────────────────────────────────────────────────────

// Reasignar una unidad a otro activo corre el guard contra el destino.
func TestUpdate_ReasignacionRespetaCapacidadDestino(t *testing.T) {
	f := newRegistryFixture()
	f.assets.assets["a1"] = &entity.Asset{ID: "a1", Name: "Laptop", Quantity: 5}
	f.assets.assets["a2"] = &entity.Asset{ID: "a2", Name: "Tablet", Quantity: 1}
	ctx := context.Background()

	_, err := f.uc.Create(ctx, manager(), createReq("a2", "SN-T1"))
	require.NoError(t, err)
	moved, err := f.uc.Create(ctx, manager(), createReq("a1", "SN-L1"))
	require.NoError(t, err)

	_, err = f.uc.Update(ctx, manager(), moved.ID, dto.UpdateSerialRequest{
		AssetID:      "a2",
		SerialNumber: "SN-L1",
	})
	var capErr *domain.CapacityError
	require.ErrorAs(t, err, &capErr, "el destino ya está lleno")
	assert.Equal(t, "Tablet", capErr.AssetName)
}

// El borrado escribe la auditoría con el snapshot previo (antes de quitar la fila).
func TestDelete_AuditoriaConSnapshotPrevio(t *testing.T) {
	f := newRegistryFixture()
	f.assets.assets["a1"] = &entity.Asset{ID: "a1", Name: "Laptop", Quantity: 5}
	ctx := context.Background()

	created, err := f.uc.Create(ctx, manager(), createReq("a1", "SN-001"))
	require.NoError(t, err)
	f.audit.logs = nil

	require.NoError(t, f.uc.Delete(ctx, manager(), created.ID))
	require.Len(t, f.audit.logs, 1)
	assert.Equal(t, "deleted", f.audit.logs[0].Action)
	assert.Equal(t, "SN-001", f.audit.logs[0].OldValues["serial_number"])
	assert.Nil(t, f.audit.logs[0].NewValues)

	_, err = f.uc.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Estado efectivo derivado
// ──────────────────────────────────────────────────────────────────────────────

// Una unidad available con préstamo abierto se reporta in_use sin tocar el estado almacenado.
func TestGetByID_EstadoEfectivoDerivado(t *testing.T) {
	assets := &fakeAssetRepo{assets: map[string]*entity.Asset{
		"a1": {ID: "a1", Name: "Laptop", Quantity: 5},
	}}
	serials := &fakeSerialRepo{serials: map[string]*entity.AssetSerial{
		"s1": {ID: "s1", AssetID: "a1", SerialNumber: "SN-1", Status: entity.SerialStatusAvailable},
		"s2": {ID: "s2", AssetID: "a1", SerialNumber: "SN-2", Status: entity.SerialStatusMaintenance},
	}}
	audit := &fakeAuditRepo{}
	borrowings := &fakeBorrowingRepo{activeSerials: map[string]bool{"s1": true, "s2": true}}
	uc := registry.NewUseCase(&fakeTxRunner{serials: serials, assets: assets, audit: audit}, serials, borrowings)
	ctx := context.Background()

	withLoan, err := uc.GetByID(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, entity.SerialStatusAvailable, withLoan.Status, "el estado almacenado no cambia")
	assert.Equal(t, entity.SerialStatusInUse, withLoan.EffectiveStatus)

	inMaintenance, err := uc.GetByID(ctx, "s2")
	require.NoError(t, err)
	assert.Equal(t, entity.SerialStatusMaintenance, inMaintenance.EffectiveStatus,
		"estados no-available se reportan tal cual aunque haya préstamo")
}
