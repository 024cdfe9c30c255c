package handlers_test

import (
	"context"
	"sort"
	"sync"

	"github.com/clinica-hce/historia-backend/models"
	"github.com/clinica-hce/historia-backend/store"
)

// Implementaciones en memoria de los contratos de store, para probar los
// handlers sin base de datos.

type memUsuarios struct {
	mu        sync.Mutex
	seq       int
	porNombre map[string]*models.Usuario
	pacientes *memPacientes
}

func newMemUsuarios(pacientes *memPacientes) *memUsuarios {
	return &memUsuarios{porNombre: make(map[string]*models.Usuario), pacientes: pacientes}
}

func (m *memUsuarios) PorUsername(_ context.Context, username string) (*models.Usuario, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.porNombre[username]
	if !ok {
		return nil, store.ErrNoEncontrado
	}
	copia := *u
	return &copia, nil
}

func (m *memUsuarios) Crear(_ context.Context, u *models.Usuario) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.crearLocked(u)
}

func (m *memUsuarios) crearLocked(u *models.Usuario) error {
	if _, ok := m.porNombre[u.Username]; ok {
		return store.ErrUsuarioDuplicado
	}
	m.seq++
	u.ID = m.seq
	copia := *u
	m.porNombre[u.Username] = &copia
	return nil
}

func (m *memUsuarios) CrearConPaciente(_ context.Context, u *models.Usuario, p *models.Paciente) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p != nil {
		if _, ok := m.pacientes.porDocumento[p.DocumentoID]; ok {
			return store.ErrPacienteDuplicado
		}
	}
	if err := m.crearLocked(u); err != nil {
		return err
	}
	if p != nil {
		m.pacientes.insertar(p)
	}
	return nil
}

func (m *memUsuarios) ActualizarMFA(_ context.Context, username, secreto, codigosRespaldo string, habilitado bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.porNombre[username]
	if !ok {
		return store.ErrNoEncontrado
	}
	u.MFASecret = secreto
	u.BackupCodes = codigosRespaldo
	u.MFAEnabled = habilitado
	return nil
}

type memPacientes struct {
	mu           sync.Mutex
	seq          int
	porDocumento map[string]*models.Paciente
}

func newMemPacientes() *memPacientes {
	return &memPacientes{porDocumento: make(map[string]*models.Paciente)}
}

func (m *memPacientes) insertar(p *models.Paciente) {
	m.seq++
	p.ID = m.seq
	copia := *p
	copia.Secciones = make(map[string]*string, len(p.Secciones))
	for k, v := range p.Secciones {
		if v != nil {
			vv := *v
			copia.Secciones[k] = &vv
		}
	}
	m.porDocumento[p.DocumentoID] = &copia
}

func (m *memPacientes) PorDocumento(_ context.Context, documentoID string) (*models.Paciente, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.porDocumento[documentoID]
	if !ok {
		return nil, store.ErrNoEncontrado
	}
	copia := *p
	copia.Secciones = make(map[string]*string, len(p.Secciones))
	for k, v := range p.Secciones {
		if v != nil {
			vv := *v
			copia.Secciones[k] = &vv
		}
	}
	return &copia, nil
}

func (m *memPacientes) Existe(_ context.Context, documentoID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.porDocumento[documentoID]
	return ok, nil
}

func (m *memPacientes) ActualizarCampos(_ context.Context, documentoID string, campos map[string]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.porDocumento[documentoID]
	if !ok {
		return store.ErrNoEncontrado
	}
	for nombre, valor := range campos {
		if !models.EsCampoClinico(nombre) {
			continue
		}
		v := valor
		p.Secciones[nombre] = &v
	}
	return nil
}

type memAdmisiones struct {
	mu    sync.Mutex
	seq   int
	items []models.Admision
}

func (m *memAdmisiones) Crear(_ context.Context, a *models.Admision) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	a.ID = m.seq
	m.items = append(m.items, *a)
	return a.ID, nil
}

func (m *memAdmisiones) PorDocumento(_ context.Context, documentoID string) ([]models.Admision, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var res []models.Admision
	for _, a := range m.items {
		if a.DocumentoID == documentoID {
			res = append(res, a)
		}
	}
	return res, nil
}

type memLoginLogs struct {
	mu    sync.Mutex
	seq   int
	items []models.LoginLog
}

func (m *memLoginLogs) Registrar(_ context.Context, e *models.LoginLog) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	e.ID = m.seq
	m.items = append(m.items, *e)
	return nil
}

func (m *memLoginLogs) Recientes(_ context.Context, limite int) ([]models.LoginLog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	copia := make([]models.LoginLog, len(m.items))
	copy(copia, m.items)
	// El timestamp es ISO-8601, el orden lexicográfico es cronológico
	sort.Slice(copia, func(i, j int) bool { return copia[i].Timestamp > copia[j].Timestamp })
	if len(copia) > limite {
		copia = copia[:limite]
	}
	return copia, nil
}
