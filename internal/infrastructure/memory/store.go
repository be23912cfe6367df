// Package memory implementa los puertos de persistencia sobre estructuras en
// memoria. Se usa en modo desarrollo (APP_STORAGE=memory) y como arnés de los
// tests de concurrencia del motor de inventario.
//
// Modelo de transacción: un único escritor a la vez (slot de escritor) con
// commit por clon preparado. La transacción muta un clon privado del estado y
// al confirmar lo intercambia de forma atómica; los lectores siempre ven
// estado confirmado.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/tu-usuario/inventario-planta/internal/domain"
	"github.com/tu-usuario/inventario-planta/internal/domain/entity"
)

type stockKey struct {
	productID  string
	locationID string
}

// state es el estado completo del almacén. Las transacciones lo clonan; las
// colecciones que ninguna tx muta se comparten por referencia.
type state struct {
	products  map[string]*entity.Product
	locations map[string]*entity.Location
	stock     map[stockKey]*entity.StockEntry
	movements []*entity.Movement
	alerts    map[string]*entity.Alert
	settings  map[string]string
	users     map[string]*entity.User
}

func newState() *state {
	return &state{
		products:  make(map[string]*entity.Product),
		locations: make(map[string]*entity.Location),
		stock:     make(map[stockKey]*entity.StockEntry),
		alerts:    make(map[string]*entity.Alert),
		settings:  make(map[string]string),
		users:     make(map[string]*entity.User),
	}
}

// clone copia lo que una transacción puede mutar (productos, stock, bitácora)
// y comparte el resto. El slot de escritor garantiza que nadie más escribe
// mientras la tx está en vuelo.
func (st *state) clone() *state {
	c := &state{
		products:  make(map[string]*entity.Product, len(st.products)),
		locations: st.locations,
		stock:     make(map[stockKey]*entity.StockEntry, len(st.stock)),
		movements: append([]*entity.Movement(nil), st.movements...),
		alerts:    st.alerts,
		settings:  st.settings,
		users:     st.users,
	}
	for id, p := range st.products {
		cp := *p
		c.products[id] = &cp
	}
	for k, e := range st.stock {
		ce := *e
		c.stock[k] = &ce
	}
	return c
}

// Store almacén en memoria compartido por todos los repositorios.
type Store struct {
	mu       sync.RWMutex  // protege st frente a lectores durante el swap
	writer   chan struct{} // slot único de escritor
	lockWait time.Duration // espera máxima por el slot
	st       *state
}

// NewStore construye un almacén vacío. lockWait acota la espera por el slot de
// escritor; al agotarse las transacciones devuelven ErrLockTimeout.
func NewStore(lockWait time.Duration) *Store {
	return &Store{
		writer:   make(chan struct{}, 1),
		lockWait: lockWait,
		st:       newState(),
	}
}

// acquireWriter toma el slot de escritor con espera acotada.
func (s *Store) acquireWriter(ctx context.Context) error {
	timer := time.NewTimer(s.lockWait)
	defer timer.Stop()
	select {
	case s.writer <- struct{}{}:
		return nil
	case <-timer.C:
		return domain.ErrLockTimeout
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Store) releaseWriter() {
	<-s.writer
}

// Session abstrae sobre qué estado opera un repositorio: el confirmado del
// Store o el clon privado de una transacción.
type Session interface {
	read(fn func(st *state) error) error
	write(fn func(st *state) error) error
}

var _ Session = (*Store)(nil)

func (s *Store) read(fn func(st *state) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(s.st)
}

// write ejecuta una escritura puntual fuera de transacción. Toma el slot de
// escritor para no pisarse con transacciones en vuelo.
func (s *Store) write(fn func(st *state) error) error {
	if err := s.acquireWriter(context.Background()); err != nil {
		return err
	}
	defer s.releaseWriter()
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.st)
}

// txSession opera sin locks sobre el clon privado: el slot de escritor ya
// serializa la transacción.
type txSession struct {
	st *state
}

var _ Session = (*txSession)(nil)

func (t *txSession) read(fn func(st *state) error) error  { return fn(t.st) }
func (t *txSession) write(fn func(st *state) error) error { return fn(t.st) }

// sameDate compara solo la fecha (año, mes, día).
func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
