package hologres

import (
	"database/sql"
	"database/sql/driver"
	"fmt"
	"sync"
	"time"

	"github.com/lib/pq"
)

const DriverName = "hologres"

var registerOnce sync.Once

// RegisterDriver registers the hologres driver with database/sql. It is safe to call
// more than once.
func RegisterDriver() {
	registerOnce.Do(func() {
		sql.Register(DriverName, &HologresDriver{StatementTimeout: 10 * time.Minute})
	})
}

// HologresDriver is the postgres driver with a per-connection statement timeout.
type HologresDriver struct {
	driver           pq.Driver
	StatementTimeout time.Duration
}

func (d *HologresDriver) Open(name string) (driver.Conn, error) {
	conn, err := d.driver.Open(name)
	if err != nil {
		return nil, err
	}

	if d.StatementTimeout > 0 {
		if stmt, err := conn.Prepare(fmt.Sprintf("set statement_timeout = %d", d.StatementTimeout.Milliseconds())); err == nil {
			stmt.Exec(nil)
			stmt.Close()
		}
	}
	return conn, nil
}

type Hologres struct {
	DSN          string
	DB           *sql.DB
	Name         string
	RegisterTime time.Time
}

var hologresInstances sync.Map

func GetHologres(name string) (*Hologres, error) {
	value, ok := hologresInstances.Load(name)
	if !ok {
		return nil, fmt.Errorf("Hologres not found, name:%s", name)
	}

	hologresInstance, ok := value.(*Hologres)
	if !ok {
		return nil, fmt.Errorf("Hologres not found, name:%s", name)
	}

	return hologresInstance, nil
}

// Init opens the pool. Connections are established lazily on first use.
func (m *Hologres) Init() error {
	RegisterDriver()
	db, err := sql.Open(DriverName, m.DSN)
	if err != nil {
		return err
	}

	db.SetConnMaxLifetime(60 * time.Minute)
	db.SetMaxIdleConns(10)
	db.SetMaxOpenConns(50)

	m.DB = db
	return nil
}

// RegisterHologres keeps an existing instance when its dsn is unchanged and it is
// younger than 12 hours.
func RegisterHologres(name, dsn string) error {
	value, ok := hologresInstances.Load(name)
	if ok {
		hologresInstance, ok2 := value.(*Hologres)
		if ok2 && hologresInstance.DSN == dsn && time.Since(hologresInstance.RegisterTime) < 12*time.Hour {
			return nil
		}
	}
	m := &Hologres{
		DSN:          dsn,
		Name:         name,
		RegisterTime: time.Now(),
	}
	if err := m.Init(); err != nil {
		return fmt.Errorf("event=RegisterHologres\tname=%s\terr=%w", name, err)
	}
	if old, loaded := hologresInstances.Swap(name, m); loaded {
		if h, ok := old.(*Hologres); ok && h.DB != nil {
			h.DB.Close()
		}
	}
	return nil
}

func RemoveHologres(name string) {
	value, ok := hologresInstances.LoadAndDelete(name)
	if !ok {
		return
	}
	hologres, ok := value.(*Hologres)
	if !ok {
		return
	}

	if hologres.DB != nil {
		hologres.DB.Close()
	}
}
