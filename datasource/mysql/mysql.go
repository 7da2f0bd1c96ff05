package mysql

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/go-sql-driver/mysql"
)

type MySQL struct {
	Name         string
	DSN          string
	DB           *sql.DB
	RegisterTime time.Time
}

var mysqlInstances sync.Map

func GetMySQL(name string) (*MySQL, error) {
	value, ok := mysqlInstances.Load(name)
	if !ok {
		return nil, fmt.Errorf("MySQL not found, name:%s", name)
	}

	return value.(*MySQL), nil
}

func (m *MySQL) Init() error {
	db, err := sql.Open("mysql", m.DSN)
	if err != nil {
		return err
	}

	db.SetConnMaxLifetime(30 * time.Minute)
	db.SetMaxIdleConns(20)
	db.SetMaxOpenConns(50)

	m.DB = db
	return nil
}

// RegisterMySQL registers the online store of a featurestore. An instance with the
// same dsn is reused.
func RegisterMySQL(name string, cfg *mysql.Config) (*MySQL, error) {
	dsn := cfg.FormatDSN()
	if value, ok := mysqlInstances.Load(name); ok {
		if m := value.(*MySQL); m.DSN == dsn {
			return m, nil
		}
	}

	m := &MySQL{
		Name:         name,
		DSN:          dsn,
		RegisterTime: time.Now(),
	}
	if err := m.Init(); err != nil {
		return nil, fmt.Errorf("event=RegisterMySQL\tname=%s\terr=%w", name, err)
	}
	if old, loaded := mysqlInstances.Swap(name, m); loaded {
		if o := old.(*MySQL); o.DB != nil {
			o.DB.Close()
		}
	}
	return m, nil
}

func RemoveMySQL(name string) {
	value, ok := mysqlInstances.LoadAndDelete(name)
	if !ok {
		return
	}
	if m := value.(*MySQL); m.DB != nil {
		m.DB.Close()
	}
}
